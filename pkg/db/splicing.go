package db

import (
	"context"
	"database/sql"
)

// SplicingEventRow is one alternative-splicing event of a transcript.
type SplicingEventRow struct {
	EventID      int64  `json:"alternative_splicing_event_ID"`
	TranscriptID int64  `json:"-"`
	EventName    string `json:"event_name"`
	EventType    string `json:"event_type"`
}

type EventPositionRow struct {
	EventID     int64 `json:"alternative_splicing_event_ID"`
	OrderNumber int64 `json:"order_number"`
	StartPos    int64 `json:"start_pos"`
	EndPos      int64 `json:"end_pos"`
}

type ExonRow struct {
	ExonID       int64 `json:"-"`
	TranscriptID int64 `json:"-"`
	ExonNr       int64 `json:"exon_nr"`
	StartPos     int64 `json:"start_pos"`
	EndPos       int64 `json:"end_pos"`
}

type PsiValueRow struct {
	PsiValueID int64   `json:"-"`
	EventID    int64   `json:"alternative_splicing_event_ID"`
	SampleID   string  `json:"sample_ID"`
	Psi        float64 `json:"psi_value"`
}

func (s *SpongeDB) SplicingEventsForTranscripts(ctx context.Context, transcriptIDs []int64, eventTypes []string) ([]SplicingEventRow, error) {
	if len(transcriptIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT alternative_splicing_event_transcript_ID, transcript_ID, event_name, event_type
		FROM alternative_splicing_event_transcript
		WHERE transcript_ID IN (` + placeholders(len(transcriptIDs)) + `)`
	args := int64Args(transcriptIDs)
	if len(eventTypes) > 0 {
		query += ` AND event_type IN (` + placeholders(len(eventTypes)) + `)`
		args = append(args, stringArgs(eventTypes)...)
	}
	query += ` ORDER BY alternative_splicing_event_transcript_ID`

	var out []SplicingEventRow
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var e SplicingEventRow
		if err := rows.Scan(&e.EventID, &e.TranscriptID, &e.EventName, &e.EventType); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	return out, err
}

func (s *SpongeDB) EventPositions(ctx context.Context, eventIDs []int64) ([]EventPositionRow, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT alternative_splicing_event_transcript_ID, order_number, start_pos, end_pos
		FROM alternative_splicing_event_positions
		WHERE alternative_splicing_event_transcript_ID IN (` + placeholders(len(eventIDs)) + `)
		ORDER BY alternative_splicing_event_transcript_ID, order_number`

	var out []EventPositionRow
	err := scanAll(ctx, s.catalog, query, int64Args(eventIDs), func(rows *sql.Rows) error {
		var p EventPositionRow
		if err := rows.Scan(&p.EventID, &p.OrderNumber, &p.StartPos, &p.EndPos); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	return out, err
}

// ExonsOverlapping returns exons intersecting [startPos, endPos].
func (s *SpongeDB) ExonsOverlapping(ctx context.Context, startPos, endPos int64) ([]ExonRow, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT exon_ID, transcript_ID, exon_nr, start_pos, end_pos
		FROM exon
		WHERE start_pos <= ? AND end_pos >= ?
		ORDER BY exon_ID`

	var out []ExonRow
	err := scanAll(ctx, s.catalog, query, []any{endPos, startPos}, func(rows *sql.Rows) error {
		var e ExonRow
		if err := rows.Scan(&e.ExonID, &e.TranscriptID, &e.ExonNr, &e.StartPos, &e.EndPos); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	return out, err
}

func (s *SpongeDB) PsiValues(ctx context.Context, eventIDs []int64, sampleIDs []string) ([]PsiValueRow, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT psi_value_ID, alternative_splicing_event_transcript_ID, sample_ID, psi
		FROM psi_value
		WHERE alternative_splicing_event_transcript_ID IN (` + placeholders(len(eventIDs)) + `)`
	args := int64Args(eventIDs)
	if len(sampleIDs) > 0 {
		query += ` AND sample_ID IN (` + placeholders(len(sampleIDs)) + `)`
		args = append(args, stringArgs(sampleIDs)...)
	}
	query += ` ORDER BY psi_value_ID`

	var out []PsiValueRow
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var p PsiValueRow
		if err := rows.Scan(&p.PsiValueID, &p.EventID, &p.SampleID, &p.Psi); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	return out, err
}
