package model

import (
	"context"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

// Alternative splicing lookups: events per transcript with their genomic
// positions, exons of a region, and percent-spliced-in values per sample.

// SplicingEvent is one event with its position track.
type SplicingEvent struct {
	EventID    int64                 `json:"alternative_splicing_event_ID"`
	Transcript ShortTranscript       `json:"transcript"`
	EventName  string                `json:"event_name"`
	EventType  string                `json:"event_type"`
	Positions  []db.EventPositionRow `json:"positions"`
}

// GetSplicingEvents returns the events of the given transcripts, each with
// its ordered genomic positions.
func GetSplicingEvents(ctx context.Context, sdb *db.SpongeDB, req request.SplicingEvents) ([]SplicingEvent, error) {
	transcripts, err := ResolveTranscripts(ctx, sdb, req.ENSTNumbers, true)
	if err != nil {
		return nil, err
	}

	events, err := sdb.SplicingEventsForTranscripts(ctx, transcriptIDs(transcripts), req.EventTypes)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, apierr.NotFoundf("No alternative splicing events found for the given transcripts")
	}

	eventIDs := make([]int64, len(events))
	for i, e := range events {
		eventIDs[i] = e.EventID
	}
	positions, err := sdb.EventPositions(ctx, eventIDs)
	if err != nil {
		return nil, err
	}
	posByEvent := make(map[int64][]db.EventPositionRow, len(events))
	for _, p := range positions {
		posByEvent[p.EventID] = append(posByEvent[p.EventID], p)
	}

	transcriptMap := make(map[int64]db.Transcript, len(transcripts))
	for _, t := range transcripts {
		transcriptMap[t.TranscriptID] = t
	}

	out := make([]SplicingEvent, 0, len(events))
	for _, e := range events {
		out = append(out, SplicingEvent{
			EventID:    e.EventID,
			Transcript: shapeShortTranscript(transcriptMap[e.TranscriptID]),
			EventName:  e.EventName,
			EventType:  e.EventType,
			Positions:  posByEvent[e.EventID],
		})
	}
	return out, nil
}

// GetEventPositions returns the ordered genomic positions of the given
// events.
func GetEventPositions(ctx context.Context, sdb *db.SpongeDB, req request.SplicingEvents) ([]db.EventPositionRow, error) {
	if len(req.EventIDs) == 0 {
		return nil, apierr.BadRequestf(apierr.ErrMissingIdentifier,
			"At least one alternative_splicing_event_ID is required")
	}
	positions, err := sdb.EventPositions(ctx, req.EventIDs)
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return nil, apierr.NotFoundf("No positions found for the given events")
	}
	return positions, nil
}

// Exon is one exon of a transcript overlapping the queried region.
type Exon struct {
	Transcript ShortTranscript `json:"transcript"`
	ExonNr     int64           `json:"exon_nr"`
	StartPos   int64           `json:"start_pos"`
	EndPos     int64           `json:"end_pos"`
}

// GetExons returns the exons intersecting [StartPos, EndPos].
func GetExons(ctx context.Context, sdb *db.SpongeDB, req request.SplicingEvents) ([]Exon, error) {
	if req.StartPos <= 0 || req.EndPos <= 0 || req.EndPos < req.StartPos {
		return nil, apierr.BadRequestf(apierr.ErrMissingIdentifier,
			"A valid genomic region (start_pos, end_pos) is required")
	}

	exons, err := sdb.ExonsOverlapping(ctx, req.StartPos, req.EndPos)
	if err != nil {
		return nil, err
	}
	if len(exons) == 0 {
		return nil, apierr.NotFoundf("No exons found in the given region")
	}

	ids := make([]int64, len(exons))
	for i, e := range exons {
		ids[i] = e.TranscriptID
	}
	transcriptMap, err := sdb.TranscriptsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]Exon, 0, len(exons))
	for _, e := range exons {
		out = append(out, Exon{
			Transcript: shapeShortTranscript(transcriptMap[e.TranscriptID]),
			ExonNr:     e.ExonNr,
			StartPos:   e.StartPos,
			EndPos:     e.EndPos,
		})
	}
	return out, nil
}

// PsiValue is one percent-spliced-in measurement of an event.
type PsiValue struct {
	EventID  int64   `json:"alternative_splicing_event_ID"`
	SampleID string  `json:"sample_ID"`
	Psi      float64 `json:"psi_value"`
}

// GetPsiValues returns the PSI values of the events belonging to the given
// transcripts, optionally restricted to samples.
func GetPsiValues(ctx context.Context, sdb *db.SpongeDB, req request.SplicingEvents) ([]PsiValue, error) {
	transcripts, err := ResolveTranscripts(ctx, sdb, req.ENSTNumbers, true)
	if err != nil {
		return nil, err
	}

	events, err := sdb.SplicingEventsForTranscripts(ctx, transcriptIDs(transcripts), req.EventTypes)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, apierr.NotFoundf("No alternative splicing events found for the given transcripts")
	}
	eventIDs := make([]int64, len(events))
	for i, e := range events {
		eventIDs[i] = e.EventID
	}

	rows, err := sdb.PsiValues(ctx, eventIDs, req.SampleIDs)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No PSI values found for the given parameters")
	}

	out := make([]PsiValue, 0, len(rows))
	for _, r := range rows {
		out = append(out, PsiValue{EventID: r.EventID, SampleID: r.SampleID, Psi: r.Psi})
	}
	return out, nil
}
