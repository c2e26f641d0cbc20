package db

import (
	"context"
	"database/sql"
)

// MirnaInteractionRow is one bipartite sponge edge from a gene or
// transcript to a miRNA.
type MirnaInteractionRow struct {
	InteractionID int64
	SpongeRunID   int64
	NodeID        int64
	MirnaID       int64
	Coefficient   float64
}

type mirnaEdgeTable struct {
	table   string
	idCol   string
	nodeCol string
}

var (
	geneMirnaEdges = mirnaEdgeTable{
		table:   "interactions_genemirna",
		idCol:   "interactions_genemirna_ID",
		nodeCol: "gene_ID",
	}
	transcriptMirnaEdges = mirnaEdgeTable{
		table:   "interactions_transcriptmirna",
		idCol:   "interactions_transcriptmirna_ID",
		nodeCol: "transcript_ID",
	}
)

// mirnaInteractionsFor returns sponge edges touching the given nodes.
// When betweenAll is true an edge survives only when its miRNA touches
// every requested node within the edge's own run, so a miRNA covering
// the set across different runs does not qualify.
func (s *SpongeDB) mirnaInteractionsFor(ctx context.Context, mt mirnaEdgeTable, runIDs, nodeIDs []int64,
	betweenAll bool, limit, offset int) ([]MirnaInteractionRow, error) {

	if len(runIDs) == 0 || len(nodeIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT e.` + mt.idCol + `, e.sponge_run_ID, e.` + mt.nodeCol + `, e.miRNA_ID, e.coefficient
		FROM ` + mt.table + ` e
		WHERE e.sponge_run_ID IN (` + placeholders(len(runIDs)) + `)
		  AND e.` + mt.nodeCol + ` IN (` + placeholders(len(nodeIDs)) + `)`
	args := int64Args(runIDs)
	args = append(args, int64Args(nodeIDs)...)

	if betweenAll {
		query += `
		  AND EXISTS (
			SELECT 1 FROM ` + mt.table + ` s
			WHERE s.sponge_run_ID = e.sponge_run_ID
			  AND s.miRNA_ID = e.miRNA_ID
			  AND s.` + mt.nodeCol + ` IN (` + placeholders(len(nodeIDs)) + `)
			HAVING COUNT(DISTINCT s.` + mt.nodeCol + `) = ?
		  )`
		args = append(args, int64Args(nodeIDs)...)
		args = append(args, len(nodeIDs))
	}

	query += ` ORDER BY e.` + mt.idCol + ` LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []MirnaInteractionRow
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var r MirnaInteractionRow
		if err := rows.Scan(&r.InteractionID, &r.SpongeRunID, &r.NodeID,
			&r.MirnaID, &r.Coefficient); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

func (s *SpongeDB) GeneMirnaInteractions(ctx context.Context, runIDs, geneIDs []int64, betweenAll bool, limit, offset int) ([]MirnaInteractionRow, error) {
	return s.mirnaInteractionsFor(ctx, geneMirnaEdges, runIDs, geneIDs, betweenAll, limit, offset)
}

// mirnaInteractionsByMirna returns sponge edges touching the given
// miRNAs, the inverse direction of mirnaInteractionsFor.
func (s *SpongeDB) mirnaInteractionsByMirna(ctx context.Context, mt mirnaEdgeTable, runIDs, mirnaIDs []int64, limit, offset int) ([]MirnaInteractionRow, error) {
	if len(runIDs) == 0 || len(mirnaIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT ` + mt.idCol + `, sponge_run_ID, ` + mt.nodeCol + `, miRNA_ID, coefficient
		FROM ` + mt.table + `
		WHERE sponge_run_ID IN (` + placeholders(len(runIDs)) + `)
		  AND miRNA_ID IN (` + placeholders(len(mirnaIDs)) + `)
		ORDER BY ` + mt.idCol + ` LIMIT ? OFFSET ?`
	args := int64Args(runIDs)
	args = append(args, int64Args(mirnaIDs)...)
	args = append(args, limit, offset)

	var out []MirnaInteractionRow
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var r MirnaInteractionRow
		if err := rows.Scan(&r.InteractionID, &r.SpongeRunID, &r.NodeID,
			&r.MirnaID, &r.Coefficient); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

func (s *SpongeDB) GeneInteractionsByMirna(ctx context.Context, runIDs, mirnaIDs []int64, limit, offset int) ([]MirnaInteractionRow, error) {
	return s.mirnaInteractionsByMirna(ctx, geneMirnaEdges, runIDs, mirnaIDs, limit, offset)
}

func (s *SpongeDB) TranscriptInteractionsByMirna(ctx context.Context, runIDs, mirnaIDs []int64, limit, offset int) ([]MirnaInteractionRow, error) {
	return s.mirnaInteractionsByMirna(ctx, transcriptMirnaEdges, runIDs, mirnaIDs, limit, offset)
}

func (s *SpongeDB) TranscriptMirnaInteractions(ctx context.Context, runIDs, transcriptIDs []int64, betweenAll bool, limit, offset int) ([]MirnaInteractionRow, error) {
	return s.mirnaInteractionsFor(ctx, transcriptMirnaEdges, runIDs, transcriptIDs, betweenAll, limit, offset)
}

// OccurrenceRow counts how often a miRNA participates in one run.
type OccurrenceRow struct {
	OccurrenceID int64
	SpongeRunID  int64
	MirnaID      int64
	Occurrences  int64
}

// MirnaOccurrences returns participation counts under scope. mirnaIDs may
// be empty; minOccurrences below one disables the cutoff.
func (s *SpongeDB) MirnaOccurrences(ctx context.Context, runIDs, mirnaIDs []int64, minOccurrences int64, sort *Sort, limit, offset int) ([]OccurrenceRow, error) {
	if len(runIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT occurences_miRNA_ID, sponge_run_ID, miRNA_ID, occurences
		FROM occurences_mirna
		WHERE sponge_run_ID IN (` + placeholders(len(runIDs)) + `)`
	args := int64Args(runIDs)

	if len(mirnaIDs) > 0 {
		query += ` AND miRNA_ID IN (` + placeholders(len(mirnaIDs)) + `)`
		args = append(args, int64Args(mirnaIDs)...)
	}
	if minOccurrences > 0 {
		query += ` AND occurences > ?`
		args = append(args, minOccurrences)
	}

	query += orderAndPage("occurences_miRNA_ID", sort)
	args = append(args, limit, offset)

	var out []OccurrenceRow
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var r OccurrenceRow
		if err := rows.Scan(&r.OccurrenceID, &r.SpongeRunID, &r.MirnaID, &r.Occurrences); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}
