package db

import (
	"context"
	"database/sql"
)

// InteractionRow is one canonical ceRNA edge. Node1/Node2 are internal
// gene or transcript ids depending on the level the query ran against.
type InteractionRow struct {
	InteractionID int64
	SpongeRunID   int64
	Node1ID       int64
	Node2ID       int64
	PValue        float64
	Mscor         float64
	Correlation   float64
}

// edgeTable names the physical columns of one interaction level. Edges are
// stored once per unordered pair, so "involving node N" has to look at
// both endpoint slots.
type edgeTable struct {
	table string
	idCol string
	e1Col string
	e2Col string
}

var (
	geneEdges = edgeTable{
		table: "interactions_genegene",
		idCol: "interactions_genegene_ID",
		e1Col: "gene_ID1",
		e2Col: "gene_ID2",
	}
	transcriptEdges = edgeTable{
		table: "interactions_transcripttranscript",
		idCol: "interactions_transcripttranscript_ID",
		e1Col: "transcript_ID1",
		e2Col: "transcript_ID2",
	}
)

func (s *SpongeDB) interactionsInvolving(ctx context.Context, et edgeTable, runIDs, nodeIDs []int64,
	filters []Filter, sort *Sort, limit, offset int) ([]InteractionRow, error) {

	if len(runIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT ` + et.idCol + `, sponge_run_ID, ` + et.e1Col + `, ` + et.e2Col + `,
			p_value, mscor, correlation
		FROM ` + et.table + `
		WHERE sponge_run_ID IN (` + placeholders(len(runIDs)) + `)`
	args := int64Args(runIDs)

	// Either endpoint slot may hold the requested node; the OR of the two
	// slot predicates is the slot union without double counting.
	if len(nodeIDs) > 0 {
		in := placeholders(len(nodeIDs))
		query += ` AND (` + et.e1Col + ` IN (` + in + `) OR ` + et.e2Col + ` IN (` + in + `))`
		args = append(args, int64Args(nodeIDs)...)
		args = append(args, int64Args(nodeIDs)...)
	}

	frag, fargs := renderFilters(filters)
	query += frag
	args = append(args, fargs...)

	query += orderAndPage(et.idCol, sort)
	args = append(args, limit, offset)

	return s.scanInteractions(ctx, query, args)
}

func (s *SpongeDB) interactionsAmong(ctx context.Context, et edgeTable, runIDs, nodeIDs []int64,
	filters []Filter, sort *Sort, limit, offset int) ([]InteractionRow, error) {

	if len(runIDs) == 0 || len(nodeIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	in := placeholders(len(nodeIDs))
	query := `SELECT ` + et.idCol + `, sponge_run_ID, ` + et.e1Col + `, ` + et.e2Col + `,
			p_value, mscor, correlation
		FROM ` + et.table + `
		WHERE sponge_run_ID IN (` + placeholders(len(runIDs)) + `)
		  AND ` + et.e1Col + ` IN (` + in + `)
		  AND ` + et.e2Col + ` IN (` + in + `)`
	args := int64Args(runIDs)
	args = append(args, int64Args(nodeIDs)...)
	args = append(args, int64Args(nodeIDs)...)

	frag, fargs := renderFilters(filters)
	query += frag
	args = append(args, fargs...)

	query += orderAndPage(et.idCol, sort)
	args = append(args, limit, offset)

	return s.scanInteractions(ctx, query, args)
}

// endpointIDs returns the distinct node ids that appear on either side of
// an edge surviving the given filters, without loading the edges.
func (s *SpongeDB) endpointIDs(ctx context.Context, et edgeTable, runIDs []int64, filters []Filter) ([]int64, error) {
	if len(runIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	frag, fargs := renderFilters(filters)
	in := placeholders(len(runIDs))

	query := `
		SELECT ` + et.e1Col + ` AS node_id FROM ` + et.table + `
			WHERE sponge_run_ID IN (` + in + `)` + frag + `
		UNION
		SELECT ` + et.e2Col + ` FROM ` + et.table + `
			WHERE sponge_run_ID IN (` + in + `)` + frag + `
		ORDER BY node_id`
	args := int64Args(runIDs)
	args = append(args, fargs...)
	args = append(args, int64Args(runIDs)...)
	args = append(args, fargs...)

	var out []int64
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		out = append(out, id)
		return nil
	})
	return out, err
}

// runsWithInteraction returns the run ids (at version, VersionAny lifts the
// partition) in which the node has at least one edge. One grouped pass over
// the edge table, no per-edge work upstream.
func (s *SpongeDB) runsWithInteraction(ctx context.Context, et edgeTable, nodeID, version int64) (map[int64]bool, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `
		SELECT i.sponge_run_ID
		FROM ` + et.table + ` i
		JOIN sponge_run r ON r.sponge_run_ID = i.sponge_run_ID
		WHERE (i.` + et.e1Col + ` = ? OR i.` + et.e2Col + ` = ?)`
	args := []any{nodeID, nodeID}
	if version >= 0 {
		query += ` AND r.sponge_db_version = ?`
		args = append(args, version)
	}
	query += ` GROUP BY i.sponge_run_ID`

	out := make(map[int64]bool)
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		out[id] = true
		return nil
	})
	return out, err
}

func orderAndPage(idCol string, sort *Sort) string {
	// With no sort key the internal id alone keeps pagination stable.
	clause := ` ORDER BY `
	if sort != nil {
		clause += sort.clause() + `, `
	}
	return clause + idCol + ` LIMIT ? OFFSET ?`
}

func (s *SpongeDB) scanInteractions(ctx context.Context, query string, args []any) ([]InteractionRow, error) {
	var out []InteractionRow
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var r InteractionRow
		if err := rows.Scan(&r.InteractionID, &r.SpongeRunID, &r.Node1ID,
			&r.Node2ID, &r.PValue, &r.Mscor, &r.Correlation); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

// Gene level.

func (s *SpongeDB) GeneInteractionsInvolving(ctx context.Context, runIDs, geneIDs []int64, filters []Filter, sort *Sort, limit, offset int) ([]InteractionRow, error) {
	return s.interactionsInvolving(ctx, geneEdges, runIDs, geneIDs, filters, sort, limit, offset)
}

func (s *SpongeDB) GeneInteractionsAmong(ctx context.Context, runIDs, geneIDs []int64, filters []Filter, sort *Sort, limit, offset int) ([]InteractionRow, error) {
	return s.interactionsAmong(ctx, geneEdges, runIDs, geneIDs, filters, sort, limit, offset)
}

func (s *SpongeDB) GeneEndpointIDs(ctx context.Context, runIDs []int64, filters []Filter) ([]int64, error) {
	return s.endpointIDs(ctx, geneEdges, runIDs, filters)
}

func (s *SpongeDB) RunsWithGeneInteraction(ctx context.Context, geneID, version int64) (map[int64]bool, error) {
	return s.runsWithInteraction(ctx, geneEdges, geneID, version)
}

// Transcript level.

func (s *SpongeDB) TranscriptInteractionsInvolving(ctx context.Context, runIDs, transcriptIDs []int64, filters []Filter, sort *Sort, limit, offset int) ([]InteractionRow, error) {
	return s.interactionsInvolving(ctx, transcriptEdges, runIDs, transcriptIDs, filters, sort, limit, offset)
}

func (s *SpongeDB) TranscriptInteractionsAmong(ctx context.Context, runIDs, transcriptIDs []int64, filters []Filter, sort *Sort, limit, offset int) ([]InteractionRow, error) {
	return s.interactionsAmong(ctx, transcriptEdges, runIDs, transcriptIDs, filters, sort, limit, offset)
}

func (s *SpongeDB) TranscriptEndpointIDs(ctx context.Context, runIDs []int64, filters []Filter) ([]int64, error) {
	return s.endpointIDs(ctx, transcriptEdges, runIDs, filters)
}

func (s *SpongeDB) RunsWithTranscriptInteraction(ctx context.Context, transcriptID, version int64) (map[int64]bool, error) {
	return s.runsWithInteraction(ctx, transcriptEdges, transcriptID, version)
}
