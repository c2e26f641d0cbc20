package db

import (
	"context"
	"database/sql"
)

// NetworkAnalysisRow carries the per-node centralities of one sponge run.
// NodeID is a gene or transcript id depending on the level.
type NetworkAnalysisRow struct {
	AnalysisID  int64
	SpongeRunID int64
	NodeID      int64
	Betweenness float64
	NodeDegree  float64
	Eigenvector float64
}

type analysisTable struct {
	table   string
	idCol   string
	nodeCol string
}

var (
	geneAnalysis = analysisTable{
		table:   "network_analysis_gene",
		idCol:   "network_analysis_gene_ID",
		nodeCol: "gene_ID",
	}
	transcriptAnalysis = analysisTable{
		table:   "network_analysis_transcript",
		idCol:   "network_analysis_transcript_ID",
		nodeCol: "transcript_ID",
	}
)

// networkAnalysis returns centrality rows under scope. nodeIDs restricts to
// a candidate set when non-empty (the assembler's V0); filters hold the
// centrality minima. limit < 0 disables pagination so the caller can rank
// in memory.
func (s *SpongeDB) networkAnalysis(ctx context.Context, at analysisTable, runIDs, nodeIDs []int64,
	filters []Filter, sort *Sort, limit, offset int) ([]NetworkAnalysisRow, error) {

	if len(runIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT ` + at.idCol + `, sponge_run_ID, ` + at.nodeCol + `,
			betweenness, node_degree, eigenvector
		FROM ` + at.table + `
		WHERE sponge_run_ID IN (` + placeholders(len(runIDs)) + `)`
	args := int64Args(runIDs)

	if len(nodeIDs) > 0 {
		query += ` AND ` + at.nodeCol + ` IN (` + placeholders(len(nodeIDs)) + `)`
		args = append(args, int64Args(nodeIDs)...)
	}

	frag, fargs := renderFilters(filters)
	query += frag
	args = append(args, fargs...)

	if limit >= 0 {
		query += orderAndPage(at.idCol, sort)
		args = append(args, limit, offset)
	} else {
		query += ` ORDER BY `
		if sort != nil {
			query += sort.clause() + `, `
		}
		query += at.idCol
	}

	var out []NetworkAnalysisRow
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var r NetworkAnalysisRow
		if err := rows.Scan(&r.AnalysisID, &r.SpongeRunID, &r.NodeID,
			&r.Betweenness, &r.NodeDegree, &r.Eigenvector); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

func (s *SpongeDB) GeneNetworkAnalysis(ctx context.Context, runIDs, geneIDs []int64, filters []Filter, sort *Sort, limit, offset int) ([]NetworkAnalysisRow, error) {
	return s.networkAnalysis(ctx, geneAnalysis, runIDs, geneIDs, filters, sort, limit, offset)
}

func (s *SpongeDB) TranscriptNetworkAnalysis(ctx context.Context, runIDs, transcriptIDs []int64, filters []Filter, sort *Sort, limit, offset int) ([]NetworkAnalysisRow, error) {
	return s.networkAnalysis(ctx, transcriptAnalysis, runIDs, transcriptIDs, filters, sort, limit, offset)
}
