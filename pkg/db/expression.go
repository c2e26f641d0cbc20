package db

import (
	"context"
	"database/sql"
)

// ExpressionRow is one dense expression measurement. NodeID is the gene,
// transcript or miRNA internal id depending on the source table.
type ExpressionRow struct {
	DatasetID int64
	NodeID    int64
	SampleID  string
	Value     float64
}

type exprTable struct {
	table   string
	nodeCol string
}

var (
	geneExpr       = exprTable{table: "expression_data_gene", nodeCol: "gene_ID"}
	transcriptExpr = exprTable{table: "expression_data_transcript", nodeCol: "transcript_ID"}
	mirnaExpr      = exprTable{table: "expression_data_mirna", nodeCol: "miRNA_ID"}
)

// expressionValues streams the (dataset, node, sample, value) rows for the
// given datasets, optionally restricted to a node set. Ordering is fixed to
// (node, sample) so repeated requests produce identical series.
func (s *SpongeDB) expressionValues(ctx context.Context, et exprTable, datasetIDs, nodeIDs []int64) ([]ExpressionRow, error) {
	if len(datasetIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT dataset_ID, ` + et.nodeCol + `, sample_ID, expr_value
		FROM ` + et.table + `
		WHERE dataset_ID IN (` + placeholders(len(datasetIDs)) + `)`
	args := int64Args(datasetIDs)

	if len(nodeIDs) > 0 {
		query += ` AND ` + et.nodeCol + ` IN (` + placeholders(len(nodeIDs)) + `)`
		args = append(args, int64Args(nodeIDs)...)
	}
	query += ` ORDER BY ` + et.nodeCol + `, sample_ID`

	var out []ExpressionRow
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var r ExpressionRow
		if err := rows.Scan(&r.DatasetID, &r.NodeID, &r.SampleID, &r.Value); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

func (s *SpongeDB) GeneExpression(ctx context.Context, datasetIDs, geneIDs []int64) ([]ExpressionRow, error) {
	return s.expressionValues(ctx, geneExpr, datasetIDs, geneIDs)
}

func (s *SpongeDB) TranscriptExpression(ctx context.Context, datasetIDs, transcriptIDs []int64) ([]ExpressionRow, error) {
	return s.expressionValues(ctx, transcriptExpr, datasetIDs, transcriptIDs)
}

func (s *SpongeDB) MirnaExpression(ctx context.Context, datasetIDs, mirnaIDs []int64) ([]ExpressionRow, error) {
	return s.expressionValues(ctx, mirnaExpr, datasetIDs, mirnaIDs)
}
