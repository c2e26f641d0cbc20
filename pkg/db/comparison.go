package db

import (
	"context"
	"database/sql"
)

// ComparisonRow is one stored cohort pair. The pair is unique up to
// orientation; matching in reverse is the comparison resolver's job.
type ComparisonRow struct {
	ComparisonID   int64          `json:"comparison_ID"`
	DatasetID1     int64          `json:"dataset_ID_1"`
	DatasetID2     int64          `json:"dataset_ID_2"`
	Condition1     sql.NullString `json:"-"`
	Condition2     sql.NullString `json:"-"`
	GeneTranscript string         `json:"gene_transcript"`
}

// ComparisonsOrdered matches comparisons with dataset 1 drawn from ds1 and
// dataset 2 from ds2, in that orientation only. Conditions are exact when
// non-empty; level restricts to "gene" or "transcript" when set.
func (s *SpongeDB) ComparisonsOrdered(ctx context.Context, ds1, ds2 []int64, cond1, cond2, level string) ([]ComparisonRow, error) {
	if len(ds1) == 0 || len(ds2) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT comparison_ID, dataset_ID_1, dataset_ID_2, condition_1, condition_2, gene_transcript
		FROM comparison
		WHERE dataset_ID_1 IN (` + placeholders(len(ds1)) + `)
		  AND dataset_ID_2 IN (` + placeholders(len(ds2)) + `)`
	args := int64Args(ds1)
	args = append(args, int64Args(ds2)...)

	if cond1 != "" {
		query += ` AND condition_1 = ?`
		args = append(args, cond1)
	}
	if cond2 != "" {
		query += ` AND condition_2 = ?`
		args = append(args, cond2)
	}
	if level != "" {
		query += ` AND gene_transcript = ?`
		args = append(args, level)
	}
	query += ` ORDER BY comparison_ID`

	return s.scanComparisons(ctx, query, args)
}

// AllComparisons lists the stored comparisons, optionally restricted to
// the datasets visible at one version.
func (s *SpongeDB) AllComparisons(ctx context.Context, version int64) ([]ComparisonRow, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT c.comparison_ID, c.dataset_ID_1, c.dataset_ID_2,
			c.condition_1, c.condition_2, c.gene_transcript
		FROM comparison c`
	var args []any
	if version >= 0 {
		query += `
		JOIN dataset d1 ON d1.dataset_ID = c.dataset_ID_1
		JOIN dataset d2 ON d2.dataset_ID = c.dataset_ID_2
		WHERE d1.sponge_db_version = ? AND d2.sponge_db_version = ?`
		args = append(args, version, version)
	}
	query += ` ORDER BY c.comparison_ID`

	return s.scanComparisons(ctx, query, args)
}

func (s *SpongeDB) scanComparisons(ctx context.Context, query string, args []any) ([]ComparisonRow, error) {
	var out []ComparisonRow
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var c ComparisonRow
		if err := rows.Scan(&c.ComparisonID, &c.DatasetID1, &c.DatasetID2,
			&c.Condition1, &c.Condition2, &c.GeneTranscript); err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	return out, err
}

// DifferentialExpressionRow holds the DESeq-style statistics of one node
// for one comparison. Signed fields are stored in forward orientation.
type DifferentialExpressionRow struct {
	DiffExprID     int64
	ComparisonID   int64
	NodeID         int64
	BaseMean       float64
	Log2FoldChange float64
	LfcSE          float64
	Stat           float64
	PValue         float64
	PAdj           float64
}

type diffExprTable struct {
	table   string
	idCol   string
	nodeCol string
}

var (
	geneDiffExpr = diffExprTable{
		table:   "differential_expression",
		idCol:   "differential_expression_ID",
		nodeCol: "gene_ID",
	}
	transcriptDiffExpr = diffExprTable{
		table:   "differential_expression_transcript",
		idCol:   "differential_expression_transcript_ID",
		nodeCol: "transcript_ID",
	}
)

func (s *SpongeDB) differentialExpression(ctx context.Context, dt diffExprTable, comparisonID int64, nodeIDs []int64) ([]DifferentialExpressionRow, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT ` + dt.idCol + `, comparison_ID, ` + dt.nodeCol + `,
			base_mean, log2_fold_change, lfc_se, stat, p_value, p_adj
		FROM ` + dt.table + `
		WHERE comparison_ID = ?`
	args := []any{comparisonID}

	if len(nodeIDs) > 0 {
		query += ` AND ` + dt.nodeCol + ` IN (` + placeholders(len(nodeIDs)) + `)`
		args = append(args, int64Args(nodeIDs)...)
	}
	query += ` ORDER BY ` + dt.idCol

	var out []DifferentialExpressionRow
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var r DifferentialExpressionRow
		if err := rows.Scan(&r.DiffExprID, &r.ComparisonID, &r.NodeID,
			&r.BaseMean, &r.Log2FoldChange, &r.LfcSE, &r.Stat, &r.PValue, &r.PAdj); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

func (s *SpongeDB) GeneDifferentialExpression(ctx context.Context, comparisonID int64, geneIDs []int64) ([]DifferentialExpressionRow, error) {
	return s.differentialExpression(ctx, geneDiffExpr, comparisonID, geneIDs)
}

func (s *SpongeDB) TranscriptDifferentialExpression(ctx context.Context, comparisonID int64, transcriptIDs []int64) ([]DifferentialExpressionRow, error) {
	return s.differentialExpression(ctx, transcriptDiffExpr, comparisonID, transcriptIDs)
}
