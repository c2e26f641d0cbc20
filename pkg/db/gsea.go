package db

import (
	"context"
	"database/sql"
)

type GeneSet struct {
	GeneSetID   int64  `json:"-"`
	GeneSetName string `json:"gene_set_name"`
}

// GseaRow is one enrichment result for a term of a gene set collection,
// derived from one comparison. Signed scores are stored forward.
type GseaRow struct {
	GseaID       int64
	ComparisonID int64
	GeneSetID    int64
	Term         string
	ES           float64
	NES          float64
	PValue       float64
	FDR          float64
	FWERP        float64
	GenePercent  float64
	TagPercent   float64
}

func (s *SpongeDB) GeneSets(ctx context.Context, comparisonID int64) ([]GeneSet, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT DISTINCT gs.gene_set_ID, gs.gene_set_name
		FROM gene_set gs
		JOIN gsea g ON g.gene_set_ID = gs.gene_set_ID
		WHERE g.comparison_ID = ?
		ORDER BY gs.gene_set_ID`

	var out []GeneSet
	err := scanAll(ctx, s.catalog, query, []any{comparisonID}, func(rows *sql.Rows) error {
		var g GeneSet
		if err := rows.Scan(&g.GeneSetID, &g.GeneSetName); err != nil {
			return err
		}
		out = append(out, g)
		return nil
	})
	return out, err
}

func (s *SpongeDB) GseaTerms(ctx context.Context, comparisonID int64, geneSetName string) ([]string, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT DISTINCT g.term
		FROM gsea g
		JOIN gene_set gs ON gs.gene_set_ID = g.gene_set_ID
		WHERE g.comparison_ID = ? AND gs.gene_set_name = ?
		ORDER BY g.term`

	var out []string
	err := scanAll(ctx, s.catalog, query, []any{comparisonID, geneSetName}, func(rows *sql.Rows) error {
		var t string
		if err := rows.Scan(&t); err != nil {
			return err
		}
		out = append(out, t)
		return nil
	})
	return out, err
}

// GseaResults returns the enrichment rows of a comparison, optionally for
// one gene set collection and one term.
func (s *SpongeDB) GseaResults(ctx context.Context, comparisonID int64, geneSetName, term string) ([]GseaRow, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT g.gsea_ID, g.comparison_ID, g.gene_set_ID, g.term,
			g.es, g.nes, g.p_value, g.fdr, g.fwerp, g.gene_percent, g.tag_percent
		FROM gsea g
		JOIN gene_set gs ON gs.gene_set_ID = g.gene_set_ID
		WHERE g.comparison_ID = ?`
	args := []any{comparisonID}

	if geneSetName != "" {
		query += ` AND gs.gene_set_name = ?`
		args = append(args, geneSetName)
	}
	if term != "" {
		query += ` AND g.term = ?`
		args = append(args, term)
	}
	query += ` ORDER BY g.gsea_ID`

	var out []GseaRow
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var g GseaRow
		if err := rows.Scan(&g.GseaID, &g.ComparisonID, &g.GeneSetID, &g.Term,
			&g.ES, &g.NES, &g.PValue, &g.FDR, &g.FWERP, &g.GenePercent, &g.TagPercent); err != nil {
			return err
		}
		out = append(out, g)
		return nil
	})
	return out, err
}

// GseaLeadGeneIDs returns the leading-edge gene ids of one enrichment row.
func (s *SpongeDB) GseaLeadGeneIDs(ctx context.Context, gseaID int64) ([]int64, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT gene_ID FROM gsea_lead_genes WHERE gsea_ID = ? ORDER BY gene_ID`
	var out []int64
	err := scanAll(ctx, s.catalog, query, []any{gseaID}, func(rows *sql.Rows) error {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		out = append(out, id)
		return nil
	})
	return out, err
}

// GseaMatchedGeneIDs returns the matched gene ids of one enrichment row in
// stored rank order. The shaper reverses this order for reversed matches.
func (s *SpongeDB) GseaMatchedGeneIDs(ctx context.Context, gseaID int64) ([]int64, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT gene_ID FROM gsea_matched_genes WHERE gsea_ID = ? ORDER BY match_rank`
	var out []int64
	err := scanAll(ctx, s.catalog, query, []any{gseaID}, func(rows *sql.Rows) error {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		out = append(out, id)
		return nil
	})
	return out, err
}

// GseaRunningES returns the running enrichment score series of one row in
// stored order; the series is negated and reversed for reversed matches.
func (s *SpongeDB) GseaRunningES(ctx context.Context, gseaID int64) ([]float64, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT score FROM gsea_res WHERE gsea_ID = ? ORDER BY res_ID`
	var out []float64
	err := scanAll(ctx, s.catalog, query, []any{gseaID}, func(rows *sql.Rows) error {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	return out, err
}

// GseaHitPositions returns the rank positions of the matched genes.
func (s *SpongeDB) GseaHitPositions(ctx context.Context, gseaID int64) ([]int64, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT position FROM gsea_ranking WHERE gsea_ID = ? ORDER BY position`
	var out []int64
	err := scanAll(ctx, s.catalog, query, []any{gseaID}, func(rows *sql.Rows) error {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	return out, err
}
