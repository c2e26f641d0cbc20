package model

import (
	"context"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

// Gene set enrichment lookups. All signed fields pass through
// orientGsea so the reverse flip of a swapped comparison match lives in
// exactly one place.

// GseaSet names a gene set collection with enrichment results for a
// comparison.
type GseaSet struct {
	GeneSetName string `json:"gene_set_name"`
}

// GetGseaSets lists the gene set collections of a comparison.
func GetGseaSets(ctx context.Context, sdb *db.SpongeDB, req request.Gsea) ([]GseaSet, error) {
	match, err := ResolveComparison(ctx, sdb, req.Comparison)
	if err != nil {
		return nil, err
	}
	sets, err := sdb.GeneSets(ctx, match.Row.ComparisonID)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, apierr.NotFoundf("No gene sets found for the given comparison")
	}
	out := make([]GseaSet, len(sets))
	for i, s := range sets {
		out[i] = GseaSet{GeneSetName: s.GeneSetName}
	}
	return out, nil
}

// GetGseaTerms lists the enriched terms of one gene set collection.
func GetGseaTerms(ctx context.Context, sdb *db.SpongeDB, req request.Gsea) ([]string, error) {
	if req.GeneSetName == "" {
		return nil, apierr.BadRequestf(apierr.ErrMissingIdentifier, "A gene_set name is required")
	}
	match, err := ResolveComparison(ctx, sdb, req.Comparison)
	if err != nil {
		return nil, err
	}
	terms, err := sdb.GseaTerms(ctx, match.Row.ComparisonID, req.GeneSetName)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, apierr.NotFoundf("No enriched terms found for the given gene set")
	}
	return terms, nil
}

// GseaResult is one enrichment row in request orientation, including its
// leading-edge genes.
type GseaResult struct {
	Term        string      `json:"term"`
	ES          float64     `json:"es"`
	NES         float64     `json:"nes"`
	PValue      float64     `json:"pvalue"`
	FDR         float64     `json:"fdr"`
	FWERP       float64     `json:"fwerp"`
	GenePercent float64     `json:"gene_percent"`
	TagPercent  float64     `json:"tag_percent"`
	LeadGenes   []ShortGene `json:"lead_genes"`
}

// GseaPlot carries the series needed to redraw one enrichment plot, in
// request orientation.
type GseaPlot struct {
	Term         string      `json:"term"`
	ES           float64     `json:"es"`
	NES          float64     `json:"nes"`
	PValue       float64     `json:"pvalue"`
	RunningES    []float64   `json:"res"`
	HitPositions []int64     `json:"positions"`
	MatchedGenes []ShortGene `json:"matched_genes"`
}

// orientGsea flips the signed scores of one row for a reversed match.
func orientGsea(r db.GseaRow, reverse bool) db.GseaRow {
	if reverse {
		r.ES = -r.ES
		r.NES = -r.NES
	}
	return r
}

// orientSeries negates and reverses the running enrichment series for a
// reversed match: walking the ranking from the other end flips both the
// direction and the sign of every partial sum.
func orientSeries(series []float64, reverse bool) []float64 {
	if !reverse {
		return series
	}
	out := make([]float64, len(series))
	for i, v := range series {
		out[len(series)-1-i] = -v
	}
	return out
}

func orientGeneOrder(ids []int64, reverse bool) []int64 {
	if !reverse {
		return ids
	}
	out := make([]int64, len(ids))
	for i, v := range ids {
		out[len(ids)-1-i] = v
	}
	return out
}

// GetGseaResults returns the enrichment rows of a comparison with their
// leading-edge genes.
func GetGseaResults(ctx context.Context, sdb *db.SpongeDB, req request.Gsea) ([]GseaResult, error) {
	match, err := ResolveComparison(ctx, sdb, req.Comparison)
	if err != nil {
		return nil, err
	}

	rows, err := sdb.GseaResults(ctx, match.Row.ComparisonID, req.GeneSetName, req.Term)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No enrichment results found for the given parameters")
	}

	out := make([]GseaResult, 0, len(rows))
	for _, raw := range rows {
		r := orientGsea(raw, match.Reverse)

		leadIDs, err := sdb.GseaLeadGeneIDs(ctx, r.GseaID)
		if err != nil {
			return nil, err
		}
		leadGenes, err := shapeGenesByID(ctx, sdb, leadIDs)
		if err != nil {
			return nil, err
		}

		out = append(out, GseaResult{
			Term:        r.Term,
			ES:          r.ES,
			NES:         r.NES,
			PValue:      r.PValue,
			FDR:         r.FDR,
			FWERP:       r.FWERP,
			GenePercent: r.GenePercent,
			TagPercent:  r.TagPercent,
			LeadGenes:   leadGenes,
		})
	}
	return out, nil
}

// GetGseaPlot returns the plot series of the enrichment rows matching the
// given term.
func GetGseaPlot(ctx context.Context, sdb *db.SpongeDB, req request.Gsea) ([]GseaPlot, error) {
	if req.Term == "" {
		return nil, apierr.BadRequestf(apierr.ErrMissingIdentifier, "A term is required to plot an enrichment")
	}
	match, err := ResolveComparison(ctx, sdb, req.Comparison)
	if err != nil {
		return nil, err
	}

	rows, err := sdb.GseaResults(ctx, match.Row.ComparisonID, req.GeneSetName, req.Term)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No enrichment results found for the given term")
	}

	out := make([]GseaPlot, 0, len(rows))
	for _, raw := range rows {
		r := orientGsea(raw, match.Reverse)

		series, err := sdb.GseaRunningES(ctx, r.GseaID)
		if err != nil {
			return nil, err
		}
		positions, err := sdb.GseaHitPositions(ctx, r.GseaID)
		if err != nil {
			return nil, err
		}
		matchedIDs, err := sdb.GseaMatchedGeneIDs(ctx, r.GseaID)
		if err != nil {
			return nil, err
		}
		matched, err := shapeGenesByID(ctx, sdb, orientGeneOrder(matchedIDs, match.Reverse))
		if err != nil {
			return nil, err
		}

		out = append(out, GseaPlot{
			Term:         r.Term,
			ES:           r.ES,
			NES:          r.NES,
			PValue:       r.PValue,
			RunningES:    orientSeries(series, match.Reverse),
			HitPositions: positions,
			MatchedGenes: matched,
		})
	}
	return out, nil
}

// shapeGenesByID loads and shapes genes preserving the id order given.
func shapeGenesByID(ctx context.Context, sdb *db.SpongeDB, ids []int64) ([]ShortGene, error) {
	if len(ids) == 0 {
		return []ShortGene{}, nil
	}
	geneMap, err := sdb.GenesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]ShortGene, 0, len(ids))
	for _, id := range ids {
		if g, ok := geneMap[id]; ok {
			out = append(out, shapeShortGene(g))
		}
	}
	return out, nil
}
