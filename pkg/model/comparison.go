package model

import (
	"context"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/params"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

// Comparison resolver. A stored comparison is unique up to orientation:
// a request for (A, B) may hit a row stored as (B, A). In that case the
// match carries Reverse=true and every shaper presenting signed values
// negates them before responding.

// ComparisonMatch is a resolved comparison plus its orientation relative
// to the request.
type ComparisonMatch struct {
	Row     db.ComparisonRow
	Reverse bool
}

func resolveComparisonDatasets(ctx context.Context, sdb *db.SpongeDB, ids []int64, diseaseName string, version int64) ([]int64, error) {
	if len(ids) > 0 {
		return ids, nil
	}
	if diseaseName == "" {
		return nil, apierr.BadRequestf(apierr.ErrMissingIdentifier,
			"Provide either dataset IDs or a disease name for both sides of the comparison")
	}
	datasets, err := sdb.Datasets(ctx, db.DatasetQuery{DiseaseName: diseaseName, Version: version})
	if err != nil {
		return nil, err
	}
	if len(datasets) == 0 {
		return nil, apierr.BadRequestf(apierr.ErrScopeEmpty,
			"No dataset with given disease_name found: %s", diseaseName)
	}
	out := make([]int64, len(datasets))
	for i, d := range datasets {
		out[i] = d.DatasetID
	}
	return out, nil
}

// ResolveComparison finds the unique stored comparison for the request.
// The ordered pair is tried first; on no match the swapped pair is tried
// and the match is flagged reversed.
func ResolveComparison(ctx context.Context, sdb *db.SpongeDB, req request.ComparisonSelect) (*ComparisonMatch, error) {
	version := req.Version
	if version == params.VersionLatest {
		latest, err := sdb.LatestVersion(ctx)
		if err != nil {
			return nil, apierr.BadRequestf(apierr.ErrScopeEmpty, "No dataset version available")
		}
		version = latest
	}

	ds1, err := resolveComparisonDatasets(ctx, sdb, req.DatasetID1, req.DiseaseName1, version)
	if err != nil {
		return nil, err
	}
	ds2, err := resolveComparisonDatasets(ctx, sdb, req.DatasetID2, req.DiseaseName2, version)
	if err != nil {
		return nil, err
	}

	rows, err := sdb.ComparisonsOrdered(ctx, ds1, ds2, req.Condition1, req.Condition2, req.Level)
	if err != nil {
		return nil, err
	}
	reverse := false
	if len(rows) == 0 {
		rows, err = sdb.ComparisonsOrdered(ctx, ds2, ds1, req.Condition2, req.Condition1, req.Level)
		if err != nil {
			return nil, err
		}
		reverse = true
	}

	switch len(rows) {
	case 0:
		return nil, apierr.NoComparisonf("No comparison found for the given inputs")
	case 1:
		return &ComparisonMatch{Row: rows[0], Reverse: reverse}, nil
	default:
		return nil, apierr.BadRequestf(apierr.ErrAmbiguousComparison,
			"More than one comparison matches the given inputs; narrow the conditions")
	}
}

// ComparisonInfo is one listed comparison with its datasets embedded.
type ComparisonInfo struct {
	ComparisonID   int64       `json:"comparison_ID"`
	Dataset1       DatasetInfo `json:"dataset_1"`
	Dataset2       DatasetInfo `json:"dataset_2"`
	Condition1     string      `json:"condition_1"`
	Condition2     string      `json:"condition_2"`
	GeneTranscript string      `json:"gene_transcript"`
}

// ListComparisons returns the stored comparisons visible at the requested
// version.
func ListComparisons(ctx context.Context, sdb *db.SpongeDB, version int64) ([]ComparisonInfo, error) {
	if version == params.VersionLatest {
		latest, err := sdb.LatestVersion(ctx)
		if err != nil {
			return nil, apierr.NotFoundf("No dataset version available")
		}
		version = latest
	}

	rows, err := sdb.AllComparisons(ctx, version)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No comparisons found for the given version")
	}

	ids := make([]int64, 0, 2*len(rows))
	for _, r := range rows {
		ids = append(ids, r.DatasetID1, r.DatasetID2)
	}
	datasets, err := sdb.DatasetsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ComparisonInfo, 0, len(rows))
	for _, r := range rows {
		out = append(out, ComparisonInfo{
			ComparisonID:   r.ComparisonID,
			Dataset1:       shapeDataset(datasets[r.DatasetID1]),
			Dataset2:       shapeDataset(datasets[r.DatasetID2]),
			Condition1:     r.Condition1.String,
			Condition2:     r.Condition2.String,
			GeneTranscript: r.GeneTranscript,
		})
	}
	return out, nil
}

// GeneDiffExpr is one gene-level differential-expression row, already in
// request orientation.
type GeneDiffExpr struct {
	ComparisonID   int64     `json:"comparison_ID"`
	Gene           ShortGene `json:"gene"`
	BaseMean       float64   `json:"base_mean"`
	Log2FoldChange float64   `json:"log2FoldChange"`
	LfcSE          float64   `json:"lfcSE"`
	Stat           float64   `json:"stat"`
	PValue         float64   `json:"pvalue"`
	PAdj           float64   `json:"padj"`
}

// TranscriptDiffExpr is the transcript-level counterpart.
type TranscriptDiffExpr struct {
	ComparisonID   int64           `json:"comparison_ID"`
	Transcript     ShortTranscript `json:"transcript"`
	BaseMean       float64         `json:"base_mean"`
	Log2FoldChange float64         `json:"log2FoldChange"`
	LfcSE          float64         `json:"lfcSE"`
	Stat           float64         `json:"stat"`
	PValue         float64         `json:"pvalue"`
	PAdj           float64         `json:"padj"`
}

// orientDiffExpr flips the signed statistics when the comparison was
// matched in reverse. base_mean, spreads and p-values are orientation
// free and stay as stored.
func orientDiffExpr(r db.DifferentialExpressionRow, reverse bool) db.DifferentialExpressionRow {
	if reverse {
		r.Log2FoldChange = -r.Log2FoldChange
		r.Stat = -r.Stat
	}
	return r
}

// GetGeneDifferentialExpression resolves the comparison and returns its
// gene-level DESeq statistics in request orientation.
func GetGeneDifferentialExpression(ctx context.Context, sdb *db.SpongeDB, req request.DifferentialExpression) ([]GeneDiffExpr, error) {
	match, err := ResolveComparison(ctx, sdb, withLevel(req.Comparison, "gene"))
	if err != nil {
		return nil, err
	}

	genes, err := ResolveGenes(ctx, sdb, req.ENSGNumbers, req.GeneSymbols, false)
	if err != nil {
		return nil, err
	}

	rows, err := sdb.GeneDifferentialExpression(ctx, match.Row.ComparisonID, geneIDs(genes))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No differential expression data for the given parameters")
	}

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.NodeID
	}
	geneMap, err := sdb.GenesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]GeneDiffExpr, 0, len(rows))
	for _, raw := range rows {
		r := orientDiffExpr(raw, match.Reverse)
		out = append(out, GeneDiffExpr{
			ComparisonID:   r.ComparisonID,
			Gene:           shapeShortGene(geneMap[r.NodeID]),
			BaseMean:       r.BaseMean,
			Log2FoldChange: r.Log2FoldChange,
			LfcSE:          r.LfcSE,
			Stat:           r.Stat,
			PValue:         r.PValue,
			PAdj:           r.PAdj,
		})
	}
	return out, nil
}

// GetTranscriptDifferentialExpression is the transcript level counterpart
// of GetGeneDifferentialExpression.
func GetTranscriptDifferentialExpression(ctx context.Context, sdb *db.SpongeDB, req request.DifferentialExpression) ([]TranscriptDiffExpr, error) {
	match, err := ResolveComparison(ctx, sdb, withLevel(req.Comparison, "transcript"))
	if err != nil {
		return nil, err
	}

	transcripts, err := ResolveTranscripts(ctx, sdb, req.ENSTNumbers, false)
	if err != nil {
		return nil, err
	}

	rows, err := sdb.TranscriptDifferentialExpression(ctx, match.Row.ComparisonID, transcriptIDs(transcripts))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No differential expression data for the given parameters")
	}

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.NodeID
	}
	transcriptMap, err := sdb.TranscriptsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]TranscriptDiffExpr, 0, len(rows))
	for _, raw := range rows {
		r := orientDiffExpr(raw, match.Reverse)
		out = append(out, TranscriptDiffExpr{
			ComparisonID:   r.ComparisonID,
			Transcript:     shapeShortTranscript(transcriptMap[r.NodeID]),
			BaseMean:       r.BaseMean,
			Log2FoldChange: r.Log2FoldChange,
			LfcSE:          r.LfcSE,
			Stat:           r.Stat,
			PValue:         r.PValue,
			PAdj:           r.PAdj,
		})
	}
	return out, nil
}

func withLevel(sel request.ComparisonSelect, level string) request.ComparisonSelect {
	if sel.Level == "" {
		sel.Level = level
	}
	return sel
}
