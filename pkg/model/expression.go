package model

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

// Expression retrieval for genes, transcripts and miRNAs. Rows come back
// in long form (node, sample, value). With Cluster set the rows are
// pivoted to a node x sample matrix, both axes are reordered by Ward
// dendrogram leaf order, and the matrix is melted back to long form.

// ExpressionValue is one measurement in the response.
type ExpressionValue struct {
	Dataset   DatasetInfo `json:"dataset"`
	NodeLabel string      `json:"-"`
	SampleID  string      `json:"sample_ID"`
	Value     float64     `json:"expr_value"`
}

// GeneExpressionValue adds the gene identity to a measurement.
type GeneExpressionValue struct {
	ExpressionValue
	Gene ShortGene `json:"gene"`
}

// TranscriptExpressionValue adds the transcript identity.
type TranscriptExpressionValue struct {
	ExpressionValue
	Transcript ShortTranscript `json:"transcript"`
}

// MirnaExpressionValue adds the miRNA identity.
type MirnaExpressionValue struct {
	ExpressionValue
	Mirna ShortMirna `json:"mirna"`
}

// GetGeneExpression returns gene expression under scope, optionally
// clustered on both axes.
func GetGeneExpression(ctx context.Context, sdb *db.SpongeDB, req request.Expression) ([]GeneExpressionValue, error) {
	scope, err := ResolveScope(ctx, sdb, req.Scope)
	if err != nil {
		return nil, err
	}

	genes, err := ResolveGenes(ctx, sdb, req.ENSGNumbers, req.GeneSymbols, false)
	if err != nil {
		return nil, err
	}

	rows, err := sdb.GeneExpression(ctx, scope.DatasetIDs(), geneIDs(genes))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No expression data found for the given parameters")
	}
	if req.Cluster {
		if rows, err = clusterExpression(rows); err != nil {
			return nil, err
		}
	}

	geneMap, err := sdb.GenesByIDs(ctx, expressionNodeIDs(rows))
	if err != nil {
		return nil, err
	}
	out := make([]GeneExpressionValue, 0, len(rows))
	for _, r := range rows {
		out = append(out, GeneExpressionValue{
			ExpressionValue: shapeExpression(scope, r),
			Gene:            shapeShortGene(geneMap[r.NodeID]),
		})
	}
	return out, nil
}

// GetTranscriptExpression is the transcript-level counterpart of
// GetGeneExpression.
func GetTranscriptExpression(ctx context.Context, sdb *db.SpongeDB, req request.Expression) ([]TranscriptExpressionValue, error) {
	scope, err := ResolveScope(ctx, sdb, req.Scope)
	if err != nil {
		return nil, err
	}

	transcripts, err := ResolveTranscripts(ctx, sdb, req.ENSTNumbers, false)
	if err != nil {
		return nil, err
	}

	rows, err := sdb.TranscriptExpression(ctx, scope.DatasetIDs(), transcriptIDs(transcripts))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No expression data found for the given parameters")
	}
	if req.Cluster {
		if rows, err = clusterExpression(rows); err != nil {
			return nil, err
		}
	}

	transcriptMap, err := sdb.TranscriptsByIDs(ctx, expressionNodeIDs(rows))
	if err != nil {
		return nil, err
	}
	out := make([]TranscriptExpressionValue, 0, len(rows))
	for _, r := range rows {
		out = append(out, TranscriptExpressionValue{
			ExpressionValue: shapeExpression(scope, r),
			Transcript:      shapeShortTranscript(transcriptMap[r.NodeID]),
		})
	}
	return out, nil
}

// GetMirnaExpression returns miRNA expression under scope. miRNA heatmaps
// are not clustered.
func GetMirnaExpression(ctx context.Context, sdb *db.SpongeDB, req request.Expression) ([]MirnaExpressionValue, error) {
	scope, err := ResolveScope(ctx, sdb, req.Scope)
	if err != nil {
		return nil, err
	}

	mirnas, err := ResolveMirnas(ctx, sdb, req.Mimats, req.HsNumbers, false)
	if err != nil {
		return nil, err
	}

	rows, err := sdb.MirnaExpression(ctx, scope.DatasetIDs(), mirnaIDs(mirnas))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No expression data found for the given parameters")
	}

	mirnaMap, err := sdb.MirnasByIDs(ctx, expressionNodeIDs(rows))
	if err != nil {
		return nil, err
	}
	out := make([]MirnaExpressionValue, 0, len(rows))
	for _, r := range rows {
		out = append(out, MirnaExpressionValue{
			ExpressionValue: shapeExpression(scope, r),
			Mirna:           shapeShortMirna(mirnaMap[r.NodeID]),
		})
	}
	return out, nil
}

func shapeExpression(scope *Scope, r db.ExpressionRow) ExpressionValue {
	v := ExpressionValue{SampleID: r.SampleID, Value: r.Value}
	if d, ok := scope.Datasets[r.DatasetID]; ok {
		v.Dataset = shapeDataset(d)
	}
	return v
}

func expressionNodeIDs(rows []db.ExpressionRow) []int64 {
	seen := make(map[int64]bool, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		if !seen[r.NodeID] {
			seen[r.NodeID] = true
			ids = append(ids, r.NodeID)
		}
	}
	return ids
}

// clusterExpression pivots the long-form rows into a node x sample matrix,
// clusters both axes and melts back in leaf order. Missing cells stay
// zero, matching an unmeasured pair. The returned rows are exactly the
// input rows reordered.
func clusterExpression(rows []db.ExpressionRow) ([]db.ExpressionRow, error) {
	nodeIdx := make(map[int64]int)
	sampleIdx := make(map[string]int)
	var nodes []int64
	var samples []string
	for _, r := range rows {
		if _, ok := nodeIdx[r.NodeID]; !ok {
			nodeIdx[r.NodeID] = len(nodes)
			nodes = append(nodes, r.NodeID)
		}
		if _, ok := sampleIdx[r.SampleID]; !ok {
			sampleIdx[r.SampleID] = len(samples)
			samples = append(samples, r.SampleID)
		}
	}

	matrix := mat.NewDense(len(nodes), len(samples), nil)
	cell := make(map[[2]int]db.ExpressionRow, len(rows))
	for _, r := range rows {
		i, j := nodeIdx[r.NodeID], sampleIdx[r.SampleID]
		matrix.Set(i, j, r.Value)
		cell[[2]int{i, j}] = r
	}

	nodeOrder, err := WardLeafOrder(matrix)
	if err != nil {
		return nil, err
	}
	var transposed mat.Dense
	transposed.CloneFrom(matrix.T())
	sampleOrder, err := WardLeafOrder(&transposed)
	if err != nil {
		return nil, err
	}

	out := make([]db.ExpressionRow, 0, len(rows))
	for _, i := range nodeOrder {
		for _, j := range sampleOrder {
			if r, ok := cell[[2]int{i, j}]; ok {
				out = append(out, r)
			}
		}
	}
	return out, nil
}
