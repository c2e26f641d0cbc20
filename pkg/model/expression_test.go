package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

func TestGetGeneExpression(t *testing.T) {
	sdb := newTestDB(t)

	out, err := GetGeneExpression(testCtx(), sdb, request.Expression{
		Scope:       geneScope(),
		ENSGNumbers: []string{"ENSG00000000001", "ENSG00000000002"},
	})
	require.NoError(t, err)
	require.Len(t, out, 4)
	require.Equal(t, "breast invasive carcinoma", out[0].Dataset.DiseaseName)
	require.Equal(t, "TCGA-01", out[0].SampleID)
	require.InDelta(t, 5.0, out[0].Value, 1e-9)
}

type exprPair struct {
	node   int64
	sample string
}

func pairSet(rows []db.ExpressionRow) map[exprPair]float64 {
	out := make(map[exprPair]float64, len(rows))
	for _, r := range rows {
		out[exprPair{r.NodeID, r.SampleID}] = r.Value
	}
	return out
}

func TestClusterExpressionReordersSamePairs(t *testing.T) {
	rows := []db.ExpressionRow{
		{DatasetID: 1, NodeID: 1, SampleID: "s1", Value: 5.0},
		{DatasetID: 1, NodeID: 1, SampleID: "s2", Value: 5.2},
		{DatasetID: 1, NodeID: 1, SampleID: "s3", Value: 0.1},
		{DatasetID: 1, NodeID: 2, SampleID: "s1", Value: 4.9},
		{DatasetID: 1, NodeID: 2, SampleID: "s2", Value: 5.1},
		{DatasetID: 1, NodeID: 2, SampleID: "s3", Value: 0.2},
		{DatasetID: 1, NodeID: 3, SampleID: "s1", Value: 0.0},
		{DatasetID: 1, NodeID: 3, SampleID: "s2", Value: 0.1},
		{DatasetID: 1, NodeID: 3, SampleID: "s3", Value: 9.0},
	}

	clustered, err := clusterExpression(rows)
	require.NoError(t, err)

	// Clustering reorders the series; it never invents, drops or changes
	// a measurement.
	require.Len(t, clustered, len(rows))
	require.Equal(t, pairSet(rows), pairSet(clustered))

	// Nodes 1 and 2 are near-identical profiles and must come out
	// adjacent on the node axis.
	firstIdx := make(map[int64]int)
	for i, r := range clustered {
		if _, ok := firstIdx[r.NodeID]; !ok {
			firstIdx[r.NodeID] = i
		}
	}
	require.Equal(t, 3, abs(firstIdx[1]-firstIdx[2]))
}

func TestClusterExpressionSparseInputKeepsOnlyMeasuredCells(t *testing.T) {
	rows := []db.ExpressionRow{
		{DatasetID: 1, NodeID: 1, SampleID: "s1", Value: 1.0},
		{DatasetID: 1, NodeID: 2, SampleID: "s2", Value: 2.0},
	}

	clustered, err := clusterExpression(rows)
	require.NoError(t, err)
	require.Len(t, clustered, 2)
	require.Equal(t, pairSet(rows), pairSet(clustered))
}
