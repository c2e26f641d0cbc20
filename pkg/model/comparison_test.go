package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/params"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

func breastVsLung() request.ComparisonSelect {
	return request.ComparisonSelect{
		DiseaseName1: "breast",
		DiseaseName2: "lung",
		Condition1:   "disease",
		Condition2:   "disease",
		Version:      params.VersionLatest,
	}
}

func lungVsBreast() request.ComparisonSelect {
	sel := breastVsLung()
	sel.DiseaseName1, sel.DiseaseName2 = sel.DiseaseName2, sel.DiseaseName1
	return sel
}

func TestResolveComparisonForward(t *testing.T) {
	sdb := newTestDB(t)

	match, err := ResolveComparison(testCtx(), sdb, breastVsLung())
	require.NoError(t, err)
	require.False(t, match.Reverse)
	require.EqualValues(t, 1, match.Row.ComparisonID)
}

func TestResolveComparisonReverse(t *testing.T) {
	sdb := newTestDB(t)

	match, err := ResolveComparison(testCtx(), sdb, lungVsBreast())
	require.NoError(t, err)
	require.True(t, match.Reverse)
	require.EqualValues(t, 1, match.Row.ComparisonID)
}

func TestResolveComparisonNoMatchIsNoContent(t *testing.T) {
	sdb := newTestDB(t)

	sel := breastVsLung()
	sel.Condition1 = "healthy"
	_, err := ResolveComparison(testCtx(), sdb, sel)
	require.True(t, errors.Is(err, apierr.ErrNoComparison))
	require.Equal(t, 200, apierr.Status(err))
}

func TestGeneDifferentialExpressionForward(t *testing.T) {
	sdb := newTestDB(t)

	out, err := GetGeneDifferentialExpression(testCtx(), sdb, request.DifferentialExpression{
		Comparison:  breastVsLung(),
		ENSGNumbers: []string{"ENSG00000000001"},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.InDelta(t, 1.5, out[0].Log2FoldChange, 1e-9)
	require.InDelta(t, 2.0, out[0].Stat, 1e-9)
}

func TestGeneDifferentialExpressionReverseFlipsSigns(t *testing.T) {
	sdb := newTestDB(t)

	out, err := GetGeneDifferentialExpression(testCtx(), sdb, request.DifferentialExpression{
		Comparison:  lungVsBreast(),
		ENSGNumbers: []string{"ENSG00000000001"},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)

	// Signed statistics flip; base mean and p-values are orientation free.
	require.InDelta(t, -1.5, out[0].Log2FoldChange, 1e-9)
	require.InDelta(t, -2.0, out[0].Stat, 1e-9)
	require.InDelta(t, 120.5, out[0].BaseMean, 1e-9)
	require.InDelta(t, 0.001, out[0].PValue, 1e-9)
}

func TestListComparisons(t *testing.T) {
	sdb := newTestDB(t)

	out, err := ListComparisons(testCtx(), sdb, params.VersionLatest)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "breast invasive carcinoma", out[0].Dataset1.DiseaseName)
	require.Equal(t, "lung adenocarcinoma", out[0].Dataset2.DiseaseName)
}
