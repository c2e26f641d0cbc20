package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/params"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

func TestCheckLimit(t *testing.T) {
	require.NoError(t, CheckLimit(MaxLimit))
	err := CheckLimit(MaxLimit + 1)
	require.True(t, errors.Is(err, apierr.ErrLimitTooHigh))
}

func TestBuildStatFiltersDefaultsPValue(t *testing.T) {
	filters, err := BuildStatFilters(request.Cutoffs{})
	require.NoError(t, err)
	require.Len(t, filters, 1)
	require.Equal(t, "p_value", filters[0].Column)
	require.Equal(t, "<", filters[0].Op)
	require.InDelta(t, DefaultPValueCutoff, filters[0].Value, 1e-12)
}

func TestBuildStatFiltersRejectsUnknownDirection(t *testing.T) {
	m := 0.1
	_, err := BuildStatFilters(request.Cutoffs{
		Mscor:    &m,
		MscorDir: params.CutoffDirectionUnknown,
	})
	require.True(t, errors.Is(err, apierr.ErrBadDirection))
}

func TestInteractionSortUnknownKey(t *testing.T) {
	_, err := InteractionSort("degree", params.SortDesc)
	require.True(t, errors.Is(err, apierr.ErrBadSort))

	key, err := InteractionSort("", params.SortDesc)
	require.NoError(t, err)
	require.Nil(t, key)
}

func analysisRow(nodeID int64, betweenness, degree float64) db.NetworkAnalysisRow {
	return db.NetworkAnalysisRow{NodeID: nodeID, Betweenness: betweenness, NodeDegree: degree}
}

func TestRankByMeanRank(t *testing.T) {
	rows := []db.NetworkAnalysisRow{
		analysisRow(1, 0.1, 10),
		analysisRow(2, 0.9, 2),
		analysisRow(3, 0.5, 8),
	}
	keys := []params.CentralityField{params.CentralityFieldBetweenness, params.CentralityFieldDegree}

	// Per-key ranks: betweenness 2>3>1, degree 1>3>2. Means: node 3 = 2,
	// nodes 1 and 2 = 2 as well, so the id tiebreak decides.
	ordered := RankByMeanRank(rows, keys)
	require.Len(t, ordered, 3)
	require.EqualValues(t, 1, ordered[0].NodeID)
	require.EqualValues(t, 2, ordered[1].NodeID)
	require.EqualValues(t, 3, ordered[2].NodeID)
}

func TestRankByMeanRankTiesShareRank(t *testing.T) {
	rows := []db.NetworkAnalysisRow{
		analysisRow(1, 0.5, 0),
		analysisRow(2, 0.5, 0),
		analysisRow(3, 0.9, 0),
	}
	keys := []params.CentralityField{params.CentralityFieldBetweenness}

	// Nodes 1 and 2 tie on the key and share rank 2; node 3 leads.
	ordered := RankByMeanRank(rows, keys)
	require.EqualValues(t, 3, ordered[0].NodeID)
	require.EqualValues(t, 1, ordered[1].NodeID)
	require.EqualValues(t, 2, ordered[2].NodeID)
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	require.Equal(t, []int{3, 4}, Page(items, 2, 2))
	require.Equal(t, []int{5}, Page(items, 4, 10))
	require.Nil(t, Page(items, 5, 10))
}
