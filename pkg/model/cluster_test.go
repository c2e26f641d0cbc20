package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
)

func TestWardLeafOrderSingleRow(t *testing.T) {
	order, err := WardLeafOrder(mat.NewDense(1, 3, []float64{1, 2, 3}))
	require.NoError(t, err)
	require.Equal(t, []int{0}, order)
}

func TestWardLeafOrderGroupsNearRows(t *testing.T) {
	// Rows 0 and 2 are close, row 1 is far away; the dendrogram walk must
	// keep the close pair adjacent.
	m := mat.NewDense(3, 2, []float64{
		0, 0,
		10, 10,
		1, 0,
	})
	order, err := WardLeafOrder(m)
	require.NoError(t, err)
	require.ElementsMatch(t, []int{0, 1, 2}, order)

	pos := make(map[int]int, 3)
	for i, leaf := range order {
		pos[leaf] = i
	}
	require.Equal(t, 1, abs(pos[0]-pos[2]))
}

func TestWardLeafOrderIsPermutation(t *testing.T) {
	m := mat.NewDense(5, 3, []float64{
		0, 1, 2,
		9, 8, 7,
		0, 1, 3,
		9, 9, 7,
		5, 5, 5,
	})
	order, err := WardLeafOrder(m)
	require.NoError(t, err)
	require.ElementsMatch(t, []int{0, 1, 2, 3, 4}, order)
}

func TestWardLeafOrderRejectsDegenerateInput(t *testing.T) {
	_, err := WardLeafOrder(mat.NewDense(1, 1, []float64{math.NaN()}))
	require.True(t, errors.Is(err, apierr.ErrNumericalFailed))
	require.Equal(t, 500, apierr.Status(err))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
