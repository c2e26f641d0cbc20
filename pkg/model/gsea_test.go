package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
)

func TestOrientGsea(t *testing.T) {
	row := db.GseaRow{ES: 0.6, NES: 1.8, PValue: 0.01}

	forward := orientGsea(row, false)
	require.Equal(t, row, forward)

	reversed := orientGsea(row, true)
	require.InDelta(t, -0.6, reversed.ES, 1e-9)
	require.InDelta(t, -1.8, reversed.NES, 1e-9)
	require.InDelta(t, 0.01, reversed.PValue, 1e-9)
}

func TestOrientSeries(t *testing.T) {
	series := []float64{0.1, 0.4, 0.2, -0.3}

	require.Equal(t, series, orientSeries(series, false))
	require.Equal(t, []float64{0.3, -0.2, -0.4, -0.1}, orientSeries(series, true))
}

func TestOrientGeneOrder(t *testing.T) {
	ids := []int64{7, 3, 9}
	require.Equal(t, ids, orientGeneOrder(ids, false))
	require.Equal(t, []int64{9, 3, 7}, orientGeneOrder(ids, true))

	// The input slice is never mutated.
	require.Equal(t, []int64{7, 3, 9}, ids)
}
