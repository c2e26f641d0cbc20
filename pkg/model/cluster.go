package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
)

// Ward-linkage hierarchical clustering over the rows of a dense matrix.
// Used by the expression shaper to reorder heatmap axes into dendrogram
// leaf order. Agglomeration uses the Lance-Williams update for Ward's
// criterion, so the full distance matrix is updated in place and no
// cluster centroids need recomputing.

type wardCluster struct {
	size   int
	left   int // child cluster index, -1 for a leaf
	right  int
	leaf   int // row index when this cluster is a leaf
	active bool
}

// WardLeafOrder clusters the rows of m and returns the row indices in
// dendrogram leaf order. A matrix with non-finite entries or fewer than
// one row is rejected as degenerate.
func WardLeafOrder(m *mat.Dense) ([]int, error) {
	rows, cols := m.Dims()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("Cannot cluster an empty matrix: %w", apierr.ErrNumericalFailed)
	}
	for i := 0; i < rows; i++ {
		row := m.RawRowView(i)
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("Cannot cluster a matrix with non-finite values: %w",
					apierr.ErrNumericalFailed)
			}
		}
	}
	if rows == 1 {
		return []int{0}, nil
	}

	// Pairwise squared euclidean distances between rows.
	dist := make([][]float64, rows)
	for i := range dist {
		dist[i] = make([]float64, rows)
	}
	scratch := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := i + 1; j < rows; j++ {
			floats.SubTo(scratch, m.RawRowView(i), m.RawRowView(j))
			d := floats.Dot(scratch, scratch)
			dist[i][j] = d
			dist[j][i] = d
		}
	}

	clusters := make([]wardCluster, rows, 2*rows-1)
	for i := range clusters {
		clusters[i] = wardCluster{size: 1, left: -1, right: -1, leaf: i, active: true}
	}
	// index into dist for each cluster; merged clusters reuse a slot
	slot := make([]int, rows, 2*rows-1)
	for i := range slot {
		slot[i] = i
	}

	for merged := 0; merged < rows-1; merged++ {
		// nearest active pair
		bestI, bestJ := -1, -1
		best := math.Inf(1)
		for i := range clusters {
			if !clusters[i].active {
				continue
			}
			for j := i + 1; j < len(clusters); j++ {
				if !clusters[j].active {
					continue
				}
				if d := dist[slot[i]][slot[j]]; d < best {
					best, bestI, bestJ = d, i, j
				}
			}
		}

		ni := float64(clusters[bestI].size)
		nj := float64(clusters[bestJ].size)
		parent := wardCluster{
			size:   clusters[bestI].size + clusters[bestJ].size,
			left:   bestI,
			right:  bestJ,
			leaf:   -1,
			active: true,
		}
		clusters[bestI].active = false
		clusters[bestJ].active = false

		// Lance-Williams update for Ward's method, written into bestI's
		// slot which the parent takes over.
		si, sj := slot[bestI], slot[bestJ]
		for k := range clusters {
			if !clusters[k].active {
				continue
			}
			nk := float64(clusters[k].size)
			total := ni + nj + nk
			sk := slot[k]
			d := ((ni+nk)*dist[si][sk] + (nj+nk)*dist[sj][sk] - nk*best) / total
			dist[si][sk] = d
			dist[sk][si] = d
		}

		clusters = append(clusters, parent)
		slot = append(slot, si)
	}

	// Leaf order is a depth-first walk from the root, which is the last
	// cluster created.
	order := make([]int, 0, rows)
	var walk func(int)
	walk = func(c int) {
		if clusters[c].leaf >= 0 {
			order = append(order, clusters[c].leaf)
			return
		}
		walk(clusters[c].left)
		walk(clusters[c].right)
	}
	walk(len(clusters) - 1)
	return order, nil
}
