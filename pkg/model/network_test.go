package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

func TestGetGeneNetworkCoherent(t *testing.T) {
	sdb := newTestDB(t)

	net, err := GetGeneNetwork(testCtx(), sdb, request.Network{
		Scope:    geneScope(),
		MaxNodes: 100,
		MaxEdges: 100,
	})
	require.NoError(t, err)

	// Candidates are the endpoints of edges passing p < 0.05: all four
	// genes (3-4 passes at p=0.04).
	require.Len(t, net.Nodes, 4)
	require.Len(t, net.Edges, 3)

	// Every edge endpoint must be a returned node.
	nodes := make(map[string]bool, len(net.Nodes))
	for _, n := range net.Nodes {
		nodes[n.Gene.ENSGNumber] = true
	}
	for _, e := range net.Edges {
		require.True(t, nodes[e.Gene1.ENSGNumber])
		require.True(t, nodes[e.Gene2.ENSGNumber])
	}
}

func TestGetGeneNetworkNodePaginationDropsEdges(t *testing.T) {
	sdb := newTestDB(t)

	// Without node sort keys nodes come back in id order; the first two
	// are genes 1 and 2, so the only returned edge is 1-2.
	net, err := GetGeneNetwork(testCtx(), sdb, request.Network{
		Scope:    geneScope(),
		MaxNodes: 2,
		MaxEdges: 100,
	})
	require.NoError(t, err)
	require.Len(t, net.Nodes, 2)
	require.Len(t, net.Edges, 1)
	require.Equal(t, "ENSG00000000001", net.Edges[0].Gene1.ENSGNumber)
	require.Equal(t, "ENSG00000000002", net.Edges[0].Gene2.ENSGNumber)
}

func TestGetGeneNetworkRankedNodeOrder(t *testing.T) {
	sdb := newTestDB(t)

	// Centralities rank gene 1 first on both keys, then 3, then 2, then 4.
	net, err := GetGeneNetwork(testCtx(), sdb, request.Network{
		Scope:        geneScope(),
		NodeSortings: []string{"betweenness", "degree"},
		MaxNodes:     3,
		MaxEdges:     100,
	})
	require.NoError(t, err)
	require.Len(t, net.Nodes, 3)
	require.Equal(t, "ENSG00000000001", net.Nodes[0].Gene.ENSGNumber)
	require.Equal(t, "ENSG00000000003", net.Nodes[1].Gene.ENSGNumber)
	require.Equal(t, "ENSG00000000002", net.Nodes[2].Gene.ENSGNumber)
}

func TestGetGeneNetworkCentralityMinima(t *testing.T) {
	sdb := newTestDB(t)

	minDegree := 7.0
	net, err := GetGeneNetwork(testCtx(), sdb, request.Network{
		Scope:    geneScope(),
		Minima:   request.Minima{NodeDegree: &minDegree},
		MaxNodes: 100,
		MaxEdges: 100,
	})
	require.NoError(t, err)
	require.Len(t, net.Nodes, 3)
	for _, n := range net.Nodes {
		require.GreaterOrEqual(t, n.NodeDegree, minDegree)
	}
	// Gene 4 fell below the minimum, so its edge to gene 3 is gone.
	require.Len(t, net.Edges, 2)
}
