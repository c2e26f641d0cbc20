package model

import (
	"context"
	"sort"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

// Network assembler. Builds a bounded, coherent graph slice from separate
// node and edge predicates without materializing the whole filtered graph.
//
// The phase order is load-bearing:
//  1. edge prefilter under scope + p-value cutoff alone -> candidate
//     endpoint set V0 (ids only, edges stay in the store);
//  2. node filter + multi-key mean-rank over V0, then node pagination
//     -> final node set V;
//  3. edges restricted to both-endpoints-in-V, remaining cutoffs, edge
//     sort, edge pagination.
// Node pagination precedes the edge cross-filter so returned nodes are
// never ghost endpoints of unreturned edges, and the edge list is not
// re-expanded afterwards.

// GeneNetwork is the gene-level graph slice.
type GeneNetwork struct {
	Edges []GeneInteraction `json:"edges"`
	Nodes []CeRNAGene       `json:"nodes"`
}

// TranscriptNetwork is the transcript-level graph slice.
type TranscriptNetwork struct {
	Edges []TranscriptInteraction `json:"edges"`
	Nodes []CeRNATranscript       `json:"nodes"`
}

type networkLevel struct {
	endpointIDs     func(ctx context.Context, runIDs []int64, filters []db.Filter) ([]int64, error)
	networkAnalysis func(ctx context.Context, runIDs, nodeIDs []int64, filters []db.Filter, sort *db.Sort, limit, offset int) ([]db.NetworkAnalysisRow, error)
	edgesAmong      func(ctx context.Context, runIDs, nodeIDs []int64, filters []db.Filter, sort *db.Sort, limit, offset int) ([]db.InteractionRow, error)
}

// assembleNetwork runs the three phases and returns the edge rows and the
// ranked node rows of the slice.
func assembleNetwork(ctx context.Context, level networkLevel, scope *Scope, req request.Network) ([]db.InteractionRow, []db.NetworkAnalysisRow, error) {
	prefilter, err := PValueOnlyFilter(req.Cutoffs)
	if err != nil {
		return nil, nil, err
	}

	// Phase 1: candidate endpoints of the prefiltered edge set.
	candidates, err := level.endpointIDs(ctx, scope.RunIDs(), prefilter)
	if err != nil {
		return nil, nil, err
	}
	if len(candidates) == 0 {
		return nil, nil, apierr.NotFoundf("No interactions pass the p-value cutoff in the given scope")
	}

	// Phase 2: node filter, multi-key rank, node page.
	nodeKeys, err := CentralityKeys(req.NodeSortings)
	if err != nil {
		return nil, nil, err
	}
	nodeFilters := BuildCentralityFilters(req.Minima)

	nodeRows, err := level.networkAnalysis(ctx, scope.RunIDs(), candidates, nodeFilters, nil, -1, 0)
	if err != nil {
		return nil, nil, err
	}
	if len(nodeKeys) > 0 {
		nodeRows = RankByMeanRank(nodeRows, nodeKeys)
	} else {
		sort.SliceStable(nodeRows, func(a, b int) bool {
			return nodeRows[a].NodeID < nodeRows[b].NodeID
		})
	}
	nodeRows = Page(nodeRows, req.OffsetNodes, req.MaxNodes)
	if len(nodeRows) == 0 {
		return nil, nil, apierr.NotFoundf("No nodes pass the centrality minima in the given scope")
	}

	finalNodeIDs := make([]int64, len(nodeRows))
	for i, r := range nodeRows {
		finalNodeIDs[i] = r.NodeID
	}

	// Phase 3: cross-filter edges to the paged node set, apply the
	// remaining cutoffs, sort and page.
	remaining, err := RemainingEdgeFilters(req.Cutoffs)
	if err != nil {
		return nil, nil, err
	}
	edgeFilters := append(prefilter, remaining...)
	edgeSort, err := InteractionSort(req.EdgeSorting, req.SortDirection)
	if err != nil {
		return nil, nil, err
	}

	edgeRows, err := level.edgesAmong(ctx, scope.RunIDs(), finalNodeIDs, edgeFilters, edgeSort, req.MaxEdges, req.OffsetEdges)
	if err != nil {
		return nil, nil, err
	}
	return edgeRows, nodeRows, nil
}

func checkNetworkRequest(req request.Network) error {
	if err := CheckLimit(req.MaxNodes); err != nil {
		return err
	}
	return CheckLimit(req.MaxEdges)
}

// GetGeneNetwork assembles the gene-level slice.
func GetGeneNetwork(ctx context.Context, sdb *db.SpongeDB, req request.Network) (*GeneNetwork, error) {
	if err := checkNetworkRequest(req); err != nil {
		return nil, err
	}
	scope, err := ResolveScope(ctx, sdb, req.Scope)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireRuns(); err != nil {
		return nil, err
	}

	level := networkLevel{
		endpointIDs:     sdb.GeneEndpointIDs,
		networkAnalysis: sdb.GeneNetworkAnalysis,
		edgesAmong:      sdb.GeneInteractionsAmong,
	}
	edgeRows, nodeRows, err := assembleNetwork(ctx, level, scope, req)
	if err != nil {
		return nil, err
	}

	nodeIDs := make([]int64, len(nodeRows))
	for i, r := range nodeRows {
		nodeIDs[i] = r.NodeID
	}
	genes, err := sdb.GenesByIDs(ctx, nodeIDs)
	if err != nil {
		return nil, err
	}

	network := &GeneNetwork{
		Edges: shapeGeneInteractions(scope, edgeRows, genes),
		Nodes: make([]CeRNAGene, 0, len(nodeRows)),
	}
	for _, r := range nodeRows {
		network.Nodes = append(network.Nodes, CeRNAGene{
			Run:         shapeRun(scope, r.SpongeRunID),
			Gene:        shapeShortGene(genes[r.NodeID]),
			Betweenness: r.Betweenness,
			NodeDegree:  r.NodeDegree,
			Eigenvector: r.Eigenvector,
		})
	}
	return network, nil
}

// GetTranscriptNetwork assembles the transcript-level slice.
func GetTranscriptNetwork(ctx context.Context, sdb *db.SpongeDB, req request.Network) (*TranscriptNetwork, error) {
	if err := checkNetworkRequest(req); err != nil {
		return nil, err
	}
	scope, err := ResolveScope(ctx, sdb, req.Scope)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireRuns(); err != nil {
		return nil, err
	}

	level := networkLevel{
		endpointIDs:     sdb.TranscriptEndpointIDs,
		networkAnalysis: sdb.TranscriptNetworkAnalysis,
		edgesAmong:      sdb.TranscriptInteractionsAmong,
	}
	edgeRows, nodeRows, err := assembleNetwork(ctx, level, scope, req)
	if err != nil {
		return nil, err
	}

	nodeIDs := make([]int64, len(nodeRows))
	for i, r := range nodeRows {
		nodeIDs[i] = r.NodeID
	}
	transcripts, err := sdb.TranscriptsByIDs(ctx, nodeIDs)
	if err != nil {
		return nil, err
	}

	network := &TranscriptNetwork{
		Edges: shapeTranscriptInteractions(scope, edgeRows, transcripts),
		Nodes: make([]CeRNATranscript, 0, len(nodeRows)),
	}
	for _, r := range nodeRows {
		network.Nodes = append(network.Nodes, CeRNATranscript{
			Run:         shapeRun(scope, r.SpongeRunID),
			Transcript:  shapeShortTranscript(transcripts[r.NodeID]),
			Betweenness: r.Betweenness,
			NodeDegree:  r.NodeDegree,
			Eigenvector: r.Eigenvector,
		})
	}
	return network, nil
}
