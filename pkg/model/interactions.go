package model

import (
	"context"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/params"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

// Query engine for the ceRNA interaction endpoints.

// GeneInteraction is an edge of the gene-level response schema.
type GeneInteraction struct {
	Run         RunInfo   `json:"sponge_run"`
	Gene1       ShortGene `json:"gene1"`
	Gene2       ShortGene `json:"gene2"`
	Correlation float64   `json:"correlation"`
	Mscor       float64   `json:"mscor"`
	PValue      float64   `json:"p_value"`
}

// TranscriptInteraction mirrors GeneInteraction at transcript level.
type TranscriptInteraction struct {
	Run         RunInfo         `json:"sponge_run"`
	Transcript1 ShortTranscript `json:"transcript1"`
	Transcript2 ShortTranscript `json:"transcript2"`
	Correlation float64         `json:"correlation"`
	Mscor       float64         `json:"mscor"`
	PValue      float64         `json:"p_value"`
}

func shapeGeneInteractions(scope *Scope, rows []db.InteractionRow, genes map[int64]db.Gene) []GeneInteraction {
	out := make([]GeneInteraction, 0, len(rows))
	for _, r := range rows {
		out = append(out, GeneInteraction{
			Run:         shapeRun(scope, r.SpongeRunID),
			Gene1:       shapeShortGene(genes[r.Node1ID]),
			Gene2:       shapeShortGene(genes[r.Node2ID]),
			Correlation: r.Correlation,
			Mscor:       r.Mscor,
			PValue:      r.PValue,
		})
	}
	return out
}

func shapeTranscriptInteractions(scope *Scope, rows []db.InteractionRow, transcripts map[int64]db.Transcript) []TranscriptInteraction {
	out := make([]TranscriptInteraction, 0, len(rows))
	for _, r := range rows {
		out = append(out, TranscriptInteraction{
			Run:         shapeRun(scope, r.SpongeRunID),
			Transcript1: shapeShortTranscript(transcripts[r.Node1ID]),
			Transcript2: shapeShortTranscript(transcripts[r.Node2ID]),
			Correlation: r.Correlation,
			Mscor:       r.Mscor,
			PValue:      r.PValue,
		})
	}
	return out
}

func edgeNodeIDs(rows []db.InteractionRow) []int64 {
	seen := make(map[int64]bool, len(rows)*2)
	var ids []int64
	for _, r := range rows {
		if !seen[r.Node1ID] {
			seen[r.Node1ID] = true
			ids = append(ids, r.Node1ID)
		}
		if !seen[r.Node2ID] {
			seen[r.Node2ID] = true
			ids = append(ids, r.Node2ID)
		}
	}
	return ids
}

// FindAllGeneInteractions returns edges where either endpoint is one of
// the (optionally) requested genes, under scope and cutoffs.
func FindAllGeneInteractions(ctx context.Context, sdb *db.SpongeDB, req request.InteractionFindAll) ([]GeneInteraction, error) {
	if err := CheckLimit(req.Limit); err != nil {
		return nil, err
	}
	scope, err := ResolveScope(ctx, sdb, req.Scope)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireRuns(); err != nil {
		return nil, err
	}

	genes, err := ResolveGenes(ctx, sdb, req.ENSGNumbers, req.GeneSymbols, false)
	if err != nil {
		return nil, err
	}

	filters, err := BuildStatFilters(req.Cutoffs)
	if err != nil {
		return nil, err
	}
	sortKey, err := InteractionSort(req.Sorting, req.SortDirection)
	if err != nil {
		return nil, err
	}

	rows, err := sdb.GeneInteractionsInvolving(ctx, scope.RunIDs(), geneIDs(genes), filters, sortKey, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No interactions found for the given parameters")
	}

	geneMap, err := sdb.GenesByIDs(ctx, edgeNodeIDs(rows))
	if err != nil {
		return nil, err
	}
	return shapeGeneInteractions(scope, rows, geneMap), nil
}

// FindSpecificGeneInteractions returns edges whose both endpoints are in
// the resolved gene set. At least two genes are required for an edge to
// exist inside the set.
func FindSpecificGeneInteractions(ctx context.Context, sdb *db.SpongeDB, req request.InteractionFindSpecific) ([]GeneInteraction, error) {
	if err := CheckLimit(req.Limit); err != nil {
		return nil, err
	}
	scope, err := ResolveScope(ctx, sdb, req.Scope)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireRuns(); err != nil {
		return nil, err
	}

	genes, err := ResolveGenes(ctx, sdb, req.ENSGNumbers, req.GeneSymbols, true)
	if err != nil {
		return nil, err
	}
	if len(genes) < 2 {
		return nil, apierr.NotFoundf("Less than two genes could be resolved, no edge can lie inside the set")
	}

	filters, err := BuildStatFilters(req.Cutoffs)
	if err != nil {
		return nil, err
	}
	sortKey, err := InteractionSort(req.Sorting, req.SortDirection)
	if err != nil {
		return nil, err
	}

	rows, err := sdb.GeneInteractionsAmong(ctx, scope.RunIDs(), geneIDs(genes), filters, sortKey, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No interactions found between the given genes")
	}

	geneMap, err := sdb.GenesByIDs(ctx, edgeNodeIDs(rows))
	if err != nil {
		return nil, err
	}
	return shapeGeneInteractions(scope, rows, geneMap), nil
}

// CeRNAGene is a node row of the gene-level network-analysis response.
type CeRNAGene struct {
	Run         RunInfo   `json:"sponge_run"`
	Gene        ShortGene `json:"gene"`
	Betweenness float64   `json:"betweenness"`
	NodeDegree  float64   `json:"node_degree"`
	Eigenvector float64   `json:"eigenvector"`
}

// FindCeRNAGenes returns node-level network analysis rows under scope and
// centrality minima.
func FindCeRNAGenes(ctx context.Context, sdb *db.SpongeDB, req request.CeRNAFind) ([]CeRNAGene, error) {
	if err := CheckLimit(req.Limit); err != nil {
		return nil, err
	}
	scope, err := ResolveScope(ctx, sdb, req.Scope)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireRuns(); err != nil {
		return nil, err
	}

	genes, err := ResolveGenes(ctx, sdb, req.ENSGNumbers, req.GeneSymbols, false)
	if err != nil {
		return nil, err
	}

	filters := BuildCentralityFilters(req.Minima)
	sortKey, err := CentralitySort(req.Sorting, req.SortDirection)
	if err != nil {
		return nil, err
	}

	rows, err := sdb.GeneNetworkAnalysis(ctx, scope.RunIDs(), geneIDs(genes), filters, sortKey, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No network analysis results for the given parameters")
	}

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.NodeID
	}
	geneMap, err := sdb.GenesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]CeRNAGene, 0, len(rows))
	for _, r := range rows {
		out = append(out, CeRNAGene{
			Run:         shapeRun(scope, r.SpongeRunID),
			Gene:        shapeShortGene(geneMap[r.NodeID]),
			Betweenness: r.Betweenness,
			NodeDegree:  r.NodeDegree,
			Eigenvector: r.Eigenvector,
		})
	}
	return out, nil
}

// InteractionPresence flags, per sponge run, whether a node has at least
// one edge in that run.
type InteractionPresence struct {
	Run            RunInfo `json:"sponge_run"`
	HasInteraction bool    `json:"has_interaction"`
}

// CheckGeneInteraction reports edge presence for one gene across every
// run at the requested version. One grouped scan of the edge table, then
// a linear pass over the runs.
func CheckGeneInteraction(ctx context.Context, sdb *db.SpongeDB, req request.InteractionCheck) ([]InteractionPresence, error) {
	genes, err := ResolveGenes(ctx, sdb, req.ENSGNumbers, req.GeneSymbols, true)
	if err != nil {
		return nil, err
	}
	if len(genes) != 1 {
		return nil, apierr.BadRequestf(apierr.ErrAmbiguousIdentifier,
			"Exactly one gene is expected for the interaction check")
	}

	version, err := concreteVersion(ctx, sdb, req.Version)
	if err != nil {
		return nil, err
	}

	runs, err := sdb.AllSpongeRuns(ctx, version)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, apierr.BadRequestf(apierr.ErrScopeEmpty, "No sponge run found at the requested version")
	}
	present, err := sdb.RunsWithGeneInteraction(ctx, genes[0].GeneID, version)
	if err != nil {
		return nil, err
	}

	return shapePresence(ctx, sdb, runs, present)
}

// CheckTranscriptInteraction mirrors CheckGeneInteraction.
func CheckTranscriptInteraction(ctx context.Context, sdb *db.SpongeDB, req request.InteractionCheck) ([]InteractionPresence, error) {
	transcripts, err := ResolveTranscripts(ctx, sdb, req.ENSTNumbers, true)
	if err != nil {
		return nil, err
	}
	if len(transcripts) != 1 {
		return nil, apierr.BadRequestf(apierr.ErrAmbiguousIdentifier,
			"Exactly one transcript is expected for the interaction check")
	}

	version, err := concreteVersion(ctx, sdb, req.Version)
	if err != nil {
		return nil, err
	}

	runs, err := sdb.AllSpongeRuns(ctx, version)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, apierr.BadRequestf(apierr.ErrScopeEmpty, "No sponge run found at the requested version")
	}
	present, err := sdb.RunsWithTranscriptInteraction(ctx, transcripts[0].TranscriptID, version)
	if err != nil {
		return nil, err
	}

	return shapePresence(ctx, sdb, runs, present)
}

func shapePresence(ctx context.Context, sdb *db.SpongeDB, runs []db.SpongeRun, present map[int64]bool) ([]InteractionPresence, error) {
	datasetIDs := make([]int64, 0, len(runs))
	for _, r := range runs {
		datasetIDs = append(datasetIDs, r.DatasetID)
	}
	datasets, err := sdb.DatasetsByIDs(ctx, datasetIDs)
	if err != nil {
		return nil, err
	}

	out := make([]InteractionPresence, 0, len(runs))
	for _, r := range runs {
		info := RunInfo{SpongeRunID: r.SpongeRunID}
		if d, ok := datasets[r.DatasetID]; ok {
			info.Dataset = shapeDataset(d)
		}
		out = append(out, InteractionPresence{Run: info, HasInteraction: present[r.SpongeRunID]})
	}
	return out, nil
}

// Transcript mirrors of findAll / findSpecific / findceRNA.

func FindAllTranscriptInteractions(ctx context.Context, sdb *db.SpongeDB, req request.InteractionFindAll) ([]TranscriptInteraction, error) {
	if err := CheckLimit(req.Limit); err != nil {
		return nil, err
	}
	scope, err := ResolveScope(ctx, sdb, req.Scope)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireRuns(); err != nil {
		return nil, err
	}

	transcripts, err := ResolveTranscripts(ctx, sdb, req.ENSTNumbers, false)
	if err != nil {
		return nil, err
	}

	filters, err := BuildStatFilters(req.Cutoffs)
	if err != nil {
		return nil, err
	}
	sortKey, err := InteractionSort(req.Sorting, req.SortDirection)
	if err != nil {
		return nil, err
	}

	rows, err := sdb.TranscriptInteractionsInvolving(ctx, scope.RunIDs(), transcriptIDs(transcripts), filters, sortKey, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No interactions found for the given parameters")
	}

	transcriptMap, err := sdb.TranscriptsByIDs(ctx, edgeNodeIDs(rows))
	if err != nil {
		return nil, err
	}
	return shapeTranscriptInteractions(scope, rows, transcriptMap), nil
}

func FindSpecificTranscriptInteractions(ctx context.Context, sdb *db.SpongeDB, req request.InteractionFindSpecific) ([]TranscriptInteraction, error) {
	if err := CheckLimit(req.Limit); err != nil {
		return nil, err
	}
	scope, err := ResolveScope(ctx, sdb, req.Scope)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireRuns(); err != nil {
		return nil, err
	}

	transcripts, err := ResolveTranscripts(ctx, sdb, req.ENSTNumbers, true)
	if err != nil {
		return nil, err
	}
	if len(transcripts) < 2 {
		return nil, apierr.NotFoundf("Less than two transcripts could be resolved, no edge can lie inside the set")
	}

	filters, err := BuildStatFilters(req.Cutoffs)
	if err != nil {
		return nil, err
	}
	sortKey, err := InteractionSort(req.Sorting, req.SortDirection)
	if err != nil {
		return nil, err
	}

	rows, err := sdb.TranscriptInteractionsAmong(ctx, scope.RunIDs(), transcriptIDs(transcripts), filters, sortKey, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No interactions found between the given transcripts")
	}

	transcriptMap, err := sdb.TranscriptsByIDs(ctx, edgeNodeIDs(rows))
	if err != nil {
		return nil, err
	}
	return shapeTranscriptInteractions(scope, rows, transcriptMap), nil
}

// CeRNATranscript is the transcript-level node row.
type CeRNATranscript struct {
	Run         RunInfo         `json:"sponge_run"`
	Transcript  ShortTranscript `json:"transcript"`
	Betweenness float64         `json:"betweenness"`
	NodeDegree  float64         `json:"node_degree"`
	Eigenvector float64         `json:"eigenvector"`
}

func FindCeRNATranscripts(ctx context.Context, sdb *db.SpongeDB, req request.CeRNAFind) ([]CeRNATranscript, error) {
	if err := CheckLimit(req.Limit); err != nil {
		return nil, err
	}
	scope, err := ResolveScope(ctx, sdb, req.Scope)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireRuns(); err != nil {
		return nil, err
	}

	transcripts, err := ResolveTranscripts(ctx, sdb, req.ENSTNumbers, false)
	if err != nil {
		return nil, err
	}

	filters := BuildCentralityFilters(req.Minima)
	sortKey, err := CentralitySort(req.Sorting, req.SortDirection)
	if err != nil {
		return nil, err
	}

	rows, err := sdb.TranscriptNetworkAnalysis(ctx, scope.RunIDs(), transcriptIDs(transcripts), filters, sortKey, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No network analysis results for the given parameters")
	}

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.NodeID
	}
	transcriptMap, err := sdb.TranscriptsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]CeRNATranscript, 0, len(rows))
	for _, r := range rows {
		out = append(out, CeRNATranscript{
			Run:         shapeRun(scope, r.SpongeRunID),
			Transcript:  shapeShortTranscript(transcriptMap[r.NodeID]),
			Betweenness: r.Betweenness,
			NodeDegree:  r.NodeDegree,
			Eigenvector: r.Eigenvector,
		})
	}
	return out, nil
}

// concreteVersion resolves the latest-version sentinel outside of scope
// resolution, for endpoints that span every dataset.
func concreteVersion(ctx context.Context, sdb *db.SpongeDB, version int64) (int64, error) {
	if version != params.VersionLatest {
		return version, nil
	}
	return sdb.LatestVersion(ctx)
}
