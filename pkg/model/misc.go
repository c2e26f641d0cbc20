package model

import (
	"context"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/params"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

// Catalog browsing: datasets, run parameters, node metadata, counts and
// gene-set annotations.

// ListDatasets returns the datasets matching an optional disease name at
// one version.
func ListDatasets(ctx context.Context, sdb *db.SpongeDB, diseaseName string, version int64) ([]DatasetInfo, error) {
	if version == params.VersionLatest {
		latest, err := sdb.LatestVersion(ctx)
		if err != nil {
			return nil, apierr.NotFoundf("No dataset version available")
		}
		version = latest
	}

	datasets, err := sdb.Datasets(ctx, db.DatasetQuery{DiseaseName: diseaseName, Version: version})
	if err != nil {
		return nil, err
	}
	if len(datasets) == 0 {
		if diseaseName != "" {
			return nil, apierr.BadRequestf(apierr.ErrScopeEmpty,
				"No dataset with given disease_name found: %s", diseaseName)
		}
		return nil, apierr.NotFoundf("No datasets found for the given version")
	}

	out := make([]DatasetInfo, len(datasets))
	for i, d := range datasets {
		out[i] = shapeDataset(d)
	}
	return out, nil
}

// SpongeRunInformation couples a run's parameters with its dataset.
type SpongeRunInformation struct {
	Run     db.SpongeRun `json:"sponge_run"`
	Dataset DatasetInfo  `json:"dataset"`
}

// GetSpongeRunInformation returns the run parameters of the scoped
// datasets.
func GetSpongeRunInformation(ctx context.Context, sdb *db.SpongeDB, scopeReq request.Scope) ([]SpongeRunInformation, error) {
	scope, err := ResolveScope(ctx, sdb, scopeReq)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireRuns(); err != nil {
		return nil, err
	}

	out := make([]SpongeRunInformation, 0, len(scope.Runs))
	for _, r := range scope.Runs {
		info := SpongeRunInformation{Run: r}
		if d, ok := scope.Datasets[r.DatasetID]; ok {
			info.Dataset = shapeDataset(d)
		}
		out = append(out, info)
	}
	return out, nil
}

// GetGeneInformation returns the full metadata of the given genes.
func GetGeneInformation(ctx context.Context, sdb *db.SpongeDB, ensgs, symbols []string) ([]LongGene, error) {
	genes, err := ResolveGenes(ctx, sdb, ensgs, symbols, true)
	if err != nil {
		return nil, err
	}
	out := make([]LongGene, len(genes))
	for i, g := range genes {
		out[i] = shapeLongGene(g)
	}
	return out, nil
}

// GetTranscriptInformation returns the full metadata of the given
// transcripts with their parent genes embedded.
func GetTranscriptInformation(ctx context.Context, sdb *db.SpongeDB, ensts []string) ([]LongTranscript, error) {
	transcripts, err := ResolveTranscripts(ctx, sdb, ensts, true)
	if err != nil {
		return nil, err
	}

	parentIDs := make([]int64, len(transcripts))
	for i, t := range transcripts {
		parentIDs[i] = t.GeneID
	}
	geneMap, err := sdb.GenesByIDs(ctx, parentIDs)
	if err != nil {
		return nil, err
	}

	out := make([]LongTranscript, len(transcripts))
	for i, t := range transcripts {
		out[i] = shapeLongTranscript(t, geneMap[t.GeneID])
	}
	return out, nil
}

// TranscriptGene maps one transcript to its parent gene.
type TranscriptGene struct {
	Transcript ShortTranscript `json:"transcript"`
	Gene       ShortGene       `json:"gene"`
}

// GetTranscriptGene returns the parent gene of each given transcript.
func GetTranscriptGene(ctx context.Context, sdb *db.SpongeDB, ensts []string) ([]TranscriptGene, error) {
	transcripts, err := ResolveTranscripts(ctx, sdb, ensts, true)
	if err != nil {
		return nil, err
	}

	parentIDs := make([]int64, len(transcripts))
	for i, t := range transcripts {
		parentIDs[i] = t.GeneID
	}
	geneMap, err := sdb.GenesByIDs(ctx, parentIDs)
	if err != nil {
		return nil, err
	}

	out := make([]TranscriptGene, len(transcripts))
	for i, t := range transcripts {
		out[i] = TranscriptGene{
			Transcript: shapeShortTranscript(t),
			Gene:       shapeShortGene(geneMap[t.GeneID]),
		}
	}
	return out, nil
}

// GeneTranscripts maps one gene to all its transcripts.
type GeneTranscripts struct {
	Gene        ShortGene         `json:"gene"`
	Transcripts []ShortTranscript `json:"transcripts"`
}

// GetGeneTranscripts returns the transcripts of each given gene.
func GetGeneTranscripts(ctx context.Context, sdb *db.SpongeDB, ensgs, symbols []string) ([]GeneTranscripts, error) {
	genes, err := ResolveGenes(ctx, sdb, ensgs, symbols, true)
	if err != nil {
		return nil, err
	}

	transcripts, err := sdb.TranscriptsByGeneIDs(ctx, geneIDs(genes))
	if err != nil {
		return nil, err
	}
	byGene := make(map[int64][]ShortTranscript, len(genes))
	for _, t := range transcripts {
		byGene[t.GeneID] = append(byGene[t.GeneID], shapeShortTranscript(t))
	}

	out := make([]GeneTranscripts, len(genes))
	for i, g := range genes {
		ts := byGene[g.GeneID]
		if ts == nil {
			ts = []ShortTranscript{}
		}
		out[i] = GeneTranscripts{Gene: shapeShortGene(g), Transcripts: ts}
	}
	return out, nil
}

// GeneCount is the interaction count of one gene in one run.
type GeneCount struct {
	Run       RunInfo   `json:"sponge_run"`
	Gene      ShortGene `json:"gene"`
	CountAll  int64     `json:"count_all"`
	CountSign int64     `json:"count_sign"`
}

// TranscriptCount is the transcript-level counterpart.
type TranscriptCount struct {
	Run        RunInfo         `json:"sponge_run"`
	Transcript ShortTranscript `json:"transcript"`
	CountAll   int64           `json:"count_all"`
	CountSign  int64           `json:"count_sign"`
}

// GetGeneCounts returns per-gene interaction counts under scope.
func GetGeneCounts(ctx context.Context, sdb *db.SpongeDB, req request.Counts) ([]GeneCount, error) {
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

	rows, err := sdb.GeneCounts(ctx, scope.RunIDs(), geneIDs(genes), req.MinCountAll, req.MinCountSign, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No count data found for the given parameters")
	}

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.NodeID
	}
	geneMap, err := sdb.GenesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]GeneCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, GeneCount{
			Run:       shapeRun(scope, r.SpongeRunID),
			Gene:      shapeShortGene(geneMap[r.NodeID]),
			CountAll:  r.CountAll,
			CountSign: r.CountSign,
		})
	}
	return out, nil
}

// GetTranscriptCounts mirrors GetGeneCounts at transcript level.
func GetTranscriptCounts(ctx context.Context, sdb *db.SpongeDB, req request.Counts) ([]TranscriptCount, error) {
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

	rows, err := sdb.TranscriptCounts(ctx, scope.RunIDs(), transcriptIDs(transcripts), req.MinCountAll, req.MinCountSign, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No count data found for the given parameters")
	}

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.NodeID
	}
	transcriptMap, err := sdb.TranscriptsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]TranscriptCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, TranscriptCount{
			Run:        shapeRun(scope, r.SpongeRunID),
			Transcript: shapeShortTranscript(transcriptMap[r.NodeID]),
			CountAll:   r.CountAll,
			CountSign:  r.CountSign,
		})
	}
	return out, nil
}

// GetOverallCounts returns the catalog-wide per-disease totals at one
// version.
func GetOverallCounts(ctx context.Context, sdb *db.SpongeDB, version int64) ([]db.OverallCountRow, error) {
	if version == params.VersionLatest {
		latest, err := sdb.LatestVersion(ctx)
		if err != nil {
			return nil, apierr.NotFoundf("No dataset version available")
		}
		version = latest
	}
	rows, err := sdb.OverallCounts(ctx, version)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No count data found for the given version")
	}
	return rows, nil
}

// GeneAnnotation is one gene-set membership of a gene.
type GeneAnnotation struct {
	Gene        ShortGene `json:"gene"`
	Key         string    `json:"gene_set_key"`
	Description string    `json:"description,omitempty"`
}

type annotationQuery func(ctx context.Context, geneIDs []int64) ([]db.Annotation, error)

func geneAnnotations(ctx context.Context, sdb *db.SpongeDB, ensgs, symbols []string, query annotationQuery) ([]GeneAnnotation, error) {
	genes, err := ResolveGenes(ctx, sdb, ensgs, symbols, true)
	if err != nil {
		return nil, err
	}

	rows, err := query(ctx, geneIDs(genes))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No gene set annotations found for the given genes")
	}

	geneMap := make(map[int64]db.Gene, len(genes))
	for _, g := range genes {
		geneMap[g.GeneID] = g
	}

	out := make([]GeneAnnotation, 0, len(rows))
	for _, r := range rows {
		out = append(out, GeneAnnotation{
			Gene:        shapeShortGene(geneMap[r.GeneID]),
			Key:         r.Key,
			Description: r.Label.String,
		})
	}
	return out, nil
}

// GetHallmark returns the MSigDB hallmark memberships of the given genes.
func GetHallmark(ctx context.Context, sdb *db.SpongeDB, ensgs, symbols []string) ([]GeneAnnotation, error) {
	return geneAnnotations(ctx, sdb, ensgs, symbols, sdb.HallmarkAnnotations)
}

// GetGeneOntology returns the GO memberships of the given genes.
func GetGeneOntology(ctx context.Context, sdb *db.SpongeDB, ensgs, symbols []string) ([]GeneAnnotation, error) {
	return geneAnnotations(ctx, sdb, ensgs, symbols, sdb.GeneOntologyAnnotations)
}

// GetWikipathway returns the WikiPathways memberships of the given genes.
func GetWikipathway(ctx context.Context, sdb *db.SpongeDB, ensgs, symbols []string) ([]GeneAnnotation, error) {
	return geneAnnotations(ctx, sdb, ensgs, symbols, sdb.WikipathwayAnnotations)
}

// GetNetworkResults returns pairwise run-similarity scores for the scoped
// runs.
func GetNetworkResults(ctx context.Context, sdb *db.SpongeDB, req request.NetworkResults) ([]db.NetworkResultRow, error) {
	scope, err := ResolveScope(ctx, sdb, req.Scope)
	if err != nil {
		return nil, err
	}
	if err := scope.RequireRuns(); err != nil {
		return nil, err
	}

	rows, err := sdb.NetworkResults(ctx, scope.RunIDs(), req.Level)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No network comparison results found for the given parameters")
	}
	return rows, nil
}
