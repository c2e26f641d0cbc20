package model

import (
	"context"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

// spongEffects retrieval: trained run metadata, model performance, class
// densities and enrichment modules around hub nodes.

// SpongEffectsRunInfo couples one ML training pass with its sponge run.
type SpongEffectsRunInfo struct {
	Run          RunInfo            `json:"sponge_run"`
	SpongEffects db.SpongEffectsRun `json:"spongeffects_run"`
}

func resolveSpongEffectsRuns(ctx context.Context, sdb *db.SpongeDB, req request.SpongEffects) (*Scope, []db.SpongEffectsRun, error) {
	scope, err := ResolveScope(ctx, sdb, req.Scope)
	if err != nil {
		return nil, nil, err
	}
	if err := scope.RequireRuns(); err != nil {
		return nil, nil, err
	}
	runs, err := sdb.SpongEffectsRuns(ctx, scope.RunIDs(), req.Level)
	if err != nil {
		return nil, nil, err
	}
	if len(runs) == 0 {
		return nil, nil, apierr.NotFoundf("No spongEffects run found for the given parameters")
	}
	return scope, runs, nil
}

func spongEffectsRunIDs(runs []db.SpongEffectsRun) []int64 {
	ids := make([]int64, len(runs))
	for i, r := range runs {
		ids[i] = r.SpongEffectsRunID
	}
	return ids
}

// GetSpongEffectsRuns lists the trained runs under scope.
func GetSpongEffectsRuns(ctx context.Context, sdb *db.SpongeDB, req request.SpongEffects) ([]SpongEffectsRunInfo, error) {
	scope, runs, err := resolveSpongEffectsRuns(ctx, sdb, req)
	if err != nil {
		return nil, err
	}
	out := make([]SpongEffectsRunInfo, 0, len(runs))
	for _, r := range runs {
		out = append(out, SpongEffectsRunInfo{
			Run:          shapeRun(scope, r.SpongeRunID),
			SpongEffects: r,
		})
	}
	return out, nil
}

// GetRunPerformance returns model-level metrics of the scoped runs.
func GetRunPerformance(ctx context.Context, sdb *db.SpongeDB, req request.SpongEffects) ([]db.RunPerformanceRow, error) {
	_, runs, err := resolveSpongEffectsRuns(ctx, sdb, req)
	if err != nil {
		return nil, err
	}
	rows, err := sdb.RunPerformances(ctx, spongEffectsRunIDs(runs))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No performance data found for the given spongEffects runs")
	}
	return rows, nil
}

// GetRunClassPerformance returns per-class metrics of the scoped runs.
func GetRunClassPerformance(ctx context.Context, sdb *db.SpongeDB, req request.SpongEffects) ([]db.ClassPerformanceRow, error) {
	_, runs, err := resolveSpongEffectsRuns(ctx, sdb, req)
	if err != nil {
		return nil, err
	}
	rows, err := sdb.ClassPerformances(ctx, spongEffectsRunIDs(runs))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No class performance data found for the given spongEffects runs")
	}
	return rows, nil
}

// GetEnrichmentClassDensities returns the enrichment score densities per
// prediction class.
func GetEnrichmentClassDensities(ctx context.Context, sdb *db.SpongeDB, req request.SpongEffects) ([]db.ClassDensityRow, error) {
	_, runs, err := resolveSpongEffectsRuns(ctx, sdb, req)
	if err != nil {
		return nil, err
	}
	rows, err := sdb.EnrichmentClassDensities(ctx, spongEffectsRunIDs(runs))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No enrichment density data found for the given spongEffects runs")
	}
	return rows, nil
}

// GeneModule is one enrichment module around a hub gene.
type GeneModule struct {
	Hub                  ShortGene   `json:"hub"`
	Members              []ShortGene `json:"members"`
	MeanGiniDecrease     float64     `json:"mean_gini_decrease"`
	MeanAccuracyDecrease float64     `json:"mean_accuracy_decrease"`
}

// TranscriptModule is the transcript-level counterpart.
type TranscriptModule struct {
	Hub                  ShortTranscript   `json:"hub"`
	Members              []ShortTranscript `json:"members"`
	MeanGiniDecrease     float64           `json:"mean_gini_decrease"`
	MeanAccuracyDecrease float64           `json:"mean_accuracy_decrease"`
}

// GetGeneModules returns the gene-level modules of the scoped runs,
// strongest predictors first. With gene identifiers given, only modules
// whose hub matches are returned.
func GetGeneModules(ctx context.Context, sdb *db.SpongeDB, req request.SpongEffects) ([]GeneModule, error) {
	if err := CheckLimit(req.Limit); err != nil {
		return nil, err
	}
	_, runs, err := resolveSpongEffectsRuns(ctx, sdb, req)
	if err != nil {
		return nil, err
	}
	seRunIDs := spongEffectsRunIDs(runs)

	var modules []db.ModuleRow
	if len(req.ENSGNumbers) > 0 || len(req.GeneSymbols) > 0 {
		hubs, err := ResolveGenes(ctx, sdb, req.ENSGNumbers, req.GeneSymbols, true)
		if err != nil {
			return nil, err
		}
		modules, err = sdb.GeneModulesForHubs(ctx, seRunIDs, geneIDs(hubs))
		if err != nil {
			return nil, err
		}
	} else {
		modules, err = sdb.GeneModules(ctx, seRunIDs, req.Limit, req.Offset)
		if err != nil {
			return nil, err
		}
	}
	if len(modules) == 0 {
		return nil, apierr.NotFoundf("No spongEffects modules found for the given parameters")
	}

	moduleIDs := make([]int64, len(modules))
	for i, m := range modules {
		moduleIDs[i] = m.ModuleID
	}
	members, err := sdb.GeneModuleMembers(ctx, moduleIDs)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(modules))
	for _, m := range modules {
		ids = append(ids, m.HubNodeID)
	}
	for _, ms := range members {
		ids = append(ids, ms...)
	}
	geneMap, err := sdb.GenesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]GeneModule, 0, len(modules))
	for _, m := range modules {
		mod := GeneModule{
			Hub:                  shapeShortGene(geneMap[m.HubNodeID]),
			Members:              []ShortGene{},
			MeanGiniDecrease:     m.MeanGiniDecrease,
			MeanAccuracyDecrease: m.MeanAccuracyDecrease,
		}
		for _, id := range members[m.ModuleID] {
			mod.Members = append(mod.Members, shapeShortGene(geneMap[id]))
		}
		out = append(out, mod)
	}
	return out, nil
}

// GetTranscriptModules mirrors GetGeneModules at transcript level.
func GetTranscriptModules(ctx context.Context, sdb *db.SpongeDB, req request.SpongEffects) ([]TranscriptModule, error) {
	if err := CheckLimit(req.Limit); err != nil {
		return nil, err
	}
	_, runs, err := resolveSpongEffectsRuns(ctx, sdb, req)
	if err != nil {
		return nil, err
	}
	seRunIDs := spongEffectsRunIDs(runs)

	var modules []db.ModuleRow
	if len(req.ENSTNumbers) > 0 {
		hubs, err := ResolveTranscripts(ctx, sdb, req.ENSTNumbers, true)
		if err != nil {
			return nil, err
		}
		modules, err = sdb.TranscriptModulesForHubs(ctx, seRunIDs, transcriptIDs(hubs))
		if err != nil {
			return nil, err
		}
	} else {
		modules, err = sdb.TranscriptModules(ctx, seRunIDs, req.Limit, req.Offset)
		if err != nil {
			return nil, err
		}
	}
	if len(modules) == 0 {
		return nil, apierr.NotFoundf("No spongEffects modules found for the given parameters")
	}

	moduleIDs := make([]int64, len(modules))
	for i, m := range modules {
		moduleIDs[i] = m.ModuleID
	}
	members, err := sdb.TranscriptModuleMembers(ctx, moduleIDs)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(modules))
	for _, m := range modules {
		ids = append(ids, m.HubNodeID)
	}
	for _, ms := range members {
		ids = append(ids, ms...)
	}
	transcriptMap, err := sdb.TranscriptsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]TranscriptModule, 0, len(modules))
	for _, m := range modules {
		mod := TranscriptModule{
			Hub:                  shapeShortTranscript(transcriptMap[m.HubNodeID]),
			Members:              []ShortTranscript{},
			MeanGiniDecrease:     m.MeanGiniDecrease,
			MeanAccuracyDecrease: m.MeanAccuracyDecrease,
		}
		for _, id := range members[m.ModuleID] {
			mod.Members = append(mod.Members, shapeShortTranscript(transcriptMap[id]))
		}
		out = append(out, mod)
	}
	return out, nil
}
