package model

import (
	"context"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

// Survival analysis lookups: Kaplan-Meier overexpression flags per
// sample, log-rank p-values per gene, and the clinical baseline rows.

// SurvivalRate flags whether a gene is overexpressed in one sample,
// joined with the sample's clinical outcome.
type SurvivalRate struct {
	Dataset        DatasetInfo `json:"dataset"`
	Gene           ShortGene   `json:"gene"`
	SampleID       string      `json:"sample_ID"`
	Overexpression int64       `json:"overexpression"`
	DiseaseStatus  int64       `json:"disease_status"`
	SurvivalTime   int64       `json:"survival_time"`
}

// SurvivalPValue is the log-rank test result of one gene in one dataset.
type SurvivalPValue struct {
	Dataset DatasetInfo `json:"dataset"`
	Gene    ShortGene   `json:"gene"`
	PValue  float64     `json:"pValue"`
}

// PatientInfo is one clinical row of a dataset.
type PatientInfo struct {
	Dataset       DatasetInfo `json:"dataset"`
	SampleID      string      `json:"sample_ID"`
	DiseaseStatus int64       `json:"disease_status"`
	SurvivalTime  int64       `json:"survival_time"`
}

// GetSurvivalRates returns per-sample overexpression flags with clinical
// outcomes attached.
func GetSurvivalRates(ctx context.Context, sdb *db.SpongeDB, req request.Survival) ([]SurvivalRate, error) {
	scope, err := ResolveScope(ctx, sdb, req.Scope)
	if err != nil {
		return nil, err
	}
	genes, err := ResolveGenes(ctx, sdb, req.ENSGNumbers, req.GeneSymbols, true)
	if err != nil {
		return nil, err
	}

	rates, err := sdb.SurvivalRates(ctx, scope.DatasetIDs(), geneIDs(genes), req.SampleIDs)
	if err != nil {
		return nil, err
	}
	if len(rates) == 0 {
		return nil, apierr.NotFoundf("No survival rate data found for the given parameters")
	}

	clinical, err := sdb.PatientInformationForDatasets(ctx, scope.DatasetIDs(), req.SampleIDs)
	if err != nil {
		return nil, err
	}
	type patientKey struct {
		dataset int64
		sample  string
	}
	patients := make(map[patientKey]db.PatientInformation, len(clinical))
	for _, p := range clinical {
		patients[patientKey{p.DatasetID, p.SampleID}] = p
	}

	geneMap := make(map[int64]db.Gene, len(genes))
	for _, g := range genes {
		geneMap[g.GeneID] = g
	}

	out := make([]SurvivalRate, 0, len(rates))
	for _, r := range rates {
		row := SurvivalRate{
			Gene:           shapeShortGene(geneMap[r.GeneID]),
			SampleID:       r.SampleID,
			Overexpression: r.Overexpression,
		}
		if d, ok := scope.Datasets[r.DatasetID]; ok {
			row.Dataset = shapeDataset(d)
		}
		if p, ok := patients[patientKey{r.DatasetID, r.SampleID}]; ok {
			row.DiseaseStatus = p.DiseaseStatus
			row.SurvivalTime = p.SurvivalTime
		}
		out = append(out, row)
	}
	return out, nil
}

// GetSurvivalPValues returns the log-rank p-values of the given genes
// under scope.
func GetSurvivalPValues(ctx context.Context, sdb *db.SpongeDB, req request.Survival) ([]SurvivalPValue, error) {
	scope, err := ResolveScope(ctx, sdb, req.Scope)
	if err != nil {
		return nil, err
	}
	genes, err := ResolveGenes(ctx, sdb, req.ENSGNumbers, req.GeneSymbols, true)
	if err != nil {
		return nil, err
	}

	rows, err := sdb.SurvivalPValues(ctx, scope.DatasetIDs(), geneIDs(genes))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No survival p-value data found for the given parameters")
	}

	geneMap := make(map[int64]db.Gene, len(genes))
	for _, g := range genes {
		geneMap[g.GeneID] = g
	}

	out := make([]SurvivalPValue, 0, len(rows))
	for _, r := range rows {
		row := SurvivalPValue{
			Gene:   shapeShortGene(geneMap[r.GeneID]),
			PValue: r.PValue,
		}
		if d, ok := scope.Datasets[r.DatasetID]; ok {
			row.Dataset = shapeDataset(d)
		}
		out = append(out, row)
	}
	return out, nil
}

// GetPatientInformation returns the clinical rows of the scoped datasets,
// optionally restricted to given samples.
func GetPatientInformation(ctx context.Context, sdb *db.SpongeDB, req request.Survival) ([]PatientInfo, error) {
	scope, err := ResolveScope(ctx, sdb, req.Scope)
	if err != nil {
		return nil, err
	}

	rows, err := sdb.PatientInformationForDatasets(ctx, scope.DatasetIDs(), req.SampleIDs)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No patient information found for the given parameters")
	}

	out := make([]PatientInfo, 0, len(rows))
	for _, r := range rows {
		row := PatientInfo{
			SampleID:      r.SampleID,
			DiseaseStatus: r.DiseaseStatus,
			SurvivalTime:  r.SurvivalTime,
		}
		if d, ok := scope.Datasets[r.DatasetID]; ok {
			row.Dataset = shapeDataset(d)
		}
		out = append(out, row)
	}
	return out, nil
}
