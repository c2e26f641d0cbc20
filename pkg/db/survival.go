package db

import (
	"context"
	"database/sql"
)

type PatientInformation struct {
	PatientID     int64  `json:"-"`
	DatasetID     int64  `json:"dataset_ID"`
	SampleID      string `json:"sample_ID"`
	DiseaseStatus int64  `json:"disease_status"`
	SurvivalTime  int64  `json:"survival_time"`
}

type SurvivalRateRow struct {
	SurvivalRateID int64
	DatasetID      int64
	GeneID         int64
	SampleID       string
	Overexpression int64
}

type SurvivalPValueRow struct {
	DatasetID int64
	GeneID    int64
	PValue    float64
}

func (s *SpongeDB) PatientInformationForDatasets(ctx context.Context, datasetIDs []int64, sampleIDs []string) ([]PatientInformation, error) {
	if len(datasetIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT patient_information_ID, dataset_ID, sample_ID, disease_status, survival_time
		FROM patient_information
		WHERE dataset_ID IN (` + placeholders(len(datasetIDs)) + `)`
	args := int64Args(datasetIDs)

	if len(sampleIDs) > 0 {
		query += ` AND sample_ID IN (` + placeholders(len(sampleIDs)) + `)`
		args = append(args, stringArgs(sampleIDs)...)
	}
	query += ` ORDER BY patient_information_ID`

	var out []PatientInformation
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var p PatientInformation
		if err := rows.Scan(&p.PatientID, &p.DatasetID, &p.SampleID,
			&p.DiseaseStatus, &p.SurvivalTime); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	return out, err
}

func (s *SpongeDB) SurvivalRates(ctx context.Context, datasetIDs, geneIDs []int64, sampleIDs []string) ([]SurvivalRateRow, error) {
	if len(datasetIDs) == 0 || len(geneIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT survival_rate_ID, dataset_ID, gene_ID, sample_ID, overexpression
		FROM survival_rate
		WHERE dataset_ID IN (` + placeholders(len(datasetIDs)) + `)
		  AND gene_ID IN (` + placeholders(len(geneIDs)) + `)`
	args := int64Args(datasetIDs)
	args = append(args, int64Args(geneIDs)...)

	if len(sampleIDs) > 0 {
		query += ` AND sample_ID IN (` + placeholders(len(sampleIDs)) + `)`
		args = append(args, stringArgs(sampleIDs)...)
	}
	query += ` ORDER BY survival_rate_ID`

	var out []SurvivalRateRow
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var r SurvivalRateRow
		if err := rows.Scan(&r.SurvivalRateID, &r.DatasetID, &r.GeneID,
			&r.SampleID, &r.Overexpression); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

func (s *SpongeDB) SurvivalPValues(ctx context.Context, datasetIDs, geneIDs []int64) ([]SurvivalPValueRow, error) {
	if len(datasetIDs) == 0 || len(geneIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT dataset_ID, gene_ID, p_value
		FROM survival_pvalue
		WHERE dataset_ID IN (` + placeholders(len(datasetIDs)) + `)
		  AND gene_ID IN (` + placeholders(len(geneIDs)) + `)
		ORDER BY dataset_ID, gene_ID`
	args := int64Args(datasetIDs)
	args = append(args, int64Args(geneIDs)...)

	var out []SurvivalPValueRow
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var r SurvivalPValueRow
		if err := rows.Scan(&r.DatasetID, &r.GeneID, &r.PValue); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}
