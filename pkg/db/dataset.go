package db

import (
	"context"
	"database/sql"
	"strings"
)

type Dataset struct {
	DatasetID      int64          `json:"dataset_ID"`
	DiseaseName    string         `json:"disease_name"`
	DiseaseType    sql.NullString `json:"-"`
	DiseaseSubtype sql.NullString `json:"-"`
	DataOrigin     string         `json:"data_origin"`
	DownloadURL    sql.NullString `json:"-"`
	Version        int64          `json:"sponge_db_version"`
}

type SpongeRun struct {
	SpongeRunID          int64   `json:"sponge_run_ID"`
	DatasetID            int64   `json:"dataset_ID"`
	VarianceCutoff       float64 `json:"variance_cutoff"`
	FTest                bool    `json:"f_test"`
	FTestPAdjThreshold   float64 `json:"f_test_p_adj_threshold"`
	CoefficientThreshold float64 `json:"coefficient_threshold"`
	CoefficientDirection string  `json:"coefficient_direction"`
	MinCorr              float64 `json:"min_corr"`
	NumberOfSamples      int64   `json:"number_of_samples"`
	NumberOfDatasets     int64   `json:"number_of_datasets"`
	MMax                 int64   `json:"m_max"`
	Ks                   string  `json:"ks"`
	Version              int64   `json:"sponge_db_version"`
}

// DatasetQuery is the fuzzy dataset selection used by scope resolution.
// String fields match case-insensitive substrings. SubtypeIsNull is
// distinct from an empty Subtype: it requires the subtype column to be
// unset.
type DatasetQuery struct {
	DatasetIDs    []int64
	DiseaseName   string
	Subtype       string
	SubtypeIsNull bool
	DataOrigin    string
	Version       int64 // concrete version or VersionAny sentinel (-1)
}

// LatestVersion returns the highest sponge_db_version in the catalog.
func (s *SpongeDB) LatestVersion(ctx context.Context) (int64, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	var v sql.NullInt64
	err := s.catalog.QueryRowContext(ctx,
		`SELECT MAX(sponge_db_version) FROM dataset`).Scan(&v)
	if err != nil {
		return 0, err
	}
	if !v.Valid {
		return 0, sql.ErrNoRows
	}
	return v.Int64, nil
}

// Datasets returns the catalog rows matching q, ordered by dataset id.
func (s *SpongeDB) Datasets(ctx context.Context, q DatasetQuery) ([]Dataset, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `
		SELECT dataset_ID, disease_name, disease_type, disease_subtype,
		       data_origin, download_url, sponge_db_version
		FROM dataset
		WHERE 1=1`
	var args []any

	if len(q.DatasetIDs) > 0 {
		query += ` AND dataset_ID IN (` + placeholders(len(q.DatasetIDs)) + `)`
		args = append(args, int64Args(q.DatasetIDs)...)
	}
	if q.DiseaseName != "" {
		query += ` AND LOWER(disease_name) LIKE ?`
		args = append(args, "%"+strings.ToLower(q.DiseaseName)+"%")
	}
	if q.SubtypeIsNull {
		query += ` AND disease_subtype IS NULL`
	} else if q.Subtype != "" {
		query += ` AND LOWER(disease_subtype) LIKE ?`
		args = append(args, "%"+strings.ToLower(q.Subtype)+"%")
	}
	if q.DataOrigin != "" {
		query += ` AND LOWER(data_origin) LIKE ?`
		args = append(args, "%"+strings.ToLower(q.DataOrigin)+"%")
	}
	if q.Version >= 0 {
		query += ` AND sponge_db_version = ?`
		args = append(args, q.Version)
	}
	query += ` ORDER BY dataset_ID`

	var out []Dataset
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var d Dataset
		if err := rows.Scan(&d.DatasetID, &d.DiseaseName, &d.DiseaseType,
			&d.DiseaseSubtype, &d.DataOrigin, &d.DownloadURL, &d.Version); err != nil {
			return err
		}
		out = append(out, d)
		return nil
	})
	return out, err
}

// SpongeRunsForDatasets returns the runs owned by the given datasets at
// version (VersionAny lifts the partition), ordered by run id.
func (s *SpongeDB) SpongeRunsForDatasets(ctx context.Context, datasetIDs []int64, version int64) ([]SpongeRun, error) {
	if len(datasetIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `
		SELECT sponge_run_ID, dataset_ID, variance_cutoff, f_test,
		       f_test_p_adj_threshold, coefficient_threshold,
		       coefficient_direction, min_corr, number_of_samples,
		       number_of_datasets, m_max, ks, sponge_db_version
		FROM sponge_run
		WHERE dataset_ID IN (` + placeholders(len(datasetIDs)) + `)`
	args := int64Args(datasetIDs)
	if version >= 0 {
		query += ` AND sponge_db_version = ?`
		args = append(args, version)
	}
	query += ` ORDER BY sponge_run_ID`

	var out []SpongeRun
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var r SpongeRun
		if err := rows.Scan(&r.SpongeRunID, &r.DatasetID, &r.VarianceCutoff,
			&r.FTest, &r.FTestPAdjThreshold, &r.CoefficientThreshold,
			&r.CoefficientDirection, &r.MinCorr, &r.NumberOfSamples,
			&r.NumberOfDatasets, &r.MMax, &r.Ks, &r.Version); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

// AllSpongeRuns lists every run at the given version, used by the
// per-run interaction check.
func (s *SpongeDB) AllSpongeRuns(ctx context.Context, version int64) ([]SpongeRun, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `
		SELECT sponge_run_ID, dataset_ID, variance_cutoff, f_test,
		       f_test_p_adj_threshold, coefficient_threshold,
		       coefficient_direction, min_corr, number_of_samples,
		       number_of_datasets, m_max, ks, sponge_db_version
		FROM sponge_run WHERE 1=1`
	var args []any
	if version >= 0 {
		query += ` AND sponge_db_version = ?`
		args = append(args, version)
	}
	query += ` ORDER BY sponge_run_ID`

	var out []SpongeRun
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var r SpongeRun
		if err := rows.Scan(&r.SpongeRunID, &r.DatasetID, &r.VarianceCutoff,
			&r.FTest, &r.FTestPAdjThreshold, &r.CoefficientThreshold,
			&r.CoefficientDirection, &r.MinCorr, &r.NumberOfSamples,
			&r.NumberOfDatasets, &r.MMax, &r.Ks, &r.Version); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

// DatasetsByIDs loads datasets for response embedding, keyed by id.
func (s *SpongeDB) DatasetsByIDs(ctx context.Context, ids []int64) (map[int64]Dataset, error) {
	if len(ids) == 0 {
		return map[int64]Dataset{}, nil
	}
	list, err := s.Datasets(ctx, DatasetQuery{DatasetIDs: ids, Version: -1})
	if err != nil {
		return nil, err
	}
	out := make(map[int64]Dataset, len(list))
	for _, d := range list {
		out[d.DatasetID] = d
	}
	return out, nil
}
