package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/params"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

// Scope is the resolved query scope: the sponge runs every downstream
// lookup is expressed against, plus their datasets for response embedding
// and the concrete version the request pinned (params.VersionAny when the
// caller lifted the partition).
type Scope struct {
	Runs     []db.SpongeRun
	Datasets map[int64]db.Dataset
	Version  int64
}

func (s *Scope) RunIDs() []int64 {
	ids := make([]int64, len(s.Runs))
	for i, r := range s.Runs {
		ids[i] = r.SpongeRunID
	}
	return ids
}

func (s *Scope) DatasetIDs() []int64 {
	ids := make([]int64, 0, len(s.Datasets))
	for id := range s.Datasets {
		ids = append(ids, id)
	}
	return ids
}

// DatasetForRun returns the dataset a run belongs to.
func (s *Scope) DatasetForRun(runID int64) (db.Dataset, bool) {
	for _, r := range s.Runs {
		if r.SpongeRunID == runID {
			d, ok := s.Datasets[r.DatasetID]
			return d, ok
		}
	}
	return db.Dataset{}, false
}

// ResolveScope is the single authority turning a scope request into the
// run set. Emptiness of the result is the caller's concern, except that a
// disease name that matches no dataset is surfaced directly because every
// endpoint treats it the same way.
func ResolveScope(ctx context.Context, sdb *db.SpongeDB, req request.Scope) (*Scope, error) {
	version := req.Version
	if version == params.VersionLatest {
		v, err := sdb.LatestVersion(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("No dataset in catalog: %w", apierr.ErrScopeEmpty)
			}
			return nil, err
		}
		version = v
	}

	datasets, err := sdb.Datasets(ctx, db.DatasetQuery{
		DatasetIDs:    req.DatasetIDs,
		DiseaseName:   req.DiseaseName,
		Subtype:       req.Subtype,
		SubtypeIsNull: req.SubtypeIsNull,
		DataOrigin:    req.DataOrigin,
		Version:       version,
	})
	if err != nil {
		return nil, err
	}
	if len(datasets) == 0 {
		if req.DiseaseName != "" {
			return nil, fmt.Errorf("No dataset with given disease_name found: %w", apierr.ErrScopeEmpty)
		}
		return nil, fmt.Errorf("No dataset found for the given parameters: %w", apierr.ErrScopeEmpty)
	}

	datasetIDs := make([]int64, len(datasets))
	datasetMap := make(map[int64]db.Dataset, len(datasets))
	for i, d := range datasets {
		datasetIDs[i] = d.DatasetID
		datasetMap[d.DatasetID] = d
	}

	runs, err := sdb.SpongeRunsForDatasets(ctx, datasetIDs, version)
	if err != nil {
		return nil, err
	}

	return &Scope{Runs: runs, Datasets: datasetMap, Version: version}, nil
}

// RequireRuns asserts the scope is non-empty for endpoints where an empty
// run set means "nothing to query".
func (s *Scope) RequireRuns() error {
	if len(s.Runs) == 0 {
		return fmt.Errorf("No sponge run found for the given dataset parameters: %w", apierr.ErrScopeEmpty)
	}
	return nil
}
