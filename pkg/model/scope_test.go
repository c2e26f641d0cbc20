package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/params"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

func TestResolveScopeLatestVersion(t *testing.T) {
	sdb := newTestDB(t)

	scope, err := ResolveScope(testCtx(), sdb, request.Scope{Version: params.VersionLatest})
	require.NoError(t, err)
	require.EqualValues(t, 2, scope.Version)

	// The version 1 dataset must not leak into the latest partition.
	require.Len(t, scope.Datasets, 2)
	require.Len(t, scope.Runs, 2)
}

func TestResolveScopeByDiseaseName(t *testing.T) {
	sdb := newTestDB(t)

	scope, err := ResolveScope(testCtx(), sdb, request.Scope{
		DiseaseName: "breast",
		Version:     params.VersionLatest,
	})
	require.NoError(t, err)
	require.Len(t, scope.Runs, 1)
	require.EqualValues(t, 1, scope.Runs[0].SpongeRunID)
}

func TestResolveScopeUnknownDiseaseName(t *testing.T) {
	sdb := newTestDB(t)

	_, err := ResolveScope(testCtx(), sdb, request.Scope{
		DiseaseName: "no such disease",
		Version:     params.VersionLatest,
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, apierr.ErrScopeEmpty))
	require.Equal(t, 400, apierr.Status(err))
}

func TestResolveScopeOldVersion(t *testing.T) {
	sdb := newTestDB(t)

	scope, err := ResolveScope(testCtx(), sdb, request.Scope{
		DiseaseName: "breast",
		Version:     1,
	})
	require.NoError(t, err)
	require.Len(t, scope.Runs, 1)
	require.EqualValues(t, 3, scope.Runs[0].SpongeRunID)
}

func TestResolveGenesExclusiveFamilies(t *testing.T) {
	sdb := newTestDB(t)

	_, err := ResolveGenes(testCtx(), sdb, []string{"ENSG00000000001"}, []string{"AAA1"}, false)
	require.True(t, errors.Is(err, apierr.ErrAmbiguousIdentifier))

	_, err = ResolveGenes(testCtx(), sdb, nil, nil, true)
	require.True(t, errors.Is(err, apierr.ErrMissingIdentifier))

	genes, err := ResolveGenes(testCtx(), sdb, nil, []string{"AAA1", "BBB2"}, true)
	require.NoError(t, err)
	require.Len(t, genes, 2)
}

func TestResolveGenesUnknownIsNoContent(t *testing.T) {
	sdb := newTestDB(t)

	_, err := ResolveGenes(testCtx(), sdb, []string{"ENSG99999999999"}, nil, true)
	require.True(t, errors.Is(err, apierr.ErrNotFound))
	require.Equal(t, 200, apierr.Status(err))
}
