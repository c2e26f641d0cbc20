package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/params"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

func geneScope() request.Scope {
	return request.Scope{DiseaseName: "breast", Version: params.VersionLatest}
}

func TestFindAllGeneInteractionsDefaultPValue(t *testing.T) {
	sdb := newTestDB(t)

	// Default cutoff is p < 0.05; the seeded p=0.2 edge must not appear.
	out, err := FindAllGeneInteractions(testCtx(), sdb, request.InteractionFindAll{
		Scope:       geneScope(),
		ENSGNumbers: []string{"ENSG00000000001"},
		Limit:       100,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "ENSG00000000001", out[0].Gene1.ENSGNumber)
	require.Equal(t, "ENSG00000000002", out[0].Gene2.ENSGNumber)
}

func TestFindAllGeneInteractionsEitherSlot(t *testing.T) {
	sdb := newTestDB(t)

	// Gene 3 sits in slot 1 of one surviving edge and slot 2 of another;
	// both count, each exactly once.
	out, err := FindAllGeneInteractions(testCtx(), sdb, request.InteractionFindAll{
		Scope:       geneScope(),
		ENSGNumbers: []string{"ENSG00000000003"},
		Limit:       100,
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
}

func TestFindSpecificGeneInteractionsBothEndpointsInSet(t *testing.T) {
	sdb := newTestDB(t)

	// Edges leaving the set (gene 3 to gene 4) are excluded; only the
	// 2-3 edge survives the set predicate plus the p-value default.
	out, err := FindSpecificGeneInteractions(testCtx(), sdb, request.InteractionFindSpecific{
		Scope:       geneScope(),
		ENSGNumbers: []string{"ENSG00000000002", "ENSG00000000003"},
		Limit:       100,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "ENSG00000000002", out[0].Gene1.ENSGNumber)
	require.Equal(t, "ENSG00000000003", out[0].Gene2.ENSGNumber)
}

func TestFindAllGeneInteractionsCutoffDirection(t *testing.T) {
	sdb := newTestDB(t)

	p := 0.05
	out, err := FindAllGeneInteractions(testCtx(), sdb, request.InteractionFindAll{
		Scope: geneScope(),
		Cutoffs: request.Cutoffs{
			PValue:    &p,
			PValueDir: params.CutoffGreater,
		},
		Limit: 100,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.InDelta(t, 0.2, out[0].PValue, 1e-9)
}

func TestFindAllGeneInteractionsSorted(t *testing.T) {
	sdb := newTestDB(t)

	out, err := FindAllGeneInteractions(testCtx(), sdb, request.InteractionFindAll{
		Scope:         geneScope(),
		Sorting:       "pValue",
		SortDirection: params.SortAsc,
		Limit:         100,
	})
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i := 1; i < len(out); i++ {
		require.LessOrEqual(t, out[i-1].PValue, out[i].PValue)
	}
}

func TestFindAllGeneInteractionsLimitCap(t *testing.T) {
	sdb := newTestDB(t)

	_, err := FindAllGeneInteractions(testCtx(), sdb, request.InteractionFindAll{
		Scope: geneScope(),
		Limit: MaxLimit + 1,
	})
	require.True(t, errors.Is(err, apierr.ErrLimitTooHigh))
}

func TestFindAllGeneInteractionsBadSortKey(t *testing.T) {
	sdb := newTestDB(t)

	_, err := FindAllGeneInteractions(testCtx(), sdb, request.InteractionFindAll{
		Scope:   geneScope(),
		Sorting: "betweenness",
		Limit:   100,
	})
	require.True(t, errors.Is(err, apierr.ErrBadSort))
}

func TestCheckGeneInteractionPerRun(t *testing.T) {
	sdb := newTestDB(t)

	out, err := CheckGeneInteraction(testCtx(), sdb, request.InteractionCheck{
		ENSGNumbers: []string{"ENSG00000000001"},
		Version:     params.VersionAny,
	})
	require.NoError(t, err)

	byRun := make(map[int64]bool, len(out))
	for _, p := range out {
		byRun[p.Run.SpongeRunID] = p.HasInteraction
	}
	require.True(t, byRun[1])
	require.False(t, byRun[2])
}
