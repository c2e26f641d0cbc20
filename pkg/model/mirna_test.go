package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/params"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

func TestFindGeneMirnaInteractions(t *testing.T) {
	sdb := newTestDB(t)

	out, err := FindGeneMirnaInteractions(testCtx(), sdb, request.MirnaFindSpecific{
		Scope:       geneScope(),
		ENSGNumbers: []string{"ENSG00000000001"},
		Limit:       100,
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "MIMAT0000001", out[0].Mirna.MimatNumber)
	require.Equal(t, "MIMAT0000002", out[1].Mirna.MimatNumber)
}

func TestFindGeneMirnaInteractionsBetween(t *testing.T) {
	sdb := newTestDB(t)

	// miR-1 touches both genes, miR-2 only gene 1. With between set, only
	// the shared miRNA survives, once per touched gene.
	out, err := FindGeneMirnaInteractions(testCtx(), sdb, request.MirnaFindSpecific{
		Scope:       geneScope(),
		ENSGNumbers: []string{"ENSG00000000001", "ENSG00000000002"},
		Between:     true,
		Limit:       100,
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, row := range out {
		require.Equal(t, "MIMAT0000001", row.Mirna.MimatNumber)
	}
}

func TestFindGeneMirnaInteractionsBetweenIsPerRun(t *testing.T) {
	sdb := newTestDB(t)

	// Across all breast runs miR-1 touches both genes, but within run 3
	// it only touches gene 1. The run-3 edge must not ride along on the
	// coverage run 1 provides.
	out, err := FindGeneMirnaInteractions(testCtx(), sdb, request.MirnaFindSpecific{
		Scope:       request.Scope{DiseaseName: "breast", Version: params.VersionAny},
		ENSGNumbers: []string{"ENSG00000000001", "ENSG00000000002"},
		Between:     true,
		Limit:       100,
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, row := range out {
		require.Equal(t, int64(1), row.Run.SpongeRunID)
	}
}

func TestFindMirnaCeRNAGene(t *testing.T) {
	sdb := newTestDB(t)

	out, err := FindMirnaCeRNAGene(testCtx(), sdb, request.MirnaCeRNA{
		Scope:        geneScope(),
		MimatNumbers: []string{"MIMAT0000002"},
		Limit:        100,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "ENSG00000000001", out[0].Gene.ENSGNumber)
}
