package model

import (
	"context"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/params"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

// GeneMirnaInteraction is one bipartite sponge edge at gene level.
type GeneMirnaInteraction struct {
	Run         RunInfo    `json:"sponge_run"`
	Gene        ShortGene  `json:"gene"`
	Mirna       ShortMirna `json:"mirna"`
	Coefficient float64    `json:"coefficient"`
}

// TranscriptMirnaInteraction is one bipartite sponge edge at transcript
// level.
type TranscriptMirnaInteraction struct {
	Run         RunInfo         `json:"sponge_run"`
	Transcript  ShortTranscript `json:"transcript"`
	Mirna       ShortMirna      `json:"mirna"`
	Coefficient float64         `json:"coefficient"`
}

// FindGeneMirnaInteractions returns sponge edges from the given genes to
// miRNAs. With Between set, only miRNAs touching every requested gene
// are returned.
func FindGeneMirnaInteractions(ctx context.Context, sdb *db.SpongeDB, req request.MirnaFindSpecific) ([]GeneMirnaInteraction, error) {
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

	rows, err := sdb.GeneMirnaInteractions(ctx, scope.RunIDs(), geneIDs(genes), req.Between, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No shared miRNA found for the given genes")
	}

	geneMap := make(map[int64]db.Gene, len(genes))
	for _, g := range genes {
		geneMap[g.GeneID] = g
	}
	mirnaMap, err := sdb.MirnasByIDs(ctx, mirnaIDsOfRows(rows))
	if err != nil {
		return nil, err
	}

	out := make([]GeneMirnaInteraction, 0, len(rows))
	for _, r := range rows {
		out = append(out, GeneMirnaInteraction{
			Run:         shapeRun(scope, r.SpongeRunID),
			Gene:        shapeShortGene(geneMap[r.NodeID]),
			Mirna:       shapeShortMirna(mirnaMap[r.MirnaID]),
			Coefficient: r.Coefficient,
		})
	}
	return out, nil
}

// FindTranscriptMirnaInteractions is the transcript-level counterpart of
// FindGeneMirnaInteractions.
func FindTranscriptMirnaInteractions(ctx context.Context, sdb *db.SpongeDB, req request.MirnaFindSpecific) ([]TranscriptMirnaInteraction, error) {
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

	rows, err := sdb.TranscriptMirnaInteractions(ctx, scope.RunIDs(), transcriptIDs(transcripts), req.Between, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No shared miRNA found for the given transcripts")
	}

	transcriptMap := make(map[int64]db.Transcript, len(transcripts))
	for _, t := range transcripts {
		transcriptMap[t.TranscriptID] = t
	}
	mirnaMap, err := sdb.MirnasByIDs(ctx, mirnaIDsOfRows(rows))
	if err != nil {
		return nil, err
	}

	out := make([]TranscriptMirnaInteraction, 0, len(rows))
	for _, r := range rows {
		out = append(out, TranscriptMirnaInteraction{
			Run:         shapeRun(scope, r.SpongeRunID),
			Transcript:  shapeShortTranscript(transcriptMap[r.NodeID]),
			Mirna:       shapeShortMirna(mirnaMap[r.MirnaID]),
			Coefficient: r.Coefficient,
		})
	}
	return out, nil
}

func mirnaIDsOfRows(rows []db.MirnaInteractionRow) []int64 {
	seen := make(map[int64]bool, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		if !seen[r.MirnaID] {
			seen[r.MirnaID] = true
			ids = append(ids, r.MirnaID)
		}
	}
	return ids
}

// FindMirnaCeRNAGene returns the gene-level sponge edges the given miRNAs
// participate in.
func FindMirnaCeRNAGene(ctx context.Context, sdb *db.SpongeDB, req request.MirnaCeRNA) ([]GeneMirnaInteraction, error) {
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
	mirnas, err := ResolveMirnas(ctx, sdb, req.MimatNumbers, req.HsNumbers, true)
	if err != nil {
		return nil, err
	}

	rows, err := sdb.GeneInteractionsByMirna(ctx, scope.RunIDs(), mirnaIDs(mirnas), req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No ceRNA interactions found for the given miRNAs")
	}

	mirnaMap := make(map[int64]db.Mirna, len(mirnas))
	for _, m := range mirnas {
		mirnaMap[m.MirnaID] = m
	}
	nodeIDs := make([]int64, 0, len(rows))
	seen := make(map[int64]bool, len(rows))
	for _, r := range rows {
		if !seen[r.NodeID] {
			seen[r.NodeID] = true
			nodeIDs = append(nodeIDs, r.NodeID)
		}
	}
	geneMap, err := sdb.GenesByIDs(ctx, nodeIDs)
	if err != nil {
		return nil, err
	}

	out := make([]GeneMirnaInteraction, 0, len(rows))
	for _, r := range rows {
		out = append(out, GeneMirnaInteraction{
			Run:         shapeRun(scope, r.SpongeRunID),
			Gene:        shapeShortGene(geneMap[r.NodeID]),
			Mirna:       shapeShortMirna(mirnaMap[r.MirnaID]),
			Coefficient: r.Coefficient,
		})
	}
	return out, nil
}

// FindMirnaCeRNATranscript is the transcript-level counterpart of
// FindMirnaCeRNAGene.
func FindMirnaCeRNATranscript(ctx context.Context, sdb *db.SpongeDB, req request.MirnaCeRNA) ([]TranscriptMirnaInteraction, error) {
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
	mirnas, err := ResolveMirnas(ctx, sdb, req.MimatNumbers, req.HsNumbers, true)
	if err != nil {
		return nil, err
	}

	rows, err := sdb.TranscriptInteractionsByMirna(ctx, scope.RunIDs(), mirnaIDs(mirnas), req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No ceRNA interactions found for the given miRNAs")
	}

	mirnaMap := make(map[int64]db.Mirna, len(mirnas))
	for _, m := range mirnas {
		mirnaMap[m.MirnaID] = m
	}
	nodeIDs := make([]int64, 0, len(rows))
	seen := make(map[int64]bool, len(rows))
	for _, r := range rows {
		if !seen[r.NodeID] {
			seen[r.NodeID] = true
			nodeIDs = append(nodeIDs, r.NodeID)
		}
	}
	transcriptMap, err := sdb.TranscriptsByIDs(ctx, nodeIDs)
	if err != nil {
		return nil, err
	}

	out := make([]TranscriptMirnaInteraction, 0, len(rows))
	for _, r := range rows {
		out = append(out, TranscriptMirnaInteraction{
			Run:         shapeRun(scope, r.SpongeRunID),
			Transcript:  shapeShortTranscript(transcriptMap[r.NodeID]),
			Mirna:       shapeShortMirna(mirnaMap[r.MirnaID]),
			Coefficient: r.Coefficient,
		})
	}
	return out, nil
}

// MirnaOccurrence counts how often a miRNA participates in the sponge
// edges of one run.
type MirnaOccurrence struct {
	Run         RunInfo    `json:"sponge_run"`
	Mirna       ShortMirna `json:"mirna"`
	Occurrences int64      `json:"occurences"`
}

// GetMirnaOccurrences returns participation counts under scope, optionally
// restricted to given miRNAs and a minimum count.
func GetMirnaOccurrences(ctx context.Context, sdb *db.SpongeDB, req request.MirnaOccurrences) ([]MirnaOccurrence, error) {
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

	mirnas, err := ResolveMirnas(ctx, sdb, req.MimatNumbers, req.HsNumbers, false)
	if err != nil {
		return nil, err
	}

	var sortKey *db.Sort
	if req.Sorting != "" {
		if params.ParseOccurrenceField(req.Sorting) == params.OccurrenceFieldUnknown {
			return nil, apierr.BadRequestf(apierr.ErrBadSort, "Invalid sorting key: %s", req.Sorting)
		}
		sortKey = &db.Sort{Column: "occurences", Desc: req.SortDirection == params.SortDesc}
	}

	rows, err := sdb.MirnaOccurrences(ctx, scope.RunIDs(), mirnaIDs(mirnas), req.MinOccurrences, sortKey, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFoundf("No occurrence information for the given parameters")
	}

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.MirnaID
	}
	mirnaMap, err := sdb.MirnasByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]MirnaOccurrence, 0, len(rows))
	for _, r := range rows {
		out = append(out, MirnaOccurrence{
			Run:         shapeRun(scope, r.SpongeRunID),
			Mirna:       shapeShortMirna(mirnaMap[r.MirnaID]),
			Occurrences: r.Occurrences,
		})
	}
	return out, nil
}
