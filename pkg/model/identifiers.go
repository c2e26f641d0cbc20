package model

import (
	"context"
	"strings"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
)

// Identifier resolution. Every endpoint that accepts biological ids goes
// through here: at most one identifier family per call, exact membership
// lookup only. Prefix expansion belongs to Autocomplete.

// ResolveGenes maps ensg numbers or gene symbols to catalog genes.
// Exactly one of the two lists may be non-empty; required makes an empty
// call an error instead of "no filter".
func ResolveGenes(ctx context.Context, sdb *db.SpongeDB, ensgs, symbols []string, required bool) ([]db.Gene, error) {
	if len(ensgs) > 0 && len(symbols) > 0 {
		return nil, apierr.BadRequestf(apierr.ErrAmbiguousIdentifier,
			"More than one of the parameters ensg_number and gene_symbol is an input")
	}
	if len(ensgs) == 0 && len(symbols) == 0 {
		if required {
			return nil, apierr.BadRequestf(apierr.ErrMissingIdentifier,
				"One of the parameters ensg_number or gene_symbol is required")
		}
		return nil, nil
	}

	var (
		genes []db.Gene
		err   error
	)
	if len(ensgs) > 0 {
		genes, err = sdb.GenesByENSG(ctx, ensgs)
	} else {
		genes, err = sdb.GenesBySymbol(ctx, symbols)
	}
	if err != nil {
		return nil, err
	}
	if len(genes) == 0 {
		return nil, apierr.NotFoundf("No gene found for the given identifiers")
	}
	return genes, nil
}

// ResolveTranscripts maps enst numbers to catalog transcripts.
func ResolveTranscripts(ctx context.Context, sdb *db.SpongeDB, ensts []string, required bool) ([]db.Transcript, error) {
	if len(ensts) == 0 {
		if required {
			return nil, apierr.BadRequestf(apierr.ErrMissingIdentifier,
				"The parameter enst_number is required")
		}
		return nil, nil
	}
	transcripts, err := sdb.TranscriptsByENST(ctx, ensts)
	if err != nil {
		return nil, err
	}
	if len(transcripts) == 0 {
		return nil, apierr.NotFoundf("No transcript found for the given enst_number")
	}
	return transcripts, nil
}

// ResolveMirnas maps MIMAT accessions or hsa numbers to catalog miRNAs.
func ResolveMirnas(ctx context.Context, sdb *db.SpongeDB, mimats, hsNumbers []string, required bool) ([]db.Mirna, error) {
	if len(mimats) > 0 && len(hsNumbers) > 0 {
		return nil, apierr.BadRequestf(apierr.ErrAmbiguousIdentifier,
			"More than one of the parameters mimat_number and hs_number is an input")
	}
	if len(mimats) == 0 && len(hsNumbers) == 0 {
		if required {
			return nil, apierr.BadRequestf(apierr.ErrMissingIdentifier,
				"One of the parameters mimat_number or hs_number is required")
		}
		return nil, nil
	}

	var (
		mirnas []db.Mirna
		err    error
	)
	if len(mimats) > 0 {
		mirnas, err = sdb.MirnasByMimat(ctx, mimats)
	} else {
		mirnas, err = sdb.MirnasByHsNumber(ctx, hsNumbers)
	}
	if err != nil {
		return nil, err
	}
	if len(mirnas) == 0 {
		return nil, apierr.NotFoundf("No miRNA found for the given identifiers")
	}
	return mirnas, nil
}

func geneIDs(genes []db.Gene) []int64 {
	ids := make([]int64, len(genes))
	for i, g := range genes {
		ids[i] = g.GeneID
	}
	return ids
}

func transcriptIDs(transcripts []db.Transcript) []int64 {
	ids := make([]int64, len(transcripts))
	for i, t := range transcripts {
		ids[i] = t.TranscriptID
	}
	return ids
}

func mirnaIDs(mirnas []db.Mirna) []int64 {
	ids := make([]int64, len(mirnas))
	for i, m := range mirnas {
		ids[i] = m.MirnaID
	}
	return ids
}

// SearchKind classifies a free-text autocomplete input by leading token.
type SearchKind int

const (
	SearchKindENSG SearchKind = iota
	SearchKindENST
	SearchKindHsa
	SearchKindMimat
	SearchKindSymbol
)

// ClassifySearch is the autocomplete decision table. It is exhaustive and
// never consults the catalog: anything that is not a known accession
// prefix is treated as a gene symbol.
func ClassifySearch(searchString string) SearchKind {
	upper := strings.ToUpper(searchString)
	switch {
	case strings.HasPrefix(upper, "ENSG"):
		return SearchKindENSG
	case strings.HasPrefix(upper, "ENST"):
		return SearchKindENST
	case strings.HasPrefix(upper, "HSA"):
		return SearchKindHsa
	case strings.HasPrefix(upper, "MIMAT"):
		return SearchKindMimat
	default:
		return SearchKindSymbol
	}
}

// AutocompleteLimit caps prefix matches per search.
const AutocompleteLimit = 100

// AutocompleteHit is a single suggestion in the string search response.
type AutocompleteHit struct {
	ENSGNumber  string `json:"ensg_number,omitempty"`
	GeneSymbol  string `json:"gene_symbol,omitempty"`
	ENSTNumber  string `json:"enst_number,omitempty"`
	MimatNumber string `json:"mimat_number,omitempty"`
	HsNumber    string `json:"hs_number,omitempty"`
}

// Autocomplete returns up to AutocompleteLimit prefix matches for the
// given free-text input.
func Autocomplete(ctx context.Context, sdb *db.SpongeDB, searchString string) ([]AutocompleteHit, error) {
	if searchString == "" {
		return nil, apierr.BadRequestf(apierr.ErrMissingIdentifier,
			"The parameter searchString is required")
	}

	var hits []AutocompleteHit
	switch ClassifySearch(searchString) {
	case SearchKindENSG:
		genes, err := sdb.GenesByPrefix(ctx, "ensg_number", searchString, AutocompleteLimit)
		if err != nil {
			return nil, err
		}
		for _, g := range genes {
			hits = append(hits, AutocompleteHit{ENSGNumber: g.ENSGNumber, GeneSymbol: g.GeneSymbol.String})
		}
	case SearchKindENST:
		transcripts, err := sdb.TranscriptsByPrefix(ctx, searchString, AutocompleteLimit)
		if err != nil {
			return nil, err
		}
		for _, t := range transcripts {
			hits = append(hits, AutocompleteHit{ENSTNumber: t.ENSTNumber})
		}
	case SearchKindHsa:
		mirnas, err := sdb.MirnasByPrefix(ctx, "hs_number", searchString, AutocompleteLimit)
		if err != nil {
			return nil, err
		}
		for _, m := range mirnas {
			hits = append(hits, AutocompleteHit{MimatNumber: m.MimatNumber, HsNumber: m.HsNumber})
		}
	case SearchKindMimat:
		mirnas, err := sdb.MirnasByPrefix(ctx, "mimat_number", searchString, AutocompleteLimit)
		if err != nil {
			return nil, err
		}
		for _, m := range mirnas {
			hits = append(hits, AutocompleteHit{MimatNumber: m.MimatNumber, HsNumber: m.HsNumber})
		}
	default:
		genes, err := sdb.GenesByPrefix(ctx, "gene_symbol", searchString, AutocompleteLimit)
		if err != nil {
			return nil, err
		}
		for _, g := range genes {
			hits = append(hits, AutocompleteHit{ENSGNumber: g.ENSGNumber, GeneSymbol: g.GeneSymbol.String})
		}
	}

	if len(hits) == 0 {
		return nil, apierr.NotFoundf("No matches for the given searchString")
	}
	return hits, nil
}

// AutocompleteTranscript restricts the prefix search to transcripts.
func AutocompleteTranscript(ctx context.Context, sdb *db.SpongeDB, searchString string) ([]AutocompleteHit, error) {
	if searchString == "" {
		return nil, apierr.BadRequestf(apierr.ErrMissingIdentifier,
			"The parameter searchString is required")
	}
	transcripts, err := sdb.TranscriptsByPrefix(ctx, searchString, AutocompleteLimit)
	if err != nil {
		return nil, err
	}
	if len(transcripts) == 0 {
		return nil, apierr.NotFoundf("No matches for the given searchString")
	}
	hits := make([]AutocompleteHit, len(transcripts))
	for i, t := range transcripts {
		hits[i] = AutocompleteHit{ENSTNumber: t.ENSTNumber}
	}
	return hits, nil
}
