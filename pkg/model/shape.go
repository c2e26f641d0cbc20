package model

import (
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
)

// Response projections. Short forms carry identifiers only; long forms
// embed the owning dataset including its version tag so clients can verify
// the scope of every row.

type ShortGene struct {
	ENSGNumber string `json:"ensg_number"`
	GeneSymbol string `json:"gene_symbol,omitempty"`
}

type LongGene struct {
	ENSGNumber  string `json:"ensg_number"`
	GeneSymbol  string `json:"gene_symbol,omitempty"`
	GeneType    string `json:"gene_type,omitempty"`
	Chromosome  string `json:"chromosome_name,omitempty"`
	StartPos    int64  `json:"start_pos,omitempty"`
	EndPos      int64  `json:"end_pos,omitempty"`
	Description string `json:"description,omitempty"`
}

type ShortTranscript struct {
	ENSTNumber string `json:"enst_number"`
}

type LongTranscript struct {
	ENSTNumber     string    `json:"enst_number"`
	TranscriptType string    `json:"transcript_type,omitempty"`
	StartPos       int64     `json:"start_pos,omitempty"`
	EndPos         int64     `json:"end_pos,omitempty"`
	Canonical      bool      `json:"canonical_transcript"`
	Gene           ShortGene `json:"gene"`
}

type ShortMirna struct {
	MimatNumber string `json:"mimat_number"`
	HsNumber    string `json:"hs_number"`
}

// DatasetInfo is the embedded dataset form; the version tag is mandatory.
type DatasetInfo struct {
	DatasetID      int64  `json:"dataset_ID"`
	DiseaseName    string `json:"disease_name"`
	DiseaseSubtype string `json:"disease_subtype,omitempty"`
	DataOrigin     string `json:"data_origin"`
	Version        int64  `json:"sponge_db_version"`
}

// RunInfo embeds the sponge run and its dataset.
type RunInfo struct {
	SpongeRunID int64       `json:"sponge_run_ID"`
	Dataset     DatasetInfo `json:"dataset"`
}

func shapeShortGene(g db.Gene) ShortGene {
	return ShortGene{ENSGNumber: g.ENSGNumber, GeneSymbol: g.GeneSymbol.String}
}

func shapeLongGene(g db.Gene) LongGene {
	return LongGene{
		ENSGNumber:  g.ENSGNumber,
		GeneSymbol:  g.GeneSymbol.String,
		GeneType:    g.GeneType.String,
		Chromosome:  g.Chromosome.String,
		StartPos:    g.StartPos.Int64,
		EndPos:      g.EndPos.Int64,
		Description: g.Description.String,
	}
}

func shapeShortTranscript(t db.Transcript) ShortTranscript {
	return ShortTranscript{ENSTNumber: t.ENSTNumber}
}

func shapeLongTranscript(t db.Transcript, gene db.Gene) LongTranscript {
	return LongTranscript{
		ENSTNumber:     t.ENSTNumber,
		TranscriptType: t.TranscriptType.String,
		StartPos:       t.StartPos.Int64,
		EndPos:         t.EndPos.Int64,
		Canonical:      t.Canonical,
		Gene:           shapeShortGene(gene),
	}
}

func shapeShortMirna(m db.Mirna) ShortMirna {
	return ShortMirna{MimatNumber: m.MimatNumber, HsNumber: m.HsNumber}
}

func shapeDataset(d db.Dataset) DatasetInfo {
	return DatasetInfo{
		DatasetID:      d.DatasetID,
		DiseaseName:    d.DiseaseName,
		DiseaseSubtype: d.DiseaseSubtype.String,
		DataOrigin:     d.DataOrigin,
		Version:        d.Version,
	}
}

func shapeRun(scope *Scope, runID int64) RunInfo {
	info := RunInfo{SpongeRunID: runID}
	if d, ok := scope.DatasetForRun(runID); ok {
		info.Dataset = shapeDataset(d)
	}
	return info
}
