package db

import (
	"context"
	"database/sql"
	"strings"
)

type Gene struct {
	GeneID      int64          `json:"-"`
	ENSGNumber  string         `json:"ensg_number"`
	GeneSymbol  sql.NullString `json:"-"`
	GeneType    sql.NullString `json:"-"`
	Chromosome  sql.NullString `json:"-"`
	StartPos    sql.NullInt64  `json:"-"`
	EndPos      sql.NullInt64  `json:"-"`
	Description sql.NullString `json:"-"`
}

type Transcript struct {
	TranscriptID   int64          `json:"-"`
	GeneID         int64          `json:"-"`
	ENSTNumber     string         `json:"enst_number"`
	TranscriptType sql.NullString `json:"-"`
	StartPos       sql.NullInt64  `json:"-"`
	EndPos         sql.NullInt64  `json:"-"`
	Canonical      bool           `json:"-"`
}

type Mirna struct {
	MirnaID     int64  `json:"-"`
	MimatNumber string `json:"mimat_number"`
	HsNumber    string `json:"hs_number"`
}

const geneColumns = `gene_ID, ensg_number, gene_symbol, gene_type,
	chromosome_name, start_pos, end_pos, description`

func scanGene(rows *sql.Rows, g *Gene) error {
	return rows.Scan(&g.GeneID, &g.ENSGNumber, &g.GeneSymbol, &g.GeneType,
		&g.Chromosome, &g.StartPos, &g.EndPos, &g.Description)
}

func (s *SpongeDB) genesWhere(ctx context.Context, where string, args []any) ([]Gene, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT ` + geneColumns + ` FROM gene WHERE ` + where + ` ORDER BY gene_ID`
	var out []Gene
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var g Gene
		if err := scanGene(rows, &g); err != nil {
			return err
		}
		out = append(out, g)
		return nil
	})
	return out, err
}

// GenesByENSG resolves exact Ensembl gene ids.
func (s *SpongeDB) GenesByENSG(ctx context.Context, ensgs []string) ([]Gene, error) {
	if len(ensgs) == 0 {
		return nil, nil
	}
	return s.genesWhere(ctx,
		`ensg_number IN (`+placeholders(len(ensgs))+`)`, stringArgs(ensgs))
}

// GenesBySymbol resolves exact gene symbols.
func (s *SpongeDB) GenesBySymbol(ctx context.Context, symbols []string) ([]Gene, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	return s.genesWhere(ctx,
		`gene_symbol IN (`+placeholders(len(symbols))+`)`, stringArgs(symbols))
}

// GenesByIDs loads genes for embedding, keyed by internal id.
func (s *SpongeDB) GenesByIDs(ctx context.Context, ids []int64) (map[int64]Gene, error) {
	if len(ids) == 0 {
		return map[int64]Gene{}, nil
	}
	list, err := s.genesWhere(ctx,
		`gene_ID IN (`+placeholders(len(ids))+`)`, int64Args(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[int64]Gene, len(list))
	for _, g := range list {
		out[g.GeneID] = g
	}
	return out, nil
}

// GenesByPrefix backs the autocomplete search: case-insensitive prefix
// match on either ensg number or symbol, capped by limit.
func (s *SpongeDB) GenesByPrefix(ctx context.Context, column, prefix string, limit int) ([]Gene, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	// column is one of the classifier's fixed outputs, never user input.
	query := `SELECT ` + geneColumns + ` FROM gene
		WHERE LOWER(` + column + `) LIKE ? ORDER BY ` + column + ` LIMIT ?`
	args := []any{strings.ToLower(prefix) + "%", limit}

	var out []Gene
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var g Gene
		if err := scanGene(rows, &g); err != nil {
			return err
		}
		out = append(out, g)
		return nil
	})
	return out, err
}

const transcriptColumns = `transcript_ID, gene_ID, enst_number,
	transcript_type, start_pos, end_pos, canonical_transcript`

func scanTranscript(rows *sql.Rows, t *Transcript) error {
	return rows.Scan(&t.TranscriptID, &t.GeneID, &t.ENSTNumber,
		&t.TranscriptType, &t.StartPos, &t.EndPos, &t.Canonical)
}

func (s *SpongeDB) transcriptsWhere(ctx context.Context, where string, args []any) ([]Transcript, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT ` + transcriptColumns + ` FROM transcript WHERE ` + where + ` ORDER BY transcript_ID`
	var out []Transcript
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var t Transcript
		if err := scanTranscript(rows, &t); err != nil {
			return err
		}
		out = append(out, t)
		return nil
	})
	return out, err
}

func (s *SpongeDB) TranscriptsByENST(ctx context.Context, ensts []string) ([]Transcript, error) {
	if len(ensts) == 0 {
		return nil, nil
	}
	return s.transcriptsWhere(ctx,
		`enst_number IN (`+placeholders(len(ensts))+`)`, stringArgs(ensts))
}

func (s *SpongeDB) TranscriptsByGeneIDs(ctx context.Context, geneIDs []int64) ([]Transcript, error) {
	if len(geneIDs) == 0 {
		return nil, nil
	}
	return s.transcriptsWhere(ctx,
		`gene_ID IN (`+placeholders(len(geneIDs))+`)`, int64Args(geneIDs))
}

func (s *SpongeDB) TranscriptsByIDs(ctx context.Context, ids []int64) (map[int64]Transcript, error) {
	if len(ids) == 0 {
		return map[int64]Transcript{}, nil
	}
	list, err := s.transcriptsWhere(ctx,
		`transcript_ID IN (`+placeholders(len(ids))+`)`, int64Args(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[int64]Transcript, len(list))
	for _, t := range list {
		out[t.TranscriptID] = t
	}
	return out, nil
}

// TranscriptsByPrefix backs autocomplete on enst numbers.
func (s *SpongeDB) TranscriptsByPrefix(ctx context.Context, prefix string, limit int) ([]Transcript, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT ` + transcriptColumns + ` FROM transcript
		WHERE LOWER(enst_number) LIKE ? ORDER BY enst_number LIMIT ?`
	args := []any{strings.ToLower(prefix) + "%", limit}

	var out []Transcript
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var t Transcript
		if err := scanTranscript(rows, &t); err != nil {
			return err
		}
		out = append(out, t)
		return nil
	})
	return out, err
}

func (s *SpongeDB) mirnasWhere(ctx context.Context, where string, args []any) ([]Mirna, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT miRNA_ID, mimat_number, hs_number FROM mirna WHERE ` + where + ` ORDER BY miRNA_ID`
	var out []Mirna
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var m Mirna
		if err := rows.Scan(&m.MirnaID, &m.MimatNumber, &m.HsNumber); err != nil {
			return err
		}
		out = append(out, m)
		return nil
	})
	return out, err
}

func (s *SpongeDB) MirnasByMimat(ctx context.Context, mimats []string) ([]Mirna, error) {
	if len(mimats) == 0 {
		return nil, nil
	}
	return s.mirnasWhere(ctx,
		`mimat_number IN (`+placeholders(len(mimats))+`)`, stringArgs(mimats))
}

func (s *SpongeDB) MirnasByHsNumber(ctx context.Context, hsNumbers []string) ([]Mirna, error) {
	if len(hsNumbers) == 0 {
		return nil, nil
	}
	return s.mirnasWhere(ctx,
		`hs_number IN (`+placeholders(len(hsNumbers))+`)`, stringArgs(hsNumbers))
}

func (s *SpongeDB) MirnasByIDs(ctx context.Context, ids []int64) (map[int64]Mirna, error) {
	if len(ids) == 0 {
		return map[int64]Mirna{}, nil
	}
	list, err := s.mirnasWhere(ctx,
		`miRNA_ID IN (`+placeholders(len(ids))+`)`, int64Args(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[int64]Mirna, len(list))
	for _, m := range list {
		out[m.MirnaID] = m
	}
	return out, nil
}

// MirnasByPrefix backs autocomplete on either identifier column.
func (s *SpongeDB) MirnasByPrefix(ctx context.Context, column, prefix string, limit int) ([]Mirna, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT miRNA_ID, mimat_number, hs_number FROM mirna
		WHERE LOWER(` + column + `) LIKE ? ORDER BY ` + column + ` LIMIT ?`
	args := []any{strings.ToLower(prefix) + "%", limit}

	var out []Mirna
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var m Mirna
		if err := rows.Scan(&m.MirnaID, &m.MimatNumber, &m.HsNumber); err != nil {
			return err
		}
		out = append(out, m)
		return nil
	})
	return out, err
}
