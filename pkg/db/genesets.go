package db

import (
	"context"
	"database/sql"
)

// Annotation is a gene-set membership record (hallmark, GO, WikiPathway).
type Annotation struct {
	GeneID int64
	Key    string
	Label  sql.NullString
}

type annotationTable struct {
	table    string
	keyCol   string
	labelCol string // empty when the table has no description column
}

var (
	hallmarkAnnotations    = annotationTable{table: "hallmark", keyCol: "hallmark"}
	goAnnotations          = annotationTable{table: "gene_ontology", keyCol: "gene_ontology_symbol", labelCol: "description"}
	wikipathwayAnnotations = annotationTable{table: "wikipathway", keyCol: "wp_key"}
)

func (s *SpongeDB) annotations(ctx context.Context, at annotationTable, geneIDs []int64) ([]Annotation, error) {
	if len(geneIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	cols := `gene_ID, ` + at.keyCol
	if at.labelCol != "" {
		cols += `, ` + at.labelCol
	}
	query := `SELECT ` + cols + ` FROM ` + at.table + `
		WHERE gene_ID IN (` + placeholders(len(geneIDs)) + `)
		ORDER BY gene_ID, ` + at.keyCol

	var out []Annotation
	err := scanAll(ctx, s.catalog, query, int64Args(geneIDs), func(rows *sql.Rows) error {
		var a Annotation
		if at.labelCol != "" {
			if err := rows.Scan(&a.GeneID, &a.Key, &a.Label); err != nil {
				return err
			}
		} else {
			if err := rows.Scan(&a.GeneID, &a.Key); err != nil {
				return err
			}
		}
		out = append(out, a)
		return nil
	})
	return out, err
}

func (s *SpongeDB) HallmarkAnnotations(ctx context.Context, geneIDs []int64) ([]Annotation, error) {
	return s.annotations(ctx, hallmarkAnnotations, geneIDs)
}

func (s *SpongeDB) GeneOntologyAnnotations(ctx context.Context, geneIDs []int64) ([]Annotation, error) {
	return s.annotations(ctx, goAnnotations, geneIDs)
}

func (s *SpongeDB) WikipathwayAnnotations(ctx context.Context, geneIDs []int64) ([]Annotation, error) {
	return s.annotations(ctx, wikipathwayAnnotations, geneIDs)
}
