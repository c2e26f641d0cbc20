package model

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
)

// newTestDB builds an in-memory catalog with two datasets at version 2,
// one run each, four genes, two miRNAs and a handful of edges. The single
// open connection keeps the memory database alive for the test.
func newTestDB(t *testing.T) *db.SpongeDB {
	t.Helper()

	raw, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { raw.Close() })

	sdb := db.NewSpongeDB(raw)
	raw.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE dataset (
		dataset_ID INTEGER PRIMARY KEY,
		disease_name TEXT NOT NULL,
		disease_type TEXT,
		disease_subtype TEXT,
		data_origin TEXT NOT NULL,
		download_url TEXT,
		sponge_db_version INTEGER NOT NULL
	);
	CREATE TABLE sponge_run (
		sponge_run_ID INTEGER PRIMARY KEY,
		dataset_ID INTEGER NOT NULL,
		variance_cutoff REAL NOT NULL,
		f_test INTEGER NOT NULL,
		f_test_p_adj_threshold REAL NOT NULL,
		coefficient_threshold REAL NOT NULL,
		coefficient_direction TEXT NOT NULL,
		min_corr REAL NOT NULL,
		number_of_samples INTEGER NOT NULL,
		number_of_datasets INTEGER NOT NULL,
		m_max INTEGER NOT NULL,
		ks TEXT NOT NULL,
		sponge_db_version INTEGER NOT NULL
	);
	CREATE TABLE gene (
		gene_ID INTEGER PRIMARY KEY,
		ensg_number TEXT NOT NULL,
		gene_symbol TEXT,
		gene_type TEXT,
		chromosome_name TEXT,
		start_pos INTEGER,
		end_pos INTEGER,
		description TEXT
	);
	CREATE TABLE transcript (
		transcript_ID INTEGER PRIMARY KEY,
		gene_ID INTEGER NOT NULL,
		enst_number TEXT NOT NULL,
		transcript_type TEXT,
		start_pos INTEGER,
		end_pos INTEGER,
		canonical_transcript INTEGER NOT NULL
	);
	CREATE TABLE mirna (
		miRNA_ID INTEGER PRIMARY KEY,
		mimat_number TEXT NOT NULL,
		hs_number TEXT NOT NULL
	);
	CREATE TABLE interactions_genegene (
		interactions_genegene_ID INTEGER PRIMARY KEY,
		sponge_run_ID INTEGER NOT NULL,
		gene_ID1 INTEGER NOT NULL,
		gene_ID2 INTEGER NOT NULL,
		p_value REAL NOT NULL,
		mscor REAL NOT NULL,
		correlation REAL NOT NULL
	);
	CREATE TABLE interactions_genemirna (
		interactions_genemirna_ID INTEGER PRIMARY KEY,
		sponge_run_ID INTEGER NOT NULL,
		gene_ID INTEGER NOT NULL,
		miRNA_ID INTEGER NOT NULL,
		coefficient REAL NOT NULL
	);
	CREATE TABLE expression_data_gene (
		expression_data_gene_ID INTEGER PRIMARY KEY,
		dataset_ID INTEGER NOT NULL,
		gene_ID INTEGER NOT NULL,
		sample_ID TEXT NOT NULL,
		expr_value REAL NOT NULL
	);
	CREATE TABLE network_analysis_gene (
		network_analysis_gene_ID INTEGER PRIMARY KEY,
		sponge_run_ID INTEGER NOT NULL,
		gene_ID INTEGER NOT NULL,
		betweenness REAL NOT NULL,
		node_degree REAL NOT NULL,
		eigenvector REAL NOT NULL
	);
	CREATE TABLE comparison (
		comparison_ID INTEGER PRIMARY KEY,
		dataset_ID_1 INTEGER NOT NULL,
		dataset_ID_2 INTEGER NOT NULL,
		condition_1 TEXT,
		condition_2 TEXT,
		gene_transcript TEXT NOT NULL
	);
	CREATE TABLE differential_expression (
		differential_expression_ID INTEGER PRIMARY KEY,
		comparison_ID INTEGER NOT NULL,
		gene_ID INTEGER NOT NULL,
		base_mean REAL NOT NULL,
		log2_fold_change REAL NOT NULL,
		lfc_se REAL NOT NULL,
		stat REAL NOT NULL,
		p_value REAL NOT NULL,
		p_adj REAL NOT NULL
	);
	`
	if _, err := raw.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	seed := `
	INSERT INTO dataset VALUES
		(1, 'breast invasive carcinoma', 'cancer', NULL, 'TCGA', NULL, 2),
		(2, 'lung adenocarcinoma', 'cancer', NULL, 'TCGA', NULL, 2),
		(3, 'breast invasive carcinoma', 'cancer', NULL, 'TCGA', NULL, 1);
	INSERT INTO sponge_run VALUES
		(1, 1, 0.8, 1, 0.05, 0.05, 'positive', 0.3, 500, 3, 8, '[]', 2),
		(2, 2, 0.8, 1, 0.05, 0.05, 'positive', 0.3, 400, 3, 8, '[]', 2),
		(3, 3, 0.8, 1, 0.05, 0.05, 'positive', 0.3, 450, 3, 8, '[]', 1);
	INSERT INTO gene VALUES
		(1, 'ENSG00000000001', 'AAA1', 'protein_coding', '1', 100, 200, NULL),
		(2, 'ENSG00000000002', 'BBB2', 'protein_coding', '1', 300, 400, NULL),
		(3, 'ENSG00000000003', 'CCC3', 'protein_coding', '2', 100, 200, NULL),
		(4, 'ENSG00000000004', 'DDD4', 'protein_coding', '2', 300, 400, NULL);
	INSERT INTO transcript VALUES
		(1, 1, 'ENST00000000001', 'protein_coding', 100, 200, 1),
		(2, 1, 'ENST00000000002', 'retained_intron', 120, 180, 0),
		(3, 2, 'ENST00000000003', 'protein_coding', 300, 400, 1);
	INSERT INTO mirna VALUES
		(1, 'MIMAT0000001', 'hsa-miR-1'),
		(2, 'MIMAT0000002', 'hsa-miR-2');
	INSERT INTO interactions_genegene VALUES
		(1, 1, 1, 2, 0.001, 0.25, 0.70),
		(2, 1, 1, 3, 0.200, 0.10, 0.40),
		(3, 1, 2, 3, 0.010, 0.15, 0.55),
		(4, 1, 3, 4, 0.040, 0.05, 0.35);
	INSERT INTO interactions_genemirna VALUES
		(1, 1, 1, 1, -0.4),
		(2, 1, 2, 1, -0.3),
		(3, 1, 1, 2, -0.2),
		(4, 3, 1, 1, -0.1);
	INSERT INTO expression_data_gene VALUES
		(1, 1, 1, 'TCGA-01', 5.0),
		(2, 1, 1, 'TCGA-02', 5.1),
		(3, 1, 2, 'TCGA-01', 1.0),
		(4, 1, 2, 'TCGA-02', 0.9);
	INSERT INTO network_analysis_gene VALUES
		(1, 1, 1, 0.90, 12, 0.80),
		(2, 1, 2, 0.50, 8, 0.60),
		(3, 1, 3, 0.70, 10, 0.70),
		(4, 1, 4, 0.10, 2, 0.10);
	INSERT INTO comparison VALUES
		(1, 1, 2, 'disease', 'disease', 'gene');
	INSERT INTO differential_expression VALUES
		(1, 1, 1, 120.5, 1.5, 0.2, 2.0, 0.001, 0.004),
		(2, 1, 2, 80.0, -0.7, 0.3, -1.1, 0.030, 0.080);
	`
	if _, err := raw.Exec(seed); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return sdb
}

func testCtx() context.Context { return context.Background() }
