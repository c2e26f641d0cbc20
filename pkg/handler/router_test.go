package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zapcore"

	_ "modernc.org/sqlite"

	"github.com/daisybio/SPONGE-web-backend-sub000/logger"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/cache"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.InitLogger(zapcore.ErrorLevel); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// newTestRouter serves the route table over a tiny in-memory catalog:
// one dataset, one run, two genes, one interaction, a few expression
// measurements.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	raw, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { raw.Close() })

	sdb := db.NewSpongeDB(raw)
	raw.SetMaxOpenConns(1)

	stmts := `
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
	CREATE TABLE interactions_genegene (
		interactions_genegene_ID INTEGER PRIMARY KEY,
		sponge_run_ID INTEGER NOT NULL,
		gene_ID1 INTEGER NOT NULL,
		gene_ID2 INTEGER NOT NULL,
		p_value REAL NOT NULL,
		mscor REAL NOT NULL,
		correlation REAL NOT NULL
	);
	CREATE TABLE expression_data_gene (
		expression_data_gene_ID INTEGER PRIMARY KEY,
		dataset_ID INTEGER NOT NULL,
		gene_ID INTEGER NOT NULL,
		sample_ID TEXT NOT NULL,
		expr_value REAL NOT NULL
	);
	INSERT INTO dataset VALUES (1, 'breast invasive carcinoma', 'cancer', NULL, 'TCGA', NULL, 2);
	INSERT INTO sponge_run VALUES (1, 1, 0.8, 1, 0.05, 0.05, 'positive', 0.3, 500, 3, 8, '[]', 2);
	INSERT INTO gene VALUES
		(1, 'ENSG00000000001', 'AAA1', 'protein_coding', '1', 100, 200, NULL),
		(2, 'ENSG00000000002', 'BBB2', 'protein_coding', '1', 300, 400, NULL);
	INSERT INTO interactions_genegene VALUES (1, 1, 1, 2, 0.001, 0.25, 0.70);
	INSERT INTO expression_data_gene VALUES
		(1, 1, 1, 'TCGA-01', 5.0),
		(2, 1, 1, 'TCGA-02', 5.1),
		(3, 1, 2, 'TCGA-01', 1.0);
	`
	if _, err := raw.Exec(stmts); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	dbctx := &DBContext{
		DB:    sdb,
		Cache: cache.New(64, time.Minute),
	}
	return NewRouter(dbctx)
}

func get(t *testing.T, r *gin.Engine, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apierr.Envelope {
	t.Helper()
	var env apierr.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, w.Body.String())
	}
	return env
}

func TestHealthcheck(t *testing.T) {
	r := newTestRouter(t)
	w := get(t, r, "/healthcheck")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestGetDatasets(t *testing.T) {
	r := newTestRouter(t)
	w := get(t, r, "/dataset")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var out []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0]["disease_name"] != "breast invasive carcinoma" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	// The legacy alias serves the same resource.
	alias := get(t, r, "/datasetInformation")
	if alias.Code != http.StatusOK {
		t.Fatalf("alias status = %d, want 200", alias.Code)
	}
}

func TestFindAllReturnsInteractions(t *testing.T) {
	r := newTestRouter(t)
	w := get(t, r, "/ceRNAInteraction/findAll?disease_name=breast&ensg_number=ENSG00000000001")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	var out []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d interactions, want 1", len(out))
	}
}

func TestFindAllUnknownDiseaseNameIsBadRequest(t *testing.T) {
	r := newTestRouter(t)
	w := get(t, r, "/ceRNAInteraction/findAll?disease_name=no+such+disease")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Title != "Bad Request" || env.Status != http.StatusBadRequest {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestFindAllLimitTooHighIsBadRequest(t *testing.T) {
	r := newTestRouter(t)
	w := get(t, r, "/ceRNAInteraction/findAll?disease_name=breast&limit=20000")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
	}
}

func TestFindAllIdentifierFamiliesAreExclusive(t *testing.T) {
	r := newTestRouter(t)
	w := get(t, r, "/ceRNAInteraction/findAll?disease_name=breast&ensg_number=ENSG00000000001&gene_symbol=AAA1")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
	}
}

func TestNothingMatchedIsNoContentEnvelope(t *testing.T) {
	r := newTestRouter(t)
	w := get(t, r, "/ceRNAInteraction/findAll?disease_name=breast&ensg_number=ENSG99999999999")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Title != "No Content" || len(env.Data) != 0 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestCachedResponseIsStable(t *testing.T) {
	r := newTestRouter(t)
	first := get(t, r, "/dataset?disease_name=breast")
	second := get(t, r, "/dataset?disease_name=breast")
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("status = %d / %d, want 200", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("cache changed the response body")
	}
}

func TestGetCeRNAExpressionStreamsArray(t *testing.T) {
	r := newTestRouter(t)
	w := get(t, r, "/exprValue/getceRNA?disease_name=breast&ensg_number=ENSG00000000001")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}

	// The streamed body is one JSON array, element per measurement.
	var out []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v (body %q)", err, w.Body.String())
	}
	if len(out) != 2 {
		t.Fatalf("got %d measurements, want 2", len(out))
	}
	if out[0]["sample_ID"] != "TCGA-01" || out[0]["expr_value"] != 5.0 {
		t.Fatalf("unexpected first element: %v", out[0])
	}

	// A repeat of the request is served from the cached body verbatim.
	second := get(t, r, "/exprValue/getceRNA?disease_name=breast&ensg_number=ENSG00000000001")
	if second.Code != http.StatusOK || second.Body.String() != w.Body.String() {
		t.Fatalf("cached replay differs: %d %q", second.Code, second.Body.String())
	}
}

func TestStringSearchRequiresSearchString(t *testing.T) {
	r := newTestRouter(t)
	w := get(t, r, "/stringSearch")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
	}
}
