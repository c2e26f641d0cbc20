package render

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zapcore"

	"github.com/daisybio/SPONGE-web-backend-sub000/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.InitLogger(zapcore.ErrorLevel); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// flushRecorder counts flushes so per-element emission is observable.
type flushRecorder struct {
	*httptest.ResponseRecorder
	flushes int
}

func (f *flushRecorder) Flush() { f.flushes++ }

func TestStreamArrayEmitsElementwise(t *testing.T) {
	rec := &flushRecorder{ResponseRecorder: httptest.NewRecorder()}
	c, _ := gin.CreateTestContext(rec)

	rows := []map[string]any{{"v": 1.0}, {"v": 2.0}, {"v": 3.0}}
	data := StreamArray(c, len(rows), func(i int) any { return rows[i] })
	if data == nil {
		t.Fatalf("StreamArray returned nil for a serializable payload")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.flushes < len(rows) {
		t.Fatalf("flushes = %d, want at least one per element (%d)", rec.flushes, len(rows))
	}

	var got []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("streamed body is not a JSON array: %v (body %q)", err, rec.Body.String())
	}
	if len(got) != len(rows) || got[0]["v"] != 1.0 || got[2]["v"] != 3.0 {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if rec.Body.String() != string(data) {
		t.Fatalf("returned bytes differ from the written body")
	}
}

func TestStreamArrayEmptyResult(t *testing.T) {
	rec := &flushRecorder{ResponseRecorder: httptest.NewRecorder()}
	c, _ := gin.CreateTestContext(rec)

	data := StreamArray(c, 0, func(i int) any { return nil })
	if string(data) != "[]" {
		t.Fatalf("empty stream returned %q, want []", data)
	}
	if rec.Body.String() != "[]" {
		t.Fatalf("empty stream body = %q, want []", rec.Body.String())
	}
}
