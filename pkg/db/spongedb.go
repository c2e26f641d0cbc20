package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// SpongeDB wraps the read-only catalog handle. All typed row queries hang
// off this struct; nothing above this package sees SQL.
type SpongeDB struct {
	catalog *sql.DB
}

func NewSpongeDB(db *sql.DB) *SpongeDB {
	// Read-mostly workload; recycle idle handles instead of holding them.
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &SpongeDB{catalog: db}
}

func (s *SpongeDB) Ping(ctx context.Context) error {
	return s.catalog.PingContext(ctx)
}

// queryTimeout bounds every catalog read.
const queryTimeout = 30 * time.Second

func (s *SpongeDB) conn(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// Filter is one rendered-to-be statistical predicate. Column names come
// from the closed enums in the predicate builder, never from raw input.
type Filter struct {
	Column string
	Op     string // "<", ">", ">="
	Value  float64
}

// Sort is a single ORDER BY key. Internal-id tiebreaks are appended by the
// query functions themselves.
type Sort struct {
	Column string
	Desc   bool
}

func (o Sort) clause() string {
	dir := "ASC"
	if o.Desc {
		dir = "DESC"
	}
	return o.Column + " " + dir
}

// renderFilters expands filters into "AND col op ?" fragments plus args.
func renderFilters(filters []Filter) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, len(filters))
	for _, f := range filters {
		sb.WriteString(" AND ")
		sb.WriteString(f.Column)
		sb.WriteString(" ")
		sb.WriteString(f.Op)
		sb.WriteString(" ?")
		args = append(args, f.Value)
	}
	return sb.String(), args
}

// placeholders renders an IN-list of n bound parameters.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func stringArgs(vals []string) []any {
	args := make([]any, len(vals))
	for i, v := range vals {
		args[i] = v
	}
	return args
}

// scanAll runs query and feeds every row through scan, collecting errors
// from both the per-row scan and the cursor itself.
func scanAll(ctx context.Context, db *sql.DB, query string, args []any, scan func(*sql.Rows) error) error {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}
	}
	return rows.Err()
}
