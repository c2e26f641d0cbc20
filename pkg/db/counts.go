package db

import (
	"context"
	"database/sql"
)

// CountRow is the degree-like interaction count of one node in one run.
type CountRow struct {
	CountID     int64
	SpongeRunID int64
	NodeID      int64
	CountAll    int64
	CountSign   int64
}

type countTable struct {
	table   string
	idCol   string
	nodeCol string
}

var (
	geneCounts = countTable{
		table:   "gene_counts",
		idCol:   "gene_counts_ID",
		nodeCol: "gene_ID",
	}
	transcriptCounts = countTable{
		table:   "transcript_counts",
		idCol:   "transcript_counts_ID",
		nodeCol: "transcript_ID",
	}
)

func (s *SpongeDB) nodeCounts(ctx context.Context, ct countTable, runIDs, nodeIDs []int64,
	minCountAll, minCountSign int64, limit, offset int) ([]CountRow, error) {

	if len(runIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `SELECT ` + ct.idCol + `, sponge_run_ID, ` + ct.nodeCol + `, count_all, count_sign
		FROM ` + ct.table + `
		WHERE sponge_run_ID IN (` + placeholders(len(runIDs)) + `)`
	args := int64Args(runIDs)

	if len(nodeIDs) > 0 {
		query += ` AND ` + ct.nodeCol + ` IN (` + placeholders(len(nodeIDs)) + `)`
		args = append(args, int64Args(nodeIDs)...)
	}
	if minCountAll > 0 {
		query += ` AND count_all >= ?`
		args = append(args, minCountAll)
	}
	if minCountSign > 0 {
		query += ` AND count_sign >= ?`
		args = append(args, minCountSign)
	}

	query += ` ORDER BY ` + ct.idCol + ` LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []CountRow
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var r CountRow
		if err := rows.Scan(&r.CountID, &r.SpongeRunID, &r.NodeID, &r.CountAll, &r.CountSign); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

func (s *SpongeDB) GeneCounts(ctx context.Context, runIDs, geneIDs []int64, minCountAll, minCountSign int64, limit, offset int) ([]CountRow, error) {
	return s.nodeCounts(ctx, geneCounts, runIDs, geneIDs, minCountAll, minCountSign, limit, offset)
}

func (s *SpongeDB) TranscriptCounts(ctx context.Context, runIDs, transcriptIDs []int64, minCountAll, minCountSign int64, limit, offset int) ([]CountRow, error) {
	return s.nodeCounts(ctx, transcriptCounts, runIDs, transcriptIDs, minCountAll, minCountSign, limit, offset)
}

// OverallCountRow aggregates catalog-wide totals per disease at one
// version, for the landing-page statistics.
type OverallCountRow struct {
	DiseaseName      string `json:"disease_name"`
	Version          int64  `json:"sponge_db_version"`
	RunCount         int64  `json:"sponge_run_count"`
	InteractionCount int64  `json:"interaction_count"`
	SampleCount      int64  `json:"sample_count"`
}

func (s *SpongeDB) OverallCounts(ctx context.Context, version int64) ([]OverallCountRow, error) {
	ctx, cancel := s.conn(ctx)
	defer cancel()

	query := `
		SELECT d.disease_name, d.sponge_db_version,
		       COUNT(DISTINCT r.sponge_run_ID),
		       COALESCE(SUM(c.cnt), 0),
		       COALESCE(MAX(r.number_of_samples), 0)
		FROM dataset d
		JOIN sponge_run r ON r.dataset_ID = d.dataset_ID
		LEFT JOIN (
			SELECT sponge_run_ID, COUNT(*) AS cnt
			FROM interactions_genegene
			GROUP BY sponge_run_ID
		) c ON c.sponge_run_ID = r.sponge_run_ID
		WHERE 1=1`
	var args []any
	if version >= 0 {
		query += ` AND d.sponge_db_version = ?`
		args = append(args, version)
	}
	query += ` GROUP BY d.disease_name, d.sponge_db_version
		ORDER BY d.disease_name, d.sponge_db_version`

	var out []OverallCountRow
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var r OverallCountRow
		if err := rows.Scan(&r.DiseaseName, &r.Version, &r.RunCount,
			&r.InteractionCount, &r.SampleCount); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}
