package db

import (
	"context"
	"database/sql"
)

// NetworkResultRow is the pairwise similarity between two sponge runs at
// one level.
type NetworkResultRow struct {
	SpongeRunID1      int64   `json:"sponge_run_ID_1"`
	SpongeRunID2      int64   `json:"sponge_run_ID_2"`
	Level             string  `json:"level"`
	Score             float64 `json:"score"`
	EuclideanDistance float64 `json:"euclidean_distance"`
}

// NetworkResults returns similarity rows where either side of the pair is
// in runIDs, at the given level.
func (s *SpongeDB) NetworkResults(ctx context.Context, runIDs []int64, level string) ([]NetworkResultRow, error) {
	if len(runIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := s.conn(ctx)
	defer cancel()

	in := placeholders(len(runIDs))
	query := `SELECT sponge_run_ID_1, sponge_run_ID_2, level, score, euclidean_distance
		FROM network_results
		WHERE (sponge_run_ID_1 IN (` + in + `) OR sponge_run_ID_2 IN (` + in + `))`
	args := int64Args(runIDs)
	args = append(args, int64Args(runIDs)...)

	if level != "" {
		query += ` AND level = ?`
		args = append(args, level)
	}
	query += ` ORDER BY sponge_run_ID_1, sponge_run_ID_2`

	var out []NetworkResultRow
	err := scanAll(ctx, s.catalog, query, args, func(rows *sql.Rows) error {
		var r NetworkResultRow
		if err := rows.Scan(&r.SpongeRunID1, &r.SpongeRunID2, &r.Level,
			&r.Score, &r.EuclideanDistance); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	return out, err
}
