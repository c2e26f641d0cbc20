package model

import (
	"sort"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/params"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
)

// Predicate builder. Turns validated request parameters into the storage
// filters and sort keys; the SQL dialect never leaks above pkg/db and raw
// sort strings never leak below this file.

// MaxLimit is the hard pagination cap shared by every endpoint.
const MaxLimit = 1000

// DefaultLimit applies when the caller omits limit.
const DefaultLimit = 100

// DefaultPValueCutoff applies when no p-value threshold is supplied.
const DefaultPValueCutoff = 0.05

// CheckLimit enforces the pagination cap.
func CheckLimit(limit int) error {
	if limit > MaxLimit {
		return apierr.BadRequestf(apierr.ErrLimitTooHigh,
			"Limit is to high. Maximum allowed limit is %d", MaxLimit)
	}
	return nil
}

func cutoffOp(dir params.CutoffDirection) (string, error) {
	switch dir {
	case params.CutoffLess:
		return "<", nil
	case params.CutoffGreater:
		return ">", nil
	default:
		return "", apierr.BadRequestf(apierr.ErrBadDirection,
			"Cutoff direction must be one of < or >")
	}
}

// BuildStatFilters renders the cutoffs into storage filters. The p-value
// threshold defaults to < 0.05 when absent.
func BuildStatFilters(c request.Cutoffs) ([]db.Filter, error) {
	var filters []db.Filter

	pValue := DefaultPValueCutoff
	pDir := params.CutoffLess
	if c.PValue != nil {
		pValue = *c.PValue
		pDir = c.PValueDir
	}
	op, err := cutoffOp(pDir)
	if err != nil {
		return nil, err
	}
	filters = append(filters, db.Filter{Column: "p_value", Op: op, Value: pValue})

	if c.Mscor != nil {
		op, err := cutoffOp(c.MscorDir)
		if err != nil {
			return nil, err
		}
		filters = append(filters, db.Filter{Column: "mscor", Op: op, Value: *c.Mscor})
	}
	if c.Correlation != nil {
		op, err := cutoffOp(c.CorrelationDir)
		if err != nil {
			return nil, err
		}
		filters = append(filters, db.Filter{Column: "correlation", Op: op, Value: *c.Correlation})
	}
	return filters, nil
}

// PValueOnlyFilter is the network assembler's edge prefilter.
func PValueOnlyFilter(c request.Cutoffs) ([]db.Filter, error) {
	pValue := DefaultPValueCutoff
	pDir := params.CutoffLess
	if c.PValue != nil {
		pValue = *c.PValue
		pDir = c.PValueDir
	}
	op, err := cutoffOp(pDir)
	if err != nil {
		return nil, err
	}
	return []db.Filter{{Column: "p_value", Op: op, Value: pValue}}, nil
}

// RemainingEdgeFilters are the cutoffs applied after the assembler's node
// cross-filter, i.e. everything except the p-value prefilter.
func RemainingEdgeFilters(c request.Cutoffs) ([]db.Filter, error) {
	var filters []db.Filter
	if c.Mscor != nil {
		op, err := cutoffOp(c.MscorDir)
		if err != nil {
			return nil, err
		}
		filters = append(filters, db.Filter{Column: "mscor", Op: op, Value: *c.Mscor})
	}
	if c.Correlation != nil {
		op, err := cutoffOp(c.CorrelationDir)
		if err != nil {
			return nil, err
		}
		filters = append(filters, db.Filter{Column: "correlation", Op: op, Value: *c.Correlation})
	}
	return filters, nil
}

func BuildCentralityFilters(m request.Minima) []db.Filter {
	var filters []db.Filter
	if m.Betweenness != nil {
		filters = append(filters, db.Filter{Column: "betweenness", Op: ">=", Value: *m.Betweenness})
	}
	if m.NodeDegree != nil {
		filters = append(filters, db.Filter{Column: "node_degree", Op: ">=", Value: *m.NodeDegree})
	}
	if m.Eigenvector != nil {
		filters = append(filters, db.Filter{Column: "eigenvector", Op: ">=", Value: *m.Eigenvector})
	}
	return filters
}

// InteractionSort maps the requested interaction sort key to storage.
// An empty key means no sort; ordering then falls back to internal id.
func InteractionSort(key string, dir params.SortDirection) (*db.Sort, error) {
	if dir == params.SortDirectionUnknown {
		return nil, apierr.BadRequestf(apierr.ErrBadDirection,
			"Sort direction must be one of asc or desc")
	}
	if key == "" {
		return nil, nil
	}
	field := params.ParseInteractionField(key)
	if field == params.InteractionFieldUnknown {
		return nil, apierr.BadRequestf(apierr.ErrBadSort,
			"Sorting key %s is not supported for interactions", key)
	}
	column := map[params.InteractionField]string{
		params.InteractionFieldPValue:      "p_value",
		params.InteractionFieldMscor:       "mscor",
		params.InteractionFieldCorrelation: "correlation",
	}[field]
	return &db.Sort{Column: column, Desc: dir == params.SortDesc}, nil
}

// CentralityKeys parses the (possibly multi-valued) node sort keys for the
// network endpoints.
func CentralityKeys(keys []string) ([]params.CentralityField, error) {
	out := make([]params.CentralityField, 0, len(keys))
	for _, key := range keys {
		field := params.ParseCentralityField(key)
		if field == params.CentralityFieldUnknown {
			return nil, apierr.BadRequestf(apierr.ErrBadSort,
				"Sorting key %s is not supported for network analysis", key)
		}
		out = append(out, field)
	}
	return out, nil
}

// CentralitySort maps a single centrality key to storage for the plain
// findceRNA listing.
func CentralitySort(key string, dir params.SortDirection) (*db.Sort, error) {
	if dir == params.SortDirectionUnknown {
		return nil, apierr.BadRequestf(apierr.ErrBadDirection,
			"Sort direction must be one of asc or desc")
	}
	if key == "" {
		return nil, nil
	}
	field := params.ParseCentralityField(key)
	if field == params.CentralityFieldUnknown {
		return nil, apierr.BadRequestf(apierr.ErrBadSort,
			"Sorting key %s is not supported for network analysis", key)
	}
	column := map[params.CentralityField]string{
		params.CentralityFieldBetweenness: "betweenness",
		params.CentralityFieldDegree:      "node_degree",
		params.CentralityFieldEigenvector: "eigenvector",
	}[field]
	return &db.Sort{Column: column, Desc: dir == params.SortDesc}, nil
}

func centralityValue(row db.NetworkAnalysisRow, field params.CentralityField) float64 {
	switch field {
	case params.CentralityFieldBetweenness:
		return row.Betweenness
	case params.CentralityFieldDegree:
		return row.NodeDegree
	case params.CentralityFieldEigenvector:
		return row.Eigenvector
	default:
		return 0
	}
}

// RankByMeanRank orders rows by the arithmetic mean of their per-key ranks
// (rank 1 = best, i.e. highest value). Ties on a key share the better
// rank of their position block; ties on the mean break by node id
// ascending. The rule is part of the public contract.
func RankByMeanRank(rows []db.NetworkAnalysisRow, keys []params.CentralityField) []db.NetworkAnalysisRow {
	if len(rows) == 0 || len(keys) == 0 {
		return rows
	}

	rankSums := make(map[int64]float64, len(rows))
	idx := make([]int, len(rows))

	for _, key := range keys {
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			va, vb := centralityValue(rows[idx[a]], key), centralityValue(rows[idx[b]], key)
			if va != vb {
				return va > vb
			}
			return rows[idx[a]].NodeID < rows[idx[b]].NodeID
		})
		// Equal values share the rank of the first row of their block.
		rank := 1
		for pos, i := range idx {
			if pos > 0 && centralityValue(rows[i], key) != centralityValue(rows[idx[pos-1]], key) {
				rank = pos + 1
			}
			rankSums[rows[i].NodeID] += float64(rank)
		}
	}

	ordered := make([]db.NetworkAnalysisRow, len(rows))
	copy(ordered, rows)
	n := float64(len(keys))
	sort.SliceStable(ordered, func(a, b int) bool {
		ma, mb := rankSums[ordered[a].NodeID]/n, rankSums[ordered[b].NodeID]/n
		if ma != mb {
			return ma < mb
		}
		return ordered[a].NodeID < ordered[b].NodeID
	})
	return ordered
}

// Page applies (offset, limit) to an in-memory slice.
func Page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
