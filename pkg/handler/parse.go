package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/daisybio/SPONGE-web-backend-sub000/internal/util"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/cache"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/params"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/model"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/render"
)

// Query parsing shared by all endpoint families. Parsers return the
// apierr sentinels so malformed input renders a 400 envelope, never a
// panic or a silent default where the value matters.

// cacheDefaults holds the values absent parameters canonicalize to, so
// spelling a default out loud hits the same cache entry as omitting it.
var cacheDefaults = map[string]string{
	"limit":             strconv.Itoa(model.DefaultLimit),
	"offset":            "0",
	"sponge_db_version": "latest",
	"descending":        "true",
}

// respondCached serves the request from the response cache, filling it
// with a single fetch on miss. Errors are never cached.
func (dbctx *DBContext) respondCached(c *gin.Context, fetch func() (any, error)) {
	key := cache.Key(c.FullPath(), c.Request.URL.Query(), cacheDefaults)
	data, err := dbctx.Cache.GetOrFill(key, func() ([]byte, error) {
		payload, err := fetch()
		if err != nil {
			return nil, err
		}
		return render.Marshal(payload)
	})
	if err != nil {
		render.Error(c, err)
		return
	}
	render.RawJSON(c, data)
}

func parseVersion(c *gin.Context) (int64, error) {
	raw := c.Query("sponge_db_version")
	v, ok := params.ParseVersion(raw)
	if !ok {
		return 0, apierr.BadRequestf(apierr.ErrMissingIdentifier,
			"Invalid sponge_db_version: %s", raw)
	}
	return v, nil
}

func parseScope(c *gin.Context) (request.Scope, error) {
	version, err := parseVersion(c)
	if err != nil {
		return request.Scope{}, err
	}

	datasetIDs, err := parseInt64CSV(c.Query("dataset_ID"))
	if err != nil {
		return request.Scope{}, apierr.BadRequestf(apierr.ErrMissingIdentifier,
			"Invalid dataset_ID: %s", c.Query("dataset_ID"))
	}

	scope := request.Scope{
		DatasetIDs:  datasetIDs,
		DiseaseName: c.Query("disease_name"),
		DataOrigin:  c.Query("data_origin"),
		Version:     version,
	}
	switch subtype := c.Query("disease_subtype"); subtype {
	case "":
	case "null", "NULL":
		scope.SubtypeIsNull = true
	default:
		scope.Subtype = subtype
	}
	return scope, nil
}

func parseInt64CSV(raw string) ([]int64, error) {
	parts := util.SplitCSV(raw)
	if len(parts) == 0 {
		return nil, nil
	}
	out := make([]int64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseCutoffs(c *gin.Context) (request.Cutoffs, error) {
	var out request.Cutoffs
	var err error

	if out.PValue, err = util.ParseFloatPtr(c.Query("pValue")); err != nil {
		return out, apierr.BadRequestf(apierr.ErrMissingIdentifier, "Invalid pValue: %s", c.Query("pValue"))
	}
	if out.Mscor, err = util.ParseFloatPtr(c.Query("mscor")); err != nil {
		return out, apierr.BadRequestf(apierr.ErrMissingIdentifier, "Invalid mscor: %s", c.Query("mscor"))
	}
	if out.Correlation, err = util.ParseFloatPtr(c.Query("correlation")); err != nil {
		return out, apierr.BadRequestf(apierr.ErrMissingIdentifier, "Invalid correlation: %s", c.Query("correlation"))
	}

	if out.PValueDir = params.ParseCutoffDirection(c.Query("pValueDirection")); out.PValueDir == params.CutoffDirectionUnknown {
		return out, apierr.BadRequestf(apierr.ErrBadDirection, "Invalid pValueDirection: %s", c.Query("pValueDirection"))
	}
	if out.MscorDir = params.ParseCutoffDirection(c.Query("mscorDirection")); out.MscorDir == params.CutoffDirectionUnknown {
		return out, apierr.BadRequestf(apierr.ErrBadDirection, "Invalid mscorDirection: %s", c.Query("mscorDirection"))
	}
	if out.CorrelationDir = params.ParseCutoffDirection(c.Query("correlationDirection")); out.CorrelationDir == params.CutoffDirectionUnknown {
		return out, apierr.BadRequestf(apierr.ErrBadDirection, "Invalid correlationDirection: %s", c.Query("correlationDirection"))
	}
	return out, nil
}

func parseMinima(c *gin.Context) (request.Minima, error) {
	var out request.Minima
	var err error

	if out.Betweenness, err = util.ParseFloatPtr(c.Query("minBetweenness")); err != nil {
		return out, apierr.BadRequestf(apierr.ErrMissingIdentifier, "Invalid minBetweenness: %s", c.Query("minBetweenness"))
	}
	if out.NodeDegree, err = util.ParseFloatPtr(c.Query("minNodeDegree")); err != nil {
		return out, apierr.BadRequestf(apierr.ErrMissingIdentifier, "Invalid minNodeDegree: %s", c.Query("minNodeDegree"))
	}
	if out.Eigenvector, err = util.ParseFloatPtr(c.Query("minEigenvector")); err != nil {
		return out, apierr.BadRequestf(apierr.ErrMissingIdentifier, "Invalid minEigenvector: %s", c.Query("minEigenvector"))
	}
	return out, nil
}

func parseLimitOffset(c *gin.Context) (int, int) {
	limit := util.ParseIntFallback(c.Query("limit"), model.DefaultLimit)
	offset := util.ParseIntFallback(c.Query("offset"), 0)
	return limit, offset
}

// parseSortDirection maps the boolean descending parameter onto the sort
// direction; descending is the public default.
func parseSortDirection(c *gin.Context) (params.SortDirection, error) {
	switch c.Query("descending") {
	case "", "true", "True":
		return params.SortDesc, nil
	case "false", "False":
		return params.SortAsc, nil
	default:
		return params.SortDirectionUnknown, apierr.BadRequestf(apierr.ErrBadDirection,
			"Invalid descending flag: %s", c.Query("descending"))
	}
}

func parseBool(c *gin.Context, name string) bool {
	switch c.Query(name) {
	case "true", "True", "1":
		return true
	default:
		return false
	}
}

func parseInt64Fallback(raw string, fallback int64) int64 {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
