package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/daisybio/SPONGE-web-backend-sub000/internal/util"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/cache"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/model"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/render"
)

// Expression endpoints.

func (dbctx *DBContext) parseExpressionRequest(c *gin.Context) (request.Expression, error) {
	scope, err := parseScope(c)
	if err != nil {
		return request.Expression{}, err
	}
	limit, offset := parseLimitOffset(c)
	return request.Expression{
		Scope:       scope,
		ENSGNumbers: util.SplitCSV(c.Query("ensg_number")),
		GeneSymbols: util.SplitCSV(c.Query("gene_symbol")),
		ENSTNumbers: util.SplitCSV(c.Query("enst_number")),
		Mimats:      util.SplitCSV(c.Query("mimat_number")),
		HsNumbers:   util.SplitCSV(c.Query("hs_number")),
		Cluster:     parseBool(c, "cluster"),
		Limit:       limit,
		Offset:      offset,
	}, nil
}

// ExpressionGetCeRNA serves gene expression in long form. The payload can
// run to millions of measurements, so cache misses are streamed one
// element at a time while the assembled body is kept for later hits.
func (dbctx *DBContext) ExpressionGetCeRNA(c *gin.Context) {
	req, err := dbctx.parseExpressionRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	key := cache.Key(c.FullPath(), c.Request.URL.Query(), cacheDefaults)
	if data, ok := dbctx.Cache.Get(key); ok {
		render.RawJSON(c, data)
		return
	}
	values, err := model.GetGeneExpression(c.Request.Context(), dbctx.DB, req)
	if err != nil {
		render.Error(c, err)
		return
	}
	if data := render.StreamArray(c, len(values), func(i int) any { return values[i] }); data != nil {
		dbctx.Cache.Add(key, data)
	}
}

func (dbctx *DBContext) ExpressionGetTranscript(c *gin.Context) {
	req, err := dbctx.parseExpressionRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetTranscriptExpression(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) ExpressionGetMirna(c *gin.Context) {
	req, err := dbctx.parseExpressionRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetMirnaExpression(c.Request.Context(), dbctx.DB, req)
	})
}
