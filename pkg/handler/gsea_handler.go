package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/model"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/render"
)

// Gene set enrichment endpoints.

func (dbctx *DBContext) parseGseaRequest(c *gin.Context) (request.Gsea, error) {
	sel, err := dbctx.parseComparisonSelect(c)
	if err != nil {
		return request.Gsea{}, err
	}
	return request.Gsea{
		Comparison:  sel,
		GeneSetName: c.Query("gene_set"),
		Term:        c.Query("term"),
	}, nil
}

func (dbctx *DBContext) GetGseaSets(c *gin.Context) {
	req, err := dbctx.parseGseaRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetGseaSets(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) GetGseaTerms(c *gin.Context) {
	req, err := dbctx.parseGseaRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetGseaTerms(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) GetGseaResults(c *gin.Context) {
	req, err := dbctx.parseGseaRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetGseaResults(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) GetGseaPlot(c *gin.Context) {
	req, err := dbctx.parseGseaRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetGseaPlot(c.Request.Context(), dbctx.DB, req)
	})
}
