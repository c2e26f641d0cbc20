package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/daisybio/SPONGE-web-backend-sub000/internal/util"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/model"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/render"
)

// Survival analysis endpoints.

func (dbctx *DBContext) parseSurvivalRequest(c *gin.Context) (request.Survival, error) {
	scope, err := parseScope(c)
	if err != nil {
		return request.Survival{}, err
	}
	return request.Survival{
		Scope:       scope,
		ENSGNumbers: util.SplitCSV(c.Query("ensg_number")),
		GeneSymbols: util.SplitCSV(c.Query("gene_symbol")),
		SampleIDs:   util.SplitCSV(c.Query("sample_ID")),
	}, nil
}

func (dbctx *DBContext) SurvivalSampleInformation(c *gin.Context) {
	req, err := dbctx.parseSurvivalRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetPatientInformation(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) SurvivalGetRates(c *gin.Context) {
	req, err := dbctx.parseSurvivalRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetSurvivalRates(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) SurvivalGetPValues(c *gin.Context) {
	req, err := dbctx.parseSurvivalRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetSurvivalPValues(c.Request.Context(), dbctx.DB, req)
	})
}
