package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/daisybio/SPONGE-web-backend-sub000/internal/util"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/model"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/render"
)

// Comparison and differential-expression endpoints.

func (dbctx *DBContext) parseComparisonSelect(c *gin.Context) (request.ComparisonSelect, error) {
	version, err := parseVersion(c)
	if err != nil {
		return request.ComparisonSelect{}, err
	}
	ds1, err := parseInt64CSV(c.Query("dataset_ID_1"))
	if err != nil {
		return request.ComparisonSelect{}, err
	}
	ds2, err := parseInt64CSV(c.Query("dataset_ID_2"))
	if err != nil {
		return request.ComparisonSelect{}, err
	}
	return request.ComparisonSelect{
		DatasetID1:   ds1,
		DatasetID2:   ds2,
		DiseaseName1: c.Query("disease_name_1"),
		DiseaseName2: c.Query("disease_name_2"),
		Condition1:   c.Query("condition_1"),
		Condition2:   c.Query("condition_2"),
		Level:        c.Query("level"),
		Version:      version,
	}, nil
}

func (dbctx *DBContext) GetComparisons(c *gin.Context) {
	version, err := parseVersion(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.ListComparisons(c.Request.Context(), dbctx.DB, version)
	})
}

func (dbctx *DBContext) GetDifferentialExpression(c *gin.Context) {
	sel, err := dbctx.parseComparisonSelect(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	req := request.DifferentialExpression{
		Comparison:  sel,
		ENSGNumbers: util.SplitCSV(c.Query("ensg_number")),
		GeneSymbols: util.SplitCSV(c.Query("gene_symbol")),
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetGeneDifferentialExpression(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) GetDifferentialExpressionTranscript(c *gin.Context) {
	sel, err := dbctx.parseComparisonSelect(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	req := request.DifferentialExpression{
		Comparison:  sel,
		ENSTNumbers: util.SplitCSV(c.Query("enst_number")),
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetTranscriptDifferentialExpression(c.Request.Context(), dbctx.DB, req)
	})
}
