package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/daisybio/SPONGE-web-backend-sub000/internal/util"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/apierr"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/model"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/render"
)

// spongEffects endpoints, including the subprocess classifier.

func (dbctx *DBContext) parseSpongEffectsRequest(c *gin.Context) (request.SpongEffects, error) {
	scope, err := parseScope(c)
	if err != nil {
		return request.SpongEffects{}, err
	}
	limit, offset := parseLimitOffset(c)
	level := c.Query("level")
	if level == "" {
		level = "gene"
	}
	return request.SpongEffects{
		Scope:       scope,
		Level:       level,
		ENSGNumbers: util.SplitCSV(c.Query("ensg_number")),
		GeneSymbols: util.SplitCSV(c.Query("gene_symbol")),
		ENSTNumbers: util.SplitCSV(c.Query("enst_number")),
		Limit:       limit,
		Offset:      offset,
	}, nil
}

func (dbctx *DBContext) SpongEffectsGetRunPerformance(c *gin.Context) {
	req, err := dbctx.parseSpongEffectsRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetRunPerformance(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) SpongEffectsGetRunClassPerformance(c *gin.Context) {
	req, err := dbctx.parseSpongEffectsRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetRunClassPerformance(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) SpongEffectsEnrichmentScoreDistributions(c *gin.Context) {
	req, err := dbctx.parseSpongEffectsRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetEnrichmentClassDensities(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) SpongEffectsGetGeneModules(c *gin.Context) {
	req, err := dbctx.parseSpongEffectsRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	req.Level = "gene"
	dbctx.respondCached(c, func() (any, error) {
		return model.GetGeneModules(c.Request.Context(), dbctx.DB, req)
	})
}

// SpongEffectsGetGeneModuleMembers requires hub identifiers; the module
// lookup rejects an empty hub set through the identifier resolver.
func (dbctx *DBContext) SpongEffectsGetGeneModuleMembers(c *gin.Context) {
	req, err := dbctx.parseSpongEffectsRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	req.Level = "gene"
	if len(req.ENSGNumbers) == 0 && len(req.GeneSymbols) == 0 {
		render.Error(c, apierr.BadRequestf(apierr.ErrMissingIdentifier,
			"A hub gene (ensg_number or gene_symbol) is required"))
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetGeneModules(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) SpongEffectsGetTranscriptModules(c *gin.Context) {
	req, err := dbctx.parseSpongEffectsRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	req.Level = "transcript"
	dbctx.respondCached(c, func() (any, error) {
		return model.GetTranscriptModules(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) SpongEffectsGetTranscriptModuleMembers(c *gin.Context) {
	req, err := dbctx.parseSpongEffectsRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	req.Level = "transcript"
	if len(req.ENSTNumbers) == 0 {
		render.Error(c, apierr.BadRequestf(apierr.ErrMissingIdentifier,
			"A hub transcript (enst_number) is required"))
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetTranscriptModules(c.Request.Context(), dbctx.DB, req)
	})
}

// SpongEffectsPredictCancerType accepts a multipart expression matrix and
// classifies it with the trained model of the scoped disease. Never
// cached: uploads are unique.
func (dbctx *DBContext) SpongEffectsPredictCancerType(c *gin.Context) {
	scope, err := parseScope(c)
	if err != nil {
		render.Error(c, err)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		render.Error(c, apierr.BadRequestf(apierr.ErrMissingIdentifier,
			"A multipart file upload named 'file' is required"))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		render.Error(c, err)
		return
	}

	req := request.Predict{
		Scope:      scope,
		Level:      c.PostForm("level"),
		Subtypes:   parseFormBool(c, "subtypes"),
		LogScaling: parseFormBool(c, "log"),
		FileName:   header.Filename,
		FileData:   data,
	}
	pred, err := model.PredictCancerType(c.Request.Context(), dbctx.DB, dbctx.Predictor, req)
	render.Result(c, pred, err)
}

func parseFormBool(c *gin.Context, name string) bool {
	switch c.PostForm(name) {
	case "true", "True", "1":
		return true
	default:
		return false
	}
}
