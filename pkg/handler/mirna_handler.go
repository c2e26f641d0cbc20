package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/daisybio/SPONGE-web-backend-sub000/internal/util"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/model"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/render"
)

// miRNA interaction endpoints.

func (dbctx *DBContext) MirnaFindSpecific(c *gin.Context) {
	scope, err := parseScope(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	limit, offset := parseLimitOffset(c)

	req := request.MirnaFindSpecific{
		Scope:       scope,
		ENSGNumbers: util.SplitCSV(c.Query("ensg_number")),
		GeneSymbols: util.SplitCSV(c.Query("gene_symbol")),
		ENSTNumbers: util.SplitCSV(c.Query("enst_number")),
		Between:     parseBool(c, "between"),
		Limit:       limit,
		Offset:      offset,
	}
	dbctx.respondCached(c, func() (any, error) {
		if transcriptLevel(c) {
			return model.FindTranscriptMirnaInteractions(c.Request.Context(), dbctx.DB, req)
		}
		return model.FindGeneMirnaInteractions(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) MirnaFindCeRNA(c *gin.Context) {
	scope, err := parseScope(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	limit, offset := parseLimitOffset(c)

	req := request.MirnaCeRNA{
		Scope:        scope,
		MimatNumbers: util.SplitCSV(c.Query("mimat_number")),
		HsNumbers:    util.SplitCSV(c.Query("hs_number")),
		Level:        c.Query("level"),
		Limit:        limit,
		Offset:       offset,
	}
	dbctx.respondCached(c, func() (any, error) {
		if req.Level == "transcript" {
			return model.FindMirnaCeRNATranscript(c.Request.Context(), dbctx.DB, req)
		}
		return model.FindMirnaCeRNAGene(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) MirnaGetOccurrences(c *gin.Context) {
	scope, err := parseScope(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dir, err := parseSortDirection(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	limit, offset := parseLimitOffset(c)

	req := request.MirnaOccurrences{
		Scope:          scope,
		MimatNumbers:   util.SplitCSV(c.Query("mimat_number")),
		HsNumbers:      util.SplitCSV(c.Query("hs_number")),
		MinOccurrences: parseInt64Fallback(c.Query("occurences"), 0),
		Sorting:        c.Query("sorting"),
		SortDirection:  dir,
		Limit:          limit,
		Offset:         offset,
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetMirnaOccurrences(c.Request.Context(), dbctx.DB, req)
	})
}
