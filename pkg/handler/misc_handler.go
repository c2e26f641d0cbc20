package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/daisybio/SPONGE-web-backend-sub000/internal/util"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/model"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/render"
)

// Node metadata, autocomplete, counts and gene-set annotations.

func (dbctx *DBContext) StringSearch(c *gin.Context) {
	search := c.Query("searchString")
	dbctx.respondCached(c, func() (any, error) {
		return model.Autocomplete(c.Request.Context(), dbctx.DB, search)
	})
}

func (dbctx *DBContext) StringSearchTranscript(c *gin.Context) {
	search := c.Query("searchString")
	dbctx.respondCached(c, func() (any, error) {
		return model.AutocompleteTranscript(c.Request.Context(), dbctx.DB, search)
	})
}

func (dbctx *DBContext) GetGeneInformation(c *gin.Context) {
	ensgs := util.SplitCSV(c.Query("ensg_number"))
	symbols := util.SplitCSV(c.Query("gene_symbol"))
	dbctx.respondCached(c, func() (any, error) {
		return model.GetGeneInformation(c.Request.Context(), dbctx.DB, ensgs, symbols)
	})
}

func (dbctx *DBContext) GetTranscriptInformation(c *gin.Context) {
	ensts := util.SplitCSV(c.Query("enst_number"))
	dbctx.respondCached(c, func() (any, error) {
		return model.GetTranscriptInformation(c.Request.Context(), dbctx.DB, ensts)
	})
}

func (dbctx *DBContext) GetTranscriptGene(c *gin.Context) {
	ensts := util.SplitCSV(c.Query("enst_number"))
	dbctx.respondCached(c, func() (any, error) {
		return model.GetTranscriptGene(c.Request.Context(), dbctx.DB, ensts)
	})
}

func (dbctx *DBContext) GetGeneTranscripts(c *gin.Context) {
	ensgs := util.SplitCSV(c.Query("ensg_number"))
	symbols := util.SplitCSV(c.Query("gene_symbol"))
	dbctx.respondCached(c, func() (any, error) {
		return model.GetGeneTranscripts(c.Request.Context(), dbctx.DB, ensgs, symbols)
	})
}

func parseCountsRequest(c *gin.Context) (request.Counts, error) {
	scope, err := parseScope(c)
	if err != nil {
		return request.Counts{}, err
	}
	limit, offset := parseLimitOffset(c)
	return request.Counts{
		Scope:        scope,
		ENSGNumbers:  util.SplitCSV(c.Query("ensg_number")),
		GeneSymbols:  util.SplitCSV(c.Query("gene_symbol")),
		ENSTNumbers:  util.SplitCSV(c.Query("enst_number")),
		MinCountAll:  parseInt64Fallback(c.Query("minCountAll"), 0),
		MinCountSign: parseInt64Fallback(c.Query("minCountSign"), 0),
		Limit:        limit,
		Offset:       offset,
	}, nil
}

// GetInteractionCounts switches to transcript counts when enst_number is
// given.
func (dbctx *DBContext) GetInteractionCounts(c *gin.Context) {
	req, err := parseCountsRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	transcripts := transcriptLevel(c)
	dbctx.respondCached(c, func() (any, error) {
		if transcripts {
			return model.GetTranscriptCounts(c.Request.Context(), dbctx.DB, req)
		}
		return model.GetGeneCounts(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) GetHallmark(c *gin.Context) {
	ensgs := util.SplitCSV(c.Query("ensg_number"))
	symbols := util.SplitCSV(c.Query("gene_symbol"))
	dbctx.respondCached(c, func() (any, error) {
		return model.GetHallmark(c.Request.Context(), dbctx.DB, ensgs, symbols)
	})
}

func (dbctx *DBContext) GetGeneOntology(c *gin.Context) {
	ensgs := util.SplitCSV(c.Query("ensg_number"))
	symbols := util.SplitCSV(c.Query("gene_symbol"))
	dbctx.respondCached(c, func() (any, error) {
		return model.GetGeneOntology(c.Request.Context(), dbctx.DB, ensgs, symbols)
	})
}

func (dbctx *DBContext) GetWikipathway(c *gin.Context) {
	ensgs := util.SplitCSV(c.Query("ensg_number"))
	symbols := util.SplitCSV(c.Query("gene_symbol"))
	dbctx.respondCached(c, func() (any, error) {
		return model.GetWikipathway(c.Request.Context(), dbctx.DB, ensgs, symbols)
	})
}

func (dbctx *DBContext) GetNetworkResults(c *gin.Context) {
	scope, err := parseScope(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	level := c.Query("level")
	if level == "" {
		level = "gene"
	}
	req := request.NetworkResults{Scope: scope, Level: level}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetNetworkResults(c.Request.Context(), dbctx.DB, req)
	})
}
