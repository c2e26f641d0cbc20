package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/daisybio/SPONGE-web-backend-sub000/internal/util"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/model"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/render"
)

// ceRNA interaction endpoints. The level is decided by the identifiers:
// enst_number switches the query to the transcript tables.

func transcriptLevel(c *gin.Context) bool {
	return c.Query("enst_number") != ""
}

func (dbctx *DBContext) InteractionFindAll(c *gin.Context) {
	scope, err := parseScope(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	cutoffs, err := parseCutoffs(c)
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

	req := request.InteractionFindAll{
		Scope:         scope,
		ENSGNumbers:   util.SplitCSV(c.Query("ensg_number")),
		GeneSymbols:   util.SplitCSV(c.Query("gene_symbol")),
		ENSTNumbers:   util.SplitCSV(c.Query("enst_number")),
		Cutoffs:       cutoffs,
		Sorting:       c.Query("sorting"),
		SortDirection: dir,
		Limit:         limit,
		Offset:        offset,
	}
	dbctx.respondCached(c, func() (any, error) {
		if transcriptLevel(c) {
			return model.FindAllTranscriptInteractions(c.Request.Context(), dbctx.DB, req)
		}
		return model.FindAllGeneInteractions(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) InteractionFindSpecific(c *gin.Context) {
	scope, err := parseScope(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	cutoffs, err := parseCutoffs(c)
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

	req := request.InteractionFindSpecific{
		Scope:         scope,
		ENSGNumbers:   util.SplitCSV(c.Query("ensg_number")),
		GeneSymbols:   util.SplitCSV(c.Query("gene_symbol")),
		ENSTNumbers:   util.SplitCSV(c.Query("enst_number")),
		Cutoffs:       cutoffs,
		Sorting:       c.Query("sorting"),
		SortDirection: dir,
		Limit:         limit,
		Offset:        offset,
	}
	dbctx.respondCached(c, func() (any, error) {
		if transcriptLevel(c) {
			return model.FindSpecificTranscriptInteractions(c.Request.Context(), dbctx.DB, req)
		}
		return model.FindSpecificGeneInteractions(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) InteractionFindCeRNA(c *gin.Context) {
	scope, err := parseScope(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	minima, err := parseMinima(c)
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

	req := request.CeRNAFind{
		Scope:         scope,
		ENSGNumbers:   util.SplitCSV(c.Query("ensg_number")),
		GeneSymbols:   util.SplitCSV(c.Query("gene_symbol")),
		ENSTNumbers:   util.SplitCSV(c.Query("enst_number")),
		Minima:        minima,
		Sorting:       c.Query("sorting"),
		SortDirection: dir,
		Limit:         limit,
		Offset:        offset,
	}
	dbctx.respondCached(c, func() (any, error) {
		if transcriptLevel(c) {
			return model.FindCeRNATranscripts(c.Request.Context(), dbctx.DB, req)
		}
		return model.FindCeRNAGenes(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) parseNetworkRequest(c *gin.Context) (request.Network, error) {
	scope, err := parseScope(c)
	if err != nil {
		return request.Network{}, err
	}
	cutoffs, err := parseCutoffs(c)
	if err != nil {
		return request.Network{}, err
	}
	minima, err := parseMinima(c)
	if err != nil {
		return request.Network{}, err
	}
	dir, err := parseSortDirection(c)
	if err != nil {
		return request.Network{}, err
	}

	return request.Network{
		Scope:         scope,
		Cutoffs:       cutoffs,
		Minima:        minima,
		EdgeSorting:   c.Query("edgeSorting"),
		NodeSortings:  util.SplitCSV(c.Query("nodeSorting")),
		SortDirection: dir,
		MaxNodes:      util.ParseIntFallback(c.Query("maxNodes"), model.DefaultLimit),
		OffsetNodes:   util.ParseIntFallback(c.Query("offsetNodes"), 0),
		MaxEdges:      util.ParseIntFallback(c.Query("maxEdges"), model.DefaultLimit),
		OffsetEdges:   util.ParseIntFallback(c.Query("offsetEdges"), 0),
	}, nil
}

func (dbctx *DBContext) GetGeneNetwork(c *gin.Context) {
	req, err := dbctx.parseNetworkRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetGeneNetwork(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) GetTranscriptNetwork(c *gin.Context) {
	req, err := dbctx.parseNetworkRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetTranscriptNetwork(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) CheckGeneInteraction(c *gin.Context) {
	version, err := parseVersion(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	req := request.InteractionCheck{
		ENSGNumbers: util.SplitCSV(c.Query("ensg_number")),
		GeneSymbols: util.SplitCSV(c.Query("gene_symbol")),
		Version:     version,
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.CheckGeneInteraction(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) CheckTranscriptInteraction(c *gin.Context) {
	version, err := parseVersion(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	req := request.InteractionCheck{
		ENSTNumbers: util.SplitCSV(c.Query("enst_number")),
		Version:     version,
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.CheckTranscriptInteraction(c.Request.Context(), dbctx.DB, req)
	})
}
