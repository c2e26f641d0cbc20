package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/daisybio/SPONGE-web-backend-sub000/internal/util"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler/request"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/model"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/render"
)

func parseSplicingRequest(c *gin.Context) (request.SplicingEvents, error) {
	eventIDs, err := parseInt64CSV(c.Query("alternative_splicing_event_ID"))
	if err != nil {
		return request.SplicingEvents{}, err
	}
	return request.SplicingEvents{
		ENSTNumbers: util.SplitCSV(c.Query("enst_number")),
		EventIDs:    eventIDs,
	}, nil
}

func (dbctx *DBContext) SplicingGetTranscriptEvents(c *gin.Context) {
	req, err := parseSplicingRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	req.EventTypes = util.SplitCSV(c.Query("event_type"))
	dbctx.respondCached(c, func() (any, error) {
		return model.GetSplicingEvents(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) SplicingGetEventPositions(c *gin.Context) {
	req, err := parseSplicingRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetEventPositions(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) SplicingGetExonsForPosition(c *gin.Context) {
	req, err := parseSplicingRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	req.StartPos = parseInt64Fallback(c.Query("start_pos"), 0)
	req.EndPos = parseInt64Fallback(c.Query("end_pos"), 0)
	dbctx.respondCached(c, func() (any, error) {
		return model.GetExons(c.Request.Context(), dbctx.DB, req)
	})
}

func (dbctx *DBContext) SplicingGetPsiValue(c *gin.Context) {
	req, err := parseSplicingRequest(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	req.EventTypes = util.SplitCSV(c.Query("event_type"))
	req.SampleIDs = util.SplitCSV(c.Query("sample_ID"))
	dbctx.respondCached(c, func() (any, error) {
		return model.GetPsiValues(c.Request.Context(), dbctx.DB, req)
	})
}
