package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/model"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/render"
)

// Dataset browsing and service health.

func (dbctx *DBContext) GetDatasets(c *gin.Context) {
	version, err := parseVersion(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	diseaseName := c.Query("disease_name")
	dbctx.respondCached(c, func() (any, error) {
		return model.ListDatasets(c.Request.Context(), dbctx.DB, diseaseName, version)
	})
}

func (dbctx *DBContext) GetSpongeRunInformation(c *gin.Context) {
	scope, err := parseScope(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetSpongeRunInformation(c.Request.Context(), dbctx.DB, scope)
	})
}

func (dbctx *DBContext) GetOverallCounts(c *gin.Context) {
	version, err := parseVersion(c)
	if err != nil {
		render.Error(c, err)
		return
	}
	dbctx.respondCached(c, func() (any, error) {
		return model.GetOverallCounts(c.Request.Context(), dbctx.DB, version)
	})
}

// Healthcheck pings the catalog; the process is healthy only when the
// database answers.
func (dbctx *DBContext) Healthcheck(c *gin.Context) {
	if err := dbctx.DB.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
