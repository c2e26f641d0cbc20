package handler

// DI for all handlers alike.

import (
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/cache"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/model"
)

type DBContext struct {
	DB        *db.SpongeDB
	Cache     *cache.ResponseCache
	Predictor model.PredictorPaths
}
