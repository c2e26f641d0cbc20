package main

import (
	"database/sql"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/daisybio/SPONGE-web-backend-sub000/logger"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/cache"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/db"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/handler"
	"github.com/daisybio/SPONGE-web-backend-sub000/pkg/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "modernc.org/sqlite"
)

func main() {

	// Establish logger
	VERSION := "2.0.0"
	LOG_LEVEL := zapcore.InfoLevel

	if err := logger.InitLogger(LOG_LEVEL); err != nil {
		panic(err)
	}

	// Try load env
	dotenvErr := godotenv.Load()

	if dotenvErr != nil {
		logger.Warn("No .env found, using local environment")
	}

	defer logger.Sync() // Make sure that the buffered is flushed.

	spongeDB := os.Getenv("SPONGE_DB")
	if spongeDB == "" {
		logger.Warn("No local environment (SPONGE_DB), using default value (./data/sponge.db)")
		spongeDB = "./data/sponge.db"
	}

	listen := os.Getenv("SPONGE_LISTEN")
	if listen == "" {
		listen = "0.0.0.0:8080"
	}

	// Connect to db
	sqlDB, err := sql.Open("sqlite", spongeDB)
	if err != nil {
		logger.Error("Cannot open database:", zap.String("error message", err.Error()))
		os.Exit(1)
	}

	dbctx := &handler.DBContext{
		DB:    db.NewSpongeDB(sqlDB),
		Cache: cache.New(envInt("SPONGE_CACHE_SIZE", cache.DefaultSize), envHours("SPONGE_CACHE_TTL_H", cache.DefaultTTL)),
		Predictor: model.PredictorPaths{
			UploadDir: envDefault("SPONGE_UPLOAD_DIR", "./uploads"),
			ModelDir:  envDefault("SPONGE_MODEL_DIR", "./models"),
			Script:    envDefault("SPONGE_PREDICT_SCRIPT", "./scripts/predict.R"),
		},
	}

	logger.Info("Start:", zap.String("Version", VERSION))
	logger.Info("Open database on", zap.String("DB_LOC", spongeDB))

	r := handler.NewRouter(dbctx)

	logger.Info("Server starting", zap.String("listen", listen))
	if httpErr := r.Run(listen); httpErr != nil {
		logger.Error("Error starting server:", zap.String("error message", httpErr.Error()))
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn("Invalid value, using default", zap.String("key", key), zap.String("value", v))
		return fallback
	}
	return n
}

func envHours(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn("Invalid value, using default", zap.String("key", key), zap.String("value", v))
		return fallback
	}
	return time.Duration(n) * time.Hour
}
