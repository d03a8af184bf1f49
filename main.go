package main

import (
	"net/http"
	"os"
	"path"

	"github.com/joho/godotenv"

	"github.com/yumyai/omixweb/logger"
	"github.com/yumyai/omixweb/pkg/config"
	omixdb "github.com/yumyai/omixweb/pkg/db"
	"github.com/yumyai/omixweb/pkg/enrich"
	"github.com/yumyai/omixweb/pkg/handler"
	"github.com/yumyai/omixweb/pkg/middle"
	"github.com/yumyai/omixweb/pkg/model"
	"github.com/yumyai/omixweb/pkg/uniprot"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

func main() {

	VERSION := "0.1.0"

	// Try load env before reading settings
	dotenvErr := godotenv.Load()

	settings := config.FromEnv()

	if err := logger.InitLogger(settings.LogLevel); err != nil {
		panic(err)
	}

	if dotenvErr != nil {
		logger.Warn("No .env found, using local environment")
	}

	defer logger.Sync() // Make sure that the buffered is flushed.

	// Identifier cache is an optimization; run without it if it fails.
	var cache *omixdb.IdentifierCache
	if err := os.MkdirAll(path.Join(settings.DataDir, "db"), 0o755); err != nil {
		logger.Warn("Cannot create data dir, identifier cache disabled", zap.Error(err))
	} else {
		c, err := omixdb.OpenIdentifierCache(settings.CachePath())
		if err != nil {
			logger.Warn("Cannot open identifier cache, continuing without it", zap.Error(err))
		} else {
			cache = c
			defer cache.Close()
		}
	}

	appctx := &handler.AppContext{
		Resolver:  uniprot.NewClient(settings.UniProtURL, cache),
		Enricher:  enrich.NewClient(settings.EnrichrURL),
		Libraries: model.DefaultLibraries(),
		Runs:      handler.NewRunManager(),
	}

	logger.Info("Start:", zap.String("Version", VERSION))
	logger.Info("Identifier cache on", zap.String("CACHE_LOC", settings.CachePath()))

	mux := NewRouter(appctx)

	// Apply middleware
	m := middle.LoggingMiddleware(logger.L())
	srv := m(mux)

	logger.Info("Server starting", zap.String("addr", settings.ListenAddr))
	httpErr := http.ListenAndServe(settings.ListenAddr, srv)
	if httpErr != nil {
		logger.Error("Error starting server:", zap.String("error message", httpErr.Error()))
	}
}

func NewRouter(appctx *handler.AppContext) *http.ServeMux {
	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("GET /api/v1/health", handler.HealthCheck)
	mux.HandleFunc("POST /api/v1/integrate", appctx.IntegrateHandler)
	mux.HandleFunc("POST /api/v1/integrate/async", appctx.IntegrateAsyncHandler)
	mux.HandleFunc("GET /api/v1/runs/{run_id}", appctx.RunStatusHandler)
	mux.HandleFunc("GET /api/v1/runs/{run_id}/summary", appctx.RunSummaryHandler)
	mux.HandleFunc("GET /api/v1/runs/{run_id}/terms", appctx.RunTermsHandler)

	return mux
}
