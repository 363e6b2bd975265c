package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	adapthttp "cutplan/internal/adapter/http"
	"cutplan/internal/adapter/memory"
	"cutplan/internal/adapter/postgres"
	"cutplan/internal/adapter/sqlite"
	"cutplan/internal/app"
	"cutplan/internal/config"
	"cutplan/internal/domain"
	"cutplan/internal/logging"
	"cutplan/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logging.New(logging.Config{Level: "info"})
		fallback.Fatal().Err(err).Msg("load config")
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	log.Info().Str("store", cfg.Store).Msg("starting cutplan")

	var (
		logs     domain.LogRepository
		profiles domain.ProfileRepository
	)
	switch cfg.Store {
	case config.StorePostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("open postgres")
		}
		defer func() { _ = db.Close() }()
		logs, profiles = db, db
	case config.StoreSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("open sqlite")
		}
		defer func() { _ = db.Close() }()
		logs, profiles = db, db
	case config.StoreMemory:
		db := memory.New()
		logs, profiles = db, db
	default:
		log.Fatal().Str("store", cfg.Store).Msg("unknown store")
	}

	var cache *app.DashboardCache
	if cfg.CacheEnabled {
		cache = app.NewDashboardCache(cfg.CacheSizeMB*1024*1024, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	}

	clock := domain.RealClock{}
	logSvc := app.NewLogService(logs, clock, log)
	profileSvc := app.NewProfileService(profiles, log)
	planSvc := app.NewPlanService(logs, profiles, clock, log)
	analyticsSvc := app.NewAnalyticsService(logs, profiles, clock, cache, log)

	registry := prometheus.NewRegistry()
	m := metrics.NewManager("cutplan", "server", registry)
	m.GaugeLifeSignal.Set(1)

	srv := adapthttp.New(adapthttp.Config{
		Logs:            logSvc,
		Profile:         profileSvc,
		Plan:            planSvc,
		Analytics:       analyticsSvc,
		Metrics:         m,
		MetricsRegistry: registry,
		Log:             log,
		CORSOrigins:     splitOrigins(cfg.CORSOrigins),
	})

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("serve")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	m.GaugeLifeSignal.Set(0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("stopped")
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
