// Package adapthttp is the driving HTTP adapter: it routes requests to the
// application services and owns all wire-level concerns.
package adapthttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"cutplan/internal/app"
	"cutplan/internal/metrics"
)

// Config holds everything the server needs wired in.
type Config struct {
	Logs      *app.LogService
	Profile   *app.ProfileService
	Plan      *app.PlanService
	Analytics *app.AnalyticsService

	Metrics         *metrics.Manager
	MetricsRegistry *prometheus.Registry
	Log             zerolog.Logger
	CORSOrigins     []string
}

// Server routes requests to the application services.
type Server struct {
	logs      *app.LogService
	profile   *app.ProfileService
	plan      *app.PlanService
	analytics *app.AnalyticsService

	metrics     *metrics.Manager
	registry    *prometheus.Registry
	log         zerolog.Logger
	corsOrigins []string
}

// New creates a Server wired to the given application services.
func New(cfg Config) *Server {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Server{
		logs:        cfg.Logs,
		profile:     cfg.Profile,
		plan:        cfg.Plan,
		analytics:   cfg.Analytics,
		metrics:     cfg.Metrics,
		registry:    cfg.MetricsRegistry,
		log:         cfg.Log.With().Str("component", "http").Logger(),
		corsOrigins: origins,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.recoverPanic)
	r.Use(s.loggingMiddleware)
	r.Use(s.requestMetrics)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(withNoCache)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		})

		r.Get("/profile", s.handleProfileGet)
		r.Put("/profile", s.handleProfilePut)
		r.Get("/weight-classes", s.handleWeightClasses)

		r.Route("/logs", func(r chi.Router) {
			r.Post("/", s.handleLogCreate)
			r.Get("/", s.handleLogRange)
			r.Get("/recent", s.handleLogRecent)
			r.Post("/undo-last", s.handleLogUndoLast)
			r.Delete("/{id}", s.handleLogDelete)
		})

		r.Route("/plan", func(r chi.Router) {
			r.Get("/day", s.handlePlanDay)
			r.Get("/rehydration", s.handlePlanRehydration)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/drift", s.handleAnalyticsDrift)
			r.Get("/descent", s.handleAnalyticsDescent)
			r.Get("/dashboard", s.handleAnalyticsDashboard)
		})
	})

	if s.registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	return r
}
