// Package api exposes scenario validation over HTTP.
//
// The server wraps a pipeline.Runner and serves:
//
//	POST /v1/validate        validate one scenario
//	POST /v1/validate/batch  validate a list of scenarios
//	POST /v1/render          render a scenario's graph as SVG
//	GET  /v1/reports         list archived reports (requires a store)
//	GET  /v1/reports/{id}    fetch one archived report
//	GET  /healthz            liveness probe
//	GET  /metrics            Prometheus metrics (when configured)
//
// Rule findings are data, not errors: a scenario that fails validation
// rules still returns 200 with passed=false. Only malformed input and
// infrastructure failures map to error status codes.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/causallab/dagcheck/pkg/pipeline"
	"github.com/causallab/dagcheck/pkg/store"
)

// Server handles HTTP validation requests.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store // nil disables the reports endpoints
	metrics http.Handler
	logger  *log.Logger
	opts    pipeline.Options
}

// Config assembles a server.
type Config struct {
	Runner *pipeline.Runner

	// Store enables the /v1/reports endpoints and archives every
	// successful validation. Optional.
	Store store.Store

	// Metrics serves GET /metrics. Optional.
	Metrics http.Handler

	Logger *log.Logger

	// Options are the default pipeline options for all requests.
	Options pipeline.Options
}

// NewServer creates a server. Config.Runner is required.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner:  cfg.Runner,
		store:   cfg.Store,
		metrics: cfg.Metrics,
		logger:  logger,
		opts:    cfg.Options,
	}
}

// Handler builds the chi router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/validate/batch", s.handleValidateBatch)
		r.Post("/render", s.handleRender)
		if s.store != nil {
			r.Get("/reports", s.handleListReports)
			r.Get("/reports/{id}", s.handleGetReport)
		}
	})

	return r
}

// logRequests emits one structured log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
