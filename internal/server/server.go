// Package server exposes the layout and render pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz                 liveness and build information
//	POST /v1/layout               task list → layout JSON
//	POST /v1/render/{format}      task list → artifact (svg, json, csv, dot, graph, txt)
//
// The request body is a task list in JSON (default), YAML or CSV, chosen by
// the Content-Type header or the input query parameter. Chart options are
// query parameters: scale, start, end, assignee, color, from, to,
// min_duration, title, track_labels, detailed, strict.
//
// Errors are returned as {"code": "...", "message": "..."} with the status
// derived from the error code.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/ganttline/pkg/pipeline"
)

// Defaults for [Config].
const (
	DefaultMaxBodyBytes    = 4 << 20
	DefaultShutdownTimeout = 10 * time.Second
)

// Config configures the API.
type Config struct {
	// Runner executes the pipeline. Its cache and keyer are shared by all
	// requests.
	Runner *pipeline.Runner

	// Logger receives one line per request. Defaults to a discard logger.
	Logger *log.Logger

	// Location interprets timestamps without a zone. Defaults to UTC.
	Location *time.Location

	// MaxBodyBytes caps request bodies. Defaults to DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

func (c *Config) setDefaults() {
	if c.Runner == nil {
		c.Runner = pipeline.NewRunner(nil, nil, nil)
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	if c.Location == nil {
		c.Location = time.UTC
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

type api struct {
	cfg Config
}

// New returns an HTTP handler exposing the ganttline API.
func New(cfg Config) http.Handler {
	cfg.setDefaults()
	a := &api{cfg: cfg}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(cfg.Logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", a.health)
	router.Route("/v1", func(r chi.Router) {
		r.Post("/layout", a.layout)
		r.Post("/render/{format}", a.render)
	})
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, cfg.Logger, notFound(r.URL.Path))
	})

	return router
}

// Server is an HTTP server for the API with graceful shutdown.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// NewServer wraps handler in an http.Server listening on addr.
func NewServer(addr string, handler http.Handler, readTimeout, writeTimeout time.Duration, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       readTimeout,
			ReadHeaderTimeout: readTimeout,
			WriteTimeout:      writeTimeout,
		},
		logger: logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully. It returns
// nil after a clean shutdown.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
