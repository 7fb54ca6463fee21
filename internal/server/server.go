// Package server provides the HTTP API for Selene.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"selene/internal/analysis"
	"selene/internal/cache"
	"selene/internal/config"
	"selene/internal/datasheet"
)

// Server is the HTTP server for the Selene API.
type Server struct {
	engine  *analysis.Engine
	gateway analysis.Gateway
	parser  *datasheet.Parser
	results *cache.ResultCache
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server

	// busy guards the single analysis slot. A second concurrent analyze
	// request gets 409 instead of queueing behind a long model call.
	busy atomic.Bool
}

// NewServer creates a server with the given dependencies. results may be nil
// when caching is disabled.
func NewServer(
	engine *analysis.Engine,
	gateway analysis.Gateway,
	parser *datasheet.Parser,
	results *cache.ResultCache,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:  engine,
		gateway: gateway,
		parser:  parser,
		results: results,
		config:  cfg,
		logger:  logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.requestTimeout()))

	r.Post("/api/v1/analyze", s.handleAnalyze)
	r.Post("/api/v1/datasheet", s.handleDatasheet)
	r.Get("/api/v1/categories", s.handleCategories)
	r.Get("/api/v1/status", s.handleStatus)
	r.Delete("/api/v1/cache", s.handleClearCache)
	r.Get("/health", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// requestTimeout covers the worst-case analysis: every retry hitting the full
// model timeout, plus the backoff sleeps and a margin for parsing.
func (s *Server) requestTimeout() time.Duration {
	worst := time.Duration(s.config.Analysis.MaxRetries) * s.config.Ollama.Timeout()
	worst += time.Duration(s.config.Analysis.MaxRetries) * s.config.Analysis.RetryDelay()
	return worst + 30*time.Second
}
