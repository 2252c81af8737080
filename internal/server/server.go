package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mkd-neo4j/mysql-control-bridge/docs"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/analytics"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/config"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/database"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/tools"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerName is advertised to clients during initialization.
const ServerName = "mysql-control-bridge"

const shutdownTimeout = 5 * time.Second

// MySQLMCPServer exposes the tool catalog over MCP.
type MySQLMCPServer struct {
	MCPServer  *server.MCPServer
	config     *config.Config
	dbService  database.Service
	anService  analytics.Service
	registry   *prometheus.Registry
	dispatcher *tools.Dispatcher
	version    string
}

// NewMySQLMCPServer creates the server and registers every catalog tool.
// registry may be nil when metrics are not exposed.
func NewMySQLMCPServer(version string, cfg *config.Config, dbService database.Service, anService analytics.Service, registry *prometheus.Registry) (*MySQLMCPServer, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(strings.TrimSpace(docs.ServerInstructions)),
	)

	s := &MySQLMCPServer{
		MCPServer: mcpServer,
		config:    cfg,
		dbService: dbService,
		anService: anService,
		registry:  registry,
		version:   version,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	return s, nil
}

// Start serves the configured transport until ctx is cancelled or the
// client disconnects.
func (s *MySQLMCPServer) Start(ctx context.Context) error {
	if s.anService != nil {
		s.anService.EmitEvent(s.anService.NewStartupEvent(analytics.StartupEventInfo{
			Version:   s.version,
			Transport: s.config.Transport,
			ToolCount: len(s.dispatcher.Definitions()),
		}))
	}

	slog.Info("starting MCP server", "name", ServerName, "version", s.version, "transport", s.config.Transport)

	switch s.config.Transport {
	case config.TransportHTTP:
		return s.RunHTTP(ctx, s.config.HTTPAddress)
	default:
		return s.RunStdio(ctx, os.Stdin, os.Stdout)
	}
}

// Stop closes the database connection. Calls arriving afterwards fail.
func (s *MySQLMCPServer) Stop() error {
	slog.Info("stopping MCP server")
	if s.dbService == nil {
		return nil
	}
	return s.dbService.Close()
}

// RunStdio serves JSON-RPC over the given streams. Diagnostics never go to out.
func (s *MySQLMCPServer) RunStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.MCPServer)
	stdio.SetErrorLogger(log.New(os.Stderr, "mcp: ", log.LstdFlags))

	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Handler returns the HTTP routes: /mcp, /metrics and /healthz.
func (s *MySQLMCPServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", s.handleHealth)
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	r.Handle("/mcp", server.NewStreamableHTTPServer(s.MCPServer))

	return r
}

// RunHTTP serves the streamable HTTP transport and shuts down gracefully
// when ctx is cancelled.
func (s *MySQLMCPServer) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (streamable HTTP)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		slog.Info("shutdown signal received, stopping HTTP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *MySQLMCPServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"name":    ServerName,
		"version": s.version,
		"tools":   len(s.dispatcher.Definitions()),
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
