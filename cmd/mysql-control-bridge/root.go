package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mkd-neo4j/mysql-control-bridge/internal/analytics"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/config"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/database"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/logger"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

type options struct {
	transport   string
	address     string
	logLevel    string
	logFormat   string
	envFile     string
	noTelemetry bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "mysql-control-bridge",
		Short: "Read-only MySQL tools for MCP clients",
		Long: `mysql-control-bridge exposes a fixed catalog of read-only MySQL tools over the
Model Context Protocol. The connection is configured with MYSQL_HOST, MYSQL_PORT,
MYSQL_USER, MYSQL_PASSWORD and MYSQL_DATABASE, optionally from a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(ctx, cfg, os.Stderr)
		},
	}

	bindFlags(cmd, opts)
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func bindFlags(cmd *cobra.Command, opts *options) {
	flags := cmd.Flags()
	flags.StringVar(&opts.transport, "transport", config.DefaultTransport, "MCP transport: stdio or http")
	flags.StringVar(&opts.address, "address", config.DefaultHTTPAddress, "listen address for the http transport")
	flags.StringVar(&opts.logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", config.DefaultLogFormat, "log format: text or json")
	flags.StringVar(&opts.envFile, "env-file", "", "load variables from this file instead of searching for .env")
	flags.BoolVar(&opts.noTelemetry, "no-telemetry", false, "disable tool usage metrics")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads .env, then the environment, then applies the flags the
// user actually set.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	if opts.envFile != "" {
		if err := config.LoadEnvFile(opts.envFile); err != nil {
			return nil, err
		}
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		if _, err := config.LoadDotEnv(wd); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("transport") {
		cfg.Transport = opts.transport
	}
	if flags.Changed("address") {
		cfg.HTTPAddress = opts.address
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}
	if opts.noTelemetry {
		cfg.Telemetry = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run wires the services and serves until ctx is cancelled or the client
// goes away. All diagnostics go to stderr.
func run(ctx context.Context, cfg *config.Config, stderr io.Writer) error {
	l, err := logger.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(l)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	an, err := analytics.New(registry)
	if err != nil {
		return fmt.Errorf("failed to initialize analytics: %w", err)
	}
	if !cfg.Telemetry {
		an.Disable()
	}
	slog.Debug("analytics session", "session", an.SessionID())

	db := database.NewProvider()

	srv, err := server.NewMySQLMCPServer(version, cfg, db, an, registry)
	if err != nil {
		return err
	}
	defer func() {
		if err := srv.Stop(); err != nil {
			slog.Error("failed to close MySQL connection", "error", err)
		}
	}()

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
