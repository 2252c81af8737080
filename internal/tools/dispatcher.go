package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"runtime/debug"
	"slices"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/analytics"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/catalog"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/config"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/database"
)

// ErrorPrefix marks the text of every error result.
const ErrorPrefix = "Error: "

// Dispatcher routes tool calls through catalog validation to the bound
// handler and turns every outcome into a tool result.
type Dispatcher struct {
	catalog  *catalog.Catalog
	handlers map[string]Handler
	deps     *ToolDependencies
}

// NewDispatcher binds handlers to catalog entries. Every entry needs exactly
// one handler and every handler needs an entry.
func NewDispatcher(c *catalog.Catalog, handlers map[string]Handler, deps *ToolDependencies) (*Dispatcher, error) {
	if deps == nil || deps.DBService == nil {
		return nil, errors.New("database service is not initialized")
	}
	if err := c.Bind(slices.Collect(maps.Keys(handlers))); err != nil {
		return nil, err
	}
	return &Dispatcher{catalog: c, handlers: handlers, deps: deps}, nil
}

// Definitions returns the tool definitions in catalog order.
func (d *Dispatcher) Definitions() []mcp.Tool {
	defs := make([]mcp.Tool, 0, d.catalog.Len())
	for _, t := range d.catalog.Tools() {
		defs = append(defs, t.MCPTool())
	}
	return defs
}

// ServerTools pairs every definition with a handler for the MCP server.
func (d *Dispatcher) ServerTools() []server.ServerTool {
	defs := d.Definitions()
	serverTools := make([]server.ServerTool, 0, len(defs))
	for _, def := range defs {
		serverTools = append(serverTools, server.ServerTool{
			Tool:    def,
			Handler: d.HandleRequest,
		})
	}
	return serverTools
}

// HandleRequest adapts Handle to the mcp-go handler signature. The returned
// error is always nil.
func (d *Dispatcher) HandleRequest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return d.Handle(ctx, request.Params.Name, request.GetArguments()), nil
}

// Handle runs one call: lookup, validate, connect, execute, format. It never
// panics and never returns nil.
func (d *Dispatcher) Handle(ctx context.Context, name string, raw map[string]any) (result *mcp.CallToolResult) {
	start := time.Now()
	outcome := analytics.OutcomeSuccess

	defer func() {
		if r := recover(); r != nil {
			slog.Error("tool handler panicked", "tool", name, "panic", r, "stack", string(debug.Stack()))
			outcome = analytics.OutcomeError
			result = errorResult(fmt.Errorf("internal error: %v", r))
		}
		d.track(name, outcome, time.Since(start))
	}()

	text, err := d.run(ctx, name, raw)
	if err != nil {
		outcome = classify(err)
		slog.Error("tool call failed", "tool", name, "outcome", outcome, "error", err)
		return errorResult(err)
	}

	slog.Debug("tool call succeeded", "tool", name, "duration", time.Since(start))
	return mcp.NewToolResultText(text)
}

func (d *Dispatcher) run(ctx context.Context, name string, raw map[string]any) (string, error) {
	tool, ok := d.catalog.Lookup(name)
	if !ok {
		return "", &UnknownToolError{Name: name}
	}

	args, err := tool.Validate(raw)
	if err != nil {
		return "", err
	}

	call, err := d.handlers[name](args)
	if err != nil {
		return "", err
	}

	if err := d.deps.DBService.Connect(ctx); err != nil {
		return "", err
	}

	slog.Info("executing tool", "tool", name, "category", tool.Category, "database", d.deps.DBService.GetDatabaseName())
	return call(ctx, d.deps)
}

func (d *Dispatcher) track(name string, outcome analytics.Outcome, elapsed time.Duration) {
	an := d.deps.AnalyticsService
	if an == nil {
		return
	}
	an.EmitEvent(an.NewToolsEvent(name, outcome, elapsed))
}

func classify(err error) analytics.Outcome {
	var (
		unknown    *UnknownToolError
		validation *catalog.ValidationError
		notFound   *NotFoundError
		connErr    *database.ConnectionError
	)
	switch {
	case errors.As(err, &unknown):
		return analytics.OutcomeUnknownTool
	case errors.As(err, &validation), errors.Is(err, ErrNotSelect), errors.Is(err, ErrExplainAnalyze):
		return analytics.OutcomeInvalidArgument
	case errors.As(err, &notFound):
		return analytics.OutcomeNotFound
	case errors.As(err, &connErr), isConnectError(err):
		return analytics.OutcomeConnection
	default:
		return analytics.OutcomeError
	}
}

func isConnectError(err error) bool {
	var (
		missing *config.MissingError
		invalid *config.InvalidError
	)
	return errors.As(err, &missing) || errors.As(err, &invalid) || errors.Is(err, database.ErrClosed)
}

func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(ErrorPrefix + err.Error())
}
