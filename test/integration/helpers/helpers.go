// Package helpers drives the bridge end to end over MCP JSON-RPC for the
// integration tests.
package helpers

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/config"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/database"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/server"
)

// TestContext holds a bridge connected to the test database.
type TestContext struct {
	t      *testing.T
	Server *server.MySQLMCPServer
	DB     *database.Provider
	nextID atomic.Int64
}

// NewTestContext builds a bridge whose provider connects with conn. The
// provider is closed when the test ends.
func NewTestContext(t *testing.T, conn *config.Connection) *TestContext {
	t.Helper()

	settings := *conn
	provider := database.NewProvider(database.WithConnectionLoader(func() (*config.Connection, error) {
		return &settings, nil
	}))

	cfg := &config.Config{Transport: config.TransportStdio, LogLevel: "info", LogFormat: "text"}
	srv, err := server.NewMySQLMCPServer("integration", cfg, provider, nil, nil)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	t.Cleanup(func() {
		if err := srv.Stop(); err != nil {
			t.Errorf("failed to stop server: %v", err)
		}
	})

	return &TestContext{t: t, Server: srv, DB: provider}
}

type callResponse struct {
	Result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Call sends tools/call and returns the text payload and the error flag.
func (tc *TestContext) Call(name string, args map[string]any) (string, bool) {
	tc.t.Helper()

	request, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      tc.nextID.Add(1),
		"method":  "tools/call",
		"params":  map[string]any{"name": name, "arguments": args},
	})
	if err != nil {
		tc.t.Fatalf("failed to encode request: %v", err)
	}

	raw, err := json.Marshal(tc.Server.MCPServer.HandleMessage(context.Background(), request))
	if err != nil {
		tc.t.Fatalf("failed to encode response: %v", err)
	}

	var resp callResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		tc.t.Fatalf("failed to decode response %s: %v", raw, err)
	}
	if resp.Error != nil {
		tc.t.Fatalf("protocol error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	if len(resp.Result.Content) != 1 || resp.Result.Content[0].Type != "text" {
		tc.t.Fatalf("expected a single text content, got %s", raw)
	}
	return resp.Result.Content[0].Text, resp.Result.IsError
}

// CallTool calls name and fails the test on an error result.
func (tc *TestContext) CallTool(name string, args map[string]any) string {
	tc.t.Helper()
	text, isError := tc.Call(name, args)
	if isError {
		tc.t.Fatalf("%s returned an error: %s", name, text)
	}
	return text
}

// CallToolError calls name and fails the test unless it reports an error.
func (tc *TestContext) CallToolError(name string, args map[string]any) string {
	tc.t.Helper()
	text, isError := tc.Call(name, args)
	if !isError {
		tc.t.Fatalf("%s succeeded, expected an error: %s", name, text)
	}
	return text
}

// ParseJSONBlock decodes the n-th fenced json block of a report.
func (tc *TestContext) ParseJSONBlock(text string, n int, out any) {
	tc.t.Helper()

	block, err := jsonBlock(text, n)
	if err != nil {
		tc.t.Fatalf("%v in:\n%s", err, text)
	}
	if err := json.Unmarshal([]byte(block), out); err != nil {
		tc.t.Fatalf("failed to decode json block: %v\n%s", err, block)
	}
}

func jsonBlock(text string, n int) (string, error) {
	const open, end = "```json\n", "\n```"
	rest := text
	for i := 0; ; i++ {
		start := strings.Index(rest, open)
		if start < 0 {
			return "", fmt.Errorf("json block %d not found", n)
		}
		rest = rest[start+len(open):]
		stop := strings.Index(rest, end)
		if stop < 0 {
			return "", fmt.Errorf("json block %d is not terminated", n)
		}
		if i == n {
			return rest[:stop], nil
		}
		rest = rest[stop+len(end):]
	}
}
