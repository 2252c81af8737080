package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/analytics"
	analytics_mocks "github.com/mkd-neo4j/mysql-control-bridge/internal/analytics/mocks"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/catalog"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/config"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/database"
	database_mocks "github.com/mkd-neo4j/mysql-control-bridge/internal/database/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testCatalog = `
tools:
  - name: echo
    description: returns its input
    parameters:
      - {name: text, type: string, required: true}
  - name: count
    description: counts rows
  - name: explode
    description: panics
`

type echoInput struct {
	Text string `mapstructure:"text"`
}

func (in *echoInput) Validate() error {
	if in.Text == "forbidden" {
		return ErrNotSelect
	}
	return nil
}

func testHandlers() map[string]Handler {
	return map[string]Handler{
		"echo": Typed(func(_ context.Context, _ *ToolDependencies, in echoInput) (string, error) {
			return in.Text, nil
		}),
		"count": Typed(func(ctx context.Context, deps *ToolDependencies, _ struct{}) (string, error) {
			rows, err := deps.DBService.ExecuteReadQuery(ctx, "SELECT 1", nil)
			if err != nil {
				return "", err
			}
			if len(rows) == 0 {
				return "", &NotFoundError{Entity: "table", Name: "t", Database: deps.DBService.GetDatabaseName()}
			}
			return "ok", nil
		}),
		"explode": Typed(func(context.Context, *ToolDependencies, struct{}) (string, error) {
			panic("boom")
		}),
	}
}

func newDispatcher(t *testing.T, db database.Service, an analytics.Service) *Dispatcher {
	t.Helper()
	c, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)
	d, err := NewDispatcher(c, testHandlers(), &ToolDependencies{DBService: db, AnalyticsService: an})
	require.NoError(t, err)
	return d
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleUnknownToolNeverTouchesDatabase(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := database_mocks.NewMockService(ctrl)
	d := newDispatcher(t, db, nil)

	for _, name := range []string{"drop_table", "", "ECHO"} {
		result := d.Handle(context.Background(), name, nil)
		assert.True(t, result.IsError)
		assert.Equal(t, "Error: unknown tool: "+name, resultText(t, result))
	}
}

func TestHandleValidationNeverTouchesDatabase(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := database_mocks.NewMockService(ctrl)
	d := newDispatcher(t, db, nil)

	tests := []struct {
		args map[string]any
		want string
	}{
		{args: nil, want: "Error: missing required argument: text"},
		{args: map[string]any{"text": "  "}, want: "Error: argument text must not be empty"},
		{args: map[string]any{"text": 3}, want: "Error: argument text must be a string"},
		{args: map[string]any{"text": "forbidden"}, want: "Error: only SELECT queries are allowed"},
	}

	for _, tt := range tests {
		result := d.Handle(context.Background(), "echo", tt.args)
		assert.True(t, result.IsError)
		assert.Equal(t, tt.want, resultText(t, result))
	}
}

func TestHandleConnectsBeforeRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := database_mocks.NewMockService(ctrl)
	d := newDispatcher(t, db, nil)

	db.EXPECT().Connect(gomock.Any()).Return(nil)
	db.EXPECT().GetDatabaseName().Return("shop").AnyTimes()

	result := d.Handle(context.Background(), "echo", map[string]any{"text": " hi "})
	assert.False(t, result.IsError)
	assert.Equal(t, "hi", resultText(t, result))
}

func TestHandleConnectionFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := database_mocks.NewMockService(ctrl)
	an := analytics_mocks.NewMockService(ctrl)
	d := newDispatcher(t, db, an)

	gomock.InOrder(
		db.EXPECT().Connect(gomock.Any()).Return(&config.MissingError{Variables: []string{config.EnvHost}}),
		an.EXPECT().NewToolsEvent("count", analytics.OutcomeConnection, gomock.Any()).Return(analytics.TrackEvent{Event: analytics.EventToolCall}),
		an.EXPECT().EmitEvent(analytics.TrackEvent{Event: analytics.EventToolCall}),
	)

	result := d.Handle(context.Background(), "count", nil)
	assert.True(t, result.IsError)
	assert.Equal(t, "Error: missing required environment variables: MYSQL_HOST", resultText(t, result))
}

func TestHandleExecutionAndNotFoundErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := database_mocks.NewMockService(ctrl)
	d := newDispatcher(t, db, nil)

	db.EXPECT().Connect(gomock.Any()).Return(nil).Times(2)
	db.EXPECT().GetDatabaseName().Return("shop").AnyTimes()
	gomock.InOrder(
		db.EXPECT().ExecuteReadQuery(gomock.Any(), "SELECT 1", gomock.Nil()).Return(nil, errors.New("Error 1142: SELECT command denied")),
		db.EXPECT().ExecuteReadQuery(gomock.Any(), "SELECT 1", gomock.Nil()).Return([]database.Row{}, nil),
	)

	result := d.Handle(context.Background(), "count", nil)
	assert.True(t, result.IsError)
	assert.Equal(t, "Error: Error 1142: SELECT command denied", resultText(t, result))

	result = d.Handle(context.Background(), "count", nil)
	assert.True(t, result.IsError)
	assert.Equal(t, "Error: table 't' not found in database 'shop'", resultText(t, result))
}

func TestHandleRecoversFromPanics(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := database_mocks.NewMockService(ctrl)
	an := analytics_mocks.NewMockService(ctrl)
	d := newDispatcher(t, db, an)

	db.EXPECT().Connect(gomock.Any()).Return(nil)
	db.EXPECT().GetDatabaseName().Return("shop").AnyTimes()
	an.EXPECT().NewToolsEvent("explode", analytics.OutcomeError, gomock.Any()).Return(analytics.TrackEvent{})
	an.EXPECT().EmitEvent(gomock.Any())

	var result *mcp.CallToolResult
	assert.NotPanics(t, func() {
		result = d.Handle(context.Background(), "explode", nil)
	})
	assert.True(t, result.IsError)
	assert.Equal(t, "Error: internal error: boom", resultText(t, result))
}

func TestHandleRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := database_mocks.NewMockService(ctrl)
	d := newDispatcher(t, db, nil)

	db.EXPECT().Connect(gomock.Any()).Return(nil)
	db.EXPECT().GetDatabaseName().Return("shop").AnyTimes()

	request := mcp.CallToolRequest{}
	request.Params.Name = "echo"
	request.Params.Arguments = map[string]any{"text": "hello"}

	result, err := d.HandleRequest(context.Background(), request)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "hello", resultText(t, result))
}

func TestDefinitionsKeepCatalogOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := newDispatcher(t, database_mocks.NewMockService(ctrl), nil)

	var names []string
	for _, def := range d.Definitions() {
		names = append(names, def.Name)
	}
	assert.Equal(t, []string{"echo", "count", "explode"}, names)
	assert.Len(t, d.ServerTools(), 3)
}

func TestNewDispatcherRejectsMismatchedHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)

	handlers := testHandlers()
	delete(handlers, "count")

	_, err = NewDispatcher(c, handlers, &ToolDependencies{DBService: database_mocks.NewMockService(ctrl)})
	assert.ErrorContains(t, err, "tools without handler: count")

	_, err = NewDispatcher(c, testHandlers(), &ToolDependencies{})
	assert.Error(t, err)
}
