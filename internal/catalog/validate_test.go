package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	c := loadDefault(t)

	tests := []struct {
		name      string
		tool      string
		raw       map[string]any
		want      Arguments
		wantField string
		wantMsg   string
	}{
		{
			name: "default limit applied",
			tool: "execute_select_query",
			raw:  map[string]any{"query": "  select 1  "},
			want: Arguments{"query": "select 1", "limit": 100.0},
		},
		{
			name: "limit clamped to maximum",
			tool: "execute_select_query",
			raw:  map[string]any{"query": "select 1", "limit": 5000},
			want: Arguments{"query": "select 1", "limit": 1000.0},
		},
		{
			name: "negative limit clamped to zero",
			tool: "execute_select_query",
			raw:  map[string]any{"query": "select 1", "limit": -3.0},
			want: Arguments{"query": "select 1", "limit": 0.0},
		},
		{
			name: "numeric string limit",
			tool: "execute_select_query",
			raw:  map[string]any{"query": "select 1", "limit": "25"},
			want: Arguments{"query": "select 1", "limit": 25.0},
		},
		{
			name: "json number limit",
			tool: "execute_select_query",
			raw:  map[string]any{"query": "select 1", "limit": json.Number("7")},
			want: Arguments{"query": "select 1", "limit": 7.0},
		},
		{
			name: "null limit uses default",
			tool: "execute_select_query",
			raw:  map[string]any{"query": "select 1", "limit": nil},
			want: Arguments{"query": "select 1", "limit": 100.0},
		},
		{
			name:      "non numeric limit",
			tool:      "execute_select_query",
			raw:       map[string]any{"query": "select 1", "limit": "lots"},
			wantField: "limit",
			wantMsg:   "argument limit must be a number",
		},
		{
			name:      "missing query",
			tool:      "execute_select_query",
			raw:       map[string]any{},
			wantField: "query",
			wantMsg:   "missing required argument: query",
		},
		{
			name:      "query not a string",
			tool:      "explain_query",
			raw:       map[string]any{"query": 42},
			wantField: "query",
			wantMsg:   "argument query must be a string",
		},
		{
			name:      "blank table name",
			tool:      "describe_table",
			raw:       map[string]any{"tableName": "   "},
			wantField: "tableName",
			wantMsg:   "argument tableName must not be empty",
		},
		{
			name: "table name trimmed",
			tool: "describe_indexes",
			raw:  map[string]any{"tableName": " orders "},
			want: Arguments{"tableName": "orders"},
		},
		{
			name: "optional filter absent",
			tool: "describe_triggers",
			raw:  nil,
			want: Arguments{},
		},
		{
			name: "blank optional filter is absent",
			tool: "describe_triggers",
			raw:  map[string]any{"tableName": " "},
			want: Arguments{},
		},
		{
			name: "unknown arguments dropped",
			tool: "show_tables",
			raw:  map[string]any{"database": "other"},
			want: Arguments{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool, ok := c.Lookup(tt.tool)
			require.True(t, ok)

			got, err := tool.Validate(tt.raw)
			if tt.wantMsg != "" {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr.Field)
				assert.Equal(t, tt.wantMsg, verr.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArgumentsDecode(t *testing.T) {
	var in struct {
		Query string `mapstructure:"query"`
		Limit int    `mapstructure:"limit"`
	}

	require.NoError(t, Arguments{"query": "select 1", "limit": 12.9}.Decode(&in))
	assert.Equal(t, "select 1", in.Query)
	assert.Equal(t, 12, in.Limit)
}
