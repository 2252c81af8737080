package database

//go:generate mockgen -destination=mocks/mock_database.go -package=database_mocks github.com/mkd-neo4j/mysql-control-bridge/internal/database Service
import (
	"context"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Row is one result row keyed by column name, in select-list order.
type Row = *orderedmap.OrderedMap[string, any]

// Service is the connection provider used by the tool handlers.
type Service interface {
	// Connect establishes the connection on first use. It is a no-op once connected.
	Connect(ctx context.Context) error
	Ping(ctx context.Context) error
	ExecuteReadQuery(ctx context.Context, query string, params []any) ([]Row, error)
	GetDatabaseName() string
	Close() error
}

// NewRow builds a Row from parallel column and value slices.
func NewRow(columns []string, values []any) Row {
	row := orderedmap.New[string, any](orderedmap.WithCapacity[string, any](len(columns)))
	for i, col := range columns {
		var v any
		if i < len(values) {
			v = values[i]
		}
		row.Set(col, v)
	}
	return row
}
