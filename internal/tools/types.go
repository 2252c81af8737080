package tools

import (
	"context"

	"github.com/mkd-neo4j/mysql-control-bridge/internal/analytics"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/catalog"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/database"
)

// ToolDependencies contains all dependencies needed by tools
type ToolDependencies struct {
	DBService        database.Service
	AnalyticsService analytics.Service
}

// Call is a prepared invocation, ready to run against the database.
// It returns the text payload of a successful result.
type Call func(ctx context.Context, deps *ToolDependencies) (string, error)

// Handler turns validated arguments into a Call. Errors returned here are
// reported before the connection is touched.
type Handler func(args catalog.Arguments) (Call, error)

// Validator is implemented by typed inputs that carry checks beyond the
// catalog schema.
type Validator interface {
	Validate() error
}

// Typed builds a Handler that decodes the arguments into In, runs its
// Validate method when it has one and hands the value to run.
func Typed[In any](run func(ctx context.Context, deps *ToolDependencies, in In) (string, error)) Handler {
	return func(args catalog.Arguments) (Call, error) {
		var in In
		if err := args.Decode(&in); err != nil {
			return nil, err
		}
		if v, ok := any(&in).(Validator); ok {
			if err := v.Validate(); err != nil {
				return nil, err
			}
		}
		return func(ctx context.Context, deps *ToolDependencies) (string, error) {
			return run(ctx, deps, in)
		}, nil
	}
}
