package query

import (
	"context"
	"log/slog"

	"github.com/mkd-neo4j/mysql-control-bridge/internal/tools"
)

// ExecuteSelectToolName is the catalog name of the select tool.
const ExecuteSelectToolName = "execute_select_query"

// SelectInput holds the validated arguments of execute_select_query.
type SelectInput struct {
	Query string `mapstructure:"query"`
	Limit int    `mapstructure:"limit"`
}

// Validate rejects anything that is not a SELECT before the database is touched.
func (in *SelectInput) Validate() error {
	if !IsSelectStatement(in.Query) {
		return tools.ErrNotSelect
	}
	return nil
}

// ExecuteSelectHandler returns the handler for execute_select_query.
func ExecuteSelectHandler() tools.Handler {
	return tools.Typed(handleExecuteSelect)
}

func handleExecuteSelect(ctx context.Context, deps *tools.ToolDependencies, in SelectInput) (string, error) {
	statement := ApplyLimit(in.Query, in.Limit)
	slog.Debug("executing select query", "statement", statement, "limit", in.Limit)

	rows, err := deps.DBService.ExecuteReadQuery(ctx, statement, nil)
	if err != nil {
		return "", err
	}

	report := tools.NewReport("Query executed successfully.")
	if err := report.JSON(tools.RowsTitle("Results", len(rows)), rows); err != nil {
		return "", err
	}
	return report.String(), nil
}
