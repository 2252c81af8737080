package query

import (
	"context"

	"github.com/mkd-neo4j/mysql-control-bridge/internal/tools"
)

// ExplainToolName is the catalog name of the explain tool.
const ExplainToolName = "explain_query"

type ExplainInput struct {
	Query string `mapstructure:"query"`
}

// Validate refuses a leading ANALYZE: EXPLAIN ANALYZE executes the statement.
func (in *ExplainInput) Validate() error {
	if IsAnalyzeStatement(in.Query) {
		return tools.ErrExplainAnalyze
	}
	return nil
}

// ExplainHandler returns the handler for explain_query. The statement is
// passed to EXPLAIN as given once ANALYZE has been ruled out.
func ExplainHandler() tools.Handler {
	return tools.Typed(handleExplain)
}

func handleExplain(ctx context.Context, deps *tools.ToolDependencies, in ExplainInput) (string, error) {
	rows, err := deps.DBService.ExecuteReadQuery(ctx, "EXPLAIN "+in.Query, nil)
	if err != nil {
		return "", err
	}

	report := tools.NewReport("Execution plan:")
	if err := report.JSON("", rows); err != nil {
		return "", err
	}
	return report.String(), nil
}
