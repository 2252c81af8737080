package schema

import (
	"context"
	"fmt"

	"github.com/mkd-neo4j/mysql-control-bridge/internal/tools"
	qb "github.com/mkd-neo4j/mysql-control-bridge/internal/tools/query_builder"
)

const DescribeViewToolName = "describe_view"

type ViewInput struct {
	ViewName string `mapstructure:"viewName"`
}

// DescribeViewHandler returns the handler for describe_view.
func DescribeViewHandler() tools.Handler {
	return tools.Typed(handleDescribeView)
}

func handleDescribeView(ctx context.Context, deps *tools.ToolDependencies, in ViewInput) (string, error) {
	database := deps.DBService.GetDatabaseName()

	defStmt := viewDefinitionStatement(database, in.ViewName)
	definitions, err := deps.DBService.ExecuteReadQuery(ctx, defStmt.SQL, defStmt.Params)
	if err != nil {
		return "", err
	}
	if len(definitions) == 0 {
		return "", &tools.NotFoundError{Entity: "view", Name: in.ViewName, Database: database}
	}
	definition := definitions[0]

	colStmt := viewColumnsStatement(database, in.ViewName)
	columns, err := deps.DBService.ExecuteReadQuery(ctx, colStmt.SQL, colStmt.Params)
	if err != nil {
		return "", err
	}

	body, _ := definition.Get("Definition")

	report := tools.NewReport(fmt.Sprintf("View `%s`:", in.ViewName))
	if err := report.JSON("Definition", definition); err != nil {
		return "", err
	}
	if err := report.JSON(tools.RowsTitle("Columns", len(columns)), columns); err != nil {
		return "", err
	}
	report.Code("View SQL", "sql", CreateViewSQL(in.ViewName, body))
	return report.String(), nil
}

// CreateViewSQL renders the stored definition as a CREATE OR REPLACE VIEW
// statement.
func CreateViewSQL(name string, definition any) string {
	body := ""
	if definition != nil {
		body = fmt.Sprint(definition)
	}
	return fmt.Sprintf("CREATE OR REPLACE VIEW %s AS %s", qb.QuoteIdentifier(name), body)
}
