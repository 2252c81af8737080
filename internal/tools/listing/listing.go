// Package listing implements the tools that enumerate objects visible to the
// connection. Empty results are informational, not errors.
package listing

import (
	"context"
	"fmt"

	"github.com/mkd-neo4j/mysql-control-bridge/internal/tools"
)

const (
	ShowTablesToolName    = "show_tables"
	ShowDatabasesToolName = "show_databases"
)

// ShowTablesHandler returns the handler for show_tables.
func ShowTablesHandler() tools.Handler {
	return tools.Typed(handleShowTables)
}

// ShowDatabasesHandler returns the handler for show_databases.
func ShowDatabasesHandler() tools.Handler {
	return tools.Typed(handleShowDatabases)
}

func handleShowTables(ctx context.Context, deps *tools.ToolDependencies, _ struct{}) (string, error) {
	database := deps.DBService.GetDatabaseName()

	stmt := tablesStatement(database)
	tables, err := deps.DBService.ExecuteReadQuery(ctx, stmt.SQL, stmt.Params)
	if err != nil {
		return "", err
	}
	if len(tables) == 0 {
		return fmt.Sprintf("No tables found in database '%s'", database), nil
	}

	report := tools.NewReport(fmt.Sprintf("Tables and views in database `%s`:", database))
	if err := report.JSON(tools.RowsTitle("Tables", len(tables)), tables); err != nil {
		return "", err
	}
	return report.String(), nil
}

func handleShowDatabases(ctx context.Context, deps *tools.ToolDependencies, _ struct{}) (string, error) {
	stmt := databasesStatement()
	databases, err := deps.DBService.ExecuteReadQuery(ctx, stmt.SQL, stmt.Params)
	if err != nil {
		return "", err
	}
	if len(databases) == 0 {
		return "No databases found", nil
	}

	report := tools.NewReport("Available databases:")
	if err := report.JSON(tools.RowsTitle("Databases", len(databases)), databases); err != nil {
		return "", err
	}
	return report.String(), nil
}
