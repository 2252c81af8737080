package schema

import (
	"context"
	"fmt"

	"github.com/mkd-neo4j/mysql-control-bridge/internal/tools"
)

const (
	DescribeTableToolName   = "describe_table"
	DescribeIndexesToolName = "describe_indexes"
)

// TableInput names one table of the configured database.
type TableInput struct {
	TableName string `mapstructure:"tableName"`
}

// DescribeTableHandler returns the handler for describe_table.
func DescribeTableHandler() tools.Handler {
	return tools.Typed(handleDescribeTable)
}

// DescribeIndexesHandler returns the handler for describe_indexes.
func DescribeIndexesHandler() tools.Handler {
	return tools.Typed(handleDescribeIndexes)
}

func handleDescribeTable(ctx context.Context, deps *tools.ToolDependencies, in TableInput) (string, error) {
	database := deps.DBService.GetDatabaseName()

	columnsStmt := tableColumnsStatement(database, in.TableName)
	columns, err := deps.DBService.ExecuteReadQuery(ctx, columnsStmt.SQL, columnsStmt.Params)
	if err != nil {
		return "", err
	}
	if len(columns) == 0 {
		return "", &tools.NotFoundError{Entity: "table", Name: in.TableName, Database: database}
	}

	infoStmt := tableInfoStatement(database, in.TableName)
	info, err := deps.DBService.ExecuteReadQuery(ctx, infoStmt.SQL, infoStmt.Params)
	if err != nil {
		return "", err
	}

	var general any
	if len(info) > 0 {
		general = info[0]
	}

	report := tools.NewReport(fmt.Sprintf("Structure of table `%s`:", in.TableName))
	if err := report.JSON("General information", general); err != nil {
		return "", err
	}
	if err := report.JSON(tools.RowsTitle("Columns", len(columns)), columns); err != nil {
		return "", err
	}
	return report.String(), nil
}

func handleDescribeIndexes(ctx context.Context, deps *tools.ToolDependencies, in TableInput) (string, error) {
	database := deps.DBService.GetDatabaseName()

	stmt := indexesStatement(database, in.TableName)
	indexes, err := deps.DBService.ExecuteReadQuery(ctx, stmt.SQL, stmt.Params)
	if err != nil {
		return "", err
	}
	if len(indexes) == 0 {
		return "", &tools.NotFoundError{Entity: "indexes", Name: in.TableName, Database: database}
	}

	report := tools.NewReport(fmt.Sprintf("Indexes of table `%s`:", in.TableName))
	if err := report.JSON("", indexes); err != nil {
		return "", err
	}
	return report.String(), nil
}
