package schema

import (
	"context"
	"fmt"

	"github.com/mkd-neo4j/mysql-control-bridge/internal/tools"
)

const (
	DescribeTriggersToolName   = "describe_triggers"
	DescribeProceduresToolName = "describe_procedures"
)

// TriggersInput optionally narrows describe_triggers to one table.
type TriggersInput struct {
	TableName string `mapstructure:"tableName"`
}

// DescribeTriggersHandler returns the handler for describe_triggers.
func DescribeTriggersHandler() tools.Handler {
	return tools.Typed(handleDescribeTriggers)
}

// DescribeProceduresHandler returns the handler for describe_procedures.
func DescribeProceduresHandler() tools.Handler {
	return tools.Typed(handleDescribeProcedures)
}

func handleDescribeTriggers(ctx context.Context, deps *tools.ToolDependencies, in TriggersInput) (string, error) {
	database := deps.DBService.GetDatabaseName()

	stmt := triggersStatement(database, in.TableName)
	triggers, err := deps.DBService.ExecuteReadQuery(ctx, stmt.SQL, stmt.Params)
	if err != nil {
		return "", err
	}

	// A filtered lookup is about one table and reports absence as an error;
	// the unfiltered form is a listing.
	if len(triggers) == 0 {
		if in.TableName != "" {
			return "", &tools.NotFoundError{Entity: "triggers", Name: in.TableName, Database: database}
		}
		return fmt.Sprintf("No triggers found in database '%s'", database), nil
	}

	title := fmt.Sprintf("Triggers in database `%s`:", database)
	if in.TableName != "" {
		title = fmt.Sprintf("Triggers of table `%s`:", in.TableName)
	}

	report := tools.NewReport(title)
	if err := report.JSON(tools.RowsTitle("Triggers", len(triggers)), triggers); err != nil {
		return "", err
	}
	return report.String(), nil
}

func handleDescribeProcedures(ctx context.Context, deps *tools.ToolDependencies, _ struct{}) (string, error) {
	database := deps.DBService.GetDatabaseName()

	stmt := routinesStatement(database)
	routines, err := deps.DBService.ExecuteReadQuery(ctx, stmt.SQL, stmt.Params)
	if err != nil {
		return "", err
	}
	if len(routines) == 0 {
		return fmt.Sprintf("No stored procedures or functions found in database '%s'", database), nil
	}

	report := tools.NewReport(fmt.Sprintf("Stored procedures and functions in database `%s`:", database))
	if err := report.JSON(tools.RowsTitle("Routines", len(routines)), routines); err != nil {
		return "", err
	}
	return report.String(), nil
}
