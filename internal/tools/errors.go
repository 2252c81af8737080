package tools

import (
	"errors"
	"fmt"
)

// ErrNotSelect rejects statements that do not start with SELECT.
var ErrNotSelect = errors.New("only SELECT queries are allowed")

// ErrExplainAnalyze rejects EXPLAIN ANALYZE, which runs the statement.
var ErrExplainAnalyze = errors.New("EXPLAIN ANALYZE is not allowed because it executes the statement")

// UnknownToolError is returned for names missing from the catalog.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return "unknown tool: " + e.Name
}

// NotFoundError is a lookup that matched no rows.
type NotFoundError struct {
	// Entity is "table", "view", "indexes" or "triggers"
	Entity   string
	Name     string
	Database string
}

func (e *NotFoundError) Error() string {
	switch e.Entity {
	case "indexes", "triggers":
		return fmt.Sprintf("no %s found for table '%s' in database '%s'", e.Entity, e.Name, e.Database)
	default:
		return fmt.Sprintf("%s '%s' not found in database '%s'", e.Entity, e.Name, e.Database)
	}
}
