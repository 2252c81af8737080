package query_builder

import (
	"fmt"
	"strings"
)

// SelectBuilder helps construct parameterised SELECT statements against the
// information_schema views. Identifiers passed to the builder are trusted
// constants; every value goes through a placeholder.
type SelectBuilder struct {
	columns    []Column
	from       string
	conditions []Condition
	orderBy    []string
}

// Select creates a builder for the given select list.
func Select(columns ...Column) *SelectBuilder {
	return &SelectBuilder{
		columns:    columns,
		conditions: make([]Condition, 0),
	}
}

// As is shorthand for an aliased column.
func As(expression, alias string) Column {
	return Column{Expression: expression, Alias: alias}
}

// From sets the source view (e.g., "information_schema.COLUMNS").
func (b *SelectBuilder) From(source string) *SelectBuilder {
	b.from = source
	return b
}

// Where adds an equality predicate.
//
// Example:
//
//	Select(As("TABLE_NAME", "Name")).From("information_schema.TABLES").Where("TABLE_SCHEMA", "shop")
//	// Generates: SELECT TABLE_NAME AS `Name` FROM information_schema.TABLES WHERE TABLE_SCHEMA = ?
//	// Params: ["shop"]
func (b *SelectBuilder) Where(column string, value any) *SelectBuilder {
	b.conditions = append(b.conditions, Condition{Column: column, Value: value})
	return b
}

// WhereIf adds an equality predicate only when value is non-empty.
func (b *SelectBuilder) WhereIf(column, value string) *SelectBuilder {
	if value == "" {
		return b
	}
	return b.Where(column, value)
}

// OrderBy appends ordering columns.
func (b *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, columns...)
	return b
}

// Build renders the statement. It returns an error for an empty select
// list or a missing source.
func (b *SelectBuilder) Build() (Statement, error) {
	if len(b.columns) == 0 {
		return Statement{}, fmt.Errorf("select list is empty")
	}
	if b.from == "" {
		return Statement{}, fmt.Errorf("source is required")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	for i, col := range b.columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(col.Expression)
		if col.Alias != "" {
			sb.WriteString(" AS ")
			sb.WriteString(QuoteIdentifier(col.Alias))
		}
	}

	sb.WriteString(" FROM ")
	sb.WriteString(b.from)

	params := make([]any, 0, len(b.conditions))
	for i, cond := range b.conditions {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(cond.Column)
		sb.WriteString(" = ?")
		params = append(params, cond.Value)
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	return Statement{SQL: sb.String(), Params: params}, nil
}

// MustBuild is Build for statements assembled from constants.
func (b *SelectBuilder) MustBuild() Statement {
	stmt, err := b.Build()
	if err != nil {
		panic(err)
	}
	return stmt
}

// QuoteIdentifier wraps a MySQL identifier in backticks, doubling any
// backtick inside it.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
