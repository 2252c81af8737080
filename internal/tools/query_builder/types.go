package query_builder

// Column is one entry of a select list.
type Column struct {
	// Expression is the source column or SQL expression (e.g., "COLUMN_NAME")
	Expression string

	// Alias is the output column name. Empty keeps the expression name.
	Alias string
}

// Condition is a WHERE equality predicate on a bound value.
type Condition struct {
	// Column is the metadata column compared (e.g., "TABLE_SCHEMA")
	Column string

	// Value is bound as a statement parameter, never interpolated
	Value any
}

// Statement is a built query with its positional parameters.
type Statement struct {
	SQL    string
	Params []any
}
