package schema

import (
	qb "github.com/mkd-neo4j/mysql-control-bridge/internal/tools/query_builder"
)

func tableColumnsStatement(database, table string) qb.Statement {
	return qb.Select(
		qb.As("COLUMN_NAME", "Field"),
		qb.As("COLUMN_TYPE", "Type"),
		qb.As("IS_NULLABLE", "Null"),
		qb.As("COLUMN_KEY", "Key"),
		qb.As("COLUMN_DEFAULT", "Default"),
		qb.As("EXTRA", "Extra"),
		qb.As("COLUMN_COMMENT", "Comment"),
	).
		From("information_schema.COLUMNS").
		Where("TABLE_SCHEMA", database).
		Where("TABLE_NAME", table).
		OrderBy("ORDINAL_POSITION").
		MustBuild()
}

func tableInfoStatement(database, table string) qb.Statement {
	return qb.Select(
		qb.As("TABLE_TYPE", "Type"),
		qb.As("ENGINE", "Engine"),
		qb.As("TABLE_ROWS", "Rows"),
		qb.As("TABLE_COLLATION", "Collation"),
		qb.As("TABLE_COMMENT", "Comment"),
	).
		From("information_schema.TABLES").
		Where("TABLE_SCHEMA", database).
		Where("TABLE_NAME", table).
		MustBuild()
}

func viewDefinitionStatement(database, view string) qb.Statement {
	return qb.Select(
		qb.As("TABLE_NAME", "Name"),
		qb.As("VIEW_DEFINITION", "Definition"),
		qb.As("CHECK_OPTION", "CheckOption"),
		qb.As("IS_UPDATABLE", "Updatable"),
		qb.As("DEFINER", "Definer"),
		qb.As("SECURITY_TYPE", "SecurityType"),
	).
		From("information_schema.VIEWS").
		Where("TABLE_SCHEMA", database).
		Where("TABLE_NAME", view).
		MustBuild()
}

func viewColumnsStatement(database, view string) qb.Statement {
	return qb.Select(
		qb.As("COLUMN_NAME", "Field"),
		qb.As("DATA_TYPE", "DataType"),
		qb.As("IS_NULLABLE", "Null"),
		qb.As("COLUMN_DEFAULT", "Default"),
		qb.As("COLUMN_COMMENT", "Comment"),
	).
		From("information_schema.COLUMNS").
		Where("TABLE_SCHEMA", database).
		Where("TABLE_NAME", view).
		OrderBy("ORDINAL_POSITION").
		MustBuild()
}

func indexesStatement(database, table string) qb.Statement {
	return qb.Select(
		qb.As("INDEX_NAME", "IndexName"),
		qb.As("COLUMN_NAME", "Column"),
		qb.As("NON_UNIQUE", "NonUnique"),
		qb.As("SEQ_IN_INDEX", "Sequence"),
		qb.As("COLLATION", "Collation"),
		qb.As("CARDINALITY", "Cardinality"),
		qb.As("INDEX_TYPE", "IndexType"),
		qb.As("COMMENT", "Comment"),
	).
		From("information_schema.STATISTICS").
		Where("TABLE_SCHEMA", database).
		Where("TABLE_NAME", table).
		OrderBy("INDEX_NAME", "SEQ_IN_INDEX").
		MustBuild()
}

// triggersStatement filters by table only when one is given.
func triggersStatement(database, table string) qb.Statement {
	return qb.Select(
		qb.As("TRIGGER_NAME", "Trigger"),
		qb.As("EVENT_MANIPULATION", "Event"),
		qb.As("EVENT_OBJECT_TABLE", "Table"),
		qb.As("ACTION_TIMING", "Timing"),
		qb.As("ACTION_STATEMENT", "Statement"),
		qb.As("ACTION_ORIENTATION", "Orientation"),
		qb.As("DEFINER", "Definer"),
		qb.As("CREATED", "Created"),
	).
		From("information_schema.TRIGGERS").
		Where("TRIGGER_SCHEMA", database).
		WhereIf("EVENT_OBJECT_TABLE", table).
		OrderBy("TRIGGER_NAME").
		MustBuild()
}

func routinesStatement(database string) qb.Statement {
	return qb.Select(
		qb.As("ROUTINE_NAME", "Name"),
		qb.As("ROUTINE_TYPE", "Type"),
		qb.As("DEFINER", "Definer"),
		qb.As("CREATED", "Created"),
		qb.As("LAST_ALTERED", "LastAltered"),
		qb.As("ROUTINE_COMMENT", "Comment"),
	).
		From("information_schema.ROUTINES").
		Where("ROUTINE_SCHEMA", database).
		OrderBy("ROUTINE_NAME").
		MustBuild()
}
