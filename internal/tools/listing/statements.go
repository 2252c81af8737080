package listing

import (
	qb "github.com/mkd-neo4j/mysql-control-bridge/internal/tools/query_builder"
)

func tablesStatement(database string) qb.Statement {
	return qb.Select(
		qb.As("TABLE_NAME", "Name"),
		qb.As("TABLE_TYPE", "Type"),
		qb.As("ENGINE", "Engine"),
		qb.As("TABLE_ROWS", "Rows"),
		qb.As("TABLE_COLLATION", "Collation"),
		qb.As("TABLE_COMMENT", "Comment"),
	).
		From("information_schema.TABLES").
		Where("TABLE_SCHEMA", database).
		OrderBy("TABLE_TYPE", "TABLE_NAME").
		MustBuild()
}

func databasesStatement() qb.Statement {
	return qb.Select(
		qb.As("SCHEMA_NAME", "Name"),
		qb.As("DEFAULT_CHARACTER_SET_NAME", "DefaultCharset"),
		qb.As("DEFAULT_COLLATION_NAME", "DefaultCollation"),
	).
		From("information_schema.SCHEMATA").
		OrderBy("SCHEMA_NAME").
		MustBuild()
}
