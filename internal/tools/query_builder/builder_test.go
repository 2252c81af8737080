package query_builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder_Build(t *testing.T) {
	stmt, err := Select(
		As("COLUMN_NAME", "Field"),
		As("COLUMN_TYPE", "Type"),
	).
		From("information_schema.COLUMNS").
		Where("TABLE_SCHEMA", "shop").
		Where("TABLE_NAME", "orders").
		OrderBy("ORDINAL_POSITION").
		Build()

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT COLUMN_NAME AS `Field`, COLUMN_TYPE AS `Type` FROM information_schema.COLUMNS "+
			"WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION",
		stmt.SQL)
	assert.Equal(t, []any{"shop", "orders"}, stmt.Params)
}

func TestSelectBuilder_ValuesAreNeverInterpolated(t *testing.T) {
	hostile := "x' OR '1'='1"
	stmt := Select(As("TABLE_NAME", "Name")).
		From("information_schema.TABLES").
		Where("TABLE_NAME", hostile).
		MustBuild()

	assert.NotContains(t, stmt.SQL, hostile)
	assert.Equal(t, []any{hostile}, stmt.Params)
}

func TestSelectBuilder_WhereIf(t *testing.T) {
	base := func() *SelectBuilder {
		return Select(As("TRIGGER_NAME", "Trigger")).
			From("information_schema.TRIGGERS").
			Where("TRIGGER_SCHEMA", "shop")
	}

	unfiltered := base().WhereIf("EVENT_OBJECT_TABLE", "").OrderBy("TRIGGER_NAME").MustBuild()
	assert.Equal(t, "SELECT TRIGGER_NAME AS `Trigger` FROM information_schema.TRIGGERS WHERE TRIGGER_SCHEMA = ? ORDER BY TRIGGER_NAME", unfiltered.SQL)
	assert.Equal(t, []any{"shop"}, unfiltered.Params)

	filtered := base().WhereIf("EVENT_OBJECT_TABLE", "orders").OrderBy("TRIGGER_NAME")
	stmt := filtered.MustBuild()
	assert.Contains(t, stmt.SQL, "WHERE TRIGGER_SCHEMA = ? AND EVENT_OBJECT_TABLE = ? ORDER BY TRIGGER_NAME")
	assert.Equal(t, []any{"shop", "orders"}, stmt.Params)
}

func TestSelectBuilder_NoConditions(t *testing.T) {
	stmt := Select(Column{Expression: "SCHEMA_NAME"}).
		From("information_schema.SCHEMATA").
		OrderBy("SCHEMA_NAME").
		MustBuild()

	assert.Equal(t, "SELECT SCHEMA_NAME FROM information_schema.SCHEMATA ORDER BY SCHEMA_NAME", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestSelectBuilder_Errors(t *testing.T) {
	_, err := Select().From("information_schema.TABLES").Build()
	assert.Error(t, err)

	_, err = Select(As("TABLE_NAME", "Name")).Build()
	assert.Error(t, err)

	assert.Panics(t, func() { Select().MustBuild() })
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Field", "`Field`"},
		{"odd`name", "`odd``name`"},
		{"", "``"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, QuoteIdentifier(tt.in))
	}
}
