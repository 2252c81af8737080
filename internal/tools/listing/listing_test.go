package listing

import (
	"context"
	"testing"

	"github.com/mkd-neo4j/mysql-control-bridge/internal/catalog"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/database"
	database_mocks "github.com/mkd-neo4j/mysql-control-bridge/internal/database/mocks"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func run(t *testing.T, h tools.Handler, db database.Service) (string, error) {
	t.Helper()
	call, err := h(catalog.Arguments{})
	require.NoError(t, err)
	return call(context.Background(), &tools.ToolDependencies{DBService: db})
}

func TestShowTables(t *testing.T) {
	stmt := tablesStatement("shop")
	assert.Contains(t, stmt.SQL, "FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? ORDER BY TABLE_TYPE, TABLE_NAME")

	t.Run("lists tables", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db := database_mocks.NewMockService(ctrl)
		db.EXPECT().GetDatabaseName().Return("shop")
		db.EXPECT().ExecuteReadQuery(gomock.Any(), stmt.SQL, []any{"shop"}).Return([]database.Row{
			database.NewRow([]string{"Name", "Type"}, []any{"orders", "BASE TABLE"}),
			database.NewRow([]string{"Name", "Type"}, []any{"big_orders", "VIEW"}),
		}, nil)

		text, err := run(t, ShowTablesHandler(), db)
		require.NoError(t, err)
		assert.Contains(t, text, "Tables and views in database `shop`:")
		assert.Contains(t, text, "Tables (2 rows)")
	})

	t.Run("empty database is informational", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db := database_mocks.NewMockService(ctrl)
		db.EXPECT().GetDatabaseName().Return("empty")
		db.EXPECT().ExecuteReadQuery(gomock.Any(), gomock.Any(), gomock.Any()).Return([]database.Row{}, nil)

		text, err := run(t, ShowTablesHandler(), db)
		require.NoError(t, err)
		assert.Equal(t, "No tables found in database 'empty'", text)
	})
}

func TestShowDatabases(t *testing.T) {
	stmt := databasesStatement()
	assert.Equal(t,
		"SELECT SCHEMA_NAME AS `Name`, DEFAULT_CHARACTER_SET_NAME AS `DefaultCharset`, "+
			"DEFAULT_COLLATION_NAME AS `DefaultCollation` FROM information_schema.SCHEMATA ORDER BY SCHEMA_NAME",
		stmt.SQL)

	t.Run("lists databases", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db := database_mocks.NewMockService(ctrl)
		db.EXPECT().ExecuteReadQuery(gomock.Any(), stmt.SQL, gomock.Len(0)).Return([]database.Row{
			database.NewRow([]string{"Name"}, []any{"information_schema"}),
			database.NewRow([]string{"Name"}, []any{"shop"}),
		}, nil)

		text, err := run(t, ShowDatabasesHandler(), db)
		require.NoError(t, err)
		assert.Contains(t, text, "Available databases:")
		assert.Contains(t, text, `"Name": "shop"`)
	})

	t.Run("empty is informational", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db := database_mocks.NewMockService(ctrl)
		db.EXPECT().ExecuteReadQuery(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		text, err := run(t, ShowDatabasesHandler(), db)
		require.NoError(t, err)
		assert.Equal(t, "No databases found", text)
	})
}
