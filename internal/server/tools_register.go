package server

import (
	"log/slog"

	"github.com/mkd-neo4j/mysql-control-bridge/internal/catalog"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/tools"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/tools/listing"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/tools/query"
	"github.com/mkd-neo4j/mysql-control-bridge/internal/tools/schema"
)

// registerTools binds the embedded catalog to its handlers and adds the
// resulting tools to the MCP server. A catalog entry without a handler, or
// a handler without an entry, fails startup.
func (s *MySQLMCPServer) registerTools() error {
	c, err := catalog.Default()
	if err != nil {
		return err
	}
	return s.registerCatalog(c)
}

func (s *MySQLMCPServer) registerCatalog(c *catalog.Catalog) error {
	deps := &tools.ToolDependencies{
		DBService:        s.dbService,
		AnalyticsService: s.anService,
	}

	dispatcher, err := tools.NewDispatcher(c, toolHandlers(), deps)
	if err != nil {
		return err
	}

	s.dispatcher = dispatcher
	s.MCPServer.AddTools(dispatcher.ServerTools()...)
	slog.Info("registered tools", "count", c.Len())
	return nil
}

// toolHandlers returns every handler keyed by catalog name.
func toolHandlers() map[string]tools.Handler {
	return map[string]tools.Handler{
		query.ExecuteSelectToolName:       query.ExecuteSelectHandler(),
		query.ExplainToolName:             query.ExplainHandler(),
		schema.DescribeTableToolName:      schema.DescribeTableHandler(),
		schema.DescribeViewToolName:       schema.DescribeViewHandler(),
		schema.DescribeIndexesToolName:    schema.DescribeIndexesHandler(),
		schema.DescribeTriggersToolName:   schema.DescribeTriggersHandler(),
		schema.DescribeProceduresToolName: schema.DescribeProceduresHandler(),
		listing.ShowTablesToolName:        listing.ShowTablesHandler(),
		listing.ShowDatabasesToolName:     listing.ShowDatabasesHandler(),
	}
}
