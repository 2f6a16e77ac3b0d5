// Package server exposes the reference store over the Model Context
// Protocol: a stdio tool server whose named tools cover ingestion, fixed
// lookups, searches, statistics, and the validated ad-hoc query surface.
// The transport never touches the database directly; every tool goes
// through the store, the processor, or the query gateway.
package server

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/skyfly/aircraftdb/config"
	"github.com/skyfly/aircraftdb/db"
	"github.com/skyfly/aircraftdb/query"
	"github.com/skyfly/aircraftdb/store"
	"github.com/skyfly/aircraftdb/version"
)

// MCPServer wires the reference store into an MCP stdio tool server.
type MCPServer struct {
	cfg     *config.Config
	mgr     *db.Manager
	store   *store.SQLStore
	gateway *query.Gateway
	logger  *zap.SugaredLogger
	server  *server.MCPServer
}

// New builds the tool server over an injected connection manager. The
// manager is owned by the composition root; the server never opens its own.
func New(cfg *config.Config, mgr *db.Manager, logger *zap.SugaredLogger) *MCPServer {
	s := &MCPServer{
		cfg:     cfg,
		mgr:     mgr,
		store:   store.NewSQLStore(mgr, logger),
		gateway: query.NewGateway(mgr, logger, cfg.Query.RowCap),
		logger:  logger,
	}

	s.server = server.NewMCPServer(
		cfg.Server.Name,
		version.Version,
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// Serve runs the stdio transport until the client disconnects.
func (s *MCPServer) Serve() error {
	s.logger.Infow("MCP server starting",
		"name", s.cfg.Server.Name,
		"database", s.mgr.Path(),
	)
	return server.ServeStdio(s.server)
}

// Store exposes the typed store for the ingest watcher.
func (s *MCPServer) Store() *store.SQLStore { return s.store }

func (s *MCPServer) registerTools() {
	ingestTool := mcp.NewTool("db_ingest_faa_data",
		mcp.WithDescription("Ingest FAA aircraft registration files (ACFTREF, ENGINE, MASTER, DEALER, DEREG) or generic CSV/XLSX/JSON from a file or directory"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File or directory to ingest"),
		),
		mcp.WithString("shape",
			mcp.Description("Override shape detection: aircraft_models, engines, aircraft_registry, dealers, aircraft_deregistered, custom_records"),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Parse and validate without writing (default: false)"),
		),
	)
	s.server.AddTool(ingestTool, s.handleIngest)

	statsTool := mcp.NewTool("db_get_stats",
		mcp.WithDescription("Get row counts per reference table and distinct manufacturer count"),
	)
	s.server.AddTool(statsTool, s.handleStats)

	modeSTool := mcp.NewTool("db_lookup_by_mode_s",
		mcp.WithDescription("Look up one aircraft by its Mode-S transponder address (6 hex digits), with model and engine detail"),
		mcp.WithString("mode_s",
			mcp.Required(),
			mcp.Description("Mode-S code, e.g. A12BC3"),
		),
	)
	s.server.AddTool(modeSTool, s.handleLookupModeS)

	tailTool := mcp.NewTool("db_lookup_by_registration",
		mcp.WithDescription("Look up one aircraft by its registration (tail) number, with model and engine detail"),
		mcp.WithString("n_number",
			mcp.Required(),
			mcp.Description("Registration number, e.g. N12345 (N prefix optional)"),
		),
	)
	s.server.AddTool(tailTool, s.handleLookupTail)

	searchAircraftTool := mcp.NewTool("db_search_aircraft",
		mcp.WithDescription("Search registered aircraft by manufacturer, model, state, city, and year range"),
		mcp.WithString("manufacturer", mcp.Description("Manufacturer substring")),
		mcp.WithString("model", mcp.Description("Model substring")),
		mcp.WithString("state", mcp.Description("Two-letter state code")),
		mcp.WithString("city", mcp.Description("City substring")),
		mcp.WithNumber("year_min", mcp.Description("Earliest year of manufacture")),
		mcp.WithNumber("year_max", mcp.Description("Latest year of manufacture")),
		mcp.WithNumber("limit", mcp.Description("Max results (default 50, cap 500)")),
	)
	s.server.AddTool(searchAircraftTool, s.handleSearchAircraft)

	searchModelsTool := mcp.NewTool("db_search_models",
		mcp.WithDescription("Search aircraft model reference records by manufacturer, model, and aircraft type code"),
		mcp.WithString("manufacturer", mcp.Description("Manufacturer substring")),
		mcp.WithString("model", mcp.Description("Model substring")),
		mcp.WithString("type_aircraft", mcp.Description("FAA TYPE AIRCRAFT code, e.g. 4")),
		mcp.WithNumber("limit", mcp.Description("Max results (default 50, cap 500)")),
	)
	s.server.AddTool(searchModelsTool, s.handleSearchModels)

	modelInfoTool := mcp.NewTool("db_get_model_info",
		mcp.WithDescription("Get one aircraft model reference record by its MFR MDL code"),
		mcp.WithString("code", mcp.Required(), mcp.Description("Seven-character model code")),
	)
	s.server.AddTool(modelInfoTool, s.handleModelInfo)

	engineInfoTool := mcp.NewTool("db_get_engine_info",
		mcp.WithDescription("Get one engine reference record by its engine code"),
		mcp.WithString("code", mcp.Required(), mcp.Description("Five-character engine code")),
	)
	s.server.AddTool(engineInfoTool, s.handleEngineInfo)

	sqlTool := mcp.NewTool("db_sql_query",
		mcp.WithDescription("Run a read-only SQL query against the reference tables. Single SELECT statements only; results are capped when no LIMIT is given"),
		mcp.WithString("query", mcp.Required(), mcp.Description("SELECT statement")),
	)
	s.server.AddTool(sqlTool, s.handleSQLQuery)

	enrichTool := mcp.NewTool("db_enrich_aircraft",
		mcp.WithDescription("Resolve a batch of Mode-S addresses (e.g. live icao24 identifiers) into registry records with model and engine detail"),
		mcp.WithArray("icao24",
			mcp.Required(),
			mcp.Description("Mode-S hex addresses, at most 50"),
			mcp.Items(map[string]interface{}{"type": "string"}),
		),
	)
	s.server.AddTool(enrichTool, s.handleEnrich)

	codesTool := mcp.NewTool("db_get_reference_codes",
		mcp.WithDescription("List the static FAA code tables: aircraft types, engine types, weight classes, registrant types"),
	)
	s.server.AddTool(codesTool, s.handleReferenceCodes)
}
