package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/skyfly/aircraftdb/errors"
	"github.com/skyfly/aircraftdb/ingest"
	"github.com/skyfly/aircraftdb/refdata"
	"github.com/skyfly/aircraftdb/store"
)

// toolError renders a failure for the tool caller. Validation messages are
// caller-actionable and pass through; anything else has already been
// sanitized at the store or gateway boundary.
func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}

func (s *MCPServer) handleIngest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	shape := refdata.Shape(request.GetString("shape", ""))
	dryRun := request.GetBool("dry_run", false)

	processor := ingest.NewProcessor(s.store, s.logger, ingest.Options{
		DryRun:            dryRun,
		WarnRatePerSecond: s.cfg.Ingest.WarnRatePerSecond,
		RowLogInterval:    s.cfg.Ingest.RowLogInterval,
	})
	result, err := processor.ProcessPath(ctx, path, shape)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(SuccessEnvelope("ingest", len(result.Files), result).JSON()), nil
}

func (s *MCPServer) handleStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(SuccessEnvelope("stats", len(stats.Tables), stats).JSON()), nil
}

func (s *MCPServer) handleLookupModeS(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	modeS, err := request.RequireString("mode_s")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	row, err := s.store.GetAircraftByModeS(ctx, modeS)
	return s.lookupResult("mode_s_lookup", row, err), nil
}

func (s *MCPServer) handleLookupTail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	nNumber, err := request.RequireString("n_number")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	row, err := s.store.GetAircraftByTail(ctx, nNumber)
	return s.lookupResult("registration_lookup", row, err), nil
}

// lookupResult maps a fixed-lookup outcome to a tool result. A miss is an
// explicit not-found envelope, not a protocol error.
func (s *MCPServer) lookupResult(source string, row map[string]interface{}, err error) *mcp.CallToolResult {
	switch {
	case err == nil:
		return mcp.NewToolResultText(SuccessEnvelope(source, 1, []interface{}{row}).JSON())
	case errors.IsNotFoundError(err):
		return mcp.NewToolResultText(NotFoundEnvelope(err.Error()).JSON())
	default:
		return toolError(err)
	}
}

func (s *MCPServer) handleSearchAircraft(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := store.AircraftFilter{
		Manufacturer: request.GetString("manufacturer", ""),
		Model:        request.GetString("model", ""),
		State:        request.GetString("state", ""),
		City:         request.GetString("city", ""),
		YearMin:      request.GetInt("year_min", 0),
		YearMax:      request.GetInt("year_max", 0),
		Limit:        request.GetInt("limit", 0),
	}
	rows, err := s.store.SearchAircraft(ctx, filter)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(SuccessEnvelope("aircraft_search", len(rows), rows).JSON()), nil
}

func (s *MCPServer) handleSearchModels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := store.ModelFilter{
		Manufacturer: request.GetString("manufacturer", ""),
		Model:        request.GetString("model", ""),
		TypeAircraft: request.GetString("type_aircraft", ""),
		Limit:        request.GetInt("limit", 0),
	}
	rows, err := s.store.SearchModels(ctx, filter)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(SuccessEnvelope("model_search", len(rows), rows).JSON()), nil
}

func (s *MCPServer) handleModelInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	row, err := s.store.GetModelInfo(ctx, code)
	return s.lookupResult("model_info", row, err), nil
}

func (s *MCPServer) handleEngineInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	row, err := s.store.GetEngineInfo(ctx, code)
	return s.lookupResult("engine_info", row, err), nil
}

func (s *MCPServer) handleSQLQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sql, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := s.gateway.Run(ctx, sql)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(SuccessEnvelope("sql_query", result.RowCount, result).JSON()), nil
}

func (s *MCPServer) handleEnrich(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	codes := request.GetStringSlice("icao24", nil)
	if len(codes) == 0 {
		return mcp.NewToolResultError("icao24 list is required"), nil
	}
	found, notFound, err := s.store.EnrichModeSBatch(ctx, codes)
	if err != nil {
		return toolError(err), nil
	}
	payload := map[string]interface{}{
		"found":     found,
		"not_found": notFound,
	}
	return mcp.NewToolResultText(SuccessEnvelope("enrich", len(found), payload).JSON()), nil
}

func (s *MCPServer) handleReferenceCodes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	codes := refdata.ReferenceCodes()
	return mcp.NewToolResultText(SuccessEnvelope("reference_codes", len(codes), codes).JSON()), nil
}
