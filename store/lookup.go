package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/skyfly/aircraftdb/errors"
	"github.com/skyfly/aircraftdb/refdata"
)

// registryDetailQuery joins a registry row with its model and engine
// reference records. The joins are LEFT because ingestion order is not
// guaranteed: a registry entry may point at a model or engine that has not
// been ingested (or never will be); those resolve to NULL columns and
// "Unknown" labels, not errors.
const registryDetailQuery = `
	SELECT r.*,
	       m.manufacturer AS model_manufacturer,
	       m.model        AS model_name,
	       m.aircraft_category AS model_aircraft_category,
	       m.num_engines  AS model_num_engines,
	       m.num_seats    AS model_num_seats,
	       m.weight_class AS model_weight_class,
	       m.speed        AS model_speed,
	       e.manufacturer AS engine_manufacturer,
	       e.model        AS engine_model,
	       e.type_engine  AS engine_type,
	       e.horsepower   AS engine_horsepower,
	       e.thrust       AS engine_thrust
	FROM aircraft_registry r
	LEFT JOIN aircraft_models m ON r.mfr_mdl_code = m.code
	LEFT JOIN engines e ON r.eng_mfr_mdl = e.code
	WHERE `

// GetAircraftByModeS looks up one registry entry by its Mode-S transponder
// address, joined with model and engine detail. The address is normalized
// before the query; a malformed one is a validation error, an unknown one
// is ErrNotFound.
func (s *SQLStore) GetAircraftByModeS(ctx context.Context, modeS string) (map[string]interface{}, error) {
	hex, ok := refdata.NormalizeModeS(modeS)
	if !ok {
		return nil, errors.Validationf("mode-s code must be 6 hex digits, got %q", modeS)
	}
	row, err := s.queryOneDetail(ctx, registryDetailQuery+"r.mode_s_code_hex = ?", hex)
	if errors.IsNotFoundError(err) {
		return nil, errors.NewNotFoundError("no aircraft with mode-s code %s", hex)
	}
	return row, err
}

// GetAircraftByTail looks up one registry entry by tail number, joined with
// model and engine detail. The implicit N prefix is restored first.
func (s *SQLStore) GetAircraftByTail(ctx context.Context, nNumber string) (map[string]interface{}, error) {
	tail := refdata.CanonicalTail(nNumber)
	if tail == "" {
		return nil, errors.Validationf("tail number is empty")
	}
	row, err := s.queryOneDetail(ctx, registryDetailQuery+"r.n_number = ?", tail)
	if errors.IsNotFoundError(err) {
		return nil, errors.NewNotFoundError("no aircraft with registration %s", tail)
	}
	return row, err
}

// GetModelInfo returns one aircraft model reference record with its
// human-readable labels.
func (s *SQLStore) GetModelInfo(ctx context.Context, code string) (map[string]interface{}, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, errors.Validationf("model code is empty")
	}
	row, err := s.queryOne(ctx, `SELECT * FROM aircraft_models WHERE code = ?`, code)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("no aircraft model with code %s", code)
		}
		return nil, err
	}
	enrichModelLabels(row, "")
	return row, nil
}

// GetEngineInfo returns one engine reference record with its labels.
func (s *SQLStore) GetEngineInfo(ctx context.Context, code string) (map[string]interface{}, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, errors.Validationf("engine code is empty")
	}
	row, err := s.queryOne(ctx, `SELECT * FROM engines WHERE code = ?`, code)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("no engine with code %s", code)
		}
		return nil, err
	}
	row["type_engine_label"] = refdata.EngineTypeLabel(stringAt(row, "type_engine"))
	return row, nil
}

// EnrichBatchLimit caps how many Mode-S addresses one enrichment call may
// carry; the live-telemetry collaborator batches beyond that.
const EnrichBatchLimit = 50

// EnrichModeSBatch resolves a batch of Mode-S addresses into joined detail
// rows. Malformed addresses and unknown ones come back in notFound; the
// call never fails on an individual address.
func (s *SQLStore) EnrichModeSBatch(ctx context.Context, codes []string) (found []map[string]interface{}, notFound []string, err error) {
	if len(codes) == 0 {
		return nil, nil, nil
	}
	if len(codes) > EnrichBatchLimit {
		return nil, nil, errors.Validationf("at most %d mode-s codes per batch, got %d", EnrichBatchLimit, len(codes))
	}
	for _, raw := range codes {
		hex, ok := refdata.NormalizeModeS(raw)
		if !ok {
			notFound = append(notFound, strings.TrimSpace(raw))
			continue
		}
		row, lookupErr := s.GetAircraftByModeS(ctx, hex)
		switch {
		case lookupErr == nil:
			found = append(found, row)
		case errors.IsNotFoundError(lookupErr):
			notFound = append(notFound, hex)
		default:
			return nil, nil, lookupErr
		}
	}
	return found, notFound, nil
}

// queryOneDetail runs a single-row registry detail query and enriches the
// result with code labels.
func (s *SQLStore) queryOneDetail(ctx context.Context, query string, args ...interface{}) (map[string]interface{}, error) {
	row, err := s.queryOne(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	enrichRegistryLabels(row)
	return row, nil
}

func (s *SQLStore) queryOne(ctx context.Context, query string, args ...interface{}) (map[string]interface{}, error) {
	handle, err := s.mgr.Handle(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := handle.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.execError(err, "lookup query failed")
	}
	defer rows.Close()

	_, results, err := ScanRowMaps(rows, 1)
	if err != nil {
		return nil, s.execError(err, "lookup scan failed")
	}
	if len(results) == 0 {
		return nil, errors.ErrNotFound
	}
	return results[0], nil
}

// execError logs the full driver error internally and returns a sanitized
// execution error; schema and driver detail never reach callers.
func (s *SQLStore) execError(err error, msg string) error {
	if err == sql.ErrNoRows {
		return errors.ErrNotFound
	}
	if s.logger != nil {
		s.logger.Errorw("Store query failed", "error", err)
	}
	return errors.Executionf("%s", msg)
}

// enrichRegistryLabels attaches human-readable labels for a joined registry
// detail row. Unknown or missing codes label as "Unknown"; dangling model
// and engine references are expected and harmless.
func enrichRegistryLabels(row map[string]interface{}) {
	row["type_aircraft_label"] = refdata.AircraftTypeLabel(stringAt(row, "type_aircraft"))
	row["type_engine_label"] = refdata.EngineTypeLabel(stringAt(row, "type_engine"))
	row["registrant_type_label"] = refdata.RegistrantTypeLabel(stringAt(row, "registrant_type"))
	enrichModelLabels(row, "model_")
}

// enrichModelLabels attaches labels for a model record's categorical codes.
// prefix selects the aliased join columns ("model_") or the bare ones.
func enrichModelLabels(row map[string]interface{}, prefix string) {
	if prefix == "" {
		row["type_aircraft_label"] = refdata.AircraftTypeLabel(stringAt(row, "type_aircraft"))
		row["type_engine_label"] = refdata.EngineTypeLabel(stringAt(row, "type_engine"))
		row["weight_class_label"] = refdata.WeightClassLabel(stringAt(row, "weight_class"))
		return
	}
	row[prefix+"weight_class_label"] = refdata.WeightClassLabel(stringAt(row, prefix+"weight_class"))
}
