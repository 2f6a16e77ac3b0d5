package store

import (
	"context"
	"strings"

	"github.com/skyfly/aircraftdb/refdata"
)

// Search limits. Callers get DefaultSearchLimit rows unless they ask for
// more; MaxSearchLimit bounds what they can ask for.
const (
	DefaultSearchLimit = 50
	MaxSearchLimit     = 500
)

// AircraftFilter selects registry entries. String fields are substring
// matches (case-insensitive); zero values mean "no constraint".
type AircraftFilter struct {
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
	State        string `json:"state,omitempty"`
	City         string `json:"city,omitempty"`
	YearMin      int    `json:"year_min,omitempty"`
	YearMax      int    `json:"year_max,omitempty"`
	Limit        int    `json:"limit,omitempty"`
}

// ModelFilter selects aircraft model reference records.
type ModelFilter struct {
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
	TypeAircraft string `json:"type_aircraft,omitempty"`
	Limit        int    `json:"limit,omitempty"`
}

// queryBuilder accumulates WHERE clauses and their bound parameters.
// Caller input only ever lands in args, never in the clause text.
type queryBuilder struct {
	whereClauses []string
	args         []interface{}
}

func (qb *queryBuilder) addClause(clause string, args ...interface{}) {
	qb.whereClauses = append(qb.whereClauses, clause)
	qb.args = append(qb.args, args...)
}

// addSubstring adds a case-insensitive LIKE clause for a substring match.
func (qb *queryBuilder) addSubstring(column, value string) {
	if value == "" {
		return
	}
	qb.addClause(column+" LIKE ? ESCAPE '\\' COLLATE NOCASE", "%"+escapeLikePattern(value)+"%")
}

func (qb *queryBuilder) build() string {
	if len(qb.whereClauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(qb.whereClauses, " AND ")
}

// escapeLikePattern escapes LIKE wildcards so caller input matches literally.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultSearchLimit
	case limit > MaxSearchLimit:
		return MaxSearchLimit
	default:
		return limit
	}
}

// SearchAircraft finds registry entries matching the filter, joined with
// model detail so manufacturer and model match against the reference table
// rather than the registry's free-text copy.
func (s *SQLStore) SearchAircraft(ctx context.Context, filter AircraftFilter) ([]map[string]interface{}, error) {
	qb := &queryBuilder{}
	qb.addSubstring("m.manufacturer", filter.Manufacturer)
	qb.addSubstring("m.model", filter.Model)
	qb.addSubstring("r.city", filter.City)
	if filter.State != "" {
		qb.addClause("r.state = ?", strings.ToUpper(strings.TrimSpace(filter.State)))
	}
	if filter.YearMin > 0 {
		qb.addClause("r.year_mfr >= ?", filter.YearMin)
	}
	if filter.YearMax > 0 {
		qb.addClause("r.year_mfr <= ?", filter.YearMax)
	}

	query := `
		SELECT r.n_number, r.serial_number, r.mfr_mdl_code, r.year_mfr,
		       r.registrant_name, r.city, r.state, r.mode_s_code_hex,
		       r.type_aircraft, r.status_code,
		       m.manufacturer AS model_manufacturer,
		       m.model AS model_name
		FROM aircraft_registry r
		LEFT JOIN aircraft_models m ON r.mfr_mdl_code = m.code` +
		qb.build() + `
		ORDER BY r.n_number
		LIMIT ?`
	qb.args = append(qb.args, clampLimit(filter.Limit))

	rows, err := s.queryAll(ctx, query, qb.args...)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		row["type_aircraft_label"] = refdata.AircraftTypeLabel(stringAt(row, "type_aircraft"))
	}
	return rows, nil
}

// SearchModels finds aircraft model reference records matching the filter.
func (s *SQLStore) SearchModels(ctx context.Context, filter ModelFilter) ([]map[string]interface{}, error) {
	qb := &queryBuilder{}
	qb.addSubstring("manufacturer", filter.Manufacturer)
	qb.addSubstring("model", filter.Model)
	if filter.TypeAircraft != "" {
		qb.addClause("type_aircraft = ?", strings.TrimSpace(filter.TypeAircraft))
	}

	query := `SELECT * FROM aircraft_models` + qb.build() + `
		ORDER BY manufacturer, model
		LIMIT ?`
	qb.args = append(qb.args, clampLimit(filter.Limit))

	rows, err := s.queryAll(ctx, query, qb.args...)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		enrichModelLabels(row, "")
	}
	return rows, nil
}

func (s *SQLStore) queryAll(ctx context.Context, query string, args ...interface{}) ([]map[string]interface{}, error) {
	handle, err := s.mgr.Handle(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := handle.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.execError(err, "search query failed")
	}
	defer rows.Close()

	_, results, err := ScanRowMaps(rows, 0)
	if err != nil {
		return nil, s.execError(err, "search scan failed")
	}
	return results, nil
}
