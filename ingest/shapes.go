package ingest

import (
	"strings"

	"github.com/skyfly/aircraftdb/errors"
	"github.com/skyfly/aircraftdb/refdata"
)

// Column maps from normalized FAA release headers to canonical record
// fields. Headers missing from a map are dropped for known shapes; the
// release carries columns (TC data sheets, fractional ownership flags)
// that the reference store does not track.

var modelColumns = map[string]string{
	"code":           "code",
	"mfr":            "manufacturer",
	"model":          "model",
	"type_acft":      "type_aircraft",
	"type_eng":       "type_engine",
	"ac_cat":         "aircraft_category",
	"build_cert_ind": "builder_cert_ind",
	"no_eng":         "num_engines",
	"no_seats":       "num_seats",
	"ac_weight":      "weight_class",
	"speed":          "speed",
}

var engineColumns = map[string]string{
	"code":       "code",
	"mfr":        "manufacturer",
	"model":      "model",
	"type":       "type_engine",
	"horsepower": "horsepower",
	"thrust":     "thrust",
}

var registryColumns = map[string]string{
	"n_number":         "n_number",
	"serial_number":    "serial_number",
	"mfr_mdl_code":     "mfr_mdl_code",
	"eng_mfr_mdl":      "eng_mfr_mdl",
	"year_mfr":         "year_mfr",
	"type_registrant":  "registrant_type",
	"name":             "registrant_name",
	"street":           "street",
	"city":             "city",
	"state":            "state",
	"zip_code":         "zip_code",
	"country":          "country",
	"last_action_date": "last_action_date",
	"cert_issue_date":  "cert_issue_date",
	"certification":    "airworthiness_class",
	"type_aircraft":    "type_aircraft",
	"type_engine":      "type_engine",
	"status_code":      "status_code",
	"mode_s_code_hex":  "mode_s_code_hex",
	"air_worth_date":   "air_worth_date",
	"expiration_date":  "expiration_date",
	"kit_mfr":          "kit_mfr",
	"kit_model":        "kit_model",
}

var dealerColumns = map[string]string{
	"certificate_number": "certificate_number",
	"ownership":          "ownership",
	"certificate_date":   "certificate_date",
	"expiration_date":    "expiration_date",
	"name":               "name",
	"street":             "street",
	"city":               "city",
	"state_abbrev":       "state",
	"zip_code":           "zip_code",
}

var deregisteredColumns = map[string]string{
	"n_number":        "n_number",
	"serial_number":   "serial_number",
	"mfr_mdl_code":    "mfr_mdl_code",
	"status_code":     "status_code",
	"cancel_date":     "cancel_date",
	"mode_s_code_hex": "mode_s_code_hex",
	"name":            "registrant_name",
}

// mapColumns projects a raw row through a shape's column map, trimming
// values. Unmapped columns are dropped.
func mapColumns(row Row, columns map[string]string) Row {
	mapped := make(Row, len(columns))
	for header, value := range row {
		field, ok := columns[header]
		if !ok {
			continue
		}
		mapped[field] = strings.TrimSpace(value)
	}
	return mapped
}

// BindAircraftModel builds the typed record for one ACFTREF row.
// A missing code is a row error; everything else degrades gracefully.
func BindAircraftModel(row Row) (*refdata.AircraftModel, error) {
	m := mapColumns(row, modelColumns)

	code := strings.ToUpper(m["code"])
	if code == "" {
		return nil, errors.Validationf("aircraft model row has no code")
	}

	rec := &refdata.AircraftModel{
		Code:             code,
		Manufacturer:     m["manufacturer"],
		Model:            m["model"],
		TypeAircraft:     m["type_aircraft"],
		TypeEngine:       m["type_engine"],
		AircraftCategory: m["aircraft_category"],
		BuilderCertInd:   m["builder_cert_ind"],
		WeightClass:      m["weight_class"],
		Speed:            m["speed"],
	}
	if n, ok := CoerceInt(m["num_engines"]); ok {
		rec.NumEngines = n
	}
	if n, ok := CoerceInt(m["num_seats"]); ok {
		rec.NumSeats = n
	}
	return rec, nil
}

// BindEngine builds the typed record for one ENGINE row.
func BindEngine(row Row) (*refdata.Engine, error) {
	m := mapColumns(row, engineColumns)

	code := strings.ToUpper(m["code"])
	if code == "" {
		return nil, errors.Validationf("engine row has no code")
	}

	rec := &refdata.Engine{
		Code:         code,
		Manufacturer: m["manufacturer"],
		Model:        m["model"],
		TypeEngine:   m["type_engine"],
	}
	if n, ok := CoerceInt(m["horsepower"]); ok {
		rec.Horsepower = n
	}
	if n, ok := CoerceInt(m["thrust"]); ok {
		rec.Thrust = n
	}
	return rec, nil
}

// BindRegistryEntry builds the typed record for one MASTER row. A missing
// N-number is a row error. A malformed Mode-S address is dropped from the
// record and reported in the returned warnings; the row itself survives.
func BindRegistryEntry(row Row) (*refdata.RegistryEntry, []string, error) {
	m := mapColumns(row, registryColumns)

	tail := CanonicalTail(m["n_number"])
	if tail == "" {
		return nil, nil, errors.Validationf("registry row has no N-number")
	}

	rec := &refdata.RegistryEntry{
		NNumber:            tail,
		SerialNumber:       m["serial_number"],
		MfrMdlCode:         strings.ToUpper(m["mfr_mdl_code"]),
		EngMfrMdl:          strings.ToUpper(m["eng_mfr_mdl"]),
		RegistrantType:     m["registrant_type"],
		RegistrantName:     m["registrant_name"],
		Street:             m["street"],
		City:               m["city"],
		State:              strings.ToUpper(m["state"]),
		ZipCode:            m["zip_code"],
		Country:            m["country"],
		AirworthinessClass: m["airworthiness_class"],
		TypeAircraft:       m["type_aircraft"],
		TypeEngine:         m["type_engine"],
		StatusCode:         m["status_code"],
		KitMfr:             m["kit_mfr"],
		KitModel:           m["kit_model"],
	}

	if n, ok := CoerceInt(m["year_mfr"]); ok {
		rec.YearMfr = n
	}
	if d, ok := CoerceDate(m["last_action_date"]); ok {
		rec.LastActionDate = d
	}
	if d, ok := CoerceDate(m["cert_issue_date"]); ok {
		rec.CertIssueDate = d
	}
	if d, ok := CoerceDate(m["air_worth_date"]); ok {
		rec.AirWorthDate = d
	}
	if d, ok := CoerceDate(m["expiration_date"]); ok {
		rec.ExpirationDate = d
	}

	var warnings []string
	if raw := m["mode_s_code_hex"]; raw != "" {
		if hex, ok := CoerceModeSHex(raw); ok {
			rec.ModeSHex = hex
		} else {
			warnings = append(warnings, "dropped malformed Mode-S hex "+raw+" for "+tail)
		}
	}

	return rec, warnings, nil
}

// BindDealer builds the typed record for one DEALER row.
func BindDealer(row Row) (*refdata.Dealer, error) {
	m := mapColumns(row, dealerColumns)

	cert := strings.ToUpper(m["certificate_number"])
	if cert == "" {
		return nil, errors.Validationf("dealer row has no certificate number")
	}

	rec := &refdata.Dealer{
		CertificateNumber: cert,
		Ownership:         m["ownership"],
		Name:              m["name"],
		Street:            m["street"],
		City:              m["city"],
		State:             strings.ToUpper(m["state"]),
		ZipCode:           m["zip_code"],
	}
	if d, ok := CoerceDate(m["certificate_date"]); ok {
		rec.CertificateDate = d
	}
	if d, ok := CoerceDate(m["expiration_date"]); ok {
		rec.ExpirationDate = d
	}
	return rec, nil
}

// BindDeregistered builds the typed record for one DEREG row. The key is
// composite: both the N-number and the cancellation date must be present.
func BindDeregistered(row Row) (*refdata.DeregisteredEntry, []string, error) {
	m := mapColumns(row, deregisteredColumns)

	tail := CanonicalTail(m["n_number"])
	if tail == "" {
		return nil, nil, errors.Validationf("deregistered row has no N-number")
	}
	cancel, ok := CoerceDate(m["cancel_date"])
	if !ok {
		return nil, nil, errors.Validationf("deregistered row for %s has no usable cancel date", tail)
	}

	rec := &refdata.DeregisteredEntry{
		NNumber:        tail,
		CancelDate:     cancel,
		SerialNumber:   m["serial_number"],
		MfrMdlCode:     strings.ToUpper(m["mfr_mdl_code"]),
		StatusCode:     m["status_code"],
		RegistrantName: m["registrant_name"],
	}

	var warnings []string
	if raw := m["mode_s_code_hex"]; raw != "" {
		if hex, ok := CoerceModeSHex(raw); ok {
			rec.ModeSHex = hex
		} else {
			warnings = append(warnings, "dropped malformed Mode-S hex "+raw+" for "+tail)
		}
	}

	return rec, warnings, nil
}

// CustomRow prepares a row of unrecognized shape for staging: values are
// trimmed and empty ones dropped, so re-exports of the same data hash the
// same way regardless of padding.
func CustomRow(row Row) Row {
	cleaned := make(Row, len(row))
	for field, value := range row {
		value = strings.TrimSpace(value)
		if field == "" || value == "" {
			continue
		}
		cleaned[field] = value
	}
	return cleaned
}
