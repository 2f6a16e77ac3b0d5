package refdata

// UnknownLabel is returned for any code missing from the tables below.
// Dangling codes are data quality noise in the FAA release, not errors.
const UnknownLabel = "Unknown"

// AircraftTypes maps the FAA TYPE AIRCRAFT code to its label.
var AircraftTypes = map[string]string{
	"1": "Glider",
	"2": "Balloon",
	"3": "Blimp/Dirigible",
	"4": "Fixed wing single engine",
	"5": "Fixed wing multi engine",
	"6": "Rotorcraft",
	"7": "Weight-shift-control",
	"8": "Powered Parachute",
	"9": "Gyroplane",
}

// EngineTypes maps the FAA TYPE ENGINE code to its label.
var EngineTypes = map[string]string{
	"0":  "None",
	"1":  "Reciprocating",
	"2":  "Turbo-prop",
	"3":  "Turbo-shaft",
	"4":  "Turbo-jet",
	"5":  "Turbo-fan",
	"6":  "Ramjet",
	"7":  "2 Cycle",
	"8":  "4 Cycle",
	"9":  "Unknown",
	"10": "Electric",
	"11": "Rotary",
}

// WeightClasses maps the FAA AC-WEIGHT class to its takeoff weight range.
var WeightClasses = map[string]string{
	"CLASS 1": "Up to 12,499 lbs",
	"CLASS 2": "12,500 - 19,999 lbs",
	"CLASS 3": "20,000 lbs and over",
	"CLASS 4": "UAV up to 55 lbs",
}

// RegistrantTypes maps the FAA TYPE REGISTRANT code to its label.
// Code 6 is unassigned in the FAA release.
var RegistrantTypes = map[string]string{
	"1": "Individual",
	"2": "Partnership",
	"3": "Corporation",
	"4": "Co-Owned",
	"5": "Government",
	"7": "LLC",
	"8": "Non-Citizen Corporation",
	"9": "Non-Citizen Co-Owned",
}

// AircraftTypeLabel resolves a TYPE AIRCRAFT code, falling back to Unknown.
func AircraftTypeLabel(code string) string {
	return labelOr(AircraftTypes, code)
}

// EngineTypeLabel resolves a TYPE ENGINE code, falling back to Unknown.
func EngineTypeLabel(code string) string {
	return labelOr(EngineTypes, code)
}

// WeightClassLabel resolves an AC-WEIGHT class, falling back to Unknown.
func WeightClassLabel(code string) string {
	return labelOr(WeightClasses, code)
}

// RegistrantTypeLabel resolves a TYPE REGISTRANT code, falling back to Unknown.
func RegistrantTypeLabel(code string) string {
	return labelOr(RegistrantTypes, code)
}

func labelOr(table map[string]string, code string) string {
	if label, ok := table[code]; ok {
		return label
	}
	return UnknownLabel
}

// ReferenceCodes bundles every static code table for serialization, so
// clients can resolve labels without further round trips.
func ReferenceCodes() map[string]map[string]string {
	return map[string]map[string]string{
		"aircraft_types":   AircraftTypes,
		"engine_types":     EngineTypes,
		"weight_classes":   WeightClasses,
		"registrant_types": RegistrantTypes,
	}
}
