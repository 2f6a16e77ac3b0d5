package refdata

import (
	"encoding/json"
	"testing"
)

func TestLabelLookups(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		code string
		want string
	}{
		{"fixed wing single engine", AircraftTypeLabel, "4", "Fixed wing single engine"},
		{"rotorcraft", AircraftTypeLabel, "6", "Rotorcraft"},
		{"turbo-fan", EngineTypeLabel, "5", "Turbo-fan"},
		{"electric engine", EngineTypeLabel, "10", "Electric"},
		{"weight class 1", WeightClassLabel, "CLASS 1", "Up to 12,499 lbs"},
		{"individual registrant", RegistrantTypeLabel, "1", "Individual"},
		{"llc registrant", RegistrantTypeLabel, "7", "LLC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.code); got != tt.want {
				t.Errorf("label for %q = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestUnknownCodesFallBack(t *testing.T) {
	lookups := []func(string) string{
		AircraftTypeLabel,
		EngineTypeLabel,
		WeightClassLabel,
		RegistrantTypeLabel,
	}
	for _, fn := range lookups {
		for _, code := range []string{"", "99", "bogus"} {
			if got := fn(code); got != UnknownLabel {
				t.Errorf("label for %q = %q, want %q", code, got, UnknownLabel)
			}
		}
	}
}

func TestNoEmptyLabels(t *testing.T) {
	tables := map[string]map[string]string{
		"aircraft_types":   AircraftTypes,
		"engine_types":     EngineTypes,
		"weight_classes":   WeightClasses,
		"registrant_types": RegistrantTypes,
	}
	for name, table := range tables {
		if len(table) == 0 {
			t.Errorf("table %s is empty", name)
		}
		for code, label := range table {
			if label == "" {
				t.Errorf("table %s has empty label for code %q", name, code)
			}
		}
	}
}

func TestRegistrantTypeSixUnassigned(t *testing.T) {
	if _, ok := RegistrantTypes["6"]; ok {
		t.Error("registrant type 6 should not be assigned")
	}
}

func TestReferenceCodesCoversAllTables(t *testing.T) {
	codes := ReferenceCodes()
	for _, name := range []string{"aircraft_types", "engine_types", "weight_classes", "registrant_types"} {
		if _, ok := codes[name]; !ok {
			t.Errorf("ReferenceCodes missing table %q", name)
		}
	}

	if _, err := json.Marshal(codes); err != nil {
		t.Errorf("ReferenceCodes should serialize cleanly: %v", err)
	}
}

func TestKnownShapesHaveNoDuplicates(t *testing.T) {
	seen := make(map[Shape]int, len(KnownShapes))
	for i, shape := range KnownShapes {
		if prev, ok := seen[shape]; ok {
			t.Errorf("KnownShapes has duplicate %q at indices %d and %d", shape, prev, i)
		}
		seen[shape] = i
	}
	if _, ok := seen[ShapeCustom]; ok {
		t.Error("KnownShapes should not include the custom staging shape")
	}
}

func TestRecordKeys(t *testing.T) {
	m := &AircraftModel{Code: "05637J9"}
	if m.Key() != "05637J9" {
		t.Errorf("AircraftModel.Key() = %q, want 05637J9", m.Key())
	}

	e := &Engine{Code: "17003"}
	if e.Key() != "17003" {
		t.Errorf("Engine.Key() = %q, want 17003", e.Key())
	}

	r := &RegistryEntry{NNumber: "N12345"}
	if r.Key() != "N12345" {
		t.Errorf("RegistryEntry.Key() = %q, want N12345", r.Key())
	}
}

func TestRegistryEntryJSONOmitsDroppedModeS(t *testing.T) {
	entry := RegistryEntry{NNumber: "N1", ModeSHex: ""}
	data, err := json.Marshal(&entry)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if _, present := decoded["mode_s_code_hex"]; present {
		t.Error("empty Mode-S hex should be omitted from the canonical JSON")
	}
	if decoded["n_number"] != "N1" {
		t.Errorf("n_number = %v, want N1", decoded["n_number"])
	}
}
