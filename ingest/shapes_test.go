package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyfly/aircraftdb/errors"
	"github.com/skyfly/aircraftdb/refdata"
)

func TestDetectShape(t *testing.T) {
	testCases := []struct {
		file     string
		expected refdata.Shape
	}{
		{"ACFTREF.txt", refdata.ShapeModels},
		{"acftref.TXT", refdata.ShapeModels},
		{"ENGINE.txt", refdata.ShapeEngines},
		{"MASTER.txt", refdata.ShapeRegistry},
		{"/data/faa/MASTER.txt", refdata.ShapeRegistry},
		{"DEALER.txt", refdata.ShapeDealers},
		{"DEREG.txt", refdata.ShapeDeregistered},
		{"fleet_export.csv", refdata.ShapeCustom},
		{"notes.json", refdata.ShapeCustom},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, DetectShape(tc.file), "file %s", tc.file)
	}
}

func TestBindAircraftModel(t *testing.T) {
	rec, err := BindAircraftModel(Row{
		"code":      "1151547",
		"mfr":       "CESSNA  ",
		"model":     "172S",
		"type_acft": "4",
		"no_seats":  "4",
		"no_eng":    "1",
		"ac_weight": "CLASS 1",
		"ignored":   "dropped",
	})
	require.NoError(t, err)
	assert.Equal(t, "1151547", rec.Code)
	assert.Equal(t, "CESSNA", rec.Manufacturer)
	assert.Equal(t, 4, rec.NumSeats)
	assert.Equal(t, 1, rec.NumEngines)
	assert.Equal(t, "CLASS 1", rec.WeightClass)
}

func TestBindAircraftModelMissingCode(t *testing.T) {
	_, err := BindAircraftModel(Row{"mfr": "CESSNA"})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestBindEngineJunkNumbersDegrade(t *testing.T) {
	rec, err := BindEngine(Row{
		"code":       "17003",
		"mfr":        "LYCOMING",
		"horsepower": "not-a-number",
		"thrust":     "",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Horsepower)
	assert.Equal(t, 0, rec.Thrust)
}

func TestBindRegistryEntry(t *testing.T) {
	rec, warnings, err := BindRegistryEntry(Row{
		"n_number":        "12345",
		"mode_s_code_hex": "a12bc3",
		"year_mfr":        "1998",
		"last_action_date": "20230415",
		"state":           "wa",
		"mfr_mdl_code":    "1151547",
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "N12345", rec.NNumber)
	assert.Equal(t, "A12BC3", rec.ModeSHex)
	assert.Equal(t, 1998, rec.YearMfr)
	assert.Equal(t, "2023-04-15", rec.LastActionDate)
	assert.Equal(t, "WA", rec.State)
}

func TestBindRegistryEntryDropsMalformedModeS(t *testing.T) {
	rec, warnings, err := BindRegistryEntry(Row{
		"n_number":        "12345",
		"mode_s_code_hex": "NOTHEX!",
	})
	require.NoError(t, err)
	assert.Equal(t, "", rec.ModeSHex, "malformed Mode-S must never be stored")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "NOTHEX!")
}

func TestBindRegistryEntryMissingKey(t *testing.T) {
	_, _, err := BindRegistryEntry(Row{"name": "ACME"})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestBindDeregisteredRequiresCancelDate(t *testing.T) {
	_, _, err := BindDeregistered(Row{"n_number": "12345"})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	rec, _, err := BindDeregistered(Row{"n_number": "12345", "cancel_date": "20200101"})
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01", rec.CancelDate)
}

func TestCustomRowDropsEmptyFields(t *testing.T) {
	cleaned := CustomRow(Row{"a": " 1 ", "b": "", "": "x", "c": "  "})
	assert.Equal(t, Row{"a": "1"}, cleaned)
}
