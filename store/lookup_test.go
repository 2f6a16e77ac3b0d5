package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyfly/aircraftdb/errors"
	"github.com/skyfly/aircraftdb/refdata"
)

// seedAircraft inserts a registry entry plus its model and engine
// references so the joined lookups have something to join.
func seedAircraft(t *testing.T, st *SQLStore) {
	t.Helper()
	ctx := context.Background()

	_, err := st.UpsertAircraftModel(ctx, &refdata.AircraftModel{
		Code: "1151547", Manufacturer: "CESSNA", Model: "172S",
		TypeAircraft: "4", TypeEngine: "1", NumSeats: 4, WeightClass: "CLASS 1",
	})
	require.NoError(t, err)

	_, err = st.UpsertEngine(ctx, &refdata.Engine{
		Code: "17003", Manufacturer: "LYCOMING", Model: "IO-360-L2A",
		TypeEngine: "1", Horsepower: 180,
	})
	require.NoError(t, err)

	_, err = st.UpsertRegistryEntry(ctx, &refdata.RegistryEntry{
		NNumber: "N12345", ModeSHex: "A12BC3",
		MfrMdlCode: "1151547", EngMfrMdl: "17003",
		RegistrantType: "1", TypeAircraft: "4", TypeEngine: "1",
		RegistrantName: "ACME AVIATION", State: "WA", City: "SEATTLE",
		YearMfr: 1998,
	})
	require.NoError(t, err)
}

func TestGetAircraftByModeSJoinsDetail(t *testing.T) {
	st := newTestStore(t)
	seedAircraft(t, st)

	row, err := st.GetAircraftByModeS(context.Background(), "a12bc3")
	require.NoError(t, err)

	assert.Equal(t, "N12345", row["n_number"])
	assert.Equal(t, "CESSNA", row["model_manufacturer"])
	assert.Equal(t, "172S", row["model_name"])
	assert.Equal(t, "LYCOMING", row["engine_manufacturer"])
	assert.Equal(t, "Fixed wing single engine", row["type_aircraft_label"])
	assert.Equal(t, "Reciprocating", row["type_engine_label"])
	assert.Equal(t, "Individual", row["registrant_type_label"])
	assert.Equal(t, "Up to 12,499 lbs", row["model_weight_class_label"])
}

func TestGetAircraftByModeSUnknownIsNotFound(t *testing.T) {
	st := newTestStore(t)
	seedAircraft(t, st)

	_, err := st.GetAircraftByModeS(context.Background(), "FFFFFF")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err), "well-formed unknown code must be an explicit miss")
	assert.Contains(t, err.Error(), "FFFFFF")
}

func TestGetAircraftByModeSMalformedIsValidation(t *testing.T) {
	st := newTestStore(t)

	_, err := st.GetAircraftByModeS(context.Background(), "XYZ")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestDanglingReferencesResolveToUnknown(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	// Registry entry pointing at a model and engine that were never
	// ingested; the lookup still answers.
	_, err := st.UpsertRegistryEntry(ctx, &refdata.RegistryEntry{
		NNumber: "N99999", ModeSHex: "ABCDEF",
		MfrMdlCode: "0000000", EngMfrMdl: "99999",
		TypeAircraft: "not-a-code",
	})
	require.NoError(t, err)

	row, err := st.GetAircraftByModeS(ctx, "ABCDEF")
	require.NoError(t, err)
	assert.Nil(t, row["model_manufacturer"])
	assert.Nil(t, row["engine_manufacturer"])
	assert.Equal(t, refdata.UnknownLabel, row["type_aircraft_label"])
	assert.Equal(t, refdata.UnknownLabel, row["model_weight_class_label"])
}

func TestGetAircraftByTailAddsNPrefix(t *testing.T) {
	st := newTestStore(t)
	seedAircraft(t, st)

	row, err := st.GetAircraftByTail(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, "N12345", row["n_number"])
}

func TestGetModelInfo(t *testing.T) {
	st := newTestStore(t)
	seedAircraft(t, st)

	row, err := st.GetModelInfo(context.Background(), "1151547")
	require.NoError(t, err)
	assert.Equal(t, "CESSNA", row["manufacturer"])
	assert.Equal(t, "Fixed wing single engine", row["type_aircraft_label"])
	assert.Equal(t, "Up to 12,499 lbs", row["weight_class_label"])

	_, err = st.GetModelInfo(context.Background(), "XXXXXXX")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestGetEngineInfo(t *testing.T) {
	st := newTestStore(t)
	seedAircraft(t, st)

	row, err := st.GetEngineInfo(context.Background(), "17003")
	require.NoError(t, err)
	assert.Equal(t, "LYCOMING", row["manufacturer"])
	assert.Equal(t, "Reciprocating", row["type_engine_label"])

	_, err = st.GetEngineInfo(context.Background(), "00000")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestEnrichModeSBatch(t *testing.T) {
	st := newTestStore(t)
	seedAircraft(t, st)

	found, notFound, err := st.EnrichModeSBatch(context.Background(),
		[]string{"a12bc3", "FFFFFF", "junk!"})
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.Equal(t, "N12345", found[0]["n_number"])
	assert.ElementsMatch(t, []string{"FFFFFF", "junk!"}, notFound)
}

func TestEnrichModeSBatchCap(t *testing.T) {
	st := newTestStore(t)

	codes := make([]string, EnrichBatchLimit+1)
	for i := range codes {
		codes[i] = "A12BC3"
	}
	_, _, err := st.EnrichModeSBatch(context.Background(), codes)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}
