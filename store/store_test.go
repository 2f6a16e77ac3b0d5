package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/skyfly/aircraftdb/db"
	"github.com/skyfly/aircraftdb/errors"
	"github.com/skyfly/aircraftdb/internal/testutil"
	"github.com/skyfly/aircraftdb/refdata"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	return NewSQLStore(testutil.NewTestManager(t), zaptest.NewLogger(t).Sugar())
}

func TestUpsertOutcomeTransitions(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	rec := &refdata.Engine{Code: "17003", Manufacturer: "LYCOMING", Model: "O-320", Horsepower: 150}

	outcome, err := st.UpsertEngine(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, OutcomeInserted, outcome)

	// Identical content: no write at all.
	outcome, err = st.UpsertEngine(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, outcome)

	rec.Horsepower = 160
	outcome, err = st.UpsertEngine(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
}

func TestUpsertRegistryRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	rec := &refdata.RegistryEntry{
		NNumber:        "N12345",
		ModeSHex:       "A12BC3",
		RegistrantName: "ACME AVIATION",
		State:          "WA",
		YearMfr:        1998,
	}
	outcome, err := st.UpsertRegistryEntry(ctx, rec)
	require.NoError(t, err)
	require.Equal(t, OutcomeInserted, outcome)

	row, err := st.GetAircraftByTail(ctx, "N12345")
	require.NoError(t, err)
	assert.Equal(t, "A12BC3", row["mode_s_code_hex"])
	assert.Equal(t, "ACME AVIATION", row["registrant_name"])
}

func TestStageCustomRecordIdempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	row := map[string]string{"tail": "N1", "base": "KSEA"}

	outcome, err := st.StageCustomRecord(ctx, "fleet.csv", row)
	require.NoError(t, err)
	assert.Equal(t, OutcomeInserted, outcome)

	outcome, err = st.StageCustomRecord(ctx, "fleet.csv", row)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, outcome)

	// Same content from a different source file is a distinct record.
	outcome, err = st.StageCustomRecord(ctx, "other.csv", row)
	require.NoError(t, err)
	assert.Equal(t, OutcomeInserted, outcome)
}

func TestUpsertFailureIsWrappedNotLeaked(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT content FROM engines").
		WillReturnError(errors.New("disk I/O error: database file corrupt"))
	mock.ExpectRollback()

	mgr := db.NewManagerWithDB(sqlDB, zaptest.NewLogger(t).Sugar())
	st := NewSQLStore(mgr, zaptest.NewLogger(t).Sugar())

	_, err = st.UpsertEngine(context.Background(), &refdata.Engine{Code: "17003"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read stored content")
	assert.NoError(t, mock.ExpectationsWereMet())
}
