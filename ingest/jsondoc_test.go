package ingest

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONReaderTopLevelArray(t *testing.T) {
	input := `[
		{"N-NUMBER": "12345", "YEAR MFR": 1998},
		{"N-NUMBER": "67890", "YEAR MFR": null}
	]`
	r, err := NewJSONReader(strings.NewReader(input))
	require.NoError(t, err)

	rows := drainRows(t, r)
	require.Len(t, rows, 2)
	assert.Equal(t, "12345", rows[0]["n_number"])
	assert.Equal(t, "1998", rows[0]["year_mfr"])
	assert.Equal(t, "", rows[1]["year_mfr"])
}

func TestJSONReaderNewlineDelimited(t *testing.T) {
	input := `{"code": "17003", "mfr": "LYCOMING"}
{"code": "17004", "mfr": "CONTINENTAL"}`
	r, err := NewJSONReader(strings.NewReader(input))
	require.NoError(t, err)

	rows := drainRows(t, r)
	require.Len(t, rows, 2)
	assert.Equal(t, "17003", rows[0]["code"])
	assert.Equal(t, "CONTINENTAL", rows[1]["mfr"])
}

func TestJSONReaderSkipsNonObjectElements(t *testing.T) {
	input := `[{"code": "A"}, 42, "junk", {"code": "B"}, [1,2]]`
	r, err := NewJSONReader(strings.NewReader(input))
	require.NoError(t, err)

	rows := drainRows(t, r)
	assert.Len(t, rows, 2)
	assert.Equal(t, 3, r.Skipped())
}

func TestJSONReaderNestedValuesKeepCompactJSON(t *testing.T) {
	input := `[{"code": "A", "extras": {"seats": 4}, "tags": ["x","y"], "active": true}]`
	r, err := NewJSONReader(strings.NewReader(input))
	require.NoError(t, err)

	rows := drainRows(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, `{"seats":4}`, rows[0]["extras"])
	assert.Equal(t, `["x","y"]`, rows[0]["tags"])
	assert.Equal(t, "true", rows[0]["active"])
}

func TestJSONReaderEmptyInput(t *testing.T) {
	r, err := NewJSONReader(strings.NewReader("   \n  "))
	require.NoError(t, err)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestJSONReaderNumbersKeepSourceText(t *testing.T) {
	input := `[{"horsepower": 180.5, "thrust": 20000000000}]`
	r, err := NewJSONReader(strings.NewReader(input))
	require.NoError(t, err)

	rows := drainRows(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "180.5", rows[0]["horsepower"])
	assert.Equal(t, "20000000000", rows[0]["thrust"])
}
