package ingest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook generates an in-memory .xlsx with the given rows on the
// first sheet (and a decoy second sheet that must be ignored).
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	_, err := f.NewSheet("Decoy")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Decoy", "A1", &[]interface{}{"SHOULD", "NOT", "APPEAR"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestSpreadsheetReaderFirstSheetHeaderRow(t *testing.T) {
	src := buildWorkbook(t, [][]interface{}{
		{"CODE", "MFR", "MODEL"},
		{"1151547", "CESSNA", "172S"},
		{"2072738", "PIPER", "PA-28-181"},
	})

	r, err := NewSpreadsheetReader(src)
	require.NoError(t, err)
	defer r.Close()

	rows := drainRows(t, r)
	require.Len(t, rows, 2)
	assert.Equal(t, "CESSNA", rows[0]["mfr"])
	assert.Equal(t, "PA-28-181", rows[1]["model"])
}

func TestSpreadsheetReaderShortRowsPadded(t *testing.T) {
	src := buildWorkbook(t, [][]interface{}{
		{"A", "B", "C"},
		{"1"},
	})

	r, err := NewSpreadsheetReader(src)
	require.NoError(t, err)
	defer r.Close()

	rows := drainRows(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{"a": "1", "b": "", "c": ""}, rows[0])
}

func TestSpreadsheetReaderHeaderOnly(t *testing.T) {
	src := buildWorkbook(t, [][]interface{}{
		{"A", "B"},
	})

	r, err := NewSpreadsheetReader(src)
	require.NoError(t, err)
	defer r.Close()

	rows := drainRows(t, r)
	assert.Empty(t, rows)
}

func TestSpreadsheetReaderRejectsGarbage(t *testing.T) {
	_, err := NewSpreadsheetReader(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}
