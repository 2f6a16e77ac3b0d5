package ingest

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/skyfly/aircraftdb/errors"
)

// SpreadsheetReader parses .xlsx workbooks. Only the first sheet is read;
// its first row is the header. Rows stream lazily through excelize so a
// large workbook is not held in memory twice.
type SpreadsheetReader struct {
	file    *excelize.File
	rows    *excelize.Rows
	header  []string
	skipped int
}

// NewSpreadsheetReader opens the workbook and positions after the header row.
func NewSpreadsheetReader(r io.Reader) (*SpreadsheetReader, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "read sheet %s", sheets[0])
	}

	s := &SpreadsheetReader{file: f, rows: rows}

	if rows.Next() {
		cells, err := rows.Columns()
		if err != nil {
			s.Close()
			return nil, errors.Wrap(err, "read header row")
		}
		s.header = make([]string, len(cells))
		for i, name := range cells {
			s.header[i] = NormalizeFieldName(name)
		}
	}
	return s, nil
}

// Next returns the next non-blank row, padded or truncated to the header
// width. Rows excelize cannot materialize are skipped and counted.
func (s *SpreadsheetReader) Next() (Row, error) {
	if s.header == nil {
		return nil, io.EOF
	}
	for s.rows.Next() {
		cells, err := s.rows.Columns()
		if err != nil {
			s.skipped++
			continue
		}
		if isBlankRecord(cells) {
			continue
		}

		row := make(Row, len(s.header))
		for i, name := range s.header {
			if name == "" {
				continue
			}
			if i < len(cells) {
				row[name] = cells[i]
			} else {
				row[name] = ""
			}
		}
		return row, nil
	}
	if err := s.rows.Error(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (s *SpreadsheetReader) Skipped() int { return s.skipped }

func (s *SpreadsheetReader) Close() error {
	if s.rows != nil {
		s.rows.Close()
	}
	return s.file.Close()
}
