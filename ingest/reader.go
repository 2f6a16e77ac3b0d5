package ingest

import (
	"encoding/csv"
	"io"
	"strings"
)

// Row is one parsed record: normalized field name → raw string value.
type Row map[string]string

// RowReader yields rows from one source file, lazily. Next returns io.EOF
// once the source is exhausted. Skipped reports how many rows the parser
// dropped on its own (unparseable lines, non-mapping JSON elements); those
// never abort the remaining rows. Close releases parser-held resources;
// the caller keeps ownership of the underlying file handle.
type RowReader interface {
	Next() (Row, error)
	Skipped() int
	Close() error
}

// DelimitedReader parses comma-delimited text (the FAA .txt release files
// and generic CSV). The first row is the header; its names are normalized
// before use. Short rows are padded with "", long rows truncated to the
// header width. Unparseable rows are skipped and counted.
type DelimitedReader struct {
	csv     *csv.Reader
	header  []string
	skipped int
}

// NewDelimitedReader reads the header row and prepares lazy row iteration.
// An empty source (no header) yields a reader that is immediately exhausted.
func NewDelimitedReader(r io.Reader) (*DelimitedReader, error) {
	cr := csv.NewReader(r)
	// FAA rows are ragged and quoting is sloppy; take what we can get.
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	d := &DelimitedReader{csv: cr}

	header, err := cr.Read()
	if err == io.EOF {
		return d, nil
	}
	if err != nil {
		return nil, err
	}

	d.header = make([]string, len(header))
	for i, name := range header {
		d.header[i] = NormalizeFieldName(name)
	}
	return d, nil
}

// Next returns the next non-blank row. Blank lines are passed over silently;
// lines the csv parser rejects are skipped and counted.
func (d *DelimitedReader) Next() (Row, error) {
	if d.header == nil {
		return nil, io.EOF
	}
	for {
		record, err := d.csv.Read()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			d.skipped++
			continue
		}
		if isBlankRecord(record) {
			continue
		}

		row := make(Row, len(d.header))
		for i, name := range d.header {
			if name == "" {
				continue
			}
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		return row, nil
	}
}

func (d *DelimitedReader) Skipped() int { return d.skipped }

func (d *DelimitedReader) Close() error { return nil }

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
