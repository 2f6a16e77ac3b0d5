package ingest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/skyfly/aircraftdb/errors"
)

// JSONReader parses either a top-level array of objects or a stream of
// newline-delimited objects; the first non-space byte decides which. Any
// element that is not an object is skipped and counted.
type JSONReader struct {
	dec     *json.Decoder
	inArray bool
	done    bool
	skipped int
}

// NewJSONReader sniffs the document form and prepares lazy iteration.
func NewJSONReader(r io.Reader) (*JSONReader, error) {
	br := bufio.NewReader(r)

	first, err := firstNonSpace(br)
	if err == io.EOF {
		return &JSONReader{done: true}, nil
	}
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(br)
	dec.UseNumber()
	j := &JSONReader{dec: dec}

	if first == '[' {
		// Consume the opening bracket; elements then stream one by one.
		if _, err := dec.Token(); err != nil {
			return nil, errors.Wrap(err, "read array start")
		}
		j.inArray = true
	}
	return j, nil
}

func firstNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}

// Next returns the next object as a row of stringified values. Numbers keep
// their source text, nested structures are re-encoded as compact JSON, and
// null becomes the empty string.
func (j *JSONReader) Next() (Row, error) {
	for {
		raw, err := j.nextElement()
		if err != nil {
			return nil, err
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			// Not an object (number, string, array, ...): skip it.
			j.skipped++
			continue
		}

		row := make(Row, len(fields))
		for name, value := range fields {
			normalized := NormalizeFieldName(name)
			if normalized == "" {
				continue
			}
			row[normalized] = stringifyJSONValue(value)
		}
		return row, nil
	}
}

func (j *JSONReader) nextElement() (json.RawMessage, error) {
	if j.done {
		return nil, io.EOF
	}

	if j.inArray && !j.dec.More() {
		// Swallow the closing bracket; trailing garbage is ignored.
		j.done = true
		if _, err := j.dec.Token(); err != nil && err != io.EOF {
			return nil, err
		}
		return nil, io.EOF
	}

	var raw json.RawMessage
	if err := j.dec.Decode(&raw); err != nil {
		if err == io.EOF {
			j.done = true
			return nil, io.EOF
		}
		// A malformed stream cannot be resynchronized; stop here.
		j.done = true
		return nil, err
	}
	return raw, nil
}

func stringifyJSONValue(raw json.RawMessage) string {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return string(raw)
	}
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		// Nested object or array: keep the compact JSON text.
		compact, err := json.Marshal(v)
		if err != nil {
			return string(raw)
		}
		return string(compact)
	}
}

func (j *JSONReader) Skipped() int { return j.skipped }

func (j *JSONReader) Close() error { return nil }
