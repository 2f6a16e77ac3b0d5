package store

import (
	"database/sql"
)

// ScanRowMaps drains rows into ordered field-name → value maps suitable for
// direct serialization. SQLite byte slices are converted to strings so the
// JSON output stays readable; NULL stays nil. maxRows <= 0 means unbounded.
func ScanRowMaps(rows *sql.Rows, maxRows int) ([]string, []map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var results []map[string]interface{}
	values := make([]interface{}, len(columns))
	scanArgs := make([]interface{}, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	for rows.Next() {
		if maxRows > 0 && len(results) >= maxRows {
			break
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, nil, err
		}
		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			switch v := values[i].(type) {
			case []byte:
				row[col] = string(v)
			default:
				row[col] = v
			}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return columns, results, nil
}

// stringAt reads a string-valued column from a scanned row map, tolerating
// NULL and missing columns.
func stringAt(row map[string]interface{}, col string) string {
	if v, ok := row[col]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
