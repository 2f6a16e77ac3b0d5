package store

import (
	"context"

	"github.com/skyfly/aircraftdb/refdata"
)

// Stats summarizes the reference store for the db_get_stats surface.
type Stats struct {
	DatabasePath          string         `json:"database_path,omitempty"`
	Tables                map[string]int `json:"tables"`
	DistinctManufacturers int            `json:"distinct_manufacturers"`
}

// Stats counts the rows of every reference table. Table names come from
// the fixed shape list, never from input.
func (s *SQLStore) Stats(ctx context.Context) (*Stats, error) {
	handle, err := s.mgr.Handle(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		DatabasePath: s.mgr.Path(),
		Tables:       make(map[string]int),
	}

	tables := append([]refdata.Shape{}, refdata.KnownShapes...)
	tables = append(tables, refdata.ShapeCustom)
	for _, table := range tables {
		var count int
		if err := handle.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table.String()).Scan(&count); err != nil {
			return nil, s.execError(err, "stats query failed")
		}
		stats.Tables[table.String()] = count
	}

	err = handle.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT manufacturer) FROM aircraft_models WHERE manufacturer IS NOT NULL`,
	).Scan(&stats.DistinctManufacturers)
	if err != nil {
		return nil, s.execError(err, "stats query failed")
	}

	return stats, nil
}
