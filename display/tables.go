package display

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/skyfly/aircraftdb/ingest"
	"github.com/skyfly/aircraftdb/query"
	"github.com/skyfly/aircraftdb/store"
)

// RenderStats prints per-table counts for humans.
func RenderStats(stats *store.Stats) {
	pterm.DefaultSection.Println("Reference store statistics")
	if stats.DatabasePath != "" {
		pterm.Printf("Database: %s\n\n", pterm.LightCyan(stats.DatabasePath))
	}

	tables := make([]string, 0, len(stats.Tables))
	for table := range stats.Tables {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	data := pterm.TableData{{"Table", "Rows"}}
	for _, table := range tables {
		data = append(data, []string{table, strconv.Itoa(stats.Tables[table])})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printf("\nDistinct manufacturers: %s\n", pterm.Green(strconv.Itoa(stats.DistinctManufacturers)))
}

// RenderRunResult prints an ingestion report: one line per file, then the
// totals. Failed files are called out rather than buried in the counts.
func RenderRunResult(result *ingest.RunResult) {
	pterm.DefaultSection.Printf("Ingestion run %s", result.RunID)
	if result.DryRun {
		pterm.Info.Println("Dry run: nothing was written")
	}

	data := pterm.TableData{{"File", "Shape", "Parsed", "Inserted", "Updated", "Unchanged", "Skipped", "Errors"}}
	for _, fr := range result.Files {
		data = append(data, []string{
			fr.File, fr.Shape.String(),
			strconv.Itoa(fr.Parsed), strconv.Itoa(fr.Inserted),
			strconv.Itoa(fr.Updated), strconv.Itoa(fr.Unchanged),
			strconv.Itoa(fr.Skipped), strconv.Itoa(fr.Errors),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	for _, fr := range result.Files {
		if fr.Failed {
			pterm.Error.Printf("%s failed: %s\n", fr.File, fr.Error)
		}
	}

	t := result.Totals
	pterm.Printf("\nTotals: parsed %d, inserted %s, updated %s, unchanged %d, skipped %d, errors %s\n",
		t.Parsed,
		pterm.Green(strconv.Itoa(t.Inserted)),
		pterm.Yellow(strconv.Itoa(t.Updated)),
		t.Unchanged, t.Skipped,
		pterm.Red(strconv.Itoa(t.Errors)),
	)
	if result.Success {
		pterm.Success.Println(result.Message)
	} else {
		pterm.Error.Println(result.Message)
	}
}

// RenderQueryResult prints ad-hoc query rows in column order.
func RenderQueryResult(result *query.Result) {
	if len(result.Rows) == 0 {
		pterm.Info.Println("No rows")
		return
	}

	data := pterm.TableData{result.Columns}
	for _, row := range result.Rows {
		line := make([]string, len(result.Columns))
		for i, col := range result.Columns {
			line[i] = formatValue(row[col])
		}
		data = append(data, line)
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	pterm.Printf("\n%d row(s)", result.RowCount)
	if result.AppliedLimit > 0 {
		pterm.Printf(" (capped at %d)", result.AppliedLimit)
	}
	pterm.Println()
}

// RenderRecord prints one lookup result as an aligned field list.
func RenderRecord(row map[string]interface{}) {
	fields := make([]string, 0, len(row))
	for field := range row {
		if row[field] == nil {
			continue
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	data := pterm.TableData{}
	for _, field := range fields {
		data = append(data, []string{field, formatValue(row[field])})
	}
	_ = pterm.DefaultTable.WithData(data).Render()
}

func formatValue(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
