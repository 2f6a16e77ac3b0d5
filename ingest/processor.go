package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/skyfly/aircraftdb/errors"
	"github.com/skyfly/aircraftdb/refdata"
	"github.com/skyfly/aircraftdb/store"
)

// SupportedExtensions lists the file extensions the processor will touch.
// Anything else in a drop directory is left alone without comment.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".csv":  true,
	".xlsx": true,
	".json": true,
}

// RowStats counts what happened to the rows of one file (or one run).
type RowStats struct {
	Parsed    int `json:"parsed"`
	Inserted  int `json:"inserted"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

func (s *RowStats) add(other RowStats) {
	s.Parsed += other.Parsed
	s.Inserted += other.Inserted
	s.Updated += other.Updated
	s.Unchanged += other.Unchanged
	s.Skipped += other.Skipped
	s.Errors += other.Errors
}

// FileResult reports the outcome of processing a single source file.
type FileResult struct {
	File  string        `json:"file"`
	Shape refdata.Shape `json:"shape"`
	RowStats
	Failed bool   `json:"failed,omitempty"`
	Error  string `json:"error,omitempty"`
}

// RunResult is the aggregate report of one ingestion run. A run always
// terminates with one of these; individual file failures are folded in
// rather than thrown.
type RunResult struct {
	RunID     string       `json:"run_id"`
	Path      string       `json:"path"`
	DryRun    bool         `json:"dry_run,omitempty"`
	Files     []FileResult `json:"files"`
	Totals    RowStats     `json:"totals"`
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	StartTime time.Time    `json:"start_time"`
	EndTime   time.Time    `json:"end_time"`
}

// Options tune a Processor. The zero value is usable.
type Options struct {
	DryRun            bool
	WarnRatePerSecond int // per-row warning rate limit; <= 0 selects 5
	RowLogInterval    int // progress log cadence in rows; <= 0 selects 10000
}

// Processor drives the parse → normalize → upsert pipeline for one or more
// source files. Safe for use from a single goroutine; run one Processor per
// ingestion run.
type Processor struct {
	store          *store.SQLStore
	logger         *zap.SugaredLogger
	dryRun         bool
	rowLogInterval int
	warnLimit      *rate.Limiter
}

// NewProcessor creates a processor writing through the given store.
func NewProcessor(st *store.SQLStore, logger *zap.SugaredLogger, opts Options) *Processor {
	warnRate := opts.WarnRatePerSecond
	if warnRate <= 0 {
		warnRate = 5
	}
	interval := opts.RowLogInterval
	if interval <= 0 {
		interval = 10000
	}
	return &Processor{
		store:          st,
		logger:         logger,
		dryRun:         opts.DryRun,
		rowLogInterval: interval,
		warnLimit:      rate.NewLimiter(rate.Limit(warnRate), warnRate),
	}
}

// DetectShape maps a file name to its reference shape by the FAA release
// naming convention (ACFTREF.txt, ENGINE.txt, MASTER.txt, DEALER.txt,
// DEREG.txt, any case). Unrecognized names are custom.
func DetectShape(filename string) refdata.Shape {
	base := strings.ToUpper(filepath.Base(filename))
	base = strings.TrimSuffix(base, strings.ToUpper(filepath.Ext(base)))
	switch {
	case strings.HasPrefix(base, "ACFTREF"):
		return refdata.ShapeModels
	case strings.HasPrefix(base, "ENGINE"):
		return refdata.ShapeEngines
	case strings.HasPrefix(base, "MASTER"):
		return refdata.ShapeRegistry
	case strings.HasPrefix(base, "DEALER"):
		return refdata.ShapeDealers
	case strings.HasPrefix(base, "DEREG"):
		return refdata.ShapeDeregistered
	default:
		return refdata.ShapeCustom
	}
}

// ProcessPath ingests a file or a directory and always returns a run
// report. Only a store that cannot be opened at all is fatal.
func (p *Processor) ProcessPath(ctx context.Context, path string, shape refdata.Shape) (*RunResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Ingestionf("cannot access %s: %v", path, err)
	}
	if info.IsDir() {
		return p.ProcessDirectory(ctx, path)
	}

	result := p.newRunResult(path)
	if shape == "" {
		shape = DetectShape(path)
	}
	result.Files = append(result.Files, p.processFileCaught(ctx, path, shape))
	p.finish(result)
	return result, nil
}

// ProcessDirectory ingests every supported file in dir: the known FAA
// release files first, in reference order (models and engines before the
// registry that points at them), then everything else into custom staging.
// A failing file is recorded and the run moves on to the next one.
func (p *Processor) ProcessDirectory(ctx context.Context, dir string) (*RunResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Ingestionf("cannot read directory %s: %v", dir, err)
	}

	// Probe the store before walking files so a database that cannot open
	// fails the run instead of failing every file with the same error.
	if _, err := p.store.Manager().Handle(ctx); err != nil {
		return nil, err
	}

	byShape := make(map[refdata.Shape][]string)
	var custom []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !SupportedExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		full := filepath.Join(dir, name)
		shape := DetectShape(name)
		if shape == refdata.ShapeCustom {
			custom = append(custom, full)
			continue
		}
		byShape[shape] = append(byShape[shape], full)
	}
	sort.Strings(custom)

	result := p.newRunResult(dir)
	p.logger.Infow("Ingestion run started",
		"run_id", result.RunID,
		"dir", dir,
		"dry_run", p.dryRun,
	)

	for _, shape := range refdata.KnownShapes {
		files := byShape[shape]
		sort.Strings(files)
		for _, file := range files {
			result.Files = append(result.Files, p.processFileCaught(ctx, file, shape))
		}
	}
	for _, file := range custom {
		result.Files = append(result.Files, p.processFileCaught(ctx, file, refdata.ShapeCustom))
	}

	p.finish(result)
	return result, nil
}

// processFileCaught wraps ProcessFile so a single file's failure becomes a
// reported FileResult instead of aborting the directory run.
func (p *Processor) processFileCaught(ctx context.Context, path string, shape refdata.Shape) FileResult {
	fr, err := p.ProcessFile(ctx, path, shape)
	if err != nil {
		fr.Failed = true
		fr.Error = err.Error()
		p.logger.Errorw("File ingestion failed",
			"file", path,
			"shape", shape,
			"error", err,
		)
	}
	return fr
}

// ProcessFile runs the pipeline over one file. Row-level damage lands in
// the stats; the returned error covers only file-level problems (missing
// file, no working encoding, broken workbook) and context cancellation.
func (p *Processor) ProcessFile(ctx context.Context, path string, shape refdata.Shape) (FileResult, error) {
	fr := FileResult{File: filepath.Base(path), Shape: shape}

	reader, closeFn, err := p.openReader(path)
	if err != nil {
		return fr, err
	}
	defer closeFn()
	defer reader.Close()

	start := time.Now()
	for {
		if err := ctx.Err(); err != nil {
			// Every committed row stays committed; the rest are never applied.
			fr.Skipped += reader.Skipped()
			return fr, err
		}

		row, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			fr.Skipped += reader.Skipped()
			return fr, errors.Ingestionf("reading %s: %v", path, err)
		}

		fr.Parsed++
		p.processRow(ctx, shape, fr.File, row, &fr.RowStats)

		if fr.Parsed%p.rowLogInterval == 0 {
			p.logger.Infow("Ingestion progress",
				"file", fr.File,
				"rows", fr.Parsed,
				"elapsed", time.Since(start).Round(time.Millisecond),
			)
		}
	}

	fr.Skipped += reader.Skipped()
	p.logger.Infow("File ingested",
		"file", fr.File,
		"shape", shape,
		"parsed", fr.Parsed,
		"inserted", fr.Inserted,
		"updated", fr.Updated,
		"unchanged", fr.Unchanged,
		"skipped", fr.Skipped,
		"errors", fr.Errors,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return fr, nil
}

// processRow binds and upserts one row, folding the outcome into stats.
// A row that cannot be bound (absent or malformed key) is an error entry,
// never a thrown failure.
func (p *Processor) processRow(ctx context.Context, shape refdata.Shape, file string, row Row, stats *RowStats) {
	outcome, warnings, err := p.upsertRow(ctx, shape, file, row)
	for _, w := range warnings {
		p.warn(file, w)
	}
	if err != nil {
		stats.Errors++
		p.warn(file, err.Error())
		return
	}
	if p.dryRun {
		return
	}
	switch outcome {
	case store.OutcomeInserted:
		stats.Inserted++
	case store.OutcomeUpdated:
		stats.Updated++
	default:
		stats.Unchanged++
	}
}

func (p *Processor) upsertRow(ctx context.Context, shape refdata.Shape, file string, row Row) (store.Outcome, []string, error) {
	switch shape {
	case refdata.ShapeModels:
		rec, err := BindAircraftModel(row)
		if err != nil {
			return 0, nil, err
		}
		if p.dryRun {
			return 0, nil, nil
		}
		outcome, err := p.store.UpsertAircraftModel(ctx, rec)
		return outcome, nil, err
	case refdata.ShapeEngines:
		rec, err := BindEngine(row)
		if err != nil {
			return 0, nil, err
		}
		if p.dryRun {
			return 0, nil, nil
		}
		outcome, err := p.store.UpsertEngine(ctx, rec)
		return outcome, nil, err
	case refdata.ShapeRegistry:
		rec, warnings, err := BindRegistryEntry(row)
		if err != nil {
			return 0, warnings, err
		}
		if p.dryRun {
			return 0, warnings, nil
		}
		outcome, err := p.store.UpsertRegistryEntry(ctx, rec)
		return outcome, warnings, err
	case refdata.ShapeDealers:
		rec, err := BindDealer(row)
		if err != nil {
			return 0, nil, err
		}
		if p.dryRun {
			return 0, nil, nil
		}
		outcome, err := p.store.UpsertDealer(ctx, rec)
		return outcome, nil, err
	case refdata.ShapeDeregistered:
		rec, warnings, err := BindDeregistered(row)
		if err != nil {
			return 0, warnings, err
		}
		if p.dryRun {
			return 0, warnings, nil
		}
		outcome, err := p.store.UpsertDeregistered(ctx, rec)
		return outcome, warnings, err
	default:
		cleaned := CustomRow(row)
		if len(cleaned) == 0 {
			return 0, nil, errors.Validationf("row has no usable fields")
		}
		if p.dryRun {
			return 0, nil, nil
		}
		outcome, err := p.store.StageCustomRecord(ctx, file, cleaned)
		return outcome, nil, err
	}
}

// openReader picks the parser for a file by extension. Text formats are
// decoded through the encoding cascade up front; the workbook and JSON
// parsers consume the file handle directly.
func (p *Processor) openReader(path string) (RowReader, func(), error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !SupportedExtensions[ext] {
		return nil, nil, errors.Ingestionf("unsupported file type %s", path)
	}

	switch ext {
	case ".txt", ".csv":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, errors.Ingestionf("cannot read %s: %v", path, err)
		}
		text, err := DecodeText(data, filepath.Base(path))
		if err != nil {
			return nil, nil, err
		}
		reader, err := NewDelimitedReader(strings.NewReader(text))
		if err != nil {
			return nil, nil, errors.Ingestionf("cannot parse %s: %v", path, err)
		}
		return reader, func() {}, nil
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, errors.Ingestionf("cannot open %s: %v", path, err)
		}
		var reader RowReader
		if ext == ".xlsx" {
			reader, err = NewSpreadsheetReader(f)
		} else {
			reader, err = NewJSONReader(f)
		}
		if err != nil {
			f.Close()
			return nil, nil, errors.Ingestionf("cannot parse %s: %v", path, err)
		}
		return reader, func() { f.Close() }, nil
	}
}

// warn logs a per-row diagnostic through the rate limiter so a dirty
// million-row file cannot flood the log.
func (p *Processor) warn(file, msg string) {
	if !p.warnLimit.Allow() {
		return
	}
	p.logger.Warnw("Row rejected", "file", file, "reason", msg)
}

func (p *Processor) newRunResult(path string) *RunResult {
	return &RunResult{
		RunID:     uuid.New().String(),
		Path:      path,
		DryRun:    p.dryRun,
		StartTime: time.Now().UTC(),
	}
}

func (p *Processor) finish(result *RunResult) {
	result.EndTime = time.Now().UTC()
	failed := 0
	for _, fr := range result.Files {
		result.Totals.add(fr.RowStats)
		if fr.Failed {
			failed++
		}
	}
	result.Success = failed == 0
	switch {
	case len(result.Files) == 0:
		result.Message = "no supported files found"
	case failed == 0:
		result.Message = "ingestion completed"
	default:
		result.Message = fmt.Sprintf("%d of %d files failed", failed, len(result.Files))
	}
	p.logger.Infow("Ingestion run finished",
		"run_id", result.RunID,
		"files", len(result.Files),
		"failed_files", failed,
		"parsed", result.Totals.Parsed,
		"inserted", result.Totals.Inserted,
		"updated", result.Totals.Updated,
		"unchanged", result.Totals.Unchanged,
		"errors", result.Totals.Errors,
		"duration", result.EndTime.Sub(result.StartTime).Round(time.Millisecond),
	)
}
