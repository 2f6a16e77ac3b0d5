package server

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/skyfly/aircraftdb/errors"
	"github.com/skyfly/aircraftdb/ingest"
	"github.com/skyfly/aircraftdb/store"
)

// DefaultWatchDebounce coalesces the event bursts a single file copy
// produces into one ingestion.
const DefaultWatchDebounce = 2 * time.Second

// Watcher ingests files dropped into a directory. Events for one file are
// debounced so a slow copy is picked up once, after it settles.
type Watcher struct {
	dir      string
	store    *store.SQLStore
	logger   *zap.SugaredLogger
	debounce time.Duration
	opts     ingest.Options
	watcher  *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewWatcher starts watching dir. debounce <= 0 selects DefaultWatchDebounce.
func NewWatcher(dir string, st *store.SQLStore, logger *zap.SugaredLogger, debounce time.Duration, opts ingest.Options) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create fsnotify watcher")
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, errors.Wrapf(err, "watch ingest directory %s", dir)
	}

	return &Watcher{
		dir:      dir,
		store:    st,
		logger:   logger,
		debounce: debounce,
		opts:     opts,
		watcher:  fsw,
		pending:  make(map[string]*time.Timer),
	}, nil
}

// Run consumes filesystem events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Infow("Ingest watcher started", "dir", w.dir, "debounce", w.debounce)
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !ingest.SupportedExtensions[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}
			w.schedule(ctx, event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("Ingest watcher error", "error", err)
		}
	}
}

// schedule (re)arms the debounce timer for one file; every further event
// for the same file pushes ingestion back until the writes stop.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.ingestFile(ctx, path)
	})
}

func (w *Watcher) ingestFile(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}
	processor := ingest.NewProcessor(w.store, w.logger, w.opts)
	result, err := processor.ProcessPath(ctx, path, "")
	if err != nil {
		w.logger.Errorw("Watched file ingestion failed", "file", path, "error", err)
		return
	}
	w.logger.Infow("Watched file ingested",
		"file", path,
		"run_id", result.RunID,
		"inserted", result.Totals.Inserted,
		"updated", result.Totals.Updated,
		"errors", result.Totals.Errors,
	)
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}
