package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/skyfly/aircraftdb/ingest"
	"github.com/skyfly/aircraftdb/logger"
	"github.com/skyfly/aircraftdb/server"
)

// ServeCmd starts the MCP stdio tool server.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP tool server on stdio",
	Long: `Start the MCP tool server.

The server speaks the Model Context Protocol over stdin/stdout and exposes
the store's tools (ingestion, lookups, searches, stats, read-only SQL).
With --watch, files dropped into the given directory are ingested
automatically.

Examples:
  aircraftdb serve                  # Plain stdio tool server
  aircraftdb serve --watch ./drop   # Also ingest files dropped in ./drop`,
	RunE: runServe,
}

var watchDirFlag string

func init() {
	ServeCmd.Flags().StringVar(&watchDirFlag, "watch", "", "Directory to watch for ingest drops")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, mgr, err := openManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	srv := server.New(cfg, mgr, logger.Logger)

	if watchDirFlag != "" {
		watcher, err := server.NewWatcher(
			watchDirFlag,
			srv.Store(),
			logger.Logger,
			time.Duration(cfg.GetWatchDebounceMS())*time.Millisecond,
			ingest.Options{
				WarnRatePerSecond: cfg.GetWarnRatePerSecond(),
				RowLogInterval:    cfg.GetRowLogInterval(),
			},
		)
		if err != nil {
			return err
		}

		watchCtx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go func() {
			if err := watcher.Run(watchCtx); err != nil && err != context.Canceled {
				logger.Errorw("Ingest watcher stopped", "error", err)
			}
		}()
	}

	return srv.Serve()
}
