package commands

import (
	"github.com/spf13/cobra"

	"github.com/skyfly/aircraftdb/display"
	"github.com/skyfly/aircraftdb/errors"
	"github.com/skyfly/aircraftdb/ingest"
	"github.com/skyfly/aircraftdb/logger"
	"github.com/skyfly/aircraftdb/refdata"
	"github.com/skyfly/aircraftdb/store"
)

// IngestCmd ingests FAA release files or generic data drops.
var IngestCmd = &cobra.Command{
	Use:   "ingest <path>",
	Short: "Ingest aircraft reference files into the store",
	Long: `Ingest a file or directory into the reference store.

Known FAA release files (ACFTREF, ENGINE, MASTER, DEALER, DEREG) load into
their reference tables; other supported files (.txt/.csv/.xlsx/.json) are
staged as custom records. The run always completes with a per-file report;
a broken file is reported, not fatal.

Examples:
  aircraftdb ingest ./ReleasableAircraft          # Whole release directory
  aircraftdb ingest MASTER.txt                    # One file, shape detected
  aircraftdb ingest data.csv --shape engines      # Force a shape
  aircraftdb ingest ./drop --dry-run              # Validate without writing`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

var (
	ingestShapeFlag  string
	ingestDryRunFlag bool
)

func init() {
	IngestCmd.Flags().StringVar(&ingestShapeFlag, "shape", "", "Override shape detection (aircraft_models, engines, aircraft_registry, dealers, aircraft_deregistered, custom_records)")
	IngestCmd.Flags().BoolVar(&ingestDryRunFlag, "dry-run", false, "Parse and validate without writing")
	IngestCmd.Flags().Bool("json", false, "Output the run report as JSON")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, mgr, err := openManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	processor := ingest.NewProcessor(
		store.NewSQLStore(mgr, logger.Logger),
		logger.Logger,
		ingest.Options{
			DryRun:            ingestDryRunFlag,
			WarnRatePerSecond: cfg.GetWarnRatePerSecond(),
			RowLogInterval:    cfg.GetRowLogInterval(),
		},
	)

	result, err := processor.ProcessPath(cmd.Context(), args[0], refdata.Shape(ingestShapeFlag))
	if err != nil {
		return errors.Wrap(err, "ingestion failed")
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(result)
	}
	display.RenderRunResult(result)
	return nil
}
