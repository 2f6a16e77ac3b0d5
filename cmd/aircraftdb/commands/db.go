package commands

import (
	"github.com/spf13/cobra"

	"github.com/skyfly/aircraftdb/display"
	"github.com/skyfly/aircraftdb/logger"
	"github.com/skyfly/aircraftdb/query"
	"github.com/skyfly/aircraftdb/store"
)

// DbCmd groups database operations.
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect the reference store",
	Long: `Inspect the reference store.

Examples:
  aircraftdb db stats                                      # Per-table row counts
  aircraftdb db query "SELECT * FROM engines LIMIT 5"      # Read-only SQL`,
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-table row counts",
	RunE:  runDbStats,
}

var dbQueryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run a validated read-only SQL query",
	Long: `Run an ad-hoc SQL query against the reference tables.

The query must be a single SELECT over the reference tables; write and
administrative statements are rejected before execution. Queries without a
LIMIT are capped.`,
	Args: cobra.ExactArgs(1),
	RunE: runDbQuery,
}

func init() {
	DbCmd.AddCommand(dbStatsCmd)
	DbCmd.AddCommand(dbQueryCmd)
	dbStatsCmd.Flags().Bool("json", false, "Output statistics as JSON")
	dbQueryCmd.Flags().Bool("json", false, "Output rows as JSON")
}

func runDbStats(cmd *cobra.Command, args []string) error {
	_, mgr, err := openManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	stats, err := store.NewSQLStore(mgr, logger.Logger).Stats(cmd.Context())
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(stats)
	}
	display.RenderStats(stats)
	return nil
}

func runDbQuery(cmd *cobra.Command, args []string) error {
	cfg, mgr, err := openManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	gateway := query.NewGateway(mgr, logger.Logger, cfg.GetQueryRowCap())
	result, err := gateway.Run(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(result)
	}
	display.RenderQueryResult(result)
	return nil
}
