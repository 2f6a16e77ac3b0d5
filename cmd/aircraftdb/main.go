package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skyfly/aircraftdb/cmd/aircraftdb/commands"
	"github.com/skyfly/aircraftdb/logger"
)

var rootCmd = &cobra.Command{
	Use:   "aircraftdb",
	Short: "Aircraft reference-data store",
	Long: `aircraftdb - local reference store for aircraft identification records.

Ingests FAA registration releases (and generic CSV/XLSX/JSON drops) into a
durable SQLite store, and exposes fixed lookups, searches, and a validated
read-only SQL surface over MCP and the CLI.

Examples:
  aircraftdb ingest ./ReleasableAircraft   # Ingest an FAA release directory
  aircraftdb lookup mode-s A12BC3          # Look up one aircraft by Mode-S
  aircraftdb db stats                      # Show per-table row counts
  aircraftdb db query "SELECT ..."         # Run a read-only SQL query
  aircraftdb serve --watch ./drop          # MCP server + ingest watcher`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The MCP server owns stdout for the protocol; its logs go to stderr.
		initFn := logger.Initialize
		if cmd.Name() == "serve" {
			initFn = logger.InitializeStderr
		}
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		if err := initFn(jsonLogs); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("json", false, "Output JSON instead of formatted text")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit structured JSON logs")

	rootCmd.AddCommand(commands.IngestCmd)
	rootCmd.AddCommand(commands.DbCmd)
	rootCmd.AddCommand(commands.LookupCmd)
	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
