package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/skyfly/aircraftdb/display"
	"github.com/skyfly/aircraftdb/errors"
	"github.com/skyfly/aircraftdb/logger"
	"github.com/skyfly/aircraftdb/store"
)

// LookupCmd groups the fixed single-record lookups.
var LookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up one aircraft record",
	Long: `Look up one aircraft record by a natural key.

Examples:
  aircraftdb lookup mode-s A12BC3     # By Mode-S transponder address
  aircraftdb lookup tail N12345       # By registration number
  aircraftdb lookup model 1151547     # By FAA MFR MDL code
  aircraftdb lookup engine 17003      # By FAA engine code`,
}

var lookupModeSCmd = &cobra.Command{
	Use:   "mode-s <hex>",
	Short: "Look up an aircraft by Mode-S address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLookup(cmd, func(s *store.SQLStore) (map[string]interface{}, error) {
			return s.GetAircraftByModeS(cmd.Context(), args[0])
		})
	},
}

var lookupTailCmd = &cobra.Command{
	Use:   "tail <n-number>",
	Short: "Look up an aircraft by registration number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLookup(cmd, func(s *store.SQLStore) (map[string]interface{}, error) {
			return s.GetAircraftByTail(cmd.Context(), args[0])
		})
	},
}

var lookupModelCmd = &cobra.Command{
	Use:   "model <code>",
	Short: "Look up an aircraft model reference record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLookup(cmd, func(s *store.SQLStore) (map[string]interface{}, error) {
			return s.GetModelInfo(cmd.Context(), args[0])
		})
	},
}

var lookupEngineCmd = &cobra.Command{
	Use:   "engine <code>",
	Short: "Look up an engine reference record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLookup(cmd, func(s *store.SQLStore) (map[string]interface{}, error) {
			return s.GetEngineInfo(cmd.Context(), args[0])
		})
	},
}

func init() {
	LookupCmd.AddCommand(lookupModeSCmd)
	LookupCmd.AddCommand(lookupTailCmd)
	LookupCmd.AddCommand(lookupModelCmd)
	LookupCmd.AddCommand(lookupEngineCmd)
	for _, sub := range []*cobra.Command{lookupModeSCmd, lookupTailCmd, lookupModelCmd, lookupEngineCmd} {
		sub.Flags().Bool("json", false, "Output the record as JSON")
	}
}

// runLookup executes one fixed lookup. A miss is a message, not an error
// exit: "not found" is an answer.
func runLookup(cmd *cobra.Command, fn func(*store.SQLStore) (map[string]interface{}, error)) error {
	_, mgr, err := openManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	row, err := fn(store.NewSQLStore(mgr, logger.Logger))
	if err != nil {
		if errors.IsNotFoundError(err) {
			if display.ShouldOutputJSON(cmd) {
				return display.OutputJSON(map[string]interface{}{"found": false, "message": err.Error()})
			}
			pterm.Info.Println(err.Error())
			return nil
		}
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(row)
	}
	display.RenderRecord(row)
	return nil
}
