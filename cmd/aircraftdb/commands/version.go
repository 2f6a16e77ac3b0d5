package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/skyfly/aircraftdb/display"
	"github.com/skyfly/aircraftdb/version"
)

// VersionCmd prints build information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(info)
		}
		pterm.Printf("aircraftdb %s\n", info.Version)
		pterm.Printf("  commit:   %s\n", info.CommitHash)
		pterm.Printf("  built:    %s\n", info.BuildTime)
		pterm.Printf("  go:       %s\n", info.GoVersion)
		pterm.Printf("  platform: %s\n", info.Platform)
		return nil
	},
}

func init() {
	VersionCmd.Flags().Bool("json", false, "Output version info as JSON")
}
