package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/skyfly/aircraftdb/config"
	"github.com/skyfly/aircraftdb/display"
	"github.com/skyfly/aircraftdb/errors"
)

// ConfigCmd manages the aircraftdb configuration file.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage aircraftdb configuration.

Configuration merges, in order: built-in defaults, the user file
(~/.skyfly/config.toml), a project-local aircraftdb.toml, and SKYFLY_*
environment variables.

Examples:
  aircraftdb config show    # Show the effective configuration
  aircraftdb config init    # Write a commented starter file`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented starter configuration file",
	RunE:  runConfigInit,
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
	configShowCmd.Flags().Bool("json", false, "Output configuration as JSON")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(config.GetConfigSummary())
	}

	introspection, err := config.GetConfigIntrospection()
	if err != nil {
		return errors.Wrap(err, "failed to introspect configuration")
	}
	for _, setting := range introspection.Settings {
		pterm.Printf("%-40s %-20v %s\n", setting.Key, setting.Value, pterm.Gray(setting.Source))
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.UserConfigPath()
	if err := config.WriteDefault(path); err != nil {
		return errors.Wrap(err, "failed to write configuration file")
	}
	pterm.Success.Printf("Wrote %s\n", path)
	return nil
}
