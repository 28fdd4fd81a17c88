// ABOUTME: config subcommand
// ABOUTME: Prints the effective or default configuration as YAML
package cli

import (
	"github.com/spf13/cobra"

	"github.com/harperreed/gibberlink-go/internal/config"
)

var showDefaults bool

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Print configuration as YAML",
	Example: `  gibberlink config --defaults > ~/.config/gibberlink/config.yaml`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg
		if showDefaults {
			d := config.Defaults()
			c = &d
		}
		out, err := c.YAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	configCmd.Flags().BoolVar(&showDefaults, "defaults", false, "print built-in defaults instead of the effective config")
	rootCmd.AddCommand(configCmd)
}
