package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/hexfolio/internal/config"
)

var (
	configPath string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "hexfolio",
	Short: "Animated hexagon backdrops and project showcase",
	Long: `hexfolio renders procedural hexagon grids.

It can open a window with the live grid and the project showcase, write a
single poster frame to a PNG file, or serve poster frames over HTTP.

Settings come from an optional YAML preset (--config), a .env file and
HEXFOLIO_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML preset")
}
