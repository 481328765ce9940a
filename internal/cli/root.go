package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd returns the palette command tree
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "palette",
		Short:   "Command palette engine",
		Version: version,
		Long: `palette filters, ranks and navigates a catalog of commands.
Run it interactively, query it from scripts, or serve it over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (.toml, .yaml or .yml)")

	rootCmd.AddCommand(InitCmd())
	rootCmd.AddCommand(QueryCmd())
	rootCmd.AddCommand(RunCmd())
	rootCmd.AddCommand(ServeCmd())
	return rootCmd
}
