package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"palette/internal/config"
)

// ErrConfigExists is returned by init when the target file is already there
var ErrConfigExists = errors.New("config file already exists")

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a sample config",
		Long: `Write a sample config with a small catalog to the given path,
or to the per-user config location when no path is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
			}

			if err := config.NewConfigServiceAt(path).Save(config.SampleConfig()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Config written to %s\n", color.New(color.FgGreen).Sprint("✓"), path)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintf(out, "  palette query --config %s set\n", path)
			fmt.Fprintf(out, "  palette run --config %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}
