package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"palette/internal/ui"
)

// ErrNothingPicked is returned by run when the palette closes without a choice
var ErrNothingPicked = errors.New("nothing selected")

// RunCmd returns the interactive command
func RunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the interactive palette",
		Long: `Open the palette in the terminal. The chosen value is printed to stdout,
so the command composes with shell pipelines. Exits with status 1 when
nothing was chosen.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			opts, err := engineOptions(cfg)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.Logging, "none")
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			m := ui.NewModel(cfg.Catalog, cfg.UI, log, opts...)
			defer m.Close()

			// The UI draws on stderr so stdout only carries the result
			p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
			m.SetProgram(p)

			log.Info("Starting UI", zap.Int("items", cfg.Catalog.Len()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running program: %w", err)
			}

			picked, ok := m.Picked()
			if !ok {
				log.Info("UI exited without a choice")
				return ErrNothingPicked
			}
			fmt.Fprintln(cmd.OutOrStdout(), picked)
			return nil
		},
	}
}
