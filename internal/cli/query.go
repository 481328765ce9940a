package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"palette/internal/config"
	"palette/internal/domain"
)

// QueryCmd returns the query command
func QueryCmd() *cobra.Command {
	var (
		asJSON bool
		steps  []string
	)
	cmd := &cobra.Command{
		Use:   "query [text...]",
		Short: "Filter the catalog once and print the result",
		Long: `Filter the catalog with the given text and print the visible items in
display order. --nav replays navigation steps (next, prev, first, last,
nextGroup, prevGroup) before printing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			e, err := newEngine(cfg)
			if err != nil {
				return err
			}
			defer e.Close()

			e.SetQuery(strings.Join(args, " "))
			e.Flush()
			for _, step := range steps {
				kind, ok := domain.ParseNavigateKind(step)
				if !ok {
					return fmt.Errorf("unknown navigation step %q", step)
				}
				e.Navigate(kind)
				e.Flush()
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(e.Snapshot())
			}
			printSnapshot(cmd.OutOrStdout(), e.Snapshot(), cfg.Catalog)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the snapshot as JSON")
	cmd.Flags().StringSliceVar(&steps, "nav", nil, "Navigation steps to apply before printing")
	return cmd
}

// printSnapshot writes rows grouped under their headings, marking the selection
func printSnapshot(w io.Writer, snap domain.Snapshot, catalog config.Catalog) {
	if snap.Empty() {
		fmt.Fprintln(w, color.New(color.FgYellow).Sprint("No results found."))
		return
	}

	headings := catalog.Headings()
	heading := color.New(color.FgCyan, color.Bold)
	selected := color.New(color.FgGreen, color.Bold)
	disabled := color.New(color.FgHiBlack)

	group := ""
	for _, row := range snap.Rows() {
		if row.GroupID != group {
			group = row.GroupID
			if group != "" {
				title := headings[group]
				if title == "" {
					title = group
				}
				fmt.Fprintln(w, heading.Sprint(title))
			}
		}

		indent := ""
		if row.GroupID != "" {
			indent = "  "
		}
		switch {
		case row.Selected:
			fmt.Fprintf(w, "%s%s\n", indent, selected.Sprint("> "+row.Value))
		case row.Disabled:
			fmt.Fprintf(w, "%s  %s\n", indent, disabled.Sprint(row.Value+" (disabled)"))
		default:
			fmt.Fprintf(w, "%s  %s\n", indent, row.Value)
		}
	}
	fmt.Fprintf(w, "\n%d/%d items\n", snap.VisibleCount(), catalog.Len())
}
