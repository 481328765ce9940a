package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// RenderHelpContent renders the key reference shown in the pager
func RenderHelpContent(keys KeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("Palette Help"))
	help.WriteString("\n")

	sections := []struct {
		title    string
		bindings []keyLine
	}{
		{"Navigation", []keyLine{
			bindingLine(keys.Next), bindingLine(keys.Prev),
			bindingLine(keys.NextGroup), bindingLine(keys.PrevGroup),
			bindingLine(keys.First), bindingLine(keys.Last),
		}},
		{"Actions", []keyLine{
			bindingLine(keys.Activate), bindingLine(keys.Help), bindingLine(keys.Quit),
		}},
	}
	for _, s := range sections {
		help.WriteString(sectionStyle.Render(s.title))
		help.WriteString("\n")
		for _, l := range s.bindings {
			help.WriteString(fmt.Sprintf("  %-24s %s\n", keyStyle.Render(l.keys), descStyle.Render(l.desc)))
		}
		help.WriteString("\n")
	}

	filterStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString(filterStyle.Render("  Type to filter. Matches are fuzzy and ignore case; keywords count too."))
	return help.String()
}

type keyLine struct {
	keys string
	desc string
}

func bindingLine(b key.Binding) keyLine {
	return keyLine{keys: strings.Join(b.Keys(), ", "), desc: b.Help().Desc}
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
