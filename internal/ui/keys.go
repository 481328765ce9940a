package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"palette/internal/domain"
)

// KeyMap holds the palette key bindings
type KeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	NextGroup key.Binding
	PrevGroup key.Binding
	First     key.Binding
	Last      key.Binding
	Activate  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard bindings. vim adds ctrl+n/j and ctrl+p/k.
func DefaultKeyMap(vim bool) KeyMap {
	next := []string{"down"}
	prev := []string{"up"}
	if vim {
		next = append(next, "ctrl+n", "ctrl+j")
		prev = append(prev, "ctrl+p", "ctrl+k")
	}
	return KeyMap{
		Next:      key.NewBinding(key.WithKeys(next...), key.WithHelp("↓", "next")),
		Prev:      key.NewBinding(key.WithKeys(prev...), key.WithHelp("↑", "previous")),
		NextGroup: key.NewBinding(key.WithKeys("alt+down"), key.WithHelp("alt+↓", "next group")),
		PrevGroup: key.NewBinding(key.WithKeys("alt+up"), key.WithHelp("alt+↑", "previous group")),
		First:     key.NewBinding(key.WithKeys("home", "ctrl+up"), key.WithHelp("home", "first")),
		Last:      key.NewBinding(key.WithKeys("end", "ctrl+down"), key.WithHelp("end", "last")),
		Activate:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Help:      key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:      key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Activate, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.NextGroup, k.PrevGroup},
		{k.First, k.Last},
		{k.Activate, k.Help, k.Quit},
	}
}

// Intent decodes a key press into a navigation intent
func (k KeyMap) Intent(msg tea.KeyMsg) (domain.NavigateKind, bool) {
	switch {
	case key.Matches(msg, k.NextGroup):
		return domain.NavigateNextGroup, true
	case key.Matches(msg, k.PrevGroup):
		return domain.NavigatePrevGroup, true
	case key.Matches(msg, k.First):
		return domain.NavigateFirst, true
	case key.Matches(msg, k.Last):
		return domain.NavigateLast, true
	case key.Matches(msg, k.Next):
		return domain.NavigateNext, true
	case key.Matches(msg, k.Prev):
		return domain.NavigatePrev, true
	}
	return "", false
}
