package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"palette/internal/config"
	"palette/internal/domain"
	"palette/internal/engine"
	"palette/internal/ui/views"
)

// reserved lines around the list: title, input, status, help and padding
const reservedLines = 9

// Model represents the UI state
type Model struct {
	engine   *engine.Engine
	input    textinput.Model
	keys     KeyMap
	help     help.Model
	renderer *views.Renderer
	logger   *zap.Logger

	headings map[string]string
	total    int
	showHelp bool

	// derived from the last published snapshot
	snapshot domain.Snapshot
	lines    []views.Line

	width      int
	height     int
	maxHeight  int
	listHeight int
	offset     int

	picked      string
	quitting    bool
	status      string
	unsubscribe func()

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a palette over the catalog. Extra engine options (scorer,
// filtering, loop) are applied on top of the ones the UI needs.
func NewModel(catalog config.Catalog, settings config.UISettings, logger *zap.Logger, opts ...engine.Option) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	if settings.Height <= 0 {
		settings.Height = config.DefaultConfig().UI.Height
	}

	ti := textinput.New()
	ti.Prompt = settings.Prompt
	ti.Placeholder = "Type a command or search..."
	ti.Focus()

	m := &Model{
		input:      ti,
		keys:       DefaultKeyMap(settings.VimKeys),
		help:       help.New(),
		renderer:   views.NewRenderer(),
		logger:     logger,
		headings:   catalog.Headings(),
		total:      catalog.Len(),
		showHelp:   settings.ShowHelp,
		maxHeight:  settings.Height,
		listHeight: settings.Height,
	}
	m.input.PromptStyle = m.renderer.Styles().Prompt

	opts = append(opts, engine.WithLogger(logger), engine.WithSignalHandler(m.handleSignal))
	m.engine = engine.New(opts...)
	m.unsubscribe = m.engine.Subscribe(m.onSnapshot)
	catalog.Register(m.engine, nil)
	m.engine.Flush()

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Engine exposes the palette engine
func (m *Model) Engine() *engine.Engine {
	return m.engine
}

// Snapshot returns the state the view is rendering
func (m *Model) Snapshot() domain.Snapshot {
	return m.snapshot
}

// Picked returns the activated value, if the user chose one
func (m *Model) Picked() (string, bool) {
	return m.picked, m.picked != ""
}

// Close detaches the model from the engine and tears the engine down
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.engine.Close()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages. Every message ends a pass, so pending engine work is
// flushed before the next render.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.engine.Flush()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - len(m.input.Prompt) - 6
		m.updateListHeight()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case helpPagerMsg:
		if msg.err != nil {
			m.logger.Warn("Help pager failed", zap.Error(msg.err))
			m.status = "help unavailable"
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Activate):
		ev, ok := m.engine.Activate()
		if !ok {
			return m, nil
		}
		m.logger.Debug("Item activated", zap.String("item", ev.ItemID), zap.String("value", ev.Value))
		m.picked = ev.Value
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		return m, m.showHelpPager()
	}

	if kind, ok := m.keys.Intent(msg); ok {
		m.engine.Navigate(kind)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.engine.SetQuery(m.input.Value())
	return m, cmd
}

func (m *Model) showHelpPager() tea.Cmd {
	if m.program == nil {
		m.status = "help unavailable"
		return nil
	}
	content := RenderHelpContent(m.keys)
	ops := NewHelpOps(m.program)
	return func() tea.Msg {
		return helpPagerMsg{err: ops.ShowHelpInPager(content)}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	state := views.ViewState{
		Width:        m.width,
		Input:        m.input.View(),
		Query:        m.snapshot.Query(),
		Lines:        m.lines,
		Offset:       m.offset,
		ListHeight:   m.listHeight,
		VisibleCount: m.snapshot.VisibleCount(),
		Total:        m.total,
		StatusText:   m.status,
	}
	if m.showHelp {
		state.Help = m.help.View(m.keys)
	}
	return m.renderer.Render(state)
}

func (m *Model) onSnapshot(s domain.Snapshot) {
	m.snapshot = s
	m.lines = views.Layout(s.Rows(), m.headings)
	m.clampOffset()
}

// handleSignal reacts to engine signals. Scroll intents arrive after the
// snapshot they refer to has been published.
func (m *Model) handleSignal(ev domain.DomainEvent) {
	switch ev := ev.(type) {
	case domain.ScrollIntentEvent:
		idx, ok := views.IndexOf(m.lines, ev.ItemID)
		if !ok {
			return
		}
		first := idx
		if ev.FirstInGroup && idx > 0 {
			first = idx - 1
		}
		m.offset = views.ScrollInto(m.offset, m.listHeight, first, idx)
	case domain.ItemActivatedEvent:
		m.status = fmt.Sprintf("selected %s", ev.Value)
	}
}

// updateListHeight fits the list between the fixed chrome and the configured maximum
func (m *Model) updateListHeight() {
	h := m.maxHeight
	if m.height > 0 && m.height-reservedLines < h {
		h = m.height - reservedLines
	}
	if h < 1 {
		h = 1
	}
	m.listHeight = h
	m.clampOffset()
	if idx, ok := m.selectedLine(); ok {
		m.offset = views.ScrollInto(m.offset, m.listHeight, idx, idx)
	}
}

func (m *Model) selectedLine() (int, bool) {
	row, ok := m.snapshot.Selected()
	if !ok {
		return 0, false
	}
	return views.IndexOf(m.lines, row.ID)
}

func (m *Model) clampOffset() {
	maxOffset := len(m.lines) - m.listHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
