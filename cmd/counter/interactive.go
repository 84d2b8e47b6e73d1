package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#90EE90"))

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

// counterInstance is the part of host.Instance the TUI drives.
type counterInstance interface {
	Increment(ctx context.Context) error
	GetCounter(ctx context.Context) (int32, error)
}

type keyMap struct {
	Increment key.Binding
	Get       key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Increment, k.Get, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newKeyMap() keyMap {
	return keyMap{
		Increment: key.NewBinding(
			key.WithKeys("+", "enter"),
			key.WithHelp("+/enter", "increment"),
		),
		Get: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "get_counter"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type interactiveModel struct {
	ctx      context.Context
	inst     counterInstance
	err      error
	filename string
	last     string
	keys     keyMap
	help     help.Model
	value    int32
	calls    int
	loaded   bool
}

type valueMsg struct {
	err   error
	call  string
	value int32
}

func newInteractiveModel(ctx context.Context, filename string, inst counterInstance) *interactiveModel {
	return &interactiveModel{
		ctx:      ctx,
		inst:     inst,
		filename: filename,
		keys:     newKeyMap(),
		help:     help.New(),
	}
}

func runInteractive(ctx context.Context, filename string, inst counterInstance) error {
	_, err := tea.NewProgram(newInteractiveModel(ctx, filename, inst)).Run()
	return err
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.read
}

func (m *interactiveModel) read() tea.Msg {
	v, err := m.inst.GetCounter(m.ctx)
	return valueMsg{call: "get_counter", value: v, err: err}
}

func (m *interactiveModel) increment() tea.Msg {
	if err := m.inst.Increment(m.ctx); err != nil {
		return valueMsg{call: "increment", err: err}
	}
	v, err := m.inst.GetCounter(m.ctx)
	return valueMsg{call: "increment", value: v, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Increment):
			return m, m.increment
		case key.Matches(msg, m.keys.Get):
			return m, m.read
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case valueMsg:
		m.last = msg.call
		m.err = msg.err
		if msg.err == nil {
			m.value = msg.value
			m.loaded = true
			if msg.call == "increment" {
				m.calls++
			}
		}
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Counter"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch {
	case m.loaded:
		b.WriteString("Value: ")
		b.WriteString(valueStyle.Render(fmt.Sprintf("%d", m.value)))
		b.WriteString("\n")
		if m.last != "" {
			b.WriteString(fmt.Sprintf("Last call: %s  (increments this session: %d)\n", funcStyle.Render(m.last), m.calls))
		}
	case m.err == nil:
		b.WriteString("Loading counter...\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
