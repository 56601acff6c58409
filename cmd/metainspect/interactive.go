package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/cil-metadata/typesys"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	tokenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectKind modelState = iota
	stateInputBlob
	stateShowResult
	stateBrowseRegistry
)

// menu entries: the six blob kinds plus the registry browser.
var menuEntries = []struct {
	kind  string
	label string
}{
	{"method", "Method signature (MethodDefSig / MethodRefSig)"},
	{"field", "Field signature (FieldSig)"},
	{"property", "Property signature (PropertySig)"},
	{"locals", "Local variables (LocalVarSig)"},
	{"typespec", "Type specification (TypeSpec)"},
	{"methodspec", "Method specification (MethodSpec)"},
	{"", "Browse type registry"},
}

type interactiveModel struct {
	err      error
	registry *typesys.Registry
	input    textinput.Model
	result   string
	selected int
	scroll   int
	state    modelState
}

type registryMsg struct {
	err error
	reg *typesys.Registry
}

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "hex bytes, e.g. 20 01 08 0E"
	ti.Prompt = "blob: "
	ti.Width = 60

	return &interactiveModel{
		input: ti,
		state: stateSelectKind,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadRegistry
}

func (m *interactiveModel) loadRegistry() tea.Msg {
	reg, err := typesys.NewRegistry()
	return registryMsg{reg: reg, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateInputBlob || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case "up", "k":
			switch m.state {
			case stateSelectKind:
				if m.selected > 0 {
					m.selected--
				}
			case stateBrowseRegistry:
				if m.scroll > 0 {
					m.scroll--
				}
			}

		case "down", "j":
			switch m.state {
			case stateSelectKind:
				if m.selected < len(menuEntries)-1 {
					m.selected++
				}
			case stateBrowseRegistry:
				if m.registry != nil && m.scroll < m.registry.Len()-1 {
					m.scroll++
				}
			}

		case "enter":
			switch m.state {
			case stateSelectKind:
				if menuEntries[m.selected].kind == "" {
					m.scroll = 0
					m.state = stateBrowseRegistry
					break
				}
				m.input.SetValue("")
				m.input.Focus()
				m.state = stateInputBlob

			case stateInputBlob:
				m.decode()
				m.state = stateShowResult

			case stateShowResult:
				m.state = stateSelectKind
				m.result = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateInputBlob, stateBrowseRegistry:
				m.state = stateSelectKind
			case stateShowResult:
				m.state = stateSelectKind
				m.result = ""
				m.err = nil
			}
		}

	case registryMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.registry = msg.reg
	}

	if m.state == stateInputBlob {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) decode() {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, m.input.Value())

	data, err := hex.DecodeString(cleaned)
	if err != nil {
		m.err = fmt.Errorf("parse hex: %w", err)
		return
	}

	m.result, m.err = decodeBlob(data, menuEntries[m.selected].kind)
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("CIL Metadata Inspector"))
	b.WriteString("\n\n")

	if m.err != nil && m.state != stateShowResult {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	switch m.state {
	case stateSelectKind:
		b.WriteString("Select a blob kind to decode:\n\n")
		for i, entry := range menuEntries {
			line := "  " + entry.label
			if i == m.selected {
				line = selectedStyle.Render("> " + entry.label)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stateInputBlob:
		b.WriteString(fmt.Sprintf("Decoding %s\n\n", kindStyle.Render(menuEntries[m.selected].kind)))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter decode • esc back"))

	case stateShowResult:
		b.WriteString(fmt.Sprintf("Result (%s):\n\n", kindStyle.Render(menuEntries[m.selected].kind)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))

	case stateBrowseRegistry:
		if m.registry == nil {
			b.WriteString("Loading registry...")
			break
		}
		all := m.registry.All()
		b.WriteString(fmt.Sprintf("Registry: %d types\n\n", len(all)))

		const window = 16
		start := m.scroll
		if start > len(all)-window {
			start = len(all) - window
		}
		if start < 0 {
			start = 0
		}
		end := start + window
		if end > len(all) {
			end = len(all)
		}
		for i := start; i < end; i++ {
			entity := all[i]
			line := fmt.Sprintf("%s  %-30s %s", tokenStyle.Render(entity.Token.String()), entity.FullName(), entity.Flavor())
			if b2 := entity.Base(); b2 != nil {
				line += " : " + b2.FullName()
			}
			if i == m.scroll {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))
	}

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
