package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/hostbind/property"
	"github.com/wippyai/hostbind/value"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	valueStyle = lipgloss.NewStyle().
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
	stateSelect modelState = iota
	stateSet
	stateHas
	stateResult
)

type inspectorModel struct {
	s        *session
	keys     []string
	inputs   []textinput.Model
	result   string
	failed   bool
	selected int
	focusIdx int
	state    modelState
}

func newInspectorModel(s *session) *inspectorModel {
	m := &inspectorModel{s: s, state: stateSelect}
	m.refresh()
	return m
}

func (m *inspectorModel) refresh() {
	m.keys = m.s.rt.Keys(m.s.global)
	if m.selected >= len(m.keys) {
		m.selected = max(len(m.keys)-1, 0)
	}
}

func (m *inspectorModel) Init() tea.Cmd {
	return nil
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.state == stateSet || m.state == stateHas {
		switch key.String() {
		case "enter":
			m.submit()
			return m, nil
		case "esc":
			m.state = stateSelect
			m.inputs = nil
			return m, nil
		case "tab":
			if len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}
			return m, nil
		}
		return m.updateInputs(msg)
	}

	switch key.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.state == stateSelect && m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.state == stateSelect && m.selected < len(m.keys)-1 {
			m.selected++
		}

	case "enter":
		switch m.state {
		case stateSelect:
			if len(m.keys) > 0 {
				m.get(m.keys[m.selected])
			}
		case stateResult:
			m.state = stateSelect
		}

	case "s":
		if m.state == stateSelect {
			name := ""
			if len(m.keys) > 0 {
				name = m.keys[m.selected]
			}
			m.prepareInputs(stateSet, name, "name", "value")
		}

	case "h":
		if m.state == stateSelect {
			m.prepareInputs(stateHas, "", "name")
		}

	case "esc":
		if m.state == stateResult {
			m.state = stateSelect
		}
	}

	return m, nil
}

func (m *inspectorModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state != stateSet && m.state != stateHas {
		return m, nil
	}
	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *inspectorModel) prepareInputs(state modelState, name string, prompts ...string) {
	m.inputs = make([]textinput.Model, len(prompts))
	for i, p := range prompts {
		ti := textinput.New()
		ti.Prompt = p + ": "
		ti.Width = 40
		if i == 0 {
			ti.SetValue(name)
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
	m.state = state
}

func (m *inspectorModel) submit() {
	name := m.inputs[0].Value()
	switch m.state {
	case stateSet:
		m.set(name, m.inputs[1].Value())
	case stateHas:
		m.show(fmt.Sprintf("has %s: %t", name, property.Has(m.s.rt, m.s.global, name)), false)
	}
	m.inputs = nil
}

func (m *inspectorModel) get(name string) {
	h := property.Get(m.s.rt, m.s.global, name)
	defer m.s.rt.Release(h)
	m.show(name+" = "+m.s.rt.Describe(h), m.s.rt.IsException(h))
}

func (m *inspectorModel) set(name, text string) {
	rt := m.s.rt
	v := parseValue(rt, text)
	defer rt.Release(v)

	res := property.Set(rt, m.s.global, name, v)
	defer rt.Release(res)

	if value.Classify(rt, res).Failed() {
		m.show("set "+name+": "+rt.Describe(res), true)
		return
	}
	m.refresh()
	m.show(name+" = "+rt.Describe(v), false)
}

func (m *inspectorModel) show(text string, failed bool) {
	m.result = text
	m.failed = failed
	m.state = stateResult
}

// parseValue reads a literal typed into the inspector: true, false,
// undefined, a number, or otherwise a string.
func parseValue(rt value.API, text string) value.Handle {
	switch text {
	case "true":
		return rt.Boolean(true)
	case "false":
		return rt.Boolean(false)
	case "undefined":
		return rt.Undefined()
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return rt.Number(f)
	}
	if unq, err := strconv.Unquote(text); err == nil {
		return rt.String(unq)
	}
	return rt.String(text)
}

func (m *inspectorModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Property Inspector"))
	b.WriteString(" ")
	b.WriteString(m.s.bindings.Dir)
	b.WriteString("\n\n")

	if m.s.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Registration stopped at %q: %s", m.s.failed, m.s.failure)))
		b.WriteString("\n\n")
	}

	switch m.state {
	case stateSelect:
		b.WriteString("Global properties:\n\n")
		for i, k := range m.keys {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + k))
			} else {
				b.WriteString("  " + nameStyle.Render(k))
			}
			b.WriteString(" = ")
			b.WriteString(valueStyle.Render(m.describe(k)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter get • s set • h has • q quit"))

	case stateSet, stateHas:
		title := "Set property"
		if m.state == stateHas {
			title = "Check property"
		}
		b.WriteString(title + "\n\n")
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter apply • esc back"))

	case stateResult:
		if m.failed {
			b.WriteString(errorStyle.Render(m.result))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *inspectorModel) describe(name string) string {
	h := property.Get(m.s.rt, m.s.global, name)
	defer m.s.rt.Release(h)
	return m.s.rt.Describe(h)
}

func runInteractive(s *session) error {
	p := tea.NewProgram(newInspectorModel(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
