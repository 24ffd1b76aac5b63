package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/jclass/classfile"
	"github.com/wippyai/jclass/config"
	"github.com/wippyai/jclass/dump"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// chrome is the number of lines used around the viewport.
const chrome = 4

type interactiveModel struct {
	err      error
	cfg      *config.Config
	filename string
	title    string
	content  string
	lines    []string // uncolored dump, one entry per viewport line
	matches  []int
	view     viewport.Model
	search   textinput.Model
	match    int
	ready    bool
	loaded   bool
	editing  bool
}

type loadedMsg struct {
	err     error
	title   string
	content string
	plain   string
}

func newInteractiveModel(filename string, cfg *config.Config) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "search"
	ti.Width = 40
	return &interactiveModel{
		cfg:      cfg,
		filename: filename,
		search:   ti,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadClass
}

func (m *interactiveModel) loadClass() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	cf, err := classfile.Parse(data, m.cfg.DecodeOptions()...)
	if err != nil {
		return loadedMsg{err: err}
	}

	opts := m.cfg.DumpOptions(true)
	content, err := dump.Render(cf, opts)
	if err != nil {
		return loadedMsg{err: err}
	}
	opts.Color = false
	plain, err := dump.Render(cf, opts)
	if err != nil {
		return loadedMsg{err: err}
	}

	name, _ := cf.ClassName()
	return loadedMsg{
		title:   fmt.Sprintf("%s (version %s, %d bytes)", name, cf.Version(), len(data)),
		content: content,
		plain:   plain,
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - chrome
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.view = viewport.New(msg.Width, height)
			m.view.SetContent(m.content)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = height
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.title = msg.title
		m.lines = strings.Split(msg.plain, "\n")
		m.content = msg.content
		m.view.SetContent(msg.content)
		m.loaded = true

	case tea.KeyMsg:
		if m.editing {
			switch msg.String() {
			case "enter":
				m.editing = false
				m.search.Blur()
				m.find(m.search.Value())
				return m, nil
			case "esc":
				m.editing = false
				m.search.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "/":
			m.editing = true
			m.search.SetValue("")
			return m, m.search.Focus()
		case "n":
			m.step(1)
			return m, nil
		case "N":
			m.step(-1)
			return m, nil
		case "g":
			m.view.GotoTop()
			return m, nil
		case "G":
			m.view.GotoBottom()
			return m, nil
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// find records every line containing query and jumps to the first one.
func (m *interactiveModel) find(query string) {
	m.matches = m.matches[:0]
	m.match = 0
	if query == "" {
		return
	}
	q := strings.ToLower(query)
	for i, line := range m.lines {
		if strings.Contains(strings.ToLower(line), q) {
			m.matches = append(m.matches, i)
		}
	}
	if len(m.matches) > 0 {
		m.view.SetYOffset(m.matches[0])
	}
}

func (m *interactiveModel) step(dir int) {
	if len(m.matches) == 0 {
		return
	}
	m.match = (m.match + dir + len(m.matches)) % len(m.matches)
	m.view.SetYOffset(m.matches[m.match])
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.ready || !m.loaded {
		return "Loading class file..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("classdump"))
	b.WriteString(" ")
	b.WriteString(infoStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.view.View())
	b.WriteString("\n")

	switch {
	case m.editing:
		b.WriteString(m.search.View())
	case len(m.matches) > 0:
		b.WriteString(helpStyle.Render(fmt.Sprintf("match %d/%d • n/N next/prev • / search • q quit",
			m.match+1, len(m.matches))))
	case m.search.Value() != "":
		b.WriteString(errorStyle.Render(fmt.Sprintf("no match for %q", m.search.Value())))
		b.WriteString(helpStyle.Render(" • / search • q quit"))
	default:
		b.WriteString(helpStyle.Render(fmt.Sprintf("%3.f%% • ↑/↓ scroll • g/G top/bottom • / search • q quit",
			m.view.ScrollPercent()*100)))
	}
	return b.String()
}

func runInteractive(filename string, cfg *config.Config) error {
	p := tea.NewProgram(newInteractiveModel(filename, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
