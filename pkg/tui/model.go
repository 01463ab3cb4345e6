// Package tui is a thin terminal front end over the journal feature.
// All behavior lives in the reducers; this layer only translates key
// presses into actions and renders the resulting state.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/memoir/pkg/feature"
	fxeditor "tableflip.dev/memoir/pkg/feature/editor"
	"tableflip.dev/memoir/pkg/feature/journal"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeEdit
)

// Model is the journal browser.
type Model struct {
	deps  journal.Deps
	state journal.State

	mode   mode
	cursor int

	search  textinput.Model
	title   textinput.Model
	content textarea.Model

	width  int
	height int

	header   lipgloss.Style
	selected lipgloss.Style
	faint    lipgloss.Style
	errStyle lipgloss.Style
}

// New constructs the browser and loads the journal.
func New(deps journal.Deps) *Model {
	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/"

	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""

	content := textarea.New()
	content.Placeholder = "Write…"

	m := &Model{
		deps:     deps,
		state:    journal.New(),
		search:   search,
		title:    title,
		content:  content,
		header:   lipgloss.NewStyle().Bold(true).Underline(true),
		selected: lipgloss.NewStyle().Reverse(true),
		faint:    lipgloss.NewStyle().Faint(true),
		errStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
	m.state = m.drive(journal.Load{})
	return m
}

// Run starts the program in the alternate screen.
func Run(deps journal.Deps) error {
	p := tea.NewProgram(New(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// drive applies an action and its follow-ups synchronously. The
// reducers stay the single source of truth for every transition.
func (m *Model) drive(a feature.Action) journal.State {
	return feature.Drive(context.Background(), m.deps.Reduce, m.state, a)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.content.SetWidth(max(msg.Width-4, 20))
		m.content.SetHeight(max(msg.Height-8, 3))
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeEdit:
			return m.updateEdit(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.state.Filtered(time.Now())

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(entries)-1 {
			m.cursor++
		}

	case "/":
		m.mode = modeSearch
		m.search.SetValue(m.state.Query)
		return m, m.search.Focus()

	case "d":
		if m.cursor < len(entries) {
			m.state = m.drive(journal.Delete{ID: entries[m.cursor].ID})
			if m.cursor > 0 {
				m.cursor--
			}
		}

	case "n":
		m.state = m.drive(journal.NewEntryTapped{})
		return m.enterEditor()

	case "enter":
		if m.cursor < len(entries) {
			m.state = m.drive(journal.EntryTapped{ID: entries[m.cursor].ID})
			return m.enterEditor()
		}

	case "r":
		m.state = m.drive(journal.Load{})
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.mode = modeBrowse
		m.search.Blur()
		m.cursor = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.state = m.drive(journal.QueryChanged{Text: m.search.Value()})
	return m, cmd
}

func (m *Model) enterEditor() (tea.Model, tea.Cmd) {
	ed := m.state.Editor
	if ed == nil {
		return m, nil
	}
	m.mode = modeEdit
	m.title.SetValue(ed.Title)
	m.content.SetValue(ed.Content)
	return m, m.title.Focus()
}

func (m *Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.title.Blur()
		m.content.Blur()
		m.state = m.drive(journal.Editor{Action: fxeditor.CancelTapped{}})
		return m, nil

	case "ctrl+s":
		m.state = m.drive(journal.Editor{Action: fxeditor.TitleChanged{Text: m.title.Value()}})
		m.state = m.drive(journal.Editor{Action: fxeditor.ContentChanged{Text: m.content.Value()}})
		m.state = m.drive(journal.Editor{Action: fxeditor.SaveTapped{}})
		if m.state.Editor == nil {
			m.mode = modeBrowse
			m.title.Blur()
			m.content.Blur()
			m.cursor = 0
		}
		return m, nil

	case "tab":
		if m.title.Focused() {
			m.title.Blur()
			return m, m.content.Focus()
		}
		m.content.Blur()
		return m, m.title.Focus()
	}

	var cmd tea.Cmd
	if m.title.Focused() {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	if m.mode == modeEdit {
		return m.viewEditor(), nil
	}

	var b strings.Builder
	now := time.Now()

	b.WriteString(m.header.Render("memoir"))
	b.WriteString("\n\n")

	if m.state.Err != "" {
		b.WriteString(m.errStyle.Render(m.state.Err))
		b.WriteString("\n")
	}
	if m.mode == modeSearch {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	} else if m.state.Query != "" {
		b.WriteString(m.faint.Render("filter: " + m.state.Query))
		b.WriteString("\n")
	}

	entries := m.state.Filtered(now)
	if m.cursor >= len(entries) {
		m.cursor = max(len(entries)-1, 0)
	}

	switch {
	case m.state.Loading:
		b.WriteString(m.faint.Render("loading…"))
		b.WriteString("\n")
	case m.state.Count() == 0:
		b.WriteString(m.faint.Render("no entries yet, press n to write one"))
		b.WriteString("\n")
	case len(entries) == 0:
		b.WriteString(m.faint.Render("nothing matches the filter"))
		b.WriteString("\n")
	default:
		i := 0
		for _, section := range m.state.Sections(now) {
			b.WriteString(m.faint.Render(section.Label))
			b.WriteString("\n")
			for _, e := range section.Entries {
				glyph := " "
				if e.HasMood() {
					glyph = e.Mood.Symbol()
				}
				line := fmt.Sprintf(" %s %s", glyph, e.DisplayTitle())
				if i == m.cursor {
					line = m.selected.Render(line)
				}
				b.WriteString(line)
				b.WriteString("\n")
				i++
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(m.faint.Render("n new  enter edit  d delete  / search  r reload  q quit"))
	return b.String(), nil
}

func (m *Model) viewEditor() string {
	var b strings.Builder

	label := "New entry"
	if ed := m.state.Editor; ed != nil && ed.Mode == fxeditor.ModeEdit {
		label = "Edit entry"
	}
	b.WriteString(m.header.Render(label))
	b.WriteString("\n\n")
	b.WriteString(m.title.View())
	b.WriteString("\n\n")
	b.WriteString(m.content.View())
	b.WriteString("\n\n")
	if ed := m.state.Editor; ed != nil && ed.Err != "" {
		b.WriteString(m.errStyle.Render(ed.Err))
		b.WriteString("\n")
	}
	b.WriteString(m.faint.Render("ctrl+s save  tab switch field  esc cancel"))
	return b.String()
}
