package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/degreeplan/internal/cli/formatter"
)

type browseKeyMap struct {
	Quit    key.Binding
	Refresh key.Binding
	Top     key.Binding
	Bottom  key.Binding
}

func defaultBrowseKeys() browseKeyMap {
	return browseKeyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Top:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	}
}

// planLoadedMsg carries a freshly rendered plan, or the error loading it.
type planLoadedMsg struct {
	content string
	err     error
}

// browseModel is a scrollable, refreshable view of a rendered plan.
type browseModel struct {
	title   string
	load    func() (string, error)
	keys    browseKeyMap
	vp      viewport.Model
	ready   bool
	content string
	err     error
}

func newBrowseModel(title string, load func() (string, error)) browseModel {
	return browseModel{title: title, load: load, keys: defaultBrowseKeys()}
}

func (m browseModel) fetch() tea.Msg {
	content, err := m.load()
	return planLoadedMsg{content: content, err: err}
}

func (m browseModel) Init() tea.Cmd { return m.fetch }

const browseChrome = 2 // title and footer lines

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-browseChrome, 1)
		if !m.ready {
			m.vp = viewport.New(msg.Width, height)
			m.vp.SetContent(m.body())
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = height
		}
		return m, nil

	case planLoadedMsg:
		m.content, m.err = msg.content, msg.err
		if m.ready {
			m.vp.SetContent(m.body())
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.fetch
		case key.Matches(msg, m.keys.Top):
			m.vp.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.vp.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m browseModel) body() string {
	if m.err != nil {
		return RenderError(m.err)
	}
	if m.content == "" {
		return formatter.Dim("Loading plan…")
	}
	return m.content
}

func (m browseModel) View() string {
	if !m.ready {
		return formatter.Dim("Loading plan…")
	}
	footer := formatter.Dim(fmt.Sprintf("%s  %s · %s · %s · %s",
		scrollPosition(m.vp),
		m.keys.Quit.Help().Key+" "+m.keys.Quit.Help().Desc,
		m.keys.Refresh.Help().Key+" "+m.keys.Refresh.Help().Desc,
		m.keys.Top.Help().Key+" "+m.keys.Top.Help().Desc,
		m.keys.Bottom.Help().Key+" "+m.keys.Bottom.Help().Desc,
	))
	return formatter.StyleHeader.Render(m.title) + "\n" + m.vp.View() + "\n" + footer
}

func scrollPosition(vp viewport.Model) string {
	switch {
	case vp.AtTop():
		return "[TOP]"
	case vp.AtBottom():
		return "[END]"
	}
	return fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100))
}
