package report

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	browserBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))
)

// RenderFunc renders the report body for a terminal width
type RenderFunc func(width int) string

type browserModel struct {
	title    string
	render   RenderFunc
	viewport viewport.Model
	ready    bool
	wantQuit bool
}

func newBrowserModel(title string, render RenderFunc) browserModel {
	return browserModel{title: title, render: render}
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// border and status bar
		width, height := msg.Width-2, msg.Height-3
		if width < 20 {
			width = 20
		}
		if height < 3 {
			height = 3
		}
		if !m.ready {
			m.viewport = viewport.New(width, height)
			m.ready = true
		} else {
			m.viewport.Width = width
			m.viewport.Height = height
		}
		m.viewport.SetContent(m.render(width))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.wantQuit = true
			return m, tea.Quit
		case "esc", "b", "backspace":
			return m, tea.Quit
		}
	}

	if !m.ready {
		return m, nil
	}

	// Forward other keys (pgup/pgdn/home/end) to the viewport.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m browserModel) View() string {
	if !m.ready {
		return "Loading report..."
	}

	status := statusBarStyle.Width(m.viewport.Width + 2).Render(
		fmt.Sprintf("%s  %3.f%%  ↑/↓ scroll  b back  q quit", m.title, m.viewport.ScrollPercent()*100))
	return lipgloss.JoinVertical(lipgloss.Left, browserBorderStyle.Render(m.viewport.View()), status)
}

// RunBrowser shows the rendered report full screen in a scrollable viewport.
// It returns true when the user asked to quit rather than go back.
func RunBrowser(title string, render RenderFunc) (bool, error) {
	p := tea.NewProgram(newBrowserModel(title, render), tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return false, err
	}
	return result.(browserModel).wantQuit, nil
}
