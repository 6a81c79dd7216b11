package layout

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pagerModel is a minimal full-screen pager for listings or message
// output too long to fit one screen (spec.md's optional pager).
type pagerModel struct {
	vp   viewport.Model
	quit bool
}

var pagerHeaderStyle = lipgloss.NewStyle().Bold(true).Faint(true)

func (m pagerModel) Init() tea.Cmd { return nil }

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - 1
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m pagerModel) View() string {
	return pagerHeaderStyle.Render("-- q to quit --") + "\n" + m.vp.View()
}

// Page runs an interactive, scrollable pager over content, sized to
// width x height. It blocks until the user quits.
func Page(content string, width, height int) error {
	vp := viewport.New(width, height-1)
	vp.SetContent(content)
	m := pagerModel{vp: vp}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
