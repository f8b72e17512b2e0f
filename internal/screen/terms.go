package screen

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const termsText = `keytrainer is provided as is, without warranty of any kind.

Nothing you type leaves this terminal. Keys are read from the terminal, shown
on the on-screen keyboard and forgotten when the program exits. Round
statistics are kept in memory and printed once when you quit.

Use of the program implies acceptance of these terms.`

// Terms shows static text in a scrollable viewport.
type Terms struct {
	viewport viewport.Model
}

// NewTerms builds the terms screen.
func NewTerms() *Terms {
	vp := viewport.New(0, 0)
	vp.SetContent(mutedStyle.Render(termsText))
	return &Terms{viewport: vp}
}

// Init implements Screen.
func (t *Terms) Init() tea.Cmd {
	return nil
}

// Update implements Screen.
func (t *Terms) Update(msg tea.Msg) (Screen, tea.Cmd) {
	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	return t, cmd
}

// View implements Screen.
func (t *Terms) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Terms and conditions"), "", t.viewport.View())
}

// Mount implements Screen.
func (t *Terms) Mount() {}

// Unmount implements Screen.
func (t *Terms) Unmount() {}

// SetSize implements Screen.
func (t *Terms) SetSize(width, height int) {
	t.viewport.Width = width
	t.viewport.Height = max(height-2, 1)
}

// Click implements Screen.
func (t *Terms) Click(int, int) tea.Cmd {
	return nil
}

// Capturing implements Screen.
func (t *Terms) Capturing() bool {
	return false
}

// ShortHelp implements Screen.
func (t *Terms) ShortHelp() []key.Binding {
	return []key.Binding{termsKeyMap.Scroll}
}
