// Package screen holds the screens the router can open.
package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen is one routable view. Screens are mounted before they receive
// messages and unmounted before they are replaced.
type Screen interface {
	Init() tea.Cmd
	Update(tea.Msg) (Screen, tea.Cmd)
	View() string

	Mount()
	Unmount()
	SetSize(width, height int)
	// Click handles a left click at x, y relative to the top-left corner
	// of View.
	Click(x, y int) tea.Cmd
	// Capturing reports whether raw key messages belong to the screen
	// alone, such as while a text field or list has focus.
	Capturing() bool
	ShortHelp() []key.Binding
}

// NavigateMsg asks the app to open Path.
type NavigateMsg struct {
	Path string
}

// Navigate returns a command that opens path.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Path: path}
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// frame lays out a typing screen top to bottom and remembers where the
// stream and the keyboard start so clicks can be routed to them.
type frame struct {
	streamTop   int
	keyboardTop int
}

func (f *frame) render(title, streamView, keyboardView, footer string) string {
	parts := []string{titleStyle.Render(title), ""}
	f.streamTop = len(parts)
	parts = append(parts, streamView, "")
	f.keyboardTop = f.streamTop + lipgloss.Height(streamView) + 1
	parts = append(parts, keyboardView)
	if footer != "" {
		parts = append(parts, "", footerStyle.Render(footer))
	}
	return strings.Join(parts, "\n")
}

// route sends a click to the stream or the keyboard depending on y.
func (f *frame) route(x, y int, stream, keyboard func(x, y int) bool) {
	if y >= f.keyboardTop {
		keyboard(x, y-f.keyboardTop)
		return
	}
	if y >= f.streamTop {
		stream(x, y-f.streamTop)
	}
}

// singleRune reports whether key is one printable character, which is the
// only kind of key a typing screen scores.
func singleRune(key string) bool {
	return len([]rune(key)) == 1
}
