package screen

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keytrainer/internal/router"
)

type routeItem struct {
	route router.Route
}

func (i routeItem) Title() string { return i.route.Title }

func (i routeItem) Description() string {
	if i.route.Charset != "" {
		return i.route.Path + "  " + i.route.Charset
	}
	return i.route.Path
}

func (i routeItem) FilterValue() string { return i.route.Title }

// Home lists every route except itself.
type Home struct {
	list list.Model
}

// NewHome builds the menu from the route table.
func NewHome() *Home {
	var items []list.Item
	for _, r := range router.Routes() {
		if r.Screen == router.ScreenHome {
			continue
		}
		items = append(items, routeItem{route: r})
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "keytrainer"
	l.Styles.Title = titleStyle
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	return &Home{list: l}
}

// Init implements Screen.
func (h *Home) Init() tea.Cmd {
	return nil
}

// Update implements Screen.
func (h *Home) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, homeKeyMap.Open) {
		if path, ok := h.Selected(); ok {
			return h, Navigate(path)
		}
		return h, nil
	}
	var cmd tea.Cmd
	h.list, cmd = h.list.Update(msg)
	return h, cmd
}

// Selected returns the path of the highlighted route.
func (h *Home) Selected() (string, bool) {
	item, ok := h.list.SelectedItem().(routeItem)
	if !ok {
		return "", false
	}
	return item.route.Path, true
}

// View implements Screen.
func (h *Home) View() string {
	return h.list.View()
}

// Mount implements Screen.
func (h *Home) Mount() {}

// Unmount implements Screen.
func (h *Home) Unmount() {}

// SetSize implements Screen.
func (h *Home) SetSize(width, height int) {
	h.list.SetSize(width, height)
}

// Click opens nothing; the menu is keyboard driven.
func (h *Home) Click(int, int) tea.Cmd {
	return nil
}

// Capturing implements Screen.
func (h *Home) Capturing() bool {
	return false
}

// ShortHelp implements Screen.
func (h *Home) ShortHelp() []key.Binding {
	return []key.Binding{homeKeyMap.Move, homeKeyMap.Open}
}
