// Package app provides the root Bubble Tea model that owns the router.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keytrainer/internal/generator"
	"github.com/verte-zerg/keytrainer/internal/input"
	"github.com/verte-zerg/keytrainer/internal/layout"
	"github.com/verte-zerg/keytrainer/internal/logging"
	"github.com/verte-zerg/keytrainer/internal/model"
	"github.com/verte-zerg/keytrainer/internal/router"
	"github.com/verte-zerg/keytrainer/internal/screen"
	"github.com/verte-zerg/keytrainer/internal/stats"
)

type keyMap struct {
	Quit key.Binding
	Back key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "home"),
	),
}

// Model routes terminal input to the active screen. Key messages are
// published on the input bus as key-down events, and a key-up follows after
// the configured hold.
type Model struct {
	config   model.Config
	layout   layout.Layout
	words    []string
	gen      *generator.Generator
	bus      *input.Bus
	releaser *input.Releaser
	tracker  *stats.Tracker
	log      *slog.Logger

	route  router.Route
	screen screen.Screen
	help   help.Model

	width  int
	height int
}

// New builds the app on the route named in cfg. words feeds the practice
// screens and may be nil.
func New(cfg model.Config, l layout.Layout, words []string, gen *generator.Generator) (*Model, error) {
	start := cfg.Route
	if start == "" {
		start = "/"
	}
	route, err := router.Resolve(start)
	if err != nil {
		return nil, fmt.Errorf("failed to open start route: %w", err)
	}
	bus := input.NewBus()
	m := &Model{
		config:   cfg,
		layout:   l,
		words:    words,
		gen:      gen,
		bus:      bus,
		releaser: input.NewReleaser(bus, time.Duration(cfg.Keyboard.ReleaseMs)*time.Millisecond),
		tracker:  stats.NewTracker(),
		log:      logging.For("app"),
		help:     help.New(),
	}
	m.open(route)
	return m, nil
}

// Tracker returns the rounds recorded during the run.
func (m *Model) Tracker() *stats.Tracker {
	return m.tracker
}

// Route returns the active route.
func (m *Model) Route() router.Route {
	return m.route
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.screen.Init()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.screen.SetSize(m.width, m.contentHeight())
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m, m.screen.Click(msg.X, msg.Y)
		}
		return m, nil
	case input.ReleaseMsg:
		m.releaser.Release(msg)
		return m, nil
	case screen.NavigateMsg:
		return m, m.navigate(msg.Path)
	default:
		var cmd tea.Cmd
		m.screen, cmd = m.screen.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.Quit) {
		m.releaser.ReleaseAll()
		return tea.Quit
	}
	if m.screen.Capturing() {
		var cmd tea.Cmd
		m.screen, cmd = m.screen.Update(msg)
		return cmd
	}
	if key.Matches(msg, keys.Back) && m.route.Screen != router.ScreenHome {
		return m.navigate("/")
	}
	var cmds []tea.Cmd
	for _, name := range input.KeyNames(msg) {
		cmds = append(cmds, m.releaser.Press(name))
	}
	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (m *Model) navigate(path string) tea.Cmd {
	ctx := logging.AppendCtx(context.Background(), slog.String("path", path))
	route, err := router.Resolve(path)
	if err != nil {
		m.log.WarnContext(ctx, "navigation ignored", "err", err)
		return nil
	}
	if route.Path == m.route.Path {
		return nil
	}
	m.log.InfoContext(ctx, "navigate", "from", m.route.Path, "to", route.Path)
	m.releaser.ReleaseAll()
	m.screen.Unmount()
	m.open(route)
	return m.screen.Init()
}

func (m *Model) open(route router.Route) {
	m.route = route
	m.screen = m.build(route)
	if m.width > 0 {
		m.screen.SetSize(m.width, m.contentHeight())
	}
	m.screen.Mount()
}

func (m *Model) build(route router.Route) screen.Screen {
	switch route.Screen {
	case router.ScreenGame:
		return screen.NewGame(m.config.Game, m.layout, m.bus, m.gen)
	case router.ScreenPractice:
		return screen.NewPractice(route, m.config.Practice, m.layout, m.bus, m.gen, m.tracker, m.words)
	case router.ScreenTerms:
		return screen.NewTerms()
	default:
		return screen.NewHome()
	}
}

func (m *Model) contentHeight() int {
	return max(m.height-2, 1)
}

// View implements tea.Model.
func (m *Model) View() string {
	bindings := append(m.screen.ShortHelp(), keys.Back, keys.Quit)
	if m.route.Screen == router.ScreenHome {
		bindings = append(m.screen.ShortHelp(), keys.Quit)
	}
	return strings.Join([]string{m.screen.View(), "", m.help.ShortHelpView(bindings)}, "\n")
}
