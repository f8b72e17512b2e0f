package screen

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keytrainer/internal/generator"
	"github.com/verte-zerg/keytrainer/internal/input"
	"github.com/verte-zerg/keytrainer/internal/keyboard"
	"github.com/verte-zerg/keytrainer/internal/layout"
	"github.com/verte-zerg/keytrainer/internal/logging"
	"github.com/verte-zerg/keytrainer/internal/model"
	"github.com/verte-zerg/keytrainer/internal/stream"
)

const (
	defaultGameCharset = "abcdefghijklmnopqrstuvwxyz"
	defaultGameDelay   = 1.0
)

type gameTickMsg struct {
	gen int
}

// Game appends a random character to the stream every delay seconds. Typing
// the head character removes it; the game ends when the stream overflows.
type Game struct {
	cfg     model.GameConfig
	gen     *generator.Generator
	charset []rune
	log     *slog.Logger

	keyboard *keyboard.Widget
	stream   *stream.Widget
	frame    frame

	chars  []string
	over   bool
	delay  float64
	score  int
	misses int

	tickGen int
	restart bool
}

// NewGame builds the game screen listening to src.
func NewGame(cfg model.GameConfig, l layout.Layout, src input.Source, gen *generator.Generator) *Game {
	g := &Game{
		cfg:   cfg,
		gen:   gen,
		log:   logging.For("game"),
		delay: cfg.Delay,
	}
	g.charset = []rune(cfg.Charset)
	if len(g.charset) == 0 {
		g.charset = []rune(defaultGameCharset)
	}
	if !validDelay(g.delay) {
		g.delay = defaultGameDelay
	}
	g.keyboard = keyboard.New(l, src, g.onKeyPress)
	g.stream = stream.New(g.onReset, g.onDelayChange)
	return g
}

func validDelay(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// Init implements Screen.
func (g *Game) Init() tea.Cmd {
	return g.schedule()
}

func (g *Game) schedule() tea.Cmd {
	gen := g.tickGen
	d := time.Duration(g.delay * float64(time.Second))
	return tea.Tick(d, func(time.Time) tea.Msg {
		return gameTickMsg{gen: gen}
	})
}

// Update implements Screen.
func (g *Game) Update(msg tea.Msg) (Screen, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case gameTickMsg:
		if msg.gen != g.tickGen || g.over {
			return g, nil
		}
		g.advance()
		if !g.over {
			cmds = append(cmds, g.schedule())
		}
	case tea.KeyMsg:
		switch {
		case g.stream.DelayFocused():
			if key.Matches(msg, typingKeyMap.Blur) {
				g.stream.BlurDelay()
			} else {
				cmds = append(cmds, g.stream.Update(msg))
			}
		case key.Matches(msg, typingKeyMap.Reset):
			g.stream.Reset()
		case key.Matches(msg, typingKeyMap.Delay):
			cmds = append(cmds, g.stream.FocusDelay(g.delay))
		}
	default:
		cmds = append(cmds, g.stream.Update(msg))
	}
	cmds = append(cmds, g.takeRestart())
	return g, tea.Batch(cmds...)
}

func (g *Game) takeRestart() tea.Cmd {
	if !g.restart {
		return nil
	}
	g.restart = false
	return g.schedule()
}

func (g *Game) advance() {
	g.chars = append(g.chars, string(g.gen.Next(g.charset)))
	if len(g.chars) > g.cfg.Capacity {
		g.over = true
		g.log.Info("game over", "score", g.score, "misses", g.misses)
	}
}

func (g *Game) onKeyPress(raw string) {
	if g.over || !singleRune(raw) {
		return
	}
	if len(g.chars) > 0 && raw == g.chars[0] {
		g.chars = g.chars[1:]
		g.score++
		return
	}
	g.misses++
}

func (g *Game) onReset() {
	g.chars = nil
	g.over = false
	g.score = 0
	g.misses = 0
	g.tickGen++
	g.restart = true
}

func (g *Game) onDelayChange(v float64) {
	if !validDelay(v) {
		g.log.Warn("ignoring delay", "value", v)
		return
	}
	g.delay = v
	if !g.over {
		g.tickGen++
		g.restart = true
	}
}

// View implements Screen.
func (g *Game) View() string {
	props := stream.Props{
		Chars:    g.chars,
		GameOver: g.over,
		Delay:    g.delay,
		Cursor:   -1,
	}
	footer := fmt.Sprintf("Score %d  Misses %d  Stream %d/%d", g.score, g.misses, len(g.chars), g.cfg.Capacity)
	return g.frame.render("Game", g.stream.View(props), g.keyboard.View(), footer)
}

// Mount implements Screen.
func (g *Game) Mount() {
	g.keyboard.Mount()
}

// Unmount implements Screen.
func (g *Game) Unmount() {
	g.keyboard.Unmount()
	g.tickGen++
}

// SetSize implements Screen.
func (g *Game) SetSize(width, _ int) {
	g.stream.SetWidth(width)
}

// Click implements Screen.
func (g *Game) Click(x, y int) tea.Cmd {
	g.frame.route(x, y, g.stream.ClickAt, g.keyboard.ClickAt)
	return g.takeRestart()
}

// Capturing implements Screen.
func (g *Game) Capturing() bool {
	return g.stream.DelayFocused()
}

// ShortHelp implements Screen.
func (g *Game) ShortHelp() []key.Binding {
	if g.stream.DelayFocused() {
		return []key.Binding{typingKeyMap.Blur}
	}
	return []key.Binding{typingKeyMap.Reset, typingKeyMap.Delay}
}
