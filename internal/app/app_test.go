package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keytrainer/internal/generator"
	"github.com/verte-zerg/keytrainer/internal/input"
	"github.com/verte-zerg/keytrainer/internal/layout"
	"github.com/verte-zerg/keytrainer/internal/model"
	"github.com/verte-zerg/keytrainer/internal/router"
	"github.com/verte-zerg/keytrainer/internal/screen"
)

func testConfig(route string) model.Config {
	return model.Config{
		Route:    route,
		Keyboard: model.KeyboardConfig{ReleaseMs: 100},
		Game:     model.GameConfig{Delay: 1, Capacity: 10, Charset: "a"},
		Practice: model.PracticeConfig{Length: 4, Delay: 1},
	}
}

func newTestModel(t *testing.T, route string) *Model {
	t.Helper()
	m, err := New(testConfig(route), layout.Default, nil, generator.NewSeeded(3))
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func TestNewRejectsUnknownRoute(t *testing.T) {
	_, err := New(testConfig("/nope"), layout.Default, nil, generator.NewSeeded(1))
	require.ErrorIs(t, err, router.ErrUnknownRoute)
}

func TestNewDefaultsToHome(t *testing.T) {
	m := newTestModel(t, "")
	assert.Equal(t, router.ScreenHome, m.Route().Screen)
	assert.Equal(t, 0, m.bus.Len())
}

func TestNavigateSwapsSubscriptions(t *testing.T) {
	m := newTestModel(t, "/")
	m.Update(screen.NavigateMsg{Path: "/game"})
	assert.Equal(t, "/game", m.Route().Path)
	assert.Equal(t, 1, m.bus.Len())

	m.Update(screen.NavigateMsg{Path: "//little/"})
	assert.Equal(t, "/little", m.Route().Path)
	assert.Equal(t, 1, m.bus.Len())

	m.Update(screen.NavigateMsg{Path: "/missing"})
	assert.Equal(t, "/little", m.Route().Path)
}

func TestEscReturnsHome(t *testing.T) {
	m := newTestModel(t, "/ring")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, "/", m.Route().Path)
	assert.Equal(t, 0, m.bus.Len())
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t, "/game")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestKeyPublishesDownAndSchedulesRelease(t *testing.T) {
	m := newTestModel(t, "/little")
	var events []input.Event
	unsubscribe := m.bus.Subscribe(func(ev input.Event) { events = append(events, ev) })
	defer unsubscribe()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	require.NotNil(t, cmd)
	require.Len(t, events, 1)
	assert.Equal(t, input.Event{Kind: input.KeyDown, Key: "a"}, events[0])
	assert.True(t, m.releaser.Held("a"))

	m.releaser.ReleaseAll()
	require.Len(t, events, 2)
	assert.Equal(t, input.KeyUp, events[1].Kind)
}

func TestPracticeRoundsReachTracker(t *testing.T) {
	m := newTestModel(t, "/little")
	for i := 0; i < 200 && len(m.Tracker().Rounds()) == 0; i++ {
		for _, r := range "azq" {
			m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
	}
	require.NotEmpty(t, m.Tracker().Rounds())
	assert.Equal(t, "/little", m.Tracker().Rounds()[0].Route)
}

func TestViewShowsHelp(t *testing.T) {
	m := newTestModel(t, "/game")
	view := m.View()
	assert.Contains(t, view, "quit")
	assert.Contains(t, view, "home")
}
