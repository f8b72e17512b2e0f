package input

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var got []string
	bus.Subscribe(func(ev Event) { got = append(got, "first:"+ev.Key) })
	bus.Subscribe(func(ev Event) { got = append(got, "second:"+ev.Key) })

	bus.Down("a")
	assert.Equal(t, []string{"first:a", "second:a"}, got)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0
	unsubscribe := bus.Subscribe(func(Event) { calls++ })
	require.Equal(t, 1, bus.Len())

	unsubscribe()
	unsubscribe()
	bus.Down("a")

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, bus.Len())
}

func TestBusUnsubscribeDuringPublish(t *testing.T) {
	bus := NewBus()
	var unsubscribe func()
	calls := 0
	unsubscribe = bus.Subscribe(func(Event) {
		calls++
		unsubscribe()
	})
	other := 0
	bus.Subscribe(func(Event) { other++ })

	bus.Down("a")
	bus.Down("b")
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
}

func TestKeyNames(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []string
	}{
		{"lower rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, []string{"a"}},
		{"upper rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("A")}, []string{"A"}},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, []string{" "}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []string{"Enter"}},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, []string{"Tab"}},
		{"function", tea.KeyMsg{Type: tea.KeyF5}, []string{"F5"}},
		{"control chord", tea.KeyMsg{Type: tea.KeyCtrlR}, []string{"Control"}},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc"), Paste: true}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyNames(tt.msg))
		})
	}
}

func TestReleaserPublishesDownThenUp(t *testing.T) {
	bus := NewBus()
	var events []Event
	bus.Subscribe(func(ev Event) { events = append(events, ev) })
	r := NewReleaser(bus, 100*time.Millisecond)

	cmd := r.Press("a")
	require.NotNil(t, cmd)
	require.Equal(t, []Event{{Kind: KeyDown, Key: "a"}}, events)
	assert.True(t, r.Held("a"))

	msg, ok := cmd().(ReleaseMsg)
	require.True(t, ok)
	r.Release(msg)

	assert.Equal(t, []Event{{Kind: KeyDown, Key: "a"}, {Kind: KeyUp, Key: "a"}}, events)
	assert.False(t, r.Held("a"))
}

func TestReleaserRepeatExtendsHold(t *testing.T) {
	bus := NewBus()
	ups := 0
	bus.Subscribe(func(ev Event) {
		if ev.Kind == KeyUp {
			ups++
		}
	})
	r := NewReleaser(bus, time.Millisecond)

	first := r.Press("a")().(ReleaseMsg)
	second := r.Press("a")().(ReleaseMsg)

	r.Release(first)
	assert.Equal(t, 0, ups)
	assert.True(t, r.Held("a"))

	r.Release(second)
	assert.Equal(t, 1, ups)
}

func TestReleaserSharesHoldAcrossCase(t *testing.T) {
	bus := NewBus()
	var ups []string
	bus.Subscribe(func(ev Event) {
		if ev.Kind == KeyUp {
			ups = append(ups, ev.Key)
		}
	})
	r := NewReleaser(bus, time.Millisecond)

	upper := r.Press("A")().(ReleaseMsg)
	lower := r.Press("a")().(ReleaseMsg)

	r.Release(upper)
	assert.Empty(t, ups)
	assert.True(t, r.Held("a"))
	assert.True(t, r.Held("A"))

	r.Release(lower)
	assert.Equal(t, []string{"a"}, ups)
	assert.False(t, r.Held("A"))
}

func TestReleaserZeroHold(t *testing.T) {
	bus := NewBus()
	var kinds []Kind
	bus.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })
	r := NewReleaser(bus, 0)

	assert.Nil(t, r.Press("a"))
	assert.Equal(t, []Kind{KeyDown, KeyUp}, kinds)
}

func TestReleaseAll(t *testing.T) {
	bus := NewBus()
	var ups []string
	bus.Subscribe(func(ev Event) {
		if ev.Kind == KeyUp {
			ups = append(ups, ev.Key)
		}
	})
	r := NewReleaser(bus, time.Second)
	r.Press("a")
	r.Press("b")

	r.ReleaseAll()
	assert.ElementsMatch(t, []string{"a", "b"}, ups)
	assert.False(t, r.Held("a"))
}
