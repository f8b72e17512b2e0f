package input

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keytrainer/internal/layout"
)

var keyNames = map[tea.KeyType]string{
	tea.KeySpace:     " ",
	tea.KeyEnter:     "Enter",
	tea.KeyTab:       "Tab",
	tea.KeyShiftTab:  "Tab",
	tea.KeyBackspace: "Backspace",
	tea.KeyCtrlH:     "Backspace",
	tea.KeyDelete:    "Delete",
	tea.KeyEsc:       "Escape",
	tea.KeyUp:        "ArrowUp",
	tea.KeyDown:      "ArrowDown",
	tea.KeyLeft:      "ArrowLeft",
	tea.KeyRight:     "ArrowRight",
	tea.KeyHome:      "Home",
	tea.KeyEnd:       "End",
	tea.KeyPgUp:      "PageUp",
	tea.KeyPgDown:    "PageDown",
	tea.KeyInsert:    "Insert",
	tea.KeyF1:        "F1",
	tea.KeyF2:        "F2",
	tea.KeyF3:        "F3",
	tea.KeyF4:        "F4",
	tea.KeyF5:        "F5",
	tea.KeyF6:        "F6",
	tea.KeyF7:        "F7",
	tea.KeyF8:        "F8",
	tea.KeyF9:        "F9",
	tea.KeyF10:       "F10",
	tea.KeyF11:       "F11",
	tea.KeyF12:       "F12",
}

// KeyNames translates a terminal key message into browser-style key names.
// Pasted text yields nothing. Control chords collapse to "Control" since the
// terminal reports them as a single key.
func KeyNames(msg tea.KeyMsg) []string {
	if msg.Paste {
		return nil
	}
	if msg.Type == tea.KeyRunes {
		names := make([]string, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			names = append(names, string(r))
		}
		return names
	}
	if name, ok := keyNames[msg.Type]; ok {
		return []string{name}
	}
	if msg.Type >= tea.KeyCtrlAt && msg.Type <= tea.KeyCtrlUnderscore {
		return []string{"Control"}
	}
	return nil
}

// ReleaseMsg asks the Releaser to publish a key-up for Key.
type ReleaseMsg struct {
	Key string
	seq int
}

// Releaser publishes key-down events on a Bus and synthesizes the matching
// key-up after a hold period, because terminals do not report releases.
// Pressing a held key again extends the hold. Holds are tracked by the
// lower-cased key, so "A" and "a" share one hold.
type Releaser struct {
	bus   *Bus
	after time.Duration
	seq   int
	held  map[string]int
}

func holdKey(key string) string {
	return layout.Normalize(key)
}

// NewReleaser returns a Releaser publishing to bus. A zero hold publishes
// the key-up right after the key-down.
func NewReleaser(bus *Bus, hold time.Duration) *Releaser {
	return &Releaser{
		bus:   bus,
		after: hold,
		held:  map[string]int{},
	}
}

// Press publishes key-down for key and returns the command that will
// deliver its ReleaseMsg.
func (r *Releaser) Press(key string) tea.Cmd {
	r.bus.Down(key)
	if r.after <= 0 {
		r.bus.Up(key)
		return nil
	}
	r.seq++
	seq := r.seq
	r.held[holdKey(key)] = seq
	return tea.Tick(r.after, func(time.Time) tea.Msg {
		return ReleaseMsg{Key: key, seq: seq}
	})
}

// Release publishes key-up when msg belongs to the latest press of its key.
// Stale messages are dropped.
func (r *Releaser) Release(msg ReleaseMsg) {
	seq, ok := r.held[holdKey(msg.Key)]
	if !ok || seq != msg.seq {
		return
	}
	delete(r.held, holdKey(msg.Key))
	r.bus.Up(msg.Key)
}

// ReleaseAll publishes key-up for every held key.
func (r *Releaser) ReleaseAll() {
	for key := range r.held {
		delete(r.held, key)
		r.bus.Up(key)
	}
}

// Held reports whether key is waiting for its release.
func (r *Releaser) Held(key string) bool {
	_, ok := r.held[holdKey(key)]
	return ok
}
