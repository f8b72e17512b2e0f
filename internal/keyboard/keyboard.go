// Package keyboard provides the on-screen keyboard that mirrors key presses.
package keyboard

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/keytrainer/internal/input"
	"github.com/verte-zerg/keytrainer/internal/layout"
	"github.com/verte-zerg/keytrainer/internal/logging"
)

const (
	minCellWidth = 3
	rowIndent    = 2
	spaceCaption = "space"
	spaceWidth   = 24
)

// excluded keys never produce a key-press notification.
var excluded = map[string]struct{}{
	"Shift":    {},
	"Control":  {},
	"Alt":      {},
	"Meta":     {},
	"CapsLock": {},
	"Tab":      {},
	"Enter":    {},
}

var (
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	activeKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1E1E1E")).
			Background(lipgloss.Color("#C89A3A")).
			Bold(true)
)

// Excluded reports whether key is a modifier or control key that the
// keyboard swallows instead of forwarding.
func Excluded(key string) bool {
	_, ok := excluded[key]
	return ok
}

// Key is one rendered key.
type Key struct {
	Label  string
	Active bool
}

type cell struct {
	index int
	row   int
	x     int
	width int
}

// Widget renders a layout and highlights the keys currently held down.
type Widget struct {
	layout     layout.Layout
	source     input.Source
	onKeyPress func(string)
	log        *slog.Logger

	pressed     map[string]struct{}
	unsubscribe func()
	cells       []cell
}

// New returns a keyboard for l that listens to src once mounted. onKeyPress
// receives the raw key (case preserved) for every forwarded press or click.
func New(l layout.Layout, src input.Source, onKeyPress func(string)) *Widget {
	w := &Widget{
		layout:     l,
		source:     src,
		onKeyPress: onKeyPress,
		log:        logging.For("keyboard"),
		pressed:    map[string]struct{}{},
	}
	w.cells = buildCells(l)
	return w
}

// Mount subscribes to the input source. Mounting twice is a no-op.
func (w *Widget) Mount() {
	if w.unsubscribe != nil || w.source == nil {
		return
	}
	w.unsubscribe = w.source.Subscribe(w.handle)
	w.log.Debug("mounted", "keys", w.layout.Len())
}

// Unmount removes the input subscription. Unmounting twice is a no-op.
func (w *Widget) Unmount() {
	if w.unsubscribe == nil {
		return
	}
	w.unsubscribe()
	w.unsubscribe = nil
	w.log.Debug("unmounted")
}

// Mounted reports whether the widget is subscribed to its source.
func (w *Widget) Mounted() bool {
	return w.unsubscribe != nil
}

func (w *Widget) handle(ev input.Event) {
	switch ev.Kind {
	case input.KeyDown:
		w.KeyDown(ev.Key)
	case input.KeyUp:
		w.KeyUp(ev.Key)
	}
}

// KeyDown marks the key active when it is part of the layout and forwards
// raw unless it is an excluded key.
func (w *Widget) KeyDown(raw string) {
	key := layout.Normalize(raw)
	if w.layout.Contains(key) {
		w.pressed[key] = struct{}{}
	}
	if Excluded(raw) {
		return
	}
	w.log.Debug("key press", "key", raw)
	w.emit(raw)
}

// KeyUp clears the active mark for raw. Unknown keys are ignored.
func (w *Widget) KeyUp(raw string) {
	delete(w.pressed, layout.Normalize(raw))
}

// Click forwards the symbol of the i-th key in row order.
func (w *Widget) Click(i int) {
	flat := w.layout.Flat()
	if i < 0 || i >= len(flat) {
		return
	}
	w.emit(flat[i])
}

// ClickAt forwards the key under the cell at x, y relative to the top-left
// corner of View. It reports whether a key was hit.
func (w *Widget) ClickAt(x, y int) bool {
	for _, c := range w.cells {
		if c.row == y && x >= c.x && x < c.x+c.width {
			w.Click(c.index)
			return true
		}
	}
	return false
}

func (w *Widget) emit(key string) {
	if w.onKeyPress != nil {
		w.onKeyPress(key)
	}
}

// Pressed reports whether the normalized form of key is held down.
func (w *Widget) Pressed(key string) bool {
	_, ok := w.pressed[layout.Normalize(key)]
	return ok
}

// Keys returns every key of the layout in row order with its active state.
func (w *Widget) Keys() []Key {
	flat := w.layout.Flat()
	keys := make([]Key, 0, len(flat))
	for _, label := range flat {
		_, active := w.pressed[label]
		keys = append(keys, Key{Label: label, Active: active})
	}
	return keys
}

// View renders the keyboard, one terminal line per layout row.
func (w *Widget) View() string {
	keys := w.Keys()
	if len(keys) == 0 {
		return ""
	}
	lines := make([]strings.Builder, len(w.layout.Rows()))
	cols := make([]int, len(lines))
	for _, c := range w.cells {
		line := &lines[c.row]
		if pad := c.x - cols[c.row]; pad > 0 {
			line.WriteString(strings.Repeat(" ", pad))
			cols[c.row] += pad
		}
		key := keys[c.index]
		style := keyStyle
		if key.Active {
			style = activeKeyStyle
		}
		line.WriteString(style.Render(centerCaption(caption(key.Label), c.width)))
		cols[c.row] += c.width
	}
	out := make([]string, len(lines))
	for i := range lines {
		out[i] = lines[i].String()
	}
	return strings.Join(out, "\n")
}

func buildCells(l layout.Layout) []cell {
	var cells []cell
	index := 0
	for r, row := range l.Rows() {
		x := r * rowIndent
		for _, sym := range row {
			width := runewidth.StringWidth(caption(sym)) + 2
			if width < minCellWidth {
				width = minCellWidth
			}
			if sym == " " {
				width = spaceWidth
			}
			cells = append(cells, cell{index: index, row: r, x: x, width: width})
			x += width + 1
			index++
		}
	}
	return cells
}

func caption(label string) string {
	if label == " " {
		return spaceCaption
	}
	return label
}

func centerCaption(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	right := width - w - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
