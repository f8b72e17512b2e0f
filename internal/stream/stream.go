// Package stream renders the characters to type and the game controls.
package stream

import (
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/keytrainer/internal/logging"
)

const (
	// GameOverText is shown when the owning screen ends the game.
	GameOverText = "Game Over"
	// DelayInputID names the delay control.
	DelayInputID = "delay-input"

	resetLabel  = "[ reset ]"
	controlsGap = "  "
)

var (
	boxStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Background(lipgloss.Color("#3A3A3A")).
			Padding(0, 1)
	typedBoxStyle = boxStyle.
			Foreground(lipgloss.Color("#6E6E6E")).
			Background(lipgloss.Color("#262626"))
	headBoxStyle = boxStyle.
			Foreground(lipgloss.Color("#1E1E1E")).
			Background(lipgloss.Color("#C89A3A"))
	gameOverStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	buttonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Props are the values owned by the screen and passed down on render.
type Props struct {
	Chars    []string
	GameOver bool
	Delay    float64
	// Cursor is the index of the next char to type. Boxes before it are
	// shown as typed; a negative value disables the typed highlight and
	// leaves the first box as the head.
	Cursor int
}

// Box is one rendered character box.
type Box struct {
	Text  string
	Typed bool
	Head  bool
}

// Widget draws the character boxes, the game-over message and the reset and
// delay controls. It never changes Props itself: reset and delay edits are
// reported through the callbacks.
type Widget struct {
	onReset       func()
	onDelayChange func(float64)
	log           *slog.Logger

	delayInput textinput.Model
	width      int
}

// New returns a stream widget reporting to the given callbacks.
func New(onReset func(), onDelayChange func(float64)) *Widget {
	ti := textinput.New()
	ti.Prompt = "delay: "
	ti.CharLimit = 16
	ti.Width = 8
	ti.PromptStyle = labelStyle
	return &Widget{
		onReset:       onReset,
		onDelayChange: onDelayChange,
		log:           logging.For("stream"),
		delayInput:    ti,
	}
}

// SetWidth sets the wrap width for the boxes. Zero disables wrapping.
func (w *Widget) SetWidth(width int) {
	w.width = width
}

// Boxes returns one box per char in order.
func Boxes(p Props) []Box {
	boxes := make([]Box, 0, len(p.Chars))
	for i, ch := range p.Chars {
		boxes = append(boxes, Box{
			Text:  ch,
			Typed: p.Cursor >= 0 && i < p.Cursor,
			Head:  i == max(p.Cursor, 0),
		})
	}
	return boxes
}

// GameOverMessage returns the terminal message and whether it is shown.
func GameOverMessage(p Props) (string, bool) {
	if !p.GameOver {
		return "", false
	}
	return GameOverText, true
}

// Reset asks the owner to reset.
func (w *Widget) Reset() {
	w.log.Debug("reset requested")
	if w.onReset != nil {
		w.onReset()
	}
}

// SetDelayInput reports the delay typed into the control. Text that does
// not parse as a number is reported as NaN.
func (w *Widget) SetDelayInput(text string) {
	value := parseDelay(text)
	w.log.Debug("delay changed", "control", DelayInputID, "input", text, "value", value)
	if w.onDelayChange != nil {
		w.onDelayChange(value)
	}
}

func parseDelay(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}

// FocusDelay starts editing the delay control from the current value.
func (w *Widget) FocusDelay(current float64) tea.Cmd {
	w.delayInput.SetValue(formatDelay(current))
	w.delayInput.CursorEnd()
	return w.delayInput.Focus()
}

// BlurDelay stops editing the delay control.
func (w *Widget) BlurDelay() {
	w.delayInput.Blur()
}

// DelayFocused reports whether the delay control receives keys.
func (w *Widget) DelayFocused() bool {
	return w.delayInput.Focused()
}

// Update feeds msg to the delay control while it is focused. Every edit of
// the control's text is reported as a delay change.
func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	if !w.delayInput.Focused() {
		return nil
	}
	before := w.delayInput.Value()
	var cmd tea.Cmd
	w.delayInput, cmd = w.delayInput.Update(msg)
	if after := w.delayInput.Value(); after != before {
		w.SetDelayInput(after)
	}
	return cmd
}

// ClickAt triggers the control under x, y relative to the top-left corner of
// View. It reports whether a control was hit.
func (w *Widget) ClickAt(x, y int) bool {
	if y != 0 {
		return false
	}
	if x >= 0 && x < runewidth.StringWidth(resetLabel) {
		w.Reset()
		return true
	}
	return false
}

// View renders the controls line, the boxes and, when the game is over, the
// game-over message.
func (w *Widget) View(p Props) string {
	lines := []string{w.controlsView(p)}
	if boxes := w.boxesView(Boxes(p)); boxes != "" {
		lines = append(lines, boxes)
	}
	if msg, ok := GameOverMessage(p); ok {
		lines = append(lines, gameOverStyle.Render(msg))
	}
	return strings.Join(lines, "\n")
}

func (w *Widget) controlsView(p Props) string {
	delay := w.delayInput.View()
	if !w.delayInput.Focused() {
		delay = labelStyle.Render(w.delayInput.Prompt) + formatDelay(p.Delay) + "s"
	}
	return buttonStyle.Render(resetLabel) + controlsGap + delay
}

func (w *Widget) boxesView(boxes []Box) string {
	if len(boxes) == 0 {
		return ""
	}
	var out strings.Builder
	lineWidth := 0
	for _, box := range boxes {
		text := displayText(box.Text)
		cellWidth := runewidth.StringWidth(text) + 2
		if w.width > 0 && lineWidth > 0 && lineWidth+cellWidth > w.width {
			out.WriteByte('\n')
			lineWidth = 0
		}
		style := boxStyle
		switch {
		case box.Typed:
			style = typedBoxStyle
		case box.Head:
			style = headBoxStyle
		}
		out.WriteString(style.Render(text))
		lineWidth += cellWidth
	}
	return out.String()
}

func displayText(s string) string {
	if s == " " {
		return "␣"
	}
	return s
}

func formatDelay(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
