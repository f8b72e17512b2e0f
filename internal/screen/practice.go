package screen

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keytrainer/internal/generator"
	"github.com/verte-zerg/keytrainer/internal/input"
	"github.com/verte-zerg/keytrainer/internal/keyboard"
	"github.com/verte-zerg/keytrainer/internal/layout"
	"github.com/verte-zerg/keytrainer/internal/logging"
	"github.com/verte-zerg/keytrainer/internal/model"
	"github.com/verte-zerg/keytrainer/internal/router"
	"github.com/verte-zerg/keytrainer/internal/stats"
	"github.com/verte-zerg/keytrainer/internal/stream"
	"github.com/verte-zerg/keytrainer/internal/wordlist"
)

const (
	groupSize     = 5
	sparkWindow   = 3
	sparkRounds   = 12
	defaultLength = 30
)

type charStat struct {
	correct      int
	incorrect    int
	latencySumMs int64
	latencyCount int64
}

// Practice drills the characters of one route. A line is generated from the
// route charset, or from words spelled only with it, and the cursor moves
// forward only on the expected key.
type Practice struct {
	route   router.Route
	cfg     model.PracticeConfig
	gen     *generator.Generator
	tracker *stats.Tracker
	charset []rune
	words   []string
	log     *slog.Logger
	now     func() time.Time

	keyboard *keyboard.Widget
	stream   *stream.Widget
	frame    frame

	target []string
	cursor int
	delay  float64

	started       bool
	startedAt     time.Time
	prevCorrectAt time.Time
	correct       int
	incorrect     int
	charStats     map[rune]*charStat
	weakSet       map[rune]struct{}
}

// NewPractice builds a practice screen for route. words may be nil; only
// words spelled with the route charset are used.
func NewPractice(route router.Route, cfg model.PracticeConfig, l layout.Layout, src input.Source, gen *generator.Generator, tracker *stats.Tracker, words []string) *Practice {
	p := &Practice{
		route:   route,
		cfg:     cfg,
		gen:     gen,
		tracker: tracker,
		charset: []rune(strings.ToLower(route.Charset)),
		log:     logging.For("practice").With(slog.String("route", route.Path)),
		now:     time.Now,
		delay:   cfg.Delay,
		weakSet: map[rune]struct{}{},
	}
	if cfg.Length <= 0 {
		p.cfg.Length = defaultLength
	}
	if len(words) > 0 {
		p.words = wordlist.Filter(words, wordlist.FilterForCharset(route.Charset))
		p.log.Debug("word list filtered", "total", len(words), "kept", len(p.words))
	}
	p.keyboard = keyboard.New(l, src, p.onKeyPress)
	p.stream = stream.New(p.onReset, p.onDelayChange)
	p.refreshWeakSet()
	p.resetRound()
	return p
}

// Init implements Screen.
func (p *Practice) Init() tea.Cmd {
	return nil
}

// Update implements Screen.
func (p *Practice) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case p.stream.DelayFocused():
			if key.Matches(msg, typingKeyMap.Blur) {
				p.stream.BlurDelay()
				return p, nil
			}
			return p, p.stream.Update(msg)
		case key.Matches(msg, typingKeyMap.Reset):
			p.stream.Reset()
		case key.Matches(msg, typingKeyMap.Delay):
			return p, p.stream.FocusDelay(p.delay)
		}
		return p, nil
	default:
		return p, p.stream.Update(msg)
	}
}

func (p *Practice) onKeyPress(raw string) {
	if !singleRune(raw) || p.cursor >= len(p.target) {
		return
	}
	if !p.started {
		p.started = true
		p.startedAt = p.now()
	}
	expected := p.target[p.cursor]
	ok := raw == expected
	p.updateStats([]rune(expected)[0], ok)
	if !ok {
		return
	}
	p.cursor++
	if p.cursor == len(p.target) {
		p.finishRound()
		p.resetRound()
	}
}

func (p *Practice) updateStats(expected rune, ok bool) {
	if expected == ' ' {
		return
	}
	entry := p.charEntry(expected)
	if !ok {
		p.incorrect++
		entry.incorrect++
		return
	}
	p.correct++
	entry.correct++
	now := p.now()
	if !p.prevCorrectAt.IsZero() {
		entry.latencySumMs += now.Sub(p.prevCorrectAt).Milliseconds()
		entry.latencyCount++
	}
	p.prevCorrectAt = now
}

func (p *Practice) charEntry(expected rune) *charStat {
	entry, ok := p.charStats[expected]
	if !ok {
		entry = &charStat{}
		p.charStats[expected] = entry
	}
	return entry
}

func (p *Practice) resetRound() {
	p.cursor = 0
	p.started = false
	p.startedAt = time.Time{}
	p.prevCorrectAt = time.Time{}
	p.correct = 0
	p.incorrect = 0
	p.charStats = map[rune]*charStat{}

	line := p.generateLine()
	p.target = make([]string, 0, len(line))
	for _, r := range line {
		p.target = append(p.target, string(r))
	}
}

func (p *Practice) generateLine() []rune {
	if len(p.words) > 0 {
		var line []rune
		for len(line) < p.cfg.Length {
			if len(line) > 0 {
				line = append(line, ' ')
			}
			line = append(line, []rune(p.gen.Words(p.words, 1)[0])...)
		}
		return line
	}
	var chars []rune
	if len(p.weakSet) > 0 && p.cfg.WeakFactor > 0 {
		chars = p.gen.GenerateWeighted(p.charset, p.cfg.Length, p.weakSet, p.cfg.WeakFactor)
	} else {
		chars = p.gen.Generate(p.charset, p.cfg.Length)
	}
	return generator.Group(chars, groupSize)
}

func (p *Practice) finishRound() {
	if !p.started {
		return
	}
	endedAt := p.now()
	round := model.RoundStats{
		StartedAt:  p.startedAt,
		EndedAt:    endedAt,
		Route:      p.route.Path,
		Length:     len(p.target),
		Correct:    p.correct,
		Incorrect:  p.incorrect,
		DurationMs: endedAt.Sub(p.startedAt).Milliseconds(),
	}
	chars := make([]model.CharStats, 0, len(p.charStats))
	for ch, entry := range p.charStats {
		chars = append(chars, model.CharStats{
			Char:         string(ch),
			Correct:      entry.correct,
			Incorrect:    entry.incorrect,
			LatencySumMs: entry.latencySumMs,
			LatencyCount: entry.latencyCount,
		})
	}
	p.tracker.Record(round, chars)
	wpm, _, acc := stats.SessionMetrics(round.Correct, round.Incorrect, round.DurationMs)
	p.log.Info("round finished", "wpm", wpm, "accuracy", acc)
	p.refreshWeakSet()
}

func (p *Practice) refreshWeakSet() {
	if p.cfg.WeakTop <= 0 {
		return
	}
	allowed := map[rune]struct{}{}
	for _, r := range p.charset {
		allowed[r] = struct{}{}
	}
	var aggs []model.CharAggregate
	for _, agg := range p.tracker.CharAggregates() {
		if _, ok := allowed[[]rune(agg.Char)[0]]; ok {
			aggs = append(aggs, agg)
		}
	}
	p.weakSet = stats.SelectWeakChars(aggs, p.cfg.WeakTop)
}

func (p *Practice) onReset() {
	p.resetRound()
}

func (p *Practice) onDelayChange(v float64) {
	if !validDelay(v) {
		p.log.Warn("ignoring pace", "value", v)
		return
	}
	p.delay = v
}

// View implements Screen.
func (p *Practice) View() string {
	props := stream.Props{
		Chars:  p.target,
		Delay:  p.delay,
		Cursor: p.cursor,
	}
	title := fmt.Sprintf("Practice %s  %s", p.route.Title, p.route.Charset)
	return p.frame.render(title, p.stream.View(props), p.keyboard.View(), p.renderFooter())
}

func (p *Practice) renderFooter() string {
	if len(p.target) == 0 {
		return ""
	}
	progress := int(float64(p.cursor) / float64(len(p.target)) * 100)
	segments := []string{fmt.Sprintf("Progress %d%%", progress)}

	rounds := p.tracker.RoundsFor(p.route.Path)
	if len(rounds) > 0 {
		last := rounds[len(rounds)-1]
		wpm, _, acc := stats.SessionMetrics(last.Correct, last.Incorrect, last.DurationMs)
		segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", wpm, acc*100))

		correct, incorrect, duration := stats.Totals(rounds)
		wpm, _, acc = stats.SessionMetrics(correct, incorrect, duration)
		segments = append(segments, fmt.Sprintf("Run %.1f WPM · %.1f%%", wpm, acc*100))

		if correct > 0 {
			pace := float64(duration) / 1000 / float64(correct)
			mark := "on pace"
			if pace > p.delay {
				mark = "slow"
			}
			segments = append(segments, fmt.Sprintf("%.2fs/char %s", pace, mark))
		}

		series := stats.MovingAverage(stats.WPMSeries(rounds), sparkWindow)
		if len(series) > sparkRounds {
			series = series[len(series)-sparkRounds:]
		}
		segments = append(segments, "["+stats.Sparkline(series)+"]")
	}
	return strings.Join(segments, "  ")
}

// Mount implements Screen.
func (p *Practice) Mount() {
	p.keyboard.Mount()
}

// Unmount implements Screen.
func (p *Practice) Unmount() {
	p.keyboard.Unmount()
}

// SetSize implements Screen.
func (p *Practice) SetSize(width, _ int) {
	p.stream.SetWidth(width)
}

// Click implements Screen.
func (p *Practice) Click(x, y int) tea.Cmd {
	p.frame.route(x, y, p.stream.ClickAt, p.keyboard.ClickAt)
	return nil
}

// Capturing implements Screen.
func (p *Practice) Capturing() bool {
	return p.stream.DelayFocused()
}

// ShortHelp implements Screen.
func (p *Practice) ShortHelp() []key.Binding {
	if p.stream.DelayFocused() {
		return []key.Binding{typingKeyMap.Blur}
	}
	return []key.Binding{typingKeyMap.Reset, typingKeyMap.Delay}
}
