package stats

import (
	"sort"

	"github.com/verte-zerg/keytrainer/internal/model"
)

// Tracker accumulates practice rounds for the lifetime of a run. Nothing is
// written to disk.
type Tracker struct {
	rounds []model.RoundStats
	chars  map[string]*model.CharAggregate
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{chars: map[string]*model.CharAggregate{}}
}

// Record adds a finished round and its per-character stats.
func (t *Tracker) Record(round model.RoundStats, chars []model.CharStats) {
	t.rounds = append(t.rounds, round)
	for _, cs := range chars {
		agg, ok := t.chars[cs.Char]
		if !ok {
			agg = &model.CharAggregate{Char: cs.Char}
			t.chars[cs.Char] = agg
		}
		agg.Correct += cs.Correct
		agg.Incorrect += cs.Incorrect
		agg.LatencySumMs += cs.LatencySumMs
		agg.LatencyCount += cs.LatencyCount
	}
}

// Rounds returns the recorded rounds in completion order.
func (t *Tracker) Rounds() []model.RoundStats {
	return append([]model.RoundStats(nil), t.rounds...)
}

// RoundsFor returns the rounds recorded for one route.
func (t *Tracker) RoundsFor(route string) []model.RoundStats {
	var out []model.RoundStats
	for _, r := range t.rounds {
		if r.Route == route {
			out = append(out, r)
		}
	}
	return out
}

// CharAggregates returns per-character totals sorted by character.
func (t *Tracker) CharAggregates() []model.CharAggregate {
	out := make([]model.CharAggregate, 0, len(t.chars))
	for _, agg := range t.chars {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Char < out[j].Char })
	return out
}

// Totals sums correct and incorrect keystrokes and duration over rounds.
func Totals(rounds []model.RoundStats) (correct, incorrect int, durationMs int64) {
	for _, r := range rounds {
		correct += r.Correct
		incorrect += r.Incorrect
		durationMs += r.DurationMs
	}
	return correct, incorrect, durationMs
}

// WPMSeries returns the WPM of each round.
func WPMSeries(rounds []model.RoundStats) []float64 {
	out := make([]float64, len(rounds))
	for i, r := range rounds {
		out[i], _, _ = SessionMetrics(r.Correct, r.Incorrect, r.DurationMs)
	}
	return out
}
