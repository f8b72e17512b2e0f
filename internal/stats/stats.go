// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/verte-zerg/keytrainer/internal/model"
)

const sparkChars = " .:-=+*#%@"

// SessionMetrics computes WPM, CPM, and accuracy for a round.
func SessionMetrics(correct, incorrect int, durationMs int64) (wpm, cpm, accuracy float64) {
	if durationMs <= 0 {
		return 0, 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	wpm = (float64(correct) / 5.0) / minutes
	cpm = float64(correct) / minutes
	if den := float64(correct + incorrect); den > 0 {
		accuracy = float64(correct) / den
	}
	return wpm, cpm, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	last := len(sparkChars) - 1
	for _, v := range values {
		idx := int(math.Round((v - lo) / (hi - lo) * float64(last)))
		b.WriteByte(sparkChars[max(0, min(idx, last))])
	}
	return b.String()
}

// RenderSummary prints the practice rounds of a run: counts, average and
// best speed, and a sparkline of WPM per round.
func RenderSummary(w io.Writer, rounds []model.RoundStats) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds completed.")
		return err
	}
	wpms := WPMSeries(rounds)
	var sumWPM, sumAcc, best float64
	for i, r := range rounds {
		_, _, acc := SessionMetrics(r.Correct, r.Incorrect, r.DurationMs)
		sumWPM += wpms[i]
		sumAcc += acc
		best = math.Max(best, wpms[i])
	}
	n := float64(len(rounds))
	_, err := fmt.Fprintf(w, "Summary\nRounds: %d\nAvg WPM: %.2f\nBest WPM: %.2f\nAvg Accuracy: %.2f%%\nTrend: [%s]\n",
		len(rounds), sumWPM/n, best, sumAcc/n*100, Sparkline(wpms))
	return err
}

// RenderCharTable prints per-key aggregates, least accurate first.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	sorted := append([]model.CharAggregate(nil), aggs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ai, aj := accuracy(sorted[i]), accuracy(sorted[j])
		if ai != aj {
			return ai < aj
		}
		return sorted[i].Char < sorted[j].Char
	})

	tbl := newTable(
		column{title: "Char"},
		column{title: "Accuracy", right: true},
		column{title: "Avg Latency (ms)", right: true},
		column{title: "Correct", right: true},
		column{title: "Incorrect", right: true},
	)
	for _, agg := range sorted {
		tbl.add(
			charLabel(agg.Char),
			fmt.Sprintf("%.2f%%", accuracy(agg)*100),
			fmt.Sprintf("%.1f", avgLatency(agg)),
			strconv.Itoa(agg.Correct),
			strconv.Itoa(agg.Incorrect),
		)
	}
	if _, err := fmt.Fprintln(w, "Per-Character"); err != nil {
		return err
	}
	return tbl.write(w)
}

func charLabel(ch string) string {
	if ch == " " {
		return "<space>"
	}
	return ch
}
