package stats

import (
	"sort"

	"github.com/verte-zerg/keytrainer/internal/model"
)

// SelectWeakChars returns the top lowest-accuracy characters. Ties are broken
// by slower average latency, then by character. A non-positive top selects
// every character.
func SelectWeakChars(aggs []model.CharAggregate, top int) map[rune]struct{} {
	weakSet := map[rune]struct{}{}
	if len(aggs) == 0 {
		return weakSet
	}
	candidates := append([]model.CharAggregate(nil), aggs...)
	sort.Slice(candidates, func(i, j int) bool {
		ai, aj := accuracy(candidates[i]), accuracy(candidates[j])
		if ai != aj {
			return ai < aj
		}
		li, lj := avgLatency(candidates[i]), avgLatency(candidates[j])
		if li != lj {
			return li > lj
		}
		return candidates[i].Char < candidates[j].Char
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	for _, c := range candidates[:top] {
		if runes := []rune(c.Char); len(runes) > 0 {
			weakSet[runes[0]] = struct{}{}
		}
	}
	return weakSet
}

func accuracy(agg model.CharAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}

func avgLatency(agg model.CharAggregate) float64 {
	if agg.LatencyCount == 0 {
		return 0
	}
	return float64(agg.LatencySumMs) / float64(agg.LatencyCount)
}
