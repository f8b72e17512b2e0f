// Package generator builds typing text sequences.
package generator

import (
	"math/rand"
	"time"
)

// Generator produces randomized typing text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Next returns one character drawn uniformly from charset.
func (g *Generator) Next(charset []rune) rune {
	return charset[g.rnd.Intn(len(charset))]
}

// Generate draws count characters uniformly from charset.
func (g *Generator) Generate(charset []rune, count int) []rune {
	if len(charset) == 0 || count <= 0 {
		return nil
	}
	result := make([]rune, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, g.Next(charset))
	}
	return result
}

// GenerateWeighted draws count characters with a bias toward weak characters.
// Each weak character weighs 1+factor, every other character weighs 1.
func (g *Generator) GenerateWeighted(charset []rune, count int, weakSet map[rune]struct{}, factor float64) []rune {
	if len(charset) == 0 || count <= 0 {
		return nil
	}
	weights := make([]float64, len(charset))
	total := 0.0
	for i, r := range charset {
		w := 1.0
		if _, ok := weakSet[r]; ok {
			w += factor
		}
		weights[i] = w
		total += w
	}

	result := make([]rune, 0, count)
	for i := 0; i < count; i++ {
		r := g.rnd.Float64() * total
		acc := 0.0
		idx := len(charset) - 1
		for j, w := range weights {
			acc += w
			if r <= acc {
				idx = j
				break
			}
		}
		result = append(result, charset[idx])
	}
	return result
}

// Words selects count words uniformly.
func (g *Generator) Words(words []string, count int) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, words[g.rnd.Intn(len(words))])
	}
	return result
}

// Group splits runes into space separated groups of size n.
func Group(runes []rune, n int) []rune {
	if n <= 0 || len(runes) <= n {
		return runes
	}
	out := make([]rune, 0, len(runes)+len(runes)/n)
	for i, r := range runes {
		if i > 0 && i%n == 0 {
			out = append(out, ' ')
		}
		out = append(out, r)
	}
	return out
}
