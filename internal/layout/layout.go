// Package layout defines the key grid shown by the virtual keyboard.
package layout

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrEmptyRow is returned when a layout file contains a row without keys.
	ErrEmptyRow = errors.New("layout row is empty")
	// ErrDuplicateKey is returned when two keys share a symbol after
	// lower-casing.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUnknownKey is returned for layout file keys other than rows.
	ErrUnknownKey = errors.New("unknown layout key")
)

// Layout is an ordered grid of key symbols. It is not modified after load.
type Layout struct {
	rows  [][]string
	index map[string]struct{}
}

// Default is the US QWERTY grid without modifiers.
var Default = MustNew([][]string{
	{"`", "1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "-", "="},
	{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p", "[", "]", "\\"},
	{"a", "s", "d", "f", "g", "h", "j", "k", "l", ";", "'"},
	{"z", "x", "c", "v", "b", "n", "m", ",", ".", "/"},
	{" "},
})

// New builds a layout from rows of symbols. Symbols are stored lower-cased
// and must be unique.
func New(rows [][]string) (Layout, error) {
	l := Layout{
		rows:  make([][]string, 0, len(rows)),
		index: map[string]struct{}{},
	}
	for i, row := range rows {
		if len(row) == 0 {
			return Layout{}, fmt.Errorf("row %d: %w", i, ErrEmptyRow)
		}
		copied := make([]string, 0, len(row))
		for _, sym := range row {
			if sym == "" {
				return Layout{}, fmt.Errorf("row %d: empty key symbol", i)
			}
			sym = Normalize(sym)
			if _, ok := l.index[sym]; ok {
				return Layout{}, fmt.Errorf("row %d: %w %q", i, ErrDuplicateKey, sym)
			}
			copied = append(copied, sym)
			l.index[sym] = struct{}{}
		}
		l.rows = append(l.rows, copied)
	}
	return l, nil
}

// MustNew is like New but panics on error.
func MustNew(rows [][]string) Layout {
	l, err := New(rows)
	if err != nil {
		panic(err)
	}
	return l
}

// FromStrings builds a layout where every rune of a row string is one key.
func FromStrings(rows []string) (Layout, error) {
	grid := make([][]string, 0, len(rows))
	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for _, r := range row {
			keys = append(keys, string(r))
		}
		grid = append(grid, keys)
	}
	return New(grid)
}

type fileLayout struct {
	Rows []string `toml:"rows"`
}

// Load reads a TOML layout file with a `rows` array of strings.
func Load(path string) (Layout, error) {
	if _, err := os.Stat(path); err != nil {
		return Layout{}, fmt.Errorf("failed to stat layout: %w", err)
	}
	var f fileLayout
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to decode layout: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Layout{}, fmt.Errorf("%s: %w %q", path, ErrUnknownKey, undecoded[0].String())
	}
	l, err := FromStrings(f.Rows)
	if err != nil {
		return Layout{}, fmt.Errorf("invalid layout %s: %w", path, err)
	}
	return l, nil
}

// Normalize lower-cases a key identifier for layout matching.
func Normalize(key string) string {
	return strings.ToLower(key)
}

// Rows returns a copy of the grid.
func (l Layout) Rows() [][]string {
	out := make([][]string, len(l.rows))
	for i, row := range l.rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Flat returns all symbols in row order.
func (l Layout) Flat() []string {
	out := make([]string, 0, l.Len())
	for _, row := range l.rows {
		out = append(out, row...)
	}
	return out
}

// Len returns the number of symbols across all rows.
func (l Layout) Len() int {
	n := 0
	for _, row := range l.rows {
		n += len(row)
	}
	return n
}

// Contains reports whether the normalized form of key is in the grid.
func (l Layout) Contains(key string) bool {
	_, ok := l.index[Normalize(key)]
	return ok
}
