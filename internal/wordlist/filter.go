// Package wordlist provides word list filtering helpers.
package wordlist

import "strings"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForCharset keeps words spelled only with characters of charset,
// ignoring case.
func FilterForCharset(charset string) FilterFunc {
	allowed := map[rune]struct{}{}
	for _, r := range strings.ToLower(charset) {
		allowed[r] = struct{}{}
	}
	return func(word string) bool {
		if word == "" {
			return false
		}
		for _, r := range strings.ToLower(word) {
			if _, ok := allowed[r]; !ok {
				return false
			}
		}
		return true
	}
}

// Filter returns the words accepted by keep, lower-cased.
func Filter(words []string, keep FilterFunc) []string {
	var out []string
	for _, word := range words {
		if keep(word) {
			out = append(out, strings.ToLower(word))
		}
	}
	return out
}
