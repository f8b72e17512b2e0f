package generator

import "testing"

func TestGenerateUsesCharset(t *testing.T) {
	g := NewSeeded(1)
	charset := []rune("azq")
	out := g.Generate(charset, 50)
	if len(out) != 50 {
		t.Fatalf("expected 50 runes, got %d", len(out))
	}
	for _, r := range out {
		if r != 'a' && r != 'z' && r != 'q' {
			t.Fatalf("unexpected rune %q", r)
		}
	}
}

func TestGenerateEmptyCharset(t *testing.T) {
	g := NewSeeded(1)
	if out := g.Generate(nil, 5); out != nil {
		t.Fatalf("expected nil for empty charset, got %q", string(out))
	}
	if out := g.GenerateWeighted(nil, 5, nil, 2); out != nil {
		t.Fatalf("expected nil for empty charset, got %q", string(out))
	}
}

func TestGenerateWeightedFavorsWeakChars(t *testing.T) {
	g := NewSeeded(42)
	weak := map[rune]struct{}{'z': {}}
	out := g.GenerateWeighted([]rune("az"), 2000, weak, 9)
	zs := 0
	for _, r := range out {
		if r == 'z' {
			zs++
		}
	}
	// z weighs 10 against a's 1, so it should dominate.
	if zs < 1500 {
		t.Fatalf("expected weak char to dominate, got %d of %d", zs, len(out))
	}
}

func TestWords(t *testing.T) {
	g := NewSeeded(3)
	words := g.Words([]string{"sad", "lad"}, 4)
	if len(words) != 4 {
		t.Fatalf("expected 4 words, got %d", len(words))
	}
	if g.Words(nil, 4) != nil {
		t.Fatalf("expected nil for empty word list")
	}
}

func TestGroup(t *testing.T) {
	got := string(Group([]rune("abcdefghij"), 4))
	if got != "abcd efgh ij" {
		t.Fatalf("unexpected grouping: %q", got)
	}
	if got := string(Group([]rune("abc"), 4)); got != "abc" {
		t.Fatalf("unexpected grouping for short input: %q", got)
	}
}
