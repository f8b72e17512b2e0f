package stats

import "testing"

func TestTableAlignsColumns(t *testing.T) {
	tbl := newTable(
		column{title: "Key"},
		column{title: "Accuracy", right: true},
		column{title: "Hits", right: true},
	)
	tbl.add("q", "97.50%", "12")
	tbl.add("<space>", "8.00%", "3")

	lines := tbl.lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Key     Accuracy Hits" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "q         97.50%   12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "<space>    8.00%    3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestTableShortRowsArePadded(t *testing.T) {
	tbl := newTable(column{title: "A"}, column{title: "B", right: true})
	tbl.add("x")
	lines := tbl.lines()
	if lines[1] != "x  " {
		t.Fatalf("unexpected padded row: %q", lines[1])
	}
}
