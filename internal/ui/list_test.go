package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/abelbrown/dex/internal/catalog"
)

func TestNumberWidth(t *testing.T) {
	cases := []struct {
		total, want int
	}{
		{0, 1},
		{9, 1},
		{151, 3},
		{1025, 4},
	}
	for _, c := range cases {
		if got := numberWidth(c.total); got != c.want {
			t.Errorf("numberWidth(%d) = %d, want %d", c.total, got, c.want)
		}
	}
}

func TestEntryLabel(t *testing.T) {
	e := catalog.EntityStub{ID: 25, Name: "pikachu"}
	if got := EntryLabel(e, numberWidth(1025)); got != "#0025 pikachu" {
		t.Errorf("EntryLabel = %q", got)
	}
	if got := EntryLabel(e, numberWidth(151)); got != "#025 pikachu" {
		t.Errorf("EntryLabel = %q", got)
	}
}

func stubs(n int) []catalog.EntityStub {
	out := make([]catalog.EntityStub, n)
	for i := range out {
		out[i] = catalog.EntityStub{ID: i + 1, Name: "species"}
	}
	return out
}

func TestRenderListKeepsCursorVisible(t *testing.T) {
	out := RenderList(stubs(50), 45, 0, 50, 28, 10, false)
	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}
	if !strings.Contains(lines[9], "#46") {
		t.Errorf("cursor row should be last visible, got %q", lines[9])
	}
	if strings.Contains(out, "#01 ") {
		t.Error("rows above the window should scroll off")
	}
}

func TestRenderListEmpty(t *testing.T) {
	if got := RenderList(nil, 0, 0, 10, 28, 10, true); !strings.Contains(got, "Loading") {
		t.Errorf("loading list = %q", got)
	}
	if got := RenderList(nil, 0, 0, 10, 28, 10, false); !strings.Contains(got, "No entries") {
		t.Errorf("empty list = %q", got)
	}
}

func TestRenderRowTruncatesLongNames(t *testing.T) {
	e := catalog.EntityStub{ID: 1, Name: strings.Repeat("x", 60)}
	row := renderRow(e, false, false, 4, 28)
	if w := runewidth.StringWidth(row); w > 30 {
		t.Errorf("row width %d exceeds pane", w)
	}
	if !strings.Contains(row, "…") {
		t.Errorf("long name should be truncated, got %q", row)
	}
}

func TestScrollOffset(t *testing.T) {
	cases := []struct {
		cursor, n, height, want int
	}{
		{0, 50, 10, 0},
		{9, 50, 10, 0},
		{10, 50, 10, 1},
		{49, 50, 10, 40},
		{80, 50, 10, 40},
	}
	for _, c := range cases {
		if got := scrollOffset(c.cursor, c.n, c.height); got != c.want {
			t.Errorf("scrollOffset(%d, %d, %d) = %d, want %d", c.cursor, c.n, c.height, got, c.want)
		}
	}
}

func TestNearEnd(t *testing.T) {
	if nearEnd(0, 0, 5) {
		t.Error("empty list is never near the end")
	}
	if nearEnd(14, 20, 5) {
		t.Error("row 14 of 20 is not within 5 of the end")
	}
	if !nearEnd(15, 20, 5) {
		t.Error("row 15 of 20 is within 5 of the end")
	}
}
