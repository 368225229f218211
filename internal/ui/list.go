package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/abelbrown/dex/internal/catalog"
)

// listWidth is the width of the list pane including its border.
const listWidth = 30

// numberWidth returns how many digits entity numbers are padded to: the width
// of the largest ID in the catalog.
func numberWidth(total int) int {
	if total < 1 {
		return 1
	}
	return len(strconv.Itoa(total))
}

// EntryLabel formats a list row label, "#0025 pikachu" for a catalog of at
// least 1000 entities.
func EntryLabel(e catalog.EntityStub, digits int) string {
	return fmt.Sprintf("#%0*d %s", digits, e.ID, e.Name)
}

// RenderList renders the visible window of entries. open is the ID shown in
// the detail pane (0 for none). The result is exactly height lines when
// there are entries.
func RenderList(entries []catalog.EntityStub, cursor, open, total, width, height int, loading bool) string {
	if height < 1 {
		height = 1
	}
	if len(entries) == 0 {
		msg := "No entries."
		if loading {
			msg = "Loading..."
		}
		return NormalItem.Width(width).Render(msg)
	}

	digits := numberWidth(total)
	offset := scrollOffset(cursor, len(entries), height)

	var b strings.Builder
	rows := 0
	for i := offset; i < len(entries) && rows < height; i++ {
		if rows > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderRow(entries[i], i == cursor, entries[i].ID == open, digits, width))
		rows++
	}
	if loading && rows < height {
		b.WriteString("\n")
		b.WriteString(Muted.Render("  loading more..."))
	}
	return b.String()
}

// scrollOffset returns the first visible row so that cursor stays on screen.
func scrollOffset(cursor, n, height int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < height {
		return 0
	}
	return cursor - height + 1
}

func renderRow(e catalog.EntityStub, selected, open bool, digits, width int) string {
	num := fmt.Sprintf("#%0*d", digits, e.ID)
	nameWidth := width - runewidth.StringWidth(num) - 2
	if nameWidth < 4 {
		nameWidth = 4
	}
	name := runewidth.Truncate(e.Name, nameWidth, "…")
	name = runewidth.FillRight(name, nameWidth)

	switch {
	case selected:
		return SelectedItem.Render(" " + num + " " + name)
	case open:
		return " " + EntryNumber.Render(num) + " " + OpenItem.Render(name)
	default:
		return " " + EntryNumber.Render(num) + " " + NormalItem.Render(name)
	}
}

// nearEnd reports whether cursor is within rows of the last loaded entry.
func nearEnd(cursor, n, rows int) bool {
	return n > 0 && cursor >= n-rows
}
