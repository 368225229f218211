package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/abelbrown/dex/internal/otel"
)

// DebugPanel's border and padding take two lines each.
const debugPanelChrome = 4

const debugRecent = 20

// statRow is one summary line of the overlay: a label and the counts of
// the kinds it reports, filled into format in order.
type statRow struct {
	label  string
	format string
	kinds  []otel.EventKind
}

var debugStats = []statRow{
	{"Index", "%d built, %d errors", []otel.EventKind{otel.KindIndexBuild, otel.KindIndexError}},
	{"Pages", "%d fetched, %d errors", []otel.EventKind{otel.KindPageFetch, otel.KindPageError}},
	{"Filters", "%d applied, %d errors, %d rejected", []otel.EventKind{otel.KindFilterApply, otel.KindFilterError, otel.KindFacetReject}},
	{"Stale", "%d dropped results", []otel.EventKind{otel.KindJobStale}},
	{"Search", "%d queries, %d errors", []otel.EventKind{otel.KindSearchQuery, otel.KindSearchError}},
	{"Detail", "%d loaded, %d errors", []otel.EventKind{otel.KindDetailLoad, otel.KindDetailError}},
}

// debugOverlay renders load counters and the most recent events held in
// ring. A nil ring renders nothing.
func debugOverlay(ring *otel.RingBuffer, width, height int) string {
	if ring == nil {
		return ""
	}

	counts := ring.Stats()
	lines := []string{DebugHeaderStyle.Render("Load Stats")}
	for _, row := range debugStats {
		args := make([]any, len(row.kinds))
		for i, k := range row.kinds {
			args[i] = counts[k]
		}
		lines = append(lines, fmt.Sprintf("  %-10s  ", row.label+":")+fmt.Sprintf(row.format, args...))
	}
	lines = append(lines,
		fmt.Sprintf("  %-10s  %d / %d events, %d failed", "Buffer:", ring.Len(), ring.Cap(), ring.Errors()),
		"",
		DebugHeaderStyle.Render("Recent Events"),
	)
	now := time.Now()
	for _, ev := range ring.Last(debugRecent) {
		lines = append(lines, eventLine(ev, now))
	}

	if limit := max(height-debugPanelChrome, 1); len(lines) > limit {
		lines = lines[:limit]
	}
	w := max(min(76, width-4), 20)
	return DebugPanel.Width(w).Render(strings.Join(lines, "\n"))
}

func eventLine(ev otel.Event, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %6s  %-16s", formatAge(now.Sub(ev.Time)), ev.Kind)
	if ev.Token != 0 {
		fmt.Fprintf(&b, "  tok:%d", ev.Token)
	}
	if ev.Route != "" {
		b.WriteString("  " + ev.Route)
	}
	if ev.Msg != "" {
		b.WriteString("  " + runewidth.Truncate(ev.Msg, 40, "…"))
	}
	if ev.Err != "" {
		b.WriteString("  ERR:" + runewidth.Truncate(ev.Err, 30, "…"))
	}
	return b.String()
}

// formatAge renders d compactly. Negative ages (clock skew) read as 0ms.
func formatAge(d time.Duration) string {
	switch {
	case d < 0:
		return "0ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
}

func debugStatusBar(width int) string {
	keys := StatusBarKey.Render("D") + StatusBarText.Render(":close")
	return StatusBar.Width(width).Render("  [DEBUG]  " + keys)
}
