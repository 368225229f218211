package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abelbrown/dex/internal/config"
	"github.com/abelbrown/dex/internal/otel"
)

var (
	eventsTail    int
	eventsKind    string
	eventsLevel   string
	eventsSession string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "JSONL event log viewer",
	Args:  cobra.NoArgs,
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().IntVar(&eventsTail, "tail", 50, "Number of recent matching events to show")
	eventsCmd.Flags().StringVar(&eventsKind, "kind", "", "Filter by event kind prefix (e.g. 'page')")
	eventsCmd.Flags().StringVar(&eventsLevel, "level", "", "Minimum level: debug, info, warn, error")
	eventsCmd.Flags().StringVar(&eventsSession, "session", "", "Filter by session ID")
}

// levelRank returns a numeric rank for filtering (higher = more severe).
func levelRank(level otel.Level) int {
	switch level {
	case otel.LevelInfo:
		return 1
	case otel.LevelWarn:
		return 2
	case otel.LevelError:
		return 3
	default:
		return 0
	}
}

func runEvents(_ *cobra.Command, _ []string) error {
	logPath := filepath.Join(config.Dir(), otel.EventLogName)
	all, err := otel.ReadTailFile(logPath, 0)
	if err != nil {
		return fmt.Errorf("read event log (run dex first to create it): %w", err)
	}

	shown := filterEvents(all, eventsKind, otel.Level(eventsLevel), eventsSession)
	if eventsTail > 0 && len(shown) > eventsTail {
		shown = shown[len(shown)-eventsTail:]
	}
	for _, ev := range shown {
		fmt.Println(formatEvent(ev))
	}
	return nil
}

func filterEvents(all []otel.Event, kind string, level otel.Level, session string) []otel.Event {
	minLevel := levelRank(level)
	var out []otel.Event
	for _, ev := range all {
		if kind != "" && !strings.HasPrefix(string(ev.Kind), kind) {
			continue
		}
		if level != "" && levelRank(ev.Level) < minLevel {
			continue
		}
		if session != "" && ev.SessionID != session {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func formatEvent(ev otel.Event) string {
	lvl := strings.ToUpper(string(ev.Level))
	if lvl == "" {
		lvl = "?"
	}
	parts := []string{fmt.Sprintf("%s %-5s [%-5s] %-16s", ev.Time.Format("15:04:05.000"), lvl, ev.Comp, ev.Kind)}

	if ev.Msg != "" {
		parts = append(parts, "- "+ev.Msg)
	}
	if ev.Dur > 0 {
		parts = append(parts, fmt.Sprintf("(%.1fms)", float64(ev.Dur.Microseconds())/1000))
	}
	if ev.Token != 0 {
		parts = append(parts, fmt.Sprintf("tok=%d", ev.Token))
	}
	if ev.Gen != "" {
		parts = append(parts, "gen="+ev.Gen)
	}
	if ev.Limit > 0 {
		parts = append(parts, fmt.Sprintf("page=%d+%d", ev.Offset, ev.Limit))
	}
	if ev.Count > 0 {
		parts = append(parts, fmt.Sprintf("n=%d", ev.Count))
	}
	if ev.Facets != "" {
		parts = append(parts, "types="+ev.Facets)
	}
	if ev.Route != "" {
		parts = append(parts, "route="+ev.Route)
	}
	if ev.Query != "" {
		parts = append(parts, fmt.Sprintf("q=%q", ev.Query))
	}
	if ev.Err != "" {
		parts = append(parts, "err="+ev.Err)
	}
	return strings.Join(parts, " ")
}
