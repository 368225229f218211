// Package otel records what a dex session did: typed events appended to a
// JSONL file by Logger, with the recent tail kept in a RingBuffer for the
// debug overlay. dexctl events reads the file back.
package otel

import (
	"encoding/json"
	"os"
	"sync/atomic"
	"time"
)

// Level is an event's severity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind names what happened, as "<area>.<action>". Prefix filters
// (RingBuffer.Matching, dexctl events --kind) work on the area.
type EventKind string

const (
	// index and list loading
	KindIndexBuild  EventKind = "index.build"
	KindIndexError  EventKind = "index.error"
	KindPageFetch   EventKind = "page.fetch"
	KindPageError   EventKind = "page.error"
	KindFilterApply EventKind = "filter.apply"
	KindFilterError EventKind = "filter.error"
	KindFacetList   EventKind = "facet.list"
	KindFacetReject EventKind = "facet.reject"

	// a list result arrived for a superseded job
	KindJobStale EventKind = "job.stale"

	KindSearchLoad  EventKind = "search.load"
	KindSearchQuery EventKind = "search.query"
	KindSearchError EventKind = "search.error"

	// routes and the detail view
	KindRoute       EventKind = "route.change"
	KindRouteError  EventKind = "route.not_found"
	KindDetailLoad  EventKind = "detail.load"
	KindDetailError EventKind = "detail.error"
	KindMoveTable   EventKind = "detail.moves"

	// only with DEX_TRACE set
	KindKeyPress EventKind = "ui.key"

	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
	KindError    EventKind = "sys.error"
)

// Event is one log line. Only Kind and Time are always set.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
	Token     uint64         `json:"token,omitempty"` // list job token
	Dur       time.Duration  `json:"-"`
	DurMs     float64        `json:"dur_ms,omitempty"` // written from Dur
	Count     int            `json:"count,omitempty"`
	Gen       string         `json:"gen,omitempty"`
	Offset    int            `json:"offset,omitempty"`
	Limit     int            `json:"limit,omitempty"`
	Facets    string         `json:"facets,omitempty"`
	Route     string         `json:"route,omitempty"`
	Query     string         `json:"query,omitempty"`
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// event drops Event's MarshalJSON so the encoder does not recurse.
type event Event

// MarshalJSON writes Dur as fractional milliseconds.
func (e Event) MarshalJSON() ([]byte, error) {
	if e.Dur > 0 {
		e.DurMs = e.Dur.Seconds() * 1000
	}
	return json.Marshal(event(e))
}

// Failed reports whether the event carries an error.
func (e Event) Failed() bool {
	return e.Level == LevelError || e.Err != ""
}

// traceOn gates ui.key events, which fire on every key press.
var traceOn atomic.Bool

func init() {
	traceOn.Store(os.Getenv("DEX_TRACE") != "")
}

// TraceEnabled reports whether DEX_TRACE was set at startup.
func TraceEnabled() bool { return traceOn.Load() }
