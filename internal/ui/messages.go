// Package ui provides the Bubble Tea TUI for dex.
package ui

import (
	"github.com/abelbrown/dex/internal/catalog"
	"github.com/abelbrown/dex/internal/controller"
	"github.com/abelbrown/dex/internal/detail"
	"github.com/abelbrown/dex/internal/route"
	"github.com/abelbrown/dex/internal/search"
)

// IndexReady is sent when the generation index build finishes.
type IndexReady struct {
	Index *catalog.RangeIndex
	Err   error
}

// FacetsLoaded is sent when the facet catalog is known.
type FacetsLoaded struct {
	Tags []string
	Err  error
}

// SearchReady is sent when the search name index load finishes. Index is set
// even on failure so the load can be retried.
type SearchReady struct {
	Index *search.Index
	Count int
	Err   error
}

// ListResult carries a finished list job back to the update loop.
type ListResult struct {
	controller.Result
}

// DetailLoaded is sent when the detail view for Route is ready.
type DetailLoaded struct {
	Route route.Route
	View  *detail.View
	Err   error
}

// MovesLoaded is sent when the move table for one entity and version group
// is ready.
type MovesLoaded struct {
	FormID int
	Group  string
	Rows   []detail.MoveRow
	Err    error
}

// SearchResults is sent when a search query finishes.
type SearchResults struct {
	Term    string
	Results []catalog.EntityStub
	Err     error
}
