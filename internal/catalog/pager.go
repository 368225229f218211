package catalog

import (
	"context"
	"errors"
	"fmt"
)

// DefaultPageSize is the number of entities requested per page.
const DefaultPageSize = 20

var (
	// ErrOutOfRange is returned by Through for targets outside the active range.
	ErrOutOfRange = errors.New("target outside active range")
	// ErrStalePage is returned by Complete for a request that no longer
	// matches the cursor.
	ErrStalePage = errors.New("stale page")
)

// PagerState is the paging state machine for one active range.
type PagerState int

const (
	Idle PagerState = iota
	Fetching
	Exhausted
)

func (s PagerState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("PagerState(%d)", int(s))
	}
}

// PageRequest is one bounded fetch. Replace requests rebuild the list from
// the range start (deep links); the others append.
type PageRequest struct {
	Offset  int
	Limit   int
	Replace bool
}

// Pager fetches one range in ascending, gap-free pages.
//
// State changes happen only in Reset, Next, Through and Complete, which the
// caller runs on one goroutine. Fetch touches no state and may run anywhere.
type Pager struct {
	src      Source
	pageSize int

	rng    Range
	offset int
	state  PagerState
	list   []EntityStub
}

// NewPager creates a pager with the given page size (DefaultPageSize if <= 0).
func NewPager(src Source, pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{src: src, pageSize: pageSize}
}

// Reset makes r the active range and clears the list.
func (p *Pager) Reset(r Range) {
	p.rng = r
	p.offset = r.Start
	p.list = nil
	p.state = Idle
	if r.Len() == 0 {
		p.state = Exhausted
	}
}

// Next returns the next page request and moves to Fetching. ok is false
// while a fetch is outstanding or once the range is exhausted.
func (p *Pager) Next() (req PageRequest, ok bool) {
	if p.state != Idle || p.offset >= p.rng.End {
		return PageRequest{}, false
	}
	p.state = Fetching
	return PageRequest{Offset: p.offset, Limit: min(p.pageSize, p.rng.End-p.offset)}, true
}

// Through returns a single request that covers the range start up to and
// including the page holding entity id, and moves to Fetching.
func (p *Pager) Through(id int) (PageRequest, error) {
	if !p.rng.ContainsID(id) {
		return PageRequest{}, fmt.Errorf("%w: id %d not in %s", ErrOutOfRange, id, p.rng)
	}
	span := id - p.rng.Start
	limit := (span + p.pageSize - 1) / p.pageSize * p.pageSize
	limit = min(limit, p.rng.Len())
	p.state = Fetching
	return PageRequest{Offset: p.rng.Start, Limit: limit, Replace: true}, nil
}

// Fetch performs the I/O for req.
func (p *Pager) Fetch(ctx context.Context, req PageRequest) ([]EntityStub, error) {
	entries, err := p.src.ListEntities(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("fetch page [%d,+%d): %w", req.Offset, req.Limit, err)
	}
	return entries, nil
}

// Complete applies the outcome of req. On failure the pager returns to Idle
// and err is passed through; nothing is retried.
func (p *Pager) Complete(req PageRequest, entries []EntityStub, err error) error {
	if p.state != Fetching {
		return ErrStalePage
	}
	if !req.Replace && req.Offset != p.offset {
		return ErrStalePage
	}
	if err != nil {
		p.state = Idle
		return err
	}

	if req.Replace {
		p.list = append([]EntityStub(nil), entries...)
		p.offset = req.Offset + req.Limit
	} else {
		p.list = append(p.list, entries...)
		p.offset += req.Limit
	}

	p.state = Idle
	if p.offset >= p.rng.End {
		p.state = Exhausted
	}
	return nil
}

// LoadNext fetches and applies the next page. It is a no-op while fetching
// or exhausted.
func (p *Pager) LoadNext(ctx context.Context) error {
	req, ok := p.Next()
	if !ok {
		return nil
	}
	entries, err := p.Fetch(ctx, req)
	return p.Complete(req, entries, err)
}

// LoadThrough replaces the list with one fetch that includes entity id.
func (p *Pager) LoadThrough(ctx context.Context, id int) error {
	req, err := p.Through(id)
	if err != nil {
		return err
	}
	entries, err := p.Fetch(ctx, req)
	return p.Complete(req, entries, err)
}

// List returns a copy of the entities loaded since the last Reset.
func (p *Pager) List() []EntityStub {
	out := make([]EntityStub, len(p.list))
	copy(out, p.list)
	return out
}

// Len returns the number of loaded entities.
func (p *Pager) Len() int {
	return len(p.list)
}

// Offset returns the next unfetched position.
func (p *Pager) Offset() int {
	return p.offset
}

// State returns the current paging state.
func (p *Pager) State() PagerState {
	return p.state
}

// Range returns the active range.
func (p *Pager) Range() Range {
	return p.rng
}

// PageSize returns the configured page size.
func (p *Pager) PageSize() int {
	return p.pageSize
}
