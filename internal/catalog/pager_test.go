package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/abelbrown/dex/internal/catalog"
)

func assertGapFree(t *testing.T, list []catalog.EntityStub, r catalog.Range) {
	t.Helper()
	for i, e := range list {
		if want := r.Start + i + 1; e.ID != want {
			t.Fatalf("list[%d].ID = %d, want %d", i, e.ID, want)
		}
	}
}

func TestPagerExhaustsGenerationOne(t *testing.T) {
	srv, src := newFixture(t, 151, 100)
	idx := buildIndex(t, src)
	r, _ := idx.RangeFor(1)

	p := catalog.NewPager(src, 20)
	p.Reset(r)

	before := srv.Requests("/pokemon/")
	fetches := 0
	for p.State() != catalog.Exhausted {
		if err := p.LoadNext(context.Background()); err != nil {
			t.Fatalf("LoadNext failed: %v", err)
		}
		fetches++
		if fetches > 20 {
			t.Fatal("pager never exhausted")
		}
	}

	if fetches != 8 {
		t.Errorf("expected 8 fetches, got %d", fetches)
	}
	if got := srv.Requests("/pokemon/") - before; got != 8 {
		t.Errorf("expected 8 upstream requests, got %d", got)
	}
	if p.Len() != 151 {
		t.Errorf("expected 151 entities, got %d", p.Len())
	}
	if p.Offset() != r.End {
		t.Errorf("offset = %d, want %d", p.Offset(), r.End)
	}
	assertGapFree(t, p.List(), r)
}

func TestPagerNeverCrossesRangeEnd(t *testing.T) {
	_, src := newFixture(t, 151, 100)
	idx := buildIndex(t, src)
	r, _ := idx.RangeFor(2)

	p := catalog.NewPager(src, 30)
	p.Reset(r)

	var limits []int
	for {
		req, ok := p.Next()
		if !ok {
			break
		}
		limits = append(limits, req.Limit)
		entries, err := p.Fetch(context.Background(), req)
		if err := p.Complete(req, entries, err); err != nil {
			t.Fatalf("Complete failed: %v", err)
		}
	}

	want := []int{30, 30, 30, 10}
	if len(limits) != len(want) {
		t.Fatalf("limits = %v, want %v", limits, want)
	}
	for i := range want {
		if limits[i] != want[i] {
			t.Errorf("limits = %v, want %v", limits, want)
			break
		}
	}
	assertGapFree(t, p.List(), r)
	if p.List()[p.Len()-1].ID != 251 {
		t.Errorf("last ID = %d, want 251", p.List()[p.Len()-1].ID)
	}
}

func TestPagerNextIsSingleFlight(t *testing.T) {
	_, src := newFixture(t, 50)
	p := catalog.NewPager(src, 20)
	p.Reset(catalog.Range{Start: 0, End: 50})

	if _, ok := p.Next(); !ok {
		t.Fatal("first Next should succeed")
	}
	if _, ok := p.Next(); ok {
		t.Error("second Next while fetching must be refused")
	}
	if p.State() != catalog.Fetching {
		t.Errorf("state = %v, want fetching", p.State())
	}
}

func TestPagerFailureReturnsToIdle(t *testing.T) {
	srv, src := newFixture(t, 50)
	p := catalog.NewPager(src, 20)
	p.Reset(catalog.Range{Start: 0, End: 50})

	srv.Fail("/pokemon/", http.StatusBadGateway)
	if err := p.LoadNext(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if p.State() != catalog.Idle || p.Offset() != 0 || p.Len() != 0 {
		t.Errorf("failed fetch mutated cursor: state=%v offset=%d len=%d", p.State(), p.Offset(), p.Len())
	}

	srv.Heal()
	if err := p.LoadNext(context.Background()); err != nil {
		t.Fatalf("retry by caller failed: %v", err)
	}
	if p.Len() != 20 {
		t.Errorf("expected 20 entities after retry, got %d", p.Len())
	}
}

func TestPagerLoadThroughIncludesTarget(t *testing.T) {
	_, src := newFixture(t, 151, 100)
	idx := buildIndex(t, src)
	r, _ := idx.RangeFor(2)

	for _, target := range []int{152, 160, 171, 172, 200, 251} {
		p := catalog.NewPager(src, 20)
		p.Reset(r)
		if err := p.LoadThrough(context.Background(), target); err != nil {
			t.Fatalf("LoadThrough(%d) failed: %v", target, err)
		}
		found := false
		for _, e := range p.List() {
			if e.ID == target {
				found = true
			}
		}
		if !found {
			t.Errorf("LoadThrough(%d): target missing from list of %d", target, p.Len())
		}
		if p.Len()%20 != 0 && p.Offset() != r.End {
			t.Errorf("LoadThrough(%d): partial page without reaching range end", target)
		}
		assertGapFree(t, p.List(), r)
	}
}

func TestPagerLoadThroughArithmetic(t *testing.T) {
	_, src := newFixture(t, 151, 100)
	p := catalog.NewPager(src, 20)
	p.Reset(catalog.Range{Start: 151, End: 251})

	tests := []struct {
		target int
		limit  int
	}{
		{152, 20},
		{171, 20},
		{172, 40},
		{251, 100},
	}
	for _, tt := range tests {
		req, err := p.Through(tt.target)
		if err != nil {
			t.Fatalf("Through(%d) failed: %v", tt.target, err)
		}
		if req.Offset != 151 || req.Limit != tt.limit || !req.Replace {
			t.Errorf("Through(%d) = %+v, want offset 151 limit %d", tt.target, req, tt.limit)
		}
	}

	if _, err := p.Through(151); !errors.Is(err, catalog.ErrOutOfRange) {
		t.Errorf("Through(151) should be out of range for gen 2, got %v", err)
	}
	if _, err := p.Through(252); !errors.Is(err, catalog.ErrOutOfRange) {
		t.Errorf("Through(252) should be out of range, got %v", err)
	}
}

func TestPagerContinuesAfterLoadThrough(t *testing.T) {
	_, src := newFixture(t, 100)
	p := catalog.NewPager(src, 20)
	r := catalog.Range{Start: 0, End: 100}
	p.Reset(r)

	if err := p.LoadThrough(context.Background(), 45); err != nil {
		t.Fatalf("LoadThrough failed: %v", err)
	}
	if p.Offset() != 60 {
		t.Fatalf("offset = %d, want 60", p.Offset())
	}
	for p.State() != catalog.Exhausted {
		if err := p.LoadNext(context.Background()); err != nil {
			t.Fatalf("LoadNext failed: %v", err)
		}
	}
	if p.Len() != 100 {
		t.Errorf("expected 100 entities, got %d", p.Len())
	}
	assertGapFree(t, p.List(), r)
}

func TestPagerCompleteRejectsStaleRequest(t *testing.T) {
	_, src := newFixture(t, 100)
	p := catalog.NewPager(src, 20)
	p.Reset(catalog.Range{Start: 0, End: 100})

	req, _ := p.Next()
	entries, err := p.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	p.Reset(catalog.Range{Start: 50, End: 100})
	if err := p.Complete(req, entries, nil); !errors.Is(err, catalog.ErrStalePage) {
		t.Errorf("expected ErrStalePage, got %v", err)
	}
	if p.Len() != 0 {
		t.Errorf("stale page was applied: len=%d", p.Len())
	}
}

func TestPagerEmptyRangeIsExhausted(t *testing.T) {
	_, src := newFixture(t, 10)
	p := catalog.NewPager(src, 20)
	p.Reset(catalog.Range{Start: 5, End: 5})
	if p.State() != catalog.Exhausted {
		t.Errorf("state = %v, want exhausted", p.State())
	}
	if _, ok := p.Next(); ok {
		t.Error("Next on empty range must be refused")
	}
}
