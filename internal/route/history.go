package route

import "github.com/abelbrown/dex/internal/catalog"

// History is the navigation stack. Current is the single source of truth
// for what the display shows.
type History struct {
	entries []Route
	pos     int
}

// NewHistory starts a history at r.
func NewHistory(r Route) *History {
	return &History{entries: []Route{r}}
}

// Current returns the active route.
func (h *History) Current() Route {
	return h.entries[h.pos]
}

// Push makes r current, dropping any forward entries. Pushing the current
// route again is a no-op.
func (h *History) Push(r Route) {
	if r == h.Current() {
		return
	}
	h.entries = append(h.entries[:h.pos+1], r)
	h.pos++
}

// Replace swaps the current route without growing the stack.
func (h *History) Replace(r Route) {
	h.entries[h.pos] = r
}

// Back moves one entry back. ok is false at the start of history.
func (h *History) Back() (Route, bool) {
	if h.pos == 0 {
		return h.Current(), false
	}
	h.pos--
	return h.Current(), true
}

// Forward moves one entry forward. ok is false at the end of history.
func (h *History) Forward() (Route, bool) {
	if h.pos == len(h.entries)-1 {
		return h.Current(), false
	}
	h.pos++
	return h.Current(), true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Navigate pushes the route for an entity in a generation. Its signature
// matches controller.Navigator.
func (h *History) Navigate(gen catalog.GenID, id int) {
	h.Push(Route{Gen: gen, ID: id})
}
