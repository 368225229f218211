package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/dex/internal/catalog"
)

// facetPicker lists the facet catalog with a cursor. Selection state lives
// in the list controller; the picker only reports which tag to toggle.
type facetPicker struct {
	tags   []string
	cursor int
	active bool
}

// Update handles input. toggle is the tag to toggle, clearAll asks for every
// facet to be dropped.
func (p facetPicker) Update(msg tea.KeyMsg) (picker facetPicker, toggle string, clearAll bool) {
	switch {
	case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Facets), key.Matches(msg, keys.Open):
		p.active = false
	case key.Matches(msg, keys.Down):
		if p.cursor < len(p.tags)-1 {
			p.cursor++
		}
	case key.Matches(msg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keys.Toggle):
		if p.cursor < len(p.tags) {
			return p, p.tags[p.cursor], false
		}
	case key.Matches(msg, keys.Clear):
		return p, "", true
	}
	return p, "", false
}

// View renders the picker with the current selection marked.
func (p facetPicker) View(sel catalog.FacetSelection, height int) string {
	var lines []string
	lines = append(lines, DebugHeaderStyle.Render(fmt.Sprintf("Types (%d/%d)", sel.Len(), catalog.MaxFacets)))
	if len(p.tags) == 0 {
		lines = append(lines, Muted.Render("loading types..."))
		return Dropdown.Render(strings.Join(lines, "\n"))
	}

	visible := height - 4
	if visible < 1 {
		visible = 1
	}
	offset := scrollOffset(p.cursor, len(p.tags), visible)
	for i := offset; i < len(p.tags) && i < offset+visible; i++ {
		box := "[ ]"
		if sel.Contains(p.tags[i]) {
			box = "[x]"
		}
		line := box + " " + TypeBadge(p.tags[i])
		if i == p.cursor {
			line = DropdownCursor.Render(">") + line
		} else {
			line = " " + line
		}
		lines = append(lines, line)
	}
	lines = append(lines, Muted.Render("space toggle · c clear · esc close"))
	return Dropdown.Render(strings.Join(lines, "\n"))
}

// searchBox is the search input with its suggestion dropdown.
type searchBox struct {
	input   textinput.Model
	results []catalog.EntityStub
	cursor  int
	active  bool
	err     error
}

func newSearchBox() searchBox {
	ti := textinput.New()
	ti.Placeholder = "species name..."
	ti.Prompt = "/ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	ti.CharLimit = 40
	return searchBox{input: ti}
}

// Activate shows the box with an empty query.
func (s *searchBox) Activate() tea.Cmd {
	s.active = true
	s.input.SetValue("")
	s.results = nil
	s.cursor = 0
	s.err = nil
	s.input.Focus()
	return textinput.Blink
}

// Deactivate hides the box.
func (s *searchBox) Deactivate() {
	s.active = false
	s.input.Blur()
}

// Term returns the trimmed query.
func (s searchBox) Term() string {
	return strings.TrimSpace(s.input.Value())
}

// Selected returns the highlighted suggestion.
func (s searchBox) Selected() (catalog.EntityStub, bool) {
	if s.cursor < 0 || s.cursor >= len(s.results) {
		return catalog.EntityStub{}, false
	}
	return s.results[s.cursor], true
}

// SetResults stores results for term, ignoring results for older terms.
func (s *searchBox) SetResults(msg SearchResults) {
	if msg.Term != s.Term() {
		return
	}
	s.results = msg.Results
	s.err = msg.Err
	if s.cursor >= len(s.results) {
		s.cursor = 0
	}
}

// Update forwards editing keys to the input. changed reports whether the
// query text changed.
func (s searchBox) Update(msg tea.KeyMsg) (box searchBox, cmd tea.Cmd, changed bool) {
	switch msg.String() {
	case "down", "ctrl+n":
		if s.cursor < len(s.results)-1 {
			s.cursor++
		}
		return s, nil, false
	case "up", "ctrl+p":
		if s.cursor > 0 {
			s.cursor--
		}
		return s, nil, false
	}
	before := s.input.Value()
	s.input, cmd = s.input.Update(msg)
	return s, cmd, s.input.Value() != before
}

// View renders the input bar and suggestions.
func (s searchBox) View(width int, loading bool) string {
	bar := SearchBar.Width(width).Render(s.input.View())
	var lines []string
	switch {
	case loading:
		lines = append(lines, Muted.Render("search index loading..."))
	case s.err != nil:
		lines = append(lines, ErrorStyle.Render(s.err.Error()))
	case s.Term() != "" && len(s.results) == 0:
		lines = append(lines, Muted.Render("no matches"))
	}
	for i, r := range s.results {
		label := fmt.Sprintf("#%d %s", r.ID, r.Name)
		if i == s.cursor {
			lines = append(lines, DropdownCursor.Render("> "+label))
		} else {
			lines = append(lines, "  "+label)
		}
	}
	if len(lines) == 0 {
		return bar
	}
	return bar + "\n" + Dropdown.Render(strings.Join(lines, "\n"))
}
