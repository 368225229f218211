package ui

import "github.com/charmbracelet/bubbles/key"

// Key bindings
var keys = struct {
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Open     key.Binding
	PrevGen  key.Binding
	NextGen  key.Binding
	Facets   key.Binding
	Search   key.Binding
	Moves    key.Binding
	Back     key.Binding
	Forward  key.Binding
	Retry    key.Binding
	Debug    key.Binding
	Escape   key.Binding
	Toggle   key.Binding
	Clear    key.Binding
	ScrollUp key.Binding
	ScrollDn key.Binding
}{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
	Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
	Top:      key.NewBinding(key.WithKeys("g", "home")),
	Bottom:   key.NewBinding(key.WithKeys("G", "end")),
	Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	PrevGen:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev gen")),
	NextGen:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next gen")),
	Facets:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "types")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Moves:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "moves")),
	Back:     key.NewBinding(key.WithKeys("b", "backspace"), key.WithHelp("b", "back")),
	Forward:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "forward")),
	Retry:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
	Debug:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "debug")),
	Escape:   key.NewBinding(key.WithKeys("esc")),
	Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	ScrollUp: key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
	ScrollDn: key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
}
