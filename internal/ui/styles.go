package ui

import "github.com/charmbracelet/lipgloss"

// Palette: dex red for chrome, greys for secondary text.
var (
	colorPrimary   = lipgloss.Color("160")
	colorSecondary = lipgloss.Color("245")
	colorMuted     = lipgloss.Color("239")
	colorHighlight = lipgloss.Color("214")
	colorSuccess   = lipgloss.Color("71")
	colorError     = lipgloss.Color("203")
	colorText      = lipgloss.Color("231")
)

// typeColors tints type badges. Unknown types fall back to colorSecondary.
var typeColors = map[string]lipgloss.Color{
	"normal":   lipgloss.Color("250"),
	"fire":     lipgloss.Color("208"),
	"water":    lipgloss.Color("33"),
	"grass":    lipgloss.Color("70"),
	"electric": lipgloss.Color("220"),
	"ice":      lipgloss.Color("117"),
	"fighting": lipgloss.Color("160"),
	"poison":   lipgloss.Color("134"),
	"ground":   lipgloss.Color("179"),
	"flying":   lipgloss.Color("147"),
	"psychic":  lipgloss.Color("205"),
	"bug":      lipgloss.Color("106"),
	"rock":     lipgloss.Color("137"),
	"ghost":    lipgloss.Color("97"),
	"dragon":   lipgloss.Color("63"),
	"dark":     lipgloss.Color("95"),
	"steel":    lipgloss.Color("109"),
	"fairy":    lipgloss.Color("218"),
}

// TypeBadge renders a type name in its color.
func TypeBadge(name string) string {
	c, ok := typeColors[name]
	if !ok {
		c = colorSecondary
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(c).Padding(0, 1).Render(name)
}

// Header style for the generation header line.
var Header = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorText).
	Background(colorPrimary).
	Padding(0, 1)

// HeaderMeta style for region and population in the header.
var HeaderMeta = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// SelectedItem style for the currently highlighted row.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorText).
	Background(colorPrimary)

// NormalItem style for other rows.
var NormalItem = lipgloss.NewStyle().
	Foreground(colorText)

// OpenItem style for the row whose detail is shown.
var OpenItem = lipgloss.NewStyle().
	Foreground(colorHighlight)

// EntryNumber style for the zero-padded "#0025" column.
var EntryNumber = lipgloss.NewStyle().
	Foreground(colorMuted)

// ListPane style for the left pane.
var ListPane = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderRight(true).
	BorderForeground(colorMuted)

// DetailTitle style for the entity name in the detail pane.
var DetailTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)

// SectionHeader style for detail pane sections.
var SectionHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorPrimary).
	MarginTop(1)

// StatBar style for filled stat bars.
var StatBar = lipgloss.NewStyle().
	Foreground(colorSuccess)

// Muted style for secondary detail text.
var Muted = lipgloss.NewStyle().
	Foreground(colorSecondary)

// StatusBar is the bottom line.
var StatusBar = lipgloss.NewStyle().
	Foreground(colorText).
	Background(lipgloss.Color("235")).
	Padding(0, 1)

var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// StatusBarRoute style for the route path in the status bar.
var StatusBarRoute = lipgloss.NewStyle().
	Foreground(colorText).
	Bold(true)

// ErrorStyle renders the error bar.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(colorError).
	Bold(true).
	Padding(0, 1)

var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// NotFoundStyle for the full-screen not-found view.
var NotFoundStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorError).
	Padding(1, 3)

// SearchBar style for the search input bar.
var SearchBar = lipgloss.NewStyle().
	Foreground(colorText).
	Background(lipgloss.Color("240")).
	Padding(0, 1)

// Dropdown style for search suggestions and the facet picker.
var Dropdown = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(0, 1)

// DropdownCursor style for the highlighted suggestion.
var DropdownCursor = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// DebugPanel style for the debug overlay.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// DebugHeaderStyle for section headers inside the debug overlay.
var DebugHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)
