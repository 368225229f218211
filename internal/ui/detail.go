package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/abelbrown/dex/internal/detail"
)

// statBarWidth is the number of cells a maxed stat fills.
const statBarWidth = 24

// moveTable is the state of the move section of the detail pane.
type moveTable struct {
	groups  []string
	group   int
	rows    []detail.MoveRow
	loading bool
	err     error
}

// current returns the selected version group, or "" when there are none.
func (m moveTable) current() string {
	if len(m.groups) == 0 {
		return ""
	}
	return m.groups[m.group]
}

// RenderDetail renders a detail view as plain styled text for the viewport.
func RenderDetail(v *detail.View, moves moveTable, width int) string {
	if v == nil {
		return HelpStyle.Render("Select an entry and press enter.")
	}
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	title := fmt.Sprintf("#%d %s", v.FormID, v.Name)
	b.WriteString(DetailTitle.Render(title))
	if v.Name != v.Species {
		b.WriteString(Muted.Render("  (" + v.Species + ")"))
	}
	b.WriteString("\n")

	var badges []string
	for _, t := range v.Types {
		badges = append(badges, TypeBadge(t))
	}
	b.WriteString(strings.Join(badges, " "))
	b.WriteString(Muted.Render(fmt.Sprintf("  %.1f m  %.1f kg", float64(v.Height)/10, float64(v.Weight)/10)))
	b.WriteString("\n")

	if len(v.Flavor) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Render(v.Flavor[0]))
		b.WriteString("\n")
	}

	section(&b, "Stats")
	for _, s := range v.Stats {
		filled := int(s.Fraction()*statBarWidth + 0.5)
		b.WriteString(fmt.Sprintf("%s %3d %s\n",
			runewidth.FillRight(s.Name, 16), s.Value,
			StatBar.Render(strings.Repeat("█", filled))+Muted.Render(strings.Repeat("░", statBarWidth-filled))))
	}

	section(&b, "Abilities")
	for _, a := range v.Abilities {
		name := a.Name
		if a.Hidden {
			name += " (hidden)"
		}
		effect := runewidth.Truncate(a.Effect, max(width-runewidth.StringWidth(name)-2, 1), "…")
		b.WriteString(name + "  " + Muted.Render(effect) + "\n")
	}

	if len(v.Weaknesses) > 0 {
		section(&b, "Weaknesses")
		var parts []string
		for _, w := range v.Weaknesses {
			parts = append(parts, TypeBadge(w.Type)+" "+w.Label())
		}
		b.WriteString(wrapJoin(parts, "  ", width))
		b.WriteString("\n")
	}

	if len(v.Evolution) > 1 {
		section(&b, "Evolution")
		for _, st := range v.Evolution {
			indent := strings.Repeat("  ", st.Depth)
			line := indent + st.Name
			if st.Trigger != "" {
				line += Muted.Render("  " + st.Trigger)
			}
			b.WriteString(line + "\n")
		}
	}

	if len(v.Forms) > 1 {
		section(&b, "Forms")
		for _, f := range v.Forms {
			mark := "  "
			if f.ID == v.FormID {
				mark = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s %s\n", mark, f.Name, Muted.Render("#"+strconv.Itoa(f.ID))))
		}
	}

	section(&b, "Moves "+Muted.Render(moveCaption(moves)))
	switch {
	case moves.loading:
		b.WriteString(Muted.Render("loading...") + "\n")
	case moves.err != nil:
		b.WriteString(ErrorStyle.Render(moves.err.Error()) + "\n")
	case len(moves.rows) == 0:
		b.WriteString(Muted.Render("none") + "\n")
	default:
		for _, r := range moves.rows {
			b.WriteString(renderMoveRow(r) + "\n")
		}
	}

	return b.String()
}

func section(b *strings.Builder, title string) {
	b.WriteString(SectionHeader.Render(title))
	b.WriteString("\n")
}

func moveCaption(m moveTable) string {
	if len(m.groups) == 0 {
		return ""
	}
	return fmt.Sprintf("%s (%d/%d, m to cycle)", m.current(), m.group+1, len(m.groups))
}

func renderMoveRow(r detail.MoveRow) string {
	level := "  -"
	if r.Level > 0 {
		level = fmt.Sprintf("%3d", r.Level)
	}
	return fmt.Sprintf("%s %s %s %s %4s %4s %3s",
		level,
		runewidth.FillRight(runewidth.Truncate(r.Name, 18, "…"), 18),
		runewidth.FillRight(r.Type, 9),
		runewidth.FillRight(r.Class, 9),
		optInt(r.Power), optInt(r.Accuracy), optInt(r.PP))
}

func optInt(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

// wrapJoin joins parts with sep, breaking lines so none exceeds width.
func wrapJoin(parts []string, sep string, width int) string {
	var b strings.Builder
	line := 0
	for i, p := range parts {
		w := lipgloss.Width(p)
		if i > 0 {
			if line+lipgloss.Width(sep)+w > width {
				b.WriteString("\n")
				line = 0
			} else {
				b.WriteString(sep)
				line += lipgloss.Width(sep)
			}
		}
		b.WriteString(p)
		line += w
	}
	return b.String()
}
