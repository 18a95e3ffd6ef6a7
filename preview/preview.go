package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/notation"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	trebleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	bassStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	restStyle    = lipgloss.NewStyle().Faint(true)
	flaggedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Underline(true)
)

var shortNames = map[string]string{
	"whole":   "w",
	"half":    "h",
	"quarter": "q",
	"eighth":  "8",
	"16th":    "16",
	"32nd":    "32",
	"64th":    "64",
	"128th":   "128",
}

// DurationToken is a compact duration like "q", "q." or "1.25b" when no single
// note value fits.
func DurationToken(beats float64) string {
	d, ok := notation.DurationSymbol(beats)
	if !ok {
		return fmt.Sprintf("%gb", beats)
	}
	tok := shortNames[d.Name]
	if d.Dotted {
		tok += "."
	}
	return tok
}

// Token renders one event, e.g. "C4:q~", "r:h" or "(E4:8=".
func Token(n *model.NoteEvent) string {
	if n.IsRest {
		return "r:" + DurationToken(n.DurationBeats)
	}
	var b strings.Builder
	if n.SlurId != "" {
		b.WriteString("(")
	}
	b.WriteString(n.PitchLabel)
	b.WriteString(":")
	b.WriteString(DurationToken(n.DurationBeats))
	if n.Tie == model.TieStart || n.Tie == model.TieContinue {
		b.WriteString("~")
	}
	if n.BeamId != "" {
		b.WriteString("=")
	}
	if n.IsUncertain {
		b.WriteString("?")
	}
	return b.String()
}

func styleFor(n *model.NoteEvent) lipgloss.Style {
	switch {
	case len(n.RemediationFlags) > 0:
		return flaggedStyle
	case n.IsRest:
		return restStyle
	case n.Staff == model.Bass:
		return bassStyle
	default:
		return trebleStyle
	}
}

// RenderMeasure lays out one measure as a line per staff and voice.
func RenderMeasure(m model.Measure) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("measure %d [%g, %g)", m.Index, m.StartBeat, m.EndBeat)))
	b.WriteString("\n")
	for _, s := range []model.Staff{model.Treble, model.Bass} {
		for _, v := range []int{model.Voice1, model.Voice2} {
			notes := m.NotesFor(s, v)
			if len(notes) == 0 {
				continue
			}
			tokens := make([]string, 0, len(notes))
			for _, n := range notes {
				tokens = append(tokens, styleFor(n).Render(Token(n)))
			}
			b.WriteString(fmt.Sprintf("  %-6v v%d | %v\n", s, v, strings.Join(tokens, " ")))
		}
	}
	return b.String()
}

func Render(measures []model.Measure) string {
	var b strings.Builder
	for _, m := range measures {
		b.WriteString(RenderMeasure(m))
	}
	return b.String()
}
