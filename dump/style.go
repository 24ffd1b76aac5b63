package dump

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type styles struct {
	name    lipgloss.Style
	hex     lipgloss.Style
	meaning lipgloss.Style
	label   lipgloss.Style
	comment lipgloss.Style
	offset  lipgloss.Style
	enabled bool
}

// newStyles builds the palette. Styles render through their own renderer
// with a fixed profile so that Color=true produces escape codes even when
// the output is not a terminal.
func newStyles(color bool) styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)
	return styles{
		name:    r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		hex:     r.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		meaning: r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
		label:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		comment: r.NewStyle().Foreground(lipgloss.Color("#666666")),
		offset:  r.NewStyle().Foreground(lipgloss.Color("#FFB86C")),
		enabled: color,
	}
}

func (s styles) paint(st lipgloss.Style, text string) string {
	if !s.enabled || text == "" {
		return text
	}
	return st.Render(text)
}
