package table

import "github.com/charmbracelet/lipgloss"

// Scrollbar glyphs.
const (
	thumbGlyph         = "▐"
	thumbExpandedGlyph = "█"
	trackGlyph         = "│"
	blankGlyph         = " "
)

// Styles holds the lipgloss styles used to draw the table.
type Styles struct {
	Header        lipgloss.Style
	Cell          lipgloss.Style
	Footer        lipgloss.Style
	Error         lipgloss.Style
	Track         lipgloss.Style
	Thumb         lipgloss.Style
	ThumbExpanded lipgloss.Style
}

// DefaultStyles returns the default table styles.
func DefaultStyles() Styles {
	return Styles{
		Header:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Cell:          lipgloss.NewStyle(),
		Footer:        lipgloss.NewStyle().Faint(true),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Track:         lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Thumb:         lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		ThumbExpanded: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	}
}
