package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/palette/internal/model"
)

// Board swatches
var swatches = map[model.Color]lipgloss.Color{
	model.ColorCoral:    lipgloss.Color("#FF7F6B"),
	model.ColorLavender: lipgloss.Color("#B39DDB"),
	model.ColorMint:     lipgloss.Color("#95E1A3"),
	model.ColorSky:      lipgloss.Color("#7EC8E3"),
	model.ColorPeach:    lipgloss.Color("#FFB38A"),
	model.ColorRose:     lipgloss.Color("#F48FB1"),
}

// UI colors
var (
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
	Danger    = lipgloss.Color("#FF6B6B")
	Warning   = lipgloss.Color("#FFE66D")
	Success   = lipgloss.Color("#95E1A3")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	SidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Border).
			Padding(1, 1)

	BoardItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	BoardItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	ColumnStyle = lipgloss.NewStyle().
			Width(24).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1).
			MarginRight(1)

	ColumnSelectedStyle = ColumnStyle.
				BorderForeground(Primary)

	CardStyle = lipgloss.NewStyle()

	CardSelectedStyle = lipgloss.NewStyle().
				Background(Surface).
				Bold(true)

	OverdueStyle = lipgloss.NewStyle().Foreground(Danger)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	WarnStyle    = lipgloss.NewStyle().Foreground(Warning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Danger).Bold(true)
)

// Swatch returns the display color of a board color. Colors outside the
// palette render muted.
func Swatch(c model.Color) lipgloss.Color {
	if s, ok := swatches[c]; ok {
		return s
	}
	return TextMuted
}

// Dot renders a colored bullet for c
func Dot(c model.Color) string {
	return lipgloss.NewStyle().Foreground(Swatch(c)).Render("●")
}
