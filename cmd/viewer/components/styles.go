package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Color definitions
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7D56F4")
	SecondaryColor = lipgloss.Color("#04B575")
	DangerColor    = lipgloss.Color("#F25D94")

	// Grayscale
	LightGray = lipgloss.Color("#D9D9D9")
	Gray      = lipgloss.Color("#8B8B8B")
	DarkGray  = lipgloss.Color("#383838")
)

// Base styles
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(0, 2)

	// Border styles
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray)

	// Info panel styles
	InfoPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(0, 1).
			Width(30)

	InfoLabelStyle = lipgloss.NewStyle().
			Foreground(Gray)

	InfoValueStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Bold(true)

	// Status bar style
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(DarkGray).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(DangerColor).
			Bold(true)

	// Help styles
	HelpStyle = lipgloss.NewStyle().
			Foreground(Gray).
			Italic(true).
			Padding(0, 1)
)

// CellSymbol fills one grid cell. Cells are two columns wide so samples
// come out roughly square in a terminal.
const CellSymbol = "  "

// CellWidth is the number of terminal columns one cell occupies.
const CellWidth = len(CellSymbol)

// Cell renders one grid cell painted with c.
func Cell(c colorful.Color) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Clamped().Hex())).Render(CellSymbol)
}
