package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle colors an attempt by outcome.
func StatusStyle(status domain.AttemptStatus) lipgloss.Style {
	switch status {
	case domain.AttemptCompleted:
		return StyleGreen
	case domain.AttemptFailed, domain.AttemptRetakeRequired:
		return StyleRed
	case domain.AttemptEnrolled:
		return StyleYellow
	case domain.AttemptPlanned:
		return StyleBlue
	default:
		return StyleDim
	}
}

// CategoryStyle uses the category's catalog color when it is a hex value.
func CategoryStyle(hex string) lipgloss.Style {
	if strings.HasPrefix(hex, "#") && (len(hex) == 7 || len(hex) == 4) {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return StylePurple
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string { return StyleDim.Render(text) }

func Bold(text string) string { return StyleBold.Render(text) }
