package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 1)

	if title != "" {
		return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return box.Render(content)
}

// Credits prints whole credit values without a fraction: 1, 0.5, 4.5.
func Credits(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}

// CreditLoad renders "3/5 cr", red when over the limit.
func CreditLoad(total, limit float64) string {
	text := fmt.Sprintf("%s/%s cr", Credits(total), Credits(limit))
	if limit > 0 && total > limit {
		return StyleRed.Render(text + " !")
	}
	return StyleDim.Render(text)
}

// StatusPill returns a colored indicator for an attempt status.
func StatusPill(status domain.AttemptStatus) string {
	style := StatusStyle(status)
	switch status {
	case domain.AttemptCompleted:
		return style.Render("✔ completed")
	case domain.AttemptFailed:
		return style.Render("✖ failed")
	case domain.AttemptRetakeRequired:
		return style.Render("↻ retake")
	case domain.AttemptEnrolled:
		return style.Render("● enrolled")
	case domain.AttemptPlanned:
		return style.Render("○ planned")
	default:
		return style.Render(string(status))
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Warnings renders a list of warnings, or nothing.
func Warnings(ws []string) string {
	if len(ws) == 0 {
		return ""
	}
	var b strings.Builder
	for _, w := range ws {
		b.WriteString(StyleYellow.Render("  ⚠ " + w))
		b.WriteString("\n")
	}
	return b.String()
}

// Bullets renders lines prefixed with a dimmed marker.
func Bullets(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(Dim("  • "))
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}
