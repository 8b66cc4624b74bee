package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░] 45% for a 0..100 percentage.
// Green at 100, yellow from 50, red below.
func RenderProgress(pct int, width int) string {
	pct = min(max(pct, 0), 100)
	width = max(width, 2)

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 50:
		style = StyleRed
	case pct < 100:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}
