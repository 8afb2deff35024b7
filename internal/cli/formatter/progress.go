package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░] 4/10. done is clamped to
// [0, total]. An empty schedule renders an empty bar.
func RenderProgress(done, total, width int) string {
	width = max(width, 2)
	done = min(max(done, 0), total)

	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleBlue
	if total > 0 && done == total {
		style = StyleGreen
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), done, total)
}
