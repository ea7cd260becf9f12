package output

import (
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// DisplayWidth returns the terminal width of val; wide runes count as 2.
func DisplayWidth(val string) int {
	return runewidth.StringWidth(val)
}

// ToWidth pads val with spaces to width display cells. Values already at
// least that wide are returned unchanged.
func ToWidth(val string, width int) string {
	current := DisplayWidth(val)
	if width <= 0 || current >= width {
		return val
	}
	return val + strings.Repeat(" ", width-current)
}

// Truncate shortens val to at most width cells, ending in "…" when cut.
func Truncate(val string, width int) string {
	return runewidth.Truncate(val, width, "…")
}

// FirstLine returns the first non-empty line of s, trimmed.
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

var (
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed, color.Bold)
	pendingColor = color.New(color.FgYellow)
	mutedColor   = color.New(color.Faint)
)

// Colorize wraps an already padded status cell in the colour for status.
// fatih/color disables itself when stdout is not a terminal or NO_COLOR is set.
func Colorize(status, cell string) string {
	switch status {
	case StatusInstalled, ActionSatisfied:
		return successColor.Sprint(cell)
	case StatusFailed:
		return failureColor.Sprint(cell)
	case StatusPlanned, ActionInstall, ActionUpgrade:
		return pendingColor.Sprint(cell)
	case ActionNewer, StatusUpToDate:
		return mutedColor.Sprint(cell)
	default:
		return cell
	}
}
