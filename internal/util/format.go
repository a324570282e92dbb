// Package util holds small formatting helpers shared by the front-ends.
package util

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"
)

// FormatDuration formats a duration as m:ss, or h:mm:ss past an hour.
func FormatDuration(d time.Duration) string {
	total := int(max(d, 0).Seconds())
	h, m, s := total/3600, total/60%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Truncate shortens s to at most width terminal cells, marking the cut with
// an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// OnOff renders a toggle state for status lines.
func OnOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
