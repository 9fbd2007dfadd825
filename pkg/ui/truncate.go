package ui

import "github.com/mattn/go-runewidth"

// truncate shortens s to at most width display cells, appending an
// ellipsis when anything was cut. Width is measured in terminal cells so
// wide runes count as two.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}

// padRight pads s with spaces to exactly width cells, truncating first if
// needed.
func padRight(s string, width int) string {
	s = truncate(s, width)
	return s + spaces(width-runewidth.StringWidth(s))
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
