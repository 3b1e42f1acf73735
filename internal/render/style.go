package render

import (
	"strings"
	"unicode/utf8"
)

// DefaultBorder is the character cards are framed with
const DefaultBorder = '*'

// StyleLine centers line between two border columns. The result is always
// exactly maxLength characters long; text that does not fit is truncated.
func StyleLine(line string, maxLength int, border rune) string {
	if maxLength < 2 {
		return strings.Repeat(string(border), max(maxLength, 0))
	}

	inner := center(truncate(line, maxLength-2), maxLength-2, ' ')
	return center(inner, maxLength, border)
}

// BorderLine returns a full-width horizontal border
func BorderLine(maxLength int, border rune) string {
	return strings.Repeat(string(border), max(maxLength, 0))
}

// center pads s with fill on both sides, odd padding goes to the right
func center(s string, width int, fill rune) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}

	pad := width - n
	left := pad / 2
	f := string(fill)
	return strings.Repeat(f, left) + s + strings.Repeat(f, pad-left)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width])
}
