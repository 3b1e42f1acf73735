package render

import (
	"strings"

	"github.com/arcanaland/flashcards/internal/card"
)

// Wrap normalizes whitespace in raw and greedily wraps it into lines of at
// most maxLength-5 characters. Words longer than a whole line are split.
// Empty input yields no lines.
func Wrap(raw string, maxLength int) []string {
	width := maxLength - card.WrapMargin
	words := strings.Fields(raw)
	if len(words) == 0 || width <= 0 {
		return nil
	}

	var lines []string
	var line []rune

	flush := func() {
		lines = append(lines, string(line))
		line = nil
	}

	for _, w := range words {
		word := []rune(w)
		for len(word) > 0 {
			sep := 0
			if len(line) > 0 {
				sep = 1
			}

			// Word fits on the current line
			if len(line)+sep+len(word) <= width {
				if sep == 1 {
					line = append(line, ' ')
				}
				line = append(line, word...)
				break
			}

			// Word can never fit on a line, fill what is left and carry the rest
			if len(word) > width {
				if space := width - len(line) - sep; space > 0 {
					if sep == 1 {
						line = append(line, ' ')
					}
					line = append(line, word[:space]...)
					word = word[space:]
				}
			}
			flush()
		}
	}

	if len(line) > 0 {
		flush()
	}

	return lines
}
