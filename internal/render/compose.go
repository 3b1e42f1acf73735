// Package render lays out flashcards as fixed-width bordered boxes of text.
package render

import (
	"github.com/arcanaland/flashcards/internal/card"
)

// Placeholder hides the answer side of a card until it is revealed
const Placeholder = "Answer and Press [Enter] to submit"

// Options selects how a card is drawn
type Options struct {
	// ShowPlaceholder hides the answer side behind Placeholder
	ShowPlaceholder bool
	// Inverted hides the topic instead of the content
	Inverted bool
	// Border is the frame character, zero means DefaultBorder
	Border rune
}

func (o Options) border() rune {
	if o.Border == 0 {
		return DefaultBorder
	}
	return o.Border
}

// Compose returns the lines of one draw of c
func Compose(c *card.Card, opts Options) ([]string, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	border := opts.border()
	horizontal := BorderLine(c.MaxWidth, border)

	topic := topicBlock(c.Topic, c.MaxWidth, border)
	content := contentBlock(c.Content, c.MaxWidth, c.MinContentHeight, border)

	if opts.ShowPlaceholder {
		if opts.Inverted {
			topic = topicBlock(Placeholder, c.MaxWidth, border)
		} else {
			content = contentBlock(Placeholder, c.MaxWidth, c.MinContentHeight, border)
		}
	}

	lines := []string{"", horizontal}
	lines = append(lines, topic...)
	lines = append(lines, horizontal, horizontal)
	lines = append(lines, content...)

	if c.HasAnswer() {
		lines = append(lines, horizontal, horizontal)
		lines = append(lines, answerBlock(c.PreviousAnswer, c.MaxWidth, border)...)
	}

	lines = append(lines, horizontal)
	return lines, nil
}

// topicBlock frames the wrapped topic between two blank lines
func topicBlock(topic string, maxWidth int, border rune) []string {
	raw := []string{""}
	raw = append(raw, Wrap(topic, maxWidth)...)
	raw = append(raw, "")
	return styleAll(raw, maxWidth, border)
}

// contentBlock frames the wrapped content and pads it to a uniform height
func contentBlock(content string, maxWidth, minHeight int, border rune) []string {
	wrapped := Wrap(content, maxWidth)

	raw := []string{""}
	raw = append(raw, wrapped...)
	raw = append(raw, "")

	height := max(minHeight, len(wrapped), len(raw))
	for len(raw) < height {
		raw = append(raw, "")
	}

	return styleAll(raw, maxWidth, border)
}

// answerBlock has the same shape as topicBlock
func answerBlock(answer string, maxWidth int, border rune) []string {
	return topicBlock(answer, maxWidth, border)
}

func styleAll(raw []string, maxWidth int, border rune) []string {
	styled := make([]string, len(raw))
	for i, l := range raw {
		styled[i] = StyleLine(l, maxWidth, border)
	}
	return styled
}
