package card

import (
	"errors"
	"fmt"
)

const (
	// DefaultMaxWidth is the width of a rendered card in columns
	DefaultMaxWidth = 120
	// DefaultMinContentHeight is the minimum number of lines in the content block
	DefaultMinContentHeight = 6
	// WrapMargin is subtracted from the card width to get the text wrap width
	WrapMargin = 5
)

// ErrWidthTooSmall is returned when a card is too narrow to hold any text
var ErrWidthTooSmall = errors.New("card width leaves no room for text")

// Card represents a flashcard
type Card struct {
	Topic          string // Prompt side
	Content        string // Answer side
	PreviousAnswer string // Last answer given, empty when never answered
	Keywords       string // Optional, carried through storage untouched

	MaxWidth         int
	MinContentHeight int

	// Stored is the layout set by the deck file itself
	Stored Layout

	// Source is the deck file the card was loaded from
	Source string
}

// Layout holds per-card layout settings kept in a deck file. A nil field
// means the card follows the session layout.
type Layout struct {
	MaxWidth         *int
	MinContentHeight *int
}

// New creates a card with the default layout
func New(topic, content string) *Card {
	return &Card{
		Topic:            topic,
		Content:          content,
		MaxWidth:         DefaultMaxWidth,
		MinContentHeight: DefaultMinContentHeight,
	}
}

// WrapWidth returns the maximum length of a wrapped text line
func (c *Card) WrapWidth() int {
	return c.MaxWidth - WrapMargin
}

// HasAnswer reports whether the card carries a previous answer
func (c *Card) HasAnswer() bool {
	return c.PreviousAnswer != ""
}

// SetAnswer records the answer given during a session
func (c *Card) SetAnswer(answer string) {
	c.PreviousAnswer = answer
}

// ApplyLayout sets the layout to maxWidth and minContentHeight except where
// the card stores its own values
func (c *Card) ApplyLayout(maxWidth, minContentHeight int) {
	c.MaxWidth = maxWidth
	if c.Stored.MaxWidth != nil {
		c.MaxWidth = *c.Stored.MaxWidth
	}
	c.MinContentHeight = minContentHeight
	if c.Stored.MinContentHeight != nil {
		c.MinContentHeight = *c.Stored.MinContentHeight
	}
}

// Validate checks the layout settings of the card
func (c *Card) Validate() error {
	if c.WrapWidth() <= 0 {
		return fmt.Errorf("%w: max width %d must be greater than %d", ErrWidthTooSmall, c.MaxWidth, WrapMargin)
	}
	if c.MinContentHeight < 0 {
		return fmt.Errorf("min content height must not be negative, got %d", c.MinContentHeight)
	}
	return nil
}
