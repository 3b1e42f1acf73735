package deck

import (
	"fmt"

	"github.com/arcanaland/flashcards/internal/card"
)

// Store loads cards from several deck files and writes each card back to
// the file it came from.
type Store struct {
	MaxWidth         int
	MinContentHeight int
}

// NewStore creates a store that applies the given layout to loaded cards
func NewStore(maxWidth, minContentHeight int) *Store {
	return &Store{
		MaxWidth:         maxWidth,
		MinContentHeight: minContentHeight,
	}
}

// Load reads every deck in paths, in order. Cards without a layout of
// their own get the store layout.
func (s *Store) Load(paths []string) ([]*card.Card, error) {
	var cards []*card.Card
	for _, path := range paths {
		loaded, err := loadCards(path, s.MaxWidth, s.MinContentHeight)
		if err != nil {
			return nil, err
		}
		cards = append(cards, loaded...)
	}
	return cards, nil
}

// Save groups cards by source file and overwrites each file. Cards keep
// their relative order within a file.
func (s *Store) Save(cards []*card.Card) error {
	var order []string
	bySource := make(map[string][]*card.Card)

	for _, c := range cards {
		if c.Source == "" {
			return fmt.Errorf("card %q has no source deck", c.Topic)
		}
		if _, ok := bySource[c.Source]; !ok {
			order = append(order, c.Source)
		}
		bySource[c.Source] = append(bySource[c.Source], c)
	}

	for _, path := range order {
		if err := SaveCards(path, bySource[path]); err != nil {
			return fmt.Errorf("error saving %s: %w", path, err)
		}
	}

	return nil
}
