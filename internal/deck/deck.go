package deck

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/arcanaland/flashcards/internal/card"
)

// Format is the serialization used by a deck file
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// Extensions lists the file extensions recognized as deck files
var Extensions = []string{".yaml", ".yml", ".toml"}

// Record is one card as stored in a deck file
type Record struct {
	Topic          string `yaml:"topic" toml:"topic" validate:"required"`
	Content        string `yaml:"content" toml:"content" validate:"required"`
	PreviousAnswer string `yaml:"previous_answer,omitempty" toml:"previous_answer,omitempty"`
	Keywords       string `yaml:"keywords,omitempty" toml:"keywords,omitempty"`

	MaxWidth         *int `yaml:"max_card_width,omitempty" toml:"max_card_width,omitempty"`
	MinContentHeight *int `yaml:"min_content_height,omitempty" toml:"min_content_height,omitempty"`
}

// tomlDeck is the TOML document layout, one [[card]] table per record
type tomlDeck struct {
	Cards []Record `toml:"card"`
}

// FormatFor picks the format from the file extension, YAML by default
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// IsDeckFile reports whether name has a deck file extension
func IsDeckFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// LoadRecords reads the raw records of a deck file
func LoadRecords(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening deck: %w", err)
	}
	defer file.Close()

	switch FormatFor(path) {
	case FormatTOML:
		var doc tomlDeck
		md, err := toml.NewDecoder(file).Decode(&doc)
		if err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("error parsing %s: unknown key %s", path, undecoded[0])
		}
		return doc.Cards, nil
	default:
		var records []Record
		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(&records); err != nil {
			// An empty file is an empty deck
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
		return records, nil
	}
}

// LoadCards reads a deck file into cards with the default layout. Cards
// keep the layout their record sets.
func LoadCards(path string) ([]*card.Card, error) {
	return loadCards(path, card.DefaultMaxWidth, card.DefaultMinContentHeight)
}

func loadCards(path string, maxWidth, minContentHeight int) ([]*card.Card, error) {
	records, err := LoadRecords(path)
	if err != nil {
		return nil, err
	}

	cards := make([]*card.Card, 0, len(records))
	for i, r := range records {
		c := card.New(r.Topic, r.Content)
		c.PreviousAnswer = r.PreviousAnswer
		c.Keywords = r.Keywords
		c.Stored = card.Layout{MaxWidth: r.MaxWidth, MinContentHeight: r.MinContentHeight}
		c.Source = path
		c.ApplyLayout(maxWidth, minContentHeight)
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("error in %s card %d: %w", path, i+1, err)
		}
		cards = append(cards, c)
	}

	return cards, nil
}

// SaveCards overwrites the deck file at path with cards, in the given order.
// The deck is written to a temporary file first and renamed into place, so
// a failed write leaves the old deck intact.
func SaveCards(path string, cards []*card.Card) error {
	records := make([]Record, 0, len(cards))
	for _, c := range cards {
		records = append(records, Record{
			Topic:            c.Topic,
			Content:          c.Content,
			PreviousAnswer:   c.PreviousAnswer,
			Keywords:         c.Keywords,
			MaxWidth:         c.Stored.MaxWidth,
			MinContentHeight: c.Stored.MinContentHeight,
		})
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating deck directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("error creating deck file: %w", err)
	}
	tmp := file.Name()
	defer os.Remove(tmp)

	if err := encodeRecords(file, FormatFor(path), records); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error writing deck file: %w", err)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		return fmt.Errorf("error writing deck file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("error replacing deck file: %w", err)
	}
	return nil
}

func encodeRecords(w io.Writer, format Format, records []Record) error {
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(tomlDeck{Cards: records}); err != nil {
			return fmt.Errorf("error encoding deck: %w", err)
		}
	default:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(records); err != nil {
			return fmt.Errorf("error encoding deck: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("error encoding deck: %w", err)
		}
	}
	return nil
}
