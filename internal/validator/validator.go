package validator

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/arcanaland/flashcards/internal/card"
	"github.com/arcanaland/flashcards/internal/deck"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	DeckPath string
	MaxWidth int
	Results  ValidationResults

	records []deck.Record
}

func NewValidator(deckPath string, maxWidth int) *Validator {
	return &Validator{
		DeckPath: deckPath,
		MaxWidth: maxWidth,
		Results:  ValidationResults{},
	}
}

// Validate loads the deck and checks its records. A deck that cannot be
// parsed is returned as an error, problems with single records are
// collected in the results.
func (v *Validator) Validate() (ValidationResults, error) {
	records, err := deck.LoadRecords(v.DeckPath)
	if err != nil {
		return v.Results, err
	}
	v.records = records

	if len(v.records) == 0 {
		v.Results.Warnings = append(v.Results.Warnings, "deck has no cards")
		return v.Results, nil
	}

	v.validateRequiredFields()
	v.validateDuplicateTopics()
	v.validateWordLengths()

	return v.Results, nil
}

// validateRequiredFields checks every record has a topic and a content
func (v *Validator) validateRequiredFields() {
	validate := validator.New()
	for i, r := range v.records {
		err := validate.Struct(r)
		if err == nil {
			continue
		}

		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("card %d: %v", i+1, err))
			continue
		}
		for _, fe := range fieldErrs {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("card %d: %s is required", i+1, strings.ToLower(fe.Field())))
		}
	}
}

func (v *Validator) validateDuplicateTopics() {
	seen := make(map[string]int)
	for i, r := range v.records {
		if r.Topic == "" {
			continue
		}
		if first, ok := seen[r.Topic]; ok {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("card %d: duplicate topic %q (first seen in card %d)", i+1, r.Topic, first))
			continue
		}
		seen[r.Topic] = i + 1
	}
}

// validateWordLengths warns about words that will be split across lines.
// A record with its own max_card_width is checked against that width.
func (v *Validator) validateWordLengths() {
	for i, r := range v.records {
		width := v.MaxWidth
		if r.MaxWidth != nil {
			width = *r.MaxWidth
		}

		limit := width - card.WrapMargin
		if limit <= 0 {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("card %d: card width %d leaves no room for text", i+1, width))
			continue
		}
		if r.MinContentHeight != nil && *r.MinContentHeight < 0 {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("card %d: min_content_height must not be negative", i+1))
		}

		v.checkWords(i+1, "topic", r.Topic, limit)
		v.checkWords(i+1, "content", r.Content, limit)
	}
}

func (v *Validator) checkWords(n int, field, text string, limit int) {
	for _, word := range strings.Fields(text) {
		if utf8.RuneCountInString(word) > limit {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("card %d: %s word %q is longer than %d columns and will be split", n, field, word, limit))
		}
	}
}
