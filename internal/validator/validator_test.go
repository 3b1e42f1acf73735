package validator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDeck(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestValidDeck(t *testing.T) {
	path := writeDeck(t, "deck.yaml", `
- topic: capital of France
  content: Paris
- topic: capital of Japan
  content: Tokyo
  previous_answer: Kyoto
`)

	results, err := NewValidator(path, 40).Validate()

	require.NoError(t, err)
	assert.Empty(t, results.Errors)
	assert.Empty(t, results.Warnings)
}

func TestMissingFields(t *testing.T) {
	path := writeDeck(t, "deck.yaml", `
- topic: only a topic
- content: only a content
`)

	results, err := NewValidator(path, 40).Validate()

	require.NoError(t, err)
	assert.Equal(t, []string{
		"card 1: content is required",
		"card 2: topic is required",
	}, results.Errors)
}

func TestWarnings(t *testing.T) {
	path := writeDeck(t, "deck.toml", `
[[card]]
topic = "repeat"
content = "short"

[[card]]
topic = "repeat"
content = "Pneumonoultramicroscopicsilicovolcanoconiosis"
`)

	results, err := NewValidator(path, 20).Validate()

	require.NoError(t, err)
	assert.Empty(t, results.Errors)
	require.Len(t, results.Warnings, 2)
	assert.Contains(t, results.Warnings[0], `duplicate topic "repeat" (first seen in card 1)`)
	assert.Contains(t, results.Warnings[1], "longer than 15 columns")
}

func TestEmptyDeck(t *testing.T) {
	path := writeDeck(t, "deck.yaml", "")

	results, err := NewValidator(path, 40).Validate()

	require.NoError(t, err)
	assert.Equal(t, []string{"deck has no cards"}, results.Warnings)
}

func TestUnparsableDeck(t *testing.T) {
	path := writeDeck(t, "deck.yaml", "- topic: a\n  colour: red\n")

	_, err := NewValidator(path, 40).Validate()

	assert.Error(t, err)
}

func TestNarrowWidth(t *testing.T) {
	path := writeDeck(t, "deck.yaml", "- topic: a\n  content: b\n")

	results, err := NewValidator(path, 5).Validate()

	require.NoError(t, err)
	assert.Len(t, results.Errors, 1)
}

func TestRecordLayout(t *testing.T) {
	path := writeDeck(t, "deck.yaml", `
- topic: wide
  content: Pneumonoultramicroscopicsilicovolcanoconiosis
  max_card_width: 60
- topic: narrow
  content: b
  max_card_width: 3
- topic: tall
  content: c
  min_content_height: -2
`)

	results, err := NewValidator(path, 20).Validate()

	require.NoError(t, err)
	assert.Equal(t, []string{
		"card 2: card width 3 leaves no room for text",
		"card 3: min_content_height must not be negative",
	}, results.Errors)
	assert.Empty(t, results.Warnings)
}
