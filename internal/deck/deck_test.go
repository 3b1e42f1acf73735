package deck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/flashcards/internal/card"
)

const sampleYAML = `-
  topic: Python
  content: Is a widely used high-level programming language
           created by Guido van Rossum.
  keywords: programming, language
-
  topic: Javascript
  content: Is a dynamic, untyped, and interpreted programming lang.
  previous_answer: a browser language
`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestLoadCardsYAML(t *testing.T) {
	path := writeFile(t, "langs.yaml", sampleYAML)

	cards, err := LoadCards(path)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, "Python", cards[0].Topic)
	assert.Equal(t, "Is a widely used high-level programming language created by Guido van Rossum.", cards[0].Content)
	assert.Equal(t, "programming, language", cards[0].Keywords)
	assert.False(t, cards[0].HasAnswer())
	assert.Equal(t, "a browser language", cards[1].PreviousAnswer)
	assert.Equal(t, path, cards[1].Source)
	assert.Equal(t, card.DefaultMaxWidth, cards[1].MaxWidth)
}

func TestLoadCardsErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{name: "malformed yaml", file: "bad.yaml", data: "- topic: [unclosed\n"},
		{name: "unknown yaml key", file: "extra.yaml", data: "- topic: a\n  content: b\n  score: 3\n"},
		{name: "not a list", file: "map.yml", data: "topic: a\ncontent: b\n"},
		{name: "malformed toml", file: "bad.toml", data: "[[card]\ntopic = 1\n"},
		{name: "unknown toml key", file: "extra.toml", data: "[[card]]\ntopic = \"a\"\ncontent = \"b\"\nscore = 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.data)

			cards, err := LoadCards(path)

			require.Error(t, err)
			assert.Nil(t, cards)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLoadCardsMissingFile(t *testing.T) {
	_, err := LoadCards(filepath.Join(t.TempDir(), "missing.yaml"))

	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.yaml", "")

	cards, err := LoadCards(path)

	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestSaveCardsRoundTrip(t *testing.T) {
	for _, name := range []string{"deck.yaml", "deck.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			first := card.New("Go", "A compiled language")
			first.SetAnswer("gopher")
			second := card.New("Rust", "A systems language")
			second.Keywords = "systems"

			require.NoError(t, SaveCards(path, []*card.Card{first, second}))

			loaded, err := LoadCards(path)
			require.NoError(t, err)
			require.Len(t, loaded, 2)
			assert.Equal(t, "gopher", loaded[0].PreviousAnswer)
			assert.Equal(t, "Rust", loaded[1].Topic)
			assert.Equal(t, "systems", loaded[1].Keywords)
			assert.False(t, loaded[1].HasAnswer())
		})
	}
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatTOML, FormatFor("a/b.TOML"))
	assert.Equal(t, FormatYAML, FormatFor("a/b.yml"))
	assert.Equal(t, FormatYAML, FormatFor("noext"))
	assert.True(t, IsDeckFile("x.yaml"))
	assert.False(t, IsDeckFile("x.json"))
}

func TestLoadCardsRecordLayout(t *testing.T) {
	path := writeFile(t, "layout.yaml", `
- topic: Python
  content: lang
  max_card_width: 60
  min_content_height: 3
- topic: Go
  content: lang
`)

	cards, err := LoadCards(path)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, 60, cards[0].MaxWidth)
	assert.Equal(t, 3, cards[0].MinContentHeight)
	assert.Equal(t, card.DefaultMaxWidth, cards[1].MaxWidth)
	assert.Equal(t, card.DefaultMinContentHeight, cards[1].MinContentHeight)
}

func TestLoadCardsRecordLayoutTOML(t *testing.T) {
	path := writeFile(t, "layout.toml", "[[card]]\ntopic = \"a\"\ncontent = \"b\"\nmax_card_width = 50\nmin_content_height = 0\n")

	cards, err := LoadCards(path)
	require.NoError(t, err)
	require.Len(t, cards, 1)

	assert.Equal(t, 50, cards[0].MaxWidth)
	assert.Equal(t, 0, cards[0].MinContentHeight)
}

func TestLoadCardsRejectsNarrowRecord(t *testing.T) {
	path := writeFile(t, "narrow.yaml", "- topic: a\n  content: b\n  max_card_width: 4\n")

	_, err := LoadCards(path)

	require.ErrorIs(t, err, card.ErrWidthTooSmall)
	assert.Contains(t, err.Error(), "card 1")
}

func TestSaveCardsKeepsOnlyRecordLayout(t *testing.T) {
	source := writeFile(t, "deck.yaml", "- topic: a\n  content: b\n  max_card_width: 60\n- topic: c\n  content: d\n")

	cards, err := NewStore(80, 2).Load([]string{source})
	require.NoError(t, err)
	require.NoError(t, SaveCards(source, cards))

	records, err := LoadRecords(source)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.NotNil(t, records[0].MaxWidth)
	assert.Equal(t, 60, *records[0].MaxWidth)
	assert.Nil(t, records[0].MinContentHeight)
	assert.Nil(t, records[1].MaxWidth)
	assert.Nil(t, records[1].MinContentHeight)
}

func TestSaveCardsReplacesFileInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- topic: old\n  content: old\n"), 0644))

	require.NoError(t, SaveCards(path, []*card.Card{card.New("new", "new")}))

	loaded, err := LoadCards(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, topics(loaded))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveCardsFailureKeepsTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "deck.yaml")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "keep"), 0755))

	err := SaveCards(target, []*card.Card{card.New("a", "b")})

	require.Error(t, err)
	assert.DirExists(t, filepath.Join(target, "keep"))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
