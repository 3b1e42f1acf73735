package deck

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/flashcards/internal/card"
)

func TestStoreLoadAppliesLayout(t *testing.T) {
	a := writeFile(t, "a.yaml", "- topic: A\n  content: one\n")
	b := writeFile(t, "b.toml", "[[card]]\ntopic = \"B\"\ncontent = \"two\"\n")

	cards, err := NewStore(40, 3).Load([]string{a, b})
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, "A", cards[0].Topic)
	assert.Equal(t, "B", cards[1].Topic)
	for _, c := range cards {
		assert.Equal(t, 40, c.MaxWidth)
		assert.Equal(t, 3, c.MinContentHeight)
	}
	assert.Equal(t, b, cards[1].Source)
}

func TestStoreSaveWritesBackToSources(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")

	cards := []*card.Card{
		{Topic: "B1", Content: "x", Source: b},
		{Topic: "A1", Content: "x", Source: a, PreviousAnswer: "ans"},
		{Topic: "B2", Content: "x", Source: b},
		{Topic: "A2", Content: "x", Source: a},
	}

	require.NoError(t, NewStore(120, 6).Save(cards))

	fromA, err := LoadCards(a)
	require.NoError(t, err)
	fromB, err := LoadCards(b)
	require.NoError(t, err)

	assert.Equal(t, []string{"A1", "A2"}, topics(fromA))
	assert.Equal(t, []string{"B1", "B2"}, topics(fromB))
	assert.Equal(t, "ans", fromA[0].PreviousAnswer)
}

func TestStoreSaveRequiresSource(t *testing.T) {
	err := NewStore(120, 6).Save([]*card.Card{card.New("orphan", "x")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "orphan")
}

func topics(cards []*card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Topic
	}
	return out
}

func TestStoreLoadKeepsRecordLayout(t *testing.T) {
	path := writeFile(t, "a.yaml", "- topic: A\n  content: one\n  min_content_height: 1\n- topic: B\n  content: two\n")

	cards, err := NewStore(40, 3).Load([]string{path})
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, 40, cards[0].MaxWidth)
	assert.Equal(t, 1, cards[0].MinContentHeight)
	assert.Equal(t, 3, cards[1].MinContentHeight)
}
