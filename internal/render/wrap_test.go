package render

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		maxLength int
		expected  []string
	}{
		{name: "empty", raw: "", maxLength: 40, expected: nil},
		{name: "whitespace only", raw: " \n\t  ", maxLength: 40, expected: nil},
		{name: "collapses whitespace", raw: "a  b\n\tc", maxLength: 40, expected: []string{"a b c"}},
		{name: "greedy", raw: "aaa bbb ccc", maxLength: 12, expected: []string{"aaa bbb", "ccc"}},
		{name: "exact fit", raw: "aaaa bbbb", maxLength: 14, expected: []string{"aaaa bbbb"}},
		{name: "long word fills the line", raw: "ab verylongword", maxLength: 15, expected: []string{"ab verylon", "gword"}},
		{name: "long word alone", raw: "abcdefghijklmnopqrstuvwxy", maxLength: 15, expected: []string{"abcdefghij", "klmnopqrst", "uvwxy"}},
		{name: "counts characters not bytes", raw: "ゝゝゝ ゝゝ", maxLength: 11, expected: []string{"ゝゝゝ ゝゝ"}},
		{name: "no room", raw: "text", maxLength: 5, expected: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Wrap(tt.raw, tt.maxLength))
		})
	}
}

func TestWrapIsLossless(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	alphabet := []rune("abcdefghijklmnopqrstuvwxyzé")
	separators := []string{" ", "  ", "\n", "\t", " \n "}

	for i := 0; i < 200; i++ {
		maxLength := 15 + r.Intn(60)

		var b strings.Builder
		var words []string
		count := r.Intn(40)
		for w := 0; w < count; w++ {
			word := make([]rune, 1+r.Intn(maxLength-5))
			for j := range word {
				word[j] = alphabet[r.Intn(len(alphabet))]
			}
			words = append(words, string(word))
			b.WriteString(separators[r.Intn(len(separators))])
			b.WriteString(string(word))
		}

		lines := Wrap(b.String(), maxLength)

		for _, l := range lines {
			assert.LessOrEqual(t, utf8.RuneCountInString(l), maxLength-5)
		}
		assert.Equal(t, strings.Join(words, " "), strings.Join(lines, " "))
	}
}

func TestWrapNeverExceedsWidth(t *testing.T) {
	r := rand.New(rand.NewSource(11))

	for i := 0; i < 200; i++ {
		maxLength := 6 + r.Intn(40)
		words := make([]string, 1+r.Intn(20))
		for j := range words {
			words[j] = strings.Repeat("x", 1+r.Intn(3*maxLength))
		}

		for _, l := range Wrap(strings.Join(words, " "), maxLength) {
			assert.LessOrEqual(t, utf8.RuneCountInString(l), maxLength-5)
			assert.NotEmpty(t, l)
		}
	}
}
