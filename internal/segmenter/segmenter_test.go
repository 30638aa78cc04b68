package segmenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textsum/internal/domain"
)

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: nil},
		{name: "whitespace", text: "   \n\t ", want: nil},
		{name: "punctuation only", text: "??? !!! ...", want: nil},
		{name: "no delimiter", text: "  just one line  ", want: []string{"just one line"}},
		{
			name: "delimiter runs",
			text: "Hello world... How are you?! Fine",
			want: []string{"Hello world", "How are you", "Fine"},
		},
		{
			name: "trailing delimiter",
			text: "First. Second!",
			want: []string{"First", "Second"},
		},
	}
	seg := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seg.Sentences(tt.text)
			require.Len(t, got, len(tt.want))
			for i, s := range got {
				assert.Equal(t, i, s.Index)
				assert.Equal(t, tt.want[i], s.Text)
			}
		})
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: []string{}},
		{name: "short words dropped", text: "a an to be", want: []string{}},
		{name: "lowercased", text: "Cats ARE Mammals", want: []string{"cats", "are", "mammals"}},
		{name: "non-word separators", text: "well-known, state_of_art; x2y", want: []string{"well", "known", "state_of_art", "x2y"}},
		{name: "non-ascii splits", text: "café naïve", want: []string{"caf"}},
	}
	seg := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seg.Tokens(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSegment(t *testing.T) {
	seg := New()
	sentences, tokenize := seg.Segment("The sun is hot. Cats sleep!")

	assert.Equal(t, []domain.Sentence{
		{Index: 0, Text: "The sun is hot"},
		{Index: 1, Text: "Cats sleep"},
	}, sentences)
	assert.Equal(t, []string{"the", "sun", "hot"}, tokenize(sentences[0].Text))
}
