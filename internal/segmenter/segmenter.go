package segmenter

import (
	"regexp"
	"strings"

	"textsum/internal/domain"
)

// minTokenLen is the shortest token kept; shorter words act as stopwords.
const minTokenLen = 3

// Segmenter splits text into sentences and normalized word tokens.
type Segmenter struct {
	splitter *regexp.Regexp
	nonWord  *regexp.Regexp
}

// New creates a segmenter splitting sentences on runs of . ! ?
func New() *Segmenter {
	return &Segmenter{
		splitter: regexp.MustCompile(`[.!?]+`),
		nonWord:  regexp.MustCompile(`\W+`),
	}
}

// Segment returns the sentences of text together with the tokenizer used
// for both the document and its sentences.
func (s *Segmenter) Segment(text string) ([]domain.Sentence, func(string) []string) {
	return s.Sentences(text), s.Tokens
}

// Sentences splits text on delimiter runs, trims each piece and drops empty ones.
// Text with no delimiter yields the whole trimmed text as a single sentence.
func (s *Segmenter) Sentences(text string) []domain.Sentence {
	var sentences []domain.Sentence
	for _, piece := range s.splitter.Split(text, -1) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		sentences = append(sentences, domain.Sentence{Index: len(sentences), Text: piece})
	}
	return sentences
}

// Tokens lowercases text and returns its words of at least three characters.
func (s *Segmenter) Tokens(text string) []string {
	lower := strings.ToLower(text)
	raw := s.nonWord.Split(lower, -1)
	out := raw[:0]
	for _, t := range raw {
		if len(t) < minTokenLen {
			continue
		}
		out = append(out, t)
	}
	return out
}
