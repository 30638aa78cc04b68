package summarizer

import (
	"textsum/internal/domain"
	"textsum/internal/segmenter"
)

// FrequencySummarizer ranks sentences by the mean document frequency of their words.
// It holds no per-call state and is safe for concurrent use.
type FrequencySummarizer struct {
	seg *segmenter.Segmenter
}

// NewFrequencySummarizer creates a frequency-based sentence ranker summarizer.
func NewFrequencySummarizer() *FrequencySummarizer {
	return &FrequencySummarizer{seg: segmenter.New()}
}

// Summarize returns the selected sentences joined as a single string.
func (s *FrequencySummarizer) Summarize(text string, percent int) (string, error) {
	summary, err := s.Extract(text, percent)
	if err != nil {
		return "", err
	}
	return summary.String(), nil
}

// Extract keeps percent of the sentences of text, in document order.
// Blank or punctuation-only text yields an empty summary.
func (s *FrequencySummarizer) Extract(text string, percent int) (domain.Summary, error) {
	if err := ValidatePercent(percent); err != nil {
		return domain.Summary{}, err
	}
	sentences, tokenize := s.seg.Segment(text)
	if len(sentences) == 0 {
		return domain.Summary{}, nil
	}
	freq := BuildFrequencies(s.seg, text)
	scored := make([]domain.ScoredSentence, len(sentences))
	for i, sent := range sentences {
		scored[i] = domain.ScoredSentence{Sentence: sent, Score: Score(tokenize(sent.Text), freq)}
	}
	return domain.Summary{
		Sentences: Select(scored, percent),
		Total:     len(sentences),
	}, nil
}

// BuildFrequencies counts every token of the whole document.
func BuildFrequencies(seg *segmenter.Segmenter, text string) domain.FrequencyTable {
	freq := domain.FrequencyTable{}
	for _, tok := range seg.Tokens(text) {
		freq[tok]++
	}
	return freq
}
