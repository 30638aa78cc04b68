package summarizer

import "textsum/internal/domain"

// Score is the mean frequency of tokens. A sentence without qualifying
// tokens scores 0.
func Score(tokens []string, freq domain.FrequencyTable) float64 {
	if len(tokens) == 0 {
		return 0
	}
	sum := 0
	for _, tok := range tokens {
		sum += freq.Count(tok)
	}
	return float64(sum) / float64(len(tokens))
}
