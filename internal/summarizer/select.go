package summarizer

import (
	"sort"

	"textsum/internal/domain"
)

// TargetCount is the number of sentences kept out of total:
// max(1, ceil(total*percent/100)), capped at total.
func TargetCount(total, percent int) int {
	if total <= 0 {
		return 0
	}
	n := (total*percent + 99) / 100
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	return n
}

// Select keeps the best scored sentences and returns them in document order.
// Ties go to the sentence appearing first.
func Select(scored []domain.ScoredSentence, percent int) []domain.Sentence {
	n := TargetCount(len(scored), percent)
	if n == 0 {
		return nil
	}
	ranked := make([]domain.ScoredSentence, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Index < ranked[j].Index
	})
	selected := make([]domain.Sentence, n)
	for i := 0; i < n; i++ {
		selected[i] = ranked[i].Sentence
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].Index < selected[j].Index })
	return selected
}
