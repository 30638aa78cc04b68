package stats

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"textsum/internal/domain"
	"textsum/internal/segmenter"
)

// WordsPerMinute is the reading speed used for ReadingMinutes.
const WordsPerMinute = 200

var paragraphRe = regexp.MustCompile(`\n\s*\n`)

// Compute returns character, word, sentence and paragraph counts of text
// plus the estimated reading time. Blank text yields zero stats.
func Compute(seg *segmenter.Segmenter, text string) domain.Stats {
	if strings.TrimSpace(text) == "" {
		return domain.Stats{}
	}
	words := CountWords(text)
	paragraphs := 0
	for _, p := range paragraphRe.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}
	return domain.Stats{
		Characters:     utf8.RuneCountInString(text),
		Words:          words,
		Sentences:      len(seg.Sentences(text)),
		Paragraphs:     paragraphs,
		ReadingMinutes: (words + WordsPerMinute - 1) / WordsPerMinute,
	}
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// Compression is the summary length as a rounded percentage of the input length.
func Compression(summaryWords, words int) int {
	if words == 0 {
		return 0
	}
	return int(math.Round(float64(summaryWords) / float64(words) * 100))
}
