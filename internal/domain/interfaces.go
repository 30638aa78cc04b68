package domain

import "strings"

// Document represents a single text loaded into the system.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Sentence is a trimmed, non-empty piece of a document.
// Index is its 0-based position in document order.
type Sentence struct {
	Index int
	Text  string
}

// FrequencyTable maps a normalized token to its occurrence count in a document.
type FrequencyTable map[string]int

// Count returns the occurrences of tok, or 0 when it never appeared.
func (f FrequencyTable) Count(tok string) int { return f[tok] }

// ScoredSentence pairs a sentence with its relevance score.
type ScoredSentence struct {
	Sentence
	Score float64
}

// SummaryRequest is a document plus the percentage of sentences to keep.
type SummaryRequest struct {
	Text    string
	Percent int
}

// Summary holds the selected sentences in document order.
type Summary struct {
	Sentences []Sentence
	Total     int
}

// String joins the selected sentences with ". " and closes with a period.
func (s Summary) String() string {
	if len(s.Sentences) == 0 {
		return ""
	}
	parts := make([]string, len(s.Sentences))
	for i, sent := range s.Sentences {
		parts[i] = sent.Text
	}
	return strings.Join(parts, ". ") + "."
}

// Stats describes the raw input independently of summarization.
type Stats struct {
	Characters     int `json:"characters"`
	Words          int `json:"words"`
	Sentences      int `json:"sentences"`
	Paragraphs     int `json:"paragraphs"`
	ReadingMinutes int `json:"reading_minutes"`
}

// Result is a produced summary together with the figures shown next to it.
type Result struct {
	Document     Document
	Percent      int
	Summary      Summary
	Stats        Stats
	SummaryWords int
	Compression  int
}

// Summarizer produces an extractive summary keeping percent of the sentences.
type Summarizer interface {
	Summarize(text string, percent int) (string, error)
}

// Extractor is a Summarizer that also exposes the selected sentences.
type Extractor interface {
	Summarizer
	Extract(text string, percent int) (Summary, error)
}
