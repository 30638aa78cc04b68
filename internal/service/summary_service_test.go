package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textsum/internal/domain"
	"textsum/internal/summarizer"
)

const catsText = "Cats are mammals. Cats often sleep during the day. The sun is hot. Cats sleep a lot because they are tired."

type observation struct {
	total, selected int
	err             error
}

type fakeRecorder struct {
	mu  sync.Mutex
	obs []observation
}

func (f *fakeRecorder) ObserveSummary(_ time.Duration, total, selected int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.obs = append(f.obs, observation{total, selected, err})
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "Alpha text.")
	writeFile(t, dir, "b.TXT", "Beta text.")
	writeFile(t, dir, "c.md", "# ignored")

	svc := NewSummaryService(summarizer.NewFrequencySummarizer())
	docs, err := svc.LoadDocuments([]string{filepath.Join(dir, "*")})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Alpha text.", docs[0].Content)
	assert.NotEmpty(t, docs[0].ID)
	assert.NotEqual(t, docs[0].ID, docs[1].ID)
}

func TestLoadDocuments_NoneFound(t *testing.T) {
	svc := NewSummaryService(summarizer.NewFrequencySummarizer())
	_, err := svc.LoadDocuments([]string{filepath.Join(t.TempDir(), "*.md")})
	assert.EqualError(t, err, "no .txt documents found")
}

func TestLoadDocuments_MissingFile(t *testing.T) {
	svc := NewSummaryService(summarizer.NewFrequencySummarizer())
	_, err := svc.LoadDocuments([]string{filepath.Join(t.TempDir(), "missing.txt")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSummarizeText(t *testing.T) {
	rec := &fakeRecorder{}
	svc := NewSummaryService(summarizer.NewFrequencySummarizer(), WithRecorder(rec))

	res, err := svc.SummarizeText(context.Background(), catsText, 30)
	require.NoError(t, err)

	assert.Equal(t, "Cats are mammals. Cats often sleep during the day.", res.Summary.String())
	assert.Equal(t, 4, res.Summary.Total)
	assert.Equal(t, 4, res.Stats.Sentences)
	assert.Equal(t, 21, res.Stats.Words)
	assert.Equal(t, 9, res.SummaryWords)
	assert.Equal(t, 43, res.Compression)
	assert.Equal(t, []observation{{total: 4, selected: 2}}, rec.obs)
}

func TestSummarizeText_InvalidRange(t *testing.T) {
	rec := &fakeRecorder{}
	svc := NewSummaryService(summarizer.NewFrequencySummarizer(), WithRecorder(rec))

	_, err := svc.SummarizeText(context.Background(), catsText, 75)
	require.ErrorIs(t, err, summarizer.ErrInvalidRange)
	require.Len(t, rec.obs, 1)
	assert.Error(t, rec.obs[0].err)
}

func TestSummarizeText_Empty(t *testing.T) {
	svc := NewSummaryService(summarizer.NewFrequencySummarizer())

	res, err := svc.SummarizeText(context.Background(), "   ", 30)
	require.NoError(t, err)
	assert.Equal(t, "", res.Summary.String())
	assert.Equal(t, domain.Stats{}, res.Stats)
	assert.Equal(t, 0, res.Compression)
}

func TestSummarizeAll_KeepsOrder(t *testing.T) {
	docs := []domain.Document{
		{ID: "1", Content: catsText},
		{ID: "2", Content: "One two three. Four five six."},
		{ID: "3", Content: ""},
	}
	svc := NewSummaryService(summarizer.NewFrequencySummarizer(), WithWorkers(2))

	results, err := svc.SummarizeAll(context.Background(), docs, 50)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, res := range results {
		assert.Equal(t, docs[i].ID, res.Document.ID)
		assert.Equal(t, 50, res.Percent)
	}
	assert.Equal(t, "One two three.", results[1].Summary.String())
	assert.Equal(t, "", results[2].Summary.String())
}

func TestSummarizeAll_InvalidRange(t *testing.T) {
	svc := NewSummaryService(summarizer.NewFrequencySummarizer())
	_, err := svc.SummarizeAll(context.Background(), []domain.Document{{Content: catsText}}, 5)
	assert.ErrorIs(t, err, summarizer.ErrInvalidRange)
}

func TestSummarizeAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewSummaryService(summarizer.NewFrequencySummarizer())

	_, err := svc.SummarizeAll(ctx, []domain.Document{{Content: catsText}}, 30)
	assert.True(t, errors.Is(err, context.Canceled))
}
