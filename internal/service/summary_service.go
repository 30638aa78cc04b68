package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"textsum/internal/domain"
	"textsum/internal/metrics"
	"textsum/internal/segmenter"
	"textsum/internal/stats"
	"textsum/internal/summarizer"
)

// SummaryService loads documents and summarizes them, attaching text statistics.
type SummaryService struct {
	extractor domain.Extractor
	seg       *segmenter.Segmenter
	recorder  metrics.Recorder
	logger    *slog.Logger
	workers   int
}

// Option customizes a SummaryService.
type Option func(*SummaryService)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *SummaryService) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *SummaryService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWorkers bounds the number of documents summarized in parallel.
func WithWorkers(n int) Option {
	return func(s *SummaryService) {
		if n > 0 {
			s.workers = n
		}
	}
}

func NewSummaryService(extractor domain.Extractor, opts ...Option) *SummaryService {
	s := &SummaryService{
		extractor: extractor,
		seg:       segmenter.New(),
		recorder:  metrics.Nop(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		workers:   4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadDocuments expands globs and reads every matching .txt file.
func (s *SummaryService) LoadDocuments(paths []string) ([]domain.Document, error) {
	var documents []domain.Document
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			if !strings.HasSuffix(strings.ToLower(m), ".txt") {
				s.logger.Debug("skipping non-text file", "path", m)
				continue
			}
			data, err := os.ReadFile(m)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", m, err)
			}
			documents = append(documents, domain.Document{ID: hashString(m), Path: m, Content: string(data)})
		}
	}
	if len(documents) == 0 {
		return nil, fmt.Errorf("no .txt documents found")
	}
	s.logger.Debug("documents loaded", "count", len(documents))
	return documents, nil
}

// Summarize summarizes one document keeping percent of its sentences.
func (s *SummaryService) Summarize(ctx context.Context, doc domain.Document, percent int) (domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return domain.Result{}, err
	}
	start := time.Now()
	summary, err := s.extractor.Extract(doc.Content, percent)
	s.recorder.ObserveSummary(time.Since(start), summary.Total, len(summary.Sentences), err)
	if err != nil {
		return domain.Result{}, fmt.Errorf("summarize %s: %w", docName(doc), err)
	}
	st := stats.Compute(s.seg, doc.Content)
	words := stats.CountWords(summary.String())
	s.logger.Debug("document summarized",
		"document", docName(doc),
		"percent", percent,
		"sentences", summary.Total,
		"selected", len(summary.Sentences),
		"elapsed", time.Since(start))
	return domain.Result{
		Document:     doc,
		Percent:      percent,
		Summary:      summary,
		Stats:        st,
		SummaryWords: words,
		Compression:  stats.Compression(words, st.Words),
	}, nil
}

// SummarizeText summarizes an ad-hoc string.
func (s *SummaryService) SummarizeText(ctx context.Context, text string, percent int) (domain.Result, error) {
	return s.Summarize(ctx, domain.Document{ID: hashString(text), Content: text}, percent)
}

// SummarizeAll summarizes docs in parallel. Results keep the order of docs;
// the first failure cancels the remaining work.
func (s *SummaryService) SummarizeAll(ctx context.Context, docs []domain.Document, percent int) ([]domain.Result, error) {
	if err := summarizer.ValidatePercent(percent); err != nil {
		return nil, err
	}
	results := make([]domain.Result, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, doc := range docs {
		g.Go(func() error {
			res, err := s.Summarize(ctx, doc, percent)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.logger.Info("summarization finished", "documents", len(docs), "percent", percent)
	return results, nil
}

func docName(doc domain.Document) string {
	if doc.Path != "" {
		return doc.Path
	}
	return doc.ID
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
