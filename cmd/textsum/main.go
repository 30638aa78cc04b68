package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"textsum/internal/config"
	"textsum/internal/domain"
	"textsum/internal/export"
	"textsum/internal/metrics"
	"textsum/internal/server"
	"textsum/internal/service"
	"textsum/internal/summarizer"
	"textsum/internal/tui"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(exitCode(os.Stderr, err))
}

// exitCode reports err on w regardless of the configured log level.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(w, "textsum: %v\n", err)
	return 1
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("textsum", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		cfgPath string
		percent int
		outPath string
		useTUI  bool
		serve   bool
	)
	fs.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/textsum/config.yaml if not provided)")
	fs.IntVar(&percent, "percent", 0, fmt.Sprintf("Percentage of sentences to keep, %d-%d (default from config)", summarizer.MinPercent, summarizer.MaxPercent))
	fs.StringVar(&outPath, "out", "", "Also write the summary to this file")
	fs.BoolVar(&useTUI, "tui", false, "Browse summaries interactively")
	fs.BoolVar(&serve, "serve", false, "Run the HTTP API instead of summarizing files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	percentSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "percent" {
			percentSet = true
		}
	})
	if percentSet {
		if err := summarizer.ValidatePercent(percent); err != nil {
			return fmt.Errorf("-percent: %w", err)
		}
		cfg.Summarizer.Percent = percent
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(stderr, cfg.Log.Level)

	var ext domain.Extractor
	switch cfg.Summarizer.Type {
	case "frequency", "":
		ext = summarizer.NewFrequencySummarizer()
	default:
		return fmt.Errorf("unknown summarizer: %s", cfg.Summarizer.Type)
	}

	if serve {
		reg := prometheus.NewRegistry()
		rec, err := metrics.NewPrometheusRecorder("textsum", reg)
		if err != nil {
			return fmt.Errorf("metrics init: %w", err)
		}
		svc := service.NewSummaryService(ext,
			service.WithRecorder(rec),
			service.WithLogger(logger),
			service.WithWorkers(cfg.Batch.Workers))
		srv := server.New(svc, server.Config{
			Addr:           cfg.Server.Addr,
			DefaultPercent: cfg.Summarizer.Percent,
			ReadTimeout:    time.Duration(cfg.Server.ReadTimeoutSecs) * time.Second,
			WriteTimeout:   time.Duration(cfg.Server.WriteTimeoutSecs) * time.Second,
			Debug:          cfg.Server.Debug,
		}, reg, logger)
		return srv.Run(ctx)
	}

	svc := service.NewSummaryService(ext, service.WithLogger(logger), service.WithWorkers(cfg.Batch.Workers))
	docs, err := loadInputs(svc, fs.Args(), stdin)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	if useTUI {
		exportPath := cfg.Export.Path
		if outPath != "" {
			exportPath = outPath
		}
		m := tui.New(svc, docs, cfg.Summarizer.Percent, export.Clipboard{}, exportPath)
		_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		return err
	}

	results, err := svc.SummarizeAll(ctx, docs, cfg.Summarizer.Percent)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	var out strings.Builder
	selected := 0
	for i, res := range results {
		if len(results) > 1 {
			if i > 0 {
				out.WriteString("\n")
			}
			fmt.Fprintf(&out, "== %s\n", res.Document.Path)
		}
		out.WriteString(res.Summary.String())
		out.WriteString("\n")
		selected += len(res.Summary.Sentences)
		fmt.Fprintf(stderr, "%s: %d words, %d sentences, %d min read; kept %d/%d sentences (%d%% of words)\n",
			label(res.Document), res.Stats.Words, res.Stats.Sentences, res.Stats.ReadingMinutes,
			len(res.Summary.Sentences), res.Summary.Total, res.Compression)
	}
	fmt.Fprint(stdout, out.String())
	if outPath == "" {
		return nil
	}
	if selected == 0 {
		logger.Warn("empty summary, nothing saved", "path", outPath)
		return nil
	}
	if err := export.Save(outPath, strings.TrimSuffix(out.String(), "\n")); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	logger.Info("summary saved", "path", outPath)
	return nil
}

// loadInputs reads the given files, or stdin when none are given.
func loadInputs(svc *service.SummaryService, args []string, stdin io.Reader) ([]domain.Document, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []domain.Document{{ID: "stdin", Content: string(data)}}, nil
	}
	return svc.LoadDocuments(args)
}

func label(doc domain.Document) string {
	if doc.Path == "" {
		return "stdin"
	}
	return doc.Path
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
