package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"textsum/internal/domain"
	"textsum/internal/segmenter"
	"textsum/internal/stats"
	"textsum/internal/summarizer"
)

// SummaryPort is the server-facing subset of the summary service.
type SummaryPort interface {
	SummarizeText(ctx context.Context, text string, percent int) (domain.Result, error)
}

// Config configures the HTTP API.
type Config struct {
	Addr           string
	DefaultPercent int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	Debug          bool
}

// Server exposes summarization over HTTP.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	service    SummaryPort
	seg        *segmenter.Segmenter
	cfg        Config
	logger     *slog.Logger
}

type summarizeRequest struct {
	Text    string `json:"text"`
	Percent *int   `json:"percent"`
}

type summarizeResponse struct {
	Summary            string       `json:"summary"`
	Percent            int          `json:"percent"`
	TotalSentences     int          `json:"total_sentences"`
	SelectedSentences  int          `json:"selected_sentences"`
	SummaryWords       int          `json:"summary_words"`
	CompressionPercent int          `json:"compression_percent"`
	Stats              domain.Stats `json:"stats"`
}

type statsRequest struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New builds the gin engine and routes. gatherer serves /metrics; nil uses the default registry.
func New(service SummaryPort, cfg Config, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.DefaultPercent == 0 {
		cfg.DefaultPercent = summarizer.DefaultPercent
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if logger == nil {
		logger = slog.Default()
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:  engine,
		service: service,
		seg:     segmenter.New(),
		cfg:     cfg,
		logger:  logger,
	}
	engine.Use(s.requestLogger())

	engine.GET("/healthz", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	api := engine.Group("/api")
	api.POST("/summarize", s.handleSummarize)
	api.POST("/stats", s.handleStats)
	return s
}

// Handler returns the underlying HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSummarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	percent := s.cfg.DefaultPercent
	if req.Percent != nil {
		percent = *req.Percent
	}
	res, err := s.service.SummarizeText(c.Request.Context(), req.Text, percent)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, summarizer.ErrInvalidRange) {
			status = http.StatusBadRequest
		} else {
			s.logger.Error("summarize failed", "error", err)
		}
		c.JSON(status, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, summarizeResponse{
		Summary:            res.Summary.String(),
		Percent:            res.Percent,
		TotalSentences:     res.Summary.Total,
		SelectedSentences:  len(res.Summary.Sentences),
		SummaryWords:       res.SummaryWords,
		CompressionPercent: res.Compression,
		Stats:              res.Stats,
	})
}

func (s *Server) handleStats(c *gin.Context) {
	var req statsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats.Compute(s.seg, req.Text))
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(start))
	}
}
