package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"llm-stock-analyst/internal/interfaces"
	"llm-stock-analyst/internal/logger"
	"llm-stock-analyst/internal/news"
	"llm-stock-analyst/internal/report"
	"llm-stock-analyst/internal/store"
	"llm-stock-analyst/internal/trace"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	must(initializeSystem())
	defer trace.Shutdown(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(ctx)
	must(err)

	writer := report.NewWriter(cfg.Report.Dir)
	compressOldReports(ctx, cfg, writer)

	provider := initializeProvider(ctx, cfg)
	narrator := initializeNarrator(ctx, cfg)
	eng := initializeAnalyzer(cfg, provider)
	newsSvc := initializeNews(cfg)
	summarizer := initializeSummarizer(cfg)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	logger.Info(ctx, "Analyst started", "tickers", len(cfg.Tickers), "data_source", cfg.DataSource)

	runPass(ctx, cfg, eng, narrator, newsSvc, writer)

	// One-shot by default. With polling enabled, keep re-running until stopped.
	if cfg.PollSeconds <= 0 {
		writeDailySnapshot(ctx, summarizer)
		return
	}

	tick := time.NewTicker(time.Duration(cfg.PollSeconds) * time.Second)
	defer tick.Stop()

	for {
		select {
		case <-tick.C:
			runPass(ctx, cfg, eng, narrator, newsSvc, writer)
		case <-sigc:
			logger.Info(ctx, "Shutting down")
			writeDailySnapshot(ctx, summarizer)
			return
		case <-ctx.Done():
			return
		}
	}
}

// runPass analyzes every configured ticker with a bounded worker pool.
func runPass(ctx context.Context, cfg *store.Config, eng interfaces.Analyzer, narrator interfaces.Narrator, newsSvc *news.Service, writer *report.Writer) {
	sem := make(chan struct{}, cfg.Workers)
	var wg sync.WaitGroup

	for _, ticker := range cfg.Tickers {
		wg.Add(1)
		sem <- struct{}{}
		go func(ticker string) {
			defer wg.Done()
			defer func() { <-sem }()
			analyzeOne(ctx, ticker, eng, narrator, newsSvc, writer)
		}(ticker)
	}

	wg.Wait()
}

func analyzeOne(ctx context.Context, ticker string, eng interfaces.Analyzer, narrator interfaces.Narrator, newsSvc *news.Service, writer *report.Writer) {
	summary, err := eng.Analyze(ctx, ticker)
	if err != nil {
		logger.ErrorWithErr(ctx, "Analysis failed", err, "ticker", ticker)
		return
	}

	headlines, _ := newsSvc.Headlines(ctx, ticker)

	narration, err := narrator.Narrate(ctx, summary, headlines)
	if err != nil {
		// Narration is additive; the computed summary still gets reported.
		logger.Warn(ctx, "Narration unavailable", "ticker", ticker, "error", err)
		narration = ""
	}

	if err := writer.Append(summary, narration); err != nil {
		logger.ErrorWithErr(ctx, "Failed to append report", err, "ticker", ticker)
	}

	b, _ := json.Marshal(summary)
	fmt.Println(string(b))
	if narration != "" {
		fmt.Println(narration)
	}
}

func writeDailySnapshot(ctx context.Context, summarizer interfaces.ReportSummarizer) {
	if p, err := summarizer.SummarizeToday(); err == nil && p != "" {
		logger.Info(ctx, "Daily CSV written", "path", p)
	}
}
