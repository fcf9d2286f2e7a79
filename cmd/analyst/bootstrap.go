package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"llm-stock-analyst/internal/analyzer"
	"llm-stock-analyst/internal/analyzer/analyzerobs"
	"llm-stock-analyst/internal/interfaces"
	"llm-stock-analyst/internal/llm/claude"
	"llm-stock-analyst/internal/llm/llmobs"
	"llm-stock-analyst/internal/llm/noop"
	"llm-stock-analyst/internal/llm/openai"
	"llm-stock-analyst/internal/logger"
	"llm-stock-analyst/internal/marketdata"
	"llm-stock-analyst/internal/marketdata/marketdataobs"
	"llm-stock-analyst/internal/news"
	"llm-stock-analyst/internal/report"
	"llm-stock-analyst/internal/report/reportobs"
	"llm-stock-analyst/internal/store"
	"llm-stock-analyst/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem initializes logger and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// compressOldReports gzips report files past the retention window
func compressOldReports(ctx context.Context, cfg *store.Config, writer *report.Writer) {
	if cfg.Report.RetentionDays <= 0 {
		return
	}
	if err := writer.CompressOlder(cfg.Report.RetentionDays); err != nil {
		logger.Warn(ctx, "Failed to compress old reports", "error", err)
	}
}

// initializeProvider initializes the market data provider with observability
func initializeProvider(ctx context.Context, cfg *store.Config) interfaces.Provider {
	provider := marketdata.New(cfg, marketdata.Params{
		APIKey:      os.Getenv("KITE_API_KEY"),
		AccessToken: os.Getenv("KITE_ACCESS_TOKEN"),
	})

	if cfg.DataSource == "LIVE" {
		logger.Info(ctx, "Using LIVE candle data from Kite")
	} else {
		logger.Info(ctx, "Using STATIC synthetic candle data")
	}

	// Wrap with observability middleware
	return marketdataobs.Wrap(provider)
}

// initializeNarrator initializes the LLM narrator with observability
func initializeNarrator(ctx context.Context, cfg *store.Config) interfaces.Narrator {
	var narrator interfaces.Narrator

	switch cfg.LLM.Provider {
	case "OPENAI":
		narrator = openai.NewOpenAINarrator(cfg)
	case "CLAUDE":
		narrator = claude.NewClaudeNarrator(cfg)
	default:
		narrator = noop.NewNoopNarrator()
		logger.Warn(ctx, "No LLM provider configured - using Noop narrator (deterministic report)")
	}

	// Wrap with observability middleware
	return llmobs.Wrap(narrator)
}

// initializeAnalyzer initializes the analysis engine with observability
func initializeAnalyzer(cfg *store.Config, provider interfaces.Provider) interfaces.Analyzer {
	a := analyzer.New(cfg, provider)

	// Wrap with observability middleware
	return analyzerobs.Wrap(a)
}

// initializeNews initializes the headline service from config
func initializeNews(cfg *store.Config) *news.Service {
	return news.NewService(&news.ServiceConfig{
		MaxHeadlines:   cfg.News.MaxHeadlines,
		CacheDuration:  time.Duration(cfg.News.CacheMinutes) * time.Minute,
		ScraperTimeout: 30 * time.Second,
		Enabled:        cfg.News.Enabled,
	})
}

// initializeSummarizer wraps the daily report summarizer with observability
func initializeSummarizer(cfg *store.Config) interfaces.ReportSummarizer {
	return reportobs.Wrap(report.NewSummarizer(cfg.Report.Dir))
}
