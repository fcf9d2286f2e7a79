package reportobs

import (
	"context"
	"time"

	"llm-stock-analyst/internal/interfaces"
	"llm-stock-analyst/internal/logger"
	"llm-stock-analyst/internal/trace"
)

type observableSummarizer struct {
	summarizer interfaces.ReportSummarizer
}

var _ interfaces.ReportSummarizer = (*observableSummarizer)(nil)

func Wrap(summarizer interfaces.ReportSummarizer) interfaces.ReportSummarizer {
	return &observableSummarizer{
		summarizer: summarizer,
	}
}

func (os *observableSummarizer) SummarizeDay(t time.Time) (string, error) {
	ctx := context.Background()
	ctx, span := trace.StartSpan(ctx, "report.SummarizeDay")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Starting daily report snapshot",
		"date", t.Format("2006-01-02"),
	)

	csvPath, err := os.summarizer.SummarizeDay(t)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Daily report snapshot failed", err,
			"date", t.Format("2006-01-02"),
		)
		return "", err
	}

	if csvPath == "" {
		logger.InfoSkip(ctx, 1, "No analyses found for daily snapshot",
			"date", t.Format("2006-01-02"),
		)
		return "", nil
	}

	logger.InfoSkip(ctx, 1, "Daily report snapshot written",
		"date", t.Format("2006-01-02"),
		"csv_path", csvPath,
	)

	return csvPath, nil
}

func (os *observableSummarizer) SummarizeToday() (string, error) {
	ctx := context.Background()
	ctx, span := trace.StartSpan(ctx, "report.SummarizeToday")
	defer span.End()

	csvPath, err := os.summarizer.SummarizeToday()
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Daily report snapshot failed", err)
		return "", err
	}
	return csvPath, nil
}
