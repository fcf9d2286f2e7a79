package report

import (
	"bufio"
	"compress/gzip"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"llm-stock-analyst/internal/types"
)

func ptr(v float64) *float64 { return &v }

func sampleSummary(ticker string) *types.Summary {
	direction := "LONG"
	return &types.Summary{
		Ticker: ticker,
		Indicators: types.IndicatorSnapshot{
			RSI: ptr(58.3),
		},
		Trend: map[string]types.TrendAssessment{
			"1D": {Trend: "Bullish", Strength: "Moderate"},
			"1H": {Trend: "Neutral", Strength: "Weak"},
		},
		Patterns: []types.PatternEvent{{Pattern: "Hammer", Date: "2025-08-20"}},
		SupportResistance: types.ZoneSet{
			SupportZones:    []types.Zone{{Level: 100, Strength: "strong", Hits: 3}},
			ResistanceZones: []types.Zone{{Level: 110, Strength: "medium", Hits: 1}},
		},
		TradePlan: types.TradePlan{
			Direction:  &direction,
			Entry:      ptr(105),
			StopLoss:   ptr(100),
			TakeProfit: ptr(110),
			RiskReward: ptr(1.0),
		},
	}
}

func TestWriterAppend(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	if err := w.Append(sampleSummary("RELIANCE"), "narrative text"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := w.Append(sampleSummary("TCS"), ""); err != nil {
		t.Fatalf("Append: %v", err)
	}

	f, err := os.Open(w.dailyFilepath(istNow()))
	if err != nil {
		t.Fatalf("open report file: %v", err)
	}
	defer f.Close()

	var records []Record
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("bad JSONL line: %v", err)
		}
		records = append(records, rec)
	}

	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	first := records[0]
	if first.Ticker != "RELIANCE" || first.Trend != "Bullish" || first.Direction != "LONG" {
		t.Errorf("unexpected record: %+v", first)
	}
	if first.Narration != "narrative text" {
		t.Errorf("narration = %q", first.Narration)
	}
	if first.RiskReward == nil || *first.RiskReward != 1.0 {
		t.Errorf("risk_reward = %v, want 1.0", first.RiskReward)
	}
	if first.Summary == nil || len(first.Summary.SupportResistance.SupportZones) != 1 {
		t.Error("full summary not carried in record")
	}
}

func TestBuildRecordNoteOnlyPlan(t *testing.T) {
	s := sampleSummary("INFY")
	s.TradePlan = types.TradePlan{Note: "No valid resistance zone above price."}

	rec := buildRecord(s, "", time.Unix(1756500000, 0))
	if rec.Direction != "NONE" {
		t.Errorf("direction = %q, want NONE", rec.Direction)
	}
	if rec.RiskReward != nil {
		t.Errorf("risk_reward = %v, want nil", rec.RiskReward)
	}
	if rec.Note == "" {
		t.Error("note lost")
	}
}

func TestPrimaryTrendFallback(t *testing.T) {
	s := sampleSummary("SBIN")
	delete(s.Trend, "1D")

	if got := primaryTrend(s); got != "Neutral" {
		t.Errorf("primaryTrend = %q, want 1H fallback Neutral", got)
	}

	s.Trend = map[string]types.TrendAssessment{}
	if got := primaryTrend(s); got != "Unknown" {
		t.Errorf("primaryTrend = %q, want Unknown", got)
	}
}

func TestSummarizeDay(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	if err := w.Append(sampleSummary("TCS"), ""); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := w.Append(sampleSummary("RELIANCE"), ""); err != nil {
		t.Fatalf("Append: %v", err)
	}
	// Second analysis of the same ticker should win.
	updated := sampleSummary("RELIANCE")
	updated.TradePlan = types.TradePlan{Note: "No valid resistance zone above price."}
	if err := w.Append(updated, ""); err != nil {
		t.Fatalf("Append: %v", err)
	}

	s := NewSummarizer(dir)
	csvPath, err := s.SummarizeToday()
	if err != nil {
		t.Fatalf("SummarizeToday: %v", err)
	}
	if csvPath == "" {
		t.Fatal("no CSV written")
	}

	f, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 tickers", len(rows))
	}
	if rows[0][0] != "ticker" {
		t.Errorf("header = %v", rows[0])
	}
	// Sorted by ticker: RELIANCE before TCS.
	if rows[1][0] != "RELIANCE" || rows[2][0] != "TCS" {
		t.Errorf("ticker order = %s, %s", rows[1][0], rows[2][0])
	}
	// The later note-only record replaced the full plan.
	if rows[1][3] != "NONE" {
		t.Errorf("RELIANCE direction = %q, want NONE", rows[1][3])
	}
	if rows[2][3] != "LONG" {
		t.Errorf("TCS direction = %q, want LONG", rows[2][3])
	}
}

func TestSummarizeDayNoRecords(t *testing.T) {
	s := NewSummarizer(t.TempDir())

	csvPath, err := s.SummarizeDay(time.Now())
	if err != nil {
		t.Fatalf("SummarizeDay: %v", err)
	}
	if csvPath != "" {
		t.Errorf("csvPath = %q, want empty for missing day", csvPath)
	}
}

func TestCompressOlder(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	old := filepath.Join(dir, "2024-01-02.txt")
	if err := os.WriteFile(old, []byte(`{"ticker":"TCS"}`+"\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	past := time.Now().AddDate(0, 0, -30)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	fresh := filepath.Join(dir, "2026-08-30.txt")
	if err := os.WriteFile(fresh, []byte(`{"ticker":"INFY"}`+"\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if err := w.CompressOlder(7); err != nil {
		t.Fatalf("CompressOlder: %v", err)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old report file not removed")
	}
	gzPath := old + ".gz"
	gf, err := os.Open(gzPath)
	if err != nil {
		t.Fatalf("gzip file missing: %v", err)
	}
	defer gf.Close()
	zr, err := gzip.NewReader(gf)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	content, _ := io.ReadAll(zr)
	if !strings.Contains(string(content), "TCS") {
		t.Error("gzip content lost")
	}

	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh report file should not be touched")
	}
}

func TestCompressOlderDisabled(t *testing.T) {
	w := NewWriter(t.TempDir())
	if err := w.CompressOlder(0); err != nil {
		t.Fatalf("CompressOlder(0) = %v, want nil", err)
	}
}
