package report

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"llm-stock-analyst/internal/interfaces"
)

// summarizer renders the day's JSONL records into a per-ticker CSV snapshot.
// When a ticker was analyzed more than once, the last record of the day wins.
type summarizer struct {
	dir string
}

var _ interfaces.ReportSummarizer = (*summarizer)(nil)

func NewSummarizer(dir string) interfaces.ReportSummarizer {
	if dir == "" {
		dir = reportDir()
	}
	return &summarizer{dir: dir}
}

func (s *summarizer) dailyFilepath(t time.Time) string {
	d := t.Format("2006-01-02")
	return filepath.Join(s.dir, d+".txt")
}

func (s *summarizer) csvPath(t time.Time) string {
	d := t.Format("2006-01-02")
	return filepath.Join(s.dir, "daily", d+".csv")
}

func (s *summarizer) SummarizeDay(t time.Time) (string, error) {
	inPath := s.dailyFilepath(t)
	if _, err := os.Stat(inPath); err != nil {
		return "", nil
	}
	f, err := os.Open(inPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	latest := map[string]Record{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		var rec Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			continue
		}
		latest[rec.Ticker] = rec
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if len(latest) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(latest))
	for k := range latest {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	outPath := s.csvPath(t)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()

	headers := []string{"ticker", "trend", "rsi", "direction", "risk_reward", "patterns", "support_zones", "resistance_zones", "note"}
	if err := w.Write(headers); err != nil {
		return "", err
	}

	for _, k := range keys {
		rec := latest[k]
		supports, resistances := 0, 0
		if rec.Summary != nil {
			supports = len(rec.Summary.SupportResistance.SupportZones)
			resistances = len(rec.Summary.SupportResistance.ResistanceZones)
		}
		row := []string{
			rec.Ticker,
			rec.Trend,
			fmtNullable(rec.RSI, "%.2f"),
			rec.Direction,
			fmtNullable(rec.RiskReward, "%.2f"),
			strconv.Itoa(rec.Patterns),
			strconv.Itoa(supports),
			strconv.Itoa(resistances),
			rec.Note,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	return outPath, nil
}

func (s *summarizer) SummarizeToday() (string, error) {
	return s.SummarizeDay(istNow())
}

func fmtNullable(v *float64, format string) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf(format, *v)
}
