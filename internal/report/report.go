package report

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"llm-stock-analyst/internal/types"
)

// Record is one analysis result appended to the daily report file. The flat
// fields make the JSONL grep-able; the full summary rides along for
// downstream consumers.
type Record struct {
	Time       string         `json:"time"`
	Ticker     string         `json:"ticker"`
	Trend      string         `json:"trend"`
	Direction  string         `json:"direction"`
	RiskReward *float64       `json:"risk_reward"`
	Note       string         `json:"note,omitempty"`
	Patterns   int            `json:"patterns"`
	RSI        *float64       `json:"rsi"`
	Narration  string         `json:"narration,omitempty"`
	Summary    *types.Summary `json:"summary"`
}

// Writer appends analysis records to per-day JSONL files under the report
// directory.
type Writer struct {
	dir string
	mu  sync.Mutex
}

func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = reportDir()
	}
	return &Writer{dir: dir}
}

func reportDir() string {
	if v := os.Getenv("ANALYST_REPORT_DIR"); v != "" {
		return v
	}
	return "reports"
}

func istNow() time.Time { return time.Now().In(time.FixedZone("IST", 19800)) }

func (w *Writer) dailyFilepath(t time.Time) string {
	d := t.Format("2006-01-02")
	return filepath.Join(w.dir, d+".txt")
}

// Append writes one record for a completed analysis pass.
func (w *Writer) Append(summary *types.Summary, narration string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := istNow()
	rec := buildRecord(summary, narration, now)

	p := w.dailyFilepath(now)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f, string(b))
	return err
}

func buildRecord(summary *types.Summary, narration string, now time.Time) Record {
	rec := Record{
		Time:      now.Format("2006-01-02 15:04:05"),
		Ticker:    summary.Ticker,
		Trend:     primaryTrend(summary),
		Direction: "NONE",
		Note:      summary.TradePlan.Note,
		Patterns:  len(summary.Patterns),
		RSI:       summary.Indicators.RSI,
		Narration: narration,
		Summary:   summary,
	}
	if summary.TradePlan.Direction != nil {
		rec.Direction = *summary.TradePlan.Direction
	}
	rec.RiskReward = summary.TradePlan.RiskReward
	return rec
}

// primaryTrend picks the daily trend label, falling back to the first
// timeframe in sorted order when no daily frame was analyzed.
func primaryTrend(summary *types.Summary) string {
	if t, ok := summary.Trend["1D"]; ok {
		return t.Trend
	}
	keys := make([]string, 0, len(summary.Trend))
	for k := range summary.Trend {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return "Unknown"
	}
	return summary.Trend[keys[0]].Trend
}

// CompressOlder gzips report files older than the retention window and
// removes the originals.
func (w *Writer) CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	root := w.dir
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(p) != ".txt" {
			return nil
		}
		info, er := os.Stat(p)
		if er != nil {
			return nil
		}
		cutoff := time.Now().AddDate(0, 0, -retentionDays)
		if info.ModTime().Before(cutoff) {
			gz := p + ".gz"
			if _, e2 := os.Stat(gz); e2 == nil {
				_ = os.Remove(p)
				return nil
			}

			in, e3 := os.Open(p)
			if e3 != nil {
				return nil
			}
			defer in.Close()

			out, e4 := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
			if e4 != nil {
				return nil
			}
			gw := gzip.NewWriter(out)
			if _, e5 := io.Copy(gw, in); e5 == nil {
				_ = gw.Close()
				_ = out.Close()
				_ = os.Remove(p)
			} else {
				_ = gw.Close()
				_ = out.Close()
			}
		}
		return nil
	})
}
