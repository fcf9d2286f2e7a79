package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
data_source: STATIC
tickers: [AAPL]
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HistoryBars != 750 {
		t.Errorf("history_bars default = %d, want 750", cfg.HistoryBars)
	}
	if len(cfg.Timeframes) != 3 || cfg.Timeframes[0] != "1D" {
		t.Errorf("timeframes default = %v, want [1D 4H 1H]", cfg.Timeframes)
	}
	if cfg.Levels.ClusterThreshold != 0.005 {
		t.Errorf("cluster_threshold default = %v, want 0.005", cfg.Levels.ClusterThreshold)
	}
	if cfg.Patterns.Lookback != 50 {
		t.Errorf("patterns lookback default = %d, want 50", cfg.Patterns.Lookback)
	}
	if cfg.Workers != 4 {
		t.Errorf("workers default = %d, want 4", cfg.Workers)
	}
	if cfg.Report.Dir != "reports" {
		t.Errorf("report dir default = %q, want reports", cfg.Report.Dir)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad data source", "data_source: SOMETHING\ntickers: [AAPL]\n"},
		{"no tickers", "data_source: STATIC\ntickers: []\n"},
		{"tiny history", "data_source: STATIC\ntickers: [AAPL]\nhistory_bars: 2\n"},
		{"threshold out of range", "data_source: STATIC\ntickers: [AAPL]\nlevels:\n  cluster_threshold: 1.5\n"},
		{"macd fast above slow", "data_source: STATIC\ntickers: [AAPL]\nindicators:\n  macd_fast: 30\n  macd_slow: 26\n"},
		{"negative workers", "data_source: STATIC\ntickers: [AAPL]\nworkers: -2\n"},
		{"negative poll interval", "data_source: STATIC\ntickers: [AAPL]\npoll_seconds: -10\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tc.body)); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
