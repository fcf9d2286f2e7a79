package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataSource  string   `yaml:"data_source"`
	Exchange    string   `yaml:"exchange"`
	Tickers     []string `yaml:"tickers"`
	PollSeconds int      `yaml:"poll_seconds"`
	Workers     int      `yaml:"workers"`
	HistoryBars int      `yaml:"history_bars"`
	Timeframes  []string `yaml:"timeframes"`

	Indicators struct {
		RSIWindow  int     `yaml:"rsi_window"`
		MACDFast   int     `yaml:"macd_fast"`
		MACDSlow   int     `yaml:"macd_slow"`
		MACDSignal int     `yaml:"macd_signal"`
		BBWindow   int     `yaml:"bb_window"`
		BBStdDev   float64 `yaml:"bb_stddev"`
		ATRWindow  int     `yaml:"atr_window"`
		SMAFast    int     `yaml:"sma_fast"`
		SMASlow    int     `yaml:"sma_slow"`
	} `yaml:"indicators"`

	Patterns struct {
		Lookback          int     `yaml:"lookback"`
		UpperWickMaxRatio float64 `yaml:"upper_wick_max_ratio"`
		LowerWickMinRatio float64 `yaml:"lower_wick_min_ratio"`
	} `yaml:"patterns"`

	Levels struct {
		ClusterThreshold float64 `yaml:"cluster_threshold"`
	} `yaml:"levels"`

	Trend struct {
		NeutralBand  float64 `yaml:"neutral_band"`
		ModerateBand float64 `yaml:"moderate_band"`
		StrongBand   float64 `yaml:"strong_band"`
	} `yaml:"trend"`

	LLM struct {
		Provider    string  `yaml:"provider"`
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
		System      string  `yaml:"system"`
	} `yaml:"llm"`

	News struct {
		Enabled      bool `yaml:"enabled"`
		MaxHeadlines int  `yaml:"max_headlines"`
		CacheMinutes int  `yaml:"cache_minutes"`
	} `yaml:"news"`

	Report struct {
		Dir           string `yaml:"dir"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"report"`
}

func (c *Config) Validate() error {
	if c.DataSource != "STATIC" && c.DataSource != "LIVE" {
		return fmt.Errorf("invalid data_source '%s': must be 'STATIC' or 'LIVE'", c.DataSource)
	}
	if len(c.Tickers) == 0 {
		return errors.New("tickers cannot be empty")
	}
	if c.HistoryBars < 3 {
		return fmt.Errorf("history_bars must be at least 3, got %d", c.HistoryBars)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Workers)
	}
	if c.PollSeconds < 0 {
		return fmt.Errorf("poll_seconds cannot be negative, got %d", c.PollSeconds)
	}
	if c.Levels.ClusterThreshold < 0 || c.Levels.ClusterThreshold >= 1 {
		return fmt.Errorf("levels.cluster_threshold must be in [0,1), got %.4f", c.Levels.ClusterThreshold)
	}
	if c.Indicators.MACDFast >= c.Indicators.MACDSlow && c.Indicators.MACDSlow != 0 {
		return fmt.Errorf("indicators.macd_fast (%d) must be below macd_slow (%d)",
			c.Indicators.MACDFast, c.Indicators.MACDSlow)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.DataSource == "" {
		c.DataSource = "STATIC"
	}
	if c.HistoryBars == 0 {
		c.HistoryBars = 750
	}
	if len(c.Timeframes) == 0 {
		c.Timeframes = []string{"1D", "4H", "1H"}
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.Patterns.Lookback == 0 {
		c.Patterns.Lookback = 50
	}
	if c.Levels.ClusterThreshold == 0 {
		c.Levels.ClusterThreshold = 0.005
	}
	if c.News.MaxHeadlines == 0 {
		c.News.MaxHeadlines = 10
	}
	if c.News.CacheMinutes == 0 {
		c.News.CacheMinutes = 60
	}
	if c.Report.Dir == "" {
		c.Report.Dir = "reports"
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
