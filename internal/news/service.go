package news

import (
	"context"
	"sync"
	"time"

	"llm-stock-analyst/internal/logger"
	"llm-stock-analyst/internal/types"
)

// Service provides symbol headlines with caching. It never fails the caller:
// scrape errors degrade to an empty headline list so narration proceeds
// without news context.
type Service struct {
	scraper *Scraper
	cache   *headlineCache
	cfg     *ServiceConfig
}

// ServiceConfig configures the headline service
type ServiceConfig struct {
	MaxHeadlines   int           // Maximum headlines to collect per symbol
	CacheDuration  time.Duration // How long to cache headlines
	ScraperTimeout time.Duration // Timeout for scraping operations
	Enabled        bool          // Whether headline collection is enabled
}

// DefaultServiceConfig returns default configuration
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		MaxHeadlines:   10,
		CacheDuration:  1 * time.Hour,
		ScraperTimeout: 30 * time.Second,
		Enabled:        true,
	}
}

// headlineCache stores scraped headlines temporarily
type headlineCache struct {
	mu   sync.RWMutex
	data map[string]*cacheEntry
	ttl  time.Duration
}

type cacheEntry struct {
	headlines []types.Headline
	timestamp time.Time
}

func newHeadlineCache(ttl time.Duration) *headlineCache {
	cache := &headlineCache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
	}

	go cache.cleanupLoop()

	return cache
}

func (c *headlineCache) get(symbol string) ([]types.Headline, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.data[symbol]
	if !exists {
		return nil, false
	}

	if time.Since(entry.timestamp) > c.ttl {
		return nil, false
	}

	return entry.headlines, true
}

func (c *headlineCache) set(symbol string, headlines []types.Headline) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[symbol] = &cacheEntry{
		headlines: headlines,
		timestamp: time.Now(),
	}
}

func (c *headlineCache) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *headlineCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for symbol, entry := range c.data {
		if now.Sub(entry.timestamp) > c.ttl {
			delete(c.data, symbol)
		}
	}
}

// NewService creates a new headline service
func NewService(cfg *ServiceConfig) *Service {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}

	return &Service{
		scraper: NewScraper(cfg.ScraperTimeout),
		cache:   newHeadlineCache(cfg.CacheDuration),
		cfg:     cfg,
	}
}

// Headlines retrieves headlines for a symbol, cached or fresh.
func (s *Service) Headlines(ctx context.Context, symbol string) ([]types.Headline, error) {
	if !s.cfg.Enabled {
		return []types.Headline{}, nil
	}

	if cached, ok := s.cache.get(symbol); ok {
		logger.Info(ctx, "Using cached headlines", "symbol", symbol, "count", len(cached))
		return cached, nil
	}

	logger.Info(ctx, "Fetching fresh headlines", "symbol", symbol)
	headlines, err := s.scraper.Scrape(ctx, symbol, s.cfg.MaxHeadlines)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch headlines", err, "symbol", symbol)
		return []types.Headline{}, nil
	}

	s.cache.set(symbol, headlines)

	return headlines, nil
}

// Refresh forces a fresh scrape, bypassing the cache.
func (s *Service) Refresh(ctx context.Context, symbol string) ([]types.Headline, error) {
	headlines, err := s.scraper.Scrape(ctx, symbol, s.cfg.MaxHeadlines)
	if err != nil {
		return nil, err
	}

	s.cache.set(symbol, headlines)
	return headlines, nil
}

// ClearCache removes all cached headlines
func (s *Service) ClearCache() {
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	s.cache.data = make(map[string]*cacheEntry)
}

// CachedSymbols returns the symbols with cached headlines
func (s *Service) CachedSymbols() []string {
	s.cache.mu.RLock()
	defer s.cache.mu.RUnlock()

	symbols := make([]string, 0, len(s.cache.data))
	for symbol := range s.cache.data {
		symbols = append(symbols, symbol)
	}
	return symbols
}
