package marketdata

import (
	"context"
	"fmt"
	"sync"
	"time"

	"llm-stock-analyst/internal/interfaces"
	"llm-stock-analyst/internal/types"
)

// CachedProvider memoizes history per symbol and timeframe so a multi
// timeframe analysis pass fetches each series from upstream at most once per
// TTL window.
type CachedProvider struct {
	upstream interfaces.Provider
	ttl      time.Duration
	now      func() time.Time

	entries map[string]*cacheEntry
	mu      sync.RWMutex
}

type cacheEntry struct {
	candles   []types.Candle
	fetchedAt time.Time
}

var _ interfaces.Provider = (*CachedProvider)(nil)

func NewCachedProvider(upstream interfaces.Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		upstream: upstream,
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[string]*cacheEntry),
	}
}

func (c *CachedProvider) History(ctx context.Context, symbol, timeframe string, bars int) ([]types.Candle, error) {
	key := cacheKey(symbol, timeframe)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.now().Sub(entry.fetchedAt) < c.ttl && len(entry.candles) >= bars {
		return tail(entry.candles, bars), nil
	}

	candles, err := c.upstream.History(ctx, symbol, timeframe, bars)
	if err != nil {
		// Serve stale data over nothing when upstream flakes.
		if ok && len(entry.candles) > 0 {
			return tail(entry.candles, bars), nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = &cacheEntry{candles: candles, fetchedAt: c.now()}
	c.mu.Unlock()

	return candles, nil
}

func cacheKey(symbol, timeframe string) string {
	return fmt.Sprintf("%s|%s", symbol, timeframe)
}

func tail(candles []types.Candle, n int) []types.Candle {
	if len(candles) <= n {
		return candles
	}
	return candles[len(candles)-n:]
}
