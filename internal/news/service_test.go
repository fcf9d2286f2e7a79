package news

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"llm-stock-analyst/internal/types"
)

func TestHeadlineCache(t *testing.T) {
	cache := newHeadlineCache(1 * time.Second)

	symbol := "RELIANCE"
	headlines := []types.Headline{
		{Title: "Reliance announces expansion", URL: "https://example.com/a", Source: "MoneyControl"},
	}

	cache.set(symbol, headlines)

	retrieved, found := cache.get(symbol)
	if !found {
		t.Fatal("Expected to find cached headlines")
	}
	if len(retrieved) != 1 || retrieved[0].Title != "Reliance announces expansion" {
		t.Errorf("Unexpected cached headlines: %+v", retrieved)
	}

	// Test expiration
	time.Sleep(2 * time.Second)
	_, found = cache.get(symbol)
	if found {
		t.Error("Expected cache entry to be expired")
	}
}

func TestServiceConfig(t *testing.T) {
	cfg := DefaultServiceConfig()

	if cfg.MaxHeadlines != 10 {
		t.Errorf("Expected MaxHeadlines to be 10, got %d", cfg.MaxHeadlines)
	}
	if cfg.CacheDuration != 1*time.Hour {
		t.Errorf("Expected CacheDuration to be 1 hour, got %v", cfg.CacheDuration)
	}
	if !cfg.Enabled {
		t.Error("Expected Enabled to be true")
	}
}

func TestServiceDisabled(t *testing.T) {
	svc := NewService(&ServiceConfig{Enabled: false})

	headlines, err := svc.Headlines(context.Background(), "RELIANCE")
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if len(headlines) != 0 {
		t.Errorf("Expected no headlines when disabled, got %d", len(headlines))
	}
}

func TestCacheCleanup(t *testing.T) {
	cache := newHeadlineCache(100 * time.Millisecond)

	for _, sym := range []string{"RELIANCE", "TCS", "INFY"} {
		cache.set(sym, []types.Headline{{Title: sym + " news", URL: "https://example.com"}})
	}

	time.Sleep(200 * time.Millisecond)
	cache.cleanup()

	cache.mu.RLock()
	count := len(cache.data)
	cache.mu.RUnlock()

	if count != 0 {
		t.Errorf("Expected 0 cache entries after cleanup, got %d", count)
	}
}

func TestCachedSymbolsAndClear(t *testing.T) {
	svc := NewService(DefaultServiceConfig())

	for _, sym := range []string{"RELIANCE", "TCS", "INFY"} {
		svc.cache.set(sym, []types.Headline{{Title: sym}})
	}

	if got := len(svc.CachedSymbols()); got != 3 {
		t.Errorf("Expected 3 cached symbols, got %d", got)
	}

	svc.ClearCache()

	if got := len(svc.CachedSymbols()); got != 0 {
		t.Errorf("Expected 0 cached symbols after clear, got %d", got)
	}
}

func TestExtractHeadline(t *testing.T) {
	html := `<li class="clearfix">
		<h2><a href="/news/reliance-q1.html">Reliance posts record quarter</a></h2>
		<span class="ago">2 hours ago</span>
	</li>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	source := defaultSources()[0]
	sel := doc.Find(source.Selectors.Container)

	h, ok := extractHeadline(sel, source)
	if !ok {
		t.Fatal("Expected headline to be extracted")
	}
	if h.Title != "Reliance posts record quarter" {
		t.Errorf("Title = %q", h.Title)
	}
	if h.URL != "https://www.moneycontrol.com/news/reliance-q1.html" {
		t.Errorf("URL = %q, want absolute", h.URL)
	}
	if h.Source != "MoneyControl" {
		t.Errorf("Source = %q", h.Source)
	}
	if h.PublishedAt != "2 hours ago" {
		t.Errorf("PublishedAt = %q", h.PublishedAt)
	}
}

func TestExtractHeadlineMissingTitle(t *testing.T) {
	html := `<li class="clearfix"><span class="ago">1 hour ago</span></li>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	source := defaultSources()[0]
	if _, ok := extractHeadline(doc.Find(source.Selectors.Container), source); ok {
		t.Error("Expected extraction to fail without a title")
	}
}
