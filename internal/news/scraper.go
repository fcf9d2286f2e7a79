package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"llm-stock-analyst/internal/logger"
	"llm-stock-analyst/internal/types"
)

// Scraper collects headlines for a symbol from financial news sources.
type Scraper struct {
	sources []Source
	timeout time.Duration
}

// Source defines one news site and the selectors that locate headlines on it.
type Source struct {
	Name       string
	BaseURL    string
	SearchPath string // e.g., "/search?q={symbol}"
	Selectors  HeadlineSelectors
	RateLimit  time.Duration
}

// HeadlineSelectors are the CSS selectors for extracting headline data.
type HeadlineSelectors struct {
	Container   string
	Title       string
	URL         string
	PublishedAt string
}

func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		sources: defaultSources(),
		timeout: timeout,
	}
}

func defaultSources() []Source {
	return []Source{
		{
			Name:       "MoneyControl",
			BaseURL:    "https://www.moneycontrol.com",
			SearchPath: "/news/tags/{symbol}.html",
			Selectors: HeadlineSelectors{
				Container:   "li.clearfix",
				Title:       "h2 a, h3 a",
				URL:         "h2 a, h3 a",
				PublishedAt: "span.ago",
			},
			RateLimit: 2 * time.Second,
		},
		{
			Name:       "EconomicTimes",
			BaseURL:    "https://economictimes.indiatimes.com",
			SearchPath: "/topic/{symbol}",
			Selectors: HeadlineSelectors{
				Container:   "div.story-box",
				Title:       "a",
				URL:         "a",
				PublishedAt: "time",
			},
			RateLimit: 2 * time.Second,
		},
		{
			Name:       "BusinessStandard",
			BaseURL:    "https://www.business-standard.com",
			SearchPath: "/search?q={symbol}",
			Selectors: HeadlineSelectors{
				Container:   "div.listing-txt",
				Title:       "a.Hdng",
				URL:         "a.Hdng",
				PublishedAt: "span.listing-date",
			},
			RateLimit: 2 * time.Second,
		},
	}
}

// Scrape fetches headlines for a symbol from all sources. Source failures are
// logged and skipped rather than failing the whole collection.
func (s *Scraper) Scrape(ctx context.Context, symbol string, maxHeadlines int) ([]types.Headline, error) {
	logger.Info(ctx, "Starting headline scraping", "symbol", symbol, "sources", len(s.sources))

	all := []types.Headline{}
	perSource := maxHeadlines / len(s.sources)
	if perSource < 1 {
		perSource = 1
	}

	for _, source := range s.sources {
		headlines, err := s.scrapeSource(ctx, source, symbol, perSource)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to scrape source", err, "source", source.Name, "symbol", symbol)
			continue
		}
		all = append(all, headlines...)

		time.Sleep(source.RateLimit)
	}

	if len(all) > maxHeadlines {
		all = all[:maxHeadlines]
	}

	logger.Info(ctx, "Headline scraping completed", "symbol", symbol, "headlines", len(all))
	return all, nil
}

func (s *Scraper) scrapeSource(ctx context.Context, source Source, symbol string, maxHeadlines int) ([]types.Headline, error) {
	headlines := []types.Headline{}

	c := colly.NewCollector(
		colly.AllowedDomains(getDomain(source.BaseURL)),
		colly.MaxDepth(1),
		colly.Async(false),
	)

	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	})

	c.OnHTML(source.Selectors.Container, func(e *colly.HTMLElement) {
		if len(headlines) >= maxHeadlines {
			return
		}

		h, ok := extractHeadline(e.DOM, source)
		if !ok {
			return
		}
		headlines = append(headlines, h)
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "Scraping error", err, "source", source.Name, "url", r.Request.URL.String())
	})

	searchURL := source.BaseURL + strings.ReplaceAll(source.SearchPath, "{symbol}", strings.ToLower(symbol))

	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", searchURL, err)
	}

	c.Wait()

	return headlines, nil
}

// extractHeadline pulls the headline fields out of one container selection.
func extractHeadline(sel *goquery.Selection, source Source) (types.Headline, bool) {
	link := sel.Find(source.Selectors.URL).First()

	title := strings.TrimSpace(link.Text())
	if title == "" {
		title = strings.TrimSpace(sel.Find(source.Selectors.Title).First().Text())
	}
	if title == "" {
		return types.Headline{}, false
	}

	href, _ := link.Attr("href")
	if href == "" {
		return types.Headline{}, false
	}
	if !strings.HasPrefix(href, "http") {
		href = source.BaseURL + href
	}

	publishedAt := strings.TrimSpace(sel.Find(source.Selectors.PublishedAt).First().Text())

	return types.Headline{
		Title:       title,
		URL:         href,
		Source:      source.Name,
		PublishedAt: publishedAt,
	}, true
}

func getDomain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
