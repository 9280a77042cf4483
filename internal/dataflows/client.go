// Package dataflows fetches market data for a ticker: daily OHLCV history,
// a company quote, analyst grade changes, and recent news headlines with a
// layered source fallback.
package dataflows

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"stocklens/config"
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// Client is the market data gateway. One instance serves any number of
// sequential Fetch calls; it holds no per-ticker state.
type Client struct {
	cfg    *config.Config
	logger *zap.Logger

	finnhub *resty.Client
	rss     *resty.Client
	scraper *resty.Client

	// Overridable source endpoints.
	finnhubBaseURL string
	yahooRSSURLs   []string
	googleRSSURL   string
	scrapeURL      string
}

// NewClient builds a gateway from config. The logger must not be nil.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	finnhub := resty.New()
	finnhub.SetTimeout(cfg.HTTPTimeout)

	rss := resty.New()
	rss.SetTimeout(cfg.HTTPTimeout)
	rss.SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	// The scrape fallback gets a short fixed timeout so a slow page does
	// not stall the whole analysis.
	scraper := resty.New()
	scraper.SetTimeout(cfg.ScrapeTimeout)
	scraper.SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	return &Client{
		cfg:     cfg,
		logger:  logger,
		finnhub: finnhub,
		rss:     rss,
		scraper: scraper,

		finnhubBaseURL: "https://finnhub.io/api/v1",
		yahooRSSURLs: []string{
			"https://feeds.finance.yahoo.com/rss/2.0/headline?s=%s&region=US&lang=en-US",
			"https://finance.yahoo.com/rss/headline?s=%s",
		},
		googleRSSURL: "https://news.google.com/rss/search",
		scrapeURL:    "https://finance.yahoo.com/quote/%s/news",
	}
}

// NormalizeSymbol uppercases and trims a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidateSymbol checks the ticker shape before any network call.
func ValidateSymbol(symbol string) error {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return fmt.Errorf("symbol cannot be empty")
	}
	if len(symbol) > 10 {
		return fmt.Errorf("symbol too long: %s", symbol)
	}
	if !symbolPattern.MatchString(symbol) {
		return fmt.Errorf("invalid symbol format: %s", symbol)
	}
	return nil
}

// Fetch collects everything an analysis run needs for a ticker. Empty price
// history is a tagged DataUnavailable failure; missing quote, analyst, or
// news data degrades to absent sections without failing the fetch.
func (c *Client) Fetch(ticker, period string) (*StockData, error) {
	if err := ValidateSymbol(ticker); err != nil {
		return nil, NewError(KindDataUnavailable, ticker, err.Error(), err)
	}
	ticker = NormalizeSymbol(ticker)

	days, err := config.PeriodDays(period)
	if err != nil {
		return nil, NewError(KindDataUnavailable, ticker, err.Error(), err)
	}

	history, err := c.GetHistory(ticker, days)
	if err != nil {
		return nil, NewError(KindDataUnavailable, ticker,
			fmt.Sprintf("no price data found for %s", ticker), err)
	}
	if len(history) == 0 {
		return nil, NewError(KindDataUnavailable, ticker,
			fmt.Sprintf("no price data found for %s", ticker), nil)
	}

	data := &StockData{
		Ticker:    ticker,
		Period:    period,
		History:   history,
		FetchedAt: time.Now(),
	}

	quote, err := c.GetQuote(ticker)
	if err != nil {
		c.logger.Warn("quote fetch failed", zap.String("ticker", ticker), zap.Error(err))
	} else {
		data.Quote = quote
	}

	recs, err := c.GetRecommendations(ticker)
	if err != nil {
		c.logger.Debug("recommendations unavailable", zap.String("ticker", ticker), zap.Error(err))
	} else {
		data.Recommendations = recs
	}

	news, err := c.GetNews(ticker)
	if err != nil {
		c.logger.Debug("news unavailable", zap.String("ticker", ticker), zap.Error(err))
	} else {
		data.News = news
	}

	return data, nil
}

// GetNews walks the source chain in order and returns the first non-empty
// result, capped at the configured item limit. Every stage failure is
// swallowed; when all sources come up dry it returns a tagged
// NewsUnavailable error.
func (c *Client) GetNews(ticker string) ([]NewsItem, error) {
	type stage struct {
		name  string
		fetch func(string) ([]NewsItem, error)
	}
	stages := []stage{
		{"finnhub", c.fetchFinnhubNews},
		{"yahoo_rss", c.fetchYahooRSS},
		{"google_rss", c.fetchGoogleNewsRSS},
		{"scrape", c.scrapeYahooNews},
	}

	for _, s := range stages {
		items, err := s.fetch(ticker)
		if err != nil {
			c.logger.Debug("news source failed",
				zap.String("ticker", ticker),
				zap.String("source", s.name),
				zap.Error(err))
			continue
		}
		if len(items) == 0 {
			continue
		}
		if len(items) > c.cfg.MaxNewsItems {
			items = items[:c.cfg.MaxNewsItems]
		}
		c.logger.Debug("news fetched",
			zap.String("ticker", ticker),
			zap.String("source", s.name),
			zap.Int("count", len(items)))
		return items, nil
	}

	return nil, NewError(KindNewsUnavailable, ticker,
		fmt.Sprintf("no news found for %s", ticker), nil)
}
