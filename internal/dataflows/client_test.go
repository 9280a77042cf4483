package dataflows

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"stocklens/config"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.FinnhubAPIKey = ""
	cfg.HTTPTimeout = 5 * time.Second
	cfg.ScrapeTimeout = 5 * time.Second
	return NewClient(cfg, zap.NewNop())
}

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <item>
      <title>Quarterly results beat expectations</title>
      <link>https://example.com/article-1</link>
      <pubDate>Mon, 04 Aug 2025 10:30:00 +0000</pubDate>
      <source url="https://example.com">Example Wire</source>
    </item>
    <item>
      <title>Guidance raised for the full year</title>
      <link>https://example.com/article-2</link>
      <pubDate>not a date</pubDate>
    </item>
    <item>
      <title></title>
      <link>https://example.com/no-title</link>
    </item>
  </channel>
</rss>`

func TestValidateSymbol(t *testing.T) {
	valid := []string{"AAPL", "brk.b", " msft ", "BF-B"}
	for _, s := range valid {
		if err := ValidateSymbol(s); err != nil {
			t.Errorf("ValidateSymbol(%q) unexpected error: %v", s, err)
		}
	}
	invalid := []string{"", "TOOLONGSYMBOL", "AA PL", "A$PL"}
	for _, s := range invalid {
		if err := ValidateSymbol(s); err == nil {
			t.Errorf("ValidateSymbol(%q) expected error", s)
		}
	}
}

func TestParsePubDate(t *testing.T) {
	got := parsePubDate("Mon, 04 Aug 2025 10:30:00 +0000")
	if got.IsZero() {
		t.Errorf("RFC1123Z date should parse")
	}
	got = parsePubDate("Mon, 04 Aug 2025 10:30:00 GMT")
	if got.IsZero() {
		t.Errorf("RFC1123 fallback date should parse")
	}
	if got := parsePubDate("yesterday-ish"); !got.IsZero() {
		t.Errorf("garbage date should come back zero, got %v", got)
	}
	if got := parsePubDate(""); !got.IsZero() {
		t.Errorf("empty date should come back zero")
	}
}

func TestFetchRSSParsesItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleRSS)
	}))
	defer srv.Close()

	c := testClient(t)
	items, err := c.fetchRSS(srv.URL, "Fallback Publisher")
	if err != nil {
		t.Fatalf("fetchRSS failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items (title-less item dropped), got %d", len(items))
	}
	if items[0].Publisher != "Example Wire" {
		t.Errorf("expected source element publisher, got %q", items[0].Publisher)
	}
	if items[0].Published.IsZero() {
		t.Errorf("first item should have a parsed publish time")
	}
	if items[1].Publisher != "Fallback Publisher" {
		t.Errorf("expected fallback publisher, got %q", items[1].Publisher)
	}
	if !items[1].Published.IsZero() {
		t.Errorf("unparseable pubDate should leave Published zero")
	}
}

func TestGetNewsFirstNonEmptySourceWins(t *testing.T) {
	finnhub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer finnhub.Close()

	emptyFeed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>Empty</title></channel></rss>`)
	}))
	defer emptyFeed.Close()

	goodFeed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleRSS)
	}))
	defer goodFeed.Close()

	c := testClient(t)
	c.cfg.FinnhubAPIKey = "test-key"
	c.finnhubBaseURL = finnhub.URL
	c.yahooRSSURLs = []string{emptyFeed.URL + "?s=%s"}
	c.googleRSSURL = goodFeed.URL

	items, err := c.GetNews("AAPL")
	if err != nil {
		t.Fatalf("GetNews: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items from the third source, got %d", len(items))
	}
	if items[0].Title != "Quarterly results beat expectations" {
		t.Errorf("unexpected first item: %q", items[0].Title)
	}
}

func TestGetNewsCapsResults(t *testing.T) {
	big := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>Big</title>`)
		for i := 0; i < 25; i++ {
			fmt.Fprintf(w, `<item><title>Story %d</title><link>https://example.com/%d</link></item>`, i, i)
		}
		fmt.Fprint(w, `</channel></rss>`)
	}))
	defer big.Close()

	c := testClient(t)
	c.yahooRSSURLs = []string{big.URL + "?s=%s"}

	items, err := c.GetNews("MSFT")
	if err != nil {
		t.Fatalf("GetNews: %v", err)
	}
	if len(items) != c.cfg.MaxNewsItems {
		t.Errorf("expected cap of %d items, got %d", c.cfg.MaxNewsItems, len(items))
	}
}

func TestGetNewsAllSourcesEmpty(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer down.Close()

	c := testClient(t)
	c.yahooRSSURLs = []string{down.URL + "?s=%s"}
	c.googleRSSURL = down.URL
	c.scrapeURL = down.URL + "/quote/%s/news"

	items, err := c.GetNews("AAPL")
	if items != nil {
		t.Errorf("expected nil when every source fails, got %d items", len(items))
	}
	if err == nil {
		t.Fatal("expected a tagged error when every source fails")
	}
	if kind := KindOf(err); kind != KindNewsUnavailable {
		t.Errorf("KindOf = %q, want %q", kind, KindNewsUnavailable)
	}
}

func TestFinnhubNewsRequiresKey(t *testing.T) {
	c := testClient(t)
	c.cfg.FinnhubAPIKey = ""
	if _, err := c.fetchFinnhubNews("AAPL"); err == nil {
		t.Errorf("expected error without API key")
	}
}

func TestFinnhubNewsParsing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `[
			{"headline":"Chip demand surges","source":"NewsWire","url":"https://example.com/a","datetime":1754300000},
			{"headline":"","source":"NewsWire","url":"https://example.com/b","datetime":1754300001}
		]`)
	}))
	defer srv.Close()

	c := testClient(t)
	c.cfg.FinnhubAPIKey = "test-key"
	c.finnhubBaseURL = srv.URL

	items, err := c.fetchFinnhubNews("NVDA")
	if err != nil {
		t.Fatalf("fetchFinnhubNews failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item (empty headline dropped), got %d", len(items))
	}
	if items[0].Publisher != "NewsWire" || items[0].Published.IsZero() {
		t.Errorf("unexpected item: %+v", items[0])
	}
}

func TestGetRecommendationsChronologicalOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"company":"Newest Firm","fromGrade":"Hold","toGrade":"Buy","action":"up","gradeTime":1754300000},
			{"company":"Oldest Firm","fromGrade":"Buy","toGrade":"Hold","action":"down","gradeTime":1700000000}
		]`)
	}))
	defer srv.Close()

	c := testClient(t)
	c.cfg.FinnhubAPIKey = "test-key"
	c.finnhubBaseURL = srv.URL

	recs, err := c.GetRecommendations("AAPL")
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Firm != "Oldest Firm" || recs[1].Firm != "Newest Firm" {
		t.Errorf("expected chronological order, got %s then %s", recs[0].Firm, recs[1].Firm)
	}
}

func TestGetRecommendationsWithoutKey(t *testing.T) {
	c := testClient(t)
	c.cfg.FinnhubAPIKey = ""
	recs, err := c.GetRecommendations("AAPL")
	if err != nil {
		t.Fatalf("no key should not be an error: %v", err)
	}
	if recs != nil {
		t.Errorf("no key should return nil records")
	}
}

func TestScrapeYahooNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<article><h3><a href="/news/story-one.html">Big product launch</a></h3></article>
			<article><h3><a href="https://finance.yahoo.com/news/story-two.html">Earnings preview</a></h3></article>
			<article><h3><a href="/news/story-one.html">Big product launch</a></h3></article>
		</body></html>`)
	}))
	defer srv.Close()

	c := testClient(t)
	c.scrapeURL = srv.URL + "/quote/%s/news"

	items, err := c.scrapeYahooNews("AAPL")
	if err != nil {
		t.Fatalf("scrapeYahooNews failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 deduped items, got %d", len(items))
	}
	if items[0].Link != "https://finance.yahoo.com/news/story-one.html" {
		t.Errorf("relative link should be made absolute, got %s", items[0].Link)
	}
	if !items[0].Published.IsZero() {
		t.Errorf("scraped items carry no publish time")
	}
}

func TestErrorKind(t *testing.T) {
	base := fmt.Errorf("boom")
	err := NewError(KindDataUnavailable, "ZZZZ", "no price data found for ZZZZ", base)

	if KindOf(err) != KindDataUnavailable {
		t.Errorf("expected KindDataUnavailable, got %s", KindOf(err))
	}
	wrapped := fmt.Errorf("fetch: %w", err)
	if KindOf(wrapped) != KindDataUnavailable {
		t.Errorf("kind should survive wrapping")
	}
	if !errors.Is(wrapped, err) {
		t.Errorf("errors.Is should match the tagged error")
	}
	if KindOf(fmt.Errorf("plain")) != "" {
		t.Errorf("plain errors have no kind")
	}
}

func TestFetchRejectsBadPeriod(t *testing.T) {
	c := testClient(t)
	_, err := c.Fetch("AAPL", "7y")
	if err == nil {
		t.Fatalf("expected error for unknown period")
	}
	if KindOf(err) != KindDataUnavailable {
		t.Errorf("expected tagged DataUnavailable, got %v", err)
	}
}

func TestFetchRejectsBadSymbol(t *testing.T) {
	c := testClient(t)
	if _, err := c.Fetch("BAD SYMBOL", "1y"); err == nil {
		t.Errorf("expected error for malformed symbol")
	}
}
