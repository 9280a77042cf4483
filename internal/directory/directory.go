// Package directory provides a static, searchable table of widely traded
// US equities mapping ticker symbols to company names and sectors.
package directory

import (
	"fmt"
	"sort"
	"strings"
)

// Match types, in ranking order.
const (
	MatchTickerExact  = "ticker_exact"
	MatchTickerPrefix = "ticker_prefix"
	MatchName         = "name_match"
)

// Stock is a single directory entry. MatchType is set on search results only.
type Stock struct {
	Ticker    string `json:"ticker"`
	Name      string `json:"name"`
	Sector    string `json:"sector"`
	MatchType string `json:"match_type,omitempty"`
}

var stocks = []Stock{
	// Technology
	{Ticker: "AAPL", Name: "Apple Inc.", Sector: "Technology"},
	{Ticker: "MSFT", Name: "Microsoft Corporation", Sector: "Technology"},
	{Ticker: "GOOGL", Name: "Alphabet Inc.", Sector: "Technology"},
	{Ticker: "GOOG", Name: "Alphabet Inc.", Sector: "Technology"},
	{Ticker: "AMZN", Name: "Amazon.com Inc.", Sector: "Consumer Cyclical"},
	{Ticker: "META", Name: "Meta Platforms Inc.", Sector: "Technology"},
	{Ticker: "NVDA", Name: "NVIDIA Corporation", Sector: "Technology"},
	{Ticker: "TSLA", Name: "Tesla Inc.", Sector: "Consumer Cyclical"},
	{Ticker: "NFLX", Name: "Netflix Inc.", Sector: "Communication Services"},
	{Ticker: "AMD", Name: "Advanced Micro Devices", Sector: "Technology"},
	{Ticker: "INTC", Name: "Intel Corporation", Sector: "Technology"},
	{Ticker: "CRM", Name: "Salesforce Inc.", Sector: "Technology"},
	{Ticker: "ORCL", Name: "Oracle Corporation", Sector: "Technology"},
	{Ticker: "IBM", Name: "International Business Machines", Sector: "Technology"},
	{Ticker: "CSCO", Name: "Cisco Systems Inc.", Sector: "Technology"},

	// Finance
	{Ticker: "JPM", Name: "JPMorgan Chase & Co.", Sector: "Financial Services"},
	{Ticker: "BAC", Name: "Bank of America Corp", Sector: "Financial Services"},
	{Ticker: "WFC", Name: "Wells Fargo & Company", Sector: "Financial Services"},
	{Ticker: "GS", Name: "Goldman Sachs Group Inc.", Sector: "Financial Services"},
	{Ticker: "MS", Name: "Morgan Stanley", Sector: "Financial Services"},
	{Ticker: "C", Name: "Citigroup Inc.", Sector: "Financial Services"},

	// Healthcare
	{Ticker: "JNJ", Name: "Johnson & Johnson", Sector: "Healthcare"},
	{Ticker: "UNH", Name: "UnitedHealth Group Inc.", Sector: "Healthcare"},
	{Ticker: "PFE", Name: "Pfizer Inc.", Sector: "Healthcare"},
	{Ticker: "ABBV", Name: "AbbVie Inc.", Sector: "Healthcare"},
	{Ticker: "MRK", Name: "Merck & Co. Inc.", Sector: "Healthcare"},
	{Ticker: "TMO", Name: "Thermo Fisher Scientific Inc.", Sector: "Healthcare"},

	// Consumer
	{Ticker: "WMT", Name: "Walmart Inc.", Sector: "Consumer Defensive"},
	{Ticker: "PG", Name: "Procter & Gamble Co.", Sector: "Consumer Defensive"},
	{Ticker: "KO", Name: "The Coca-Cola Company", Sector: "Consumer Defensive"},
	{Ticker: "PEP", Name: "PepsiCo Inc.", Sector: "Consumer Defensive"},
	{Ticker: "NKE", Name: "Nike Inc.", Sector: "Consumer Cyclical"},
	{Ticker: "SBUX", Name: "Starbucks Corporation", Sector: "Consumer Cyclical"},
	{Ticker: "MCD", Name: "McDonald's Corporation", Sector: "Consumer Cyclical"},

	// Industrial
	{Ticker: "BA", Name: "The Boeing Company", Sector: "Industrials"},
	{Ticker: "CAT", Name: "Caterpillar Inc.", Sector: "Industrials"},
	{Ticker: "GE", Name: "General Electric Company", Sector: "Industrials"},
	{Ticker: "HON", Name: "Honeywell International Inc.", Sector: "Industrials"},

	// Energy
	{Ticker: "XOM", Name: "Exxon Mobil Corporation", Sector: "Energy"},
	{Ticker: "CVX", Name: "Chevron Corporation", Sector: "Energy"},
	{Ticker: "COP", Name: "ConocoPhillips", Sector: "Energy"},

	// Communication
	{Ticker: "VZ", Name: "Verizon Communications Inc.", Sector: "Communication Services"},
	{Ticker: "T", Name: "AT&T Inc.", Sector: "Communication Services"},
	{Ticker: "DIS", Name: "The Walt Disney Company", Sector: "Communication Services"},
	{Ticker: "CMCSA", Name: "Comcast Corporation", Sector: "Communication Services"},

	// Other
	{Ticker: "V", Name: "Visa Inc.", Sector: "Financial Services"},
	{Ticker: "MA", Name: "Mastercard Incorporated", Sector: "Financial Services"},
	{Ticker: "HD", Name: "The Home Depot Inc.", Sector: "Consumer Cyclical"},
	{Ticker: "MRNA", Name: "Moderna Inc.", Sector: "Healthcare"},
	{Ticker: "PYPL", Name: "PayPal Holdings Inc.", Sector: "Financial Services"},
	{Ticker: "UBER", Name: "Uber Technologies Inc.", Sector: "Technology"},
	{Ticker: "LYFT", Name: "Lyft Inc.", Sector: "Technology"},
	{Ticker: "SPOT", Name: "Spotify Technology S.A.", Sector: "Communication Services"},
	{Ticker: "SQ", Name: "Block Inc.", Sector: "Technology"},
	{Ticker: "SHOP", Name: "Shopify Inc.", Sector: "Technology"},
	{Ticker: "ZM", Name: "Zoom Video Communications", Sector: "Technology"},
	{Ticker: "ROKU", Name: "Roku Inc.", Sector: "Communication Services"},
}

var byTicker = func() map[string]Stock {
	m := make(map[string]Stock, len(stocks))
	for _, s := range stocks {
		m[s.Ticker] = s
	}
	return m
}()

// Lookup returns the directory entry for a ticker, if present.
func Lookup(ticker string) (Stock, bool) {
	s, ok := byTicker[strings.ToUpper(strings.TrimSpace(ticker))]
	return s, ok
}

// Search finds stocks matching query by ticker or company name. Results are
// ranked exact ticker match first, then ticker prefixes, then case-insensitive
// name substrings, each group sorted by ticker, truncated to limit.
func Search(query string, limit int) []Stock {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}

	queryUpper := strings.ToUpper(query)
	queryLower := strings.ToLower(query)

	var results []Stock
	seen := make(map[string]bool)

	if s, ok := byTicker[queryUpper]; ok {
		s.MatchType = MatchTickerExact
		results = append(results, s)
		seen[s.Ticker] = true
	}

	for _, s := range stocks {
		if seen[s.Ticker] || !strings.HasPrefix(s.Ticker, queryUpper) {
			continue
		}
		s.MatchType = MatchTickerPrefix
		results = append(results, s)
		seen[s.Ticker] = true
	}

	for _, s := range stocks {
		if seen[s.Ticker] || !strings.Contains(strings.ToLower(s.Name), queryLower) {
			continue
		}
		s.MatchType = MatchName
		results = append(results, s)
		seen[s.Ticker] = true
	}

	priority := map[string]int{MatchTickerExact: 0, MatchTickerPrefix: 1, MatchName: 2}
	sort.SliceStable(results, func(i, j int) bool {
		pi, pj := priority[results[i].MatchType], priority[results[j].MatchType]
		if pi != pj {
			return pi < pj
		}
		return results[i].Ticker < results[j].Ticker
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// All returns every directory entry in table order.
func All() []Stock {
	out := make([]Stock, len(stocks))
	copy(out, stocks)
	return out
}

// DisplayName formats a ticker as "TICKER - Company Name", or returns the
// ticker unchanged when it is not in the directory.
func DisplayName(ticker string) string {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if s, ok := byTicker[ticker]; ok {
		return fmt.Sprintf("%s - %s", s.Ticker, s.Name)
	}
	return ticker
}
