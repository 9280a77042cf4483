package dataflows

import (
	"fmt"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
)

// GetHistory fetches daily bars for the trailing day window, ascending by
// date with duplicate timestamps dropped.
func (c *Client) GetHistory(symbol string, days int) ([]Bar, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)

	var bars []Bar
	var lastTS int64
	for iter.Next() {
		b := iter.Bar()
		ts := int64(b.Timestamp)
		if ts == lastTS && len(bars) > 0 {
			continue
		}
		lastTS = ts

		bars = append(bars, Bar{
			Date:   time.Unix(ts, 0),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: int64(b.Volume),
		})
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("get historical data for %s: %w", symbol, err)
	}

	return bars, nil
}

// GetQuote fetches the current quote and company metadata. Fundamental
// fields are best effort; the provider omits them for some symbols.
func (c *Client) GetQuote(symbol string) (*Quote, error) {
	eq, err := equity.Get(symbol)
	if err != nil {
		return nil, fmt.Errorf("get quote for %s: %w", symbol, err)
	}
	if eq == nil {
		return nil, fmt.Errorf("empty quote for %s", symbol)
	}

	return quoteFromEquity(symbol, eq), nil
}

// quoteFromEquity maps the provider equity record onto our Quote. The long
// name, market cap and trailing P/E live on the equity; the rest comes from
// the embedded quote.
func quoteFromEquity(symbol string, eq *finance.Equity) *Quote {
	name := eq.LongName
	if name == "" {
		name = eq.ShortName
	}

	return &Quote{
		Ticker:       symbol,
		CompanyName:  name,
		Exchange:     eq.FullExchangeName,
		CurrentPrice: eq.RegularMarketPrice,
		MarketCap:    eq.MarketCap,
		PERatio:      eq.TrailingPE,
		FiftyTwoWkHi: eq.FiftyTwoWeekHigh,
		FiftyTwoWkLo: eq.FiftyTwoWeekLow,
	}
}
