package dataflows

import (
	"testing"

	finance "github.com/piquette/finance-go"
)

func TestQuoteFromEquityMapping(t *testing.T) {
	eq := &finance.Equity{
		Quote: finance.Quote{
			ShortName:          "Apple",
			FullExchangeName:   "NasdaqGS",
			RegularMarketPrice: 190.5,
			FiftyTwoWeekHigh:   199.62,
			FiftyTwoWeekLow:    124.17,
		},
		LongName:   "Apple Inc.",
		MarketCap:  2_980_000_000_000,
		TrailingPE: 29.4,
	}

	q := quoteFromEquity("AAPL", eq)

	if q.Ticker != "AAPL" {
		t.Errorf("Ticker = %q, want AAPL", q.Ticker)
	}
	if q.CompanyName != "Apple Inc." {
		t.Errorf("CompanyName = %q, want long name", q.CompanyName)
	}
	if q.Exchange != "NasdaqGS" {
		t.Errorf("Exchange = %q, want NasdaqGS", q.Exchange)
	}
	if q.CurrentPrice != 190.5 {
		t.Errorf("CurrentPrice = %v, want 190.5", q.CurrentPrice)
	}
	if q.MarketCap != 2_980_000_000_000 {
		t.Errorf("MarketCap = %d, want 2980000000000", q.MarketCap)
	}
	if q.PERatio != 29.4 {
		t.Errorf("PERatio = %v, want 29.4", q.PERatio)
	}
	if q.FiftyTwoWkHi != 199.62 || q.FiftyTwoWkLo != 124.17 {
		t.Errorf("52wk range = %v/%v, want 199.62/124.17", q.FiftyTwoWkHi, q.FiftyTwoWkLo)
	}
}

func TestQuoteFromEquityShortNameFallback(t *testing.T) {
	eq := &finance.Equity{
		Quote: finance.Quote{ShortName: "Broadcom", RegularMarketPrice: 1200},
	}

	q := quoteFromEquity("AVGO", eq)

	if q.CompanyName != "Broadcom" {
		t.Errorf("CompanyName = %q, want short name fallback", q.CompanyName)
	}
}
