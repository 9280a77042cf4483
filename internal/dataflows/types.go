package dataflows

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bar is a single daily OHLCV row.
type Bar struct {
	Date   time.Time       `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// Quote carries a snapshot of provider company info. Fields beyond the
// price are best effort and may be zero.
type Quote struct {
	Ticker        string  `json:"ticker"`
	CompanyName   string  `json:"company_name"`
	Sector        string  `json:"sector,omitempty"`
	Industry      string  `json:"industry,omitempty"`
	Exchange      string  `json:"exchange,omitempty"`
	CurrentPrice  float64 `json:"current_price"`
	MarketCap     int64   `json:"market_cap,omitempty"`
	PERatio       float64 `json:"pe_ratio,omitempty"`
	FiftyTwoWkHi  float64 `json:"fifty_two_week_high,omitempty"`
	FiftyTwoWkLo  float64 `json:"fifty_two_week_low,omitempty"`
}

// Recommendation is an analyst grade change, passed through from the
// provider untouched.
type Recommendation struct {
	Firm      string    `json:"firm"`
	FromGrade string    `json:"from_grade"`
	ToGrade   string    `json:"to_grade"`
	Action    string    `json:"action"`
	Date      time.Time `json:"date"`
}

// NewsItem is a single headline. A zero Published means the source did not
// carry a usable timestamp.
type NewsItem struct {
	Title     string    `json:"title"`
	Publisher string    `json:"publisher"`
	Link      string    `json:"link"`
	Published time.Time `json:"published,omitempty"`
}

// StockData bundles everything one analysis run needs for a ticker.
type StockData struct {
	Ticker          string           `json:"ticker"`
	Period          string           `json:"period"`
	History         []Bar            `json:"history"`
	Quote           *Quote           `json:"quote,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	News            []NewsItem       `json:"news,omitempty"`
	FetchedAt       time.Time        `json:"fetched_at"`
}

// Closes extracts the close series as float64, ascending by date.
func (sd *StockData) Closes() []float64 {
	out := make([]float64, len(sd.History))
	for i, bar := range sd.History {
		v, _ := bar.Close.Float64()
		out[i] = v
	}
	return out
}

// Volumes extracts the volume series as float64, aligned with Closes.
func (sd *StockData) Volumes() []float64 {
	out := make([]float64, len(sd.History))
	for i, bar := range sd.History {
		out[i] = float64(bar.Volume)
	}
	return out
}

// CurrentPrice is the latest close, or the quote price when history is empty.
func (sd *StockData) CurrentPrice() float64 {
	if len(sd.History) > 0 {
		v, _ := sd.History[len(sd.History)-1].Close.Float64()
		return v
	}
	if sd.Quote != nil {
		return sd.Quote.CurrentPrice
	}
	return 0
}
