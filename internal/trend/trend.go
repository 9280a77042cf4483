// Package trend turns fetched data and indicator values into a
// natural-language market summary plus small sentiment and momentum
// aggregates for the insights view.
package trend

import (
	"fmt"
	"strings"

	"stocklens/internal/dataflows"
	"stocklens/internal/indicators"
	"stocklens/internal/signal"
)

// Price trend labels.
const (
	TrendBullish = "Bullish"
	TrendBearish = "Bearish"
	TrendNeutral = "Neutral"
)

// Sentiment aggregates news volume and the most recent analyst grades.
type Sentiment struct {
	NewsCount int `json:"news_count"`
	Buy       int `json:"buy"`
	Hold      int `json:"hold"`
	Sell      int `json:"sell"`
	Total     int `json:"total"`
}

// Summary composes a one-paragraph narrative from price action, indicator
// values, analyst grades, news volume, and sector. Sentences for
// unavailable inputs are simply omitted.
func Summary(data *dataflows.StockData, set *indicators.Set) string {
	ticker := ""
	if data != nil {
		ticker = data.Ticker
	}
	if data == nil || set == nil || len(data.History) < 2 {
		return fmt.Sprintf("Insufficient data to generate trend summary for %s.", ticker)
	}

	closes := data.Closes()
	price := closes[len(closes)-1]
	prev := closes[len(closes)-2]

	var parts []string

	if prev != 0 {
		change := (price/prev - 1) * 100
		if change > 0.1 {
			parts = append(parts, fmt.Sprintf("%s is showing positive momentum with a %.2f%% gain.", ticker, change))
		} else if change < -0.1 {
			parts = append(parts, fmt.Sprintf("%s is experiencing downward pressure with a %.2f%% decline.", ticker, change))
		}
	}

	rsi := set.Last(indicators.RSIName)
	if indicators.Defined(rsi) {
		switch {
		case rsi < 30:
			parts = append(parts, fmt.Sprintf("RSI at %.1f indicates oversold conditions, potentially signaling a buying opportunity.", rsi))
		case rsi > 70:
			parts = append(parts, fmt.Sprintf("RSI at %.1f suggests overbought territory, indicating potential selling pressure.", rsi))
		case rsi >= 40 && rsi <= 60:
			parts = append(parts, fmt.Sprintf("RSI at %.1f suggests balanced market conditions.", rsi))
		}
	}

	sma20 := set.Last(indicators.SMA20)
	sma50 := set.Last(indicators.SMA50)
	sma200 := set.Last(indicators.SMA200)
	allDefined := indicators.Defined(sma20) && indicators.Defined(sma50) && indicators.Defined(sma200)
	switch {
	case allDefined && price > sma20 && sma20 > sma50 && sma50 > sma200:
		parts = append(parts, "Price structure shows strong bullish alignment with all moving averages trending upward.")
	case allDefined && price < sma20 && sma20 < sma50 && sma50 < sma200:
		parts = append(parts, "Price structure indicates bearish alignment with all moving averages trending downward.")
	case indicators.Defined(sma50) && indicators.Defined(sma200) && sma50 > sma200:
		parts = append(parts, "SMA50 above SMA200 indicates long-term strength.")
	case indicators.Defined(sma50) && indicators.Defined(sma200) && sma50 < sma200:
		parts = append(parts, "SMA50 below SMA200 suggests long-term weakness.")
	}

	momentum := set.Last(indicators.Mom)
	if indicators.Defined(momentum) {
		switch {
		case momentum > 10:
			parts = append(parts, fmt.Sprintf("Strong upward momentum (%.1f%%) reflects positive investor sentiment.", momentum))
		case momentum < -10:
			parts = append(parts, fmt.Sprintf("Negative momentum (%.1f%%) indicates weakening price action.", momentum))
		case momentum >= -5 && momentum <= 5:
			parts = append(parts, "Momentum is relatively stable, suggesting consolidation.")
		}
	}

	volatility := set.Last(indicators.Vol)
	if indicators.Defined(volatility) {
		if volatility > 30 {
			parts = append(parts, fmt.Sprintf("High volatility (%.1f%%) indicates significant price swings and market uncertainty.", volatility))
		} else if volatility < 15 {
			parts = append(parts, fmt.Sprintf("Low volatility (%.1f%%) suggests stable, predictable price movements.", volatility))
		}
	}

	volumes := data.Volumes()
	volumeAvg := set.Last(indicators.VolumeAvg)
	if indicators.Defined(volumeAvg) && volumeAvg > 0 && len(volumes) > 0 {
		ratio := volumes[len(volumes)-1] / volumeAvg
		if ratio > 1.5 {
			parts = append(parts, "Trading volume is significantly above average, indicating strong market interest.")
		} else if ratio < 0.5 {
			parts = append(parts, "Below-average trading volume suggests limited market participation.")
		}
	}

	if len(data.Recommendations) > 0 {
		recent := data.Recommendations
		if len(recent) > 5 {
			recent = recent[len(recent)-5:]
		}
		var buys, sells int
		for _, r := range recent {
			switch signal.ClassifyGrade(r.ToGrade) {
			case signal.GradeBuy:
				buys++
			case signal.GradeSell:
				sells++
			}
		}
		if buys > sells {
			parts = append(parts, fmt.Sprintf("Analyst sentiment is positive with %d recent buy recommendations.", buys))
		} else if sells > buys {
			parts = append(parts, fmt.Sprintf("Analyst sentiment is cautious with %d recent sell recommendations.", sells))
		} else if buys > 0 || sells > 0 {
			parts = append(parts, "Analyst recommendations are mixed.")
		}
	}

	if len(data.News) > 0 {
		parts = append(parts, fmt.Sprintf("Recent market news includes %d articles that may impact sentiment.", len(data.News)))
	}
	if data.Quote != nil && data.Quote.Sector != "" {
		parts = append(parts, fmt.Sprintf("Operating in the %s sector.", data.Quote.Sector))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("%s shows mixed signals with no clear trend direction.", ticker)
	}
	return strings.Join(parts, " ")
}

// MarketSentiment tallies news volume and the last ten analyst grades.
func MarketSentiment(data *dataflows.StockData) Sentiment {
	var s Sentiment
	if data == nil {
		return s
	}
	s.NewsCount = len(data.News)

	recent := data.Recommendations
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	for _, r := range recent {
		switch signal.ClassifyGrade(r.ToGrade) {
		case signal.GradeBuy:
			s.Buy++
		case signal.GradeSell:
			s.Sell++
		case signal.GradeHold:
			s.Hold++
		}
	}
	s.Total = len(recent)
	return s
}

var momentumPeriods = []int{5, 10, 20, 50}

// PriceMomentum returns the percentage change over several trailing
// windows, keyed "5d", "10d", and so on. Windows longer than the available
// history are left out.
func PriceMomentum(closes []float64) map[string]float64 {
	out := make(map[string]float64)
	for _, period := range momentumPeriods {
		if len(closes) <= period {
			continue
		}
		past := closes[len(closes)-period-1]
		if past == 0 {
			continue
		}
		out[fmt.Sprintf("%dd", period)] = (closes[len(closes)-1]/past - 1) * 100
	}
	return out
}

// PriceTrend labels the current price against the short moving averages.
func PriceTrend(price, sma20, sma50 float64) string {
	if !indicators.Defined(sma20) || !indicators.Defined(sma50) {
		return TrendNeutral
	}
	switch {
	case price > sma20 && sma20 > sma50:
		return TrendBullish
	case price < sma20 && sma20 < sma50:
		return TrendBearish
	default:
		return TrendNeutral
	}
}
