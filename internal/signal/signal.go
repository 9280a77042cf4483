// Package signal turns an indicator set, price history, and analyst grade
// changes into categorical trade signals with human-readable reasons. Both
// evaluators are pure functions over their inputs.
package signal

import (
	"fmt"
	"strings"

	"stocklens/internal/dataflows"
	"stocklens/internal/indicators"
)

// Actions a signal can resolve to.
const (
	ActionBuy         = "BUY"
	ActionSell        = "SELL"
	ActionHold        = "HOLD"
	ActionHoldBullish = "HOLD (Bullish)"
	ActionHoldBearish = "HOLD (Bearish)"
)

// Result is one evaluated signal: the decision, the score tally that
// produced it, and one reason line per rule that fired.
type Result struct {
	Action    string   `json:"action"`
	BuyScore  int      `json:"buy_score"`
	SellScore int      `json:"sell_score"`
	Reasons   []string `json:"reasons"`
}

func insufficient() Result {
	return Result{
		Action:  ActionHold,
		Reasons: []string{"Insufficient data for analysis"},
	}
}

// ShortTerm evaluates the near-horizon signal from RSI, the SMA20
// crossover, 10-day momentum, and a volume confirmation note. Indicator
// values missing due to short history skip their rule without penalty.
func ShortTerm(set *indicators.Set, closes, volumes []float64) Result {
	if set == nil || set.Len() == 0 || len(closes) == 0 {
		return insufficient()
	}

	var res Result

	rsi := set.Last(indicators.RSIName)
	switch {
	case !indicators.Defined(rsi):
	case rsi < 30:
		res.BuyScore += 2
		res.Reasons = append(res.Reasons, fmt.Sprintf("RSI = %.1f (oversold)", rsi))
	case rsi > 70:
		res.SellScore += 2
		res.Reasons = append(res.Reasons, fmt.Sprintf("RSI = %.1f (overbought)", rsi))
	case rsi <= 40:
		res.BuyScore++
		res.Reasons = append(res.Reasons, fmt.Sprintf("RSI = %.1f (approaching oversold)", rsi))
	case rsi >= 60:
		res.SellScore++
		res.Reasons = append(res.Reasons, fmt.Sprintf("RSI = %.1f (approaching overbought)", rsi))
	}

	price := closes[len(closes)-1]
	sma20 := set.Last(indicators.SMA20)
	prevSMA20 := set.Prev(indicators.SMA20)
	if indicators.Defined(sma20) && indicators.Defined(prevSMA20) && len(closes) >= 2 {
		prevPrice := closes[len(closes)-2]
		switch {
		case prevPrice <= prevSMA20 && price > sma20:
			res.BuyScore += 2
			res.Reasons = append(res.Reasons, "Price crossed above SMA20 (bullish breakout)")
		case prevPrice >= prevSMA20 && price < sma20:
			res.SellScore += 2
			res.Reasons = append(res.Reasons, "Price crossed below SMA20 (bearish breakdown)")
		case price > sma20*1.02:
			res.BuyScore++
			res.Reasons = append(res.Reasons, "Price significantly above SMA20")
		case price < sma20*0.98:
			res.SellScore++
			res.Reasons = append(res.Reasons, "Price significantly below SMA20")
		}
	}

	momentum := set.Last(indicators.Mom)
	if indicators.Defined(momentum) {
		if momentum > 5 {
			res.BuyScore++
			res.Reasons = append(res.Reasons, fmt.Sprintf("Strong positive momentum (%.1f%%)", momentum))
		} else if momentum < -5 {
			res.SellScore++
			res.Reasons = append(res.Reasons, fmt.Sprintf("Strong negative momentum (%.1f%%)", momentum))
		}
	}

	// Volume confirmation is informational only: it annotates whichever
	// side currently leads without moving the score.
	volumeAvg := set.Last(indicators.VolumeAvg)
	if indicators.Defined(volumeAvg) && volumeAvg > 0 && len(volumes) > 0 {
		if volumes[len(volumes)-1]/volumeAvg > 1.5 {
			if res.BuyScore > res.SellScore {
				res.Reasons = append(res.Reasons, "High volume confirms bullish move")
			} else if res.SellScore > res.BuyScore {
				res.Reasons = append(res.Reasons, "High volume confirms bearish move")
			}
		}
	}

	switch {
	case res.BuyScore > res.SellScore && res.BuyScore >= 2:
		res.Action = ActionBuy
	case res.SellScore > res.BuyScore && res.SellScore >= 2:
		res.Action = ActionSell
	default:
		res.Action = ActionHold
	}
	if len(res.Reasons) == 0 {
		res.Reasons = []string{"Neutral technical indicators"}
	}
	return res
}

// LongTerm evaluates the long-horizon signal from the SMA200 position,
// the SMA50/SMA200 cross, momentum, and recent analyst grade changes.
func LongTerm(set *indicators.Set, closes []float64, recs []dataflows.Recommendation) Result {
	if set == nil || set.Len() == 0 || len(closes) == 0 {
		return insufficient()
	}

	var res Result

	price := closes[len(closes)-1]
	sma200 := set.Last(indicators.SMA200)
	if indicators.Defined(sma200) {
		if price > sma200 {
			res.BuyScore += 3
			res.Reasons = append(res.Reasons,
				fmt.Sprintf("Price (%.2f) above SMA200 (%.2f) - long-term uptrend", price, sma200))
		} else {
			res.SellScore += 2
			res.Reasons = append(res.Reasons,
				fmt.Sprintf("Price (%.2f) below SMA200 (%.2f) - long-term downtrend", price, sma200))
		}
	}

	sma50 := set.Last(indicators.SMA50)
	prevSMA50 := set.Prev(indicators.SMA50)
	prevSMA200 := set.Prev(indicators.SMA200)
	if indicators.Defined(sma50) && indicators.Defined(sma200) &&
		indicators.Defined(prevSMA50) && indicators.Defined(prevSMA200) {
		switch {
		case prevSMA50 <= prevSMA200 && sma50 > sma200:
			res.BuyScore += 3
			res.Reasons = append(res.Reasons, "Golden Cross detected (SMA50 > SMA200) - strong bullish signal")
		case prevSMA50 >= prevSMA200 && sma50 < sma200:
			res.SellScore += 3
			res.Reasons = append(res.Reasons, "Death Cross detected (SMA50 < SMA200) - strong bearish signal")
		case sma50 > sma200:
			res.BuyScore++
			res.Reasons = append(res.Reasons, "SMA50 above SMA200 - positive trend")
		case sma50 < sma200:
			res.SellScore++
			res.Reasons = append(res.Reasons, "SMA50 below SMA200 - negative trend")
		}
	}

	momentum := set.Last(indicators.Mom)
	if indicators.Defined(momentum) {
		if momentum > 10 {
			res.BuyScore += 2
			res.Reasons = append(res.Reasons, fmt.Sprintf("Strong long-term momentum (%.1f%%)", momentum))
		} else if momentum < -10 {
			res.SellScore += 2
			res.Reasons = append(res.Reasons, fmt.Sprintf("Weak long-term momentum (%.1f%%)", momentum))
		}
	}

	if len(recs) > 0 {
		recent := recs
		if len(recent) > 5 {
			recent = recent[len(recent)-5:]
		}
		var buys, sells int
		for _, r := range recent {
			switch ClassifyGrade(r.ToGrade) {
			case GradeBuy:
				buys++
			case GradeSell:
				sells++
			}
		}
		if buys > 2*sells {
			res.BuyScore++
			res.Reasons = append(res.Reasons, fmt.Sprintf("Analyst sentiment: %d buy recommendations", buys))
		} else if sells > 2*buys {
			res.SellScore++
			res.Reasons = append(res.Reasons, fmt.Sprintf("Analyst sentiment: %d sell recommendations", sells))
		}
	}

	switch {
	case res.BuyScore >= 4:
		res.Action = ActionBuy
	case res.SellScore >= 4:
		res.Action = ActionSell
	case res.BuyScore > res.SellScore:
		res.Action = ActionHoldBullish
	case res.SellScore > res.BuyScore:
		res.Action = ActionHoldBearish
	default:
		res.Action = ActionHold
	}
	if len(res.Reasons) == 0 {
		res.Reasons = []string{"Mixed long-term indicators"}
	}
	return res
}

// Grade buckets for analyst rating strings.
const (
	GradeBuy  = "buy"
	GradeSell = "sell"
	GradeHold = "hold"
)

// ClassifyGrade maps an analyst rating to a buy/sell/hold bucket, empty
// string for anything unrecognized. Matching is case-insensitive.
func ClassifyGrade(grade string) string {
	switch strings.ToLower(strings.TrimSpace(grade)) {
	case "buy", "strong buy", "outperform":
		return GradeBuy
	case "sell", "strong sell", "underperform":
		return GradeSell
	case "hold", "neutral":
		return GradeHold
	default:
		return ""
	}
}
