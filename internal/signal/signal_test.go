package signal

import (
	"strings"
	"testing"

	"stocklens/internal/dataflows"
	"stocklens/internal/indicators"
)

func mustCompute(t *testing.T, closes, volumes []float64) *indicators.Set {
	t.Helper()
	set, err := indicators.Compute(closes, volumes)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	return set
}

func hasReason(reasons []string, fragment string) bool {
	for _, r := range reasons {
		if strings.Contains(r, fragment) {
			return true
		}
	}
	return false
}

func TestShortTermInsufficientHistory(t *testing.T) {
	closes := []float64{100, 90, 80}
	set := mustCompute(t, closes, nil)
	res := ShortTerm(set, closes, nil)
	if res.Action != ActionHold {
		t.Errorf("short series should hold, got %s", res.Action)
	}
	if res.BuyScore != 0 || res.SellScore != 0 {
		t.Errorf("no rule should score on a 3-point series, got buy=%d sell=%d",
			res.BuyScore, res.SellScore)
	}
}

func TestShortTermNilSet(t *testing.T) {
	res := ShortTerm(nil, nil, nil)
	if res.Action != ActionHold {
		t.Errorf("nil inputs should hold, got %s", res.Action)
	}
	if !hasReason(res.Reasons, "Insufficient data") {
		t.Errorf("expected insufficient-data reason, got %v", res.Reasons)
	}
}

func TestShortTermBullishBreakout(t *testing.T) {
	// Flat base under a gentle decline, then a pop through the SMA20.
	closes := make([]float64, 40)
	for i := 0; i < 39; i++ {
		closes[i] = 100 - float64(i)*0.1
	}
	closes[39] = 110
	set := mustCompute(t, closes, nil)
	res := ShortTerm(set, closes, nil)
	if !hasReason(res.Reasons, "bullish breakout") {
		t.Fatalf("expected a crossover reason, got %v", res.Reasons)
	}
	if res.BuyScore < 2 {
		t.Errorf("crossover alone is worth 2 buy points, got %d", res.BuyScore)
	}
	if res.Action != ActionBuy {
		t.Errorf("expected BUY, got %s", res.Action)
	}
}

func TestShortTermOverboughtSell(t *testing.T) {
	// Mostly rising with small dips keeps RSI defined and high.
	closes := make([]float64, 40)
	closes[0] = 100
	for i := 1; i < 40; i++ {
		if i%7 == 0 {
			closes[i] = closes[i-1] - 0.2
		} else {
			closes[i] = closes[i-1] + 2
		}
	}
	set := mustCompute(t, closes, nil)
	rsi := set.Last(indicators.RSIName)
	if !indicators.Defined(rsi) || rsi <= 70 {
		t.Fatalf("test series should produce RSI above 70, got %f", rsi)
	}
	res := ShortTerm(set, closes, nil)
	if !hasReason(res.Reasons, "overbought") {
		t.Errorf("expected an overbought reason, got %v", res.Reasons)
	}
	if res.SellScore < 2 {
		t.Errorf("RSI above 70 is worth 2 sell points, got %d", res.SellScore)
	}
}

func TestShortTermNonZeroTieHolds(t *testing.T) {
	// A slow drift down with a modest final pop fires exactly two opposed
	// rules: the pop crosses the SMA20 (+2 buy) while the single large gain
	// against many small losses pushes RSI past 70 (+2 sell). Momentum stays
	// under 5%, so the tally lands on a 2-2 tie.
	closes := make([]float64, 40)
	for i := 0; i < 39; i++ {
		closes[i] = 100 - float64(i)*0.05
	}
	closes[39] = 99.7
	set := mustCompute(t, closes, nil)
	rsi := set.Last(indicators.RSIName)
	if !indicators.Defined(rsi) || rsi <= 70 {
		t.Fatalf("test series should produce RSI above 70, got %f", rsi)
	}

	res := ShortTerm(set, closes, nil)
	if res.BuyScore != 2 || res.SellScore != 2 {
		t.Fatalf("expected a 2-2 tie, got buy=%d sell=%d (reasons %v)",
			res.BuyScore, res.SellScore, res.Reasons)
	}
	if res.Action != ActionHold {
		t.Errorf("tied scores must hold, got %s", res.Action)
	}
}

func TestShortTermVolumeNoteDoesNotScore(t *testing.T) {
	closes := make([]float64, 40)
	for i := 0; i < 39; i++ {
		closes[i] = 100 - float64(i)*0.1
	}
	closes[39] = 110
	volumes := make([]float64, 40)
	for i := range volumes {
		volumes[i] = 1e6
	}
	volumes[39] = 5e6
	set := mustCompute(t, closes, volumes)

	withVolume := ShortTerm(set, closes, volumes)
	quiet := ShortTerm(set, closes, nil)
	if withVolume.BuyScore != quiet.BuyScore || withVolume.SellScore != quiet.SellScore {
		t.Errorf("volume note must not change scores: %d/%d vs %d/%d",
			withVolume.BuyScore, withVolume.SellScore, quiet.BuyScore, quiet.SellScore)
	}
	if !hasReason(withVolume.Reasons, "High volume confirms bullish move") {
		t.Errorf("expected a volume confirmation note, got %v", withVolume.Reasons)
	}
}

func TestShortTermNeutralFallbackReason(t *testing.T) {
	// A flat series defines SMA20 but fires no rule: RSI has no losses,
	// momentum is zero, price sits on the average.
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100
	}
	set := mustCompute(t, closes, nil)
	res := ShortTerm(set, closes, nil)
	if res.Action != ActionHold {
		t.Errorf("expected HOLD, got %s", res.Action)
	}
	if !hasReason(res.Reasons, "Neutral technical indicators") {
		t.Errorf("expected the neutral fallback reason, got %v", res.Reasons)
	}
}

func TestLongTermUptrendBuy(t *testing.T) {
	// Long steady rise: price above SMA200 (+3) and SMA50 above SMA200
	// (+1) reach the buy threshold without the momentum rule.
	closes := make([]float64, 260)
	closes[0] = 50
	for i := 1; i < 260; i++ {
		closes[i] = closes[i-1] * 1.004
	}
	set := mustCompute(t, closes, nil)
	res := LongTerm(set, closes, nil)
	if res.Action != ActionBuy {
		t.Errorf("expected BUY, got %s (buy=%d sell=%d)", res.Action, res.BuyScore, res.SellScore)
	}
	if !hasReason(res.Reasons, "long-term uptrend") {
		t.Errorf("expected SMA200 uptrend reason, got %v", res.Reasons)
	}
}

func TestLongTermGoldenCross(t *testing.T) {
	// A long decline followed by a sharp recovery drives SMA50 up through
	// SMA200 on the final bar.
	full := make([]float64, 320)
	for i := 0; i < 250; i++ {
		full[i] = 200 - float64(i)*0.25
	}
	for i := 250; i < 320; i++ {
		full[i] = full[i-1] + 2.2
	}
	fullSet := mustCompute(t, full, nil)
	sma50 := fullSet.Series[indicators.SMA50]
	sma200 := fullSet.Series[indicators.SMA200]
	crossAt := -1
	for i := 200; i < len(full); i++ {
		if sma50[i-1] <= sma200[i-1] && sma50[i] > sma200[i] {
			crossAt = i
			break
		}
	}
	if crossAt < 0 {
		t.Fatalf("recovery series must cross SMA50 over SMA200 somewhere")
	}

	// Truncate at the cross so it lands on the final bar. Trailing windows
	// make the prefix recomputation identical up to that index.
	closes := full[:crossAt+1]
	set := mustCompute(t, closes, nil)
	res := LongTerm(set, closes, nil)
	if !hasReason(res.Reasons, "Golden Cross") {
		t.Fatalf("expected a Golden Cross reason, got %v", res.Reasons)
	}
	if res.BuyScore < 3 {
		t.Errorf("a Golden Cross is worth 3 buy points, got %d", res.BuyScore)
	}
}

func TestLongTermHoldBearish(t *testing.T) {
	// Shallow downtrend: price below SMA200 (+2 sell) and SMA50 below
	// SMA200 (+1 sell), momentum too mild to score. sell=3 stays a hold.
	closes := make([]float64, 260)
	closes[0] = 100
	for i := 1; i < 260; i++ {
		closes[i] = closes[i-1] * 0.9996
	}
	set := mustCompute(t, closes, nil)
	res := LongTerm(set, closes, nil)
	if res.SellScore != 3 {
		t.Fatalf("expected sell score 3, got %d (reasons %v)", res.SellScore, res.Reasons)
	}
	if res.Action != ActionHoldBearish {
		t.Errorf("sell score below 4 should read HOLD (Bearish), got %s", res.Action)
	}
}

func TestLongTermAnalystSentiment(t *testing.T) {
	closes := make([]float64, 260)
	closes[0] = 50
	for i := 1; i < 260; i++ {
		closes[i] = closes[i-1] * 1.004
	}
	set := mustCompute(t, closes, nil)
	// Six grades; only the last five count, so the leading Buy is dropped
	// and the tally reads 4 buys against 1 sell.
	recs := []dataflows.Recommendation{
		{Firm: "A", ToGrade: "Buy"},
		{Firm: "B", ToGrade: "Sell"},
		{Firm: "C", ToGrade: "Strong Buy"},
		{Firm: "D", ToGrade: "Outperform"},
		{Firm: "E", ToGrade: "Buy"},
		{Firm: "F", ToGrade: "Buy"},
	}
	res := LongTerm(set, closes, recs)
	if !hasReason(res.Reasons, "Analyst sentiment: 4 buy recommendations") {
		t.Errorf("only the last five grades should count, got %v", res.Reasons)
	}

	base := LongTerm(set, closes, nil)
	if res.BuyScore != base.BuyScore+1 {
		t.Errorf("analyst rule is worth one point: %d vs %d", res.BuyScore, base.BuyScore)
	}
}

func TestLongTermInsufficientData(t *testing.T) {
	closes := []float64{10, 11}
	set := mustCompute(t, closes, nil)
	res := LongTerm(set, closes, nil)
	if res.Action != ActionHold {
		t.Errorf("expected HOLD, got %s", res.Action)
	}
	if !hasReason(res.Reasons, "Mixed long-term indicators") {
		t.Errorf("no rule fired, expected the fallback reason, got %v", res.Reasons)
	}
}

func TestClassifyGrade(t *testing.T) {
	cases := map[string]string{
		"Buy":          GradeBuy,
		"STRONG BUY":   GradeBuy,
		"outperform":   GradeBuy,
		"Sell":         GradeSell,
		"Strong Sell":  GradeSell,
		"Underperform": GradeSell,
		"Hold":         GradeHold,
		"neutral":      GradeHold,
		"Overweight":   "",
		"":             "",
	}
	for grade, want := range cases {
		if got := ClassifyGrade(grade); got != want {
			t.Errorf("ClassifyGrade(%q) = %q, want %q", grade, got, want)
		}
	}
}
