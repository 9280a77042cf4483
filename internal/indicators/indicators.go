// Package indicators computes technical indicator series from closing
// prices. Every series is aligned with the input: positions without enough
// trailing history hold NaN instead of a value.
package indicators

import (
	"fmt"
	"math"
)

// Canonical series names in a Set.
const (
	SMA20     = "sma_20"
	SMA50     = "sma_50"
	SMA200    = "sma_200"
	EMA12     = "ema_12"
	EMA26     = "ema_26"
	RSIName   = "rsi"
	Vol       = "volatility"
	Mom       = "momentum"
	VolumeAvg = "volume_avg"
)

const (
	rsiWindow        = 14
	volatilityWindow = 20
	momentumWindow   = 10
	volumeWindow     = 20
	tradingDays      = 252
)

// Set holds the computed series for one price history, all the same length
// as the input closes.
type Set struct {
	Series map[string][]float64
	n      int
}

// Defined reports whether v carries a real value.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

func undefinedSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// SMA returns the trailing arithmetic mean over window points. The first
// window-1 positions are NaN.
func SMA(prices []float64, window int) []float64 {
	out := undefinedSeries(len(prices))
	if window <= 0 || len(prices) < window {
		return out
	}
	var sum float64
	for i, p := range prices {
		sum += p
		if i >= window {
			sum -= prices[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// EMA returns the exponentially weighted mean with alpha 2/(window+1),
// seeded at the first price.
func EMA(prices []float64, window int) []float64 {
	out := undefinedSeries(len(prices))
	if window <= 0 || len(prices) == 0 {
		return out
	}
	alpha := 2.0 / float64(window+1)
	ema := prices[0]
	out[0] = ema
	for i := 1; i < len(prices); i++ {
		ema = alpha*prices[i] + (1-alpha)*ema
		out[i] = ema
	}
	return out
}

// RSI returns the Relative Strength Index over window periods. Positions
// where the trailing loss average is zero stay NaN.
func RSI(prices []float64, window int) []float64 {
	out := undefinedSeries(len(prices))
	if window <= 0 || len(prices) <= window {
		return out
	}
	gains := make([]float64, len(prices))
	losses := make([]float64, len(prices))
	for i := 1; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}
	var gainSum, lossSum float64
	for i := 1; i < len(prices); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > window {
			gainSum -= gains[i-window]
			lossSum -= losses[i-window]
		}
		if i < window {
			continue
		}
		avgLoss := lossSum / float64(window)
		if avgLoss == 0 {
			continue
		}
		avgGain := gainSum / float64(window)
		rs := avgGain / avgLoss
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// Volatility returns the rolling standard deviation of day-over-day
// percentage returns, annualized by sqrt(252) and expressed in percent.
func Volatility(prices []float64, window int) []float64 {
	out := undefinedSeries(len(prices))
	if window <= 0 || len(prices) <= window {
		return out
	}
	returns := make([]float64, len(prices))
	returns[0] = math.NaN()
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			returns[i] = math.NaN()
			continue
		}
		returns[i] = prices[i]/prices[i-1] - 1
	}
	for i := window; i < len(prices); i++ {
		sd, ok := stddev(returns[i-window+1 : i+1])
		if !ok {
			continue
		}
		out[i] = sd * math.Sqrt(tradingDays) * 100
	}
	return out
}

// stddev is the sample standard deviation; ok is false when any input is
// NaN or fewer than two values are present.
func stddev(xs []float64) (float64, bool) {
	if len(xs) < 2 {
		return 0, false
	}
	var sum float64
	for _, x := range xs {
		if math.IsNaN(x) {
			return 0, false
		}
		sum += x
	}
	mean := sum / float64(len(xs))
	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)-1)), true
}

// Momentum returns the percentage change between each close and the close
// window periods earlier.
func Momentum(prices []float64, window int) []float64 {
	out := undefinedSeries(len(prices))
	if window <= 0 {
		return out
	}
	for i := window; i < len(prices); i++ {
		if prices[i-window] == 0 {
			continue
		}
		out[i] = (prices[i]/prices[i-window] - 1) * 100
	}
	return out
}

// Compute builds the full indicator set for a closing-price series. The
// volume series may be nil; volume_avg is then all NaN. A non-nil volume
// series must match the close series in length.
func Compute(closes, volumes []float64) (*Set, error) {
	if len(closes) == 0 {
		return nil, fmt.Errorf("indicators: empty price series")
	}
	if volumes != nil && len(volumes) != len(closes) {
		return nil, fmt.Errorf("indicators: volume length %d does not match price length %d",
			len(volumes), len(closes))
	}

	set := &Set{
		Series: map[string][]float64{
			SMA20:   SMA(closes, 20),
			SMA50:   SMA(closes, 50),
			SMA200:  SMA(closes, 200),
			EMA12:   EMA(closes, 12),
			EMA26:   EMA(closes, 26),
			RSIName: RSI(closes, rsiWindow),
			Vol:     Volatility(closes, volatilityWindow),
			Mom:     Momentum(closes, momentumWindow),
		},
		n: len(closes),
	}
	if volumes != nil {
		set.Series[VolumeAvg] = SMA(volumes, volumeWindow)
	} else {
		set.Series[VolumeAvg] = undefinedSeries(len(closes))
	}
	return set, nil
}

// Len returns the series length shared by every indicator in the set.
func (s *Set) Len() int {
	return s.n
}

// At returns the value of a named series at index i, NaN when the series
// is unknown or the index is out of range.
func (s *Set) At(name string, i int) float64 {
	series, ok := s.Series[name]
	if !ok || i < 0 || i >= len(series) {
		return math.NaN()
	}
	return series[i]
}

// Last returns the final value of a named series.
func (s *Set) Last(name string) float64 {
	return s.At(name, s.n-1)
}

// Prev returns the second-to-last value of a named series.
func (s *Set) Prev(name string) float64 {
	return s.At(name, s.n-2)
}

// Snapshot maps each indicator name to its last value. Series whose final
// position is undefined appear as NaN.
func (s *Set) Snapshot() map[string]float64 {
	snap := make(map[string]float64, len(s.Series))
	for name := range s.Series {
		snap[name] = s.Last(name)
	}
	return snap
}
