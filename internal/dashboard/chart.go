package dashboard

import (
	"fmt"
	"math"
	"strings"

	"stocklens/internal/indicators"
)

const (
	chartWidth  = 70
	chartHeight = 12
	rsiHeight   = 7
)

// renderPriceChart draws an ASCII chart of the closing price with SMA20
// and SMA50 overlays. Each column samples one point of the series; the
// price marker is drawn last so it wins overlapping cells.
func renderPriceChart(closes, sma20, sma50 []float64, width, height int) string {
	if len(closes) == 0 || width < 2 || height < 2 {
		return "(no price data)\n"
	}

	lo, hi := seriesRange(closes, sma20, sma50)
	if hi == lo {
		hi = lo + 1
	}

	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	plot := func(series []float64, marker rune) {
		for x := 0; x < width; x++ {
			v := sampleAt(series, len(closes), x, width)
			if !indicators.Defined(v) {
				continue
			}
			y := scaleRow(v, lo, hi, height)
			grid[y][x] = marker
		}
	}
	plot(sma50, '·')
	plot(sma20, '+')
	plot(closes, '█')

	var out strings.Builder
	for y, row := range grid {
		label := "        "
		if y == 0 {
			label = fmt.Sprintf("%7.2f ", hi)
		} else if y == height-1 {
			label = fmt.Sprintf("%7.2f ", lo)
		}
		out.WriteString(label)
		out.WriteString(string(row))
		out.WriteString("\n")
	}
	return out.String()
}

// renderRSIChart draws the RSI series on a fixed 0 to 100 scale with
// dotted reference lines at 30, 50, and 70.
func renderRSIChart(rsi []float64, width int) string {
	if len(rsi) == 0 || width < 2 {
		return "(no rsi data)\n"
	}

	grid := make([][]rune, rsiHeight)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	refRows := map[int]float64{}
	for _, ref := range []float64{70, 50, 30} {
		y := scaleRow(ref, 0, 100, rsiHeight)
		refRows[y] = ref
		for x := 0; x < width; x++ {
			grid[y][x] = '┄'
		}
	}

	n := len(rsi)
	for x := 0; x < width; x++ {
		v := sampleAt(rsi, n, x, width)
		if !indicators.Defined(v) {
			continue
		}
		grid[scaleRow(v, 0, 100, rsiHeight)][x] = '●'
	}

	var out strings.Builder
	for y, row := range grid {
		label := "        "
		if ref, ok := refRows[y]; ok {
			label = fmt.Sprintf("%7.0f ", ref)
		}
		out.WriteString(label)
		out.WriteString(string(row))
		out.WriteString("\n")
	}
	return out.String()
}

// sampleAt maps chart column x to a series index over n points.
func sampleAt(series []float64, n, x, width int) float64 {
	if len(series) == 0 || n == 0 {
		return math.NaN()
	}
	idx := x * (n - 1) / (width - 1)
	if idx >= len(series) {
		return math.NaN()
	}
	return series[idx]
}

// scaleRow maps a value in [lo, hi] to a grid row, row 0 at the top.
func scaleRow(v, lo, hi float64, height int) int {
	frac := (v - lo) / (hi - lo)
	row := int(math.Round(float64(height-1) * (1 - frac)))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}

func seriesRange(series ...[]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s {
			if !indicators.Defined(v) {
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}
