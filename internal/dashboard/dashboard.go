// Package dashboard renders a completed analysis as styled terminal
// panels: metric tiles, a price chart with moving-average overlays, an RSI
// sub-panel, signal breakdowns, and an insights section.
package dashboard

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stocklens/internal/dataflows"
	"stocklens/internal/indicators"
	"stocklens/internal/signal"
	"stocklens/internal/trend"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Background(lipgloss.Color("#1F2937")).
		Padding(0, 1).
		MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6")).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(0, 2).
		Width(80)

	tileStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#6B7280")).
		Padding(0, 1).
		Width(19).
		Align(lipgloss.Center)

	chartPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#10B981")).
		Padding(1, 2).
		Width(80)

	signalsPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#F59E0B")).
		Padding(1, 2).
		Width(80)

	insightsPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(1, 2).
		Width(80)

	buyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)

	sellStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	holdStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B")).
		Bold(true)

	mutedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	errorBoxStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#EF4444")).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#EF4444")).
		Padding(1, 2).
		Width(80)
)

// Report bundles everything one analysis run produced for rendering.
type Report struct {
	Data       *dataflows.StockData
	Set        *indicators.Set
	ShortTerm  signal.Result
	LongTerm   signal.Result
	Narrative  string
	Sentiment  trend.Sentiment
	Momentum   map[string]float64
	PriceTrend string
}

// Render composes the full dashboard for a report.
func Render(r *Report) string {
	if r == nil || r.Data == nil || r.Set == nil {
		return RenderError(fmt.Errorf("nothing to display"))
	}

	var out strings.Builder
	out.WriteString(renderHeader(r))
	out.WriteString("\n")
	out.WriteString(renderTiles(r))
	out.WriteString("\n")
	out.WriteString(renderChartPanel(r))
	out.WriteString("\n")
	out.WriteString(renderSignalsPanel(r))
	out.WriteString("\n")
	out.WriteString(renderInsightsPanel(r))
	out.WriteString("\n")
	return out.String()
}

// RenderError shows a failed analysis as a bordered error box.
func RenderError(err error) string {
	return errorBoxStyle.Render(fmt.Sprintf("❌ Analysis failed: %v", err)) + "\n"
}

func renderHeader(r *Report) string {
	name := r.Data.Ticker
	if r.Data.Quote != nil && r.Data.Quote.CompanyName != "" {
		name = fmt.Sprintf("%s (%s)", r.Data.Quote.CompanyName, r.Data.Ticker)
	}
	header := fmt.Sprintf("📊 %s | Period: %s | %s",
		name, r.Data.Period, r.Data.FetchedAt.Format("2006-01-02 15:04"))
	return headerStyle.Render(header)
}

func renderTiles(r *Report) string {
	closes := r.Data.Closes()
	price := r.Data.CurrentPrice()

	change := math.NaN()
	if len(closes) >= 2 && closes[len(closes)-2] != 0 {
		change = (closes[len(closes)-1]/closes[len(closes)-2] - 1) * 100
	}
	priceTile := fmt.Sprintf("💰 Price\n%s\n%s", formatPrice(price), formatChange(change))

	rsi := r.Set.Last(indicators.RSIName)
	rsiTile := fmt.Sprintf("📈 RSI (14)\n%s\n%s", formatValue(rsi, "%.1f"), rsiLabel(rsi))

	sma200 := r.Set.Last(indicators.SMA200)
	trendTile := fmt.Sprintf("🧭 Trend\n%s\nSMA200 %s", r.PriceTrend, formatValue(sma200, "%.2f"))

	vol := r.Set.Last(indicators.Vol)
	volTile := fmt.Sprintf("🌪  Volatility\n%s\nannualized", formatValue(vol, "%.1f%%"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		tileStyle.Render(priceTile),
		tileStyle.Render(rsiTile),
		tileStyle.Render(trendTile),
		tileStyle.Render(volTile),
	)
}

func renderChartPanel(r *Report) string {
	closes := r.Data.Closes()
	var content strings.Builder

	content.WriteString(fmt.Sprintf("📉 Price Chart (%s)  █ close  + SMA20  · SMA50\n\n", r.Data.Period))
	content.WriteString(renderPriceChart(closes,
		r.Set.Series[indicators.SMA20],
		r.Set.Series[indicators.SMA50],
		chartWidth, chartHeight))
	content.WriteString("\n")
	content.WriteString("RSI (14)  reference lines at 30 / 50 / 70\n")
	content.WriteString(renderRSIChart(r.Set.Series[indicators.RSIName], chartWidth))

	if r.Data.Quote != nil {
		q := r.Data.Quote
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("🏢 %s | Market Cap: %s | P/E: %s | 52wk: %s – %s",
			valueOr(q.Exchange, "Unknown exchange"),
			formatMarketCap(q.MarketCap),
			formatValue(q.PERatio, "%.1f"),
			formatValue(q.FiftyTwoWkLo, "%.2f"),
			formatValue(q.FiftyTwoWkHi, "%.2f")))
	}

	return chartPanelStyle.Render(content.String())
}

func renderSignalsPanel(r *Report) string {
	var content strings.Builder
	content.WriteString("🎯 Signals\n\n")
	content.WriteString(renderSignal("Short-term", r.ShortTerm))
	content.WriteString("\n")
	content.WriteString(renderSignal("Long-term", r.LongTerm))
	return signalsPanelStyle.Render(content.String())
}

func renderSignal(label string, res signal.Result) string {
	var out strings.Builder
	out.WriteString(fmt.Sprintf("%s: %s  %s\n",
		label,
		actionStyle(res.Action).Render(res.Action),
		mutedStyle.Render(fmt.Sprintf("(buy %d / sell %d)", res.BuyScore, res.SellScore))))
	for _, reason := range res.Reasons {
		out.WriteString(fmt.Sprintf("  • %s\n", reason))
	}
	return out.String()
}

func renderInsightsPanel(r *Report) string {
	var content strings.Builder
	content.WriteString("💡 Insights\n\n")
	content.WriteString(r.Narrative)
	content.WriteString("\n")

	if len(r.Momentum) > 0 {
		content.WriteString("\n⚡ Momentum:\n")
		for _, key := range []string{"5d", "10d", "20d", "50d"} {
			if v, ok := r.Momentum[key]; ok {
				content.WriteString(fmt.Sprintf("  %-4s %+.2f%%\n", key, v))
			}
		}
	}

	s := r.Sentiment
	content.WriteString(fmt.Sprintf("\n🗞  Sentiment: %d news articles | analysts: %d buy / %d hold / %d sell (last %d)\n",
		s.NewsCount, s.Buy, s.Hold, s.Sell, s.Total))

	if len(r.Data.News) > 0 {
		content.WriteString("\n📰 Recent News:\n")
		news := r.Data.News
		if len(news) > 5 {
			news = news[:5]
		}
		for _, item := range news {
			line := fmt.Sprintf("  • %s", item.Title)
			if item.Publisher != "" {
				line += mutedStyle.Render(fmt.Sprintf(" — %s", item.Publisher))
			}
			content.WriteString(line + "\n")
		}
	}

	if len(r.Data.Recommendations) > 0 {
		content.WriteString("\n🏦 Analyst Moves:\n")
		recs := r.Data.Recommendations
		if len(recs) > 10 {
			recs = recs[len(recs)-10:]
		}
		for i := len(recs) - 1; i >= 0; i-- {
			rec := recs[i]
			from := valueOr(rec.FromGrade, "?")
			date := ""
			if !rec.Date.IsZero() {
				date = rec.Date.Format("2006-01-02")
			}
			content.WriteString(fmt.Sprintf("  %-10s %-20s %s → %s\n",
				date, rec.Firm, from, rec.ToGrade))
		}
	}

	return insightsPanelStyle.Render(content.String())
}

func actionStyle(action string) lipgloss.Style {
	switch action {
	case signal.ActionBuy:
		return buyStyle
	case signal.ActionSell:
		return sellStyle
	default:
		return holdStyle
	}
}

func rsiLabel(rsi float64) string {
	switch {
	case !indicators.Defined(rsi):
		return "insufficient"
	case rsi < 30:
		return "oversold"
	case rsi > 70:
		return "overbought"
	default:
		return "neutral"
	}
}

func formatPrice(v float64) string {
	if !indicators.Defined(v) || v == 0 {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", v)
}

func formatChange(v float64) string {
	if !indicators.Defined(v) {
		return "—"
	}
	return fmt.Sprintf("%+.2f%%", v)
}

func formatValue(v float64, format string) string {
	if !indicators.Defined(v) || v == 0 {
		return "N/A"
	}
	return fmt.Sprintf(format, v)
}

func formatMarketCap(cap int64) string {
	switch {
	case cap >= 1_000_000_000_000:
		return fmt.Sprintf("$%.2fT", float64(cap)/1e12)
	case cap >= 1_000_000_000:
		return fmt.Sprintf("$%.2fB", float64(cap)/1e9)
	case cap >= 1_000_000:
		return fmt.Sprintf("$%.2fM", float64(cap)/1e6)
	case cap > 0:
		return fmt.Sprintf("$%d", cap)
	default:
		return "N/A"
	}
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// Banner is the start-up splash for the interactive session.
func Banner() string {
	banner := `
 ███████╗████████╗ ██████╗  ██████╗██╗  ██╗██╗     ███████╗███╗   ██╗███████╗
 ██╔════╝╚══██╔══╝██╔═══██╗██╔════╝██║ ██╔╝██║     ██╔════╝████╗  ██║██╔════╝
 ███████╗   ██║   ██║   ██║██║     █████╔╝ ██║     █████╗  ██╔██╗ ██║███████╗
 ╚════██║   ██║   ██║   ██║██║     ██╔═██╗ ██║     ██╔══╝  ██║╚██╗██║╚════██║
 ███████║   ██║   ╚██████╔╝╚██████╗██║  ██╗███████╗███████╗██║ ╚████║███████║
 ╚══════╝   ╚═╝    ╚═════╝  ╚═════╝╚═╝  ╚═╝╚══════╝╚══════╝╚═╝  ╚═══╝╚══════╝
`
	welcomeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true).
		Align(lipgloss.Center).
		Width(80)

	taglineStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6")).
		Italic(true).
		Align(lipgloss.Center).
		Width(80).
		MarginBottom(1)

	return welcomeStyle.Render(banner) + "\n" +
		taglineStyle.Render("Terminal stock analysis: indicators, signals, and market insights")
}

// Title renders a prominent one-line heading.
func Title(text string) string {
	return titleStyle.Render(text)
}
