package cli

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2/terminal"
	"go.uber.org/zap"

	"stocklens/config"
	"stocklens/internal/dashboard"
	"stocklens/internal/dataflows"
	"stocklens/internal/directory"
	"stocklens/internal/indicators"
	"stocklens/internal/signal"
	"stocklens/internal/trend"
)

// newLogger builds the session logger. Debug mode gets the development
// console encoder; otherwise only warnings and up reach the terminal so
// the dashboard stays clean.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Debug {
		return zap.NewDevelopment()
	}
	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return c.Build()
}

// runAnalysis executes the full pipeline for one ticker and prints the
// dashboard. Fetch and indicator failures render as an error box.
func runAnalysis(cfg *config.Config, ticker, period string) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	client := dataflows.NewClient(cfg, logger)

	fmt.Printf("🔄 Analyzing %s over %s...\n\n", dataflows.NormalizeSymbol(ticker), period)

	data, err := client.Fetch(ticker, period)
	if err != nil {
		fmt.Print(dashboard.RenderError(err))
		return err
	}

	report, err := buildReport(data)
	if err != nil {
		fmt.Print(dashboard.RenderError(err))
		return err
	}

	fmt.Print(dashboard.Render(report))
	return nil
}

// buildReport computes indicators, signals, and insights for fetched data.
func buildReport(data *dataflows.StockData) (*dashboard.Report, error) {
	closes := data.Closes()
	volumes := data.Volumes()

	set, err := indicators.Compute(closes, volumes)
	if err != nil {
		return nil, dataflows.NewError(dataflows.KindIndicatorFailed, data.Ticker,
			fmt.Sprintf("indicator computation failed for %s", data.Ticker), err)
	}

	// The quote endpoint has no sector field; the directory fills it in
	// for known tickers so the narrative can mention it.
	if data.Quote != nil && data.Quote.Sector == "" {
		if stock, ok := directory.Lookup(data.Ticker); ok {
			data.Quote.Sector = stock.Sector
		}
	}

	return &dashboard.Report{
		Data:      data,
		Set:       set,
		ShortTerm: signal.ShortTerm(set, closes, volumes),
		LongTerm:  signal.LongTerm(set, closes, data.Recommendations),
		Narrative: trend.Summary(data, set),
		Sentiment: trend.MarketSentiment(data),
		Momentum:  trend.PriceMomentum(closes),
		PriceTrend: trend.PriceTrend(
			data.CurrentPrice(),
			set.Last(indicators.SMA20),
			set.Last(indicators.SMA50)),
	}, nil
}

// runInteractiveMode drives the prompt loop: pick a stock, pick a period,
// analyze, repeat until the user exits.
func runInteractiveMode(cfg *config.Config) error {
	fmt.Println(dashboard.Banner())
	fmt.Println()

	lastPeriod := cfg.DefaultPeriod
	for {
		ticker, err := PromptForStock()
		if err != nil {
			return interactiveErr(err)
		}

		period, err := PromptForPeriod(lastPeriod)
		if err != nil {
			return interactiveErr(err)
		}
		lastPeriod = period

		if err := runAnalysis(cfg, ticker, period); err != nil {
			fmt.Println()
		}

		again, err := PromptForNextAction()
		if err != nil {
			return interactiveErr(err)
		}
		if !again {
			break
		}
		fmt.Println()
	}

	fmt.Println("👋 Thanks for using StockLens!")
	return nil
}

// interactiveErr treats Ctrl-C in a prompt as a normal exit.
func interactiveErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		fmt.Println("\n👋 Thanks for using StockLens!")
		return nil
	}
	return err
}
