package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"stocklens/config"
	"stocklens/internal/directory"
)

const manualEntryOption = "Enter a ticker manually"

var tickerPattern = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// PromptForStock asks for a name or ticker, searches the directory, and
// lets the user pick a match or fall through to manual entry.
func PromptForStock() (string, error) {
	var query string
	prompt := &survey.Input{
		Message: "Search for a stock (name or ticker, e.g. AAPL or Apple):",
		Help:    "Type part of a company name or a ticker symbol",
	}

	err := survey.AskOne(prompt, &query, survey.WithValidator(func(val interface{}) error {
		if strings.TrimSpace(val.(string)) == "" {
			return fmt.Errorf("search query cannot be empty")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	matches := directory.Search(query, 10)
	if len(matches) == 0 {
		// Unknown names still analyze fine if they are valid tickers.
		upper := strings.TrimSpace(strings.ToUpper(query))
		if tickerPattern.MatchString(upper) && len(upper) <= 10 {
			return upper, nil
		}
		return PromptForTicker()
	}

	options := make([]string, 0, len(matches)+1)
	for _, s := range matches {
		options = append(options, directory.DisplayName(s.Ticker))
	}
	options = append(options, manualEntryOption)

	var selected string
	selectPrompt := &survey.Select{
		Message: "Select a stock:",
		Options: options,
		Default: options[0],
	}
	if err := survey.AskOne(selectPrompt, &selected); err != nil {
		return "", err
	}

	if selected == manualEntryOption {
		return PromptForTicker()
	}
	ticker, _, _ := strings.Cut(selected, " - ")
	return ticker, nil
}

// PromptForTicker asks for a raw ticker symbol.
func PromptForTicker() (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "Enter the stock ticker symbol (e.g., AAPL, MSFT, GOOGL):",
		Help:    "Any valid ticker works, not just directory entries",
	}

	err := survey.AskOne(prompt, &ticker, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(strings.ToUpper(val.(string)))
		if len(str) == 0 {
			return fmt.Errorf("ticker symbol cannot be empty")
		}
		if len(str) > 10 {
			return fmt.Errorf("ticker symbol too long (max 10 characters)")
		}
		if !tickerPattern.MatchString(str) {
			return fmt.Errorf("invalid ticker format (use letters, numbers, dots, and hyphens only)")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(strings.ToUpper(ticker)), nil
}

// PromptForPeriod asks for a history period.
func PromptForPeriod(defaultPeriod string) (string, error) {
	if !config.ValidPeriod(defaultPeriod) {
		defaultPeriod = config.Periods[0]
	}

	var period string
	prompt := &survey.Select{
		Message: "Select the history period:",
		Options: config.Periods,
		Default: defaultPeriod,
		Help:    "Longer periods enable the long-term indicators (SMA200 needs about a year)",
	}

	err := survey.AskOne(prompt, &period)
	return period, err
}

// PromptForNextAction asks what to do after an analysis completes.
func PromptForNextAction() (bool, error) {
	var choice string
	prompt := &survey.Select{
		Message: "What would you like to do next?",
		Options: []string{
			"Analyze another stock",
			"Exit StockLens",
		},
		Default: "Analyze another stock",
	}

	err := survey.AskOne(prompt, &choice)
	if err != nil {
		return false, err
	}

	return choice == "Analyze another stock", nil
}
