// Package cli wires the terminal interface: cobra commands, survey prompts
// for the interactive session, and the analysis pipeline behind both.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stocklens/config"
	"stocklens/internal/directory"
)

// Version is the released version string.
const Version = "1.0.0"

// NewRootCmd creates the root command. Running it without a subcommand
// starts the interactive session.
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "stocklens",
		Short: "StockLens - Terminal Stock Analysis",
		Long: `StockLens analyzes a stock from the terminal: price history, technical
indicators, buy/sell/hold signals, and market insights in one dashboard.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Debug = true
			}
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveMode(cfg)
		},
	}

	rootCmd.AddCommand(newAnalyzeCmd(cfg))
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newConfigCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	return rootCmd
}

// newAnalyzeCmd creates the analyze command
func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [SYMBOL]",
		Short: "Run a full analysis for a stock symbol",
		Long: `Fetch price history, compute indicators, evaluate signals, and render
the dashboard for a ticker.
Example: stocklens analyze AAPL --period=6mo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			period, _ := cmd.Flags().GetString("period")
			if period == "" {
				period = cfg.DefaultPeriod
			}
			if !config.ValidPeriod(period) {
				return fmt.Errorf("invalid period %q (valid: %s)",
					period, strings.Join(config.Periods, ", "))
			}
			return runAnalysis(cfg, args[0], period)
		},
	}

	cmd.Flags().String("period", "", fmt.Sprintf("History period (%s)", strings.Join(config.Periods, ", ")))

	return cmd
}

// newSearchCmd creates the search command
func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search the built-in stock directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			matches := directory.Search(args[0], limit)
			if len(matches) == 0 {
				fmt.Printf("No matches for %q. Any valid ticker can still be analyzed directly.\n", args[0])
				return nil
			}
			for _, s := range matches {
				fmt.Printf("  %-6s %-35s %s\n", s.Ticker, s.Name, s.Sector)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 10, "Maximum number of results")

	return cmd
}

// newListCmd creates the list command
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all stocks in the built-in directory",
		Run: func(cmd *cobra.Command, args []string) {
			bySector := make(map[string][]directory.Stock)
			var order []string
			for _, s := range directory.All() {
				if _, ok := bySector[s.Sector]; !ok {
					order = append(order, s.Sector)
				}
				bySector[s.Sector] = append(bySector[s.Sector], s)
			}
			for _, sector := range order {
				fmt.Printf("\n%s\n", sector)
				for _, s := range bySector[sector] {
					fmt.Printf("  %-6s %s\n", s.Ticker, s.Name)
				}
			}
			fmt.Println()
		},
	}
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("StockLens v%s\n", Version)
			fmt.Println("Terminal stock analysis dashboard")
		},
	}
}

// newConfigCmd creates the config command
func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "Inspect and validate StockLens configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig(cfg)
		},
	})

	return configCmd
}

// showConfig displays the current configuration
func showConfig(cfg *config.Config) {
	fmt.Println("📋 Current StockLens Configuration:")
	fmt.Println("═══════════════════════════════════════")
	fmt.Printf("Default Ticker:       %s\n", cfg.DefaultTicker)
	fmt.Printf("Default Period:       %s\n", cfg.DefaultPeriod)
	fmt.Printf("HTTP Timeout:         %s\n", cfg.HTTPTimeout)
	fmt.Printf("Scrape Timeout:       %s\n", cfg.ScrapeTimeout)
	fmt.Printf("Max News Items:       %d\n", cfg.MaxNewsItems)
	fmt.Printf("Debug Mode:           %t\n", cfg.Debug)
	fmt.Println()

	fmt.Println("🔌 API Configuration:")
	fmt.Println("─────────────────────")
	if cfg.FinnhubAPIKey != "" {
		fmt.Println("Finnhub API:          ✅ Configured")
	} else {
		fmt.Println("Finnhub API:          ❌ Not configured (news falls back to RSS, analyst data unavailable)")
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *config.Config) error {
	fmt.Println("🔍 Validating StockLens Configuration...")
	fmt.Println("═══════════════════════════════════════")

	fmt.Print("⚙️  Checking configuration values... ")
	if err := cfg.Validate(); err != nil {
		fmt.Println("❌")
		return err
	}
	fmt.Println("✅")

	fmt.Print("🔑 Checking API keys... ")
	if cfg.FinnhubAPIKey == "" {
		fmt.Println("⚠️")
		fmt.Println("  ⚠️  Finnhub API key not configured")
		fmt.Println()
		fmt.Println("💡 Tips:")
		fmt.Println("  • Set FINNHUB_API_KEY for analyst recommendations and richer news")
		fmt.Println("  • Use 'stocklens analyze AAPL' to run your first analysis")
		return nil
	}
	fmt.Println("✅")

	fmt.Println()
	fmt.Println("✅ Configuration validation completed successfully!")
	return nil
}
