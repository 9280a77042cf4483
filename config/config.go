package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Valid analysis periods, in menu order.
var Periods = []string{"1mo", "3mo", "6mo", "1y", "2y"}

// periodDays maps a period label to the calendar day span fetched for it.
var periodDays = map[string]int{
	"1mo": 30,
	"3mo": 91,
	"6mo": 182,
	"1y":  365,
	"2y":  730,
}

type Config struct {
	DefaultTicker string `json:"default_ticker"`
	DefaultPeriod string `json:"default_period"`

	// Finnhub powers the primary news source and analyst grade changes.
	// Without a key both degrade gracefully.
	FinnhubAPIKey string `json:"finnhub_api_key"`

	HTTPTimeout   time.Duration `json:"http_timeout"`
	ScrapeTimeout time.Duration `json:"scrape_timeout"`
	MaxNewsItems  int           `json:"max_news_items"`

	Debug   bool `json:"debug"`
	NoColor bool `json:"no_color"`
}

func DefaultConfig() *Config {
	cfg := &Config{
		DefaultTicker: "AAPL",
		DefaultPeriod: "1y",
		HTTPTimeout:   30 * time.Second,
		ScrapeTimeout: 10 * time.Second,
		MaxNewsItems:  10,
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("STOCKLENS_DEFAULT_TICKER"); val != "" {
		c.DefaultTicker = strings.ToUpper(strings.TrimSpace(val))
	}
	if val := os.Getenv("STOCKLENS_DEFAULT_PERIOD"); val != "" {
		c.DefaultPeriod = strings.TrimSpace(val)
	}
	if val := os.Getenv("STOCKLENS_FINNHUB_API_KEY"); val != "" {
		c.FinnhubAPIKey = val
	}
	if val := os.Getenv("FINNHUB_API_KEY"); val != "" && c.FinnhubAPIKey == "" {
		c.FinnhubAPIKey = val
	}
	if val := os.Getenv("STOCKLENS_HTTP_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.HTTPTimeout = d
		}
	}
	if val := os.Getenv("STOCKLENS_SCRAPE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.ScrapeTimeout = d
		}
	}
	if val := os.Getenv("STOCKLENS_MAX_NEWS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			c.MaxNewsItems = n
		}
	}
	if val := os.Getenv("STOCKLENS_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
	if val := os.Getenv("NO_COLOR"); val != "" {
		c.NoColor = true
	}
}

func (c *Config) Validate() error {
	if _, ok := periodDays[c.DefaultPeriod]; !ok {
		return fmt.Errorf("invalid default period %q (valid: %s)",
			c.DefaultPeriod, strings.Join(Periods, ", "))
	}
	if c.MaxNewsItems <= 0 {
		return fmt.Errorf("max news items must be positive, got %d", c.MaxNewsItems)
	}
	if c.HTTPTimeout <= 0 || c.ScrapeTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}

// PeriodDays returns the day span for a period label.
func PeriodDays(period string) (int, error) {
	days, ok := periodDays[period]
	if !ok {
		return 0, fmt.Errorf("unknown period %q (valid: %s)", period, strings.Join(Periods, ", "))
	}
	return days, nil
}

// ValidPeriod reports whether period is one of the supported labels.
func ValidPeriod(period string) bool {
	_, ok := periodDays[period]
	return ok
}
