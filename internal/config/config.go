package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config is the process configuration, loaded once at startup and
// never mutated afterwards. The API key is sourced from the
// environment, never compiled in.
type Config struct {
	// FRED API
	FREDAPIKey  string
	BaseURL     string
	HTTPTimeout time.Duration

	// Output locations
	RawDataDir   string
	CleanDataDir string
	ReportsDir   string

	// Analysis defaults
	YearsBack   int
	CleanMethod string
	GroupsFile  string

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		FREDAPIKey:  envStr("FRED_API_KEY", ""),
		BaseURL:     envStr("FRED_BASE_URL", "https://api.stlouisfed.org"),
		HTTPTimeout: time.Duration(envInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,

		RawDataDir:   envStr("RAW_DATA_DIR", "raw_data"),
		CleanDataDir: envStr("CLEAN_DATA_DIR", "clean_data"),
		ReportsDir:   envStr("REPORTS_DIR", "reports"),

		YearsBack:   envInt("YEARS_BACK", 10),
		CleanMethod: envStr("CLEAN_METHOD", "drop"),
		GroupsFile:  envStr("GROUPS_FILE", ""),

		LogLevel:  envStr("LOG_LEVEL", "info"),
		LogFormat: envStr("LOG_FORMAT", "console"),
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string

	if c.FREDAPIKey == "" {
		errs = append(errs, "FRED_API_KEY is required (request one at https://fred.stlouisfed.org/docs/api/api_key.html)")
	}
	if c.YearsBack <= 0 {
		errs = append(errs, "YEARS_BACK must be positive")
	}
	switch c.CleanMethod {
	case "drop", "forward_fill", "interpolate", "zero":
	default:
		errs = append(errs, fmt.Sprintf("CLEAN_METHOD %q is not one of drop, forward_fill, interpolate, zero", c.CleanMethod))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func (c *Config) Print() {
	fmt.Println("=== FREDscope Configuration ===")
	fmt.Printf("FRED API Key: %s\n", redactKey(c.FREDAPIKey))
	fmt.Printf("Base URL: %s\n", c.BaseURL)
	fmt.Printf("HTTP Timeout: %s\n", c.HTTPTimeout)
	fmt.Println("-------------------------------")
	fmt.Printf("Raw Data: %s/\n", c.RawDataDir)
	fmt.Printf("Clean Data: %s/\n", c.CleanDataDir)
	fmt.Printf("Reports: %s/\n", c.ReportsDir)
	fmt.Println("-------------------------------")
	fmt.Printf("Window: last %d years\n", c.YearsBack)
	fmt.Printf("Clean Method: %s\n", c.CleanMethod)
	if c.GroupsFile != "" {
		fmt.Printf("Groups File: %s\n", c.GroupsFile)
	} else {
		fmt.Println("Groups File: (built-in defaults)")
	}
	fmt.Println("===============================")
}

// Logger builds the process logger from the configured level and
// format.
func (c *Config) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stderr)
	if c.LogFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return logger.Level(level).With().Timestamp().Logger()
}

func redactKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + strings.Repeat("*", len(key)-4)
}

// --- helpers ---

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
