package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fredscope/internal/config"
	"fredscope/internal/fred"
	"fredscope/internal/models"
	"fredscope/internal/shaper"
)

const banner = `
╔══════════════════════════════════════╗
║        FREDscope Client Demo         ║
╚══════════════════════════════════════╝
`

func main() {
	fmt.Print(banner)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	cfg.Print()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "demo failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	client := fred.NewClient(cfg.FREDAPIKey, cfg.BaseURL, cfg.HTTPTimeout)
	store := shaper.NewStore(cfg.RawDataDir, cfg.CleanDataDir)

	// 1. Search the catalog
	fmt.Println("\nSearching for GDP series...")
	hits, err := client.Search(ctx, "GDP", "", 10)
	if err != nil {
		return fmt.Errorf("search GDP: %w", err)
	}
	printHits(hits, 5)

	// 2. Fetch a series, save raw, clean, save clean
	fmt.Println("\nRetrieving GDP data (2020-2023)...")
	gdp, err := client.Fetch(ctx, "GDP", fred.FetchOptions{
		Start: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		return fmt.Errorf("fetch GDP: %w", err)
	}
	fmt.Printf("Retrieved %d observations\n", len(gdp))
	printHead(gdp, 5)

	path, err := store.Save(gdp, "GDP", true, shaper.FormatCSV)
	if err != nil {
		return err
	}
	fmt.Printf("Raw data saved to %s\n", path)

	cleaned, err := shaper.Clean(gdp, shaper.MethodDrop)
	if err != nil {
		return err
	}
	fmt.Printf("After cleaning (dropped missing): %d observations\n", len(cleaned))

	path, err = store.Save(cleaned, "GDP", false, shaper.FormatCSV)
	if err != nil {
		return err
	}
	fmt.Printf("Clean data saved to %s\n", path)

	// 3. Series metadata
	fmt.Println("\nGetting metadata for GDP...")
	meta, err := client.FetchMeta(ctx, "GDP")
	if err != nil {
		return fmt.Errorf("fetch GDP metadata: %w", err)
	}
	fmt.Printf("Title: %s\nUnits: %s\nFrequency: %s\nLast Updated: %s\n",
		meta.Title, meta.Units, meta.Frequency, meta.LastUpdated)

	// 4. Raw provider JSON
	fmt.Println("\nRetrieving GDP data as raw JSON...")
	raw, err := client.FetchRaw(ctx, "GDP",
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return fmt.Errorf("fetch raw GDP: %w", err)
	}
	fmt.Println(excerpt(string(raw), 500))

	// 5. Search with a category filter
	fmt.Println("\nSearching for unemployment series in Labor Markets...")
	hits, err = client.Search(ctx, "unemployment", "Labor Markets", 10)
	if err != nil {
		return fmt.Errorf("search unemployment: %w", err)
	}
	printHits(hits, 5)

	// 6. Fetch the unemployment rate and forward-fill gaps
	fmt.Println("\nRetrieving unemployment rate data...")
	unrate, err := client.Fetch(ctx, "UNRATE", fred.FetchOptions{
		Start: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		return fmt.Errorf("fetch UNRATE: %w", err)
	}
	printHead(unrate, 5)

	if _, err := store.Save(unrate, "UNRATE", true, shaper.FormatCSV); err != nil {
		return err
	}
	filled, err := shaper.Clean(unrate, shaper.MethodForwardFill)
	if err != nil {
		return err
	}
	fmt.Printf("After forward-fill cleaning: %d observations\n", len(filled))
	if _, err := store.Save(filled, "UNRATE", false, shaper.FormatCSV); err != nil {
		return err
	}

	fmt.Println("\nDemo complete.")
	return nil
}

func printHits(hits []models.SeriesSummary, n int) {
	if n > len(hits) {
		n = len(hits)
	}
	for _, h := range hits[:n] {
		fmt.Printf("  %-12s %s\n", h.ID, h.Title)
	}
}

func printHead(s models.Series, n int) {
	if n > len(s) {
		n = len(s)
	}
	for _, obs := range s[:n] {
		if obs.Value == nil {
			fmt.Printf("  %s  .\n", obs.Date.Format("2006-01-02"))
			continue
		}
		fmt.Printf("  %s  %.2f\n", obs.Date.Format("2006-01-02"), *obs.Value)
	}
}

func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
