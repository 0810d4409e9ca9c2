package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fredscope/internal/analysis"
	"fredscope/internal/config"
	"fredscope/internal/fred"
	"fredscope/internal/shaper"
)

const banner = `
╔══════════════════════════════════════╗
║     FREDscope Economic Analysis      ║
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

	log := cfg.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	analyses, err := loadAnalyses(cfg.GroupsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.GroupsFile).Msg("could not load analysis groups")
	}

	method, err := shaper.ParseMethod(cfg.CleanMethod)
	if err != nil {
		log.Fatal().Err(err).Msg("bad clean method")
	}

	client := fred.NewClient(cfg.FREDAPIKey, cfg.BaseURL, cfg.HTTPTimeout)
	store := shaper.NewStore(cfg.RawDataDir, cfg.CleanDataDir)
	driver := analysis.NewDriver(client, store, cfg.ReportsDir, method, log)

	failed := 0
	for _, a := range analyses {
		if ctx.Err() != nil {
			log.Warn().Msg("interrupted")
			os.Exit(1)
		}
		log.Info().Str("analysis", a.Name).Int("series", len(a.Series)).Msg("starting analysis")

		results, table := driver.Collect(ctx, a.Series, a.YearsBack)
		if table.Len() == 0 {
			log.Error().Str("analysis", a.Name).Msg("no series could be retrieved, skipping")
			failed++
			continue
		}
		if err := driver.Report(a, results, table); err != nil {
			log.Error().Err(err).Str("analysis", a.Name).Msg("report failed")
			failed++
		}
	}

	if failed > 0 {
		fmt.Printf("\nAnalysis complete: %d of %d groups failed\n", failed, len(analyses))
		os.Exit(1)
	}
	fmt.Println("\nAnalysis complete")
}

// loadAnalyses reads the groupings file when one is configured and present,
// otherwise falls back to the built-in unemployment and income groups.
func loadAnalyses(path string) ([]analysis.Analysis, error) {
	if path == "" {
		return analysis.DefaultAnalyses(), nil
	}
	analyses, err := analysis.LoadAnalyses(path)
	if errors.Is(err, os.ErrNotExist) {
		return analysis.DefaultAnalyses(), nil
	}
	return analyses, err
}
