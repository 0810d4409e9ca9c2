package analysis

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"fredscope/internal/fred"
	"fredscope/internal/models"
	"fredscope/internal/shaper"
)

// SeriesFetcher is the slice of the FRED client the driver needs.
type SeriesFetcher interface {
	Fetch(ctx context.Context, seriesID string, opts fred.FetchOptions) (models.Series, error)
}

// SeriesSpec names one series to collect: the catalog id plus the
// display name used in tables, reports and chart legends.
type SeriesSpec struct {
	Name     string `yaml:"name"`
	SeriesID string `yaml:"id"`
}

// Result is the per-series outcome of a Collect run. A non-nil Err
// means the series was omitted from the table and says why.
type Result struct {
	Name     string
	SeriesID string
	Series   models.Series
	Err      error
}

// Driver orchestrates series through the client and shaper. It holds
// no cross-call state; every method is a transformation over its
// inputs and the injected dependencies.
type Driver struct {
	fetcher     SeriesFetcher
	store       *shaper.Store
	reportsDir  string
	cleanMethod shaper.Method
	log         zerolog.Logger
}

func NewDriver(fetcher SeriesFetcher, store *shaper.Store, reportsDir string, cleanMethod shaper.Method, log zerolog.Logger) *Driver {
	return &Driver{
		fetcher:     fetcher,
		store:       store,
		reportsDir:  reportsDir,
		cleanMethod: cleanMethod,
		log:         log,
	}
}

// Collect fetches every spec over the window [now − yearsBack years,
// now], sequentially. A failed fetch is logged, recorded in its
// Result, and omitted from the table; the run continues with the
// remaining series.
func (d *Driver) Collect(ctx context.Context, specs []SeriesSpec, yearsBack int) ([]Result, *models.SeriesTable) {
	end := time.Now()
	start := end.AddDate(-yearsBack, 0, 0)

	table := models.NewSeriesTable()
	results := make([]Result, 0, len(specs))
	for _, spec := range specs {
		d.log.Info().Str("series", spec.SeriesID).Str("name", spec.Name).Msg("retrieving")
		s, err := d.fetcher.Fetch(ctx, spec.SeriesID, fred.FetchOptions{Start: start, End: end})
		results = append(results, Result{Name: spec.Name, SeriesID: spec.SeriesID, Series: s, Err: err})
		if err != nil {
			d.log.Warn().Str("series", spec.SeriesID).Err(err).Msg("series omitted")
			continue
		}
		table.Add(spec.Name, s)
		d.log.Info().Str("series", spec.SeriesID).Int("observations", len(s)).Msg("retrieved")
	}
	return results, table
}
