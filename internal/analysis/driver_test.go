package analysis

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fredscope/internal/fred"
	"fredscope/internal/models"
	"fredscope/internal/shaper"
)

// fakeFetcher serves canned series and canned failures.
type fakeFetcher struct {
	series map[string]models.Series
	errs   map[string]error
	calls  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, seriesID string, _ fred.FetchOptions) (models.Series, error) {
	f.calls = append(f.calls, seriesID)
	if err, ok := f.errs[seriesID]; ok {
		return nil, err
	}
	return f.series[seriesID], nil
}

func newTestDriver(t *testing.T, fetcher SeriesFetcher) (*Driver, string) {
	t.Helper()
	dir := t.TempDir()
	store := shaper.NewStore(filepath.Join(dir, "raw_data"), filepath.Join(dir, "clean_data"))
	d := NewDriver(fetcher, store, filepath.Join(dir, "reports"), shaper.MethodDrop, zerolog.Nop())
	return d, dir
}

func TestCollectPartialFailure(t *testing.T) {
	fetcher := &fakeFetcher{
		series: map[string]models.Series{
			"UNRATE": monthly(models.Float(3.5), models.Float(3.6)),
			"U6RATE": monthly(models.Float(7.0), models.Float(7.1)),
		},
		errs: map[string]error{"U9RATE": fred.ErrNotFound},
	}
	d, _ := newTestDriver(t, fetcher)

	specs := []SeriesSpec{
		{Name: "Overall", SeriesID: "UNRATE"},
		{Name: "Bogus", SeriesID: "U9RATE"},
		{Name: "Broad", SeriesID: "U6RATE"},
	}
	results, table := d.Collect(context.Background(), specs, 10)

	require.Len(t, results, 3)
	assert.Equal(t, 2, table.Len(), "failed series omitted from table")
	assert.Equal(t, []string{"Overall", "Broad"}, table.Names(), "input order preserved")

	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, fred.ErrNotFound)
	assert.NoError(t, results[2].Err)

	assert.Equal(t, []string{"UNRATE", "U9RATE", "U6RATE"}, fetcher.calls, "run continues past the failure")
}

func TestCollectAllFail(t *testing.T) {
	fetcher := &fakeFetcher{errs: map[string]error{"A": fred.ErrRequest, "B": fred.ErrAuth}}
	d, _ := newTestDriver(t, fetcher)

	results, table := d.Collect(context.Background(), []SeriesSpec{
		{Name: "a", SeriesID: "A"},
		{Name: "b", SeriesID: "B"},
	}, 5)

	assert.Equal(t, 0, table.Len())
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Error(t, r.Err)
	}
}
