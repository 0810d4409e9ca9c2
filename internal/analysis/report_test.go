package analysis

import (
	"context"
	"encoding/csv"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fredscope/internal/models"
)

func TestReportWritesAllArtifacts(t *testing.T) {
	values := make([]*float64, 24)
	for i := range values {
		values[i] = models.Float(3.0 + float64(i)*0.1)
	}
	fetcher := &fakeFetcher{series: map[string]models.Series{
		"UNRATE": monthly(values...),
		"U6RATE": monthly(values...),
	}}
	d, dir := newTestDriver(t, fetcher)

	a := Analysis{
		Name:      "unemployment",
		YearsBack: 2,
		Series: []SeriesSpec{
			{Name: "Overall", SeriesID: "UNRATE"},
			{Name: "Broad", SeriesID: "U6RATE"},
		},
		Panels: []Panel{{
			Title:         "Unemployment",
			Names:         []string{"Overall", "Broad"},
			Rolling:       true,
			RollingWindow: 12,
		}},
	}

	results, table := d.Collect(context.Background(), a.Series, a.YearsBack)
	require.NoError(t, d.Report(a, results, table))

	reportDir := filepath.Join(dir, "reports", "unemployment")

	statsFile, err := os.Open(filepath.Join(reportDir, "unemployment_statistics.csv"))
	require.NoError(t, err)
	defer statsFile.Close()
	rows, err := csv.NewReader(statsFile).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per series")
	assert.Equal(t, "Overall", rows[1][0])
	assert.Equal(t, "24", rows[1][1])

	chartFile, err := os.Open(filepath.Join(reportDir, "unemployment_trends.png"))
	require.NoError(t, err)
	defer chartFile.Close()
	img, err := png.Decode(chartFile)
	require.NoError(t, err, "chart must be a decodable PNG")
	assert.Equal(t, panelWidth, img.Bounds().Dx(), "single panel keeps panel width")

	for _, id := range []string{"UNRATE", "U6RATE"} {
		_, err := os.Stat(filepath.Join(dir, "raw_data", id+"_2y_raw.csv"))
		assert.NoError(t, err, "raw file for %s", id)
		_, err = os.Stat(filepath.Join(dir, "clean_data", id+"_2y_cleaned.csv"))
		assert.NoError(t, err, "clean file for %s", id)
	}
}

func TestSummaryPicksSkipSparseSeries(t *testing.T) {
	stats := []models.Stats{
		{Name: "full", Count: 24, Mean: models.Float(3.0), StdDev: models.Float(0.4), Change: models.Float(-1.5)},
		{Name: "sparse", Count: 1},
	}

	lowest := pick(stats, statMean, less)
	require.NotNil(t, lowest)
	assert.Equal(t, "full", lowest.Name, "a record without a mean must not win the lowest-average pick")

	improved := pick(stats, statChange, less)
	require.NotNil(t, improved)
	assert.Equal(t, "full", improved.Name, "a record without a change must not win the most-improved pick")

	highest := pick(stats, statMean, more)
	require.NotNil(t, highest)
	assert.Equal(t, "full", highest.Name)

	assert.Nil(t, pick([]models.Stats{{Name: "sparse", Count: 1}}, statMean, less),
		"no record with the field means no winner")
}

func TestVisualizeMultiPanelGrid(t *testing.T) {
	values := make([]*float64, 30)
	for i := range values {
		values[i] = models.Float(float64(i))
	}
	table := models.NewSeriesTable()
	table.Add("a", monthly(values...))
	table.Add("b", monthly(values...))

	d, dir := newTestDriver(t, &fakeFetcher{})
	path := filepath.Join(dir, "reports", "grid", "grid_trends.png")

	panels := []Panel{
		{Title: "First", Names: []string{"a"}},
		{Title: "Second", Names: []string{"b"}},
		{Title: "Both", Names: []string{"a", "b"}, Rolling: true},
	}
	require.NoError(t, d.Visualize(table, panels, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 2*panelWidth, img.Bounds().Dx(), "two columns")
	assert.Equal(t, 2*panelHeight, img.Bounds().Dy(), "two rows for three panels")
}

func TestVisualizeSkipsUnknownAndSparseSeries(t *testing.T) {
	table := models.NewSeriesTable()
	table.Add("lonely", monthly(models.Float(1)))

	d, dir := newTestDriver(t, &fakeFetcher{})
	path := filepath.Join(dir, "chart.png")

	panels := []Panel{{Title: "Empty", Names: []string{"lonely", "missing"}}}
	require.NoError(t, d.Visualize(table, panels, path), "panel with nothing drawable renders blank")

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
