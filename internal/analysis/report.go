package analysis

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"fredscope/internal/models"
	"fredscope/internal/shaper"
)

// Report writes the combined statistics table, the trend chart, and
// each collected series' raw and cleaned observations. The report
// directory is created if missing; files are overwritten on rerun.
func (d *Driver) Report(a Analysis, results []Result, table *models.SeriesTable) error {
	dir := filepath.Join(d.reportsDir, a.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	stats := Describe(table)

	statsPath := filepath.Join(dir, a.Name+"_statistics.csv")
	if err := writeStatsCSV(statsPath, stats); err != nil {
		return err
	}
	d.log.Info().Str("path", statsPath).Msg("statistics written")

	chartPath := filepath.Join(dir, a.Name+"_trends.png")
	if err := d.Visualize(table, a.Panels, chartPath); err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			continue
		}
		fileID := fmt.Sprintf("%s_%dy", r.SeriesID, a.YearsBack)
		path, err := d.store.Save(r.Series, fileID, true, shaper.FormatCSV)
		if err != nil {
			return fmt.Errorf("save raw %s: %w", r.SeriesID, err)
		}
		d.log.Debug().Str("path", path).Msg("raw data saved")

		cleaned, err := shaper.Clean(r.Series, d.cleanMethod)
		if err != nil {
			return fmt.Errorf("clean %s: %w", r.SeriesID, err)
		}
		path, err = d.store.Save(cleaned, fileID, false, shaper.FormatCSV)
		if err != nil {
			return fmt.Errorf("save clean %s: %w", r.SeriesID, err)
		}
		d.log.Debug().Str("path", path).Msg("clean data saved")
	}

	printSummary(a, stats, statsPath, chartPath)
	return nil
}

var statsHeader = []string{"Series", "Observations", "Mean", "Median", "Std Dev", "Min", "Max", "Latest Value", "Change %"}

func writeStatsCSV(path string, stats []models.Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(statsHeader); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, st := range stats {
		row := []string{
			st.Name,
			strconv.Itoa(st.Count),
			round2(st.Mean),
			round2(st.Median),
			round2(st.StdDev),
			round2(st.Min),
			round2(st.Max),
			round2(st.Latest),
			round2(st.Change),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

func round2(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// printSummary echoes the statistics table and a few headline insights,
// in the same console style the rest of the toolkit uses.
func printSummary(a Analysis, stats []models.Stats, statsPath, chartPath string) {
	fmt.Println("======================================================")
	fmt.Printf("  %s: %d-year window, %d series\n", a.Name, a.YearsBack, len(stats))
	fmt.Println("======================================================")
	for _, st := range stats {
		fmt.Printf("%-55s n=%-5d mean=%-8s median=%-8s stddev=%-8s change=%s%%\n",
			st.Name, st.Count, round2(st.Mean), round2(st.Median), round2(st.StdDev), round2(st.Change))
	}

	if highest := pick(stats, statMean, more); highest != nil {
		fmt.Printf("Highest average:  %s (%s)\n", highest.Name, round2(highest.Mean))
	}
	if lowest := pick(stats, statMean, less); lowest != nil {
		fmt.Printf("Lowest average:   %s (%s)\n", lowest.Name, round2(lowest.Mean))
	}
	if volatile := pick(stats, statStdDev, more); volatile != nil {
		fmt.Printf("Most volatile:    %s (stddev %s)\n", volatile.Name, round2(volatile.StdDev))
	}
	if improved := pick(stats, statChange, less); improved != nil {
		fmt.Printf("Most improved:    %s (%s%%)\n", improved.Name, round2(improved.Change))
	}

	fmt.Printf("Statistics: %s\n", statsPath)
	fmt.Printf("Chart:      %s\n", chartPath)
	fmt.Println("======================================================")
}

// pick returns the stats record whose field value wins the given
// comparison. Records whose compared field is absent are skipped, so
// they never win in either direction; nil is returned when no record
// has the field.
func pick(stats []models.Stats, field func(models.Stats) *float64, better func(a, b float64) bool) *models.Stats {
	var selected *models.Stats
	for i := range stats {
		candidate := stats[i]
		v := field(candidate)
		if v == nil {
			continue
		}
		if selected == nil || better(*v, *field(*selected)) {
			selected = &candidate
		}
	}
	return selected
}

func statMean(st models.Stats) *float64   { return st.Mean }
func statStdDev(st models.Stats) *float64 { return st.StdDev }
func statChange(st models.Stats) *float64 { return st.Change }

func more(a, b float64) bool { return a > b }
func less(a, b float64) bool { return a < b }
