package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// TestAPIKey is the key the fake server accepts.
const TestAPIKey = "0123456789abcdef0123456789abcdef"

// ObservationRow mirrors one entry of a FRED observations payload.
// Value holds "." for missing observations, as FRED does.
type ObservationRow struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// SeriesFixture is the canned state behind one series id.
type SeriesFixture struct {
	Title              string
	Units              string
	Frequency          string
	SeasonalAdjustment string
	Notes              string
	Observations       []ObservationRow
}

// FREDServer is an httptest-backed stand-in for the FRED API. It
// checks the api_key parameter, answers unknown series with the
// provider's "does not exist" error body, and serves fixture data for
// registered series.
type FREDServer struct {
	Server *httptest.Server
	Series map[string]SeriesFixture
}

func NewFREDServer(t *testing.T) *FREDServer {
	t.Helper()

	fs := &FREDServer{Series: make(map[string]SeriesFixture)}
	mux := http.NewServeMux()
	mux.HandleFunc("/fred/series/search", fs.handleSearch)
	mux.HandleFunc("/fred/series/observations", fs.handleObservations)
	mux.HandleFunc("/fred/series", fs.handleSeries)

	fs.Server = httptest.NewServer(mux)
	t.Cleanup(fs.Server.Close)
	return fs
}

func (fs *FREDServer) URL() string {
	return fs.Server.URL
}

// AddMonthly registers a series with one observation per month
// starting at startDate (YYYY-MM-DD). Use "." in values for gaps.
func (fs *FREDServer) AddMonthly(id, title, startDate string, values ...string) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		panic(fmt.Sprintf("testutil: bad start date %q", startDate))
	}
	rows := make([]ObservationRow, len(values))
	for i, v := range values {
		rows[i] = ObservationRow{
			Date:  start.AddDate(0, i, 0).Format("2006-01-02"),
			Value: v,
		}
	}
	fs.Series[id] = SeriesFixture{
		Title:        title,
		Units:        "Percent",
		Frequency:    "Monthly",
		Observations: rows,
	}
}

func (fs *FREDServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !fs.checkKey(w, r) {
		return
	}
	text := r.URL.Query().Get("search_text")

	type hit struct {
		ID                 string `json:"id"`
		Title              string `json:"title"`
		Units              string `json:"units"`
		Frequency          string `json:"frequency"`
		SeasonalAdjustment string `json:"seasonal_adjustment"`
		Notes              string `json:"notes"`
	}
	hits := []hit{}
	for id, fx := range fs.Series {
		if text == "" || containsFold(fx.Title, text) || containsFold(id, text) {
			hits = append(hits, hit{
				ID:                 id,
				Title:              fx.Title,
				Units:              fx.Units,
				Frequency:          fx.Frequency,
				SeasonalAdjustment: fx.SeasonalAdjustment,
				Notes:              fx.Notes,
			})
		}
	}
	writeJSON(w, map[string]any{"seriess": hits})
}

func (fs *FREDServer) handleObservations(w http.ResponseWriter, r *http.Request) {
	if !fs.checkKey(w, r) {
		return
	}
	fx, ok := fs.Series[r.URL.Query().Get("series_id")]
	if !ok {
		writeError(w, http.StatusBadRequest, "Bad Request. The series does not exist.")
		return
	}

	start := r.URL.Query().Get("observation_start")
	end := r.URL.Query().Get("observation_end")
	rows := []ObservationRow{}
	for _, row := range fx.Observations {
		if start != "" && row.Date < start {
			continue
		}
		if end != "" && row.Date > end {
			continue
		}
		rows = append(rows, row)
	}
	writeJSON(w, map[string]any{"observations": rows})
}

func (fs *FREDServer) handleSeries(w http.ResponseWriter, r *http.Request) {
	if !fs.checkKey(w, r) {
		return
	}
	id := r.URL.Query().Get("series_id")
	fx, ok := fs.Series[id]
	if !ok {
		writeError(w, http.StatusBadRequest, "Bad Request. The series does not exist.")
		return
	}
	writeJSON(w, map[string]any{"seriess": []map[string]string{{
		"id":                  id,
		"title":               fx.Title,
		"units":               fx.Units,
		"frequency":           fx.Frequency,
		"seasonal_adjustment": fx.SeasonalAdjustment,
		"last_updated":        "2025-01-02 07:46:03-06",
		"notes":               fx.Notes,
	}}})
}

func (fs *FREDServer) checkKey(w http.ResponseWriter, r *http.Request) bool {
	if r.URL.Query().Get("api_key") != TestAPIKey {
		writeError(w, http.StatusBadRequest,
			"Bad Request. The value for variable api_key is not registered.")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error_code":    status,
		"error_message": message,
	})
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
