package fred_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fredscope/internal/fred"
	"fredscope/internal/testutil"
)

func newTestClient(t *testing.T) (*fred.Client, *testutil.FREDServer) {
	t.Helper()
	server := testutil.NewFREDServer(t)
	client := fred.NewClient(testutil.TestAPIKey, server.URL(), 5*time.Second)
	return client, server
}

func TestFetchMonthlyWindow(t *testing.T) {
	client, server := newTestClient(t)
	server.AddMonthly("UNRATE", "Unemployment Rate", "2019-10-01",
		"3.6", "3.6", "3.6", "3.5", "3.5", "4.4", "14.8", "13.2", "11.0", "10.2")

	series, err := client.Fetch(context.Background(), "UNRATE", fred.FetchOptions{
		Start: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(series) != 6 {
		t.Fatalf("expected 6 observations, got %d", len(series))
	}
	for i := 1; i < len(series); i++ {
		if !series[i].Date.After(series[i-1].Date) {
			t.Fatalf("dates not strictly increasing at %d: %v then %v", i, series[i-1].Date, series[i].Date)
		}
		if series[i].Date.Sub(series[i-1].Date) > 31*24*time.Hour {
			t.Fatalf("gap larger than one month at %d", i)
		}
	}
	if series[0].Value == nil || *series[0].Value != 3.5 {
		t.Fatalf("unexpected first value: %+v", series[0])
	}
}

func TestFetchMissingValues(t *testing.T) {
	client, server := newTestClient(t)
	server.AddMonthly("GDPGAP", "Output Gap", "2020-01-01", "1.2", ".", "1.4")

	series, err := client.Fetch(context.Background(), "GDPGAP", fred.FetchOptions{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("expected 3 observations, got %d", len(series))
	}
	if series[1].Value != nil {
		t.Fatalf("expected missing value at index 1, got %v", *series[1].Value)
	}
	if series[0].Value == nil || series[2].Value == nil {
		t.Fatal("expected values at index 0 and 2")
	}
}

func TestFetchUnknownSeries(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Fetch(context.Background(), "NOPE", fred.FetchOptions{})
	if !errors.Is(err, fred.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBadAPIKey(t *testing.T) {
	server := testutil.NewFREDServer(t)
	server.AddMonthly("UNRATE", "Unemployment Rate", "2020-01-01", "3.5")
	client := fred.NewClient("wrong-key", server.URL(), 5*time.Second)

	_, err := client.Fetch(context.Background(), "UNRATE", fred.FetchOptions{})
	if !errors.Is(err, fred.ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
}

func TestSearchFiltersByCategory(t *testing.T) {
	client, server := newTestClient(t)
	server.Series["UNRATE"] = testutil.SeriesFixture{
		Title: "Unemployment Rate",
		Notes: "Labor Markets release, persons 16 and over.",
	}
	server.Series["GDP"] = testutil.SeriesFixture{
		Title: "Gross Domestic Product",
		Notes: "Production & Business Activity.",
	}
	server.Series["U6RATE"] = testutil.SeriesFixture{
		Title: "Total Unemployed Plus Marginally Attached",
		Notes: "labor markets, U-6 definition.",
	}

	hits, err := client.Search(context.Background(), "", "Labor Markets", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits after category filter, got %d", len(hits))
	}
	for _, hit := range hits {
		if hit.ID == "GDP" {
			t.Fatalf("category filter let GDP through: %+v", hit)
		}
	}
}

func TestFetchMeta(t *testing.T) {
	client, server := newTestClient(t)
	server.AddMonthly("UNRATE", "Unemployment Rate", "2020-01-01", "3.5")

	meta, err := client.FetchMeta(context.Background(), "UNRATE")
	if err != nil {
		t.Fatalf("FetchMeta: %v", err)
	}
	if meta.ID != "UNRATE" || meta.Title != "Unemployment Rate" {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if meta.Units != "Percent" || meta.Frequency != "Monthly" {
		t.Fatalf("unexpected units/frequency: %+v", meta)
	}

	_, err = client.FetchMeta(context.Background(), "NOPE")
	if !errors.Is(err, fred.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestFetchRaw(t *testing.T) {
	client, server := newTestClient(t)
	server.AddMonthly("GDP", "Gross Domestic Product", "2020-01-01", "21481.367")

	body, err := client.FetchRaw(context.Background(), "GDP", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("FetchRaw: %v", err)
	}
	if len(body) == 0 {
		t.Fatal("expected non-empty body")
	}
	t.Logf("raw body: %s", body)
}
