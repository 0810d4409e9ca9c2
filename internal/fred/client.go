package fred

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fredscope/internal/models"
)

const (
	DefaultBaseURL = "https://api.stlouisfed.org"

	searchPath       = "/fred/series/search"
	observationsPath = "/fred/series/observations"
	seriesPath       = "/fred/series"

	dateLayout   = "2006-01-02"
	missingValue = "."
)

var (
	// ErrAuth means the configured API key was rejected or missing.
	ErrAuth = errors.New("fred: api key rejected")
	// ErrNotFound means the requested series id is unknown to FRED.
	ErrNotFound = errors.New("fred: series does not exist")
	// ErrRequest wraps transport failures and non-success statuses
	// that are neither auth nor not-found problems.
	ErrRequest = errors.New("fred: request failed")
)

// Client wraps outbound calls to the FRED API. One request per call,
// no retry, no backoff: a failed call surfaces immediately.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchOptions narrows a Fetch call. Zero-value fields are omitted
// from the request, so the API falls back to its own defaults.
type FetchOptions struct {
	Start     time.Time
	End       time.Time
	Frequency string // d, w, m, q, a
	Units     string // lin, chg, pch, ...
}

// Search looks up catalog series matching keyword. A non-empty
// category filters the hits by a case-insensitive substring match over
// the notes field.
func (c *Client) Search(ctx context.Context, keyword, category string, limit int) ([]models.SeriesSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	params := url.Values{}
	params.Set("search_text", keyword)
	params.Set("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, searchPath, params)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Seriess []struct {
			ID                 string `json:"id"`
			Title              string `json:"title"`
			Units              string `json:"units"`
			Frequency          string `json:"frequency"`
			SeasonalAdjustment string `json:"seasonal_adjustment"`
			LastUpdated        string `json:"last_updated"`
			ObservationStart   string `json:"observation_start"`
			ObservationEnd     string `json:"observation_end"`
			Notes              string `json:"notes"`
		} `json:"seriess"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("fred: decode search response: %w", err)
	}

	results := make([]models.SeriesSummary, 0, len(payload.Seriess))
	for _, hit := range payload.Seriess {
		if category != "" && !strings.Contains(strings.ToLower(hit.Notes), strings.ToLower(category)) {
			continue
		}
		results = append(results, models.SeriesSummary{
			ID:                 hit.ID,
			Title:              hit.Title,
			Units:              hit.Units,
			Frequency:          hit.Frequency,
			SeasonalAdjustment: hit.SeasonalAdjustment,
			LastUpdated:        hit.LastUpdated,
			ObservationStart:   hit.ObservationStart,
			ObservationEnd:     hit.ObservationEnd,
			Notes:              hit.Notes,
		})
	}
	return results, nil
}

// Fetch retrieves the observations of one series, bounded inclusively
// by opts.Start/End when set. Values of "." decode as missing.
func (c *Client) Fetch(ctx context.Context, seriesID string, opts FetchOptions) (models.Series, error) {
	params := observationParams(seriesID, opts.Start, opts.End)
	if opts.Frequency != "" {
		params.Set("frequency", opts.Frequency)
	}
	if opts.Units != "" {
		params.Set("units", opts.Units)
	}

	body, err := c.get(ctx, observationsPath, params)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Observations []struct {
			Date  string `json:"date"`
			Value string `json:"value"`
		} `json:"observations"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("fred: decode observations: %w", err)
	}

	series := make(models.Series, 0, len(payload.Observations))
	for _, raw := range payload.Observations {
		date, err := time.Parse(dateLayout, raw.Date)
		if err != nil {
			return nil, fmt.Errorf("fred: bad observation date %q: %w", raw.Date, err)
		}
		obs := models.Observation{Date: date}
		if raw.Value != missingValue {
			v, err := strconv.ParseFloat(raw.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("fred: bad observation value %q: %w", raw.Value, err)
			}
			obs.Value = &v
		}
		series = append(series, obs)
	}
	return series, nil
}

// FetchMeta retrieves the descriptive record for one series.
func (c *Client) FetchMeta(ctx context.Context, seriesID string) (models.SeriesMeta, error) {
	params := url.Values{}
	params.Set("series_id", seriesID)

	body, err := c.get(ctx, seriesPath, params)
	if err != nil {
		return models.SeriesMeta{}, err
	}

	var payload struct {
		Seriess []struct {
			ID                 string `json:"id"`
			Title              string `json:"title"`
			Units              string `json:"units"`
			Frequency          string `json:"frequency"`
			SeasonalAdjustment string `json:"seasonal_adjustment"`
			LastUpdated        string `json:"last_updated"`
			Notes              string `json:"notes"`
		} `json:"seriess"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.SeriesMeta{}, fmt.Errorf("fred: decode series response: %w", err)
	}
	if len(payload.Seriess) == 0 {
		return models.SeriesMeta{}, fmt.Errorf("%w: %s", ErrNotFound, seriesID)
	}

	meta := payload.Seriess[0]
	return models.SeriesMeta{
		ID:                 meta.ID,
		Title:              meta.Title,
		Units:              meta.Units,
		Frequency:          meta.Frequency,
		SeasonalAdjustment: meta.SeasonalAdjustment,
		LastUpdated:        meta.LastUpdated,
		Notes:              meta.Notes,
	}, nil
}

// FetchRaw returns the observations response body verbatim, for
// callers that want the provider's JSON untouched.
func (c *Client) FetchRaw(ctx context.Context, seriesID string, start, end time.Time) ([]byte, error) {
	return c.get(ctx, observationsPath, observationParams(seriesID, start, end))
}

func observationParams(seriesID string, start, end time.Time) url.Values {
	params := url.Values{}
	params.Set("series_id", seriesID)
	if !start.IsZero() {
		params.Set("observation_start", start.Format(dateLayout))
	}
	if !end.IsZero() {
		params.Set("observation_end", end.Format(dateLayout))
	}
	return params
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	query := url.Values{}
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	query.Set("api_key", c.apiKey)
	query.Set("file_type", "json")

	endpoint := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrRequest, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyError(resp.StatusCode, body)
	}
	return body, nil
}

// classifyError maps a FRED error body onto the client's sentinel
// errors. FRED answers both bad keys and unknown series with 400, so
// the error_message text is what distinguishes them.
func classifyError(status int, body []byte) error {
	var payload struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	}
	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &payload); err == nil && payload.ErrorMessage != "" {
		message = payload.ErrorMessage
	}

	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "api_key") || status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuth, message)
	case strings.Contains(lower, "does not exist") || status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrRequest, status, message)
	}
}
