package models

// SeriesSummary is one search hit from the FRED series catalog.
type SeriesSummary struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Units              string `json:"units"`
	Frequency          string `json:"frequency"`
	SeasonalAdjustment string `json:"seasonalAdjustment"`
	LastUpdated        string `json:"lastUpdated"`
	ObservationStart   string `json:"observationStart"`
	ObservationEnd     string `json:"observationEnd"`
	Notes              string `json:"notes,omitempty"`
}

// SeriesMeta is the descriptive record for a single series.
type SeriesMeta struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Units              string `json:"units"`
	Frequency          string `json:"frequency"`
	SeasonalAdjustment string `json:"seasonalAdjustment"`
	LastUpdated        string `json:"lastUpdated"`
	Notes              string `json:"notes,omitempty"`
}
