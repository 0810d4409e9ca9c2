package models

// Stats is the per-series descriptive summary. Derived fields are nil
// when the series had fewer than two non-missing observations.
type Stats struct {
	Name   string   `json:"name"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Median *float64 `json:"median"`
	StdDev *float64 `json:"stdDev"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
	Latest *float64 `json:"latest"`
	// Change is the percentage difference between the value nearest
	// the window start and the value nearest the window end.
	Change *float64 `json:"change"`
}
