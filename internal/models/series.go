package models

import "time"

// Observation is one dated value within an economic series. A nil
// Value marks a gap: FRED publishes "." for dates with no figure.
type Observation struct {
	Date  time.Time `json:"date"`
	Value *float64  `json:"value"`
}

// Series is a chronologically ordered run of observations. Order is
// significant; duplicate dates are not expected and not deduplicated.
type Series []Observation

// Float returns a pointer to v, for building observations inline.
func Float(v float64) *float64 {
	return &v
}

// Values returns the non-missing values of the series, in order.
func (s Series) Values() []float64 {
	values := make([]float64, 0, len(s))
	for _, obs := range s {
		if obs.Value != nil {
			values = append(values, *obs.Value)
		}
	}
	return values
}

// First returns the earliest non-missing value.
func (s Series) First() (float64, bool) {
	for _, obs := range s {
		if obs.Value != nil {
			return *obs.Value, true
		}
	}
	return 0, false
}

// Last returns the latest non-missing value.
func (s Series) Last() (float64, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Value != nil {
			return *s[i].Value, true
		}
	}
	return 0, false
}

// Points returns the dates and values of the non-missing observations,
// as parallel slices.
func (s Series) Points() ([]time.Time, []float64) {
	dates := make([]time.Time, 0, len(s))
	values := make([]float64, 0, len(s))
	for _, obs := range s {
		if obs.Value != nil {
			dates = append(dates, obs.Date)
			values = append(values, *obs.Value)
		}
	}
	return dates, values
}

// Copy returns a deep copy of the series.
func (s Series) Copy() Series {
	out := make(Series, len(s))
	for i, obs := range s {
		out[i] = Observation{Date: obs.Date}
		if obs.Value != nil {
			v := *obs.Value
			out[i].Value = &v
		}
	}
	return out
}

// SeriesTable maps display names to series. Insertion order defines
// the order of reports and chart legends.
type SeriesTable struct {
	names []string
	data  map[string]Series
}

func NewSeriesTable() *SeriesTable {
	return &SeriesTable{data: make(map[string]Series)}
}

// Add inserts or replaces a series. A replaced series keeps its
// original position.
func (t *SeriesTable) Add(name string, s Series) {
	if _, ok := t.data[name]; !ok {
		t.names = append(t.names, name)
	}
	t.data[name] = s
}

func (t *SeriesTable) Get(name string) (Series, bool) {
	s, ok := t.data[name]
	return s, ok
}

// Names returns the display names in insertion order.
func (t *SeriesTable) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

func (t *SeriesTable) Len() int {
	return len(t.names)
}
