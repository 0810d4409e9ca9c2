package analysis

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// Analysis bundles everything one collect → describe → visualize →
// report run needs: the named series to pull, the window, and the
// panel groupings for the chart.
type Analysis struct {
	Name      string       `yaml:"name"`
	YearsBack int          `yaml:"years_back" default:"10"`
	Series    []SeriesSpec `yaml:"series"`
	Panels    []Panel      `yaml:"panels"`
}

// LoadAnalyses reads analysis definitions from a YAML file. Fields
// left out of the file fall back to their defaults.
func LoadAnalyses(path string) ([]Analysis, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read groups file: %w", err)
	}

	var file struct {
		Analyses []Analysis `yaml:"analyses"`
	}
	if err := yaml.Unmarshal(b, &file); err != nil {
		return nil, fmt.Errorf("parse groups file: %w", err)
	}
	if len(file.Analyses) == 0 {
		return nil, fmt.Errorf("groups file %s defines no analyses", path)
	}

	for i := range file.Analyses {
		if err := defaults.Set(&file.Analyses[i]); err != nil {
			return nil, fmt.Errorf("apply defaults: %w", err)
		}
		a := file.Analyses[i]
		if a.Name == "" {
			return nil, fmt.Errorf("groups file %s: analysis %d has no name", path, i)
		}
		if len(a.Series) == 0 {
			return nil, fmt.Errorf("groups file %s: analysis %q lists no series", path, a.Name)
		}
	}
	return file.Analyses, nil
}

// DefaultAnalyses returns the built-in runs: overall unemployment by
// economic class, and unemployment across demographic groups.
func DefaultAnalyses() []Analysis {
	return []Analysis{
		{
			Name:      "unemployment",
			YearsBack: 10,
			Series: []SeriesSpec{
				{Name: "Unemployment Rate (Overall)", SeriesID: "UNRATE"},
				{Name: "Unemployment Rate - 15 weeks or less", SeriesID: "U1RATE"},
				{Name: "Unemployment Rate - Job losers", SeriesID: "U2RATE"},
				{Name: "Unemployment Rate - 27 weeks and over", SeriesID: "U3RATE"},
				{Name: "Unemployment Rate - Discouraged workers", SeriesID: "U4RATE"},
				{Name: "Unemployment Rate - Marginally attached", SeriesID: "U5RATE"},
				{Name: "Unemployment Rate - Total incl. marginally attached", SeriesID: "U6RATE"},
			},
			Panels: []Panel{
				{
					Title: "Unemployment Rates by Economic Class: 10-Year Trends",
					Names: []string{
						"Unemployment Rate (Overall)",
						"Unemployment Rate - 15 weeks or less",
						"Unemployment Rate - Job losers",
						"Unemployment Rate - 27 weeks and over",
						"Unemployment Rate - Discouraged workers",
						"Unemployment Rate - Marginally attached",
						"Unemployment Rate - Total incl. marginally attached",
					},
					Rolling:       true,
					RollingWindow: 12,
				},
			},
		},
		{
			Name:      "income_analysis",
			YearsBack: 10,
			Series: []SeriesSpec{
				{Name: "White", SeriesID: "LNS14000003"},
				{Name: "Black or African American", SeriesID: "LNS14000006"},
				{Name: "Hispanic or Latino", SeriesID: "LNS14000009"},
				{Name: "Asian", SeriesID: "LNS14000012"},
				{Name: "Men, 20 years and over", SeriesID: "LNS14000315"},
				{Name: "Women", SeriesID: "LNS14000002"},
				{Name: "16-19 years", SeriesID: "LNS14000025"},
				{Name: "20 years and over", SeriesID: "LNS14000026"},
				{Name: "Married men, spouse present", SeriesID: "LNS14000150"},
				{Name: "Women who maintain families", SeriesID: "LNS14000327"},
			},
			Panels: []Panel{
				{
					Title: "Racial/Ethnic Groups",
					Names: []string{"White", "Black or African American", "Hispanic or Latino", "Asian"},
				},
				{
					Title: "Gender Groups",
					Names: []string{"Men, 20 years and over", "Women", "Married men, spouse present", "Women who maintain families"},
				},
				{
					Title: "Age Groups",
					Names: []string{"16-19 years", "20 years and over"},
				},
				{
					Title: "Combined Trends",
					Names: []string{
						"White", "Black or African American", "Hispanic or Latino", "Asian",
						"Men, 20 years and over", "Women", "16-19 years", "20 years and over",
						"Married men, spouse present", "Women who maintain families",
					},
					Rolling:       true,
					RollingWindow: 12,
				},
			},
		},
	}
}
