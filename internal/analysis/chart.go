package analysis

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"fredscope/internal/models"
)

const (
	panelWidth  = 760
	panelHeight = 520

	defaultRollingWindow = 12
)

// Panel is one chart panel: which series it shows and whether a
// centered rolling-mean trend line accompanies each of them. Panel
// assignment is caller-supplied configuration, not computed.
type Panel struct {
	Title         string   `yaml:"title"`
	Names         []string `yaml:"names"`
	Rolling       bool     `yaml:"rolling"`
	RollingWindow int      `yaml:"rolling_window" default:"12"`
}

var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
}

// Visualize renders one panel per entry of panels and composites them
// into a single PNG at path. Missing values are bridged in the drawn
// lines; the underlying data is untouched.
func (d *Driver) Visualize(table *models.SeriesTable, panels []Panel, path string) error {
	if len(panels) == 0 {
		return fmt.Errorf("visualize: no panels configured")
	}

	images := make([]image.Image, 0, len(panels))
	for _, panel := range panels {
		img, err := renderPanel(table, panel)
		if err != nil {
			return fmt.Errorf("render panel %q: %w", panel.Title, err)
		}
		images = append(images, img)
	}

	cols := 2
	if len(images) == 1 {
		cols = 1
	}
	rows := (len(images) + cols - 1) / cols

	canvas := image.NewRGBA(image.Rect(0, 0, cols*panelWidth, rows*panelHeight))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	for i, img := range images {
		x := (i % cols) * panelWidth
		y := (i / cols) * panelHeight
		rect := image.Rect(x, y, x+panelWidth, y+panelHeight)
		draw.Draw(canvas, rect, img, img.Bounds().Min, draw.Src)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, canvas); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	d.log.Info().Str("path", path).Int("panels", len(images)).Msg("chart written")
	return f.Close()
}

func renderPanel(table *models.SeriesTable, panel Panel) (image.Image, error) {
	graph := chart.Chart{
		Title:  panel.Title,
		Width:  panelWidth,
		Height: panelHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 36, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
	}

	window := panel.RollingWindow
	if window < 2 {
		window = defaultRollingWindow
	}

	for i, name := range panel.Names {
		s, ok := table.Get(name)
		if !ok {
			continue
		}
		dates, values := s.Points()
		if len(values) < 2 {
			continue
		}
		color := palette[i%len(palette)]
		graph.Series = append(graph.Series, chart.TimeSeries{
			Name:    name,
			XValues: dates,
			YValues: values,
			Style:   chart.Style{StrokeColor: color, StrokeWidth: 2},
		})

		if panel.Rolling && len(values) > window {
			trendDates, trendValues := rollingMean(dates, values, window)
			graph.Series = append(graph.Series, chart.TimeSeries{
				Name:    name + " (trend)",
				XValues: trendDates,
				YValues: trendValues,
				Style: chart.Style{
					StrokeColor:     color.WithAlpha(140),
					StrokeWidth:     1,
					StrokeDashArray: []float64{5, 5},
				},
			})
		}
	}

	if len(graph.Series) == 0 {
		return blankPanel(), nil
	}

	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// rollingMean is a centered moving average: the point at index i
// covers the window [i−(w−1)/2, i+w/2]. Only positions where the full
// window fits produce a point. The inputs come gap-stripped from
// Points(), so a window spanning a gap averages non-adjacent
// observations; the trend bridges gaps the same way the data lines do.
func rollingMean(dates []time.Time, values []float64, window int) ([]time.Time, []float64) {
	outDates := make([]time.Time, 0, len(values))
	outValues := make([]float64, 0, len(values))
	half := (window - 1) / 2
	for i := range values {
		lo := i - half
		hi := lo + window
		if lo < 0 || hi > len(values) {
			continue
		}
		sum := 0.0
		for _, v := range values[lo:hi] {
			sum += v
		}
		outDates = append(outDates, dates[i])
		outValues = append(outValues, sum/float64(window))
	}
	return outDates, outValues
}

func blankPanel() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, panelWidth, panelHeight))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}
