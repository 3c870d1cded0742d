// Package charts renders bar and pie chart PNGs from the loaded table. Chart
// selection is fixed: the first numeric column carries the values and the
// first categorical column, when present, provides the grouping. Datasets
// without a numeric column produce no charts and no error.
package charts

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/csvdeck/csvdeck/internal/core/errx"
	"github.com/csvdeck/csvdeck/internal/dataset"
	logx "github.com/csvdeck/csvdeck/pkg/logger"
)

const (
	chartWidth  = 1024
	chartHeight = 640

	maxBars      = 12
	maxPieSlices = 8
	maxLabelLen  = 15
)

// Render writes up to two chart PNGs (bar, then pie) into dir and returns
// their paths in that order. Returns no paths when the table has no numeric
// column; the deck builder leaves the chart slide text-only in that case.
func Render(t *dataset.Table, palette []string, dir string) ([]string, error) {
	num := t.FirstOfType(dataset.Numeric)
	if num == nil {
		logx.Warn().Msg("no numeric column, skipping charts")
		return nil, nil
	}
	cat := t.FirstOfType(dataset.Categorical)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errx.Wrap(errx.KindRender, err, "create chart directory %q", dir)
	}

	values := groupValues(num, cat)
	if len(values) == 0 {
		logx.Warn().Str("column", num.Name).Msg("numeric column has no values, skipping charts")
		return nil, nil
	}

	runID := uuid.New().String()[:8]
	var paths []string

	barPath := filepath.Join(dir, fmt.Sprintf("bar_%s.png", runID))
	if err := renderBar(barPath, num.Name, values, palette); err != nil {
		return nil, err
	}
	paths = append(paths, barPath)

	// pie needs category shares; positive values only
	if cat != nil {
		slices := positiveTop(values, maxPieSlices)
		if len(slices) > 1 {
			piePath := filepath.Join(dir, fmt.Sprintf("pie_%s.png", runID))
			if err := renderPie(piePath, num.Name, slices, palette); err != nil {
				return nil, err
			}
			paths = append(paths, piePath)
		}
	}
	return paths, nil
}

// labeled is one chart bar or slice.
type labeled struct {
	Label string
	Value float64
}

// groupValues aggregates the numeric column per category when a categorical
// column exists, otherwise it takes the first rows labeled by index. Output
// is sorted by descending value and capped at maxBars entries.
func groupValues(num, cat *dataset.Column) []labeled {
	var out []labeled
	if cat != nil {
		sums := make(map[string]float64)
		var order []string
		for i, v := range num.Numbers {
			if math.IsNaN(v) || i >= len(cat.Raw) || cat.Raw[i] == "" {
				continue
			}
			if _, seen := sums[cat.Raw[i]]; !seen {
				order = append(order, cat.Raw[i])
			}
			sums[cat.Raw[i]] += v
		}
		for _, label := range order {
			out = append(out, labeled{Label: label, Value: sums[label]})
		}
	} else {
		for i, v := range num.Numbers {
			if math.IsNaN(v) {
				continue
			}
			out = append(out, labeled{Label: fmt.Sprintf("%d", i+1), Value: v})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if len(out) > maxBars {
		out = out[:maxBars]
	}
	return out
}

func positiveTop(values []labeled, n int) []labeled {
	var out []labeled
	for _, v := range values {
		if v.Value > 0 {
			out = append(out, v)
		}
		if len(out) == n {
			break
		}
	}
	return out
}

func renderBar(path, title string, values []labeled, palette []string) error {
	bars := make([]chart.Value, len(values))
	for i, v := range values {
		bars[i] = chart.Value{
			Label: truncateLabel(v.Label),
			Value: v.Value,
			Style: chart.Style{FillColor: paletteColor(palette, i), StrokeWidth: 0},
		}
	}

	bc := chart.BarChart{
		Title:    title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 48,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		Bars: bars,
	}
	return renderToFile(path, func(f *os.File) error { return bc.Render(chart.PNG, f) })
}

func renderPie(path, title string, values []labeled, palette []string) error {
	slices := make([]chart.Value, len(values))
	for i, v := range values {
		slices[i] = chart.Value{
			Label: truncateLabel(v.Label),
			Value: v.Value,
			Style: chart.Style{FillColor: paletteColor(palette, i)},
		}
	}

	pc := chart.PieChart{
		Title:  title,
		Width:  chartHeight, // square canvas renders cleaner pies
		Height: chartHeight,
		Values: slices,
	}
	return renderToFile(path, func(f *os.File) error { return pc.Render(chart.PNG, f) })
}

func renderToFile(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errx.Wrap(errx.KindRender, err, "create chart file %q", path)
	}
	defer f.Close()
	if err := render(f); err != nil {
		return errx.Wrap(errx.KindRender, err, "render chart %q", path)
	}
	logx.Debug().Str("path", path).Msg("chart rendered")
	return nil
}

// paletteColor converts the template's ARGB palette entry into a drawing
// color, cycling when there are more bars than palette entries.
func paletteColor(palette []string, i int) drawing.Color {
	if len(palette) == 0 {
		return chart.ColorBlue
	}
	argb := palette[i%len(palette)]
	if len(argb) == 8 {
		argb = argb[2:] // drop alpha, drawing expects RGB hex
	}
	return drawing.ColorFromHex(argb)
}

func truncateLabel(label string) string {
	r := []rune(label)
	if len(r) <= maxLabelLen {
		return label
	}
	return string(r[:maxLabelLen-1]) + "…"
}
