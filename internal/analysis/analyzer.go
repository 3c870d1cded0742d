// Package analysis computes descriptive statistics over a loaded table and
// serializes them into the textual summary fed to the narrator. The summary
// is derived from exactly one table snapshot and is read-only afterwards.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/csvdeck/csvdeck/internal/dataset"
)

// topCategories caps how many category values are listed per column.
const topCategories = 5

// Summary is the analyzer output: a flat text block plus a mapping of
// metric name -> computed value. Metric keys follow "<column>.<stat>".
type Summary struct {
	Text    string
	Metrics map[string]float64
}

// Metric returns a named metric and whether it was computed.
func (s *Summary) Metric(name string) (float64, bool) {
	v, ok := s.Metrics[name]
	return v, ok
}

// Analyze computes statistics over every column of the table. The analysis
// does not depend on the question being asked; the question only shapes the
// narration prompt downstream.
func Analyze(t *dataset.Table) *Summary {
	var b strings.Builder
	metrics := make(map[string]float64)

	fmt.Fprintf(&b, "Dataset: %d rows, %d columns.\n", t.RowCount(), len(t.Columns))
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = fmt.Sprintf("%s (%s)", c.Name, c.Type)
	}
	fmt.Fprintf(&b, "Columns: %s.\n", strings.Join(names, ", "))

	metrics["rows"] = float64(t.RowCount())
	metrics["columns"] = float64(len(t.Columns))

	for i := range t.Columns {
		col := &t.Columns[i]
		switch col.Type {
		case dataset.Numeric:
			describeNumeric(&b, metrics, col)
		case dataset.Datetime:
			describeDatetime(&b, col)
		default:
			describeCategorical(&b, metrics, col)
		}
	}

	describeCorrelations(&b, metrics, t)
	return &Summary{Text: b.String(), Metrics: metrics}
}

func describeNumeric(b *strings.Builder, metrics map[string]float64, col *dataset.Column) {
	valid := col.ValidNumbers()
	missing := len(col.Numbers) - len(valid)
	if len(valid) == 0 {
		fmt.Fprintf(b, "%s: numeric, all %d values missing.\n", col.Name, missing)
		return
	}
	mean := Mean(valid)
	min, max := MinMax(valid)
	std := Std(valid)
	fmt.Fprintf(b, "%s: count=%d missing=%d mean=%.2f min=%.2f max=%.2f std=%.2f\n",
		col.Name, len(valid), missing, mean, min, max, std)

	metrics[col.Name+".count"] = float64(len(valid))
	metrics[col.Name+".missing"] = float64(missing)
	metrics[col.Name+".mean"] = mean
	metrics[col.Name+".min"] = min
	metrics[col.Name+".max"] = max
	metrics[col.Name+".std"] = std
}

func describeCategorical(b *strings.Builder, metrics map[string]float64, col *dataset.Column) {
	counts := CategoryCounts(col)
	if len(counts) == 0 {
		fmt.Fprintf(b, "%s: categorical, all values missing.\n", col.Name)
		return
	}
	top := counts
	if len(top) > topCategories {
		top = top[:topCategories]
	}
	parts := make([]string, len(top))
	for i, c := range top {
		parts[i] = fmt.Sprintf("%s (%d)", c.Value, c.Count)
	}
	fmt.Fprintf(b, "%s: %d distinct values; top: %s\n", col.Name, len(counts), strings.Join(parts, ", "))
	metrics[col.Name+".distinct"] = float64(len(counts))
}

func describeDatetime(b *strings.Builder, col *dataset.Column) {
	var earliest, latest int = -1, -1
	for i, ts := range col.Times {
		if ts.IsZero() {
			continue
		}
		if earliest < 0 || ts.Before(col.Times[earliest]) {
			earliest = i
		}
		if latest < 0 || ts.After(col.Times[latest]) {
			latest = i
		}
	}
	if earliest < 0 {
		fmt.Fprintf(b, "%s: datetime, all values missing.\n", col.Name)
		return
	}
	fmt.Fprintf(b, "%s: datetime from %s to %s\n", col.Name,
		col.Times[earliest].Format("2006-01-02"), col.Times[latest].Format("2006-01-02"))
}

func describeCorrelations(b *strings.Builder, metrics map[string]float64, t *dataset.Table) {
	var numeric []*dataset.Column
	for i := range t.Columns {
		if t.Columns[i].Type == dataset.Numeric {
			numeric = append(numeric, &t.Columns[i])
		}
	}
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			x, y := pairedValues(numeric[i], numeric[j])
			if len(x) < 2 {
				continue
			}
			r := Pearson(x, y)
			fmt.Fprintf(b, "Correlation %s vs %s: %.2f\n", numeric[i].Name, numeric[j].Name, r)
			metrics["corr."+numeric[i].Name+"."+numeric[j].Name] = r
		}
	}
}

// pairedValues keeps only rows where both columns have a value.
func pairedValues(a, b *dataset.Column) (x, y []float64) {
	n := len(a.Numbers)
	if len(b.Numbers) < n {
		n = len(b.Numbers)
	}
	for i := 0; i < n; i++ {
		if math.IsNaN(a.Numbers[i]) || math.IsNaN(b.Numbers[i]) {
			continue
		}
		x = append(x, a.Numbers[i])
		y = append(y, b.Numbers[i])
	}
	return x, y
}

// CategoryCount is one category value with its occurrence count.
type CategoryCount struct {
	Value string
	Count int
}

// CategoryCounts tallies the non-missing values of a categorical column,
// ordered by descending count with ties broken alphabetically so output is
// deterministic.
func CategoryCounts(col *dataset.Column) []CategoryCount {
	tally := make(map[string]int)
	for _, v := range col.Raw {
		if v != "" {
			tally[v]++
		}
	}
	out := make([]CategoryCount, 0, len(tally))
	for v, n := range tally {
		out = append(out, CategoryCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
