package analysis

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/csvdeck/csvdeck/internal/dataset"
)

func mustRead(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	table, err := dataset.Read(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestAnalyze_NumericMeanInSummary(t *testing.T) {
	table := mustRead(t, "region,sales\nnorth,100\nsouth,250\nwest,30\n")
	s := Analyze(table)

	wantMean := (100.0 + 250.0 + 30.0) / 3.0
	if got, ok := s.Metric("sales.mean"); !ok || got != wantMean {
		t.Errorf("sales.mean = %v (ok=%v), want %v", got, ok, wantMean)
	}
	// the textual summary carries the mean to two decimal places
	if want := fmt.Sprintf("mean=%.2f", wantMean); !strings.Contains(s.Text, want) {
		t.Errorf("summary text missing %q:\n%s", want, s.Text)
	}
}

func TestAnalyze_MetricsAndShape(t *testing.T) {
	table := mustRead(t, "region,sales\nnorth,10\nnorth,20\nsouth,30\n")
	s := Analyze(table)

	checks := map[string]float64{
		"rows":            3,
		"columns":         2,
		"sales.count":     3,
		"sales.missing":   0,
		"sales.min":       10,
		"sales.max":       30,
		"region.distinct": 2,
	}
	for name, want := range checks {
		if got, ok := s.Metric(name); !ok || got != want {
			t.Errorf("metric %s = %v (ok=%v), want %v", name, got, ok, want)
		}
	}
	if !strings.Contains(s.Text, "Dataset: 3 rows, 2 columns.") {
		t.Errorf("summary missing dataset header:\n%s", s.Text)
	}
	if !strings.Contains(s.Text, "north (2)") {
		t.Errorf("summary missing top category:\n%s", s.Text)
	}
}

func TestAnalyze_MissingValuesCounted(t *testing.T) {
	table := mustRead(t, "a,b\n1,x\noops,y\n3,z\n")
	s := Analyze(table)

	if got, _ := s.Metric("a.count"); got != 2 {
		t.Errorf("a.count = %v, want 2", got)
	}
	if got, _ := s.Metric("a.missing"); got != 1 {
		t.Errorf("a.missing = %v, want 1", got)
	}
}

func TestAnalyze_Correlation(t *testing.T) {
	// y = 2x, perfectly correlated
	table := mustRead(t, "x,y\n1,2\n2,4\n3,6\n")
	s := Analyze(table)

	got, ok := s.Metric("corr.x.y")
	if !ok {
		t.Fatalf("correlation metric missing; text:\n%s", s.Text)
	}
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("corr.x.y = %v, want 1.0", got)
	}
	if !strings.Contains(s.Text, "Correlation x vs y: 1.00") {
		t.Errorf("summary missing correlation line:\n%s", s.Text)
	}
}

func TestAnalyze_QuestionIndependent(t *testing.T) {
	// analysis has no question input at all; two calls agree byte for byte
	table := mustRead(t, "region,sales\nnorth,100\nsouth,250\nwest,30\n")
	a, b := Analyze(table), Analyze(table)
	if a.Text != b.Text {
		t.Error("summary text not deterministic")
	}
}

func TestCategoryCounts_Deterministic(t *testing.T) {
	table := mustRead(t, "c\nb\na\nb\na\nc\n")
	col := table.Column("c")
	counts := CategoryCounts(col)

	// ties break alphabetically
	want := []CategoryCount{{"a", 2}, {"b", 2}, {"c", 1}}
	if len(counts) != len(want) {
		t.Fatalf("counts = %v, want %v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %v, want %v", i, counts[i], want[i])
		}
	}
}

func TestPearson(t *testing.T) {
	if got := Pearson([]float64{1, 2, 3}, []float64{3, 2, 1}); math.Abs(got+1) > 1e-9 {
		t.Errorf("inverse correlation = %v, want -1", got)
	}
	if got := Pearson([]float64{1, 1, 1}, []float64{1, 2, 3}); got != 0 {
		t.Errorf("no-spread correlation = %v, want 0", got)
	}
	if got := Pearson(nil, nil); got != 0 {
		t.Errorf("empty correlation = %v, want 0", got)
	}
}

func TestStats(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := Mean(x); got != 5 {
		t.Errorf("Mean = %v, want 5", got)
	}
	if got := Std(x); got != 2 {
		t.Errorf("Std = %v, want 2", got)
	}
	min, max := MinMax(x)
	if min != 2 || max != 9 {
		t.Errorf("MinMax = %v,%v, want 2,9", min, max)
	}
}
