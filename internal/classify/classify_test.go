package classify_test

import (
	"testing"

	"lampyr/internal/classify"
	"lampyr/internal/config"
	"lampyr/internal/stats"
)

func defaultClassifier() *classify.Classifier {
	return classify.New(config.Default().Thresholds)
}

func TestClassifyPrecedence(t *testing.T) {
	c := defaultClassifier()
	cases := []struct {
		name string
		rec  stats.ImageRecord
		want classify.Category
	}{
		{"dim frame is null", stats.ImageRecord{Max: 30, Grayscale: true}, classify.CategoryNull},
		{"dim color frame still null", stats.ImageRecord{Max: 49.9, Mean: 20, Std: 10}, classify.CategoryNull},
		{"color frame is days", stats.ImageRecord{Max: 120, Mean: 60, Std: 40}, classify.CategoryDays},
		{"uniform dim grayscale is dark", stats.ImageRecord{Max: 80, Grayscale: true, Mean: 5, Std: 1}, classify.CategoryDark},
		{"structured grayscale is dusk", stats.ImageRecord{Max: 80, Grayscale: true, Mean: 9, Std: 3}, classify.CategoryDusk},
		{"bright grayscale is dusk", stats.ImageRecord{Max: 200, Grayscale: true, Mean: 40, Std: 2}, classify.CategoryDusk},
		{"high ratio grayscale is dusk", stats.ImageRecord{Max: 80, Grayscale: true, Mean: 4, Std: 2}, classify.CategoryDusk},
		{"failed frame is null", stats.ImageRecord{}, classify.CategoryNull},
	}
	for _, tc := range cases {
		if got := c.Classify(tc.rec); got != tc.want {
			t.Errorf("%s: got %s, want %s (rec %+v)", tc.name, got, tc.want, tc.rec)
		}
	}
}

func TestClassifyBoundariesAreStrict(t *testing.T) {
	c := defaultClassifier()
	// Max exactly at the floor clears the null rule.
	if got := c.Classify(stats.ImageRecord{Max: 50}); got != classify.CategoryDays {
		t.Fatalf("max at floor: got %s", got)
	}
	// Mean exactly at the ceiling fails the dark rule.
	if got := c.Classify(stats.ImageRecord{Max: 80, Grayscale: true, Mean: 8, Std: 0}); got != classify.CategoryDusk {
		t.Fatalf("mean at ceiling: got %s", got)
	}
	// Ratio exactly at the ceiling fails the dark rule.
	if got := c.Classify(stats.ImageRecord{Max: 80, Grayscale: true, Mean: 4, Std: 1}); got != classify.CategoryDusk {
		t.Fatalf("ratio at ceiling: got %s", got)
	}
}

func TestAssignCoversEveryRecordExactlyOnce(t *testing.T) {
	c := defaultClassifier()
	table := &stats.Table{Records: []stats.ImageRecord{
		{Max: 30},
		{Max: 120, Mean: 60, Std: 40},
		{Max: 80, Grayscale: true, Mean: 5, Std: 1},
		{Max: 80, Grayscale: true, Mean: 9, Std: 3},
	}}
	assignments := c.Assign(table)
	if len(assignments) != table.Len() {
		t.Fatalf("assignment length %d, want %d", len(assignments), table.Len())
	}
	want := []classify.Category{
		classify.CategoryNull,
		classify.CategoryDays,
		classify.CategoryDark,
		classify.CategoryDusk,
	}
	for i, cat := range assignments {
		if cat != want[i] {
			t.Errorf("record %d: got %s, want %s", i, cat, want[i])
		}
	}

	counts := classify.Tally(assignments)
	total := 0
	for _, n := range counts {
		total += n
	}
	if total != table.Len() {
		t.Fatalf("tally covers %d records, want %d", total, table.Len())
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := defaultClassifier()
	rec := stats.ImageRecord{Max: 80, Grayscale: true, Mean: 5, Std: 1}
	first := c.Classify(rec)
	for i := 0; i < 10; i++ {
		if got := c.Classify(rec); got != first {
			t.Fatalf("classification changed between calls: %s then %s", first, got)
		}
	}
}
