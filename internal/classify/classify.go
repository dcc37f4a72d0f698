// Package classify sorts frame statistics into triage categories. The rules
// are pure threshold comparisons over the stats table; nothing here touches
// pixels or disk, so classification over a scanned root is instant.
package classify

import (
	"lampyr/internal/config"
	"lampyr/internal/stats"
)

// Category is the triage bucket a frame lands in.
type Category string

const (
	// CategoryNull holds frames too dim to contain anything.
	CategoryNull Category = "null"
	// CategoryDays holds daylight color frames.
	CategoryDays Category = "days"
	// CategoryDark holds uniform night frames, the firefly hunting ground.
	CategoryDark Category = "dark"
	// CategoryDusk holds grayscale frames with too much structure for dark.
	CategoryDusk Category = "dusk"
)

// Categories lists every bucket in precedence order.
func Categories() []Category {
	return []Category{CategoryNull, CategoryDays, CategoryDark, CategoryDusk}
}

// Classifier applies the configured thresholds. It is stateless and safe for
// concurrent use.
type Classifier struct {
	thresholds config.Thresholds
}

// New builds a classifier over the given thresholds.
func New(thresholds config.Thresholds) *Classifier {
	return &Classifier{thresholds: thresholds}
}

// Classify assigns one record its category. Rules apply in precedence order:
// a frame whose brightest pixel stays below the floor is null regardless of
// anything else, then color frames are days, then uniformly dim grayscale
// frames are dark, and whatever remains is dusk.
func (c *Classifier) Classify(rec stats.ImageRecord) Category {
	if rec.Max < c.thresholds.MinMaxBrightness {
		return CategoryNull
	}
	if !rec.Grayscale {
		return CategoryDays
	}
	ratio := 0.0
	if rec.Mean > 0 {
		ratio = rec.Std / rec.Mean
	}
	if rec.Mean < c.thresholds.MaxAvgBrightness && ratio < c.thresholds.MaxStdMeanRatio {
		return CategoryDark
	}
	return CategoryDusk
}

// Assign classifies every record of a table, index-aligned with its records.
func (c *Classifier) Assign(table *stats.Table) []Category {
	out := make([]Category, table.Len())
	for i, rec := range table.Records {
		out[i] = c.Classify(rec)
	}
	return out
}

// Tally counts records per category.
func Tally(assignments []Category) map[Category]int {
	counts := make(map[Category]int, 4)
	for _, cat := range assignments {
		counts[cat]++
	}
	return counts
}
