package config

import (
	"errors"
	"fmt"
	"strings"
)

var validChannels = map[string]struct{}{
	"red":   {},
	"green": {},
	"blue":  {},
}

// Validate checks threshold sanity and scan settings. A MinMaxBrightness of
// at least 1 guarantees every frame that escapes the null category has a
// nonzero pixel, so the std/mean ratio in the classifier is always defined.
func (c *Config) Validate() error {
	var problems []string

	if _, ok := validChannels[c.Scan.Channel]; !ok {
		problems = append(problems, fmt.Sprintf("scan.channel: unsupported channel %q (red, green, or blue)", c.Scan.Channel))
	}
	if c.Scan.BannerHeight < 0 {
		problems = append(problems, "scan.banner_height: must not be negative")
	}
	if c.Scan.Workers < 0 {
		problems = append(problems, "scan.workers: must not be negative")
	}

	if c.Thresholds.MinMaxBrightness < 1 {
		problems = append(problems, "thresholds.min_max_brightness: must be at least 1 so non-null frames always have nonzero mean brightness")
	}
	if c.Thresholds.MaxAvgBrightness <= 0 {
		problems = append(problems, "thresholds.max_avg_brightness: must be positive")
	}
	if c.Thresholds.MaxStdMeanRatio <= 0 {
		problems = append(problems, "thresholds.max_std_mean_ratio: must be positive")
	}

	if c.Blob.KurtosisMinimum <= 0 {
		problems = append(problems, "blob.kurtosis_minimum: must be positive")
	}
	if c.Blob.MaxBlobCount < 1 {
		problems = append(problems, "blob.max_blob_count: must be at least 1")
	}
	if c.Blob.MaxBlobArea < 1 {
		problems = append(problems, "blob.max_blob_area: must be at least 1")
	}

	if c.Dedup.Distance < 0 {
		problems = append(problems, "dedup.distance: must not be negative")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
