// Package blob refines the stats table into flash candidates. Classification
// by thresholds alone cannot tell a firefly flash from moonlit haze; this pass
// looks for isolated kurtosis peaks and then verifies, at pixel level, that
// the bright region is a small compact spot rather than diffuse glare.
package blob

import (
	"context"
	"log/slog"

	"lampyr/internal/config"
	"lampyr/internal/imaging"
	"lampyr/internal/logging"
	"lampyr/internal/services"
	"lampyr/internal/stats"
)

// Candidate is a frame that survived the refinement pass.
type Candidate struct {
	// Index is the frame's position in the stats table.
	Index int
	// BlobCount is the number of connected above-floor components.
	BlobCount int
	// LargestArea is the pixel area of the biggest component.
	LargestArea int
}

// Analyzer runs the refinement pass. It reloads surviving frames from disk,
// so the source tree must still be present.
type Analyzer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New builds an analyzer.
func New(cfg *config.Config, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "blob"),
	}
}

// Refine reduces the table to flash candidates. The table must carry kurtosis
// on every record; tables from a plain scan are rejected.
//
// A frame becomes a candidate when all of the following hold:
//  1. its kurtosis exceeds the configured minimum,
//  2. neither index neighbor is also flagged (isolated peak),
//  3. its max exceeds the brightness floor and its mean stays below the
//     ceiling,
//  4. the binary mask thresholded at the floor decomposes into fewer than
//     the component bound, with the largest component below the area bound.
//
// Frames in flagged runs longer than one are never candidates: multi-frame
// events are deferred for manual review, not classified here.
func (a *Analyzer) Refine(ctx context.Context, table *stats.Table) ([]Candidate, error) {
	if table.Len() == 0 {
		return nil, nil
	}
	if !table.HasKurtosis() {
		return nil, services.Wrap(services.ErrValidation, "refining", "check table",
			"stats table has no kurtosis; rescan with the extended pass", nil)
	}
	channel, err := imaging.ParseChannel(a.cfg.Scan.Channel)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "refining", "parse channel", "invalid scan channel", err)
	}

	flagged := make([]bool, table.Len())
	for i, rec := range table.Records {
		flagged[i] = *rec.Kurtosis > a.cfg.Blob.KurtosisMinimum
	}

	var candidates []Candidate
	for i, rec := range table.Records {
		if err := ctx.Err(); err != nil {
			return candidates, err
		}
		if !isolatedPeak(flagged, i) {
			continue
		}
		if rec.Max <= a.cfg.Thresholds.MinMaxBrightness || rec.Mean >= a.cfg.Thresholds.MaxAvgBrightness {
			continue
		}

		frame, err := imaging.LoadFrame(rec.Path(), channel, a.cfg.Scan.BannerHeight)
		if err != nil {
			a.logger.Warn("failed to reload candidate frame",
				logging.String("path", rec.Path()),
				logging.Error(err),
			)
			continue
		}

		areas := frame.Plane.Threshold(a.cfg.Thresholds.MinMaxBrightness).Components()
		largest := 0
		for _, area := range areas {
			if area > largest {
				largest = area
			}
		}
		if len(areas) >= a.cfg.Blob.MaxBlobCount || largest >= a.cfg.Blob.MaxBlobArea {
			a.logger.Debug("candidate rejected by blob shape",
				logging.String("path", rec.Path()),
				logging.Int("blobs", len(areas)),
				logging.Int("largest_area", largest),
			)
			continue
		}

		candidates = append(candidates, Candidate{
			Index:       i,
			BlobCount:   len(areas),
			LargestArea: largest,
		})
	}

	a.logger.Info("refinement finished",
		logging.Int("frames", table.Len()),
		logging.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

func isolatedPeak(flagged []bool, i int) bool {
	if !flagged[i] {
		return false
	}
	if i > 0 && flagged[i-1] {
		return false
	}
	if i < len(flagged)-1 && flagged[i+1] {
		return false
	}
	return true
}
