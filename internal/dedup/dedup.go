// Package dedup reports near-duplicate frames by perceptual hashing. Cameras
// on interval capture produce long runs of visually identical night frames;
// the report lets an operator prune them before archiving.
package dedup

import (
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/corona10/goimagehash"

	"lampyr/internal/config"
	"lampyr/internal/logging"
	"lampyr/internal/scanner"
	"lampyr/internal/services"
)

// Pair names two frames whose difference hashes sit within the configured
// Hamming distance.
type Pair struct {
	A        string
	B        string
	Distance int
}

// Finder scans a directory for near-duplicate frames.
type Finder struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New builds a finder.
func New(cfg *config.Config, logger *slog.Logger) *Finder {
	return &Finder{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "dedup"),
	}
}

// Find hashes every matching frame under dir and reports pairs within the
// configured distance. The banner strip is excluded before hashing; its
// burned-in timestamp differs on otherwise identical frames. Frames that fail
// to decode or hash are skipped with a warning.
func (f *Finder) Find(ctx context.Context, dir string) ([]Pair, error) {
	refs, err := scanner.Discover(scanner.OSFS{}, dir, f.cfg.Scan.Marker, f.cfg.Scan.Extension)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "dedup", "discover frames", "failed to list directory", err)
	}

	type hashed struct {
		path string
		hash *goimagehash.ImageHash
	}
	var seen []hashed
	var pairs []Pair
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return pairs, err
		}
		path := filepath.Join(ref.Folder, ref.Name)
		hash, err := f.hashFrame(path)
		if err != nil {
			f.logger.Warn("failed to hash frame, skipping",
				logging.String("path", path),
				logging.Error(err),
			)
			continue
		}
		for _, prior := range seen {
			dist, err := hash.Distance(prior.hash)
			if err == nil && dist <= f.cfg.Dedup.Distance {
				pairs = append(pairs, Pair{A: prior.path, B: path, Distance: dist})
			}
		}
		seen = append(seen, hashed{path: path, hash: hash})
	}

	f.logger.Info("duplicate search finished",
		logging.Int("frames", len(seen)),
		logging.Int("pairs", len(pairs)),
	)
	return pairs, nil
}

func (f *Finder) hashFrame(path string) (*goimagehash.ImageHash, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return goimagehash.DifferenceHash(cropBanner(img, f.cfg.Scan.BannerHeight))
}

func cropBanner(img image.Image, bannerHeight int) image.Image {
	bounds := img.Bounds()
	if bannerHeight <= 0 || bounds.Dy() <= bannerHeight {
		return img
	}
	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	sub, ok := img.(subImager)
	if !ok {
		return img
	}
	cropped := bounds
	cropped.Max.Y -= bannerHeight
	return sub.SubImage(cropped)
}
