// Package testsupport provides builders shared by package tests: a config
// rooted in temporary directories and a synthetic PNG frame writer. PNG is
// lossless, so tests can assert computed statistics exactly.
package testsupport

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"lampyr/internal/config"
)

// NewConfig returns repository defaults rerooted into temporary directories.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	cfg.Paths.LogDir = filepath.Join(cfg.Paths.DataDir, "logs")
	cfg.Scan.Workers = 2
	return &cfg
}

// Spot is a rectangular patch of uniform brightness painted over the
// background. Size sets both dimensions; W and H override it individually.
type Spot struct {
	X, Y  int
	Size  int
	W, H  int
	Value uint8
}

// Frame describes a synthetic camera frame.
type Frame struct {
	Width, Height int
	// Background is the gray level of every pixel outside spots and banner.
	Background uint8
	// Spots are bright patches, the stand-in for firefly flashes.
	Spots []Spot
	// Gradient overrides the background with a ramp along "x" or "y".
	Gradient string
	// ColorCast tints one pixel so the frame is not grayscale.
	ColorCast bool
	// BannerRows, when positive, fills that many bottom rows with BannerValue.
	BannerRows  int
	BannerValue uint8
}

// WriteFrame renders the frame as a PNG at path, creating parent directories.
func WriteFrame(t *testing.T, path string, f Frame) {
	t.Helper()
	if f.Width == 0 {
		f.Width = 8
	}
	if f.Height == 0 {
		f.Height = 8
	}

	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			v := f.Background
			switch f.Gradient {
			case "x":
				v = uint8(x * 255 / max(f.Width-1, 1))
			case "y":
				v = uint8(y * 255 / max(f.Height-1, 1))
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	for _, s := range f.Spots {
		w, h := s.W, s.H
		if w == 0 {
			w = max(s.Size, 1)
		}
		if h == 0 {
			h = max(s.Size, 1)
		}
		for dy := 0; dy < h; dy++ {
			for dx := 0; dx < w; dx++ {
				img.SetNRGBA(s.X+dx, s.Y+dy, color.NRGBA{R: s.Value, G: s.Value, B: s.Value, A: 255})
			}
		}
	}
	if f.BannerRows > 0 {
		for y := f.Height - f.BannerRows; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: f.BannerValue, G: f.BannerValue, B: f.BannerValue, A: 255})
			}
		}
	}
	if f.ColorCast {
		// Red stays at the background level so red-channel statistics are
		// unaffected; only the green mismatch breaks grayscale.
		img.SetNRGBA(0, 0, color.NRGBA{R: f.Background, G: f.Background + 1, B: f.Background, A: 255})
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create frame directory: %v", err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create frame file: %v", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("encode frame: %v", err)
	}
}
