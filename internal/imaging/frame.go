package imaging

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Channel selects the color channel statistics are computed on.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// ParseChannel maps a configuration string to a Channel.
func ParseChannel(name string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "red":
		return Red, nil
	case "green":
		return Green, nil
	case "blue":
		return Blue, nil
	default:
		return Red, fmt.Errorf("unknown channel %q", name)
	}
}

// Plane is one 8-bit color channel of a banner-cropped frame.
type Plane struct {
	Width  int
	Height int
	Pix    []uint8
}

// At returns the value at (x, y). No bounds checking.
func (p *Plane) At(x, y int) uint8 {
	return p.Pix[y*p.Width+x]
}

// Frame is the decoded per-image payload the scanner works on: the selected
// channel plane plus the grayscale determination.
type Frame struct {
	Plane *Plane
	// Grayscale is true when the red and green channels are pixel-wise
	// identical across the cropped frame. Night exposures on the camera are
	// infrared and perfectly gray; any daylight frame has color.
	Grayscale bool
}

// LoadFrame decodes the image at path and extracts the selected channel with
// the bottom banner rows removed. Frames shorter than the banner are used
// whole. Symlinked paths are followed.
func LoadFrame(path string, channel Channel, bannerHeight int) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %w", path, err)
	}
	return ExtractFrame(img, channel, bannerHeight), nil
}

// ExtractFrame crops the banner and pulls out the selected channel plane and
// the grayscale flag in a single pass over the pixels.
func ExtractFrame(img image.Image, channel Channel, bannerHeight int) *Frame {
	bounds := cropBanner(img.Bounds(), bannerHeight)
	width, height := bounds.Dx(), bounds.Dy()

	plane := &Plane{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
	grayscale := true

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r, g, b := uint8(r16>>8), uint8(g16>>8), uint8(b16>>8)
			if r != g {
				grayscale = false
			}
			switch channel {
			case Green:
				plane.Pix[i] = g
			case Blue:
				plane.Pix[i] = b
			default:
				plane.Pix[i] = r
			}
			i++
		}
	}

	return &Frame{Plane: plane, Grayscale: grayscale}
}

func cropBanner(bounds image.Rectangle, bannerHeight int) image.Rectangle {
	if bannerHeight <= 0 || bounds.Dy() <= bannerHeight {
		return bounds
	}
	cropped := bounds
	cropped.Max.Y -= bannerHeight
	return cropped
}
