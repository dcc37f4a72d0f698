package report

import (
	"fmt"
	"path/filepath"

	"lampyr/internal/ingest"
)

// ExifParser fills the timestamp columns from EXIF and leaves the temperature
// columns at zero. Temperature is burned into the banner, not the EXIF block,
// so it needs the external OCR parser.
type ExifParser struct{}

// Parse reads the capture timestamp of the frame at path.
func (ExifParser) Parse(path string) (Row, error) {
	taken, ok := ingest.ExifCaptureTime(path)
	if !ok {
		return Row{}, fmt.Errorf("no EXIF timestamp in %s", path)
	}
	return Row{
		Filename: filepath.Base(path),
		Year:     taken.Year(),
		Month:    int(taken.Month()),
		Day:      taken.Day(),
		Hour:     taken.Hour(),
		Minute:   taken.Minute(),
		Second:   taken.Second(),
	}, nil
}
