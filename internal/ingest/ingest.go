// Package ingest pulls frames off a camera card into a dated working tree.
// Camera DCIM folders roll over at 9999 frames, so filenames repeat across
// deployments; importing prefixes each file with its capture timestamp and
// groups it under a YYYYMMDD folder, which later becomes the date folder the
// organizer preserves.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/bep/imagemeta"

	"lampyr/internal/config"
	"lampyr/internal/fileutil"
	"lampyr/internal/logging"
	"lampyr/internal/services"
)

// mediaDirPattern matches camera media folders under DCIM, like 100_FUJI.
var mediaDirPattern = regexp.MustCompile(`^\d{3}[0-9A-Za-z_]*$`)

// Report aggregates one import run.
type Report struct {
	Imported int
	Skipped  int
	Failed   int
}

// Importer copies camera card contents into the dated source tree.
type Importer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New builds an importer.
func New(cfg *config.Config, logger *slog.Logger) *Importer {
	return &Importer{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "ingest"),
	}
}

// Import walks the card at src and places every matching frame under
// dest/YYYYMMDD/YYYYMMDDThhmmss_originalname. src may be the card root (the
// DCIM folder is found beneath it) or a DCIM directory itself. When symlink
// is true the destination entries link back to the card instead of copying,
// useful for a dry triage pass before committing disk space.
func (im *Importer) Import(ctx context.Context, src, dest string, symlink bool) (*Report, error) {
	root := src
	if info, err := os.Stat(filepath.Join(src, "DCIM")); err == nil && info.IsDir() {
		root = filepath.Join(src, "DCIM")
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "importing", "list card", "failed to list card directory", err)
	}

	report := &Report{}
	for _, entry := range entries {
		if !entry.IsDir() || !mediaDirPattern.MatchString(entry.Name()) {
			continue
		}
		mediaDir := filepath.Join(root, entry.Name())
		files, err := os.ReadDir(mediaDir)
		if err != nil {
			im.logger.Warn("failed to list media folder, skipping",
				logging.String("dir", mediaDir),
				logging.Error(err),
			)
			report.Failed++
			continue
		}
		for _, file := range files {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			if file.IsDir() || !strings.EqualFold(filepath.Ext(file.Name()), im.cfg.Scan.Extension) {
				continue
			}
			im.place(report, filepath.Join(mediaDir, file.Name()), dest, symlink)
		}
	}

	im.logger.Info("import finished",
		logging.String("src", src),
		logging.String("dest", dest),
		logging.Int("imported", report.Imported),
		logging.Int("skipped", report.Skipped),
		logging.Int("failed", report.Failed),
	)
	return report, nil
}

func (im *Importer) place(report *Report, src, dest string, symlink bool) {
	taken := im.captureTime(src)
	destDir := filepath.Join(dest, taken.Format("20060102"))
	destPath := filepath.Join(destDir, fmt.Sprintf("%s_%s", taken.Format("20060102T150405"), filepath.Base(src)))

	if fileutil.Exists(destPath) {
		report.Skipped++
		return
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		im.warn(src, destPath, err)
		report.Failed++
		return
	}

	var err error
	if symlink {
		var abs string
		if abs, err = filepath.Abs(src); err == nil {
			err = os.Symlink(abs, destPath)
		}
	} else {
		err = fileutil.CopyFile(src, destPath)
	}
	if err != nil {
		im.warn(src, destPath, err)
		report.Failed++
		return
	}
	report.Imported++
}

func (im *Importer) warn(src, dest string, err error) {
	im.logger.Warn("import failed, continuing batch",
		logging.String("source", src),
		logging.String("dest", dest),
		logging.Error(err),
	)
}

// captureTime prefers the EXIF DateTimeOriginal tag and falls back to the
// file's modification time. Trail cameras keep their clock in local time;
// no zone conversion is applied.
func (im *Importer) captureTime(path string) time.Time {
	if taken, ok := ExifCaptureTime(path); ok {
		return taken
	}
	info, err := os.Stat(path)
	if err != nil {
		return time.Now()
	}
	return info.ModTime()
}

// ExifCaptureTime reads the EXIF DateTimeOriginal tag. The boolean is false
// when the file has no readable EXIF timestamp.
func ExifCaptureTime(path string) (time.Time, bool) {
	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer file.Close()

	var taken time.Time
	err = imagemeta.Decode(imagemeta.Options{
		R:       file,
		Sources: imagemeta.EXIF,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			return ti.Tag == "DateTimeOriginal"
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			switch v := ti.Value.(type) {
			case time.Time:
				taken = v
			case string:
				if parsed, perr := time.ParseInLocation("2006:01:02 15:04:05", v, time.Local); perr == nil {
					taken = parsed
				}
			}
			return nil
		},
	})
	if err != nil || taken.IsZero() {
		return time.Time{}, false
	}
	return taken, true
}
