package ingest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lampyr/internal/ingest"
	"lampyr/internal/logging"
	"lampyr/internal/testsupport"
)

func writeCardFrame(t *testing.T, path string, taken time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("frame"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Chtimes(path, taken, taken); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
}

func TestImportLayout(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	card := t.TempDir()
	dest := t.TempDir()

	night1 := time.Date(2024, 6, 11, 22, 30, 5, 0, time.Local)
	night2 := time.Date(2024, 6, 12, 1, 15, 0, 0, time.Local)
	writeCardFrame(t, filepath.Join(card, "DCIM", "100_FUJI", "DSCF0001.JPG"), night1)
	writeCardFrame(t, filepath.Join(card, "DCIM", "101_FUJI", "DSCF0001.JPG"), night2)
	// Non-media folders and non-matching files are ignored.
	writeCardFrame(t, filepath.Join(card, "DCIM", "MISC", "DSCF0009.JPG"), night1)
	writeCardFrame(t, filepath.Join(card, "DCIM", "100_FUJI", "DSCF0001.RAF"), night1)

	report, err := ingest.New(cfg, logging.NewNop()).Import(context.Background(), card, dest, false)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.Imported != 2 || report.Failed != 0 {
		t.Fatalf("report: %+v", report)
	}
	for _, want := range []string{
		filepath.Join(dest, "20240611", "20240611T223005_DSCF0001.JPG"),
		filepath.Join(dest, "20240612", "20240612T011500_DSCF0001.JPG"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Errorf("missing import %s: %v", want, err)
		}
	}
}

func TestImportIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	card := t.TempDir()
	dest := t.TempDir()
	taken := time.Date(2024, 6, 11, 22, 0, 0, 0, time.Local)
	writeCardFrame(t, filepath.Join(card, "100_FUJI", "DSCF0001.JPG"), taken)

	im := ingest.New(cfg, logging.NewNop())
	if _, err := im.Import(context.Background(), card, dest, false); err != nil {
		t.Fatalf("first Import: %v", err)
	}
	report, err := im.Import(context.Background(), card, dest, false)
	if err != nil {
		t.Fatalf("second Import: %v", err)
	}
	if report.Imported != 0 || report.Skipped != 1 {
		t.Fatalf("rerun must skip, report: %+v", report)
	}
}

func TestImportSymlinkMode(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	card := t.TempDir()
	dest := t.TempDir()
	taken := time.Date(2024, 6, 11, 22, 0, 0, 0, time.Local)
	src := filepath.Join(card, "100_FUJI", "DSCF0001.JPG")
	writeCardFrame(t, src, taken)

	if _, err := ingest.New(cfg, logging.NewNop()).Import(context.Background(), card, dest, true); err != nil {
		t.Fatalf("Import: %v", err)
	}
	linked := filepath.Join(dest, "20240611", "20240611T220000_DSCF0001.JPG")
	info, err := os.Lstat(linked)
	if err != nil {
		t.Fatalf("lstat: %v", err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Fatal("expected a symlink in symlink mode")
	}
	target, err := os.Readlink(linked)
	if err != nil {
		t.Fatalf("readlink: %v", err)
	}
	if !filepath.IsAbs(target) {
		t.Fatalf("link target must be absolute, got %q", target)
	}
}
