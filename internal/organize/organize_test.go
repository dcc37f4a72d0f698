package organize_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lampyr/internal/classify"
	"lampyr/internal/logging"
	"lampyr/internal/organize"
	"lampyr/internal/stats"
	"lampyr/internal/testsupport"
)

func writeSource(t *testing.T, dir, name, content string) stats.ImageRecord {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return stats.ImageRecord{Folder: dir, Name: name}
}

func TestOrganizeLayout(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := t.TempDir()
	dest := t.TempDir()

	table := &stats.Table{Records: []stats.ImageRecord{
		writeSource(t, filepath.Join(src, "20240611"), "DSCF0001.JPG", "a"),
		writeSource(t, filepath.Join(src, "20240611"), "DSCF0002.JPG", "b"),
		writeSource(t, filepath.Join(src, "20240612"), "DSCF0003.JPG", "c"),
	}}
	assignments := []classify.Category{
		classify.CategoryDark,
		classify.CategoryNull,
		classify.CategoryDark,
	}

	report, err := organize.New(cfg, logging.NewNop()).Organize(context.Background(), table, assignments, dest)
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	if report.Copied != 3 || report.Failed != 0 {
		t.Fatalf("report: %+v", report)
	}

	for _, want := range []string{
		filepath.Join(dest, "dark", "20240611", "DSCF0001.JPG"),
		filepath.Join(dest, "null", "20240611", "DSCF0002.JPG"),
		filepath.Join(dest, "dark", "20240612", "DSCF0003.JPG"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Errorf("missing destination file %s: %v", want, err)
		}
	}

	log, err := os.ReadFile(filepath.Join(dest, organize.ThresholdLogName))
	if err != nil {
		t.Fatalf("threshold log: %v", err)
	}
	want := "min_max_brightness = 50\nmax_avg_brightness = 8\nmax_s/m_threshold = 0.25\nkurtosis_minimum = 12\nmax_blob_count = 4\nmax_blob_area = 300\n"
	if string(log) != want {
		t.Fatalf("threshold log mismatch:\n%s", log)
	}
}

func TestOrganizeIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := t.TempDir()
	dest := t.TempDir()

	table := &stats.Table{Records: []stats.ImageRecord{
		writeSource(t, filepath.Join(src, "20240611"), "DSCF0001.JPG", "a"),
	}}
	assignments := []classify.Category{classify.CategoryDusk}

	org := organize.New(cfg, logging.NewNop())
	if _, err := org.Organize(context.Background(), table, assignments, dest); err != nil {
		t.Fatalf("first Organize: %v", err)
	}

	target := filepath.Join(dest, "dusk", "20240611", "DSCF0001.JPG")
	before, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stat target: %v", err)
	}

	report, err := org.Organize(context.Background(), table, assignments, dest)
	if err != nil {
		t.Fatalf("second Organize: %v", err)
	}
	if report.Copied != 0 || report.Skipped != 1 {
		t.Fatalf("rerun must skip, report: %+v", report)
	}
	after, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stat target: %v", err)
	}
	if !after.ModTime().Equal(before.ModTime()) || after.Size() != before.Size() {
		t.Fatal("rerun rewrote an existing destination file")
	}
}

func TestOrganizePreservesSymlinks(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := filepath.Join(t.TempDir(), "20240611")
	dest := t.TempDir()

	real := writeSource(t, src, "DSCF0001.JPG", "img")
	linkName := "DSCF0002.JPG"
	if err := os.Symlink(filepath.Join(src, real.Name), filepath.Join(src, linkName)); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	table := &stats.Table{Records: []stats.ImageRecord{
		real,
		{Folder: src, Name: linkName},
	}}
	assignments := []classify.Category{classify.CategoryDark, classify.CategoryDark}

	if _, err := organize.New(cfg, logging.NewNop()).Organize(context.Background(), table, assignments, dest); err != nil {
		t.Fatalf("Organize: %v", err)
	}
	info, err := os.Lstat(filepath.Join(dest, "dark", "20240611", linkName))
	if err != nil {
		t.Fatalf("lstat copied link: %v", err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Fatal("symlink identity lost in destination")
	}
}

func TestOrganizeContinuesPastFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := filepath.Join(t.TempDir(), "20240611")
	dest := t.TempDir()

	good := writeSource(t, src, "DSCF0002.JPG", "ok")
	table := &stats.Table{Records: []stats.ImageRecord{
		{Folder: src, Name: "DSCF0001.JPG"}, // never written
		good,
	}}
	assignments := []classify.Category{classify.CategoryDark, classify.CategoryDark}

	report, err := organize.New(cfg, logging.NewNop()).Organize(context.Background(), table, assignments, dest)
	if err != nil {
		t.Fatalf("failures must not abort the batch: %v", err)
	}
	if report.Failed != 1 || report.Copied != 1 {
		t.Fatalf("report: %+v", report)
	}
	if _, err := os.Stat(filepath.Join(dest, "dark", "20240611", "DSCF0002.JPG")); err != nil {
		t.Fatalf("good file missing after partial failure: %v", err)
	}
	if report.Results[0].Outcome != organize.Failed || report.Results[0].Message == "" {
		t.Fatalf("failure result lacks detail: %+v", report.Results[0])
	}
}

func TestOrganizeCandidates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := filepath.Join(t.TempDir(), "20240611")
	dest := t.TempDir()

	table := &stats.Table{Records: []stats.ImageRecord{
		writeSource(t, src, "DSCF0001.JPG", "a"),
		writeSource(t, src, "DSCF0002.JPG", "b"),
		writeSource(t, src, "DSCF0003.JPG", "c"),
	}}

	report, err := organize.New(cfg, logging.NewNop()).OrganizeCandidates(context.Background(), table, []int{1}, dest)
	if err != nil {
		t.Fatalf("OrganizeCandidates: %v", err)
	}
	if report.Copied != 1 {
		t.Fatalf("report: %+v", report)
	}
	if _, err := os.Stat(filepath.Join(dest, "flash", "20240611", "DSCF0002.JPG")); err != nil {
		t.Fatalf("candidate missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, organize.ThresholdLogName)); err != nil {
		t.Fatalf("threshold log missing: %v", err)
	}
}
