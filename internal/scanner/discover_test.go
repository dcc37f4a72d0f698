package scanner

import (
	"io/fs"
	"path/filepath"
	"testing"
)

type fakeFS map[string][]Entry

func (f fakeFS) List(dir string) ([]Entry, error) {
	entries, ok := f[dir]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return entries, nil
}

func TestDiscoverRootMatchesWin(t *testing.T) {
	fsys := fakeFS{
		"/site": {
			{Name: "DSCF0001.JPG"},
			{Name: "20240611", Dir: true},
		},
		filepath.Join("/site", "20240611"): {
			{Name: "DSCF0002.JPG"},
		},
	}
	refs, err := Discover(fsys, "/site", "DSCF", ".JPG")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(refs) != 1 || refs[0].Name != "DSCF0001.JPG" || refs[0].Folder != "/site" {
		t.Fatalf("root matches must suppress recursion, got %+v", refs)
	}
}

func TestDiscoverRecursesOnZeroRootMatches(t *testing.T) {
	fsys := fakeFS{
		"/site": {
			{Name: "readme.txt"},
			{Name: "20240611", Dir: true},
			{Name: "20240612", Dir: true},
			{Name: ".thumbnails", Dir: true},
		},
		filepath.Join("/site", "20240611"): {
			{Name: "DSCF0001.JPG"},
			{Name: "notes.txt"},
		},
		filepath.Join("/site", "20240612"): {
			{Name: "DSCF0002.JPG"},
		},
	}
	refs, err := Discover(fsys, "/site", "DSCF", ".JPG")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 matches from subfolders, got %+v", refs)
	}
	if refs[0].Folder != filepath.Join("/site", "20240611") || refs[1].Folder != filepath.Join("/site", "20240612") {
		t.Fatalf("wrong folders: %+v", refs)
	}
}

func TestDiscoverSkipsHiddenDirectories(t *testing.T) {
	fsys := fakeFS{
		"/site": {
			{Name: ".cache", Dir: true},
		},
	}
	// .cache is never listed; a lookup would return fs.ErrNotExist and fail
	// the test if recursion reached it.
	refs, err := Discover(fsys, "/site", "DSCF", ".JPG")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(refs) != 0 {
		t.Fatalf("expected no matches, got %+v", refs)
	}
}

func TestDiscoverCaseInsensitive(t *testing.T) {
	fsys := fakeFS{
		"/site": {
			{Name: "dscf0009.jpg"},
			{Name: "img_dScF_7.Jpg"},
			{Name: "DSCF0010.PNG"},
			{Name: "IMG0011.JPG"},
		},
	}
	refs, err := Discover(fsys, "/site", "DSCF", ".JPG")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 matches, got %+v", refs)
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	refs, err := Discover(fakeFS{}, "/nowhere", "DSCF", ".JPG")
	if err != nil {
		t.Fatalf("missing root must not error: %v", err)
	}
	if refs != nil {
		t.Fatalf("expected no refs, got %+v", refs)
	}
}

func TestDiscoverDoesNotRecurseTwoLevels(t *testing.T) {
	fsys := fakeFS{
		"/site": {
			{Name: "a", Dir: true},
		},
		filepath.Join("/site", "a"): {
			{Name: "b", Dir: true},
		},
	}
	refs, err := Discover(fsys, "/site", "DSCF", ".JPG")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(refs) != 0 {
		t.Fatalf("expected no matches beyond one level, got %+v", refs)
	}
}
