package scanner

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

// FileRef identifies one discovered frame before any statistic is computed.
type FileRef struct {
	Folder string
	Name   string
}

// Discover finds frames under root whose names contain marker
// (case-insensitive) and carry the given extension (case-insensitive).
//
// Policy: root-level matches win. Recursion into one level of non-hidden
// subdirectories happens if and only if the root yields zero matches;
// non-matching root entries alone never suppress it. A missing root counts
// as zero discovered files, not an error.
func Discover(fsys FS, root, marker, extension string) ([]FileRef, error) {
	entries, err := fsys.List(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var matches []FileRef
	for _, entry := range entries {
		if entry.Dir {
			continue
		}
		if matchesPattern(entry.Name, marker, extension) {
			matches = append(matches, FileRef{Folder: root, Name: entry.Name})
		}
	}
	if len(matches) > 0 {
		return matches, nil
	}

	for _, entry := range entries {
		if !entry.Dir || hidden(entry.Name) {
			continue
		}
		sub := filepath.Join(root, entry.Name)
		subEntries, err := fsys.List(sub)
		if err != nil {
			return nil, err
		}
		for _, se := range subEntries {
			if se.Dir {
				continue
			}
			if matchesPattern(se.Name, marker, extension) {
				matches = append(matches, FileRef{Folder: sub, Name: se.Name})
			}
		}
	}
	return matches, nil
}

func matchesPattern(name, marker, extension string) bool {
	if !strings.Contains(strings.ToUpper(name), strings.ToUpper(marker)) {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), extension)
}
