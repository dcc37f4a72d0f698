package scanner

import (
	"os"
	"strings"
)

// Entry is one directory entry as seen by the discovery logic.
type Entry struct {
	Name string
	Dir  bool
}

// FS is the narrow filesystem capability discovery runs against. Keeping it
// this small lets the discovery policy be tested without touching disk.
type FS interface {
	List(dir string) ([]Entry, error)
}

// OSFS lists real directories in lexical order.
type OSFS struct{}

func (OSFS) List(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entries = append(entries, Entry{Name: de.Name(), Dir: de.IsDir()})
	}
	return entries, nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
