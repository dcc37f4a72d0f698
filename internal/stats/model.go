package stats

import "path/filepath"

// ImageRecord holds the per-frame statistics the classifier and the blob
// analyzer consume. A record whose statistics are all zero marks a frame that
// failed to load; it keeps its slot so the index space stays stable.
type ImageRecord struct {
	// Folder is the directory the frame was discovered in. Its last path
	// segment doubles as the date folder when organizing.
	Folder string
	// Name is the bare filename.
	Name string
	// Grayscale is true when red and green are pixel-wise identical over the
	// banner-cropped frame.
	Grayscale bool
	// Mean, Std, and Max are population statistics of the selected channel.
	Mean float64
	Std  float64
	Max  float64
	// Kurtosis is the fourth standardized moment, present only when the scan
	// ran the extended pass.
	Kurtosis *float64
}

// Path returns the full source path of the frame.
func (r ImageRecord) Path() string {
	return filepath.Join(r.Folder, r.Name)
}

// Table is the ordered statistics table produced by one scan. The index of a
// record is its discovery order; adjacency logic in the blob analyzer depends
// on it, so a Table is never mutated after the scan that built it.
type Table struct {
	Root    string
	Records []ImageRecord
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// HasKurtosis reports whether every record carries a kurtosis value. The blob
// analyzer refuses tables that were scanned without the extended pass.
func (t *Table) HasKurtosis() bool {
	if t.Len() == 0 {
		return false
	}
	for _, rec := range t.Records {
		if rec.Kurtosis == nil {
			return false
		}
	}
	return true
}
