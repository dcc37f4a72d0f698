// Package report builds the per-frame metadata table consumed by downstream
// analysis spreadsheets: one row per frame with its capture timestamp split
// into columns and the banner temperature readings, sorted chronologically
// and serialized as delimited text.
package report

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"sort"
	"strconv"

	"lampyr/internal/logging"
	"lampyr/internal/stats"
)

// Row is one frame's exported metadata.
type Row struct {
	Filename     string
	Year         int
	Month        int
	Day          int
	Hour         int
	Minute       int
	Second       int
	TemperatureC float64
	TemperatureF float64
}

// MetadataParser extracts a Row from one frame on disk. The banner OCR parser
// that reads the burned-in temperature lives outside this module; EXIF-only
// parsing is provided here as the default.
type MetadataParser interface {
	Parse(path string) (Row, error)
}

// Exporter assembles and serializes the metadata table.
type Exporter struct {
	parser MetadataParser
	logger *slog.Logger
}

// New builds an exporter around the given parser.
func New(parser MetadataParser, logger *slog.Logger) *Exporter {
	return &Exporter{
		parser: parser,
		logger: logging.NewComponentLogger(logger, "report"),
	}
}

// Export parses every frame of the table, sorts the rows chronologically, and
// writes them to w. Frames the parser rejects are skipped with a warning.
func (e *Exporter) Export(ctx context.Context, table *stats.Table, w io.Writer) error {
	rows := make([]Row, 0, table.Len())
	for _, rec := range table.Records {
		if err := ctx.Err(); err != nil {
			return err
		}
		row, err := e.parser.Parse(rec.Path())
		if err != nil {
			e.logger.Warn("failed to parse frame metadata, skipping",
				logging.String("path", rec.Path()),
				logging.Error(err),
			)
			continue
		}
		rows = append(rows, row)
	}
	Sort(rows)
	return Write(w, rows)
}

// Sort orders rows ascending by the six timestamp columns. Filename breaks
// ties so the output is fully deterministic.
func Sort(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		ak := [6]int{a.Year, a.Month, a.Day, a.Hour, a.Minute, a.Second}
		bk := [6]int{b.Year, b.Month, b.Day, b.Hour, b.Minute, b.Second}
		for n := 0; n < 6; n++ {
			if ak[n] != bk[n] {
				return ak[n] < bk[n]
			}
		}
		return a.Filename < b.Filename
	})
}

// Write serializes rows as CSV with a header line.
func Write(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Filename", "Year", "Month", "Day", "Hour", "Minute", "Second", "TemperatureC", "TemperatureF"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Filename,
			strconv.Itoa(row.Year),
			strconv.Itoa(row.Month),
			strconv.Itoa(row.Day),
			strconv.Itoa(row.Hour),
			strconv.Itoa(row.Minute),
			strconv.Itoa(row.Second),
			strconv.FormatFloat(row.TemperatureC, 'g', -1, 64),
			strconv.FormatFloat(row.TemperatureF, 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
