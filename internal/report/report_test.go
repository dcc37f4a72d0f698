package report_test

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"lampyr/internal/logging"
	"lampyr/internal/report"
	"lampyr/internal/stats"
)

type fakeParser struct {
	rows map[string]report.Row
}

func (p fakeParser) Parse(path string) (report.Row, error) {
	row, ok := p.rows[filepath.Base(path)]
	if !ok {
		return report.Row{}, fmt.Errorf("no metadata for %s", path)
	}
	return row, nil
}

func TestSortOrdersByTimestampColumns(t *testing.T) {
	rows := []report.Row{
		{Filename: "c", Year: 2024, Month: 6, Day: 12, Hour: 1},
		{Filename: "a", Year: 2024, Month: 6, Day: 11, Hour: 23, Minute: 59},
		{Filename: "b", Year: 2024, Month: 6, Day: 11, Hour: 23, Minute: 59, Second: 30},
	}
	report.Sort(rows)
	got := []string{rows[0].Filename, rows[1].Filename, rows[2].Filename}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
}

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	err := report.Write(&buf, []report.Row{
		{Filename: "DSCF0001.JPG", Year: 2024, Month: 6, Day: 11, Hour: 22, Minute: 30, Second: 5, TemperatureC: 18.5, TemperatureF: 65.3},
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %q", buf.String())
	}
	if lines[0] != "Filename,Year,Month,Day,Hour,Minute,Second,TemperatureC,TemperatureF" {
		t.Fatalf("header: %q", lines[0])
	}
	if lines[1] != "DSCF0001.JPG,2024,6,11,22,30,5,18.5,65.3" {
		t.Fatalf("row: %q", lines[1])
	}
}

func TestExportSkipsUnparseableFrames(t *testing.T) {
	parser := fakeParser{rows: map[string]report.Row{
		"DSCF0002.JPG": {Filename: "DSCF0002.JPG", Year: 2024, Month: 6, Day: 11},
	}}
	table := &stats.Table{Records: []stats.ImageRecord{
		{Folder: "/site/d", Name: "DSCF0001.JPG"},
		{Folder: "/site/d", Name: "DSCF0002.JPG"},
	}}

	var buf bytes.Buffer
	if err := report.New(parser, logging.NewNop()).Export(context.Background(), table, &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "DSCF0001.JPG") {
		t.Fatalf("unparseable frame leaked into output: %q", out)
	}
	if !strings.Contains(out, "DSCF0002.JPG") {
		t.Fatalf("parsed frame missing: %q", out)
	}
}
