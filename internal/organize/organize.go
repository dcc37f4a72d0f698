// Package organize materializes a classification as a copied directory tree:
// destination/category/dateFolder/filename, plus a plain-text log of every
// threshold the run used. Copies preserve symlink identity and the whole
// operation is idempotent, so an interrupted run is simply rerun.
package organize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"lampyr/internal/classify"
	"lampyr/internal/config"
	"lampyr/internal/fileutil"
	"lampyr/internal/logging"
	"lampyr/internal/services"
	"lampyr/internal/stats"
)

// CandidateCategory is the destination bucket for refined flash candidates.
const CandidateCategory = "flash"

// ThresholdLogName is the audit log written at the destination root.
const ThresholdLogName = "thresholds.txt"

// Outcome is the per-file result of one copy attempt.
type Outcome int

const (
	// Copied means the file was written to the destination.
	Copied Outcome = iota
	// Skipped means the destination already existed.
	Skipped
	// Failed means the copy errored; the batch continued without it.
	Failed
)

// Result records one copy attempt.
type Result struct {
	Source  string
	Dest    string
	Outcome Outcome
	// Message holds the failure detail when Outcome is Failed.
	Message string
}

// Report aggregates a batch of copy attempts.
type Report struct {
	Results []Result
	Copied  int
	Skipped int
	Failed  int
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	switch res.Outcome {
	case Copied:
		r.Copied++
	case Skipped:
		r.Skipped++
	case Failed:
		r.Failed++
	}
}

// Organizer copies classified frames into the destination tree.
type Organizer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New builds an organizer.
func New(cfg *config.Config, logger *slog.Logger) *Organizer {
	return &Organizer{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "organize"),
	}
}

// Organize copies every record into destRoot/category/dateFolder/filename and
// writes the threshold log. The date folder is the last path segment of the
// record's source folder. Per-file failures are warnings; only destination
// setup failures abort.
func (o *Organizer) Organize(ctx context.Context, table *stats.Table, assignments []classify.Category, destRoot string) (*Report, error) {
	if table.Len() != len(assignments) {
		return nil, services.Wrap(services.ErrValidation, "organizing", "check inputs",
			fmt.Sprintf("assignment count %d does not match table length %d", len(assignments), table.Len()), nil)
	}
	report := &Report{}
	for i, rec := range table.Records {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		o.place(report, rec, string(assignments[i]), destRoot)
	}
	if err := o.writeThresholdLog(destRoot); err != nil {
		return report, err
	}
	o.logSummary(destRoot, report)
	return report, nil
}

// OrganizeCandidates copies the refined candidate subset into the flash
// bucket. Indices address the stats table.
func (o *Organizer) OrganizeCandidates(ctx context.Context, table *stats.Table, indices []int, destRoot string) (*Report, error) {
	report := &Report{}
	for _, idx := range indices {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if idx < 0 || idx >= table.Len() {
			return report, services.Wrap(services.ErrValidation, "organizing", "check candidate",
				fmt.Sprintf("candidate index %d outside table of %d records", idx, table.Len()), nil)
		}
		o.place(report, table.Records[idx], CandidateCategory, destRoot)
	}
	if err := o.writeThresholdLog(destRoot); err != nil {
		return report, err
	}
	o.logSummary(destRoot, report)
	return report, nil
}

func (o *Organizer) place(report *Report, rec stats.ImageRecord, category, destRoot string) {
	src := rec.Path()
	destDir := filepath.Join(destRoot, category, filepath.Base(rec.Folder))
	dest := filepath.Join(destDir, rec.Name)

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		o.warn(src, dest, err)
		report.add(Result{Source: src, Dest: dest, Outcome: Failed, Message: err.Error()})
		return
	}
	if fileutil.Exists(dest) {
		report.add(Result{Source: src, Dest: dest, Outcome: Skipped})
		return
	}
	if err := fileutil.CopyEntry(src, dest); err != nil {
		o.warn(src, dest, err)
		report.add(Result{Source: src, Dest: dest, Outcome: Failed, Message: err.Error()})
		return
	}
	report.add(Result{Source: src, Dest: dest, Outcome: Copied})
}

func (o *Organizer) warn(src, dest string, err error) {
	o.logger.Warn("copy failed, continuing batch",
		logging.String("source", src),
		logging.String("dest", dest),
		logging.Error(err),
	)
}

// writeThresholdLog records every threshold used by the run, one name = value
// line per threshold. The log makes a sorted tree reproducible months later.
func (o *Organizer) writeThresholdLog(destRoot string) error {
	if err := os.MkdirAll(destRoot, 0o755); err != nil {
		return services.Wrap(services.ErrTransient, "organizing", "create destination", "failed to create destination root", err)
	}
	t := o.cfg.Thresholds
	b := o.cfg.Blob
	content := fmt.Sprintf(
		"min_max_brightness = %v\nmax_avg_brightness = %v\nmax_s/m_threshold = %v\nkurtosis_minimum = %v\nmax_blob_count = %v\nmax_blob_area = %v\n",
		t.MinMaxBrightness, t.MaxAvgBrightness, t.MaxStdMeanRatio,
		b.KurtosisMinimum, b.MaxBlobCount, b.MaxBlobArea,
	)
	path := filepath.Join(destRoot, ThresholdLogName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return services.Wrap(services.ErrTransient, "organizing", "write threshold log", "failed to write threshold log", err)
	}
	return nil
}

func (o *Organizer) logSummary(destRoot string, report *Report) {
	o.logger.Info("organize finished",
		logging.String("dest", destRoot),
		logging.Int("copied", report.Copied),
		logging.Int("skipped", report.Skipped),
		logging.Int("failed", report.Failed),
	)
}
