package scanner

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"lampyr/internal/config"
	"lampyr/internal/imaging"
	"lampyr/internal/logging"
	"lampyr/internal/services"
	"lampyr/internal/stats"
)

// Scanner discovers frames and computes their statistics into the store.
type Scanner struct {
	cfg    *config.Config
	store  *stats.Store
	logger *slog.Logger
	fs     FS

	// OnProgress, when set, is invoked after every committed record with the
	// number of finished frames and the total.
	OnProgress func(done, total int)
}

// New constructs a scanner over the real filesystem.
func New(cfg *config.Config, store *stats.Store, logger *slog.Logger) *Scanner {
	return &Scanner{
		cfg:    cfg,
		store:  store,
		logger: logging.NewComponentLogger(logger, "scanner"),
		fs:     OSFS{},
	}
}

type result struct {
	seq int
	rec stats.ImageRecord
}

// Scan discovers every matching frame under root and produces the ordered
// stats table, committing each record as it completes. Frames already present
// in the store are reused rather than recomputed, so an interrupted scan
// resumes where it stopped. Per-frame read failures are logged and leave a
// zeroed record in place; only store-level failures abort the scan.
func (s *Scanner) Scan(ctx context.Context, root string) (*stats.Table, error) {
	refs, err := Discover(s.fs, root, s.cfg.Scan.Marker, s.cfg.Scan.Extension)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "scanning", "discover frames", "failed to list source directory", err)
	}
	if len(refs) == 0 {
		s.logger.Info("no matching frames found", logging.String("root", root))
		return &stats.Table{Root: root}, nil
	}

	channel, err := imaging.ParseChannel(s.cfg.Scan.Channel)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "scanning", "parse channel", "invalid scan channel", err)
	}

	scanID := uuid.NewString()
	if err := s.store.BeginScan(ctx, scanID, root, s.cfg.Scan.Channel, s.cfg.Scan.BannerHeight); err != nil {
		return nil, services.Wrap(services.ErrTransient, "scanning", "record session", "failed to record scan session", err)
	}

	existing, err := s.store.Existing(ctx, root)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "scanning", "load prior records", "failed to load resumable records", err)
	}

	workers := s.cfg.Scan.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(refs) {
		workers = len(refs)
	}

	s.logger.Info("scan started",
		logging.String("scan_id", scanID),
		logging.String("root", root),
		logging.Int("frames", len(refs)),
		logging.Int("resumed", len(existing)),
		logging.Int("workers", workers),
	)
	started := time.Now()

	jobs := make(chan int)
	results := make(chan result, workers)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for seq := range refs {
			select {
			case jobs <- seq:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for seq := range jobs {
				rec := s.compute(refs[seq], channel, existing)
				select {
				case results <- result{seq: seq, rec: rec}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	// Workers finish out of order; records are committed strictly in
	// discovery order because the blob analyzer's adjacency logic depends
	// on the index space matching it.
	records := make([]stats.ImageRecord, len(refs))
	pending := make(map[int]stats.ImageRecord, workers)
	next, done := 0, 0
	for res := range results {
		pending[res.seq] = res.rec
		for {
			rec, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			if err := s.store.Commit(ctx, root, next, rec); err != nil {
				return nil, services.Wrap(services.ErrTransient, "scanning", "commit record", "failed to persist statistics", err)
			}
			records[next] = rec
			next++
			done++
			if s.OnProgress != nil {
				s.OnProgress(done, len(refs))
			}
		}
	}
	if err := g.Wait(); err != nil {
		// Committed rows stay behind for the next attempt.
		return nil, err
	}

	s.logger.Info("scan finished",
		logging.String("scan_id", scanID),
		logging.Int("frames", len(refs)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return &stats.Table{Root: root, Records: records}, nil
}

func (s *Scanner) compute(ref FileRef, channel imaging.Channel, existing map[string]stats.ImageRecord) stats.ImageRecord {
	path := filepath.Join(ref.Folder, ref.Name)
	if prior, ok := existing[path]; ok {
		if !s.cfg.Scan.Kurtosis || prior.Kurtosis != nil {
			return prior
		}
	}

	rec := stats.ImageRecord{Folder: ref.Folder, Name: ref.Name}
	frame, err := imaging.LoadFrame(path, channel, s.cfg.Scan.BannerHeight)
	if err != nil {
		// Keep the zeroed record so the index space stays stable. The zero
		// kurtosis keeps extended tables complete; a zeroed frame never
		// clears the flash thresholds anyway.
		if s.cfg.Scan.Kurtosis {
			k := 0.0
			rec.Kurtosis = &k
		}
		s.logger.Warn("failed to read frame, keeping zeroed record",
			logging.String("path", path),
			logging.Error(err),
		)
		return rec
	}

	st := frame.Plane.Stats()
	rec.Grayscale = frame.Grayscale
	rec.Mean = st.Mean
	rec.Std = st.Std
	rec.Max = st.Max
	if s.cfg.Scan.Kurtosis {
		k := frame.Plane.Kurtosis(st)
		rec.Kurtosis = &k
	}
	return rec
}
