package stats

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; stale databases must be cleared with `lampyr stats clear`.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store persists per-frame statistics in SQLite so interrupted scans resume
// without recomputing finished frames.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the stats database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'lampyr stats clear' or delete the database)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// BeginScan records a scan session for audit purposes.
func (s *Store) BeginScan(ctx context.Context, scanID, root, channel string, bannerHeight int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scans (id, root, channel, banner_px, started_at) VALUES (?, ?, ?, ?, ?)`,
		scanID, root, channel, bannerHeight, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record scan session: %w", err)
	}
	return nil
}

// Existing returns previously committed records for root keyed by source
// path, so a restarted scan can skip frames it already measured.
func (s *Store) Existing(ctx context.Context, root string) (map[string]ImageRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT folder, name, grayscale, mean, std, max, kurtosis FROM images WHERE root = ?`, root)
	if err != nil {
		return nil, fmt.Errorf("query existing records: %w", err)
	}
	defer rows.Close()

	existing := make(map[string]ImageRecord)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		existing[rec.Path()] = rec
	}
	return existing, rows.Err()
}

// Commit upserts one record at its discovery index. Re-scanning the same
// frame updates its slot rather than duplicating it.
func (s *Store) Commit(ctx context.Context, root string, seq int, rec ImageRecord) error {
	var kurtosis any
	if rec.Kurtosis != nil {
		kurtosis = *rec.Kurtosis
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO images (root, folder, name, seq, grayscale, mean, std, max, kurtosis, scanned_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT (root, folder, name) DO UPDATE SET
             seq = excluded.seq,
             grayscale = excluded.grayscale,
             mean = excluded.mean,
             std = excluded.std,
             max = excluded.max,
             kurtosis = COALESCE(excluded.kurtosis, images.kurtosis),
             scanned_at = excluded.scanned_at`,
		root, rec.Folder, rec.Name, seq, boolToInt(rec.Grayscale),
		rec.Mean, rec.Std, rec.Max, kurtosis,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("commit record %s: %w", rec.Path(), err)
	}
	return nil
}

// TableForRoot loads the full stats table for root in discovery order.
func (s *Store) TableForRoot(ctx context.Context, root string) (*Table, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT folder, name, grayscale, mean, std, max, kurtosis FROM images WHERE root = ? ORDER BY seq`, root)
	if err != nil {
		return nil, fmt.Errorf("query stats table: %w", err)
	}
	defer rows.Close()

	table := &Table{Root: root}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		table.Records = append(table.Records, rec)
	}
	return table, rows.Err()
}

// Count returns the number of committed records for root.
func (s *Store) Count(ctx context.Context, root string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM images WHERE root = ?`, root).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

// ClearRoot removes all records for root, forcing the next scan to start over.
func (s *Store) ClearRoot(ctx context.Context, root string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM images WHERE root = ?`, root)
	if err != nil {
		return 0, fmt.Errorf("clear records: %w", err)
	}
	return res.RowsAffected()
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (ImageRecord, error) {
	var (
		rec       ImageRecord
		grayscale int
		kurtosis  sql.NullFloat64
	)
	if err := scanner.Scan(&rec.Folder, &rec.Name, &grayscale, &rec.Mean, &rec.Std, &rec.Max, &kurtosis); err != nil {
		return ImageRecord{}, fmt.Errorf("scan record: %w", err)
	}
	rec.Grayscale = grayscale != 0
	if kurtosis.Valid {
		value := kurtosis.Float64
		rec.Kurtosis = &value
	}
	return rec, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
