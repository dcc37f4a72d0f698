package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// DataDir holds the stats database and the run lock.
	DataDir string `toml:"data_dir"`
	// LogDir receives the rolling log file when set.
	LogDir string `toml:"log_dir"`
}

// Scan controls image discovery and per-frame statistics.
type Scan struct {
	// Marker is the substring a filename must contain (case-insensitive).
	Marker string `toml:"marker"`
	// Extension is the required filename extension (case-insensitive).
	Extension string `toml:"extension"`
	// Channel selects the color channel statistics are computed on.
	Channel string `toml:"channel"`
	// BannerHeight is the height in pixels of the burned-in metadata strip
	// removed from the bottom of every frame before any statistic.
	BannerHeight int `toml:"banner_height"`
	// Workers bounds the parallel stat computations. 0 means GOMAXPROCS.
	Workers int `toml:"workers"`
	// Kurtosis enables the extended kurtosis pass during scanning.
	Kurtosis bool `toml:"kurtosis"`
}

// Thresholds are the classification cut points. They are always supplied by
// configuration, never inferred from the data.
type Thresholds struct {
	// MinMaxBrightness: frames whose brightest pixel stays below this are null.
	MinMaxBrightness float64 `toml:"min_max_brightness"`
	// MaxAvgBrightness: mean-brightness ceiling for the dark category.
	MaxAvgBrightness float64 `toml:"max_avg_brightness"`
	// MaxStdMeanRatio: std/mean ceiling for the dark category.
	MaxStdMeanRatio float64 `toml:"max_std_mean_ratio"`
}

// Blob controls the flash-candidate refinement pass.
type Blob struct {
	// KurtosisMinimum flags frames whose kurtosis exceeds it.
	KurtosisMinimum float64 `toml:"kurtosis_minimum"`
	// MaxBlobCount: candidates need strictly fewer connected components.
	MaxBlobCount int `toml:"max_blob_count"`
	// MaxBlobArea: the largest component must stay strictly below this.
	MaxBlobArea int `toml:"max_blob_area"`
}

// Dedup controls the near-duplicate candidate report.
type Dedup struct {
	// Distance is the maximum Hamming distance between difference hashes
	// at which two frames are reported as duplicates.
	Distance int `toml:"distance"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for lampyr.
//
// Sections by subsystem:
//   - Paths: data and log directories
//   - Scan: discovery pattern, banner crop, channel, worker count
//   - Thresholds: classification cut points
//   - Blob: flash-candidate refinement bounds
//   - Dedup: near-duplicate report distance
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Scan       Scan       `toml:"scan"`
	Thresholds Thresholds `toml:"thresholds"`
	Blob       Blob       `toml:"blob"`
	Dedup      Dedup      `toml:"dedup"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/lampyr/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a file existed at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("lampyr.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the pipeline writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.DataDir}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		dirs = append(dirs, c.Paths.LogDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// StatsDBPath returns the location of the stats database.
func (c *Config) StatsDBPath() string {
	return filepath.Join(c.Paths.DataDir, "imstats.db")
}

// LockPath returns the location of the single-writer run lock.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "lampyr.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
