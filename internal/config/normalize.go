package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeScan() {
	c.Scan.Marker = strings.ToUpper(strings.TrimSpace(c.Scan.Marker))
	if c.Scan.Marker == "" {
		c.Scan.Marker = defaultMarker
	}
	c.Scan.Extension = strings.TrimSpace(c.Scan.Extension)
	if c.Scan.Extension == "" {
		c.Scan.Extension = defaultExtension
	}
	if !strings.HasPrefix(c.Scan.Extension, ".") {
		c.Scan.Extension = "." + c.Scan.Extension
	}
	c.Scan.Channel = strings.ToLower(strings.TrimSpace(c.Scan.Channel))
	if c.Scan.Channel == "" {
		c.Scan.Channel = defaultChannel
	}
	if c.Scan.BannerHeight == 0 {
		c.Scan.BannerHeight = defaultBannerHeight
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
