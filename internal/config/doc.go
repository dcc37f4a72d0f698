// Package config loads, normalizes, and validates the TOML configuration
// that drives the triage pipeline. All thresholds are caller-supplied here;
// no component ever infers a cut point from the data it processes.
package config
