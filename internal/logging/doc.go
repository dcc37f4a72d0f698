// Package logging wires log/slog with a single-line console handler and a
// JSON handler, plus the attr helpers the rest of the pipeline uses.
package logging
