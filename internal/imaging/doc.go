// Package imaging holds the pixel-level primitives of the pipeline: frame
// decoding, banner cropping, channel extraction, intensity statistics, and
// binary-mask connected-component labeling. Everything above it works on
// numbers, never on pixels.
package imaging
