// Package scanner walks a source root for camera frames matching the
// configured name pattern and computes per-frame channel statistics into the
// stats store. Discovery looks at the root first and descends one level of
// subdirectories only when the root itself has no matches. Statistics are
// computed by a worker pool but committed in discovery order, so interrupted
// scans resume cleanly and downstream adjacency logic sees a stable index
// space.
package scanner
