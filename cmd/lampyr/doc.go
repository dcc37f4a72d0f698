// Command lampyr is the trail camera triage CLI. It imports frames from
// camera cards, scans them for brightness statistics, classifies and sorts
// them into a category/date tree, refines isolated flash candidates, and
// exports per-frame metadata for downstream analysis.
package main
