// Package stats defines the per-frame statistics model and its SQLite
// persistence. The stats table is written once by the scanner and read by the
// classifier and the blob analyzer; the store exists so a scan over thousands
// of frames can be interrupted and resumed without losing finished work.
package stats
