// Package scan hashes image files in bulk and reports near duplicates.
package scan

// Scan constants
const (
	// Span names for per-scan and per-file log lines
	SpanScan     = "scan"
	SpanHashFile = "hash_file"

	// Hamming distance at or below which consecutive images count as the same
	DefaultTrackerDistance = 5
)
