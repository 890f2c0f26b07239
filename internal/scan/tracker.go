package scan

import (
	"log/slog"
	"sync"

	"github.com/GriffinCanCode/phash/pkg/hashing"
)

// Tracker flags images that repeat the last distinct one, e.g. consecutive
// frames or burst shots.
type Tracker struct {
	mu          sync.Mutex
	last        *hashing.Fingerprint
	maxDistance int
}

// NewTracker creates a tracker that treats distance <= maxDistance as a repeat.
func NewTracker(maxDistance int) *Tracker {
	return &Tracker{maxDistance: maxDistance}
}

// Observe compares fp with the last distinct fingerprint. Similar images do
// not replace the reference, so slow drift is still detected.
func (t *Tracker) Observe(fp *hashing.Fingerprint) (similar bool, distance int) {
	if fp == nil {
		return false, 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.last == nil || !t.last.Comparable(fp) {
		t.last = fp
		return false, 0
	}

	dist, err := t.last.HammingDistance(fp)
	if err != nil {
		t.last = fp
		return false, 0
	}

	if dist <= t.maxDistance {
		slog.Debug("similar to previous image", "distance", dist)
		return true, dist
	}

	t.last = fp
	return false, dist
}

// Reset forgets the reference fingerprint.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.last = nil
	t.mu.Unlock()
}
