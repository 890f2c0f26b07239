package scan

import (
	"cmp"
	"slices"
)

// Pair is two files whose fingerprints are within the distance threshold.
type Pair struct {
	A, B       string
	Distance   int
	Normalized float64
}

// Pairs compares every two successfully hashed results and returns those
// with normalized distance <= maxDistance, closest first.
func Pairs(results []Result, maxDistance float64) []Pair {
	var pairs []Pair
	for i := range results {
		a := results[i].Fingerprint
		if a == nil {
			continue
		}
		for j := i + 1; j < len(results); j++ {
			b := results[j].Fingerprint
			if b == nil || !a.Comparable(b) {
				continue
			}
			d, err := a.HammingDistance(b)
			if err != nil {
				continue
			}
			n := float64(d) / float64(a.Len())
			if n <= maxDistance {
				pairs = append(pairs, Pair{A: results[i].Path, B: results[j].Path, Distance: d, Normalized: n})
			}
		}
	}

	slices.SortFunc(pairs, func(x, y Pair) int {
		if c := cmp.Compare(x.Distance, y.Distance); c != 0 {
			return c
		}
		if c := cmp.Compare(x.A, y.A); c != 0 {
			return c
		}
		return cmp.Compare(x.B, y.B)
	})
	return pairs
}
