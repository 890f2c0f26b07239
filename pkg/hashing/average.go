package hashing

import (
	"image"

	"github.com/willf/bitset"
)

// AverageEncoder is the reference strategy: resample to a near-square grid,
// convert to BT.601 luminance and set every sample at or above the mean.
type AverageEncoder struct{}

// NewAverageHash returns an engine using the average strategy.
func NewAverageHash(resolution int) (*Engine, error) {
	return NewEngine(AverageEncoder{}, resolution)
}

func (AverageEncoder) Kind() Kind { return KindAverage }

func (AverageEncoder) Length(resolution int) int {
	w, h := Dimensions(resolution)
	return w * h
}

func (AverageEncoder) Encode(img image.Image, resolution int) (*bitset.BitSet, error) {
	w, h := Dimensions(resolution)
	lum, err := sampleLuminance(img, w, h)
	if err != nil {
		return nil, err
	}

	var sum uint64
	for _, l := range lum {
		sum += uint64(l)
	}

	// l >= sum/n, compared without division so a uniform image is exact.
	n := uint64(len(lum))
	bits := bitset.New(uint(len(lum)))
	for i, l := range lum {
		if uint64(l)*n >= sum {
			bits.Set(uint(i))
		}
	}
	return bits, nil
}
