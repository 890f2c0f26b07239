package hashing

import (
	"image"

	"github.com/willf/bitset"
)

// DifferenceEncoder is the gradient strategy: resample to (w+1) x h and set a
// bit wherever luminance increases from one column to the next.
type DifferenceEncoder struct{}

// NewDifferenceHash returns an engine using the difference strategy.
func NewDifferenceHash(resolution int) (*Engine, error) {
	return NewEngine(DifferenceEncoder{}, resolution)
}

func (DifferenceEncoder) Kind() Kind { return KindDifference }

func (DifferenceEncoder) Length(resolution int) int {
	w, h := Dimensions(resolution)
	return w * h
}

func (DifferenceEncoder) Encode(img image.Image, resolution int) (*bitset.BitSet, error) {
	w, h := Dimensions(resolution)
	lum, err := sampleLuminance(img, w+1, h)
	if err != nil {
		return nil, err
	}

	bits := bitset.New(uint(w * h))
	for y := 0; y < h; y++ {
		row := lum[y*(w+1) : (y+1)*(w+1)]
		for x := 0; x < w; x++ {
			if row[x] < row[x+1] {
				bits.Set(uint(y*w + x))
			}
		}
	}
	return bits, nil
}
