package hashing

import (
	"image"

	"github.com/corona10/goimagehash/etcs"
	"github.com/corona10/goimagehash/transforms"
	"github.com/nfnt/resize"
	"github.com/willf/bitset"

	apperrors "github.com/GriffinCanCode/phash/pkg/errors"
)

// PerceptionEncoder is the frequency strategy: a DCT over an oversampled
// square, keeping the top-left w x h block of low frequencies and setting
// every coefficient above the block median. Lengths are powers of two.
type PerceptionEncoder struct{}

// NewPerceptionHash returns an engine using the perception strategy.
func NewPerceptionHash(resolution int) (*Engine, error) {
	return NewEngine(PerceptionEncoder{}, resolution)
}

func (PerceptionEncoder) Kind() Kind { return KindPerception }

func (PerceptionEncoder) Length(resolution int) int {
	w, h := perceptionDimensions(resolution)
	return w * h
}

func (PerceptionEncoder) Encode(img image.Image, resolution int) (*bitset.BitSet, error) {
	w, h := perceptionDimensions(resolution)
	side := max(minPerceptionSample, perceptionOversample*max(w, h))

	scaled := resize.Resize(uint(side), uint(side), img, resize.Bilinear)
	if b := scaled.Bounds(); b.Dx() != side || b.Dy() != side {
		return nil, apperrors.Newf(apperrors.CodeInternal, "resample produced %dx%d, want %dx%d", b.Dx(), b.Dy(), side, side)
	}
	coeffs := transforms.DCT2D(transforms.Rgb2Gray(originAt(scaled)), side, side)

	block := make([]float64, 0, w*h)
	for y := 0; y < h; y++ {
		block = append(block, coeffs[y][:w]...)
	}
	median := etcs.MedianOfPixels(block)

	bits := bitset.New(uint(w * h))
	for i, c := range block {
		if c > median {
			bits.Set(uint(i))
		}
	}
	return bits, nil
}

// originAt returns img translated so its bounds start at (0, 0).
func originAt(img image.Image) image.Image {
	if img.Bounds().Min == (image.Point{}) {
		return img
	}
	out := image.NewRGBA64(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	for y := 0; y < out.Rect.Dy(); y++ {
		for x := 0; x < out.Rect.Dx(); x++ {
			out.Set(x, y, img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y+y))
		}
	}
	return out
}

// perceptionDimensions returns w x h = the next power of two >= resolution
// (at least minPerceptionBits), split as evenly as possible with w >= h.
// resolution must be in [1, MaxResolution].
func perceptionDimensions(resolution int) (width, height int) {
	n, k := 1, 0
	for n < resolution || n < minPerceptionBits {
		n <<= 1
		k++
	}
	width = 1 << ((k + 1) / 2)
	return width, n / width
}
