package hashing

import (
	"image"
	"math"

	"github.com/nfnt/resize"
	"github.com/willf/bitset"

	apperrors "github.com/GriffinCanCode/phash/pkg/errors"
	"github.com/GriffinCanCode/phash/pkg/filter"
)

// Encoder is the strategy-specific step of an Engine. It turns an already
// filtered image into exactly Length(resolution) bits.
type Encoder interface {
	// Kind is the strategy tag that feeds the algorithm identity.
	Kind() Kind

	// Length is the smallest length this strategy can produce that is >= resolution.
	Length(resolution int) int

	// Encode must be deterministic and safe for concurrent use.
	Encode(img image.Image, resolution int) (*bitset.BitSet, error)
}

// EncoderFor returns the built-in encoder for kind.
func EncoderFor(kind Kind) (Encoder, error) {
	switch kind {
	case KindAverage:
		return AverageEncoder{}, nil
	case KindDifference:
		return DifferenceEncoder{}, nil
	case KindPerception:
		return PerceptionEncoder{}, nil
	default:
		return nil, apperrors.Newf(apperrors.CodeUnknownKind, "unknown hashing algorithm %q", kind)
	}
}

// Dimensions returns the near-square sampling grid w x h covering resolution
// samples: w = ceil(sqrt(r)), h = ceil(r / w). resolution must be in
// [1, MaxResolution].
func Dimensions(resolution int) (width, height int) {
	w := int(math.Ceil(math.Sqrt(float64(resolution))))
	// Float sqrt can be off by one for large inputs.
	for w > 1 && (w-1)*(w-1) >= resolution {
		w--
	}
	for w*w < resolution {
		w++
	}
	return w, (resolution + w - 1) / w
}

// sampleLuminance resamples img to exactly width x height and returns the
// row-major luminance of every sample.
func sampleLuminance(img image.Image, width, height int) ([]uint32, error) {
	scaled := resize.Resize(uint(width), uint(height), img, resize.Bilinear)
	b := scaled.Bounds()
	if b.Dx() != width || b.Dy() != height {
		return nil, apperrors.Newf(apperrors.CodeInternal, "resample produced %dx%d, want %dx%d", b.Dx(), b.Dy(), width, height)
	}

	lum := make([]uint32, 0, width*height)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := scaled.At(x, y).RGBA()
			lum = append(lum, filter.Luminance(r, g, bl))
		}
	}
	return lum, nil
}
