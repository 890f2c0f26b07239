// Package filter provides the image preprocessing filters applied by a hash
// engine before encoding. Filters are immutable values: two filters are equal
// iff their Descriptors are equal.
package filter

import (
	"encoding/binary"
	"image"
	"math"

	apperrors "github.com/GriffinCanCode/phash/pkg/errors"
)

// Kind names a filter implementation.
type Kind string

const (
	KindKernel    Kind = "kernel"
	KindGrayscale Kind = "grayscale"
)

// Filter is a pure, deterministic image transformation.
type Filter interface {
	// Apply returns the filtered image. The input is never modified.
	Apply(img image.Image) image.Image

	// Descriptor returns the parameters that fully describe the filter.
	Descriptor() Descriptor
}

// Descriptor is the parameter record of a filter. It is what feeds the
// algorithm identity and what gets persisted in an exported engine config.
type Descriptor struct {
	Kind   Kind      `json:"kind"`
	Width  int       `json:"width,omitempty"`
	Height int       `json:"height,omitempty"`
	Mask   []float64 `json:"mask,omitempty"`
}

// Equal reports whether both descriptors carry identical parameters.
// Weights are compared bit for bit.
func (d Descriptor) Equal(o Descriptor) bool {
	if d.Kind != o.Kind || d.Width != o.Width || d.Height != o.Height || len(d.Mask) != len(o.Mask) {
		return false
	}
	for i := range d.Mask {
		if math.Float64bits(d.Mask[i]) != math.Float64bits(o.Mask[i]) {
			return false
		}
	}
	return true
}

// AppendBinary appends the canonical encoding of d to b.
func (d Descriptor) AppendBinary(b []byte) []byte {
	b = binary.AppendUvarint(b, uint64(len(d.Kind)))
	b = append(b, d.Kind...)
	b = binary.AppendVarint(b, int64(d.Width))
	b = binary.AppendVarint(b, int64(d.Height))
	b = binary.AppendUvarint(b, uint64(len(d.Mask)))
	for _, w := range d.Mask {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(w))
	}
	return b
}

// Equal reports whether two filters have equal parameters.
func Equal(a, b Filter) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Descriptor().Equal(b.Descriptor())
}

// FromDescriptor reconstructs the filter described by d.
func FromDescriptor(d Descriptor) (Filter, error) {
	switch d.Kind {
	case KindKernel:
		k, err := NewKernel(d.Width, d.Height, d.Mask)
		if err != nil {
			return nil, err
		}
		return k, nil
	case KindGrayscale:
		if d.Width != 0 || d.Height != 0 || len(d.Mask) != 0 {
			return nil, apperrors.New(apperrors.CodeInvalidFilter, "grayscale filter takes no parameters")
		}
		return Grayscale(), nil
	default:
		return nil, apperrors.Newf(apperrors.CodeInvalidFilter, "unknown filter kind %q", d.Kind)
	}
}

// Luminance returns the BT.601 weighted luminance of 16-bit channels, scaled
// by 1000 so it stays an exact integer.
func Luminance(r, g, b uint32) uint32 {
	return LumaR*r + LumaG*g + LumaB*b
}
