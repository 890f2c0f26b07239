// Package hashing computes perceptual fingerprints of images.
//
// An Engine owns a resolution, an ordered filter chain and a strategy
// Encoder. It is mutable until first use: the first call to AlgorithmID or
// Hash freezes the configuration, after which AddFilter and RemoveFilter fail
// with CodeEngineLocked. Locked engines are safe for concurrent use.
package hashing

import (
	"errors"
	"image"
	"log/slog"
	"reflect"
	"slices"
	"sync"

	"github.com/GriffinCanCode/phash/internal/syncx"
	apperrors "github.com/GriffinCanCode/phash/pkg/errors"
	"github.com/GriffinCanCode/phash/pkg/filter"
)

// Engine runs "filter chain, then encode" and reports a stable identity for
// its configuration.
type Engine struct {
	encoder    Encoder
	resolution int
	length     int
	filters    *syncx.Latch[[]filter.Filter]

	once   sync.Once
	frozen []filter.Filter
	id     ID
}

// NewEngine creates an unlocked engine. resolution is the requested minimum
// number of bits and must be in [1, MaxResolution].
func NewEngine(enc Encoder, resolution int) (*Engine, error) {
	if err := checkResolution(resolution); err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, apperrors.New(apperrors.CodeInvalidArgument, "encoder is required")
	}
	return &Engine{
		encoder:    enc,
		resolution: resolution,
		length:     enc.Length(resolution),
		filters:    syncx.NewLatch[[]filter.Filter](nil),
	}, nil
}

// Kind returns the strategy tag.
func (e *Engine) Kind() Kind { return e.encoder.Kind() }

// Resolution returns the requested number of bits.
func (e *Engine) Resolution() int { return e.resolution }

// Length returns the number of bits every fingerprint of this engine has.
func (e *Engine) Length() int { return e.length }

// Locked reports whether the configuration is frozen.
func (e *Engine) Locked() bool { return e.filters.Frozen() }

// Filters returns a copy of the filter chain in application order.
func (e *Engine) Filters() []filter.Filter {
	var out []filter.Filter
	e.filters.Read(func(fs []filter.Filter) { out = slices.Clone(fs) })
	return out
}

// AddFilter appends f to the filter chain.
func (e *Engine) AddFilter(f filter.Filter) error {
	if f == nil {
		return apperrors.New(apperrors.CodeInvalidArgument, "filter is nil")
	}
	err := e.filters.Write(func(fs *[]filter.Filter) error {
		*fs = append(*fs, f)
		return nil
	})
	return e.mutationErr(err)
}

// RemoveFilter removes the first filter equal to f and reports whether one
// was found. Removing an absent filter is a no-op returning false.
func (e *Engine) RemoveFilter(f filter.Filter) (bool, error) {
	removed := false
	err := e.filters.Write(func(fs *[]filter.Filter) error {
		for i, g := range *fs {
			if filter.Equal(g, f) {
				*fs = slices.Delete(*fs, i, i+1)
				removed = true
				break
			}
		}
		return nil
	})
	if err != nil {
		return false, e.mutationErr(err)
	}
	return removed, nil
}

// AlgorithmID returns the identity of this configuration, locking the engine.
func (e *Engine) AlgorithmID() ID {
	e.lock()
	return e.id
}

// Hash locks the engine, runs the filter chain over img in declared order and
// encodes the result.
func (e *Engine) Hash(img image.Image) (*Fingerprint, error) {
	e.lock()
	if isNil(img) {
		return nil, apperrors.New(apperrors.CodeInvalidImage, "image is nil")
	}
	if img.Bounds().Empty() {
		return nil, apperrors.Newf(apperrors.CodeInvalidImage, "image %v has no pixels", img.Bounds())
	}

	for _, f := range e.frozen {
		img = f.Apply(img)
	}

	bits, err := e.encoder.Encode(img, e.resolution)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeInternal, "%s encode failed", e.Kind())
	}
	if bits.Len() != uint(e.length) {
		return nil, apperrors.Newf(apperrors.CodeInternal, "%s encoder produced %d bits, want %d", e.Kind(), bits.Len(), e.length)
	}
	return &Fingerprint{bits: bits, length: e.length, origin: e.id}, nil
}

// lock freezes the filter chain and computes the identity exactly once.
// Concurrent callers block until the winner is done.
func (e *Engine) lock() {
	e.once.Do(func() {
		e.filters.Freeze(func(fs []filter.Filter) {
			e.frozen = slices.Clone(fs)
		})
		e.id = computeID(e.Kind(), e.resolution, e.frozen)
		slog.Debug("hash engine locked",
			"kind", e.Kind(), "resolution", e.resolution, "length", e.length,
			"filters", len(e.frozen), "id", e.id)
	})
}

// isNil also catches a nil pointer stored in the interface, such as
// (*image.RGBA)(nil), whose Bounds method would panic.
func isNil(img image.Image) bool {
	if img == nil {
		return true
	}
	v := reflect.ValueOf(img)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func checkResolution(resolution int) error {
	if resolution <= 0 {
		return apperrors.Newf(apperrors.CodeInvalidResolution, "resolution must be positive, got %d", resolution)
	}
	if resolution > MaxResolution {
		return apperrors.Newf(apperrors.CodeInvalidResolution, "resolution %d exceeds %d", resolution, MaxResolution)
	}
	return nil
}

func (e *Engine) mutationErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, syncx.ErrFrozen) {
		return apperrors.Wrap(err, apperrors.CodeEngineLocked, "engine is locked, create a new engine to change filters").
			WithMetadata("kind", string(e.Kind()))
	}
	return err
}
