package hashing

import (
	"fmt"
	"strings"

	"github.com/willf/bitset"

	apperrors "github.com/GriffinCanCode/phash/pkg/errors"
)

// Fingerprint is an immutable perceptual hash. Bits are stored in the order
// the encoder produced them (row major for the average strategy).
type Fingerprint struct {
	bits   *bitset.BitSet
	length int
	origin ID
}

// NewFingerprint rebuilds a fingerprint from its packed words, as returned by
// Words. Bits at positions >= length must be zero.
func NewFingerprint(words []uint64, length int, origin ID) (*Fingerprint, error) {
	if length <= 0 {
		return nil, apperrors.Newf(apperrors.CodeInvalidArgument, "fingerprint length must be positive, got %d", length)
	}
	if need := (length + 63) / 64; len(words) != need {
		return nil, apperrors.Newf(apperrors.CodeInvalidArgument, "%d bits need %d words, got %d", length, need, len(words))
	}
	if tail := length % 64; tail != 0 && words[len(words)-1]>>uint(tail) != 0 {
		return nil, apperrors.Newf(apperrors.CodeInvalidArgument, "bits set beyond length %d", length)
	}

	bits := bitset.New(uint(length))
	for i := 0; i < length; i++ {
		if words[i/64]&(1<<uint(i%64)) != 0 {
			bits.Set(uint(i))
		}
	}
	return &Fingerprint{bits: bits, length: length, origin: origin}, nil
}

// Len returns the number of bits.
func (f *Fingerprint) Len() int { return f.length }

// OriginID returns the identity of the engine configuration that produced f.
func (f *Fingerprint) OriginID() ID { return f.origin }

// Bit reports whether bit i is set.
func (f *Fingerprint) Bit(i int) bool {
	if i < 0 || i >= f.length {
		return false
	}
	return f.bits.Test(uint(i))
}

// Ones returns the number of set bits.
func (f *Fingerprint) Ones() int {
	return int(f.bits.Count())
}

// HammingDistance counts differing bit positions. Fingerprints of unequal
// length are not comparable and yield CodeFingerprintMismatch. Fingerprints
// from different configurations but equal length are compared anyway; the
// result is only meaningful when OriginID matches.
func (f *Fingerprint) HammingDistance(o *Fingerprint) (int, error) {
	if o == nil || f.length != o.length {
		return 0, f.mismatch(o)
	}
	return int(f.bits.SymmetricDifferenceCardinality(o.bits)), nil
}

// NormalizedHammingDistance returns HammingDistance divided by the length.
func (f *Fingerprint) NormalizedHammingDistance(o *Fingerprint) (float64, error) {
	d, err := f.HammingDistance(o)
	if err != nil {
		return 0, err
	}
	return float64(d) / float64(f.length), nil
}

// Comparable reports whether f and o share length and origin.
func (f *Fingerprint) Comparable(o *Fingerprint) bool {
	return o != nil && f.length == o.length && f.origin == o.origin
}

// Equal reports bit-for-bit equality including length and origin.
func (f *Fingerprint) Equal(o *Fingerprint) bool {
	return f.Comparable(o) && f.bits.Equal(o.bits)
}

// Words returns a copy of the packed bits, bit i at word i/64, position i%64.
func (f *Fingerprint) Words() []uint64 {
	words := make([]uint64, (f.length+63)/64)
	for i, e := f.bits.NextSet(0); e; i, e = f.bits.NextSet(i + 1) {
		words[i/64] |= 1 << (i % 64)
	}
	return words
}

// Hex renders the packed words, most significant word first.
func (f *Fingerprint) Hex() string {
	words := f.Words()
	var sb strings.Builder
	for i := len(words) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%016x", words[i])
	}
	return sb.String()
}

// String renders the bits as 0/1 characters in bit order.
func (f *Fingerprint) String() string {
	var sb strings.Builder
	sb.Grow(f.length)
	for i := 0; i < f.length; i++ {
		if f.bits.Test(uint(i)) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (f *Fingerprint) mismatch(o *Fingerprint) error {
	other := "nil"
	if o != nil {
		other = fmt.Sprint(o.length)
	}
	return apperrors.Newf(apperrors.CodeFingerprintMismatch, "cannot compare fingerprints of length %d and %s", f.length, other).
		WithMetadata("left_origin", f.origin.String())
}
