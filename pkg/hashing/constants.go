package hashing

// Kind is the strategy-type tag of an encoder. It is part of the algorithm
// identity, so values must never be renamed.
type Kind string

const (
	KindAverage    Kind = "average"
	KindDifference Kind = "difference"
	KindPerception Kind = "perception"
)

// ConfigVersion is the version written by Engine.Config and accepted by Restore.
const ConfigVersion = 1

// MaxResolution is the largest resolution NewEngine accepts.
const MaxResolution = 1 << 24

const (
	// idMagic prefixes the identity tuple; bump it to invalidate every id.
	idMagic = "phash/id/v1"

	// Smallest fingerprint the perception strategy produces.
	minPerceptionBits = 8

	// The perception DCT runs over a square of at least minPerceptionSample
	// pixels per side, and at least perceptionOversample times the kept block.
	minPerceptionSample  = 32
	perceptionOversample = 4
)
