package hashing

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/zeebo/xxh3"

	"github.com/GriffinCanCode/phash/pkg/filter"
)

// ID identifies an engine configuration: strategy kind, resolution and the
// ordered filter parameters. It is stable across processes and machines.
type ID uint64

// String renders the id as 16 hex digits.
func (id ID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// ParseID parses the output of ID.String.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, err
	}
	return ID(v), nil
}

// computeID digests the canonical encoding of the configuration tuple with xxHash3.
func computeID(kind Kind, resolution int, filters []filter.Filter) ID {
	return ID(xxh3.Hash(identityTuple(kind, resolution, filters)))
}

func identityTuple(kind Kind, resolution int, filters []filter.Filter) []byte {
	b := make([]byte, 0, 64)
	b = appendString(b, idMagic)
	b = appendString(b, string(kind))
	b = binary.AppendUvarint(b, uint64(resolution))
	b = binary.AppendUvarint(b, uint64(len(filters)))
	for _, f := range filters {
		b = f.Descriptor().AppendBinary(b)
	}
	return b
}

func appendString(b []byte, s string) []byte {
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}
