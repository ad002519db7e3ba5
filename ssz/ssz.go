// Package ssz implements Simple Serialize (SSZ), the serialization format
// used by the Ethereum consensus layer. SSZ provides deterministic encoding,
// efficient Merkleization, and support for both fixed-size and variable-size
// types.
//
// Spec: https://github.com/ethereum/consensus-specs/blob/dev/ssz/simple-serialize.md
package ssz

import "errors"

// Error taxonomy. Every decode/encode failure in this package wraps one of
// these sentinels with fmt.Errorf("%w: ...") for call-site context; callers
// should match against the sentinel with errors.Is.
var (
	// ErrNotEnoughBytes is returned when an input buffer is truncated
	// mid-encoding.
	ErrNotEnoughBytes = errors.New("ssz: not enough bytes")

	// ErrExtraBytes is returned when a decode leaves unconsumed trailing
	// bytes past the value's expected length.
	ErrExtraBytes = errors.New("ssz: extra bytes after decode")

	// ErrInvalidBool is returned when a boolean byte is neither 0x00 nor 0x01.
	ErrInvalidBool = errors.New("ssz: invalid boolean value")

	// ErrMalformedOffset is returned when a container or variable-size
	// sequence offset is out of range, below the fixed prefix, or
	// non-monotonic relative to the previous offset.
	ErrMalformedOffset = errors.New("ssz: malformed offset")

	// ErrBitlistTooLarge is returned when a decoded bitlist's logical
	// length exceeds its declared limit N.
	ErrBitlistTooLarge = errors.New("ssz: bitlist exceeds limit")

	// ErrNoBitlistSentinel is returned when a bitlist's trailing byte is
	// zero, so no sentinel bit marks the logical length.
	ErrNoBitlistSentinel = errors.New("ssz: bitlist missing sentinel bit")

	// ErrListTooLarge is returned when a list's element count exceeds its
	// declared limit N, at either encode or decode time.
	ErrListTooLarge = errors.New("ssz: list exceeds maximum length")

	// ErrLimitExceeded is returned when Merkleize is called with a limit
	// smaller than the actual chunk count; this is always a caller bug.
	ErrLimitExceeded = errors.New("ssz: merkleization limit exceeded by chunk count")
)

// BytesPerLengthOffset is the number of bytes used for each offset in
// variable-length SSZ containers (4 bytes, little-endian uint32).
const BytesPerLengthOffset = 4

// BytesPerChunk is the width of a Merkleization chunk.
const BytesPerChunk = 32

// Marshaler is implemented by types that can serialize themselves to SSZ.
type Marshaler interface {
	MarshalSSZ() ([]byte, error)
	SizeSSZ() int
}

// Unmarshaler is implemented by types that can deserialize themselves from SSZ.
type Unmarshaler interface {
	UnmarshalSSZ([]byte) error
}

// HashRoot is implemented by types that can compute their SSZ hash tree root.
type HashRoot interface {
	HashTreeRoot() ([32]byte, error)
}
