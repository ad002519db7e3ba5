package ssz

import (
	"encoding/binary"
	"fmt"

	"github.com/holiman/uint256"
)

// --- Basic type decoding ---

// UnmarshalBool decodes a boolean from a single byte.
func UnmarshalBool(data []byte) (bool, error) {
	if len(data) != 1 {
		return false, fmt.Errorf("%w: bool wants 1 byte, got %d", ErrNotEnoughBytes, len(data))
	}
	switch data[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrInvalidBool
	}
}

// UnmarshalUint8 decodes a uint8 from a single byte.
func UnmarshalUint8(data []byte) (uint8, error) {
	if len(data) != 1 {
		return 0, fmt.Errorf("%w: uint8 wants 1 byte, got %d", ErrNotEnoughBytes, len(data))
	}
	return data[0], nil
}

// UnmarshalUint16 decodes a uint16 from 2 bytes little-endian.
func UnmarshalUint16(data []byte) (uint16, error) {
	if len(data) != 2 {
		return 0, fmt.Errorf("%w: uint16 wants 2 bytes, got %d", ErrNotEnoughBytes, len(data))
	}
	return binary.LittleEndian.Uint16(data), nil
}

// UnmarshalUint32 decodes a uint32 from 4 bytes little-endian.
func UnmarshalUint32(data []byte) (uint32, error) {
	if len(data) != 4 {
		return 0, fmt.Errorf("%w: uint32 wants 4 bytes, got %d", ErrNotEnoughBytes, len(data))
	}
	return binary.LittleEndian.Uint32(data), nil
}

// UnmarshalUint64 decodes a uint64 from 8 bytes little-endian.
func UnmarshalUint64(data []byte) (uint64, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("%w: uint64 wants 8 bytes, got %d", ErrNotEnoughBytes, len(data))
	}
	return binary.LittleEndian.Uint64(data), nil
}

// UnmarshalUint128 decodes a 128-bit unsigned integer from 16 bytes
// little-endian, returning (lo, hi) limbs.
func UnmarshalUint128(data []byte) (lo, hi uint64, err error) {
	if len(data) != 16 {
		return 0, 0, fmt.Errorf("%w: uint128 wants 16 bytes, got %d", ErrNotEnoughBytes, len(data))
	}
	lo = binary.LittleEndian.Uint64(data[0:8])
	hi = binary.LittleEndian.Uint64(data[8:16])
	return lo, hi, nil
}

// UnmarshalUint256 decodes a 256-bit unsigned integer from 32 bytes
// little-endian into a *uint256.Int.
func UnmarshalUint256(data []byte) (*uint256.Int, error) {
	if len(data) != 32 {
		return nil, fmt.Errorf("%w: uint256 wants 32 bytes, got %d", ErrNotEnoughBytes, len(data))
	}
	var be [32]byte
	for i := 0; i < 32; i++ {
		be[i] = data[31-i]
	}
	return new(uint256.Int).SetBytes(be[:]), nil
}

// --- Composite type decoding ---

// UnmarshalVector decodes a vector of n fixed-size elements, each elemSize
// bytes long.
func UnmarshalVector(data []byte, n, elemSize int) ([][]byte, error) {
	if len(data) != n*elemSize {
		return nil, fmt.Errorf("%w: vector wants %d bytes, got %d", ErrNotEnoughBytes, n*elemSize, len(data))
	}
	elements := make([][]byte, n)
	for i := 0; i < n; i++ {
		elem := make([]byte, elemSize)
		copy(elem, data[i*elemSize:(i+1)*elemSize])
		elements[i] = elem
	}
	return elements, nil
}

// UnmarshalList decodes a list of fixed-size elements, each elemSize bytes
// long, checking the resulting element count against limit. Used by
// consensus.WithdrawalList, whose element type (Withdrawal) is fixed-size.
func UnmarshalList(data []byte, elemSize, limit int) ([][]byte, error) {
	if elemSize == 0 {
		return nil, fmt.Errorf("%w: zero-size element", ErrNotEnoughBytes)
	}
	if len(data)%elemSize != 0 {
		return nil, fmt.Errorf("%w: list length %d not a multiple of element size %d", ErrNotEnoughBytes, len(data), elemSize)
	}
	n := len(data) / elemSize
	if n > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrListTooLarge, n, limit)
	}
	return UnmarshalVector(data, n, elemSize)
}

// UnmarshalVariableSequence decodes a variable-length sequence whose elements
// are themselves variable-size (e.g. List[List[byte, M], N]). Per the SSZ
// spec, the element count is recovered from the first offset rather than
// from a schema, since every element contributes exactly one 4-byte offset
// to the fixed head: n = first_offset / BytesPerLengthOffset. Offsets must
// be non-decreasing and each must fall within [n*4, len(data)], or the
// sequence is malformed.
func UnmarshalVariableSequence(data []byte, limit int) ([][]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < BytesPerLengthOffset {
		return nil, fmt.Errorf("%w: sequence shorter than one offset", ErrNotEnoughBytes)
	}

	firstOffset := binary.LittleEndian.Uint32(data[:BytesPerLengthOffset])
	if firstOffset%BytesPerLengthOffset != 0 {
		return nil, fmt.Errorf("%w: first offset %d not a multiple of %d", ErrMalformedOffset, firstOffset, BytesPerLengthOffset)
	}
	n := int(firstOffset) / BytesPerLengthOffset
	if n > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrListTooLarge, n, limit)
	}
	if n*BytesPerLengthOffset > len(data) {
		return nil, fmt.Errorf("%w: first offset %d exceeds input length %d", ErrMalformedOffset, firstOffset, len(data))
	}

	offsets := make([]uint32, n)
	for i := 0; i < n; i++ {
		pos := i * BytesPerLengthOffset
		offsets[i] = binary.LittleEndian.Uint32(data[pos : pos+BytesPerLengthOffset])
	}

	elements := make([][]byte, n)
	prev := uint32(n * BytesPerLengthOffset)
	for i, start := range offsets {
		if start < prev || uint64(start) > uint64(len(data)) {
			return nil, fmt.Errorf("%w: element %d offset %d (prev %d, len %d)",
				ErrMalformedOffset, i, start, prev, len(data))
		}
		var end uint32
		if i+1 < n {
			end = offsets[i+1]
		} else {
			end = uint32(len(data))
		}
		if end < start {
			return nil, fmt.Errorf("%w: element %d offset %d exceeds following offset %d", ErrMalformedOffset, i, start, end)
		}
		elements[i] = append([]byte(nil), data[start:end]...)
		prev = start
	}
	return elements, nil
}

// --- Bitfield decoding ---

// UnmarshalBitvector decodes a bitvector of exactly n bits.
func UnmarshalBitvector(data []byte, n int) ([]bool, error) {
	numBytes := (n + 7) / 8
	if len(data) != numBytes {
		return nil, fmt.Errorf("%w: bitvector<%d> wants %d bytes, got %d", ErrNotEnoughBytes, n, numBytes, len(data))
	}
	bits := make([]bool, n)
	for i := 0; i < n; i++ {
		bits[i] = (data[i/8]>>(uint(i)%8))&1 == 1
	}
	// Bits beyond n in the final byte must be zero.
	for i := n; i < numBytes*8; i++ {
		if (data[i/8]>>(uint(i)%8))&1 == 1 {
			return nil, fmt.Errorf("%w: bitvector<%d> has set padding bit %d", ErrNotEnoughBytes, n, i)
		}
	}
	return bits, nil
}

// UnmarshalBitlist decodes a bitlist, which includes a sentinel bit to mark
// the boundary, checking the logical length against limit. Returns the data
// bits (without the sentinel).
func UnmarshalBitlist(data []byte, limit int) ([]bool, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty bitlist", ErrNoBitlistSentinel)
	}

	// Find the sentinel bit: the highest set bit in the last byte.
	lastByte := data[len(data)-1]
	if lastByte == 0 {
		return nil, ErrNoBitlistSentinel
	}
	sentinelBit := 7
	for (lastByte>>uint(sentinelBit))&1 == 0 {
		sentinelBit--
	}

	// Total number of data bits = (len(data)-1)*8 + sentinelBit.
	n := (len(data)-1)*8 + sentinelBit
	if n > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrBitlistTooLarge, n, limit)
	}
	bits := make([]bool, n)
	for i := 0; i < n; i++ {
		bits[i] = (data[i/8]>>(uint(i)%8))&1 == 1
	}
	return bits, nil
}
