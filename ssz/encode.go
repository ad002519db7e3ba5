package ssz

import (
	"encoding/binary"
	"fmt"

	"github.com/holiman/uint256"
)

// --- Basic type encoding ---
//
// The AppendX functions write into a caller-supplied cursor slice and
// return the grown slice, so a composite encoder can build its buffer
// without per-field allocation; the MarshalX forms are the
// allocate-a-new-buffer overloads on top of them.

// AppendBool appends the boolean's single-byte encoding to dst: 0x01 for
// true, 0x00 for false.
func AppendBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}
	return append(dst, 0)
}

// MarshalBool encodes a boolean as a single byte.
func MarshalBool(v bool) []byte {
	return AppendBool(nil, v)
}

// AppendUint8 appends a uint8 as a single byte to dst.
func AppendUint8(dst []byte, v uint8) []byte {
	return append(dst, v)
}

// MarshalUint8 encodes a uint8 as a single byte.
func MarshalUint8(v uint8) []byte {
	return AppendUint8(nil, v)
}

// AppendUint16 appends a uint16 as 2 bytes little-endian to dst.
func AppendUint16(dst []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(dst, b[:]...)
}

// MarshalUint16 encodes a uint16 as 2 bytes little-endian.
func MarshalUint16(v uint16) []byte {
	return AppendUint16(nil, v)
}

// AppendUint32 appends a uint32 as 4 bytes little-endian to dst.
func AppendUint32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

// MarshalUint32 encodes a uint32 as 4 bytes little-endian.
func MarshalUint32(v uint32) []byte {
	return AppendUint32(nil, v)
}

// AppendUint64 appends a uint64 as 8 bytes little-endian to dst.
func AppendUint64(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

// MarshalUint64 encodes a uint64 as 8 bytes little-endian.
func MarshalUint64(v uint64) []byte {
	return AppendUint64(nil, v)
}

// AppendUint128 appends a 128-bit unsigned integer (little-endian limbs:
// lo, hi) as 16 bytes little-endian to dst.
func AppendUint128(dst []byte, lo, hi uint64) []byte {
	dst = AppendUint64(dst, lo)
	return AppendUint64(dst, hi)
}

// MarshalUint128 encodes a 128-bit unsigned integer (as two uint64 limbs:
// lo, hi) into 16 bytes little-endian.
func MarshalUint128(lo, hi uint64) []byte {
	return AppendUint128(nil, lo, hi)
}

// AppendUint256 appends a 256-bit unsigned integer held in a *uint256.Int
// as 32 bytes little-endian to dst. A nil value encodes as zero.
func AppendUint256(dst []byte, v *uint256.Int) []byte {
	var b [32]byte
	if v != nil {
		be := v.Bytes32() // big-endian
		for i := 0; i < 32; i++ {
			b[i] = be[31-i]
		}
	}
	return append(dst, b[:]...)
}

// MarshalUint256 encodes a 256-bit unsigned integer held in a
// *uint256.Int into 32 bytes little-endian. A nil value encodes as zero.
func MarshalUint256(v *uint256.Int) []byte {
	return AppendUint256(nil, v)
}

// --- Composite type encoding ---

// MarshalVector encodes a fixed-length vector of fixed-size elements by
// concatenating each element's SSZ encoding.
func MarshalVector(elements [][]byte) []byte {
	var out []byte
	for _, e := range elements {
		out = append(out, e...)
	}
	return out
}

// MarshalList encodes a variable-length list of fixed-size elements,
// checking the element count against limit at encode time. Used by
// consensus.WithdrawalList, whose element type (Withdrawal) is fixed-size.
func MarshalList(elements [][]byte, limit int) ([]byte, error) {
	if len(elements) > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrListTooLarge, len(elements), limit)
	}
	return MarshalVector(elements), nil
}

// MarshalVariableSequence encodes a variable-length sequence of elements
// that are themselves variable-size (e.g. List[List[byte, M], N]), checking
// the element count against limit at encode time. Per the SSZ spec, each
// element contributes a 4-byte offset to the fixed head, followed by the
// elements' encodings concatenated in order in the tail.
func MarshalVariableSequence(elements [][]byte, limit int) ([]byte, error) {
	if len(elements) > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrListTooLarge, len(elements), limit)
	}
	headLen := len(elements) * BytesPerLengthOffset
	out := make([]byte, headLen, headLen+sumLens(elements))
	offset := uint32(headLen)
	for i, e := range elements {
		binary.LittleEndian.PutUint32(out[i*BytesPerLengthOffset:], offset)
		out = append(out, e...)
		offset += uint32(len(e))
	}
	return out, nil
}

func sumLens(elements [][]byte) int {
	n := 0
	for _, e := range elements {
		n += len(e)
	}
	return n
}

// --- Bitfield encoding ---

// MarshalBitvector encodes a bitvector of exactly n bits. The bits are packed
// into bytes with the least significant bit first. The length of bits must
// equal n.
func MarshalBitvector(bits []bool) []byte {
	numBytes := (len(bits) + 7) / 8
	out := make([]byte, numBytes)
	for i, b := range bits {
		if b {
			out[i/8] |= 1 << (uint(i) % 8)
		}
	}
	return out
}

// MarshalBitlist encodes a bitlist of at most limit bits, checking the
// logical length against limit at encode time. The encoding includes a
// sentinel bit to mark the length boundary.
func MarshalBitlist(bits []bool, limit int) ([]byte, error) {
	if len(bits) > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrBitlistTooLarge, len(bits), limit)
	}
	withSentinel := make([]bool, len(bits)+1)
	copy(withSentinel, bits)
	withSentinel[len(bits)] = true
	numBytes := (len(withSentinel) + 7) / 8
	out := make([]byte, numBytes)
	for i, b := range withSentinel {
		if b {
			out[i/8] |= 1 << (uint(i) % 8)
		}
	}
	return out, nil
}

// MarshalByteVector encodes a fixed-length byte vector (ByteVector[N]).
// The input must be exactly n bytes.
func MarshalByteVector(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	return out
}

// MarshalByteList encodes a variable-length byte list (ByteList[N]), checking
// the byte length against limit at encode time.
func MarshalByteList(data []byte, limit int) ([]byte, error) {
	if len(data) > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrListTooLarge, len(data), limit)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
