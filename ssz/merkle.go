package ssz

import (
	"encoding/binary"
	"fmt"
	"sync"

	sha256simd "github.com/minio/sha256-simd"
)

// hash combines two 32-byte inputs using the package's chunk-pair hasher.
// sha256-simd is API-compatible with crypto/sha256 but SIMD-accelerated; it
// is used here purely as the externally supplied H(a||b) primitive the
// Merkleization engine is built against, never as a general crypto surface.
func hash(a, b [32]byte) [32]byte {
	var combined [64]byte
	copy(combined[:32], a[:])
	copy(combined[32:], b[:])
	return sha256simd.Sum256(combined[:])
}

// hashPairsInPlace hashes adjacent pairs of layer[:2*n] into layer[:n],
// reusing the same backing array. Safe because for every i, the read
// indices 2i and 2i+1 are always >= the write index i.
func hashPairsInPlace(layer [][32]byte, n int) {
	for i := 0; i < n; i++ {
		layer[i] = hash(layer[2*i], layer[2*i+1])
	}
}

func zeroHash() [32]byte {
	return [32]byte{}
}

var (
	zeroHashOnce  sync.Once
	zeroHashTable [][32]byte
)

// maxCachedZeroHashDepth bounds the process-wide zero-hash table. Depth 42
// comfortably covers every list and vector capacity used in practice (up to
// 2^42 elements) without growing the cache unnecessarily.
const maxCachedZeroHashDepth = 42

// zeroHashes returns the process-wide zero-hash table, up to depth levels.
// zeroHashes[0] is the zero chunk; zeroHashes[i] = H(zeroHashes[i-1],
// zeroHashes[i-1]). Built lazily once and safe for concurrent reads
// afterward.
func zeroHashes(depth int) [][32]byte {
	zeroHashOnce.Do(func() {
		zeroHashTable = make([][32]byte, maxCachedZeroHashDepth+1)
		for i := 1; i <= maxCachedZeroHashDepth; i++ {
			zeroHashTable[i] = hash(zeroHashTable[i-1], zeroHashTable[i-1])
		}
	})
	if depth <= maxCachedZeroHashDepth {
		return zeroHashTable[:depth+1]
	}
	// Depth beyond the cached ceiling: extend on demand (rare in practice).
	out := make([][32]byte, depth+1)
	copy(out, zeroHashTable)
	for i := maxCachedZeroHashDepth + 1; i <= depth; i++ {
		out[i] = hash(out[i-1], out[i-1])
	}
	return out
}

// ZeroHash returns the zero-hash at the given tree depth.
func ZeroHash(depth int) [32]byte {
	return zeroHashes(depth)[depth]
}

// nextPowerOfTwo returns the smallest power of 2 >= n.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// treeDepth returns ceil(log2(max(limit,1))).
func treeDepth(limit int) int {
	if limit <= 1 {
		return 0
	}
	d := 0
	for (1 << uint(d)) < limit {
		d++
	}
	return d
}

// Pack packs a sequence of SSZ serialized values into 32-byte chunks,
// right-padding the last chunk with zeros if needed.
func Pack(serialized []byte) [][32]byte {
	if len(serialized) == 0 {
		return nil
	}
	numChunks := (len(serialized) + BytesPerChunk - 1) / BytesPerChunk
	chunks := make([][32]byte, numChunks)
	for i := 0; i < numChunks; i++ {
		start := i * BytesPerChunk
		end := start + BytesPerChunk
		if end > len(serialized) {
			end = len(serialized)
		}
		copy(chunks[i][:], serialized[start:end])
	}
	return chunks
}

// parallelMerkleizeThreshold is the chunk count above which Merkleize hands
// the top of the tree to MerkleizeParallel instead of hashing sequentially.
const parallelMerkleizeThreshold = 4

// Merkleize computes the Merkle root of a list of chunks padded to the given
// limit (a chunk-count ceiling, not necessarily a power of two). Returns
// ErrLimitExceeded if limit is smaller than len(chunks); this is always a
// caller bug, never a data-dependent failure.
func Merkleize(chunks [][32]byte, limit int) ([32]byte, error) {
	count := len(chunks)
	if limit < count {
		return [32]byte{}, fmt.Errorf("%w: limit %d < chunk count %d", ErrLimitExceeded, limit, count)
	}
	if limit == 0 {
		return zeroHash(), nil
	}
	if count >= parallelMerkleizeThreshold && nextPowerOfTwo(limit) >= parallelMerkleizeThreshold {
		return MerkleizeParallel(chunks, limit, 0)
	}
	return merkleizeSequential(chunks, limit), nil
}

// merkleizeSequential is the single-goroutine tree-hashing algorithm: reduce
// the actual chunks to a single sub-root by pairwise hashing in place (no
// odd-count special case needed because the slice is first padded to its own
// next power of two with raw zero chunks, which reduce to the same values the
// zero-hash table holds), then extend the remaining depth by hashing in
// successive zero_hash[ℓ] entries.
func merkleizeSequential(chunks [][32]byte, limit int) [32]byte {
	count := len(chunks)
	depth := treeDepth(limit)
	if count == 0 {
		return ZeroHash(depth)
	}
	if depth == 0 {
		return chunks[0]
	}

	padded := nextPowerOfTwo(count)
	layer := make([][32]byte, padded)
	copy(layer, chunks)

	size := padded
	for size > 1 {
		half := size / 2
		hashPairsInPlace(layer, half)
		layer = layer[:half]
		size = half
	}
	root := layer[0]

	zeros := zeroHashes(depth)
	for d := treeDepth(padded); d < depth; d++ {
		root = hash(root, zeros[d])
	}
	return root
}

// MixInLength mixes a Merkle root with a length value, used for
// variable-size types (lists, bitlists, byte lists).
func MixInLength(root [32]byte, length uint64) [32]byte {
	var lengthChunk [32]byte
	binary.LittleEndian.PutUint64(lengthChunk[:8], length)
	return hash(root, lengthChunk)
}

// --- Hash tree root functions for basic types ---

// HashTreeRootBool computes the hash tree root of a boolean.
func HashTreeRootBool(v bool) [32]byte {
	var chunk [32]byte
	if v {
		chunk[0] = 1
	}
	return chunk
}

// HashTreeRootUint8 computes the hash tree root of a uint8.
func HashTreeRootUint8(v uint8) [32]byte {
	var chunk [32]byte
	chunk[0] = v
	return chunk
}

// HashTreeRootUint16 computes the hash tree root of a uint16.
func HashTreeRootUint16(v uint16) [32]byte {
	var chunk [32]byte
	binary.LittleEndian.PutUint16(chunk[:2], v)
	return chunk
}

// HashTreeRootUint32 computes the hash tree root of a uint32.
func HashTreeRootUint32(v uint32) [32]byte {
	var chunk [32]byte
	binary.LittleEndian.PutUint32(chunk[:4], v)
	return chunk
}

// HashTreeRootUint64 computes the hash tree root of a uint64.
func HashTreeRootUint64(v uint64) [32]byte {
	var chunk [32]byte
	binary.LittleEndian.PutUint64(chunk[:8], v)
	return chunk
}

// HashTreeRootBytes32 computes the hash tree root of a 32-byte fixed vector.
// Since it already fits in one chunk, it is its own root.
func HashTreeRootBytes32(b [32]byte) [32]byte {
	return b
}

// --- Hash tree root functions for composite types ---

// HashTreeRootVector computes the hash tree root of a vector of elements.
// Each element is provided as its 32-byte hash tree root.
func HashTreeRootVector(elementRoots [][32]byte) [32]byte {
	root, err := Merkleize(elementRoots, nextPowerOfTwo(len(elementRoots)))
	if err != nil {
		panic(err) // limit is derived from len(elementRoots); cannot fail
	}
	return root
}

// HashTreeRootList computes the hash tree root of a list with the given
// max length. Each element is provided as its 32-byte hash tree root.
func HashTreeRootList(elementRoots [][32]byte, maxLen int) [32]byte {
	root, err := Merkleize(elementRoots, maxLen)
	if err != nil {
		// len(elementRoots) > maxLen: upstream codec should have rejected
		// this with ErrListTooLarge before ever reaching Merkleization.
		panic(err)
	}
	return MixInLength(root, uint64(len(elementRoots)))
}

// HashTreeRootContainer computes the hash tree root of a container.
// Each field is provided as its 32-byte hash tree root.
func HashTreeRootContainer(fieldRoots [][32]byte) [32]byte {
	root, err := Merkleize(fieldRoots, len(fieldRoots))
	if err != nil {
		panic(err)
	}
	return root
}

// HashTreeRootByteList computes the hash tree root of a ByteList[N].
func HashTreeRootByteList(data []byte, maxLen int) [32]byte {
	chunks := Pack(data)
	root, err := Merkleize(chunks, ChunkCountByteList(maxLen))
	if err != nil {
		panic(err)
	}
	return MixInLength(root, uint64(len(data)))
}

// HashTreeRootBitvector computes the hash tree root of a Bitvector[N].
func HashTreeRootBitvector(bits []bool) [32]byte {
	packed := MarshalBitvector(bits)
	chunks := Pack(packed)
	root, err := Merkleize(chunks, ChunkCountBitvector(len(bits)))
	if err != nil {
		panic(err)
	}
	return root
}

// HashTreeRootBitlist computes the hash tree root of a Bitlist[N].
func HashTreeRootBitlist(bits []bool, maxLen int) [32]byte {
	packed := MarshalBitvector(bits) // pack without sentinel for hashing
	chunks := Pack(packed)
	root, err := Merkleize(chunks, ChunkCountBitlist(maxLen))
	if err != nil {
		panic(err)
	}
	return MixInLength(root, uint64(len(bits)))
}

// HashTreeRootBasicVector computes the hash tree root of a vector of basic
// type values. The serialized data is packed into chunks and Merkleized.
func HashTreeRootBasicVector(serialized []byte) [32]byte {
	chunks := Pack(serialized)
	root, err := Merkleize(chunks, nextPowerOfTwo(len(chunks)))
	if err != nil {
		panic(err)
	}
	return root
}

// HashTreeRootBasicList computes the hash tree root of a list of basic type
// values. The serialized data is packed into chunks, Merkleized with the
// limit, and mixed in with the length.
func HashTreeRootBasicList(serialized []byte, count int, elemSize int, maxLen int) [32]byte {
	chunks := Pack(serialized)
	root, err := Merkleize(chunks, ChunkCountBasic(maxLen, elemSize))
	if err != nil {
		panic(err)
	}
	return MixInLength(root, uint64(count))
}
