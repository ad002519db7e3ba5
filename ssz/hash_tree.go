// hash_tree.go implements SSZ hash tree root computation helpers that build
// on the zero-hash table and Merkleize engine in merkle.go:
//   - ChunkCount helpers that follow the SSZ spec for basic/composite types,
//     used by merkle.go's byte-list/bitlist/basic-list root functions
//   - Fixed-width field root helpers (addresses, BLS-sized byte vectors),
//     used by the AddressField/BLSPubkeyField/BLSSignatureField container
//     fields in fields.go
//   - Multiproof generation for containers and vectors, exposed through
//     cmd/sszcli's proof subcommand
package ssz

import "sort"

// --- Chunk count calculation ---

// ChunkCountBasic returns the number of 32-byte chunks needed to pack
// n values of the given elemByteSize. Per the SSZ spec, basic types
// are packed into 32-byte chunks.
func ChunkCountBasic(n, elemByteSize int) int {
	totalBytes := n * elemByteSize
	return (totalBytes + BytesPerChunk - 1) / BytesPerChunk
}

// ChunkCountBitvector returns the number of chunks for a Bitvector[N].
// Each chunk holds 256 bits.
func ChunkCountBitvector(n int) int {
	return (n + 255) / 256
}

// ChunkCountBitlist returns the chunk limit for a Bitlist[N].
// The limit is the number of chunks needed for the max capacity.
func ChunkCountBitlist(maxLen int) int {
	return (maxLen + 255) / 256
}

// ChunkCountByteVector returns the chunks for a ByteVector[N].
func ChunkCountByteVector(n int) int {
	return (n + BytesPerChunk - 1) / BytesPerChunk
}

// ChunkCountByteList returns the chunk limit for a ByteList[N].
func ChunkCountByteList(maxLen int) int {
	return (maxLen + BytesPerChunk - 1) / BytesPerChunk
}

// --- Container field root helpers ---

// HashTreeRootAddress computes the hash tree root of a 20-byte address.
// The address is left-aligned in a 32-byte chunk (zero-padded on the right).
func HashTreeRootAddress(addr [20]byte) [32]byte {
	var chunk [32]byte
	copy(chunk[:20], addr[:])
	return chunk
}

// HashTreeRootBytes48 computes the hash tree root of a 48-byte fixed vector
// (e.g., a BLS public key). Per SSZ, this is Merkleize(pack(value)).
func HashTreeRootBytes48(b [48]byte) [32]byte {
	chunks := Pack(b[:])
	root, err := Merkleize(chunks, nextPowerOfTwo(len(chunks)))
	if err != nil {
		panic(err)
	}
	return root
}

// HashTreeRootBytes96 computes the hash tree root of a 96-byte fixed vector
// (e.g., a BLS signature). Per SSZ, this is Merkleize(pack(value)).
func HashTreeRootBytes96(b [96]byte) [32]byte {
	chunks := Pack(b[:])
	root, err := Merkleize(chunks, nextPowerOfTwo(len(chunks)))
	if err != nil {
		panic(err)
	}
	return root
}

// --- Multiproof support ---

// GeneralizedIndex returns the generalized index for a given depth and
// position within a binary Merkle tree. The root has generalized index 1.
// At depth d, the leftmost leaf has index 2^d and the rightmost 2^(d+1)-1.
func GeneralizedIndex(depth, pos int) uint64 {
	return (1 << uint(depth)) + uint64(pos)
}

// GenerateMultiproof generates a Merkle multiproof for the specified leaf
// indices within a set of chunks Merkleized to the given limit.
// Returns the auxiliary (sibling) hashes needed to reconstruct the root
// and the helper indices indicating which branches to include.
func GenerateMultiproof(chunks [][32]byte, limit int, indices []int) ([][32]byte, []uint64) {
	limit = nextPowerOfTwo(limit)
	depth := treeDepth(limit)

	// Build the full tree.
	padded := make([][32]byte, limit)
	copy(padded, chunks)
	zeros := zeroHashes(depth)
	for i := len(chunks); i < limit; i++ {
		padded[i] = zeros[0]
	}

	layers := make([][][32]byte, depth+1)
	layers[0] = padded
	for d := 0; d < depth; d++ {
		sz := len(layers[d]) / 2
		layers[d+1] = make([][32]byte, sz)
		for i := 0; i < sz; i++ {
			layers[d+1][i] = hash(layers[d][2*i], layers[d][2*i+1])
		}
	}

	// Determine which nodes are needed. Walk from each target leaf
	// up to the root, marking siblings as needed.
	needed := make(map[uint64]bool) // generalized indices of needed proof nodes
	provided := make(map[uint64]bool)
	for _, idx := range indices {
		gidx := GeneralizedIndex(depth, idx)
		provided[gidx] = true
	}

	for _, idx := range indices {
		gidx := GeneralizedIndex(depth, idx)
		for gidx > 1 {
			sibling := gidx ^ 1
			if !provided[sibling] {
				needed[sibling] = true
			}
			gidx /= 2
			provided[gidx] = true
		}
	}

	// Collect proof hashes and helper indices in ascending generalized-index
	// order, so the proof is identical across runs.
	sorted := make([]uint64, 0, len(needed))
	for gidx := range needed {
		sorted = append(sorted, gidx)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var proofHashes [][32]byte
	var helperIndices []uint64
	for _, gidx := range sorted {
		d := 0
		gi := gidx
		for gi > 1 {
			gi /= 2
			d++
		}
		layerDepth := depth - d
		pos := int(gidx) - (1 << uint(d))
		if layerDepth >= 0 && layerDepth <= depth && pos >= 0 && pos < len(layers[layerDepth]) {
			proofHashes = append(proofHashes, layers[layerDepth][pos])
			helperIndices = append(helperIndices, gidx)
		}
	}

	return proofHashes, helperIndices
}

