package ssz

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MerkleizeParallel computes the Merkle root of chunks padded to limit,
// splitting the top of the tree across goroutines once the input is large
// enough to be worth the dispatch overhead. workers bounds the number of
// concurrent goroutines this call tree may still spawn; 0 means "pick
// GOMAXPROCS", and the budget is halved on every recursive split so total
// goroutine fan-out stays bounded by the initial budget rather than growing
// with tree depth. Once the budget reaches 1 (or the chunk count drops below
// parallelMerkleizeThreshold) the call bottoms out at the sequential
// algorithm.
//
// The split point is always the largest power of two strictly below the
// chunk count (half the count when the count is itself a power of two), so
// both halves are hashed at the same sub-depth and their
// sub-roots combine directly — the root is therefore independent of
// goroutine scheduling, satisfying the determinism requirement that the
// same root is produced whether or not the call parallelized.
func MerkleizeParallel(chunks [][32]byte, limit int, workers int) ([32]byte, error) {
	count := len(chunks)
	if limit < count {
		return [32]byte{}, fmt.Errorf("%w: limit %d < chunk count %d", ErrLimitExceeded, limit, count)
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return merkleizeSplit(chunks, limit, workers), nil
}

func merkleizeSplit(chunks [][32]byte, limit int, workers int) [32]byte {
	count := len(chunks)
	if workers <= 1 || count < parallelMerkleizeThreshold {
		return merkleizeSequential(chunks, limit)
	}

	depth := treeDepth(limit)
	if depth == 0 {
		return merkleizeSequential(chunks, limit)
	}

	half := nextPowerOfTwo(count) / 2
	if half == 0 || half >= count {
		return merkleizeSequential(chunks, limit)
	}

	left := chunks[:half]
	right := chunks[half:]
	subDepth := treeDepth(half)
	nextWorkers := workers / 2

	var (
		g         errgroup.Group
		rightRoot [32]byte
	)
	g.Go(func() error {
		rightRoot = merkleizeSplit(right, half, nextWorkers)
		return nil
	})
	leftRoot := merkleizeSplit(left, half, nextWorkers)
	_ = g.Wait() // the spawned goroutine never returns an error

	root := hash(leftRoot, rightRoot)
	zeros := zeroHashes(depth)
	for d := subDepth + 1; d < depth; d++ {
		root = hash(root, zeros[d])
	}
	return root
}
