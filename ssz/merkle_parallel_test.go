package ssz

import (
	"errors"
	"testing"
)

func makeChunks(n int) [][32]byte {
	chunks := make([][32]byte, n)
	for i := range chunks {
		chunks[i][0] = byte(i + 1)
		chunks[i][31] = byte(i * 7)
	}
	return chunks
}

func TestMerkleizeParallelMatchesSequential(t *testing.T) {
	counts := []int{0, 1, 2, 3, 4, 5, 7, 8, 9, 15, 16, 17, 31, 33, 64}
	for _, count := range counts {
		chunks := makeChunks(count)
		limit := nextPowerOfTwo(count)
		want := merkleizeSequential(chunks, limit)
		for _, workers := range []int{1, 2, 4, 8} {
			got, err := MerkleizeParallel(chunks, limit, workers)
			if err != nil {
				t.Fatalf("count=%d workers=%d: %v", count, workers, err)
			}
			if got != want {
				t.Fatalf("count=%d workers=%d: root %x differs from sequential %x",
					count, workers, got, want)
			}
		}
	}
}

func TestMerkleizeParallelWithLargerLimit(t *testing.T) {
	// The zero-hash extension above the split point must match the
	// sequential algorithm for limits far above the chunk count.
	chunks := makeChunks(6)
	for _, limit := range []int{8, 16, 1024} {
		want := merkleizeSequential(chunks, limit)
		got, err := MerkleizeParallel(chunks, limit, 4)
		if err != nil {
			t.Fatalf("limit=%d: %v", limit, err)
		}
		if got != want {
			t.Fatalf("limit=%d: root %x differs from sequential %x", limit, got, want)
		}
	}
}

func TestMerkleizeParallelDefaultWorkers(t *testing.T) {
	chunks := makeChunks(32)
	want := merkleizeSequential(chunks, 32)
	got, err := MerkleizeParallel(chunks, 32, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("workers=0 (GOMAXPROCS) root mismatch")
	}
}

func TestMerkleizeParallelLimitExceeded(t *testing.T) {
	chunks := makeChunks(5)
	_, err := MerkleizeParallel(chunks, 4, 2)
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
}

func TestMerkleizeDispatchesLargeInputs(t *testing.T) {
	// Merkleize hands large inputs to the parallel path; the result must be
	// indistinguishable from the sequential algorithm.
	chunks := makeChunks(100)
	limit := nextPowerOfTwo(len(chunks))
	got, err := Merkleize(chunks, limit)
	if err != nil {
		t.Fatal(err)
	}
	if got != merkleizeSequential(chunks, limit) {
		t.Fatal("Merkleize root differs between dispatch paths")
	}
}
