// Command sszcli benchmarks and verifies the ssz package: it generates
// Withdrawal containers and times their encoding, their per-element
// hash_tree_root, and the Merkleization of the element roots, verifies directory-of-fixtures test vectors against the
// core codec, or generates a Merkle multiproof over a batch of withdrawal
// roots.
//
// Usage:
//
//	sszcli bench --count 1000 --workers 4
//	sszcli verify --vectors ./testdata/vectors
//	sszcli proof --count 1000 --indices 0,5,17
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/eth2030/sszcore/consensus"
	"github.com/eth2030/sszcore/internal/fixtures"
	"github.com/eth2030/sszcore/internal/log"
	"github.com/eth2030/sszcore/ssz"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. It accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: sszcli <bench|verify|proof> [flags]")
		return 2
	}

	logger := log.New(log.INFO)

	switch args[0] {
	case "bench":
		return runBench(logger, args[1:])
	case "verify":
		return runVerify(logger, args[1:])
	case "proof":
		return runProof(logger, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		return 2
	}
}

type benchConfig struct {
	Count   uint64
	Workers int
}

func defaultBenchConfig() benchConfig {
	return benchConfig{Count: 1000, Workers: 0}
}

func runBench(logger *log.Logger, args []string) int {
	cfg := defaultBenchConfig()
	fs := newCustomFlagSet("bench")
	fs.Uint64Var(&cfg.Count, "count", cfg.Count, "number of withdrawals to generate")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "merkleization worker count (0 = GOMAXPROCS)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	wl := make(consensus.WithdrawalList, cfg.Count)
	for i := range wl {
		wl[i] = &consensus.Withdrawal{
			Index:          consensus.WithdrawalIndex(i),
			ValidatorIndex: consensus.ValidatorIndex(i),
			Amount:         consensus.Gwei(i * 1000),
		}
	}
	logger.Info("generated withdrawal batch", "count", cfg.Count)

	start := time.Now()
	var total int
	for _, w := range wl {
		enc, err := w.MarshalSSZ()
		if err != nil {
			logger.Error("marshal failed", "err", err)
			return 1
		}
		total += len(enc)
	}
	encodeElapsed := time.Since(start)
	logger.Info("encode complete", "bytes", total, "elapsed", encodeElapsed.String())

	start = time.Now()
	roots := make([][32]byte, len(wl))
	for i, w := range wl {
		root, err := w.HashTreeRoot()
		if err != nil {
			logger.Error("hash tree root failed", "err", err)
			return 1
		}
		roots[i] = root
	}
	hashElapsed := time.Since(start)
	logger.Info("per-element hash tree root complete", "elapsed", hashElapsed.String())

	start = time.Now()
	limit := nextPowerOfTwoCLI(len(roots))
	listRoot, err := ssz.MerkleizeParallel(roots, limit, cfg.Workers)
	if err != nil {
		logger.Error("list merkleize failed", "err", err)
		return 1
	}
	listElapsed := time.Since(start)
	logger.Info("list merkleize complete", "root", fmt.Sprintf("%x", listRoot), "elapsed", listElapsed.String())

	return 0
}

func nextPowerOfTwoCLI(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

type verifyConfig struct {
	VectorsDir string
}

func runVerify(logger *log.Logger, args []string) int {
	cfg := verifyConfig{VectorsDir: "./testdata/vectors"}
	fs := newCustomFlagSet("verify")
	fs.StringVar(&cfg.VectorsDir, "vectors", cfg.VectorsDir, "directory of YAML+Snappy test vector cases")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if _, err := os.Stat(cfg.VectorsDir); os.IsNotExist(err) {
		logger.Warn("vectors directory not found, nothing to verify", "dir", cfg.VectorsDir)
		return 0
	}

	cases, err := fixtures.LoadAll(cfg.VectorsDir)
	if err != nil {
		logger.Error("load vectors failed", "err", err)
		return 1
	}

	var failed int
	for _, c := range cases {
		chunks := ssz.Pack(c.Encoded)
		root, err := ssz.Merkleize(chunks, nextPowerOfTwoCLI(len(chunks)))
		if err != nil {
			logger.Error("merkleize failed", "case", c.Name, "err", err)
			failed++
			continue
		}
		if root != c.Root {
			logger.Error("root mismatch", "case", c.Name, "got", fmt.Sprintf("%x", root), "want", fmt.Sprintf("%x", c.Root))
			failed++
			continue
		}
		logger.Info("case passed", "case", c.Name)
	}

	logger.Info("verify complete", "total", len(cases), "failed", failed)
	if failed > 0 {
		return 1
	}
	return 0
}

type proofConfig struct {
	Count   uint64
	Indices string
}

func defaultProofConfig() proofConfig {
	return proofConfig{Count: consensus.MaxWithdrawalsPerPayload, Indices: "0"}
}

// runProof generates a batch of withdrawals, Merkleizes their element roots
// as List[Withdrawal, MaxWithdrawalsPerPayload], and prints a multiproof
// covering the requested leaf indices: the generalized index and sibling
// hash needed to recombine each leaf up to the list's root.
func runProof(logger *log.Logger, args []string) int {
	cfg := defaultProofConfig()
	fs := newCustomFlagSet("proof")
	fs.Uint64Var(&cfg.Count, "count", cfg.Count, "number of withdrawals to generate")
	fs.StringVar(&cfg.Indices, "indices", cfg.Indices, "comma-separated leaf indices to prove")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	if cfg.Count > consensus.MaxWithdrawalsPerPayload {
		fmt.Fprintf(os.Stderr, "Error: count %d exceeds the payload limit %d\n",
			cfg.Count, consensus.MaxWithdrawalsPerPayload)
		return 2
	}

	wl := make(consensus.WithdrawalList, cfg.Count)
	for i := range wl {
		wl[i] = &consensus.Withdrawal{
			Index:          consensus.WithdrawalIndex(i),
			ValidatorIndex: consensus.ValidatorIndex(i),
			Amount:         consensus.Gwei(i * 1000),
		}
	}

	indices, err := parseIndices(cfg.Indices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	for _, idx := range indices {
		if idx < 0 || idx >= len(wl) {
			fmt.Fprintf(os.Stderr, "Error: index %d out of range [0,%d)\n", idx, len(wl))
			return 2
		}
	}

	roots := make([][32]byte, len(wl))
	for i, w := range wl {
		root, err := w.HashTreeRoot()
		if err != nil {
			logger.Error("hash tree root failed", "err", err)
			return 1
		}
		roots[i] = root
	}

	limit := consensus.MaxWithdrawalsPerPayload
	proofHashes, helperIndices := ssz.GenerateMultiproof(roots, limit, indices)

	logger.Info("multiproof generated", "leaves", len(indices), "limit", limit, "proof_nodes", len(proofHashes))
	padded := nextPowerOfTwoCLI(limit)
	depth := 0
	for (1 << uint(depth)) < padded {
		depth++
	}
	for _, idx := range indices {
		gidx := ssz.GeneralizedIndex(depth, idx)
		fmt.Printf("leaf %d: generalized_index=%d\n", idx, gidx)
	}
	for i, h := range proofHashes {
		fmt.Printf("proof[%d]: helper_index=%d hash=%x\n", i, helperIndices[i], h)
	}

	return 0
}

func parseIndices(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}
