// Package fixtures loads SSZ test-vector cases from disk for the benchmark
// CLI and the harness tests: a directory per case holding a human-readable
// YAML value document, a Snappy-compressed reference-bytes blob, and an
// expected-root document. The ssz package itself never imports this package;
// it only owes the harness the three programmatic operations described in
// the package's wire-format documentation.
package fixtures

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/snappy"
	"gopkg.in/yaml.v2"
)

// Case is a single decoded test vector: its value document, its expected
// serialized form, and its expected hash tree root.
type Case struct {
	Name    string
	Dir     string
	Value   map[interface{}]interface{}
	Encoded []byte
	Root    [32]byte
}

const (
	valueFile      = "value.yaml"
	serializedFile = "serialized.ssz_snappy"
	rootsFile      = "roots.yaml"
)

// rootsDoc mirrors the expected-root YAML document: a single "root" key
// holding a 0x-prefixed hex string.
type rootsDoc struct {
	Root string `yaml:"root"`
}

// Discover walks a directory tree and returns the paths of every case
// directory, i.e. every directory directly containing a value.yaml file.
// Paths are returned in sorted order for deterministic iteration.
func Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	var cases []string
	err = filepath.Walk(dir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return nil
		}
		if fi.Name() == valueFile {
			cases = append(cases, filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	sort.Strings(cases)
	return cases, nil
}

// Load reads a single case directory and decodes its three documents.
func Load(dir string) (*Case, error) {
	valueRaw, err := os.ReadFile(filepath.Join(dir, valueFile))
	if err != nil {
		return nil, fmt.Errorf("read value document: %w", err)
	}
	var value map[interface{}]interface{}
	if err := yaml.Unmarshal(valueRaw, &value); err != nil {
		return nil, fmt.Errorf("parse value document: %w", err)
	}

	compressed, err := os.ReadFile(filepath.Join(dir, serializedFile))
	if err != nil {
		return nil, fmt.Errorf("read serialized blob: %w", err)
	}
	encoded, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("decompress serialized blob: %w", err)
	}

	rootsRaw, err := os.ReadFile(filepath.Join(dir, rootsFile))
	if err != nil {
		return nil, fmt.Errorf("read roots document: %w", err)
	}
	var doc rootsDoc
	if err := yaml.Unmarshal(rootsRaw, &doc); err != nil {
		return nil, fmt.Errorf("parse roots document: %w", err)
	}
	root, err := decodeRoot(doc.Root)
	if err != nil {
		return nil, fmt.Errorf("decode expected root: %w", err)
	}

	return &Case{
		Name:    filepath.Base(dir),
		Dir:     dir,
		Value:   value,
		Encoded: encoded,
		Root:    root,
	}, nil
}

func decodeRoot(s string) ([32]byte, error) {
	var root [32]byte
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return root, err
	}
	if len(b) != 32 {
		return root, fmt.Errorf("root must be 32 bytes, got %d", len(b))
	}
	copy(root[:], b)
	return root, nil
}

// LoadAll loads every case directory discovered under dir.
func LoadAll(dir string) ([]*Case, error) {
	dirs, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	cases := make([]*Case, 0, len(dirs))
	for _, d := range dirs {
		c, err := Load(d)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", d, err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}
