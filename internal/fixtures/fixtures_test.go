package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/snappy"
)

func writeCase(t *testing.T, dir string, value string, encoded []byte, root string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, valueFile), []byte(value), 0o644); err != nil {
		t.Fatalf("write value.yaml: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, serializedFile), snappy.Encode(nil, encoded), 0o644); err != nil {
		t.Fatalf("write serialized.ssz_snappy: %v", err)
	}
	rootsDoc := "root: '" + root + "'\n"
	if err := os.WriteFile(filepath.Join(dir, rootsFile), []byte(rootsDoc), 0o644); err != nil {
		t.Fatalf("write roots.yaml: %v", err)
	}
}

func TestDiscoverFindsCaseDirectories(t *testing.T) {
	root := t.TempDir()
	writeCase(t, filepath.Join(root, "case_a"), "value: 1\n", []byte{1, 0, 0, 0}, "0x"+zeroHex())
	writeCase(t, filepath.Join(root, "nested", "case_b"), "value: 2\n", []byte{2, 0, 0, 0}, "0x"+zeroHex())

	dirs, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("expected 2 case directories, got %d: %v", len(dirs), dirs)
	}
}

func TestDiscoverRejectsNonDirectory(t *testing.T) {
	root := t.TempDir()
	f := filepath.Join(root, "not_a_dir")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Discover(f); err == nil {
		t.Fatal("expected error for non-directory path")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uint64_case")
	want := []byte{0x2a, 0, 0, 0, 0, 0, 0, 0}
	writeCase(t, dir, "value: 42\n", want, "0x"+zeroHex())

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Encoded) != len(want) {
		t.Fatalf("encoded length = %d, want %d", len(c.Encoded), len(want))
	}
	for i := range want {
		if c.Encoded[i] != want[i] {
			t.Fatalf("encoded byte %d mismatch: got %#x, want %#x", i, c.Encoded[i], want[i])
		}
	}
	if c.Value["value"] != 42 {
		t.Fatalf("decoded value = %v, want 42", c.Value["value"])
	}
	for _, b := range c.Root {
		if b != 0 {
			t.Fatalf("expected zero root, got %x", c.Root)
		}
	}
}

func TestLoadRejectsMalformedRoot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "bad_root")
	writeCase(t, dir, "value: 1\n", []byte{1}, "0xdead")
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for short root")
	}
}

func TestLoadAll(t *testing.T) {
	root := t.TempDir()
	writeCase(t, filepath.Join(root, "a"), "value: 1\n", []byte{1}, "0x"+zeroHex())
	writeCase(t, filepath.Join(root, "b"), "value: 2\n", []byte{2}, "0x"+zeroHex())

	cases, err := LoadAll(root)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cases))
	}
}

func zeroHex() string {
	return "0000000000000000000000000000000000000000000000000000000000000000"[:64]
}
