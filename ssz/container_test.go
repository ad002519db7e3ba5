package ssz

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// --- Fixed-size container layout ---

func TestEncodeContainerFixedFields(t *testing.T) {
	a := uint32(3)
	b := uint16(7)
	c := true
	fields := []FieldCodec{
		Uint32Field("a", &a),
		Uint16Field("b", &b),
		BoolField("c", &c),
	}

	if !ContainerIsFixed(fields) {
		t.Fatal("container of fixed fields should be fixed-size")
	}

	enc, err := EncodeContainer(fields)
	if err != nil {
		t.Fatalf("EncodeContainer: %v", err)
	}
	want := []byte{0x03, 0x00, 0x00, 0x00, 0x07, 0x00, 0x01}
	if !bytes.Equal(enc, want) {
		t.Fatalf("encoding = % x, want % x", enc, want)
	}
	if len(enc) != SizeContainer(fields) {
		t.Fatalf("encoded length = %d, SizeContainer = %d", len(enc), SizeContainer(fields))
	}

	var da uint32
	var db uint16
	var dc bool
	decoded := []FieldCodec{
		Uint32Field("a", &da),
		Uint16Field("b", &db),
		BoolField("c", &dc),
	}
	if err := DecodeContainer(enc, decoded); err != nil {
		t.Fatalf("DecodeContainer: %v", err)
	}
	if da != 3 || db != 7 || !dc {
		t.Fatalf("round trip mismatch: a=%d b=%d c=%v", da, db, dc)
	}
}

func TestDecodeContainerFixedExtraBytes(t *testing.T) {
	var a uint32
	fields := []FieldCodec{Uint32Field("a", &a)}
	if err := DecodeContainer([]byte{1, 0, 0, 0, 0xff}, fields); !errors.Is(err, ErrExtraBytes) {
		t.Fatalf("expected ErrExtraBytes, got %v", err)
	}
}

func TestDecodeContainerFixedTruncated(t *testing.T) {
	var a uint64
	fields := []FieldCodec{Uint64Field("a", &a)}
	if err := DecodeContainer([]byte{1, 2, 3}, fields); !errors.Is(err, ErrNotEnoughBytes) {
		t.Fatalf("expected ErrNotEnoughBytes, got %v", err)
	}
}

// --- Variable-size container layout ---

func TestEncodeContainerVariableField(t *testing.T) {
	a := uint32(3)
	b := uint16(7)
	vec := make([]uint64, 16)
	c := true
	fields := []FieldCodec{
		Uint32Field("a", &a),
		Uint16Field("b", &b),
		Uint64ListField("vec", &vec, 100),
		BoolField("c", &c),
	}

	if ContainerIsFixed(fields) {
		t.Fatal("container with a list field should be variable-size")
	}

	enc, err := EncodeContainer(fields)
	if err != nil {
		t.Fatalf("EncodeContainer: %v", err)
	}
	if len(enc) != 139 {
		t.Fatalf("encoded length = %d, want 139", len(enc))
	}
	wantHead := []byte{0x03, 0x00, 0x00, 0x00, 0x07, 0x00, 0x0b, 0x00, 0x00, 0x00, 0x01}
	if !bytes.Equal(enc[:11], wantHead) {
		t.Fatalf("fixed prefix = % x, want % x", enc[:11], wantHead)
	}
	for i := 11; i < len(enc); i++ {
		if enc[i] != 0 {
			t.Fatalf("tail byte %d = %#x, want 0", i, enc[i])
		}
	}
	if len(enc) != SizeContainer(fields) {
		t.Fatalf("encoded length = %d, SizeContainer = %d", len(enc), SizeContainer(fields))
	}

	var da uint32
	var db uint16
	var dvec []uint64
	var dc bool
	decoded := []FieldCodec{
		Uint32Field("a", &da),
		Uint16Field("b", &db),
		Uint64ListField("vec", &dvec, 100),
		BoolField("c", &dc),
	}
	if err := DecodeContainer(enc, decoded); err != nil {
		t.Fatalf("DecodeContainer: %v", err)
	}
	if da != 3 || db != 7 || !dc {
		t.Fatalf("round trip mismatch: a=%d b=%d c=%v", da, db, dc)
	}
	if len(dvec) != 16 {
		t.Fatalf("vec length = %d, want 16", len(dvec))
	}
	for i, v := range dvec {
		if v != 0 {
			t.Fatalf("vec[%d] = %d, want 0", i, v)
		}
	}
}

func TestDecodeContainerOffsetBelowFixedSection(t *testing.T) {
	var a uint32
	var vec []uint64
	fields := []FieldCodec{
		Uint32Field("a", &a),
		Uint64ListField("vec", &vec, 10),
	}
	// Fixed section is 4 + 4 = 8 bytes; an offset of 4 points inside it.
	data := make([]byte, 16)
	binary.LittleEndian.PutUint32(data[4:8], 4)
	if err := DecodeContainer(data, fields); !errors.Is(err, ErrMalformedOffset) {
		t.Fatalf("expected ErrMalformedOffset, got %v", err)
	}
}

func TestDecodeContainerOffsetBeyondInput(t *testing.T) {
	var vec []uint64
	fields := []FieldCodec{Uint64ListField("vec", &vec, 10)}
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, 100)
	if err := DecodeContainer(data, fields); !errors.Is(err, ErrMalformedOffset) {
		t.Fatalf("expected ErrMalformedOffset, got %v", err)
	}
}

func TestDecodeContainerNonMonotonicOffsets(t *testing.T) {
	var va, vb []uint64
	fields := []FieldCodec{
		Uint64ListField("a", &va, 10),
		Uint64ListField("b", &vb, 10),
	}
	// Fixed section is 8 bytes; second offset decreasing relative to first.
	data := make([]byte, 24)
	binary.LittleEndian.PutUint32(data[0:4], 16)
	binary.LittleEndian.PutUint32(data[4:8], 8)
	if err := DecodeContainer(data, fields); !errors.Is(err, ErrMalformedOffset) {
		t.Fatalf("expected ErrMalformedOffset, got %v", err)
	}
}

func TestEncodeContainerOffsetsMonotonic(t *testing.T) {
	v1 := []uint64{1}
	v2 := []uint64{2, 3}
	v3 := []uint64{}
	fields := []FieldCodec{
		Uint64ListField("a", &v1, 10),
		Uint64ListField("b", &v2, 10),
		Uint64ListField("c", &v3, 10),
	}
	enc, err := EncodeContainer(fields)
	if err != nil {
		t.Fatalf("EncodeContainer: %v", err)
	}

	fixedLen := 3 * BytesPerLengthOffset
	prev := uint32(0)
	for i := 0; i < 3; i++ {
		off := binary.LittleEndian.Uint32(enc[i*4 : i*4+4])
		if off < uint32(fixedLen) || off > uint32(len(enc)) {
			t.Fatalf("offset %d = %d out of range [%d, %d]", i, off, fixedLen, len(enc))
		}
		if off < prev {
			t.Fatalf("offset %d = %d decreases from %d", i, off, prev)
		}
		prev = off
	}
}

// --- Uint64ListField codec ---

func TestUint64ListFieldRoundTrip(t *testing.T) {
	in := []uint64{5, 10, 0xdeadbeef}
	var out []uint64

	enc, err := EncodeContainer([]FieldCodec{Uint64ListField("vals", &in, 8)})
	if err != nil {
		t.Fatalf("EncodeContainer: %v", err)
	}
	if err := DecodeContainer(enc, []FieldCodec{Uint64ListField("vals", &out, 8)}); err != nil {
		t.Fatalf("DecodeContainer: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("length = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("element %d = %d, want %d", i, out[i], in[i])
		}
	}
}

func TestUint64ListFieldTooLarge(t *testing.T) {
	in := []uint64{1, 2, 3}
	f := Uint64ListField("vals", &in, 2)
	if _, err := f.Marshal(); !errors.Is(err, ErrListTooLarge) {
		t.Fatalf("expected ErrListTooLarge, got %v", err)
	}
}

func TestUint64ListFieldHashTreeRootMatchesBasicList(t *testing.T) {
	in := []uint64{7, 8}
	f := Uint64ListField("vals", &in, 16)
	root, err := f.HashTreeRoot()
	if err != nil {
		t.Fatalf("HashTreeRoot: %v", err)
	}
	enc, _ := f.Marshal()
	want := HashTreeRootBasicList(enc, 2, 8, 16)
	if root != want {
		t.Fatalf("root = %x, want %x", root, want)
	}
}

// --- Container hash tree root ---

func TestHashTreeRootFieldsMatchesManualMerkleize(t *testing.T) {
	a := uint64(1)
	b := uint64(2)
	fields := []FieldCodec{
		Uint64Field("a", &a),
		Uint64Field("b", &b),
	}
	root, err := HashTreeRootFields(fields)
	if err != nil {
		t.Fatalf("HashTreeRootFields: %v", err)
	}
	want := HashTreeRootContainer([][32]byte{HashTreeRootUint64(1), HashTreeRootUint64(2)})
	if root != want {
		t.Fatalf("root = %x, want %x", root, want)
	}
}
