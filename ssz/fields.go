// fields.go implements the FieldCodec schema-registration surface for the
// container codec in container.go. A container declaration is an ordered
// []FieldCodec built from small typed constructors (Uint64Field,
// ByteVectorField, Uint64ListField, ...) that each close over a pointer
// into the caller's Go struct and carry the classifier Descriptor for
// their SSZ type. The container core never inspects struct tags or uses
// reflection: it drives the whole encode/decode/hash-tree-root cycle
// through this narrow interface, and derives fixed-vs-variable
// classification for the whole container from the field descriptors
// (DescribeContainer), rather than requiring the caller to declare it
// redundantly.
package ssz

import (
	"encoding/binary"
	"fmt"

	"github.com/holiman/uint256"
)

// FieldCodec is one container field's encode/decode/hash-tree-root bundle.
// Name is used only to annotate error messages; the core never inspects it
// otherwise. Describe exposes the field type's classifier Descriptor, from
// which the container codec derives its offset layout.
type FieldCodec interface {
	Name() string
	Describe() Descriptor
	IsFixed() bool
	FixedLen() int // meaningful only when IsFixed() is true
	Size() int     // actual encoded byte length of the current value
	Marshal() ([]byte, error)
	Unmarshal(data []byte) error
	HashTreeRoot() ([32]byte, error)
}

type baseField struct {
	name string
	desc Descriptor
}

func (b baseField) Name() string         { return b.name }
func (b baseField) Describe() Descriptor { return b.desc }
func (b baseField) IsFixed() bool        { return b.desc.IsFixedSize() }
func (b baseField) FixedLen() int        { return b.desc.fixedWidth }

// --- Basic scalar fields ---

type boolField struct {
	baseField
	ptr *bool
}

// BoolField declares a boolean container field backed by ptr.
func BoolField(name string, ptr *bool) FieldCodec {
	return &boolField{baseField{name, BasicDescriptor(1)}, ptr}
}

func (f *boolField) Size() int                { return 1 }
func (f *boolField) Marshal() ([]byte, error) { return MarshalBool(*f.ptr), nil }
func (f *boolField) Unmarshal(data []byte) error {
	v, err := UnmarshalBool(data)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	*f.ptr = v
	return nil
}
func (f *boolField) HashTreeRoot() ([32]byte, error) { return HashTreeRootBool(*f.ptr), nil }

type uint8Field struct {
	baseField
	ptr *uint8
}

// Uint8Field declares a uint8 container field backed by ptr.
func Uint8Field(name string, ptr *uint8) FieldCodec {
	return &uint8Field{baseField{name, BasicDescriptor(1)}, ptr}
}

func (f *uint8Field) Size() int                { return 1 }
func (f *uint8Field) Marshal() ([]byte, error) { return MarshalUint8(*f.ptr), nil }
func (f *uint8Field) Unmarshal(data []byte) error {
	v, err := UnmarshalUint8(data)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	*f.ptr = v
	return nil
}
func (f *uint8Field) HashTreeRoot() ([32]byte, error) { return HashTreeRootUint8(*f.ptr), nil }

type uint16Field struct {
	baseField
	ptr *uint16
}

// Uint16Field declares a uint16 container field backed by ptr.
func Uint16Field(name string, ptr *uint16) FieldCodec {
	return &uint16Field{baseField{name, BasicDescriptor(2)}, ptr}
}

func (f *uint16Field) Size() int                { return 2 }
func (f *uint16Field) Marshal() ([]byte, error) { return MarshalUint16(*f.ptr), nil }
func (f *uint16Field) Unmarshal(data []byte) error {
	v, err := UnmarshalUint16(data)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	*f.ptr = v
	return nil
}
func (f *uint16Field) HashTreeRoot() ([32]byte, error) { return HashTreeRootUint16(*f.ptr), nil }

type uint32Field struct {
	baseField
	ptr *uint32
}

// Uint32Field declares a uint32 container field backed by ptr.
func Uint32Field(name string, ptr *uint32) FieldCodec {
	return &uint32Field{baseField{name, BasicDescriptor(4)}, ptr}
}

func (f *uint32Field) Size() int                { return 4 }
func (f *uint32Field) Marshal() ([]byte, error) { return MarshalUint32(*f.ptr), nil }
func (f *uint32Field) Unmarshal(data []byte) error {
	v, err := UnmarshalUint32(data)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	*f.ptr = v
	return nil
}
func (f *uint32Field) HashTreeRoot() ([32]byte, error) { return HashTreeRootUint32(*f.ptr), nil }

type uint64Field struct {
	baseField
	ptr *uint64
}

// Uint64Field declares a uint64 container field backed by ptr.
func Uint64Field(name string, ptr *uint64) FieldCodec {
	return &uint64Field{baseField{name, BasicDescriptor(8)}, ptr}
}

func (f *uint64Field) Size() int                { return 8 }
func (f *uint64Field) Marshal() ([]byte, error) { return MarshalUint64(*f.ptr), nil }
func (f *uint64Field) Unmarshal(data []byte) error {
	v, err := UnmarshalUint64(data)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	*f.ptr = v
	return nil
}
func (f *uint64Field) HashTreeRoot() ([32]byte, error) { return HashTreeRootUint64(*f.ptr), nil }

type uint256Field struct {
	baseField
	ptr **uint256.Int
}

// Uint256Field declares a 256-bit unsigned integer container field backed
// by ptr. A nil *uint256.Int is treated as zero.
func Uint256Field(name string, ptr **uint256.Int) FieldCodec {
	return &uint256Field{baseField{name, BasicDescriptor(32)}, ptr}
}

func (f *uint256Field) Size() int                { return 32 }
func (f *uint256Field) Marshal() ([]byte, error) { return MarshalUint256(*f.ptr), nil }
func (f *uint256Field) Unmarshal(data []byte) error {
	v, err := UnmarshalUint256(data)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	*f.ptr = v
	return nil
}
func (f *uint256Field) HashTreeRoot() ([32]byte, error) {
	var chunk [32]byte
	copy(chunk[:], MarshalUint256(*f.ptr))
	return chunk, nil
}

// --- Byte vector / byte list fields ---

type byteVectorField struct {
	baseField
	ptr *[]byte
	n   int
}

// ByteVectorField declares a fixed-length ByteVector[n] container field
// backed by ptr. *ptr must hold exactly n bytes when Marshal is called.
func ByteVectorField(name string, ptr *[]byte, n int) FieldCodec {
	return &byteVectorField{baseField{name, VectorDescriptor(BasicDescriptor(1), n)}, ptr, n}
}

func (f *byteVectorField) Size() int { return f.n }
func (f *byteVectorField) Marshal() ([]byte, error) {
	if len(*f.ptr) != f.n {
		return nil, fmt.Errorf("field %q: %w: want %d bytes, have %d",
			f.name, ErrNotEnoughBytes, f.n, len(*f.ptr))
	}
	return MarshalByteVector(*f.ptr), nil
}
func (f *byteVectorField) Unmarshal(data []byte) error {
	if len(data) != f.n {
		return fmt.Errorf("field %q: %w: want %d bytes, got %d", f.name, ErrNotEnoughBytes, f.n, len(data))
	}
	*f.ptr = append([]byte(nil), data...)
	return nil
}
func (f *byteVectorField) HashTreeRoot() ([32]byte, error) {
	chunks := Pack(*f.ptr)
	root, err := Merkleize(chunks, nextPowerOfTwo(len(chunks)))
	if err != nil {
		return [32]byte{}, fmt.Errorf("field %q: %w", f.name, err)
	}
	return root, nil
}

// addressField, blsPubkeyField and blsSignatureField are byteVectorField
// specializations for the three fixed widths (20/48/96 bytes) that recur
// throughout beacon-chain containers (execution addresses, BLS public keys,
// BLS signatures). They reuse byteVectorField's marshal/unmarshal but root
// themselves through the dedicated HashTreeRootAddress/Bytes48/Bytes96
// helpers instead of a generic Pack+Merkleize call, since those widths are
// common enough in consensus containers to warrant a named fast path.
type addressField struct{ byteVectorField }

// AddressField declares a fixed 20-byte execution address container field
// backed by ptr.
func AddressField(name string, ptr *[]byte) FieldCodec {
	return &addressField{byteVectorField{baseField{name, VectorDescriptor(BasicDescriptor(1), 20)}, ptr, 20}}
}

func (f *addressField) HashTreeRoot() ([32]byte, error) {
	if len(*f.ptr) != 20 {
		return [32]byte{}, fmt.Errorf("field %q: %w: want 20 bytes, have %d", f.name, ErrNotEnoughBytes, len(*f.ptr))
	}
	var addr [20]byte
	copy(addr[:], *f.ptr)
	return HashTreeRootAddress(addr), nil
}

type blsPubkeyField struct{ byteVectorField }

// BLSPubkeyField declares a fixed 48-byte BLS public key container field
// backed by ptr.
func BLSPubkeyField(name string, ptr *[]byte) FieldCodec {
	return &blsPubkeyField{byteVectorField{baseField{name, VectorDescriptor(BasicDescriptor(1), 48)}, ptr, 48}}
}

func (f *blsPubkeyField) HashTreeRoot() ([32]byte, error) {
	if len(*f.ptr) != 48 {
		return [32]byte{}, fmt.Errorf("field %q: %w: want 48 bytes, have %d", f.name, ErrNotEnoughBytes, len(*f.ptr))
	}
	var b [48]byte
	copy(b[:], *f.ptr)
	return HashTreeRootBytes48(b), nil
}

type blsSignatureField struct{ byteVectorField }

// BLSSignatureField declares a fixed 96-byte BLS signature container field
// backed by ptr.
func BLSSignatureField(name string, ptr *[]byte) FieldCodec {
	return &blsSignatureField{byteVectorField{baseField{name, VectorDescriptor(BasicDescriptor(1), 96)}, ptr, 96}}
}

func (f *blsSignatureField) HashTreeRoot() ([32]byte, error) {
	if len(*f.ptr) != 96 {
		return [32]byte{}, fmt.Errorf("field %q: %w: want 96 bytes, have %d", f.name, ErrNotEnoughBytes, len(*f.ptr))
	}
	var b [96]byte
	copy(b[:], *f.ptr)
	return HashTreeRootBytes96(b), nil
}

type byteListField struct {
	baseField
	ptr   *[]byte
	limit int
}

// ByteListField declares a variable-length ByteList[limit] container field
// backed by ptr.
func ByteListField(name string, ptr *[]byte, limit int) FieldCodec {
	return &byteListField{baseField{name, ListDescriptor(BasicDescriptor(1))}, ptr, limit}
}

func (f *byteListField) Size() int { return len(*f.ptr) }
func (f *byteListField) Marshal() ([]byte, error) {
	out, err := MarshalByteList(*f.ptr, f.limit)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", f.name, err)
	}
	return out, nil
}
func (f *byteListField) Unmarshal(data []byte) error {
	if len(data) > f.limit {
		return fmt.Errorf("field %q: %w: %d > %d", f.name, ErrListTooLarge, len(data), f.limit)
	}
	*f.ptr = append([]byte(nil), data...)
	return nil
}
func (f *byteListField) HashTreeRoot() ([32]byte, error) {
	root := HashTreeRootByteList(*f.ptr, f.limit)
	return root, nil
}

type uint64ListField struct {
	baseField
	ptr   *[]uint64
	limit int
}

// Uint64ListField declares a variable-length List[uint64, limit] container
// field backed by ptr. Elements are encoded back to back as 8-byte
// little-endian words; the element count is checked against limit at both
// encode and decode time.
func Uint64ListField(name string, ptr *[]uint64, limit int) FieldCodec {
	return &uint64ListField{baseField{name, ListDescriptor(BasicDescriptor(8))}, ptr, limit}
}

func (f *uint64ListField) Size() int { return len(*f.ptr) * 8 }
func (f *uint64ListField) Marshal() ([]byte, error) {
	if len(*f.ptr) > f.limit {
		return nil, fmt.Errorf("field %q: %w: %d > %d", f.name, ErrListTooLarge, len(*f.ptr), f.limit)
	}
	out := make([]byte, len(*f.ptr)*8)
	for i, v := range *f.ptr {
		binary.LittleEndian.PutUint64(out[i*8:], v)
	}
	return out, nil
}
func (f *uint64ListField) Unmarshal(data []byte) error {
	if len(data)%8 != 0 {
		return fmt.Errorf("field %q: %w: length %d not a multiple of 8", f.name, ErrNotEnoughBytes, len(data))
	}
	n := len(data) / 8
	if n > f.limit {
		return fmt.Errorf("field %q: %w: %d > %d", f.name, ErrListTooLarge, n, f.limit)
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(data[i*8:])
	}
	*f.ptr = out
	return nil
}
func (f *uint64ListField) HashTreeRoot() ([32]byte, error) {
	enc, err := f.Marshal()
	if err != nil {
		return [32]byte{}, err
	}
	return HashTreeRootBasicList(enc, len(*f.ptr), 8, f.limit), nil
}

// --- Bitvector / bitlist fields ---

type bitvectorField struct {
	baseField
	ptr *Bitvector
	n   int
}

// BitvectorField declares a fixed-length Bitvector[n] container field
// backed by ptr.
func BitvectorField(name string, ptr *Bitvector, n int) FieldCodec {
	return &bitvectorField{baseField{name, BitvectorDescriptor(n)}, ptr, n}
}

func (f *bitvectorField) Size() int { return (f.n + 7) / 8 }
func (f *bitvectorField) Marshal() ([]byte, error) {
	if len(f.ptr.Bits) != f.n {
		return nil, fmt.Errorf("field %q: %w: want %d bits, have %d",
			f.name, ErrNotEnoughBytes, f.n, len(f.ptr.Bits))
	}
	return f.ptr.MarshalSSZ()
}
func (f *bitvectorField) Unmarshal(data []byte) error {
	f.ptr.N = f.n
	if err := f.ptr.UnmarshalSSZ(data); err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	return nil
}
func (f *bitvectorField) HashTreeRoot() ([32]byte, error) {
	return f.ptr.HashTreeRoot(), nil
}

type bitlistField struct {
	baseField
	ptr   *Bitlist
	limit int
}

// BitlistField declares a variable-length Bitlist[limit] container field
// backed by ptr.
func BitlistField(name string, ptr *Bitlist, limit int) FieldCodec {
	return &bitlistField{baseField{name, BitlistDescriptor()}, ptr, limit}
}

func (f *bitlistField) Size() int {
	return (len(f.ptr.Bits) / 8) + 1
}
func (f *bitlistField) Marshal() ([]byte, error) {
	f.ptr.Limit = f.limit
	out, err := f.ptr.MarshalSSZ()
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", f.name, err)
	}
	return out, nil
}
func (f *bitlistField) Unmarshal(data []byte) error {
	f.ptr.Limit = f.limit
	if err := f.ptr.UnmarshalSSZ(data); err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	return nil
}
func (f *bitlistField) HashTreeRoot() ([32]byte, error) {
	f.ptr.Limit = f.limit
	return f.ptr.HashTreeRoot(), nil
}

// --- Nested object fields (sub-containers) ---

// SSZValue is implemented by any container type that can serialize,
// deserialize, and compute its own hash tree root. ObjectField accepts any
// SSZValue as a nested field.
type SSZValue interface {
	Marshaler
	Unmarshaler
	HashRoot
}

type objectField struct {
	baseField
	value SSZValue
}

// ObjectField declares a nested container (or other SSZValue) as a
// container field. fixed/fixedLen describe the nested type's own
// classification: pass fixed=true and its constant size if the nested
// type never varies in length, or fixed=false otherwise.
func ObjectField(name string, value SSZValue, fixed bool, fixedLen int) FieldCodec {
	return &objectField{baseField{name, NestedDescriptor(fixed, fixedLen)}, value}
}

func (f *objectField) Size() int { return f.value.SizeSSZ() }
func (f *objectField) Marshal() ([]byte, error) {
	out, err := f.value.MarshalSSZ()
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", f.name, err)
	}
	return out, nil
}
func (f *objectField) Unmarshal(data []byte) error {
	if err := f.value.UnmarshalSSZ(data); err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	return nil
}
func (f *objectField) HashTreeRoot() ([32]byte, error) {
	root, err := f.value.HashTreeRoot()
	if err != nil {
		return [32]byte{}, fmt.Errorf("field %q: %w", f.name, err)
	}
	return root, nil
}
