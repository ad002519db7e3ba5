// container.go implements the container codec over a declared
// []FieldCodec: a two-cursor (head/tail) encode, an offset-table decode,
// and a per-field hash tree root Merkleization. Fixed-vs-variable
// classification for the whole container is derived automatically from
// the field descriptors — callers never declare it redundantly.
package ssz

import (
	"encoding/binary"
	"fmt"
)

// DescribeContainer derives the container-level Descriptor from the
// declared fields, per the classifier's rule: fixed-size iff every field
// is fixed-size, with each variable-size field contributing the 4-byte
// offset placeholder to the fixed section.
func DescribeContainer(fields []FieldCodec) Descriptor {
	ds := make([]Descriptor, len(fields))
	for i, f := range fields {
		ds[i] = f.Describe()
	}
	return ContainerDescriptor(ds)
}

// fixedSectionLen returns F: the sum of fixed field widths, with each
// variable-size field contributing BytesPerLengthOffset as a placeholder.
func fixedSectionLen(fields []FieldCodec) int {
	total := 0
	for _, f := range fields {
		total += f.Describe().FixedWidth()
	}
	return total
}

// ContainerIsFixed reports whether every field in fields is fixed-size,
// i.e. whether the container itself has no offset table.
func ContainerIsFixed(fields []FieldCodec) bool {
	return DescribeContainer(fields).IsFixedSize()
}

// EncodeContainer serializes fields using the standard SSZ two-cursor
// layout: fixed-size fields (and, for variable-size fields, their 4-byte
// offset) are written at the head cursor in declaration order; each
// variable-size field's actual encoding is appended at the tail.
func EncodeContainer(fields []FieldCodec) ([]byte, error) {
	head := fixedSectionLen(fields)

	var varEncodings [][]byte
	for _, f := range fields {
		if f.IsFixed() {
			continue
		}
		enc, err := f.Marshal()
		if err != nil {
			return nil, err
		}
		varEncodings = append(varEncodings, enc)
	}

	out := make([]byte, 0, head)
	tail := head
	varIdx := 0
	for _, f := range fields {
		if f.IsFixed() {
			enc, err := f.Marshal()
			if err != nil {
				return nil, err
			}
			if len(enc) != f.FixedLen() {
				return nil, fmt.Errorf("field %q: %w: declared fixed width %d, got %d",
					f.Name(), ErrNotEnoughBytes, f.FixedLen(), len(enc))
			}
			out = append(out, enc...)
			continue
		}
		out = AppendUint32(out, uint32(tail))
		tail += len(varEncodings[varIdx])
		varIdx++
	}
	for _, enc := range varEncodings {
		out = append(out, enc...)
	}
	return out, nil
}

// DecodeContainer deserializes data into fields using the standard SSZ
// offset-table layout, writing each decoded field value back through its
// FieldCodec.Unmarshal.
func DecodeContainer(data []byte, fields []FieldCodec) error {
	fixedLen := fixedSectionLen(fields)

	type varSlot struct {
		field  FieldCodec
		offset uint32
	}
	var varSlots []varSlot

	pos := 0
	for _, f := range fields {
		if f.IsFixed() {
			end := pos + f.FixedLen()
			if end > len(data) {
				return fmt.Errorf("field %q: %w", f.Name(), ErrNotEnoughBytes)
			}
			if err := f.Unmarshal(data[pos:end]); err != nil {
				return err
			}
			pos = end
			continue
		}
		if pos+BytesPerLengthOffset > len(data) {
			return fmt.Errorf("field %q offset: %w", f.Name(), ErrNotEnoughBytes)
		}
		offset := binary.LittleEndian.Uint32(data[pos : pos+BytesPerLengthOffset])
		varSlots = append(varSlots, varSlot{f, offset})
		pos += BytesPerLengthOffset
	}

	if len(varSlots) == 0 {
		if pos != len(data) {
			return fmt.Errorf("%w: %d bytes after fixed-size container", ErrExtraBytes, len(data)-pos)
		}
		return nil
	}

	prev := uint32(fixedLen)
	for i, slot := range varSlots {
		start := slot.offset
		var end uint32
		if i+1 < len(varSlots) {
			end = varSlots[i+1].offset
		} else {
			end = uint32(len(data))
		}
		if start < prev || start < uint32(fixedLen) || uint64(end) > uint64(len(data)) || start > end {
			return fmt.Errorf("field %q: %w: offset %d (prev %d, fixed %d, len %d)",
				slot.field.Name(), ErrMalformedOffset, start, prev, fixedLen, len(data))
		}
		if err := slot.field.Unmarshal(data[start:end]); err != nil {
			return err
		}
		prev = start
	}
	return nil
}

// SizeContainer returns the current encoded byte length of fields: the
// fixed section plus the actual size of every variable-size field's
// current value.
func SizeContainer(fields []FieldCodec) int {
	total := 0
	for _, f := range fields {
		d := f.Describe()
		if d.IsFixedSize() {
			total += ValueSize(d, 0)
			continue
		}
		total += BytesPerLengthOffset + ValueSize(d, f.Size())
	}
	return total
}

// HashTreeRootFields computes the container hash tree root by collecting
// each field's own hash tree root, in declaration order, and Merkleizing
// the resulting m chunks with limit m (a container's merkleization limit
// is simply its field count).
func HashTreeRootFields(fields []FieldCodec) ([32]byte, error) {
	roots := make([][32]byte, len(fields))
	for i, f := range fields {
		root, err := f.HashTreeRoot()
		if err != nil {
			return [32]byte{}, err
		}
		roots[i] = root
	}
	root, err := Merkleize(roots, len(roots))
	if err != nil {
		return [32]byte{}, err
	}
	return root, nil
}
