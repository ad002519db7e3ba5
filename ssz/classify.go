// classify.go implements the SSZ type classifier: deciding whether a type
// is basic, fixed-size, or variable-size, and computing the byte widths
// that the collection and container codecs need to lay out their offset
// tables. Go has no compile-time dependent types, so a Descriptor is built
// once per schema (at var-init or inside a constructor) instead of derived
// by the compiler; every value of that type then reuses the same
// Descriptor, making classification a pure function of the type in
// practice even though it is evaluated at runtime.
package ssz

// Kind enumerates the closed SSZ type taxonomy.
type Kind int

const (
	KindBasic Kind = iota
	KindVector
	KindList
	KindBitvector
	KindBitlist
	KindContainer
)

func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindVector:
		return "vector"
	case KindList:
		return "list"
	case KindBitvector:
		return "bitvector"
	case KindBitlist:
		return "bitlist"
	case KindContainer:
		return "container"
	default:
		return "unknown"
	}
}

// Descriptor classifies an SSZ type: its Kind, whether it is fixed-size,
// and the byte width a fixed-size value occupies (or the 4-byte offset
// placeholder width, for a variable-size field nested in a container).
type Descriptor struct {
	kind       Kind
	fixed      bool
	fixedWidth int // meaningful only when fixed is true
}

// IsBasic reports whether the descriptor is one of the basic SSZ types
// (boolean or fixed-width unsigned integer).
func (d Descriptor) IsBasic() bool { return d.kind == KindBasic }

// IsFixedSize reports whether every value of this type encodes to the same
// byte length.
func (d Descriptor) IsFixedSize() bool { return d.fixed }

// IsVariableSize reports whether the encoded byte length varies by value.
func (d Descriptor) IsVariableSize() bool { return !d.fixed }

// Kind returns the type's classification.
func (d Descriptor) Kind() Kind { return d.kind }

// FixedWidth returns the encoded byte length of any value of this
// descriptor's type when IsFixedSize() is true. For a variable-size type it
// returns BytesPerLengthOffset, the width of the 4-byte offset word such a
// field occupies in a container's fixed section; the container codec sums
// FixedWidth over all fields to get that section's length.
func (d Descriptor) FixedWidth() int {
	if !d.fixed {
		return BytesPerLengthOffset
	}
	return d.fixedWidth
}

// BasicDescriptor returns the Descriptor for a basic type of the given
// byte width (1 for bool/uint8, 2/4/8/32 for uint16/32/64/256).
func BasicDescriptor(width int) Descriptor {
	return Descriptor{kind: KindBasic, fixed: true, fixedWidth: width}
}

// VectorDescriptor returns the Descriptor for a Vector<T,N> given the
// element descriptor and the vector length n.
func VectorDescriptor(elem Descriptor, n int) Descriptor {
	if !elem.IsFixedSize() {
		return Descriptor{kind: KindVector, fixed: false}
	}
	return Descriptor{kind: KindVector, fixed: true, fixedWidth: n * elem.FixedWidth()}
}

// ListDescriptor returns the Descriptor for a List<T,N>. Lists are always
// variable-size regardless of the element type, since their length is
// not fixed by the type alone.
func ListDescriptor(Descriptor) Descriptor {
	return Descriptor{kind: KindList, fixed: false}
}

// BitvectorDescriptor returns the Descriptor for a Bitvector<N>.
func BitvectorDescriptor(n int) Descriptor {
	return Descriptor{kind: KindBitvector, fixed: true, fixedWidth: (n + 7) / 8}
}

// BitlistDescriptor returns the Descriptor for a Bitlist<N>, always
// variable-size.
func BitlistDescriptor() Descriptor {
	return Descriptor{kind: KindBitlist, fixed: false}
}

// ContainerDescriptor returns the Descriptor for a container given the
// descriptors of its fields in declaration order. The container is
// fixed-size iff every field is fixed-size. The descriptor's width is the
// sum of field widths with variable-size fields contributing the 4-byte
// offset placeholder; for a variable-size container that sum is its fixed
// section length, kept internally for the container codec's layout.
func ContainerDescriptor(fields []Descriptor) Descriptor {
	fixed := true
	width := 0
	for _, f := range fields {
		if !f.IsFixedSize() {
			fixed = false
			width += BytesPerLengthOffset
		} else {
			width += f.FixedWidth()
		}
	}
	return Descriptor{kind: KindContainer, fixed: fixed, fixedWidth: width}
}

// NestedDescriptor returns the Descriptor for a nested value whose
// classification is already known at declaration time (a sub-container
// wired in via ObjectField): fixed-size with the given width, or
// variable-size.
func NestedDescriptor(fixed bool, width int) Descriptor {
	if !fixed {
		return Descriptor{kind: KindContainer, fixed: false}
	}
	return Descriptor{kind: KindContainer, fixed: true, fixedWidth: width}
}

// ValueSize returns the actual encoded byte length of a concrete value
// given its descriptor and (for variable-size types) the value's encoded
// form. For fixed-size descriptors this is simply FixedWidth(); callers
// holding a variable-size value should instead measure the encoded bytes
// directly (len(encoded)), since ValueSize has no way to inspect a value
// it was not given.
func ValueSize(d Descriptor, encodedLen int) int {
	if d.IsFixedSize() {
		return d.fixedWidth
	}
	return encodedLen
}
