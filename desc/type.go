// Package desc decodes and encodes JVM field and method type descriptors,
// the compact strings such as "I", "[Ljava/lang/String;" or
// "(ILjava/lang/String;)V" that appear throughout the class-file format.
package desc

import "fmt"

// Kind identifies which alternative of the Type sum a value holds.
type Kind uint8

const (
	KindByte Kind = iota
	KindShort
	KindInt
	KindLong
	KindChar
	KindFloat
	KindDouble
	KindBoolean
	KindVoid
	KindClass
	KindArray
	KindInvalid
	KindReturnAddress
	KindUninitialized
	KindUninitializedThis
	KindTop
	KindNull
)

// Type is a JVM type: one of the primitives, a class reference, an array,
// an unparseable descriptor preserved verbatim, or one of the JVM-internal
// verification types used by StackMapTable frames.
type Type struct {
	Kind    Kind
	Class   string // set when Kind == KindClass: the binary class name
	Elem    *Type  // set when Kind == KindArray: the element type
	Raw     string // set when Kind == KindInvalid: the original descriptor text
	Source  int32  // set when Kind == KindUninitialized: the offset of the `new` instruction
}

var primitiveChars = map[byte]Kind{
	'B': KindByte,
	'S': KindShort,
	'I': KindInt,
	'J': KindLong,
	'C': KindChar,
	'F': KindFloat,
	'D': KindDouble,
	'Z': KindBoolean,
	'V': KindVoid,
}

var primitiveNames = map[Kind]string{
	KindByte:    "byte",
	KindShort:   "short",
	KindInt:     "int",
	KindLong:    "long",
	KindChar:    "char",
	KindFloat:   "float",
	KindDouble:  "double",
	KindBoolean: "boolean",
	KindVoid:    "void",
}

// Primitive returns the Type for one of the nine primitive/void kinds.
func Primitive(k Kind) Type { return Type{Kind: k} }

// ClassType returns a Type referencing the class with the given binary name
// (slash-separated, e.g. "java/lang/String").
func ClassType(name string) Type { return Type{Kind: KindClass, Class: name} }

// Array returns a Type for an array of elem.
func Array(elem Type) Type { return Type{Kind: KindArray, Elem: &elem} }

// Invalid returns a Type preserving an unparseable descriptor verbatim.
func Invalid(raw string) Type { return Type{Kind: KindInvalid, Raw: raw} }

// Uninitialized returns the JVM-internal verification type for a value
// produced by `new` at the given bytecode offset but not yet initialized.
func Uninitialized(source int32) Type { return Type{Kind: KindUninitialized, Source: source} }

var internalNames = map[Kind]string{
	KindReturnAddress:     "returnAddress",
	KindUninitializedThis: "uninitializedThis",
	KindTop:               "top",
	KindNull:              "null",
}

// ReturnAddress, UninitializedThis, Top and Null are the remaining
// JVM-internal verification types; they carry no payload.
var (
	ReturnAddress     = Type{Kind: KindReturnAddress}
	UninitializedThis = Type{Kind: KindUninitializedThis}
	Top               = Type{Kind: KindTop}
	Null              = Type{Kind: KindNull}
)

// Equal reports whether t and o describe the same type.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindClass:
		return t.Class == o.Class
	case KindArray:
		return t.Elem.Equal(*o.Elem)
	case KindInvalid:
		return t.Raw == o.Raw
	case KindUninitialized:
		return t.Source == o.Source
	default:
		return true
	}
}

// String renders t the way a descriptor tool would for diagnostics; it is
// not the descriptor encoding (see ToFieldDescriptor for that).
func (t Type) String() string {
	switch t.Kind {
	case KindClass:
		return t.Class
	case KindArray:
		return t.Elem.String() + "[]"
	case KindInvalid:
		return fmt.Sprintf("<invalid %q>", t.Raw)
	case KindUninitialized:
		return fmt.Sprintf("uninitialized(%d)", t.Source)
	default:
		if name, ok := primitiveNames[t.Kind]; ok {
			return name
		}
		if name, ok := internalNames[t.Kind]; ok {
			return name
		}
		return "?"
	}
}

// IsWide reports whether a value of this type occupies two stack/local slots.
func (t Type) IsWide() bool {
	return t.Kind == KindLong || t.Kind == KindDouble
}
