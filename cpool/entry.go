package cpool

// Entry is a single constant pool slot. Rather than subclass polymorphism,
// it is a single tagged struct: a header (Tag) plus one payload field set
// per variant, addressed by index rather than pointer so that forward
// references (a Class naming a UTF8 that appears later in the pool) need no
// placeholder indirection — the index is valid before the pool finishes
// reading (Design Notes §9, "index-based is preferred").
type Entry struct {
	Tag Tag

	// OriginalIndex is the pool index this entry was read at, or 0 if the
	// entry was constructed programmatically. Used by Pool.indexOf to
	// preserve layout on rewrite (spec.md §3 Invariants).
	OriginalIndex uint16

	// reserved marks the second slot of a wide (Long/Double) entry: an
	// unusable placeholder that Get returns as a zero Entry and that
	// lookup-by-value never matches.
	reserved bool

	UTF8 string // TagUTF8: modified-UTF8, already decoded to a Go string

	Int32   int32   // TagInteger
	Float32 float32 // TagFloat
	Int64   int64   // TagLong
	Float64 float64 // TagDouble

	NameIndex uint16 // TagClass, TagModule, TagPackage: ref -> UTF8
	ValueIndex uint16 // TagString: ref -> UTF8; TagMethodType: ref -> UTF8

	ClassIndex       uint16 // TagFieldref/Methodref/InterfaceMethodref: ref -> Class
	NameAndTypeIndex uint16 // TagFieldref/Methodref/InterfaceMethodref, TagDynamic, TagInvokeDynamic: ref -> NameAndType

	NatNameIndex uint16 // TagNameAndType: ref -> UTF8 (member name)
	NatDescIndex uint16 // TagNameAndType: ref -> UTF8 (descriptor)

	RefKind  uint8  // TagMethodHandle: 1..9
	RefIndex uint16 // TagMethodHandle: ref -> Fieldref|Methodref|InterfaceMethodref

	BootstrapAttrIndex uint16 // TagDynamic, TagInvokeDynamic: bootstrap method attr_index
}

// Wide reports whether e occupies two consecutive pool indices.
func (e Entry) Wide() bool { return e.Tag.Wide() }

// IsZero reports whether e is the zero-value placeholder returned for an
// unused, out-of-range, or reserved index.
func (e Entry) IsZero() bool { return e.Tag == 0 }

// Equal reports whether e and o have structurally identical payloads
// (used by Pool.Add's idempotence check and by-value lookup).
func (e Entry) Equal(o Entry) bool {
	if e.Tag != o.Tag {
		return false
	}
	switch e.Tag {
	case TagUTF8:
		return e.UTF8 == o.UTF8
	case TagInteger:
		return e.Int32 == o.Int32
	case TagFloat:
		return e.Float32 == o.Float32
	case TagLong:
		return e.Int64 == o.Int64
	case TagDouble:
		return e.Float64 == o.Float64
	case TagClass, TagModule, TagPackage:
		return e.NameIndex == o.NameIndex
	case TagString:
		return e.ValueIndex == o.ValueIndex
	case TagMethodType:
		return e.ValueIndex == o.ValueIndex
	case TagFieldref, TagMethodref, TagInterfaceMethodref:
		return e.ClassIndex == o.ClassIndex && e.NameAndTypeIndex == o.NameAndTypeIndex
	case TagNameAndType:
		return e.NatNameIndex == o.NatNameIndex && e.NatDescIndex == o.NatDescIndex
	case TagMethodHandle:
		return e.RefKind == o.RefKind && e.RefIndex == o.RefIndex
	case TagDynamic, TagInvokeDynamic:
		return e.BootstrapAttrIndex == o.BootstrapAttrIndex && e.NameAndTypeIndex == o.NameAndTypeIndex
	default:
		return false
	}
}

// UTF8Entry builds a UTF8 constant.
func UTF8Entry(s string) Entry { return Entry{Tag: TagUTF8, UTF8: s} }

// IntegerEntry builds an Integer constant.
func IntegerEntry(v int32) Entry { return Entry{Tag: TagInteger, Int32: v} }

// FloatEntry builds a Float constant.
func FloatEntry(v float32) Entry { return Entry{Tag: TagFloat, Float32: v} }

// LongEntry builds a Long constant.
func LongEntry(v int64) Entry { return Entry{Tag: TagLong, Int64: v} }

// DoubleEntry builds a Double constant.
func DoubleEntry(v float64) Entry { return Entry{Tag: TagDouble, Float64: v} }

// ClassEntry builds a Class constant referencing the UTF8 at nameIndex.
func ClassEntry(nameIndex uint16) Entry { return Entry{Tag: TagClass, NameIndex: nameIndex} }

// StringEntry builds a String constant referencing the UTF8 at valueIndex.
func StringEntry(valueIndex uint16) Entry { return Entry{Tag: TagString, ValueIndex: valueIndex} }

// FieldrefEntry, MethodrefEntry, InterfaceMethodrefEntry build a ref
// constant to the Class at classIndex and NameAndType at natIndex.
func FieldrefEntry(classIndex, natIndex uint16) Entry {
	return Entry{Tag: TagFieldref, ClassIndex: classIndex, NameAndTypeIndex: natIndex}
}
func MethodrefEntry(classIndex, natIndex uint16) Entry {
	return Entry{Tag: TagMethodref, ClassIndex: classIndex, NameAndTypeIndex: natIndex}
}
func InterfaceMethodrefEntry(classIndex, natIndex uint16) Entry {
	return Entry{Tag: TagInterfaceMethodref, ClassIndex: classIndex, NameAndTypeIndex: natIndex}
}

// NameAndTypeEntry builds a NameAndType constant.
func NameAndTypeEntry(nameIndex, descIndex uint16) Entry {
	return Entry{Tag: TagNameAndType, NatNameIndex: nameIndex, NatDescIndex: descIndex}
}

// MethodHandleEntry builds a MethodHandle constant.
func MethodHandleEntry(kind uint8, refIndex uint16) Entry {
	return Entry{Tag: TagMethodHandle, RefKind: kind, RefIndex: refIndex}
}

// MethodTypeEntry builds a MethodType constant.
func MethodTypeEntry(descIndex uint16) Entry {
	return Entry{Tag: TagMethodType, ValueIndex: descIndex}
}

// DynamicEntry builds a Dynamic (condy) constant.
func DynamicEntry(bootstrapAttrIndex, natIndex uint16) Entry {
	return Entry{Tag: TagDynamic, BootstrapAttrIndex: bootstrapAttrIndex, NameAndTypeIndex: natIndex}
}

// InvokeDynamicEntry builds an InvokeDynamic constant.
func InvokeDynamicEntry(bootstrapAttrIndex, natIndex uint16) Entry {
	return Entry{Tag: TagInvokeDynamic, BootstrapAttrIndex: bootstrapAttrIndex, NameAndTypeIndex: natIndex}
}

// ModuleEntry builds a Module constant.
func ModuleEntry(nameIndex uint16) Entry { return Entry{Tag: TagModule, NameIndex: nameIndex} }

// PackageEntry builds a Package constant.
func PackageEntry(nameIndex uint16) Entry { return Entry{Tag: TagPackage, NameIndex: nameIndex} }
