package cpool

import (
	"fmt"
	"io"

	"github.com/go-jclass/jclass/bin"
)

// UnknownTagError is returned when a pool tag byte is outside the known
// set of seventeen variants: fatal for the containing pool (spec.md §7).
type UnknownTagError struct {
	Index uint16
	Tag   Tag
}

func (e UnknownTagError) Error() string {
	return fmt.Sprintf("cpool: unknown tag %d at index %d", e.Tag, e.Index)
}

// Read reads a constant pool from r: a u16 count followed by that many
// tagged entries, wide entries consuming two indices (spec.md §4.3).
// Cross-referencing entries keep the raw indices they were read with; no
// separate placeholder type is needed since entries are addressed by index
// (see Design Notes §9). A second pass (Resolve) validates those
// references once the whole pool has been read, so forward references
// always succeed during Read itself.
func Read(r io.Reader) (*Pool, error) {
	count, err := bin.ReadU16(r)
	if err != nil {
		return nil, err
	}
	p := New()
	idx := uint16(1)
	for idx < count {
		tagByte, err := bin.ReadU8(r)
		if err != nil {
			return nil, err
		}
		tag := Tag(tagByte)
		if !tag.Known() {
			return nil, UnknownTagError{Index: idx, Tag: tag}
		}
		logger.Printf("reading tag=%s at index=%d", tag.Name(), idx)
		e, err := readEntry(r, tag)
		if err != nil {
			return nil, err
		}
		p.set(idx, e)
		if e.Wide() {
			p.set(idx+1, Entry{reserved: true})
			idx += 2
		} else {
			idx++
		}
	}
	return p, nil
}

func readEntry(r io.Reader, tag Tag) (Entry, error) {
	switch tag {
	case TagUTF8:
		n, err := bin.ReadU16(r)
		if err != nil {
			return Entry{}, err
		}
		raw, err := bin.ReadBytes(r, int(n))
		if err != nil {
			return Entry{}, err
		}
		return UTF8Entry(decodeModifiedUTF8(raw)), nil
	case TagInteger:
		v, err := bin.ReadI32(r)
		return IntegerEntry(v), err
	case TagFloat:
		v, err := bin.ReadF32(r)
		return FloatEntry(v), err
	case TagLong:
		v, err := bin.ReadI64(r)
		return LongEntry(v), err
	case TagDouble:
		v, err := bin.ReadF64(r)
		return DoubleEntry(v), err
	case TagClass:
		v, err := bin.ReadU16(r)
		return ClassEntry(v), err
	case TagString:
		v, err := bin.ReadU16(r)
		return StringEntry(v), err
	case TagFieldref, TagMethodref, TagInterfaceMethodref:
		classIdx, err := bin.ReadU16(r)
		if err != nil {
			return Entry{}, err
		}
		natIdx, err := bin.ReadU16(r)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Tag: tag, ClassIndex: classIdx, NameAndTypeIndex: natIdx}, nil
	case TagNameAndType:
		nameIdx, err := bin.ReadU16(r)
		if err != nil {
			return Entry{}, err
		}
		descIdx, err := bin.ReadU16(r)
		if err != nil {
			return Entry{}, err
		}
		return NameAndTypeEntry(nameIdx, descIdx), nil
	case TagMethodHandle:
		kind, err := bin.ReadU8(r)
		if err != nil {
			return Entry{}, err
		}
		ref, err := bin.ReadU16(r)
		if err != nil {
			return Entry{}, err
		}
		return MethodHandleEntry(kind, ref), nil
	case TagMethodType:
		v, err := bin.ReadU16(r)
		return MethodTypeEntry(v), err
	case TagDynamic, TagInvokeDynamic:
		attrIdx, err := bin.ReadU16(r)
		if err != nil {
			return Entry{}, err
		}
		natIdx, err := bin.ReadU16(r)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Tag: tag, BootstrapAttrIndex: attrIdx, NameAndTypeIndex: natIdx}, nil
	case TagModule:
		v, err := bin.ReadU16(r)
		return ModuleEntry(v), err
	case TagPackage:
		v, err := bin.ReadU16(r)
		return PackageEntry(v), err
	default:
		return Entry{}, UnknownTagError{Tag: tag}
	}
}
