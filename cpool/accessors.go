package cpool

import "github.com/go-jclass/jclass/diag"

// UTF8At returns the decoded string at idx if it names a UTF8 entry.
func (p *Pool) UTF8At(idx uint16) (string, bool) {
	e := p.Get(idx)
	if e.Tag != TagUTF8 {
		return "", false
	}
	return e.UTF8, true
}

// ClassNameAt resolves a Class entry at idx to its binary class name,
// mirroring jacobin's GetClassNameFromCPclassref.
func (p *Pool) ClassNameAt(idx uint16) (string, bool) {
	e := p.Get(idx)
	if e.Tag != TagClass {
		return "", false
	}
	return p.UTF8At(e.NameIndex)
}

// StringValueAt resolves a String entry at idx to its referenced UTF8 text.
func (p *Pool) StringValueAt(idx uint16) (string, bool) {
	e := p.Get(idx)
	if e.Tag != TagString {
		return "", false
	}
	return p.UTF8At(e.ValueIndex)
}

// NameAndType is the resolved (name, descriptor) pair of a NameAndType entry.
type NameAndType struct {
	Name       string
	Descriptor string
}

// NameAndTypeAt resolves a NameAndType entry at idx.
func (p *Pool) NameAndTypeAt(idx uint16) (NameAndType, bool) {
	e := p.Get(idx)
	if e.Tag != TagNameAndType {
		return NameAndType{}, false
	}
	name, ok1 := p.UTF8At(e.NatNameIndex)
	desc, ok2 := p.UTF8At(e.NatDescIndex)
	if !ok1 || !ok2 {
		return NameAndType{}, false
	}
	return NameAndType{Name: name, Descriptor: desc}, true
}

// Ref is the resolved (class, name, descriptor) triple named by a
// Fieldref/Methodref/InterfaceMethodref entry.
type Ref struct {
	Class      string
	Name       string
	Descriptor string
}

// RefAt resolves a Fieldref, Methodref or InterfaceMethodref entry at idx,
// mirroring jacobin's GetMethInfoFromCPmethref.
func (p *Pool) RefAt(idx uint16) (Ref, bool) {
	e := p.Get(idx)
	switch e.Tag {
	case TagFieldref, TagMethodref, TagInterfaceMethodref:
	default:
		return Ref{}, false
	}
	class, ok := p.ClassNameAt(e.ClassIndex)
	if !ok {
		return Ref{}, false
	}
	nat, ok := p.NameAndTypeAt(e.NameAndTypeIndex)
	if !ok {
		return Ref{}, false
	}
	return Ref{Class: class, Name: nat.Name, Descriptor: nat.Descriptor}, true
}

// Resolve validates every cross-reference in the pool, emitting a
// diag.KindBadRef diagnostic for each reference that names an entry of the
// wrong variant (or an unused index) without removing the offending entry:
// spec.md §4.3's "Failure modes" requires the placeholder to survive so a
// lossy pool can still round-trip. This is the "second pass" referred to in
// spec.md §4.3 step 4 and Design Notes §9 — because entries are addressed
// by index rather than by pointer, the pass only needs to check, not
// rewrite, the pool.
func (p *Pool) Resolve() *diag.List {
	list := &diag.List{}
	p.Each(func(idx uint16, e Entry) {
		check := func(ref uint16, want Tag, field string) {
			if ref == 0 {
				return
			}
			got := p.Get(ref)
			if got.IsZero() || got.Tag != want {
				list.Warnf(diag.KindBadRef, e.Tag.Name(),
					"entry %d field %s references index %d, expected %s", idx, field, ref, want.Name())
			}
		}
		switch e.Tag {
		case TagClass, TagModule, TagPackage:
			check(e.NameIndex, TagUTF8, "name")
		case TagString:
			check(e.ValueIndex, TagUTF8, "value")
		case TagMethodType:
			check(e.ValueIndex, TagUTF8, "descriptor")
		case TagFieldref, TagMethodref, TagInterfaceMethodref:
			check(e.ClassIndex, TagClass, "class")
			check(e.NameAndTypeIndex, TagNameAndType, "nameAndType")
		case TagNameAndType:
			check(e.NatNameIndex, TagUTF8, "name")
			check(e.NatDescIndex, TagUTF8, "descriptor")
		case TagMethodHandle:
			ref := p.Get(e.RefIndex)
			if ref.IsZero() || (ref.Tag != TagFieldref && ref.Tag != TagMethodref && ref.Tag != TagInterfaceMethodref) {
				list.Warnf(diag.KindBadRef, e.Tag.Name(),
					"entry %d field reference references index %d, expected a ref entry", idx, e.RefIndex)
			}
		case TagDynamic, TagInvokeDynamic:
			check(e.NameAndTypeIndex, TagNameAndType, "nameAndType")
		}
	})
	return list
}
