package attr

import (
	"fmt"

	"github.com/go-jclass/jclass/bin"
)

// ElementPair is one (name, value) entry of an annotation's element list.
type ElementPair struct {
	NameIndex uint16
	Value     ElementValue
}

// ElementValue is a tagged sum keyed by one ASCII byte (spec.md §4.4
// "Annotations"): primitive constants, an enum constant, a class literal,
// a nested annotation, or an array of further element values. One flat
// struct per Design Notes §9's single-tagged-struct preference.
type ElementValue struct {
	Tag byte

	ConstIndex uint16 // B C D F I J S Z s: const_value_index

	EnumTypeIndex  uint16 // e
	EnumConstIndex uint16 // e

	ClassIndex uint16 // c

	Nested *Annotation // @

	Array []ElementValue // [
}

func readElementValue(cr *bin.CountingReader) (ElementValue, error) {
	tag, err := bin.ReadU8(cr)
	if err != nil {
		return ElementValue{}, err
	}
	ev := ElementValue{Tag: tag}
	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's':
		ev.ConstIndex, err = bin.ReadU16(cr)
	case 'e':
		if ev.EnumTypeIndex, err = bin.ReadU16(cr); err != nil {
			return ElementValue{}, err
		}
		ev.EnumConstIndex, err = bin.ReadU16(cr)
	case 'c':
		ev.ClassIndex, err = bin.ReadU16(cr)
	case '@':
		var nested Annotation
		nested, err = readAnnotation(cr)
		ev.Nested = &nested
	case '[':
		n, e := bin.ReadU16(cr)
		if e != nil {
			return ElementValue{}, e
		}
		ev.Array = make([]ElementValue, n)
		for i := range ev.Array {
			if ev.Array[i], err = readElementValue(cr); err != nil {
				return ElementValue{}, err
			}
		}
	default:
		return ElementValue{}, fmt.Errorf("attr: unknown element_value tag %q", tag)
	}
	return ev, err
}

func writeElementValue(c *bin.Cursor, ev ElementValue) {
	c.U8(ev.Tag)
	switch ev.Tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's':
		c.U16(ev.ConstIndex)
	case 'e':
		c.U16(ev.EnumTypeIndex)
		c.U16(ev.EnumConstIndex)
	case 'c':
		c.U16(ev.ClassIndex)
	case '@':
		writeAnnotation(c, *ev.Nested)
	case '[':
		c.U16(uint16(len(ev.Array)))
		for _, v := range ev.Array {
			writeElementValue(c, v)
		}
	}
}

// Annotation is one @interface usage: a type plus its element/value pairs.
type Annotation struct {
	TypeIndex uint16
	Elements  []ElementPair
}

func readAnnotation(cr *bin.CountingReader) (Annotation, error) {
	typeIdx, err := bin.ReadU16(cr)
	if err != nil {
		return Annotation{}, err
	}
	n, err := bin.ReadU16(cr)
	if err != nil {
		return Annotation{}, err
	}
	elems := make([]ElementPair, n)
	for i := range elems {
		if elems[i].NameIndex, err = bin.ReadU16(cr); err != nil {
			return Annotation{}, err
		}
		if elems[i].Value, err = readElementValue(cr); err != nil {
			return Annotation{}, err
		}
	}
	return Annotation{TypeIndex: typeIdx, Elements: elems}, nil
}

func writeAnnotation(c *bin.Cursor, a Annotation) {
	c.U16(a.TypeIndex)
	c.U16(uint16(len(a.Elements)))
	for _, e := range a.Elements {
		c.U16(e.NameIndex)
		writeElementValue(c, e.Value)
	}
}

// LocalVarTargetEntry is one (start_pc, length, index) triple of a
// localvar_target (spec.md §4.4 TargetInfo).
type LocalVarTargetEntry struct {
	StartPC uint16
	Length  uint16
	Index   uint16
}

// TargetInfo is one of ten shapes keyed by TargetType, the type_annotation
// structure's target-kind byte. Every field set is zero except the one(s)
// TargetType's shape uses; TargetType alone determines which shape to
// read/write, so no separate kind enum is needed.
type TargetInfo struct {
	TargetType uint8

	TypeParameterIndex uint8 // 0x00, 0x01, 0x11, 0x12
	BoundIndex         uint8 // 0x11, 0x12

	SupertypeIndex uint16 // 0x10

	FormalParameterIndex uint8 // 0x16

	ThrowsTypeIndex uint16 // 0x17

	LocalVar []LocalVarTargetEntry // 0x40, 0x41

	ExceptionTableIndex uint16 // 0x42

	Offset uint16 // 0x43..0x46, 0x47..0x4B

	TypeArgumentIndex uint8 // 0x47..0x4B
}

func readTargetInfo(cr *bin.CountingReader, targetType uint8) (TargetInfo, error) {
	ti := TargetInfo{TargetType: targetType}
	var err error
	switch targetType {
	case 0x00, 0x01:
		ti.TypeParameterIndex, err = bin.ReadU8(cr)
	case 0x10:
		ti.SupertypeIndex, err = bin.ReadU16(cr)
	case 0x11, 0x12:
		if ti.TypeParameterIndex, err = bin.ReadU8(cr); err != nil {
			return ti, err
		}
		ti.BoundIndex, err = bin.ReadU8(cr)
	case 0x13, 0x14, 0x15:
		// empty_target: no payload
	case 0x16:
		ti.FormalParameterIndex, err = bin.ReadU8(cr)
	case 0x17:
		ti.ThrowsTypeIndex, err = bin.ReadU16(cr)
	case 0x40, 0x41:
		n, e := bin.ReadU16(cr)
		if e != nil {
			return ti, e
		}
		ti.LocalVar = make([]LocalVarTargetEntry, n)
		for i := range ti.LocalVar {
			lv := &ti.LocalVar[i]
			if lv.StartPC, err = bin.ReadU16(cr); err != nil {
				return ti, err
			}
			if lv.Length, err = bin.ReadU16(cr); err != nil {
				return ti, err
			}
			if lv.Index, err = bin.ReadU16(cr); err != nil {
				return ti, err
			}
		}
	case 0x42:
		ti.ExceptionTableIndex, err = bin.ReadU16(cr)
	case 0x43, 0x44, 0x45, 0x46:
		ti.Offset, err = bin.ReadU16(cr)
	case 0x47, 0x48, 0x49, 0x4A, 0x4B:
		if ti.Offset, err = bin.ReadU16(cr); err != nil {
			return ti, err
		}
		ti.TypeArgumentIndex, err = bin.ReadU8(cr)
	default:
		return ti, fmt.Errorf("attr: unknown type annotation target_type 0x%02x", targetType)
	}
	return ti, err
}

func writeTargetInfo(c *bin.Cursor, ti TargetInfo) {
	switch ti.TargetType {
	case 0x00, 0x01:
		c.U8(ti.TypeParameterIndex)
	case 0x10:
		c.U16(ti.SupertypeIndex)
	case 0x11, 0x12:
		c.U8(ti.TypeParameterIndex)
		c.U8(ti.BoundIndex)
	case 0x13, 0x14, 0x15:
	case 0x16:
		c.U8(ti.FormalParameterIndex)
	case 0x17:
		c.U16(ti.ThrowsTypeIndex)
	case 0x40, 0x41:
		c.U16(uint16(len(ti.LocalVar)))
		for _, lv := range ti.LocalVar {
			c.U16(lv.StartPC)
			c.U16(lv.Length)
			c.U16(lv.Index)
		}
	case 0x42:
		c.U16(ti.ExceptionTableIndex)
	case 0x43, 0x44, 0x45, 0x46:
		c.U16(ti.Offset)
	case 0x47, 0x48, 0x49, 0x4A, 0x4B:
		c.U16(ti.Offset)
		c.U8(ti.TypeArgumentIndex)
	}
}

// TypePathEntry is one (type_path_kind, type_argument_index) segment of a
// type_path.
type TypePathEntry struct {
	Kind          uint8
	ArgumentIndex uint8
}

// TypeAnnotation extends Annotation with the TargetInfo/TypePath pair that
// locates it within a generic or annotated type (spec.md §4.4).
type TypeAnnotation struct {
	TargetInfo TargetInfo
	Path       []TypePathEntry
	TypeIndex  uint16
	Elements   []ElementPair
}

func readTypeAnnotation(cr *bin.CountingReader) (TypeAnnotation, error) {
	targetType, err := bin.ReadU8(cr)
	if err != nil {
		return TypeAnnotation{}, err
	}
	ti, err := readTargetInfo(cr, targetType)
	if err != nil {
		return TypeAnnotation{}, err
	}
	pathLen, err := bin.ReadU8(cr)
	if err != nil {
		return TypeAnnotation{}, err
	}
	path := make([]TypePathEntry, pathLen)
	for i := range path {
		if path[i].Kind, err = bin.ReadU8(cr); err != nil {
			return TypeAnnotation{}, err
		}
		if path[i].ArgumentIndex, err = bin.ReadU8(cr); err != nil {
			return TypeAnnotation{}, err
		}
	}
	a, err := readAnnotation(cr)
	if err != nil {
		return TypeAnnotation{}, err
	}
	return TypeAnnotation{TargetInfo: ti, Path: path, TypeIndex: a.TypeIndex, Elements: a.Elements}, nil
}

func writeTypeAnnotation(c *bin.Cursor, ta TypeAnnotation) {
	c.U8(ta.TargetInfo.TargetType)
	writeTargetInfo(c, ta.TargetInfo)
	c.U8(uint8(len(ta.Path)))
	for _, p := range ta.Path {
		c.U8(p.Kind)
		c.U8(p.ArgumentIndex)
	}
	writeAnnotation(c, Annotation{TypeIndex: ta.TypeIndex, Elements: ta.Elements})
}

// RuntimeVisibleAnnotations / RuntimeInvisibleAnnotations hold a class,
// field, method, or record component's declared annotations.
type RuntimeVisibleAnnotations struct {
	extra
	Annotations []Annotation
}

func (a *RuntimeVisibleAnnotations) AttrName() string { return "RuntimeVisibleAnnotations" }
func (a *RuntimeVisibleAnnotations) writePayload(c *bin.Cursor, ctx *Context) {
	writeAnnotationList(c, a.Annotations)
}

type RuntimeInvisibleAnnotations struct {
	extra
	Annotations []Annotation
}

func (a *RuntimeInvisibleAnnotations) AttrName() string { return "RuntimeInvisibleAnnotations" }
func (a *RuntimeInvisibleAnnotations) writePayload(c *bin.Cursor, ctx *Context) {
	writeAnnotationList(c, a.Annotations)
}

func init() {
	register("RuntimeVisibleAnnotations", sinceJava5, locDeclaration, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		anns, err := readAnnotationList(cr)
		return &RuntimeVisibleAnnotations{Annotations: anns}, err
	})
	register("RuntimeInvisibleAnnotations", sinceJava5, locDeclaration, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		anns, err := readAnnotationList(cr)
		return &RuntimeInvisibleAnnotations{Annotations: anns}, err
	})
}

func readAnnotationList(cr *bin.CountingReader) ([]Annotation, error) {
	n, err := bin.ReadU16(cr)
	if err != nil {
		return nil, err
	}
	anns := make([]Annotation, n)
	for i := range anns {
		if anns[i], err = readAnnotation(cr); err != nil {
			return nil, err
		}
	}
	return anns, nil
}

func writeAnnotationList(c *bin.Cursor, anns []Annotation) {
	c.U16(uint16(len(anns)))
	for _, a := range anns {
		writeAnnotation(c, a)
	}
}

// RuntimeVisibleParameterAnnotations / Invisible hold per-formal-parameter
// annotations, indexed by the method's parameter position.
type RuntimeVisibleParameterAnnotations struct {
	extra
	Parameters [][]Annotation
}

func (a *RuntimeVisibleParameterAnnotations) AttrName() string {
	return "RuntimeVisibleParameterAnnotations"
}
func (a *RuntimeVisibleParameterAnnotations) writePayload(c *bin.Cursor, ctx *Context) {
	writeParameterAnnotations(c, a.Parameters)
}

type RuntimeInvisibleParameterAnnotations struct {
	extra
	Parameters [][]Annotation
}

func (a *RuntimeInvisibleParameterAnnotations) AttrName() string {
	return "RuntimeInvisibleParameterAnnotations"
}
func (a *RuntimeInvisibleParameterAnnotations) writePayload(c *bin.Cursor, ctx *Context) {
	writeParameterAnnotations(c, a.Parameters)
}

func init() {
	register("RuntimeVisibleParameterAnnotations", sinceJava5, LocMethod, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		ps, err := readParameterAnnotations(cr)
		return &RuntimeVisibleParameterAnnotations{Parameters: ps}, err
	})
	register("RuntimeInvisibleParameterAnnotations", sinceJava5, LocMethod, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		ps, err := readParameterAnnotations(cr)
		return &RuntimeInvisibleParameterAnnotations{Parameters: ps}, err
	})
}

func readParameterAnnotations(cr *bin.CountingReader) ([][]Annotation, error) {
	n, err := bin.ReadU8(cr)
	if err != nil {
		return nil, err
	}
	ps := make([][]Annotation, n)
	for i := range ps {
		if ps[i], err = readAnnotationList(cr); err != nil {
			return nil, err
		}
	}
	return ps, nil
}

func writeParameterAnnotations(c *bin.Cursor, ps [][]Annotation) {
	c.U8(uint8(len(ps)))
	for _, anns := range ps {
		writeAnnotationList(c, anns)
	}
}

// AnnotationDefault holds an annotation interface element's default value.
type AnnotationDefault struct {
	extra
	Value ElementValue
}

func (a *AnnotationDefault) AttrName() string { return "AnnotationDefault" }
func (a *AnnotationDefault) writePayload(c *bin.Cursor, ctx *Context) {
	writeElementValue(c, a.Value)
}

func init() {
	register("AnnotationDefault", sinceJava5, LocMethod, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		v, err := readElementValue(cr)
		return &AnnotationDefault{Value: v}, err
	})
}

// RuntimeVisibleTypeAnnotations / Invisible hold JSR 308-style annotations
// on types rather than declarations, reachable from any declaration or a
// method's Code.
type RuntimeVisibleTypeAnnotations struct {
	extra
	Annotations []TypeAnnotation
}

func (a *RuntimeVisibleTypeAnnotations) AttrName() string { return "RuntimeVisibleTypeAnnotations" }
func (a *RuntimeVisibleTypeAnnotations) writePayload(c *bin.Cursor, ctx *Context) {
	writeTypeAnnotationList(c, a.Annotations)
}

type RuntimeInvisibleTypeAnnotations struct {
	extra
	Annotations []TypeAnnotation
}

func (a *RuntimeInvisibleTypeAnnotations) AttrName() string { return "RuntimeInvisibleTypeAnnotations" }
func (a *RuntimeInvisibleTypeAnnotations) writePayload(c *bin.Cursor, ctx *Context) {
	writeTypeAnnotationList(c, a.Annotations)
}

func init() {
	register("RuntimeVisibleTypeAnnotations", sinceJava8, locAnyTypeAnnotatable, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		anns, err := readTypeAnnotationList(cr)
		return &RuntimeVisibleTypeAnnotations{Annotations: anns}, err
	})
	register("RuntimeInvisibleTypeAnnotations", sinceJava8, locAnyTypeAnnotatable, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		anns, err := readTypeAnnotationList(cr)
		return &RuntimeInvisibleTypeAnnotations{Annotations: anns}, err
	})
}

func readTypeAnnotationList(cr *bin.CountingReader) ([]TypeAnnotation, error) {
	n, err := bin.ReadU16(cr)
	if err != nil {
		return nil, err
	}
	anns := make([]TypeAnnotation, n)
	for i := range anns {
		if anns[i], err = readTypeAnnotation(cr); err != nil {
			return nil, err
		}
	}
	return anns, nil
}

func writeTypeAnnotationList(c *bin.Cursor, anns []TypeAnnotation) {
	c.U16(uint16(len(anns)))
	for _, a := range anns {
		writeTypeAnnotation(c, a)
	}
}
