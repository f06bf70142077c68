package attr

import (
	"fmt"

	"github.com/go-jclass/jclass/bin"
)

// VerificationKind tags one of the nine verification_type_info variants
// (spec.md §4.4 "StackMapTable frame variants").
type VerificationKind uint8

const (
	VTop VerificationKind = iota
	VInteger
	VFloat
	VDouble
	VLong
	VNull
	VUninitializedThis
	VObject
	VUninitialized
)

// VerificationType is a single tagged struct covering all nine variants,
// following the same single-tagged-struct shape as insn.Instruction
// (spec.md Design Notes §9): only VObject and VUninitialized carry a
// payload, so one flat type is simpler than nine.
type VerificationType struct {
	Kind       VerificationKind
	ClassIndex uint16 // VObject: constant pool Class reference
	Offset     uint16 // VUninitialized: bytecode offset of the `new` that produced this value
}

func readVerificationType(cr *bin.CountingReader) (VerificationType, error) {
	tag, err := bin.ReadU8(cr)
	if err != nil {
		return VerificationType{}, err
	}
	vt := VerificationType{Kind: VerificationKind(tag)}
	switch vt.Kind {
	case VObject:
		vt.ClassIndex, err = bin.ReadU16(cr)
	case VUninitialized:
		vt.Offset, err = bin.ReadU16(cr)
	}
	return vt, err
}

func writeVerificationType(c *bin.Cursor, vt VerificationType) {
	c.U8(uint8(vt.Kind))
	switch vt.Kind {
	case VObject:
		c.U16(vt.ClassIndex)
	case VUninitialized:
		c.U16(vt.Offset)
	}
}

// FrameKind names one of the seven stack-map frame shapes.
type FrameKind uint8

const (
	FrameSame FrameKind = iota
	FrameSameLocals1StackItem
	FrameSameLocals1StackItemExt
	FrameChop
	FrameSameExt
	FrameAppend
	FrameFull
)

// StackMapFrame is a single tagged struct over all seven frame kinds
// (spec.md §4.4's frame-variant table), reconstructing the original tag
// byte from Kind plus the relevant field on write rather than storing it
// redundantly.
type StackMapFrame struct {
	Kind        FrameKind
	OffsetDelta uint16
	ChopCount   uint8              // FrameChop: 1..3 locals removed
	Locals      []VerificationType // FrameAppend, FrameFull
	Stack       []VerificationType // FrameSameLocals1StackItem(Ext), FrameFull
}

func readStackMapFrame(cr *bin.CountingReader) (StackMapFrame, error) {
	tag, err := bin.ReadU8(cr)
	if err != nil {
		return StackMapFrame{}, err
	}
	switch {
	case tag <= 63:
		return StackMapFrame{Kind: FrameSame, OffsetDelta: uint16(tag)}, nil
	case tag <= 127:
		vt, err := readVerificationType(cr)
		return StackMapFrame{Kind: FrameSameLocals1StackItem, OffsetDelta: uint16(tag - 64), Stack: []VerificationType{vt}}, err
	case tag == 247:
		delta, err := bin.ReadU16(cr)
		if err != nil {
			return StackMapFrame{}, err
		}
		vt, err := readVerificationType(cr)
		return StackMapFrame{Kind: FrameSameLocals1StackItemExt, OffsetDelta: delta, Stack: []VerificationType{vt}}, err
	case tag <= 250:
		delta, err := bin.ReadU16(cr)
		return StackMapFrame{Kind: FrameChop, OffsetDelta: delta, ChopCount: 251 - tag}, err
	case tag == 251:
		delta, err := bin.ReadU16(cr)
		return StackMapFrame{Kind: FrameSameExt, OffsetDelta: delta}, err
	case tag <= 254:
		delta, err := bin.ReadU16(cr)
		if err != nil {
			return StackMapFrame{}, err
		}
		n := int(tag - 251)
		locals := make([]VerificationType, n)
		for i := range locals {
			if locals[i], err = readVerificationType(cr); err != nil {
				return StackMapFrame{}, err
			}
		}
		return StackMapFrame{Kind: FrameAppend, OffsetDelta: delta, Locals: locals}, nil
	default: // 255: FullFrame
		delta, err := bin.ReadU16(cr)
		if err != nil {
			return StackMapFrame{}, err
		}
		nLocals, err := bin.ReadU16(cr)
		if err != nil {
			return StackMapFrame{}, err
		}
		locals := make([]VerificationType, nLocals)
		for i := range locals {
			if locals[i], err = readVerificationType(cr); err != nil {
				return StackMapFrame{}, err
			}
		}
		nStack, err := bin.ReadU16(cr)
		if err != nil {
			return StackMapFrame{}, err
		}
		stack := make([]VerificationType, nStack)
		for i := range stack {
			if stack[i], err = readVerificationType(cr); err != nil {
				return StackMapFrame{}, err
			}
		}
		return StackMapFrame{Kind: FrameFull, OffsetDelta: delta, Locals: locals, Stack: stack}, nil
	}
}

func writeStackMapFrame(c *bin.Cursor, f StackMapFrame) {
	switch f.Kind {
	case FrameSame:
		c.U8(uint8(f.OffsetDelta))
	case FrameSameLocals1StackItem:
		c.U8(uint8(64 + f.OffsetDelta))
		writeVerificationType(c, f.Stack[0])
	case FrameSameLocals1StackItemExt:
		c.U8(247)
		c.U16(f.OffsetDelta)
		writeVerificationType(c, f.Stack[0])
	case FrameChop:
		c.U8(251 - f.ChopCount)
		c.U16(f.OffsetDelta)
	case FrameSameExt:
		c.U8(251)
		c.U16(f.OffsetDelta)
	case FrameAppend:
		c.U8(uint8(251 + len(f.Locals)))
		c.U16(f.OffsetDelta)
		for _, vt := range f.Locals {
			writeVerificationType(c, vt)
		}
	case FrameFull:
		c.U8(255)
		c.U16(f.OffsetDelta)
		c.U16(uint16(len(f.Locals)))
		for _, vt := range f.Locals {
			writeVerificationType(c, vt)
		}
		c.U16(uint16(len(f.Stack)))
		for _, vt := range f.Stack {
			writeVerificationType(c, vt)
		}
	default:
		panic(fmt.Sprintf("attr: unknown stack map frame kind %d", f.Kind))
	}
}

// StackMapTable records, for a Code attribute, the verifier's expected
// local/stack types at each branch target, letting the JVM verifier avoid
// a full type-inference pass.
type StackMapTable struct {
	extra
	Frames []StackMapFrame
}

func (a *StackMapTable) AttrName() string { return "StackMapTable" }
func (a *StackMapTable) writePayload(c *bin.Cursor, ctx *Context) {
	c.U16(uint16(len(a.Frames)))
	for _, f := range a.Frames {
		writeStackMapFrame(c, f)
	}
}

func init() {
	register("StackMapTable", sinceJava6, LocCode, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		n, err := bin.ReadU16(cr)
		if err != nil {
			return nil, err
		}
		frames := make([]StackMapFrame, n)
		for i := range frames {
			if frames[i], err = readStackMapFrame(cr); err != nil {
				return nil, err
			}
		}
		return &StackMapTable{Frames: frames}, nil
	})
}
