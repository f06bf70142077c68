package insn

import "github.com/go-jclass/jclass/bin"

// Append serializes one instruction onto c, which must already hold
// exactly in.Offset bytes of prior code so that switch-padding comes out
// aligned the same way Read would compute it.
func Append(c *bin.Cursor, in Instruction) {
	if in.Mutated {
		c.U8(uint8(Wide))
	}
	c.U8(uint8(in.Op))

	info := opTable[in.Op]
	if info.presetLocal >= 0 {
		return
	}

	kind := info.kind
	if in.Mutated {
		kind = mutated[in.Op]
	}

	switch kind {
	case KindNone:
	case KindLocal:
		if in.Mutated {
			c.U16(in.Local)
		} else {
			c.U8(uint8(in.Local))
		}
	case KindImmI8:
		c.I8(int8(in.Immediate))
	case KindImmI16:
		c.I16(int16(in.Immediate))
	case KindIinc:
		if in.Mutated {
			c.U16(in.IincIndex)
			c.I16(int16(in.IincDelta))
		} else {
			c.U8(uint8(in.IincIndex))
			c.I8(int8(in.IincDelta))
		}
	case KindConstU8:
		c.U8(uint8(in.ConstIndex))
	case KindConstU16:
		c.U16(in.ConstIndex)
	case KindInvokeInterface:
		c.U16(in.ConstIndex)
		c.U8(in.IfaceCount)
		c.U8(0)
	case KindInvokeDynamic:
		c.U16(in.ConstIndex)
		c.U16(0)
	case KindMultiANewArray:
		c.U16(in.ConstIndex)
		c.U8(in.Dims)
	case KindNewArray:
		c.U8(in.ArrayType)
	case KindBranchI16:
		c.I16(int16(in.BranchDelta))
	case KindBranchI32:
		c.I32(in.BranchDelta)
	case KindRet:
		if in.Mutated {
			c.U16(in.Local)
		} else {
			c.U8(uint8(in.Local))
		}
	case KindTableSwitch:
		writeTableSwitch(c, in)
	case KindLookupSwitch:
		writeLookupSwitch(c, in)
	}
}

// writePad emits the zero bytes between a switch opcode and its first
// table entry; afterOpcode is the position immediately following the
// opcode byte, matching padding's read-side convention.
func writePad(c *bin.Cursor, afterOpcode int) {
	for i := 0; i < padding(afterOpcode); i++ {
		c.U8(0)
	}
}

func writeTableSwitch(c *bin.Cursor, in Instruction) {
	writePad(c, in.Offset+1)
	sw := in.Switch
	c.I32(sw.Default)
	c.I32(sw.Low)
	c.I32(sw.High)
	for _, off := range sw.Offsets {
		c.I32(off)
	}
}

func writeLookupSwitch(c *bin.Cursor, in Instruction) {
	writePad(c, in.Offset+1)
	sw := in.Switch
	c.I32(sw.Default)
	c.I32(int32(len(sw.Pairs)))
	for _, p := range sw.Pairs {
		c.I32(p.Match)
		c.I32(p.Offset)
	}
}
