package insn

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// BadOpcodeError is returned when a byte in the code array does not name a
// known opcode (spec.md §7: fatal for the containing Code attribute).
type BadOpcodeError struct {
	Offset int
	Byte   byte
}

func (e BadOpcodeError) Error() string {
	return fmt.Sprintf("insn: unknown opcode 0x%02x at offset %d", e.Byte, e.Offset)
}

// ErrTruncated is returned when the code array ends mid-instruction.
var ErrTruncated = errors.New("insn: truncated instruction stream")

func need(code []byte, pos, n int) error {
	if pos+n > len(code) {
		return ErrTruncated
	}
	return nil
}

// Read decodes one instruction from code starting at pos, returning the
// instruction and the offset immediately following it. Offsets are
// absolute positions within code, matching spec.md §4.5's offset-relative
// branch semantics directly: no translation layer is needed between the
// read protocol and the CFG builder's edge targets.
func Read(code []byte, pos int) (Instruction, int, error) {
	start := pos
	if err := need(code, pos, 1); err != nil {
		return Instruction{}, pos, err
	}
	op := Op(code[pos])
	pos++

	if op == Wide {
		if pos < len(code) && IsMutable(Op(code[pos])) {
			real := Op(code[pos])
			pos++
			return readMutated(code, start, real, pos)
		}
		logger.Printf("standalone wide at offset %d", start)
		return Instruction{Offset: start, Op: Wide}, pos, nil
	}

	info, known := opTable[op]
	if !known {
		return Instruction{}, pos, BadOpcodeError{Offset: start, Byte: byte(op)}
	}

	in := Instruction{Offset: start, Op: op}
	if info.presetLocal >= 0 {
		in.Local = uint16(info.presetLocal)
		return in, pos, nil
	}

	switch info.kind {
	case KindNone:
		return in, pos, nil
	case KindLocal:
		if err := need(code, pos, 1); err != nil {
			return Instruction{}, pos, err
		}
		in.Local = uint16(code[pos])
		pos++
	case KindImmI8:
		if err := need(code, pos, 1); err != nil {
			return Instruction{}, pos, err
		}
		in.Immediate = int32(int8(code[pos]))
		pos++
	case KindImmI16:
		if err := need(code, pos, 2); err != nil {
			return Instruction{}, pos, err
		}
		in.Immediate = int32(int16(binary.BigEndian.Uint16(code[pos:])))
		pos += 2
	case KindIinc:
		if err := need(code, pos, 2); err != nil {
			return Instruction{}, pos, err
		}
		in.IincIndex = uint16(code[pos])
		in.IincDelta = int32(int8(code[pos+1]))
		pos += 2
	case KindConstU8:
		if err := need(code, pos, 1); err != nil {
			return Instruction{}, pos, err
		}
		in.ConstIndex = uint16(code[pos])
		pos++
	case KindConstU16:
		if err := need(code, pos, 2); err != nil {
			return Instruction{}, pos, err
		}
		in.ConstIndex = binary.BigEndian.Uint16(code[pos:])
		pos += 2
	case KindInvokeInterface:
		if err := need(code, pos, 4); err != nil {
			return Instruction{}, pos, err
		}
		in.ConstIndex = binary.BigEndian.Uint16(code[pos:])
		in.IfaceCount = code[pos+2]
		// code[pos+3] is a reserved zero byte.
		pos += 4
	case KindInvokeDynamic:
		if err := need(code, pos, 4); err != nil {
			return Instruction{}, pos, err
		}
		in.ConstIndex = binary.BigEndian.Uint16(code[pos:])
		// code[pos+2:pos+4] is reserved.
		pos += 4
	case KindMultiANewArray:
		if err := need(code, pos, 3); err != nil {
			return Instruction{}, pos, err
		}
		in.ConstIndex = binary.BigEndian.Uint16(code[pos:])
		in.Dims = code[pos+2]
		pos += 3
	case KindNewArray:
		if err := need(code, pos, 1); err != nil {
			return Instruction{}, pos, err
		}
		in.ArrayType = code[pos]
		pos++
	case KindBranchI16:
		if err := need(code, pos, 2); err != nil {
			return Instruction{}, pos, err
		}
		in.BranchDelta = int32(int16(binary.BigEndian.Uint16(code[pos:])))
		pos += 2
	case KindBranchI32:
		if err := need(code, pos, 4); err != nil {
			return Instruction{}, pos, err
		}
		in.BranchDelta = int32(binary.BigEndian.Uint32(code[pos:]))
		pos += 4
	case KindRet:
		if err := need(code, pos, 1); err != nil {
			return Instruction{}, pos, err
		}
		in.Local = uint16(code[pos])
		pos++
	case KindTableSwitch:
		sw, next, err := readTableSwitch(code, start, pos)
		if err != nil {
			return Instruction{}, pos, err
		}
		in.Switch = sw
		pos = next
	case KindLookupSwitch:
		sw, next, err := readLookupSwitch(code, start, pos)
		if err != nil {
			return Instruction{}, pos, err
		}
		in.Switch = sw
		pos = next
	}
	return in, pos, nil
}

func readMutated(code []byte, start int, real Op, pos int) (Instruction, int, error) {
	in := Instruction{Offset: start, Op: real, Mutated: true}
	switch mutated[real] {
	case KindLocal:
		if err := need(code, pos, 2); err != nil {
			return Instruction{}, pos, err
		}
		in.Local = binary.BigEndian.Uint16(code[pos:])
		pos += 2
	case KindRet:
		if err := need(code, pos, 2); err != nil {
			return Instruction{}, pos, err
		}
		in.Local = binary.BigEndian.Uint16(code[pos:])
		pos += 2
	case KindIinc:
		if err := need(code, pos, 4); err != nil {
			return Instruction{}, pos, err
		}
		in.IincIndex = binary.BigEndian.Uint16(code[pos:])
		in.IincDelta = int32(int16(binary.BigEndian.Uint16(code[pos+2:])))
		pos += 4
	}
	return in, pos, nil
}

// padding returns the number of zero bytes between a switch instruction's
// opcode and its first table entry: `(4 - (opcode_offset+1) mod 4) mod 4`
// (spec.md §4.5 "Switches"), aligning the default-offset field to a
// multiple of four bytes from the start of the code array.
func padding(afterOpcode int) int {
	return (4 - afterOpcode%4) % 4
}

func readTableSwitch(code []byte, start, pos int) (*SwitchData, int, error) {
	pos += padding(pos)
	if err := need(code, pos, 12); err != nil {
		return nil, pos, err
	}
	def := int32(binary.BigEndian.Uint32(code[pos:]))
	low := int32(binary.BigEndian.Uint32(code[pos+4:]))
	high := int32(binary.BigEndian.Uint32(code[pos+8:]))
	pos += 12
	n := int(high) - int(low) + 1
	if n < 0 {
		n = 0
	}
	if err := need(code, pos, n*4); err != nil {
		return nil, pos, err
	}
	offsets := make([]int32, n)
	for i := 0; i < n; i++ {
		offsets[i] = int32(binary.BigEndian.Uint32(code[pos:]))
		pos += 4
	}
	return &SwitchData{Default: def, IsTable: true, Low: low, High: high, Offsets: offsets}, pos, nil
}

func readLookupSwitch(code []byte, start, pos int) (*SwitchData, int, error) {
	pos += padding(pos)
	if err := need(code, pos, 8); err != nil {
		return nil, pos, err
	}
	def := int32(binary.BigEndian.Uint32(code[pos:]))
	npairs := int32(binary.BigEndian.Uint32(code[pos+4:]))
	pos += 8
	if err := need(code, pos, int(npairs)*8); err != nil {
		return nil, pos, err
	}
	pairs := make([]SwitchPair, npairs)
	for i := range pairs {
		pairs[i].Match = int32(binary.BigEndian.Uint32(code[pos:]))
		pairs[i].Offset = int32(binary.BigEndian.Uint32(code[pos+4:]))
		pos += 8
	}
	return &SwitchData{Default: def, IsTable: false, Pairs: pairs}, pos, nil
}
