package insn

import (
	"fmt"
	"strings"
)

// SwitchPair is one match/offset pair of a lookupswitch table.
type SwitchPair struct {
	Match  int32
	Offset int32
}

// SwitchData holds the decoded operand of a tableswitch or lookupswitch,
// offsets stored exactly as they appear in the class file: relative to the
// switch instruction's own offset (spec.md §4.5 "Switches").
type SwitchData struct {
	Default int32
	IsTable bool

	// tableswitch
	Low     int32
	High    int32
	Offsets []int32

	// lookupswitch
	Pairs []SwitchPair
}

// Instruction is a single decoded bytecode instruction. Rather than one
// Go type per opcode, every instruction is this one tagged struct with an
// operand payload selected by Op's Kind, per spec.md's Design Notes §9
// recommendation for closed, densely-populated sum types.
type Instruction struct {
	Offset  int // byte offset of this instruction within the Code array
	Op      Op
	Mutated bool // read/written via the `wide` prefix

	Local       uint16
	Immediate   int32 // bipush/sipush
	IincIndex   uint16
	IincDelta   int32
	ConstIndex  uint16
	BranchDelta int32
	ArrayType   uint8
	Dims        uint8
	IfaceCount  uint8

	Switch *SwitchData
}

// Mnemonic returns the instruction's opcode name.
func (in Instruction) Mnemonic() string { return Mnemonic(in.Op) }

// IsJump reports whether this instruction can transfer control somewhere
// other than (or in addition to, for conditional branches) the next instruction.
func (in Instruction) IsJump() bool { return opTable[in.Op].isJump }

// IsReturn reports whether this instruction returns from the method.
func (in Instruction) IsReturn() bool { return opTable[in.Op].isReturn }

// IsThrow reports whether this instruction is athrow.
func (in Instruction) IsThrow() bool { return opTable[in.Op].isThrow }

// Targets returns the absolute offsets this instruction can jump to,
// excluding any fallthrough to the next instruction. Ret's target set is
// always empty: its destination is data-dependent (spec.md §4.6 "Ret
// edges"); the CFG builder gives ret a single Ret edge to its Opaque block.
func (in Instruction) Targets() []int {
	switch {
	case in.Op == Goto || in.Op == GotoW || in.Op == Jsr || in.Op == JsrW ||
		(in.Op >= Ifeq && in.Op <= IfAcmpne) || in.Op == Ifnull || in.Op == Ifnonnull:
		return []int{in.Offset + int(in.BranchDelta)}
	case in.Op == Tableswitch || in.Op == Lookupswitch:
		sw := in.Switch
		targets := make([]int, 0, len(sw.Offsets)+len(sw.Pairs)+1)
		targets = append(targets, in.Offset+int(sw.Default))
		for _, off := range sw.Offsets {
			targets = append(targets, in.Offset+int(off))
		}
		for _, p := range sw.Pairs {
			targets = append(targets, in.Offset+int(p.Offset))
		}
		return targets
	default:
		return nil
	}
}

// String renders the instruction roughly as `javap -c` would: a
// supplemented feature (kirjava's instruction repr) absent from spec.md's
// own grammar but useful for the classdump CLI and debug logging.
func (in Instruction) String() string {
	name := in.Mnemonic()
	if in.Mutated {
		name = "wide " + name
	}
	switch opTable[in.Op].kind {
	case KindNone:
		if opTable[in.Op].presetLocal >= 0 {
			return name
		}
		return name
	case KindLocal:
		return fmt.Sprintf("%s %d", name, in.Local)
	case KindImmI8, KindImmI16:
		return fmt.Sprintf("%s %d", name, in.Immediate)
	case KindIinc:
		return fmt.Sprintf("%s %d, %d", name, in.IincIndex, in.IincDelta)
	case KindConstU8, KindConstU16:
		return fmt.Sprintf("%s #%d", name, in.ConstIndex)
	case KindInvokeInterface:
		return fmt.Sprintf("%s #%d, %d", name, in.ConstIndex, in.IfaceCount)
	case KindInvokeDynamic:
		return fmt.Sprintf("%s #%d", name, in.ConstIndex)
	case KindMultiANewArray:
		return fmt.Sprintf("%s #%d, %d", name, in.ConstIndex, in.Dims)
	case KindNewArray:
		return fmt.Sprintf("%s %d", name, in.ArrayType)
	case KindBranchI16, KindBranchI32:
		return fmt.Sprintf("%s %d", name, in.Offset+int(in.BranchDelta))
	case KindRet:
		return fmt.Sprintf("%s %d", name, in.Local)
	case KindTableSwitch:
		var b strings.Builder
		fmt.Fprintf(&b, "tableswitch default:%d", in.Offset+int(in.Switch.Default))
		for i, off := range in.Switch.Offsets {
			fmt.Fprintf(&b, " %d:%d", int(in.Switch.Low)+i, in.Offset+int(off))
		}
		return b.String()
	case KindLookupSwitch:
		var b strings.Builder
		fmt.Fprintf(&b, "lookupswitch default:%d", in.Offset+int(in.Switch.Default))
		for _, p := range in.Switch.Pairs {
			fmt.Fprintf(&b, " %d:%d", p.Match, in.Offset+int(p.Offset))
		}
		return b.String()
	default:
		return name
	}
}
