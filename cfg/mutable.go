package cfg

import (
	"fmt"

	"github.com/go-jclass/jclass/insn"
)

// ErrFrozen is returned by mutators on a block that has already been
// frozen.
var ErrFrozen = fmt.Errorf("cfg: block is frozen")

// ErrControlFlowInsn is returned when a caller attempts to append a
// jump or switch instruction directly to a block: those only ever live
// on edges (spec.md §4.6 "Mutability").
var ErrControlFlowInsn = fmt.Errorf("cfg: jump/switch instructions cannot be appended to a block body")

// Append adds one instruction to the end of b's body.
func (b *Block) Append(in insn.Instruction) error {
	if b.frozen {
		return ErrFrozen
	}
	if in.IsJump() || in.Op == insn.Tableswitch || in.Op == insn.Lookupswitch {
		return ErrControlFlowInsn
	}
	b.Insns = append(b.Insns, in)
	return nil
}

// Extend appends a run of instructions to the end of b's body.
func (b *Block) Extend(ins []insn.Instruction) error {
	for _, in := range ins {
		if in.IsJump() || in.Op == insn.Tableswitch || in.Op == insn.Lookupswitch {
			return ErrControlFlowInsn
		}
	}
	if b.frozen {
		return ErrFrozen
	}
	b.Insns = append(b.Insns, ins...)
	return nil
}

// Insert places in at index i of b's body, shifting later instructions
// back by one.
func (b *Block) Insert(i int, in insn.Instruction) error {
	if b.frozen {
		return ErrFrozen
	}
	if in.IsJump() || in.Op == insn.Tableswitch || in.Op == insn.Lookupswitch {
		return ErrControlFlowInsn
	}
	if i < 0 || i > len(b.Insns) {
		return fmt.Errorf("cfg: insert index %d out of range [0,%d]", i, len(b.Insns))
	}
	b.Insns = append(b.Insns, insn.Instruction{})
	copy(b.Insns[i+1:], b.Insns[i:])
	b.Insns[i] = in
	return nil
}

// Remove deletes the instruction at index i of b's body.
func (b *Block) Remove(i int) error {
	if b.frozen {
		return ErrFrozen
	}
	if i < 0 || i >= len(b.Insns) {
		return fmt.Errorf("cfg: remove index %d out of range", i)
	}
	b.Insns = append(b.Insns[:i], b.Insns[i+1:]...)
	return nil
}

// Pop removes and returns the last instruction of b's body.
func (b *Block) Pop() (insn.Instruction, error) {
	if b.frozen {
		return insn.Instruction{}, ErrFrozen
	}
	if len(b.Insns) == 0 {
		return insn.Instruction{}, fmt.Errorf("cfg: pop on empty block")
	}
	last := b.Insns[len(b.Insns)-1]
	b.Insns = b.Insns[:len(b.Insns)-1]
	return last, nil
}

// Clear removes every instruction from b's body.
func (b *Block) Clear() error {
	if b.frozen {
		return ErrFrozen
	}
	b.Insns = nil
	return nil
}

// Freeze converts b to its immutable form: further mutators fail with
// ErrFrozen, and LtThrows/RtThrows become available. Freezing consumes
// b's instruction list (spec.md §5 "Shared-resource policy": move, not
// share); callers should not retain the pre-freeze slice.
func (b *Block) Freeze() {
	if b.frozen {
		return
	}
	b.ltThrows = map[string]bool{}
	b.rtThrows = map[string]bool{}
	for _, in := range b.Insns {
		for _, c := range ltThrowsOf(in) {
			b.ltThrows[c] = true
		}
		for _, c := range rtThrowsOf(in) {
			b.rtThrows[c] = true
		}
	}
	b.frozen = true
}
