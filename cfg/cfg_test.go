package cfg

import (
	"testing"

	"github.com/go-jclass/jclass/bin"
	"github.com/go-jclass/jclass/insn"
)

func encode(t *testing.T, ins ...insn.Instruction) []byte {
	t.Helper()
	var c bin.Cursor
	pos := 0
	for _, in := range ins {
		in.Offset = pos
		insn.Append(&c, in)
		pos = c.Len()
	}
	return c.Bytes()
}

func countKind(g *Graph, k EdgeKind) int {
	n := 0
	for _, e := range g.Edges {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// S2 from spec.md §8: iconst_0, ireturn.
func TestTrivialMethod(t *testing.T) {
	code := encode(t, insn.Instruction{Op: insn.Iconst0}, insn.Instruction{Op: insn.Ireturn})
	g, err := Build(code, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Blocks) != firstBlock+1 {
		t.Fatalf("got %d blocks, want %d", len(g.Blocks), firstBlock+1)
	}
	b := g.Blocks[firstBlock]
	if len(b.Insns) != 1 || b.Insns[0].Op != insn.Iconst0 {
		t.Fatalf("block insns = %+v", b.Insns)
	}
	if countKind(g, FallthroughEdge) != 1 || countKind(g, JumpEdge) != 1 {
		t.Fatalf("edges = %+v", g.Edges)
	}
	for _, e := range g.Edges {
		if e.Kind == JumpEdge && e.Target != Return {
			t.Fatalf("jump target = %v, want Return", e.Target)
		}
	}
}

// S3 from spec.md §8: a conditional branch produces three live blocks.
func TestConditionalBranch(t *testing.T) {
	var c bin.Cursor
	iload0 := insn.Instruction{Offset: 0, Op: insn.Iload0}
	insn.Append(&c, iload0)

	ifne := insn.Instruction{Offset: c.Len(), Op: insn.Ifne}
	ifneOffset := ifne.Offset
	iconst0 := insn.Instruction{Op: insn.Iconst0}
	ireturn1 := insn.Instruction{Op: insn.Ireturn}
	iconst1 := insn.Instruction{Op: insn.Iconst1}
	ireturn2 := insn.Instruction{Op: insn.Ireturn}

	// lay out iconst_0,ireturn,iconst_1,ireturn after ifne (3 bytes) to learn their offsets
	probe := c.Len() + 3
	iconst0.Offset = probe
	ireturn1.Offset = probe + 1
	iconst1.Offset = probe + 2
	ireturn2.Offset = probe + 3

	ifne.BranchDelta = int32(iconst1.Offset - ifneOffset)
	insn.Append(&c, ifne)
	insn.Append(&c, iconst0)
	insn.Append(&c, ireturn1)
	insn.Append(&c, iconst1)
	insn.Append(&c, ireturn2)

	g, err := Build(c.Bytes(), nil)
	if err != nil {
		t.Fatal(err)
	}
	// the four special blocks + 3 real blocks
	if len(g.Blocks) != firstBlock+3 {
		t.Fatalf("got %d blocks", len(g.Blocks))
	}
	b0 := g.Blocks[firstBlock]
	if len(b0.Insns) != 1 || b0.Insns[0].Op != insn.Iload0 {
		t.Fatalf("B0 = %+v", b0.Insns)
	}

	var jumps, fallthroughs int
	for _, e := range g.Edges {
		switch e.Kind {
		case JumpEdge:
			jumps++
		case FallthroughEdge:
			fallthroughs++
			if e.Source == firstBlock && e.Via == nil {
				t.Fatalf("expected B0's fallthrough to carry the ifne terminator")
			}
		}
	}
	if jumps != 3 { // ifne's jump, and the two ireturns
		t.Fatalf("jumps = %d, want 3", jumps)
	}
}

// S4 from spec.md §8: tableswitch padding and case targets.
func TestTableSwitchPadding(t *testing.T) {
	var c bin.Cursor
	c.U8(uint8(insn.Nop))
	c.U8(uint8(insn.Nop))
	c.U8(uint8(insn.Nop))
	// opcode at offset 3 needs zero padding bytes (afterOpcode=4 is already
	// 4-aligned); default and both cases land on the two nop instructions
	// appended after the switch's own encoded bytes (offsets 24 and 25).
	ts := insn.Instruction{
		Offset: 3,
		Op:     insn.Tableswitch,
		Switch: &insn.SwitchData{Default: 21, IsTable: true, Low: 0, High: 1, Offsets: []int32{21, 22}},
	}
	insn.Append(&c, ts)
	c.U8(uint8(insn.Nop))
	c.U8(uint8(insn.Nop))

	g, err := Build(c.Bytes(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if countKind(g, SwitchEdge) != 3 { // default + 2 cases
		t.Fatalf("switch edges = %d", countKind(g, SwitchEdge))
	}
}

// S5 from spec.md §8: a try/catch region shares one Catch edge's priority.
func TestTryCatch(t *testing.T) {
	// nop*20, then a handler target at 20.
	var c bin.Cursor
	for i := 0; i < 21; i++ {
		c.U8(uint8(insn.Nop))
	}
	handlers := []ExceptionHandler{{StartPC: 5, EndPC: 12, HandlerPC: 20, Catch: "java/lang/Exception"}}
	g, err := Build(c.Bytes(), handlers)
	if err != nil {
		t.Fatal(err)
	}
	n := countKind(g, CatchEdge)
	if n == 0 {
		t.Fatal("expected at least one catch edge")
	}
	for _, e := range g.Edges {
		if e.Kind == CatchEdge && e.Priority != 0 {
			t.Fatalf("expected priority 0, got %d", e.Priority)
		}
	}
}

func TestJsrPairing(t *testing.T) {
	var c bin.Cursor
	jsr := insn.Instruction{Offset: 0, Op: insn.Jsr, BranchDelta: 5}
	insn.Append(&c, jsr)
	c.U8(uint8(insn.Nop))
	c.U8(uint8(insn.Nop))
	ret := insn.Instruction{Offset: c.Len(), Op: insn.Ret, Local: 1}
	insn.Append(&c, ret)

	g, err := Build(c.Bytes(), nil)
	if err != nil {
		t.Fatal(err)
	}
	entryOut := g.Out(firstBlock)
	var hasJump, hasFallthrough bool
	for _, e := range entryOut {
		if e.Kind == JumpEdge {
			hasJump = true
		}
		if e.Kind == FallthroughEdge && e.Via != nil {
			hasFallthrough = true
		}
	}
	if !hasJump || !hasFallthrough {
		t.Fatalf("jsr block edges = %+v", entryOut)
	}
}

func TestFreezeAndHash(t *testing.T) {
	b := &Block{Label: 4}
	b.Append(insn.Instruction{Op: insn.Iconst0})
	b.Freeze()
	if !b.Frozen() {
		t.Fatal("expected frozen")
	}
	if err := b.Append(insn.Instruction{Op: insn.Iconst1}); err != ErrFrozen {
		t.Fatalf("expected ErrFrozen, got %v", err)
	}
	other := &Block{Label: 9}
	other.Append(insn.Instruction{Op: insn.Iconst0})
	other.Freeze()
	if b.Hash() != other.Hash() {
		t.Fatal("structurally identical blocks should hash equal")
	}
}

func TestRejectJumpAppend(t *testing.T) {
	b := &Block{Label: 4}
	if err := b.Append(insn.Instruction{Op: insn.Goto}); err != ErrControlFlowInsn {
		t.Fatalf("expected ErrControlFlowInsn, got %v", err)
	}
}
