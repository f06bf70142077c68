package insn

import (
	"bytes"
	"testing"

	"github.com/go-jclass/jclass/bin"
)

func roundTrip(t *testing.T, in Instruction) Instruction {
	t.Helper()
	var c bin.Cursor
	Append(&c, in)
	got, next, err := Read(c.Bytes(), in.Offset)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if next != c.Len()+in.Offset {
		t.Fatalf("next = %d, want %d", next, c.Len()+in.Offset)
	}
	return got
}

func TestRoundTripSimple(t *testing.T) {
	in := Instruction{Op: Iadd}
	got := roundTrip(t, in)
	if got.Op != Iadd {
		t.Fatalf("got %v", got)
	}
}

func TestRoundTripConstU16(t *testing.T) {
	in := Instruction{Op: Getstatic, ConstIndex: 0x1234}
	got := roundTrip(t, in)
	if got.ConstIndex != 0x1234 {
		t.Fatalf("ConstIndex = %#x", got.ConstIndex)
	}
}

func TestRoundTripLocalExplicit(t *testing.T) {
	in := Instruction{Op: Iload, Local: 200}
	got := roundTrip(t, in)
	if got.Local != 200 {
		t.Fatalf("Local = %d", got.Local)
	}
}

func TestRoundTripWideLocal(t *testing.T) {
	in := Instruction{Op: Iload, Local: 500, Mutated: true}
	got := roundTrip(t, in)
	if !got.Mutated || got.Local != 500 {
		t.Fatalf("got %+v", got)
	}
}

func TestRoundTripWideIinc(t *testing.T) {
	in := Instruction{Op: Iinc, IincIndex: 300, IincDelta: -1000, Mutated: true}
	got := roundTrip(t, in)
	if got.IincIndex != 300 || got.IincDelta != -1000 {
		t.Fatalf("got %+v", got)
	}
}

func TestStandaloneWide(t *testing.T) {
	// `wide` followed by an opcode that has no mutated form (e.g. nop)
	// decodes as a standalone wide, leaving the stream before nop.
	code := []byte{byte(Wide), byte(Nop)}
	in, next, err := Read(code, 0)
	if err != nil {
		t.Fatal(err)
	}
	if in.Op != Wide || next != 1 {
		t.Fatalf("got op=%v next=%d", in.Op, next)
	}
	in2, next2, err := Read(code, next)
	if err != nil {
		t.Fatal(err)
	}
	if in2.Op != Nop || next2 != 2 {
		t.Fatalf("got op=%v next=%d", in2.Op, next2)
	}
}

func TestTableSwitchPadding(t *testing.T) {
	// S4 from spec.md §8: tableswitch at an offset requiring padding.
	in := Instruction{
		Offset: 1,
		Op:     Tableswitch,
		Switch: &SwitchData{Default: 100, IsTable: true, Low: 0, High: 2, Offsets: []int32{10, 20, 30}},
	}
	var c bin.Cursor
	c.U8(0) // one leading byte, so the opcode lands at offset 1
	Append(&c, in)
	got, next, err := Read(c.Bytes(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Switch.Default != 100 || len(got.Switch.Offsets) != 3 {
		t.Fatalf("got %+v", got.Switch)
	}
	if next != c.Len() {
		t.Fatalf("next = %d, want %d", next, c.Len())
	}
}

func TestLookupSwitchRoundTrip(t *testing.T) {
	in := Instruction{
		Offset: 0,
		Op:     Lookupswitch,
		Switch: &SwitchData{Default: 50, Pairs: []SwitchPair{{Match: 1, Offset: 5}, {Match: 9, Offset: 15}}},
	}
	got := roundTrip(t, in)
	if got.Switch.Default != 50 || len(got.Switch.Pairs) != 2 || got.Switch.Pairs[1].Match != 9 {
		t.Fatalf("got %+v", got.Switch)
	}
}

func TestInvokeInterfaceReservedByte(t *testing.T) {
	in := Instruction{Op: Invokeinterface, ConstIndex: 7, IfaceCount: 2}
	var c bin.Cursor
	Append(&c, in)
	if !bytes.Equal(c.Bytes(), []byte{byte(Invokeinterface), 0, 7, 2, 0}) {
		t.Fatalf("got % x", c.Bytes())
	}
}

func TestImplicitLocalPreset(t *testing.T) {
	in, next, err := Read([]byte{byte(Iload2)}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if in.Local != 2 || next != 1 {
		t.Fatalf("got %+v next=%d", in, next)
	}
}

func TestUnknownOpcode(t *testing.T) {
	if _, _, err := Read([]byte{0xCB}, 0); err == nil {
		t.Fatal("expected BadOpcodeError")
	}
}

func TestBranchTargets(t *testing.T) {
	in := Instruction{Offset: 10, Op: Goto, BranchDelta: -4}
	targets := in.Targets()
	if len(targets) != 1 || targets[0] != 6 {
		t.Fatalf("got %v", targets)
	}
}
