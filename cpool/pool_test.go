package cpool

import (
	"bytes"
	"testing"

	"github.com/go-jclass/jclass/bin"
)

func TestAddIdempotent(t *testing.T) {
	p := New()
	i1 := p.Add(UTF8Entry("hello"))
	n1 := p.Count()
	i2 := p.Add(UTF8Entry("hello"))
	n2 := p.Count()
	if i1 != i2 {
		t.Fatalf("Add not idempotent: %d != %d", i1, i2)
	}
	if n1 != n2 {
		t.Fatalf("pool length changed on second Add: %d != %d", n1, n2)
	}
}

func TestWideSlotInvariant(t *testing.T) {
	p := New()
	idx := p.Add(LongEntry(42))
	if p.Get(idx + 1).Tag != 0 {
		t.Fatalf("expected reserved slot at %d to be zero-value", idx+1)
	}
	// The reserved slot is never returned by lookup-by-value.
	idx2 := p.Add(LongEntry(42))
	if idx2 != idx {
		t.Fatalf("re-add of same Long returned different index: %d != %d", idx2, idx)
	}
}

func TestLongOnlyPoolIndexArithmetic(t *testing.T) {
	p := New()
	const n = 5
	for i := 0; i < n; i++ {
		p.Add(LongEntry(int64(i)))
	}
	// N - 1 == 2 * entries (spec.md §8 boundary case).
	N := int(p.Count())
	if N-1 != 2*n {
		t.Fatalf("N-1 = %d; want %d", N-1, 2*n)
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	// Build "Empty" / "java/lang/Object" pool by hand (S1 from spec.md §8).
	var c bin.Cursor
	c.U16(5) // count
	c.U8(uint8(TagUTF8))
	c.U16(5)
	c.Raw([]byte("Empty"))
	c.U8(uint8(TagClass))
	c.U16(1)
	c.U8(uint8(TagUTF8))
	c.U16(16)
	c.Raw([]byte("java/lang/Object"))
	c.U8(uint8(TagClass))
	c.U16(3)

	p, err := Read(bytes.NewReader(c.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if name, ok := p.ClassNameAt(2); !ok || name != "Empty" {
		t.Fatalf("ClassNameAt(2) = %q, %v", name, ok)
	}
	if name, ok := p.ClassNameAt(4); !ok || name != "java/lang/Object" {
		t.Fatalf("ClassNameAt(4) = %q, %v", name, ok)
	}

	var out bin.Cursor
	p.Write(&out)
	if !bytes.Equal(out.Bytes(), c.Bytes()) {
		t.Fatalf("round-trip mismatch:\ngot  = % x\nwant = % x", out.Bytes(), c.Bytes())
	}
}

func TestModifiedUTF8RoundTrip(t *testing.T) {
	s := "a\x00b"
	enc := encodeModifiedUTF8(s)
	if !bytes.Equal(enc, []byte{'a', 0xC0, 0x80, 'b'}) {
		t.Fatalf("encodeModifiedUTF8 = % x", enc)
	}
	if got := decodeModifiedUTF8(enc); got != s {
		t.Fatalf("decodeModifiedUTF8 round-trip = %q; want %q", got, s)
	}
}

func TestUnknownTagFatal(t *testing.T) {
	var c bin.Cursor
	c.U16(2)
	c.U8(0xFE) // not a known tag
	if _, err := Read(bytes.NewReader(c.Bytes())); err == nil {
		t.Fatal("expected error for unknown tag")
	}
}

func TestResolveFlagsBadReference(t *testing.T) {
	p := New()
	utf8 := p.Add(UTF8Entry("X"))
	// Class referencing an Integer instead of a UTF8.
	badClassIdx := p.Add(IntegerEntry(1))
	c := Entry{Tag: TagClass, NameIndex: badClassIdx}
	p.set(uint16(len(p.entries)), c)
	_ = utf8

	diags := p.Resolve()
	if !diags.HasErrors() && len(diags.Items()) == 0 {
		t.Fatal("expected at least a warning diagnostic for bad reference")
	}
}
