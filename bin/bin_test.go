package bin

import (
	"bytes"
	"testing"
)

var casesU32 = []struct {
	v uint32
	b []byte
}{
	{b: []byte{0x00, 0x00, 0x00, 0x08}, v: 8},
	{b: []byte{0x00, 0x00, 0x3f, 0x80}, v: 16256},
	{b: []byte{0x7f, 0x9a, 0x99, 0x40}, v: 2140838208},
}

func TestReadU32(t *testing.T) {
	for _, c := range casesU32 {
		n, err := ReadU32(bytes.NewReader(c.b))
		if err != nil {
			t.Fatal(err)
		}
		if n != c.v {
			t.Fatalf("got = %d; want = %d", n, c.v)
		}
	}
}

func TestReadU32Err(t *testing.T) {
	if _, err := ReadU32(bytes.NewReader(nil)); err == nil {
		t.Fatal("expected error reading from empty reader")
	}
}

func TestAppendU16RoundTrip(t *testing.T) {
	var vals = []uint16{0, 1, 255, 256, 65535}
	for _, v := range vals {
		b := AppendU16(nil, v)
		got, err := ReadU16(bytes.NewReader(b))
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Fatalf("round-trip mismatch: got = %d; want = %d", got, v)
		}
	}
}

func TestCursorPatch(t *testing.T) {
	c := NewCursor()
	off := c.ReserveU16()
	c.U8(1)
	c.U8(2)
	c.U8(3)
	c.PatchU16(off, 3)

	n, err := ReadU16(bytes.NewReader(c.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("got = %d; want = 3", n)
	}
}

func TestF32RoundTrip(t *testing.T) {
	b := AppendF32(nil, 3.5)
	got, err := ReadF32(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	if got != 3.5 {
		t.Fatalf("got = %v; want = 3.5", got)
	}
}
