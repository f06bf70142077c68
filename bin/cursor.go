package bin

// Cursor is a growable byte buffer with a bookmark mechanism for the
// "write a placeholder, fill it in later" pattern used for constant-pool
// counts and attribute lengths, which are only known once their payload
// has been fully emitted.
type Cursor struct {
	buf []byte
}

// NewCursor returns an empty Cursor.
func NewCursor() *Cursor {
	return &Cursor{}
}

// Len reports the number of bytes written so far.
func (c *Cursor) Len() int { return len(c.buf) }

// Bytes returns the accumulated buffer.
func (c *Cursor) Bytes() []byte { return c.buf }

func (c *Cursor) U8(v uint8)      { c.buf = AppendU8(c.buf, v) }
func (c *Cursor) U16(v uint16)    { c.buf = AppendU16(c.buf, v) }
func (c *Cursor) U32(v uint32)    { c.buf = AppendU32(c.buf, v) }
func (c *Cursor) I8(v int8)       { c.buf = AppendI8(c.buf, v) }
func (c *Cursor) I16(v int16)     { c.buf = AppendI16(c.buf, v) }
func (c *Cursor) I32(v int32)     { c.buf = AppendI32(c.buf, v) }
func (c *Cursor) I64(v int64)     { c.buf = AppendI64(c.buf, v) }
func (c *Cursor) F32(v float32)   { c.buf = AppendF32(c.buf, v) }
func (c *Cursor) F64(v float64)   { c.buf = AppendF64(c.buf, v) }
func (c *Cursor) Raw(p []byte) { c.buf = append(c.buf, p...) }

// ReserveU16 emits a placeholder u16 and returns its offset for PatchU16.
func (c *Cursor) ReserveU16() int {
	off := len(c.buf)
	c.U16(0)
	return off
}

// ReserveU32 emits a placeholder u32 and returns its offset for PatchU32.
func (c *Cursor) ReserveU32() int {
	off := len(c.buf)
	c.U32(0)
	return off
}

// PatchU16 rewrites the u16 placeholder reserved at off.
func (c *Cursor) PatchU16(off int, v uint16) {
	PutU16(c.buf[off:], v)
}

// PatchU32 rewrites the u32 placeholder reserved at off.
func (c *Cursor) PatchU32(off int, v uint32) {
	PutU32(c.buf[off:], v)
}
