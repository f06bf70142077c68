package cpool

import "github.com/go-jclass/jclass/bin"

// Write serializes the pool: a u16 count (equal to Count()) followed by
// each live entry's tag byte and payload in ascending index order, wide
// entries' reserved second slot skipped (spec.md §4.3 "Serialization").
func (p *Pool) Write(c *bin.Cursor) {
	c.U16(p.Count())
	p.Each(func(idx uint16, e Entry) {
		writeEntry(c, e)
	})
}

func writeEntry(c *bin.Cursor, e Entry) {
	c.U8(uint8(e.Tag))
	switch e.Tag {
	case TagUTF8:
		raw := encodeModifiedUTF8(e.UTF8)
		c.U16(uint16(len(raw)))
		c.Raw(raw)
	case TagInteger:
		c.I32(e.Int32)
	case TagFloat:
		c.F32(e.Float32)
	case TagLong:
		c.I64(e.Int64)
	case TagDouble:
		c.F64(e.Float64)
	case TagClass:
		c.U16(e.NameIndex)
	case TagString:
		c.U16(e.ValueIndex)
	case TagFieldref, TagMethodref, TagInterfaceMethodref:
		c.U16(e.ClassIndex)
		c.U16(e.NameAndTypeIndex)
	case TagNameAndType:
		c.U16(e.NatNameIndex)
		c.U16(e.NatDescIndex)
	case TagMethodHandle:
		c.U8(e.RefKind)
		c.U16(e.RefIndex)
	case TagMethodType:
		c.U16(e.ValueIndex)
	case TagDynamic, TagInvokeDynamic:
		c.U16(e.BootstrapAttrIndex)
		c.U16(e.NameAndTypeIndex)
	case TagModule:
		c.U16(e.NameIndex)
	case TagPackage:
		c.U16(e.NameIndex)
	}
}
