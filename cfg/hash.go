package cfg

import (
	"hash/fnv"

	"github.com/go-jclass/jclass/bin"
	"github.com/go-jclass/jclass/insn"
)

// Hash returns a structural hash of b's instruction sequence: two frozen
// blocks with identical instructions (ignoring label) hash identically.
// Supplements spec.md's data model with kirjava's block equality check,
// useful for deduplicating structurally-identical blocks during analysis.
func (b *Block) Hash() uint64 {
	h := fnv.New64a()
	for _, in := range b.Insns {
		writeInsn(h, in)
	}
	return h.Sum64()
}

func writeInsn(h interface{ Write([]byte) (int, error) }, in insn.Instruction) {
	var buf []byte
	buf = bin.AppendU8(buf, uint8(in.Op))
	buf = bin.AppendU8(buf, boolByte(in.Mutated))
	buf = bin.AppendU16(buf, in.Local)
	buf = bin.AppendI32(buf, in.Immediate)
	buf = bin.AppendU16(buf, in.ConstIndex)
	buf = bin.AppendU16(buf, in.IincIndex)
	buf = bin.AppendI32(buf, in.IincDelta)
	h.Write(buf)
	if sw := in.Switch; sw != nil {
		var sbuf []byte
		sbuf = bin.AppendI32(sbuf, sw.Default)
		for _, off := range sw.Offsets {
			sbuf = bin.AppendI32(sbuf, off)
		}
		for _, p := range sw.Pairs {
			sbuf = bin.AppendI32(sbuf, p.Match)
			sbuf = bin.AppendI32(sbuf, p.Offset)
		}
		h.Write(sbuf)
	}
}

func boolByte(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}
