package cfg

import (
	"sort"

	"github.com/go-jclass/jclass/insn"
)

type splitInfo struct {
	isSplit bool
	stop    bool
	prior   *insn.Instruction // terminator carried on the fallthrough edge, if any
}

// Build disassembles code into a Graph, following spec.md §4.6's four
// stages: recompute offsets and collect split points, partition the
// stream into blocks, populate instructions and jump/switch edges, then
// wire exception-table edges.
func Build(code []byte, handlers []ExceptionHandler) (*Graph, error) {
	if len(code) == 0 {
		return nil, ErrNoCode
	}

	insns := map[int]insn.Instruction{}
	var order []int
	splits := map[int]*splitInfo{}
	targets := map[int]bool{}

	pos := 0
	for pos < len(code) {
		in, next, err := insn.Read(code, pos)
		if err != nil {
			return nil, err
		}
		insns[pos] = in
		order = append(order, pos)
		logger.Printf("decoded %s at %d", in.Mnemonic(), pos)

		switch {
		case in.Op == insn.Tableswitch || in.Op == insn.Lookupswitch:
			markSplit(splits, next, true, nil)
			for _, t := range in.Targets() {
				targets[t] = true
			}
		case in.IsJump():
			if isConditionalOrSubroutine(in.Op) {
				inCopy := in
				markSplit(splits, next, false, &inCopy)
			} else {
				markSplit(splits, next, true, nil)
			}
			for _, t := range in.Targets() {
				targets[t] = true
			}
		}
		pos = next
	}

	for _, h := range handlers {
		markSplit(splits, int(h.StartPC), true, nil)
		markSplit(splits, int(h.EndPC), true, nil)
		targets[int(h.HandlerPC)] = true
	}

	boundarySet := map[int]bool{0: true}
	for off := range splits {
		boundarySet[off] = true
	}
	for off := range targets {
		boundarySet[off] = true
	}
	boundaries := make([]int, 0, len(boundarySet))
	for off := range boundarySet {
		if off < 0 || off > len(code) {
			return nil, BadSplit{Offset: off}
		}
		boundaries = append(boundaries, off)
	}
	sort.Ints(boundaries)

	for _, b := range boundaries {
		if _, ok := insns[b]; !ok && b != len(code) {
			return nil, BadSplit{Offset: b}
		}
	}

	g := &Graph{Blocks: map[Label]*Block{
		Entry:   {Label: Entry},
		Return:  {Label: Return},
		Rethrow: {Label: Rethrow},
		Opaque:  {Label: Opaque},
	}}

	// len(code) is a boundary when a final jump's split, or an exception-table
	// end_pc or handler_pc, falls exactly at the end of the stream; it never
	// starts a real block.
	blockBoundaries := boundaries
	if n := len(blockBoundaries); n > 0 && blockBoundaries[n-1] == len(code) {
		blockBoundaries = blockBoundaries[:n-1]
	}

	blockAt := map[int]Label{}
	next := Label(firstBlock)
	for _, b := range blockBoundaries {
		blockAt[b] = next
		g.Blocks[next] = &Block{Label: next}
		next++
	}

	g.Edges = append(g.Edges, Edge{Kind: FallthroughEdge, Source: Entry, Target: blockAt[0]})

	prevLabel := blockAt[0]
	for i := 1; i < len(blockBoundaries); i++ {
		b := blockBoundaries[i]
		sp, isSplit := splits[b]
		switch {
		case isSplit && sp.stop:
			// no fallthrough: previous block ends in an unconditional jump/return/switch/athrow,
			// or b is an exception-table start_pc/end_pc bound
		case isSplit && sp.prior != nil:
			g.Edges = append(g.Edges, Edge{Kind: FallthroughEdge, Source: prevLabel, Target: blockAt[b], Via: sp.prior})
		default:
			g.Edges = append(g.Edges, Edge{Kind: FallthroughEdge, Source: prevLabel, Target: blockAt[b]})
		}
		prevLabel = blockAt[b]
	}

	boundaryOf := func(offset int) Label {
		i := sort.SearchInts(boundaries, offset+1) - 1
		if i < 0 {
			i = 0
		}
		return blockAt[boundaries[i]]
	}

	for _, off := range order {
		in := insns[off]
		owner := boundaryOf(off)

		switch {
		case in.Op == insn.Tableswitch || in.Op == insn.Lookupswitch:
			populateSwitch(g, owner, in, boundaryOf)
		case in.IsJump():
			populateJump(g, owner, in, boundaryOf)
		default:
			blk := g.Blocks[owner]
			blk.Insns = append(blk.Insns, in)
		}
	}

	for idx, h := range handlers {
		handlerLabel := boundaryOf(int(h.HandlerPC))
		seen := map[Label]bool{}
		for _, b := range boundaries {
			if b < int(h.StartPC) || b >= int(h.EndPC) {
				continue
			}
			l := blockAt[b]
			if seen[l] {
				continue
			}
			seen[l] = true
			g.Edges = append(g.Edges, Edge{
				Kind: CatchEdge, Source: l, Target: handlerLabel,
				Class: h.Catch, Priority: uint32(idx),
			})
		}
	}

	return g, nil
}

func markSplit(splits map[int]*splitInfo, offset int, stop bool, prior *insn.Instruction) {
	sp, ok := splits[offset]
	if !ok {
		sp = &splitInfo{}
		splits[offset] = sp
	}
	sp.isSplit = true
	if stop {
		sp.stop = true
	}
	if prior != nil {
		sp.prior = prior
	}
}

func isConditionalOrSubroutine(op insn.Op) bool {
	switch op {
	case insn.Jsr, insn.JsrW:
		return true
	}
	switch op {
	case insn.Ifeq, insn.Ifne, insn.Iflt, insn.Ifge, insn.Ifgt, insn.Ifle,
		insn.IfIcmpeq, insn.IfIcmpne, insn.IfIcmplt, insn.IfIcmpge, insn.IfIcmpgt, insn.IfIcmple,
		insn.IfAcmpeq, insn.IfAcmpne, insn.Ifnull, insn.Ifnonnull:
		return true
	}
	return false
}

func populateJump(g *Graph, owner Label, in insn.Instruction, boundaryOf func(int) Label) {
	switch {
	case in.Op == insn.Ret:
		inCopy := in
		g.Edges = append(g.Edges, Edge{Kind: RetEdge, Source: owner, Target: Opaque, Insn: &inCopy})
	case in.IsReturn():
		inCopy := in
		g.Edges = append(g.Edges, Edge{Kind: JumpEdge, Source: owner, Target: Return, Insn: &inCopy})
	case len(in.Targets()) > 0:
		inCopy := in
		target := boundaryOf(in.Targets()[0])
		g.Edges = append(g.Edges, Edge{Kind: JumpEdge, Source: owner, Target: target, Insn: &inCopy})
	default: // athrow
		inCopy := in
		g.Edges = append(g.Edges, Edge{Kind: JumpEdge, Source: owner, Target: Opaque, Insn: &inCopy})
	}
}

func populateSwitch(g *Graph, owner Label, in insn.Instruction, boundaryOf func(int) Label) {
	inCopy := in
	sw := in.Switch
	g.Edges = append(g.Edges, Edge{
		Kind: SwitchEdge, Source: owner, Target: boundaryOf(in.Offset + int(sw.Default)), Insn: &inCopy,
	})
	if sw.IsTable {
		for i, off := range sw.Offsets {
			v := sw.Low + int32(i)
			g.Edges = append(g.Edges, Edge{
				Kind: SwitchEdge, Source: owner, Target: boundaryOf(in.Offset + int(off)), Insn: &inCopy, Value: &v,
			})
		}
	} else {
		for _, p := range sw.Pairs {
			v := p.Match
			g.Edges = append(g.Edges, Edge{
				Kind: SwitchEdge, Source: owner, Target: boundaryOf(in.Offset + int(p.Offset)), Insn: &inCopy, Value: &v,
			})
		}
	}
}
