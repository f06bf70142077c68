// Package cfg builds a control-flow graph of Block/Edge values from a
// method's linear bytecode stream and exception table, modeled on the
// teacher's single-pass disassembler (disasm/disasm.go) and its
// block-stack linearizer (exec/internal/compile/compile.go), adapted from
// WebAssembly's structured control flow to the JVM's offset/jump-table
// model.
package cfg

import (
	"sort"

	"github.com/go-jclass/jclass/insn"
)

// Label identifies a block. The four special labels are fixed; every
// other block receives the next ascending label as it is created
// (spec.md §5 "Ordering guarantees").
type Label uint32

const (
	Entry Label = iota
	Return
	Rethrow
	Opaque

	firstBlock = 4
)

// EdgeKind tags the variant of an Edge.
type EdgeKind uint8

const (
	FallthroughEdge EdgeKind = iota
	JumpEdge
	RetEdge
	SwitchEdge
	CatchEdge
)

func (k EdgeKind) String() string {
	switch k {
	case FallthroughEdge:
		return "fallthrough"
	case JumpEdge:
		return "jump"
	case RetEdge:
		return "ret"
	case SwitchEdge:
		return "switch"
	case CatchEdge:
		return "catch"
	default:
		return "unknown"
	}
}

// Edge is a control-flow edge between two blocks. Not every field is
// meaningful for every Kind: Via is set for Fallthrough edges that
// originate at a conditional jump or jsr; Insn is set for Jump/Ret/Switch
// edges; Value is set for Switch edges (nil means the default case);
// Class/Priority are set for Catch edges.
type Edge struct {
	Kind   EdgeKind
	Source Label
	Target Label

	Via   *insn.Instruction // fallthrough's originating jump, if symbolic
	Insn  *insn.Instruction // jump/ret/switch's terminator
	Value *int32            // switch case value; nil for the default arm

	Class    string // catch class name; "" is catch-all
	Priority uint32 // catch priority: lower fires first
}

// Precedence orders edges for evaluation: jump/switch/ret edges fire
// first, then fallthrough, then catch edges by ascending priority
// (spec.md §3 "Edge (tagged sum)").
func (e Edge) Precedence() uint32 {
	switch e.Kind {
	case JumpEdge, SwitchEdge, RetEdge:
		return 1
	case FallthroughEdge:
		return 2
	case CatchEdge:
		return 3 + e.Priority
	default:
		return 0
	}
}

// Block is a maximal straight-line run of non-control-flow instructions.
// Jump, switch, and ret instructions never appear in Insns: they live
// exclusively on the Edge that they terminate the block with.
type Block struct {
	Label Label
	Insns []insn.Instruction

	frozen   bool
	ltThrows map[string]bool
	rtThrows map[string]bool
}

// Frozen reports whether b has been converted to its immutable form.
func (b *Block) Frozen() bool { return b.frozen }

// LtThrows returns the union of link-time exception classes possibly
// raised by b's instructions (populated on Freeze).
func (b *Block) LtThrows() []string { return setKeys(b.ltThrows) }

// RtThrows returns the union of run-time exception classes possibly
// raised by b's instructions (populated on Freeze).
func (b *Block) RtThrows() []string { return setKeys(b.rtThrows) }

func setKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// Graph is a disassembled method: the four special blocks, one block per
// split of the code, and the full edge set.
type Graph struct {
	Blocks map[Label]*Block
	Edges  []Edge
}

// Out returns the edges leaving label, in Precedence order.
func (g *Graph) Out(l Label) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Source == l {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Precedence() < out[j].Precedence() })
	return out
}

// ExceptionHandler mirrors a Code attribute's exception-table row. Catch
// == "" means a catch-all (finally) handler.
type ExceptionHandler struct {
	StartPC, EndPC, HandlerPC uint16
	Catch                     string
}
