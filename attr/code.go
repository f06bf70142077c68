package attr

import (
	"github.com/go-jclass/jclass/bin"
	"github.com/go-jclass/jclass/cfg"
	"github.com/go-jclass/jclass/cpool"
)

// CodeExceptionHandler is one exception_table entry as it appears on disk:
// a catch_type pool index rather than a resolved class name (CFGHandlers
// resolves it once a pool is available).
type CodeExceptionHandler struct {
	StartPC       uint16
	EndPC         uint16
	HandlerPC     uint16
	CatchTypeIndex uint16 // 0 means catch-all (finally)
}

// Code holds a method's bytecode, exception table, and nested attribute
// table (LineNumberTable, LocalVariableTable, StackMapTable, ...). The raw
// instruction stream is kept as bytes rather than decoded eagerly — insn.Read
// and cfg.Build operate on it lazily via Build, matching spec.md §4.6's
// disassembler being a separate pass over an already-read Code.
type Code struct {
	extra
	MaxStack  uint16
	MaxLocals uint16
	Insns     []byte
	Handlers  []CodeExceptionHandler
	Attrs     []Attribute
}

func (a *Code) AttrName() string { return "Code" }

func (a *Code) writePayload(c *bin.Cursor, ctx *Context) {
	if ctx.Version.LegacyCodeLayout() {
		c.U8(uint8(a.MaxStack))
		c.U8(uint8(a.MaxLocals))
		c.U16(uint16(len(a.Insns)))
	} else {
		c.U16(a.MaxStack)
		c.U16(a.MaxLocals)
		c.U32(uint32(len(a.Insns)))
	}
	c.Raw(a.Insns)

	c.U16(uint16(len(a.Handlers)))
	for _, h := range a.Handlers {
		c.U16(h.StartPC)
		c.U16(h.EndPC)
		c.U16(h.HandlerPC)
		c.U16(h.CatchTypeIndex)
	}

	codeCtx := *ctx
	codeCtx.Location = LocCode
	WriteAll(c, &codeCtx, a.Attrs)
}

func init() {
	register("Code", sinceClassic, LocMethod, readCode)
}

func readCode(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
	a := &Code{}
	var codeLen uint32
	var err error
	if ctx.Version.LegacyCodeLayout() {
		ms, err1 := bin.ReadU8(cr)
		if err1 != nil {
			return nil, err1
		}
		ml, err2 := bin.ReadU8(cr)
		if err2 != nil {
			return nil, err2
		}
		n, err3 := bin.ReadU16(cr)
		if err3 != nil {
			return nil, err3
		}
		a.MaxStack, a.MaxLocals, codeLen = uint16(ms), uint16(ml), uint32(n)
	} else {
		if a.MaxStack, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
		if a.MaxLocals, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
		if codeLen, err = bin.ReadU32(cr); err != nil {
			return nil, err
		}
	}

	a.Insns, err = bin.ReadBytes(cr, int(codeLen))
	if err != nil {
		return nil, err
	}

	nh, err := bin.ReadU16(cr)
	if err != nil {
		return nil, err
	}
	a.Handlers = make([]CodeExceptionHandler, nh)
	for i := range a.Handlers {
		h := &a.Handlers[i]
		if h.StartPC, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
		if h.EndPC, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
		if h.HandlerPC, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
		if h.CatchTypeIndex, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
	}

	codeCtx := *ctx
	codeCtx.Location = LocCode
	a.Attrs, err = ReadAll(cr, &codeCtx)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CFGHandlers resolves each exception_table entry's catch_type index to a
// binary class name (empty for a catch-all), producing the form
// cfg.Build expects.
func (a *Code) CFGHandlers(pool *cpool.Pool) []cfg.ExceptionHandler {
	out := make([]cfg.ExceptionHandler, len(a.Handlers))
	for i, h := range a.Handlers {
		var catch string
		if h.CatchTypeIndex != 0 {
			catch, _ = pool.ClassNameAt(h.CatchTypeIndex)
		}
		out[i] = cfg.ExceptionHandler{StartPC: h.StartPC, EndPC: h.EndPC, HandlerPC: h.HandlerPC, Catch: catch}
	}
	return out
}

// Build disassembles this Code's instruction stream into a control-flow
// graph (spec.md §4.6), resolving the exception table against pool first.
func (a *Code) Build(pool *cpool.Pool) (*cfg.Graph, error) {
	return cfg.Build(a.Insns, a.CFGHandlers(pool))
}
