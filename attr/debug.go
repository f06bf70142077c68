package attr

import "github.com/go-jclass/jclass/bin"

// LineNumberEntry maps one bytecode offset to a source line.
type LineNumberEntry struct {
	StartPC uint16
	Line    uint16
}

// LineNumberTable maps Code bytecode offsets to source line numbers, for
// stack traces and debuggers.
type LineNumberTable struct {
	extra
	Lines []LineNumberEntry
}

func (a *LineNumberTable) AttrName() string { return "LineNumberTable" }
func (a *LineNumberTable) writePayload(c *bin.Cursor, ctx *Context) {
	c.U16(uint16(len(a.Lines)))
	for _, l := range a.Lines {
		c.U16(l.StartPC)
		c.U16(l.Line)
	}
}

func init() {
	register("LineNumberTable", sinceClassic, LocCode, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		n, err := bin.ReadU16(cr)
		if err != nil {
			return nil, err
		}
		lines := make([]LineNumberEntry, n)
		for i := range lines {
			if lines[i].StartPC, err = bin.ReadU16(cr); err != nil {
				return nil, err
			}
			if lines[i].Line, err = bin.ReadU16(cr); err != nil {
				return nil, err
			}
		}
		return &LineNumberTable{Lines: lines}, nil
	})
}

// LocalVariableEntry describes one local variable's liveness range, name,
// and descriptor.
type LocalVariableEntry struct {
	StartPC  uint16
	Length   uint16
	NameIndex uint16
	DescIndex uint16 // descriptor_index for LocalVariableTable, signature_index for the Type variant
	Index    uint16
}

// LocalVariableTable maps Code local-variable slots to source names using
// field descriptors.
type LocalVariableTable struct {
	extra
	Locals []LocalVariableEntry
}

func (a *LocalVariableTable) AttrName() string { return "LocalVariableTable" }
func (a *LocalVariableTable) writePayload(c *bin.Cursor, ctx *Context) {
	writeLocalVariableEntries(c, a.Locals)
}

func init() {
	register("LocalVariableTable", sinceClassic, LocCode, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		locals, err := readLocalVariableEntries(cr)
		return &LocalVariableTable{Locals: locals}, err
	})
}

// LocalVariableTypeTable parallels LocalVariableTable for locals whose
// declared type needs a generic Signature rather than a field descriptor.
type LocalVariableTypeTable struct {
	extra
	Locals []LocalVariableEntry
}

func (a *LocalVariableTypeTable) AttrName() string { return "LocalVariableTypeTable" }
func (a *LocalVariableTypeTable) writePayload(c *bin.Cursor, ctx *Context) {
	writeLocalVariableEntries(c, a.Locals)
}

func init() {
	register("LocalVariableTypeTable", sinceJava5, LocCode, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		locals, err := readLocalVariableEntries(cr)
		return &LocalVariableTypeTable{Locals: locals}, err
	})
}

func readLocalVariableEntries(cr *bin.CountingReader) ([]LocalVariableEntry, error) {
	n, err := bin.ReadU16(cr)
	if err != nil {
		return nil, err
	}
	locals := make([]LocalVariableEntry, n)
	for i := range locals {
		e := &locals[i]
		if e.StartPC, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
		if e.Length, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
		if e.NameIndex, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
		if e.DescIndex, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
		if e.Index, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
	}
	return locals, nil
}

func writeLocalVariableEntries(c *bin.Cursor, locals []LocalVariableEntry) {
	c.U16(uint16(len(locals)))
	for _, e := range locals {
		c.U16(e.StartPC)
		c.U16(e.Length)
		c.U16(e.NameIndex)
		c.U16(e.DescIndex)
		c.U16(e.Index)
	}
}
