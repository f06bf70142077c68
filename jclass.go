// Package jclass reads and writes JVM class files: a constant pool
// (cpool), a flat attribute table per class/field/method (attr), and a
// disassembler that turns a method's Code attribute into a control-flow
// graph (cfg). The top-level ClassFile ties those packages together the
// way wagon's wasm.Module ties together its own section packages.
package jclass

import (
	"fmt"
	"io"

	"github.com/go-jclass/jclass/attr"
	"github.com/go-jclass/jclass/bin"
	"github.com/go-jclass/jclass/cfg"
	"github.com/go-jclass/jclass/cpool"
	"github.com/go-jclass/jclass/diag"
	"github.com/go-jclass/jclass/version"
)

// ErrNoCode is returned by Disassemble when the method has no Code
// attribute (abstract or native methods carry none).
var ErrNoCode = fmt.Errorf("jclass: method has no Code attribute")

// Disassemble builds the control-flow graph for m's bytecode, resolving
// exception handler catch types against c's pool. This is the "Graph::
// disassemble(method, classfile)" entry point (spec.md §6).
func (c *ClassFile) Disassemble(m *MethodInfo) (*cfg.Graph, error) {
	code := m.Code()
	if code == nil {
		return nil, ErrNoCode
	}
	return code.Build(c.Pool)
}

// Magic is the fixed four-byte signature every class file begins with.
const Magic uint32 = 0xCAFEBABE

// ErrBadMagic is returned when a class file's first four bytes aren't
// 0xCAFEBABE: fatal, per spec.md §7.
type ErrBadMagic struct {
	Got uint32
}

func (e ErrBadMagic) Error() string {
	return fmt.Sprintf("jclass: bad magic 0x%08x, want 0x%08x", e.Got, Magic)
}

// FieldInfo is one field_info structure.
type FieldInfo struct {
	AccessFlags uint16
	NameIndex   uint16
	DescIndex   uint16
	Attrs       []attr.Attribute
}

// MethodInfo is one method_info structure. Code, if present, lives in
// Attrs like any other attribute; (*MethodInfo).Code is a convenience
// accessor.
type MethodInfo struct {
	AccessFlags uint16
	NameIndex   uint16
	DescIndex   uint16
	Attrs       []attr.Attribute
}

// Code returns the method's Code attribute, or nil if it has none (an
// abstract or native method).
func (m *MethodInfo) Code() *attr.Code {
	for _, a := range m.Attrs {
		if c, ok := a.(*attr.Code); ok {
			return c
		}
	}
	return nil
}

// ClassFile is a fully parsed (or programmatically built) class file,
// matching spec.md §3's ClassFile data model.
type ClassFile struct {
	Version    version.Version
	Pool       *cpool.Pool
	Access     uint16
	ThisIndex  uint16
	SuperIndex uint16 // 0 for java/lang/Object
	Interfaces []uint16
	Fields     []FieldInfo
	Methods    []MethodInfo
	Attrs      []attr.Attribute
}

// ThisName resolves the class's own binary name.
func (c *ClassFile) ThisName() (string, bool) {
	return c.Pool.ClassNameAt(c.ThisIndex)
}

// SuperName resolves the superclass's binary name, or "" if this class is
// java/lang/Object (SuperIndex == 0).
func (c *ClassFile) SuperName() (string, bool) {
	if c.SuperIndex == 0 {
		return "", true
	}
	return c.Pool.ClassNameAt(c.SuperIndex)
}

// Read parses a complete class file from r, following spec.md §6's
// byte layout. Non-fatal problems (unknown/misplaced/truncated
// attributes, bad pool references) accumulate in the returned
// diag.List instead of aborting the parse; only structural failures
// (bad magic, truncated input, an unknown pool tag) return an error.
// Instructions are not decoded and no CFG is built here; that happens in
// Disassemble.
func Read(r io.Reader) (*ClassFile, *diag.List, error) {
	list := &diag.List{}

	magic, err := bin.ReadU32(r)
	if err != nil {
		return nil, list, err
	}
	if magic != Magic {
		return nil, list, ErrBadMagic{Got: magic}
	}

	minor, err := bin.ReadU16(r)
	if err != nil {
		return nil, list, err
	}
	major, err := bin.ReadU16(r)
	if err != nil {
		return nil, list, err
	}
	v := version.Version{Major: major, Minor: minor}

	pool, err := cpool.Read(r)
	if err != nil {
		return nil, list, err
	}
	list.Merge(pool.Resolve())

	cf := &ClassFile{Version: v, Pool: pool}
	if cf.Access, err = bin.ReadU16(r); err != nil {
		return nil, list, err
	}
	if cf.ThisIndex, err = bin.ReadU16(r); err != nil {
		return nil, list, err
	}
	if cf.SuperIndex, err = bin.ReadU16(r); err != nil {
		return nil, list, err
	}

	nIfaces, err := bin.ReadU16(r)
	if err != nil {
		return nil, list, err
	}
	cf.Interfaces = make([]uint16, nIfaces)
	for i := range cf.Interfaces {
		if cf.Interfaces[i], err = bin.ReadU16(r); err != nil {
			return nil, list, err
		}
	}

	logger.Printf("reading fields")
	if cf.Fields, err = readFields(r, pool, v, list); err != nil {
		return nil, list, err
	}
	logger.Printf("reading methods")
	if cf.Methods, err = readMethods(r, pool, v, list); err != nil {
		return nil, list, err
	}

	actx := &attr.Context{Version: v, Pool: pool, Diag: list, Location: attr.LocClass}
	if cf.Attrs, err = attr.ReadAll(r, actx); err != nil {
		return nil, list, err
	}

	return cf, list, nil
}

func readFields(r io.Reader, pool *cpool.Pool, v version.Version, list *diag.List) ([]FieldInfo, error) {
	n, err := bin.ReadU16(r)
	if err != nil {
		return nil, err
	}
	out := make([]FieldInfo, n)
	actx := &attr.Context{Version: v, Pool: pool, Diag: list, Location: attr.LocField}
	for i := range out {
		m := &out[i]
		if m.AccessFlags, err = bin.ReadU16(r); err != nil {
			return nil, err
		}
		if m.NameIndex, err = bin.ReadU16(r); err != nil {
			return nil, err
		}
		if m.DescIndex, err = bin.ReadU16(r); err != nil {
			return nil, err
		}
		if m.Attrs, err = attr.ReadAll(r, actx); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readMethods(r io.Reader, pool *cpool.Pool, v version.Version, list *diag.List) ([]MethodInfo, error) {
	n, err := bin.ReadU16(r)
	if err != nil {
		return nil, err
	}
	out := make([]MethodInfo, n)
	actx := &attr.Context{Version: v, Pool: pool, Diag: list, Location: attr.LocMethod}
	for i := range out {
		m := &out[i]
		if m.AccessFlags, err = bin.ReadU16(r); err != nil {
			return nil, err
		}
		if m.NameIndex, err = bin.ReadU16(r); err != nil {
			return nil, err
		}
		if m.DescIndex, err = bin.ReadU16(r); err != nil {
			return nil, err
		}
		if m.Attrs, err = attr.ReadAll(r, actx); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Write serializes c to w in full (spec.md §6's byte layout). The pool
// must already contain every entry transitively referenced by c's fields,
// methods, attributes, and instructions (spec.md §3 Invariants); Write
// does not implicitly add anything to the pool.
func Write(w io.Writer, c *ClassFile) error {
	var cur bin.Cursor
	cur.U32(Magic)
	cur.U16(c.Version.Minor)
	cur.U16(c.Version.Major)
	c.Pool.Write(&cur)
	cur.U16(c.Access)
	cur.U16(c.ThisIndex)
	cur.U16(c.SuperIndex)

	cur.U16(uint16(len(c.Interfaces)))
	for _, idx := range c.Interfaces {
		cur.U16(idx)
	}

	fieldCtx := &attr.Context{Version: c.Version, Pool: c.Pool, Diag: &diag.List{}, Location: attr.LocField}
	cur.U16(uint16(len(c.Fields)))
	for _, f := range c.Fields {
		cur.U16(f.AccessFlags)
		cur.U16(f.NameIndex)
		cur.U16(f.DescIndex)
		attr.WriteAll(&cur, fieldCtx, f.Attrs)
	}

	methodCtx := &attr.Context{Version: c.Version, Pool: c.Pool, Diag: &diag.List{}, Location: attr.LocMethod}
	cur.U16(uint16(len(c.Methods)))
	for _, m := range c.Methods {
		cur.U16(m.AccessFlags)
		cur.U16(m.NameIndex)
		cur.U16(m.DescIndex)
		attr.WriteAll(&cur, methodCtx, m.Attrs)
	}

	classCtx := &attr.Context{Version: c.Version, Pool: c.Pool, Diag: &diag.List{}, Location: attr.LocClass}
	attr.WriteAll(&cur, classCtx, c.Attrs)

	_, err := w.Write(cur.Bytes())
	return err
}
