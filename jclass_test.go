package jclass

import (
	"bytes"
	"testing"

	"github.com/go-jclass/jclass/attr"
	"github.com/go-jclass/jclass/cpool"
	"github.com/go-jclass/jclass/version"
)

// buildMinimal constructs "class Empty extends java/lang/Object" (S1 from
// spec.md §8) with one trivial method, entirely in memory.
func buildMinimal(t *testing.T) *ClassFile {
	t.Helper()
	pool := cpool.New()
	thisIdx := pool.Add(cpool.ClassEntry(pool.Add(cpool.UTF8Entry("Empty"))))
	superIdx := pool.Add(cpool.ClassEntry(pool.Add(cpool.UTF8Entry("java/lang/Object"))))
	nameIdx := pool.Add(cpool.UTF8Entry("run"))
	descIdx := pool.Add(cpool.UTF8Entry("()V"))

	code := &attr.Code{
		MaxStack:  1,
		MaxLocals: 1,
		Insns:     []byte{0xB1}, // return
	}

	return &ClassFile{
		Version:    version.Version{Major: 61, Minor: 0},
		Pool:       pool,
		Access:     ClassPublic | ClassSuper,
		ThisIndex:  thisIdx,
		SuperIndex: superIdx,
		Methods: []MethodInfo{
			{AccessFlags: MethodPublic, NameIndex: nameIdx, DescIndex: descIdx, Attrs: []attr.Attribute{code}},
		},
	}
}

func TestClassFileRoundTrip(t *testing.T) {
	cf := buildMinimal(t)

	var buf bytes.Buffer
	if err := Write(&buf, cf); err != nil {
		t.Fatal(err)
	}

	back, diags, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Items())
	}

	name, ok := back.ThisName()
	if !ok || name != "Empty" {
		t.Fatalf("this name = %q, %v", name, ok)
	}
	super, ok := back.SuperName()
	if !ok || super != "java/lang/Object" {
		t.Fatalf("super name = %q, %v", super, ok)
	}
	if len(back.Methods) != 1 {
		t.Fatalf("methods = %+v", back.Methods)
	}
	if back.Access != (ClassPublic | ClassSuper) {
		t.Fatalf("access = %x", back.Access)
	}
}

func TestClassFileDisassemble(t *testing.T) {
	cf := buildMinimal(t)

	var buf bytes.Buffer
	if err := Write(&buf, cf); err != nil {
		t.Fatal(err)
	}
	back, _, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}

	g, err := back.Disassemble(&back.Methods[0])
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Blocks) == 0 {
		t.Fatal("expected a non-empty CFG")
	}
}

func TestBadMagic(t *testing.T) {
	_, _, err := Read(bytes.NewReader([]byte{0, 0, 0, 0}))
	if _, ok := err.(ErrBadMagic); !ok {
		t.Fatalf("err = %v, want ErrBadMagic", err)
	}
}

func TestDisassembleNoCode(t *testing.T) {
	cf := buildMinimal(t)
	abstractIdx := cf.Pool.Add(cpool.UTF8Entry("abstractOne"))
	cf.Methods = append(cf.Methods, MethodInfo{
		AccessFlags: MethodPublic | MethodAbstract,
		NameIndex:   abstractIdx,
		DescIndex:   cf.Methods[0].DescIndex,
	})

	_, err := cf.Disassemble(&cf.Methods[1])
	if err != ErrNoCode {
		t.Fatalf("err = %v, want ErrNoCode", err)
	}
}
