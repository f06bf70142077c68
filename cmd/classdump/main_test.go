package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-jclass/jclass"
	"github.com/go-jclass/jclass/attr"
	"github.com/go-jclass/jclass/cpool"
	"github.com/go-jclass/jclass/version"
)

func writeMinimalClass(t *testing.T) string {
	t.Helper()
	pool := cpool.New()
	thisIdx := pool.Add(cpool.ClassEntry(pool.Add(cpool.UTF8Entry("Empty"))))
	superIdx := pool.Add(cpool.ClassEntry(pool.Add(cpool.UTF8Entry("java/lang/Object"))))
	nameIdx := pool.Add(cpool.UTF8Entry("run"))
	descIdx := pool.Add(cpool.UTF8Entry("()V"))

	code := &attr.Code{MaxStack: 1, MaxLocals: 1, Insns: []byte{0xB1}} // return

	cf := &jclass.ClassFile{
		Version:    version.Version{Major: 61, Minor: 0},
		Pool:       pool,
		Access:     jclass.ClassPublic | jclass.ClassSuper,
		ThisIndex:  thisIdx,
		SuperIndex: superIdx,
		Methods: []jclass.MethodInfo{
			{AccessFlags: jclass.MethodPublic, NameIndex: nameIdx, DescIndex: descIdx, Attrs: []attr.Attribute{code}},
		},
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "Empty.class")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := jclass.Write(f, cf); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadClass(t *testing.T) {
	path := writeMinimalClass(t)
	cf, err := loadClass(path)
	if err != nil {
		t.Fatal(err)
	}
	this, _ := cf.ThisName()
	if this != "Empty" {
		t.Fatalf("this class = %q", this)
	}
}

func TestPrintDump(t *testing.T) {
	path := writeMinimalClass(t)
	cf, err := loadClass(path)
	if err != nil {
		t.Fatal(err)
	}

	r, w, _ := os.Pipe()
	stdout := os.Stdout
	os.Stdout = w
	printDump(path, cf)
	w.Close()
	os.Stdout = stdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("this class: Empty")) {
		t.Fatalf("output missing this-class line:\n%s", out)
	}
	if !bytes.Contains([]byte(out), []byte("run()V [code]")) {
		t.Fatalf("output missing method line:\n%s", out)
	}
}
