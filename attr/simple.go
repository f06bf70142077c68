package attr

import (
	"errors"
	"io"

	"github.com/go-jclass/jclass/bin"
)

// ConstantValue (spec.md §4.4) names the constant pool entry giving a
// static final field's compile-time value.
type ConstantValue struct {
	extra
	ValueIndex uint16
}

func (a *ConstantValue) AttrName() string { return "ConstantValue" }
func (a *ConstantValue) writePayload(c *bin.Cursor, ctx *Context) {
	c.U16(a.ValueIndex)
}

func init() {
	register("ConstantValue", sinceClassic, LocField, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		v, err := bin.ReadU16(cr)
		return &ConstantValue{ValueIndex: v}, err
	})
}

// Synthetic marks a compiler-generated member with no corresponding source.
type Synthetic struct{ extra }

func (a *Synthetic) AttrName() string                         { return "Synthetic" }
func (a *Synthetic) writePayload(c *bin.Cursor, ctx *Context) {}

func init() {
	register("Synthetic", sinceJava5, locClassFieldMethod, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		return &Synthetic{}, nil
	})
}

// Deprecated marks a member as deprecated by its author.
type Deprecated struct{ extra }

func (a *Deprecated) AttrName() string                         { return "Deprecated" }
func (a *Deprecated) writePayload(c *bin.Cursor, ctx *Context) {}

func init() {
	register("Deprecated", sinceJava5, locClassFieldMethod, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		return &Deprecated{}, nil
	})
}

// Signature stores a generic-signature string opaquely: spec.md's Open
// Questions note the original's signature grammar parser is vestigial, so
// this module keeps the raw UTF8 payload without a sub-parser.
type Signature struct {
	extra
	SignatureIndex uint16
}

func (a *Signature) AttrName() string { return "Signature" }
func (a *Signature) writePayload(c *bin.Cursor, ctx *Context) {
	c.U16(a.SignatureIndex)
}

func init() {
	register("Signature", sinceJava5, locDeclaration, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		v, err := bin.ReadU16(cr)
		return &Signature{SignatureIndex: v}, err
	})
}

// SourceFile names the source file a class was compiled from.
type SourceFile struct {
	extra
	SourceFileIndex uint16
}

func (a *SourceFile) AttrName() string { return "SourceFile" }
func (a *SourceFile) writePayload(c *bin.Cursor, ctx *Context) {
	c.U16(a.SourceFileIndex)
}

func init() {
	register("SourceFile", sinceClassic, LocClass, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		v, err := bin.ReadU16(cr)
		return &SourceFile{SourceFileIndex: v}, err
	})
}

// SourceDebugExtension carries arbitrary (typically JSR-45) debug
// information as raw modified-UTF8 bytes, not resolved through the pool.
type SourceDebugExtension struct {
	extra
	Debug []byte
}

func (a *SourceDebugExtension) AttrName() string { return "SourceDebugExtension" }
func (a *SourceDebugExtension) writePayload(c *bin.Cursor, ctx *Context) {
	c.Raw(a.Debug)
}

func init() {
	register("SourceDebugExtension", sinceJava5, LocClass, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		rest, err := readAllRemaining(cr)
		return &SourceDebugExtension{Debug: rest}, err
	})
}

// Exceptions lists the checked exception classes a method declares.
type Exceptions struct {
	extra
	ClassIndexes []uint16
}

func (a *Exceptions) AttrName() string { return "Exceptions" }
func (a *Exceptions) writePayload(c *bin.Cursor, ctx *Context) {
	c.U16(uint16(len(a.ClassIndexes)))
	for _, idx := range a.ClassIndexes {
		c.U16(idx)
	}
}

func init() {
	register("Exceptions", sinceClassic, LocMethod, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		n, err := bin.ReadU16(cr)
		if err != nil {
			return nil, err
		}
		idxs := make([]uint16, n)
		for i := range idxs {
			idxs[i], err = bin.ReadU16(cr)
			if err != nil {
				return nil, err
			}
		}
		return &Exceptions{ClassIndexes: idxs}, nil
	})
}

// InnerClass is one entry of an InnerClasses attribute.
type InnerClass struct {
	InnerClassIndex uint16
	OuterClassIndex uint16 // 0 if the inner class is not a member
	InnerNameIndex  uint16 // 0 if the inner class is anonymous
	InnerAccessFlags uint16
}

// InnerClasses enumerates a class's nested-class relationships.
type InnerClasses struct {
	extra
	Classes []InnerClass
}

func (a *InnerClasses) AttrName() string { return "InnerClasses" }
func (a *InnerClasses) writePayload(c *bin.Cursor, ctx *Context) {
	c.U16(uint16(len(a.Classes)))
	for _, ic := range a.Classes {
		c.U16(ic.InnerClassIndex)
		c.U16(ic.OuterClassIndex)
		c.U16(ic.InnerNameIndex)
		c.U16(ic.InnerAccessFlags)
	}
}

func init() {
	register("InnerClasses", sinceClassic, LocClass, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		n, err := bin.ReadU16(cr)
		if err != nil {
			return nil, err
		}
		classes := make([]InnerClass, n)
		for i := range classes {
			if classes[i].InnerClassIndex, err = bin.ReadU16(cr); err != nil {
				return nil, err
			}
			if classes[i].OuterClassIndex, err = bin.ReadU16(cr); err != nil {
				return nil, err
			}
			if classes[i].InnerNameIndex, err = bin.ReadU16(cr); err != nil {
				return nil, err
			}
			if classes[i].InnerAccessFlags, err = bin.ReadU16(cr); err != nil {
				return nil, err
			}
		}
		return &InnerClasses{Classes: classes}, nil
	})
}

// EnclosingMethod names the innermost enclosing class and, if the class is
// a local or anonymous class declared inside a method, that method.
type EnclosingMethod struct {
	extra
	ClassIndex  uint16
	MethodIndex uint16 // 0 if not enclosed by a method
}

func (a *EnclosingMethod) AttrName() string { return "EnclosingMethod" }
func (a *EnclosingMethod) writePayload(c *bin.Cursor, ctx *Context) {
	c.U16(a.ClassIndex)
	c.U16(a.MethodIndex)
}

func init() {
	register("EnclosingMethod", sinceJava5, LocClass, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		classIdx, err := bin.ReadU16(cr)
		if err != nil {
			return nil, err
		}
		methodIdx, err := bin.ReadU16(cr)
		return &EnclosingMethod{ClassIndex: classIdx, MethodIndex: methodIdx}, err
	})
}

// MethodParameter is one entry of a MethodParameters attribute.
type MethodParameter struct {
	NameIndex   uint16 // 0 if the parameter is unnamed
	AccessFlags uint16
}

// MethodParameters records formal-parameter names and modifiers.
type MethodParameters struct {
	extra
	Parameters []MethodParameter
}

func (a *MethodParameters) AttrName() string { return "MethodParameters" }
func (a *MethodParameters) writePayload(c *bin.Cursor, ctx *Context) {
	c.U8(uint8(len(a.Parameters)))
	for _, p := range a.Parameters {
		c.U16(p.NameIndex)
		c.U16(p.AccessFlags)
	}
}

func init() {
	register("MethodParameters", sinceJava8, LocMethod, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		n, err := bin.ReadU8(cr)
		if err != nil {
			return nil, err
		}
		params := make([]MethodParameter, n)
		for i := range params {
			if params[i].NameIndex, err = bin.ReadU16(cr); err != nil {
				return nil, err
			}
			if params[i].AccessFlags, err = bin.ReadU16(cr); err != nil {
				return nil, err
			}
		}
		return &MethodParameters{Parameters: params}, nil
	})
}

// NestHost names the nest's host class, on a nest member.
type NestHost struct {
	extra
	HostClassIndex uint16
}

func (a *NestHost) AttrName() string { return "NestHost" }
func (a *NestHost) writePayload(c *bin.Cursor, ctx *Context) {
	c.U16(a.HostClassIndex)
}

func init() {
	register("NestHost", sinceJava11, LocClass, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		v, err := bin.ReadU16(cr)
		return &NestHost{HostClassIndex: v}, err
	})
}

// NestMembers lists a nest host's member classes.
type NestMembers struct {
	extra
	ClassIndexes []uint16
}

func (a *NestMembers) AttrName() string { return "NestMembers" }
func (a *NestMembers) writePayload(c *bin.Cursor, ctx *Context) {
	c.U16(uint16(len(a.ClassIndexes)))
	for _, idx := range a.ClassIndexes {
		c.U16(idx)
	}
}

func init() {
	register("NestMembers", sinceJava11, LocClass, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		return readClassIndexList(cr, func(idxs []uint16) Attribute { return &NestMembers{ClassIndexes: idxs} })
	})
}

// PermittedSubclasses restricts which classes may extend/implement a
// sealed class or interface.
type PermittedSubclasses struct {
	extra
	ClassIndexes []uint16
}

func (a *PermittedSubclasses) AttrName() string { return "PermittedSubclasses" }
func (a *PermittedSubclasses) writePayload(c *bin.Cursor, ctx *Context) {
	c.U16(uint16(len(a.ClassIndexes)))
	for _, idx := range a.ClassIndexes {
		c.U16(idx)
	}
}

func init() {
	register("PermittedSubclasses", sinceJava17, LocClass, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		return readClassIndexList(cr, func(idxs []uint16) Attribute { return &PermittedSubclasses{ClassIndexes: idxs} })
	})
}

// ModulePackages lists every package a module's compilation unit touches.
type ModulePackages struct {
	extra
	PackageIndexes []uint16
}

func (a *ModulePackages) AttrName() string { return "ModulePackages" }
func (a *ModulePackages) writePayload(c *bin.Cursor, ctx *Context) {
	c.U16(uint16(len(a.PackageIndexes)))
	for _, idx := range a.PackageIndexes {
		c.U16(idx)
	}
}

func init() {
	register("ModulePackages", sinceJava9, LocClass, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		return readClassIndexList(cr, func(idxs []uint16) Attribute { return &ModulePackages{PackageIndexes: idxs} })
	})
}

// ModuleMainClass names a module's default launch entry point.
type ModuleMainClass struct {
	extra
	MainClassIndex uint16
}

func (a *ModuleMainClass) AttrName() string { return "ModuleMainClass" }
func (a *ModuleMainClass) writePayload(c *bin.Cursor, ctx *Context) {
	c.U16(a.MainClassIndex)
}

func init() {
	register("ModuleMainClass", sinceJava9, LocClass, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		v, err := bin.ReadU16(cr)
		return &ModuleMainClass{MainClassIndex: v}, err
	})
}

func readClassIndexList(cr *bin.CountingReader, build func([]uint16) Attribute) (Attribute, error) {
	n, err := bin.ReadU16(cr)
	if err != nil {
		return nil, err
	}
	idxs := make([]uint16, n)
	for i := range idxs {
		if idxs[i], err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
	}
	return build(idxs), nil
}

func readAllRemaining(cr *bin.CountingReader) ([]byte, error) {
	out, err := io.ReadAll(cr)
	if errors.Is(err, io.EOF) {
		return out, nil
	}
	return out, err
}
