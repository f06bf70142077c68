package attr

import "github.com/go-jclass/jclass/bin"

// BootstrapMethod is one (method_handle_ref, args) pair referenced by
// invokedynamic/Dynamic constant pool entries.
type BootstrapMethod struct {
	MethodRef uint16
	Args      []uint16
}

// BootstrapMethods holds the class's bootstrap method table, addressed by
// a Dynamic/InvokeDynamic pool entry's bootstrap_method_attr_index.
type BootstrapMethods struct {
	extra
	Methods []BootstrapMethod
}

func (a *BootstrapMethods) AttrName() string { return "BootstrapMethods" }
func (a *BootstrapMethods) writePayload(c *bin.Cursor, ctx *Context) {
	c.U16(uint16(len(a.Methods)))
	for _, m := range a.Methods {
		c.U16(m.MethodRef)
		c.U16(uint16(len(m.Args)))
		for _, arg := range m.Args {
			c.U16(arg)
		}
	}
}

func init() {
	register("BootstrapMethods", sinceJava7, LocClass, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		n, err := bin.ReadU16(cr)
		if err != nil {
			return nil, err
		}
		methods := make([]BootstrapMethod, n)
		for i := range methods {
			if methods[i].MethodRef, err = bin.ReadU16(cr); err != nil {
				return nil, err
			}
			nargs, err := bin.ReadU16(cr)
			if err != nil {
				return nil, err
			}
			args := make([]uint16, nargs)
			for j := range args {
				if args[j], err = bin.ReadU16(cr); err != nil {
					return nil, err
				}
			}
			methods[i].Args = args
		}
		return &BootstrapMethods{Methods: methods}, nil
	})
}
