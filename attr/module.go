package attr

import "github.com/go-jclass/jclass/bin"

// ModuleRequires is one `requires` directive.
type ModuleRequires struct {
	Index        uint16
	Flags        uint16
	VersionIndex uint16 // 0 if unversioned
}

// ModuleExports is one `exports` directive, optionally qualified to a set
// of reading modules.
type ModuleExports struct {
	Index   uint16
	Flags   uint16
	ToIndex []uint16
}

// ModuleOpens is one `opens` directive, optionally qualified.
type ModuleOpens struct {
	Index   uint16
	Flags   uint16
	ToIndex []uint16
}

// ModuleProvides is one `provides ... with ...` directive.
type ModuleProvides struct {
	Index     uint16
	WithIndex []uint16
}

// Module describes a module declaration: its identity plus its
// requires/exports/opens/uses/provides directives.
type Module struct {
	extra
	NameIndex    uint16
	Flags        uint16
	VersionIndex uint16
	Requires     []ModuleRequires
	Exports      []ModuleExports
	Opens        []ModuleOpens
	Uses         []uint16
	Provides     []ModuleProvides
}

func (a *Module) AttrName() string { return "Module" }

func (a *Module) writePayload(c *bin.Cursor, ctx *Context) {
	c.U16(a.NameIndex)
	c.U16(a.Flags)
	c.U16(a.VersionIndex)

	c.U16(uint16(len(a.Requires)))
	for _, r := range a.Requires {
		c.U16(r.Index)
		c.U16(r.Flags)
		c.U16(r.VersionIndex)
	}

	c.U16(uint16(len(a.Exports)))
	for _, e := range a.Exports {
		c.U16(e.Index)
		c.U16(e.Flags)
		c.U16(uint16(len(e.ToIndex)))
		for _, to := range e.ToIndex {
			c.U16(to)
		}
	}

	c.U16(uint16(len(a.Opens)))
	for _, o := range a.Opens {
		c.U16(o.Index)
		c.U16(o.Flags)
		c.U16(uint16(len(o.ToIndex)))
		for _, to := range o.ToIndex {
			c.U16(to)
		}
	}

	c.U16(uint16(len(a.Uses)))
	for _, u := range a.Uses {
		c.U16(u)
	}

	c.U16(uint16(len(a.Provides)))
	for _, p := range a.Provides {
		c.U16(p.Index)
		c.U16(uint16(len(p.WithIndex)))
		for _, w := range p.WithIndex {
			c.U16(w)
		}
	}
}

func init() {
	register("Module", sinceJava9, LocClass, readModule)
}

func readModule(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
	m := &Module{}
	var err error
	if m.NameIndex, err = bin.ReadU16(cr); err != nil {
		return nil, err
	}
	if m.Flags, err = bin.ReadU16(cr); err != nil {
		return nil, err
	}
	if m.VersionIndex, err = bin.ReadU16(cr); err != nil {
		return nil, err
	}

	nr, err := bin.ReadU16(cr)
	if err != nil {
		return nil, err
	}
	m.Requires = make([]ModuleRequires, nr)
	for i := range m.Requires {
		r := &m.Requires[i]
		if r.Index, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
		if r.Flags, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
		if r.VersionIndex, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
	}

	ne, err := bin.ReadU16(cr)
	if err != nil {
		return nil, err
	}
	m.Exports = make([]ModuleExports, ne)
	for i := range m.Exports {
		e := &m.Exports[i]
		if e.Index, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
		if e.Flags, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
		nto, err := bin.ReadU16(cr)
		if err != nil {
			return nil, err
		}
		e.ToIndex = make([]uint16, nto)
		for j := range e.ToIndex {
			if e.ToIndex[j], err = bin.ReadU16(cr); err != nil {
				return nil, err
			}
		}
	}

	no, err := bin.ReadU16(cr)
	if err != nil {
		return nil, err
	}
	m.Opens = make([]ModuleOpens, no)
	for i := range m.Opens {
		o := &m.Opens[i]
		if o.Index, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
		if o.Flags, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
		nto, err := bin.ReadU16(cr)
		if err != nil {
			return nil, err
		}
		o.ToIndex = make([]uint16, nto)
		for j := range o.ToIndex {
			if o.ToIndex[j], err = bin.ReadU16(cr); err != nil {
				return nil, err
			}
		}
	}

	nu, err := bin.ReadU16(cr)
	if err != nil {
		return nil, err
	}
	m.Uses = make([]uint16, nu)
	for i := range m.Uses {
		if m.Uses[i], err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
	}

	np, err := bin.ReadU16(cr)
	if err != nil {
		return nil, err
	}
	m.Provides = make([]ModuleProvides, np)
	for i := range m.Provides {
		p := &m.Provides[i]
		if p.Index, err = bin.ReadU16(cr); err != nil {
			return nil, err
		}
		nw, err := bin.ReadU16(cr)
		if err != nil {
			return nil, err
		}
		p.WithIndex = make([]uint16, nw)
		for j := range p.WithIndex {
			if p.WithIndex[j], err = bin.ReadU16(cr); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}
