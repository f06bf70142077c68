package attr

import "github.com/go-jclass/jclass/bin"

// RecordComponent is one component of a record class, carrying its own
// nested attribute table (typically Signature and annotations) the same
// way a field_info or method_info does.
type RecordComponent struct {
	NameIndex uint16
	DescIndex uint16
	Attrs     []Attribute
}

// Record lists a record class's components, recursive per-component
// attribute tables included.
type Record struct {
	extra
	Components []RecordComponent
}

func (a *Record) AttrName() string { return "Record" }
func (a *Record) writePayload(c *bin.Cursor, ctx *Context) {
	c.U16(uint16(len(a.Components)))
	compCtx := *ctx
	compCtx.Location = LocRecordComponent
	for _, comp := range a.Components {
		c.U16(comp.NameIndex)
		c.U16(comp.DescIndex)
		WriteAll(c, &compCtx, comp.Attrs)
	}
}

func init() {
	register("Record", sinceJava16, LocClass, func(cr *bin.CountingReader, ctx *Context) (Attribute, error) {
		n, err := bin.ReadU16(cr)
		if err != nil {
			return nil, err
		}
		compCtx := *ctx
		compCtx.Location = LocRecordComponent
		comps := make([]RecordComponent, n)
		for i := range comps {
			comp := &comps[i]
			if comp.NameIndex, err = bin.ReadU16(cr); err != nil {
				return nil, err
			}
			if comp.DescIndex, err = bin.ReadU16(cr); err != nil {
				return nil, err
			}
			if comp.Attrs, err = ReadAll(cr, &compCtx); err != nil {
				return nil, err
			}
		}
		return &Record{Components: comps}, nil
	})
}
