// Package attr implements the class-file attribute codec: a name-dispatched
// registry of typed readers/writers sharing one read protocol (spec.md
// §4.4), modeled on wagon's section table (wasm/section.go dispatches on a
// numeric SectionID and captures each section's raw payload via a
// TeeReader so unparsed bytes survive; attr dispatches on a UTF8 name and
// captures the payload up front into a byte slice for the same reason:
// an unrecognized or misbehaving subtype reader must still round-trip).
package attr

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-jclass/jclass/bin"
	"github.com/go-jclass/jclass/cpool"
	"github.com/go-jclass/jclass/diag"
	"github.com/go-jclass/jclass/version"
)

// Location is a bitmask of the structural positions an attribute may
// legally appear in (spec.md §4.4: "a set of permitted locations").
type Location uint8

const (
	LocClass Location = 1 << iota
	LocField
	LocMethod
	LocCode
	LocRecordComponent
)

// Context carries the ambient state every attribute reader/writer needs:
// the class file's version (for `since` gating), the constant pool (for
// name/reference resolution), the shared diagnostics sink, and which
// Location the attribute is being read in.
type Context struct {
	Version  version.Version
	Pool     *cpool.Pool
	Diag     *diag.List
	Location Location
}

// Attribute is implemented by every recognized attribute type plus RawInfo.
// writePayload and setExtra are unexported: only this package defines new
// attribute kinds, the same sealed-interface shape cfg.EdgeKind's
// String-dispatch gives its kind enum.
type Attribute interface {
	// AttrName returns the attribute's name as it appears in the constant
	// pool ("Code", "LineNumberTable", ...), or "" for a RawInfo whose
	// name_index never resolved to a UTF8 entry.
	AttrName() string
	// Extra returns any trailing bytes preserved by an underread (spec.md
	// §4.4 step 6).
	Extra() []byte

	writePayload(c *bin.Cursor, ctx *Context)
	setExtra(b []byte)
}

// extra is embedded by every concrete attribute type to provide the
// Extra/setExtra pair for free.
type extra struct {
	extraBytes []byte
}

func (e *extra) Extra() []byte      { return e.extraBytes }
func (e *extra) setExtra(b []byte)  { e.extraBytes = b }

// RawInfo is the fallback representation used whenever an attribute's name
// doesn't resolve, isn't recognized, or whose subtype reader failed
// partway through (spec.md §4.4 steps 2, 3, 7).
type RawInfo struct {
	extra
	NameIndex uint16 // the original name_index, preserved verbatim on write when Name == ""
	Name      string
	Payload   []byte
}

func (r *RawInfo) AttrName() string { return r.Name }
func (r *RawInfo) writePayload(c *bin.Cursor, ctx *Context) {
	c.Raw(r.Payload)
}

type readerFunc func(cr *bin.CountingReader, ctx *Context) (Attribute, error)

type attrMeta struct {
	since version.Version
	locs  Location
	read  readerFunc
}

var registry = map[string]attrMeta{}

// register adds a recognized attribute kind to the dispatch table. Called
// from each attribute file's init(), mirroring the standard library's
// image.RegisterFormat plugin-registry idiom rather than one central
// switch statement, so new attribute kinds don't require editing attr.go.
func register(name string, since version.Version, locs Location, fn readerFunc) {
	registry[name] = attrMeta{since: since, locs: locs, read: fn}
}

// ReadOne reads one attribute_info structure from r (spec.md §4.4's
// seven-step read protocol).
func ReadOne(r io.Reader, ctx *Context) (Attribute, error) {
	nameIdx, err := bin.ReadU16(r)
	if err != nil {
		return nil, err
	}
	length, err := bin.ReadU32(r)
	if err != nil {
		return nil, err
	}

	name, ok := ctx.Pool.UTF8At(nameIdx)
	if !ok {
		ctx.Diag.Warnf(diag.KindName, fmt.Sprintf("index %d", nameIdx), "name_index does not resolve to a UTF8 entry")
		payload, err := bin.ReadBytes(r, int(length))
		if err != nil {
			return nil, err
		}
		return &RawInfo{NameIndex: nameIdx, Payload: payload}, nil
	}

	meta, known := registry[name]
	if !known {
		ctx.Diag.Warnf(diag.KindUnknown, name, "attribute name not in the recognized registry")
		payload, err := bin.ReadBytes(r, int(length))
		if err != nil {
			return nil, err
		}
		return &RawInfo{NameIndex: nameIdx, Name: name, Payload: payload}, nil
	}

	badVersion := ctx.Version.Less(meta.since)
	if badVersion {
		ctx.Diag.Warnf(diag.KindVersion, name, "seen at version %s, introduced at %s", ctx.Version, meta.since)
	}
	badLocation := ctx.Location&meta.locs == 0
	if badLocation {
		ctx.Diag.Warnf(diag.KindLocation, name, "seen in a disallowed location")
	}

	payload, err := bin.ReadBytes(r, int(length))
	if err != nil {
		return nil, err
	}

	cr := bin.NewCountingReader(bytes.NewReader(payload))
	a, rerr := meta.read(cr, ctx)
	if rerr != nil {
		kind := diag.KindError
		if errors.Is(rerr, io.EOF) || errors.Is(rerr, io.ErrUnexpectedEOF) {
			// the subtype reader ran past the end of its own declared
			// length: spec.md §4.4 step 6's overread case, indistinguishable
			// here from any other read exception since payload is already
			// bounded to exactly `length` bytes.
			kind = diag.KindOverread
		}
		if kind == diag.KindOverread && (badVersion || badLocation) {
			// a version/location warning already fired for this attribute,
			// so the overread is expected fallout rather than a fresh
			// problem: downgrade to a warning (mirrors kirjava's
			// fmt/attribute.py, which does the same when bad_version or
			// bad_location is already set).
			ctx.Diag.Warnf(kind, name, "%v", rerr)
		} else {
			ctx.Diag.Errorf(kind, name, "%v", rerr)
		}
		return &RawInfo{NameIndex: nameIdx, Name: name, Payload: payload}, nil
	}

	if cr.Count < len(payload) {
		ctx.Diag.Warnf(diag.KindUnderread, name, "consumed %d of %d declared bytes", cr.Count, length)
		a.setExtra(append([]byte(nil), payload[cr.Count:]...))
	}
	return a, nil
}

// ReadAll reads a u16 count followed by that many attribute_info structures.
func ReadAll(r io.Reader, ctx *Context) ([]Attribute, error) {
	count, err := bin.ReadU16(r)
	if err != nil {
		return nil, err
	}
	out := make([]Attribute, 0, count)
	for i := uint16(0); i < count; i++ {
		a, err := ReadOne(r, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// WriteOne emits a as one attribute_info structure: name_index, a
// placeholder length, the payload, any preserved extra bytes, then the
// patched-back length (spec.md §4.4's write protocol).
func WriteOne(c *bin.Cursor, ctx *Context, a Attribute) {
	var nameIdx uint16
	if raw, ok := a.(*RawInfo); ok && raw.Name == "" {
		nameIdx = raw.NameIndex
	} else {
		nameIdx = ctx.Pool.Add(cpool.UTF8Entry(a.AttrName()))
	}
	c.U16(nameIdx)
	lenOff := c.ReserveU32()
	start := c.Len()
	a.writePayload(c, ctx)
	c.Raw(a.Extra())
	c.PatchU32(lenOff, uint32(c.Len()-start))
}

// WriteAll emits a u16 count followed by each attribute via WriteOne.
func WriteAll(c *bin.Cursor, ctx *Context, attrs []Attribute) {
	c.U16(uint16(len(attrs)))
	for _, a := range attrs {
		WriteOne(c, ctx, a)
	}
}
