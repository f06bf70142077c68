package attr

import (
	"bytes"
	"testing"

	"github.com/go-jclass/jclass/bin"
	"github.com/go-jclass/jclass/cpool"
	"github.com/go-jclass/jclass/diag"
	"github.com/go-jclass/jclass/version"
)

func newContext(pool *cpool.Pool, loc Location) *Context {
	return &Context{Version: version.Version{Major: 61, Minor: 0}, Pool: pool, Diag: &diag.List{}, Location: loc}
}

func TestConstantValueRoundTrip(t *testing.T) {
	pool := cpool.New()
	valIdx := pool.Add(cpool.IntegerEntry(42))
	ctx := newContext(pool, LocField)

	var c bin.Cursor
	WriteOne(&c, ctx, &ConstantValue{ValueIndex: valIdx})

	got, err := ReadOne(bytes.NewReader(c.Bytes()), ctx)
	if err != nil {
		t.Fatal(err)
	}
	cv, ok := got.(*ConstantValue)
	if !ok || cv.ValueIndex != valIdx {
		t.Fatalf("got %+v", got)
	}
	if ctx.Diag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diag.Items())
	}
}

func TestSyntheticDeprecatedRoundTrip(t *testing.T) {
	pool := cpool.New()
	ctx := newContext(pool, LocField)

	var c bin.Cursor
	WriteOne(&c, ctx, &Synthetic{})
	WriteOne(&c, ctx, &Deprecated{})

	r := bytes.NewReader(c.Bytes())
	a1, err := ReadOne(r, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := a1.(*Synthetic); !ok {
		t.Fatalf("got %T", a1)
	}
	a2, err := ReadOne(r, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := a2.(*Deprecated); !ok {
		t.Fatalf("got %T", a2)
	}
}

func TestUnknownNameFallsBackToRawInfo(t *testing.T) {
	pool := cpool.New()
	nameIdx := pool.Add(cpool.UTF8Entry("CompletelyMadeUp"))
	ctx := newContext(pool, LocClass)

	var c bin.Cursor
	c.U16(nameIdx)
	c.U32(3)
	c.Raw([]byte{1, 2, 3})

	got, err := ReadOne(bytes.NewReader(c.Bytes()), ctx)
	if err != nil {
		t.Fatal(err)
	}
	raw, ok := got.(*RawInfo)
	if !ok || raw.Name != "CompletelyMadeUp" || !bytes.Equal(raw.Payload, []byte{1, 2, 3}) {
		t.Fatalf("got %+v", got)
	}
	found := false
	for _, d := range ctx.Diag.Items() {
		if d.Kind == diag.KindUnknown {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a read.unknown diagnostic")
	}
}

func TestBadNameIndexFallsBackToRawInfo(t *testing.T) {
	pool := cpool.New()
	ctx := newContext(pool, LocClass)

	var c bin.Cursor
	c.U16(999) // no such pool entry
	c.U32(2)
	c.Raw([]byte{9, 9})

	got, err := ReadOne(bytes.NewReader(c.Bytes()), ctx)
	if err != nil {
		t.Fatal(err)
	}
	raw, ok := got.(*RawInfo)
	if !ok || raw.Name != "" || raw.NameIndex != 999 {
		t.Fatalf("got %+v", got)
	}
}

func TestUnderreadPreservesExtra(t *testing.T) {
	pool := cpool.New()
	ctx := newContext(pool, LocField)

	var c bin.Cursor
	c.U16(pool.Add(cpool.UTF8Entry("ConstantValue")))
	c.U32(4) // declares 4 bytes, but ConstantValue only consumes 2
	c.U16(7)
	c.Raw([]byte{0xAB, 0xCD})

	got, err := ReadOne(bytes.NewReader(c.Bytes()), ctx)
	if err != nil {
		t.Fatal(err)
	}
	cv, ok := got.(*ConstantValue)
	if !ok || cv.ValueIndex != 7 {
		t.Fatalf("got %+v", got)
	}
	if !bytes.Equal(cv.Extra(), []byte{0xAB, 0xCD}) {
		t.Fatalf("extra = %v", cv.Extra())
	}
	var hasUnderread bool
	for _, d := range ctx.Diag.Items() {
		if d.Kind == diag.KindUnderread {
			hasUnderread = true
		}
	}
	if !hasUnderread {
		t.Fatal("expected a read.underread diagnostic")
	}
}

func TestOverreadIsErrorByDefault(t *testing.T) {
	pool := cpool.New()
	ctx := newContext(pool, LocField)

	var c bin.Cursor
	c.U16(pool.Add(cpool.UTF8Entry("ConstantValue")))
	c.U32(1) // declares 1 byte, but ConstantValue needs 2 for its u16 index
	c.U8(7)

	got, err := ReadOne(bytes.NewReader(c.Bytes()), ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.(*RawInfo); !ok {
		t.Fatalf("got %T, want *RawInfo", got)
	}
	var kind diag.Kind
	var sev diag.Severity
	for _, d := range ctx.Diag.Items() {
		if d.Kind == diag.KindOverread {
			kind, sev = d.Kind, d.Severity
		}
	}
	if kind != diag.KindOverread {
		t.Fatal("expected a read.overread diagnostic")
	}
	if sev != diag.Error {
		t.Fatalf("severity = %v, want error (no prior version/location warning)", sev)
	}
}

func TestOverreadDowngradedAfterLocationWarning(t *testing.T) {
	pool := cpool.New()
	// ConstantValue is only valid at LocField; reading it at LocClass
	// fires a read.location warning first.
	ctx := newContext(pool, LocClass)

	var c bin.Cursor
	c.U16(pool.Add(cpool.UTF8Entry("ConstantValue")))
	c.U32(1)
	c.U8(7)

	got, err := ReadOne(bytes.NewReader(c.Bytes()), ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.(*RawInfo); !ok {
		t.Fatalf("got %T, want *RawInfo", got)
	}
	var hasLocationWarning bool
	var overreadSeverity diag.Severity = diag.Error
	var sawOverread bool
	for _, d := range ctx.Diag.Items() {
		if d.Kind == diag.KindLocation {
			hasLocationWarning = true
		}
		if d.Kind == diag.KindOverread {
			sawOverread = true
			overreadSeverity = d.Severity
		}
	}
	if !hasLocationWarning {
		t.Fatal("expected a read.location diagnostic")
	}
	if !sawOverread {
		t.Fatal("expected a read.overread diagnostic")
	}
	if overreadSeverity != diag.Warning {
		t.Fatalf("overread severity = %v, want warning (downgraded after read.location)", overreadSeverity)
	}
}

func TestStackMapTableRoundTrip(t *testing.T) {
	pool := cpool.New()
	ctx := newContext(pool, LocCode)

	smt := &StackMapTable{Frames: []StackMapFrame{
		{Kind: FrameSame, OffsetDelta: 10},
		{Kind: FrameSameLocals1StackItem, OffsetDelta: 5, Stack: []VerificationType{{Kind: VInteger}}},
		{Kind: FrameChop, OffsetDelta: 3, ChopCount: 2},
		{Kind: FrameAppend, OffsetDelta: 7, Locals: []VerificationType{{Kind: VInteger}, {Kind: VObject, ClassIndex: 9}}},
		{Kind: FrameFull, OffsetDelta: 0,
			Locals: []VerificationType{{Kind: VLong}},
			Stack:  []VerificationType{{Kind: VUninitialized, Offset: 4}}},
	}}

	var c bin.Cursor
	WriteOne(&c, ctx, smt)

	got, err := ReadOne(bytes.NewReader(c.Bytes()), ctx)
	if err != nil {
		t.Fatal(err)
	}
	back, ok := got.(*StackMapTable)
	if !ok || len(back.Frames) != len(smt.Frames) {
		t.Fatalf("got %+v", got)
	}
	for i, f := range back.Frames {
		want := smt.Frames[i]
		if f.Kind != want.Kind || f.OffsetDelta != want.OffsetDelta || f.ChopCount != want.ChopCount {
			t.Fatalf("frame %d = %+v, want %+v", i, f, want)
		}
	}
}

func TestAnnotationRoundTrip(t *testing.T) {
	pool := cpool.New()
	ctx := newContext(pool, LocClass)

	ann := Annotation{
		TypeIndex: pool.Add(cpool.UTF8Entry("Lcom/example/Anno;")),
		Elements: []ElementPair{
			{NameIndex: pool.Add(cpool.UTF8Entry("value")), Value: ElementValue{Tag: 'I', ConstIndex: pool.Add(cpool.IntegerEntry(7))}},
			{NameIndex: pool.Add(cpool.UTF8Entry("kind")), Value: ElementValue{Tag: 'e',
				EnumTypeIndex:  pool.Add(cpool.UTF8Entry("Lcom/example/Kind;")),
				EnumConstIndex: pool.Add(cpool.UTF8Entry("FOO")),
			}},
		},
	}
	rva := &RuntimeVisibleAnnotations{Annotations: []Annotation{ann}}

	var c bin.Cursor
	WriteOne(&c, ctx, rva)

	got, err := ReadOne(bytes.NewReader(c.Bytes()), ctx)
	if err != nil {
		t.Fatal(err)
	}
	back, ok := got.(*RuntimeVisibleAnnotations)
	if !ok || len(back.Annotations) != 1 || len(back.Annotations[0].Elements) != 2 {
		t.Fatalf("got %+v", got)
	}
}

func TestCodeAttributeRoundTrip(t *testing.T) {
	pool := cpool.New()
	ctx := newContext(pool, LocMethod)

	code := &Code{
		MaxStack:  2,
		MaxLocals: 1,
		Insns:     []byte{0x03, 0xAC}, // iconst_0, ireturn
		Handlers: []CodeExceptionHandler{
			{StartPC: 0, EndPC: 2, HandlerPC: 2, CatchTypeIndex: 0},
		},
	}

	var c bin.Cursor
	WriteOne(&c, ctx, code)

	got, err := ReadOne(bytes.NewReader(c.Bytes()), ctx)
	if err != nil {
		t.Fatal(err)
	}
	back, ok := got.(*Code)
	if !ok {
		t.Fatalf("got %T", got)
	}
	if back.MaxStack != 2 || back.MaxLocals != 1 || !bytes.Equal(back.Insns, code.Insns) {
		t.Fatalf("got %+v", back)
	}
	if len(back.Handlers) != 1 || back.Handlers[0].EndPC != 2 {
		t.Fatalf("handlers = %+v", back.Handlers)
	}

	g, err := back.Build(pool)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Blocks) == 0 {
		t.Fatal("expected a non-empty CFG")
	}
}

func TestLegacyCodeLayout(t *testing.T) {
	pool := cpool.New()
	ctx := &Context{Version: version.Version{Major: 45, Minor: 0}, Pool: pool, Diag: &diag.List{}, Location: LocMethod}

	code := &Code{MaxStack: 1, MaxLocals: 1, Insns: []byte{0x03, 0xAC}}
	var c bin.Cursor
	WriteOne(&c, ctx, code)

	got, err := ReadOne(bytes.NewReader(c.Bytes()), ctx)
	if err != nil {
		t.Fatal(err)
	}
	back := got.(*Code)
	if !bytes.Equal(back.Insns, code.Insns) {
		t.Fatalf("got %+v", back)
	}
}
