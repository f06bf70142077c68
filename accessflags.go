package jclass

// Access/modifier flag bits (spec.md §6). The same bit means different
// things depending on which table it's read from (e.g. 0x0020 is SUPER on
// a class but SYNCHRONIZED on a method) so each table gets its own named
// constant even where the numeric value is shared.
const (
	ClassPublic     uint16 = 0x0001
	ClassFinal      uint16 = 0x0010
	ClassSuper      uint16 = 0x0020
	ClassInterface  uint16 = 0x0200
	ClassAbstract   uint16 = 0x0400
	ClassSynthetic  uint16 = 0x1000
	ClassAnnotation uint16 = 0x2000
	ClassEnum       uint16 = 0x4000
	ClassModule     uint16 = 0x8000
)

const (
	FieldPublic    uint16 = 0x0001
	FieldPrivate   uint16 = 0x0002
	FieldProtected uint16 = 0x0004
	FieldStatic    uint16 = 0x0008
	FieldFinal     uint16 = 0x0010
	FieldVolatile  uint16 = 0x0040
	FieldTransient uint16 = 0x0080
	FieldSynthetic uint16 = 0x1000
	FieldEnum      uint16 = 0x4000
)

const (
	MethodPublic       uint16 = 0x0001
	MethodPrivate      uint16 = 0x0002
	MethodProtected    uint16 = 0x0004
	MethodStatic       uint16 = 0x0008
	MethodFinal        uint16 = 0x0010
	MethodSynchronized uint16 = 0x0020
	MethodBridge       uint16 = 0x0040
	MethodVarargs      uint16 = 0x0080
	MethodNative       uint16 = 0x0100
	MethodAbstract     uint16 = 0x0400
	MethodStrict       uint16 = 0x0800
	MethodSynthetic    uint16 = 0x1000
)

const (
	InnerPublic     uint16 = 0x0001
	InnerPrivate    uint16 = 0x0002
	InnerProtected  uint16 = 0x0004
	InnerStatic     uint16 = 0x0008
	InnerFinal      uint16 = 0x0010
	InnerInterface  uint16 = 0x0200
	InnerAbstract   uint16 = 0x0400
	InnerSynthetic  uint16 = 0x1000
	InnerAnnotation uint16 = 0x2000
	InnerEnum       uint16 = 0x4000
)

// Module attribute flags (the module_flags field of attr.Module).
const (
	ModuleOpen      uint16 = 0x0020
	ModuleSynthetic uint16 = 0x1000
	ModuleMandated  uint16 = 0x8000
)

// Module requires_flags.
const (
	RequiresTransitive  uint16 = 0x0020
	RequiresStaticPhase uint16 = 0x0040
	RequiresSynthetic   uint16 = 0x1000
	RequiresMandated    uint16 = 0x8000
)

// Has reports whether every bit set in want is also set in flags.
func Has(flags, want uint16) bool { return flags&want == want }
