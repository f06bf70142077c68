package attr

import "github.com/go-jclass/jclass/version"

// since-version shorthand: attributes are gated by major version only,
// per spec.md §4.4 step 4 and the JVM's own attribute introduction table.
func v(major uint16) version.Version { return version.Version{Major: major} }

var (
	sinceClassic  = v(45) // present since the format's earliest major version
	sinceJava5    = v(49)
	sinceJava6    = v(50)
	sinceJava7    = v(51)
	sinceJava8    = v(52)
	sinceJava9    = v(53)
	sinceJava11   = v(55)
	sinceJava16   = v(60)
	sinceJava17   = v(61)
)

const (
	locClassOrField       = LocClass | LocField
	locClassFieldMethod   = LocClass | LocField | LocMethod
	locDeclaration        = LocClass | LocField | LocMethod | LocRecordComponent
	locAnyTypeAnnotatable = LocClass | LocField | LocMethod | LocCode | LocRecordComponent
)
