// Package version models a class file's (major, minor) version pair and
// the Java SE release table it maps to.
package version

import "fmt"

// Version is a class file's (major, minor) version pair, comparable
// lexicographically by (major, minor) as spec.md §3 requires.
type Version struct {
	Major uint16
	Minor uint16
}

// Compare returns -1, 0 or 1 as v is less than, equal to, or greater than o,
// ordering first by Major then by Minor.
func (v Version) Compare(o Version) int {
	if v.Major != o.Major {
		if v.Major < o.Major {
			return -1
		}
		return 1
	}
	if v.Minor != o.Minor {
		if v.Minor < o.Minor {
			return -1
		}
		return 1
	}
	return 0
}

// Less reports whether v sorts before o.
func (v Version) Less(o Version) bool { return v.Compare(o) < 0 }

// AtLeast reports whether v is equal to or newer than o.
func (v Version) AtLeast(o Version) bool { return v.Compare(o) >= 0 }

// IsPreview reports whether v names a preview-features class file: major
// >= 56 and minor == 65535 (spec.md §3).
func (v Version) IsPreview() bool {
	return v.Major >= 56 && v.Minor == 0xFFFF
}

// LegacyCodeLayout reports whether this version uses the JDK 1.0.2
// (pre-45.3) Code attribute layout (u8 max_stack, u8 max_locals, u16 code_length)
// instead of the modern (u16, u16, u32) layout, per spec.md §8's boundary
// case: the cutover is class-file version 45.3.
func (v Version) LegacyCodeLayout() bool {
	return v.Less(Version{Major: 45, Minor: 3})
}

// javaSE maps a major version to the Java SE release name it was
// introduced in, per spec.md §6's version table.
var javaSE = map[uint16]string{
	45: "1.0.2/1.1", 46: "1.2", 47: "1.3", 48: "1.4", 49: "5",
	50: "6", 51: "7", 52: "8", 53: "9", 54: "10", 55: "11",
	56: "12", 57: "13", 58: "14", 59: "15", 60: "16", 61: "17",
	62: "18", 63: "19", 64: "20", 65: "21", 66: "22",
}

// JavaSE returns the Java SE release name this version's major number was
// introduced in, or "" if the major version is outside the known 45..66
// range.
func (v Version) JavaSE() string {
	if v.Major == 45 {
		switch {
		case v.Minor >= 3:
			return "1.1"
		default:
			return "1.0.2"
		}
	}
	return javaSE[v.Major]
}

// String renders v as "major.minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
