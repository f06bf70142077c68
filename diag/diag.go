// Package diag collects the non-fatal diagnostics produced while reading a
// class file: unknown attributes, bad cross-pool references, version and
// location mismatches. Every top-level read returns its result alongside a
// *diag.List rather than aborting on the first recoverable problem.
package diag

import "fmt"

// Severity classifies how serious a Diagnostic is.
type Severity uint8

const (
	// Warning diagnostics do not prevent the surrounding structure from
	// being usable; they note a deviation worth surfacing to the caller.
	Warning Severity = iota
	// Error diagnostics mean the surrounding structure (an attribute, a
	// method's Code, a pool entry) fell back to a lossy or placeholder
	// representation.
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Kind names the specific recoverable failure a Diagnostic reports. These
// mirror spec.md §7's AttrRead kind enumeration plus the pool's
// bad-reference case.
type Kind string

const (
	KindName      Kind = "read.name"      // attribute name_index did not resolve to a UTF8
	KindUnknown   Kind = "read.unknown"   // attribute name not in the recognized registry
	KindVersion   Kind = "read.version"   // class file version below attribute's `since`
	KindLocation  Kind = "read.location"  // attribute seen in a disallowed location
	KindOverread  Kind = "read.overread"  // subtype reader consumed more than `length` bytes
	KindUnderread Kind = "read.underread" // subtype reader consumed fewer than `length` bytes
	KindError     Kind = "read.error"     // subtype reader returned an error
	KindBadRef    Kind = "pool.badref"    // a pool reference pointed at the wrong entry variant
)

// Diagnostic is one recoverable problem found during a read, with enough
// context to explain it without aborting the surrounding structure.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Context  string // e.g. an attribute name, a pool index, a method name
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s: %s", d.Severity, d.Kind, d.Context, d.Message)
}

// List accumulates diagnostics in the order they were observed.
type List struct {
	items []Diagnostic
}

// Add appends a diagnostic.
func (l *List) Add(d Diagnostic) {
	l.items = append(l.items, d)
}

// Warnf appends a Warning-severity diagnostic.
func (l *List) Warnf(kind Kind, context, format string, args ...interface{}) {
	l.Add(Diagnostic{Severity: Warning, Kind: kind, Context: context, Message: fmt.Sprintf(format, args...)})
}

// Errorf appends an Error-severity diagnostic.
func (l *List) Errorf(kind Kind, context, format string, args ...interface{}) {
	l.Add(Diagnostic{Severity: Error, Kind: kind, Context: context, Message: fmt.Sprintf(format, args...)})
}

// Items returns the accumulated diagnostics in observation order.
func (l *List) Items() []Diagnostic {
	return l.items
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (l *List) HasErrors() bool {
	for _, d := range l.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Merge appends all diagnostics from other onto l, keeping relative order.
func (l *List) Merge(other *List) {
	if other == nil {
		return
	}
	l.items = append(l.items, other.items...)
}
