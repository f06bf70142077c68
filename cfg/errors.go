package cfg

import "fmt"

// BadSplit is returned when the builder must split the instruction stream
// at an offset that falls in the middle of a multi-byte instruction —
// typically a jump or exception-table bound computed against stale
// offsets (spec.md §4.6 "Fail-paths").
type BadSplit struct {
	Offset int
}

func (e BadSplit) Error() string {
	return fmt.Sprintf("cfg: split at offset %d does not land on an instruction boundary", e.Offset)
}

// ErrNoCode is returned when Build is given an empty code array.
var ErrNoCode = fmt.Errorf("cfg: method has no Code attribute")
