package desc

import (
	"errors"
	"strings"
)

// ErrEmptyDescriptor is returned when a descriptor string is empty.
var ErrEmptyDescriptor = errors.New("desc: empty descriptor")

// ErrTrailingData is returned when a descriptor has bytes left over after a
// complete type (or, for method descriptors, after the return type) was parsed.
var ErrTrailingData = errors.New("desc: trailing data after descriptor")

// ErrInvalidType is returned when a descriptor's leading byte does not
// identify any known type and the caller asked for a strict parse.
type ErrInvalidType struct {
	Raw string
}

func (e ErrInvalidType) Error() string {
	return "desc: invalid type descriptor: " + e.Raw
}

// ErrMissingParen is returned by ParseMethod when the descriptor does not
// begin with '('.
var ErrMissingParen = errors.New("desc: method descriptor missing '('")

// scanType consumes one type descriptor from s starting at i, returning the
// parsed Type and the index just past it. An unrecognized leading byte
// yields an Invalid type wrapping the remainder of s from i onward; the
// caller decides whether that is fatal.
func scanType(s string, i int) (Type, int) {
	if i >= len(s) {
		return Invalid(s[i:]), i
	}
	c := s[i]
	if k, ok := primitiveChars[c]; ok {
		return Primitive(k), i + 1
	}
	switch c {
	case 'L':
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			return Invalid(s[i:]), len(s)
		}
		return ClassType(s[i+1 : i+end]), i + end + 1
	case '[':
		elem, next := scanType(s, i+1)
		return Array(elem), next
	default:
		return Invalid(s[i:]), len(s)
	}
}

// ParseField decodes a field descriptor such as "I" or "[Ljava/lang/String;".
// `void` ("V") is rejected: it is not a valid field type.
func ParseField(s string) (Type, error) {
	if s == "" {
		return Type{}, ErrEmptyDescriptor
	}
	t, next := scanType(s, 0)
	if t.Kind == KindInvalid {
		return Type{}, ErrInvalidType{Raw: s}
	}
	if next != len(s) {
		return Type{}, ErrTrailingData
	}
	if t.Kind == KindVoid {
		return Type{}, ErrInvalidType{Raw: s}
	}
	return t, nil
}

// ParseMethod decodes a method descriptor such as "(ILjava/lang/String;)V"
// into its argument types and return type. The return type may be void;
// argument types may not.
func ParseMethod(s string) (args []Type, ret Type, err error) {
	if s == "" {
		return nil, Type{}, ErrEmptyDescriptor
	}
	if s[0] != '(' {
		return nil, Type{}, ErrMissingParen
	}
	i := 1
	for i < len(s) && s[i] != ')' {
		t, next := scanType(s, i)
		if t.Kind == KindInvalid {
			return nil, Type{}, ErrInvalidType{Raw: s[i:]}
		}
		if t.Kind == KindVoid {
			return nil, Type{}, ErrInvalidType{Raw: "void argument at " + s[i:]}
		}
		args = append(args, t)
		i = next
	}
	if i >= len(s) {
		return nil, Type{}, ErrMissingParen
	}
	i++ // skip ')'
	ret, next := scanType(s, i)
	if ret.Kind == KindInvalid {
		return nil, Type{}, ErrInvalidType{Raw: s[i:]}
	}
	if next != len(s) {
		return nil, Type{}, ErrTrailingData
	}
	return args, ret, nil
}

// Reference is the unwrapped form of a Class constant-pool entry's name:
// either a bare internal class/interface name ("java/lang/String") or an
// array descriptor ("[Ljava/lang/String;", "[I").
type Reference struct {
	Type Type
}

// ParseReference decodes the value referenced by a Class constant pool
// entry, which may be a bare internal name or a full array/object
// descriptor, per JVMS 4.4.1.
func ParseReference(s string) (Reference, error) {
	if s == "" {
		return Reference{}, ErrEmptyDescriptor
	}
	if s[0] == '[' {
		t, next := scanType(s, 0)
		if t.Kind == KindInvalid || next != len(s) {
			return Reference{}, ErrInvalidType{Raw: s}
		}
		return Reference{Type: t}, nil
	}
	return Reference{Type: ClassType(s)}, nil
}

// FieldForm renders r the way it would appear as a field descriptor:
// class names are wrapped "Lname;", arrays pass through unchanged.
func (r Reference) FieldForm() string {
	if r.Type.Kind == KindClass {
		return "L" + r.Type.Class + ";"
	}
	return ToFieldDescriptor(r.Type)
}

// Bare renders r the way it appears inside a Class constant pool entry:
// class names unwrapped, arrays as their full descriptor.
func (r Reference) Bare() string {
	if r.Type.Kind == KindClass {
		return r.Type.Class
	}
	return ToFieldDescriptor(r.Type)
}

// ToFieldDescriptor encodes t as a field descriptor string, the inverse of
// ParseField.
func ToFieldDescriptor(t Type) string {
	switch t.Kind {
	case KindClass:
		return "L" + t.Class + ";"
	case KindArray:
		return "[" + ToFieldDescriptor(*t.Elem)
	case KindInvalid:
		return t.Raw
	default:
		if c, ok := primitiveCode[t.Kind]; ok {
			return string(c)
		}
		return ""
	}
}

var primitiveCode = func() map[Kind]byte {
	m := make(map[Kind]byte, len(primitiveChars))
	for c, k := range primitiveChars {
		m[k] = c
	}
	return m
}()

// ToMethodDescriptor encodes args and ret as a method descriptor string,
// the inverse of ParseMethod.
func ToMethodDescriptor(args []Type, ret Type) string {
	var b strings.Builder
	b.WriteByte('(')
	for _, a := range args {
		b.WriteString(ToFieldDescriptor(a))
	}
	b.WriteByte(')')
	b.WriteString(ToFieldDescriptor(ret))
	return b.String()
}
