// Package bin provides functions for reading and writing the big-endian
// fixed-width integer and floating-point values used throughout the
// class-file format.
package bin

import (
	"encoding/binary"
	"io"
	"math"
)

// ReadU8 reads an unsigned 8-bit integer from r.
func ReadU8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadU16 reads a big-endian unsigned 16-bit integer from r.
func ReadU16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// ReadU32 reads a big-endian unsigned 32-bit integer from r.
func ReadU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// ReadI8 reads a signed 8-bit integer from r.
func ReadI8(r io.Reader) (int8, error) {
	b, err := ReadU8(r)
	return int8(b), err
}

// ReadI16 reads a big-endian signed 16-bit integer from r.
func ReadI16(r io.Reader) (int16, error) {
	u, err := ReadU16(r)
	return int16(u), err
}

// ReadI32 reads a big-endian signed 32-bit integer from r.
func ReadI32(r io.Reader) (int32, error) {
	u, err := ReadU32(r)
	return int32(u), err
}

// ReadI64 reads a big-endian signed 64-bit integer from r.
func ReadI64(r io.Reader) (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

// ReadF32 reads a big-endian IEEE-754 single-precision float from r.
func ReadF32(r io.Reader) (float32, error) {
	u, err := ReadU32(r)
	return math.Float32frombits(u), err
}

// ReadF64 reads a big-endian IEEE-754 double-precision float from r.
func ReadF64(r io.Reader) (float64, error) {
	i, err := ReadI64(r)
	return math.Float64frombits(uint64(i)), err
}

// ReadBytes reads exactly n bytes from r.
func ReadBytes(r io.Reader, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// PutU16 writes v to dst[0:2] big-endian. dst must have length >= 2.
func PutU16(dst []byte, v uint16) {
	binary.BigEndian.PutUint16(dst, v)
}

// PutU32 writes v to dst[0:4] big-endian. dst must have length >= 4.
func PutU32(dst []byte, v uint32) {
	binary.BigEndian.PutUint32(dst, v)
}

// AppendU8 appends v to dst.
func AppendU8(dst []byte, v uint8) []byte {
	return append(dst, v)
}

// AppendU16 appends the big-endian encoding of v to dst.
func AppendU16(dst []byte, v uint16) []byte {
	return append(dst, byte(v>>8), byte(v))
}

// AppendU32 appends the big-endian encoding of v to dst.
func AppendU32(dst []byte, v uint32) []byte {
	return append(dst, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// AppendI8 appends v to dst.
func AppendI8(dst []byte, v int8) []byte {
	return append(dst, byte(v))
}

// AppendI16 appends the big-endian encoding of v to dst.
func AppendI16(dst []byte, v int16) []byte {
	return AppendU16(dst, uint16(v))
}

// AppendI32 appends the big-endian encoding of v to dst.
func AppendI32(dst []byte, v int32) []byte {
	return AppendU32(dst, uint32(v))
}

// AppendI64 appends the big-endian encoding of v to dst.
func AppendI64(dst []byte, v int64) []byte {
	u := uint64(v)
	return append(dst, byte(u>>56), byte(u>>48), byte(u>>40), byte(u>>32),
		byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
}

// AppendF32 appends the big-endian encoding of v to dst.
func AppendF32(dst []byte, v float32) []byte {
	return AppendU32(dst, math.Float32bits(v))
}

// AppendF64 appends the big-endian encoding of v to dst.
func AppendF64(dst []byte, v float64) []byte {
	return AppendI64(dst, int64(math.Float64bits(v)))
}

// Write writes v (one of the fixed-width types above) to w big-endian.
func Write(w io.Writer, v interface{}) error {
	return binary.Write(w, binary.BigEndian, v)
}
