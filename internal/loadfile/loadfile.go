// Package loadfile memory-maps a .class file read-only for cmd/classdump,
// the same way saferwall-pe's File.New memory-maps a PE image instead of
// reading it into a heap buffer up front.
package loadfile

import (
	"bytes"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// File is a memory-mapped class file. Close unmaps it.
type File struct {
	data mmap.MMap
	f    *os.File
}

// Open memory-maps name read-only.
func Open(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &File{data: data, f: f}, nil
}

// Reader returns a fresh *bytes.Reader over the mapped bytes; jclass.Read
// takes an io.Reader, not an io.ReaderAt, so callers get a new Reader per
// parse rather than sharing read position.
func (lf *File) Reader() *bytes.Reader {
	return bytes.NewReader(lf.data)
}

// Close unmaps the file and closes the underlying descriptor.
func (lf *File) Close() error {
	if err := lf.data.Unmap(); err != nil {
		lf.f.Close()
		return err
	}
	return lf.f.Close()
}
