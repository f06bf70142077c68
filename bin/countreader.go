package bin

import "io"

// CountingReader wraps an io.Reader and tracks how many bytes have been
// read through it, mirroring wagon's readpos.ReadPos: the attribute codec
// uses this to compare bytes consumed by a subtype reader against the
// attribute's declared length (spec.md §4.4 step 6).
type CountingReader struct {
	R     io.Reader
	Count int
}

// NewCountingReader wraps r.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{R: r}
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.R.Read(p)
	c.Count += n
	return n, err
}
