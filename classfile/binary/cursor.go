package binary

import (
	"encoding/binary"

	"github.com/wippyai/jclass/errors"
)

// Cursor is a forward-only big-endian reader over a fixed byte buffer.
// Positions are absolute offsets into the buffer the cursor was created
// over, including for scoped sub-cursors.
type Cursor struct {
	data  []byte
	pos   int
	limit int
}

// NewCursor creates a Cursor at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data, limit: len(data)}
}

// NewCursorAt creates a Cursor positioned at offset. Renderers use it to
// re-walk the exact bytes of a record whose offset they know.
func NewCursorAt(data []byte, offset int) *Cursor {
	if offset < 0 {
		offset = 0
	}
	if offset > len(data) {
		offset = len(data)
	}
	return &Cursor{data: data, pos: offset, limit: len(data)}
}

// Position returns the current absolute byte offset.
func (c *Cursor) Position() int {
	return c.pos
}

// Remaining returns the number of bytes left before the cursor's limit.
func (c *Cursor) Remaining() int {
	return c.limit - c.pos
}

// Limit returns the absolute offset the cursor cannot read past.
func (c *Cursor) Limit() int {
	return c.limit
}

// NextN returns the next n bytes and advances. The returned slice aliases
// the underlying buffer and must not be modified.
func (c *Cursor) NextN(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, errors.BufferUnderrun(c.pos, n, c.Remaining())
	}
	b := c.data[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b, nil
}

// Sub returns a cursor scoped to exactly the next n bytes and advances
// this cursor past them.
func (c *Cursor) Sub(n int) (*Cursor, error) {
	if n < 0 || n > c.Remaining() {
		return nil, errors.BufferUnderrun(c.pos, n, c.Remaining())
	}
	sub := &Cursor{data: c.data, pos: c.pos, limit: c.pos + n}
	c.pos += n
	return sub, nil
}

// U1 reads an unsigned byte.
func (c *Cursor) U1() (uint8, error) {
	b, err := c.NextN(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// S1 reads a signed byte.
func (c *Cursor) S1() (int8, error) {
	v, err := c.U1()
	return int8(v), err
}

// U2 reads a big-endian uint16.
func (c *Cursor) U2() (uint16, error) {
	b, err := c.NextN(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// S2 reads a big-endian int16.
func (c *Cursor) S2() (int16, error) {
	v, err := c.U2()
	return int16(v), err
}

// U4 reads a big-endian uint32.
func (c *Cursor) U4() (uint32, error) {
	b, err := c.NextN(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// S4 reads a big-endian int32.
func (c *Cursor) S4() (int32, error) {
	v, err := c.U4()
	return int32(v), err
}

// U8 reads a big-endian uint64.
func (c *Cursor) U8() (uint64, error) {
	b, err := c.NextN(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// Span returns the bytes from start up to the current position. start
// must not be past the current position.
func (c *Cursor) Span(start int) []byte {
	if start < 0 || start > c.pos {
		return nil
	}
	return c.data[start:c.pos:c.pos]
}
