package lowpix

import (
	"encoding/binary"
	"io"
)

// ReadU16LE reads an unsigned little-endian 16-bit integer from the start of p.
func ReadU16LE(p []byte) uint16 { return binary.LittleEndian.Uint16(p) }

// ReadU32LE reads an unsigned little-endian 32-bit integer from the start of p.
func ReadU32LE(p []byte) uint32 { return binary.LittleEndian.Uint32(p) }

// ReadU16BE reads an unsigned big-endian 16-bit integer from the start of p.
func ReadU16BE(p []byte) uint16 { return binary.BigEndian.Uint16(p) }

// ReadU32BE reads an unsigned big-endian 32-bit integer from the start of p.
func ReadU32BE(p []byte) uint32 { return binary.BigEndian.Uint32(p) }

// Cursor reads integers from a byte slice, advancing past each one. It's used
// to parse a block header and continue into the payload.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor returns a [Cursor] positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

func (c *Cursor) take(n int) ([]byte, error) {
	if len(c.data)-c.pos < n {
		return nil, io.ErrUnexpectedEOF
	}
	chunk := c.data[c.pos : c.pos+n]
	c.pos += n
	return chunk, nil
}

// ReadByte implements [io.ByteReader].
func (c *Cursor) ReadByte() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, io.EOF
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

func (c *Cursor) ReadU16LE() (uint16, error) {
	chunk, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return ReadU16LE(chunk), nil
}

func (c *Cursor) ReadU32LE() (uint32, error) {
	chunk, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return ReadU32LE(chunk), nil
}

func (c *Cursor) ReadU16BE() (uint16, error) {
	chunk, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return ReadU16BE(chunk), nil
}

func (c *Cursor) ReadU32BE() (uint32, error) {
	chunk, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return ReadU32BE(chunk), nil
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int {
	return c.pos
}

// Remaining returns the unread part of the slice without copying it.
func (c *Cursor) Remaining() []byte {
	return c.data[c.pos:]
}
