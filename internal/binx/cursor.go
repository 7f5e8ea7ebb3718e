// Package binx provides a bounds-aware little-endian reader over a seekable
// byte source of known size.
//
// A Cursor never returns truncated data: a read that would cross the end of
// the source fails and leaves the position where it was.
//
// Typical use:
//
//	c, err := binx.Open(path)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	magic, err := c.ReadBytes(4)
//	version, err := c.ReadInt32()
package binx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrClosed is returned by reads on a cursor whose owned handle was released.
var ErrClosed = errors.New("cursor closed")

// Cursor reads fixed-width little-endian values from a seekable source.
type Cursor struct {
	src    io.ReadSeeker
	closer io.Closer
	size   int64
}

// Open opens the file at path and returns a cursor that owns the handle.
// The caller must Close it.
func Open(path string) (*Cursor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	c, err := New(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	c.closer = f
	return c, nil
}

// New wraps src, measuring its size and rewinding to the start. The cursor
// does not own src; Close is a no-op unless src came from Open.
func New(src io.ReadSeeker) (*Cursor, error) {
	size, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("measure source: %w", err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind source: %w", err)
	}
	return &Cursor{src: src, size: size}, nil
}

// FromBytes returns a cursor over an in-memory buffer.
func FromBytes(b []byte) *Cursor {
	return &Cursor{src: bytes.NewReader(b), size: int64(len(b))}
}

// Close releases the owned handle, if any. It is safe to call more than once.
func (c *Cursor) Close() error {
	if c.closer == nil {
		return nil
	}
	err := c.closer.Close()
	c.closer = nil
	c.src = nil
	return err
}

// Size returns the total size of the source in bytes.
func (c *Cursor) Size() int64 {
	return c.size
}

// Tell returns the current offset from the start of the source.
func (c *Cursor) Tell() (int64, error) {
	if c.src == nil {
		return 0, ErrClosed
	}
	return c.src.Seek(0, io.SeekCurrent)
}

// Seek moves the cursor like io.Seeker. Targets before the start of the source
// are rejected without moving.
func (c *Cursor) Seek(offset int64, whence int) (int64, error) {
	if c.src == nil {
		return 0, ErrClosed
	}

	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		pos, err := c.Tell()
		if err != nil {
			return 0, err
		}
		base = pos
	case io.SeekEnd:
		base = c.size
	default:
		return 0, fmt.Errorf("seek: invalid whence %d", whence)
	}
	if base+offset < 0 {
		return 0, fmt.Errorf("seek: negative position %d", base+offset)
	}

	pos, err := c.src.Seek(offset, whence)
	if err != nil {
		return 0, fmt.Errorf("seek: %w", err)
	}
	return pos, nil
}

// BytesLeft returns the number of bytes between the current offset and the end.
func (c *Cursor) BytesLeft() (int64, error) {
	pos, err := c.Tell()
	if err != nil {
		return 0, err
	}
	return c.size - pos, nil
}

// ReadBytes returns the next n bytes. n <= 0 yields an empty slice. Reading
// past the end fails with an error wrapping io.ErrUnexpectedEOF and does not
// advance the cursor.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return []byte{}, nil
	}

	left, err := c.BytesLeft()
	if err != nil {
		return nil, err
	}
	if int64(n) > left {
		return nil, fmt.Errorf("read %d bytes with %d left: %w", n, left, io.ErrUnexpectedEOF)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(c.src, buf); err != nil {
		return nil, fmt.Errorf("read %d bytes: %w", n, err)
	}
	return buf, nil
}

// ReadString reads n bytes and returns them as a string.
func (c *Cursor) ReadString(n int) (string, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadRemaining returns every byte from the current offset to the end.
func (c *Cursor) ReadRemaining() ([]byte, error) {
	left, err := c.BytesLeft()
	if err != nil {
		return nil, err
	}
	if left <= 0 {
		return []byte{}, nil
	}
	return c.ReadBytes(int(left))
}

// ReadUInt8 reads one byte.
func (c *Cursor) ReadUInt8() (uint8, error) {
	b, err := c.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUInt16 reads a little-endian 16-bit integer.
func (c *Cursor) ReadUInt16() (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadUInt32 reads a little-endian 32-bit integer.
func (c *Cursor) ReadUInt32() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadInt32 reads a little-endian two's complement 32-bit integer.
func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUInt32()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// ReadUInt64 reads two little-endian 32-bit halves, low first, and combines
// them as high<<32 | low.
func (c *Cursor) ReadUInt64() (uint64, error) {
	b, err := c.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	low := binary.LittleEndian.Uint32(b[:4])
	high := binary.LittleEndian.Uint32(b[4:])
	return uint64(high)<<32 | uint64(low), nil
}

// ReadInt64 is ReadUInt64 reinterpreted as two's complement.
func (c *Cursor) ReadInt64() (int64, error) {
	v, err := c.ReadUInt64()
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}
