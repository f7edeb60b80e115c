package emobs

import (
	"encoding/binary"
	"math"
	"os"
)

// Cursor wraps an owned byte buffer with two independent positions: readPos,
// used for typed field extraction, and seekPos, used for TLC scanning.
// lastTLCPos records the offset of the most recently located TLC so the
// parser can re-enter typed-field mode after a scan.
//
// A Cursor is owned by exactly one caller for its whole lifetime; no method
// may be called concurrently with another call on the same Cursor. Distinct
// files are processed with distinct Cursors, and the package holds no
// process-wide mutable state.
type Cursor struct {
	buf        []byte
	readPos    int
	seekPos    int
	lastTLCPos int
}

// Open loads the entire file at path into memory and returns a Cursor with
// both positions at zero.
func Open(path string) (*Cursor, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return NewCursor(buf), nil
}

// NewCursor wraps an already-loaded buffer. Ownership of buf transfers to
// the Cursor; callers should not mutate it afterwards.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the buffer length.
func (c *Cursor) Len() int { return len(c.buf) }

// Bytes returns the whole underlying buffer, for diagnostic passes (the
// hex dump) that need to render the raw file rather than decode it.
// Callers must not mutate the returned slice.
func (c *Cursor) Bytes() []byte { return c.buf }

// ReadPos returns the current typed-field read position.
func (c *Cursor) ReadPos() int { return c.readPos }

// SeekPos returns the current TLC-scan resume position.
func (c *Cursor) SeekPos() int { return c.seekPos }

// LastTLCPos returns the offset of the most recently located TLC.
func (c *Cursor) LastTLCPos() int { return c.lastTLCPos }

// SetReadPos moves the typed-field read position explicitly.
func (c *Cursor) SetReadPos(pos int) error {
	if pos < 0 || pos > len(c.buf) {
		return &OutOfBoundsError{Offset: pos, Length: len(c.buf)}
	}
	c.readPos = pos
	return nil
}

// SnapSeekToRead sets seekPos to the current readPos, so the next scan
// resumes exactly where typed-field reading left off.
func (c *Cursor) SnapSeekToRead() { c.seekPos = c.readPos }

// SnapReadToSeek sets readPos to the current seekPos.
func (c *Cursor) SnapReadToSeek() { c.readPos = c.seekPos }

// SnapReadToLastTLC sets readPos to the last located TLC offset, re-entering
// typed-field mode at a known record boundary after a scan.
func (c *Cursor) SnapReadToLastTLC() { c.readPos = c.lastTLCPos }

// ByteAt returns the raw byte at an arbitrary offset without touching either
// cursor position. Used by diagnostic passes that peek at a version byte
// without committing to a read.
func (c *Cursor) ByteAt(offset int) (byte, bool) {
	if offset < 0 || offset >= len(c.buf) {
		return 0, false
	}
	return c.buf[offset], true
}

func (c *Cursor) requireBytes(n int) error {
	if n < 0 || c.readPos+n > len(c.buf) {
		return &OutOfBoundsError{Offset: c.readPos, Length: len(c.buf)}
	}
	return nil
}

// ReadFixed copies n raw bytes and advances readPos.
func (c *Cursor) ReadFixed(n int) ([]byte, error) {
	if err := c.requireBytes(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.buf[c.readPos:c.readPos+n])
	c.readPos += n
	return out, nil
}

// ReadByte reads a single byte and advances readPos.
func (c *Cursor) ReadByte() (byte, error) {
	b, err := c.ReadFixed(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadI16 reads a little-endian signed 16-bit integer.
func (c *Cursor) ReadI16() (int16, error) {
	b, err := c.ReadFixed(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

// ReadI32 reads a little-endian signed 32-bit integer.
func (c *Cursor) ReadI32() (int32, error) {
	b, err := c.ReadFixed(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// ReadI64 reads a little-endian signed 64-bit integer.
func (c *Cursor) ReadI64() (int64, error) {
	b, err := c.ReadFixed(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

// ReadF32 reads a little-endian IEEE-754 single-precision float.
func (c *Cursor) ReadF32() (float32, error) {
	b, err := c.ReadFixed(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

// ReadF64 reads a little-endian IEEE-754 double-precision float.
func (c *Cursor) ReadF64() (float64, error) {
	b, err := c.ReadFixed(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}
