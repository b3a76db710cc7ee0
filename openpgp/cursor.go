package openpgp

// cursor is a bounds-checked reader over a flat input buffer. Every other
// component reads exclusively through it; direct indexing elsewhere is
// forbidden (spec.md §4.A).
type cursor struct {
	buf []byte
	idx int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) len() int { return len(c.buf) }

func (c *cursor) remaining() int { return len(c.buf) - c.idx }

func (c *cursor) atEnd() bool { return c.idx >= len(c.buf) }

// peek returns the byte at c.idx+offset without advancing.
func (c *cursor) peek(offset int) (byte, error) {
	i := c.idx + offset
	if i < 0 || i >= len(c.buf) {
		return 0, errf(ErrBufferOverflow, "peek at offset %d exceeds buffer of length %d", i, len(c.buf))
	}
	return c.buf[i], nil
}

// advance moves the cursor forward n bytes, failing if that would move
// past the end of the buffer.
func (c *cursor) advance(n int) error {
	if c.idx+n > len(c.buf) {
		return errf(ErrBufferOverflow, "advance(%d) from %d exceeds buffer of length %d", n, c.idx, len(c.buf))
	}
	c.idx += n
	return nil
}

// readByte reads and consumes one byte.
func (c *cursor) readByte() (byte, error) {
	b, err := c.peek(0)
	if err != nil {
		return 0, err
	}
	if err := c.advance(1); err != nil {
		return 0, err
	}
	return b, nil
}

// readN reads and consumes the next n bytes, returning a fresh copy (never
// an alias into the backing buffer) so later in-place mutation of the
// buffer, e.g. by the SEIPD decrypt loop, cannot retroactively change
// already-parsed fields.
func (c *cursor) readN(n int) ([]byte, error) {
	if c.idx+n > len(c.buf) {
		return nil, errf(ErrBufferOverflow, "readN(%d) from %d exceeds buffer of length %d", n, c.idx, len(c.buf))
	}
	out := make([]byte, n)
	copy(out, c.buf[c.idx:c.idx+n])
	c.idx += n
	return out, nil
}

// readUint32BE reads a 4-byte big-endian unsigned integer.
func (c *cursor) readUint32BE() (uint32, error) {
	b, err := c.readN(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}
