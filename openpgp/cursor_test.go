package openpgp

import "testing"

func TestCursorReadByte(t *testing.T) {
	c := newCursor([]byte{0x01, 0x02, 0x03})
	for i, want := range []byte{0x01, 0x02, 0x03} {
		got, err := c.readByte()
		if err != nil {
			t.Fatalf("readByte %d: %v", i, err)
		}
		if got != want {
			t.Errorf("readByte %d = 0x%02x, want 0x%02x", i, got, want)
		}
	}
	if !c.atEnd() {
		t.Errorf("expected cursor at end after consuming all bytes")
	}
	if _, err := c.readByte(); err == nil {
		t.Errorf("expected error reading past end")
	}
}

func TestCursorReadN(t *testing.T) {
	buf := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	c := newCursor(buf)
	got, err := c.readN(3)
	if err != nil {
		t.Fatalf("readN: %v", err)
	}
	want := []byte{0xAA, 0xBB, 0xCC}
	if string(got) != string(want) {
		t.Errorf("readN = % x, want % x", got, want)
	}
	// readN must return a copy, not a window into buf, so mutating the
	// original doesn't retroactively change an already-parsed field.
	buf[0] = 0x00
	if got[0] != 0xAA {
		t.Errorf("readN result aliases the source buffer")
	}
}

func TestCursorReadUint32BE(t *testing.T) {
	c := newCursor([]byte{0x01, 0x02, 0x03, 0x04})
	got, err := c.readUint32BE()
	if err != nil {
		t.Fatalf("readUint32BE: %v", err)
	}
	if got != 0x01020304 {
		t.Errorf("readUint32BE = 0x%08x, want 0x01020304", got)
	}
}

func TestCursorAdvanceOverflow(t *testing.T) {
	c := newCursor([]byte{0x01})
	if err := c.advance(2); err == nil {
		t.Errorf("expected error advancing past end of buffer")
	}
}
