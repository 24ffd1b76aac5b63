package binary

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/wippyai/jclass/errors"
)

func TestCursorNextN(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	c := NewCursor(data)

	got, err := c.NextN(3)
	if err != nil {
		t.Fatalf("NextN: %v", err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("NextN: got %v, want [1 2 3]", got)
	}
	if c.Position() != 3 {
		t.Errorf("position: got %d, want 3", c.Position())
	}
	if c.Remaining() != 2 {
		t.Errorf("remaining: got %d, want 2", c.Remaining())
	}

	_, err = c.NextN(10)
	if err == nil {
		t.Fatal("expected error for reading past end")
	}
	if !stderrors.Is(err, errors.Sentinel(errors.PhaseDecode, errors.KindBufferUnderrun)) {
		t.Errorf("expected buffer underrun, got %v", err)
	}
	if c.Position() != 3 {
		t.Errorf("failed read must not advance: position %d", c.Position())
	}
}

func TestCursorTypedReads(t *testing.T) {
	data := []byte{
		0xff,       // U1 / S1
		0xff, 0xfe, // U2 / S2
		0xca, 0xfe, 0xba, 0xbe, // U4
		0xff, 0xff, 0xff, 0xf9, // S4
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02, // U8
	}

	c := NewCursor(data)
	if v, _ := c.U1(); v != 0xff {
		t.Errorf("U1 = %#x", v)
	}
	c = NewCursor(data)
	if v, _ := c.S1(); v != -1 {
		t.Errorf("S1 = %d", v)
	}
	if v, _ := c.U2(); v != 0xfffe {
		t.Errorf("U2 = %#x", v)
	}
	c = NewCursorAt(data, 1)
	if v, _ := c.S2(); v != -2 {
		t.Errorf("S2 = %d", v)
	}
	if v, _ := c.U4(); v != 0xCAFEBABE {
		t.Errorf("U4 = %#x", v)
	}
	if v, _ := c.S4(); v != -7 {
		t.Errorf("S4 = %d", v)
	}
	if v, _ := c.U8(); v != 0x0000000100000002 {
		t.Errorf("U8 = %#x", v)
	}
	if c.Remaining() != 0 {
		t.Errorf("remaining = %d", c.Remaining())
	}
}

func TestCursorSub(t *testing.T) {
	data := []byte{0xAA, 0x00, 0x01, 0x00, 0x02, 0xBB}
	c := NewCursor(data)
	if _, err := c.U1(); err != nil {
		t.Fatal(err)
	}

	sub, err := c.Sub(4)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if c.Position() != 5 {
		t.Errorf("parent position: got %d, want 5", c.Position())
	}
	if sub.Position() != 1 {
		t.Errorf("sub position must be absolute: got %d, want 1", sub.Position())
	}
	if sub.Limit() != 5 {
		t.Errorf("sub limit: got %d, want 5", sub.Limit())
	}

	a, _ := sub.U2()
	b, _ := sub.U2()
	if a != 1 || b != 2 {
		t.Errorf("sub reads: got %d %d", a, b)
	}
	if _, err := sub.U1(); err == nil {
		t.Error("sub cursor must not read past its limit")
	}

	if _, err := c.Sub(2); err == nil {
		t.Error("expected underrun for oversized Sub")
	}
}

func TestNewCursorAtClamps(t *testing.T) {
	data := []byte{1, 2, 3}
	if c := NewCursorAt(data, -4); c.Position() != 0 {
		t.Errorf("negative offset: position %d", c.Position())
	}
	if c := NewCursorAt(data, 10); c.Remaining() != 0 {
		t.Errorf("offset past end: remaining %d", c.Remaining())
	}
}

func TestWriterRoundTrip(t *testing.T) {
	w := NewWriter()
	w.U1(0x7f)
	w.U2(0x1234)
	w.U4(0xCAFEBABE)
	w.U8(0x0102030405060708)
	w.WriteBytes([]byte{9, 9})

	if w.Len() != 1+2+4+8+2 {
		t.Fatalf("Len = %d", w.Len())
	}

	c := NewCursor(w.Bytes())
	u1, _ := c.U1()
	u2, _ := c.U2()
	u4, _ := c.U4()
	u8, _ := c.U8()
	rest, _ := c.NextN(2)
	if u1 != 0x7f || u2 != 0x1234 || u4 != 0xCAFEBABE || u8 != 0x0102030405060708 || !bytes.Equal(rest, []byte{9, 9}) {
		t.Errorf("round trip mismatch: %x %x %x %x %v", u1, u2, u4, u8, rest)
	}
}

func TestCursorSpan(t *testing.T) {
	data := []byte{0x07, 0x00, 0x02, 0x01}
	c := NewCursor(data)
	start := c.Position()
	c.U1()
	c.U2()
	if got := c.Span(start); !bytes.Equal(got, []byte{0x07, 0x00, 0x02}) {
		t.Errorf("Span = %v", got)
	}
	if c.Span(4) != nil {
		t.Error("Span past position should be nil")
	}
}
