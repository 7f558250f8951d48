package lineedit

import "testing"

func decodeAll(t *testing.T, b []byte) (Utf8Char, bool) {
	t.Helper()
	d := &utf8Decoder{}
	for i, by := range b {
		status, c := d.advance(by)
		switch status {
		case utf8Done:
			if i != len(b)-1 {
				t.Fatalf("decoder finished early at byte %d of %d", i, len(b))
			}
			return c, true
		case utf8Error:
			return Utf8Char{}, false
		}
	}
	t.Fatalf("decoder did not finish consuming %x", b)
	return Utf8Char{}, false
}

func TestUtf8DecoderAscii(t *testing.T) {
	c, ok := decodeAll(t, []byte("a"))
	if !ok || c.Rune() != 'a' {
		t.Fatalf("got %v, %v", c.Rune(), ok)
	}
}

func TestUtf8DecoderTwoByte(t *testing.T) {
	// "æ" is U+00E6, encoded as 0xC3 0xA6.
	c, ok := decodeAll(t, []byte("æ"))
	if !ok || c.Rune() != 'æ' {
		t.Fatalf("got %v, %v", c.Rune(), ok)
	}
}

func TestUtf8DecoderThreeByte(t *testing.T) {
	c, ok := decodeAll(t, []byte("€"))
	if !ok || c.Rune() != '€' {
		t.Fatalf("got %v, %v", c.Rune(), ok)
	}
}

func TestUtf8DecoderFourByte(t *testing.T) {
	c, ok := decodeAll(t, []byte("😂"))
	if !ok || c.Rune() != '😂' {
		t.Fatalf("got %v, %v", c.Rune(), ok)
	}
}

func TestUtf8DecoderInvalidStart(t *testing.T) {
	d := &utf8Decoder{}
	status, _ := d.advance(0x80) // lone continuation byte
	if status != utf8Error {
		t.Fatalf("expected error, got %v", status)
	}
}

func TestUtf8DecoderInvalidContinuation(t *testing.T) {
	d := &utf8Decoder{}
	if status, _ := d.advance(0xC3); status != utf8Continue {
		t.Fatalf("expected continue, got %v", status)
	}
	if status, _ := d.advance('a'); status != utf8Error {
		t.Fatalf("expected error on non-continuation byte, got %v", status)
	}
}
