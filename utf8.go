package lineedit

// Utf8Char holds 1-4 bytes forming exactly one UTF-8 scalar value.
type Utf8Char struct {
	buf [4]byte
	len uint8
}

// Bytes returns the raw encoded bytes of the scalar value.
func (c Utf8Char) Bytes() []byte {
	return c.buf[:c.len]
}

// Rune decodes the character back to a rune.
func (c Utf8Char) Rune() rune {
	r, _ := decodeRune(c.buf[:c.len])
	return r
}

func decodeRune(b []byte) (rune, int) {
	for i, r := range string(b) {
		_ = i
		return r, len(b)
	}
	return 0, 0
}

// utf8ByteKind classifies a single byte of a UTF-8 sequence.
type utf8ByteKind int

const (
	utf8Single utf8ByteKind = iota
	utf8Continuation
	utf8StartTwo
	utf8StartThree
	utf8StartFour
	utf8Invalid
)

func classifyUtf8Byte(b byte) utf8ByteKind {
	switch {
	case b&0b1000_0000 == 0:
		return utf8Single
	case b&0b1100_0000 == 0b1000_0000:
		return utf8Continuation
	case b&0b1110_0000 == 0b1100_0000:
		return utf8StartTwo
	case b&0b1111_0000 == 0b1110_0000:
		return utf8StartThree
	case b&0b1111_1000 == 0b1111_0000:
		return utf8StartFour
	default:
		return utf8Invalid
	}
}

// utf8DecoderState tracks how many continuation bytes remain before a
// multi-byte sequence is complete.
type utf8DecoderState int

const (
	utf8StateNew utf8DecoderState = iota
	utf8StateExpectingOne
	utf8StateExpectingTwo
	utf8StateExpectingThree
	utf8StateDone
)

// utf8DecoderStatus is the result of feeding one byte to the decoder.
type utf8DecoderStatus int

const (
	utf8Continue utf8DecoderStatus = iota
	utf8Done
	utf8Error
)

// utf8Decoder incrementally assembles one UTF-8 scalar value, byte by byte.
// It never buffers more than one character and never allocates.
type utf8Decoder struct {
	state utf8DecoderState
	buf   [4]byte
	pos   uint8
}

func (d *utf8Decoder) insertByte(b byte) bool {
	if d.pos > 0 && classifyUtf8Byte(b) != utf8Continuation {
		return false
	}
	d.buf[d.pos] = b
	d.pos++
	return true
}

// advance feeds one byte to the decoder, returning the status and, when
// utf8Done, the assembled character.
func (d *utf8Decoder) advance(b byte) (utf8DecoderStatus, Utf8Char) {
	switch d.state {
	case utf8StateNew:
		switch classifyUtf8Byte(b) {
		case utf8Single:
			d.insertByte(b)
			d.state = utf8StateDone
			return utf8Done, Utf8Char{buf: d.buf, len: 1}
		case utf8StartTwo:
			d.insertByte(b)
			d.state = utf8StateExpectingOne
			return utf8Continue, Utf8Char{}
		case utf8StartThree:
			d.insertByte(b)
			d.state = utf8StateExpectingTwo
			return utf8Continue, Utf8Char{}
		case utf8StartFour:
			d.insertByte(b)
			d.state = utf8StateExpectingThree
			return utf8Continue, Utf8Char{}
		default:
			return utf8Error, Utf8Char{}
		}
	case utf8StateExpectingOne:
		if !d.insertByte(b) {
			return utf8Error, Utf8Char{}
		}
		d.state = utf8StateDone
		return utf8Done, Utf8Char{buf: d.buf, len: d.pos}
	case utf8StateExpectingTwo:
		if !d.insertByte(b) {
			return utf8Error, Utf8Char{}
		}
		d.state = utf8StateExpectingOne
		return utf8Continue, Utf8Char{}
	case utf8StateExpectingThree:
		if !d.insertByte(b) {
			return utf8Error, Utf8Char{}
		}
		d.state = utf8StateExpectingTwo
		return utf8Continue, Utf8Char{}
	default:
		return utf8Error, Utf8Char{}
	}
}
