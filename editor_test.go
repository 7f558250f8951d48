package lineedit

import (
	"bytes"
	"errors"
	"testing"
)

// fakeIO feeds a fixed byte sequence to ReadByte and records everything
// written, standing in for a real terminal transport in tests.
type fakeIO struct {
	in  []byte
	pos int
	out bytes.Buffer
}

var errEndOfInput = errors.New("end of test input")

func (f *fakeIO) ReadByte() (byte, error) {
	if f.pos >= len(f.in) {
		return 0, errEndOfInput
	}
	b := f.in[f.pos]
	f.pos++
	return b, nil
}

func (f *fakeIO) Write(p []byte) (int, error) { return f.out.Write(p) }
func (f *fakeIO) Flush() error                 { return nil }

// newTestEditor builds an Editor whose terminal model is set up directly
// (bypassing the init protocol, which is tested separately) at the given
// size with the cursor at the origin.
func newTestEditor(t *testing.T, rows, cols int, in string, opts ...Option) (*Editor, *fakeIO) {
	t.Helper()
	io := &fakeIO{in: []byte(in)}
	ed := New(io, io, opts...)
	ed.term = NewTerminalModel(rows, cols, Cursor{0, 0})
	return ed, io
}

func readLineExpectOK(t *testing.T, ed *Editor) string {
	t.Helper()
	line, err := ed.ReadLine()
	if err != nil {
		t.Fatalf("ReadLine failed: %v", err)
	}
	return line
}

func TestReadLineSimple(t *testing.T) {
	ed, _ := newTestEditor(t, 20, 80, "Hello, World!\r", WithPrompt("> "))
	line := readLineExpectOK(t, ed)
	if line != "Hello, World!" {
		t.Fatalf("got %q", line)
	}
}

func TestReadLineCursorMoveAndDelete(t *testing.T) {
	// "abc" <left> Ctrl-D "de" <enter> -> "abde"
	ed, _ := newTestEditor(t, 20, 80, "abc\x1b[D\x04de\r", WithPrompt("> "))
	line := readLineExpectOK(t, ed)
	if line != "abde" {
		t.Fatalf("got %q", line)
	}
}

func TestReadLineSwapChars(t *testing.T) {
	// "æøå" <left> Ctrl-T <enter> -> "æåø"
	const ctrlT = "\x14"
	ed, _ := newTestEditor(t, 20, 80, "æøå\x1b[D"+ctrlT+"\r", WithPrompt("> "))
	line := readLineExpectOK(t, ed)
	if line != "æåø" {
		t.Fatalf("got %q", line)
	}
}

func TestReadLineCtrlCAborts(t *testing.T) {
	const ctrlC = "\x03"
	ed, _ := newTestEditor(t, 20, 80, "abc"+ctrlC, WithPrompt("> "))
	_, err := ed.ReadLine()
	var le *Error
	if !errors.As(err, &le) || le.Kind != ErrKindAborted {
		t.Fatalf("got %v", err)
	}
}

func TestReadLineCtrlDOnEmptyAborts(t *testing.T) {
	const ctrlD = "\x04"
	ed, _ := newTestEditor(t, 20, 80, ctrlD, WithPrompt("> "))
	_, err := ed.ReadLine()
	var le *Error
	if !errors.As(err, &le) || le.Kind != ErrKindAborted {
		t.Fatalf("got %v", err)
	}
}

func TestReadLineHistory(t *testing.T) {
	const ctrlP = "\x10"
	const ctrlN = "\x0E"

	ed, io := newTestEditor(t, 20, 80, "line one\r", WithPrompt("> "), WithUnboundedHistory())
	if l := readLineExpectOK(t, ed); l != "line one" {
		t.Fatalf("got %q", l)
	}

	io.in = []byte("line two\r")
	io.pos = 0
	if l := readLineExpectOK(t, ed); l != "line two" {
		t.Fatalf("got %q", l)
	}

	io.in = []byte(ctrlP + ctrlP + ctrlN + "\r")
	io.pos = 0
	line := readLineExpectOK(t, ed)
	if line != "line two" {
		t.Fatalf("got %q", line)
	}
}

func TestReadLineHistoryDownPastEndClears(t *testing.T) {
	const ctrlP = "\x10"
	const ctrlN = "\x0E"

	ed, io := newTestEditor(t, 20, 80, "", WithPrompt("> "), WithUnboundedHistory())
	ed.history.AddEntry("line one")
	ed.history.AddEntry("line two")

	io.in = []byte(ctrlP + ctrlN + "\r")
	io.pos = 0
	line := readLineExpectOK(t, ed)
	if line != "" {
		t.Fatalf("got %q, want empty buffer after navigating past the end", line)
	}
}

func TestReadLineBoundedBufferBells(t *testing.T) {
	ed, io := newTestEditor(t, 20, 80, "abc\r", WithPrompt("> "), WithBoundedBuffer(2))
	line := readLineExpectOK(t, ed)
	if line != "ab" {
		t.Fatalf("got %q", line)
	}
	if !bytes.Contains(io.out.Bytes(), []byte{0x07}) {
		t.Fatal("expected a bell when the bounded buffer rejected the third character")
	}
}

func TestReadLineDeletePreviousWord(t *testing.T) {
	const ctrlW = "\x17"
	ed, _ := newTestEditor(t, 20, 80, "rm file1 file2"+ctrlW+"\r", WithPrompt("> "))
	line := readLineExpectOK(t, ed)
	if line != "rm file1 " {
		t.Fatalf("got %q", line)
	}
}

func TestReadLineDeletePreviousWordTwice(t *testing.T) {
	const ctrlW = "\x17"
	ed, _ := newTestEditor(t, 20, 80, "rm file1 file2 file3"+ctrlW+ctrlW+"\r", WithPrompt("> "))
	line := readLineExpectOK(t, ed)
	if line != "rm file1 " {
		t.Fatalf("got %q", line)
	}
}

func TestInitializer(t *testing.T) {
	ini := NewInitializer()
	replies := "\x1b[1;1R\x1b[20;80R"

	var term *TerminalModel
	var err error
	for i := 0; i < len(replies); i++ {
		term, err = ini.Advance(replies[i])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if term == nil {
		t.Fatal("expected terminal after two CPR replies")
	}
	if term.Rows != 20 || term.Columns != 80 {
		t.Fatalf("got rows=%d cols=%d", term.Rows, term.Columns)
	}
	if got := term.GetCursor(); got != (Cursor{0, 0}) {
		t.Fatalf("got %+v", got)
	}
}
