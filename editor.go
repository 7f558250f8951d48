package lineedit

import (
	"errors"
	"io"
)

// Control character byte values referenced by the editor FSM (§4.5).
const (
	ctrlA = 0x01
	ctrlB = 0x02
	ctrlC = 0x03
	ctrlD = 0x04
	ctrlE = 0x05
	ctrlF = 0x06
	ctrlH = 0x08
	ctrlK = 0x0B
	ctrlL = 0x0C
	ctrlN = 0x0E
	ctrlP = 0x10
	ctrlT = 0x14
	ctrlU = 0x15
	ctrlW = 0x17
	lf    = 0x0A
	cr    = 0x0D
)

// initProtocolBytes is emitted once at Initialize: CR, erase-to-end,
// save-cursor, DSR, CUP(999,999), DSR, restore-cursor.
var initProtocolBytes = []byte("\r\x1b[J\x1b7\x1b[6n\x1b[999;999H\x1b[6n\x1b8")

// Initializer drives the startup probe protocol to completion and yields a
// TerminalModel describing the real terminal's size and initial cursor.
type Initializer struct {
	parser   *Parser
	firstCPR *Event
}

// NewInitializer returns an Initializer ready to consume the two CPR
// replies following the probe bytes.
func NewInitializer() *Initializer {
	return &Initializer{parser: NewParser()}
}

// Bytes returns the probe sequence to write to the terminal before reading
// replies.
func (ini *Initializer) Bytes() []byte {
	return initProtocolBytes
}

// Advance feeds one reply byte to the initializer. term is nil until the
// second CPR completes the protocol; err is non-nil (ParserError) if an
// unexpected event is observed.
func (ini *Initializer) Advance(b byte) (term *TerminalModel, err error) {
	ev := ini.parser.Advance(b)
	switch ev.Kind {
	case EventIgnore:
		return nil, nil
	case EventCSI:
		if ev.CSI != CSICursorPositionReport {
			return nil, parserError()
		}
		if ini.firstCPR == nil {
			e := ev
			ini.firstCPR = &e
			return nil, nil
		}
		rows := ev.Arg1
		cols := ev.Arg2
		cursor := Cursor{Row: ini.firstCPR.Arg1 - 1, Column: ini.firstCPR.Arg2 - 1}
		return NewTerminalModel(rows, cols, cursor), nil
	default:
		return nil, parserError()
	}
}

// Editor is the top-level, IO-agnostic interactive line editor. It exposes
// exactly two operations: Initialize (probe the terminal once) and
// ReadLine (read and edit one line at a time). Nothing inside it does
// background work or holds a lock; see the package documentation for the
// concurrency model.
type Editor struct {
	cfg    *config
	reader ByteReader
	writer ByteWriter

	term    *TerminalModel
	parser  *Parser
	buffer  LineBuffer
	history History
}

// New constructs an Editor bound to reader/writer, applying opts. It does
// not touch the transport until Initialize is called.
func New(reader ByteReader, writer ByteWriter, opts ...Option) *Editor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Editor{
		cfg:     cfg,
		reader:  reader,
		writer:  writer,
		parser:  NewParser(),
		buffer:  cfg.newBuffer(),
		history: cfg.newHistory(),
	}
}

// Initialize probes the terminal's size and initial cursor position by
// driving the init protocol over the editor's reader/writer. It must be
// called exactly once before the first ReadLine.
func (e *Editor) Initialize() error {
	ini := NewInitializer()
	if _, err := e.writer.Write(ini.Bytes()); err != nil {
		e.cfg.logger.Errorf("lineedit: init probe write failed: %v", err)
		return ioError(err)
	}
	if err := e.writer.Flush(); err != nil {
		e.cfg.logger.Errorf("lineedit: init probe flush failed: %v", err)
		return ioError(err)
	}

	for {
		b, err := e.reader.ReadByte()
		if err != nil {
			e.cfg.logger.Errorf("lineedit: init probe read failed: %v", err)
			return ioError(err)
		}
		term, err := ini.Advance(b)
		if err != nil {
			e.cfg.logger.Errorf("lineedit: init probe got unexpected reply: %v", err)
			return err
		}
		if term != nil {
			e.cfg.logger.Debugf("lineedit: initialized terminal %dx%d", term.Rows, term.Columns)
			e.term = term
			return nil
		}
	}
}

// LoadHistory preloads entries (oldest first), returning how many were
// accepted. Entries too large for a bounded history are skipped, not an
// error.
func (e *Editor) LoadHistory(entries []string) int {
	n := 0
	for _, entry := range entries {
		if e.history.AddEntry(entry) {
			n++
		}
	}
	return n
}

// HistoryEntries iterates stored entries, oldest first.
func (e *Editor) HistoryEntries() func(yield func(string) bool) {
	return func(yield func(string) bool) {
		for i := 0; i < e.history.NumberOfEntries(); i++ {
			entry, ok := e.history.Entry(i)
			if !ok {
				return
			}
			if !yield(entry) {
				return
			}
		}
	}
}

// line is the per-ReadLine-call FSM: it owns nothing but a reference to the
// editor's persistent state plus the prompt and the transient history
// navigator.
type line struct {
	e      *Editor
	prompt Prompt
	nav    *HistoryNavigator
}

func (e *Editor) newLine(prompt Prompt) *line {
	return &line{e: e, prompt: prompt, nav: NewHistoryNavigator(e.history)}
}

// reset truncates the buffer and returns the action to redraw the prompt.
func (l *line) reset() OutputAction {
	l.e.buffer.Reset()
	l.e.term.Reset(l.e.term.GetCursor())
	return OutputAction{Kind: ActionClearAndPrintPrompt}
}

func (l *line) charPos() int {
	return l.e.term.CurrentOffset() - l.prompt.Width()
}

// advance feeds one input byte through the parser and editor FSM,
// returning the output actions it produces (almost always exactly one).
func (l *line) advance(b byte) []OutputAction {
	ev := l.e.parser.Advance(b)
	return l.handleEvent(ev)
}

func (l *line) handleEvent(ev Event) []OutputAction {
	buffer := l.e.buffer

	switch ev.Kind {
	case EventIgnore:
		return []OutputAction{{Kind: ActionNothing}}

	case EventPrint:
		pos := l.charPos()
		if buffer.InsertChar(pos, ev.Char) {
			return []OutputAction{{Kind: ActionPrintBufferAndMoveForward}}
		}
		return []OutputAction{{Kind: ActionRingBell}}

	case EventInvalidUtf8:
		return []OutputAction{{Kind: ActionRingBell}}

	case EventEscape:
		return []OutputAction{{Kind: ActionRingBell}}

	case EventControl:
		return l.handleControl(ev.Control)

	case EventCSI:
		return l.handleCSI(ev)
	}
	return []OutputAction{{Kind: ActionNothing}}
}

func (l *line) handleControl(c byte) []OutputAction {
	buffer := l.e.buffer
	pos := l.charPos()

	switch c {
	case ctrlA:
		return []OutputAction{{Kind: ActionMoveCursor, Move: MoveStart}}
	case ctrlB:
		return []OutputAction{{Kind: ActionMoveCursor, Move: MoveBack}}
	case ctrlF:
		return []OutputAction{{Kind: ActionMoveCursor, Move: MoveForward}}
	case ctrlE:
		return []OutputAction{{Kind: ActionMoveCursor, Move: MoveEnd}}
	case ctrlC:
		return []OutputAction{{Kind: ActionAbort}}
	case ctrlD:
		if buffer.CharCount() == 0 {
			return []OutputAction{{Kind: ActionAbort}}
		}
		if pos < buffer.CharCount() {
			buffer.DeleteChar(pos)
			return []OutputAction{{Kind: ActionEraseAndPrintBuffer}}
		}
		return []OutputAction{{Kind: ActionRingBell}}
	case ctrlH, ctrlBackspace:
		if pos > 0 {
			buffer.DeleteChar(pos - 1)
			return []OutputAction{{Kind: ActionMoveAndEraseAndPrintBuffer, Delta: -1}}
		}
		return []OutputAction{{Kind: ActionRingBell}}
	case ctrlK:
		buffer.Truncate(pos)
		return []OutputAction{{Kind: ActionEraseAfterCursor}}
	case ctrlU:
		buffer.Reset()
		return []OutputAction{{Kind: ActionClearLine}}
	case ctrlL:
		buffer.Reset()
		return []OutputAction{{Kind: ActionClearScreen}}
	case ctrlW:
		deleted := buffer.DeletePreviousWord(pos)
		return []OutputAction{{Kind: ActionMoveAndEraseAndPrintBuffer, Delta: -deleted}}
	case ctrlT:
		if pos > 0 && pos < buffer.CharCount() {
			buffer.SwapChars(pos)
			return []OutputAction{{Kind: ActionMoveBackPrintMoveForward}}
		}
		return []OutputAction{{Kind: ActionRingBell}}
	case ctrlN:
		return l.historyDown()
	case ctrlP:
		return l.historyUp()
	case cr, lf:
		if buffer.CharCount() > 0 {
			l.e.history.AddEntry(buffer.String())
		}
		return []OutputAction{{Kind: ActionDone}}
	default:
		return []OutputAction{{Kind: ActionRingBell}}
	}
}

func (l *line) handleCSI(ev Event) []OutputAction {
	buffer := l.e.buffer
	pos := l.charPos()

	switch ev.CSI {
	case CSIHome:
		return []OutputAction{{Kind: ActionMoveCursor, Move: MoveStart}}
	case CSICursorBack:
		return []OutputAction{{Kind: ActionMoveCursor, Move: MoveBack}}
	case CSICursorForward:
		return []OutputAction{{Kind: ActionMoveCursor, Move: MoveForward}}
	case CSIEnd:
		return []OutputAction{{Kind: ActionMoveCursor, Move: MoveEnd}}
	case CSIDelete:
		// CSI Delete mirrors Ctrl-D's non-abort branches only: on an empty
		// buffer it bells rather than ending the session.
		if pos < buffer.CharCount() {
			buffer.DeleteChar(pos)
			return []OutputAction{{Kind: ActionEraseAndPrintBuffer}}
		}
		return []OutputAction{{Kind: ActionRingBell}}
	case CSICursorDown:
		return l.historyDown()
	case CSICursorUp:
		return l.historyUp()
	case CSICursorPositionReport:
		l.e.term.Reset(Cursor{Row: ev.Arg1 - 1, Column: ev.Arg2 - 1})
		return []OutputAction{{Kind: ActionNothing}}
	default:
		return []OutputAction{{Kind: ActionRingBell}}
	}
}

func (l *line) historyUp() []OutputAction {
	if !l.nav.IsActive() && l.e.buffer.CharCount() > 0 {
		return []OutputAction{{Kind: ActionRingBell}}
	}
	entry, ok := l.nav.MoveUp()
	if !ok {
		return []OutputAction{{Kind: ActionRingBell}}
	}
	l.loadBuffer(entry)
	return []OutputAction{{Kind: ActionClearAndPrintBuffer}}
}

func (l *line) historyDown() []OutputAction {
	if !l.nav.IsActive() {
		return []OutputAction{{Kind: ActionRingBell}}
	}
	entry, ok := l.nav.MoveDown()
	if ok {
		l.loadBuffer(entry)
	} else {
		l.e.buffer.Reset()
	}
	return []OutputAction{{Kind: ActionClearAndPrintBuffer}}
}

func (l *line) loadBuffer(entry string) {
	l.e.buffer.Reset()
	i := 0
	for _, r := range entry {
		c := encodeRune(r)
		l.e.buffer.InsertChar(i, c)
		i++
	}
}

func encodeRune(r rune) Utf8Char {
	var buf [4]byte
	n := copy(buf[:], string(r))
	return Utf8Char{buf: buf, len: uint8(n)}
}

// ReadLine draws the configured prompt and pumps bytes through the
// pipeline until the line is accepted (CR/LF) or aborted (Ctrl-C, Ctrl-D on
// an empty buffer, or end of stream), returning the accepted text.
func (e *Editor) ReadLine() (string, error) {
	l := e.newLine(e.cfg.prompt)

	if err := e.runAction(l.reset()); err != nil {
		return "", err
	}

	for {
		b, err := e.reader.ReadByte()
		if errors.Is(err, io.EOF) {
			return "", aborted()
		}
		if err != nil {
			e.cfg.logger.Errorf("lineedit: read failed: %v", err)
			return "", ioError(err)
		}
		for _, action := range l.advance(b) {
			done, abortedFlag, err := e.runActionForResult(action)
			if err != nil {
				return "", err
			}
			if abortedFlag {
				return "", aborted()
			}
			if done {
				return e.buffer.String(), nil
			}
		}
	}
}

func (e *Editor) runAction(action OutputAction) error {
	_, _, err := e.runActionForResult(action)
	return err
}

func (e *Editor) runActionForResult(action OutputAction) (done bool, abortedFlag bool, err error) {
	out := NewOutput(action, e.cfg.prompt, e.buffer, e.term)
	for {
		item, ok := out.Next()
		if !ok {
			return false, false, nil
		}
		if len(item.Bytes) > 0 {
			if item.Bytes[0] == bel {
				e.cfg.bell.Ring()
			}
			if _, err := e.writer.Write(item.Bytes); err != nil {
				e.cfg.logger.Errorf("lineedit: write failed: %v", err)
				return false, false, ioError(err)
			}
			if err := e.writer.Flush(); err != nil {
				e.cfg.logger.Errorf("lineedit: flush failed: %v", err)
				return false, false, ioError(err)
			}
		}
		switch item.Sentinel {
		case SentinelEndOfString:
			return true, false, nil
		case SentinelAbort:
			return false, true, nil
		}
	}
}
