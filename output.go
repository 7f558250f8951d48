package lineedit

import "strconv"

// CursorMove names a relative cursor motion used by MoveCursor actions.
type CursorMove int

const (
	MoveForward CursorMove = iota
	MoveBack
	MoveStart
	MoveEnd
)

// OutputActionKind is the sum type of actions the editor FSM produces.
type OutputActionKind int

const (
	ActionNothing OutputActionKind = iota
	ActionMoveCursor
	ActionClearAndPrintPrompt
	ActionPrintBufferAndMoveForward
	ActionEraseAfterCursor
	ActionEraseAndPrintBuffer
	ActionClearScreen
	ActionClearLine
	ActionMoveBackPrintMoveForward
	ActionMoveAndEraseAndPrintBuffer
	ActionClearAndPrintBuffer
	ActionRingBell
	ActionPrintNewline
	ActionDone
	ActionAbort
)

// OutputAction is a single unit of work for the output engine to expand
// into a sequence of byte chunks while mutating the terminal model.
type OutputAction struct {
	Kind  OutputActionKind
	Move  CursorMove // ActionMoveCursor
	Delta int        // ActionMoveAndEraseAndPrintBuffer
}

// Sentinel marks what an Output byte-chunk stream means once exhausted.
type Sentinel int

const (
	SentinelNone Sentinel = iota
	SentinelEndOfString
	SentinelAbort
)

// OutputItem is one chunk of bytes to write to the sink, produced lazily by
// Output.Next.
type OutputItem struct {
	Bytes    []byte
	Sentinel Sentinel
}

const (
	bel = 0x07
)

func csiBytes(parts ...string) []byte {
	out := []byte{0x1B, '['}
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// uintToBytes renders a non-negative int as decimal ASCII with no leading
// zero padding. Values >= 10000 are out of scope (terminals larger than
// 9999x9999 are unsupported).
func uintToBytes(v int) []byte {
	return []byte(strconv.Itoa(v))
}

// moveCursorBytes builds the bytes for "move cursor to cursor, scrolling by
// scroll rows first if non-zero": an optional CSI n S / CSI n T, followed
// by CSI row;col H with 1-indexed physical coordinates.
func moveCursorBytes(cursor Cursor, scroll int) []byte {
	var out []byte
	switch {
	case scroll > 0:
		out = append(out, csiBytes(string(uintToBytes(scroll)), "S")...)
	case scroll < 0:
		out = append(out, csiBytes(string(uintToBytes(-scroll)), "T")...)
	}
	out = append(out, csiBytes(string(uintToBytes(cursor.Row+1)), ";", string(uintToBytes(cursor.Column+1)), "H")...)
	return out
}

// step is one primitive rendering operation produced while expanding an
// OutputAction.
type stepKind int

const (
	stepPrint stepKind = iota
	stepNewlinePrint
	stepMove
	stepScrollToTopAndMove
	stepGetPosition
	stepClearLine
	stepErase
	stepNewline
	stepBell
	stepEndOfString
	stepAbort
	stepDone
)

type step struct {
	kind stepKind
	s    string   // stepPrint / stepNewlinePrint: remaining text to print
	pos  Position // stepMove: target position
}

// Output lazily expands one OutputAction into OutputItems, mutating term in
// lockstep so the terminal model stays accurate as each chunk is emitted.
type Output struct {
	prompt Prompt
	buffer LineBuffer
	term   *TerminalModel
	steps  []step
	i      int
}

// NewOutput expands action against the given prompt/buffer/terminal into an
// Output ready to be drained with Next.
func NewOutput(action OutputAction, prompt Prompt, buffer LineBuffer, term *TerminalModel) *Output {
	return &Output{
		prompt: prompt,
		buffer: buffer,
		term:   term,
		steps:  expandAction(action, prompt, buffer, term),
	}
}

func bufferTailFromCurrent(buffer LineBuffer, term *TerminalModel, promptWidth int) string {
	offset := term.CurrentOffset() - promptWidth
	s := buffer.String()
	charIdx := 0
	byteIdx := 0
	for byteIdx < len(s) && charIdx < offset {
		_, size := decodeRuneAt(s, byteIdx)
		byteIdx += size
		charIdx++
	}
	if byteIdx > len(s) {
		byteIdx = len(s)
	}
	return s[byteIdx:]
}

func decodeRuneAt(s string, i int) (rune, int) {
	for j, r := range s[i:] {
		_ = j
		return r, runeLen(r)
	}
	return 0, 0
}

func runeLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

func expandAction(action OutputAction, prompt Prompt, buffer LineBuffer, term *TerminalModel) []step {
	switch action.Kind {
	case ActionNothing:
		return nil
	case ActionMoveCursor:
		pos, ok := moveTargetPosition(action.Move, prompt, buffer, term)
		if !ok {
			return []step{{kind: stepBell}}
		}
		return []step{{kind: stepMove, pos: pos}}
	case ActionClearAndPrintPrompt:
		return []step{
			{kind: stepClearLine},
			{kind: stepPrint, s: prompt.String()},
			{kind: stepGetPosition},
		}
	case ActionPrintBufferAndMoveForward:
		return []step{
			{kind: stepPrint, s: bufferTailFromCurrent(buffer, term, prompt.Width())},
			{kind: stepMove, pos: term.RelativePosition(1)},
		}
	case ActionEraseAfterCursor:
		return []step{{kind: stepErase}}
	case ActionEraseAndPrintBuffer:
		saved := term.GetPosition()
		return []step{
			{kind: stepErase},
			{kind: stepPrint, s: bufferTailFromCurrent(buffer, term, prompt.Width())},
			{kind: stepMove, pos: saved},
		}
	case ActionClearScreen:
		return []step{
			{kind: stepScrollToTopAndMove},
			{kind: stepErase},
			{kind: stepPrint, s: prompt.String()},
		}
	case ActionClearLine:
		return []step{
			{kind: stepMove, pos: term.RelativePosition(-columnOffsetInLine(term))},
			{kind: stepErase},
		}
	case ActionMoveBackPrintMoveForward:
		saved := term.GetPosition()
		s := buffer.String()
		tail := s[byteOffsetOf(s, term.CurrentOffset()-prompt.Width()-1):]
		return []step{
			{kind: stepMove, pos: term.RelativePosition(-1)},
			{kind: stepPrint, s: tail},
			{kind: stepMove, pos: saved},
		}
	case ActionMoveAndEraseAndPrintBuffer:
		target := term.RelativePosition(action.Delta)
		s := buffer.String()
		tail := s[byteOffsetOf(s, term.CurrentOffset()-prompt.Width()+action.Delta):]
		return []step{
			{kind: stepMove, pos: target},
			{kind: stepErase},
			{kind: stepPrint, s: tail},
			{kind: stepMove, pos: target},
		}
	case ActionClearAndPrintBuffer:
		return []step{
			{kind: stepMove, pos: term.RelativePosition(-columnOffsetInLine(term))},
			{kind: stepErase},
			{kind: stepPrint, s: prompt.String()},
			{kind: stepPrint, s: buffer.String()},
			{kind: stepMove, pos: endOfBufferPosition(prompt, buffer, term)},
		}
	case ActionRingBell:
		return []step{{kind: stepBell}}
	case ActionPrintNewline:
		return []step{{kind: stepNewline}}
	case ActionDone:
		return []step{{kind: stepNewline}, {kind: stepEndOfString}}
	case ActionAbort:
		return []step{{kind: stepNewline}, {kind: stepAbort}}
	default:
		return nil
	}
}

func columnOffsetInLine(term *TerminalModel) int {
	return term.GetCursor().Column
}

func moveTargetPosition(m CursorMove, prompt Prompt, buffer LineBuffer, term *TerminalModel) (Position, bool) {
	current := term.CurrentOffset() - prompt.Width()
	var target int
	switch m {
	case MoveForward:
		target = current + 1
	case MoveBack:
		target = current - 1
	case MoveStart:
		target = 0
	case MoveEnd:
		target = buffer.CharCount()
	}
	if target < 0 || target > buffer.CharCount() {
		return Position{}, false
	}
	return term.RelativePosition(target - current), true
}

func endOfBufferPosition(prompt Prompt, buffer LineBuffer, term *TerminalModel) Position {
	current := term.CurrentOffset() - prompt.Width()
	return term.RelativePosition(buffer.CharCount() - current)
}

// Next produces the next OutputItem, or ok=false once the action has been
// fully expanded. Each call mutates the terminal model for Move steps so
// subsequent position math stays accurate.
func (o *Output) Next() (OutputItem, bool) {
	for o.i < len(o.steps) {
		s := o.steps[o.i]
		o.i++
		switch s.kind {
		case stepPrint, stepNewlinePrint:
			return o.printStep(s.s)
		case stepMove:
			scroll := o.term.MoveCursor(s.pos)
			return OutputItem{Bytes: moveCursorBytes(o.term.GetCursor(), scroll)}, true
		case stepScrollToTopAndMove:
			rows := o.term.ScrollToTop()
			o.term.MoveCursor(Position{Row: 0, Column: 0})
			return OutputItem{Bytes: moveCursorBytes(o.term.GetCursor(), rows)}, true
		case stepGetPosition:
			return OutputItem{Bytes: csiBytes("6", "n")}, true
		case stepClearLine:
			o.term.MoveCursorToStartOfLine()
			return OutputItem{Bytes: append([]byte{'\r'}, csiBytes("J")...)}, true
		case stepErase:
			return OutputItem{Bytes: csiBytes("J")}, true
		case stepNewline:
			o.term.MoveCursor(o.term.RelativePosition(0))
			return OutputItem{Bytes: []byte("\n\r")}, true
		case stepBell:
			return OutputItem{Bytes: []byte{bel}}, true
		case stepEndOfString:
			return OutputItem{Sentinel: SentinelEndOfString}, true
		case stepAbort:
			return OutputItem{Sentinel: SentinelAbort}, true
		case stepDone:
			return OutputItem{Sentinel: SentinelEndOfString}, true
		}
	}
	return OutputItem{}, false
}

// printStep writes the longest prefix of s whose display width fits in
// ColumnsRemaining on the current row; if s does not fit, it re-queues the
// remainder behind a newline step.
func (o *Output) printStep(s string) (OutputItem, bool) {
	if s == "" {
		return o.Next()
	}
	remaining := o.term.ColumnsRemaining()
	fitChars, fitBytes := takeColumns(s, remaining)
	if fitBytes == len(s) {
		o.term.MoveCursor(o.term.RelativePosition(fitChars))
		return OutputItem{Bytes: []byte(s)}, true
	}
	tail := s[fitBytes:]
	o.steps = append(o.steps[:o.i], append([]step{{kind: stepNewline}, {kind: stepPrint, s: tail}}, o.steps[o.i:]...)...)
	o.term.MoveCursor(o.term.RelativePosition(fitChars))
	return OutputItem{Bytes: []byte(s[:fitBytes])}, true
}

// takeColumns returns the character count and byte length of the longest
// prefix of s whose display width fits within columns.
func takeColumns(s string, columns int) (chars int, bytes int) {
	width := 0
	i := 0
	for i < len(s) {
		r, size := decodeRuneAt(s, i)
		w := runeWidth(r)
		if width+w > columns {
			break
		}
		width += w
		i += size
		chars++
	}
	return chars, i
}
