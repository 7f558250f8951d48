package lineedit

// Cursor is a pair (Row, Column) in 0-indexed physical viewport coordinates.
type Cursor struct {
	Row    int
	Column int
}

// Position is a pair (Row, Column) in 0-indexed logical coordinates; Row may
// extend beyond the viewport (negative or >= rows), Column is always within
// [0, columns).
type Position struct {
	Row    int
	Column int
}

func distanceFromWindow(start, end, point int) int {
	switch {
	case point < start:
		return point - start
	case point > end:
		return point - end
	default:
		return 0
	}
}

// TerminalModel holds the assumed state of the physical terminal: its size,
// the current physical cursor, and the signed row offset mapping logical
// rows into physical rows (physicalRow = logicalRow - rowOffset).
type TerminalModel struct {
	Rows      int
	Columns   int
	cursor    Cursor
	rowOffset int
}

// NewTerminalModel returns a model with the logical origin at cursor.
func NewTerminalModel(rows, columns int, cursor Cursor) *TerminalModel {
	return &TerminalModel{
		Rows:      rows,
		Columns:   columns,
		cursor:    cursor,
		rowOffset: -cursor.Row,
	}
}

// Resize updates the viewport dimensions without touching the cursor or
// scroll offset.
func (t *TerminalModel) Resize(rows, columns int) {
	t.Rows = rows
	t.Columns = columns
}

// Reset sets the cursor and makes row_offset = -cursor.Row, establishing a
// new logical origin at the line the editor was (re-)initialized on.
func (t *TerminalModel) Reset(cursor Cursor) {
	t.cursor = cursor
	t.rowOffset = -cursor.Row
}

// GetCursor returns the current physical cursor.
func (t *TerminalModel) GetCursor() Cursor {
	return t.cursor
}

// GetPosition returns the logical position of the current cursor.
func (t *TerminalModel) GetPosition() Position {
	return t.CursorToPosition(t.cursor)
}

// ScrollingNeeded computes the signed scroll amount required to bring
// position.Row into the viewport window.
func (t *TerminalModel) ScrollingNeeded(position Position) int {
	return distanceFromWindow(t.rowOffset, t.rowOffset+t.Rows-1, position.Row)
}

// ScrollToTop resets row_offset to zero and returns the value that was
// there before.
func (t *TerminalModel) ScrollToTop() int {
	rows := t.rowOffset
	t.rowOffset = 0
	return rows
}

// Scroll adjusts row_offset by rows (positive scrolls content up).
func (t *TerminalModel) Scroll(rows int) {
	t.rowOffset += rows
}

// MoveCursor computes the scroll needed to bring position into the
// viewport, applies it, and sets the cursor to position's viewport
// coordinates. Returns the signed scroll delta so the caller can emit the
// matching SU/SD sequence.
func (t *TerminalModel) MoveCursor(position Position) int {
	rows := t.ScrollingNeeded(position)
	t.Scroll(rows)

	cursor, ok := t.PositionToCursor(position)
	if !ok {
		panic("lineedit: position out of viewport after scroll")
	}
	t.cursor = cursor
	return rows
}

// MoveCursorToStartOfLine sets the cursor column to zero.
func (t *TerminalModel) MoveCursorToStartOfLine() {
	t.cursor.Column = 0
}

// PositionToCursor converts a logical position to viewport coordinates. ok
// is false if the row falls outside the current viewport.
func (t *TerminalModel) PositionToCursor(position Position) (Cursor, bool) {
	row := position.Row - t.rowOffset
	if row >= 0 && row < t.Rows {
		return Cursor{Row: row, Column: position.Column}, true
	}
	return Cursor{}, false
}

// CursorToPosition converts viewport coordinates to a logical position.
func (t *TerminalModel) CursorToPosition(cursor Cursor) Position {
	return Position{Row: cursor.Row + t.rowOffset, Column: cursor.Column}
}

// OffsetFromPosition returns the scalar character offset of position,
// counting whole rows of Columns width.
func (t *TerminalModel) OffsetFromPosition(position Position) int {
	return position.Row*t.Columns + position.Column
}

// CurrentOffset returns OffsetFromPosition(GetPosition()).
func (t *TerminalModel) CurrentOffset() int {
	return t.OffsetFromPosition(t.CursorToPosition(t.cursor))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

func (t *TerminalModel) positionFromOffset(offset int) Position {
	row := floorDiv(offset, t.Columns)
	column := floorMod(offset, t.Columns)
	return Position{Row: row, Column: column}
}

// RelativePosition advances or retreats by steps columns from the current
// position, wrapping over row boundaries using Columns as the wrap width.
func (t *TerminalModel) RelativePosition(steps int) Position {
	offset := t.OffsetFromPosition(t.CursorToPosition(t.cursor))
	return t.positionFromOffset(offset + steps)
}

// ColumnsRemaining returns how many columns are left on the current row.
func (t *TerminalModel) ColumnsRemaining() int {
	return t.Columns - t.cursor.Column
}
