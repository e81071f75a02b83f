package textctl

import "bytes"

// Buffer is a byte-oriented multi-line edit control. Lines are separated
// by '\n'. The selection runs from the anchor to the cursor; it is empty
// when both are equal.
type Buffer struct {
	text   []byte
	cursor int
	anchor int
}

var _ Control = (*Buffer)(nil)

// NewBuffer creates a buffer holding a copy of text with the cursor at the
// end.
func NewBuffer(text []byte) *Buffer {
	b := &Buffer{text: append([]byte(nil), text...)}
	b.cursor = len(b.text)
	b.anchor = b.cursor
	return b
}

// Bytes returns a copy of the buffer contents.
func (b *Buffer) Bytes() []byte {
	return append([]byte(nil), b.text...)
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int { return len(b.text) }

// Cursor returns the insertion point.
func (b *Buffer) Cursor() int { return b.cursor }

// Anchor returns the fixed end of the selection.
func (b *Buffer) Anchor() int { return b.anchor }

func (b *Buffer) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(b.text) {
		return len(b.text)
	}
	return pos
}

// Select sets the selection from anchor to cursor. Offsets are clamped.
func (b *Buffer) Select(anchor, cursor int) {
	b.anchor = b.clamp(anchor)
	b.cursor = b.clamp(cursor)
}

// SelectAll selects the whole buffer.
func (b *Buffer) SelectAll() {
	b.anchor = 0
	b.cursor = len(b.text)
}

// SetCursor moves the insertion point and drops the selection.
func (b *Buffer) SetCursor(pos int) {
	b.Select(pos, pos)
}

func (b *Buffer) Selection() Range {
	return Range{Start: b.anchor, End: b.cursor}.Normalize()
}

func (b *Buffer) FormatTextLength(r Range) int {
	r = r.Normalize()
	return b.clamp(r.End) - b.clamp(r.Start)
}

func (b *Buffer) SelectedText(dst []byte) int {
	r := b.Selection()
	return copy(dst, b.text[r.Start:r.End])
}

func (b *Buffer) Insert(text []byte) {
	b.Clear()
	out := make([]byte, 0, len(b.text)+len(text))
	out = append(out, b.text[:b.cursor]...)
	out = append(out, text...)
	out = append(out, b.text[b.cursor:]...)
	b.text = out
	b.cursor += len(text)
	b.anchor = b.cursor
}

func (b *Buffer) Clear() {
	r := b.Selection()
	if r.Empty() {
		return
	}
	b.text = append(b.text[:r.Start], b.text[r.End:]...)
	b.cursor = r.Start
	b.anchor = r.Start
}

// Backspace deletes the selection, or the byte before the cursor.
func (b *Buffer) Backspace() {
	if !b.Selection().Empty() {
		b.Clear()
		return
	}
	if b.cursor == 0 {
		return
	}
	b.Select(b.cursor-1, b.cursor)
	b.Clear()
}

// Delete deletes the selection, or the byte after the cursor.
func (b *Buffer) Delete() {
	if !b.Selection().Empty() {
		b.Clear()
		return
	}
	if b.cursor == len(b.text) {
		return
	}
	b.Select(b.cursor, b.cursor+1)
	b.Clear()
}

// moveTo places the cursor at pos, keeping the anchor when extend is set.
func (b *Buffer) moveTo(pos int, extend bool) {
	b.cursor = b.clamp(pos)
	if !extend {
		b.anchor = b.cursor
	}
}

// Left moves the cursor one byte back.
func (b *Buffer) Left(extend bool) {
	if !extend && !b.Selection().Empty() {
		b.moveTo(b.Selection().Start, false)
		return
	}
	b.moveTo(b.cursor-1, extend)
}

// Right moves the cursor one byte forward.
func (b *Buffer) Right(extend bool) {
	if !extend && !b.Selection().Empty() {
		b.moveTo(b.Selection().End, false)
		return
	}
	b.moveTo(b.cursor+1, extend)
}

// Home moves the cursor to the start of its line.
func (b *Buffer) Home(extend bool) {
	b.moveTo(b.lineStart(b.cursor), extend)
}

// End moves the cursor to the end of its line.
func (b *Buffer) End(extend bool) {
	b.moveTo(b.lineEnd(b.cursor), extend)
}

// Up moves the cursor to the same column on the previous line, or to the
// end of that line when it is shorter.
func (b *Buffer) Up(extend bool) {
	start := b.lineStart(b.cursor)
	if start == 0 {
		b.moveTo(0, extend)
		return
	}
	col := b.cursor - start
	prev := b.lineStart(start - 1)
	b.moveTo(min(prev+col, start-1), extend)
}

// Down moves the cursor to the same column on the next line.
func (b *Buffer) Down(extend bool) {
	end := b.lineEnd(b.cursor)
	if end == len(b.text) {
		b.moveTo(end, extend)
		return
	}
	col := b.cursor - b.lineStart(b.cursor)
	next := end + 1
	b.moveTo(min(next+col, b.lineEnd(next)), extend)
}

func (b *Buffer) lineStart(pos int) int {
	return bytes.LastIndexByte(b.text[:pos], '\n') + 1
}

func (b *Buffer) lineEnd(pos int) int {
	if i := bytes.IndexByte(b.text[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(b.text)
}

// LineCol returns the zero-based line and column of the cursor.
func (b *Buffer) LineCol() (line, col int) {
	line = bytes.Count(b.text[:b.cursor], []byte{'\n'})
	col = b.cursor - b.lineStart(b.cursor)
	return line, col
}

// Lines splits the buffer at '\n'. The slices alias the buffer.
func (b *Buffer) Lines() [][]byte {
	return bytes.Split(b.text, []byte{'\n'})
}
