// Package textctl defines the text control the clipboard pipelines read
// from and write to, and Buffer, an in-memory multi-line implementation.
//
// Controls are byte oriented: text is stored in the active codepage and
// offsets are byte offsets.
package textctl

// Range is a pair of insertion points. Start <= End once normalized.
type Range struct {
	Start int
	End   int
}

// Normalize returns r with Start <= End.
func (r Range) Normalize() Range {
	if r.Start > r.End {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// Len returns the number of bytes covered by r.
func (r Range) Len() int {
	n := r.Normalize()
	return n.End - n.Start
}

// Empty reports whether r selects nothing.
func (r Range) Empty() bool { return r.Start == r.End }

// Control is the edit control collaborator.
type Control interface {
	// Selection returns the normalized selection.
	Selection() Range
	// FormatTextLength returns the number of bytes the text in r occupies
	// when exported as plain text.
	FormatTextLength(r Range) int
	// SelectedText copies the selection into dst and returns the number of
	// bytes written.
	SelectedText(dst []byte) int
	// Insert places text at the insertion point, replacing any selection.
	Insert(text []byte)
	// Clear deletes the selection.
	Clear()
}
