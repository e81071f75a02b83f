// Package clipboard implements the clipboard transport: a registry of
// named data formats, a board holding one shared-memory block per format,
// and exclusive access to that board.
//
// # Formats
//
// FormatText is predefined. Other formats are atoms registered by name in a
// Registry; registering the same name again returns the same atom:
//
//	reg := clipboard.NewRegistry()
//	wide, err := reg.Add("text/unicode")
//	defer reg.Delete(wide)
//
// # Exclusive Access
//
// Board.Open returns a Handle or fails with ClipboardAcquireFailed if
// another handle is still open. Release it with a deferred Close:
//
//	h, err := board.Open("copy")
//	if err != nil {
//	    return 0
//	}
//	defer h.Close()
//
//	h.Empty()
//	h.SetWide(wide, units)
//	h.SetText(text)
//
// Each placement allocates a block from the board's Storage. Ownership
// moves to the board, which frees the block when the format is replaced or
// the board is emptied. Text blocks are NUL-terminated; wide blocks hold
// 16-bit units in host byte order followed by a zero unit.
//
// # Host Mirror
//
// A Mirror subscribed to the board exports wide text to the host clipboard
// and can import host text back onto the board with Sync.
package clipboard
