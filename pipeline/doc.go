// Package pipeline implements the clipboard copy, cut and paste operations
// of a codepage text control.
//
// Copy and cut publish the selection twice: as plain text in the active
// codepage under clipboard.FormatText, and as 16-bit wide text under the
// "text/unicode" format. Paste prefers the wide text, converting it back
// into the active codepage, and falls back to plain text verbatim.
//
// The active codepage is queried from a codepage.Source before every
// operation. Failures are reported through a report.Reporter and never
// abort the caller; the returned byte count is the success signal.
//
//	ctx, err := pipeline.New(board, active, reporter, pipeline.Options{})
//	if err != nil {
//		return err
//	}
//	defer ctx.Close()
//
//	n := ctx.Copy(buf)
package pipeline
