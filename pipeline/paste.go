package pipeline

import (
	"go.uber.org/zap"

	"github.com/wippyai/clipuni/codepage"
	"github.com/wippyai/clipuni/errors"
	"github.com/wippyai/clipuni/textctl"
	"github.com/wippyai/clipuni/uconv"
)

// Paste inserts clipboard text at the insertion point of ctl. Wide text is
// preferred and converted into the active codepage, with substitution
// bytes shown as '?'. Without wide text, plain text is inserted verbatim.
//
// It returns the number of bytes inserted. Conversion failures are
// reported and yield 0.
func (c *Context) Paste(ctl textctl.Control) uint32 {
	if c.isClosed() {
		c.popup(actionPasteText, "Context", errors.Closed(errors.PhaseAcquire, "pipeline context"))
		return 0
	}

	h, err := c.board.Open("paste")
	if err != nil {
		c.popup(actionPasteText, "Board.Open()", err)
		return 0
	}
	defer h.Close()

	units, ok, err := h.Wide(c.wide)
	if err != nil {
		c.popup(actionPasteWide, "Handle.Wide()", err)
		return 0
	}
	if ok {
		return c.pasteWide(ctl, units)
	}

	text, ok, err := h.Text()
	if err != nil {
		c.popup(actionPasteText, "Handle.Text()", err)
		return 0
	}
	if !ok {
		return 0
	}
	ctl.Insert(text)
	Logger().Debug("pasted plain text", zap.Int("bytes", len(text)))
	return uint32(len(text))
}

func (c *Context) pasteWide(ctl textctl.Control, units []uint16) uint32 {
	cp := c.source.Codepage()

	spec, err := codepage.Resolve(cp)
	if err != nil {
		c.popup(actionPasteWide, "codepage.Resolve()", err)
		return 0
	}

	sess, err := uconv.Open(spec)
	if err != nil {
		c.popup(actionPasteWide, "uconv.Open()", err)
		return 0
	}
	defer closeSession(sess)

	if c.opts.CorrectOnPaste {
		uconv.CorrectWide(cp, units)
	}

	narrow, err := sess.ToNarrow(units)
	if err != nil {
		c.popup(actionPasteWide, "Session.ToNarrow()", err)
		return 0
	}
	subs := uconv.CleanSubstitutions(narrow)

	ctl.Insert(narrow)
	Logger().Debug("pasted wide text",
		zap.Uint32("codepage", cp),
		zap.Int("units", len(units)),
		zap.Int("bytes", len(narrow)),
		zap.Int("substitutions", subs))
	return uint32(len(narrow))
}
