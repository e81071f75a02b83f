package pipeline

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/clipuni/clipboard"
	"github.com/wippyai/clipuni/codepage"
	"github.com/wippyai/clipuni/errors"
	"github.com/wippyai/clipuni/textctl"
	"github.com/wippyai/clipuni/uconv"
)

const (
	actionCopyWide  = "copying Unicode text"
	actionCopyText  = "copying plain text"
	actionPasteWide = "pasting Unicode text"
	actionPasteText = "pasting plain text"
)

// Copy publishes the selection of ctl. See CopyCut.
func (c *Context) Copy(ctl textctl.Control) uint32 {
	return c.CopyCut(ctl, false)
}

// Cut publishes the selection of ctl and deletes it. See CopyCut.
func (c *Context) Cut(ctl textctl.Control) uint32 {
	return c.CopyCut(ctl, true)
}

// CopyCut replaces the clipboard contents with the selection of ctl, as
// wide text converted from the active codepage and as the original plain
// text. The two publishes are independent. With cut set, the selection is
// deleted only when both succeeded.
//
// It returns the number of plain-text bytes published, or 0 when the
// clipboard could not be acquired or the plain-text publish failed.
func (c *Context) CopyCut(ctl textctl.Control, cut bool) uint32 {
	owner := "copy"
	if cut {
		owner = "cut"
	}
	if c.isClosed() {
		c.popup(actionCopyText, "Context", errors.Closed(errors.PhaseAcquire, "pipeline context"))
		return 0
	}

	sel := ctl.Selection()
	buf := make([]byte, ctl.FormatTextLength(sel)+1)
	text := buf[:ctl.SelectedText(buf)]

	h, err := c.board.Open(owner)
	if err != nil {
		c.popup(actionCopyText, "Board.Open()", err)
		return 0
	}
	defer h.Close()

	if err := h.Empty(); err != nil {
		c.popup(actionCopyText, "Handle.Empty()", err)
		return 0
	}

	cp := c.source.Codepage()
	wideErr := c.publishWide(h, cp, text)

	textErr := h.SetText(text)
	if textErr != nil {
		c.popup(actionCopyText, "Handle.SetText()", textErr)
	}

	deleted := false
	if cut && wideErr == nil && textErr == nil {
		ctl.Clear()
		deleted = true
	}

	if err := multierr.Combine(wideErr, textErr); err != nil {
		Logger().Debug("copy incomplete",
			zap.String("owner", owner),
			zap.Uint32("codepage", cp),
			zap.Bool("deleted", deleted),
			zap.Error(err))
	} else {
		Logger().Debug("copied",
			zap.String("owner", owner),
			zap.Uint32("codepage", cp),
			zap.Int("bytes", len(text)),
			zap.Bool("deleted", deleted))
	}

	if textErr != nil {
		return 0
	}
	return uint32(len(text))
}

// publishWide converts text from codepage cp and places it under the wide
// format. Every failure is reported before it is returned.
func (c *Context) publishWide(h *clipboard.Handle, cp uint32, text []byte) error {
	spec, err := codepage.Resolve(cp)
	if err != nil {
		c.popup(actionCopyWide, "codepage.Resolve()", err)
		return err
	}

	sess, err := uconv.Open(spec)
	if err != nil {
		c.popup(actionCopyWide, "uconv.Open()", err)
		return err
	}
	defer closeSession(sess)

	units, err := sess.ToWide(text)
	if err != nil {
		c.popup(actionCopyWide, "Session.ToWide()", err)
		return err
	}
	if n := uconv.CorrectWide(cp, units); n > 0 {
		Logger().Debug("dotless i replaced", zap.Uint32("codepage", cp), zap.Int("count", n))
	}

	if err := h.SetWide(c.wide, units); err != nil {
		c.popup(actionCopyWide, "Handle.SetWide()", err)
		return err
	}
	return nil
}

func closeSession(s *uconv.Session) {
	if err := s.Close(); err != nil {
		Logger().Warn("converter close failed", zap.Error(err))
	}
}
