package pipeline

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/clipuni"
	"github.com/wippyai/clipuni/clipboard"
	"github.com/wippyai/clipuni/codepage"
	"github.com/wippyai/clipuni/errors"
	"github.com/wippyai/clipuni/report"
)

// Options tunes pipeline behavior.
type Options struct {
	// CorrectOnPaste also rewrites U+0131 to U+FFFD in wide text before it
	// is converted for a paste under codepage 850.
	CorrectOnPaste bool
}

// Context carries the state shared by every pipeline call: the clipboard,
// the registered wide-text format, the active codepage and the error
// channel.
type Context struct {
	board    *clipboard.Board
	source   codepage.Source
	reporter report.Reporter
	opts     Options
	wide     clipboard.Format
	once     sync.Once
	closed   bool
	mu       sync.Mutex
}

// New registers the wide-text format on board's registry and returns a
// Context using it. A nil reporter discards popups.
func New(board *clipboard.Board, source codepage.Source, reporter report.Reporter, opts Options) (*Context, error) {
	if board == nil {
		return nil, errors.InvalidInput(errors.PhaseRegister, "nil clipboard board")
	}
	if source == nil {
		return nil, errors.InvalidInput(errors.PhaseRegister, "nil codepage source")
	}
	if reporter == nil {
		reporter = report.Discard
	}

	wide, err := board.Registry().Add(clipuni.FormatName)
	if err != nil {
		return nil, err
	}

	Logger().Info("wide text format registered",
		zap.String("name", clipuni.FormatName),
		zap.Uint32("format", uint32(wide)))

	return &Context{
		board:    board,
		source:   source,
		reporter: reporter,
		opts:     opts,
		wide:     wide,
	}, nil
}

// WideFormat returns the registered "text/unicode" format.
func (c *Context) WideFormat() clipboard.Format {
	return c.wide
}

// Board returns the clipboard the context publishes to.
func (c *Context) Board() *clipboard.Board {
	return c.board
}

// Close deregisters the wide-text format and releases the board's
// blocks. Only the first call has an effect.
func (c *Context) Close() error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		err = multierr.Append(err, c.board.Registry().Delete(c.wide))
		c.board.Close()
		Logger().Info("wide text format deregistered", zap.Uint32("format", uint32(c.wide)))
	})
	return err
}

func (c *Context) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// popup reports a failed step. step names the call that failed; the status
// code carried by err is printed the way the host converter prints it.
func (c *Context) popup(action, step string, err error) {
	Logger().Warn("clipboard operation failed",
		zap.String("action", action),
		zap.String("step", step),
		zap.Error(err))
	c.reporter.Popup("Error", fmt.Sprintf("Error %s:\n%s = %08X\n%v", action, step, errors.CodeOf(err), err))
}
