package pipeline

import (
	"fmt"

	"github.com/wippyai/clipuni/errors"
	"github.com/wippyai/clipuni/textctl"
)

// Action is a clipboard command, independent of the key chord that
// triggered it.
type Action uint8

const (
	ActionNone Action = iota
	ActionCopy
	ActionCut
	ActionPaste
)

func (a Action) String() string {
	switch a {
	case ActionCopy:
		return "copy"
	case ActionCut:
		return "cut"
	case ActionPaste:
		return "paste"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// Handler runs one action against a control and returns the byte count.
type Handler func(c *Context, ctl textctl.Control) uint32

// Dispatcher maps actions to handlers.
type Dispatcher struct {
	ctx      *Context
	handlers map[Action]Handler
}

// NewDispatcher returns a dispatcher with copy, cut and paste bound to
// ctx's pipelines.
func NewDispatcher(ctx *Context) *Dispatcher {
	return &Dispatcher{
		ctx: ctx,
		handlers: map[Action]Handler{
			ActionCopy:  (*Context).Copy,
			ActionCut:   (*Context).Cut,
			ActionPaste: (*Context).Paste,
		},
	}
}

// Handle binds h to a, replacing any previous binding. A nil h unbinds a.
func (d *Dispatcher) Handle(a Action, h Handler) {
	if h == nil {
		delete(d.handlers, a)
		return
	}
	d.handlers[a] = h
}

// Dispatch runs the handler bound to a.
func (d *Dispatcher) Dispatch(a Action, ctl textctl.Control) (uint32, error) {
	h, ok := d.handlers[a]
	if !ok {
		return 0, errors.NotFound(errors.PhaseQuery, "action", a.String())
	}
	return h(d.ctx, ctl), nil
}
