package clipboard

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/clipuni/errors"
)

// EventType identifies a board change.
type EventType uint8

const (
	EventSet EventType = iota
	EventEmptied
)

// Event describes a board change. Text is set for FormatText placements,
// Wide for every other format; both are copies. Seq is the board's Seq
// right after the change.
type Event struct {
	Owner  string
	Text   []byte
	Wide   []uint16
	Seq    uint64
	Format Format
	Type   EventType
}

// Observer receives board changes. Observers run while the board is held
// and must not open it.
type Observer interface {
	OnClipboardEvent(Event)
}

// Board is the shared clipboard. Access is exclusive: Open hands out one
// Handle at a time and every read or write goes through it.
type Board struct {
	store     Storage
	registry  *Registry
	data      map[Format]Block
	owner     string
	observers []Observer
	seq       uint64
	mu        sync.Mutex
	obsMu     sync.RWMutex
	held      bool
}

// NewBoard creates an empty board storing payloads in store and resolving
// format names through registry.
func NewBoard(store Storage, registry *Registry) *Board {
	return &Board{
		store:    store,
		registry: registry,
		data:     make(map[Format]Block),
	}
}

// Registry returns the board's format registry.
func (b *Board) Registry() *Registry {
	return b.registry
}

// Open acquires exclusive access for owner. It fails with
// ClipboardAcquireFailed while another handle is open.
func (b *Board) Open(owner string) (*Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.held {
		Logger().Debug("clipboard busy", zap.String("owner", owner), zap.String("held_by", b.owner))
		return nil, errors.ClipboardAcquireFailed(b.owner)
	}
	b.held = true
	b.owner = owner
	return &Handle{board: b, owner: owner}, nil
}

// Seq returns a counter that changes with every placement or empty.
func (b *Board) Seq() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}

// Subscribe adds an observer for board changes.
func (b *Board) Subscribe(o Observer) {
	b.obsMu.Lock()
	defer b.obsMu.Unlock()
	b.observers = append(b.observers, o)
}

// Unsubscribe removes an observer.
func (b *Board) Unsubscribe(o Observer) {
	b.obsMu.Lock()
	defer b.obsMu.Unlock()
	for i, obs := range b.observers {
		if obs == o {
			b.observers = append(b.observers[:i], b.observers[i+1:]...)
			return
		}
	}
}

// Close frees every stored block. Used at shutdown.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.freeAll()
}

func (b *Board) freeAll() {
	for f, blk := range b.data {
		FreeBlock(b.store, blk)
		delete(b.data, f)
	}
}

func (b *Board) notify(e Event) {
	b.obsMu.RLock()
	defer b.obsMu.RUnlock()
	for _, o := range b.observers {
		o.OnClipboardEvent(e)
	}
}

func (b *Board) formatName(f Format) string {
	if name, ok := b.registry.Name(f); ok {
		return name
	}
	return fmt.Sprintf("%#x", uint32(f))
}

// Handle is exclusive access to a Board, released by Close.
type Handle struct {
	board  *Board
	owner  string
	closed bool
}

func (h *Handle) check(phase errors.Phase) error {
	if h.closed {
		return errors.Closed(phase, "clipboard handle")
	}
	return nil
}

// Empty discards all clipboard data.
func (h *Handle) Empty() error {
	if err := h.check(errors.PhasePublish); err != nil {
		return err
	}
	b := h.board
	b.mu.Lock()
	b.freeAll()
	b.seq++
	seq := b.seq
	b.mu.Unlock()

	b.notify(Event{Type: EventEmptied, Owner: h.owner, Seq: seq})
	return nil
}

// SetText places narrow text under FormatText.
func (h *Handle) SetText(text []byte) error {
	if err := h.check(errors.PhasePublish); err != nil {
		return errors.ClipboardPublishFailed("CF_TEXT", err)
	}
	blk, err := AllocText(h.board.store, text)
	if err != nil {
		return err
	}
	return h.SetData(FormatText, blk)
}

// SetWide places wide units under format f.
func (h *Handle) SetWide(f Format, units []uint16) error {
	if err := h.check(errors.PhasePublish); err != nil {
		return errors.ClipboardPublishFailed(h.board.formatName(f), err)
	}
	if f == FormatText {
		return errors.ClipboardPublishFailed("CF_TEXT", errors.InvalidInput(errors.PhasePublish, "wide data under the text format"))
	}
	blk, err := AllocWide(h.board.store, units)
	if err != nil {
		return err
	}
	return h.SetData(f, blk)
}

// SetData hands blk to the board under format f, replacing and freeing any
// previous block. On failure the block is freed and the board is unchanged.
func (h *Handle) SetData(f Format, blk Block) error {
	b := h.board
	name := b.formatName(f)
	if err := h.check(errors.PhasePublish); err != nil {
		FreeBlock(b.store, blk)
		return errors.ClipboardPublishFailed(name, err)
	}
	if !b.registry.Valid(f) {
		FreeBlock(b.store, blk)
		return errors.ClipboardPublishFailed(name, errors.NotFound(errors.PhasePublish, "format", name))
	}
	if blk.IsZero() {
		return errors.ClipboardPublishFailed(name, errors.InvalidInput(errors.PhasePublish, "empty block"))
	}

	e := Event{Type: EventSet, Format: f, Owner: h.owner}
	var err error
	if f == FormatText {
		e.Text, err = ReadText(b.store, blk)
	} else {
		e.Wide, err = ReadWide(b.store, blk)
	}
	if err != nil {
		FreeBlock(b.store, blk)
		return errors.ClipboardPublishFailed(name, err)
	}

	b.mu.Lock()
	if old, ok := b.data[f]; ok {
		FreeBlock(b.store, old)
	}
	b.data[f] = blk
	b.seq++
	e.Seq = b.seq
	b.mu.Unlock()

	Logger().Debug("clipboard data set",
		zap.String("format", name),
		zap.Uint32("size", blk.Size),
		zap.String("owner", h.owner))

	b.notify(e)
	return nil
}

// Data returns the block stored under f.
func (h *Handle) Data(f Format) (Block, bool) {
	if h.closed {
		return Block{}, false
	}
	b := h.board
	b.mu.Lock()
	defer b.mu.Unlock()
	blk, ok := b.data[f]
	return blk, ok
}

// Text returns a copy of the plain text, if any.
func (h *Handle) Text() ([]byte, bool, error) {
	blk, ok := h.Data(FormatText)
	if !ok {
		return nil, false, nil
	}
	text, err := ReadText(h.board.store, blk)
	if err != nil {
		return nil, true, errors.Wrap(errors.PhaseQuery, errors.KindNotFound, err, "read CF_TEXT")
	}
	return text, true, nil
}

// Wide returns a copy of the units stored under f, if any.
func (h *Handle) Wide(f Format) ([]uint16, bool, error) {
	blk, ok := h.Data(f)
	if !ok {
		return nil, false, nil
	}
	units, err := ReadWide(h.board.store, blk)
	if err != nil {
		return nil, true, errors.Wrap(errors.PhaseQuery, errors.KindNotFound, err, "read "+h.board.formatName(f))
	}
	return units, true, nil
}

// Formats lists the formats currently on the board.
func (h *Handle) Formats() []Format {
	if h.closed {
		return nil
	}
	b := h.board
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Format, 0, len(b.data))
	for f := range b.data {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Close releases exclusive access. Closing twice is an error.
func (h *Handle) Close() error {
	if h.closed {
		return errors.Closed(errors.PhaseAcquire, "clipboard handle")
	}
	h.closed = true
	b := h.board
	b.mu.Lock()
	b.held = false
	b.owner = ""
	b.mu.Unlock()
	return nil
}
