package codepage

import "sync/atomic"

// Source reports the active codepage. Implementations are queried before
// every transcoding operation.
type Source interface {
	Codepage() uint32
}

// Fixed is a Source that never changes.
type Fixed uint32

// Codepage implements Source.
func (f Fixed) Codepage() uint32 { return uint32(f) }

// SourceFunc adapts a function to Source.
type SourceFunc func() uint32

// Codepage implements Source.
func (f SourceFunc) Codepage() uint32 { return f() }

// Active is the process-wide active codepage. Safe for concurrent use.
type Active struct {
	cp atomic.Uint32
}

// NewActive creates an Active set to cp.
func NewActive(cp uint32) *Active {
	a := &Active{}
	a.cp.Store(cp)
	return a
}

// Codepage implements Source.
func (a *Active) Codepage() uint32 {
	return a.cp.Load()
}

// Set switches the active codepage and returns the previous one.
func (a *Active) Set(cp uint32) uint32 {
	return a.cp.Swap(cp)
}

var (
	_ Source = Fixed(0)
	_ Source = SourceFunc(nil)
	_ Source = (*Active)(nil)
)
