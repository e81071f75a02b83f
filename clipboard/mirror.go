package clipboard

import (
	"unicode/utf16"
	"unicode/utf8"

	sysclip "github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// Mirror keeps the host clipboard in step with a board's wide-text format.
// Wide text placed on the board is exported to the host as UTF-8; Sync
// imports host text that changed since the last export.
//
// synced is the board Seq the host clipboard last agreed with. A board
// that moved past it holds data the host never saw, so Sync leaves it alone.
type Mirror struct {
	read   func() (string, error)
	write  func(string) error
	last   string
	synced uint64
	format Format
}

// NewMirror creates a mirror for the wide format f using the host
// clipboard.
func NewMirror(f Format) *Mirror {
	return &Mirror{
		format: f,
		read:   sysclip.ReadAll,
		write:  sysclip.WriteAll,
	}
}

// HostAvailable reports whether the host clipboard can be reached.
func HostAvailable() bool {
	return !sysclip.Unsupported
}

// OnClipboardEvent exports wide text set on the board.
func (m *Mirror) OnClipboardEvent(e Event) {
	if e.Type != EventSet {
		return
	}
	if e.Format != m.format {
		// Extra formats placed right after an export keep the host current.
		if e.Seq == m.synced+1 {
			m.synced = e.Seq
		}
		return
	}
	text := string(utf16.Decode(e.Wide))
	if err := m.write(text); err != nil {
		Logger().Warn("host clipboard export failed", zap.Error(err))
		return
	}
	m.last = text
	m.synced = e.Seq
}

// Sync imports host clipboard text as wide text when it differs from what
// was last exported. It opens the board itself and reports whether the
// board changed. When the board changed without an export, as after a copy
// whose wide text could not be placed, the host text is stale: it becomes
// the new baseline and the board is kept.
func (m *Mirror) Sync(b *Board) (bool, error) {
	text, err := m.read()
	if err != nil {
		Logger().Debug("host clipboard read failed", zap.Error(err))
		return false, nil
	}
	if text == "" || text == m.last {
		return false, nil
	}

	h, err := b.Open("mirror")
	if err != nil {
		return false, err
	}
	defer h.Close()

	if seq := b.Seq(); seq != m.synced {
		Logger().Debug("host clipboard import skipped, board changed since last sync",
			zap.Uint64("seq", seq), zap.Uint64("synced", m.synced))
		m.last = text
		m.synced = seq
		return false, nil
	}

	if err := h.Empty(); err != nil {
		return false, err
	}
	if err := h.SetWide(m.format, toUnits(text)); err != nil {
		return false, err
	}
	m.last = text
	m.synced = b.Seq()
	return true, nil
}

// toUnits encodes text as one 16-bit unit per character. Characters
// outside the BMP become U+FFFD.
func toUnits(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		if r > 0xFFFF {
			r = utf8.RuneError
		}
		units = append(units, uint16(r))
	}
	return units
}
