package clipboard

import (
	"fmt"
	"strings"
	"sync"

	"github.com/wippyai/clipuni/errors"
)

// Format identifies a clipboard data format. Format 0 is never valid.
type Format uint32

// FormatText is the predefined plain-text format: NUL-terminated bytes in
// the active codepage.
const FormatText Format = 1

const (
	// firstAtom is the first identifier handed out for registered names.
	firstAtom Format = 0xC000
	// lastAtom bounds the registry at 16384 names.
	lastAtom Format = 0xFFFF

	maxAtomName = 255
)

type atom struct {
	name  string
	refs  uint32
	valid bool
}

// Registry is a system-wide atom table mapping format names to
// identifiers. Adding a name twice returns the same atom and bumps its use
// count; Delete drops one use. Names compare case-insensitively.
type Registry struct {
	byName   map[string]Format
	atoms    []atom
	freeList []Format
	mu       sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:   make(map[string]Format),
		atoms:    make([]atom, 0, 16),
		freeList: make([]Format, 0, 4),
	}
}

// Add registers name and returns its atom.
func (r *Registry) Add(name string) (Format, error) {
	if name == "" || len(name) > maxAtomName {
		return 0, errors.InvalidInput(errors.PhaseRegister, fmt.Sprintf("invalid format name %q", name))
	}
	key := strings.ToLower(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.byName[key]; ok {
		r.atoms[f-firstAtom].refs++
		return f, nil
	}

	a := atom{name: name, refs: 1, valid: true}
	var f Format
	if n := len(r.freeList); n > 0 {
		f = r.freeList[n-1]
		r.freeList = r.freeList[:n-1]
		r.atoms[f-firstAtom] = a
	} else {
		f = firstAtom + Format(len(r.atoms))
		if f > lastAtom {
			return 0, errors.New(errors.PhaseRegister, errors.KindAllocationFailed).
				Detail("atom table full").
				Build()
		}
		r.atoms = append(r.atoms, a)
	}
	r.byName[key] = f
	return f, nil
}

// Find returns the atom for name without changing its use count.
func (r *Registry) Find(name string) (Format, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.byName[strings.ToLower(name)]
	return f, ok
}

// Name returns the registered name of f.
func (r *Registry) Name(f Format) (string, bool) {
	if f == FormatText {
		return "CF_TEXT", true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.lookup(f)
	if !ok {
		return "", false
	}
	return a.name, true
}

// Valid reports whether f is the predefined text format or a live atom.
func (r *Registry) Valid(f Format) bool {
	if f == FormatText {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.lookup(f)
	return ok
}

func (r *Registry) lookup(f Format) (atom, bool) {
	if f < firstAtom || int(f-firstAtom) >= len(r.atoms) {
		return atom{}, false
	}
	a := r.atoms[f-firstAtom]
	return a, a.valid
}

// Delete drops one use of f. The atom is freed when its count reaches 0.
func (r *Registry) Delete(f Format) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.lookup(f)
	if !ok {
		return errors.NotFound(errors.PhaseRegister, "atom", fmt.Sprintf("%#x", uint32(f)))
	}
	a.refs--
	if a.refs > 0 {
		r.atoms[f-firstAtom] = a
		return nil
	}
	delete(r.byName, strings.ToLower(a.name))
	r.atoms[f-firstAtom] = atom{}
	r.freeList = append(r.freeList, f)
	return nil
}

// Refs returns the use count of f, 0 if f is not registered.
func (r *Registry) Refs(f Format) uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, _ := r.lookup(f)
	return a.refs
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}
