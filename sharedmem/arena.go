package sharedmem

import (
	"context"
	"encoding/binary"
	"fmt"
	"sort"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/clipuni"
	"github.com/wippyai/clipuni/errors"
)

const (
	pageSize = 65536

	// DefaultMaxPages caps an arena at 1MiB unless configured otherwise.
	DefaultMaxPages = 16

	// heapBase keeps offset 0 free so it can mean "no block".
	heapBase = 8
	minAlign = 8
)

// Config holds configuration for arena creation
type Config struct {
	// InitialPages is the memory size at creation. 0 means 1 page.
	InitialPages uint32

	// MaxPages bounds memory growth. 0 means DefaultMaxPages.
	MaxPages uint32
}

type span struct {
	ptr  uint32
	size uint32
}

// Arena is a wazero linear memory with a first-fit block allocator.
// Safe for concurrent use.
type Arena struct {
	runtime wazero.Runtime
	mem     api.Memory
	free    []span
	live    map[uint32]uint32
	mu      sync.Mutex
	top     uint32
	inUse   uint32
	closed  bool
}

// New creates an arena backed by a fresh wazero runtime.
func New(ctx context.Context, cfg Config) (*Arena, error) {
	if cfg.InitialPages == 0 {
		cfg.InitialPages = 1
	}
	if cfg.MaxPages == 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.InitialPages > cfg.MaxPages {
		return nil, errors.InvalidInput(errors.PhaseAlloc,
			fmt.Sprintf("initial pages %d exceed max pages %d", cfg.InitialPages, cfg.MaxPages))
	}

	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithMemoryLimitPages(cfg.MaxPages))
	mod, err := rt.Instantiate(ctx, memoryModule(cfg.InitialPages, cfg.MaxPages))
	if err != nil {
		rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseAlloc, errors.KindAllocationFailed, err, "instantiate shared memory")
	}
	mem := mod.ExportedMemory("memory")
	if mem == nil {
		rt.Close(ctx)
		return nil, errors.NotFound(errors.PhaseAlloc, "export", "memory")
	}

	Logger().Debug("shared memory arena created",
		zap.Uint32("initial_pages", cfg.InitialPages),
		zap.Uint32("max_pages", cfg.MaxPages))

	return &Arena{
		runtime: rt,
		mem:     mem,
		live:    make(map[uint32]uint32),
		top:     heapBase,
	}, nil
}

// Close releases the wazero runtime. Blocks become invalid.
func (a *Arena) Close(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	a.free = nil
	a.live = nil
	return a.runtime.Close(ctx)
}

func alignUp(v, align uint32) uint32 {
	return (v + align - 1) &^ (align - 1)
}

// Alloc reserves size bytes aligned to align (at least 8).
func (a *Arena) Alloc(size, align uint32) (uint32, error) {
	if size == 0 {
		return 0, errors.InvalidInput(errors.PhaseAlloc, "zero-sized block")
	}
	if align < minAlign {
		align = minAlign
	}
	if align&(align-1) != 0 {
		return 0, errors.InvalidInput(errors.PhaseAlloc, fmt.Sprintf("alignment %d is not a power of two", align))
	}
	size = alignUp(size, minAlign)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return 0, errors.AllocationFailed(size, errors.Closed(errors.PhaseAlloc, "arena"))
	}

	for i, s := range a.free {
		ptr := alignUp(s.ptr, align)
		if ptr+size > s.ptr+s.size {
			continue
		}
		a.carve(i, ptr, size)
		a.inUse += size
		a.live[ptr] = size
		return ptr, nil
	}

	ptr := alignUp(a.top, align)
	end := uint64(ptr) + uint64(size)
	if end > uint64(a.mem.Size()) {
		need := (end - uint64(a.mem.Size()) + pageSize - 1) / pageSize
		if _, ok := a.mem.Grow(uint32(need)); !ok {
			Logger().Warn("shared memory exhausted",
				zap.Uint32("size", size),
				zap.Uint32("in_use", a.inUse),
				zap.Uint32("memory", a.mem.Size()))
			return 0, errors.AllocationFailed(size, nil)
		}
		Logger().Debug("shared memory grown", zap.Uint64("pages", need), zap.Uint32("memory", a.mem.Size()))
	}
	if ptr > a.top {
		a.insertFree(span{ptr: a.top, size: ptr - a.top})
	}
	a.top = uint32(end)
	a.inUse += size
	a.live[ptr] = size
	return ptr, nil
}

// carve removes [ptr, ptr+size) from free span i, keeping any remainder.
func (a *Arena) carve(i int, ptr, size uint32) {
	s := a.free[i]
	a.free = append(a.free[:i], a.free[i+1:]...)
	if ptr > s.ptr {
		a.insertFree(span{ptr: s.ptr, size: ptr - s.ptr})
	}
	if end := ptr + size; end < s.ptr+s.size {
		a.insertFree(span{ptr: end, size: s.ptr + s.size - end})
	}
}

// Free returns the block at ptr to the arena. Pointers Alloc did not hand
// out, and blocks already freed, are ignored. The size recorded by Alloc
// wins over size.
func (a *Arena) Free(ptr, size, align uint32) {
	if ptr == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	held, ok := a.live[ptr]
	if !ok {
		Logger().Debug("free of unknown block ignored", zap.Uint32("ptr", ptr), zap.Uint32("size", size))
		return
	}
	delete(a.live, ptr)
	a.inUse -= held
	a.insertFree(span{ptr: ptr, size: held})

	// Give the tail back to the bump pointer.
	if n := len(a.free); n > 0 {
		last := a.free[n-1]
		if last.ptr+last.size == a.top {
			a.top = last.ptr
			a.free = a.free[:n-1]
		}
	}
}

// insertFree adds s to the ordered free list, merging neighbours.
func (a *Arena) insertFree(s span) {
	i := sort.Search(len(a.free), func(i int) bool { return a.free[i].ptr >= s.ptr })
	a.free = append(a.free, span{})
	copy(a.free[i+1:], a.free[i:])
	a.free[i] = s

	if i+1 < len(a.free) && a.free[i].ptr+a.free[i].size == a.free[i+1].ptr {
		a.free[i].size += a.free[i+1].size
		a.free = append(a.free[:i+1], a.free[i+2:]...)
	}
	if i > 0 && a.free[i-1].ptr+a.free[i-1].size == a.free[i].ptr {
		a.free[i-1].size += a.free[i].size
		a.free = append(a.free[:i], a.free[i+1:]...)
	}
}

// InUse returns the number of bytes held by live blocks.
func (a *Arena) InUse() uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inUse
}

// Size returns the current memory size in bytes.
func (a *Arena) Size() uint32 {
	return a.mem.Size()
}

// Read returns a view of arena memory. The slice aliases the arena.
func (a *Arena) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := a.mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("read out of bounds: offset=%d, length=%d", offset, length)
	}
	return data, nil
}

func (a *Arena) Write(offset uint32, data []byte) error {
	if !a.mem.Write(offset, data) {
		return fmt.Errorf("write out of bounds: offset=%d, length=%d", offset, len(data))
	}
	return nil
}

// ReadU16 reads a unit in host byte order.
func (a *Arena) ReadU16(offset uint32) (uint16, error) {
	data, err := a.Read(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint16(data), nil
}

func (a *Arena) WriteU8(offset uint32, value uint8) error {
	if !a.mem.WriteByte(offset, value) {
		return fmt.Errorf("write out of bounds: offset=%d", offset)
	}
	return nil
}

// WriteU16 writes a unit in host byte order.
func (a *Arena) WriteU16(offset uint32, value uint16) error {
	var buf [2]byte
	binary.NativeEndian.PutUint16(buf[:], value)
	return a.Write(offset, buf[:])
}

var (
	_ clipuni.Memory      = (*Arena)(nil)
	_ clipuni.MemorySizer = (*Arena)(nil)
	_ clipuni.Allocator   = (*Arena)(nil)
)
