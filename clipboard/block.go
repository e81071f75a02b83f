package clipboard

import (
	"fmt"

	"github.com/wippyai/clipuni"
	"github.com/wippyai/clipuni/errors"
)

const blockAlign = 8

// Storage is the shared memory clipboard payloads live in.
// *sharedmem.Arena implements it.
type Storage interface {
	clipuni.Allocator
	clipuni.Memory
	clipuni.MemorySizer
}

// Block is a payload handed to the board: Size bytes at offset Ptr,
// terminator included.
type Block struct {
	Ptr  uint32
	Size uint32
}

// IsZero reports whether b refers to no memory.
func (b Block) IsZero() bool { return b.Ptr == 0 }

// AllocText copies text into a new NUL-terminated block of s.
func AllocText(s Storage, text []byte) (Block, error) {
	size := uint32(len(text)) + 1
	ptr, err := s.Alloc(size, blockAlign)
	if err != nil {
		return Block{}, err
	}
	blk := Block{Ptr: ptr, Size: size}
	if err := s.Write(ptr, text); err != nil {
		FreeBlock(s, blk)
		return Block{}, err
	}
	if err := s.WriteU8(ptr+size-1, 0); err != nil {
		FreeBlock(s, blk)
		return Block{}, err
	}
	return blk, nil
}

// AllocWide copies units into a new block of s, followed by a zero unit.
func AllocWide(s Storage, units []uint16) (Block, error) {
	size := uint32(len(units)+1) * 2
	ptr, err := s.Alloc(size, blockAlign)
	if err != nil {
		return Block{}, err
	}
	blk := Block{Ptr: ptr, Size: size}
	for i, u := range units {
		if err := s.WriteU16(ptr+uint32(i)*2, u); err != nil {
			FreeBlock(s, blk)
			return Block{}, err
		}
	}
	if err := s.WriteU16(ptr+size-2, 0); err != nil {
		FreeBlock(s, blk)
		return Block{}, err
	}
	return blk, nil
}

// ReadText returns a copy of the text in blk up to its terminator.
func ReadText(s Storage, blk Block) ([]byte, error) {
	if err := inBounds(s, blk); err != nil {
		return nil, err
	}
	data, err := s.Read(blk.Ptr, blk.Size)
	if err != nil {
		return nil, err
	}
	for i, c := range data {
		if c == 0 {
			data = data[:i]
			break
		}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// ReadWide returns the units in blk up to the zero unit.
func ReadWide(s Storage, blk Block) ([]uint16, error) {
	if err := inBounds(s, blk); err != nil {
		return nil, err
	}
	n := blk.Size / 2
	out := make([]uint16, 0, n)
	for i := uint32(0); i < n; i++ {
		u, err := s.ReadU16(blk.Ptr + i*2)
		if err != nil {
			return nil, err
		}
		if u == 0 {
			break
		}
		out = append(out, u)
	}
	return out, nil
}

// FreeBlock returns blk to s. A zero block is ignored.
func FreeBlock(s Storage, blk Block) {
	if blk.IsZero() {
		return
	}
	s.Free(blk.Ptr, blk.Size, blockAlign)
}

func inBounds(s Storage, blk Block) error {
	if blk.IsZero() || uint64(blk.Ptr)+uint64(blk.Size) > uint64(s.Size()) {
		return errors.InvalidInput(errors.PhaseQuery,
			fmt.Sprintf("block [%d,+%d) outside shared memory of %d bytes", blk.Ptr, blk.Size, s.Size()))
	}
	return nil
}
