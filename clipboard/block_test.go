package clipboard

import (
	"context"
	"testing"

	"github.com/wippyai/clipuni/sharedmem"
)

func newStorage(t *testing.T) *sharedmem.Arena {
	t.Helper()
	ctx := context.Background()
	arena, err := sharedmem.New(ctx, sharedmem.Config{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { arena.Close(ctx) })
	return arena
}

func TestAllocText(t *testing.T) {
	s := newStorage(t)

	blk, err := AllocText(s, []byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	if blk.IsZero() {
		t.Fatal("block at offset 0")
	}
	if blk.Size != 6 {
		t.Errorf("Size = %d, want 6", blk.Size)
	}

	raw, err := s.Read(blk.Ptr, blk.Size)
	if err != nil || raw[5] != 0 {
		t.Errorf("terminator = % x, %v", raw, err)
	}

	got, err := ReadText(s, blk)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello" {
		t.Errorf("ReadText = %q", got)
	}

	FreeBlock(s, blk)
	if s.InUse() != 0 {
		t.Errorf("InUse = %d after FreeBlock", s.InUse())
	}
}

func TestAllocWide(t *testing.T) {
	s := newStorage(t)

	units := []uint16{0x0041, 0x0042, 0xFFFD, 0x7777}[:3]
	blk, err := AllocWide(s, units)
	if err != nil {
		t.Fatal(err)
	}
	if blk.Size != 8 {
		t.Errorf("Size = %d, want 8", blk.Size)
	}
	if units[:4][3] != 0x7777 {
		t.Error("AllocWide wrote into the caller's spare capacity")
	}

	for i, want := range []uint16{0x0041, 0x0042, 0xFFFD, 0} {
		u, err := s.ReadU16(blk.Ptr + uint32(i)*2)
		if err != nil {
			t.Fatal(err)
		}
		if u != want {
			t.Errorf("unit %d = %04X, want %04X", i, u, want)
		}
	}

	got, err := ReadWide(s, blk)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 0x41 || got[1] != 0x42 || got[2] != 0xFFFD {
		t.Errorf("ReadWide = %04X", got)
	}
}

func TestReadBlockOutOfBounds(t *testing.T) {
	s := newStorage(t)

	if _, err := ReadText(s, Block{Ptr: s.Size() - 2, Size: 8}); err == nil {
		t.Error("ReadText past the end of memory succeeded")
	}
	if _, err := ReadWide(s, Block{}); err == nil {
		t.Error("ReadWide of a zero block succeeded")
	}
}
