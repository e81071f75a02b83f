// Package sharedmem provides the giveable shared memory that clipboard
// payloads live in once they are published.
//
// An Arena is a WebAssembly linear memory hosted by wazero. Blocks are
// carved out of it by a first-fit allocator and addressed by offset, so a
// published payload is independent of the Go slices it was built from:
//
//	arena, err := sharedmem.New(ctx, sharedmem.Config{MaxPages: 16})
//	if err != nil {
//	    return err
//	}
//	defer arena.Close(ctx)
//
//	ptr, err := arena.Alloc(6, 8)
//	err = arena.Write(ptr, []byte("hello\x00"))
//	arena.Free(ptr, 6, 8)
//
// Offset 0 is never handed out. Free only accepts pointers Alloc returned
// and ignores the rest, double frees included. ReadU16 and WriteU16 use
// host byte order.
//
// Memory grows one page (64KiB) at a time up to Config.MaxPages; past that
// Alloc fails with errors.AllocationFailed.
package sharedmem
