package clipuni

// Memory represents the shared memory that backs clipboard payloads.
// Offsets are block pointers handed out by an Allocator.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU16(offset uint32) (uint16, error)
	WriteU8(offset uint32, value uint8) error
	WriteU16(offset uint32, value uint16) error
}

// MemorySizer provides the current size of shared memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Allocator hands out giveable blocks of shared memory.
type Allocator interface {
	Alloc(size, align uint32) (uint32, error)
	Free(ptr, size, align uint32)
}

// FormatName is the registered name of the wide-text clipboard format.
const FormatName = "text/unicode"
