package uconv

// Status codes reported in SessionOpenFailed and ConversionFailed errors.
const (
	CodeIllegalSequence uint32 = 0x00020402
	CodeBadHandle       uint32 = 0x00020408
	CodeInvalid         uint32 = 0x0002040E
	CodeBufferFull      uint32 = 0x00020412
	CodeUnsupported     uint32 = 0x00020414
	CodeBadAttr         uint32 = 0x00020415
)

// Characters involved in the codepage fix-ups.
const (
	DotlessI    uint16 = 0x0131
	Replacement uint16 = 0xFFFD
	SubChar     byte   = 0x1A
	Placeholder byte   = '?'
)

// CodepageDotlessI is the codepage whose converters emit U+0131 in place
// of the euro sign.
const CodepageDotlessI uint32 = 850

// WideCapacity is the unit capacity of a ToWide output buffer for n input
// bytes, terminator included.
func WideCapacity(n int) int { return 4*n + 1 }

// NarrowCapacity is the byte capacity of a ToNarrow output buffer for n
// input units, terminator included.
func NarrowCapacity(n int) int { return n + 1 }
