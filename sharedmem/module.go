package sharedmem

// memoryModule builds a core module with no code that defines and exports
// a single linear memory named "memory".
func memoryModule(minPages, maxPages uint32) []byte {
	limits := []byte{0x01}
	limits = appendULEB(limits, minPages)
	limits = appendULEB(limits, maxPages)

	memSec := append([]byte{0x01}, limits...)

	name := "memory"
	expSec := []byte{0x01}
	expSec = appendULEB(expSec, uint32(len(name)))
	expSec = append(expSec, name...)
	expSec = append(expSec, 0x02, 0x00) // memory index 0

	bin := []byte{
		0x00, 0x61, 0x73, 0x6d, // magic
		0x01, 0x00, 0x00, 0x00, // version
	}
	bin = appendSection(bin, 0x05, memSec)
	bin = appendSection(bin, 0x07, expSec)
	return bin
}

func appendSection(dst []byte, id byte, body []byte) []byte {
	dst = append(dst, id)
	dst = appendULEB(dst, uint32(len(body)))
	return append(dst, body...)
}

func appendULEB(dst []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			dst = append(dst, b|0x80)
			continue
		}
		return append(dst, b)
	}
}
