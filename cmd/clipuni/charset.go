package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/wippyai/clipuni/codepage"
)

// charset maps the bytes of one codepage to the runes the terminal shows
// and back.
type charset struct {
	bytes map[rune]byte
	name  string
	glyph [256]rune
	cp    uint32
	known bool
}

func newCharset(cp uint32) *charset {
	cs := &charset{cp: cp, bytes: make(map[rune]byte, 256)}
	info, ok := codepage.Lookup(cp)
	cs.known = ok
	cs.name = fmt.Sprintf("codepage %d", cp)
	if ok {
		cs.name = fmt.Sprintf("%s (%s)", info.Name, info.Description)
	}

	for i := 0; i < 256; i++ {
		r := utf8.RuneError
		if i < 0x80 {
			r = rune(i)
		}
		if ok {
			if out, err := info.Encoding.NewDecoder().Bytes([]byte{byte(i)}); err == nil {
				r, _ = utf8.DecodeRune(out)
			}
		}
		cs.glyph[i] = r
		if r == utf8.RuneError || i < 0x20 || i == 0x7F {
			continue
		}
		if _, dup := cs.bytes[r]; !dup {
			cs.bytes[r] = byte(i)
		}
	}
	return cs
}

// encode returns the byte for r, '?' when the codepage lacks it.
func (cs *charset) encode(r rune) byte {
	if b, ok := cs.bytes[r]; ok {
		return b
	}
	return '?'
}

func (cs *charset) encodeRunes(rs []rune) []byte {
	out := make([]byte, len(rs))
	for i, r := range rs {
		out[i] = cs.encode(r)
	}
	return out
}

// display returns the rune shown for b. Control and undefined bytes show
// as a middle dot.
func (cs *charset) display(b byte) rune {
	r := cs.glyph[b]
	if b < 0x20 || b == 0x7F || r == utf8.RuneError || r < 0x20 {
		return '·'
	}
	return r
}
