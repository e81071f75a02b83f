package uconv

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/wippyai/clipuni/codepage"
	"github.com/wippyai/clipuni/errors"
)

// Session is a converter bound to one codepage spec. It is not safe for
// concurrent use and must be closed exactly once.
type Session struct {
	enc    encoding.Encoding
	toUCS  *encoding.Decoder
	fromUC transform.Transformer
	spec   codepage.Spec
	closed bool
}

// Open creates a session for spec. The spec name is looked up in the
// codepage table first and then among IANA charset names.
func Open(spec codepage.Spec) (*Session, error) {
	switch spec.Map {
	case "", codepage.MapCDRA:
	default:
		return nil, errors.SessionOpenFailed(spec.String(), CodeBadAttr, nil)
	}
	switch spec.Path {
	case "", codepage.PathNo:
	default:
		return nil, errors.SessionOpenFailed(spec.String(), CodeUnsupported, nil)
	}

	enc, err := lookupEncoding(spec.Name)
	if err != nil {
		return nil, errors.SessionOpenFailed(spec.String(), CodeInvalid, err)
	}

	return &Session{
		spec:   spec,
		enc:    enc,
		toUCS:  enc.NewDecoder(),
		fromUC: encoding.ReplaceUnsupported(enc.NewEncoder()),
	}, nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	if info, ok := codepage.ByName(name); ok {
		return info.Encoding, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, errors.NotFound(errors.PhaseSession, "converter", name)
	}
	return enc, nil
}

// Spec returns the spec the session was opened with.
func (s *Session) Spec() codepage.Spec {
	return s.spec
}

// ToWide converts NUL-terminated narrow text to wide units. Input past the
// first NUL is ignored; the result carries no terminator.
func (s *Session) ToWide(narrow []byte) ([]uint16, error) {
	if s.closed {
		return nil, errors.ConversionFailed("to wide", CodeBadHandle, errors.Closed(errors.PhaseConvert, "session"))
	}
	narrow = cstring(narrow)

	decoded, err := s.toUCS.Bytes(narrow)
	if err != nil {
		return nil, errors.ConversionFailed("to wide", CodeIllegalSequence, err)
	}

	limit := WideCapacity(len(narrow)) - 1
	out := make([]uint16, 0, len(narrow))
	for len(decoded) > 0 {
		r, size := utf8.DecodeRune(decoded)
		decoded = decoded[size:]
		if r > 0xFFFF {
			r = rune(Replacement)
		}
		if len(out) == limit {
			return nil, errors.ConversionFailed("to wide", CodeBufferFull, nil)
		}
		out = append(out, uint16(r))
	}
	return out, nil
}

// ToNarrow converts NUL-terminated wide units to narrow text in the
// session's codepage. Units past the first NUL are ignored; unmappable
// characters become SubChar; the result carries no terminator.
func (s *Session) ToNarrow(wide []uint16) ([]byte, error) {
	if s.closed {
		return nil, errors.ConversionFailed("to narrow", CodeBadHandle, errors.Closed(errors.PhaseConvert, "session"))
	}
	wide = wstring(wide)

	buf := make([]byte, 0, len(wide)*3)
	for _, u := range wide {
		r := rune(u)
		if u >= 0xD800 && u <= 0xDFFF {
			r = rune(Replacement)
		}
		buf = utf8.AppendRune(buf, r)
	}

	out, _, err := transform.Bytes(s.fromUC, buf)
	if err != nil {
		return nil, errors.ConversionFailed("to narrow", CodeIllegalSequence, err)
	}
	if len(out) > NarrowCapacity(len(wide))-1 {
		return nil, errors.ConversionFailed("to narrow", CodeBufferFull, nil)
	}
	return out, nil
}

// Close releases the converter. A second Close reports CodeBadHandle.
func (s *Session) Close() error {
	if s.closed {
		return errors.New(errors.PhaseSession, errors.KindClosed).
			Code(CodeBadHandle).
			Detail("converter %q already closed", s.spec.String()).
			Build()
	}
	s.closed = true
	s.toUCS = nil
	s.fromUC = nil
	return nil
}

func cstring(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}

func wstring(w []uint16) []uint16 {
	for i, u := range w {
		if u == 0 {
			return w[:i]
		}
	}
	return w
}
