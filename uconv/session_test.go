package uconv

import (
	"bytes"
	"errors"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"github.com/wippyai/clipuni/codepage"
	cuerrors "github.com/wippyai/clipuni/errors"
)

func openCP(t *testing.T, cp uint32) *Session {
	t.Helper()
	spec, err := codepage.Resolve(cp)
	if err != nil {
		t.Fatalf("Resolve(%d): %v", cp, err)
	}
	s, err := Open(spec)
	if err != nil {
		t.Fatalf("Open(%s): %v", spec, err)
	}
	t.Cleanup(func() {
		if !s.closed {
			s.Close()
		}
	})
	return s
}

func printable(cp uint32) []byte {
	var b []byte
	for c := 0x20; c <= 0xFF; c++ {
		if c == 0x7F {
			continue
		}
		b = append(b, byte(c))
	}
	return b
}

func TestRoundTrip(t *testing.T) {
	for _, cp := range []uint32{437, 850, 852, 866, 1004, 1252, 819, 912} {
		t.Run(codepageName(cp), func(t *testing.T) {
			src := printable(cp)

			wide, err := openCP(t, cp).ToWide(src)
			if err != nil {
				t.Fatalf("ToWide: %v", err)
			}
			if len(wide) != len(src) {
				t.Fatalf("ToWide produced %d units for %d bytes", len(wide), len(src))
			}

			narrow, err := openCP(t, cp).ToNarrow(wide)
			if err != nil {
				t.Fatalf("ToNarrow: %v", err)
			}
			CleanSubstitutions(narrow)

			if len(narrow) != len(src) {
				t.Fatalf("round trip length %d, want %d", len(narrow), len(src))
			}
			for i := range src {
				if narrow[i] == src[i] {
					continue
				}
				// Positions without a reverse mapping come back as '?'.
				if wide[i] != Replacement || narrow[i] != Placeholder {
					t.Errorf("byte %#x -> U+%04X -> %#x", src[i], wide[i], narrow[i])
				}
			}
		})
	}
}

func codepageName(cp uint32) string {
	info, _ := codepage.Lookup(cp)
	return info.Name
}

func TestToWide_ExampleAB(t *testing.T) {
	got, err := openCP(t, 437).ToWide([]byte("AB\x00junk"))
	if err != nil {
		t.Fatal(err)
	}
	want := []uint16{0x41, 0x42}
	if !equalUnits(got, want) {
		t.Errorf("ToWide = %04X, want %04X", got, want)
	}
}

func TestToNarrow_ExampleAB(t *testing.T) {
	got, err := openCP(t, 1004).ToNarrow([]uint16{0x0041, 0x0042, 0x0000})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("AB")) {
		t.Errorf("ToNarrow = %q, want %q", got, "AB")
	}
}

func TestToNarrow_StopsAtTerminator(t *testing.T) {
	got, err := openCP(t, 850).ToNarrow([]uint16{'h', 'i', 0, 'x'})
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hi" {
		t.Errorf("ToNarrow = %q, want %q", got, "hi")
	}
}

func TestToNarrow_Unmappable(t *testing.T) {
	tests := []struct {
		name string
		cp   uint32
		in   []uint16
		want string
	}{
		{"euro in 437", 437, []uint16{'a', 0x20AC, 'b'}, "a\x1ab"},
		{"cjk in 850", 850, []uint16{0x4E2D, 0x6587}, "\x1a\x1a"},
		{"lone high surrogate", 1252, []uint16{0xD83D, 'x'}, "\x1ax"},
		{"lone low surrogate", 1252, []uint16{0xDE00}, "\x1a"},
		{"replacement char", 850, []uint16{Replacement}, "\x1a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := openCP(t, tt.cp).ToNarrow(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("ToNarrow = %q, want %q", got, tt.want)
			}
			CleanSubstitutions(got)
			if bytes.IndexByte(got, SubChar) >= 0 {
				t.Errorf("cleaned output still has 0x1A: %q", got)
			}
		})
	}
}

func TestToWide_UndefinedBytes(t *testing.T) {
	// 0x81 has no assignment in windows-1252.
	got, err := openCP(t, 1252).ToWide([]byte{'a', 0x81, 'b'})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[1] != Replacement {
		t.Errorf("ToWide = %04X, want U+FFFD in the middle", got)
	}
}

func TestDotlessI_Codepage850(t *testing.T) {
	enc := charmap.CodePage850.NewEncoder()
	b, err := enc.Bytes([]byte("ı"))
	if err != nil {
		t.Fatalf("codepage 850 has no dotless i: %v", err)
	}

	src := append([]byte("x"), b...)
	src = append(src, 'y')

	wide, err := openCP(t, 850).ToWide(src)
	if err != nil {
		t.Fatal(err)
	}
	if wide[1] != DotlessI {
		t.Fatalf("converter produced U+%04X, want U+0131", wide[1])
	}

	if n := CorrectWide(850, wide); n != 1 {
		t.Errorf("CorrectWide changed %d units, want 1", n)
	}
	for i, u := range wide {
		if u == DotlessI {
			t.Errorf("unit %d still U+0131", i)
		}
	}
	if wide[1] != Replacement {
		t.Errorf("unit 1 = U+%04X, want U+FFFD", wide[1])
	}
}

func TestCorrectWide_OtherCodepages(t *testing.T) {
	for _, cp := range []uint32{437, 852, 857, 1252, 0} {
		units := []uint16{DotlessI, 'a', DotlessI}
		if n := CorrectWide(cp, units); n != 0 {
			t.Errorf("CorrectWide(%d) changed %d units", cp, n)
		}
		if units[0] != DotlessI || units[2] != DotlessI {
			t.Errorf("CorrectWide(%d) modified units: %04X", cp, units)
		}
	}
}

func TestCleanSubstitutions(t *testing.T) {
	b := []byte("a\x1ab\x1a\x1a")
	if n := CleanSubstitutions(b); n != 3 {
		t.Errorf("CleanSubstitutions = %d, want 3", n)
	}
	if string(b) != "a?b??" {
		t.Errorf("got %q, want %q", b, "a?b??")
	}
	if n := CleanSubstitutions(nil); n != 0 {
		t.Errorf("CleanSubstitutions(nil) = %d", n)
	}
}

func TestOpen_Failures(t *testing.T) {
	tests := []struct {
		name string
		spec codepage.Spec
		code uint32
	}{
		{"unknown name", codepage.Spec{Name: "IBM-99999", Map: codepage.MapCDRA, Path: codepage.PathNo}, CodeInvalid},
		{"bad map", codepage.Spec{Name: "IBM-850", Map: "display"}, CodeBadAttr},
		{"path conversion", codepage.Spec{Name: "IBM-850", Path: "yes"}, CodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.spec)
			if err == nil {
				s.Close()
				t.Fatal("Open succeeded")
			}
			if !errors.Is(err, cuerrors.ErrSessionOpenFailed) {
				t.Errorf("err = %v, want SessionOpenFailed", err)
			}
			var ce *cuerrors.Error
			if !errors.As(err, &ce) || ce.Code != tt.code {
				t.Errorf("code = %v, want %08X", ce, tt.code)
			}
		})
	}
}

func TestOpen_IANAName(t *testing.T) {
	s, err := Open(codepage.Spec{Name: "ISO-8859-1"})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	got, err := s.ToWide([]byte{0xE9})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != 0x00E9 {
		t.Errorf("ToWide = %04X, want [00E9]", got)
	}
}

func TestToNarrow_BufferFull(t *testing.T) {
	s, err := Open(codepage.Spec{Name: "UTF-8"})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	_, err = s.ToNarrow([]uint16{0x00E9})
	var ce *cuerrors.Error
	if !errors.As(err, &ce) || ce.Kind != cuerrors.KindConversionFailed || ce.Code != CodeBufferFull {
		t.Errorf("err = %v, want ConversionFailed(BufferFull)", err)
	}
}

func TestClose(t *testing.T) {
	s := openCP(t, 850)
	if err := s.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := s.Close(); err == nil {
		t.Error("second Close should fail")
	}

	_, err := s.ToWide([]byte("a"))
	if !errors.Is(err, cuerrors.ErrConversionFailed) {
		t.Errorf("ToWide after Close = %v, want ConversionFailed", err)
	}
	_, err = s.ToNarrow([]uint16{'a'})
	if !errors.Is(err, cuerrors.ErrConversionFailed) {
		t.Errorf("ToNarrow after Close = %v, want ConversionFailed", err)
	}
}

func TestCapacities(t *testing.T) {
	if WideCapacity(10) != 41 {
		t.Errorf("WideCapacity(10) = %d", WideCapacity(10))
	}
	if NarrowCapacity(10) != 11 {
		t.Errorf("NarrowCapacity(10) = %d", NarrowCapacity(10))
	}
}

func equalUnits(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
