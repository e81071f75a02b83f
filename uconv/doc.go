// Package uconv converts text between a single-byte codepage and 16-bit
// wide units.
//
// A Session is bound to one converter spec and is meant to be used for a
// single conversion, then closed:
//
//	s, err := uconv.Open(spec)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	units, err := s.ToWide(selected)
//
// Wide output holds one unit per character; characters outside the Basic
// Multilingual Plane become U+FFFD since no surrogate pairs are produced.
// Narrow output replaces characters the codepage cannot represent with the
// substitution byte 0x1A, which CleanSubstitutions turns into '?'.
//
// # Codepage 850
//
// Some converters produce U+0131 (dotless i) for the byte that later
// revisions of codepage 850 assign to the euro sign. CorrectWide rewrites
// those units to U+FFFD when the active codepage is 850.
package uconv
