package uconv

// CorrectWide rewrites every U+0131 to U+FFFD when cp is 850 and reports
// how many units changed. Other codepages are left alone.
func CorrectWide(cp uint32, units []uint16) int {
	if cp != CodepageDotlessI {
		return 0
	}
	n := 0
	for i, u := range units {
		if u == DotlessI {
			units[i] = Replacement
			n++
		}
	}
	return n
}

// CleanSubstitutions rewrites every substitution byte 0x1A to '?' and
// reports how many bytes changed.
func CleanSubstitutions(narrow []byte) int {
	n := 0
	for i, c := range narrow {
		if c == SubChar {
			narrow[i] = Placeholder
			n++
		}
	}
	return n
}
