package codepage

import (
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Info describes a codepage known to the conversion facility.
type Info struct {
	Encoding    encoding.Encoding
	Name        string // UCS-side canonical name, e.g. "IBM-850"
	Description string
	ID          uint32
}

var known = []Info{
	{ID: 437, Name: "IBM-437", Description: "PC United States", Encoding: charmap.CodePage437},
	{ID: 813, Name: "IBM-813", Description: "ISO 8859-7 Greek", Encoding: charmap.ISO8859_7},
	{ID: 819, Name: "IBM-819", Description: "ISO 8859-1 Latin 1", Encoding: charmap.ISO8859_1},
	{ID: 850, Name: "IBM-850", Description: "PC Latin 1", Encoding: charmap.CodePage850},
	{ID: 852, Name: "IBM-852", Description: "PC Latin 2", Encoding: charmap.CodePage852},
	{ID: 855, Name: "IBM-855", Description: "PC Cyrillic", Encoding: charmap.CodePage855},
	{ID: 858, Name: "IBM-858", Description: "PC Latin 1 with euro", Encoding: charmap.CodePage858},
	{ID: 860, Name: "IBM-860", Description: "PC Portuguese", Encoding: charmap.CodePage860},
	{ID: 862, Name: "IBM-862", Description: "PC Hebrew", Encoding: charmap.CodePage862},
	{ID: 863, Name: "IBM-863", Description: "PC Canadian French", Encoding: charmap.CodePage863},
	{ID: 865, Name: "IBM-865", Description: "PC Nordic", Encoding: charmap.CodePage865},
	{ID: 866, Name: "IBM-866", Description: "PC Russian", Encoding: charmap.CodePage866},
	{ID: 874, Name: "IBM-874", Description: "Thai", Encoding: charmap.Windows874},
	{ID: 878, Name: "IBM-878", Description: "KOI8-R", Encoding: charmap.KOI8R},
	{ID: 912, Name: "IBM-912", Description: "ISO 8859-2 Latin 2", Encoding: charmap.ISO8859_2},
	{ID: 913, Name: "IBM-913", Description: "ISO 8859-3 Latin 3", Encoding: charmap.ISO8859_3},
	{ID: 914, Name: "IBM-914", Description: "ISO 8859-4 Latin 4", Encoding: charmap.ISO8859_4},
	{ID: 915, Name: "IBM-915", Description: "ISO 8859-5 Cyrillic", Encoding: charmap.ISO8859_5},
	{ID: 916, Name: "IBM-916", Description: "ISO 8859-8 Hebrew", Encoding: charmap.ISO8859_8},
	{ID: 919, Name: "IBM-919", Description: "ISO 8859-10 Latin 6", Encoding: charmap.ISO8859_10},
	{ID: 920, Name: "IBM-920", Description: "ISO 8859-9 Turkish", Encoding: charmap.ISO8859_9},
	{ID: 923, Name: "IBM-923", Description: "ISO 8859-15 Latin 9", Encoding: charmap.ISO8859_15},
	{ID: 1004, Name: "IBM-1004", Description: "Latin 1 desktop publishing", Encoding: charmap.Windows1252},
	{ID: 1089, Name: "IBM-1089", Description: "ISO 8859-6 Arabic", Encoding: charmap.ISO8859_6},
	{ID: 1168, Name: "IBM-1168", Description: "KOI8-U", Encoding: charmap.KOI8U},
	{ID: 1250, Name: "IBM-1250", Description: "Windows Latin 2", Encoding: charmap.Windows1250},
	{ID: 1251, Name: "IBM-1251", Description: "Windows Cyrillic", Encoding: charmap.Windows1251},
	{ID: 1252, Name: "IBM-1252", Description: "Windows Latin 1", Encoding: charmap.Windows1252},
	{ID: 1253, Name: "IBM-1253", Description: "Windows Greek", Encoding: charmap.Windows1253},
	{ID: 1254, Name: "IBM-1254", Description: "Windows Turkish", Encoding: charmap.Windows1254},
	{ID: 1255, Name: "IBM-1255", Description: "Windows Hebrew", Encoding: charmap.Windows1255},
	{ID: 1256, Name: "IBM-1256", Description: "Windows Arabic", Encoding: charmap.Windows1256},
	{ID: 1257, Name: "IBM-1257", Description: "Windows Baltic", Encoding: charmap.Windows1257},
	{ID: 1258, Name: "IBM-1258", Description: "Windows Vietnamese", Encoding: charmap.Windows1258},
	{ID: 1275, Name: "IBM-1275", Description: "Apple Roman", Encoding: charmap.Macintosh},
}

var (
	byID   = make(map[uint32]int, len(known))
	byName = make(map[string]int, len(known))
)

func init() {
	sort.Slice(known, func(i, j int) bool { return known[i].ID < known[j].ID })
	for i, info := range known {
		byID[info.ID] = i
		byName[strings.ToUpper(info.Name)] = i
	}
}

// Lookup returns the table entry for a codepage identifier.
func Lookup(id uint32) (Info, bool) {
	i, ok := byID[id]
	if !ok {
		return Info{}, false
	}
	return known[i], true
}

// ByName returns the table entry for a UCS-side name. Matching ignores case.
func ByName(name string) (Info, bool) {
	i, ok := byName[strings.ToUpper(name)]
	if !ok {
		return Info{}, false
	}
	return known[i], true
}

// Known returns every supported codepage ordered by identifier.
func Known() []Info {
	out := make([]Info, len(known))
	copy(out, known)
	return out
}

// Next returns the supported codepage following id, wrapping around.
// Unknown ids yield the first entry.
func Next(id uint32) uint32 {
	i, ok := byID[id]
	if !ok {
		return known[0].ID
	}
	return known[(i+1)%len(known)].ID
}
