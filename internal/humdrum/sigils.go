package humdrum

import "strings"

var clefSigils = map[string]string{
	"c-c-g": "*clefC2",
	"c-c-e": "*clefC1",
	"c-c-b": "*clefC3",
	"c-c-d": "*clefC4",
	"c-g":   "*clefG2",
	"c-f-b": "*clefF3",
	"c-f":   "*clefF4",
}

var noteSigils = map[string]string{
	"ma":    "X",
	"lo":    "L",
	"bre":   "S",
	"sebre": "s",
	"mi":    "M",
	"sm":    "m",
	"fu":    "U",
	"sf":    "u",
	"br":    "S~",
	"sb":    "s~",
	"li":    "[s",
}

var restSigils = map[string]string{
	"r-lo": "Lr",
	"r-br": "Sr",
	"r-sb": "sr",
	"r-mi": "Mr",
	"r-sm": "mr",
	"r-fu": "Ur",
	"r-se": "ur",
}

// ClefSigil maps a clef code to its tandem interpretation line.
func ClefSigil(code string) (string, bool) {
	sigil, ok := clefSigils[code]
	return sigil, ok
}

// NoteSigil maps a note kind to its duration sigil.
func NoteSigil(kind string) (string, bool) {
	sigil, ok := noteSigils[kind]
	return sigil, ok
}

// RestSigil maps a rest kind to its duration sigil.
func RestSigil(kind string) (string, bool) {
	sigil, ok := restSigils[kind]
	return sigil, ok
}

// PitchSuffix encodes octave and letter in the register convention of the
// flat format: letter case and doubling carry the octave instead of a
// numeral. Octave 2 doubles the uppercase letter, 3 is single uppercase,
// 4 single lowercase, 5 doubled lowercase.
func PitchSuffix(oct int, pname string) string {
	upper := strings.ToUpper(pname)
	switch oct {
	case 2:
		return upper + upper
	case 3:
		return upper
	case 4:
		return pname
	case 5:
		return pname + pname
	}
	return ""
}
