package mensural

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoClef reports that no clef exists anywhere in a piece. Conversion
// cannot assign pitches without one, so the whole run aborts before any
// output is written.
var ErrNoClef = errors.New("no clef found in piece")

// ErrUnknownSymbol marks symbol or pitch codes outside the fixed lexicon.
// These are upstream contract violations, never silently defaulted.
var ErrUnknownSymbol = errors.New("unknown symbol")

// UnknownSymbolError pinpoints the offending token.
type UnknownSymbolError struct {
	Staff int
	Index int
	Code  string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %q at staff %d, token %d", e.Code, e.Staff, e.Index)
}

func (e *UnknownSymbolError) Unwrap() error { return ErrUnknownSymbol }

// LigatureKind opens a two-note ligature; the following note closes it and
// is forced to semibrevis duration.
const LigatureKind = "li"

// ProportionCode mutates the proportion of the most recent mensuration
// instead of introducing a new sign.
const ProportionCode = "met_3_2"

var noteDurations = map[string]string{
	"ma":         "maxima",
	"lo":         "longa",
	"bre":        "brevis",
	"sebre":      "semibrevis",
	"mi":         "minima",
	"sm":         "semiminima",
	"fu":         "fusa",
	"sf":         "semifusa",
	"br":         "brevis",
	"sb":         "semibrevis",
	LigatureKind: "semibrevis",
}

var restDurations = map[string]string{
	"r-lo": "longa",
	"r-br": "brevis",
	"r-sb": "semibrevis",
	"r-mi": "minima",
	"r-sm": "semiminima",
	"r-fu": "fusa",
	"r-se": "semifusa",
}

// ClefInfo describes a clef: its drawn shape and staff line plus the gamut
// step sitting on the clef line, the anchor for pitch resolution.
type ClefInfo struct {
	Code    string
	Shape   string
	Line    string
	RefStep int
}

var clefs = map[string]ClefInfo{
	"c-g":   {Code: "c-g", Shape: "G", Line: "2", RefStep: 7},    // c1
	"c-c-e": {Code: "c-c-e", Shape: "C", Line: "1", RefStep: 9},  // e1
	"c-c-g": {Code: "c-c-g", Shape: "C", Line: "2", RefStep: 11}, // g1
	"c-c-b": {Code: "c-c-b", Shape: "C", Line: "3", RefStep: 13}, // b1
	"c-c-d": {Code: "c-c-d", Shape: "C", Line: "4", RefStep: 15}, // d2
	"c-f-b": {Code: "c-f-b", Shape: "F", Line: "3", RefStep: 17}, // f2
	"c-f":   {Code: "c-f", Shape: "F", Line: "4", RefStep: 19},   // a2
}

// MensurationInfo is the MEI rendering of a mensuration sign. Slash is "1"
// when the sign is cut, empty otherwise.
type MensurationInfo struct {
	Sign  string
	Slash string
}

var mensurations = map[string]MensurationInfo{
	"met_c":     {Sign: "C"},
	"al-br":     {Sign: "C", Slash: "1"},
	"met_o_cut": {Sign: "O", Slash: "1"},
}

// stepPositions is the fixed 21-step gamut, c0 through b2, seven diatonic
// steps per octave.
var stepPositions = map[string]int{
	"c0": 0, "d0": 1, "e0": 2, "f0": 3, "g0": 4, "a0": 5, "b0": 6,
	"c1": 7, "d1": 8, "e1": 9, "f1": 10, "g1": 11, "a1": 12, "b1": 13,
	"c2": 14, "d2": 15, "e2": 16, "f2": 17, "g2": 18, "a2": 19, "b2": 20,
}

var letters = [7]string{"c", "d", "e", "f", "g", "a", "b"}

// NoteDuration maps a note kind to its duration name.
func NoteDuration(kind string) (string, bool) {
	dur, ok := noteDurations[kind]
	return dur, ok
}

// NoteColored reports whether the kind is drawn colored (blackened brevis
// or semibrevis).
func NoteColored(kind string) bool {
	return kind == "br" || kind == "sb"
}

// RestDuration maps a rest kind to its duration name.
func RestDuration(kind string) (string, bool) {
	dur, ok := restDurations[kind]
	return dur, ok
}

// ClefFor maps a clef code to its shape, line and reference step.
func ClefFor(code string) (ClefInfo, bool) {
	clef, ok := clefs[code]
	return clef, ok
}

// MensurationFor maps a mensuration code to its sign and slash.
func MensurationFor(code string) (MensurationInfo, bool) {
	m, ok := mensurations[code]
	return m, ok
}

// StepPosition maps a step code to its gamut position.
func StepPosition(code string) (int, bool) {
	pos, ok := stepPositions[code]
	return pos, ok
}

// NoteKinds returns the note vocabulary in sorted order.
func NoteKinds() []string { return sortedKeys(noteDurations) }

// RestKinds returns the rest vocabulary in sorted order.
func RestKinds() []string { return sortedKeys(restDurations) }

// ClefCodes returns the clef vocabulary in sorted order.
func ClefCodes() []string {
	codes := make([]string, 0, len(clefs))
	for code := range clefs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// StepCodes returns the gamut vocabulary in sorted order.
func StepCodes() []string {
	codes := make([]string, 0, len(stepPositions))
	for code := range stepPositions {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
