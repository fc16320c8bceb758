package mensural_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/RobbStarkAustria/mensural-to-mei/internal/mensural"
)

func TestNoteDurationVocabulary(t *testing.T) {
	want := map[string]string{
		"ma":    "maxima",
		"lo":    "longa",
		"bre":   "brevis",
		"sebre": "semibrevis",
		"mi":    "minima",
		"sm":    "semiminima",
		"fu":    "fusa",
		"sf":    "semifusa",
		"br":    "brevis",
		"sb":    "semibrevis",
		"li":    "semibrevis",
	}
	for kind, wantDur := range want {
		dur, ok := mensural.NoteDuration(kind)
		if !ok {
			t.Fatalf("NoteDuration(%q) missing", kind)
		}
		if dur != wantDur {
			t.Fatalf("NoteDuration(%q) = %q, want %q", kind, dur, wantDur)
		}
	}
	if _, ok := mensural.NoteDuration("xx"); ok {
		t.Fatal("expected unknown note kind to miss")
	}
	if len(mensural.NoteKinds()) != len(want) {
		t.Fatalf("unexpected note vocabulary size: %d", len(mensural.NoteKinds()))
	}
}

func TestColoredKinds(t *testing.T) {
	for _, kind := range mensural.NoteKinds() {
		colored := mensural.NoteColored(kind)
		want := kind == "br" || kind == "sb"
		if colored != want {
			t.Fatalf("NoteColored(%q) = %v, want %v", kind, colored, want)
		}
	}
}

func TestClefTable(t *testing.T) {
	cases := map[string]struct {
		shape, line string
	}{
		"c-g":   {"G", "2"},
		"c-c-e": {"C", "1"},
		"c-c-g": {"C", "2"},
		"c-c-b": {"C", "3"},
		"c-c-d": {"C", "4"},
		"c-f-b": {"F", "3"},
		"c-f":   {"F", "4"},
	}
	for code, want := range cases {
		clef, ok := mensural.ClefFor(code)
		if !ok {
			t.Fatalf("ClefFor(%q) missing", code)
		}
		if clef.Shape != want.shape || clef.Line != want.line {
			t.Fatalf("ClefFor(%q) = %s%s, want %s%s", code, clef.Shape, clef.Line, want.shape, want.line)
		}
	}
	if len(mensural.ClefCodes()) != len(cases) {
		t.Fatalf("unexpected clef vocabulary size: %d", len(mensural.ClefCodes()))
	}
}

func TestMensurationTable(t *testing.T) {
	cases := map[string]mensural.MensurationInfo{
		"met_c":     {Sign: "C", Slash: ""},
		"al-br":     {Sign: "C", Slash: "1"},
		"met_o_cut": {Sign: "O", Slash: "1"},
	}
	for code, want := range cases {
		got, ok := mensural.MensurationFor(code)
		if !ok {
			t.Fatalf("MensurationFor(%q) missing", code)
		}
		if got != want {
			t.Fatalf("MensurationFor(%q) = %+v, want %+v", code, got, want)
		}
	}
	if _, ok := mensural.MensurationFor(mensural.ProportionCode); ok {
		t.Fatal("met_3_2 is a modifier, not a sign")
	}
}

func TestStepPositionsCoverGamut(t *testing.T) {
	steps := mensural.StepCodes()
	if len(steps) != 21 {
		t.Fatalf("expected 21 gamut steps, got %d", len(steps))
	}
	seen := make(map[int]string, len(steps))
	for _, code := range steps {
		pos, ok := mensural.StepPosition(code)
		if !ok {
			t.Fatalf("StepPosition(%q) missing", code)
		}
		if pos < 0 || pos > 20 {
			t.Fatalf("StepPosition(%q) = %d out of range", code, pos)
		}
		if prev, dup := seen[pos]; dup {
			t.Fatalf("position %d shared by %q and %q", pos, prev, code)
		}
		seen[pos] = code
	}
}

func TestUnknownSymbolError(t *testing.T) {
	err := &mensural.UnknownSymbolError{Staff: 2, Index: 7, Code: "zz"}
	if !errors.Is(err, mensural.ErrUnknownSymbol) {
		t.Fatal("UnknownSymbolError should unwrap to ErrUnknownSymbol")
	}
	msg := err.Error()
	for _, want := range []string{"zz", "staff 2", "token 7"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q missing %q", msg, want)
		}
	}
}
