package mensural_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/RobbStarkAustria/mensural-to-mei/internal/mensural"
)

func TestDecodePiece(t *testing.T) {
	input := `{
		"staves": [
			{
				"label": "page1_system1",
				"symbols": [
					{"type": "clef", "pitch": "c-c-g"},
					{"type": "flat"},
					{"type": "mens", "pitch": "met_c"},
					{"type": "mi", "pitch": "g1"},
					{"type": "r-br"},
					{"type": "dot"},
					{"type": "bar"}
				]
			},
			{
				"label": "page1_system2",
				"symbols": [
					{"type": "custos"},
					{"type": "sharp"}
				]
			}
		]
	}`

	piece, err := mensural.DecodePiece(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodePiece: %v", err)
	}
	if len(piece) != 2 {
		t.Fatalf("expected 2 staves, got %d", len(piece))
	}
	if piece[0].Label != "page1_system1" {
		t.Fatalf("unexpected label %q", piece[0].Label)
	}

	want := []mensural.Symbol{
		mensural.Clef{Code: "c-c-g"},
		mensural.Flat{},
		mensural.Mensuration{Code: "met_c"},
		mensural.Note{Kind: "mi", Pitch: "g1"},
		mensural.Rest{Kind: "r-br"},
		mensural.Dot{},
		mensural.Barline{},
	}
	if len(piece[0].Symbols) != len(want) {
		t.Fatalf("expected %d symbols, got %d", len(want), len(piece[0].Symbols))
	}
	for i, sym := range piece[0].Symbols {
		if sym != want[i] {
			t.Fatalf("symbol %d = %#v, want %#v", i, sym, want[i])
		}
	}
	if piece[1].Symbols[0] != (mensural.Custos{}) {
		t.Fatalf("expected custos, got %#v", piece[1].Symbols[0])
	}
}

func TestDecodePieceUnknownType(t *testing.T) {
	input := `{"staves": [{"label": "p", "symbols": [{"type": "clef", "pitch": "c-f"}, {"type": "squiggle"}]}]}`
	_, err := mensural.DecodePiece(strings.NewReader(input))
	if !errors.Is(err, mensural.ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol, got %v", err)
	}
	var unknown *mensural.UnknownSymbolError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSymbolError, got %T", err)
	}
	if unknown.Staff != 0 || unknown.Index != 1 || unknown.Code != "squiggle" {
		t.Fatalf("unexpected error payload: %+v", unknown)
	}
}

func TestDecodePieceMalformedJSON(t *testing.T) {
	if _, err := mensural.DecodePiece(strings.NewReader("{")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSymbolCount(t *testing.T) {
	piece := mensural.Piece{
		{Symbols: []mensural.Symbol{mensural.Clef{Code: "c-f"}, mensural.Dot{}}},
		{Symbols: []mensural.Symbol{mensural.Barline{}}},
	}
	if got := piece.SymbolCount(); got != 3 {
		t.Fatalf("SymbolCount = %d, want 3", got)
	}
}
