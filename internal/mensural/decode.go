package mensural

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// rawSymbol mirrors one detection entry as the upstream classification
// stages emit it: a type tag plus an optional pitch/clef/mensuration code.
type rawSymbol struct {
	Type  string `json:"type"`
	Pitch string `json:"pitch,omitempty"`
}

type rawStaff struct {
	Label   string      `json:"label"`
	Symbols []rawSymbol `json:"symbols"`
}

type rawPiece struct {
	Staves []rawStaff `json:"staves"`
}

// DecodePiece reads a detection JSON document into a Piece. Symbol types
// outside the fixed vocabulary surface as an UnknownSymbolError carrying
// the staff and token position.
func DecodePiece(r io.Reader) (Piece, error) {
	var raw rawPiece
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode detections: %w", err)
	}

	piece := make(Piece, 0, len(raw.Staves))
	for staffIdx, staff := range raw.Staves {
		symbols := make([]Symbol, 0, len(staff.Symbols))
		for tokenIdx, entry := range staff.Symbols {
			symbol, ok := symbolFromDetection(entry)
			if !ok {
				return nil, &UnknownSymbolError{Staff: staffIdx, Index: tokenIdx, Code: entry.Type}
			}
			symbols = append(symbols, symbol)
		}
		piece = append(piece, Staff{Label: staff.Label, Symbols: symbols})
	}
	return piece, nil
}

// LoadPiece decodes a detection JSON file from disk.
func LoadPiece(path string) (Piece, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open detections: %w", err)
	}
	defer file.Close()
	return DecodePiece(file)
}

// symbolFromDetection maps a detection entry to its symbol variant. Note
// and rest kinds appear directly as the type tag, matching the classifier
// output.
func symbolFromDetection(entry rawSymbol) (Symbol, bool) {
	switch entry.Type {
	case "clef":
		return Clef{Code: entry.Pitch}, true
	case "flat":
		return Flat{}, true
	case "sharp":
		return Sharp{}, true
	case "mens":
		return Mensuration{Code: entry.Pitch}, true
	case "dot":
		return Dot{}, true
	case "bar":
		return Barline{}, true
	case "custos":
		return Custos{}, true
	}
	if _, ok := restDurations[entry.Type]; ok {
		return Rest{Kind: entry.Type}, true
	}
	if _, ok := noteDurations[entry.Type]; ok {
		return Note{Kind: entry.Type, Pitch: entry.Pitch}, true
	}
	return nil, false
}
