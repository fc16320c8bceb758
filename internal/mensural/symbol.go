package mensural

// Symbol is one recognized notation token. The variant set is closed;
// consumers dispatch with a type switch. Symbols are immutable once decoded.
type Symbol interface {
	symbol()
}

// Clef carries the detected clef code, e.g. "c-c-g" for a C clef on line 2.
type Clef struct {
	Code string
}

// Flat is either the one-flat key signature (directly after the governing
// clef) or a pending accidental for the next note.
type Flat struct{}

// Sharp is a pending accidental for the next note.
type Sharp struct{}

// Mensuration carries a mensuration sign code, e.g. "met_c". The code
// "met_3_2" is a proportion modifier for the previous mensuration rather
// than a sign of its own.
type Mensuration struct {
	Code string
}

// Dot is an augmentation dot attached to the preceding symbol.
type Dot struct{}

// Rest carries a rest kind, e.g. "r-br".
type Rest struct {
	Kind string
}

// Note carries a note kind (duration class, e.g. "mi") and a step code
// (staff position relative to the two-octave gamut, e.g. "g1").
type Note struct {
	Kind  string
	Pitch string
}

// Barline is a double barline that finalizes the current document.
type Barline struct{}

// Custos is the end-of-system cue for the next system's first note.
type Custos struct{}

func (Clef) symbol()        {}
func (Flat) symbol()        {}
func (Sharp) symbol()       {}
func (Mensuration) symbol() {}
func (Dot) symbol()         {}
func (Rest) symbol()        {}
func (Note) symbol()        {}
func (Barline) symbol()     {}
func (Custos) symbol()      {}

// Staff is one system of notation in reading order. Label identifies the
// originating page/system and drives output file naming.
type Staff struct {
	Label   string
	Symbols []Symbol
}

// Piece is the ordered staves of one piece. Order is reading order.
type Piece []Staff

// SymbolCount returns the total number of symbols across all staves.
func (p Piece) SymbolCount() int {
	total := 0
	for _, staff := range p {
		total += len(staff.Symbols)
	}
	return total
}
