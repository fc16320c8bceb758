package mensural

// Pitch is a resolved diatonic pitch: MEI octave number plus letter name.
type Pitch struct {
	Oct   int
	Pname string
}

// ResolveInitialClef finds the clef governing a piece. The first token of
// the first staff wins; otherwise the first subsequent staff (excluding the
// very last) whose first token is a clef. Returns the index of the staff
// the clef was found on, for key detection.
func ResolveInitialClef(piece Piece) (int, Clef, error) {
	if len(piece) > 0 && len(piece[0].Symbols) > 0 {
		if clef, ok := piece[0].Symbols[0].(Clef); ok {
			return 0, clef, nil
		}
	}
	for i := 1; i < len(piece)-1; i++ {
		if len(piece[i].Symbols) == 0 {
			continue
		}
		if clef, ok := piece[i].Symbols[0].(Clef); ok {
			return i, clef, nil
		}
	}
	return 0, Clef{}, ErrNoClef
}

// InitialKeyFlat reports whether the token immediately after the governing
// clef is a flat, which makes the piece's key signature one-flat. The key
// is derived exactly once, from the staff the clef was resolved on.
func InitialKeyFlat(clefStaff Staff) bool {
	if len(clefStaff.Symbols) < 2 {
		return false
	}
	_, ok := clefStaff.Symbols[1].(Flat)
	return ok
}

// PitchFor resolves a step code against a clef. The letter cycles through
// c..b with period 7; the octave starts at 4 and shifts down one for steps
// up to seven below the clef line, down two for up to fourteen below, and
// up one for steps more than six above.
func PitchFor(clef ClefInfo, stepCode string) (Pitch, bool) {
	step, ok := StepPosition(stepCode)
	if !ok {
		return Pitch{}, false
	}

	rel := step - clef.RefStep
	oct := 4
	switch {
	case rel >= -7 && rel < 0:
		oct--
	case rel > 6:
		oct++
	case rel >= -14 && rel < -7:
		oct -= 2
	}

	idx := rel % 7
	if idx < 0 {
		idx += 7
	}
	return Pitch{Oct: oct, Pname: letters[idx]}, true
}
