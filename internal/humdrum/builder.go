package humdrum

import "strings"

const (
	declaration   = "**mens"
	keyFlatSigil  = "*k[b-]"
	doubleBarline = "=||"
	terminator    = "*-"
	custosSigil   = "*custos"

	custosLayout = "!!LO:LB:g=z"
	custosBreak  = "=-"
)

// Builder accumulates the flat encoding for one document. One builder per
// document boundary; the buffer opens with the **mens declaration.
type Builder struct {
	lines []string

	// mensurLine indexes the active mensuration line so a proportion
	// modifier can rewrite it even after further lines were appended.
	mensurLine int
}

// NewBuilder seeds a buffer with the opening declaration.
func NewBuilder() *Builder {
	return &Builder{
		lines:      []string{declaration},
		mensurLine: -1,
	}
}

func (b *Builder) append(line string) {
	b.lines = append(b.lines, line)
}

// Clef appends the tandem clef line. Reports false for codes outside the
// clef vocabulary.
func (b *Builder) Clef(code string) bool {
	sigil, ok := ClefSigil(code)
	if !ok {
		return false
	}
	b.append(sigil)
	return true
}

// KeyFlat appends the one-flat key signature line.
func (b *Builder) KeyFlat() {
	b.append(keyFlatSigil)
}

// Mensur appends a mensuration line; a cut sign carries a pipe.
func (b *Builder) Mensur(sign, slash string) {
	cut := ""
	if slash != "" {
		cut = "|"
	}
	b.append("*met(" + sign + cut + ")")
	b.mensurLine = len(b.lines) - 1
}

// Proportion rewrites the trailing characters of the active mensuration
// line to carry the 3/2 proportion. Reports false when no mensuration line
// exists in this document.
func (b *Builder) Proportion() bool {
	if b.mensurLine < 0 {
		return false
	}
	line := b.lines[b.mensurLine]
	b.lines[b.mensurLine] = strings.TrimSuffix(line, ")") + "3/2)"
	return true
}

// Dot merges an augmentation dot into the most recently appended line by
// inserting the marker after its first character.
func (b *Builder) Dot() {
	last := len(b.lines) - 1
	line := b.lines[last]
	if len(line) < 1 {
		return
	}
	b.lines[last] = line[:1] + ":" + line[1:]
}

// Rest appends a rest line.
func (b *Builder) Rest(sigil string) {
	b.append(sigil)
}

// Note appends a note line: duration sigil plus register-coded pitch.
func (b *Builder) Note(sigil string, oct int, pname string) {
	b.append(sigil + PitchSuffix(oct, pname))
}

// LigatureOpen appends the opening note of a ligature pair.
func (b *Builder) LigatureOpen(oct int, pname string) {
	b.append("[s" + PitchSuffix(oct, pname))
}

// LigatureClose appends the closing note, forced to semibrevis, with the
// closing bracket suffix.
func (b *Builder) LigatureClose(oct int, pname string) {
	b.append("s" + PitchSuffix(oct, pname) + "]")
}

// Sharp appends the sharp suffix to the last line, consuming the pending
// accidental.
func (b *Builder) Sharp() {
	b.suffixLast("#")
}

// FlatAccidental appends the flat suffix to the last line.
func (b *Builder) FlatAccidental() {
	b.suffixLast("-")
}

func (b *Builder) suffixLast(suffix string) {
	last := len(b.lines) - 1
	b.lines[last] += suffix
}

// Custos appends the cue line for the next system plus its fixed layout
// annotation and break. The pitch suffix is present only when the next
// staff supplied one.
func (b *Builder) Custos(oct int, pname string, hasPitch bool) {
	line := custosSigil
	if hasPitch {
		line += PitchSuffix(oct, pname)
	}
	b.append(line)
	b.append(custosLayout)
	b.append(custosBreak)
}

// Terminate closes the document buffer with the double barline and spine
// terminator.
func (b *Builder) Terminate() {
	b.append(doubleBarline)
	b.append(terminator)
}

// Lines returns the accumulated buffer.
func (b *Builder) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}
