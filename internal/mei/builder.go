package mei

import (
	"strconv"
	"strings"
	"time"

	"github.com/RobbStarkAustria/mensural-to-mei/internal/ids"
)

const (
	meiNamespace = "http://www.music-encoding.org/ns/mei"
	meiVersion   = "5.0"

	// GeneratorName is recorded in the encoding description of every
	// document header.
	GeneratorName = "mensural2mei"
)

// Document is one self-contained MEI output unit: header, mensural-white
// scaffold, and the layer that musical elements are appended into. A fresh
// document is created at piece start and after every barline split.
type Document struct {
	alloc *ids.Allocator

	root     *Element
	clef     *Element
	keySig   *Element
	layer    *Element
	mensur   *Element
	ligature *Element

	elements int
}

// NewDocument builds the document skeleton: header with generator info,
// score scaffold, and an empty layer. The clef and key signature elements
// exist in the staff definition from the start and are populated via
// SetClef / SetKeySignature.
func NewDocument(alloc *ids.Allocator, version string, now time.Time) *Document {
	d := &Document{alloc: alloc}

	d.root = newElement("mei")
	d.root.set("xmlns", meiNamespace)
	d.root.set("meiversion", meiVersion)

	d.buildHeader(version, now)
	d.buildScaffold()
	return d
}

func (d *Document) buildHeader(version string, now time.Time) {
	head := d.root.child("meiHead")
	fileDesc := head.child("fileDesc")
	titleStmt := fileDesc.child("titleStmt")
	titleStmt.child("title")
	fileDesc.child("pubStmt")

	encodingDesc := head.child("encodingDesc")
	appInfo := encodingDesc.child("appInfo")
	application := appInfo.child("application")
	application.set("isodate", now.Format(time.RFC3339))
	application.set("version", version)
	name := application.child("name")
	name.text = GeneratorName
}

func (d *Document) buildScaffold() {
	music := d.root.child("music")
	body := music.child("body")
	mdiv := body.child("mdiv")
	d.identify(mdiv, "mdiv")

	score := mdiv.child("score")
	d.identify(score, "score")

	scoreDef := score.child("scoreDef")
	d.identify(scoreDef, "scoreDef")
	staffGrp := scoreDef.child("staffGrp")
	d.identify(staffGrp, "staffGrp")
	staffDef := staffGrp.child("staffDef")
	d.identify(staffDef, "staffDef")
	staffDef.set("n", "1")
	staffDef.set("notationtype", "mensural.white")
	staffDef.set("lines", "5")
	d.clef = staffDef.child("clef")
	d.keySig = staffDef.child("keySig")

	section := score.child("section")
	d.identify(section, "section")

	staff := section.child("staff")
	d.identify(staff, "staff")
	staff.set("n", "1")

	d.layer = staff.child("layer")
	d.identify(d.layer, "layer")
	d.layer.set("n", "1")
}

// identify assigns the element a run-unique xml:id with a kind prefix.
func (d *Document) identify(e *Element, kind string) {
	e.set("xml:id", kind+"-"+d.alloc.Next())
}

// SetClef populates the staff definition clef.
func (d *Document) SetClef(shape, line string) {
	d.identify(d.clef, "clef")
	d.clef.set("shape", shape)
	d.clef.set("line", line)
}

// SetKeySignature populates the staff definition key signature, e.g. "1f".
func (d *Document) SetKeySignature(sig string) {
	d.identify(d.keySig, "keySig")
	d.keySig.set("sig", sig)
}

// AppendMensur appends a mensuration sign. Slash is omitted when empty.
// The sign stays addressable for a later proportion modifier.
func (d *Document) AppendMensur(sign, slash string) {
	mensur := d.layer.child("mensur")
	d.identify(mensur, "mens")
	mensur.set("prolatio", "2")
	mensur.set("sign", sign)
	if slash != "" {
		mensur.set("slash", slash)
	}
	d.mensur = mensur
	d.elements++
}

// SetProportion mutates the most recently appended mensuration instead of
// creating a new element. Reports false when no mensuration exists in this
// document.
func (d *Document) SetProportion(num, numbase string) bool {
	if d.mensur == nil {
		return false
	}
	d.mensur.set("num", num)
	d.mensur.set("numbase", numbase)
	return true
}

// AppendDot appends an augmentation dot.
func (d *Document) AppendDot() {
	dot := d.layer.child("dot")
	d.identify(dot, "dot")
	d.elements++
}

// AppendRest appends a rest with the given duration name.
func (d *Document) AppendRest(dur string) {
	rest := d.layer.child("rest")
	d.identify(rest, "rest")
	rest.set("dur", dur)
	d.elements++
}

// NoteAttrs carries the attributes of one note. Accid and Colored are
// omitted from the output when unset.
type NoteAttrs struct {
	Dur     string
	Oct     int
	Pname   string
	Accid   string
	Colored bool
}

// AppendNote appends a note, into the open ligature when one exists.
func (d *Document) AppendNote(n NoteAttrs) {
	note := newElement("note")
	d.identify(note, "note")
	note.set("dur", n.Dur)
	note.set("oct", strconv.Itoa(n.Oct))
	note.set("pname", n.Pname)
	if n.Colored {
		note.set("colored", "true")
	}
	if n.Accid != "" {
		note.set("accid", n.Accid)
	}

	if d.ligature != nil {
		d.ligature.adopt(note)
	} else {
		d.layer.adopt(note)
	}
	d.elements++
}

// BeginLigature opens a recta ligature; subsequent notes land inside it
// until CloseLigature.
func (d *Document) BeginLigature() {
	lig := d.layer.child("ligature")
	d.identify(lig, "ligature")
	lig.set("form", "recta")
	d.ligature = lig
	d.elements++
}

// CloseLigature ends the open ligature, if any.
func (d *Document) CloseLigature() {
	d.ligature = nil
}

// AppendBarLine appends a visible double barline.
func (d *Document) AppendBarLine() {
	bar := d.layer.child("barLine")
	d.identify(bar, "barline")
	bar.set("form", "dbl")
	d.elements++
}

// AppendInvisibleBarLine appends the invisible barline used when a staff
// ends without a barline token mid-document.
func (d *Document) AppendInvisibleBarLine() {
	bar := d.layer.child("barLine")
	d.identify(bar, "barline")
	bar.set("visible", "false")
	d.elements++
}

// AppendCustos appends a custos; pitch attributes are set only when the
// next staff supplied a cue pitch.
func (d *Document) AppendCustos(oct int, pname string, hasPitch bool) {
	custos := d.layer.child("custos")
	d.identify(custos, "custos")
	if hasPitch {
		custos.set("oct", strconv.Itoa(oct))
		custos.set("pname", pname)
	}
	d.elements++
}

// ElementCount reports how many musical elements were appended to the
// layer (scaffold elements excluded).
func (d *Document) ElementCount() int {
	return d.elements
}

// Bytes serializes the document as indented XML.
func (d *Document) Bytes() []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	d.root.write(&b, 0)
	return []byte(b.String())
}
