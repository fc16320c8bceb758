package convert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/RobbStarkAustria/mensural-to-mei/internal/humdrum"
	"github.com/RobbStarkAustria/mensural-to-mei/internal/ids"
	"github.com/RobbStarkAustria/mensural-to-mei/internal/mei"
	"github.com/RobbStarkAustria/mensural-to-mei/internal/mensural"
)

// Sink receives each finalized document. The flat lines are nil when the
// flat encoding was not requested for the run.
type Sink interface {
	Finalize(ctx context.Context, label string, doc *mei.Document, flat []string) error
}

// Options configures a conversion run.
type Options struct {
	// Humdrum enables the flat **mens encoding alongside each document.
	Humdrum bool
	// GeneratorVersion is recorded in every document header.
	GeneratorVersion string
	// Now overrides the header timestamp source. Nil means time.Now.
	Now func() time.Time
}

// Converter transduces pieces into finalized documents. One Converter may
// convert several pieces; each Convert call is an isolated run over one
// piece with its own ID pool and document state.
type Converter struct {
	logger *slog.Logger
	sink   Sink
	opts   Options
	runID  string
}

// New creates a converter with a fresh run ID.
func New(logger *slog.Logger, sink Sink, opts Options) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.NewString()
	return &Converter{
		logger: logger.With("component", "convert", "run_id", runID),
		sink:   sink,
		opts:   opts,
		runID:  runID,
	}
}

// RunID returns the identifier shared by all documents of this converter.
func (c *Converter) RunID() string { return c.runID }

// Convert performs one pass over the piece, handing every finalized
// document to the sink. On ErrNoClef nothing is handed over at all.
func (c *Converter) Convert(ctx context.Context, piece mensural.Piece) error {
	clefStaff, clefToken, err := mensural.ResolveInitialClef(piece)
	if err != nil {
		return err
	}
	clef, ok := mensural.ClefFor(clefToken.Code)
	if !ok {
		return &mensural.UnknownSymbolError{Staff: clefStaff, Index: 0, Code: clefToken.Code}
	}

	now := time.Now()
	if c.opts.Now != nil {
		now = c.opts.Now()
	}

	r := &run{
		conv:    c,
		piece:   piece,
		alloc:   ids.NewAllocator(piece.SymbolCount()*2 + (len(piece)+1)*12),
		now:     now,
		clef:    clef,
		keyFlat: mensural.InitialKeyFlat(piece[clefStaff]),
	}
	r.openDocument()

	for staffIdx, staff := range piece {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.transduceStaff(ctx, staffIdx, staff); err != nil {
			return err
		}
	}

	if r.dirty {
		r.flat.Terminate()
		if err := r.finalize(ctx, piece[len(piece)-1].Label); err != nil {
			return err
		}
	}
	return nil
}

// run is the state of one conversion pass. Clef and key persist across
// document splits; everything else resets.
type run struct {
	conv  *Converter
	piece mensural.Piece
	alloc *ids.Allocator
	now   time.Time

	clef    mensural.ClefInfo
	keyFlat bool

	doc  *mei.Document
	flat *humdrum.Builder

	sharpPending bool
	flatPending  bool
	ligatureOpen bool
	dirty        bool
}

// openDocument starts a fresh document carrying only clef and key forward.
func (r *run) openDocument() {
	r.doc = mei.NewDocument(r.alloc, r.conv.opts.GeneratorVersion, r.now)
	r.doc.SetClef(r.clef.Shape, r.clef.Line)
	r.flat = humdrum.NewBuilder()
	r.flat.Clef(r.clef.Code)
	if r.keyFlat {
		r.doc.SetKeySignature("1f")
		r.flat.KeyFlat()
	}
	r.dirty = false
}

func (r *run) transduceStaff(ctx context.Context, staffIdx int, staff mensural.Staff) error {
	// Accidentals and ligatures never span systems.
	r.sharpPending = false
	r.flatPending = false
	if r.ligatureOpen {
		r.conv.logger.Warn("unterminated ligature at staff end", "staff", staffIdx)
		r.doc.CloseLigature()
		r.ligatureOpen = false
	}

	sawBarline := false
	for tokenIdx, sym := range staff.Symbols {
		switch token := sym.(type) {
		case mensural.Clef:
			// The governing clef was resolved up front; restatements
			// carry no new information.
			r.conv.logger.Debug("clef token skipped", "staff", staffIdx, "token", tokenIdx)

		case mensural.Flat:
			if r.keyRestatement(tokenIdx) {
				continue
			}
			r.flatPending = true

		case mensural.Sharp:
			r.sharpPending = true

		case mensural.Mensuration:
			if err := r.mensuration(staffIdx, tokenIdx, token); err != nil {
				return err
			}

		case mensural.Dot:
			r.doc.AppendDot()
			r.flat.Dot()
			r.dirty = true

		case mensural.Rest:
			dur, ok := mensural.RestDuration(token.Kind)
			if !ok {
				return &mensural.UnknownSymbolError{Staff: staffIdx, Index: tokenIdx, Code: token.Kind}
			}
			sigil, _ := humdrum.RestSigil(token.Kind)
			r.doc.AppendRest(dur)
			r.flat.Rest(sigil)
			r.dirty = true

		case mensural.Note:
			if err := r.note(staffIdx, tokenIdx, token); err != nil {
				return err
			}

		case mensural.Barline:
			r.doc.AppendBarLine()
			r.flat.Terminate()
			if err := r.finalize(ctx, staff.Label); err != nil {
				return err
			}
			r.openDocument()
			r.sharpPending = false
			r.flatPending = false
			r.ligatureOpen = false
			sawBarline = true

		case mensural.Custos:
			r.custos(staffIdx)
		}
	}

	// A staff that runs into the next without a barline gets an invisible
	// one so the systems stay visually separated in the same document.
	if !sawBarline && staffIdx != len(r.piece)-1 {
		r.doc.AppendInvisibleBarLine()
		r.dirty = true
	}
	return nil
}

// keyRestatement reports whether a flat at this position restates the
// one-flat signature at a system start rather than marking an accidental.
// Under the C2 clef the signature flat is drawn one token later.
func (r *run) keyRestatement(tokenIdx int) bool {
	if !r.keyFlat {
		return false
	}
	if tokenIdx == 1 {
		return true
	}
	return tokenIdx == 2 && r.clef.Code == "c-c-g"
}

func (r *run) mensuration(staffIdx, tokenIdx int, token mensural.Mensuration) error {
	if token.Code == mensural.ProportionCode {
		applied := r.doc.SetProportion("3", "2")
		r.flat.Proportion()
		if !applied {
			r.conv.logger.Warn("proportion modifier without active mensuration",
				"staff", staffIdx, "token", tokenIdx)
		}
		return nil
	}

	info, ok := mensural.MensurationFor(token.Code)
	if !ok {
		return &mensural.UnknownSymbolError{Staff: staffIdx, Index: tokenIdx, Code: token.Code}
	}
	r.doc.AppendMensur(info.Sign, info.Slash)
	r.flat.Mensur(info.Sign, info.Slash)
	r.dirty = true
	return nil
}

func (r *run) note(staffIdx, tokenIdx int, token mensural.Note) error {
	dur, ok := mensural.NoteDuration(token.Kind)
	if !ok {
		return &mensural.UnknownSymbolError{Staff: staffIdx, Index: tokenIdx, Code: token.Kind}
	}
	pitch, ok := mensural.PitchFor(r.clef, token.Pitch)
	if !ok {
		return &mensural.UnknownSymbolError{Staff: staffIdx, Index: tokenIdx, Code: token.Pitch}
	}

	if token.Kind == mensural.LigatureKind {
		if r.ligatureOpen {
			r.conv.logger.Warn("ligature opened while another is open",
				"staff", staffIdx, "token", tokenIdx)
			r.doc.CloseLigature()
		}
		r.doc.BeginLigature()
		r.doc.AppendNote(mei.NoteAttrs{Dur: dur, Oct: pitch.Oct, Pname: pitch.Pname})
		r.flat.LigatureOpen(pitch.Oct, pitch.Pname)
		r.ligatureOpen = true
		r.dirty = true
		// Pending accidentals stay pending for the closing note.
		return nil
	}

	accid := r.pendingAccid(staffIdx, tokenIdx)

	if r.ligatureOpen {
		// The closing note of a ligature is always a semibrevis.
		r.doc.AppendNote(mei.NoteAttrs{Dur: "semibrevis", Oct: pitch.Oct, Pname: pitch.Pname, Accid: accid})
		r.doc.CloseLigature()
		r.ligatureOpen = false
		r.flat.LigatureClose(pitch.Oct, pitch.Pname)
	} else {
		r.doc.AppendNote(mei.NoteAttrs{
			Dur:     dur,
			Oct:     pitch.Oct,
			Pname:   pitch.Pname,
			Accid:   accid,
			Colored: mensural.NoteColored(token.Kind),
		})
		sigil, _ := humdrum.NoteSigil(token.Kind)
		r.flat.Note(sigil, pitch.Oct, pitch.Pname)
	}

	if r.sharpPending {
		r.flat.Sharp()
	}
	if r.flatPending {
		r.flat.FlatAccidental()
	}
	r.sharpPending = false
	r.flatPending = false
	r.dirty = true
	return nil
}

// pendingAccid resolves the pending accidental flags into the note's accid
// attribute. When both are pending the flat wins; that combination is an
// upstream recognition artifact worth flagging.
func (r *run) pendingAccid(staffIdx, tokenIdx int) string {
	accid := ""
	if r.sharpPending {
		accid = "s"
	}
	if r.flatPending {
		if accid != "" {
			r.conv.logger.Warn("sharp and flat both pending, flat wins",
				"staff", staffIdx, "token", tokenIdx)
		}
		accid = "f"
	}
	return accid
}

func (r *run) custos(staffIdx int) {
	pitch, hasPitch := r.custosPitch(staffIdx)
	r.doc.AppendCustos(pitch.Oct, pitch.Pname, hasPitch)
	r.flat.Custos(pitch.Oct, pitch.Pname, hasPitch)
	r.dirty = true
}

// custosPitch looks ahead into the next staff for its first note. A custos
// at the end of the final staff has nothing to cue and stays pitchless.
func (r *run) custosPitch(staffIdx int) (mensural.Pitch, bool) {
	if staffIdx+1 >= len(r.piece) {
		return mensural.Pitch{}, false
	}
	for _, sym := range r.piece[staffIdx+1].Symbols {
		note, ok := sym.(mensural.Note)
		if !ok {
			continue
		}
		pitch, ok := mensural.PitchFor(r.clef, note.Pitch)
		if !ok {
			// The bad pitch code errors out when the note itself
			// is reached; the custos just stays pitchless.
			return mensural.Pitch{}, false
		}
		return pitch, true
	}
	return mensural.Pitch{}, false
}

func (r *run) finalize(ctx context.Context, label string) error {
	var lines []string
	if r.conv.opts.Humdrum {
		lines = r.flat.Lines()
	}
	if err := r.conv.sink.Finalize(ctx, label, r.doc, lines); err != nil {
		return fmt.Errorf("finalize document: %w", err)
	}
	r.conv.logger.Info("document finalized",
		"label", label,
		"elements", r.doc.ElementCount(),
	)
	return nil
}
