// Package processor ties the codec, detectors, voicing engine and
// history together. It is the single writer of the session's chord
// collection; every engine gets copies and hands back new data.
package processor

import (
	"fmt"

	"github.com/jlowell/chordshift/chord"
	"github.com/jlowell/chordshift/history"
	"github.com/jlowell/chordshift/key"
	"github.com/jlowell/chordshift/midifile"
	"github.com/jlowell/chordshift/model"
	"github.com/jlowell/chordshift/note"
	"github.com/jlowell/chordshift/progression"
	"github.com/jlowell/chordshift/substitution"
	"github.com/jlowell/chordshift/theory"
	"github.com/jlowell/chordshift/voicing"
)

type Processor struct {
	file     *midifile.File
	fileHash string
	notes    []model.Note
	chords   []model.Chord

	detectedKey *model.KeySignature

	engine   *voicing.Engine
	detector *key.Detector
	subs     *substitution.Engine
	history  *history.Manager
	cache    *Cache
}

func New() *Processor {
	p := &Processor{
		engine:   voicing.NewEngine(model.NewVoiceLeadingOptions()),
		detector: key.NewDetector(),
		subs:     substitution.NewEngine(),
	}
	p.history = history.NewManager(p)
	return p
}

// NewWithCache attaches a persistent detection cache. Detection
// results are keyed by file hash and reused across loads.
func NewWithCache(cache *Cache) *Processor {
	p := New()
	p.cache = cache
	return p
}

// FileHash is the rolling content hash used as the cache key. Not
// collision resistant; a collision returns a stale chord list.
func FileHash(data []uint8) string {
	var hash uint64
	for _, b := range data {
		hash = hash*31 + uint64(b)
	}
	return fmt.Sprintf("%016x", hash)
}

// Load decodes raw file bytes and rebuilds the session: notes, chords
// and detected key. Prior session state is untouched when decode
// fails. History is cleared on success.
func (p *Processor) Load(data []uint8) error {
	f, err := midifile.Decode(data)
	if err != nil {
		return err
	}

	hash := FileHash(data)

	p.file = f
	p.fileHash = hash
	p.notes = note.Extract(f)
	p.detectedKey = nil
	p.history.Clear()

	if p.cache != nil {
		if cached, ok := p.cache.Get(hash); ok {
			p.chords = cached
			return nil
		}
	}

	p.chords = chord.Detect(p.notes, chord.DefaultTimeTolerance)
	if p.cache != nil {
		p.cache.Put(hash, p.chords)
	}
	return nil
}

func (p *Processor) Loaded() bool {
	return p.file != nil
}

func (p *Processor) FileHashString() string {
	return p.fileHash
}

func (p *Processor) NumChords() int {
	return len(p.chords)
}

// Chords returns deep copies; the live collection is only mutated
// through transformations.
func (p *Processor) Chords() []model.Chord {
	out := make([]model.Chord, len(p.chords))
	for i := range p.chords {
		out[i] = p.chords[i].Clone()
	}
	return out
}

func (p *Processor) Chord(index int) (model.Chord, error) {
	if index < 0 || index >= len(p.chords) {
		return model.Chord{}, fmt.Errorf("chord index %v out of range [0, %v)", index, len(p.chords))
	}
	return p.chords[index].Clone(), nil
}

func (p *Processor) Notes() []model.Note {
	return append([]model.Note(nil), p.notes...)
}

// UpdateChord is the history write-back hook.
func (p *Processor) UpdateChord(index int, c model.Chord) bool {
	if index < 0 || index >= len(p.chords) {
		return false
	}
	p.chords[index] = c
	return true
}

func (p *Processor) DetectKey() *model.KeySignature {
	if p.detectedKey == nil {
		p.detectedKey = p.detector.Detect(p.chords)
	}
	return p.detectedKey
}

func (p *Processor) ScaleConstraints() []model.ScaleConstraint {
	return key.ScaleConstraints(p.DetectKey())
}

func (p *Processor) Progressions() []model.ChordProgression {
	return progression.Detect(p.chords)
}

func (p *Processor) SubstitutionOptions(index int) (model.SubstitutionOptions, error) {
	c, err := p.Chord(index)
	if err != nil {
		return model.SubstitutionOptions{}, err
	}
	return p.subs.Options(c.Name), nil
}

func (p *Processor) VoiceLeadingOptions() model.VoiceLeadingOptions {
	return p.engine.Options()
}

func (p *Processor) SetVoiceLeadingOptions(options model.VoiceLeadingOptions) {
	p.engine.SetOptions(options)
}

// switchTonalityTarget maps a chord name to its opposite-mode
// counterpart, e.g. C -> Cm, Cmaj7 -> Cm7.
func switchTonalityTarget(chordName string) (string, error) {
	root, quality := theory.ParseChordName(chordName)
	switched, ok := theory.TonalitySwitchMap[quality]
	if !ok {
		return "", fmt.Errorf("cannot switch tonality of %v", chordName)
	}
	return root + switched, nil
}

// TransformChord applies one transformation to one chord.
func (p *Processor) TransformChord(index int, target string, opts model.TransformationOptions) error {
	return p.TransformChords([]int{index}, []string{target}, opts)
}

// TransformChords transforms the selected chords as one atomic,
// undoable action. All targets are validated and all new states
// computed before the collection is touched, so a failure on any
// chord leaves every chord unchanged. A single target is broadcast
// over all indices.
func (p *Processor) TransformChords(indices []int, targets []string, opts model.TransformationOptions) error {
	if len(indices) == 0 {
		return fmt.Errorf("no chords selected")
	}
	if opts.Type != model.TransformSwitchTonality && len(targets) != len(indices) && len(targets) != 1 {
		return fmt.Errorf("got %v targets for %v chords", len(targets), len(indices))
	}

	var before, after []model.Chord
	var description string

	for i, index := range indices {
		if index < 0 || index >= len(p.chords) {
			return fmt.Errorf("chord index %v out of range [0, %v)", index, len(p.chords))
		}
		current := p.chords[index]

		var target string
		switch {
		case opts.Type == model.TransformSwitchTonality:
			t, err := switchTonalityTarget(current.Name)
			if err != nil {
				return err
			}
			target = t
		case len(targets) == 1:
			target = targets[0]
		default:
			target = targets[i]
		}

		newNotes := p.engine.Transform(current.Notes, target, opts)

		next := current.Clone()
		next.Notes = newNotes
		next.Name = target
		if next.Original == nil {
			// First transformation only; later ones never touch it.
			next.Original = &model.ChordSnapshot{
				Notes: append(model.Notes(nil), current.Notes...),
				Name:  current.Name,
			}
		}

		before = append(before, current.Clone())
		after = append(after, next)

		if description != "" {
			description += ", "
		}
		description += fmt.Sprintf("%v -> %v", current.Name, target)
	}

	for i, index := range indices {
		p.chords[index] = after[i]
	}
	p.history.Record(indices, before, after, description)
	return nil
}

// SwitchTonality flips the selected chords between major and minor
// using the quality map, re-voiced against their current notes.
func (p *Processor) SwitchTonality(indices []int) error {
	opts := model.NewTransformationOptions()
	opts.Type = model.TransformSwitchTonality
	return p.TransformChords(indices, nil, opts)
}

func (p *Processor) Undo() bool {
	return p.history.Undo()
}

func (p *Processor) Redo() bool {
	return p.history.Redo()
}

func (p *Processor) CanUndo() bool {
	return p.history.CanUndo()
}

func (p *Processor) CanRedo() bool {
	return p.history.CanRedo()
}

func (p *Processor) UndoDescription() string {
	return p.history.UndoDescription()
}

func (p *Processor) RedoDescription() string {
	return p.history.RedoDescription()
}
