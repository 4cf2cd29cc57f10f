// Package key scores chord sequences against the 30 major/minor key
// templates.
package key

import (
	"github.com/jlowell/chordshift/model"
	"github.com/jlowell/chordshift/theory"
)

// ConfidenceThreshold is the call-local score floor: scores are only
// comparable within one Detect call, never across calls.
const ConfidenceThreshold = 0.6

var majorRoots = []string{
	"C", "G", "D", "A", "E", "B", "F#", "C#", "F", "Bb", "Eb", "Ab", "Db", "Gb", "Cb",
}

var minorRoots = []string{
	"A", "E", "B", "F#", "C#", "G#", "D#", "A#", "D", "G", "C", "F", "Bb", "Eb", "Ab",
}

var majorSteps = []uint8{0, 2, 4, 5, 7, 9, 11}
var minorSteps = []uint8{0, 2, 3, 5, 7, 8, 10}

var majorDiatonic = map[int]string{
	1: "", 2: "m", 3: "m", 4: "", 5: "", 6: "m", 7: "dim",
}

var minorDiatonic = map[int]string{
	1: "m", 2: "dim", 3: "", 4: "m", 5: "m", 6: "", 7: "",
}

// Detector holds the immutable key templates, built once.
type Detector struct {
	// keyNames preserves construction order so scoring ties break
	// deterministically.
	keyNames      []string
	keySignatures map[string]*model.KeySignature
}

func NewDetector() *Detector {
	d := &Detector{keySignatures: make(map[string]*model.KeySignature)}

	for _, root := range majorRoots {
		d.add(root, root, true, majorSteps, majorDiatonic)
	}
	for _, root := range minorRoots {
		// Minor keys are stored with an "m" suffix to keep them apart
		// from the majors.
		d.add(root+"m", root, false, minorSteps, minorDiatonic)
	}
	return d
}

func (d *Detector) add(name, root string, isMajor bool, steps []uint8, diatonic map[int]string) {
	rootPC := theory.NoteNameToPitch(root) % 12
	degrees := make([]uint8, len(steps))
	for i, step := range steps {
		degrees[i] = (rootPC + step) % 12
	}

	d.keyNames = append(d.keyNames, name)
	d.keySignatures[name] = &model.KeySignature{
		RootNote:       root,
		IsMajor:        isMajor,
		ScaleDegrees:   degrees,
		DiatonicChords: diatonic,
	}
}

// KeySignature looks up a template by name ("C", "F#m").
func (d *Detector) KeySignature(name string) *model.KeySignature {
	return d.keySignatures[name]
}

func (d *Detector) AllKeyNames() []string {
	return append([]string(nil), d.keyNames...)
}

func inScale(key *model.KeySignature, pitchClass uint8) bool {
	for _, degree := range key.ScaleDegrees {
		if degree == pitchClass {
			return true
		}
	}
	return false
}

// Detect scores every template against the chord sequence and returns
// the winner, or nil when nothing clears the confidence threshold.
// Nil is a valid "no confident key" outcome.
func (d *Detector) Detect(chords []model.Chord) *model.KeySignature {
	if len(chords) == 0 {
		return nil
	}

	var pitchClassCounts [12]int
	for _, c := range chords {
		for _, n := range c.Notes {
			pitchClassCounts[n%12]++
		}
	}

	bestScore := -1.0
	var bestKey string

	for _, keyName := range d.keyNames {
		key := d.keySignatures[keyName]
		score := d.scoreKey(key, chords, pitchClassCounts)
		if score > bestScore {
			bestScore = score
			bestKey = keyName
		}
	}

	if bestScore >= ConfidenceThreshold {
		return d.keySignatures[bestKey]
	}
	return nil
}

func (d *Detector) scoreKey(key *model.KeySignature, chords []model.Chord, pitchClassCounts [12]int) float64 {
	notesInKey := 0
	totalNotes := 0
	for pc := 0; pc < 12; pc++ {
		if pitchClassCounts[pc] == 0 {
			continue
		}
		totalNotes += pitchClassCounts[pc]
		if inScale(key, uint8(pc)) {
			notesInKey += pitchClassCounts[pc]
		}
	}

	if totalNotes == 0 {
		return 0
	}
	score := float64(notesInKey) / float64(totalNotes)

	tonic := int(theory.NoteNameToPitch(key.RootNote) % 12)
	dominant := (tonic + 7) % 12
	subdominant := (tonic + 5) % 12

	if pitchClassCounts[tonic] > 0 {
		score *= 1.2
	}
	if pitchClassCounts[dominant] > 0 {
		score *= 1.1
	}
	if pitchClassCounts[subdominant] > 0 {
		score *= 1.05
	}

	hasTonicChord := false
	hasDominantChord := false
	hasSubdominantChord := false

	for _, c := range chords {
		root, quality := theory.ParseChordName(c.Name)
		rootPC := int(theory.NoteNameToPitch(root) % 12)

		switch rootPC {
		case tonic:
			if (key.IsMajor && (quality == "" || quality == "maj7" || quality == "6")) ||
				(!key.IsMajor && (quality == "m" || quality == "m7")) {
				hasTonicChord = true
			}
		case dominant:
			if quality == "" || quality == "7" {
				hasDominantChord = true
			}
		case subdominant:
			if (key.IsMajor && (quality == "" || quality == "maj7")) ||
				(!key.IsMajor && (quality == "m" || quality == "m7")) {
				hasSubdominantChord = true
			}
		}
	}

	if hasTonicChord {
		score *= 1.3
	}
	if hasDominantChord {
		score *= 1.2
	}
	if hasSubdominantChord {
		score *= 1.1
	}

	return score
}
