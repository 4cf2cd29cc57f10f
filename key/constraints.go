package key

import (
	"github.com/jlowell/chordshift/model"
	"github.com/jlowell/chordshift/theory"
)

func scaleNotes(root uint8, steps []uint8) []uint8 {
	notes := make([]uint8, len(steps))
	for i, step := range steps {
		notes[i] = (root + step) % 12
	}
	return notes
}

// ScaleConstraints lists the scales (and their usable chords) that fit
// a detected key: the key's own scale, plus parallel minor for major
// keys, or harmonic and melodic minor for minor keys.
func ScaleConstraints(key *model.KeySignature) []model.ScaleConstraint {
	if key == nil {
		return nil
	}

	root := theory.NoteNameToPitch(key.RootNote) % 12
	rootName := theory.PitchClassName(root)

	main := model.ScaleConstraint{
		RootNote:     root,
		AllowedNotes: append([]uint8(nil), key.ScaleDegrees...),
	}
	if key.IsMajor {
		main.ScaleType = "major"
	} else {
		main.ScaleType = "minor"
	}
	for degree := 1; degree <= 7; degree++ {
		quality := key.DiatonicChords[degree]
		chordRoot := key.ScaleDegrees[degree-1]
		main.AllowedChords = append(main.AllowedChords, theory.PitchClassName(chordRoot)+quality)
	}

	constraints := []model.ScaleConstraint{main}

	if key.IsMajor {
		constraints = append(constraints, model.ScaleConstraint{
			ScaleType:    "parallel minor",
			RootNote:     root,
			AllowedNotes: scaleNotes(root, minorSteps),
			AllowedChords: []string{
				rootName + "m",
				theory.PitchClassName((root + 3) % 12),
				theory.PitchClassName((root+5)%12) + "m",
				theory.PitchClassName((root + 8) % 12),
				theory.PitchClassName((root + 10) % 12),
			},
		})
		return constraints
	}

	constraints = append(constraints, model.ScaleConstraint{
		ScaleType:    "harmonic minor",
		RootNote:     root,
		AllowedNotes: scaleNotes(root, []uint8{0, 2, 3, 5, 7, 8, 11}),
		AllowedChords: []string{
			rootName + "m",
			theory.PitchClassName((root+7)%12) + "7",
			theory.PitchClassName((root+11)%12) + "dim7",
		},
	})
	constraints = append(constraints, model.ScaleConstraint{
		ScaleType:    "melodic minor",
		RootNote:     root,
		AllowedNotes: scaleNotes(root, []uint8{0, 2, 3, 5, 7, 9, 11}),
		AllowedChords: []string{
			rootName + "m6",
			theory.PitchClassName((root+7)%12) + "7",
			theory.PitchClassName((root+9)%12) + "m7b5",
		},
	})
	return constraints
}
