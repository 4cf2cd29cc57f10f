// Package substitution is the static reharmonization database: keyed
// lookups over a fixed table, no algorithmic search.
package substitution

import (
	"sort"

	"github.com/jlowell/chordshift/model"
)

type Engine struct {
	database []model.ChordSubstitution
}

func sub(original, substitute, relationship string, tension float32, similarity int) model.ChordSubstitution {
	return model.ChordSubstitution{
		OriginalChord:        original,
		SubstituteChord:      substitute,
		Relationship:         relationship,
		TensionChange:        tension,
		FunctionalSimilarity: similarity,
	}
}

func NewEngine() *Engine {
	e := &Engine{}

	// Tritone substitutions.
	for _, pair := range [][2]string{
		{"G7", "Db7"}, {"C7", "Gb7"}, {"F7", "B7"}, {"Bb7", "E7"},
		{"Eb7", "A7"}, {"Ab7", "D7"}, {"Db7", "G7"}, {"Gb7", "C7"},
		{"B7", "F7"}, {"E7", "Bb7"}, {"A7", "Eb7"}, {"D7", "Ab7"},
	} {
		e.Add(sub(pair[0], pair[1], "tritone sub", 0.3, 8))
	}

	// Relative major/minor.
	for _, pair := range [][2]string{{"C", "Am"}, {"G", "Em"}, {"F", "Dm"}} {
		e.Add(sub(pair[0], pair[1], "relative minor", -0.2, 9))
		e.Add(sub(pair[1], pair[0], "relative major", 0.2, 9))
	}

	// Diatonic substitutions.
	e.Add(sub("Cmaj7", "Em7", "diatonic sub", -0.1, 7))
	e.Add(sub("Cmaj7", "Am7", "diatonic sub", -0.1, 7))
	e.Add(sub("G7", "Bm7b5", "diatonic sub", 0.1, 6))
	e.Add(sub("Dm7", "Fmaj7", "diatonic sub", 0.1, 7))

	// Modal interchange.
	for _, pair := range [][2]string{{"C", "Cm"}, {"F", "Fm"}} {
		e.Add(sub(pair[0], pair[1], "modal interchange", -0.2, 8))
		e.Add(sub(pair[1], pair[0], "modal interchange", 0.2, 8))
	}

	// Secondary dominants.
	e.Add(sub("Dm7", "A7", "secondary dominant", 0.4, 5))
	e.Add(sub("G7", "D7", "secondary dominant", 0.4, 5))
	e.Add(sub("Em7", "B7", "secondary dominant", 0.4, 5))

	// Extensions.
	e.Add(sub("C", "C6", "extension", 0.1, 9))
	e.Add(sub("C", "Cmaj7", "extension", 0.1, 9))
	e.Add(sub("C", "Cmaj9", "extension", 0.2, 8))
	e.Add(sub("Cm", "Cm7", "extension", 0.1, 9))
	e.Add(sub("Cm", "Cm9", "extension", 0.2, 8))
	e.Add(sub("G7", "G9", "extension", 0.1, 9))
	e.Add(sub("G7", "G13", "extension", 0.3, 8))

	// Diminished substitutions.
	e.Add(sub("G7", "Bdim7", "diminished sub", 0.2, 7))
	e.Add(sub("C7", "Edim7", "diminished sub", 0.2, 7))

	// Suspended chords.
	e.Add(sub("C", "Csus4", "suspended", 0.0, 8))
	e.Add(sub("G", "Gsus4", "suspended", 0.0, 8))
	e.Add(sub("G7", "G7sus4", "suspended", 0.0, 8))

	return e
}

func (e *Engine) Add(s model.ChordSubstitution) {
	e.database = append(e.database, s)
}

// Options groups every substitution for a chord by family, plus a few
// canned multi-chord reharmonizations.
func (e *Engine) Options(chordName string) model.SubstitutionOptions {
	var options model.SubstitutionOptions

	for _, s := range e.database {
		if s.OriginalChord != chordName {
			continue
		}
		switch s.Relationship {
		case "secondary dominant", "diminished sub", "extension":
			options.JazzSubs = append(options.JazzSubs, s)
		case "modal interchange":
			options.ModalSubs = append(options.ModalSubs, s)
		default:
			options.CommonSubs = append(options.CommonSubs, s)
		}
	}

	switch chordName {
	case "C":
		options.Reharmonizations = append(options.Reharmonizations,
			sub("C", "Am7 | D7 | Gmaj7", "ii-V-I in G", 0.5, 6),
			sub("C", "Fmaj7 | G7", "IV-V-I", 0.2, 7),
		)
	case "G7":
		options.Reharmonizations = append(options.Reharmonizations,
			sub("G7", "Dm7 | G7", "ii-V", 0.3, 8),
			sub("G7", "Db7 | Cmaj7", "tritone sub cadence", 0.4, 7),
		)
	}

	return options
}

func (e *Engine) FindByType(chordName, substitutionType string) []model.ChordSubstitution {
	var results []model.ChordSubstitution
	for _, s := range e.database {
		if s.OriginalChord == chordName && s.Relationship == substitutionType {
			results = append(results, s)
		}
	}
	return results
}

func (e *Engine) FindByFunction(chordName string, minSimilarity int) []model.ChordSubstitution {
	var results []model.ChordSubstitution
	for _, s := range e.database {
		if s.OriginalChord == chordName && s.FunctionalSimilarity >= minSimilarity {
			results = append(results, s)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FunctionalSimilarity > results[j].FunctionalSimilarity
	})
	return results
}

func (e *Engine) FindByTension(chordName string, minTension, maxTension float32) []model.ChordSubstitution {
	var results []model.ChordSubstitution
	for _, s := range e.database {
		if s.OriginalChord == chordName && s.TensionChange >= minTension && s.TensionChange <= maxTension {
			results = append(results, s)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return abs32(results[i].TensionChange) < abs32(results[j].TensionChange)
	})
	return results
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
