package chord

import (
	"sort"

	"github.com/jlowell/chordshift/model"
	"github.com/jlowell/chordshift/theory"
)

// Normalize reduces pitches to sorted intervals above the lowest one.
func Normalize(notes model.Notes) []int {
	if len(notes) == 0 {
		return nil
	}

	lowest := notes[0]
	for _, n := range notes {
		if n < lowest {
			lowest = n
		}
	}

	intervals := make([]int, 0, len(notes))
	for _, n := range notes {
		intervals = append(intervals, int(n)-int(lowest))
	}
	sort.Ints(intervals)
	return intervals
}

func intervalsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Identify names a pitch set. Root-position patterns are tried first,
// then every inversion of every pattern (named root+quality/bass).
// With no match the name falls back to "root (note list)", which is a
// valid outcome, not an error.
func Identify(notes model.Notes) string {
	if len(notes) < 3 {
		return "N/A"
	}

	intervals := Normalize(notes)

	lowest := notes[0]
	for _, n := range notes {
		if n < lowest {
			lowest = n
		}
	}
	rootName := theory.PitchClassName(lowest)

	for _, p := range theory.QualityPatterns {
		if intervalsEqual(intervals, p.Intervals) {
			return rootName + p.Quality
		}
	}

	// Inversion search: stack the first k pattern intervals an octave
	// up, re-sort, compare.
	for _, p := range theory.QualityPatterns {
		if len(intervals) != len(p.Intervals) {
			continue
		}
		for inversion := 1; inversion < len(p.Intervals); inversion++ {
			inverted := make([]int, len(p.Intervals))
			copy(inverted, p.Intervals)
			for i := 0; i < inversion; i++ {
				inverted[i] += 12
			}
			sort.Ints(inverted)

			// Re-anchor at zero so it is comparable with the
			// lowest-note-relative intervals.
			base := inverted[0]
			for i := range inverted {
				inverted[i] -= base
			}

			if intervalsEqual(intervals, inverted) {
				// The sounding bass is the lowest pitch; the chord
				// root is the raised pattern origin, 12-pattern[k]
				// semitones above the bass.
				rootPC := (int(lowest) + 12 - p.Intervals[inversion]%12) % 12
				bassName := theory.PitchClassName(lowest)
				return theory.PitchClassName(uint8(rootPC)) + p.Quality + "/" + bassName
			}
		}
	}

	return rootName + " (" + theory.FormatNotes(notes) + ")"
}
