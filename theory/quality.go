package theory

import "strings"

// QualityPattern pairs a chord quality with its interval stack above
// the root. The slice order is the match order for chord naming, so
// it must stay deterministic.
type QualityPattern struct {
	Quality   string
	Intervals []int
}

// QualityPatterns lists every named interval pattern: triads first,
// then sevenths, then extended, sixth and add chords.
var QualityPatterns = []QualityPattern{
	{"", []int{0, 4, 7}},
	{"m", []int{0, 3, 7}},
	{"dim", []int{0, 3, 6}},
	{"aug", []int{0, 4, 8}},
	{"sus4", []int{0, 5, 7}},
	{"sus2", []int{0, 2, 7}},

	{"7", []int{0, 4, 7, 10}},
	{"maj7", []int{0, 4, 7, 11}},
	{"m7", []int{0, 3, 7, 10}},
	{"dim7", []int{0, 3, 6, 9}},
	{"m7b5", []int{0, 3, 6, 10}},
	{"aug7", []int{0, 4, 8, 10}},
	{"7sus4", []int{0, 5, 7, 10}},

	{"9", []int{0, 4, 7, 10, 14}},
	{"maj9", []int{0, 4, 7, 11, 14}},
	{"m9", []int{0, 3, 7, 10, 14}},
	{"6", []int{0, 4, 7, 9}},
	{"m6", []int{0, 3, 7, 9}},
	{"add9", []int{0, 4, 7, 14}},
	{"madd9", []int{0, 3, 7, 14}},
}

// QualityIntervals resolves a quality string to its interval stack.
// Unrecognized qualities default to a major triad.
func QualityIntervals(quality string) []int {
	for _, p := range QualityPatterns {
		if p.Quality == quality {
			return p.Intervals
		}
	}
	if quality == "ø" {
		return QualityIntervals("m7b5")
	}
	return []int{0, 4, 7}
}

// ChordNotes builds the pitches of a named chord with its root in
// baseOctave. A slash bass note, if present and not already sounded,
// is prepended one octave below the chord.
func ChordNotes(chordName string, baseOctave uint8) []uint8 {
	root, quality := ParseChordName(chordName)
	rootPitch := NoteNameToPitch(root)%12 + baseOctave*12

	var notes []uint8
	for _, interval := range QualityIntervals(quality) {
		note := int(rootPitch) + interval
		if note <= 127 {
			notes = append(notes, uint8(note))
		}
	}

	if slash := strings.IndexByte(chordName, '/'); slash >= 0 && slash+1 < len(chordName) {
		bass := NoteNameToPitch(chordName[slash+1:])%12 + (baseOctave-1)*12
		present := false
		for _, note := range notes {
			if note == bass {
				present = true
				break
			}
		}
		if !present {
			notes = append([]uint8{bass}, notes...)
		}
	}

	return notes
}

// TonalitySwitchMap flips a quality between its major and minor
// counterpart.
var TonalitySwitchMap = map[string]string{
	"":      "m",
	"m":     "",
	"dim":   "m",
	"aug":   "",
	"7":     "m7",
	"maj7":  "m7",
	"m7":    "maj7",
	"dim7":  "m7b5",
	"m7b5":  "dim7",
	"9":     "m9",
	"maj9":  "m9",
	"m9":    "maj9",
	"6":     "m6",
	"m6":    "6",
	"add9":  "madd9",
	"madd9": "add9",
}
