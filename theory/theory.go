// Package theory holds the static music-theory lookups: note names,
// chord-quality interval templates, the chord-name mini-language and
// the tonality-switch map. Everything here is built once and read-only.
package theory

import (
	"fmt"
	"strings"
)

var noteNames = []string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

var noteNameToPitchClass = map[string]int{
	"C": 0, "C#": 1, "Db": 1, "D": 2, "D#": 3, "Eb": 3,
	"E": 4, "F": 5, "F#": 6, "Gb": 6, "G": 7, "G#": 8,
	"Ab": 8, "A": 9, "A#": 10, "Bb": 10, "B": 11, "Cb": 11,
}

// PitchClassName gives the sharp-spelled name of a pitch class.
func PitchClassName(pitch uint8) string {
	return noteNames[pitch%12]
}

// NoteName gives name plus octave, middle C (60) being C4.
func NoteName(pitch uint8) string {
	return fmt.Sprintf("%v%v", noteNames[pitch%12], int(pitch)/12-1)
}

// NoteNameToPitch converts a note name with optional trailing octave
// digit ("C", "F#", "Bb3") to its pitch. Names without an octave
// default to octave 4. Unknown names fall back to middle C.
func NoteNameToPitch(name string) uint8 {
	octave := 4
	if len(name) >= 2 && name[len(name)-1] >= '0' && name[len(name)-1] <= '9' {
		octave = int(name[len(name)-1] - '0')
		name = name[:len(name)-1]
	}

	pc, ok := noteNameToPitchClass[name]
	if !ok {
		fmt.Printf("Warning: invalid note name %q\n", name)
		return 60
	}
	return uint8((octave+1)*12 + pc)
}

// FormatNotes renders a pitch list as "C4, E4, G4".
func FormatNotes(notes []uint8) string {
	parts := make([]string, 0, len(notes))
	for _, note := range notes {
		parts = append(parts, NoteName(note))
	}
	return strings.Join(parts, ", ")
}

// ParseChordName splits a chord name into root and quality, dropping
// any "/bass" suffix from the quality. Two-character sharp/flat roots
// are preferred over single letters so "C#m7" parses as C# + m7.
func ParseChordName(chordName string) (string, string) {
	root := "C"
	pos := 0
	if len(chordName) >= 2 && (chordName[1] == '#' || chordName[1] == 'b') {
		root = chordName[:2]
		pos = 2
	} else if len(chordName) >= 1 {
		if _, ok := noteNameToPitchClass[chordName[:1]]; ok {
			root = chordName[:1]
			pos = 1
		}
	}

	quality := chordName[pos:]
	if slash := strings.IndexByte(quality, '/'); slash >= 0 {
		quality = quality[:slash]
	}
	return root, quality
}

func ChordRoot(chordName string) string {
	root, _ := ParseChordName(chordName)
	return root
}

func ChordQuality(chordName string) string {
	_, quality := ParseChordName(chordName)
	return quality
}
