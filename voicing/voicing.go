// Package voicing re-voices target chords against existing pitch sets
// under movement-cost and parallel-motion rules.
package voicing

import (
	"sort"

	"github.com/jlowell/chordshift/model"
	"github.com/jlowell/chordshift/theory"
)

const (
	// Penalty per semitone past MaxVoiceMovement.
	overagePenalty = 10
	// Flat penalty for a voice-count mismatch: oversized candidates
	// stay rankable as a last resort instead of being rejected.
	voiceCountPenalty = 1000
	// Octave used when the search yields nothing at all.
	fallbackOctave = 5
)

// Engine runs the voicing search. Safe for concurrent reads; options
// are set up front and never mutated mid-search.
type Engine struct {
	options model.VoiceLeadingOptions
}

func NewEngine(options model.VoiceLeadingOptions) *Engine {
	return &Engine{options: options}
}

func (e *Engine) Options() model.VoiceLeadingOptions {
	return e.options
}

func (e *Engine) SetOptions(options model.VoiceLeadingOptions) {
	e.options = options
}

// Transform applies one transformation mode to originalNotes, aiming
// at targetChordName.
func (e *Engine) Transform(originalNotes model.Notes, targetChordName string, opts model.TransformationOptions) model.Notes {
	targetNotes := theory.ChordNotes(targetChordName, 4)

	switch opts.Type {
	case model.TransformInversion:
		inverted := invertChord(targetNotes, opts.Inversion)
		if opts.UseVoiceLeading {
			return e.FindOptimalVoicing(inverted, originalNotes)
		}
		return octaveAlign(inverted, originalNotes)

	case model.TransformPercentage:
		target := e.FindOptimalVoicing(targetNotes, originalNotes)
		return blend(originalNotes, target, opts.Percentage)

	case model.TransformStandard, model.TransformSwitchTonality:
		fallthrough
	default:
		if opts.UseVoiceLeading {
			return e.FindOptimalVoicing(targetNotes, originalNotes)
		}
		return octaveAlign(targetNotes, originalNotes)
	}
}

// invertChord rotates the pitch stack: the lowest n notes move up an
// octave, then the result is re-sorted.
func invertChord(notes model.Notes, inversion int) model.Notes {
	sorted := append(model.Notes(nil), notes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	if inversion < 0 {
		inversion = 0
	}
	if inversion >= len(sorted) {
		inversion = len(sorted) - 1
	}
	for i := 0; i < inversion; i++ {
		sorted[i] += 12
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}

// octaveAlign shifts the target chord whole octaves so its lowest note
// lands in the same octave as the original chord's lowest note.
func octaveAlign(targetNotes, originalNotes model.Notes) model.Notes {
	if len(targetNotes) == 0 || len(originalNotes) == 0 {
		return append(model.Notes(nil), targetNotes...)
	}

	shift := (int(minNote(originalNotes))/12 - int(minNote(targetNotes))/12) * 12
	result := make(model.Notes, 0, len(targetNotes))
	for _, n := range targetNotes {
		result = append(result, uint8(int(n)+shift))
	}
	return result
}

func minNote(notes model.Notes) uint8 {
	m := notes[0]
	for _, n := range notes {
		if n < m {
			m = n
		}
	}
	return m
}

func maxNote(notes model.Notes) uint8 {
	m := notes[0]
	for _, n := range notes {
		if n > m {
			m = n
		}
	}
	return m
}

// FindOptimalVoicing enumerates every octave placement of the target
// pitch classes inside a window one octave beyond the original chord's
// extremes, scores each candidate, and returns the cheapest. Ties go
// to the first candidate found; enumeration order is deterministic but
// carries no meaning.
func (e *Engine) FindOptimalVoicing(targetPitches, originalNotes model.Notes) model.Notes {
	pitchClasses := make(model.Notes, 0, len(targetPitches))
	for _, p := range targetPitches {
		pitchClasses = append(pitchClasses, p%12)
	}

	if len(originalNotes) == 0 {
		return middleOctave(pitchClasses)
	}

	minOctave := int(minNote(originalNotes))/12 - 1
	if minOctave < 0 {
		minOctave = 0
	}
	maxOctave := int(maxNote(originalNotes))/12 + 1
	if maxOctave > 10 {
		maxOctave = 10
	}

	bestCost := -1
	var best model.Notes
	var firstCandidate model.Notes

	current := make(model.Notes, len(pitchClasses))
	var enumerate func(index int)
	enumerate = func(index int) {
		if index == len(pitchClasses) {
			candidate := append(model.Notes(nil), current...)
			if firstCandidate == nil {
				firstCandidate = candidate
			}
			if e.options.AvoidParallels && hasParallels(originalNotes, candidate) {
				return
			}
			cost := e.movementCost(originalNotes, candidate)
			if bestCost < 0 || cost < bestCost {
				bestCost = cost
				best = candidate
			}
			return
		}
		for octave := minOctave; octave <= maxOctave; octave++ {
			pitch := int(pitchClasses[index]) + octave*12
			if pitch > 127 {
				continue
			}
			current[index] = uint8(pitch)
			enumerate(index + 1)
		}
	}
	enumerate(0)

	// Fallback chain: first enumerated candidate, then a fixed middle
	// octave.
	if best == nil {
		best = firstCandidate
	}
	if best == nil {
		best = middleOctave(pitchClasses)
	}
	return best
}

func middleOctave(pitchClasses model.Notes) model.Notes {
	result := make(model.Notes, 0, len(pitchClasses))
	for _, pc := range pitchClasses {
		result = append(result, pc+fallbackOctave*12)
	}
	return result
}
