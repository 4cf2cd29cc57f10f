// Package progression matches chord sequences against known
// progression patterns.
package progression

import (
	"sort"
	"strings"

	"github.com/jlowell/chordshift/model"
	"github.com/jlowell/chordshift/theory"
)

const confidenceFloor = 0.6

// Patterns is the fixed pattern table, matched in order.
var Patterns = []model.ProgressionPattern{
	{Name: "ii-V-I", ChordQualities: []string{"m7", "7", "maj7"}, CommonKeys: []string{"C", "F", "Bb", "Eb", "G", "D", "A"}},
	{Name: "I-IV-V", ChordQualities: []string{"", "", ""}, CommonKeys: []string{"C", "G", "D", "A", "E", "F"}},
	{Name: "I-V-vi-IV", ChordQualities: []string{"", "", "m", ""}, CommonKeys: []string{"C", "G", "D", "A", "F"}},
	{Name: "I-vi-IV-V (50s)", ChordQualities: []string{"", "m", "", ""}, CommonKeys: []string{"C", "G", "D", "A", "F"}},
	{Name: "vi-IV-I-V", ChordQualities: []string{"m", "", "", ""}, CommonKeys: []string{"C", "G", "D", "A", "F"}},
	{Name: "Canon Progression", ChordQualities: []string{"", "", "m", "m", "", "", "", ""}, CommonKeys: []string{"D", "G", "C"}},
	{Name: "Andalusian Cadence", ChordQualities: []string{"m", "", "", ""}, CommonKeys: []string{"Am", "Em", "Dm"}},
	{Name: "Mixolydian Vamp", ChordQualities: []string{"", "", ""}, CommonKeys: []string{"G", "D", "A", "E"}},
	{Name: "Minor Blues", ChordQualities: []string{"m", "m", "m"}, CommonKeys: []string{"Am", "Em", "Dm", "Gm"}},
	{Name: "Major-Minor Change", ChordQualities: []string{"", "7", "", "m"}, CommonKeys: []string{"C", "G", "D", "F"}},
}

// qualityMatch scores one chord quality against a pattern slot:
// 1.0 for a prefix match (a "major" slot also accepts maj7/6/9
// colorings), 0.5 when only the first character agrees, -1 otherwise.
func qualityMatch(chordQuality, patternQuality string) float64 {
	if strings.HasPrefix(chordQuality, patternQuality) && patternQuality != "" {
		return 1.0
	}
	if patternQuality == "" &&
		(chordQuality == "" || chordQuality == "maj7" || chordQuality == "6" || chordQuality == "9") {
		return 1.0
	}
	if patternQuality != "" && chordQuality != "" && chordQuality[0] == patternQuality[0] {
		return 0.5
	}
	return -1
}

// Detect slides every pattern across the chord sequence. Matches
// below the confidence floor are dropped; the rest come back sorted
// by confidence, highest first.
func Detect(chords []model.Chord) []model.ChordProgression {
	var results []model.ChordProgression
	if len(chords) < 2 {
		return results
	}

	type parts struct{ root, quality string }
	chordParts := make([]parts, len(chords))
	for i, c := range chords {
		root, quality := theory.ParseChordName(c.Name)
		chordParts[i] = parts{root, quality}
	}

	for _, pattern := range Patterns {
		size := len(pattern.ChordQualities)
		if size > len(chords) {
			continue
		}

		for start := 0; start <= len(chords)-size; start++ {
			score := 0.0
			matched := true
			for i := 0; i < size; i++ {
				s := qualityMatch(chordParts[start+i].quality, pattern.ChordQualities[i])
				if s < 0 {
					matched = false
					break
				}
				score += s
			}
			if !matched {
				continue
			}

			confidence := score / float64(size)

			possibleKey := chordParts[start].root
			keyMatch := false
			for _, k := range pattern.CommonKeys {
				if k == possibleKey || k == possibleKey+"m" {
					keyMatch = true
					break
				}
			}
			if keyMatch {
				confidence *= 1.2
			} else {
				confidence *= 0.8
			}

			if confidence < confidenceFloor {
				continue
			}

			p := model.ChordProgression{
				Name:       pattern.Name + " in " + possibleKey,
				Confidence: confidence,
			}
			for i := 0; i < size; i++ {
				p.ChordIndices = append(p.ChordIndices, start+i)
			}
			results = append(results, p)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	return results
}
