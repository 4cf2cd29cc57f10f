package voicing

import "github.com/jlowell/chordshift/model"

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// movementCost sums, for each original pitch, the distance to its
// nearest candidate pitch, with penalties for overshooting the voice
// movement ceiling and for voice-count mismatches.
func (e *Engine) movementCost(originalNotes, newNotes model.Notes) int {
	cost := 0
	if e.options.MaintainVoiceCount && len(originalNotes) != len(newNotes) {
		cost += voiceCountPenalty
	}

	for _, orig := range originalNotes {
		minDistance := -1
		for _, candidate := range newNotes {
			d := absInt(int(candidate) - int(orig))
			if minDistance < 0 || d < minDistance {
				minDistance = d
			}
		}
		if minDistance < 0 {
			continue
		}
		if minDistance > e.options.MaxVoiceMovement {
			cost += (minDistance - e.options.MaxVoiceMovement) * overagePenalty
		}
		cost += minDistance
	}

	if e.options.MinimizeMovement {
		cost *= 2
	}
	return cost
}

// hasParallels reports whether the candidate reproduces a perfect
// fifth or octave interval from the original chord with both voices
// moving the same direction.
func hasParallels(originalNotes, newNotes model.Notes) bool {
	if len(originalNotes) < 2 || len(newNotes) < 2 {
		return false
	}

	for i := 0; i < len(originalNotes); i++ {
		for j := i + 1; j < len(originalNotes); j++ {
			originalInterval := absInt(int(originalNotes[i])-int(originalNotes[j])) % 12
			if originalInterval != 7 && originalInterval != 0 {
				continue
			}

			// Voices correspond by index, clamped when the candidate
			// is smaller.
			newI := i
			if newI >= len(newNotes) {
				newI = 0
			}
			newJ := j
			if newJ >= len(newNotes) {
				newJ = len(newNotes) - 1
			}

			newInterval := absInt(int(newNotes[newI])-int(newNotes[newJ])) % 12
			if newInterval != originalInterval {
				continue
			}

			iMoved := originalNotes[i] != newNotes[newI]
			jMoved := originalNotes[j] != newNotes[newJ]
			if !iMoved || !jMoved {
				continue
			}

			iUp := newNotes[newI] > originalNotes[i]
			jUp := newNotes[newJ] > originalNotes[j]
			if iUp == jUp {
				return true
			}
		}
	}
	return false
}

// AnalyzeMovement pairs each original pitch with its nearest candidate
// pitch and reports the per-voice motion; unmatched candidate pitches
// appear as zero-movement entries.
func (e *Engine) AnalyzeMovement(originalNotes, newNotes model.Notes) []model.VoiceMovement {
	var movements []model.VoiceMovement

	for _, orig := range originalNotes {
		var closest uint8
		minDistance := -1
		for _, candidate := range newNotes {
			d := absInt(int(candidate) - int(orig))
			if minDistance < 0 || d < minDistance {
				minDistance = d
				closest = candidate
			}
		}

		move := int(closest) - int(orig)
		movements = append(movements, model.VoiceMovement{
			OriginalPitch: orig,
			NewPitch:      closest,
			Movement:      move,
			SmallestMove:  absInt(move) <= e.options.MaxVoiceMovement,
		})
	}

	for _, candidate := range newNotes {
		matched := false
		for _, m := range movements {
			if m.NewPitch == candidate {
				matched = true
				break
			}
		}
		if !matched {
			movements = append(movements, model.VoiceMovement{
				NewPitch:     candidate,
				SmallestMove: true,
			})
		}
	}

	return movements
}
