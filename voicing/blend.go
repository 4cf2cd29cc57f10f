package voicing

import "github.com/jlowell/chordshift/model"

type notePair struct {
	original uint8
	target   uint8
}

// blend interpolates each matched (original, target) pitch pair by
// pct/100, truncating toward zero. Unequal chord sizes are matched by
// greedy nearest pairing run in both directions so every note on both
// sides lands in at least one pair.
func blend(originalNotes, targetNotes model.Notes, pct float64) model.Notes {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	var pairs []notePair
	if len(originalNotes) == len(targetNotes) {
		for i := range originalNotes {
			pairs = append(pairs, notePair{originalNotes[i], targetNotes[i]})
		}
	} else {
		for _, orig := range originalNotes {
			pairs = append(pairs, notePair{orig, nearest(targetNotes, orig)})
		}
		for _, target := range targetNotes {
			covered := false
			for _, p := range pairs {
				if p.target == target {
					covered = true
					break
				}
			}
			if !covered {
				pairs = append(pairs, notePair{nearest(originalNotes, target), target})
			}
		}
	}

	result := make(model.Notes, 0, len(pairs))
	for _, p := range pairs {
		interpolated := int(p.original) + int(float64(int(p.target)-int(p.original))*(pct/100.0))
		result = append(result, uint8(interpolated))
	}
	return result
}

func nearest(notes model.Notes, to uint8) uint8 {
	var best uint8
	minDistance := -1
	for _, n := range notes {
		d := absInt(int(n) - int(to))
		if minDistance < 0 || d < minDistance {
			minDistance = d
			best = n
		}
	}
	return best
}
