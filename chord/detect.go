// Package chord groups simultaneous notes into named chords.
package chord

import (
	"sort"

	"github.com/jlowell/chordshift/model"
)

// DefaultTimeTolerance is the clustering window in ticks.
const DefaultTimeTolerance = 120

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

// Detect clusters notes whose starts fall within tolerance of an
// existing cluster's anchor. The anchor is fixed when the cluster is
// opened and never re-centered, so two clusters can end up within
// 2*tolerance of each other; that drift is accepted, changing it would
// change detection output. Clusters with fewer than 3 distinct pitches
// are dropped.
func Detect(notes []model.Note, tolerance uint32) []model.Chord {
	if len(notes) == 0 {
		return nil
	}

	timeToNotes := make(map[uint32]model.Notes)
	var anchors []uint32

	for _, n := range notes {
		matched := false
		for _, anchor := range anchors {
			if absDiff(n.StartTime, anchor) <= tolerance {
				timeToNotes[anchor] = append(timeToNotes[anchor], n.Pitch)
				matched = true
				break
			}
		}
		if !matched {
			anchors = append(anchors, n.StartTime)
			timeToNotes[n.StartTime] = append(timeToNotes[n.StartTime], n.Pitch)
		}
	}

	sort.Slice(anchors, func(i, j int) bool { return anchors[i] < anchors[j] })

	var chords []model.Chord
	for i, startTime := range anchors {
		pitches := dedupeSorted(timeToNotes[startTime])
		if len(pitches) < 3 {
			continue
		}

		c := model.Chord{
			Notes:     pitches,
			Name:      Identify(pitches),
			StartTime: startTime,
		}

		if i < len(anchors)-1 {
			c.Duration = anchors[i+1] - startTime
		} else {
			// Last chord: longest note duration within the window.
			var maxDuration uint32
			for _, n := range notes {
				if absDiff(n.StartTime, startTime) <= tolerance && n.Duration > maxDuration {
					maxDuration = n.Duration
				}
			}
			c.Duration = maxDuration
		}

		chords = append(chords, c)
	}

	return chords
}

func dedupeSorted(pitches model.Notes) model.Notes {
	dup := append(model.Notes(nil), pitches...)
	sort.Slice(dup, func(i, j int) bool { return dup[i] < dup[j] })

	out := dup[:0]
	for i, p := range dup {
		if i == 0 || p != dup[i-1] {
			out = append(out, p)
		}
	}
	return out
}
