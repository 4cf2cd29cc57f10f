// Package note turns the codec's flat event stream into absolute-time
// note intervals.
package note

import (
	"sort"

	"github.com/jlowell/chordshift/midifile"
	"github.com/jlowell/chordshift/model"
)

type activeNote struct {
	startTime uint32
	velocity  uint8
	channel   uint8
}

// Extract pairs note-on events against their note-off (or velocity-0
// note-on) per track. Notes still sounding at track end are closed at
// the track's final absolute time. The result is sorted by start time;
// equal starts keep insertion order.
func Extract(f *midifile.File) []model.Note {
	var notes []model.Note

	for _, track := range f.Tracks {
		active := make(map[uint8]activeNote)
		var absoluteTime uint32

		for _, event := range track.Events {
			absoluteTime += event.DeltaTime
			if event.IsMeta {
				continue
			}

			eventType := event.Status & 0xF0
			channel := event.Status & 0x0F

			switch {
			case eventType == midifile.StatusNoteOn && len(event.Data) >= 2:
				pitch := event.Data[0]
				velocity := event.Data[1]
				if velocity > 0 {
					active[pitch] = activeNote{absoluteTime, velocity, channel}
				} else if a, ok := active[pitch]; ok {
					notes = append(notes, model.Note{
						Pitch:     pitch,
						StartTime: a.startTime,
						Duration:  absoluteTime - a.startTime,
						Velocity:  a.velocity,
						Channel:   a.channel,
					})
					delete(active, pitch)
				}
			case eventType == midifile.StatusNoteOff && len(event.Data) >= 2:
				pitch := event.Data[0]
				if a, ok := active[pitch]; ok {
					notes = append(notes, model.Note{
						Pitch:     pitch,
						StartTime: a.startTime,
						Duration:  absoluteTime - a.startTime,
						Velocity:  a.velocity,
						Channel:   a.channel,
					})
					delete(active, pitch)
				}
			}
		}

		// Force-close anything left hanging at track end. Iterate in
		// pitch order so the output is deterministic.
		leftover := make([]uint8, 0, len(active))
		for pitch := range active {
			leftover = append(leftover, pitch)
		}
		sort.Slice(leftover, func(i, j int) bool { return leftover[i] < leftover[j] })
		for _, pitch := range leftover {
			a := active[pitch]
			notes = append(notes, model.Note{
				Pitch:     pitch,
				StartTime: a.startTime,
				Duration:  absoluteTime - a.startTime,
				Velocity:  a.velocity,
				Channel:   a.channel,
			})
		}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].StartTime < notes[j].StartTime
	})
	return notes
}
