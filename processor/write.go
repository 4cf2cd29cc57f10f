package processor

import (
	"fmt"
	"sort"

	"github.com/jlowell/chordshift/chord"
	"github.com/jlowell/chordshift/midifile"
	"github.com/jlowell/chordshift/model"
)

// chordRemap rewrites the note events of one transformed chord: the
// pitches from the first-ever original state map onto the current
// notes, and target pitches no original note covers are inserted as
// fresh events.
type chordRemap struct {
	start    uint32
	duration uint32
	pitchMap map[uint8]uint8
	extras   model.Notes
	placed   bool
}

func buildRemap(c *model.Chord) *chordRemap {
	r := &chordRemap{
		start:    c.StartTime,
		duration: c.Duration,
		pitchMap: make(map[uint8]uint8),
	}

	orig := append(model.Notes(nil), c.Original.Notes...)
	next := append(model.Notes(nil), c.Notes...)
	sort.Slice(orig, func(i, j int) bool { return orig[i] < orig[j] })
	sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })

	covered := make(map[uint8]bool)
	if len(orig) == len(next) {
		for i, op := range orig {
			r.pitchMap[op] = next[i]
			covered[next[i]] = true
		}
	} else {
		for _, op := range orig {
			best := next[0]
			for _, np := range next[1:] {
				if absPitchDiff(np, op) < absPitchDiff(best, op) {
					best = np
				}
			}
			r.pitchMap[op] = best
			covered[best] = true
		}
	}

	for _, np := range next {
		if !covered[np] {
			r.extras = append(r.extras, np)
		}
	}
	return r
}

func absPitchDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

// Encode re-serializes the loaded file with every transformed chord's
// note events rewritten to the chord's current pitches. Untouched
// events pass through unchanged.
func (p *Processor) Encode() ([]uint8, error) {
	if p.file == nil {
		return nil, fmt.Errorf("no file loaded")
	}

	var remaps []*chordRemap
	for i := range p.chords {
		if p.chords[i].IsTransformed() {
			remaps = append(remaps, buildRemap(&p.chords[i]))
		}
	}

	out := &midifile.File{
		Format:   p.file.Format,
		Division: p.file.Division,
	}
	for i := range p.file.Tracks {
		out.Tracks = append(out.Tracks, rebuildTrack(&p.file.Tracks[i], remaps))
	}
	return midifile.Encode(out), nil
}

type absEvent struct {
	time  uint32
	event midifile.Event
}

func rebuildTrack(t *midifile.Track, remaps []*chordRemap) midifile.Track {
	var events []absEvent
	var now uint32
	for _, ev := range t.Events {
		now += ev.DeltaTime
		dup := ev
		dup.Data = append([]uint8(nil), ev.Data...)
		events = append(events, absEvent{time: now, event: dup})
	}

	// Pitches currently sounding under a remapped name, keyed by
	// channel and original pitch so the matching off event follows.
	active := make(map[[2]uint8]uint8)
	inserted := false

	for i := range events {
		ev := &events[i].event
		if ev.IsMeta || len(ev.Data) < 2 {
			continue
		}
		statusType := ev.Status & 0xF0
		channel := ev.Status & 0x0F
		pitch := ev.Data[0]

		switch {
		case statusType == midifile.StatusNoteOn && ev.Data[1] > 0:
			for _, r := range remaps {
				newPitch, ok := r.pitchMap[pitch]
				if !ok || absDiff32(events[i].time, r.start) > chord.DefaultTimeTolerance {
					continue
				}
				active[[2]uint8{channel, pitch}] = newPitch
				ev.Data[0] = newPitch
				if !r.placed {
					r.placed = true
					for _, extra := range r.extras {
						events = append(events,
							absEvent{time: r.start, event: midifile.Event{
								Status: midifile.StatusNoteOn | channel,
								Data:   []uint8{extra, ev.Data[1]},
							}},
							absEvent{time: r.start + r.duration, event: midifile.Event{
								Status: midifile.StatusNoteOff | channel,
								Data:   []uint8{extra, 0},
							}})
						inserted = true
					}
				}
				break
			}
		case statusType == midifile.StatusNoteOff,
			statusType == midifile.StatusNoteOn && ev.Data[1] == 0:
			key := [2]uint8{channel, pitch}
			if newPitch, ok := active[key]; ok {
				ev.Data[0] = newPitch
				delete(active, key)
			}
		}
	}

	if inserted {
		sort.SliceStable(events, func(i, j int) bool { return events[i].time < events[j].time })
		// End-of-track must stay terminal even when an inserted note
		// outlasts it.
		for i := range events {
			if events[i].event.IsMeta && events[i].event.MetaType == midifile.MetaEndOfTrack {
				end := events[i]
				events = append(events[:i], events[i+1:]...)
				if len(events) > 0 && events[len(events)-1].time > end.time {
					end.time = events[len(events)-1].time
				}
				events = append(events, end)
				break
			}
		}
	}

	rebuilt := midifile.Track{Name: t.Name}
	var prev uint32
	for _, ae := range events {
		ev := ae.event
		ev.DeltaTime = ae.time - prev
		prev = ae.time
		rebuilt.Events = append(rebuilt.Events, ev)
	}
	return rebuilt
}

func absDiff32(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
