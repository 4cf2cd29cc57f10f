package note

import (
	"testing"

	"github.com/jlowell/chordshift/midifile"
	"github.com/stretchr/testify/assert"
)

func channelEvent(delta uint32, status uint8, data ...uint8) midifile.Event {
	return midifile.Event{DeltaTime: delta, Status: status, Data: data}
}

func TestExtractPairsOnAndOff(t *testing.T) {
	f := &midifile.File{
		Format:   0,
		Division: 480,
		Tracks: []midifile.Track{{
			Events: []midifile.Event{
				channelEvent(0, 0x90, 60, 100),
				channelEvent(96, 0x80, 60, 0),
			},
		}},
	}

	notes := Extract(f)

	assert := assert.New(t)
	assert.Len(notes, 1)
	assert.Equal(uint8(60), notes[0].Pitch)
	assert.Equal(uint32(0), notes[0].StartTime)
	assert.Equal(uint32(96), notes[0].Duration)
	assert.Equal(uint8(100), notes[0].Velocity)
}

func TestExtractTreatsVelocityZeroAsOff(t *testing.T) {
	f := &midifile.File{
		Tracks: []midifile.Track{{
			Events: []midifile.Event{
				channelEvent(0, 0x91, 64, 80),
				channelEvent(120, 0x91, 64, 0),
			},
		}},
	}

	notes := Extract(f)

	assert := assert.New(t)
	assert.Len(notes, 1)
	assert.Equal(uint32(120), notes[0].Duration)
	assert.Equal(uint8(1), notes[0].Channel)
}

func TestExtractForceClosesAtTrackEnd(t *testing.T) {
	f := &midifile.File{
		Tracks: []midifile.Track{{
			Events: []midifile.Event{
				channelEvent(0, 0x90, 60, 100),
				channelEvent(0, 0x90, 64, 100),
				channelEvent(240, 0x80, 64, 0),
			},
		}},
	}

	notes := Extract(f)

	assert := assert.New(t)
	assert.Len(notes, 2)
	for _, n := range notes {
		assert.Equal(uint32(240), n.Duration)
	}
}

func TestExtractTracksIndependently(t *testing.T) {
	// Same pitch active on two tracks at once: each track's pairing
	// table is its own.
	track := midifile.Track{
		Events: []midifile.Event{
			channelEvent(0, 0x90, 60, 100),
			channelEvent(100, 0x80, 60, 0),
		},
	}
	f := &midifile.File{Tracks: []midifile.Track{track, track}}

	notes := Extract(f)
	assert.Len(t, notes, 2)
}

func TestExtractSortsByStartTime(t *testing.T) {
	f := &midifile.File{
		Tracks: []midifile.Track{
			{Events: []midifile.Event{
				channelEvent(500, 0x90, 72, 90),
				channelEvent(100, 0x80, 72, 0),
			}},
			{Events: []midifile.Event{
				channelEvent(0, 0x90, 60, 90),
				channelEvent(100, 0x80, 60, 0),
			}},
		},
	}

	notes := Extract(f)

	assert := assert.New(t)
	assert.Len(notes, 2)
	assert.Equal(uint8(60), notes[0].Pitch)
	assert.Equal(uint8(72), notes[1].Pitch)
}
