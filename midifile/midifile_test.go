package midifile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// minimalFile is a 1-track file with one note-on/note-off pair and an
// end-of-track marker, written without running status.
func minimalFile() []uint8 {
	return []uint8{
		'M', 'T', 'h', 'd',
		0x00, 0x00, 0x00, 0x06,
		0x00, 0x00, // format 0
		0x00, 0x01, // 1 track
		0x01, 0xE0, // division 480
		'M', 'T', 'r', 'k',
		0x00, 0x00, 0x00, 0x0C,
		0x00, 0x90, 0x3C, 0x64, // note on C4
		0x60, 0x80, 0x3C, 0x00, // note off after 96 ticks
		0x00, 0xFF, 0x2F, 0x00, // end of track
	}
}

func TestDecodeEncodeRoundTripBytes(t *testing.T) {
	original := minimalFile()
	f, err := Decode(original)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(original, Encode(f))
}

func TestDecodeHeaderFields(t *testing.T) {
	f, err := Decode(minimalFile())

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(uint16(0), f.Format)
	assert.Equal(uint16(1), f.NumTracks())
	assert.Equal(uint16(480), f.Division)
	assert.Len(f.Tracks[0].Events, 3)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	data := minimalFile()
	data[0] = 'X'
	_, err := Decode(data)
	assert.Error(t, err)
}

func TestDecodeRejectsShortHeader(t *testing.T) {
	_, err := Decode([]uint8{'M', 'T', 'h', 'd', 0, 0, 0, 6})
	assert.Error(t, err)
}

func TestDecodeRejectsBadHeaderLength(t *testing.T) {
	data := minimalFile()
	data[7] = 7
	_, err := Decode(data)
	assert.Error(t, err)
}

func TestDecodeRejectsBadTrackMagic(t *testing.T) {
	data := minimalFile()
	data[14] = 'X'
	_, err := Decode(data)
	assert.Error(t, err)
}

func TestDecodeRejectsTrackLengthOverrun(t *testing.T) {
	data := minimalFile()
	data[21] = 0xFF
	_, err := Decode(data)
	assert.Error(t, err)
}

func TestDecodeRunningStatus(t *testing.T) {
	data := []uint8{
		'M', 'T', 'h', 'd',
		0x00, 0x00, 0x00, 0x06,
		0x00, 0x00,
		0x00, 0x01,
		0x01, 0xE0,
		'M', 'T', 'r', 'k',
		0x00, 0x00, 0x00, 0x0B,
		0x00, 0x90, 0x3C, 0x64, // note on C4
		0x00, 0x40, 0x64, // running status: note on E4
		0x00, 0xFF, 0x2F, 0x00,
	}

	f, err := Decode(data)

	assert := assert.New(t)
	assert.NoError(err)

	events := f.Tracks[0].Events
	assert.Len(events, 3)
	assert.Equal(uint8(0x90), events[0].Status)
	assert.Equal(uint8(0x90), events[1].Status)
	assert.Equal([]uint8{0x40, 0x64}, events[1].Data)
}

func TestDecodeResyncsAfterUnknownEvent(t *testing.T) {
	data := []uint8{
		'M', 'T', 'h', 'd',
		0x00, 0x00, 0x00, 0x06,
		0x00, 0x00,
		0x00, 0x01,
		0x01, 0xE0,
		'M', 'T', 'r', 'k',
		0x00, 0x00, 0x00, 0x0F,
		0x00, 0xF0, 0x01, 0x02, // unknown event, skipped
		0x90, 0x3C, 0x64, // note on, picked up after resync
		0x60, 0x80, 0x3C, 0x00,
		0x00, 0xFF, 0x2F, 0x00,
	}

	f, err := Decode(data)

	assert := assert.New(t)
	assert.NoError(err)

	events := f.Tracks[0].Events
	assert.Len(events, 3)
	assert.Equal(uint8(0x90), events[0].Status)
	assert.Equal([]uint8{0x3C, 0x64}, events[0].Data)
}

func TestDecodeExtractsTrackName(t *testing.T) {
	name := []uint8("Piano")
	track := []uint8{0x00, 0xFF, 0x03, uint8(len(name))}
	track = append(track, name...)
	track = append(track, 0x00, 0xFF, 0x2F, 0x00)

	data := []uint8{
		'M', 'T', 'h', 'd',
		0x00, 0x00, 0x00, 0x06,
		0x00, 0x00,
		0x00, 0x01,
		0x01, 0xE0,
		'M', 'T', 'r', 'k',
		0x00, 0x00, 0x00, uint8(len(track)),
	}
	data = append(data, track...)

	f, err := Decode(data)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("Piano", f.Tracks[0].Name)
}

// The decoder must agree with the reference SMF writer about what a
// file contains.
func TestDecodeAgreesWithReferenceWriter(t *testing.T) {
	var track smf.Track
	track.Add(0, midi.NoteOn(0, 60, 100))
	track.Add(96, midi.NoteOff(0, 60))
	track.Close(0)

	ref := smf.New()
	ref.TimeFormat = smf.MetricTicks(480)
	ref.Add(track)

	var buf bytes.Buffer
	_, err := ref.WriteTo(&buf)

	assert := assert.New(t)
	assert.NoError(err)

	f, err := Decode(buf.Bytes())
	assert.NoError(err)
	assert.Equal(uint16(480), f.Division)
	assert.Equal(uint16(1), f.NumTracks())

	var sawNoteOn, sawNoteOff bool
	for _, event := range f.Tracks[0].Events {
		switch event.Status & 0xF0 {
		case StatusNoteOn:
			if event.Data[0] == 60 && event.Data[1] > 0 {
				sawNoteOn = true
			}
		case StatusNoteOff:
			if event.Data[0] == 60 {
				sawNoteOff = true
			}
		}
		// Note-on with velocity 0 is the other spelling of note off.
		if event.Status&0xF0 == StatusNoteOn && event.Data[0] == 60 && event.Data[1] == 0 {
			sawNoteOff = true
		}
	}
	assert.True(sawNoteOn)
	assert.True(sawNoteOff)
}
