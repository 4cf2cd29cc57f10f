// Package midifile implements the binary track-event format: a 4-byte
// MThd header chunk followed by MTrk chunks of delta-time/status/data
// triples, with variable-length delta times and running status.
package midifile

// Channel-voice status bytes (high nibble).
const (
	StatusNoteOff           = 0x80
	StatusNoteOn            = 0x90
	StatusPolyAftertouch    = 0xA0
	StatusControlChange     = 0xB0
	StatusProgramChange     = 0xC0
	StatusChannelAftertouch = 0xD0
	StatusPitchBend         = 0xE0
	StatusMeta              = 0xFF
)

// Meta event types.
const (
	MetaSequenceNumber = 0x00
	MetaText           = 0x01
	MetaCopyright      = 0x02
	MetaTrackName      = 0x03
	MetaInstrument     = 0x04
	MetaLyrics         = 0x05
	MetaMarker         = 0x06
	MetaCuePoint       = 0x07
	MetaChannelPrefix  = 0x20
	MetaEndOfTrack     = 0x2F
	MetaSetTempo       = 0x51
	MetaSMPTEOffset    = 0x54
	MetaTimeSignature  = 0x58
	MetaKeySignature   = 0x59
	MetaSequencerSpec  = 0x7F
)

type Event struct {
	DeltaTime uint32
	Status    uint8
	Data      []uint8

	IsMeta   bool
	MetaType uint8
}

type Track struct {
	Name   string
	Events []Event
}

type File struct {
	Format   uint16
	Division uint16
	Tracks   []Track
}

// NumTracks reports the track count that will be written to the
// header chunk.
func (f *File) NumTracks() uint16 {
	return uint16(len(f.Tracks))
}
