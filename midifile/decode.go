package midifile

import "fmt"

var headerMagic = []uint8{'M', 'T', 'h', 'd'}
var trackMagic = []uint8{'M', 'T', 'r', 'k'}

func read16BE(data []uint8, pos int) (uint16, error) {
	if pos+1 >= len(data) {
		return 0, fmt.Errorf("unexpected end of data at position %v while reading 16-bit value", pos)
	}
	return uint16(data[pos])<<8 | uint16(data[pos+1]), nil
}

func read32BE(data []uint8, pos int) (uint32, error) {
	if pos+3 >= len(data) {
		return 0, fmt.Errorf("unexpected end of data at position %v while reading 32-bit value", pos)
	}
	return uint32(data[pos])<<24 | uint32(data[pos+1])<<16 |
		uint32(data[pos+2])<<8 | uint32(data[pos+3]), nil
}

func hasMagic(data []uint8, pos int, magic []uint8) bool {
	if pos+len(magic) > len(data) {
		return false
	}
	for i, b := range magic {
		if data[pos+i] != b {
			return false
		}
	}
	return true
}

// dataByteCount gives the payload size for a channel-voice event type
// (the status high nibble). Returns 0 for unrecognized types.
func dataByteCount(eventType uint8) int {
	switch eventType {
	case StatusNoteOff, StatusNoteOn, StatusPolyAftertouch,
		StatusControlChange, StatusPitchBend:
		return 2
	case StatusProgramChange, StatusChannelAftertouch:
		return 1
	default:
		return 0
	}
}

// Decode parses a whole file buffer. Malformed magic numbers,
// truncated headers and overrunning track lengths abort the decode.
// Unrecognized channel-voice events are skipped by scanning forward
// to the next status byte.
func Decode(data []uint8) (*File, error) {
	if len(data) < 14 || !hasMagic(data, 0, headerMagic) {
		return nil, fmt.Errorf("invalid file header")
	}

	pos := 4
	headerLength, err := read32BE(data, pos)
	if err != nil {
		return nil, err
	}
	if headerLength != 6 {
		return nil, fmt.Errorf("unexpected header length %v at position %v", headerLength, pos)
	}
	pos += 4

	var f File
	if f.Format, err = read16BE(data, pos); err != nil {
		return nil, err
	}
	pos += 2
	numTracks, err := read16BE(data, pos)
	if err != nil {
		return nil, err
	}
	pos += 2
	if f.Division, err = read16BE(data, pos); err != nil {
		return nil, err
	}
	pos += 2

	for i := uint16(0); i < numTracks; i++ {
		if pos+8 > len(data) || !hasMagic(data, pos, trackMagic) {
			return nil, fmt.Errorf("invalid track header at position %v", pos)
		}
		pos += 4
		trackLength, err := read32BE(data, pos)
		if err != nil {
			return nil, err
		}
		pos += 4

		trackEnd := pos + int(trackLength)
		if trackEnd > len(data) {
			return nil, fmt.Errorf("track length exceeds file size at position %v", pos)
		}

		track, newPos, err := decodeTrack(data, pos, trackEnd)
		if err != nil {
			return nil, err
		}
		pos = newPos
		f.Tracks = append(f.Tracks, track)
	}

	return &f, nil
}

func decodeTrack(data []uint8, pos, trackEnd int) (Track, int, error) {
	track := Track{Name: "Unnamed Track"}
	var runningStatus uint8

	// Set while recovering from an unknown event: the resync landed on
	// a status byte, so there is no delta time to read for it.
	resynced := false

	for pos < trackEnd {
		var event Event
		var err error
		if resynced {
			resynced = false
		} else {
			event.DeltaTime, pos, err = ReadVarLen(data, pos)
			if err != nil {
				return track, pos, err
			}
		}
		if pos >= trackEnd {
			return track, pos, fmt.Errorf("truncated event at position %v", pos)
		}

		if data[pos]&0x80 != 0 {
			event.Status = data[pos]
			runningStatus = event.Status
			pos++
		} else {
			// Running status: reuse the previous status byte.
			event.Status = runningStatus
		}

		if event.Status == StatusMeta {
			event.IsMeta = true
			if pos >= trackEnd {
				return track, pos, fmt.Errorf("truncated meta event at position %v", pos)
			}
			event.MetaType = data[pos]
			pos++

			var length uint32
			length, pos, err = ReadVarLen(data, pos)
			if err != nil {
				return track, pos, err
			}
			if pos+int(length) > trackEnd {
				return track, pos, fmt.Errorf("meta event length exceeds track at position %v", pos)
			}
			event.Data = append([]uint8(nil), data[pos:pos+int(length)]...)
			pos += int(length)

			if event.MetaType == MetaTrackName {
				track.Name = string(event.Data)
			}
		} else {
			eventType := event.Status & 0xF0
			n := dataByteCount(eventType)
			if n == 0 {
				// Unknown event type: resynchronize at the next
				// status byte and keep going.
				fmt.Printf("Warning: unknown event type 0x%X at position %v\n", eventType, pos)
				for pos < trackEnd && data[pos]&0x80 == 0 {
					pos++
				}
				resynced = true
				continue
			}
			if pos+n > trackEnd {
				return track, pos, fmt.Errorf("truncated event data at position %v", pos)
			}
			event.Data = append([]uint8(nil), data[pos:pos+n]...)
			pos += n
		}

		track.Events = append(track.Events, event)
	}

	return track, pos, nil
}
