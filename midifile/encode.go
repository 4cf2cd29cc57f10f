package midifile

func append16BE(buf []uint8, value uint16) []uint8 {
	return append(buf, uint8(value>>8), uint8(value))
}

func append32BE(buf []uint8, value uint32) []uint8 {
	return append(buf, uint8(value>>24), uint8(value>>16), uint8(value>>8), uint8(value))
}

// Encode serializes f back to the chunked binary format. Status bytes
// are always written, so running status never survives a round trip;
// the event stream itself does.
func Encode(f *File) []uint8 {
	buf := append([]uint8(nil), headerMagic...)
	buf = append32BE(buf, 6)
	buf = append16BE(buf, f.Format)
	buf = append16BE(buf, f.NumTracks())
	buf = append16BE(buf, f.Division)

	for _, track := range f.Tracks {
		buf = append(buf, trackMagic...)

		// Length is back-patched once the events are written.
		lengthPos := len(buf)
		buf = append32BE(buf, 0)
		trackStart := len(buf)

		for _, event := range track.Events {
			buf = AppendVarLen(buf, event.DeltaTime)
			buf = append(buf, event.Status)
			if event.IsMeta {
				buf = append(buf, event.MetaType)
				buf = AppendVarLen(buf, uint32(len(event.Data)))
			}
			buf = append(buf, event.Data...)
		}

		trackLength := uint32(len(buf) - trackStart)
		buf[lengthPos] = uint8(trackLength >> 24)
		buf[lengthPos+1] = uint8(trackLength >> 16)
		buf[lengthPos+2] = uint8(trackLength >> 8)
		buf[lengthPos+3] = uint8(trackLength)
	}

	return buf
}
