package midifile

import "fmt"

// ReadVarLen decodes a variable-length quantity starting at pos:
// 7 bits per byte, continuation bit on all but the last byte, most
// significant group first. Returns the value and the position just
// past the last byte consumed.
func ReadVarLen(data []uint8, pos int) (uint32, int, error) {
	var value uint32
	for {
		if pos >= len(data) {
			return 0, pos, fmt.Errorf("unexpected end of data at position %v while reading variable-length value", pos)
		}
		b := data[pos]
		pos++
		value = (value << 7) | uint32(b&0x7F)
		if b&0x80 == 0 {
			return value, pos, nil
		}
	}
}

// AppendVarLen encodes value by extracting 7-bit groups least
// significant first into a scratch buffer, then appending that buffer
// in reverse so the stream ends up most-significant-group-first. The
// direction asymmetry with ReadVarLen is what makes round trips exact.
func AppendVarLen(buf []uint8, value uint32) []uint8 {
	scratch := []uint8{uint8(value & 0x7F)}
	for value >>= 7; value > 0; value >>= 7 {
		scratch = append(scratch, uint8(value&0x7F)|0x80)
	}
	for i := len(scratch) - 1; i >= 0; i-- {
		buf = append(buf, scratch[i])
	}
	return buf
}
