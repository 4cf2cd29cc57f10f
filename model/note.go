package model

type Notes = []uint8

// Note is an absolute-time note interval extracted from a track's
// on/off event pairs. Immutable once extracted.
type Note struct {
	Pitch     uint8
	StartTime uint32
	Duration  uint32
	Velocity  uint8
	Channel   uint8
}
