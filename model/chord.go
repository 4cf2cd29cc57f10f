package model

// ChordSnapshot is the state of a chord before its very first
// transformation. Once set it is never replaced.
type ChordSnapshot struct {
	Notes Notes
	Name  string
}

type Chord struct {
	Notes     Notes
	Name      string
	StartTime uint32
	Duration  uint32

	// Original is nil until the chord is transformed for the first
	// time. Subsequent transformations must not touch it.
	Original *ChordSnapshot
}

func (c *Chord) IsTransformed() bool {
	return c.Original != nil
}

// Clone returns a deep copy so history entries and engine inputs
// don't alias the live chord collection.
func (c *Chord) Clone() Chord {
	dup := *c
	dup.Notes = append(Notes(nil), c.Notes...)
	if c.Original != nil {
		orig := *c.Original
		orig.Notes = append(Notes(nil), c.Original.Notes...)
		dup.Original = &orig
	}
	return dup
}
