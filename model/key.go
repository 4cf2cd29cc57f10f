package model

// KeySignature describes one of the 30 major/minor keys. Instances are
// built once at startup and never mutated.
type KeySignature struct {
	RootNote     string
	IsMajor      bool
	ScaleDegrees []uint8 // 7 pitch classes, mod 12

	// DiatonicChords maps scale degree (1-7) to the chord quality
	// built on that degree under standard diatonic harmony.
	DiatonicChords map[int]string
}

// ScaleConstraint lists the notes and chords usable under one scale
// interpretation of a key (main scale, parallel minor, harmonic or
// melodic minor).
type ScaleConstraint struct {
	ScaleType     string
	RootNote      uint8
	AllowedNotes  []uint8
	AllowedChords []string
}
