package key

import (
	"testing"

	"github.com/jlowell/chordshift/model"
	"github.com/stretchr/testify/assert"
)

func namedChord(name string, notes ...uint8) model.Chord {
	return model.Chord{Name: name, Notes: notes}
}

func TestDetectorBuildsThirtyKeys(t *testing.T) {
	d := NewDetector()
	assert := assert.New(t)
	assert.Len(d.AllKeyNames(), 30)

	c := d.KeySignature("C")
	assert.NotNil(c)
	assert.True(c.IsMajor)
	assert.Equal([]uint8{0, 2, 4, 5, 7, 9, 11}, c.ScaleDegrees)

	am := d.KeySignature("Am")
	assert.NotNil(am)
	assert.False(am.IsMajor)
	assert.Equal([]uint8{9, 11, 0, 2, 4, 5, 7}, am.ScaleDegrees)
}

func TestDetectCFGIsCMajor(t *testing.T) {
	d := NewDetector()
	chords := []model.Chord{
		namedChord("C", 60, 64, 67),
		namedChord("F", 65, 69, 72),
		namedChord("G", 67, 71, 74),
	}

	key := d.Detect(chords)

	assert := assert.New(t)
	assert.NotNil(key)
	assert.Equal("C", key.RootNote)
	assert.True(key.IsMajor)
}

func TestDetectMinorProgression(t *testing.T) {
	d := NewDetector()
	chords := []model.Chord{
		namedChord("Am", 57, 60, 64),
		namedChord("Dm", 62, 65, 69),
		namedChord("Em", 64, 67, 71),
	}

	key := d.Detect(chords)

	assert := assert.New(t)
	assert.NotNil(key)
	assert.Equal("A", key.RootNote)
	assert.False(key.IsMajor)
}

func TestDetectEmptyChordListReturnsNil(t *testing.T) {
	d := NewDetector()
	assert.Nil(t, d.Detect(nil))
}

func TestDiatonicChordQualities(t *testing.T) {
	d := NewDetector()
	assert := assert.New(t)

	c := d.KeySignature("C")
	assert.Equal("", c.DiatonicChords[1])
	assert.Equal("m", c.DiatonicChords[2])
	assert.Equal("dim", c.DiatonicChords[7])

	am := d.KeySignature("Am")
	assert.Equal("m", am.DiatonicChords[1])
	assert.Equal("dim", am.DiatonicChords[2])
	assert.Equal("", am.DiatonicChords[7])
}

func TestScaleConstraintsMajor(t *testing.T) {
	d := NewDetector()
	constraints := ScaleConstraints(d.KeySignature("C"))

	assert := assert.New(t)
	assert.Len(constraints, 2)
	assert.Equal("major", constraints[0].ScaleType)
	assert.Contains(constraints[0].AllowedChords, "C")
	assert.Contains(constraints[0].AllowedChords, "Dm")
	assert.Contains(constraints[0].AllowedChords, "Bdim")
	assert.Equal("parallel minor", constraints[1].ScaleType)
	assert.Contains(constraints[1].AllowedChords, "Cm")
}

func TestScaleConstraintsMinor(t *testing.T) {
	d := NewDetector()
	constraints := ScaleConstraints(d.KeySignature("Am"))

	assert := assert.New(t)
	assert.Len(constraints, 3)
	assert.Equal("harmonic minor", constraints[1].ScaleType)
	assert.Contains(constraints[1].AllowedChords, "E7")
	assert.Equal("melodic minor", constraints[2].ScaleType)
	assert.Contains(constraints[2].AllowedChords, "Am6")
}

func TestScaleConstraintsNilKey(t *testing.T) {
	assert.Nil(t, ScaleConstraints(nil))
}
