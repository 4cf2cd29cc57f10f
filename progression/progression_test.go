package progression

import (
	"testing"

	"github.com/jlowell/chordshift/model"
	"github.com/stretchr/testify/assert"
)

func named(names ...string) []model.Chord {
	chords := make([]model.Chord, len(names))
	for i, n := range names {
		chords[i] = model.Chord{Name: n}
	}
	return chords
}

func TestDetectTwoFiveOne(t *testing.T) {
	results := Detect(named("Dm7", "G7", "Cmaj7"))

	assert := assert.New(t)
	assert.NotEmpty(results)
	assert.Equal("ii-V-I in D", results[0].Name)
	assert.Equal([]int{0, 1, 2}, results[0].ChordIndices)
	assert.GreaterOrEqual(results[0].Confidence, 0.6)
}

func TestDetectOneFourFive(t *testing.T) {
	results := Detect(named("C", "F", "G"))

	assert := assert.New(t)
	assert.NotEmpty(results)

	found := false
	for _, r := range results {
		if r.Name == "I-IV-V in C" {
			found = true
		}
	}
	assert.True(found)
}

func TestDetectWindowsThroughLongerSequences(t *testing.T) {
	results := Detect(named("Am", "Dm7", "G7", "Cmaj7"))

	found := false
	for _, r := range results {
		if r.Name == "ii-V-I in D" {
			assert.Equal(t, []int{1, 2, 3}, r.ChordIndices)
			found = true
		}
	}
	assert.True(t, found)
}

func TestDetectSortsByConfidence(t *testing.T) {
	results := Detect(named("C", "F", "G", "Dm7", "G7", "Cmaj7"))

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Confidence, results[i].Confidence)
	}
}

func TestDetectNeedsTwoChords(t *testing.T) {
	assert.Empty(t, Detect(named("C")))
	assert.Empty(t, Detect(nil))
}
