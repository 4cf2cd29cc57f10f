package substitution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTritoneSub(t *testing.T) {
	e := NewEngine()
	results := e.FindByType("G7", "tritone sub")

	assert := assert.New(t)
	assert.Len(results, 1)
	assert.Equal("Db7", results[0].SubstituteChord)
}

func TestOptionsGroupsByFamily(t *testing.T) {
	e := NewEngine()
	options := e.Options("G7")

	assert := assert.New(t)
	assert.NotEmpty(options.CommonSubs)
	assert.NotEmpty(options.JazzSubs)
	assert.Len(options.Reharmonizations, 2)

	for _, s := range options.JazzSubs {
		assert.Contains([]string{"secondary dominant", "diminished sub", "extension"}, s.Relationship)
	}
}

func TestFindByFunctionSortsDescending(t *testing.T) {
	e := NewEngine()
	results := e.FindByFunction("C", 7)

	assert := assert.New(t)
	assert.NotEmpty(results)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(results[i-1].FunctionalSimilarity, results[i].FunctionalSimilarity)
	}
	for _, s := range results {
		assert.GreaterOrEqual(s.FunctionalSimilarity, 7)
	}
}

func TestFindByTensionBand(t *testing.T) {
	e := NewEngine()
	results := e.FindByTension("G7", -0.1, 0.2)

	assert := assert.New(t)
	assert.NotEmpty(results)
	for _, s := range results {
		assert.GreaterOrEqual(s.TensionChange, float32(-0.1))
		assert.LessOrEqual(s.TensionChange, float32(0.2))
	}
	// Sorted by absolute tension change, smallest first.
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(abs32(results[i-1].TensionChange), abs32(results[i].TensionChange))
	}
}

func TestUnknownChordHasNoSubs(t *testing.T) {
	e := NewEngine()
	options := e.Options("Zz9")

	assert := assert.New(t)
	assert.Empty(options.CommonSubs)
	assert.Empty(options.JazzSubs)
	assert.Empty(options.Reharmonizations)
}
