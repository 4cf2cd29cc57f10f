package processor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jlowell/chordshift/midifile"
	"github.com/jlowell/chordshift/model"
	"github.com/stretchr/testify/assert"
)

// makeTestBytes builds a one-track file holding a C-F-G progression,
// one chord per 960 ticks.
func makeTestBytes() []uint8 {
	chords := []model.Notes{
		{60, 64, 67}, // C
		{65, 69, 72}, // F
		{67, 71, 74}, // G
	}

	var events []midifile.Event
	on := func(delta uint32, pitch uint8) {
		events = append(events, midifile.Event{DeltaTime: delta, Status: 0x90, Data: []uint8{pitch, 100}})
	}
	off := func(delta uint32, pitch uint8) {
		events = append(events, midifile.Event{DeltaTime: delta, Status: 0x80, Data: []uint8{pitch, 0}})
	}

	for i, c := range chords {
		if i == 0 {
			on(0, c[0])
		} else {
			// Previous chord releases right as this one starts.
			off(960, chords[i-1][0])
			off(0, chords[i-1][1])
			off(0, chords[i-1][2])
			on(0, c[0])
		}
		on(0, c[1])
		on(0, c[2])
	}
	last := chords[len(chords)-1]
	off(960, last[0])
	off(0, last[1])
	off(0, last[2])
	events = append(events, midifile.Event{Status: 0xFF, IsMeta: true, MetaType: midifile.MetaEndOfTrack})

	f := &midifile.File{
		Format:   0,
		Division: 480,
		Tracks:   []midifile.Track{{Events: events}},
	}
	return midifile.Encode(f)
}

func TestLoadDetectsChordsAndKey(t *testing.T) {
	p := New()
	err := p.Load(makeTestBytes())

	assert := assert.New(t)
	assert.NoError(err)
	assert.True(p.Loaded())
	assert.Equal(3, p.NumChords())

	chords := p.Chords()
	assert.Equal("C", chords[0].Name)
	assert.Equal("F", chords[1].Name)
	assert.Equal("G", chords[2].Name)

	k := p.DetectKey()
	assert.NotNil(k)
	assert.Equal("C", k.RootNote)
	assert.True(k.IsMajor)
}

func TestLoadFailureKeepsSession(t *testing.T) {
	p := New()
	assert.NoError(t, p.Load(makeTestBytes()))

	err := p.Load([]uint8{'M', 'T', 'x', 'x'})
	assert := assert.New(t)
	assert.Error(err)
	assert.Equal(3, p.NumChords())
}

func TestFileHash(t *testing.T) {
	assert := assert.New(t)
	assert.Len(FileHash([]uint8{1, 2, 3}), 16)
	assert.Equal(FileHash([]uint8{1, 2, 3}), FileHash([]uint8{1, 2, 3}))
	assert.NotEqual(FileHash([]uint8{1, 2, 3}), FileHash([]uint8{3, 2, 1}))
	assert.Equal("0000000000000000", FileHash(nil))
}

func TestTransformSetsOriginalOnce(t *testing.T) {
	p := New()
	assert.NoError(t, p.Load(makeTestBytes()))

	opts := model.NewTransformationOptions()
	assert := assert.New(t)
	assert.NoError(p.TransformChord(1, "Dm", opts))

	c, err := p.Chord(1)
	assert.NoError(err)
	assert.Equal("Dm", c.Name)
	assert.NotNil(c.Original)
	assert.Equal("F", c.Original.Name)
	assert.Equal(model.Notes{65, 69, 72}, c.Original.Notes)

	// A second transformation must not overwrite the first snapshot.
	assert.NoError(p.TransformChord(1, "G7", opts))
	c, _ = p.Chord(1)
	assert.Equal("G7", c.Name)
	assert.Equal("F", c.Original.Name)
}

func TestTransformUndoRedo(t *testing.T) {
	p := New()
	assert.NoError(t, p.Load(makeTestBytes()))

	opts := model.NewTransformationOptions()
	assert := assert.New(t)
	assert.NoError(p.TransformChord(0, "Am", opts))
	assert.True(p.CanUndo())

	assert.True(p.Undo())
	c, _ := p.Chord(0)
	assert.Equal("C", c.Name)
	assert.Nil(c.Original)

	assert.True(p.Redo())
	c, _ = p.Chord(0)
	assert.Equal("Am", c.Name)
}

func TestTransformAtomicOnBadIndex(t *testing.T) {
	p := New()
	assert.NoError(t, p.Load(makeTestBytes()))

	opts := model.NewTransformationOptions()
	err := p.TransformChords([]int{0, 99}, []string{"Am", "Dm"}, opts)

	assert := assert.New(t)
	assert.Error(err)
	c, _ := p.Chord(0)
	assert.Equal("C", c.Name)
	assert.False(p.CanUndo())
}

func TestTransformTargetCountMismatch(t *testing.T) {
	p := New()
	assert.NoError(t, p.Load(makeTestBytes()))

	opts := model.NewTransformationOptions()
	assert.Error(t, p.TransformChords([]int{0, 1}, []string{"Am", "Dm", "Em"}, opts))
}

func TestSwitchTonality(t *testing.T) {
	p := New()
	assert.NoError(t, p.Load(makeTestBytes()))

	assert := assert.New(t)
	assert.NoError(p.SwitchTonality([]int{0, 2}))

	c0, _ := p.Chord(0)
	c2, _ := p.Chord(2)
	assert.Equal("Cm", c0.Name)
	assert.Equal("Gm", c2.Name)

	c1, _ := p.Chord(1)
	assert.Equal("F", c1.Name)
}

func TestEncodeRewritesTransformedNotes(t *testing.T) {
	p := New()
	assert.NoError(t, p.Load(makeTestBytes()))

	opts := model.NewTransformationOptions()
	assert := assert.New(t)
	assert.NoError(p.TransformChord(0, "Am", opts))
	transformed, _ := p.Chord(0)

	data, err := p.Encode()
	assert.NoError(err)

	reloaded := New()
	assert.NoError(reloaded.Load(data))
	assert.Equal(3, reloaded.NumChords())
	got, _ := reloaded.Chord(0)
	assert.ElementsMatch(transformed.Notes, got.Notes)

	// Untouched chords survive the round trip unchanged.
	f, _ := reloaded.Chord(1)
	assert.Equal(model.Notes{65, 69, 72}, f.Notes)
}

func TestEncodeWithoutLoad(t *testing.T) {
	p := New()
	_, err := p.Encode()
	assert.Error(t, err)
}

func TestCacheReusesDetection(t *testing.T) {
	cache := NewMemoryCache()
	p := NewWithCache(cache)

	data := makeTestBytes()
	assert := assert.New(t)
	assert.NoError(p.Load(data))
	assert.Equal(1, cache.Len())
	first := p.Chords()

	// Transformations must not leak into the cached copy.
	assert.NoError(p.TransformChord(0, "Am", model.NewTransformationOptions()))

	assert.NoError(p.Load(data))
	assert.Equal(1, cache.Len())
	assert.Equal(first, p.Chords())
}

func TestCachePersistsToDisk(t *testing.T) {
	dir := t.TempDir()

	cache := OpenCache(dir, "analysis.bin")
	p := NewWithCache(cache)
	assert := assert.New(t)
	assert.NoError(p.Load(makeTestBytes()))
	cache.Flush()

	reopened := OpenCache(dir, "analysis.bin")
	assert.Equal(1, reopened.Len())
	cached, ok := reopened.Get(p.FileHashString())
	assert.True(ok)
	assert.Len(cached, 3)
}

func TestAnalysisReport(t *testing.T) {
	p := New()
	assert.NoError(t, p.Load(makeTestBytes()))
	assert.NoError(t, p.TransformChord(0, "Am", model.NewTransformationOptions()))

	report := p.AnalysisReport()
	assert := assert.New(t)
	assert.Contains(report, "Chord Analysis Report")
	assert.Contains(report, "Detected key: C major")
	assert.Contains(report, "Am")
	assert.Contains(report, "originally C")
	assert.Contains(report, "I-IV-V in C")
}

func TestSaveAnalysis(t *testing.T) {
	p := New()
	assert.NoError(t, p.Load(makeTestBytes()))

	path := filepath.Join(t.TempDir(), "report.txt")
	assert := assert.New(t)
	assert.NoError(p.SaveAnalysis(path))

	content, err := os.ReadFile(path)
	assert.NoError(err)
	assert.Contains(string(content), "Chord Analysis Report")
}
