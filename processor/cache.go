package processor

import (
	"os"
	"path/filepath"

	"github.com/jlowell/chordshift/model"
	"github.com/jlowell/chordshift/util"
)

// Cache persists detection results keyed by file hash. Entries are
// never invalidated; staleness after a hash collision or external
// edit is accepted.
type Cache struct {
	entries map[string][]model.Chord
	path    string
}

// OpenCache loads the cache binary under dir, creating the dir if
// needed. A missing cache file just starts empty.
func OpenCache(dir, filename string) *Cache {
	util.EnsureDir(dir)
	c := &Cache{
		entries: make(map[string][]model.Chord),
		path:    filepath.Join(dir, filename),
	}
	if _, err := os.Stat(c.path); err == nil {
		c.entries = util.ReadBinaryOrPanic[map[string][]model.Chord](c.path)
	}
	return c
}

func NewMemoryCache() *Cache {
	return &Cache{entries: make(map[string][]model.Chord)}
}

func cloneChords(chords []model.Chord) []model.Chord {
	out := make([]model.Chord, len(chords))
	for i := range chords {
		out[i] = chords[i].Clone()
	}
	return out
}

func (c *Cache) Get(hash string) ([]model.Chord, bool) {
	chords, ok := c.entries[hash]
	if !ok {
		return nil, false
	}
	return cloneChords(chords), true
}

func (c *Cache) Put(hash string, chords []model.Chord) {
	c.entries[hash] = cloneChords(chords)
}

func (c *Cache) Len() int {
	return len(c.entries)
}

// Flush writes the cache to disk. No-op for in-memory caches.
func (c *Cache) Flush() {
	if c.path == "" {
		return
	}
	util.CreateBinary(c.path, c.entries)
}
