// Package history is a bounded linear undo/redo log of chord
// transformations.
package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jlowell/chordshift/model"
)

// DefaultCapacity bounds the ring; the oldest entry is evicted first.
const DefaultCapacity = 50

// ChordUpdater applies a chord state back onto the owning collection.
// The orchestrator is the only writer, so undo/redo route through it.
type ChordUpdater interface {
	UpdateChord(index int, c model.Chord) bool
}

type Action struct {
	ID            string
	ChordIndices  []int
	PreviousState []model.Chord
	NewState      []model.Chord
	Description   string
	Timestamp     time.Time
}

type Manager struct {
	updater  ChordUpdater
	actions  []Action
	position int
	capacity int
}

func NewManager(updater ChordUpdater) *Manager {
	return &Manager{updater: updater, capacity: DefaultCapacity}
}

func NewManagerWithCapacity(updater ChordUpdater, capacity int) *Manager {
	return &Manager{updater: updater, capacity: capacity}
}

// Record appends a transformation. Recording while positioned before
// the end discards all redo entries first: history is linear, not a
// tree. Exceeding capacity evicts the oldest entry and shifts the
// position down with it.
func (m *Manager) Record(indices []int, before, after []model.Chord, description string) {
	action := Action{
		ID:           uuid.New().String(),
		ChordIndices: append([]int(nil), indices...),
		Description:  description,
		Timestamp:    time.Now(),
	}
	for _, c := range before {
		action.PreviousState = append(action.PreviousState, c.Clone())
	}
	for _, c := range after {
		action.NewState = append(action.NewState, c.Clone())
	}

	if m.position < len(m.actions) {
		m.actions = m.actions[:m.position]
	}

	m.actions = append(m.actions, action)
	m.position++

	if len(m.actions) > m.capacity {
		m.actions = m.actions[1:]
		m.position--
	}
}

func (m *Manager) CanUndo() bool {
	return m.position > 0
}

func (m *Manager) CanRedo() bool {
	return m.position < len(m.actions)
}

func (m *Manager) Undo() bool {
	if !m.CanUndo() {
		return false
	}

	m.position--
	action := m.actions[m.position]
	for i, chordIndex := range action.ChordIndices {
		if i < len(action.PreviousState) {
			m.updater.UpdateChord(chordIndex, action.PreviousState[i].Clone())
		}
	}

	fmt.Printf("Undid: %v\n", action.Description)
	return true
}

func (m *Manager) Redo() bool {
	if !m.CanRedo() {
		return false
	}

	action := m.actions[m.position]
	m.position++
	for i, chordIndex := range action.ChordIndices {
		if i < len(action.NewState) {
			m.updater.UpdateChord(chordIndex, action.NewState[i].Clone())
		}
	}

	fmt.Printf("Redid: %v\n", action.Description)
	return true
}

func (m *Manager) UndoDescription() string {
	if !m.CanUndo() {
		return "Nothing to undo"
	}
	return m.actions[m.position-1].Description
}

func (m *Manager) RedoDescription() string {
	if !m.CanRedo() {
		return "Nothing to redo"
	}
	return m.actions[m.position].Description
}

func (m *Manager) Clear() {
	m.actions = nil
	m.position = 0
}

func (m *Manager) Size() int {
	return len(m.actions)
}
