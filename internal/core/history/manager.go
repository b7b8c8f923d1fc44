package history

import (
	"fmt"

	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/types"
)

// Manager handles the undo/redo stacks of one document.
//
// The undo stack holds inverses of applied operations; the redo stack holds inverses of
// undone ones. A new recorded edit clears the redo stack, so history never branches.
// Manager is not safe for concurrent use; a document has a single writer.
type Manager struct {
	undo     []Operation
	redo     []Operation
	maxDepth int // <= 0 means unbounded

	// pos counts applied entries since the last Clear; eviction does not change it.
	// savedAt is pos when the text was last persisted. savedLost is set once the
	// persisted state was on the redo stack when it got cleared.
	pos       int
	savedAt   int
	savedLost bool
}

// NewManager creates a history manager. maxDepth <= 0 keeps every entry.
func NewManager(maxDepth int) *Manager {
	return &Manager{maxDepth: maxDepth}
}

// Record stores the inverse of a freshly applied user edit and clears redo history.
// Replayed operations (undo/redo) must not be recorded.
func (m *Manager) Record(op, inverse Operation) {
	m.undo = append(m.undo, inverse)
	if m.savedAt > m.pos {
		m.savedLost = true
	}
	m.redo = m.redo[:0]
	m.pos++

	if m.maxDepth > 0 && len(m.undo) > m.maxDepth {
		// Remove the oldest entries (simple FIFO eviction)
		excess := len(m.undo) - m.maxDepth
		m.undo = append(m.undo[:0], m.undo[excess:]...)
	}

	logger.DebugTagf("history", "Recorded %v. Undo: %d", op, len(m.undo))
}

// Undo reverts the most recent edit. It returns false with no error when there is
// nothing to undo.
func (m *Manager) Undo(buf buffer.Buffer) (types.EditInfo, bool, error) {
	if len(m.undo) == 0 {
		logger.DebugTagf("history", "Nothing to undo.")
		return types.EditInfo{}, false, nil
	}

	top := len(m.undo) - 1
	inverse := m.undo[top]
	m.undo = m.undo[:top]

	applied, info, err := Apply(buf, inverse)
	if err != nil {
		m.undo = append(m.undo, inverse) // Restore entry on failure
		logger.Errorf("History: Error undoing %v: %v", inverse, err)
		return types.EditInfo{}, false, fmt.Errorf("undo failed: %w", err)
	}

	m.redo = append(m.redo, applied.Invert())
	m.pos--
	logger.DebugTagf("history", "Undid via %v. Undo: %d, Redo: %d", applied, len(m.undo), len(m.redo))
	return info, true, nil
}

// Redo reapplies the most recently undone edit. It returns false with no error when
// there is nothing to redo.
func (m *Manager) Redo(buf buffer.Buffer) (types.EditInfo, bool, error) {
	if len(m.redo) == 0 {
		logger.DebugTagf("history", "Nothing to redo.")
		return types.EditInfo{}, false, nil
	}

	top := len(m.redo) - 1
	op := m.redo[top]
	m.redo = m.redo[:top]

	applied, info, err := Apply(buf, op)
	if err != nil {
		m.redo = append(m.redo, op) // Restore entry on failure
		logger.Errorf("History: Error redoing %v: %v", op, err)
		return types.EditInfo{}, false, fmt.Errorf("redo failed: %w", err)
	}

	m.undo = append(m.undo, applied.Invert())
	m.pos++
	logger.DebugTagf("history", "Redid %v. Undo: %d, Redo: %d", applied, len(m.undo), len(m.redo))
	return info, true, nil
}

// Clear resets both stacks. Call this on load; the cleared state counts as persisted.
func (m *Manager) Clear() {
	m.undo = m.undo[:0]
	m.redo = m.redo[:0]
	m.pos, m.savedAt, m.savedLost = 0, 0, false
	logger.DebugTagf("history", "Cleared.")
}

// MarkSaved records the current position as the persisted state.
func (m *Manager) MarkSaved() {
	m.savedAt, m.savedLost = m.pos, false
}

// AtSavePoint reports whether undo/redo has returned the text to its persisted state.
func (m *Manager) AtSavePoint() bool {
	return !m.savedLost && m.pos == m.savedAt
}

// CanUndo returns true if there are changes that can be undone.
func (m *Manager) CanUndo() bool {
	return len(m.undo) > 0
}

// CanRedo returns true if there are changes that can be redone.
func (m *Manager) CanRedo() bool {
	return len(m.redo) > 0
}

// UndoDepth returns the number of undoable entries.
func (m *Manager) UndoDepth() int {
	return len(m.undo)
}

// RedoDepth returns the number of redoable entries.
func (m *Manager) RedoDepth() int {
	return len(m.redo)
}

// MaxDepth returns the configured bound, <= 0 meaning unbounded.
func (m *Manager) MaxDepth() int {
	return m.maxDepth
}
