// Package clipboard implements cut, copy and paste over documents.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/quill/internal/core"
	"github.com/bethropolis/quill/internal/logger"
)

// Backend stores clipboard contents outside the editor.
type Backend interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// systemBackend talks to the host clipboard.
type systemBackend struct{}

func (systemBackend) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemBackend) WriteAll(text string) error { return clipboard.WriteAll(text) }

// System returns the host clipboard backend, or nil when the host has none.
func System() Backend {
	if clipboard.Unsupported {
		logger.Warnf("System clipboard unsupported, using internal register")
		return nil
	}
	return systemBackend{}
}

// Manager holds the internal register and an optional backend.
// Backend failures fall back to the register.
type Manager struct {
	register string
	backend  Backend
}

// NewManager creates a clipboard manager. backend may be nil.
func NewManager(backend Backend) *Manager {
	return &Manager{backend: backend}
}

// Copy places the text in [start, end) of doc on the clipboard.
func (m *Manager) Copy(doc *core.Document, start, end int) error {
	text, err := doc.Slice(start, end)
	if err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	m.store(text)
	return nil
}

// Cut copies [start, end) and deletes it as one undo step.
func (m *Manager) Cut(doc *core.Document, start, end int) error {
	text, err := doc.Slice(start, end)
	if err != nil {
		return fmt.Errorf("cut: %w", err)
	}
	if err := doc.Delete(start, end-start); err != nil {
		return fmt.Errorf("cut: %w", err)
	}
	m.store(text)
	return nil
}

// Paste replaces [start, end) with the clipboard contents as one undo step.
// It returns the number of characters inserted.
func (m *Manager) Paste(doc *core.Document, start, end int) (int, error) {
	text := m.Contents()
	if start > end {
		return 0, fmt.Errorf("paste: invalid range [%d, %d)", start, end)
	}
	if err := doc.Replace(start, end-start, text); err != nil {
		return 0, fmt.Errorf("paste: %w", err)
	}
	return len([]rune(text)), nil
}

// Contents returns the clipboard text, preferring the backend.
func (m *Manager) Contents() string {
	if m.backend != nil {
		text, err := m.backend.ReadAll()
		if err == nil {
			return text
		}
		logger.WarnTagf("clipboard", "Reading system clipboard failed: %v", err)
	}
	return m.register
}

func (m *Manager) store(text string) {
	m.register = text
	if m.backend == nil {
		return
	}
	if err := m.backend.WriteAll(text); err != nil {
		logger.WarnTagf("clipboard", "Writing system clipboard failed: %v", err)
	}
	logger.DebugTagf("clipboard", "Stored %d bytes", len(text))
}
