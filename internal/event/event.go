// internal/event/event.go
package event

import (
	"github.com/bethropolis/quill/internal/types"
	"github.com/google/uuid"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	TypeBufferModified    // Buffer content changed (edit, undo or redo)
	TypeBufferLoaded      // Buffer content replaced by a successful load
	TypeBufferSaved       // Buffer content persisted successfully
	TypeHighlightsUpdated // A new span snapshot was stored in the highlight cache
	TypeDocumentClosed    // Document discarded, its history and cache are gone
)

func (t Type) String() string {
	switch t {
	case TypeBufferModified:
		return "BufferModified"
	case TypeBufferLoaded:
		return "BufferLoaded"
	case TypeBufferSaved:
		return "BufferSaved"
	case TypeHighlightsUpdated:
		return "HighlightsUpdated"
	case TypeDocumentClosed:
		return "DocumentClosed"
	default:
		return "Unknown"
	}
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// Origin tells subscribers what caused a buffer modification.
type Origin int

const (
	OriginEdit Origin = iota
	OriginUndo
	OriginRedo
)

func (o Origin) String() string {
	switch o {
	case OriginUndo:
		return "undo"
	case OriginRedo:
		return "redo"
	default:
		return "edit"
	}
}

// BufferModifiedData describes one committed change.
type BufferModifiedData struct {
	DocumentID uuid.UUID
	Edit       types.EditInfo
	Version    uint64
	Origin     Origin
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	DocumentID uuid.UUID
	FilePath   string
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	DocumentID uuid.UUID
	FilePath   string
}

// HighlightsUpdatedData carries the version the new spans were computed for.
type HighlightsUpdatedData struct {
	DocumentID uuid.UUID
	Version    uint64
	SpanCount  int
}

// DocumentClosedData identifies the closed document.
type DocumentClosedData struct {
	DocumentID uuid.UUID
}
