// internal/buffer/buffer.go
package buffer

import (
	"errors"

	"github.com/bethropolis/quill/internal/types"
)

// ErrOutOfRange is returned when an offset or length falls outside the buffer.
// It signals a caller bug; offsets are never clamped.
var ErrOutOfRange = errors.New("offset out of range")

// Buffer defines the interface for text buffer operations.
// Offsets and lengths are counted in characters (runes).
type Buffer interface {
	Insert(offset int, text string) (types.EditInfo, error)
	Delete(offset, length int) (removed string, info types.EditInfo, err error)
	Replace(offset, length int, text string) (removed string, info types.EditInfo, err error)
	Slice(start, end int) (string, error)
	Text() string
	Len() int
	Reset(text string)
	Version() uint64
	IsModified() bool
	SetModified(modified bool)
}
