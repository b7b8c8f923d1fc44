package buffer

import (
	"fmt"

	"github.com/bethropolis/quill/internal/types"
)

// RuneBuffer stores the document as a single rune slice.
type RuneBuffer struct {
	runes    []rune
	modified bool   // Track if buffer has unsaved changes
	version  uint64 // Incremented on every content change
}

// NewRuneBuffer creates a buffer holding text. The new buffer is not modified.
func NewRuneBuffer(text string) *RuneBuffer {
	return &RuneBuffer{runes: []rune(text)}
}

// Text returns the full content.
func (rb *RuneBuffer) Text() string {
	return string(rb.runes)
}

// Len returns the number of characters in the buffer.
func (rb *RuneBuffer) Len() int {
	return len(rb.runes)
}

// Version returns the content version counter.
func (rb *RuneBuffer) Version() uint64 {
	return rb.version
}

// IsModified returns true if the buffer has unsaved changes.
func (rb *RuneBuffer) IsModified() bool {
	return rb.modified
}

// SetModified overrides the modified flag, used after load and save.
func (rb *RuneBuffer) SetModified(modified bool) {
	rb.modified = modified
}

// Reset replaces the whole content, e.g. on load. The buffer is left unmodified.
func (rb *RuneBuffer) Reset(text string) {
	rb.runes = []rune(text)
	rb.modified = false
	rb.version++
}

// Slice returns the text in [start, end).
func (rb *RuneBuffer) Slice(start, end int) (string, error) {
	if err := rb.checkRange(start, end-start); err != nil {
		return "", err
	}
	return string(rb.runes[start:end]), nil
}

// Insert inserts text at offset.
func (rb *RuneBuffer) Insert(offset int, text string) (types.EditInfo, error) {
	if offset < 0 || offset > len(rb.runes) {
		return types.EditInfo{}, fmt.Errorf("insert at %d (length %d): %w", offset, len(rb.runes), ErrOutOfRange)
	}
	ins := []rune(text)
	info := types.EditInfo{Offset: offset, NewLen: len(ins)}
	if len(ins) == 0 {
		return info, nil
	}
	rb.splice(offset, 0, ins)
	return info, nil
}

// Delete removes length characters starting at offset and returns them.
func (rb *RuneBuffer) Delete(offset, length int) (string, types.EditInfo, error) {
	if err := rb.checkRange(offset, length); err != nil {
		return "", types.EditInfo{}, fmt.Errorf("delete: %w", err)
	}
	info := types.EditInfo{Offset: offset, OldLen: length}
	if length == 0 {
		return "", info, nil
	}
	removed := string(rb.runes[offset : offset+length])
	rb.splice(offset, length, nil)
	return removed, info, nil
}

// Replace removes length characters at offset and inserts text in their place.
// The range is validated before anything changes, so a failure leaves the buffer intact.
func (rb *RuneBuffer) Replace(offset, length int, text string) (string, types.EditInfo, error) {
	if err := rb.checkRange(offset, length); err != nil {
		return "", types.EditInfo{}, fmt.Errorf("replace: %w", err)
	}
	ins := []rune(text)
	info := types.EditInfo{Offset: offset, OldLen: length, NewLen: len(ins)}
	if length == 0 && len(ins) == 0 {
		return "", info, nil
	}
	removed := string(rb.runes[offset : offset+length])
	rb.splice(offset, length, ins)
	return removed, info, nil
}

func (rb *RuneBuffer) checkRange(offset, length int) error {
	if offset < 0 || length < 0 || offset > len(rb.runes) || length > len(rb.runes)-offset {
		return fmt.Errorf("range [%d, %d) (length %d): %w", offset, offset+length, len(rb.runes), ErrOutOfRange)
	}
	return nil
}

// splice replaces runes[offset:offset+length] with ins; bounds are already checked.
func (rb *RuneBuffer) splice(offset, length int, ins []rune) {
	tail := len(rb.runes) - offset - length
	out := make([]rune, 0, offset+len(ins)+tail)
	out = append(out, rb.runes[:offset]...)
	out = append(out, ins...)
	out = append(out, rb.runes[offset+length:]...)
	rb.runes = out
	rb.modified = true
	rb.version++
}

// Ensure RuneBuffer satisfies the Buffer interface
var _ Buffer = (*RuneBuffer)(nil)
