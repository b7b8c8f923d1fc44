package types

// EditInfo describes a single mutation applied to a buffer.
// All values are character (rune) offsets and lengths.
type EditInfo struct {
	Offset int // Where the change began
	OldLen int // Characters removed
	NewLen int // Characters inserted
}

// Delta returns the change in document length caused by the edit.
func (e EditInfo) Delta() int {
	return e.NewLen - e.OldLen
}

// IsNoop reports whether the edit changed nothing.
func (e EditInfo) IsNoop() bool {
	return e.OldLen == 0 && e.NewLen == 0
}
