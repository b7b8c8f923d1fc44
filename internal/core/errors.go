package core

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode is returned when document bytes are not valid UTF-8.
	ErrDecode = errors.New("invalid UTF-8 text")
	// ErrNoPath is returned when saving an untitled document without a path.
	ErrNoPath = errors.New("no file path specified for saving")
	// ErrClosed is returned by operations on a closed document.
	ErrClosed = errors.New("document is closed")
)

// IOError reports a failed load or save. The document is left as it was.
type IOError struct {
	Op   string // "load" or "save"
	Path string // Empty for writer/reader based I/O
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s '%s' failed: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
