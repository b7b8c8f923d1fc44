// Package history provides undo/redo functionality via invertible edit operations.
package history

import (
	"fmt"
	"unicode/utf8"

	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/types"
)

// OpKind indicates which mutation an Operation performs.
type OpKind int

const (
	OpInsert OpKind = iota
	OpDelete
	OpReplace
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Operation is a single, reversible text mutation.
//
// Offset and Length are character offsets. Text is the inserted text (Insert, Replace);
// Removed is the text taken out of the buffer (Delete, Replace) and is filled in by Apply.
type Operation struct {
	Kind    OpKind
	Offset  int
	Length  int
	Text    string
	Removed string
}

// Insert builds an operation inserting text at offset.
func Insert(offset int, text string) Operation {
	return Operation{Kind: OpInsert, Offset: offset, Text: text}
}

// Delete builds an operation removing length characters at offset.
func Delete(offset, length int) Operation {
	return Operation{Kind: OpDelete, Offset: offset, Length: length}
}

// Replace builds an operation replacing length characters at offset with text.
// It is one undoable unit.
func Replace(offset, length int, text string) Operation {
	return Operation{Kind: OpReplace, Offset: offset, Length: length, Text: text}
}

// IsNoop reports whether applying the operation cannot change any text.
func (op Operation) IsNoop() bool {
	switch op.Kind {
	case OpInsert:
		return op.Text == ""
	case OpDelete:
		return op.Length == 0
	default:
		return op.Length == 0 && op.Text == ""
	}
}

// Invert returns the operation that undoes op. op must have been applied, so that
// Removed holds the text it took out of the buffer.
func (op Operation) Invert() Operation {
	inserted := utf8.RuneCountInString(op.Text)
	switch op.Kind {
	case OpInsert:
		return Operation{Kind: OpDelete, Offset: op.Offset, Length: inserted, Removed: op.Text}
	case OpDelete:
		return Operation{Kind: OpInsert, Offset: op.Offset, Text: op.Removed}
	default:
		return Operation{Kind: OpReplace, Offset: op.Offset, Length: inserted, Text: op.Removed, Removed: op.Text}
	}
}

func (op Operation) String() string {
	switch op.Kind {
	case OpInsert:
		return fmt.Sprintf("insert(%d, %q)", op.Offset, op.Text)
	case OpDelete:
		return fmt.Sprintf("delete(%d, %d)", op.Offset, op.Length)
	default:
		return fmt.Sprintf("replace(%d, %d, %q)", op.Offset, op.Length, op.Text)
	}
}

// Apply performs op on buf and returns the applied operation with Removed captured.
// Errors wrap buffer.ErrOutOfRange when the operation does not fit the buffer.
func Apply(buf buffer.Buffer, op Operation) (Operation, types.EditInfo, error) {
	var (
		info types.EditInfo
		err  error
	)
	switch op.Kind {
	case OpInsert:
		info, err = buf.Insert(op.Offset, op.Text)
		op.Length = 0
		op.Removed = ""
	case OpDelete:
		op.Removed, info, err = buf.Delete(op.Offset, op.Length)
		op.Text = ""
	case OpReplace:
		op.Removed, info, err = buf.Replace(op.Offset, op.Length, op.Text)
	default:
		return op, info, fmt.Errorf("unknown operation kind %d", op.Kind)
	}
	if err != nil {
		return op, info, fmt.Errorf("%s: %w", op.Kind, err)
	}
	return op, info, nil
}
