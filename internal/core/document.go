// internal/core/document.go
package core

import (
	"fmt"
	"io"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/core/highlight"
	"github.com/bethropolis/quill/internal/core/history"
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/highlighter/lang"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/types"
	"github.com/google/uuid"
)

// UntitledName is the title of a document without a backing file.
const UntitledName = "Untitled"

// Document is one open text document: its buffer, edit history and highlight cache.
//
// A Document has a single writer. Every method except the span readers must be called
// from the same goroutine; Spans and Snapshot may be read from anywhere.
type Document struct {
	id      uuid.UUID
	path    string
	buf     buffer.Buffer
	history *history.Manager

	highlights   *highlight.Manager
	worker       *highlight.Worker // nil when highlighting is synchronous
	autoLanguage bool              // Language follows the file extension

	events *event.Manager
	closed bool
}

type options struct {
	historyDepth  int
	events        *event.Manager
	language      *lang.Language
	languageSet   bool // WithLanguage was given, even with nil
	async         bool
	asyncDebounce time.Duration
	onHighlight   func(*highlight.Snapshot)
}

// Option configures a Document.
type Option func(*options)

// WithHistoryDepth bounds the undo stack; depth <= 0 keeps every edit.
func WithHistoryDepth(depth int) Option {
	return func(o *options) { o.historyDepth = depth }
}

// WithEvents attaches an event bus for change notifications.
func WithEvents(m *event.Manager) Option {
	return func(o *options) { o.events = m }
}

// WithLanguage pins the language instead of choosing it from the file extension.
// A nil language pins plain text.
func WithLanguage(l *lang.Language) Option {
	return func(o *options) {
		o.language = l
		o.languageSet = true
	}
}

// WithAsyncHighlighting moves tokenization to a debounced background worker.
// onUpdate runs on the worker goroutine after each new snapshot and may be nil.
func WithAsyncHighlighting(debounce time.Duration, onUpdate func(*highlight.Snapshot)) Option {
	return func(o *options) {
		o.async = true
		o.asyncDebounce = debounce
		o.onHighlight = onUpdate
	}
}

// NewDocument creates an empty untitled document.
func NewDocument(opts ...Option) *Document {
	return newDocument("", "", opts)
}

// OpenDocument creates a document from bytes read by the host. Invalid UTF-8 is rejected
// with ErrDecode and no document is created. Opening starts with empty history.
func OpenDocument(path string, data []byte, opts ...Option) (*Document, error) {
	text, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("open '%s': %w", path, err)
	}
	d := newDocument(path, text, opts)
	d.events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{DocumentID: d.id, FilePath: path})
	return d, nil
}

func newDocument(path, text string, opts []Option) *Document {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	language := o.language
	if !o.languageSet {
		language = lang.ForFile(path)
	}

	d := &Document{
		id:           uuid.New(),
		path:         path,
		buf:          buffer.NewRuneBuffer(text),
		history:      history.NewManager(o.historyDepth),
		highlights:   highlight.NewManager(language),
		autoLanguage: !o.languageSet,
		events:       o.events,
	}
	if o.async {
		d.worker = highlight.NewWorker(d.highlights, o.asyncDebounce, func(s *highlight.Snapshot) {
			d.dispatchHighlights(s)
			if o.onHighlight != nil {
				o.onHighlight(s)
			}
		})
	}

	// The first snapshot is always computed synchronously so a fresh document is colored.
	d.dispatchHighlights(d.highlights.Recompute(d.buf.Version(), d.buf.Text()))
	logger.Debugf("Document %s created (%s, language %s)", d.id, d.Title(), d.LanguageName())
	return d
}

func decode(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrDecode
	}
	return string(data), nil
}

// --- Identity ---

// ID returns the document's identity.
func (d *Document) ID() uuid.UUID { return d.id }

// Path returns the backing file path, empty for untitled documents.
func (d *Document) Path() string { return d.path }

// Title returns the file name, or UntitledName.
func (d *Document) Title() string {
	if d.path == "" {
		return UntitledName
	}
	return filepath.Base(d.path)
}

// Language returns the document's language, possibly nil.
func (d *Document) Language() *lang.Language { return d.highlights.Language() }

// LanguageName returns the language name, or "Plain" when there is none.
func (d *Document) LanguageName() string {
	if l := d.Language(); l != nil {
		return l.Name
	}
	return "Plain"
}

// --- Reading ---

// Text returns the full content.
func (d *Document) Text() string { return d.buf.Text() }

// Len returns the content length in characters.
func (d *Document) Len() int { return d.buf.Len() }

// Slice returns the text in [start, end).
func (d *Document) Slice(start, end int) (string, error) { return d.buf.Slice(start, end) }

// Version returns the buffer version counter.
func (d *Document) Version() uint64 { return d.buf.Version() }

// IsModified reports whether there are changes since the last load or save.
func (d *Document) IsModified() bool { return d.buf.IsModified() }

// Spans returns the current highlight spans. They are valid only for the text of the
// version they were computed for; re-fetch after every change.
func (d *Document) Spans() []types.Span { return d.highlights.Cache().Spans() }

// Snapshot returns the current highlight snapshot, nil after Close.
func (d *Document) Snapshot() *highlight.Snapshot { return d.highlights.Cache().Load() }

// HighlightsCurrent reports whether the spans match the current buffer version.
// It is always true for synchronous highlighting.
func (d *Document) HighlightsCurrent() bool {
	s := d.Snapshot()
	return s != nil && s.Version == d.buf.Version()
}

// CanUndo reports whether Undo would change the text.
func (d *Document) CanUndo() bool { return d.history.CanUndo() }

// CanRedo reports whether Redo would change the text.
func (d *Document) CanRedo() bool { return d.history.CanRedo() }

// --- Editing ---

// Edit applies a user edit, records its inverse and refreshes highlighting.
// Offsets outside the buffer fail with an error wrapping buffer.ErrOutOfRange and leave
// the document untouched.
func (d *Document) Edit(op history.Operation) error {
	if d.closed {
		return ErrClosed
	}
	applied, info, err := history.Apply(d.buf, op)
	if err != nil {
		return fmt.Errorf("edit %s: %w", d.Title(), err)
	}
	if info.IsNoop() {
		return nil
	}
	d.history.Record(applied, applied.Invert())
	d.commit(info, event.OriginEdit)
	return nil
}

// Insert inserts text at offset.
func (d *Document) Insert(offset int, text string) error {
	return d.Edit(history.Insert(offset, text))
}

// Delete removes length characters at offset.
func (d *Document) Delete(offset, length int) error {
	return d.Edit(history.Delete(offset, length))
}

// Replace replaces length characters at offset with text as one undo step.
func (d *Document) Replace(offset, length int, text string) error {
	return d.Edit(history.Replace(offset, length, text))
}

// Undo reverts the last edit. It returns false when there is nothing to undo.
func (d *Document) Undo() bool {
	if d.closed {
		return false
	}
	info, ok, err := d.history.Undo(d.buf)
	if err != nil {
		logger.Errorf("Document %s: %v", d.Title(), err)
		return false
	}
	if ok {
		d.commit(info, event.OriginUndo)
	}
	return ok
}

// Redo reapplies the last undone edit. It returns false when there is nothing to redo.
func (d *Document) Redo() bool {
	if d.closed {
		return false
	}
	info, ok, err := d.history.Redo(d.buf)
	if err != nil {
		logger.Errorf("Document %s: %v", d.Title(), err)
		return false
	}
	if ok {
		d.commit(info, event.OriginRedo)
	}
	return ok
}

// commit refreshes highlighting and notifies subscribers after a buffer change.
// Undo and redo back to the saved state clear the modified flag.
func (d *Document) commit(info types.EditInfo, origin event.Origin) {
	d.buf.SetModified(!d.history.AtSavePoint())
	d.recomputeHighlighting()
	d.events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{
		DocumentID: d.id,
		Edit:       info,
		Version:    d.buf.Version(),
		Origin:     origin,
	})
}

func (d *Document) recomputeHighlighting() {
	if d.worker != nil {
		d.worker.Schedule(d.buf.Version(), d.buf.Text())
		return
	}
	d.dispatchHighlights(d.highlights.Recompute(d.buf.Version(), d.buf.Text()))
}

func (d *Document) dispatchHighlights(s *highlight.Snapshot) {
	d.events.Dispatch(event.TypeHighlightsUpdated, event.HighlightsUpdatedData{
		DocumentID: d.id,
		Version:    s.Version,
		SpanCount:  len(s.Spans),
	})
}

// --- Persistence ---

// Save writes the text as UTF-8 to w. On success the document is no longer modified;
// on failure it returns an *IOError and nothing changes.
func (d *Document) Save(w io.Writer) error {
	if d.closed {
		return ErrClosed
	}
	if _, err := io.WriteString(w, d.buf.Text()); err != nil {
		return &IOError{Op: "save", Path: d.path, Err: err}
	}
	d.markSaved(d.path)
	return nil
}

// Load replaces the content with UTF-8 text read from r and clears history, so the
// loaded text cannot be undone past. On failure the document is unchanged.
func (d *Document) Load(r io.Reader) error {
	if d.closed {
		return ErrClosed
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return &IOError{Op: "load", Path: d.path, Err: err}
	}
	text, err := decode(data)
	if err != nil {
		return fmt.Errorf("load %s: %w", d.Title(), err)
	}
	d.reset(text)
	return nil
}

func (d *Document) reset(text string) {
	d.buf.Reset(text)
	d.history.Clear()
	d.recomputeHighlighting()
	d.events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{DocumentID: d.id, FilePath: d.path})
	logger.Debugf("Document %s loaded %d characters", d.Title(), d.buf.Len())
}

// markSaved clears the modified flag after a successful write to path.
func (d *Document) markSaved(path string) {
	if path != d.path {
		d.setPath(path)
	}
	d.buf.SetModified(false)
	d.history.MarkSaved()
	d.events.Dispatch(event.TypeBufferSaved, event.BufferSavedData{DocumentID: d.id, FilePath: d.path})
	logger.Debugf("Document %s saved", d.Title())
}

// setPath changes the backing path and, unless the language was pinned, re-selects the
// language from the new extension.
func (d *Document) setPath(path string) {
	d.path = path
	if !d.autoLanguage {
		return
	}
	if l := lang.ForFile(path); l != d.highlights.Language() {
		d.highlights.SetLanguage(l)
		d.recomputeHighlighting()
	}
}

// Close discards the document. History and highlights are dropped; nothing is saved.
func (d *Document) Close() {
	if d.closed {
		return
	}
	d.closed = true
	if d.worker != nil {
		d.worker.Shutdown()
	}
	d.history.Clear()
	d.highlights.Cache().Clear()
	d.events.Dispatch(event.TypeDocumentClosed, event.DocumentClosedData{DocumentID: d.id})
	logger.Debugf("Document %s closed", d.Title())
}
