// internal/app/workspace.go
package app

import (
	"fmt"
	"path/filepath"

	"github.com/bethropolis/quill/internal/core"
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/google/uuid"
)

// Workspace holds the open documents (tabs) in opening order.
type Workspace struct {
	store  *core.FileStore
	events *event.Manager
	opts   []core.Option
	docs   map[uuid.UUID]*core.Document
	order  []uuid.UUID
}

// NewWorkspace creates a workspace that loads and saves through store. Every
// document it opens reports to events and receives opts.
func NewWorkspace(store *core.FileStore, events *event.Manager, opts ...core.Option) *Workspace {
	all := append([]core.Option{core.WithEvents(events)}, opts...)
	return &Workspace{
		store:  store,
		events: events,
		opts:   all,
		docs:   make(map[uuid.UUID]*core.Document),
	}
}

// New opens an untitled document.
func (w *Workspace) New() *core.Document {
	doc := core.NewDocument(w.opts...)
	w.add(doc)
	return doc
}

// Open loads path into a new tab. A file that is already open returns its tab.
func (w *Workspace) Open(path string) (*core.Document, error) {
	if doc := w.find(path); doc != nil {
		return doc, nil
	}
	doc, err := w.store.Open(path, w.opts...)
	if err != nil {
		return nil, err
	}
	w.add(doc)
	return doc, nil
}

func (w *Workspace) find(path string) *core.Document {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil
	}
	for _, id := range w.order {
		doc := w.docs[id]
		if doc.Path() == "" {
			continue
		}
		if other, err := filepath.Abs(doc.Path()); err == nil && other == abs {
			return doc
		}
	}
	return nil
}

func (w *Workspace) add(doc *core.Document) {
	w.docs[doc.ID()] = doc
	w.order = append(w.order, doc.ID())
	logger.Debugf("Workspace: opened %s (%s), %d tab(s)", doc.Title(), doc.ID(), len(w.order))
}

// Get returns the document with id.
func (w *Workspace) Get(id uuid.UUID) (*core.Document, bool) {
	doc, ok := w.docs[id]
	return doc, ok
}

// Documents returns the open documents in tab order.
func (w *Workspace) Documents() []*core.Document {
	docs := make([]*core.Document, 0, len(w.order))
	for _, id := range w.order {
		docs = append(docs, w.docs[id])
	}
	return docs
}

// Len returns the number of open documents.
func (w *Workspace) Len() int { return len(w.order) }

// Close discards the document with id without saving it.
func (w *Workspace) Close(id uuid.UUID) bool {
	doc, ok := w.docs[id]
	if !ok {
		return false
	}
	doc.Close()
	delete(w.docs, id)
	for i, other := range w.order {
		if other == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return true
}

// Save writes the document with id to its path.
func (w *Workspace) Save(id uuid.UUID) error {
	doc, ok := w.docs[id]
	if !ok {
		return fmt.Errorf("save: no document %s", id)
	}
	return w.store.Save(doc)
}

// SaveAs writes the document with id to path.
func (w *Workspace) SaveAs(id uuid.UUID, path string) error {
	doc, ok := w.docs[id]
	if !ok {
		return fmt.Errorf("save: no document %s", id)
	}
	return w.store.SaveAs(doc, path)
}

// Next returns the tab after id, wrapping around.
func (w *Workspace) Next(id uuid.UUID) (*core.Document, bool) {
	for i, other := range w.order {
		if other == id {
			return w.docs[w.order[(i+1)%len(w.order)]], true
		}
	}
	if len(w.order) > 0 {
		return w.docs[w.order[0]], true
	}
	return nil, false
}

// CloseAll discards every document.
func (w *Workspace) CloseAll() {
	for _, id := range append([]uuid.UUID(nil), w.order...) {
		w.Close(id)
	}
}
