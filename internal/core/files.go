package core

import (
	"errors"
	"os"

	"github.com/bethropolis/quill/internal/logger"
	"github.com/spf13/afero"
)

// FileStore loads and saves documents on a filesystem.
type FileStore struct {
	fs   afero.Fs
	opts []Option
}

// NewFileStore creates a store over fs. opts apply to every document it opens.
func NewFileStore(fs afero.Fs, opts ...Option) *FileStore {
	return &FileStore{fs: fs, opts: opts}
}

// NewOSFileStore creates a store over the host filesystem.
func NewOSFileStore(opts ...Option) *FileStore {
	return NewFileStore(afero.NewOsFs(), opts...)
}

// Fs returns the underlying filesystem.
func (s *FileStore) Fs() afero.Fs { return s.fs }

// Open reads path into a new document. A missing file opens an empty document that
// will be created on first save.
func (s *FileStore) Open(path string, opts ...Option) (*Document, error) {
	all := append(append([]Option{}, s.opts...), opts...)

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Infof("File '%s' not found, starting new document", path)
			return newDocument(path, "", all), nil
		}
		return nil, &IOError{Op: "load", Path: path, Err: err}
	}
	return OpenDocument(path, data, all...)
}

// Save writes doc to its own path.
func (s *FileStore) Save(doc *Document) error {
	if doc.Path() == "" {
		return ErrNoPath
	}
	return s.SaveAs(doc, doc.Path())
}

// SaveAs writes doc to path and makes path its backing file.
func (s *FileStore) SaveAs(doc *Document, path string) error {
	if path == "" {
		return ErrNoPath
	}
	if doc.closed {
		return ErrClosed
	}
	if err := afero.WriteFile(s.fs, path, []byte(doc.Text()), 0644); err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}
	doc.markSaved(path)
	logger.Infof("Saved %d characters to '%s'", doc.Len(), path)
	return nil
}

// Reload replaces doc's content with its file on disk and clears its history.
func (s *FileStore) Reload(doc *Document) error {
	if doc.Path() == "" {
		return ErrNoPath
	}
	f, err := s.fs.Open(doc.Path())
	if err != nil {
		return &IOError{Op: "load", Path: doc.Path(), Err: err}
	}
	defer f.Close()
	return doc.Load(f)
}
