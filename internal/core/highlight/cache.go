package highlight

import (
	"sort"
	"sync/atomic"

	"github.com/bethropolis/quill/internal/types"
)

// Snapshot is an immutable span list computed for one buffer version.
type Snapshot struct {
	Version  uint64
	Language string
	Spans    []types.Span
}

// Cache holds the latest Snapshot. Stores replace the whole snapshot atomically,
// so readers see either the previous or the new span list, never a mix.
type Cache struct {
	current atomic.Pointer[Snapshot]
}

// Load returns the current snapshot, or nil before the first Store.
func (c *Cache) Load() *Snapshot {
	return c.current.Load()
}

// Store replaces the current snapshot.
func (c *Cache) Store(s *Snapshot) {
	c.current.Store(s)
}

// StoreIfNewer stores s unless a snapshot for a later version is already cached.
// It reports whether s was stored.
func (c *Cache) StoreIfNewer(s *Snapshot) bool {
	for {
		old := c.current.Load()
		if old != nil && old.Version > s.Version {
			return false
		}
		if c.current.CompareAndSwap(old, s) {
			return true
		}
	}
}

// Clear drops the cached snapshot.
func (c *Cache) Clear() {
	c.current.Store(nil)
}

// Spans returns the cached spans. The slice must not be modified.
func (c *Cache) Spans() []types.Span {
	if s := c.current.Load(); s != nil {
		return s.Spans
	}
	return nil
}

// Version returns the buffer version of the cached spans.
func (c *Cache) Version() uint64 {
	if s := c.current.Load(); s != nil {
		return s.Version
	}
	return 0
}

// KindAt returns the classification of the character at offset.
func (c *Cache) KindAt(offset int) types.Kind {
	spans := c.Spans()
	i := sort.Search(len(spans), func(i int) bool { return spans[i].End > offset })
	if i < len(spans) && spans[i].Contains(offset) {
		return spans[i].Kind
	}
	return types.KindPlain
}
