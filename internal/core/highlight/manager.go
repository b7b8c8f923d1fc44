package highlight

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/bethropolis/quill/internal/highlighter/lang"
	"github.com/bethropolis/quill/internal/logger"
)

// Manager recomputes a document's spans and owns its Cache.
// The language may be read from a background Worker, so it is held atomically.
type Manager struct {
	language atomic.Pointer[lang.Language]
	cache    Cache
}

// NewManager creates a highlight manager for a language. A nil language yields no spans.
func NewManager(language *lang.Language) *Manager {
	m := &Manager{}
	m.language.Store(language)
	return m
}

// Language returns the active language, possibly nil.
func (m *Manager) Language() *lang.Language {
	return m.language.Load()
}

// SetLanguage switches the grammar. Callers recompute afterwards.
func (m *Manager) SetLanguage(language *lang.Language) {
	m.language.Store(language)
}

// Cache exposes the span cache to readers.
func (m *Manager) Cache() *Cache {
	return &m.cache
}

// Recompute tokenizes text synchronously and swaps the cache.
func (m *Manager) Recompute(version uint64, text string) *Snapshot {
	snap := &Snapshot{Version: version}
	if l := m.language.Load(); l != nil && l.Grammar != nil {
		snap.Language = l.Name
		snap.Spans = l.Grammar.Tokenize(text)
	}
	m.cache.Store(snap)
	logger.DebugTagf("highlight", "Recomputed version %d: %d spans", version, len(snap.Spans))
	return snap
}

// RecomputeContext tokenizes text as a cancellable computation. The result is discarded
// when ctx is cancelled or a snapshot of a later version is already cached.
func (m *Manager) RecomputeContext(ctx context.Context, version uint64, text string) (*Snapshot, error) {
	snap := &Snapshot{Version: version}
	if l := m.language.Load(); l != nil && l.Grammar != nil {
		spans, err := l.Grammar.TokenizeContext(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("tokenize version %d: %w", version, err)
		}
		snap.Language = l.Name
		snap.Spans = spans
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("tokenize version %d: %w", version, err)
	}
	if !m.cache.StoreIfNewer(snap) {
		logger.DebugTagf("highlight", "Discarded stale result for version %d", version)
		return nil, nil
	}
	return snap, nil
}
