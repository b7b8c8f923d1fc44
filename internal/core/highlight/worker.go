package highlight

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bethropolis/quill/internal/logger"
)

// DefaultDebounce is the quiet period before a scheduled recompute starts.
const DefaultDebounce = 65 * time.Millisecond

type job struct {
	version uint64
	text    string
}

// Worker runs debounced highlight recomputes off the caller's goroutine.
//
// Each Schedule cancels the recompute in flight and restarts the debounce timer. A
// cancelled recompute never touches the cache, and the text it scans is an immutable
// string snapshot, so buffer and history state are unaffected.
type Worker struct {
	manager  *Manager
	debounce time.Duration
	onUpdate func(*Snapshot)

	mu      sync.Mutex // Protects timer and pending state
	timer   *time.Timer
	seq     uint64 // Identifies the armed timer; callbacks from older timers do nothing
	pending *job
	cancel  context.CancelFunc
	closed  bool
	wg      sync.WaitGroup
}

// NewWorker creates a worker feeding manager's cache. onUpdate, if set, runs on the
// worker goroutine after each stored snapshot.
func NewWorker(manager *Manager, debounce time.Duration, onUpdate func(*Snapshot)) *Worker {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Worker{
		manager:  manager,
		debounce: debounce,
		onUpdate: onUpdate,
	}
}

// Schedule requests a recompute of text for version.
func (w *Worker) Schedule(version uint64, text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	w.pending = &job{version: version, text: text}
	if w.cancel != nil {
		w.cancel() // A newer version supersedes the running task
		w.cancel = nil
	}

	// Stop fails once the callback has fired; that callback may still be waiting
	// for mu, so it gets retired by a new sequence number instead of being re-armed.
	if w.timer != nil && w.timer.Stop() {
		w.timer.Reset(w.debounce)
		logger.DebugTagf("highlight", "Debounce timer reset for version %d", version)
		return
	}
	w.seq++
	seq := w.seq
	w.timer = time.AfterFunc(w.debounce, func() { w.run(seq) })
}

// run starts the pending job once the debounce timer armed as seq fires.
func (w *Worker) run(seq uint64) {
	w.mu.Lock()
	if seq != w.seq {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	if w.closed || w.pending == nil {
		w.mu.Unlock()
		return
	}
	j := w.pending
	w.pending = nil
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	defer w.wg.Done()
	defer cancel()

	snap, err := w.manager.RecomputeContext(ctx, j.version, j.text)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.DebugTagf("highlight", "Highlight task for version %d cancelled", j.version)
		} else {
			logger.Warnf("Background highlighting failed: %v", err)
		}
		return
	}
	if snap != nil && w.onUpdate != nil {
		w.onUpdate(snap)
	}
}

// Shutdown cancels pending and running work and waits for the running task to exit.
func (w *Worker) Shutdown() {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.pending = nil
	w.mu.Unlock()

	w.wg.Wait()
}
