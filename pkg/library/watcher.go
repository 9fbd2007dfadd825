package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vanderheijden86/mediadeck/pkg/debug"
)

// Default watcher timings.
const (
	DefaultDebounce     = 250 * time.Millisecond
	DefaultPollInterval = 2 * time.Second
)

// ErrAlreadyStarted is returned by Start on a running watcher.
var ErrAlreadyStarted = errors.New("watcher already started")

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the debounce window for change notifications.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithPollInterval sets the polling interval for fallback mode.
func WithPollInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.pollInterval = d }
}

// WithForcePoll forces polling mode even if fsnotify is available.
func WithForcePoll(force bool) WatcherOption {
	return func(w *Watcher) { w.forcePoll = force }
}

// Watcher monitors the catalog file for changes using fsnotify with a
// polling fallback. SQLite writers may replace rather than rewrite the
// file, so the parent directory is watched and events are filtered by
// name. Changes are debounced and signaled on Changed.
type Watcher struct {
	path         string
	debounce     time.Duration
	pollInterval time.Duration
	forcePoll    bool

	lastMtime time.Time
	lastSize  int64
	stateMu   sync.Mutex
	started   bool
	ctx       context.Context
	cancel    context.CancelFunc
	changeCh  chan struct{}
	fsWatcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the given catalog path.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:         abs,
		debounce:     DefaultDebounce,
		pollInterval: DefaultPollInterval,
		changeCh:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Changed returns the change-signal channel. At most one signal is
// pending at a time; coalesced bursts deliver once.
func (w *Watcher) Changed() <-chan struct{} { return w.changeCh }

// Start begins watching. Falls back to polling when fsnotify cannot be
// set up.
func (w *Watcher) Start() error {
	w.stateMu.Lock()
	defer w.stateMu.Unlock()
	if w.started {
		return ErrAlreadyStarted
	}
	w.started = true
	w.ctx, w.cancel = context.WithCancel(context.Background())
	w.recordStat()

	if !w.forcePoll {
		fw, err := fsnotify.NewWatcher()
		if err == nil {
			if err := fw.Add(filepath.Dir(w.path)); err == nil {
				w.fsWatcher = fw
				go w.runFsnotify(fw)
				return nil
			}
			fw.Close()
		}
		debug.Log("library: fsnotify unavailable, polling %s", w.path)
	}
	go w.runPoll()
	return nil
}

// Stop halts the watcher. Safe to call once after Start.
func (w *Watcher) Stop() {
	w.stateMu.Lock()
	defer w.stateMu.Unlock()
	if !w.started {
		return
	}
	w.started = false
	w.cancel()
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
		w.fsWatcher = nil
	}
}

func (w *Watcher) runFsnotify(fw *fsnotify.Watcher) {
	var timer *time.Timer
	fire := func() {
		select {
		case w.changeCh <- struct{}{}:
		default:
		}
	}
	for {
		select {
		case <-w.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != filepath.Base(w.path) {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, fire)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			debug.Log("library: watcher error: %v", err)
		}
	}
}

func (w *Watcher) runPoll() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if w.statChanged() {
				select {
				case w.changeCh <- struct{}{}:
				default:
				}
			}
		}
	}
}

// recordStat captures the file's current mtime and size.
func (w *Watcher) recordStat() {
	if info, err := os.Stat(w.path); err == nil {
		w.lastMtime = info.ModTime()
		w.lastSize = info.Size()
	}
}

// statChanged reports and records whether the file's mtime or size moved.
func (w *Watcher) statChanged() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		return false
	}
	changed := !info.ModTime().Equal(w.lastMtime) || info.Size() != w.lastSize
	w.lastMtime = info.ModTime()
	w.lastSize = info.Size()
	return changed
}
