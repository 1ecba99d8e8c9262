// Package watch triggers a callback when mission folders appear or change
// under a scan root.
package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/liciel-tools/missionscope/pkg/extract"
)

// DefaultDebounce is how long a folder must stay quiet before it triggers.
const DefaultDebounce = 2 * time.Second

const tickInterval = 100 * time.Millisecond

// TriggerFunc is called with the names of the folders that changed.
type TriggerFunc func(ctx context.Context, folders []string) error

// Config holds everything a Watcher needs.
type Config struct {
	Root     string
	Debounce time.Duration // defaults to DefaultDebounce if <= 0
	Trigger  TriggerFunc
	// Retry reports whether a failed trigger should be attempted again on
	// the next tick, keeping the pending folders. Nil = never retry.
	Retry func(err error) bool
	Log   extract.Logger // optional; nil = no logging
}

// Stats tracks watcher activity.
type Stats struct {
	Events   int
	Triggers int
	Retries  int
	Errors   int
}

// Watcher watches the scan root, every mission folder and their XML
// directories.
type Watcher struct {
	cfg Config
	fsw *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]time.Time
	stats   Stats
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a watcher. Start must be called to begin watching.
func New(cfg Config) (*Watcher, error) {
	if cfg.Trigger == nil {
		return nil, errors.New("watch: a trigger is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Log == nil {
		cfg.Log = extract.NopLogger{}
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, err
	}
	cfg.Root = root

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		cfg:     cfg,
		fsw:     fsw,
		pending: make(map[string]time.Time),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Start registers the watches and runs the event loop in a goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watchRoot(); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	w.cfg.Log.Infof("Watching %s for mission folders", w.cfg.Root)

	go w.run(ctx)
	return nil
}

// watchRoot adds the root and every existing mission folder.
func (w *Watcher) watchRoot() error {
	if err := w.fsw.Add(w.cfg.Root); err != nil {
		return err
	}
	entries, err := os.ReadDir(w.cfg.Root)
	if err != nil {
		w.fsw.Remove(w.cfg.Root)
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			w.addFolder(filepath.Join(w.cfg.Root, e.Name()))
		}
	}
	return nil
}

// Stop stops the event loop and releases the watches.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.fsw.Close(); err != nil {
		w.cfg.Log.Errorf("Closing watcher: %v", err)
	}
}

// Done is closed once the event loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

// Stats returns a snapshot of the watcher counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.cfg.Log.Errorf("Watcher error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
		case now := <-ticker.C:
			w.flush(ctx, now)
		}
	}
}

// handleEvent records the mission folder touched by an event and extends
// the watches to folders created after Start.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	folder, depth := w.folderOf(event.Name)
	if folder == "" {
		return
	}
	if event.Op&fsnotify.Create != 0 && depth <= 2 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.addFolder(event.Name)
		}
	}

	w.cfg.Log.Debugf("%s: %s", event.Op, event.Name)
	w.mu.Lock()
	w.stats.Events++
	w.pending[folder] = time.Now()
	w.mu.Unlock()
}

// folderOf returns the mission folder name containing path and how deep
// path sits below the root.
func (w *Watcher) folderOf(path string) (string, int) {
	rel, err := filepath.Rel(w.cfg.Root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", 0
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	return parts[0], len(parts)
}

// addFolder watches a mission folder and its XML directory when present.
func (w *Watcher) addFolder(dir string) {
	if err := w.fsw.Add(dir); err != nil {
		w.cfg.Log.Warnf("Cannot watch %s: %v", dir, err)
		return
	}
	xmlDir := filepath.Join(dir, extract.DataDir)
	if info, err := os.Stat(xmlDir); err == nil && info.IsDir() {
		if err := w.fsw.Add(xmlDir); err != nil {
			w.cfg.Log.Warnf("Cannot watch %s: %v", xmlDir, err)
		}
	}
}

// flush triggers once every pending folder has been quiet for the
// debounce duration.
func (w *Watcher) flush(ctx context.Context, now time.Time) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	folders := make([]string, 0, len(w.pending))
	for name, last := range w.pending {
		if now.Sub(last) < w.cfg.Debounce {
			w.mu.Unlock()
			return
		}
		folders = append(folders, name)
	}
	w.mu.Unlock()
	sort.Strings(folders)

	err := w.cfg.Trigger(ctx, folders)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil && w.cfg.Retry != nil && w.cfg.Retry(err) {
		w.stats.Retries++
		w.cfg.Log.Debugf("Trigger postponed: %v", err)
		return
	}
	w.stats.Triggers++
	if err != nil {
		w.stats.Errors++
		w.cfg.Log.Errorf("Trigger failed: %v", err)
	}
	for _, name := range folders {
		if w.pending[name].Sub(now) <= 0 {
			delete(w.pending, name)
		}
	}
}
