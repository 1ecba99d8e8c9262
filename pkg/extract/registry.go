package extract

import (
	"fmt"
	"io/fs"
	"sync"

	"github.com/liciel-tools/missionscope/pkg/missions"
)

// PhotoRegistry hands out session-scoped locators for resolved photos and
// keeps what is needed to open them. Locators are meaningless once
// released or outside the registry that issued them.
type PhotoRegistry struct {
	mu      sync.Mutex
	prefix  string
	next    int
	entries map[missions.Locator]photoEntry
}

type photoEntry struct {
	fsys fs.FS
	path string
}

// NewPhotoRegistry creates a registry whose locators carry the session id.
func NewPhotoRegistry(sessionID string) *PhotoRegistry {
	return &PhotoRegistry{
		prefix:  "photo://" + sessionID + "/",
		entries: make(map[missions.Locator]photoEntry),
	}
}

// Register records a resolved photo and returns its locator.
func (r *PhotoRegistry) Register(fsys fs.FS, path string) missions.Locator {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	loc := missions.Locator(fmt.Sprintf("%s%d", r.prefix, r.next))
	r.entries[loc] = photoEntry{fsys: fsys, path: path}
	return loc
}

// Open opens the photo behind a live locator.
func (r *PhotoRegistry) Open(loc missions.Locator) (fs.File, error) {
	r.mu.Lock()
	e, ok := r.entries[loc]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("photo locator %q: %w", loc, fs.ErrNotExist)
	}
	return e.fsys.Open(e.path)
}

// Release revokes one locator. Unknown locators are ignored.
func (r *PhotoRegistry) Release(loc missions.Locator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, loc)
}

// ReleaseAll revokes every locator and returns how many were live.
func (r *PhotoRegistry) ReleaseAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.entries)
	r.entries = make(map[missions.Locator]photoEntry)
	return n
}

// Len returns the number of live locators.
func (r *PhotoRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
