package scan

import (
	"context"
	"io"
	"io/fs"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/liciel-tools/missionscope/pkg/extract"
	"github.com/liciel-tools/missionscope/pkg/filter"
	"github.com/liciel-tools/missionscope/pkg/missions"
	"github.com/liciel-tools/missionscope/pkg/storage"
)

// SessionOptions configures a Session.
type SessionOptions struct {
	ConfirmThreshold int    // defaults to DefaultConfirmThreshold if <= 0
	Log              Logger // optional; nil = no logging
}

// Session owns the mission list of one scan root: the records from the
// last successful scan or import, the filtered view over them and the
// photo locators they hold.
type Session struct {
	ID       string
	RootName string

	root  fs.FS
	opts  SessionOptions
	guard *semaphore.Weighted

	photos    *extract.PhotoRegistry
	extractor *extract.Extractor

	mu       sync.RWMutex
	missions []*missions.Mission
	filtered []*missions.Mission
	criteria filter.Options
}

// NewSession creates an empty session over root. rootName is only used
// for display.
func NewSession(root fs.FS, rootName string, opts SessionOptions) *Session {
	if opts.Log == nil {
		opts.Log = extract.NopLogger{}
	}
	id := uuid.NewString()
	photos := extract.NewPhotoRegistry(id)
	return &Session{
		ID:        id,
		RootName:  rootName,
		root:      root,
		opts:      opts,
		guard:     semaphore.NewWeighted(1),
		photos:    photos,
		extractor: &extract.Extractor{Photos: photos, Log: opts.Log},
		missions:  []*missions.Mission{},
		filtered:  []*missions.Mission{},
	}
}

// Scan runs a scan over the session root. On success the mission list is
// replaced and the filter is reset. A scan started while another one is
// running fails with ErrScanInProgress.
func (s *Session) Scan(ctx context.Context, params Params, confirm func(total int) bool, onProgress func(Progress)) (*Result, error) {
	if !s.guard.TryAcquire(1) {
		return nil, ErrScanInProgress
	}
	defer s.guard.Release(1)

	result, err := Scan(ctx, Config{
		Root:             s.root,
		Params:           params,
		Extractor:        s.extractor,
		ConfirmThreshold: s.opts.ConfirmThreshold,
		Confirm:          confirm,
		OnProgress:       onProgress,
		Log:              s.opts.Log,
	})
	if err != nil || result.Cancelled {
		return result, err
	}

	s.replace(result.Missions)
	s.opts.Log.Infof("Scan of %s done: %d missions, %d skipped", s.RootName, len(result.Missions), result.Skipped)
	return result, nil
}

// Import replaces the mission list with the content of a JSON export. On
// error the session is left unchanged.
func (s *Session) Import(r io.Reader) (int, error) {
	list, err := storage.ReadJSON(r)
	if err != nil {
		return 0, err
	}
	s.replace(list)
	return len(list), nil
}

// LoadFile replaces the mission list with the JSON export at path.
func (s *Session) LoadFile(path string) (int, error) {
	list, err := storage.LoadFile(path)
	if err != nil {
		return 0, err
	}
	s.replace(list)
	return len(list), nil
}

// SaveFile writes the full mission list to path as a JSON export.
func (s *Session) SaveFile(path string, now time.Time) error {
	list := s.Missions()
	if len(list) == 0 {
		return storage.ErrEmptySelection
	}
	return storage.SaveFile(path, list, now)
}

// SaveCSVFile writes the identifiers of the filtered view to path.
func (s *Session) SaveCSVFile(path string) error {
	return storage.SaveCSVFile(path, s.Filtered())
}

// replace swaps the mission list, releasing the locators of the previous
// records that are not carried over.
func (s *Session) replace(list []*missions.Mission) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keep := make(map[missions.Locator]struct{}, len(list))
	for _, m := range list {
		if m.Photo != nil && m.Photo.ResolvedLocator != "" {
			keep[m.Photo.ResolvedLocator] = struct{}{}
		}
	}
	for _, m := range s.missions {
		if m.Photo == nil || m.Photo.ResolvedLocator == "" {
			continue
		}
		if _, ok := keep[m.Photo.ResolvedLocator]; !ok {
			s.photos.Release(m.Photo.ResolvedLocator)
		}
	}

	s.missions = list
	s.filtered = list
	s.criteria = filter.Options{}
}

// Missions returns the full mission list.
func (s *Session) Missions() []*missions.Mission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.missions
}

// Filtered returns the current filtered view.
func (s *Session) Filtered() []*missions.Mission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filtered
}

// Criteria returns the filter currently applied.
func (s *Session) Criteria() filter.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// ApplyFilter narrows the filtered view and returns it.
func (s *Session) ApplyFilter(o filter.Options) []*missions.Mission {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = o
	s.filtered = filter.Apply(s.missions, o)
	return s.filtered
}

// ResetFilter restores the filtered view to the full list.
func (s *Session) ResetFilter() []*missions.Mission {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = filter.Options{}
	s.filtered = s.missions
	return s.filtered
}

// Choices returns the selectable filter values of the full list.
func (s *Session) Choices() filter.Choices {
	return filter.CollectChoices(s.Missions())
}

// ExportJSON writes the full mission list.
func (s *Session) ExportJSON(w io.Writer, now time.Time) error {
	list := s.Missions()
	if len(list) == 0 {
		return storage.ErrEmptySelection
	}
	return storage.WriteJSON(w, list, now)
}

// ExportCSV writes the identifiers of the filtered view.
func (s *Session) ExportCSV(w io.Writer) error {
	return storage.WriteCSV(w, s.Filtered())
}

// ClipboardText returns the identifiers of the filtered view, one per line.
func (s *Session) ClipboardText() (string, error) {
	return storage.ClipboardText(s.Filtered())
}

// OpenPhoto opens the presentation photo behind a locator issued by this
// session.
func (s *Session) OpenPhoto(loc missions.Locator) (fs.File, error) {
	return s.photos.Open(loc)
}

// Close releases every photo locator held by the session.
func (s *Session) Close() error {
	n := s.photos.ReleaseAll()
	s.opts.Log.Debugf("Released %d photo locators", n)
	return nil
}
