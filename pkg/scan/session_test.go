package scan

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/liciel-tools/missionscope/pkg/filter"
	"github.com/liciel-tools/missionscope/pkg/storage"
)

func TestSession_ScanAndFilter(t *testing.T) {
	s := NewSession(testRoot(), "root", SessionOptions{})
	defer s.Close()

	require.Empty(t, s.Missions())
	require.NotEmpty(t, s.ID)

	res, err := s.Scan(context.Background(), Params{Mode: ModeAll}, nil, nil)
	require.NoError(t, err)
	require.Len(t, res.Missions, 3)
	require.Equal(t, res.Missions, s.Missions())
	require.Equal(t, s.Missions(), s.Filtered())

	got := s.ApplyFilter(filter.Options{MissionTypes: []string{"Amiante (DTA)"}})
	require.Len(t, got, 2)
	require.Equal(t, got, s.Filtered())
	require.Equal(t, []string{"Amiante (DTA)"}, s.Criteria().MissionTypes)

	var buf bytes.Buffer
	require.NoError(t, s.ExportCSV(&buf))
	require.Equal(t, "num_dossier\r\n\"24-001\"\r\n\"OTHER\"", buf.String())

	text, err := s.ClipboardText()
	require.NoError(t, err)
	require.Equal(t, "24-001\nOTHER", text)

	require.Equal(t, []string{"Amiante (DTA)", "DPE"}, s.Choices().MissionTypes)

	require.Len(t, s.ResetFilter(), 3)
	require.True(t, s.Criteria().IsZero())

	s.ApplyFilter(filter.Options{Owners: []string{"nobody"}})
	require.ErrorIs(t, s.ExportCSV(&buf), storage.ErrEmptySelection)
}

func TestSession_RescanReleasesPhotos(t *testing.T) {
	s := NewSession(testRoot(), "root", SessionOptions{})

	res, err := s.Scan(context.Background(), Params{Mode: ModeAll}, nil, nil)
	require.NoError(t, err)
	first := res.Missions[1].Photo.ResolvedLocator
	require.True(t, strings.HasPrefix(string(first), "photo://"+s.ID+"/"))

	f, err := s.OpenPhoto(first)
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "jpeg", string(data))
	require.NoError(t, f.Close())

	s.ApplyFilter(filter.Options{MissionTypes: []string{"DPE"}})

	res, err = s.Scan(context.Background(), Params{Mode: ModePrefix, Prefix: "24-"}, nil, nil)
	require.NoError(t, err)
	require.Len(t, s.Missions(), 2)
	require.Len(t, s.Filtered(), 2)
	second := res.Missions[1].Photo.ResolvedLocator
	require.NotEqual(t, first, second)

	_, err = s.OpenPhoto(first)
	require.ErrorIs(t, err, fs.ErrNotExist)
	_, err = s.OpenPhoto(second)
	require.NoError(t, err)

	require.NoError(t, s.Close())
	_, err = s.OpenPhoto(second)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSession_FailedScanKeepsState(t *testing.T) {
	s := NewSession(testRoot(), "root", SessionOptions{ConfirmThreshold: 1})
	defer s.Close()

	_, err := s.Scan(context.Background(), Params{Mode: ModePrefix, Prefix: "OTH"}, nil, nil)
	require.NoError(t, err)
	require.Len(t, s.Missions(), 1)

	_, err = s.Scan(context.Background(), Params{Mode: ModePrefix, Prefix: "zzz"}, nil, nil)
	require.ErrorIs(t, err, ErrNoCandidates)
	require.Len(t, s.Missions(), 1)

	_, err = s.Scan(context.Background(), Params{Mode: ModeList}, nil, nil)
	require.ErrorIs(t, err, ErrEmptyList)
	require.Len(t, s.Missions(), 1)

	res, err := s.Scan(context.Background(), Params{Mode: ModeAll}, func(int) bool { return false }, nil)
	require.NoError(t, err)
	require.True(t, res.Cancelled)
	require.Len(t, s.Missions(), 1)
	require.Equal(t, "OTHER", s.Missions()[0].FolderID)
}

func TestSession_ScanNotReentrant(t *testing.T) {
	s := NewSession(testRoot(), "root", SessionOptions{})
	defer s.Close()

	var nested error
	_, err := s.Scan(context.Background(), Params{Mode: ModeAll}, nil, func(p Progress) {
		if p.Done == 1 {
			_, nested = s.Scan(context.Background(), Params{Mode: ModeAll}, nil, nil)
		}
	})
	require.NoError(t, err)
	require.ErrorIs(t, nested, ErrScanInProgress)

	// The guard is released once the scan returns.
	_, err = s.Scan(context.Background(), Params{Mode: ModeAll}, nil, nil)
	require.NoError(t, err)
}

func TestSession_ExportImport(t *testing.T) {
	s := NewSession(testRoot(), "root", SessionOptions{})
	defer s.Close()

	var buf bytes.Buffer
	require.ErrorIs(t, s.ExportJSON(&buf, time.Now()), storage.ErrEmptySelection)

	_, err := s.Scan(context.Background(), Params{Mode: ModeAll}, nil, nil)
	require.NoError(t, err)
	locator := s.Missions()[1].Photo.ResolvedLocator
	require.NotEmpty(t, locator)

	require.NoError(t, s.ExportJSON(&buf, time.Now()))
	// Exporting does not touch the live records.
	require.Equal(t, locator, s.Missions()[1].Photo.ResolvedLocator)

	other := NewSession(testRoot(), "copy", SessionOptions{})
	defer other.Close()

	_, err = other.Import(strings.NewReader(`{"missions": "nope"}`))
	require.ErrorIs(t, err, storage.ErrFormat)
	require.Empty(t, other.Missions())

	n, err := other.Import(&buf)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Len(t, other.Filtered(), 3)
	require.Empty(t, other.Missions()[1].Photo.ResolvedLocator)
	require.Equal(t, "p.jpg", other.Missions()[1].Photo.RelativePath)

	// Importing into the scanning session drops its live locators.
	var again bytes.Buffer
	require.NoError(t, s.ExportJSON(&again, time.Now()))
	_, err = s.Import(&again)
	require.NoError(t, err)
	_, err = s.OpenPhoto(locator)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSession_Files(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, storage.DefaultJSONPath)
	csvPath := filepath.Join(dir, storage.DefaultCSVPath)

	s := NewSession(testRoot(), "root", SessionOptions{})
	defer s.Close()
	require.ErrorIs(t, s.SaveFile(jsonPath, time.Now()), storage.ErrEmptySelection)

	_, err := s.Scan(context.Background(), Params{Mode: ModeAll}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.SaveFile(jsonPath, time.Now()))

	other := NewSession(nil, "", SessionOptions{})
	defer other.Close()
	_, err = other.LoadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	require.Empty(t, other.Missions())

	n, err := other.LoadFile(jsonPath)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	other.ApplyFilter(filter.Options{OrderingParties: []string{"Agence 24-002"}})
	require.NoError(t, other.SaveCSVFile(csvPath))
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	require.Equal(t, "num_dossier\r\n\"24-002\"", string(data))
}
