package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/liciel-tools/missionscope/internal/utils"
	"github.com/liciel-tools/missionscope/pkg/missions"
)

// SaveFile writes list as a JSON export to path. The file is replaced
// atomically while holding the export lock.
func SaveFile(path string, list []*missions.Mission, now time.Time) error {
	return withLock(path, func() error {
		tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
		if err != nil {
			return fmt.Errorf("create temp file: %w", err)
		}
		defer os.Remove(tmp.Name())

		if err := WriteJSON(tmp, list, now); err != nil {
			tmp.Close()
			return err
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("close temp file: %w", err)
		}
		return os.Rename(tmp.Name(), path)
	})
}

// LoadFile reads a JSON export from path.
func LoadFile(path string) ([]*missions.Mission, error) {
	var list []*missions.Mission
	err := withLock(path, func() error {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		list, err = ReadJSON(f)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// SaveCSVFile writes the identifier export of list to path.
func SaveCSVFile(path string, list []*missions.Mission) error {
	if len(list) == 0 {
		return ErrEmptySelection
	}
	return withLock(path, func() error {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := WriteCSV(f, list); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
}

func withLock(path string, fn func() error) error {
	release, err := utils.LockSibling(context.Background(), path, func(lockPath string) {
		utils.Log.Warnf("Export %s is locked by another missionscope process (%s), waiting", path, lockPath)
	})
	if err != nil {
		return err
	}
	defer release()
	return fn()
}
