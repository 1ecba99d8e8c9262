// Package scan enumerates mission folders under a root, decodes the ones
// matching a selection and reports progress while doing so.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/liciel-tools/missionscope/pkg/extract"
	"github.com/liciel-tools/missionscope/pkg/missions"
)

// Logger abstracts logging so callers can use logrus or any other logger
// that satisfies this interface.
type Logger = extract.Logger

// DefaultConfirmThreshold is the candidate count above which a scan asks
// for confirmation.
const DefaultConfirmThreshold = 50

var (
	ErrEmptyPrefix    = errors.New("a folder prefix is required in prefix mode")
	ErrEmptyList      = errors.New("at least one folder identifier is required in list mode")
	ErrUnknownMode    = errors.New("unknown selection mode")
	ErrNoCandidates   = errors.New("no mission folder matches the selection")
	ErrScanInProgress = errors.New("a scan is already running")
)

// Mode selects which subdirectories of the root are candidates.
type Mode string

const (
	ModeAll    Mode = "all"
	ModePrefix Mode = "prefix"
	ModeList   Mode = "list"
)

// ParseMode converts a user supplied mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAll, ModePrefix, ModeList:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

var tokenSeparators = regexp.MustCompile(`[\s,;]+`)

// ParseTokens splits a pasted list of folder identifiers on whitespace,
// commas and semicolons.
func ParseTokens(text string) []string {
	tokens := []string{}
	for _, t := range tokenSeparators.Split(text, -1) {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Params is the folder selection of a scan.
type Params struct {
	Mode   Mode
	Prefix string
	Tokens []string
}

// Validate checks the parameters required by the selected mode.
func (p Params) Validate() error {
	switch p.Mode {
	case ModeAll:
		return nil
	case ModePrefix:
		if strings.TrimSpace(p.Prefix) == "" {
			return ErrEmptyPrefix
		}
		return nil
	case ModeList:
		for _, t := range p.Tokens {
			if strings.TrimSpace(t) != "" {
				return nil
			}
		}
		return ErrEmptyList
	}
	return fmt.Errorf("%w: %q", ErrUnknownMode, p.Mode)
}

// Matches reports whether a folder name is selected. In list mode a folder
// is selected when its name starts with any non-empty token. Matching is
// case-sensitive.
func (p Params) Matches(name string) bool {
	switch p.Mode {
	case ModeAll:
		return true
	case ModePrefix:
		return strings.HasPrefix(name, strings.TrimSpace(p.Prefix))
	case ModeList:
		for _, t := range p.Tokens {
			t = strings.TrimSpace(t)
			if t != "" && strings.HasPrefix(name, t) {
				return true
			}
		}
	}
	return false
}

// Progress is reported after every candidate folder.
type Progress struct {
	Done    int
	Total   int
	Folder  string
	Skipped bool
}

// Config holds everything Scan needs.
type Config struct {
	Root      fs.FS
	Params    Params
	Extractor *extract.Extractor // defaults to an extractor without photo registry

	ConfirmThreshold int                  // defaults to DefaultConfirmThreshold if <= 0
	Confirm          func(total int) bool // nil = proceed without asking
	OnProgress       func(Progress)       // optional
	Log              Logger               // optional; nil = no logging
}

// Result holds the outcome of a scan.
type Result struct {
	Missions   []*missions.Mission
	Candidates int
	Skipped    int
	Cancelled  bool
}

// Candidates lists the immediate subdirectories of root selected by params,
// sorted by name.
func Candidates(root fs.FS, params Params) ([]string, error) {
	entries, err := fs.ReadDir(root, ".")
	if err != nil {
		return nil, fmt.Errorf("list scan root: %w", err)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() && params.Matches(e.Name()) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Scan decodes every selected mission folder, one at a time. Folders that
// cannot be decoded are counted as skipped. The context is only checked
// before processing starts.
func Scan(ctx context.Context, cfg Config) (*Result, error) {
	log := cfg.Log
	if log == nil {
		log = extract.NopLogger{}
	}
	threshold := cfg.ConfirmThreshold
	if threshold <= 0 {
		threshold = DefaultConfirmThreshold
	}
	extractor := cfg.Extractor
	if extractor == nil {
		extractor = &extract.Extractor{Log: log}
	}

	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	names, err := Candidates(cfg.Root, cfg.Params)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrNoCandidates
	}

	result := &Result{Missions: []*missions.Mission{}, Candidates: len(names)}

	if len(names) > threshold && cfg.Confirm != nil && !cfg.Confirm(len(names)) {
		log.Infof("Scan of %d folders cancelled", len(names))
		result.Cancelled = true
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debugf("Scanning %d mission folders", len(names))
	for i, name := range names {
		m, err := decode(extractor, cfg.Root, name)
		skipped := err != nil
		if skipped {
			result.Skipped++
			if errors.Is(err, extract.ErrSkip) {
				log.Warnf("Skipping %s: %v", name, err)
			} else {
				log.Errorf("Skipping %s: %v", name, err)
			}
		} else {
			result.Missions = append(result.Missions, m)
		}
		if cfg.OnProgress != nil {
			cfg.OnProgress(Progress{Done: i + 1, Total: len(names), Folder: name, Skipped: skipped})
		}
	}
	return result, nil
}

func decode(extractor *extract.Extractor, root fs.FS, name string) (*missions.Mission, error) {
	folder, err := fs.Sub(root, name)
	if err != nil {
		return nil, err
	}
	return extractor.DecodeFolder(folder, name)
}
