// Package extract builds mission records from Liciel mission folders.
package extract

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/liciel-tools/missionscope/pkg/missions"
	"github.com/liciel-tools/missionscope/pkg/xmldoc"
)

// Fixed names dictated by the Liciel export layout.
const (
	DataDir         = "XML"
	PrimaryFile     = "Table_General_Bien.xml"
	ConclusionsFile = "Table_General_Bien_conclusions.xml"
	PhotoIndexFile  = "Table_General_Photo.xml"
)

// ErrSkip marks a folder that cannot produce a mission: the data
// subdirectory or the primary file is missing, or the primary file is not
// readable XML.
var ErrSkip = errors.New("folder skipped")

// Logger abstracts logging so callers can use logrus, stdlib log, or any
// other logger that satisfies this interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// NopLogger silently discards all messages.
type NopLogger struct{}

func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}
func (NopLogger) Debugf(string, ...interface{}) {}

// Extractor turns one mission folder into a Mission.
type Extractor struct {
	// Photos issues transient locators for resolved photos. Optional: when
	// nil the relative path is kept without a locator.
	Photos *PhotoRegistry
	Log    Logger
}

func (x *Extractor) log() Logger {
	if x.Log == nil {
		return NopLogger{}
	}
	return x.Log
}

// DecodeFolder reads the XML exports of a mission folder. folder is rooted
// at the mission folder itself and name is the folder's own name. The
// returned error wraps ErrSkip for folders that must be excluded; every
// other problem only leaves the affected fields empty.
func (x *Extractor) DecodeFolder(folder fs.FS, name string) (*missions.Mission, error) {
	log := x.log()

	info, err := fs.Stat(folder, DataDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s has no %s directory", ErrSkip, name, DataDir)
	}

	raw, err := fs.ReadFile(folder, path.Join(DataDir, PrimaryFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s missing: %v", ErrSkip, name, PrimaryFile, err)
	}
	bien, err := xmldoc.Load(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s: %v", ErrSkip, name, PrimaryFile, err)
	}

	m := missionFromBien(bien, name)

	if concl := x.readOptional(folder, name, ConclusionsFile); concl != nil {
		m.ConclusionRaw = concl.FirstOf(conclusionChain...)
	}
	m.ConclusionSegments = missions.SegmentConclusion(m.ConclusionRaw, m.Window.ActiveTypes)

	if photos := x.readOptional(folder, name, PhotoIndexFile); photos != nil {
		m.Photo = x.presentationPhoto(folder, name, photos)
	}

	log.Debugf("Decoded %s: %d mission types, %d conclusion segments", name, len(m.Window.ActiveTypes), len(m.ConclusionSegments))
	return m, nil
}

// readOptional loads an optional table. Absence and parse failures both
// yield nil.
func (x *Extractor) readOptional(folder fs.FS, name, file string) *xmldoc.Document {
	raw, err := fs.ReadFile(folder, path.Join(DataDir, file))
	if err != nil {
		x.log().Debugf("%s: no %s", name, file)
		return nil
	}
	doc, err := xmldoc.Load(raw)
	if err != nil {
		x.log().Warnf("%s: ignoring %s: %v", name, file, err)
		return nil
	}
	return doc
}
