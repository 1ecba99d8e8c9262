// Package storage persists mission lists as JSON documents and exports
// folder identifiers as CSV or plain text.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tidwall/gjson"

	"github.com/liciel-tools/missionscope/pkg/missions"
)

var (
	// ErrFormat is returned when an import document has an unexpected shape.
	ErrFormat = errors.New("invalid mission export format")
	// ErrEmptySelection is returned when exporting identifiers of an empty list.
	ErrEmptySelection = errors.New("no mission to export")
)

// WriteJSON writes list as an Envelope. Photo locators are written as null;
// the records of list are left untouched.
func WriteJSON(w io.Writer, list []*missions.Mission, now time.Time) error {
	env := Envelope{
		Version:    FormatVersion,
		ExportedAt: now.UTC().Format(time.RFC3339),
		Missions:   make([]*missions.Mission, 0, len(list)),
	}
	for _, m := range list {
		c := m.Clone()
		c.ClearLocator()
		env.Missions = append(env.Missions, c)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encode missions: %w", err)
	}
	return nil
}

// ReadJSON reads either an Envelope or a bare array of missions. Imported
// missions never carry a photo locator.
func ReadJSON(r io.Reader) ([]*missions.Mission, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read missions: %w", err)
	}
	data = bytes.TrimSpace(data)
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not a JSON document", ErrFormat)
	}

	var payload []byte
	root := gjson.ParseBytes(data)
	switch {
	case root.IsArray():
		payload = data
	case root.IsObject():
		list := root.Get("missions")
		if !list.IsArray() {
			return nil, fmt.Errorf("%w: missing missions array", ErrFormat)
		}
		payload = []byte(list.Raw)
	default:
		return nil, fmt.Errorf("%w: expected an array or an object", ErrFormat)
	}

	var list []*missions.Mission
	if err := json.Unmarshal(payload, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	for i, m := range list {
		if m == nil {
			return nil, fmt.Errorf("%w: mission %d is null", ErrFormat, i)
		}
		m.ClearLocator()
		if m.Window.ActiveTypes == nil {
			m.Window.ActiveTypes = []string{}
		}
		if m.ConclusionSegments == nil {
			m.ConclusionSegments = []missions.Segment{}
		}
	}
	if list == nil {
		list = []*missions.Mission{}
	}
	return list, nil
}
