// Package table renders mission lists as delimited text lines and summary
// tables for the command line.
package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/liciel-tools/missionscope/pkg/missions"
)

// DefaultFlags prints the folder id, ordering party, owner, visit date and
// active mission types.
const DefaultFlags = "iopvt"

// PrintMissions writes one line per mission. Each character of outputFlags
// selects a column:
//
//	i folder id          o ordering party     p owner
//	a property address   k property kind      l lot
//	v visit date         r report date        t mission types
//	e operator           c conclusion         f photo path
//
// Lines whose columns are all empty are not printed.
func PrintMissions(w io.Writer, list []*missions.Mission, outputFlags, delimiter string) error {
	if err := ValidateFlags(outputFlags); err != nil {
		return err
	}
	for _, m := range list {
		line := createLine(m, outputFlags, delimiter)
		if strings.Trim(line, delimiter) == "" {
			continue
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFlags rejects unknown output flags.
func ValidateFlags(outputFlags string) error {
	if outputFlags == "" {
		return fmt.Errorf("no output flag given")
	}
	for _, f := range outputFlags {
		if _, ok := columns[f]; !ok {
			return fmt.Errorf("invalid print flag %q", f)
		}
	}
	return nil
}

var columns = map[rune]func(m *missions.Mission) string{
	'i': func(m *missions.Mission) string { return m.FolderID },
	'o': func(m *missions.Mission) string { return m.OrderingParty.DisplayName },
	'p': func(m *missions.Mission) string { return m.Owner.DisplayName },
	'a': PropertyAddress,
	'k': PropertyKind,
	'l': func(m *missions.Mission) string { return m.Property.Lot },
	'v': func(m *missions.Mission) string { return m.Window.VisitDate },
	'r': func(m *missions.Mission) string { return m.Window.ReportDate },
	't': func(m *missions.Mission) string { return strings.Join(m.Window.ActiveTypes, ", ") },
	'e': func(m *missions.Mission) string { return m.Operator.Label() },
	'c': Conclusion,
	'f': func(m *missions.Mission) string {
		if m.Photo == nil {
			return ""
		}
		return m.Photo.RelativePath
	},
}

func createLine(m *missions.Mission, outputFlags, delimiter string) string {
	var line string
	for _, f := range outputFlags {
		line += columns[f](m) + delimiter
	}
	return strings.TrimSuffix(line, delimiter)
}

// PropertyAddress joins the street address, department and commune.
func PropertyAddress(m *missions.Mission) string {
	return missions.JoinName(m.Property.Address, m.Property.Department, m.Property.Commune)
}

// PropertyKind joins type, nature and category with " / ".
func PropertyKind(m *missions.Mission) string {
	var parts []string
	for _, p := range []string{m.Property.Type, m.Property.Nature, m.Property.Category} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " / ")
}

// Conclusion renders the segmented conclusion on a single line, falling
// back to the raw text when nothing was attributed.
func Conclusion(m *missions.Mission) string {
	if len(m.ConclusionSegments) == 0 {
		return missions.NormalizeSpace(m.ConclusionRaw)
	}
	parts := make([]string, 0, len(m.ConclusionSegments))
	for _, s := range m.ConclusionSegments {
		parts = append(parts, s.MissionType+": "+s.Text)
	}
	return strings.Join(parts, " | ")
}
