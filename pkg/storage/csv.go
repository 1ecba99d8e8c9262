package storage

import (
	"fmt"
	"io"
	"strings"

	"github.com/liciel-tools/missionscope/pkg/missions"
)

// WriteCSV writes the folder identifiers of list, one per line under a
// num_dossier header. Every value is quoted and lines are separated by
// CRLF with no trailing line break. Nothing is written for an empty list.
func WriteCSV(w io.Writer, list []*missions.Mission) error {
	if len(list) == 0 {
		return ErrEmptySelection
	}
	lines := make([]string, 0, len(list)+1)
	lines = append(lines, CSVHeader)
	for _, m := range list {
		lines = append(lines, quote(m.FolderID))
	}
	if _, err := io.WriteString(w, strings.Join(lines, "\r\n")); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// ClipboardText returns the folder identifiers of list, one per line.
func ClipboardText(list []*missions.Mission) (string, error) {
	if len(list) == 0 {
		return "", ErrEmptySelection
	}
	ids := make([]string, 0, len(list))
	for _, m := range list {
		ids = append(ids, m.FolderID)
	}
	return strings.Join(ids, "\n"), nil
}

func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
