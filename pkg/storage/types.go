package storage

import "github.com/liciel-tools/missionscope/pkg/missions"

// FormatVersion is written in every JSON export.
const FormatVersion = 1

// Default file names used by the CLI.
const (
	DefaultJSONPath = "missions_export.json"
	DefaultCSVPath  = "missions_filtrees.csv"
)

// CSVHeader is the single column of the identifier export.
const CSVHeader = "num_dossier"

// Envelope is the JSON export document.
type Envelope struct {
	Version    int                 `json:"version"`
	ExportedAt string              `json:"exportedAt"`
	Missions   []*missions.Mission `json:"missions"`
}
