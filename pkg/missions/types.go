// Package missions holds the mission record model, the fixed mission-type
// table and the pure decoding helpers built on it (bitfield decoding and
// conclusion segmentation).
package missions

import (
	"encoding/json"
	"slices"
	"strings"
)

// TypeTable is the ordered list of mission types known to the Liciel export.
// Position i corresponds to character i of the scheduled-missions bitfield.
var TypeTable = [...]string{
	"Amiante (DTA)",                     // 00
	"Amiante (Vente)",                   // 01
	"Amiante (Travaux)",                 // 02
	"Amiante (Démolition)",              // 03
	"Diagnostic Termites",               // 04
	"Diagnostic Parasites",              // 05
	"Métrage (Carrez)",                  // 06
	"CREP",                              // 07
	"Assainissement",                    // 08
	"Piscine",                           // 09
	"Gaz",                               // 10
	"Électricité",                       // 11
	"Diagnostic Technique Global (DTG)", // 12
	"DPE",                               // 13
	"Prêt à taux zéro",                  // 14
	"ERP / ESRIS",                       // 15
	"État d’Habitabilité",               // 16
	"État des lieux",                    // 17
	"Plomb dans l’eau",                  // 18
	"Ascenseur",                         // 19
	"Radon",                             // 20
	"Diagnostic Incendie",               // 21
	"Accessibilité Handicapé",           // 22
	"Mesurage (Boutin)",                 // 23
	"Amiante (DAPP)",                    // 24
	"DRIPP",                             // 25
	"Performance Numérique",             // 26
	"Infiltrométrie",                    // 27
	"Amiante (Avant Travaux)",           // 28
	"Gestion Déchets / PEMD",            // 29
	"Plomb (Après Travaux)",             // 30
	"Amiante (Contrôle périodique)",     // 31
	"Empoussièrement",                   // 32
	"Module Interne",                    // 33
	"Home Inspection",                   // 34
	"Home Inspection 4PT",               // 35
	"Wind Mitigation",                   // 36
	"Plomb (Avant Travaux)",             // 37
	"Amiante (HAP)",                     // 38
	"[Non utilisé]",                     // 39
	"DPEG",                              // 40
}

// Mission is the record built from one mission folder.
type Mission struct {
	FolderID           string          `json:"folderId"`
	OrderingParty      Party           `json:"orderingParty"`
	Owner              Party           `json:"owner"`
	Property           Property        `json:"property"`
	Window             Window          `json:"missionWindow"`
	Operator           Operator        `json:"operator"`
	ConclusionRaw      string          `json:"conclusionRaw"`
	ConclusionSegments []Segment       `json:"conclusionSegments"`
	Photo              *PhotoReference `json:"photoReference"`
}

// Party is either the ordering party (donneur d'ordre) or the owner.
type Party struct {
	Heading     string `json:"heading"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Address     string `json:"address"`
	Department  string `json:"department"`
	Commune     string `json:"commune"`
}

// Property describes the inspected building.
type Property struct {
	Address     string `json:"address"`
	Department  string `json:"department"`
	Commune     string `json:"commune"`
	Lot         string `json:"lot"`
	Nature      string `json:"nature"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Window carries the scheduling data of a mission. Dates are kept verbatim.
type Window struct {
	ScheduledBits string   `json:"scheduledBits"`
	ActiveTypes   []string `json:"activeTypes"`
	VisitDate     string   `json:"visitDate"`
	ReportDate    string   `json:"reportDate"`
}

// Operator is the certified technician who performed the visit.
type Operator struct {
	FamilyName          string `json:"familyName"`
	GivenName           string `json:"givenName"`
	CertifyingBody      string `json:"certifyingBody"`
	CertificationNumber string `json:"certificationNumber"`
}

// Segment is the part of a conclusion attributed to one mission type.
type Segment struct {
	MissionType string `json:"missionType"`
	Text        string `json:"text"`
}

// PhotoReference points at the presentation photo of a mission.
// ResolvedLocator is only meaningful inside the session that issued it.
type PhotoReference struct {
	ResolvedLocator Locator `json:"resolvedLocator"`
	RelativePath    string  `json:"relativePath"`
}

// Locator is an opaque session-scoped photo handle. The zero value
// serializes as JSON null.
type Locator string

func (l Locator) MarshalJSON() ([]byte, error) {
	if l == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(l))
}

func (l *Locator) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = Locator(s)
	return nil
}

// JoinName joins heading and name with a single space, omitting empty parts.
func JoinName(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// Label renders "Family Given (Body)", the label used for filtering.
func (o Operator) Label() string {
	var parts []string
	if name := JoinName(o.FamilyName, o.GivenName); name != "" {
		parts = append(parts, name)
	}
	if o.CertifyingBody != "" {
		parts = append(parts, "("+o.CertifyingBody+")")
	}
	return strings.Join(parts, " ")
}

// ClearLocator drops the transient photo handle, keeping the relative path.
func (m *Mission) ClearLocator() {
	if m.Photo != nil {
		m.Photo.ResolvedLocator = ""
	}
}

// Clone returns a deep copy of the mission.
func (m *Mission) Clone() *Mission {
	c := *m
	c.Window.ActiveTypes = slices.Clone(m.Window.ActiveTypes)
	c.ConclusionSegments = slices.Clone(m.ConclusionSegments)
	if m.Photo != nil {
		p := *m.Photo
		c.Photo = &p
	}
	return &c
}
