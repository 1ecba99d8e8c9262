package table

import "sort"

// unificationMap is the source of truth for mission-type families.
// It groups the labels of the mission-type table under a family name.
var unificationMap = map[string][]string{
	"amiante": {
		"Amiante (DTA)", "Amiante (Vente)", "Amiante (Travaux)", "Amiante (Démolition)",
		"Amiante (DAPP)", "Amiante (Avant Travaux)", "Amiante (Contrôle périodique)",
		"Amiante (HAP)", "Empoussièrement",
	},
	"plomb":        {"CREP", "Plomb dans l’eau", "Plomb (Après Travaux)", "Plomb (Avant Travaux)"},
	"parasites":    {"Diagnostic Termites", "Diagnostic Parasites"},
	"surface":      {"Métrage (Carrez)", "Mesurage (Boutin)"},
	"energie":      {"DPE", "DPEG", "Diagnostic Technique Global (DTG)", "Prêt à taux zéro", "Infiltrométrie", "Performance Numérique"},
	"installation": {"Gaz", "Électricité", "Assainissement", "Piscine", "Ascenseur", "Diagnostic Incendie"},
	"risques":      {"ERP / ESRIS", "Radon", "DRIPP"},
	"inspection":   {"Home Inspection", "Home Inspection 4PT", "Wind Mitigation"},
}

// familyMap is a reverse map generated from unificationMap for efficient lookups.
var familyMap map[string]string

func init() {
	familyMap = make(map[string]string)
	for family, labels := range unificationMap {
		for _, label := range labels {
			familyMap[label] = family
		}
	}
}

// Family returns the family of a mission-type label, or "autre" for labels
// outside every family.
func Family(missionType string) string {
	if family, ok := familyMap[missionType]; ok {
		return family
	}
	return "autre"
}

// Families lists the known family names, sorted.
func Families() []string {
	names := make([]string, 0, len(unificationMap)+1)
	for family := range unificationMap {
		names = append(names, family)
	}
	names = append(names, "autre")
	sort.Strings(names)
	return names
}

