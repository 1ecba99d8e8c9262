package missions

import (
	"sort"
	"strings"
	"unicode"
)

// occurrence is the first position of a table label in a conclusion.
type occurrence struct {
	label string
	order int
	index int
}

// NormalizeSpace collapses every whitespace run to a single space and trims.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SegmentConclusion splits a free-text conclusion into per-mission-type
// segments. Every table label is located by plain substring search; the
// text between one label and the next found label belongs to the first.
// Segments for labels missing from active, or with an empty body, are
// dropped. The result follows the order in which labels appear in the text.
func SegmentConclusion(text string, active []string) []Segment {
	normalized := NormalizeSpace(text)
	segments := []Segment{}
	if normalized == "" {
		return segments
	}

	found := locateLabels(normalized)

	activeSet := make(map[string]struct{}, len(active))
	for _, a := range active {
		activeSet[a] = struct{}{}
	}

	for i, occ := range found {
		start := occ.index + len(occ.label)
		end := len(normalized)
		if i+1 < len(found) {
			end = found[i+1].index
		}
		if end <= start {
			// Another label starts inside this one (e.g. DPE / DPEG).
			continue
		}
		body := cleanBody(normalized[start:end])
		if body == "" {
			continue
		}
		if _, ok := activeSet[occ.label]; !ok {
			continue
		}
		segments = append(segments, Segment{MissionType: occ.label, Text: body})
	}
	return segments
}

// locateLabels finds the first occurrence of every table label, sorted by
// position. Labels starting at the same index keep table order.
func locateLabels(text string) []occurrence {
	var found []occurrence
	for i, label := range TypeTable {
		if idx := strings.Index(text, label); idx >= 0 {
			found = append(found, occurrence{label: label, order: i, index: idx})
		}
	}
	sort.Slice(found, func(a, b int) bool {
		if found[a].index != found[b].index {
			return found[a].index < found[b].index
		}
		return found[a].order < found[b].order
	})
	return found
}

// cleanBody strips the numbering and punctuation left before the real
// content (digits, spaces, colons, parentheses, hyphens).
func cleanBody(body string) string {
	body = strings.TrimLeftFunc(body, func(r rune) bool {
		switch r {
		case ':', '(', ')', '-':
			return true
		}
		return (r >= '0' && r <= '9') || unicode.IsSpace(r)
	})
	return strings.TrimSpace(body)
}

// JoinSegments rebuilds a conclusion text from segments, each body preceded
// by its mission-type label.
func JoinSegments(segments []Segment) string {
	parts := make([]string, 0, len(segments)*2)
	for _, s := range segments {
		parts = append(parts, s.MissionType, s.Text)
	}
	return strings.Join(parts, " ")
}
