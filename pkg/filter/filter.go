// Package filter narrows a mission list down to the missions matching the
// operator's criteria and collects the values those criteria can take.
package filter

import (
	"sort"
	"strings"

	"github.com/liciel-tools/missionscope/pkg/missions"
)

// Options holds the active criteria. Empty criteria match everything.
type Options struct {
	OrderingParties []string
	Owners          []string
	Operators       []string
	MissionTypes    []string
	Conclusion      string
}

// IsZero reports whether no criterion is set.
func (o Options) IsZero() bool {
	return len(o.OrderingParties) == 0 && len(o.Owners) == 0 && len(o.Operators) == 0 &&
		len(o.MissionTypes) == 0 && strings.TrimSpace(o.Conclusion) == ""
}

// Apply returns the missions matching o, in their original order. The
// result shares the records of list; nothing is copied.
func Apply(list []*missions.Mission, o Options) []*missions.Mission {
	out := make([]*missions.Mission, 0, len(list))
	for _, m := range list {
		if Matches(m, o) {
			out = append(out, m)
		}
	}
	return out
}

// Matches reports whether m satisfies every criterion of o.
func Matches(m *missions.Mission, o Options) bool {
	if len(o.OrderingParties) > 0 && !contains(o.OrderingParties, m.OrderingParty.DisplayName) {
		return false
	}
	if len(o.Owners) > 0 && !contains(o.Owners, m.Owner.DisplayName) {
		return false
	}
	if len(o.Operators) > 0 && !contains(o.Operators, m.Operator.Label()) {
		return false
	}
	if len(o.MissionTypes) > 0 && !containsAny(o.MissionTypes, m.Window.ActiveTypes) {
		return false
	}
	if text := strings.ToLower(strings.TrimSpace(o.Conclusion)); text != "" {
		if !strings.Contains(strings.ToLower(m.ConclusionRaw), text) {
			return false
		}
	}
	return true
}

// Choices lists the distinct values each selectable criterion can take.
type Choices struct {
	OrderingParties []string
	Owners          []string
	Operators       []string
	MissionTypes    []string
}

// CollectChoices gathers sorted distinct non-empty values from list.
func CollectChoices(list []*missions.Mission) Choices {
	return Choices{
		OrderingParties: collect(list, func(m *missions.Mission) []string { return []string{m.OrderingParty.DisplayName} }),
		Owners:          collect(list, func(m *missions.Mission) []string { return []string{m.Owner.DisplayName} }),
		Operators:       collect(list, func(m *missions.Mission) []string { return []string{m.Operator.Label()} }),
		MissionTypes:    collect(list, func(m *missions.Mission) []string { return m.Window.ActiveTypes }),
	}
}

// valuesFunc returns the values a mission contributes to one criterion.
type valuesFunc func(m *missions.Mission) []string

// collect returns unique sorted non-empty values.
func collect(list []*missions.Mission, values valuesFunc) []string {
	seen := make(map[string]struct{})
	for _, m := range list {
		for _, v := range values(m) {
			if v != "" {
				seen[v] = struct{}{}
			}
		}
	}

	results := make([]string, 0, len(seen))
	for v := range seen {
		results = append(results, v)
	}
	sort.Strings(results)
	return results
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsAny(set, values []string) bool {
	for _, v := range values {
		if contains(set, v) {
			return true
		}
	}
	return false
}
