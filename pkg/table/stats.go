package table

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/liciel-tools/missionscope/pkg/missions"
)

// TypeCount is the number of missions scheduling one mission type.
type TypeCount struct {
	MissionType string
	Family      string
	Missions    int
}

// Stats summarizes a mission list.
type Stats struct {
	Missions       int
	WithPhoto      int
	WithConclusion int
	Types          []TypeCount // ordered as the mission-type table
	Operators      map[string]int
}

// ComputeStats counts missions per active mission type and per operator.
func ComputeStats(list []*missions.Mission) Stats {
	s := Stats{Missions: len(list), Operators: make(map[string]int)}
	perType := make(map[string]int)
	for _, m := range list {
		if m.Photo != nil {
			s.WithPhoto++
		}
		if m.ConclusionRaw != "" {
			s.WithConclusion++
		}
		for _, t := range m.Window.ActiveTypes {
			perType[t]++
		}
		if label := m.Operator.Label(); label != "" {
			s.Operators[label]++
		}
	}
	for _, label := range missions.TypeTable {
		if n := perType[label]; n > 0 {
			s.Types = append(s.Types, TypeCount{MissionType: label, Family: Family(label), Missions: n})
		}
	}
	return s
}

// PrintStats writes the per-type table followed by the per-operator table.
func PrintStats(w io.Writer, s Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "MISSION TYPE\tFAMILY\tMISSIONS\t")
	for _, t := range s.Types {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", t.MissionType, t.Family, humanize.Comma(int64(t.Missions)))
	}
	fmt.Fprintln(tw, " \t \t \t")
	fmt.Fprintf(tw, "TOTAL\t\t%s\t\n", humanize.Comma(int64(s.Missions)))
	fmt.Fprintf(tw, "WITH PHOTO\t\t%s\t\n", humanize.Comma(int64(s.WithPhoto)))
	fmt.Fprintf(tw, "WITH CONCLUSION\t\t%s\t\n", humanize.Comma(int64(s.WithConclusion)))
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(s.Operators) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.Operators))
	for name := range s.Operators {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "OPERATOR\tMISSIONS\t")
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%s\t\n", name, humanize.Comma(int64(s.Operators[name])))
	}
	return tw.Flush()
}
