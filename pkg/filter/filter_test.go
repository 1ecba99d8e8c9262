package filter

import (
	"reflect"
	"testing"

	"github.com/liciel-tools/missionscope/pkg/missions"
)

func mkMission(id, ordering, owner, family string, types []string, conclusion string) *missions.Mission {
	return &missions.Mission{
		FolderID:      id,
		OrderingParty: missions.Party{DisplayName: ordering},
		Owner:         missions.Party{DisplayName: owner},
		Operator:      missions.Operator{FamilyName: family, CertifyingBody: "LCC"},
		Window:        missions.Window{ActiveTypes: types},
		ConclusionRaw: conclusion,
	}
}

func testList() []*missions.Mission {
	return []*missions.Mission{
		mkMission("A", "Cabinet Immo Sud", "M. Lefèvre", "Martin", []string{"DPE", "Gaz"}, "DPE : classe C"),
		mkMission("B", "Agence Nord", "Mme Petit", "Durand", []string{"Amiante (DTA)"}, "Amiante (DTA) : PRÉSENCE"),
		mkMission("C", "Cabinet Immo Sud", "", "Martin", []string{"CREP"}, ""),
	}
}

func ids(list []*missions.Mission) []string {
	out := []string{}
	for _, m := range list {
		out = append(out, m.FolderID)
	}
	return out
}

func TestApply(t *testing.T) {
	list := testList()

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{name: "no criteria", opts: Options{}, want: []string{"A", "B", "C"}},
		{name: "ordering party", opts: Options{OrderingParties: []string{"Cabinet Immo Sud"}}, want: []string{"A", "C"}},
		{name: "owner", opts: Options{Owners: []string{"Mme Petit"}}, want: []string{"B"}},
		{name: "operator label", opts: Options{Operators: []string{"Martin (LCC)"}}, want: []string{"A", "C"}},
		{name: "any mission type", opts: Options{MissionTypes: []string{"Gaz", "CREP"}}, want: []string{"A", "C"}},
		{name: "conclusion is case-insensitive", opts: Options{Conclusion: "  présence "}, want: []string{"B"}},
		{name: "criteria combine", opts: Options{OrderingParties: []string{"Cabinet Immo Sud"}, MissionTypes: []string{"DPE"}}, want: []string{"A"}},
		{name: "nothing matches", opts: Options{Owners: []string{"Nobody"}}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(list, tt.opts))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestApply_SharesRecords(t *testing.T) {
	list := testList()
	got := Apply(list, Options{MissionTypes: []string{"CREP"}})
	if len(got) != 1 || got[0] != list[2] {
		t.Fatalf("expected the same record pointer, got %#v", got)
	}
}

func TestCollectChoices(t *testing.T) {
	got := CollectChoices(testList())
	want := Choices{
		OrderingParties: []string{"Agence Nord", "Cabinet Immo Sud"},
		Owners:          []string{"M. Lefèvre", "Mme Petit"},
		Operators:       []string{"Durand (LCC)", "Martin (LCC)"},
		MissionTypes:    []string{"Amiante (DTA)", "CREP", "DPE", "Gaz"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected choices.\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestOptionsIsZero(t *testing.T) {
	if !(Options{Conclusion: "  "}).IsZero() {
		t.Fatalf("blank conclusion should not count as a criterion")
	}
	if (Options{Owners: []string{"x"}}).IsZero() {
		t.Fatalf("owner criterion should count")
	}
}
