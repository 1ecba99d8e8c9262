package scan

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"testing/fstest"
)

func bienXML(id, bits string) string {
	return `<?xml version="1.0" encoding="UTF-8"?><DATAPACKET><ROW>` +
		`<LiColonne_Mission_Num_Dossier>` + id + `</LiColonne_Mission_Num_Dossier>` +
		`<LiColonne_DOrdre_Nom>Agence ` + id + `</LiColonne_DOrdre_Nom>` +
		`<LiColonne_Mission_Missions_programmees>` + bits + `</LiColonne_Mission_Missions_programmees>` +
		`</ROW></DATAPACKET>`
}

func testRoot() fstest.MapFS {
	return fstest.MapFS{
		"24-001/XML/Table_General_Bien.xml":  {Data: []byte(bienXML("24-001", "1"))},
		"24-002/XML/Table_General_Bien.xml":  {Data: []byte(bienXML("24-002", "00000000000001"))},
		"24-002/XML/Table_General_Photo.xml": {Data: []byte(`<Photos><ROW><TypePhoto>Présentation</TypePhoto><Fichier>p.jpg</Fichier></ROW></Photos>`)},
		"24-002/p.jpg":                       {Data: []byte("jpeg")},
		"24-003/notes.txt":                   {Data: []byte("no export yet")},
		"OTHER/XML/Table_General_Bien.xml":   {Data: []byte(bienXML("OTHER", "1"))},
		"readme.txt":                         {Data: []byte("not a mission")},
	}
}

func folderIDs(r *Result) []string {
	ids := []string{}
	for _, m := range r.Missions {
		ids = append(ids, m.FolderID)
	}
	return ids
}

func TestParseTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "A, B;C\n\tD ,,", want: []string{"A", "B", "C", "D"}},
		{in: "  24-001  ", want: []string{"24-001"}},
		{in: "", want: []string{}},
		{in: " ;, ", want: []string{}},
	}
	for _, tt := range tests {
		if got := ParseTokens(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseTokens(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(" Prefix "); err != nil || m != ModePrefix {
		t.Fatalf("got %q, %v", m, err)
	}
	if _, err := ParseMode("glob"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   error
	}{
		{name: "all", params: Params{Mode: ModeAll}},
		{name: "prefix", params: Params{Mode: ModePrefix, Prefix: "24-"}},
		{name: "blank prefix", params: Params{Mode: ModePrefix, Prefix: "  "}, want: ErrEmptyPrefix},
		{name: "list", params: Params{Mode: ModeList, Tokens: []string{"", "A"}}},
		{name: "empty list", params: Params{Mode: ModeList, Tokens: []string{" "}}, want: ErrEmptyList},
		{name: "unknown", params: Params{Mode: "glob"}, want: ErrUnknownMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestScan_All(t *testing.T) {
	var events []Progress
	res, err := Scan(context.Background(), Config{
		Root:       testRoot(),
		Params:     Params{Mode: ModeAll},
		OnProgress: func(p Progress) { events = append(events, p) },
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if res.Candidates != 4 || res.Skipped != 1 || res.Cancelled {
		t.Fatalf("unexpected counters: %+v", res)
	}
	if got, want := folderIDs(res), []string{"24-001", "24-002", "OTHER"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("missions: want %v, got %v", want, got)
	}

	want := []Progress{
		{Done: 1, Total: 4, Folder: "24-001"},
		{Done: 2, Total: 4, Folder: "24-002"},
		{Done: 3, Total: 4, Folder: "24-003", Skipped: true},
		{Done: 4, Total: 4, Folder: "OTHER"},
	}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("progress: want %+v, got %+v", want, events)
	}

	// Without a registry the photo keeps its path but gets no locator.
	photo := res.Missions[1].Photo
	if photo == nil || photo.RelativePath != "p.jpg" || photo.ResolvedLocator != "" {
		t.Fatalf("unexpected photo reference %+v", photo)
	}
	if got := res.Missions[1].Window.ActiveTypes; !reflect.DeepEqual(got, []string{"DPE"}) {
		t.Fatalf("active types: %v", got)
	}
}

func TestScan_Selection(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   []string
	}{
		{name: "prefix", params: Params{Mode: ModePrefix, Prefix: "24-00"}, want: []string{"24-001", "24-002"}},
		{name: "list", params: Params{Mode: ModeList, Tokens: []string{"OTHER", "unknown", "24-001"}}, want: []string{"24-001", "OTHER"}},
		{name: "list tokens are prefixes", params: Params{Mode: ModeList, Tokens: []string{"24-00"}}, want: []string{"24-001", "24-002"}},
		{name: "blank list tokens are ignored", params: Params{Mode: ModeList, Tokens: []string{"", " ", "OTH"}}, want: []string{"OTHER"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Scan(context.Background(), Config{Root: testRoot(), Params: tt.params})
			if err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if got := folderIDs(res); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParamsMatches(t *testing.T) {
	list := Params{Mode: ModeList, Tokens: []string{" 24-00 ", ""}}
	tests := []struct {
		name string
		want bool
	}{
		{name: "24-001", want: true},
		{name: "24-0099", want: true},
		{name: "24-1", want: false},
		{name: "OTHER", want: false},
	}
	for _, tt := range tests {
		if got := list.Matches(tt.name); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if (Params{Mode: ModeList, Tokens: []string{"24-00"}}).Matches("x24-001") {
		t.Errorf("list tokens must anchor at the start of the name")
	}
}

func TestScan_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   error
	}{
		{name: "prefix is case-sensitive", params: Params{Mode: ModePrefix, Prefix: "other"}, want: ErrNoCandidates},
		{name: "files are not candidates", params: Params{Mode: ModeList, Tokens: []string{"readme.txt"}}, want: ErrNoCandidates},
		{name: "empty prefix", params: Params{Mode: ModePrefix}, want: ErrEmptyPrefix},
		{name: "empty list", params: Params{Mode: ModeList}, want: ErrEmptyList},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scan(context.Background(), Config{Root: testRoot(), Params: tt.params})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestScan_Confirmation(t *testing.T) {
	var asked []int
	var events int
	res, err := Scan(context.Background(), Config{
		Root:             testRoot(),
		Params:           Params{Mode: ModeAll},
		ConfirmThreshold: 3,
		Confirm:          func(total int) bool { asked = append(asked, total); return false },
		OnProgress:       func(Progress) { events++ },
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !res.Cancelled || len(res.Missions) != 0 || res.Candidates != 4 {
		t.Fatalf("expected a cancelled result, got %+v", res)
	}
	if !reflect.DeepEqual(asked, []int{4}) || events != 0 {
		t.Fatalf("asked %v, %d progress events", asked, events)
	}

	// At the threshold no confirmation is requested.
	asked = nil
	res, err = Scan(context.Background(), Config{
		Root:             testRoot(),
		Params:           Params{Mode: ModeAll},
		ConfirmThreshold: 4,
		Confirm:          func(total int) bool { asked = append(asked, total); return false },
	})
	if err != nil || res.Cancelled || len(asked) != 0 {
		t.Fatalf("unexpected outcome: %+v, %v, asked %v", res, err, asked)
	}
}

func TestScan_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Scan(ctx, Config{Root: testRoot(), Params: Params{Mode: ModeAll}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
