package missions

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeBits(t *testing.T) {
	tests := []struct {
		name string
		bits string
		want []string
	}{
		{name: "example", bits: "101", want: []string{"Amiante (DTA)", "Amiante (Travaux)"}},
		{name: "empty", bits: "", want: []string{}},
		{name: "all zero", bits: "0000", want: []string{}},
		{name: "stray characters are not set", bits: "1x 1?", want: []string{"Amiante (DTA)", "Diagnostic Termites"}},
		{name: "dpe only", bits: strings.Repeat("0", 13) + "1", want: []string{"DPE"}},
		{name: "last position", bits: strings.Repeat("0", 40) + "1", want: []string{"DPEG"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeBits(tt.bits)
			if got == nil {
				t.Fatalf("DecodeBits(%q) returned nil, want empty slice", tt.bits)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("DecodeBits(%q) mismatch (-want +got):\n%s", tt.bits, diff)
			}
		})
	}
}

func TestDecodeBits_IgnoresExcessLength(t *testing.T) {
	bits := strings.Repeat("1", len(TypeTable)+25)
	got := DecodeBits(bits)
	if len(got) != len(TypeTable) {
		t.Fatalf("expected %d labels, got %d", len(TypeTable), len(got))
	}
	if got[0] != TypeTable[0] || got[len(got)-1] != TypeTable[len(TypeTable)-1] {
		t.Fatalf("labels out of table order: %v", got)
	}
}

func TestDecodeBits_CountMatchesSetPositions(t *testing.T) {
	inputs := []string{"", "1", "0101010101", "110011100011110000111110000011111100000001111", "10-1 1"}
	for _, bits := range inputs {
		want := 0
		for i := 0; i < len(bits) && i < len(TypeTable); i++ {
			if bits[i] == '1' {
				want++
			}
		}
		if got := len(DecodeBits(bits)); got != want {
			t.Errorf("DecodeBits(%q): want %d labels, got %d", bits, want, got)
		}
	}
}

func TestTypeTable(t *testing.T) {
	if len(TypeTable) != 41 {
		t.Fatalf("expected 41 mission types, got %d", len(TypeTable))
	}
	if TypeIndex("DPE") != 13 {
		t.Fatalf("expected DPE at index 13, got %d", TypeIndex("DPE"))
	}
	if TypeIndex("unknown") != -1 {
		t.Fatalf("expected -1 for unknown label")
	}
}
