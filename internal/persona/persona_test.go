package persona

import (
	"sort"
	"testing"

	"github.com/fjordlane/counterpoint/internal/errors"
)

func TestGetKnownPersona(t *testing.T) {
	p, err := Get("goodie")
	if err != nil {
		t.Fatalf("Get(goodie) error = %v", err)
	}
	if p.Key != "goodie" {
		t.Errorf("Key = %q, want %q", p.Key, "goodie")
	}
	if p.DisplayName == "" || p.Description == "" || p.Instruction == "" {
		t.Error("persona fields should all be populated")
	}
}

func TestGetUnknownPersona(t *testing.T) {
	_, err := Get("nemesis")
	if !errors.Is(err, errors.ErrUnknownPersona) {
		t.Errorf("Get(nemesis) error = %v, want ErrUnknownPersona", err)
	}
}

func TestAllIsSortedAndComplete(t *testing.T) {
	all := All()
	if len(all) != 4 {
		t.Fatalf("All() length = %d, want 4", len(all))
	}
	if !sort.SliceIsSorted(all, func(i, j int) bool { return all[i].Key < all[j].Key }) {
		t.Error("All() should be sorted by key")
	}
	for _, p := range all {
		if !Valid(p.Key) {
			t.Errorf("Valid(%q) = false for listed persona", p.Key)
		}
	}
}

func TestValid(t *testing.T) {
	if !Valid("hardliner") {
		t.Error("Valid(hardliner) = false, want true")
	}
	if Valid("") {
		t.Error("Valid(\"\") = true, want false")
	}
}
