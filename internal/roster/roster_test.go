package roster

import (
	"testing"

	"github.com/mfigueredo/boardctl/internal/api"
)

func testRoster() *Roster {
	return New([]api.Member{
		{ID: "m-1", Name: "Jane Doe", Email: "jane@example.com"},
		{ID: "m-2", Name: "Luis Pérez", Email: "luis@example.com"},
		{ID: "m-3", Name: "sam smith", Email: "sam@example.com"},
	})
}

func TestMatch(t *testing.T) {
	r := testRoster()

	tests := []struct {
		name   string
		input  string
		wantID string
		found  bool
	}{
		{"exact", "Jane Doe", "m-1", true},
		{"lowercase variant", "jane doe", "m-1", true},
		{"uppercase variant", "JANE DOE", "m-1", true},
		{"surrounding whitespace", "  Jane Doe  ", "m-1", true},
		{"accented name", "luis pérez", "m-2", true},
		{"roster name already lowercase", "Sam Smith", "m-3", true},
		{"unknown name", "Nobody Here", "", false},
		{"empty name", "", "", false},
		{"partial name", "Jane", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member, ok := r.Match(tt.input)
			if ok != tt.found {
				t.Fatalf("Match(%q) found = %v, want %v", tt.input, ok, tt.found)
			}
			if ok && member.ID != tt.wantID {
				t.Errorf("Match(%q) = %s, want %s", tt.input, member.ID, tt.wantID)
			}
		})
	}
}

func TestDuplicateNamesFirstWins(t *testing.T) {
	r := New([]api.Member{
		{ID: "m-1", Name: "Jane Doe"},
		{ID: "m-2", Name: "jane doe"},
	})

	member, ok := r.Match("Jane Doe")
	if !ok || member.ID != "m-1" {
		t.Errorf("Match = %+v, want first member m-1", member)
	}
}

func TestSizeAndMembers(t *testing.T) {
	r := testRoster()
	if r.Size() != 3 {
		t.Errorf("Size = %d, want 3", r.Size())
	}
	if len(r.Members()) != 3 {
		t.Errorf("Members length = %d, want 3", len(r.Members()))
	}

	empty := New(nil)
	if empty.Size() != 0 {
		t.Errorf("empty Size = %d, want 0", empty.Size())
	}
	if _, ok := empty.Match("anyone"); ok {
		t.Error("empty roster should match nothing")
	}
}
