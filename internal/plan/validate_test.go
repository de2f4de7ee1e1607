package plan

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mfigueredo/boardctl/internal/apierr"
)

func TestValidateOK(t *testing.T) {
	p := testPayload(t,
		[]StoryItem{
			{Title: "Login", Points: 3, Order: 1},
			{Title: "Catalog", Points: 5, Order: 2},
		},
		[]DevItem{
			{Title: "login", Sprint: SprintSlot{Index: 1, StartDate: "2026-09-01", EndDate: "2026-09-14"}},
		},
	)

	warnings, err := Validate(p)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		backlog []StoryItem
		devPlan []DevItem
	}{
		{
			name:    "empty backlog title",
			backlog: []StoryItem{{Title: "   "}},
			devPlan: []DevItem{},
		},
		{
			name:    "negative points",
			backlog: []StoryItem{{Title: "Login", Points: -1}},
			devPlan: []DevItem{},
		},
		{
			name:    "empty developer title",
			backlog: []StoryItem{{Title: "Login"}},
			devPlan: []DevItem{{Title: "", Sprint: SprintSlot{Index: 1}}},
		},
		{
			name:    "zero sprint index",
			backlog: []StoryItem{{Title: "Login"}},
			devPlan: []DevItem{{Title: "Login", Sprint: SprintSlot{Index: 0}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testPayload(t, tt.backlog, tt.devPlan)
			if _, err := Validate(p); !apierr.Is(err, apierr.ErrPlanInvalid) {
				t.Errorf("error = %v, want ErrPlanInvalid", err)
			}
		})
	}
}

func TestValidateMissingSections(t *testing.T) {
	p := &Payload{Agents: []Agent{{Name: AgentProductOwner, Output: json.RawMessage("[]")}}}
	if _, err := Validate(p); !apierr.Is(err, apierr.ErrPlanInvalid) {
		t.Errorf("error = %v, want ErrPlanInvalid", err)
	}
}

func TestValidateDuplicateTitleWarning(t *testing.T) {
	p := testPayload(t,
		[]StoryItem{
			{Title: "Login"},
			{Title: " login "},
		},
		[]DevItem{},
	)

	warnings, err := Validate(p)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "duplicate") {
		t.Errorf("warnings = %v, want one duplicate warning", warnings)
	}
}

func TestValidateUnmatchedDevTitleWarning(t *testing.T) {
	p := testPayload(t,
		[]StoryItem{{Title: "Login"}},
		[]DevItem{{Title: "Checkout", Sprint: SprintSlot{Index: 1}}},
	)

	warnings, err := Validate(p)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "skipped") {
		t.Errorf("warnings = %v, want one skip warning", warnings)
	}
}
