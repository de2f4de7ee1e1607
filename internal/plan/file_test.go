package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mfigueredo/boardctl/internal/apierr"
)

func TestSaveAndLoad(t *testing.T) {
	p := testPayload(t,
		[]StoryItem{{Title: "Login", Points: 3}},
		[]DevItem{{Title: "Login", Sprint: SprintSlot{Index: 1}}},
	)

	path := filepath.Join(t.TempDir(), "nested", "plan.json")
	if err := Save(p, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Agents) != 2 {
		t.Fatalf("got %d sections, want 2", len(loaded.Agents))
	}

	backlog, err := loaded.Backlog()
	if err != nil {
		t.Fatalf("Backlog failed: %v", err)
	}
	if backlog[0].Title != "Login" {
		t.Errorf("Title = %q, want %q", backlog[0].Title, "Login")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if !apierr.Is(err, apierr.ErrPlanNotFound) {
		t.Errorf("error = %v, want ErrPlanNotFound", err)
	}
}

func TestLoadHandEditedPlan(t *testing.T) {
	// Plans pasted from chat transcripts still load.
	path := filepath.Join(t.TempDir(), "plan.json")
	content := "```json\n" + rawPlan + "\n```"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Agents) != 2 {
		t.Errorf("got %d sections, want 2", len(loaded.Agents))
	}
}
