package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mfigueredo/boardctl/internal/apierr"
)

// Save writes the payload as indented JSON to filePath, creating parent
// directories as needed. Saved plans are what `plan apply` reads back, so
// the user can inspect or hand-edit the plan between generation and apply.
func Save(p *Payload, filePath string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	dir := filepath.Dir(filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}

	return nil
}

// Load reads a payload from filePath. The file goes through Parse, so a plan
// pasted from a chat transcript (with fences and prose) still loads.
func Load(filePath string) (*Payload, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", apierr.ErrPlanNotFound, filePath)
		}
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	return Parse(data)
}
