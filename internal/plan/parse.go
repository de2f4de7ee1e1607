package plan

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mfigueredo/boardctl/internal/apierr"
)

// Parse extracts a Payload from raw generator output. Generators wrap their
// JSON in markdown fences or surrounding prose often enough that strict
// unmarshaling is useless here: the parser strips fences, slices from the
// first '{' to the last '}', and unmarshals that.
func Parse(raw []byte) (*Payload, error) {
	text := strings.TrimSpace(string(raw))
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, apierr.ErrNoPlanJSON
	}
	text = text[start : end+1]

	var payload Payload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse plan JSON: %w", err)
	}

	return &payload, nil
}
