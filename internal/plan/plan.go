// Package plan defines the plan payload produced by the AI planning
// generator and the intake helpers around it: tolerant parsing of generator
// output, structural validation, and plan files on disk.
//
// A payload is an ordered list of agent sections. By convention the first
// section is the product-owner backlog and the second is the developer
// sprint plan; the payload carries no cross-referencing IDs between the two,
// so downstream matching is done on normalized titles (see NormalizeTitle).
package plan

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Well-known agent section names. Sections are resolved by position, not by
// name; the names are informational and surfaced in `plan show`.
const (
	AgentProductOwner = "product_owner"
	AgentDeveloper    = "developer"
)

// Payload is the generator's output: an ordered sequence of agent sections.
type Payload struct {
	Agents []Agent `json:"agents"`
}

// Agent is one named section of the plan. Output holds the section's items
// in the shape that section uses; it is decoded on demand by Backlog and
// DevPlan.
type Agent struct {
	Name   string          `json:"agent"`
	Output json.RawMessage `json:"output"`
}

// StoryItem is one product-owner backlog item.
type StoryItem struct {
	Title              string   `json:"title"`
	Persona            string   `json:"persona"`
	Objective          string   `json:"objective"`
	Benefit            string   `json:"benefit"`
	Points             int      `json:"points"`
	AcceptanceCriteria []string `json:"acceptanceCriteria"`
	Order              int      `json:"order"`
}

// DevItem is one developer-plan item: a story title, the sprint it lands in,
// and its task breakdown. Title is expected to match a product-owner item's
// title after normalization.
type DevItem struct {
	Title  string     `json:"title"`
	Sprint SprintSlot `json:"sprint"`
	Tasks  []SubTask  `json:"tasks"`
}

// SprintSlot places a DevItem in a numbered sprint.
type SprintSlot struct {
	Index     int    `json:"index"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// SubTask is one unit of work under a DevItem. Responsible is a free-form
// display name matched against the team roster on a best-effort basis.
type SubTask struct {
	Description string `json:"description"`
	Responsible string `json:"responsible"`
	Estimate    int    `json:"estimate"`
}

// Backlog decodes the product-owner section (the first agent section).
func (p *Payload) Backlog() ([]StoryItem, error) {
	if len(p.Agents) < 1 {
		return nil, fmt.Errorf("payload has no product-owner section")
	}
	var items []StoryItem
	if err := json.Unmarshal(p.Agents[0].Output, &items); err != nil {
		return nil, fmt.Errorf("failed to decode product-owner backlog: %w", err)
	}
	return items, nil
}

// DevPlan decodes the developer section (the second agent section).
func (p *Payload) DevPlan() ([]DevItem, error) {
	if len(p.Agents) < 2 {
		return nil, fmt.Errorf("payload has no developer section")
	}
	var items []DevItem
	if err := json.Unmarshal(p.Agents[1].Output, &items); err != nil {
		return nil, fmt.Errorf("failed to decode developer plan: %w", err)
	}
	return items, nil
}

// NormalizeTitle is the single matching function used to reconcile developer
// items with created stories: trim surrounding whitespace and lowercase.
// Keep matching behind this function so a future generator that emits
// correlation IDs can replace it in one place.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// SprintName derives the canonical sprint name for a sprint index.
func SprintName(index int) string {
	return fmt.Sprintf("Sprint %d", index)
}

// JoinCriteria flattens list-form acceptance criteria into the single
// newline-delimited string the board API stores.
func JoinCriteria(criteria []string) string {
	return strings.Join(criteria, "\n")
}
