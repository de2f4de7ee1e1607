package plan

import (
	"fmt"

	"github.com/mfigueredo/boardctl/internal/apierr"
)

// Validate checks the payload's structure before it is offered for apply.
// It returns warnings for conditions the apply workflow tolerates (duplicate
// normalized titles, developer titles with no backlog counterpart) and an
// error for conditions it cannot work with.
//
// Duplicate titles are a warning rather than an error: matching picks the
// first created story with that normalized title, which is ambiguous but not
// fatal. Surfacing the list lets the user fix the plan before applying.
func Validate(p *Payload) (warnings []string, err error) {
	if len(p.Agents) < 2 {
		return nil, fmt.Errorf("%w: expected product-owner and developer sections, got %d section(s)",
			apierr.ErrPlanInvalid, len(p.Agents))
	}

	backlog, err := p.Backlog()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apierr.ErrPlanInvalid, err)
	}
	devPlan, err := p.DevPlan()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apierr.ErrPlanInvalid, err)
	}

	seen := make(map[string]bool, len(backlog))
	for i, item := range backlog {
		if NormalizeTitle(item.Title) == "" {
			return nil, fmt.Errorf("%w: backlog item %d has an empty title", apierr.ErrPlanInvalid, i)
		}
		if item.Points < 0 {
			return nil, fmt.Errorf("%w: backlog item %q has negative points", apierr.ErrPlanInvalid, item.Title)
		}

		key := NormalizeTitle(item.Title)
		if seen[key] {
			warnings = append(warnings, fmt.Sprintf("duplicate backlog title %q: sprint matching will use the first occurrence", item.Title))
		}
		seen[key] = true
	}

	for i, item := range devPlan {
		if NormalizeTitle(item.Title) == "" {
			return nil, fmt.Errorf("%w: developer item %d has an empty title", apierr.ErrPlanInvalid, i)
		}
		if item.Sprint.Index < 1 {
			return nil, fmt.Errorf("%w: developer item %q has sprint index %d, want >= 1",
				apierr.ErrPlanInvalid, item.Title, item.Sprint.Index)
		}

		if !seen[NormalizeTitle(item.Title)] {
			warnings = append(warnings, fmt.Sprintf("developer item %q matches no backlog title and will be skipped", item.Title))
		}
	}

	return warnings, nil
}
