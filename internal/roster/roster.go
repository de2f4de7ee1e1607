// Package roster resolves free-form person names from plan payloads against
// a project's team. The generator writes whatever display name it was given,
// so matching is deliberately forgiving about case and surrounding
// whitespace but never fuzzy: a wrong assignee is worse than none.
package roster

import (
	"strings"

	"github.com/mfigueredo/boardctl/internal/api"
)

// Roster is an immutable index of a project's team members by normalized
// display name. When two members share a normalized name, the first one in
// the team listing wins.
type Roster struct {
	members []api.Member
	byName  map[string]*api.Member
}

// New builds a Roster from the team listing returned by the board API.
func New(members []api.Member) *Roster {
	r := &Roster{
		members: members,
		byName:  make(map[string]*api.Member, len(members)),
	}
	for i := range members {
		key := normalize(members[i].Name)
		if key == "" {
			continue
		}
		if _, exists := r.byName[key]; !exists {
			r.byName[key] = &members[i]
		}
	}
	return r
}

// Match resolves a display name to a team member by case-insensitive,
// trimmed exact equality. The second return value reports whether a match
// was found; tasks with no match are created unassigned.
func (r *Roster) Match(name string) (*api.Member, bool) {
	member, ok := r.byName[normalize(name)]
	return member, ok
}

// Members returns the roster in team-listing order.
func (r *Roster) Members() []api.Member {
	return r.members
}

// Size returns the number of members in the roster.
func (r *Roster) Size() int {
	return len(r.members)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
