package domain

import (
	"strings"
	"time"
)

// Roster is the set of subjects currently attached to the host session.
// Peer bonuses count the other present subjects, never the subject itself.
type Roster struct {
	Present   []SubjectID
	UpdatedAt time.Time
}

func (r *Roster) Normalize() {
	if r == nil {
		return
	}

	present := make([]SubjectID, 0, len(r.Present))
	seen := make(map[SubjectID]struct{}, len(r.Present))
	for _, subject := range r.Present {
		trimmed := SubjectID(strings.TrimSpace(string(subject)))
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		present = append(present, trimmed)
	}

	r.Present = present
}

func (r Roster) Contains(subject SubjectID) bool {
	for _, present := range r.Present {
		if present == subject {
			return true
		}
	}
	return false
}

func (r Roster) PeersOf(subject SubjectID) int {
	peers := 0
	for _, present := range r.Present {
		if present != subject {
			peers++
		}
	}
	return peers
}
