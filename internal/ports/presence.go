package ports

import (
	"context"

	"github.com/bnema/player-boosts-cli/internal/domain"
)

// PresenceDirectory reports how many peer subjects are concurrently present
// alongside a subject. The boost accumulator only reads from it.
type PresenceDirectory interface {
	PeerCount(ctx context.Context, id domain.SubjectID) (int, error)
}

// RosterStore is the write side of presence, driven by the host lifecycle
// (subject attached / detached).
type RosterStore interface {
	Attach(ctx context.Context, id domain.SubjectID) error
	Detach(ctx context.Context, id domain.SubjectID) error
	Roster(ctx context.Context) (domain.Roster, error)
}
