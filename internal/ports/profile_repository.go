package ports

import (
	"context"

	"github.com/bnema/player-boosts-cli/internal/domain"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id domain.SubjectID) (domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error

	// MutateBoosts applies fn to the boost set for one resource kind and
	// persists the result. fn receives the current set (never nil) and
	// returns the replacement. Returns domain.ErrProfileNotFound when the
	// subject has no stored profile.
	MutateBoosts(ctx context.Context, id domain.SubjectID, kind domain.ResourceKind, fn func(map[string]domain.BoostRecord) map[string]domain.BoostRecord) error
}
