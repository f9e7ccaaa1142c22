package application

import (
	"context"
	"fmt"

	"github.com/bnema/player-boosts-cli/internal/domain"
	"github.com/bnema/player-boosts-cli/internal/ports"
)

// MultiplierSource yields the current earn-rate multiplier for a subject
// and resource kind. Satisfied by BoostService.
type MultiplierSource interface {
	ComputeMultiplier(ctx context.Context, subject domain.SubjectID, kind domain.ResourceKind) float64
}

type CurrencyService struct {
	profiles    ports.ProfileRepository
	multipliers MultiplierSource
	clock       ports.Clock
}

func NewCurrencyService(profiles ports.ProfileRepository, multipliers MultiplierSource, clock ports.Clock) *CurrencyService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &CurrencyService{profiles: profiles, multipliers: multipliers, clock: clock}
}

// Award credits base x multiplier to the subject's balance. Callers are
// expected to award once per transaction, not per frame; the multiplier is
// computed exactly once per award.
func (s *CurrencyService) Award(ctx context.Context, cmd AwardCommand) (Award, error) {
	if cmd.Amount < 0 {
		return Award{}, domain.ErrNegativeAmount
	}

	// Computing the multiplier first matters: it may evict expired boost
	// records, and the profile snapshot saved below must postdate that write.
	multiplier := s.multipliers.ComputeMultiplier(ctx, cmd.Subject, cmd.Resource)
	credited := cmd.Amount * multiplier

	profile, err := s.profiles.GetByID(ctx, cmd.Subject)
	if err != nil {
		return Award{}, fmt.Errorf("get profile by id: %w", err)
	}

	profile.Normalize()
	profile.Balances[cmd.Resource] += credited

	if err := s.profiles.Save(ctx, profile); err != nil {
		return Award{}, fmt.Errorf("save profile balance: %w", err)
	}

	return Award{
		Subject:    cmd.Subject,
		Resource:   cmd.Resource,
		Base:       cmd.Amount,
		Multiplier: multiplier,
		Credited:   credited,
		At:         s.clock.Now(),
	}, nil
}
