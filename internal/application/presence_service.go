package application

import (
	"context"
	"fmt"

	"github.com/bnema/player-boosts-cli/internal/domain"
	"github.com/bnema/player-boosts-cli/internal/ports"
)

// PresenceService is the inbound lifecycle surface the host environment
// drives: it records subjects attaching and detaching. The boost
// accumulator itself only ever reads peer counts.
type PresenceService struct {
	roster ports.RosterStore
}

func NewPresenceService(roster ports.RosterStore) *PresenceService {
	return &PresenceService{roster: roster}
}

func (s *PresenceService) OnSubjectAttached(ctx context.Context, subject domain.SubjectID) error {
	if err := s.roster.Attach(ctx, subject); err != nil {
		return fmt.Errorf("attach subject: %w", err)
	}

	return nil
}

func (s *PresenceService) OnSubjectDetached(ctx context.Context, subject domain.SubjectID) error {
	if err := s.roster.Detach(ctx, subject); err != nil {
		return fmt.Errorf("detach subject: %w", err)
	}

	return nil
}

func (s *PresenceService) Present(ctx context.Context) (domain.Roster, error) {
	roster, err := s.roster.Roster(ctx)
	if err != nil {
		return domain.Roster{}, fmt.Errorf("load roster: %w", err)
	}

	return roster, nil
}
