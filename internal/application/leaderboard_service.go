package application

import (
	"context"
	"fmt"
	"sort"

	"github.com/bnema/player-boosts-cli/internal/domain"
	"github.com/bnema/player-boosts-cli/internal/ports"
)

type LeaderboardService struct {
	profiles ports.ProfileRepository
}

func NewLeaderboardService(profiles ports.ProfileRepository) *LeaderboardService {
	return &LeaderboardService{profiles: profiles}
}

// Standings ranks every stored profile by balance for one resource kind,
// highest first, subject id as the tiebreak. top <= 0 returns all entries.
func (s *LeaderboardService) Standings(ctx context.Context, kind domain.ResourceKind, top int) ([]LeaderboardEntry, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	sort.Slice(profiles, func(i, j int) bool {
		left := profiles[i].Balance(kind)
		right := profiles[j].Balance(kind)
		if left == right {
			return profiles[i].ID < profiles[j].ID
		}
		return left > right
	})

	if top > 0 && top < len(profiles) {
		profiles = profiles[:top]
	}

	entries := make([]LeaderboardEntry, 0, len(profiles))
	for i, profile := range profiles {
		entries = append(entries, LeaderboardEntry{
			Rank:    i + 1,
			Subject: profile.ID,
			Name:    profile.Name,
			Balance: profile.Balance(kind),
		})
	}

	return entries, nil
}
