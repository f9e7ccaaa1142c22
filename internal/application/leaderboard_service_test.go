package application

import (
	"context"
	"testing"

	"github.com/bnema/player-boosts-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardServiceStandingsRanksByBalance(t *testing.T) {
	t.Parallel()

	repo := newProfileRepo(
		domain.Profile{ID: "a", Name: "Alice", Balances: map[domain.ResourceKind]float64{"Cash": 100}},
		domain.Profile{ID: "b", Name: "Bob", Balances: map[domain.ResourceKind]float64{"Cash": 300}},
		domain.Profile{ID: "c", Name: "Cara", Balances: map[domain.ResourceKind]float64{"Cash": 200}},
	)
	svc := NewLeaderboardService(repo)

	entries, err := svc.Standings(context.Background(), "Cash", 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, LeaderboardEntry{Rank: 1, Subject: "b", Name: "Bob", Balance: 300}, entries[0])
	assert.Equal(t, LeaderboardEntry{Rank: 2, Subject: "c", Name: "Cara", Balance: 200}, entries[1])
	assert.Equal(t, LeaderboardEntry{Rank: 3, Subject: "a", Name: "Alice", Balance: 100}, entries[2])
}

func TestLeaderboardServiceStandingsTiebreakBySubjectID(t *testing.T) {
	t.Parallel()

	repo := newProfileRepo(
		domain.Profile{ID: "z", Balances: map[domain.ResourceKind]float64{"Cash": 100}},
		domain.Profile{ID: "a", Balances: map[domain.ResourceKind]float64{"Cash": 100}},
	)
	svc := NewLeaderboardService(repo)

	entries, err := svc.Standings(context.Background(), "Cash", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.SubjectID("a"), entries[0].Subject)
	assert.Equal(t, domain.SubjectID("z"), entries[1].Subject)
}

func TestLeaderboardServiceStandingsTopLimitsEntries(t *testing.T) {
	t.Parallel()

	repo := newProfileRepo(
		domain.Profile{ID: "a", Balances: map[domain.ResourceKind]float64{"Cash": 1}},
		domain.Profile{ID: "b", Balances: map[domain.ResourceKind]float64{"Cash": 2}},
		domain.Profile{ID: "c", Balances: map[domain.ResourceKind]float64{"Cash": 3}},
	)
	svc := NewLeaderboardService(repo)

	entries, err := svc.Standings(context.Background(), "Cash", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.SubjectID("c"), entries[0].Subject)
}

func TestLeaderboardServiceStandingsMissingBalanceCountsAsZero(t *testing.T) {
	t.Parallel()

	repo := newProfileRepo(
		domain.Profile{ID: "rich", Balances: map[domain.ResourceKind]float64{"Cash": 10}},
		domain.Profile{ID: "new"},
	)
	svc := NewLeaderboardService(repo)

	entries, err := svc.Standings(context.Background(), "Cash", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.SubjectID("new"), entries[1].Subject)
	assert.Zero(t, entries[1].Balance)
}
