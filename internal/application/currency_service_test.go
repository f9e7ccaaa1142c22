package application

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/player-boosts-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticMultiplier struct {
	value float64
}

func (m staticMultiplier) ComputeMultiplier(_ context.Context, _ domain.SubjectID, _ domain.ResourceKind) float64 {
	return m.value
}

func TestCurrencyServiceAwardAppliesMultiplier(t *testing.T) {
	t.Parallel()

	repo := newProfileRepo(domain.Profile{ID: "p1"})
	clock := &fakeClock{now: testStart}
	svc := NewCurrencyService(repo, staticMultiplier{value: 2.3}, clock)

	award, err := svc.Award(context.Background(), AwardCommand{Subject: "p1", Resource: "Cash", Amount: 100})
	require.NoError(t, err)

	assert.Equal(t, 100.0, award.Base)
	assert.InDelta(t, 2.3, award.Multiplier, 1e-9)
	assert.InDelta(t, 230.0, award.Credited, 1e-9)
	assert.Equal(t, testStart, award.At)
	assert.InDelta(t, 230.0, repo.profiles["p1"].Balance("Cash"), 1e-9)
}

func TestCurrencyServiceAwardAccumulatesBalance(t *testing.T) {
	t.Parallel()

	repo := newProfileRepo(domain.Profile{ID: "p1", Balances: map[domain.ResourceKind]float64{"Cash": 50}})
	svc := NewCurrencyService(repo, staticMultiplier{value: 1.0}, &fakeClock{now: testStart})

	_, err := svc.Award(context.Background(), AwardCommand{Subject: "p1", Resource: "Cash", Amount: 25})
	require.NoError(t, err)

	assert.InDelta(t, 75.0, repo.profiles["p1"].Balance("Cash"), 1e-9)
}

func TestCurrencyServiceAwardRejectsNegativeAmount(t *testing.T) {
	t.Parallel()

	repo := newProfileRepo(domain.Profile{ID: "p1"})
	svc := NewCurrencyService(repo, staticMultiplier{value: 1.0}, &fakeClock{now: testStart})

	_, err := svc.Award(context.Background(), AwardCommand{Subject: "p1", Resource: "Cash", Amount: -1})
	require.ErrorIs(t, err, domain.ErrNegativeAmount)
	assert.Zero(t, repo.profiles["p1"].Balance("Cash"))
}

func TestCurrencyServiceAwardUnknownProfileFails(t *testing.T) {
	t.Parallel()

	svc := NewCurrencyService(newProfileRepo(), staticMultiplier{value: 1.0}, &fakeClock{now: testStart})

	_, err := svc.Award(context.Background(), AwardCommand{Subject: "ghost", Resource: "Cash", Amount: 10})
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
}

// evictingMultiplier deletes expired boost records through the repository
// while computing, the way the boost service's lazy eviction does.
type evictingMultiplier struct {
	repo *inMemoryProfileRepo
	now  time.Time
}

func (m evictingMultiplier) ComputeMultiplier(ctx context.Context, subject domain.SubjectID, kind domain.ResourceKind) float64 {
	_ = m.repo.MutateBoosts(ctx, subject, kind, func(boosts map[string]domain.BoostRecord) map[string]domain.BoostRecord {
		for id, record := range boosts {
			if !record.ActiveAt(m.now) {
				delete(boosts, id)
			}
		}
		return boosts
	})
	return 1.0
}

func TestCurrencyServiceAwardDoesNotResurrectEvictedBoosts(t *testing.T) {
	t.Parallel()

	past := testStart.Add(-time.Minute)
	profile := domain.Profile{ID: "p1"}
	profile.SetBoost("Cash", domain.BoostRecord{ID: "stale", Magnitude: 1.0, ExpiresAt: &past})

	repo := newProfileRepo(profile)
	svc := NewCurrencyService(repo, evictingMultiplier{repo: repo, now: testStart}, &fakeClock{now: testStart})

	_, err := svc.Award(context.Background(), AwardCommand{Subject: "p1", Resource: "Cash", Amount: 10})
	require.NoError(t, err)

	assert.InDelta(t, 10.0, repo.profiles["p1"].Balance("Cash"), 1e-9)
	assert.Empty(t, repo.profiles["p1"].BoostsFor("Cash"))
}

func TestCurrencyServiceAwardZeroAmountIsAllowed(t *testing.T) {
	t.Parallel()

	repo := newProfileRepo(domain.Profile{ID: "p1"})
	svc := NewCurrencyService(repo, staticMultiplier{value: 3.0}, &fakeClock{now: testStart.Add(time.Hour)})

	award, err := svc.Award(context.Background(), AwardCommand{Subject: "p1", Resource: "Cash"})
	require.NoError(t, err)
	assert.Zero(t, award.Credited)
}
