package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMultiplierSumsActiveBoosts(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	boosts := map[string]BoostRecord{
		"vip":   {ID: "vip", Magnitude: 0.5},
		"event": {ID: "event", Magnitude: 1.0},
		"promo": {ID: "promo", Magnitude: 0.25},
	}

	assert.InDelta(t, 1.0+0.5+1.0+0.25, Multiplier(boosts, 0, 0, 0, 0, now), 1e-9)
}

func TestMultiplierNoBoostsIsExactlyBaseline(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 1.0, Multiplier(nil, 0, 0, 0, 0, now))
	assert.Equal(t, 1.0, Multiplier(map[string]BoostRecord{}, 0, 0, 0.1, 0.25, now))
}

func TestMultiplierSkipsExpiredBoosts(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)
	boosts := map[string]BoostRecord{
		"stale": {ID: "stale", Magnitude: 2.0, ExpiresAt: &past},
		"live":  {ID: "live", Magnitude: 0.5, ExpiresAt: &future},
	}

	assert.InDelta(t, 1.5, Multiplier(boosts, 0, 0, 0, 0, now), 1e-9)
}

func TestMultiplierBoostExpiresExactlyAtDeadline(t *testing.T) {
	t.Parallel()

	deadline := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	boosts := map[string]BoostRecord{
		"timed": {ID: "timed", Magnitude: 1.0, ExpiresAt: &deadline},
	}

	assert.InDelta(t, 2.0, Multiplier(boosts, 0, 0, 0, 0, deadline.Add(-time.Second)), 1e-9)
	assert.Equal(t, 1.0, Multiplier(boosts, 0, 0, 0, 0, deadline))
	assert.Equal(t, 1.0, Multiplier(boosts, 0, 0, 0, 0, deadline.Add(time.Second)))
}

func TestMultiplierCombinesAllAdditiveTerms(t *testing.T) {
	t.Parallel()

	// 1.0 + 0.5 + (0.1 * 3 peers) + (0.25 * 2 rebirths) = 2.3
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	boosts := map[string]BoostRecord{
		"vip": {ID: "vip", Magnitude: 0.5},
	}

	assert.InDelta(t, 2.3, Multiplier(boosts, 3, 2, 0.1, 0.25, now), 1e-9)
}

func TestMultiplierNeverDropsBelowBaseline(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	boosts := map[string]BoostRecord{
		"bad": {ID: "bad", Magnitude: -3.0},
	}

	assert.Equal(t, 1.0, Multiplier(boosts, 0, 0, 0, 0, now))
}
