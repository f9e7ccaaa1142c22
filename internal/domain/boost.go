package domain

import (
	"fmt"
	"strings"
	"time"
)

// BoostRecord is a named additive contribution to a resource's earn-rate
// multiplier. Magnitude is a delta on the 1.0 baseline: 1.0 means "+100%",
// never "is 2x". A nil ExpiresAt marks the boost permanent.
type BoostRecord struct {
	ID         string
	Magnitude  float64
	ExpiresAt  *time.Time
	CreatedAt  time.Time
	LastUpdate time.Time
}

func (b BoostRecord) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("boost id is required")
	}
	if b.Magnitude < 0 {
		return ErrNegativeMagnitude
	}

	return nil
}

func (b BoostRecord) Permanent() bool {
	return b.ExpiresAt == nil
}

// ActiveAt reports whether the boost still contributes at the given instant.
// A boost expires exactly at its ExpiresAt: t >= ExpiresAt no longer counts.
func (b BoostRecord) ActiveAt(now time.Time) bool {
	if b.ExpiresAt == nil {
		return true
	}

	return now.Before(*b.ExpiresAt)
}

// Remaining returns the time left before expiry, zero when already expired,
// and zero for permanent boosts (callers check Permanent first).
func (b BoostRecord) Remaining(now time.Time) time.Duration {
	if b.ExpiresAt == nil {
		return 0
	}

	remaining := b.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}

	return remaining
}

// PruneExpired removes every expired boost across all resource kinds and
// returns the number of records dropped.
func (p *Profile) PruneExpired(now time.Time) int {
	pruned := 0
	for kind, boosts := range p.Boosts {
		for id, record := range boosts {
			if record.ActiveAt(now) {
				continue
			}
			delete(boosts, id)
			pruned++
		}
		if len(boosts) == 0 {
			delete(p.Boosts, kind)
		}
	}

	return pruned
}
