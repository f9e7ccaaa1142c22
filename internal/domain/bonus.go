package domain

import (
	"fmt"
	"strings"
)

// PerPeerBonus adds PerPeer once for every concurrently present peer.
type PerPeerBonus struct {
	Resource ResourceKind
	PerPeer  float64
}

// RebirthBonus adds PerRebirth once for every completed rebirth milestone.
type RebirthBonus struct {
	Resource   ResourceKind
	PerRebirth float64
}

// BonusTable holds the configured scaling bonuses per resource kind. Values
// are per-unit deltas, not absolute multiplier factors: 0.1 per peer means
// two peers add +0.2 to the total.
type BonusTable struct {
	PerPeer    []PerPeerBonus
	PerRebirth []RebirthBonus
}

func (t BonusTable) Validate() error {
	for _, bonus := range t.PerPeer {
		if strings.TrimSpace(string(bonus.Resource)) == "" {
			return fmt.Errorf("per-peer bonus resource is required")
		}
		if bonus.PerPeer < 0 {
			return fmt.Errorf("per-peer bonus for %s must not be negative", bonus.Resource)
		}
	}
	for _, bonus := range t.PerRebirth {
		if strings.TrimSpace(string(bonus.Resource)) == "" {
			return fmt.Errorf("per-rebirth bonus resource is required")
		}
		if bonus.PerRebirth < 0 {
			return fmt.Errorf("per-rebirth bonus for %s must not be negative", bonus.Resource)
		}
	}

	return nil
}

func (t BonusTable) PerPeerFor(kind ResourceKind) (float64, bool) {
	for _, bonus := range t.PerPeer {
		if bonus.Resource == kind {
			return bonus.PerPeer, true
		}
	}
	return 0, false
}

func (t BonusTable) PerRebirthFor(kind ResourceKind) (float64, bool) {
	for _, bonus := range t.PerRebirth {
		if bonus.Resource == kind {
			return bonus.PerRebirth, true
		}
	}
	return 0, false
}
