package application

import (
	"time"

	"github.com/bnema/player-boosts-cli/internal/domain"
)

type BoostStatus struct {
	Profile   domain.Profile
	Peers     int
	Resources []ResourceStatus
}

type ResourceStatus struct {
	Resource   domain.ResourceKind
	Multiplier float64
	Boosts     []domain.BoostRecord
}

type Award struct {
	Subject    domain.SubjectID
	Resource   domain.ResourceKind
	Base       float64
	Multiplier float64
	Credited   float64
	At         time.Time
}

type LeaderboardEntry struct {
	Rank    int
	Subject domain.SubjectID
	Name    string
	Balance float64
}
