package application

import (
	"time"

	"github.com/bnema/player-boosts-cli/internal/domain"
)

type RegisterBoostCommand struct {
	Subject   domain.SubjectID
	Resource  domain.ResourceKind
	BoostID   string
	Magnitude float64
	// Duration of zero means the boost is permanent.
	Duration time.Duration
}

type RemoveBoostCommand struct {
	Subject  domain.SubjectID
	Resource domain.ResourceKind
	BoostID  string
}

type AwardCommand struct {
	Subject  domain.SubjectID
	Resource domain.ResourceKind
	Amount   float64
}
