package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bnema/player-boosts-cli/internal/domain"
	"github.com/bnema/player-boosts-cli/internal/ports"
)

var ErrNegativeDuration = errors.New("boost duration must not be negative")

type boostKey struct {
	subject  domain.SubjectID
	resource domain.ResourceKind
	id       string
}

// BoostService owns the boost lifecycle: registration, removal, scheduled
// expiry, and multiplier aggregation. All collaborators are passed at
// construction so the service runs against fakes in tests.
type BoostService struct {
	profiles  ports.ProfileRepository
	presence  ports.PresenceDirectory
	scheduler ports.Scheduler
	clock     ports.Clock
	bonuses   domain.BonusTable
	log       *slog.Logger

	mu      sync.Mutex
	cancels map[boostKey]func()
}

func NewBoostService(profiles ports.ProfileRepository, presence ports.PresenceDirectory, scheduler ports.Scheduler, clock ports.Clock, bonuses domain.BonusTable, log *slog.Logger) *BoostService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = slog.Default()
	}

	return &BoostService{
		profiles:  profiles,
		presence:  presence,
		scheduler: scheduler,
		clock:     clock,
		bonuses:   bonuses,
		log:       log,
		cancels:   map[boostKey]func(){},
	}
}

// RegisterBoost inserts or replaces the boost keyed by (subject, resource,
// id). Re-registering the same id replaces the record and cancels any
// previously scheduled expiry: replace, don't stack. Returns (false, nil)
// when the subject has no stored profile, a recoverable race with subject
// connection rather than an error.
func (s *BoostService) RegisterBoost(ctx context.Context, cmd RegisterBoostCommand) (bool, error) {
	if cmd.Duration < 0 {
		return false, ErrNegativeDuration
	}

	now := s.clock.Now()
	record := domain.BoostRecord{
		ID:         strings.TrimSpace(cmd.BoostID),
		Magnitude:  cmd.Magnitude,
		CreatedAt:  now,
		LastUpdate: now,
	}
	if cmd.Duration > 0 {
		expires := now.Add(cmd.Duration)
		record.ExpiresAt = &expires
	}
	if err := record.Validate(); err != nil {
		return false, err
	}

	err := s.profiles.MutateBoosts(ctx, cmd.Subject, cmd.Resource, func(boosts map[string]domain.BoostRecord) map[string]domain.BoostRecord {
		boosts[record.ID] = record
		return boosts
	})
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("store boost record: %w", err)
	}

	key := boostKey{subject: cmd.Subject, resource: cmd.Resource, id: record.ID}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, ok := s.cancels[key]; ok {
		cancel()
		delete(s.cancels, key)
	}
	if record.ExpiresAt != nil {
		expiresAt := *record.ExpiresAt
		s.cancels[key] = s.scheduler.After(cmd.Duration, func() {
			s.expireBoost(key, expiresAt)
		})
	}

	return true, nil
}

// RemoveBoost deletes the boost if present; removing a nonexistent boost or
// targeting a missing profile is a no-op.
func (s *BoostService) RemoveBoost(ctx context.Context, cmd RemoveBoostCommand) error {
	id := strings.TrimSpace(cmd.BoostID)

	err := s.profiles.MutateBoosts(ctx, cmd.Subject, cmd.Resource, func(boosts map[string]domain.BoostRecord) map[string]domain.BoostRecord {
		delete(boosts, id)
		return boosts
	})
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return fmt.Errorf("remove boost record: %w", err)
	}

	key := boostKey{subject: cmd.Subject, resource: cmd.Resource, id: id}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, ok := s.cancels[key]; ok {
		cancel()
		delete(s.cancels, key)
	}

	return nil
}

// ComputeMultiplier aggregates the earn-rate multiplier for one subject and
// resource kind. The call is total: collaborator failures contribute zero
// and are logged, never propagated. Expired records encountered along the
// way are evicted best effort, alongside the scheduled expiry.
func (s *BoostService) ComputeMultiplier(ctx context.Context, subject domain.SubjectID, kind domain.ResourceKind) float64 {
	now := s.clock.Now()

	var boosts map[string]domain.BoostRecord
	rebirths := 0

	profile, err := s.profiles.GetByID(ctx, subject)
	switch {
	case err == nil:
		boosts = profile.BoostsFor(kind)
		rebirths = profile.Rebirths
	case errors.Is(err, domain.ErrProfileNotFound):
		// no profile, no boost or rebirth contribution
	default:
		s.log.Warn("load profile for multiplier", "subject", subject, "error", err)
	}

	peers := 0
	perPeer, hasPeerBonus := s.bonuses.PerPeerFor(kind)
	if hasPeerBonus {
		count, err := s.presence.PeerCount(ctx, subject)
		if err != nil {
			s.log.Warn("count peers for multiplier", "subject", subject, "error", err)
		} else {
			peers = count
		}
	}

	perRebirth, hasRebirthBonus := s.bonuses.PerRebirthFor(kind)
	if !hasRebirthBonus {
		rebirths = 0
	}

	total := domain.Multiplier(boosts, peers, rebirths, perPeer, perRebirth, now)

	s.evictExpired(ctx, subject, kind, boosts, now)

	return total
}

// SweepExpired prunes expired boosts across every stored profile and
// returns the number of records removed.
func (s *BoostService) SweepExpired(ctx context.Context) (int, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list profiles: %w", err)
	}

	now := s.clock.Now()
	swept := 0
	for _, profile := range profiles {
		pruned := profile.PruneExpired(now)
		if pruned == 0 {
			continue
		}
		if err := s.profiles.Save(ctx, profile); err != nil {
			return swept, fmt.Errorf("save swept profile %s: %w", profile.ID, err)
		}
		swept += pruned
	}

	return swept, nil
}

func (s *BoostService) Status(ctx context.Context, subject domain.SubjectID) (BoostStatus, error) {
	profile, err := s.profiles.GetByID(ctx, subject)
	if err != nil {
		return BoostStatus{}, fmt.Errorf("get profile by id: %w", err)
	}

	return s.statusFromProfile(ctx, profile), nil
}

func (s *BoostService) StatusAll(ctx context.Context) ([]BoostStatus, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].ID < profiles[j].ID
	})

	statuses := make([]BoostStatus, 0, len(profiles))
	for _, profile := range profiles {
		statuses = append(statuses, s.statusFromProfile(ctx, profile))
	}

	return statuses, nil
}

func (s *BoostService) statusFromProfile(ctx context.Context, profile domain.Profile) BoostStatus {
	now := s.clock.Now()

	peers := 0
	count, err := s.presence.PeerCount(ctx, profile.ID)
	if err != nil {
		s.log.Warn("count peers for status", "subject", profile.ID, "error", err)
	} else {
		peers = count
	}

	kinds := make(map[domain.ResourceKind]struct{}, len(profile.Boosts)+len(profile.Balances))
	for kind := range profile.Boosts {
		kinds[kind] = struct{}{}
	}
	for kind := range profile.Balances {
		kinds[kind] = struct{}{}
	}

	resources := make([]ResourceStatus, 0, len(kinds))
	for kind := range kinds {
		perPeer, _ := s.bonuses.PerPeerFor(kind)
		perRebirth, hasRebirthBonus := s.bonuses.PerRebirthFor(kind)
		rebirths := profile.Rebirths
		if !hasRebirthBonus {
			rebirths = 0
		}

		boosts := make([]domain.BoostRecord, 0, len(profile.BoostsFor(kind)))
		for _, record := range profile.BoostsFor(kind) {
			if !record.ActiveAt(now) {
				continue
			}
			boosts = append(boosts, record)
		}
		sort.Slice(boosts, func(i, j int) bool {
			return boosts[i].ID < boosts[j].ID
		})

		resources = append(resources, ResourceStatus{
			Resource:   kind,
			Multiplier: domain.Multiplier(profile.BoostsFor(kind), peers, rebirths, perPeer, perRebirth, now),
			Boosts:     boosts,
		})
	}

	sort.Slice(resources, func(i, j int) bool {
		return resources[i].Resource < resources[j].Resource
	})

	return BoostStatus{Profile: profile, Peers: peers, Resources: resources}
}

// expireBoost is the scheduled expiry callback. It revalidates before
// removing: the record must still exist, carry the exact deadline this
// callback was scheduled for, and that deadline must have passed. A stale
// callback outliving a replacement fails the deadline check and drops out.
func (s *BoostService) expireBoost(key boostKey, expiresAt time.Time) {
	removed := false
	err := s.profiles.MutateBoosts(context.Background(), key.subject, key.resource, func(boosts map[string]domain.BoostRecord) map[string]domain.BoostRecord {
		record, ok := boosts[key.id]
		if !ok {
			return boosts
		}
		if record.ExpiresAt == nil || !record.ExpiresAt.Equal(expiresAt) {
			return boosts
		}
		if s.clock.Now().Before(*record.ExpiresAt) {
			return boosts
		}
		delete(boosts, key.id)
		removed = true
		return boosts
	})
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		s.log.Warn("expire boost", "subject", key.subject, "resource", key.resource, "boost", key.id, "error", err)
	}

	// A stale callback keeps its hands off the entry: the key may already
	// belong to a replacement's cancel func.
	if removed {
		s.mu.Lock()
		delete(s.cancels, key)
		s.mu.Unlock()
	}
}

func (s *BoostService) evictExpired(ctx context.Context, subject domain.SubjectID, kind domain.ResourceKind, boosts map[string]domain.BoostRecord, now time.Time) {
	expired := make([]string, 0, len(boosts))
	for id, record := range boosts {
		if !record.ActiveAt(now) {
			expired = append(expired, id)
		}
	}
	if len(expired) == 0 {
		return
	}

	err := s.profiles.MutateBoosts(ctx, subject, kind, func(current map[string]domain.BoostRecord) map[string]domain.BoostRecord {
		for _, id := range expired {
			record, ok := current[id]
			if !ok || record.ActiveAt(now) {
				continue
			}
			delete(current, id)
		}
		return current
	})
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		s.log.Warn("evict expired boosts", "subject", subject, "resource", kind, "error", err)
	}
}
