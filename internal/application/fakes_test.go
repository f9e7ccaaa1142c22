package application

import (
	"context"
	"time"

	"github.com/bnema/player-boosts-cli/internal/domain"
)

type inMemoryProfileRepo struct {
	profiles map[domain.SubjectID]domain.Profile
}

func newProfileRepo(profiles ...domain.Profile) *inMemoryProfileRepo {
	repo := &inMemoryProfileRepo{profiles: map[domain.SubjectID]domain.Profile{}}
	for _, profile := range profiles {
		repo.profiles[profile.ID] = profile
	}
	return repo
}

func (r *inMemoryProfileRepo) GetByID(_ context.Context, id domain.SubjectID) (domain.Profile, error) {
	profile, ok := r.profiles[id]
	if !ok {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (r *inMemoryProfileRepo) List(_ context.Context) ([]domain.Profile, error) {
	result := make([]domain.Profile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		result = append(result, profile)
	}
	return result, nil
}

func (r *inMemoryProfileRepo) Save(_ context.Context, profile domain.Profile) error {
	r.profiles[profile.ID] = profile
	return nil
}

func (r *inMemoryProfileRepo) MutateBoosts(_ context.Context, id domain.SubjectID, kind domain.ResourceKind, fn func(map[string]domain.BoostRecord) map[string]domain.BoostRecord) error {
	profile, ok := r.profiles[id]
	if !ok {
		return domain.ErrProfileNotFound
	}

	profile.Normalize()
	boosts := profile.Boosts[kind]
	if boosts == nil {
		boosts = map[string]domain.BoostRecord{}
	}

	result := fn(boosts)
	if len(result) == 0 {
		delete(profile.Boosts, kind)
	} else {
		profile.Boosts[kind] = result
	}

	r.profiles[id] = profile
	return nil
}

type staticPresence struct {
	peers int
	err   error
}

func (p *staticPresence) PeerCount(_ context.Context, _ domain.SubjectID) (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	return p.peers, nil
}

type scheduledTask struct {
	delay    time.Duration
	fn       func()
	canceled bool
}

type manualScheduler struct {
	tasks []*scheduledTask
}

func (s *manualScheduler) After(d time.Duration, fn func()) func() {
	task := &scheduledTask{delay: d, fn: fn}
	s.tasks = append(s.tasks, task)
	return func() { task.canceled = true }
}

// fire runs the i-th scheduled task unless it was canceled.
func (s *manualScheduler) fire(i int) {
	task := s.tasks[i]
	if task.canceled {
		return
	}
	task.fn()
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}
