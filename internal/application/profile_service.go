package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bnema/player-boosts-cli/internal/domain"
	"github.com/bnema/player-boosts-cli/internal/ports"
)

type ProfileService struct {
	profiles ports.ProfileRepository
}

func NewProfileService(profiles ports.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Create stores a fresh profile. An empty id auto-assigns the lowest free
// numeric id. Creating an id that already exists is an error; use SetName
// to rename.
func (s *ProfileService) Create(ctx context.Context, id domain.SubjectID, name string) (domain.Profile, error) {
	trimmed := domain.SubjectID(strings.TrimSpace(string(id)))
	if trimmed == "" {
		next, err := s.nextAvailableID(ctx)
		if err != nil {
			return domain.Profile{}, err
		}
		trimmed = next
	}

	_, err := s.profiles.GetByID(ctx, trimmed)
	if err == nil {
		return domain.Profile{}, fmt.Errorf("profile %s already exists", trimmed)
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return domain.Profile{}, fmt.Errorf("get profile by id: %w", err)
	}

	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("Subject %s", trimmed)
	}

	profile := domain.Profile{ID: trimmed, Name: name}
	profile.Normalize()
	if err := profile.Validate(); err != nil {
		return domain.Profile{}, err
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return domain.Profile{}, fmt.Errorf("save profile: %w", err)
	}

	return profile, nil
}

func (s *ProfileService) Get(ctx context.Context, id domain.SubjectID) (domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile by id: %w", err)
	}

	return profile, nil
}

func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].ID < profiles[j].ID
	})

	return profiles, nil
}

func (s *ProfileService) SetName(ctx context.Context, id domain.SubjectID, name string) error {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get profile by id: %w", err)
	}

	profile.Name = name

	if err := s.profiles.Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile name: %w", err)
	}

	return nil
}

// Rebirth advances the subject's rebirth milestone and returns the new
// count. The counter only ever moves forward.
func (s *ProfileService) Rebirth(ctx context.Context, id domain.SubjectID) (int, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("get profile by id: %w", err)
	}

	profile.Rebirths++

	if err := s.profiles.Save(ctx, profile); err != nil {
		return 0, fmt.Errorf("save profile rebirths: %w", err)
	}

	return profile.Rebirths, nil
}

func (s *ProfileService) nextAvailableID(ctx context.Context) (domain.SubjectID, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list profiles for auto assignment: %w", err)
	}

	used := make(map[int]struct{}, len(profiles))
	for _, profile := range profiles {
		n, err := strconv.Atoi(string(profile.ID))
		if err != nil || n <= 0 {
			continue
		}
		used[n] = struct{}{}
	}

	for i := 1; ; i++ {
		if _, ok := used[i]; !ok {
			return domain.SubjectID(strconv.Itoa(i)), nil
		}
	}
}
