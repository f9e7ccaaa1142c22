package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/player-boosts-cli/internal/domain"
	"github.com/bnema/player-boosts-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	rosterPathKey  = "roster.path"
	rosterFileName = "roster.toml"
)

type rosterFileSchema struct {
	Version   int      `toml:"version"`
	Present   []string `toml:"present,omitempty"`
	UpdatedAt string   `toml:"updated_at,omitempty"`
}

func (f *rosterFileSchema) applyDefaults() {
	if f.Version == 0 {
		f.Version = currentSchemaVersion
	}
}

func (f rosterFileSchema) validateVersion() error {
	if f.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported roster schema version %d", f.Version)
	}
	return nil
}

// RosterRepository persists the set of currently attached subjects in a
// TOML file next to the profiles file. It serves both sides of presence:
// lifecycle writes and peer-count reads.
type RosterRepository struct {
	rosterPath string
	clock      ports.Clock
	mu         *sync.RWMutex
}

var (
	_ ports.RosterStore       = (*RosterRepository)(nil)
	_ ports.PresenceDirectory = (*RosterRepository)(nil)
)

func NewRosterRepository(cfg *viper.Viper, clock ports.Clock) (*RosterRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, configDirName, rosterFileName)
	cfg.SetDefault(rosterPathKey, defaultPath)

	rosterPath := cfg.GetString(rosterPathKey)
	if rosterPath == "" {
		return nil, errors.New("roster path is empty")
	}
	rosterPath, err = normalizePath(rosterPath)
	if err != nil {
		return nil, err
	}

	return &RosterRepository{rosterPath: rosterPath, clock: clock, mu: lockForPath(rosterPath)}, nil
}

func (r *RosterRepository) Attach(ctx context.Context, id domain.SubjectID) error {
	return r.mutate(ctx, func(roster *domain.Roster) {
		if roster.Contains(id) {
			return
		}
		roster.Present = append(roster.Present, id)
	})
}

func (r *RosterRepository) Detach(ctx context.Context, id domain.SubjectID) error {
	return r.mutate(ctx, func(roster *domain.Roster) {
		present := roster.Present[:0]
		for _, subject := range roster.Present {
			if subject != id {
				present = append(present, subject)
			}
		}
		roster.Present = present
	})
}

func (r *RosterRepository) Roster(ctx context.Context) (domain.Roster, error) {
	if err := ctx.Err(); err != nil {
		return domain.Roster{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.readRoster()
}

func (r *RosterRepository) PeerCount(ctx context.Context, id domain.SubjectID) (int, error) {
	roster, err := r.Roster(ctx)
	if err != nil {
		return 0, err
	}

	return roster.PeersOf(id), nil
}

func (r *RosterRepository) mutate(ctx context.Context, fn func(*domain.Roster)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	roster, err := r.readRoster()
	if err != nil {
		return err
	}

	fn(&roster)
	roster.Normalize()
	roster.UpdatedAt = r.clock.Now()

	file := rosterFileSchema{
		Version:   currentSchemaVersion,
		UpdatedAt: formatTime(roster.UpdatedAt),
	}
	for _, subject := range roster.Present {
		file.Present = append(file.Present, string(subject))
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return writeTOMLFile(r.rosterPath, file)
}

func (r *RosterRepository) readRoster() (domain.Roster, error) {
	data, err := os.ReadFile(r.rosterPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Roster{}, nil
		}
		return domain.Roster{}, fmt.Errorf("read roster file: %w", err)
	}

	var file rosterFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.Roster{}, fmt.Errorf("decode roster file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return domain.Roster{}, err
	}
	file.applyDefaults()

	roster := domain.Roster{UpdatedAt: parseTime(file.UpdatedAt)}
	for _, subject := range file.Present {
		roster.Present = append(roster.Present, domain.SubjectID(subject))
	}
	roster.Normalize()

	return roster, nil
}
