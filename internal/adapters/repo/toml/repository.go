package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bnema/player-boosts-cli/internal/domain"
	"github.com/bnema/player-boosts-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName       = "config"
	configType       = "toml"
	profilesPathKey  = "profiles.path"
	profilesFileMode = 0o600
	profilesDirMode  = 0o700
	configDirName    = ".pb"
	profilesFileName = "profiles.toml"
	tempFilePattern  = ".pb-*.toml.tmp"
)

// Repository stores subject profiles in a single TOML file. Concurrent
// access from the same process is serialized through a per-path lock;
// writes go through a temp file and rename so readers never observe a
// partial file.
type Repository struct {
	profilesPath string
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ProfileRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, configDirName, profilesFileName)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDirName))
	cfg.SetDefault(profilesPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	profilesPath := cfg.GetString(profilesPathKey)
	if profilesPath == "" {
		return nil, errors.New("profiles path is empty")
	}
	profilesPath, err = normalizePath(profilesPath)
	if err != nil {
		return nil, err
	}

	return &Repository{profilesPath: profilesPath, mu: lockForPath(profilesPath)}, nil
}

func (r *Repository) Save(ctx context.Context, profile domain.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	encoded := toSchema(profile)
	updated := false
	for i := range file.Profiles {
		if file.Profiles[i].ID == encoded.ID {
			file.Profiles[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Profiles = append(file.Profiles, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return writeTOMLFile(r.profilesPath, file)
}

func (r *Repository) GetByID(ctx context.Context, id domain.SubjectID) (domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Profile{}, err
	}
	file.applyDefaults()

	for _, entry := range file.Profiles {
		if entry.ID == string(id) {
			return fromSchema(entry), nil
		}
	}

	return domain.Profile{}, domain.ErrProfileNotFound
}

func (r *Repository) List(ctx context.Context) ([]domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}
	file.applyDefaults()

	profiles := make([]domain.Profile, 0, len(file.Profiles))
	for _, entry := range file.Profiles {
		profiles = append(profiles, fromSchema(entry))
	}

	return profiles, nil
}

func (r *Repository) MutateBoosts(ctx context.Context, id domain.SubjectID, kind domain.ResourceKind, fn func(map[string]domain.BoostRecord) map[string]domain.BoostRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	index := -1
	for i := range file.Profiles {
		if file.Profiles[i].ID == string(id) {
			index = i
			break
		}
	}
	if index < 0 {
		return domain.ErrProfileNotFound
	}

	profile := fromSchema(file.Profiles[index])
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

	file.Profiles[index] = toSchema(profile)

	if err := ctx.Err(); err != nil {
		return err
	}

	return writeTOMLFile(r.profilesPath, file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	return readTOMLSchema(r.profilesPath)
}

func readTOMLSchema(path string) (fileSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read profiles file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode profiles file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func writeTOMLFile(path string, file any) error {
	if err := os.MkdirAll(filepath.Dir(path), profilesDirMode); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tempFile.Chmod(profilesFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(path, profilesFileMode); err != nil {
		return fmt.Errorf("chmod file: %w", err)
	}

	return nil
}

func toSchema(profile domain.Profile) profileSchema {
	balances := make(map[string]float64, len(profile.Balances))
	for kind, balance := range profile.Balances {
		balances[string(kind)] = balance
	}
	if len(balances) == 0 {
		balances = nil
	}

	boosts := make([]boostSchema, 0, len(profile.Boosts))
	for kind, records := range profile.Boosts {
		for _, record := range records {
			boosts = append(boosts, boostSchema{
				Resource:   string(kind),
				ID:         record.ID,
				Magnitude:  record.Magnitude,
				ExpiresAt:  formatOptionalTime(record.ExpiresAt),
				CreatedAt:  formatTime(record.CreatedAt),
				LastUpdate: formatTime(record.LastUpdate),
			})
		}
	}
	sort.Slice(boosts, func(i, j int) bool {
		if boosts[i].Resource == boosts[j].Resource {
			return boosts[i].ID < boosts[j].ID
		}
		return boosts[i].Resource < boosts[j].Resource
	})
	if len(boosts) == 0 {
		boosts = nil
	}

	return profileSchema{
		ID:       string(profile.ID),
		Name:     profile.Name,
		Rebirths: profile.Rebirths,
		Balances: balances,
		Boosts:   boosts,
	}
}

func fromSchema(entry profileSchema) domain.Profile {
	profile := domain.Profile{
		ID:       domain.SubjectID(entry.ID),
		Name:     entry.Name,
		Rebirths: entry.Rebirths,
	}
	profile.Normalize()

	for kind, balance := range entry.Balances {
		profile.Balances[domain.ResourceKind(kind)] = balance
	}

	for _, boost := range entry.Boosts {
		profile.SetBoost(domain.ResourceKind(boost.Resource), domain.BoostRecord{
			ID:         boost.ID,
			Magnitude:  boost.Magnitude,
			ExpiresAt:  parseOptionalTime(boost.ExpiresAt),
			CreatedAt:  parseTime(boost.CreatedAt),
			LastUpdate: parseTime(boost.LastUpdate),
		})
	}
	profile.Normalize()

	return profile
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}

func parseOptionalTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}

	parsed := parseTime(raw)
	if parsed.IsZero() {
		return nil
	}

	return &parsed
}

func formatOptionalTime(value *time.Time) string {
	if value == nil {
		return ""
	}

	return formatTime(*value)
}
