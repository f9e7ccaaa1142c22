package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Profiles []profileSchema `toml:"profiles"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported profiles schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type profileSchema struct {
	ID       string             `toml:"id"`
	Name     string             `toml:"name"`
	Rebirths int                `toml:"rebirths,omitempty"`
	Balances map[string]float64 `toml:"balances,omitempty"`
	Boosts   []boostSchema      `toml:"boosts,omitempty"`
}

type boostSchema struct {
	Resource   string  `toml:"resource"`
	ID         string  `toml:"id"`
	Magnitude  float64 `toml:"magnitude"`
	ExpiresAt  string  `toml:"expires_at,omitempty"`
	CreatedAt  string  `toml:"created_at,omitempty"`
	LastUpdate string  `toml:"last_update,omitempty"`
}
