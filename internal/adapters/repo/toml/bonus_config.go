package toml

import (
	"fmt"

	"github.com/bnema/player-boosts-cli/internal/domain"
	"github.com/spf13/viper"
)

type perPeerBonusConfig struct {
	Resource string  `mapstructure:"resource"`
	PerPeer  float64 `mapstructure:"per_peer"`
}

type perRebirthBonusConfig struct {
	Resource   string  `mapstructure:"resource"`
	PerRebirth float64 `mapstructure:"per_rebirth"`
}

type bonusTableConfig struct {
	PerPeer    []perPeerBonusConfig    `mapstructure:"per_peer"`
	PerRebirth []perRebirthBonusConfig `mapstructure:"per_rebirth"`
}

// LoadBonusTable reads the configured peer and rebirth bonuses from the
// "bonuses" section of the config file. Missing sections yield an empty
// table, which disables the corresponding contributions.
func LoadBonusTable(cfg *viper.Viper) (domain.BonusTable, error) {
	if cfg == nil {
		return domain.BonusTable{}, nil
	}

	var raw bonusTableConfig
	if err := cfg.UnmarshalKey("bonuses", &raw); err != nil {
		return domain.BonusTable{}, fmt.Errorf("decode bonus config: %w", err)
	}

	table := domain.BonusTable{}
	for _, bonus := range raw.PerPeer {
		table.PerPeer = append(table.PerPeer, domain.PerPeerBonus{
			Resource: domain.ResourceKind(bonus.Resource),
			PerPeer:  bonus.PerPeer,
		})
	}
	for _, bonus := range raw.PerRebirth {
		table.PerRebirth = append(table.PerRebirth, domain.RebirthBonus{
			Resource:   domain.ResourceKind(bonus.Resource),
			PerRebirth: bonus.PerRebirth,
		})
	}

	if err := table.Validate(); err != nil {
		return domain.BonusTable{}, fmt.Errorf("validate bonus config: %w", err)
	}

	return table, nil
}
