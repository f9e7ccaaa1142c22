package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	statusadapter "github.com/bnema/player-boosts-cli/internal/adapters/render/status"
	tomlrepo "github.com/bnema/player-boosts-cli/internal/adapters/repo/toml"
	"github.com/bnema/player-boosts-cli/internal/adapters/sched/timer"
	"github.com/bnema/player-boosts-cli/internal/application"
	"github.com/bnema/player-boosts-cli/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	boosts         *application.BoostService
	currency       *application.CurrencyService
	profiles       *application.ProfileService
	presence       *application.PresenceService
	leaderboard    *application.LeaderboardService
	statusRenderer func([]application.BoostStatus, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
}

func wireApp() (*app, error) {
	cfg := viper.New()
	cfg.SetEnvPrefix("PB")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	repo, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire profile repository: %w", err)
	}

	clock := ports.SystemClock{}

	roster, err := tomlrepo.NewRosterRepository(cfg, clock)
	if err != nil {
		return nil, fmt.Errorf("wire roster repository: %w", err)
	}

	bonuses, err := tomlrepo.LoadBonusTable(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire bonus table: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	boosts := application.NewBoostService(repo, roster, timer.New(), clock, bonuses, logger)

	return &app{
		boosts:         boosts,
		currency:       application.NewCurrencyService(repo, boosts, clock),
		profiles:       application.NewProfileService(repo),
		presence:       application.NewPresenceService(roster),
		leaderboard:    application.NewLeaderboardService(repo),
		statusRenderer: statusadapter.Render,
		now:            time.Now,
	}, nil
}
