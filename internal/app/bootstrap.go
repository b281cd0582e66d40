// internal/app/bootstrap.go
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"sui-tower-defense/internal/chain"
	"sui-tower-defense/internal/config"
	"sui-tower-defense/internal/defs"
	"sui-tower-defense/internal/history"
	"sui-tower-defense/internal/logging"
)

const (
	feedBackoff = 5 * time.Second

	demoEntryFee   = 10_000_000 // 0.01 SUI
	demoPrizePool  = 50_000_000
	demoMaxWinners = 5
)

// LoadServices собирает окружение по настройкам: уровень, журнал, контракт.
// Вызывающий закрывает журнал через svc.History.Close.
func LoadServices(settings *config.Settings, log zerolog.Logger) (Services, error) {
	level := defs.DefaultLevel()
	if settings.LevelFile != "" {
		var err error
		level, err = defs.LoadLevel(settings.LevelFile)
		if err != nil {
			return Services{}, fmt.Errorf("failed to load level: %w", err)
		}
	}

	store, err := history.Open(settings.History.Path, logging.Component(log, "history"))
	if err != nil {
		return Services{}, fmt.Errorf("failed to open history: %w", err)
	}

	contract := chain.NewOfflineContract(settings.Seed, settings.Chain.Player, level.Roster, logging.Component(log, "contract"))
	log.Info().Str("level", level.Name).Str("history", settings.History.Path).Msg("services ready")

	return Services{
		Contract: contract,
		History:  store,
		Level:    level,
		Settings: settings,
		Logger:   log,
	}, nil
}

// CreateDemoChallenge выпускает монстра и открывает с ним испытание в оффлайн-контракте.
// ID испытания записывается в настройки, и режим испытания начинает играть против него.
func CreateDemoChallenge(ctx context.Context, svc Services) (string, error) {
	offline, ok := svc.Contract.(*chain.OfflineContract)
	if !ok {
		return "", fmt.Errorf("demo challenge needs the offline contract")
	}
	monster, err := offline.MintMonster(ctx, chain.SuiToMist(svc.Settings.Chain.MintCost))
	if err != nil {
		return "", fmt.Errorf("mint monster: %w", err)
	}
	ev, err := offline.CreateChallenge(ctx, monster.ID, demoEntryFee, demoPrizePool, demoMaxWinners)
	if err != nil {
		return "", fmt.Errorf("create challenge: %w", err)
	}
	svc.Settings.Chain.ChallengeID = ev.ChallengeID
	svc.Logger.Info().Str("challenge", ev.ChallengeID).Uint64("hp", uint64(monster.HP)).Msg("demo challenge created")
	return ev.ChallengeID, nil
}

// FollowFeed пишет результаты игр из ленты узла в журнал, пока ctx жив.
// Без feedUrl ничего не делает.
func FollowFeed(ctx context.Context, svc Services) {
	url := svc.Settings.Chain.FeedURL
	if url == "" || svc.History == nil {
		return
	}
	feed := chain.NewFeed(url, svc.Settings.Chain.PackageID, logging.Component(svc.Logger, "feed"))
	go svc.History.Follow(ctx, feed, svc.Settings.Chain.Player, feedBackoff)
}
