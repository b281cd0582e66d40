// internal/app/session.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"sui-tower-defense/internal/chain"
	"sui-tower-defense/internal/config"
	"sui-tower-defense/internal/defs"
	"sui-tower-defense/internal/history"
	"sui-tower-defense/internal/logging"
)

const submitTimeout = 30 * time.Second

// ErrNoTowers - у игрока нет ни одной башни, играть нечем.
var ErrNoTowers = errors.New("no towers owned, mint one first")

// Services - окружение сессий: контракт, журнал, уровень и настройки.
// History может быть nil.
type Services struct {
	Contract chain.Contract
	History  *history.Store
	Level    *defs.LevelDefinition
	Settings *config.Settings
	Logger   zerolog.Logger
}

// MintTower покупает башню по цене из настроек.
func (s Services) MintTower(ctx context.Context) (chain.TowerNFT, error) {
	t, err := s.Contract.MintTower(ctx, chain.SuiToMist(s.Settings.Chain.MintCost))
	if err != nil {
		return chain.TowerNFT{}, fmt.Errorf("mint tower: %w", err)
	}
	return t, nil
}

// ClaimFaucet запрашивает тестовые монеты.
func (s Services) ClaimFaucet(ctx context.Context) (uint64, error) {
	amount, err := s.Contract.ClaimFaucet(ctx)
	if err != nil {
		return 0, fmt.Errorf("claim faucet: %w", err)
	}
	return amount, nil
}

// Session - одна игра вместе с отправкой её итога.
type Session struct {
	Game       *Game
	svc        Services
	submitter  *chain.Submitter
	submission chain.Submission
	onChain    bool // есть ли куда отправлять итог
	outcome    *Outcome
	log        zerolog.Logger
}

// NewSession собирает ростер из башен игрока и, для испытания, параметры монстра из контракта.
func NewSession(ctx context.Context, svc Services, mode string) (*Session, error) {
	towers, err := svc.Contract.OwnedTowers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load towers: %w", err)
	}
	if len(towers) == 0 {
		return nil, ErrNoTowers
	}
	roster := make([]defs.TowerSource, len(towers))
	for i, t := range towers {
		roster[i] = t.Source()
	}

	opts := Options{
		Level:  svc.Level,
		Mode:   mode,
		Policy: svc.Settings.TargetPolicy,
		Roster: roster,
		Logger: svc.Logger,
	}
	var sub chain.Submission
	onChain := false
	switch mode {
	case config.ModeChallenge:
		if id := svc.Settings.Chain.ChallengeID; id != "" {
			ch, err := svc.Contract.Challenge(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("failed to load challenge: %w", err)
			}
			if !ch.Open() {
				return nil, chain.ErrChallengeFull
			}
			params := ch.Params()
			opts.Challenge = &params
			sub.ChallengeID = ch.ID
			sub.Payment = uint64(ch.EntryFee)
			onChain = true
		}
	case config.ModeCampaign:
		sub.Payment = chain.SuiToMist(svc.Settings.Chain.GameCost)
		onChain = true
	}

	g, err := NewGame(opts)
	if err != nil {
		return nil, err
	}
	log := logging.Component(svc.Logger, "session")
	return &Session{
		Game:       g,
		svc:        svc,
		submitter:  chain.NewSubmitter(svc.Contract, submitTimeout, log),
		submission: sub,
		onChain:    onChain,
		log:        log,
	}, nil
}

// Poll забирает итог игры и результаты отправки. Вызывается каждый кадр.
func (s *Session) Poll(now time.Time) {
	if out, ok := s.Game.TakeOutcome(); ok {
		s.finish(out, now)
	}
	for {
		select {
		case r := <-s.submitter.Results():
			s.Game.SetMessage(r.Message)
		default:
			return
		}
	}
}

func (s *Session) finish(out Outcome, now time.Time) {
	s.outcome = &out
	chainOut := chain.Outcome{Victory: out.Victory, WavesCleared: out.WavesCleared, LivesRemaining: out.LivesRemaining}

	if s.recordsLocally() {
		rec, err := history.RecordFromOutcome(out.Mode, chainOut, now)
		if err == nil {
			err = s.svc.History.Append(rec)
		}
		if err != nil {
			s.log.Error().Err(err).Msg("failed to record session")
		}
	}

	if !s.onChain {
		return
	}
	sub := s.submission
	sub.Outcome = chainOut
	if sub.ChallengeID == "" {
		id, ok := s.firstPlacedTower()
		if !ok {
			s.log.Warn().Msg("no placed tower to submit with")
			return
		}
		sub.TowerID = id
	}
	if err := s.submitter.Submit(sub); err != nil {
		s.log.Warn().Err(err).Msg("submit rejected")
		return
	}
	s.Game.SetMessage(s.Game.Message() + " Submitting result...")
}

// Башня, с которой кампания уходит в play_and_submit.
// recordsLocally: при включённой ленте итог сессии с контрактом вернётся
// событием узла с tx digest, и локальная запись его бы задвоила.
func (s *Session) recordsLocally() bool {
	if s.svc.History == nil {
		return false
	}
	return !s.onChain || s.svc.Settings.Chain.FeedURL == ""
}

func (s *Session) firstPlacedTower() (string, bool) {
	for _, e := range s.Game.Roster() {
		if e.Placed {
			return e.Source.ID, true
		}
	}
	return "", false
}

// Retry повторяет неудавшуюся отправку по команде игрока.
func (s *Session) Retry() bool {
	if err := s.submitter.Retry(); err != nil {
		s.log.Debug().Err(err).Msg("retry ignored")
		return false
	}
	s.Game.SetMessage("Retrying submission...")
	return true
}

// Outcome - итог игры, если она закончилась.
func (s *Session) Outcome() (Outcome, bool) {
	if s.outcome == nil {
		return Outcome{}, false
	}
	return *s.outcome, true
}

// OnChain сообщает, уходит ли итог в контракт.
func (s *Session) OnChain() bool { return s.onChain }

// Submitting - отправка ещё идёт.
func (s *Session) Submitting() bool { return s.submitter.Pending() }

// CanRetry - отправка провалилась, можно нажать R.
func (s *Session) CanRetry() bool { return s.submitter.Failed() }

// Close бросает незаконченную игру. Итог такой игры никуда не уходит.
func (s *Session) Close() {
	if !s.Game.ECS.Phase.Terminal() {
		s.Game.Abandon()
	}
}

// Wait ждёт фоновую отправку (при выходе из программы).
func (s *Session) Wait() { s.submitter.Wait() }
