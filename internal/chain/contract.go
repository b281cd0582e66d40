package chain

import (
	"context"
	"errors"
)

var (
	// ErrNotFound - объект не найден или принадлежит другому игроку.
	ErrNotFound = errors.New("object not found")
	// ErrInsufficientFunds - не хватает средств на оплату.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrChallengeFull - у испытания уже максимум победителей.
	ErrChallengeFull = errors.New("challenge has no free winner slots")
)

// Contract - точки входа контракта game. Суммы в MIST.
type Contract interface {
	MintTower(ctx context.Context, payment uint64) (TowerNFT, error)
	MintMonster(ctx context.Context, payment uint64) (MonsterNFT, error)
	// PlayAndSubmit забирает башню; при wavesCleared == 0 она уничтожается.
	PlayAndSubmit(ctx context.Context, towerID string, payment uint64, wavesCleared uint8) (GameCompletedEvent, error)
	PlayChallenge(ctx context.Context, challengeID string, payment uint64, success bool) (ChallengeCompletedEvent, error)
	ClaimFaucet(ctx context.Context) (uint64, error)
	OwnedTowers(ctx context.Context) ([]TowerNFT, error)
	OwnedMonsters(ctx context.Context) ([]MonsterNFT, error)
	Challenge(ctx context.Context, id string) (Challenge, error)
	Balance(ctx context.Context) (uint64, error)
}

// Rewards - выплата за кампанию по числу отбитых волн, в SUI.
var Rewards = map[int]float64{
	3: 0.00075,
	4: 0.001,
	5: 0.0015,
}
