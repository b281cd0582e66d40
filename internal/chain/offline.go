package chain

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"sui-tower-defense/internal/defs"
	"sui-tower-defense/internal/utils"
)

// FaucetGrant - сколько MIST выдаёт кран за раз.
const FaucetGrant = 100_000_000

// OfflineContract - контракт в памяти для игры без узла.
// Минт идёт по таблице редкостей с сидом, так что партии воспроизводимы.
type OfflineContract struct {
	mu         sync.Mutex
	rng        *utils.PRNGService
	player     string
	balance    uint64
	nextID     int
	towers     map[string]TowerNFT
	monsters   map[string]MonsterNFT
	challenges map[string]Challenge
	log        zerolog.Logger

	// Completed - принятые результаты, в порядке вызовов.
	Completed []any
}

var _ Contract = (*OfflineContract)(nil)

// NewOfflineContract создаёт контракт с ростером уровня в качестве стартовых башен.
func NewOfflineContract(seed int64, player string, roster []defs.TowerSource, log zerolog.Logger) *OfflineContract {
	c := &OfflineContract{
		rng:        utils.NewPRNGService(seed),
		player:     player,
		balance:    FaucetGrant,
		towers:     make(map[string]TowerNFT),
		monsters:   make(map[string]MonsterNFT),
		challenges: make(map[string]Challenge),
		log:        log,
	}
	for _, src := range roster {
		c.towers[src.ID] = TowerNFT{
			ID:       src.ID,
			Damage:   U64(src.Damage),
			Range:    U64(src.Range),
			FireRate: U64(src.FireRate),
			Rarity:   U64(src.Rarity),
		}
	}
	return c
}

func (c *OfflineContract) newID(kind string) string {
	c.nextID++
	return fmt.Sprintf("offline-%s-%d", kind, c.nextID)
}

func (c *OfflineContract) pay(amount uint64) error {
	if amount > c.balance {
		return fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, amount, c.balance)
	}
	c.balance -= amount
	return nil
}

func (c *OfflineContract) rollEntry() defs.MintEntry {
	idx := c.rng.ChooseWeighted(defs.MintWeights())
	if idx < 0 {
		idx = 0
	}
	return defs.MintTable[idx]
}

func (c *OfflineContract) MintTower(ctx context.Context, payment uint64) (TowerNFT, error) {
	if err := ctx.Err(); err != nil {
		return TowerNFT{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.pay(payment); err != nil {
		return TowerNFT{}, err
	}
	e := c.rollEntry()
	t := TowerNFT{
		ID:       c.newID("tower"),
		Damage:   U64(c.rng.IntRange(e.DamageMin, e.DamageMax)),
		Range:    U64(e.Range),
		FireRate: U64(e.FireRate),
		Rarity:   U64(e.Rarity),
	}
	c.towers[t.ID] = t
	c.log.Info().Str("tower", t.ID).Uint64("rarity", uint64(t.Rarity)).Msg("tower minted")
	return t, nil
}

func (c *OfflineContract) MintMonster(ctx context.Context, payment uint64) (MonsterNFT, error) {
	if err := ctx.Err(); err != nil {
		return MonsterNFT{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.pay(payment); err != nil {
		return MonsterNFT{}, err
	}
	e := c.rollEntry()
	m := MonsterNFT{
		ID:          c.newID("monster"),
		HP:          U64(c.rng.IntRange(e.MonsterHPMin, e.MonsterHPMax)),
		Speed:       U64(c.rng.IntRange(defs.MonsterSpeedMin, defs.MonsterSpeedMax)),
		MonsterType: U64(c.rng.IntRange(1, defs.MonsterTypes)),
		Rarity:      U64(e.Rarity),
	}
	c.monsters[m.ID] = m
	return m, nil
}

// CreateChallenge выставляет монстра как испытание с призовым фондом.
func (c *OfflineContract) CreateChallenge(ctx context.Context, monsterID string, entryFee, prizePool uint64, maxWinners int) (ChallengeCreatedEvent, error) {
	if err := ctx.Err(); err != nil {
		return ChallengeCreatedEvent{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.monsters[monsterID]
	if !ok {
		return ChallengeCreatedEvent{}, fmt.Errorf("%w: monster %s", ErrNotFound, monsterID)
	}
	if err := c.pay(prizePool); err != nil {
		return ChallengeCreatedEvent{}, err
	}
	delete(c.monsters, monsterID)
	ch := Challenge{
		ID:            c.newID("challenge"),
		Creator:       c.player,
		MonsterHP:     m.HP,
		MonsterSpeed:  m.Speed,
		MonsterType:   m.MonsterType,
		MonsterRarity: m.Rarity,
		EntryFee:      U64(entryFee),
		PrizePool:     U64(prizePool),
		MaxWinners:    U64(maxWinners),
	}
	c.challenges[ch.ID] = ch
	ev := ChallengeCreatedEvent{ChallengeID: ch.ID}
	c.Completed = append(c.Completed, ev)
	return ev, nil
}

func (c *OfflineContract) PlayAndSubmit(ctx context.Context, towerID string, payment uint64, wavesCleared uint8) (GameCompletedEvent, error) {
	if err := ctx.Err(); err != nil {
		return GameCompletedEvent{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.towers[towerID]; !ok {
		return GameCompletedEvent{}, fmt.Errorf("%w: tower %s", ErrNotFound, towerID)
	}
	if err := c.pay(payment); err != nil {
		return GameCompletedEvent{}, err
	}

	ev := GameCompletedEvent{Player: c.player, WavesCleared: U64(wavesCleared)}
	if wavesCleared == 0 {
		delete(c.towers, towerID)
	} else {
		ev.Reward = 1
	}
	if sui, ok := Rewards[int(wavesCleared)]; ok {
		c.balance += SuiToMist(sui)
	}
	c.Completed = append(c.Completed, ev)
	return ev, nil
}

func (c *OfflineContract) PlayChallenge(ctx context.Context, challengeID string, payment uint64, success bool) (ChallengeCompletedEvent, error) {
	if err := ctx.Err(); err != nil {
		return ChallengeCompletedEvent{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.challenges[challengeID]
	if !ok {
		return ChallengeCompletedEvent{}, fmt.Errorf("%w: challenge %s", ErrNotFound, challengeID)
	}
	if !ch.Open() {
		return ChallengeCompletedEvent{}, ErrChallengeFull
	}
	if payment < uint64(ch.EntryFee) {
		return ChallengeCompletedEvent{}, fmt.Errorf("%w: entry fee is %d", ErrInsufficientFunds, ch.EntryFee)
	}
	if err := c.pay(payment); err != nil {
		return ChallengeCompletedEvent{}, err
	}

	ev := ChallengeCompletedEvent{Player: c.player, Success: success}
	if success {
		// Фонд делится поровну между возможными победителями
		share := uint64(ch.PrizePool) / uint64(ch.MaxWinners-ch.CurrentWinners)
		ch.PrizePool -= U64(share)
		ch.CurrentWinners++
		c.balance += share
		ev.Reward = U64(share)
	} else {
		ch.PrizePool += U64(payment)
	}
	c.challenges[challengeID] = ch
	c.Completed = append(c.Completed, ev)
	return ev, nil
}

func (c *OfflineContract) ClaimFaucet(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balance += FaucetGrant
	return FaucetGrant, nil
}

func (c *OfflineContract) OwnedTowers(ctx context.Context) ([]TowerNFT, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]TowerNFT, 0, len(c.towers))
	for _, t := range c.towers {
		out = append(out, t)
	}
	sortByID(out, func(t TowerNFT) string { return t.ID })
	return out, nil
}

func (c *OfflineContract) OwnedMonsters(ctx context.Context) ([]MonsterNFT, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]MonsterNFT, 0, len(c.monsters))
	for _, m := range c.monsters {
		out = append(out, m)
	}
	sortByID(out, func(m MonsterNFT) string { return m.ID })
	return out, nil
}

func (c *OfflineContract) Challenge(ctx context.Context, id string) (Challenge, error) {
	if err := ctx.Err(); err != nil {
		return Challenge{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.challenges[id]
	if !ok {
		return Challenge{}, fmt.Errorf("%w: challenge %s", ErrNotFound, id)
	}
	return ch, nil
}

func (c *OfflineContract) Balance(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balance, nil
}

func sortByID[T any](items []T, id func(T) string) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}
