// Package chain описывает контракт игры: NFT, события, отправку результата
// и подписку на события узла.
package chain

import (
	"encoding/json"
	"fmt"
	"strconv"

	"sui-tower-defense/internal/config"
	"sui-tower-defense/internal/defs"
)

// MistPerSui - 1 SUI = 10^9 MIST.
const MistPerSui = 1_000_000_000

// SuiToMist переводит сумму в SUI в MIST.
func SuiToMist(sui float64) uint64 {
	if sui <= 0 {
		return 0
	}
	return uint64(sui*MistPerSui + 0.5)
}

// MistToSui переводит MIST в SUI.
func MistToSui(mist uint64) float64 {
	return float64(mist) / MistPerSui
}

// U64 - число Move u64. Узел отдаёт его строкой, но число тоже принимается.
type U64 uint64

func (u *U64) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid u64 %q: %w", s, err)
	}
	*u = U64(v)
	return nil
}

func (u U64) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(u), 10))
}

// TowerNFT - башня игрока.
type TowerNFT struct {
	ID       string `json:"-"`
	Damage   U64    `json:"damage"`
	Range    U64    `json:"range"`
	FireRate U64    `json:"fire_rate"`
	Rarity   U64    `json:"rarity"`
}

// Source превращает NFT в характеристики башни на поле.
func (t TowerNFT) Source() defs.TowerSource {
	return defs.TowerSource{
		ID:       t.ID,
		Damage:   int(t.Damage),
		Range:    float64(t.Range),
		FireRate: float64(t.FireRate),
		Rarity:   int(t.Rarity),
	}
}

// MonsterNFT - монстр, из которого создаются испытания.
type MonsterNFT struct {
	ID          string `json:"-"`
	HP          U64    `json:"hp"`
	Speed       U64    `json:"speed"`
	MonsterType U64    `json:"monster_type"`
	Rarity      U64    `json:"rarity"`
}

// Challenge - объект испытания с призовым фондом.
type Challenge struct {
	ID             string `json:"-"`
	Creator        string `json:"creator"`
	MonsterHP      U64    `json:"-"`
	MonsterSpeed   U64    `json:"-"`
	MonsterType    U64    `json:"-"`
	MonsterRarity  U64    `json:"-"`
	EntryFee       U64    `json:"entry_fee"`
	PrizePool      U64    `json:"prize_pool"`
	MaxWinners     U64    `json:"max_winners"`
	CurrentWinners U64    `json:"current_winners"`
}

// Params - параметры монстра испытания для сессии.
func (c Challenge) Params() defs.ChallengeDef {
	return defs.ChallengeDef{
		MonsterHP:    int(c.MonsterHP),
		MonsterSpeed: float64(c.MonsterSpeed),
		MonsterType:  int(c.MonsterType),
		Count:        config.ChallengeEnemyCount,
	}
}

// Open сообщает, остались ли места для победителей.
func (c Challenge) Open() bool {
	return c.CurrentWinners < c.MaxWinners
}

// DecodeTower разбирает поля Move-объекта башни.
func DecodeTower(objectID string, fields []byte) (TowerNFT, error) {
	var t TowerNFT
	if err := json.Unmarshal(fields, &t); err != nil {
		return TowerNFT{}, fmt.Errorf("failed to decode tower %s: %w", objectID, err)
	}
	t.ID = objectID
	return t, nil
}

// DecodeMonster разбирает поля Move-объекта монстра.
func DecodeMonster(objectID string, fields []byte) (MonsterNFT, error) {
	var m MonsterNFT
	if err := json.Unmarshal(fields, &m); err != nil {
		return MonsterNFT{}, fmt.Errorf("failed to decode monster %s: %w", objectID, err)
	}
	m.ID = objectID
	return m, nil
}

// DecodeChallenge разбирает объект испытания; монстр лежит во вложенном monster.fields.
func DecodeChallenge(objectID string, fields []byte) (Challenge, error) {
	var raw struct {
		Challenge
		Monster *struct {
			Fields MonsterNFT `json:"fields"`
		} `json:"monster"`
	}
	if err := json.Unmarshal(fields, &raw); err != nil {
		return Challenge{}, fmt.Errorf("failed to decode challenge %s: %w", objectID, err)
	}
	if raw.Monster == nil {
		return Challenge{}, fmt.Errorf("challenge %s has no monster", objectID)
	}
	c := raw.Challenge
	c.ID = objectID
	c.MonsterHP = raw.Monster.Fields.HP
	c.MonsterSpeed = raw.Monster.Fields.Speed
	c.MonsterType = raw.Monster.Fields.MonsterType
	c.MonsterRarity = raw.Monster.Fields.Rarity
	return c, nil
}
