// internal/defs/loot_tables.go
package defs

// MintEntry - одна строка таблицы минта: вес редкости и диапазоны характеристик.
type MintEntry struct {
	Rarity    int
	Weight    int
	DamageMin int
	DamageMax int // включительно
	Range     float64
	FireRate  float64 // мс между выстрелами

	MonsterHPMin int
	MonsterHPMax int
}

// MintTable - шансы 50/30/15/5, как в контракте.
var MintTable = []MintEntry{
	{Rarity: RarityCommon, Weight: 50, DamageMin: 15, DamageMax: 23, Range: 100, FireRate: 1000, MonsterHPMin: 100, MonsterHPMax: 150},
	{Rarity: RarityRare, Weight: 30, DamageMin: 25, DamageMax: 33, Range: 120, FireRate: 800, MonsterHPMin: 200, MonsterHPMax: 300},
	{Rarity: RarityEpic, Weight: 15, DamageMin: 40, DamageMax: 48, Range: 150, FireRate: 600, MonsterHPMin: 400, MonsterHPMax: 500},
	{Rarity: RarityLegendary, Weight: 5, DamageMin: 60, DamageMax: 68, Range: 170, FireRate: 500, MonsterHPMin: 800, MonsterHPMax: 1000},
}

// Скорость монстра в единицах контракта (делится на 100 на клиенте).
const (
	MonsterSpeedMin = 100
	MonsterSpeedMax = 200
	MonsterTypes    = 3
)

// MintWeights returns the weight column of MintTable.
func MintWeights() []int {
	w := make([]int, len(MintTable))
	for i, e := range MintTable {
		w[i] = e.Weight
	}
	return w
}

// MintEntryFor returns the row for rarity, or false.
func MintEntryFor(rarity int) (MintEntry, bool) {
	for _, e := range MintTable {
		if e.Rarity == rarity {
			return e, true
		}
	}
	return MintEntry{}, false
}
