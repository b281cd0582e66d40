package defs

import (
	"sui-tower-defense/internal/component"
	"sui-tower-defense/internal/config"
)

// WaveGroup - пачка одинаковых врагов внутри волны.
type WaveGroup struct {
	Kind  string  `yaml:"kind"`
	Count int     `yaml:"count"`
	HP    int     `yaml:"hp,omitempty"`    // 0 - взять из вида монстра
	Speed float64 `yaml:"speed,omitempty"` // 0 - взять из вида монстра
}

// WaveDefinition описывает одну волну врагов.
type WaveDefinition struct {
	Groups          []WaveGroup `yaml:"groups"`
	SpawnIntervalMs float64     `yaml:"spawn_interval_ms"`
	ScaleHPByWave   bool        `yaml:"scale_hp_by_wave"`
}

// CampaignWaves - пять волн кампании; HP монстров растёт с номером волны.
var CampaignWaves = []WaveDefinition{
	campaignWave(WaveGroup{Kind: "normal", Count: 10}),
	campaignWave(WaveGroup{Kind: "normal", Count: 15}),
	campaignWave(WaveGroup{Kind: "normal", Count: 10}, WaveGroup{Kind: "fast", Count: 5}),
	campaignWave(WaveGroup{Kind: "normal", Count: 15}, WaveGroup{Kind: "fast", Count: 5}),
	campaignWave(WaveGroup{Kind: "normal", Count: 10}, WaveGroup{Kind: "fast", Count: 5}, WaveGroup{Kind: "tank", Count: 3}),
}

func campaignWave(groups ...WaveGroup) WaveDefinition {
	return WaveDefinition{Groups: groups, SpawnIntervalMs: config.CampaignSpawnMillis, ScaleHPByWave: true}
}

// Templates разворачивает волну number (с 1) в очередь спавна.
// Неизвестный вид монстра считается обычным.
func (w WaveDefinition) Templates(number int) []component.EnemyTemplate {
	var out []component.EnemyTemplate
	for _, g := range w.Groups {
		kind, ok := KindFromString(g.Kind)
		if !ok {
			kind = component.MonsterNormal
		}
		def := Monster(kind)
		hp := g.HP
		if hp <= 0 {
			hp = def.HP
		}
		if w.ScaleHPByWave && number > 1 {
			hp *= number
		}
		speed := g.Speed
		if speed <= 0 {
			speed = def.Speed
		}
		for i := 0; i < g.Count; i++ {
			out = append(out, component.EnemyTemplate{HP: hp, Speed: speed, Kind: kind, Rarity: RarityCommon})
		}
	}
	return out
}

// ChallengeWave - одна волна испытания: count одинаковых монстров из контракта.
func ChallengeWave(hp int, speed float64, kind component.MonsterKind, rarity, count int) []component.EnemyTemplate {
	out := make([]component.EnemyTemplate, count)
	for i := range out {
		out[i] = component.EnemyTemplate{HP: hp, Speed: speed, Kind: kind, Rarity: rarity}
	}
	return out
}

// WavePlan - развёрнутая волна, готовая к запуску.
type WavePlan struct {
	Enemies         []component.EnemyTemplate
	SpawnIntervalMs float64
}
