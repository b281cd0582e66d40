// internal/defs/loader.go
package defs

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sui-tower-defense/internal/config"
	"sui-tower-defense/pkg/track"
)

// Waypoint - точка маршрута в файле уровня.
type Waypoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// LevelDefinition - карта, волны и запасные башни для оффлайн-игры.
type LevelDefinition struct {
	Name            string           `yaml:"name"`
	Path            []Waypoint       `yaml:"path"`
	Lives           int              `yaml:"lives"`
	SpawnIntervalMs float64          `yaml:"spawn_interval_ms"`
	Challenge       ChallengeDef     `yaml:"challenge"`
	Waves           []WaveDefinition `yaml:"waves"`
	Roster          []TowerSource    `yaml:"roster"`
}

// ChallengeDef - параметры монстра испытания по умолчанию (как в объекте Challenge).
type ChallengeDef struct {
	MonsterHP    int     `yaml:"monster_hp"`
	MonsterSpeed float64 `yaml:"monster_speed"` // в единицах контракта, делится на 100
	MonsterType  int     `yaml:"monster_type"`
	Count        int     `yaml:"count"`
}

// DefaultPath - дорога экрана испытания (канвас 800x500).
var DefaultPath = []Waypoint{
	{0, 250}, {200, 250}, {200, 100}, {400, 100},
	{400, 400}, {600, 400}, {600, 200}, {800, 200},
}

// DefaultLevel - уровень, с которым игра запускается без файла.
func DefaultLevel() *LevelDefinition {
	return &LevelDefinition{
		Name:            "Challenge Road",
		Path:            append([]Waypoint(nil), DefaultPath...),
		Lives:           config.StartingLives,
		SpawnIntervalMs: config.ChallengeSpawnMillis,
		Challenge: ChallengeDef{
			MonsterHP:    50,
			MonsterSpeed: 150,
			MonsterType:  1,
			Count:        config.ChallengeEnemyCount,
		},
		Waves: append([]WaveDefinition(nil), CampaignWaves...),
		Roster: []TowerSource{
			{ID: "demo-common", Damage: 18, Range: 100, FireRate: 1000, Rarity: RarityCommon},
			{ID: "demo-rare", Damage: 28, Range: 120, FireRate: 800, Rarity: RarityRare},
			{ID: "demo-epic", Damage: 44, Range: 150, FireRate: 600, Rarity: RarityEpic},
			{ID: "demo-legendary", Damage: 64, Range: 170, FireRate: 500, Rarity: RarityLegendary},
			{ID: "demo-rare-2", Damage: 30, Range: 120, FireRate: 800, Rarity: RarityRare},
		},
	}
}

// LoadLevel reads a YAML level file. Missing fields fall back to DefaultLevel.
func LoadLevel(path string) (*LevelDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file: %w", err)
	}
	return ParseLevel(data)
}

// ParseLevel decodes and validates a YAML level.
func ParseLevel(data []byte) (*LevelDefinition, error) {
	level := DefaultLevel()
	// Списки из файла заменяют значения по умолчанию целиком
	level.Waves = nil
	level.Roster = nil
	level.Path = nil

	if err := yaml.Unmarshal(data, level); err != nil {
		return nil, fmt.Errorf("failed to unmarshal level: %w", err)
	}

	def := DefaultLevel()
	if len(level.Path) == 0 {
		level.Path = def.Path
	}
	if len(level.Waves) == 0 {
		level.Waves = def.Waves
	}
	if len(level.Roster) == 0 {
		level.Roster = def.Roster
	}
	if err := level.Validate(); err != nil {
		return nil, err
	}
	return level, nil
}

// Validate checks the level for values the simulation cannot run with.
func (l *LevelDefinition) Validate() error {
	if _, err := l.Track(); err != nil {
		return fmt.Errorf("level %q: %w", l.Name, err)
	}
	if l.Lives <= 0 {
		return fmt.Errorf("level %q: lives must be positive", l.Name)
	}
	if l.SpawnIntervalMs <= 0 {
		return fmt.Errorf("level %q: spawn_interval_ms must be positive", l.Name)
	}
	var errs []error
	for i, w := range l.Waves {
		for _, g := range w.Groups {
			if _, ok := KindFromString(g.Kind); !ok {
				errs = append(errs, fmt.Errorf("wave %d: unknown monster kind %q", i+1, g.Kind))
			}
			if g.Count <= 0 {
				errs = append(errs, fmt.Errorf("wave %d: group %q has no monsters", i+1, g.Kind))
			}
		}
	}
	for _, t := range l.Roster {
		if t.Damage <= 0 || t.Range <= 0 || t.FireRate <= 0 {
			errs = append(errs, fmt.Errorf("roster tower %q: damage, range and fire_rate must be positive", t.ID))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("level %q: %w", l.Name, errors.Join(errs...))
	}
	return nil
}

// Track строит маршрут уровня.
func (l *LevelDefinition) Track() (*track.Track, error) {
	pts := make([]track.Point, len(l.Path))
	for i, w := range l.Path {
		pts[i] = track.Point{X: w.X, Y: w.Y}
	}
	return track.New(pts...)
}

// ChallengeTemplates - очередь спавна для режима испытания.
func (l *LevelDefinition) ChallengeTemplates() []WavePlan {
	c := l.Challenge
	return []WavePlan{{
		Enemies:         ChallengeWave(c.MonsterHP, c.MonsterSpeed/config.ChallengeSpeedDivisor, KindFromContract(c.MonsterType), RarityCommon, c.Count),
		SpawnIntervalMs: l.SpawnIntervalMs,
	}}
}

// CampaignPlan - очередь спавна всех волн кампании.
func (l *LevelDefinition) CampaignPlan() []WavePlan {
	plans := make([]WavePlan, len(l.Waves))
	for i, w := range l.Waves {
		interval := w.SpawnIntervalMs
		if interval <= 0 {
			interval = l.SpawnIntervalMs
		}
		plans[i] = WavePlan{Enemies: w.Templates(i + 1), SpawnIntervalMs: interval}
	}
	return plans
}
