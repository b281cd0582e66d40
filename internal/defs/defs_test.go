package defs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sui-tower-defense/internal/component"
)

func TestDefaultLevel_IsValid(t *testing.T) {
	level := DefaultLevel()
	require.NoError(t, level.Validate())

	tr, err := level.Track()
	require.NoError(t, err)
	assert.Equal(t, 8, tr.Len())
	assert.Len(t, level.Roster, 5)
	assert.Len(t, level.Waves, 5)
}

func TestParseLevel_OverridesAndDefaults(t *testing.T) {
	data := []byte(`
name: Short
lives: 3
path:
  - {x: 0, y: 0}
  - {x: 100, y: 0}
waves:
  - groups:
      - {kind: fast, count: 2}
`)
	level, err := ParseLevel(data)
	require.NoError(t, err)

	assert.Equal(t, "Short", level.Name)
	assert.Equal(t, 3, level.Lives)
	assert.Len(t, level.Path, 2)
	require.Len(t, level.Waves, 1)
	// не заданный в файле ростер берётся по умолчанию
	assert.Len(t, level.Roster, 5)

	plans := level.CampaignPlan()
	require.Len(t, plans, 1)
	assert.Len(t, plans[0].Enemies, 2)
	assert.Equal(t, component.MonsterFast, plans[0].Enemies[0].Kind)
	// интервал волны не задан - берётся из уровня
	assert.Equal(t, level.SpawnIntervalMs, plans[0].SpawnIntervalMs)
}

func TestParseLevel_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"one waypoint", "path: [{x: 1, y: 1}]"},
		{"zero lives", "lives: 0\nname: x"},
		{"unknown kind", "waves: [{groups: [{kind: dragon, count: 1}]}]"},
		{"bad roster", "roster: [{id: a, damage: 0, range: 10, fire_rate: 100}]"},
		{"broken yaml", "path: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLevel([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadLevel_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Disk\n"), 0o644))

	level, err := LoadLevel(path)
	require.NoError(t, err)
	assert.Equal(t, "Disk", level.Name)

	_, err = LoadLevel(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestChallengeTemplates_ScalesContractSpeed(t *testing.T) {
	level := DefaultLevel()
	level.Challenge = ChallengeDef{MonsterHP: 120, MonsterSpeed: 150, MonsterType: 3, Count: 4}

	plans := level.ChallengeTemplates()
	require.Len(t, plans, 1)
	require.Len(t, plans[0].Enemies, 4)
	e := plans[0].Enemies[0]
	assert.Equal(t, 120, e.HP)
	assert.InDelta(t, 1.5, e.Speed, 1e-9)
	assert.Equal(t, component.MonsterTank, e.Kind)
}

func TestWaveTemplates_ScaleHP(t *testing.T) {
	w := CampaignWaves[4]
	enemies := w.Templates(5)
	assert.Len(t, enemies, 18)
	assert.Equal(t, Monsters[component.MonsterNormal].HP*5, enemies[0].HP)
	assert.Equal(t, Monsters[component.MonsterTank].HP*5, enemies[17].HP)

	first := CampaignWaves[0].Templates(1)
	assert.Equal(t, Monsters[component.MonsterNormal].HP, first[0].HP)
}

func TestMonsterLookups(t *testing.T) {
	assert.Equal(t, component.MonsterFast, KindFromContract(2))
	assert.Equal(t, component.MonsterNormal, KindFromContract(42))

	kind, ok := KindFromString(" Tank ")
	assert.True(t, ok)
	assert.Equal(t, component.MonsterTank, kind)
	_, ok = KindFromString("dragon")
	assert.False(t, ok)

	assert.Equal(t, Monsters[component.MonsterNormal], Monster(component.MonsterKind(99)))
}

func TestRarity(t *testing.T) {
	assert.Equal(t, "Legendary", RarityName(RarityLegendary))
	assert.Equal(t, "Unknown", RarityName(0))
	assert.Equal(t, "Unknown", RarityName(9))
	assert.Equal(t, Palette(RarityRare), Palette(77))
}

func TestMintTable(t *testing.T) {
	total := 0
	for _, w := range MintWeights() {
		total += w
	}
	assert.Equal(t, 100, total)

	e, ok := MintEntryFor(RarityEpic)
	require.True(t, ok)
	assert.Equal(t, 40, e.DamageMin)
	_, ok = MintEntryFor(7)
	assert.False(t, ok)
}
