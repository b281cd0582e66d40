package ui

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sui-tower-defense/internal/component"
	"sui-tower-defense/internal/config"
	"sui-tower-defense/internal/defs"
)

func TestToRoman(t *testing.T) {
	cases := map[int]string{0: "", -3: "", 1: "I", 4: "IV", 5: "V", 9: "IX", 14: "XIV", 40: "XL", 1994: "MCMXCIV"}
	for n, want := range cases {
		assert.Equal(t, want, toRoman(n), "n=%d", n)
	}
}

func TestWaveLabel(t *testing.T) {
	assert.Equal(t, "", WaveLabel(0, 5))
	assert.Equal(t, "I", WaveLabel(1, 1))
	assert.Equal(t, "III / V", WaveLabel(3, 5))
}

func TestButtonPressCooldown(t *testing.T) {
	b := NewButton(image.Rect(0, 0, 10, 10), "x")
	now := time.Now()

	assert.True(t, b.Contains(5, 5))
	assert.False(t, b.Contains(10, 10))

	assert.True(t, b.Press(now))
	assert.False(t, b.Press(now.Add(100*time.Millisecond)))
	assert.True(t, b.Press(now.Add(config.ClickCooldown*time.Millisecond)))

	b.Disabled = true
	assert.False(t, b.Press(now.Add(time.Hour)))
}

func TestPhaseColor(t *testing.T) {
	assert.Equal(t, config.IdleStateColor, PhaseColor(component.PhaseIdle))
	assert.Equal(t, config.ActiveStateColor, PhaseColor(component.PhaseActive))
	assert.Equal(t, config.VictoryStateColor, PhaseColor(component.PhaseVictory))
	assert.Equal(t, config.DefeatStateColor, PhaseColor(component.PhaseDefeat))
}

func TestStateIndicatorHit(t *testing.T) {
	i := NewStateIndicator(100, 100, 10)
	assert.True(t, i.IsClicked(105, 105))
	assert.False(t, i.IsClicked(111, 100))
}

func TestLifeColor(t *testing.T) {
	black := LifeColor(9, 5, 10)
	assert.Equal(t, uint8(0), black.R)

	// 8 из 10: первые три «лишние» синие, остальные красные
	assert.NotEqual(t, config.HPBadColor, LifeColor(0, 8, 10))
	assert.Equal(t, config.HPBadColor, LifeColor(3, 8, 10))
	// половина и меньше: все живые красные
	assert.Equal(t, config.HPBadColor, LifeColor(0, 5, 10))
}

func TestWaveProgress(t *testing.T) {
	assert.Zero(t, WaveProgress(0, 20))
	assert.Zero(t, WaveProgress(5, 0))
	assert.InDelta(t, 0.25, WaveProgress(5, 20), 1e-9)
	assert.Equal(t, 1.0, WaveProgress(25, 20))
}

func TestRosterPanelLayout(t *testing.T) {
	p := NewRosterPanel()
	assert.GreaterOrEqual(t, p.Capacity(), config.MaxTowers)

	r := p.CardRect(2)
	idx, ok := p.EntryAt(r.Min.X+5, r.Min.Y+5, 5)
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = p.EntryAt(r.Min.X+5, r.Min.Y+5, 2)
	assert.False(t, ok, "card beyond roster length")

	_, ok = p.EntryAt(10, 10, 5)
	assert.False(t, ok)

	assert.True(t, p.StartButton.Rect.Min.Y > p.CardRect(p.Capacity()-1).Max.Y)
}

func TestCardLines(t *testing.T) {
	title, stats := CardLines(defs.TowerSource{ID: "0xab", Damage: 44, Range: 150, FireRate: 600, Rarity: defs.RarityEpic})
	assert.Equal(t, "Epic  0xab", title)
	assert.Equal(t, "DMG 44  RNG 150  CD 600ms", stats)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
}
