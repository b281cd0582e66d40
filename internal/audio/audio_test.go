package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sui-tower-defense/internal/event"
)

func TestHitSound_LengthAndLevel(t *testing.T) {
	s, err := hitSound(sampleRate)
	require.NoError(t, err)

	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			assert.LessOrEqual(t, math.Abs(buf[i][0]), hitVolume+1e-9)
		}
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, sampleRate.N(hitDuration), total)
}

func TestWithVolume(t *testing.T) {
	tone, err := generators.SineTone(beep.SampleRate(8000), 440)
	require.NoError(t, err)

	v := withVolume(tone, 0.3)
	assert.InDelta(t, math.Log2(0.3), v.Volume, 1e-12)
	assert.False(t, v.Silent)

	assert.True(t, withVolume(tone, 0).Silent)
	assert.Zero(t, withVolume(tone, 5).Volume)
}

func TestPlayer_UninitializedIsSilent(t *testing.T) {
	p := NewPlayer(0.3, zerolog.Nop())
	assert.NotPanics(t, func() {
		p.OnEvent(event.Event{Type: event.ProjectileImpact})
		p.PlayHit()
	})
	assert.False(t, p.ToggleMusic())
	assert.False(t, p.MusicPlaying())
	assert.Error(t, p.LoadMusic("does/not/exist.mp3"))
	p.Close()
}
