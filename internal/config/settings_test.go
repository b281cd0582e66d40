package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "challenge", s.Mode)
	assert.Equal(t, TargetFirst, s.TargetPolicy)
	assert.Equal(t, "td_history.db", s.History.Path)
	assert.InDelta(t, 0.3, s.Audio.Volume, 1e-9)
	assert.True(t, s.Audio.Enabled)
}

func TestLoad_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
logLevel: debug
mode: campaign
targetPolicy: nearest
history:
  path: /tmp/other.db
audio:
  enabled: false
  volume: 0.5
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "td.yaml"), content, 0o644))

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "campaign", s.Mode)
	assert.Equal(t, TargetNearest, s.TargetPolicy)
	assert.Equal(t, "/tmp/other.db", s.History.Path)
	assert.False(t, s.Audio.Enabled)
	assert.InDelta(t, 0.5, s.Audio.Volume, 1e-9)
}

func TestLoad_RejectsUnknownPolicy(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "td.yaml"), []byte("targetPolicy: random\n"), 0o644))

	_, err := Load(dir)
	assert.ErrorContains(t, err, "targetPolicy")
}

func TestSettings_ValidateVolume(t *testing.T) {
	s := Settings{TargetPolicy: TargetFirst, Mode: "challenge", Audio: AudioSettings{Volume: 2}}
	assert.Error(t, s.Validate())
}
