// Package audio - фоновая музыка и звук попадания.
package audio

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"sui-tower-defense/internal/event"
)

const (
	sampleRate  = beep.SampleRate(44100)
	hitFreq     = 880.0
	hitDuration = 60 * time.Millisecond
	hitVolume   = 0.15
)

// Player управляет музыкой и звуками. Без Init всё молчит.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	musicCloser beep.StreamSeekCloser
	volume      float64
	initialized bool
	log         zerolog.Logger
}

func NewPlayer(volume float64, log zerolog.Logger) *Player {
	return &Player{mixer: &beep.Mixer{}, volume: volume, log: log}
}

// Init открывает звуковое устройство.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// LoadMusic зацикливает mp3 с громкостью плеера. Музыка стартует на паузе.
func (p *Player) LoadMusic(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open music: %w", err)
	}
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to decode music: %w", err)
	}

	var s beep.Streamer = beep.Loop(-1, streamer)
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, s)
	}
	ctrl := &beep.Ctrl{Streamer: withVolume(s, p.volume), Paused: true}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.musicCloser != nil {
		_ = p.musicCloser.Close()
	}
	p.music = ctrl
	p.musicCloser = streamer
	if p.initialized {
		speaker.Lock()
		p.mixer.Add(ctrl)
		speaker.Unlock()
	}
	p.log.Info().Str("file", path).Msg("music loaded")
	return nil
}

// ToggleMusic ставит музыку на паузу или снимает с неё. Возвращает true, если музыка играет.
func (p *Player) ToggleMusic() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.music == nil {
		return false
	}
	speaker.Lock()
	p.music.Paused = !p.music.Paused
	playing := !p.music.Paused
	speaker.Unlock()
	return playing
}

// MusicPlaying сообщает, играет ли музыка.
func (p *Player) MusicPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.music == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !p.music.Paused
}

// PlayHit - короткий писк попадания.
func (p *Player) PlayHit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	s, err := hitSound(sampleRate)
	if err != nil {
		p.log.Debug().Err(err).Msg("hit sound unavailable")
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// OnEvent - звук на каждое попадание снаряда.
func (p *Player) OnEvent(e event.Event) {
	if e.Type == event.ProjectileImpact {
		p.PlayHit()
	}
}

// Close глушит всё и закрывает файл музыки.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
	if p.musicCloser != nil {
		_ = p.musicCloser.Close()
		p.musicCloser = nil
	}
	p.music = nil
}

func hitSound(sr beep.SampleRate) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, hitFreq)
	if err != nil {
		return nil, err
	}
	return beep.Take(sr.N(hitDuration), withVolume(tone, hitVolume)), nil
}

// withVolume переводит линейную громкость [0, 1] в показатель для effects.Volume.
func withVolume(s beep.Streamer, v float64) *effects.Volume {
	vol := &effects.Volume{Streamer: s, Base: 2}
	if v <= 0 {
		vol.Silent = true
		return vol
	}
	vol.Volume = math.Log2(math.Min(v, 1))
	return vol
}
