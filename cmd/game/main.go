// cmd/game/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	game "sui-tower-defense/internal/app"
	"sui-tower-defense/internal/audio"
	"sui-tower-defense/internal/config"
	"sui-tower-defense/internal/logging"
	"sui-tower-defense/internal/state"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	if a.stateMachine.Done() {
		return ebiten.Termination
	}
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	configDir := flag.String("config", ".", "directory with td.yaml")
	demoChallenge := flag.Bool("demo-challenge", false, "open a challenge in the offline contract and play against it")
	flag.Parse()

	if err := run(*configDir, *demoChallenge); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configDir string, demoChallenge bool) error {
	settings, err := config.Load(configDir)
	if err != nil {
		return err
	}
	log, closeLog, err := logging.Setup(os.Stderr, settings.LogLevel, settings.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	svc, err := game.LoadServices(settings, log)
	if err != nil {
		return err
	}
	defer svc.History.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if demoChallenge {
		if _, err := game.CreateDemoChallenge(ctx, svc); err != nil {
			return err
		}
	}
	game.FollowFeed(ctx, svc)

	var sound state.Sound
	if player := setupAudio(settings.Audio, log); player != nil {
		defer player.Close()
		sound = player
	}

	sm := state.NewStateMachine()
	sm.SetState(state.NewMenuState(sm, svc, sound))

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Sui Tower Defense")
	if err := ebiten.RunGame(&AppGame{stateMachine: sm, lastUpdateTime: time.Now()}); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	log.Info().Msg("bye")
	return nil
}

// setupAudio включает звук; без устройства игра идёт молча.
func setupAudio(cfg config.AudioSettings, log zerolog.Logger) *audio.Player {
	if !cfg.Enabled {
		return nil
	}
	alog := logging.Component(log, "audio")
	player := audio.NewPlayer(cfg.Volume, alog)
	if err := player.Init(); err != nil {
		alog.Warn().Err(err).Msg("audio disabled")
		return nil
	}
	if cfg.MusicFile != "" {
		if err := player.LoadMusic(cfg.MusicFile); err != nil {
			alog.Warn().Err(err).Msg("no background music")
		} else {
			player.ToggleMusic()
		}
	}
	return player
}
