// cmd/tui/main.go - терминальный клиент: одна сессия в tcell.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	game "sui-tower-defense/internal/app"
	"sui-tower-defense/internal/config"
	"sui-tower-defense/internal/logging"
	"sui-tower-defense/internal/tui"
)

func main() {
	configDir := flag.String("config", ".", "directory with td.yaml")
	mode := flag.String("mode", "", "challenge or campaign (default from config)")
	demoChallenge := flag.Bool("demo-challenge", false, "open a challenge in the offline contract and play against it")
	flag.Parse()

	if err := run(*configDir, *mode, *demoChallenge); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configDir, mode string, demoChallenge bool) error {
	settings, err := config.Load(configDir)
	if err != nil {
		return err
	}
	if mode == "" {
		mode = settings.Mode
	}

	// Консоль занята экраном, поэтому лог пишется только в файл.
	log, closeLog, err := logging.Setup(io.Discard, settings.LogLevel, settings.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	svc, err := game.LoadServices(settings, log)
	if err != nil {
		return err
	}
	defer svc.History.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if demoChallenge {
		if _, err := game.CreateDemoChallenge(ctx, svc); err != nil {
			return err
		}
	}
	game.FollowFeed(ctx, svc)

	session, err := game.NewSession(ctx, svc, mode)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	tui.New(screen, session, log).Run(ctx)
	screen.Fini()

	session.Wait()
	if out, ok := session.Outcome(); ok {
		fmt.Printf("victory=%t waves=%d lives=%d\n", out.Victory, out.WavesCleared, out.LivesRemaining)
	}
	return nil
}
