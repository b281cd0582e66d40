// internal/state/menu_state.go
package state

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	game "sui-tower-defense/internal/app"
	"sui-tower-defense/internal/chain"
	"sui-tower-defense/internal/config"
	"sui-tower-defense/internal/history"
	"sui-tower-defense/internal/logging"
	"sui-tower-defense/internal/ui"
)

const (
	contractTimeout = 10 * time.Second
	recentLimit     = 8
)

// MenuState - выбор режима, кошелёк и журнал сыгранных игр.
type MenuState struct {
	sm      *StateMachine
	svc     game.Services
	sound   Sound
	buttons []*ui.MenuButton
	message string
	balance uint64
	stats   history.Stats
	recent  []history.Record
	log     zerolog.Logger
}

func NewMenuState(sm *StateMachine, svc game.Services, sound Sound) *MenuState {
	cx := config.ScreenWidth / 2
	return &MenuState{
		sm:    sm,
		svc:   svc,
		sound: sound,
		buttons: []*ui.MenuButton{
			ui.NewMenuButton(image.Rect(cx-330, 120, cx-10, 190), "[1] CHALLENGE", "One wave of the challenge monster", config.ModeChallenge),
			ui.NewMenuButton(image.Rect(cx+10, 120, cx+330, 190), "[2] CAMPAIGN", "Five waves, reward by waves cleared", config.ModeCampaign),
		},
		message: "Choose a mode. M mints a tower, F claims the faucet.",
		log:     logging.Component(svc.Logger, "menu"),
	}
}

func (m *MenuState) Enter() {
	m.refresh()
}

// refresh перечитывает баланс и журнал.
func (m *MenuState) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), contractTimeout)
	defer cancel()
	if b, err := m.svc.Contract.Balance(ctx); err == nil {
		m.balance = b
	} else {
		m.log.Warn().Err(err).Msg("balance unavailable")
	}

	if m.svc.History == nil {
		return
	}
	if st, err := m.svc.History.Stats(); err == nil {
		m.stats = st
	} else {
		m.log.Warn().Err(err).Msg("history stats unavailable")
	}
	if recs, err := m.svc.History.Recent(recentLimit); err == nil {
		m.recent = recs
	}
}

func (m *MenuState) Update(deltaTime float64) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		m.start(config.ModeChallenge)
		return
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		m.start(config.ModeCampaign)
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		m.mint()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		m.faucet()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		m.sm.Quit()
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		for _, b := range m.buttons {
			if b.IsClicked(x, y) {
				m.start(b.Value)
				return
			}
		}
	}
}

func (m *MenuState) start(mode string) {
	ctx, cancel := context.WithTimeout(context.Background(), contractTimeout)
	defer cancel()
	session, err := game.NewSession(ctx, m.svc, mode)
	if err != nil {
		m.log.Warn().Err(err).Str("mode", mode).Msg("session not started")
		m.message = startError(err)
		return
	}
	m.sm.SetState(NewGameState(m.sm, m.svc, session, m.sound))
}

func startError(err error) string {
	switch {
	case errors.Is(err, game.ErrNoTowers):
		return "You have no towers. Press M to mint one."
	case errors.Is(err, chain.ErrChallengeFull):
		return "This challenge has no free winner slots."
	case errors.Is(err, chain.ErrNotFound):
		return "Challenge not found."
	default:
		return "Cannot start: " + err.Error()
	}
}

func (m *MenuState) mint() {
	ctx, cancel := context.WithTimeout(context.Background(), contractTimeout)
	defer cancel()
	t, err := m.svc.MintTower(ctx)
	if err != nil {
		m.message = "Mint failed: " + err.Error()
		return
	}
	title, stats := ui.CardLines(t.Source())
	m.message = fmt.Sprintf("Minted %s (%s)", title, stats)
	m.refresh()
}

func (m *MenuState) faucet() {
	ctx, cancel := context.WithTimeout(context.Background(), contractTimeout)
	defer cancel()
	amount, err := m.svc.ClaimFaucet(ctx)
	if err != nil {
		m.message = "Faucet failed: " + err.Error()
		return
	}
	m.message = fmt.Sprintf("Received %.2f SUI", chain.MistToSui(amount))
	m.refresh()
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.HUDColor)
	ui.DrawCentered(screen, "SUI TOWER DEFENSE", image.Rect(0, 40, config.ScreenWidth, 80), config.SelectionOutline)

	x, y := ebiten.CursorPosition()
	for _, b := range m.buttons {
		b.Draw(screen, b.IsClicked(x, y))
	}

	left := config.ScreenWidth/2 - 330
	ui.DrawText(screen, fmt.Sprintf("Balance: %.4f SUI", chain.MistToSui(m.balance)), left, 225, config.TextLightColor)
	ui.DrawText(screen, StatsLine(m.stats), left, 245, config.TextLightColor)

	row := 280
	ui.DrawText(screen, "RECENT GAMES", left, row, config.TextDimColor)
	for _, r := range m.recent {
		row += 18
		ui.DrawText(screen, RecordLine(r), left, row, config.TextLightColor)
	}

	ui.DrawCentered(screen, ui.Truncate(m.message, 90), image.Rect(0, config.ScreenHeight-50, config.ScreenWidth, config.ScreenHeight-20), config.TextLightColor)
}

func (m *MenuState) Exit() {}

// StatsLine - сводка журнала одной строкой.
func StatsLine(st history.Stats) string {
	if st.Total == 0 {
		return "No games played yet"
	}
	return fmt.Sprintf("Games: %d  Victories: %d  Avg waves: %.1f", st.Total, st.Victories, st.AverageWaves)
}

// RecordLine - строка журнала для меню.
func RecordLine(r history.Record) string {
	result := "DEFEAT "
	if r.Victory {
		result = "VICTORY"
	}
	line := fmt.Sprintf("%s  %-9s %s  waves %d  lives %d",
		r.Timestamp.Format("2006-01-02 15:04"), r.Mode, result, r.WavesCleared, r.LivesRemaining)
	if r.Reward > 0 {
		line += fmt.Sprintf("  +%g", r.Reward)
	}
	return line
}
