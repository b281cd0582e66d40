// internal/state/game_state.go
package state

import (
	"image"
	"image/color"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	game "sui-tower-defense/internal/app"
	"sui-tower-defense/internal/component"
	"sui-tower-defense/internal/config"
	"sui-tower-defense/internal/event"
	"sui-tower-defense/internal/logging"
	"sui-tower-defense/internal/ui"
)

var rosterKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6}

// GameState - состояние игры
type GameState struct {
	sm        *StateMachine
	svc       game.Services
	session   *game.Session
	sound     Sound
	status    *ui.StatusBar
	lives     *ui.LivesIndicator
	wave      *ui.WaveIndicator
	progress  *ui.ProgressIndicator
	indicator *ui.StateIndicator
	speed     *ui.SpeedButton
	pause     *ui.PauseButton
	music     *ui.MusicIndicator
	panel     *ui.RosterPanel
	log       zerolog.Logger
}

func NewGameState(sm *StateMachine, svc game.Services, session *game.Session, sound Sound) *GameState {
	gs := &GameState{
		sm:        sm,
		svc:       svc,
		session:   session,
		sound:     sound,
		status:    ui.NewStatusBar(350, 36),
		lives:     ui.NewLivesIndicator(12, 12),
		wave:      ui.NewWaveIndicator(190, 24),
		progress:  ui.NewProgressIndicator(190, 32),
		indicator: ui.NewStateIndicator(config.ScreenWidth-30, 30, 14),
		speed:     ui.NewSpeedButton(config.PanelX+30, 26, 12, config.SpeedButtonColors),
		pause:     ui.NewPauseButton(config.PanelX+95, 26, 10, config.ActiveStateColor, config.IdleStateColor),
		music:     ui.NewMusicIndicator(config.PanelX+150, 26, 24),
		panel:     ui.NewRosterPanel(),
		log:       logging.Component(svc.Logger, "game_state"),
	}
	if sound != nil {
		session.Game.EventDispatcher.Subscribe(event.ProjectileImpact, sound)
	}
	return gs
}

func (g *GameState) Enter() {}

// Game - текущая сессия, для состояния паузы.
func (g *GameState) Game() *game.Game {
	return g.session.Game
}

func (g *GameState) Update(deltaTime float64) {
	gm := g.session.Game
	g.speed.SetState(gm.SpeedIndex())
	g.pause.SetPaused(gm.IsPaused())
	g.panel.StartButton.Disabled = gm.ECS.Phase != component.PhaseIdle

	if gm.ECS.Phase.Terminal() {
		g.session.Poll(time.Now())
		g.updateResult()
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.enterPause()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.leave()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		gm.StartWave()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		gm.ToggleSpeed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.toggleMusic()
	}
	for i, key := range rosterKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.selectRoster(i)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if !g.handleUIClick(x, y) {
			fx, fy, ok := FieldPoint(x, y)
			if ok {
				gm.Click(fx, fy)
			}
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		gm.PlacementSystem.Deselect()
	}

	gm.Update(deltaTime)
	g.session.Poll(time.Now())
}

// updateResult - ввод на экране итога.
func (g *GameState) updateResult() {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Retry()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.toggleMusic()
	}
	if g.session.Submitting() {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.leave()
	}
}

// handleUIClick обрабатывает клики по HUD и панели. Возвращает true, если клик был по UI.
func (g *GameState) handleUIClick(x, y int) bool {
	gm := g.session.Game
	now := time.Now()
	switch {
	case g.speed.IsClicked(x, y):
		if now.Sub(g.speed.LastToggleTime) >= config.ClickCooldown*time.Millisecond {
			gm.ToggleSpeed()
		}
		return true
	case g.pause.IsClicked(x, y):
		if now.Sub(g.pause.LastToggleTime) >= config.ClickCooldown*time.Millisecond {
			g.enterPause()
		}
		return true
	case g.music.IsClicked(x, y):
		g.toggleMusic()
		return true
	case g.indicator.IsClicked(x, y):
		if now.Sub(g.indicator.LastClickTime) >= config.ClickCooldown*time.Millisecond {
			g.indicator.HandleClick()
			gm.StartWave()
		}
		return true
	case g.panel.StartButton.Contains(x, y):
		if g.panel.StartButton.Press(now) {
			gm.StartWave()
		}
		return true
	}
	if i, ok := g.panel.EntryAt(x, y, len(gm.Roster())); ok {
		g.selectRoster(i)
		return true
	}
	return x >= config.PanelX-5 || y < config.FieldOffsetY
}

func (g *GameState) selectRoster(i int) {
	gm := g.session.Game
	roster := gm.Roster()
	if i < 0 || i >= len(roster) {
		return
	}
	if roster[i].Selected {
		gm.PlacementSystem.Deselect()
		return
	}
	gm.SelectTower(roster[i].Source.ID)
}

func (g *GameState) toggleMusic() {
	if g.sound == nil {
		return
	}
	playing := g.sound.ToggleMusic()
	g.log.Debug().Bool("playing", playing).Msg("music toggled")
}

func (g *GameState) enterPause() {
	g.session.Game.TogglePause()
	g.sm.SetState(NewPauseState(g.sm, g))
}

// leave закрывает сессию и возвращает в меню.
func (g *GameState) leave() {
	g.session.Close()
	g.sm.SetState(NewMenuState(g.sm, g.svc, g.sound))
}

// FieldPoint переводит экранные координаты в координаты поля.
func FieldPoint(x, y int) (float64, float64, bool) {
	fx := float64(x - config.FieldOffsetX)
	fy := float64(y - config.FieldOffsetY)
	if fx < 0 || fy < 0 || fx > config.FieldWidth || fy > config.FieldHeight {
		return 0, 0, false
	}
	return fx, fy, true
}

func (g *GameState) Draw(screen *ebiten.Image) {
	gm := g.session.Game
	ecs := gm.ECS

	screen.Fill(config.HUDColor)
	gm.RenderSystem.Draw(screen)

	g.status.DrawBackground(screen)
	g.lives.Draw(screen, ecs.Lives, config.StartingLives)
	resolved, quota := 0, 0
	if ecs.Wave != nil {
		g.wave.Draw(screen, ecs.Wave.Number, gm.TotalWaves())
		quota = ecs.Wave.Quota()
		resolved = ecs.Wave.Spawned - len(ecs.EnemyIDs())
	}
	g.progress.Draw(screen, resolved, quota, ecs.WavesCleared, gm.TotalWaves())
	g.status.Draw(screen, gm.Message())
	g.indicator.Draw(screen, ecs.Phase)
	g.speed.Draw(screen, gm.SpeedMultiplier())
	g.pause.Draw(screen)
	g.music.Draw(screen, g.sound != nil && g.sound.MusicPlaying())

	x, y := ebiten.CursorPosition()
	g.panel.Draw(screen, gm.Roster(), x, y)

	if out, ok := g.session.Outcome(); ok {
		g.drawResult(screen, out)
	}
}

func (g *GameState) drawResult(screen *ebiten.Image, out game.Outcome) {
	vector.DrawFilledRect(screen, config.FieldOffsetX, config.FieldOffsetY, config.FieldWidth, config.FieldHeight, color.RGBA{0, 0, 0, 150}, false)

	box := image.Rect(200, 180, 600, 380).Add(image.Pt(config.FieldOffsetX, config.FieldOffsetY))
	vector.DrawFilledRect(screen, float32(box.Min.X), float32(box.Min.Y), float32(box.Dx()), float32(box.Dy()), config.PanelColor, false)
	vector.StrokeRect(screen, float32(box.Min.X), float32(box.Min.Y), float32(box.Dx()), float32(box.Dy()), 2, ui.PhaseColor(g.session.Game.ECS.Phase), false)

	lines := ResultLines(out, g.session.OnChain(), g.session.Submitting(), g.session.CanRetry())
	for i, line := range lines {
		r := image.Rect(box.Min.X, box.Min.Y+20+i*30, box.Max.X, box.Min.Y+44+i*30)
		clr := color.Color(config.TextLightColor)
		if i == 0 {
			clr = ui.PhaseColor(g.session.Game.ECS.Phase)
		}
		ui.DrawCentered(screen, line, r, clr)
	}
}

// ResultLines - текст экрана итога.
func ResultLines(out game.Outcome, onChain, submitting, canRetry bool) []string {
	title := "DEFEAT"
	if out.Victory {
		title = "VICTORY"
	}
	lines := []string{
		title,
		"Waves cleared: " + strconv.Itoa(out.WavesCleared),
		"Lives remaining: " + strconv.Itoa(out.LivesRemaining),
	}
	switch {
	case submitting:
		lines = append(lines, "Submitting result...")
	case canRetry:
		lines = append(lines, "Press R to retry submission")
	case onChain:
		lines = append(lines, "Press Enter to return to menu")
	default:
		lines = append(lines, "Local game. Press Enter for menu")
	}
	return lines
}

func (g *GameState) Exit() {}
