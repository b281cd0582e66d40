// internal/app/game.go
package app

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"sui-tower-defense/internal/component"
	"sui-tower-defense/internal/config"
	"sui-tower-defense/internal/defs"
	"sui-tower-defense/internal/entity"
	"sui-tower-defense/internal/event"
	"sui-tower-defense/internal/logging"
	"sui-tower-defense/internal/system"
	"sui-tower-defense/pkg/track"
)

// Outcome - итог сессии, который уходит в контракт.
type Outcome struct {
	Victory        bool
	WavesCleared   int
	LivesRemaining int
	Mode           string
}

// Options задаёт параметры сессии.
type Options struct {
	Level  *defs.LevelDefinition
	Mode   string
	Policy config.TargetPolicy
	// Roster - башни игрока; пустой ростер берётся из уровня.
	Roster []defs.TowerSource
	// Challenge переопределяет монстра испытания из уровня.
	Challenge *defs.ChallengeDef
	Logger    zerolog.Logger
}

// Game - контекст одной сессии: снимок, системы и диспетчер событий.
// Все методы вызываются из игрового цикла.
type Game struct {
	ECS              *entity.ECS
	Track            *track.Track
	EventDispatcher  *event.Dispatcher
	MovementSystem   *system.MovementSystem
	CombatSystem     *system.CombatSystem
	ProjectileSystem *system.ProjectileSystem
	VisualEffect     *system.VisualEffectSystem
	StateSystem      *system.StateSystem
	WaveSystem       *system.WaveSystem
	PlacementSystem  *system.PlacementSystem
	RenderSystem     *system.RenderSystem

	mode        string
	roster      []defs.TowerSource
	message     string
	accumulator float64
	speedIndex  int
	isPaused    bool
	abandoned   bool
	outcomeSent bool
	log         zerolog.Logger
}

// NewGame собирает сессию по уровню и режиму.
func NewGame(opts Options) (*Game, error) {
	level := opts.Level
	if level == nil {
		level = defs.DefaultLevel()
	}
	tr, err := level.Track()
	if err != nil {
		return nil, fmt.Errorf("failed to build track: %w", err)
	}

	mode := opts.Mode
	if mode == "" {
		mode = config.ModeChallenge
	}
	var plans []defs.WavePlan
	switch mode {
	case config.ModeChallenge:
		lvl := *level
		if opts.Challenge != nil {
			lvl.Challenge = *opts.Challenge
		}
		plans = lvl.ChallengeTemplates()
	case config.ModeCampaign:
		plans = level.CampaignPlan()
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	if len(plans) == 0 {
		return nil, errors.New("level has no waves")
	}

	roster := opts.Roster
	if len(roster) == 0 {
		roster = level.Roster
	}

	log := logging.Component(opts.Logger, "game").With().Str("mode", mode).Logger()
	ecs := entity.NewECS(level.Lives)
	dispatcher := event.NewDispatcher()

	g := &Game{
		ECS:              ecs,
		Track:            tr,
		EventDispatcher:  dispatcher,
		MovementSystem:   system.NewMovementSystem(ecs, tr, dispatcher, log),
		CombatSystem:     system.NewCombatSystem(ecs, dispatcher, opts.Policy, log),
		ProjectileSystem: system.NewProjectileSystem(ecs, dispatcher, log),
		VisualEffect:     system.NewVisualEffectSystem(ecs),
		StateSystem:      system.NewStateSystem(ecs, dispatcher, log),
		PlacementSystem:  system.NewPlacementSystem(ecs, tr, dispatcher, log),
		RenderSystem:     system.NewRenderSystem(ecs, tr),
		mode:             mode,
		roster:           append([]defs.TowerSource(nil), roster...),
		message:          "Select a tower and place it on the field",
		log:              log,
	}
	g.WaveSystem = system.NewWaveSystem(ecs, tr, dispatcher, g.StateSystem, plans, log)

	listener := &GameEventListener{game: g}
	dispatcher.Subscribe(event.PhaseChanged, listener, event.WaveCleared, event.EnemyBreached)

	log.Info().Str("level", level.Name).Int("waves", len(plans)).Int("roster", len(g.roster)).Msg("session created")
	return g, nil
}

// Step - один тик симуляции. Порядок систем фиксирован.
func (g *Game) Step() {
	if g.abandoned || g.ECS.Phase.Terminal() {
		return
	}
	g.ECS.Tick++
	g.ECS.GameTime += config.TickMillis

	g.MovementSystem.Update()
	g.CombatSystem.Update()
	g.ProjectileSystem.Update()
	system.RemoveDeadEnemies(g.ECS, g.EventDispatcher)
	g.VisualEffect.Update()
	g.WaveSystem.Update(config.TickMillis)
	g.StateSystem.Update()
}

// Update догоняет реальное время фиксированными тиками.
// realDelta - секунды с прошлого кадра. Возвращает число сделанных тиков.
func (g *Game) Update(realDelta float64) int {
	if g.isPaused || g.abandoned || g.ECS.Phase.Terminal() {
		g.accumulator = 0
		return 0
	}
	if realDelta > config.MaxDeltaTime {
		realDelta = config.MaxDeltaTime
	}
	if realDelta < 0 {
		realDelta = 0
	}
	g.accumulator += realDelta * float64(g.SpeedMultiplier())

	const tick = 1.0 / config.TickRate
	steps := 0
	for g.accumulator >= tick {
		g.accumulator -= tick
		g.Step()
		steps++
		if g.ECS.Phase.Terminal() {
			g.accumulator = 0
			break
		}
	}
	return steps
}

// StartWave запускает следующую волну.
func (g *Game) StartWave() bool {
	msg, ok := g.WaveSystem.Start()
	g.message = msg
	return ok
}

// SelectTower выбирает башню ростера по ID.
func (g *Game) SelectTower(sourceID string) bool {
	for _, src := range g.roster {
		if src.ID == sourceID {
			msg, ok := g.PlacementSystem.Select(src)
			g.message = msg
			return ok
		}
	}
	g.message = "Unknown tower"
	return false
}

// Click - щелчок по полю в координатах поля.
func (g *Game) Click(x, y float64) bool {
	if x < 0 || y < 0 || x > config.FieldWidth || y > config.FieldHeight {
		return false
	}
	msg, ok := g.PlacementSystem.Click(x, y)
	if msg != "" {
		g.message = msg
	}
	return ok
}

// Abandon завершает сессию без результата.
func (g *Game) Abandon() {
	if g.abandoned {
		return
	}
	g.abandoned = true
	g.WaveSystem.Disarm()
	g.EventDispatcher.Reset()
	g.log.Info().Uint64("tick", g.ECS.Tick).Msg("session abandoned")
}

// TakeOutcome отдаёт итог ровно один раз после конца игры.
func (g *Game) TakeOutcome() (Outcome, bool) {
	if g.outcomeSent || g.abandoned || !g.ECS.Phase.Terminal() {
		return Outcome{}, false
	}
	g.outcomeSent = true
	return g.outcome(), true
}

func (g *Game) outcome() Outcome {
	return Outcome{
		Victory:        g.ECS.Phase == component.PhaseVictory,
		WavesCleared:   g.ECS.WavesCleared,
		LivesRemaining: g.ECS.Lives,
		Mode:           g.mode,
	}
}

// Message - текущая строка статуса.
func (g *Game) Message() string { return g.message }

// SetMessage заменяет строку статуса (результаты транзакций и т.п.).
func (g *Game) SetMessage(msg string) { g.message = msg }

// Mode - режим сессии.
func (g *Game) Mode() string { return g.mode }

// Abandoned сообщает, была ли сессия брошена.
func (g *Game) Abandoned() bool { return g.abandoned }

// RosterEntry - башня ростера и её состояние на поле.
type RosterEntry struct {
	Source   defs.TowerSource
	Placed   bool
	Selected bool
}

// Roster возвращает ростер в исходном порядке.
func (g *Game) Roster() []RosterEntry {
	sel, hasSel := g.PlacementSystem.Selected()
	out := make([]RosterEntry, len(g.roster))
	for i, src := range g.roster {
		out[i] = RosterEntry{
			Source:   src,
			Placed:   g.PlacementSystem.IsPlaced(src.ID),
			Selected: hasSel && sel.ID == src.ID,
		}
	}
	return out
}

// TotalWaves - число волн сессии.
func (g *Game) TotalWaves() int { return g.WaveSystem.TotalWaves() }

// ToggleSpeed переключает множитель x1 -> x2 -> x4.
func (g *Game) ToggleSpeed() int {
	g.speedIndex = (g.speedIndex + 1) % len(config.SpeedMultipliers)
	return g.SpeedMultiplier()
}

// SpeedMultiplier - текущий множитель скорости.
func (g *Game) SpeedMultiplier() int { return config.SpeedMultipliers[g.speedIndex] }

// SpeedIndex - индекс множителя, для цвета кнопки.
func (g *Game) SpeedIndex() int { return g.speedIndex }

// TogglePause ставит или снимает паузу.
func (g *Game) TogglePause() {
	g.isPaused = !g.isPaused
}

// IsPaused возвращает текущее состояние паузы.
func (g *Game) IsPaused() bool {
	return g.isPaused
}
