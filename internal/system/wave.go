// internal/system/wave.go
package system

import (
	"fmt"

	"github.com/rs/zerolog"

	"sui-tower-defense/internal/component"
	"sui-tower-defense/internal/defs"
	"sui-tower-defense/internal/entity"
	"sui-tower-defense/internal/event"
	"sui-tower-defense/internal/types"
	"sui-tower-defense/pkg/track"
)

// WaveSystem выпускает врагов волны по таймеру игрового времени.
type WaveSystem struct {
	ecs    *entity.ECS
	track  *track.Track
	events *event.Dispatcher
	state  *StateSystem
	plans  []defs.WavePlan
	next   int // индекс следующей волны в plans
	log    zerolog.Logger
}

func NewWaveSystem(ecs *entity.ECS, tr *track.Track, events *event.Dispatcher, state *StateSystem, plans []defs.WavePlan, log zerolog.Logger) *WaveSystem {
	ws := &WaveSystem{ecs: ecs, track: tr, events: events, state: state, plans: plans, log: log}
	state.waves = ws
	return ws
}

// TotalWaves - число волн в сессии.
func (s *WaveSystem) TotalWaves() int { return len(s.plans) }

// HasNextWave сообщает, остались ли незапущенные волны.
func (s *WaveSystem) HasNextWave() bool { return s.next < len(s.plans) }

// Start запускает следующую волну. Отказ возвращается как текст статуса.
func (s *WaveSystem) Start() (string, bool) {
	if s.ecs.Phase != component.PhaseIdle {
		return "Wave already running", false
	}
	if s.ecs.TowersPlaced == 0 {
		return "Place at least one tower first!", false
	}
	if !s.HasNextWave() {
		return "No waves left", false
	}

	plan := s.plans[s.next]
	s.next++
	queue := make([]component.EnemyTemplate, len(plan.Enemies))
	copy(queue, plan.Enemies)
	s.ecs.Wave = &component.Wave{
		Number:        s.next,
		Queue:         queue,
		SpawnInterval: plan.SpawnIntervalMs,
		// Первый враг выходит на первом же тике
		SpawnTimer: plan.SpawnIntervalMs,
		Armed:      len(queue) > 0,
	}
	s.state.Transition(component.PhaseActive)
	s.log.Info().Int("wave", s.next).Int("enemies", len(queue)).Msg("wave started")
	s.events.Dispatch(event.Event{Type: event.WaveStarted, Data: s.next})
	return fmt.Sprintf("Wave %d started!", s.next), true
}

// Update продвигает таймер спавна на elapsed мс игрового времени.
func (s *WaveSystem) Update(elapsed float64) {
	wave := s.ecs.Wave
	if wave == nil || !wave.Armed {
		return
	}
	if s.ecs.Phase != component.PhaseActive {
		s.Disarm()
		return
	}

	wave.SpawnTimer += elapsed
	for wave.SpawnTimer >= wave.SpawnInterval && !wave.Exhausted() {
		wave.SpawnTimer -= wave.SpawnInterval
		s.spawn(wave.Queue[0])
		wave.Queue = wave.Queue[1:]
		wave.Spawned++
		if wave.SpawnInterval <= 0 {
			break
		}
	}
	if wave.Exhausted() {
		wave.Armed = false
	}
}

// Disarm останавливает таймер спавна.
func (s *WaveSystem) Disarm() {
	if s.ecs.Wave != nil {
		s.ecs.Wave.Armed = false
	}
}

func (s *WaveSystem) spawn(tpl component.EnemyTemplate) types.EntityID {
	start := s.track.Start()
	id := s.ecs.NewEntity()
	s.ecs.Positions[id] = &component.Position{X: start.X, Y: start.Y}
	s.ecs.Velocities[id] = &component.Velocity{Speed: tpl.Speed}
	s.ecs.Paths[id] = &component.PathFollower{}
	s.ecs.Healths[id] = &component.Health{Value: tpl.HP, Max: tpl.HP}
	s.ecs.Enemies[id] = &component.Enemy{Kind: tpl.Kind, Rarity: tpl.Rarity}
	s.events.Dispatch(event.Event{Type: event.EnemySpawned, Data: id})
	return id
}
