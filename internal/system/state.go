// internal/system/state.go
package system

import (
	"github.com/rs/zerolog"

	"sui-tower-defense/internal/component"
	"sui-tower-defense/internal/entity"
	"sui-tower-defense/internal/event"
)

// StateSystem следит за концом волны и концом игры.
type StateSystem struct {
	ecs    *entity.ECS
	events *event.Dispatcher
	waves  *WaveSystem
	log    zerolog.Logger
}

func NewStateSystem(ecs *entity.ECS, events *event.Dispatcher, log zerolog.Logger) *StateSystem {
	return &StateSystem{ecs: ecs, events: events, log: log}
}

// Update проверяет поражение, затем победу. Вызывается в конце тика.
func (s *StateSystem) Update() {
	if s.ecs.Phase != component.PhaseActive {
		return
	}
	if s.ecs.Lives <= 0 {
		s.Transition(component.PhaseDefeat)
		return
	}

	wave := s.ecs.Wave
	if wave == nil || !wave.Exhausted() || len(s.ecs.Enemies) > 0 {
		return
	}
	s.ecs.WavesCleared++
	if s.waves != nil && s.waves.HasNextWave() {
		s.Transition(component.PhaseIdle)
		s.events.Dispatch(event.Event{Type: event.WaveCleared, Data: wave.Number})
		return
	}
	s.Transition(component.PhaseVictory)
}

// Transition меняет фазу. Из терминальной фазы выхода нет.
func (s *StateSystem) Transition(to component.Phase) bool {
	from := s.ecs.Phase
	if from == to || from.Terminal() {
		return false
	}
	s.ecs.Phase = to
	if to.Terminal() && s.waves != nil {
		s.waves.Disarm()
	}
	s.log.Info().Stringer("from", from).Stringer("to", to).Int("lives", s.ecs.Lives).Msg("phase changed")
	s.events.Dispatch(event.Event{Type: event.PhaseChanged, Data: event.PhaseData{From: from, To: to}})
	return true
}

// Current возвращает текущую фазу.
func (s *StateSystem) Current() component.Phase {
	return s.ecs.Phase
}
