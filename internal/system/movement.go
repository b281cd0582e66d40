// internal/system/movement.go
package system

import (
	"math"

	"github.com/rs/zerolog"

	"sui-tower-defense/internal/entity"
	"sui-tower-defense/internal/event"
	"sui-tower-defense/internal/types"
	"sui-tower-defense/pkg/track"
)

// MovementSystem двигает врагов по маршруту и обрабатывает прорывы.
type MovementSystem struct {
	ecs    *entity.ECS
	track  *track.Track
	events *event.Dispatcher
	log    zerolog.Logger
}

func NewMovementSystem(ecs *entity.ECS, tr *track.Track, events *event.Dispatcher, log zerolog.Logger) *MovementSystem {
	return &MovementSystem{ecs: ecs, track: tr, events: events, log: log}
}

// Update продвигает каждого врага на Speed пикселей за тик.
// Если до следующей точки осталось меньше шага, враг встаёт ровно в точку.
func (s *MovementSystem) Update() {
	last := s.track.Len() - 1
	for _, id := range s.ecs.EnemyIDs() {
		pos, hasPos := s.ecs.Positions[id]
		vel, hasVel := s.ecs.Velocities[id]
		path, hasPath := s.ecs.Paths[id]
		if !hasPos || !hasVel || !hasPath {
			s.log.Warn().Uint64("enemy", uint64(id)).Msg("enemy without movement components, skipped")
			continue
		}
		if math.IsNaN(pos.X) || math.IsNaN(pos.Y) {
			s.log.Warn().Uint64("enemy", uint64(id)).Msg("enemy position is NaN, skipped")
			continue
		}

		if path.Index >= last {
			s.breach(id)
			continue
		}

		target := s.track.At(path.Index + 1)
		dx := target.X - pos.X
		dy := target.Y - pos.Y
		dist := math.Hypot(dx, dy)

		if dist < vel.Speed || dist == 0 {
			pos.X, pos.Y = target.X, target.Y
			path.Index++
			if path.Index >= last {
				s.breach(id)
			}
			continue
		}
		pos.X += dx / dist * vel.Speed
		pos.Y += dy / dist * vel.Speed
	}
}

// breach - враг дошёл до конца: минус жизнь, враг убирается.
func (s *MovementSystem) breach(id types.EntityID) {
	s.ecs.LoseLife()
	s.ecs.Breached++
	s.ecs.RemoveEntity(id)
	s.log.Debug().Uint64("enemy", uint64(id)).Int("lives", s.ecs.Lives).Msg("enemy breached")
	s.events.Dispatch(event.Event{Type: event.EnemyBreached, Data: id})
}
