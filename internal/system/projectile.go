// internal/system/projectile.go
package system

import (
	"math"

	"github.com/rs/zerolog"

	"sui-tower-defense/internal/component"
	"sui-tower-defense/internal/config"
	"sui-tower-defense/internal/entity"
	"sui-tower-defense/internal/event"
	"sui-tower-defense/internal/types"
)

// ProjectileSystem управляет движением снарядов и нанесением урона
type ProjectileSystem struct {
	ecs    *entity.ECS
	events *event.Dispatcher
	log    zerolog.Logger
}

func NewProjectileSystem(ecs *entity.ECS, events *event.Dispatcher, log zerolog.Logger) *ProjectileSystem {
	return &ProjectileSystem{ecs: ecs, events: events, log: log}
}

// Update двигает снаряды к точке прицеливания. Снаряд, которому осталось
// меньше одного шага, срабатывает и исчезает.
func (s *ProjectileSystem) Update() {
	for _, id := range entity.SortedIDs(s.ecs.Projectiles) {
		proj := s.ecs.Projectiles[id]
		pos, ok := s.ecs.Positions[id]
		if !ok || math.IsNaN(pos.X) || math.IsNaN(pos.Y) {
			s.log.Warn().Uint64("projectile", uint64(id)).Msg("projectile without valid position, removed")
			s.ecs.RemoveEntity(id)
			continue
		}

		dx := proj.TargetX - pos.X
		dy := proj.TargetY - pos.Y
		dist := math.Hypot(dx, dy)
		if dist < proj.Speed {
			s.impact(proj)
			s.ecs.RemoveEntity(id)
			continue
		}

		proj.PrevX, proj.PrevY = pos.X, pos.Y
		pos.X += dx / dist * proj.Speed
		pos.Y += dy / dist * proj.Speed
	}
}

// impact наносит урон ближайшему врагу у точки прицеливания.
// Если рядом никого нет, попадание пропадает.
func (s *ProjectileSystem) impact(proj *component.Projectile) {
	enemyID, ok := FindEnemyNear(s.ecs, proj.TargetX, proj.TargetY, config.HitRadius)
	if !ok {
		return
	}
	ApplyDamage(s.ecs, enemyID, proj.Damage)
	s.spawnHitEffect(proj.TargetX, proj.TargetY)
	s.events.Dispatch(event.Event{Type: event.ProjectileImpact, Data: event.ImpactData{
		EnemyID: enemyID,
		X:       proj.TargetX,
		Y:       proj.TargetY,
		Damage:  proj.Damage,
	}})
}

func (s *ProjectileSystem) spawnHitEffect(x, y float64) types.EntityID {
	id := s.ecs.NewEntity()
	s.ecs.Positions[id] = &component.Position{X: x, Y: y}
	s.ecs.HitEffects[id] = &component.HitEffect{MaxFrames: config.HitEffectFrames}
	return id
}
