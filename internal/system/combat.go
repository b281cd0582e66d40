package system

import (
	"math"

	"github.com/rs/zerolog"

	"sui-tower-defense/internal/component"
	"sui-tower-defense/internal/config"
	"sui-tower-defense/internal/defs"
	"sui-tower-defense/internal/entity"
	"sui-tower-defense/internal/event"
	"sui-tower-defense/internal/types"
	"sui-tower-defense/internal/utils"
)

// CombatSystem управляет атакой башен
type CombatSystem struct {
	ecs    *entity.ECS
	events *event.Dispatcher
	policy config.TargetPolicy
	log    zerolog.Logger
}

func NewCombatSystem(ecs *entity.ECS, events *event.Dispatcher, policy config.TargetPolicy, log zerolog.Logger) *CombatSystem {
	if policy == "" {
		policy = config.TargetFirst
	}
	return &CombatSystem{ecs: ecs, events: events, policy: policy, log: log}
}

// Update - каждая готовая башня стреляет в одну цель в радиусе.
func (s *CombatSystem) Update() {
	now := s.ecs.GameTime
	for _, id := range s.ecs.TowerIDs() {
		tower := s.ecs.Towers[id]
		pos, ok := s.ecs.Positions[id]
		if !ok {
			s.log.Warn().Uint64("tower", uint64(id)).Msg("tower without position, skipped")
			continue
		}

		targetID, found := s.findTarget(pos, tower.Range)
		turret := s.ecs.Turrets[id]
		if found && turret != nil {
			tp := s.ecs.Positions[targetID]
			turret.TargetAngle = math.Atan2(tp.Y-pos.Y, tp.X-pos.X)
		}
		if turret != nil {
			turret.Angle = utils.RotateTowards(turret.Angle, turret.TargetAngle, turret.TurnSpeed)
		}

		if !found || !tower.Ready(now) {
			continue
		}
		tower.MarkFired(now)
		s.fire(id, tower, pos, s.ecs.Positions[targetID])
	}
}

// findTarget выбирает цель по политике. Проверка радиуса включает границу.
func (s *CombatSystem) findTarget(from *component.Position, rng float64) (types.EntityID, bool) {
	var (
		best     types.EntityID
		bestDist = math.Inf(1)
		found    bool
	)
	for _, id := range s.ecs.EnemyIDs() {
		ep, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		d := math.Hypot(ep.X-from.X, ep.Y-from.Y)
		if math.IsNaN(d) || d > rng {
			continue
		}
		if s.policy == config.TargetFirst {
			// ID растут в порядке спавна: первый в радиусе - самый ранний
			return id, true
		}
		// Строгое сравнение: при равенстве остаётся меньший ID
		if d < bestDist {
			best, bestDist, found = id, d, true
		}
	}
	return best, found
}

func (s *CombatSystem) fire(towerID types.EntityID, tower *component.Tower, from, at *component.Position) {
	id := s.ecs.NewEntity()
	s.ecs.Positions[id] = &component.Position{X: from.X, Y: from.Y}
	s.ecs.Projectiles[id] = &component.Projectile{
		TargetX: at.X,
		TargetY: at.Y,
		PrevX:   from.X,
		PrevY:   from.Y,
		Speed:   config.ProjectileSpeed,
		Damage:  tower.Damage,
		Color:   defs.Palette(tower.Rarity).Glow,
	}
	s.events.Dispatch(event.Event{Type: event.TowerFired, Data: towerID})
}
