// internal/entity/ecs.go
package entity

import (
	"sort"

	"sui-tower-defense/internal/component"
	"sui-tower-defense/internal/types"
)

// ECS - снимок симуляции: все сущности сессии и счётчики.
// Принадлежит одной сессии, живёт в одном потоке.
type ECS struct {
	GameTime     float64 // мс игрового времени
	Tick         uint64
	NextID       types.EntityID
	Positions    map[types.EntityID]*component.Position
	Velocities   map[types.EntityID]*component.Velocity
	Paths        map[types.EntityID]*component.PathFollower
	Healths      map[types.EntityID]*component.Health
	Towers       map[types.EntityID]*component.Tower
	Turrets      map[types.EntityID]*component.TurretComponent
	Enemies      map[types.EntityID]*component.Enemy
	Projectiles  map[types.EntityID]*component.Projectile
	HitEffects   map[types.EntityID]*component.HitEffect
	Wave         *component.Wave
	Phase        component.Phase
	Lives        int
	WavesCleared int
	TowersPlaced int
	Killed       int
	Breached     int
}

func NewECS(lives int) *ECS {
	return &ECS{
		NextID:      1,
		Positions:   make(map[types.EntityID]*component.Position),
		Velocities:  make(map[types.EntityID]*component.Velocity),
		Paths:       make(map[types.EntityID]*component.PathFollower),
		Healths:     make(map[types.EntityID]*component.Health),
		Towers:      make(map[types.EntityID]*component.Tower),
		Turrets:     make(map[types.EntityID]*component.TurretComponent),
		Enemies:     make(map[types.EntityID]*component.Enemy),
		Projectiles: make(map[types.EntityID]*component.Projectile),
		HitEffects:  make(map[types.EntityID]*component.HitEffect),
		Phase:       component.PhaseIdle,
		Lives:       lives,
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// RemoveEntity удаляет все компоненты сущности.
func (ecs *ECS) RemoveEntity(id types.EntityID) {
	delete(ecs.Positions, id)
	delete(ecs.Velocities, id)
	delete(ecs.Paths, id)
	delete(ecs.Healths, id)
	delete(ecs.Towers, id)
	delete(ecs.Turrets, id)
	delete(ecs.Enemies, id)
	delete(ecs.Projectiles, id)
	delete(ecs.HitEffects, id)
}

// LoseLife снимает одну жизнь. Жизни не уходят ниже нуля.
func (ecs *ECS) LoseLife() {
	if ecs.Lives > 0 {
		ecs.Lives--
	}
}

// SortedIDs возвращает ключи карты по возрастанию ID,
// чтобы обход был детерминированным.
func SortedIDs[T any](m map[types.EntityID]T) []types.EntityID {
	ids := make([]types.EntityID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// EnemyIDs - живые враги в порядке появления.
func (ecs *ECS) EnemyIDs() []types.EntityID {
	return SortedIDs(ecs.Enemies)
}

// TowerIDs - башни в порядке установки.
func (ecs *ECS) TowerIDs() []types.EntityID {
	return SortedIDs(ecs.Towers)
}
