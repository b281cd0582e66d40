// internal/system/utils.go
package system

import (
	"math"

	"sui-tower-defense/internal/entity"
	"sui-tower-defense/internal/event"
	"sui-tower-defense/internal/types"
)

// FindEnemyNear возвращает ближайшего врага не дальше radius от точки (x, y).
// При равных расстояниях выигрывает меньший ID.
func FindEnemyNear(ecs *entity.ECS, x, y, radius float64) (types.EntityID, bool) {
	var (
		best     types.EntityID
		bestDist = math.Inf(1)
		found    bool
	)
	for _, id := range ecs.EnemyIDs() {
		pos, ok := ecs.Positions[id]
		if !ok {
			continue
		}
		d := math.Hypot(pos.X-x, pos.Y-y)
		if d <= radius && d < bestDist {
			best, bestDist, found = id, d, true
		}
	}
	return best, found
}

// ApplyDamage снимает здоровье. Отрицательный урон не лечит.
func ApplyDamage(ecs *entity.ECS, id types.EntityID, damage int) {
	health, ok := ecs.Healths[id]
	if !ok || damage <= 0 {
		return
	}
	health.Value -= damage
	if health.Value < 0 {
		health.Value = 0
	}
}

// RemoveDeadEnemies убирает врагов с нулевым здоровьем в тот же тик.
func RemoveDeadEnemies(ecs *entity.ECS, events *event.Dispatcher) int {
	removed := 0
	for _, id := range ecs.EnemyIDs() {
		health, ok := ecs.Healths[id]
		if !ok || health.Value > 0 {
			continue
		}
		ecs.RemoveEntity(id)
		ecs.Killed++
		removed++
		events.Dispatch(event.Event{Type: event.EnemyKilled, Data: id})
	}
	return removed
}
