// internal/system/visual_effect.go
package system

import (
	"sui-tower-defense/internal/entity"
)

// VisualEffectSystem старит вспышки попаданий.
type VisualEffectSystem struct {
	ecs *entity.ECS
}

// NewVisualEffectSystem создает новую систему визуальных эффектов.
func NewVisualEffectSystem(ecs *entity.ECS) *VisualEffectSystem {
	return &VisualEffectSystem{ecs: ecs}
}

// Update добавляет кадр каждому эффекту и удаляет отыгравшие.
func (s *VisualEffectSystem) Update() {
	for _, id := range entity.SortedIDs(s.ecs.HitEffects) {
		fx := s.ecs.HitEffects[id]
		fx.Frame++
		if fx.Frame >= fx.MaxFrames {
			s.ecs.RemoveEntity(id)
		}
	}
}
