package event

import (
	"sui-tower-defense/internal/component"
	"sui-tower-defense/internal/types"
)

const (
	EnemySpawned     EventType = "EnemySpawned"     // Враг вышел на маршрут
	EnemyKilled      EventType = "EnemyKilled"      // Враг уничтожен
	EnemyBreached    EventType = "EnemyBreached"    // Враг дошёл до конца, минус жизнь
	TowerPlaced      EventType = "TowerPlaced"      // Башня построена
	TowerFired       EventType = "TowerFired"       // Башня выстрелила
	ProjectileImpact EventType = "ProjectileImpact" // Снаряд попал во врага
	WaveStarted      EventType = "WaveStarted"
	WaveCleared      EventType = "WaveCleared" // Волна отбита, впереди ещё волны
	PhaseChanged     EventType = "PhaseChanged"
)

// ImpactData - данные события ProjectileImpact
type ImpactData struct {
	EnemyID types.EntityID
	X, Y    float64
	Damage  int
}

// PhaseData - данные события PhaseChanged
type PhaseData struct {
	From, To component.Phase
}
