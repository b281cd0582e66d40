// internal/app/events.go
package app

import (
	"fmt"

	"sui-tower-defense/internal/component"
	"sui-tower-defense/internal/event"
)

// GameEventListener переводит события симуляции в строку статуса.
type GameEventListener struct {
	game *Game
}

func (l *GameEventListener) OnEvent(e event.Event) {
	g := l.game
	switch e.Type {
	case event.PhaseChanged:
		data, ok := e.Data.(event.PhaseData)
		if !ok {
			return
		}
		switch data.To {
		case component.PhaseVictory:
			g.message = "Victory! All enemies defeated!"
		case component.PhaseDefeat:
			g.message = "Defeat! The enemies broke through."
		}
	case event.WaveCleared:
		if n, ok := e.Data.(int); ok {
			g.message = fmt.Sprintf("Wave %d cleared! Start wave %d when ready.", n, n+1)
		}
	case event.EnemyBreached:
		if g.ECS.Lives > 0 {
			g.message = fmt.Sprintf("An enemy got through! Lives: %d", g.ECS.Lives)
		}
	}
}
