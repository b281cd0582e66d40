// internal/state/state.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"

	"sui-tower-defense/internal/event"
)

// State - интерфейс для всех состояний
type State interface {
	Enter()
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
	Exit()
}

// Sound - то, что состояния знают о звуке. nil, если звук выключен.
type Sound interface {
	event.Listener
	ToggleMusic() bool
	MusicPlaying() bool
}

// StateMachine - структура для управления состояниями
type StateMachine struct {
	current State
	quit    bool
}

// NewStateMachine создаёт новую машину состояний без начального состояния
func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// SetState устанавливает новое состояние
func (sm *StateMachine) SetState(newState State) {
	if sm.current != nil {
		sm.current.Exit()
	}
	sm.current = newState
	if sm.current != nil {
		sm.current.Enter()
	}
}

// Current - текущее состояние.
func (sm *StateMachine) Current() State {
	return sm.current
}

// Update обновляет текущее состояние
func (sm *StateMachine) Update(deltaTime float64) {
	if sm.current != nil {
		sm.current.Update(deltaTime)
	}
}

// Draw отрисовывает текущее состояние
func (sm *StateMachine) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}

// Quit просит главный цикл завершиться.
func (sm *StateMachine) Quit() {
	sm.quit = true
}

// Done сообщает, что пора выходить.
func (sm *StateMachine) Done() bool {
	return sm.quit
}
