// internal/state/pause_state.go
package state

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"sui-tower-defense/internal/config"
	"sui-tower-defense/internal/ui"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// PauseState рисует игру под затемнением; симуляция стоит.
type PauseState struct {
	stateMachine  *StateMachine
	previousState *GameState
}

func NewPauseState(sm *StateMachine, prevState *GameState) *PauseState {
	return &PauseState{stateMachine: sm, previousState: prevState}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(deltaTime float64) {
	unpause := inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF9)
	if !unpause && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		unpause = s.previousState.pause.IsClicked(x, y)
	}
	if unpause {
		s.Resume()
	}
}

// Resume снимает игру с паузы и возвращает в неё.
func (s *PauseState) Resume() {
	if g := s.previousState.Game(); g.IsPaused() {
		g.TogglePause()
	}
	s.stateMachine.SetState(s.previousState)
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.previousState.Draw(screen)

	vector.DrawFilledRect(screen, 0, config.FieldOffsetY, config.FieldWidth, config.FieldHeight, color.RGBA{0, 0, 0, 128}, false)
	ui.DrawCentered(screen, "PAUSED", image.Rect(0, config.FieldOffsetY, config.FieldWidth, config.FieldOffsetY+config.FieldHeight), color.White)
	ui.DrawCentered(screen, "P or Esc to resume", image.Rect(0, config.FieldOffsetY+30, config.FieldWidth, config.FieldOffsetY+config.FieldHeight+30), config.TextDimColor)
}

func (s *PauseState) Exit() {}
