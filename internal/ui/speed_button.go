// internal/ui/speed_button.go
package ui

import (
	"image/color"
	"math"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"sui-tower-defense/pkg/render"
)

// SpeedButton - две стрелки «перемотки», цвет по текущему множителю.
type SpeedButton struct {
	X, Y           float32
	Size           float32
	LastClickTime  time.Time
	LastToggleTime time.Time
	StateColors    []color.Color
	CurrentState   int
}

func NewSpeedButton(x, y, size float32, stateColors []color.Color) *SpeedButton {
	return &SpeedButton{X: x, Y: y, Size: size, StateColors: stateColors}
}

func (b *SpeedButton) Draw(screen *ebiten.Image, multiplier int) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	size := b.Size * float32(scale)

	clr := b.StateColors[b.CurrentState%len(b.StateColors)]

	height := size * 1.2
	width := size
	offset := width * 0.8

	left := [][2]float32{{b.X - width, b.Y - height/2}, {b.X, b.Y}, {b.X - width, b.Y + height/2}}
	right := [][2]float32{{b.X - width + offset, b.Y - height/2}, {b.X + offset, b.Y}, {b.X - width + offset, b.Y + height/2}}
	for _, tri := range [][][2]float32{left, right} {
		render.FillPolygon(screen, tri, clr)
		render.StrokePolygon(screen, tri, 1, color.White)
	}

	DrawText(screen, "x"+strconv.Itoa(multiplier), int(b.X-width), int(b.Y+height/2+14), color.White)
}

func (b *SpeedButton) IsClicked(x, y int) bool {
	// Форма сложная, попадание считаем по кругу
	dx, dy := float32(x)-b.X, float32(y)-b.Y
	r := b.Size * 1.5
	return dx*dx+dy*dy <= r*r
}

// SetState синхронизирует цвет с индексом множителя игры.
func (b *SpeedButton) SetState(index int) {
	if index != b.CurrentState {
		b.CurrentState = index
		b.LastClickTime = time.Now()
		b.LastToggleTime = time.Now()
	}
}
