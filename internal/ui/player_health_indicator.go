// internal/ui/player_health_indicator.go
package ui

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"sui-tower-defense/internal/config"
)

const (
	LivesCols          = 5
	LivesCircleRadius  = 7.0
	LivesCircleSpacing = 4.0
)

// LivesIndicator отображает жизни сетки кружков.
type LivesIndicator struct {
	X, Y float32
}

// NewLivesIndicator создает новый индикатор жизней.
func NewLivesIndicator(x, y float32) *LivesIndicator {
	return &LivesIndicator{X: x, Y: y}
}

// LifeColor - цвет j-го кружка при lives оставшихся из max.
// Пока жизней больше половины, «лишние» синие; потерянные чёрные.
func LifeColor(j, lives, max int) color.RGBA {
	if j >= lives {
		return color.RGBA{0, 0, 0, 255}
	}
	half := max / 2
	if lives > half && j < lives-half {
		return color.RGBA{33, 150, 243, 255}
	}
	return config.HPBadColor
}

// Draw рисует жизни игрока и подпись «n/max» справа.
func (i *LivesIndicator) Draw(screen *ebiten.Image, lives, max int) {
	step := float32(LivesCircleRadius*2 + LivesCircleSpacing)
	for j := 0; j < max; j++ {
		row, col := j/LivesCols, j%LivesCols
		cx := i.X + float32(col)*step + LivesCircleRadius
		cy := i.Y + float32(row)*step + LivesCircleRadius
		vector.DrawFilledCircle(screen, cx, cy, LivesCircleRadius, LifeColor(j, lives, max), true)
		vector.StrokeCircle(screen, cx, cy, LivesCircleRadius, 1, color.White, true)
	}
	DrawText(screen, strconv.Itoa(lives)+"/"+strconv.Itoa(max), int(i.X+LivesCols*step+4), int(i.Y+LivesCircleRadius+5), config.TextLightColor)
}
