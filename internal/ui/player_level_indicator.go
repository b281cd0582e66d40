// internal/ui/player_level_indicator.go
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ProgressIndicator - полоса прогресса волны и клетки пройденных волн.
type ProgressIndicator struct {
	X, Y float32
}

const (
	progressBarWidth  = 118
	progressBarHeight = 12
	waveRectWidth     = 16
	waveRectHeight    = 12
	waveRectGap       = 9
	borderWidth       = 1
)

var (
	progressFill = color.RGBA{70, 100, 120, 220}
	borderColor  = color.White
)

// NewProgressIndicator создает новый индикатор прогресса.
func NewProgressIndicator(x, y float32) *ProgressIndicator {
	return &ProgressIndicator{X: x, Y: y}
}

// WaveProgress - доля разрешённых врагов волны (убитых или прошедших), от 0 до 1.
func WaveProgress(resolved, quota int) float64 {
	if quota <= 0 || resolved <= 0 {
		return 0
	}
	if resolved >= quota {
		return 1
	}
	return float64(resolved) / float64(quota)
}

// Draw отрисовывает индикатор.
func (i *ProgressIndicator) Draw(screen *ebiten.Image, resolved, quota, wavesCleared, totalWaves int) {
	vector.StrokeRect(screen, i.X, i.Y, progressBarWidth, progressBarHeight, borderWidth, borderColor, true)

	fillWidth := float32(float64(progressBarWidth-borderWidth*2) * WaveProgress(resolved, quota))
	if fillWidth > 0 {
		vector.DrawFilledRect(screen, i.X+borderWidth, i.Y+borderWidth, fillWidth, progressBarHeight-borderWidth*2, progressFill, true)
	}

	if totalWaves <= 1 {
		return
	}
	rectY := i.Y + progressBarHeight + 10
	for j := 0; j < totalWaves; j++ {
		rectX := i.X + float32(j)*(waveRectWidth+waveRectGap)
		vector.StrokeRect(screen, rectX, rectY, waveRectWidth, waveRectHeight, borderWidth, borderColor, true)
		if j < wavesCleared {
			vector.DrawFilledRect(screen, rectX+borderWidth, rectY+borderWidth, waveRectWidth-borderWidth*2, waveRectHeight-borderWidth*2, progressFill, true)
		}
	}
}
