// internal/ui/status_bar.go
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"sui-tower-defense/internal/config"
)

const maxStatusRunes = 60

// StatusBar - верхняя полоса со строкой статуса.
type StatusBar struct {
	X, Y int
}

func NewStatusBar(x, y int) *StatusBar {
	return &StatusBar{X: x, Y: y}
}

// Truncate обрезает строку статуса под ширину полосы.
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 3 {
		return string(r[:limit])
	}
	return string(r[:limit-3]) + "..."
}

// DrawBackground заливает верхнюю полосу HUD.
func (b *StatusBar) DrawBackground(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.FieldOffsetY, config.HUDColor, false)
}

func (b *StatusBar) Draw(screen *ebiten.Image, message string) {
	DrawText(screen, Truncate(message, maxStatusRunes), b.X, b.Y, config.TextLightColor)
}
