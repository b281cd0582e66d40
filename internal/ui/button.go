// internal/ui/button.go
package ui

import (
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"sui-tower-defense/internal/config"
)

// Face - шрифт HUD.
var Face font.Face = basicfont.Face7x13

// Button представляет собой кликабельную прямоугольную кнопку.
type Button struct {
	Rect          image.Rectangle
	Text          string
	Disabled      bool
	LastClickTime time.Time
}

// NewButton создает новую кнопку.
func NewButton(rect image.Rectangle, label string) *Button {
	return &Button{Rect: rect, Text: label}
}

// Contains проверяет, попадает ли точка в кнопку.
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// Press возвращает true, если кнопка активна и кулдаун прошёл.
func (b *Button) Press(now time.Time) bool {
	if b.Disabled || now.Sub(b.LastClickTime) < config.ClickCooldown*time.Millisecond {
		return false
	}
	b.LastClickTime = now
	return true
}

// Draw отрисовывает кнопку. hovered - курсор над кнопкой.
func (b *Button) Draw(screen *ebiten.Image, hovered bool) {
	bg := config.ButtonColor
	switch {
	case b.Disabled:
		bg = config.ButtonDisabled
	case hovered:
		bg = config.ButtonHover
	}
	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, bg, true)
	vector.StrokeRect(screen, x, y, w, h, 2, config.TextDimColor, true)

	fg := config.TextLightColor
	if b.Disabled {
		fg = config.TextDimColor
	}
	DrawCentered(screen, b.Text, b.Rect, fg)
}

// DrawCentered пишет строку по центру прямоугольника.
func DrawCentered(screen *ebiten.Image, s string, r image.Rectangle, clr color.Color) {
	bounds := text.BoundString(Face, s)
	x := r.Min.X + (r.Dx()-bounds.Dx())/2
	y := r.Min.Y + (r.Dy()-bounds.Dy())/2 - bounds.Min.Y
	text.Draw(screen, s, Face, x, y, clr)
}

// DrawText пишет строку; y - базовая линия.
func DrawText(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	text.Draw(screen, s, Face, x, y, clr)
}
