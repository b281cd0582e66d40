// internal/ui/menu_button.go
package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"sui-tower-defense/internal/config"
)

// MenuButton - карточка главного меню: заголовок и строка описания.
type MenuButton struct {
	Rect        image.Rectangle
	Text        string
	Description string
	Value       string // что выбрано этой кнопкой (например, режим)
}

// NewMenuButton создает новую кнопку меню.
func NewMenuButton(rect image.Rectangle, title, description, value string) *MenuButton {
	return &MenuButton{Rect: rect, Text: title, Description: description, Value: value}
}

// Draw отрисовывает кнопку.
func (b *MenuButton) Draw(screen *ebiten.Image, hovered bool) {
	bg := config.ButtonColor
	if hovered {
		bg = config.ButtonHover
	}
	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, bg, true)
	vector.StrokeRect(screen, x, y, w, h, 2, config.SelectionOutline, true)

	title := image.Rect(b.Rect.Min.X, b.Rect.Min.Y, b.Rect.Max.X, b.Rect.Min.Y+b.Rect.Dy()/2)
	desc := image.Rect(b.Rect.Min.X, title.Max.Y, b.Rect.Max.X, b.Rect.Max.Y)
	DrawCentered(screen, b.Text, title, config.TextLightColor)
	DrawCentered(screen, b.Description, desc, config.TextDimColor)
}

// IsClicked проверяет, был ли клик по кнопке.
func (b *MenuButton) IsClicked(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}
