// internal/ui/u_indicator.go
package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"sui-tower-defense/internal/config"
)

// MusicIndicator - буква «M», перечёркнутая, когда музыка выключена.
type MusicIndicator struct {
	X, Y float32
	Size float32
}

// NewMusicIndicator создает индикатор музыки.
func NewMusicIndicator(x, y, size float32) *MusicIndicator {
	return &MusicIndicator{X: x, Y: y, Size: size}
}

// Draw отрисовывает индикатор.
func (i *MusicIndicator) Draw(screen *ebiten.Image, playing bool) {
	clr := config.TextDimColor
	if playing {
		clr = config.SelectionOutline
	}
	r := i.rect()
	vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, clr, true)
	DrawCentered(screen, "M", r, clr)

	if !playing {
		b := text.BoundString(Face, "M")
		half := float32(b.Dx())
		vector.StrokeLine(screen, i.X-half, i.Y+half, i.X+half, i.Y-half, 2, config.HPBadColor, true)
	}
}

// IsClicked проверяет, был ли клик по индикатору.
func (i *MusicIndicator) IsClicked(x, y int) bool {
	return image.Pt(x, y).In(i.rect())
}

func (i *MusicIndicator) rect() image.Rectangle {
	h := int(i.Size / 2)
	return image.Rect(int(i.X)-h, int(i.Y)-h, int(i.X)+h, int(i.Y)+h)
}
