// internal/ui/wave_indicator.go
package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"

	"sui-tower-defense/internal/config"
)

// WaveIndicator отображает номер волны римскими цифрами: «III / V».
type WaveIndicator struct {
	X, Y         float32
	Color        color.Color
	OutlineColor color.Color
	LastColor    color.Color // цвет последней волны
}

// NewWaveIndicator создает новый индикатор волны.
func NewWaveIndicator(x, y float32) *WaveIndicator {
	return &WaveIndicator{
		X:            x,
		Y:            y,
		Color:        config.TextLightColor,
		OutlineColor: color.Black,
		LastColor:    config.HPBadColor,
	}
}

// toRoman конвертирует целое число в римское.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}

// WaveLabel - подпись индикатора; пусто, пока волн не было.
func WaveLabel(wave, total int) string {
	if wave <= 0 {
		return ""
	}
	if total <= 1 {
		return toRoman(wave)
	}
	return toRoman(wave) + " / " + toRoman(total)
}

// Draw отрисовывает индикатор на экране.
func (i *WaveIndicator) Draw(screen *ebiten.Image, wave, total int) {
	label := WaveLabel(wave, total)
	if label == "" {
		return
	}
	clr := i.Color
	if wave == total && total > 1 {
		clr = i.LastColor
	}

	bounds := text.BoundString(Face, label)
	x := int(i.X) - bounds.Dx()/2
	y := int(i.Y)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx != 0 || dy != 0 {
				text.Draw(screen, label, Face, x+dx, y+dy, i.OutlineColor)
			}
		}
	}
	text.Draw(screen, label, Face, x, y, clr)
}
