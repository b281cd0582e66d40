// internal/defs/towers.go
package defs

import "image/color"

// TowerSource - характеристики башни, из которых строится башня на поле.
// Обычно это NFT игрока; в оффлайн-режиме - запись из файла уровня.
type TowerSource struct {
	ID       string  `yaml:"id"`
	Damage   int     `yaml:"damage"`
	Range    float64 `yaml:"range"`
	FireRate float64 `yaml:"fire_rate"` // перезарядка в мс, как в контракте
	Rarity   int     `yaml:"rarity"`
}

const (
	RarityCommon = iota + 1
	RarityRare
	RarityEpic
	RarityLegendary
)

// RarityPalette - цвета башни для одного уровня редкости.
type RarityPalette struct {
	Light, Mid, Dark, Glow color.RGBA
}

var rarityNames = []string{"", "Common", "Rare", "Epic", "Legendary"}

var rarityPalettes = map[int]RarityPalette{
	RarityCommon: {
		Light: color.RGBA{0x9e, 0x9e, 0x9e, 255}, Mid: color.RGBA{0x75, 0x75, 0x75, 255},
		Dark: color.RGBA{0x42, 0x42, 0x42, 255}, Glow: color.RGBA{0xbd, 0xbd, 0xbd, 255},
	},
	RarityRare: {
		Light: color.RGBA{0x42, 0xa5, 0xf5, 255}, Mid: color.RGBA{0x21, 0x96, 0xf3, 255},
		Dark: color.RGBA{0x15, 0x65, 0xc0, 255}, Glow: color.RGBA{0x64, 0xb5, 0xf6, 255},
	},
	RarityEpic: {
		Light: color.RGBA{0xab, 0x47, 0xbc, 255}, Mid: color.RGBA{0x9c, 0x27, 0xb0, 255},
		Dark: color.RGBA{0x6a, 0x1b, 0x9a, 255}, Glow: color.RGBA{0xce, 0x93, 0xd8, 255},
	},
	RarityLegendary: {
		Light: color.RGBA{0xff, 0xd5, 0x4f, 255}, Mid: color.RGBA{0xff, 0xc1, 0x07, 255},
		Dark: color.RGBA{0xf5, 0x7c, 0x00, 255}, Glow: color.RGBA{0xff, 0xe0, 0x82, 255},
	},
}

// RarityName returns a display name; unknown tiers are reported as "Unknown".
func RarityName(rarity int) string {
	if rarity < RarityCommon || rarity >= len(rarityNames) {
		return "Unknown"
	}
	return rarityNames[rarity]
}

// Palette возвращает палитру редкости; неизвестная редкость рисуется как Rare.
func Palette(rarity int) RarityPalette {
	if p, ok := rarityPalettes[rarity]; ok {
		return p
	}
	return rarityPalettes[RarityRare]
}
