// internal/defs/enemies.go
package defs

import (
	"image/color"
	"strings"

	"sui-tower-defense/internal/component"
)

// MonsterDefinition holds the static data for a monster kind.
type MonsterDefinition struct {
	Kind  component.MonsterKind
	HP    int
	Speed float64 // пикселей за тик
	Size  float64 // радиус силуэта
	Color color.RGBA
	Shade color.RGBA
}

// Monsters - характеристики по видам (кампания берёт HP и скорость отсюда).
var Monsters = map[component.MonsterKind]MonsterDefinition{
	component.MonsterNormal: {
		Kind: component.MonsterNormal, HP: 50, Speed: 1, Size: 14,
		Color: color.RGBA{0xf4, 0x43, 0x36, 255}, Shade: color.RGBA{0xc6, 0x28, 0x28, 255},
	},
	component.MonsterFast: {
		Kind: component.MonsterFast, HP: 30, Speed: 2, Size: 10,
		Color: color.RGBA{0xff, 0x98, 0x00, 255}, Shade: color.RGBA{0xe6, 0x51, 0x00, 255},
	},
	component.MonsterTank: {
		Kind: component.MonsterTank, HP: 150, Speed: 0.5, Size: 18,
		Color: color.RGBA{0x9c, 0x27, 0xb0, 255}, Shade: color.RGBA{0x6a, 0x1b, 0x9a, 255},
	},
}

// Monster returns the definition for kind, falling back to normal.
func Monster(kind component.MonsterKind) MonsterDefinition {
	if def, ok := Monsters[kind]; ok {
		return def
	}
	return Monsters[component.MonsterNormal]
}

// KindFromContract переводит monster_type контракта (1..3) в вид монстра.
func KindFromContract(monsterType int) component.MonsterKind {
	switch monsterType {
	case 2:
		return component.MonsterFast
	case 3:
		return component.MonsterTank
	default:
		return component.MonsterNormal
	}
}

// KindFromString parses "normal", "fast" or "tank".
func KindFromString(s string) (component.MonsterKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "":
		return component.MonsterNormal, true
	case "fast":
		return component.MonsterFast, true
	case "tank":
		return component.MonsterTank, true
	default:
		return 0, false
	}
}
